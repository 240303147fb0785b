package store

import (
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-ledger/models"
	sq "github.com/Masterminds/squirrel"
)

const (
	usersTable         = "users"
	ledgerRecordsTable = "ledger_records"
)

// psql builds statements with PostgreSQL $n placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var userColumns = []string{
	"user_id",
	"email",
	"first_name",
	"last_name",
	"password_hash",
	"is_verified",
	"is_active",
	"is_staff",
	"date_joined",
	"last_login",
}

var ledgerColumns = []string{
	"id",
	"owner_id",
	"kind",
	"label",
	"amount",
	"description",
	"date",
}

func returning(columns []string) string {
	return "RETURNING " + strings.Join(columns, ", ")
}

func wrapBuildErr(err error) error {
	return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
}

// ── users ─────────────────────────────────────────────────────────────────────

func buildCreateUserQuery(user models.User) (string, []any, error) {
	query, args, err := psql.
		Insert(usersTable).
		Columns("email", "first_name", "last_name", "password_hash", "is_verified", "is_active", "is_staff").
		Values(user.Email, user.FirstName, user.LastName, user.PasswordHash, user.IsVerified, user.IsActive, user.IsStaff).
		Suffix(returning(userColumns)).
		ToSql()
	if err != nil {
		return "", nil, wrapBuildErr(err)
	}
	return query, args, nil
}

func buildFindUserQuery(where sq.Eq) (string, []any, error) {
	query, args, err := psql.
		Select(userColumns...).
		From(usersTable).
		Where(where).
		Limit(1).
		ToSql()
	if err != nil {
		return "", nil, wrapBuildErr(err)
	}
	return query, args, nil
}

func buildVerifyUserQuery(userID int64) (string, []any, error) {
	query, args, err := psql.
		Update(usersTable).
		Set("is_verified", true).
		Where(sq.Eq{"user_id": userID, "is_verified": false}).
		ToSql()
	if err != nil {
		return "", nil, wrapBuildErr(err)
	}
	return query, args, nil
}

func buildSetPasswordQuery(userID int64, passwordHash string) (string, []any, error) {
	query, args, err := psql.
		Update(usersTable).
		Set("password_hash", passwordHash).
		Where(sq.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return "", nil, wrapBuildErr(err)
	}
	return query, args, nil
}

func buildUpdateLastLoginQuery(userID int64, at time.Time) (string, []any, error) {
	query, args, err := psql.
		Update(usersTable).
		Set("last_login", at).
		Where(sq.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return "", nil, wrapBuildErr(err)
	}
	return query, args, nil
}

// ── ledger records ────────────────────────────────────────────────────────────

func buildCreateRecordQuery(record models.LedgerRecord) (string, []any, error) {
	query, args, err := psql.
		Insert(ledgerRecordsTable).
		Columns("owner_id", "kind", "label", "amount", "description", "date").
		Values(record.OwnerID, string(record.Kind), record.Label, record.Amount, record.Description, record.Date).
		Suffix(returning(ledgerColumns)).
		ToSql()
	if err != nil {
		return "", nil, wrapBuildErr(err)
	}
	return query, args, nil
}

func buildGetRecordQuery(kind models.RecordKind, id int64) (string, []any, error) {
	query, args, err := psql.
		Select(ledgerColumns...).
		From(ledgerRecordsTable).
		Where(sq.Eq{"id": id, "kind": string(kind)}).
		ToSql()
	if err != nil {
		return "", nil, wrapBuildErr(err)
	}
	return query, args, nil
}

func buildListRecordsQuery(ownerID int64, kind models.RecordKind) (string, []any, error) {
	query, args, err := psql.
		Select(ledgerColumns...).
		From(ledgerRecordsTable).
		Where(sq.Eq{"owner_id": ownerID, "kind": string(kind)}).
		OrderBy("date DESC", "id DESC").
		ToSql()
	if err != nil {
		return "", nil, wrapBuildErr(err)
	}
	return query, args, nil
}

// buildListRecordsBetweenQuery selects the owner's records of kind dated
// within [from, to] inclusive.
func buildListRecordsBetweenQuery(ownerID int64, kind models.RecordKind, from, to models.Date) (string, []any, error) {
	query, args, err := psql.
		Select(ledgerColumns...).
		From(ledgerRecordsTable).
		Where(sq.Eq{"owner_id": ownerID, "kind": string(kind)}).
		Where(sq.Expr("date BETWEEN ? AND ?", from, to)).
		OrderBy("date DESC", "id DESC").
		ToSql()
	if err != nil {
		return "", nil, wrapBuildErr(err)
	}
	return query, args, nil
}

func buildUpdateRecordQuery(record models.LedgerRecord) (string, []any, error) {
	query, args, err := psql.
		Update(ledgerRecordsTable).
		SetMap(map[string]any{
			"label":       record.Label,
			"amount":      record.Amount,
			"description": record.Description,
			"date":        record.Date,
		}).
		Where(sq.Eq{"id": record.ID, "owner_id": record.OwnerID, "kind": string(record.Kind)}).
		Suffix(returning(ledgerColumns)).
		ToSql()
	if err != nil {
		return "", nil, wrapBuildErr(err)
	}
	return query, args, nil
}

func buildDeleteRecordQuery(ownerID int64, kind models.RecordKind, id int64) (string, []any, error) {
	query, args, err := psql.
		Delete(ledgerRecordsTable).
		Where(sq.Eq{"id": id, "owner_id": ownerID, "kind": string(kind)}).
		ToSql()
	if err != nil {
		return "", nil, wrapBuildErr(err)
	}
	return query, args, nil
}
