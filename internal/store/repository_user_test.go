package store

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/go-ledger/internal/logger"
	"github.com/MKhiriev/go-ledger/models"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

func newTestUserRepo(t *testing.T) (*userRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.Nop()
	repo := &userRepository{
		db:     &DB{DB: db, logger: l},
		logger: l,
	}
	return repo, mock, db
}

func pgError(code string) error {
	return &pgconn.PgError{Code: code}
}

func userRows() *sqlmock.Rows {
	return sqlmock.NewRows(userColumns)
}

func TestCreateUser_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()
	user := models.User{
		Email:        "ana@example.com",
		FirstName:    "Ana",
		LastName:     "Lopez",
		PasswordHash: "bcrypt-hash",
		IsActive:     true,
	}

	now := time.Now()
	rows := userRows().AddRow(1, user.Email, user.FirstName, user.LastName, user.PasswordHash, false, true, false, now, nil)

	mock.ExpectQuery("INSERT INTO users").
		WithArgs(user.Email, user.FirstName, user.LastName, user.PasswordHash, false, true, false).
		WillReturnRows(rows)

	created, err := repo.CreateUser(ctx, user)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.UserID != 1 {
		t.Errorf("expected UserID=1, got %d", created.UserID)
	}
	if created.Email != user.Email {
		t.Errorf("expected email %s, got %s", user.Email, created.Email)
	}
	if created.LastLogin != nil {
		t.Errorf("expected nil LastLogin, got %v", created.LastLogin)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestCreateUser_UniqueViolation(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectQuery("INSERT INTO users").
		WillReturnError(pgError(pgerrcode.UniqueViolation))

	_, err := repo.CreateUser(context.Background(), models.User{Email: "dup@example.com"})
	if !errors.Is(err, ErrEmailAlreadyExists) {
		t.Fatalf("expected ErrEmailAlreadyExists, got %v", err)
	}
}

func TestCreateUser_UnexpectedDBError(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectQuery("INSERT INTO users").
		WillReturnError(errors.New("db network error"))

	_, err := repo.CreateUser(context.Background(), models.User{Email: "ana@example.com"})
	if err == nil || !strings.Contains(err.Error(), "unexpected DB error") {
		t.Fatalf("expected wrapped unexpected DB error, got %v", err)
	}
}

func TestFindUserByEmail_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	lastLogin := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	rows := userRows().AddRow(3, "ana@example.com", "Ana", "Lopez", "hash", true, true, false, time.Now(), lastLogin)

	mock.ExpectQuery("SELECT user_id, email, .* FROM users WHERE email = \\$1 LIMIT 1").
		WithArgs("ana@example.com").
		WillReturnRows(rows)

	found, err := repo.FindUserByEmail(context.Background(), "ana@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found.UserID != 3 || !found.IsVerified {
		t.Errorf("unexpected user: %+v", found)
	}
	if found.LastLogin == nil || !found.LastLogin.Equal(lastLogin) {
		t.Errorf("expected LastLogin %v, got %v", lastLogin, found.LastLogin)
	}
}

func TestFindUserByEmail_NotFound(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT user_id").
		WithArgs("ghost@example.com").
		WillReturnRows(userRows())

	_, err := repo.FindUserByEmail(context.Background(), "ghost@example.com")
	if !errors.Is(err, ErrNoUserWasFound) {
		t.Fatalf("expected ErrNoUserWasFound, got %v", err)
	}
}

func TestFindUserByID_UnexpectedError(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT user_id .* WHERE user_id = \\$1").
		WithArgs(int64(9)).
		WillReturnError(errors.New("db failure"))

	_, err := repo.FindUserByID(context.Background(), 9)
	if !errors.Is(err, ErrExecutingQuery) {
		t.Fatalf("expected ErrExecutingQuery, got %v", err)
	}
}

func TestFindUserByID_ScanError(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"user_id"}).AddRow(1)
	mock.ExpectQuery("SELECT user_id").WillReturnRows(rows)

	_, err := repo.FindUserByID(context.Background(), 1)
	if err == nil {
		t.Fatal("expected scan error, got nil")
	}
}

func TestVerifyUser(t *testing.T) {
	tests := []struct {
		name        string
		affected    int64
		wantChanged bool
	}{
		{name: "first verification flips flag", affected: 1, wantChanged: true},
		{name: "already verified", affected: 0, wantChanged: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, db := newTestUserRepo(t)
			defer db.Close()

			mock.ExpectExec("UPDATE users SET is_verified = \\$1 WHERE is_verified = \\$2 AND user_id = \\$3").
				WithArgs(true, false, int64(7)).
				WillReturnResult(sqlmock.NewResult(0, tt.affected))

			changed, err := repo.VerifyUser(context.Background(), 7)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if changed != tt.wantChanged {
				t.Errorf("expected changed=%v, got %v", tt.wantChanged, changed)
			}
		})
	}
}

func TestVerifyUser_ExecError(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectExec("UPDATE users").WillReturnError(errors.New("boom"))

	_, err := repo.VerifyUser(context.Background(), 7)
	if !errors.Is(err, ErrExecutingStatement) {
		t.Fatalf("expected ErrExecutingStatement, got %v", err)
	}
}

func TestSetPassword(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectExec("UPDATE users SET password_hash = \\$1 WHERE user_id = \\$2").
		WithArgs("new-hash", int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.SetPassword(context.Background(), 4, "new-hash"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSetPassword_NoSuchUser(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectExec("UPDATE users").WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.SetPassword(context.Background(), 4, "new-hash")
	if !errors.Is(err, ErrNoUserWasFound) {
		t.Fatalf("expected ErrNoUserWasFound, got %v", err)
	}
}

func TestUpdateLastLogin(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	at := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	mock.ExpectExec("UPDATE users SET last_login = \\$1 WHERE user_id = \\$2").
		WithArgs(at, int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.UpdateLastLogin(context.Background(), 4, at); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestWithRetry_RetriesTransientErrors(t *testing.T) {
	prev := retryDelays
	retryDelays = []time.Duration{time.Millisecond, time.Millisecond}
	t.Cleanup(func() { retryDelays = prev })

	repo, mock, db := newTestUserRepo(t)
	defer db.Close()
	repo.db.errorClassificator = NewPostgresErrorClassifier()

	mock.ExpectExec("UPDATE users").WillReturnError(pgError(pgerrcode.SerializationFailure))
	mock.ExpectExec("UPDATE users").WillReturnResult(sqlmock.NewResult(0, 1))

	changed, err := repo.VerifyUser(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !changed {
		t.Error("expected changed=true after retry")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestWithRetry_StopsOnPermanentErrors(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()
	repo.db.errorClassificator = NewPostgresErrorClassifier()

	mock.ExpectQuery("INSERT INTO users").WillReturnError(pgError(pgerrcode.UniqueViolation))

	_, err := repo.CreateUser(context.Background(), models.User{Email: "dup@example.com"})
	if !errors.Is(err, ErrEmailAlreadyExists) {
		t.Fatalf("expected ErrEmailAlreadyExists, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestPostgresErrorClassifier(t *testing.T) {
	c := NewPostgresErrorClassifier()

	cases := []struct {
		err  error
		want ErrorClassification
	}{
		{err: nil, want: NonRetryable},
		{err: errors.New("plain"), want: NonRetryable},
		{err: driver.ErrBadConn, want: Retryable},
		{err: pgError(pgerrcode.DeadlockDetected), want: Retryable},
		{err: pgError(pgerrcode.ConnectionFailure), want: Retryable},
		{err: pgError(pgerrcode.CannotConnectNow), want: Retryable},
		{err: pgError(pgerrcode.UniqueViolation), want: NonRetryable},
		{err: pgError(pgerrcode.UndefinedTable), want: NonRetryable},
	}

	for _, tc := range cases {
		if got := c.Classify(tc.err); got != tc.want {
			t.Errorf("Classify(%v) = %v, want %v", tc.err, got, tc.want)
		}
	}
}
