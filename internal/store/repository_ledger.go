// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-ledger/internal/logger"
	"github.com/MKhiriev/go-ledger/models"
)

// ledgerRepository is the PostgreSQL-backed implementation of
// [LedgerRepository] over the "ledger_records" table.
type ledgerRepository struct {
	*DB
	logger *logger.Logger
}

// NewLedgerRepository constructs a [LedgerRepository] backed by the provided
// database connection and logger.
func NewLedgerRepository(db *DB, logger *logger.Logger) LedgerRepository {
	logger.Debug().Msg("creating ledger repository")
	return &ledgerRepository{
		DB:     db,
		logger: logger,
	}
}

func scanRecord(row rowScanner) (models.LedgerRecord, error) {
	var (
		record models.LedgerRecord
		kind   string
	)
	err := row.Scan(
		&record.ID,
		&record.OwnerID,
		&kind,
		&record.Label,
		&record.Amount,
		&record.Description,
		&record.Date,
	)
	record.Kind = models.RecordKind(kind)
	return record, err
}

// CreateRecord inserts record and returns it with its id assigned.
func (l *ledgerRepository) CreateRecord(ctx context.Context, record models.LedgerRecord) (models.LedgerRecord, error) {
	query, args, err := buildCreateRecordQuery(record)
	if err != nil {
		return models.LedgerRecord{}, err
	}

	created, err := l.queryOne(ctx, query, args)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "ledgerRepository.CreateRecord").
			Int64("owner_id", record.OwnerID).
			Msg("failed to insert ledger record")
		return models.LedgerRecord{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return created, nil
}

// GetRecord loads a record by kind and id regardless of owner.
func (l *ledgerRepository) GetRecord(ctx context.Context, kind models.RecordKind, id int64) (models.LedgerRecord, error) {
	query, args, err := buildGetRecordQuery(kind, id)
	if err != nil {
		return models.LedgerRecord{}, err
	}

	record, err := l.queryOne(ctx, query, args)
	if errors.Is(err, sql.ErrNoRows) {
		return models.LedgerRecord{}, ErrRecordNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "ledgerRepository.GetRecord").
			Int64("id", id).
			Msg("failed to get ledger record")
		return models.LedgerRecord{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return record, nil
}

// ListRecords returns every record of kind owned by ownerID, newest first.
func (l *ledgerRepository) ListRecords(ctx context.Context, ownerID int64, kind models.RecordKind) ([]models.LedgerRecord, error) {
	query, args, err := buildListRecordsQuery(ownerID, kind)
	if err != nil {
		return nil, err
	}
	return l.queryMany(ctx, "ledgerRepository.ListRecords", ownerID, query, args)
}

// ListRecordsBetween returns the owner's records of kind dated within
// [from, to] inclusive.
func (l *ledgerRepository) ListRecordsBetween(ctx context.Context, ownerID int64, kind models.RecordKind, from, to models.Date) ([]models.LedgerRecord, error) {
	query, args, err := buildListRecordsBetweenQuery(ownerID, kind, from, to)
	if err != nil {
		return nil, err
	}
	return l.queryMany(ctx, "ledgerRepository.ListRecordsBetween", ownerID, query, args)
}

// UpdateRecord overwrites label, amount, description and date of the record
// identified by (ID, Kind, OwnerID). [ErrRecordNotFound] is returned when no
// such row exists.
func (l *ledgerRepository) UpdateRecord(ctx context.Context, record models.LedgerRecord) (models.LedgerRecord, error) {
	query, args, err := buildUpdateRecordQuery(record)
	if err != nil {
		return models.LedgerRecord{}, err
	}

	updated, err := l.queryOne(ctx, query, args)
	if errors.Is(err, sql.ErrNoRows) {
		return models.LedgerRecord{}, ErrRecordNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "ledgerRepository.UpdateRecord").
			Int64("id", record.ID).
			Int64("owner_id", record.OwnerID).
			Msg("failed to update ledger record")
		return models.LedgerRecord{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return updated, nil
}

// DeleteRecord removes the owner's record. [ErrRecordNotFound] is returned
// when nothing was deleted.
func (l *ledgerRepository) DeleteRecord(ctx context.Context, ownerID int64, kind models.RecordKind, id int64) error {
	query, args, err := buildDeleteRecordQuery(ownerID, kind, id)
	if err != nil {
		return err
	}

	var result sql.Result
	err = l.withRetry(ctx, func() error {
		var execErr error
		result, execErr = l.ExecContext(ctx, query, args...)
		return execErr
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "ledgerRepository.DeleteRecord").
			Int64("id", id).
			Int64("owner_id", ownerID).
			Msg("failed to delete ledger record")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrRecordNotFound
	}

	return nil
}

func (l *ledgerRepository) queryOne(ctx context.Context, query string, args []any) (models.LedgerRecord, error) {
	var record models.LedgerRecord
	err := l.withRetry(ctx, func() error {
		var scanErr error
		record, scanErr = scanRecord(l.QueryRowContext(ctx, query, args...))
		return scanErr
	})
	return record, err
}

func (l *ledgerRepository) queryMany(ctx context.Context, funcName string, ownerID int64, query string, args []any) ([]models.LedgerRecord, error) {
	log := logger.FromContext(ctx)

	var rows *sql.Rows
	err := l.withRetry(ctx, func() error {
		var queryErr error
		rows, queryErr = l.QueryContext(ctx, query, args...)
		return queryErr
	})
	if err != nil {
		log.Err(err).Str("func", funcName).Int64("owner_id", ownerID).Msg("failed to execute query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	records := make([]models.LedgerRecord, 0, 32)
	for rows.Next() {
		record, scanErr := scanRecord(rows)
		if scanErr != nil {
			log.Err(scanErr).Str("func", funcName).Int64("owner_id", ownerID).Msg("failed to scan ledger record row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		records = append(records, record)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).Str("func", funcName).Int64("owner_id", ownerID).Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return records, nil
}
