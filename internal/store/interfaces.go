// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

import (
	"context"
	"time"

	"github.com/MKhiriev/go-ledger/models"
)

// UserRepository persists user accounts.
type UserRepository interface {
	// CreateUser inserts user and returns it with server-assigned fields.
	// A duplicate email yields ErrEmailAlreadyExists.
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	// FindUserByEmail yields ErrNoUserWasFound when no account matches.
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	// FindUserByID yields ErrNoUserWasFound when no account matches.
	FindUserByID(ctx context.Context, userID int64) (models.User, error)
	// VerifyUser marks the account verified. changed is false when it was
	// already verified (or does not exist); the update is a single
	// conditional statement, so concurrent calls flip the flag once.
	VerifyUser(ctx context.Context, userID int64) (changed bool, err error)
	// SetPassword replaces the stored password hash.
	SetPassword(ctx context.Context, userID int64, passwordHash string) error
	// UpdateLastLogin stamps the last successful login time.
	UpdateLastLogin(ctx context.Context, userID int64, at time.Time) error
}

// LedgerRepository persists expense and income records.
//
// Reads by id are not scoped to an owner so the caller can tell "missing"
// from "someone else's". Writes are always scoped by owner.
type LedgerRepository interface {
	CreateRecord(ctx context.Context, record models.LedgerRecord) (models.LedgerRecord, error)
	// GetRecord yields ErrRecordNotFound when no record of kind has id.
	GetRecord(ctx context.Context, kind models.RecordKind, id int64) (models.LedgerRecord, error)
	// ListRecords returns the owner's records of kind, newest first.
	ListRecords(ctx context.Context, ownerID int64, kind models.RecordKind) ([]models.LedgerRecord, error)
	// ListRecordsBetween returns the owner's records of kind dated within
	// [from, to], both ends inclusive.
	ListRecordsBetween(ctx context.Context, ownerID int64, kind models.RecordKind, from, to models.Date) ([]models.LedgerRecord, error)
	// UpdateRecord replaces every mutable field of the record matching
	// record.ID, record.Kind and record.OwnerID.
	UpdateRecord(ctx context.Context, record models.LedgerRecord) (models.LedgerRecord, error)
	// DeleteRecord removes the owner's record of kind with id.
	DeleteRecord(ctx context.Context, ownerID int64, kind models.RecordKind, id int64) error
}

// ErrorClassificator decides whether a failed database call may be retried.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
