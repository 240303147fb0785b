// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package service holds the business logic of go-ledger: the token
// schemes, the registration/verification/login/password-reset workflow,
// owner-scoped ledger CRUD and the per-category summaries.
package service

import (
	"context"

	"github.com/MKhiriev/go-ledger/models"
)

// TokenService issues and checks every signed token the server hands out.
type TokenService interface {
	// IssuePair mints a refresh token and an access token for user.
	IssuePair(ctx context.Context, user models.User) (models.TokenPair, error)
	// ParseAccess and ParseRefresh verify a token of the matching type.
	// They fail with ErrTokenIsExpired or ErrTokenIsInvalid. ParseAccess
	// fails with ErrAccountDisabled when the owner is deactivated.
	ParseAccess(ctx context.Context, token string) (models.Token, error)
	ParseRefresh(ctx context.Context, token string) (models.Token, error)
	// Refresh returns a new access token for a valid refresh token.
	Refresh(ctx context.Context, refreshToken string) (string, error)

	IssueEmailVerification(ctx context.Context, user models.User) (string, error)
	// ParseEmailVerification reports ErrTokenIsExpired only for a token that
	// is correctly signed but past its lifetime.
	ParseEmailVerification(ctx context.Context, token string) (models.Token, error)

	IssuePasswordReset(ctx context.Context, user models.User) (models.PasswordResetLink, error)
	// CheckPasswordReset returns the user the link was issued for, or
	// ErrInvalidResetLink.
	CheckPasswordReset(ctx context.Context, link models.PasswordResetLink) (models.User, error)
}

// AuthService drives the account lifecycle.
type AuthService interface {
	Register(ctx context.Context, req models.RegisterRequest) (models.User, error)
	VerifyEmail(ctx context.Context, token string) error
	Login(ctx context.Context, req models.LoginRequest) (models.LoginResponse, error)
	RefreshToken(ctx context.Context, req models.RefreshRequest) (string, error)
	// RequestPasswordReset succeeds for any well-formed email so callers
	// cannot probe which accounts exist.
	RequestPasswordReset(ctx context.Context, req models.PasswordResetRequest) error
	ConfirmResetTokenValid(ctx context.Context, link models.PasswordResetLink) error
	SetNewPassword(ctx context.Context, req models.SetNewPasswordRequest) error
}

// LedgerService is CRUD over one user's expense or income records.
// Every method takes the acting user explicitly.
type LedgerService interface {
	Create(ctx context.Context, ownerID int64, record models.LedgerRecord) (models.LedgerRecord, error)
	List(ctx context.Context, ownerID int64, kind models.RecordKind) ([]models.LedgerRecord, error)
	Get(ctx context.Context, ownerID int64, kind models.RecordKind, id int64) (models.LedgerRecord, error)
	// Update replaces all mutable fields.
	Update(ctx context.Context, ownerID int64, kind models.RecordKind, id int64, record models.LedgerRecord) (models.LedgerRecord, error)
	// Patch writes only the fields present in patch.
	Patch(ctx context.Context, ownerID int64, kind models.RecordKind, id int64, patch models.RecordPatch) (models.LedgerRecord, error)
	Delete(ctx context.Context, ownerID int64, kind models.RecordKind, id int64) error
}

// StatsService aggregates a user's records over the trailing year.
type StatsService interface {
	ExpenseCategorySummary(ctx context.Context, userID int64) (models.CategorySummary, error)
	IncomeSourceSummary(ctx context.Context, userID int64) (models.CategorySummary, error)
}

// AppInfoService exposes build metadata of the running binary.
type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
	GetBuildInfo(ctx context.Context) models.AppBuildInfo
}
