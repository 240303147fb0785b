// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/MKhiriev/go-ledger/internal/config"
	"github.com/MKhiriev/go-ledger/internal/logger"
	"github.com/MKhiriev/go-ledger/internal/store"
	"github.com/MKhiriev/go-ledger/internal/utils"
	"github.com/MKhiriev/go-ledger/models"
	"github.com/golang-jwt/jwt/v5"
)

// tokenService implements TokenService.
//
// Access, refresh and email-verification tokens are HS256 JWTs signed with
// signKey. Password-reset tokens are not JWTs: they are an issue timestamp
// plus an HMAC over the account state (see resetTokenSignature), so any
// change to the password, the email or the last login invalidates them
// without server-side bookkeeping.
type tokenService struct {
	userRepository store.UserRepository

	signKey  string
	resetKey string
	issuer   string

	accessDuration  time.Duration
	refreshDuration time.Duration
	emailDuration   time.Duration
	resetTimeout    time.Duration

	now func() time.Time

	logger *logger.Logger
}

func NewTokenService(userRepository store.UserRepository, cfg config.App, logger *logger.Logger) TokenService {
	resetKey := cfg.PasswordResetKey
	if resetKey == "" {
		resetKey = cfg.TokenSignKey
	}

	return &tokenService{
		userRepository:  userRepository,
		signKey:         cfg.TokenSignKey,
		resetKey:        resetKey,
		issuer:          cfg.TokenIssuer,
		accessDuration:  cfg.AccessTokenDuration,
		refreshDuration: cfg.RefreshTokenDuration,
		emailDuration:   cfg.EmailTokenDuration,
		resetTimeout:    cfg.PasswordResetTimeout,
		now:             time.Now,
		logger:          logger,
	}
}

func (s *tokenService) IssuePair(ctx context.Context, user models.User) (models.TokenPair, error) {
	refresh, err := s.issue(user.UserID, models.RefreshToken, s.refreshDuration)
	if err != nil {
		return models.TokenPair{}, err
	}

	access, err := s.issue(user.UserID, models.AccessToken, s.accessDuration)
	if err != nil {
		return models.TokenPair{}, err
	}

	return models.TokenPair{Refresh: refresh, Access: access}, nil
}

// ParseAccess also loads the token's owner: a deleted account turns the
// token invalid and a deactivated one yields ErrAccountDisabled.
func (s *tokenService) ParseAccess(ctx context.Context, token string) (models.Token, error) {
	parsed, err := s.parse(token, models.AccessToken)
	if err != nil {
		return models.Token{}, err
	}

	user, err := s.userRepository.FindUserByID(ctx, parsed.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			return models.Token{}, fmt.Errorf("%w: user %d no longer exists", ErrTokenIsInvalid, parsed.UserID)
		}
		return models.Token{}, err
	}
	if !user.IsActive {
		return models.Token{}, ErrAccountDisabled
	}

	return parsed, nil
}

func (s *tokenService) ParseRefresh(ctx context.Context, token string) (models.Token, error) {
	return s.parse(token, models.RefreshToken)
}

func (s *tokenService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	parsed, err := s.parse(refreshToken, models.RefreshToken)
	if err != nil {
		logger.FromContext(ctx).Debug().Err(err).Msg("refresh token rejected")
		return "", err
	}

	return s.issue(parsed.UserID, models.AccessToken, s.accessDuration)
}

func (s *tokenService) IssueEmailVerification(ctx context.Context, user models.User) (string, error) {
	return s.issue(user.UserID, models.EmailVerificationToken, s.emailDuration)
}

func (s *tokenService) ParseEmailVerification(ctx context.Context, token string) (models.Token, error) {
	return s.parse(token, models.EmailVerificationToken)
}

func (s *tokenService) issue(userID int64, tokenType models.TokenType, duration time.Duration) (string, error) {
	token, err := utils.GenerateJWTToken(s.issuer, userID, tokenType, duration, s.signKey)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}
	return token.String(), nil
}

// parse maps every JWT failure onto the two service errors: expired for a
// token that verified but ran out, invalid for everything else.
func (s *tokenService) parse(tokenString string, tokenType models.TokenType) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, s.signKey, s.issuer, tokenType)
	switch {
	case err == nil:
		return token, nil
	case errors.Is(err, jwt.ErrTokenExpired):
		return models.Token{}, ErrTokenIsExpired
	default:
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenIsInvalid, err)
	}
}

// ── password reset ───────────────────────────────────────────────────────────

func (s *tokenService) IssuePasswordReset(ctx context.Context, user models.User) (models.PasswordResetLink, error) {
	if user.UserID <= 0 {
		return models.PasswordResetLink{}, fmt.Errorf("%w: user has no id", ErrTokenCreationFailed)
	}

	issuedAt := s.now().Unix()
	return models.PasswordResetLink{
		UIDB64: utils.EncodeUID(user.UserID),
		Token:  strconv.FormatInt(issuedAt, 36) + "-" + s.resetTokenSignature(user, issuedAt),
	}, nil
}

func (s *tokenService) CheckPasswordReset(ctx context.Context, link models.PasswordResetLink) (models.User, error) {
	log := logger.FromContext(ctx)

	user, err := s.checkPasswordReset(ctx, link)
	if err != nil {
		log.Debug().Err(err).Str("uidb64", link.UIDB64).Msg("password reset link rejected")
		return models.User{}, ErrInvalidResetLink
	}
	return user, nil
}

func (s *tokenService) checkPasswordReset(ctx context.Context, link models.PasswordResetLink) (models.User, error) {
	userID, err := utils.DecodeUID(link.UIDB64)
	if err != nil {
		return models.User{}, err
	}

	tsPart, signature, ok := strings.Cut(link.Token, "-")
	if !ok || tsPart == "" || signature == "" {
		return models.User{}, errors.New("malformed token")
	}

	issuedAt, err := strconv.ParseInt(tsPart, 36, 64)
	if err != nil {
		return models.User{}, fmt.Errorf("malformed timestamp: %w", err)
	}

	user, err := s.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		return models.User{}, err
	}

	if !utils.EqualHashes(s.resetTokenSignature(user, issuedAt), signature) {
		return models.User{}, errors.New("signature mismatch")
	}

	if age := s.now().Sub(time.Unix(issuedAt, 0)); age > s.resetTimeout {
		return models.User{}, fmt.Errorf("token issued %s ago", age.Truncate(time.Second))
	}

	return user, nil
}

// resetTokenSignatureData is the message a reset token signs. It binds the
// token to the user's current state. The last login is truncated to
// seconds since the database does not keep nanoseconds.
func resetTokenSignatureData(user models.User, issuedAt int64) string {
	lastLogin := ""
	if user.LastLogin != nil {
		lastLogin = user.LastLogin.UTC().Truncate(time.Second).Format(time.RFC3339)
	}

	return strings.Join([]string{
		string(models.PasswordResetToken),
		strconv.FormatInt(user.UserID, 10),
		user.PasswordHash,
		lastLogin,
		user.Email,
		strconv.FormatInt(issuedAt, 10),
	}, "|")
}

func (s *tokenService) resetTokenSignature(user models.User, issuedAt int64) string {
	return utils.HashString(resetTokenSignatureData(user, issuedAt), s.resetKey)
}
