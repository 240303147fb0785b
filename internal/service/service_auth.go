package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-ledger/internal/config"
	"github.com/MKhiriev/go-ledger/internal/logger"
	"github.com/MKhiriev/go-ledger/internal/mail"
	"github.com/MKhiriev/go-ledger/internal/store"
	"github.com/MKhiriev/go-ledger/internal/validators"
	"github.com/MKhiriev/go-ledger/models"
	"golang.org/x/crypto/bcrypt"
)

// authService is the concrete implementation of AuthService.
// It handles registration, email verification, login and password reset
// using a UserRepository for persistence, bcrypt for password hashes and
// a TokenService for every signed artifact.
type authService struct {
	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	tokenService TokenService

	// mailQueue receives verification and reset emails. Delivery problems
	// never fail the calling operation.
	mailQueue mail.Queue

	validator validators.Validator

	// hashCost is the bcrypt cost of newly created hashes.
	hashCost int

	// dummyHash is compared against when the email is unknown, so that a
	// failed login costs one bcrypt comparison either way.
	dummyHash []byte

	// publicURL is the base of links placed in emails.
	publicURL string

	now func() time.Time

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs a new AuthService.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewAuthService(
	userRepository store.UserRepository,
	tokenService TokenService,
	mailQueue mail.Queue,
	validator validators.Validator,
	cfg config.App,
	logger *logger.Logger,
) (AuthService, error) {
	cost := cfg.PasswordHashCost
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}

	dummyHash, err := bcrypt.GenerateFromPassword([]byte("go-ledger-dummy-password"), cost)
	if err != nil {
		return nil, fmt.Errorf("error preparing dummy password hash: %w", err)
	}

	return &authService{
		userRepository: userRepository,
		tokenService:   tokenService,
		mailQueue:      mailQueue,
		validator:      validator,
		hashCost:       cost,
		dummyHash:      dummyHash,
		publicURL:      cfg.PublicURL,
		now:            time.Now,
		logger:         logger,
	}, nil
}

// Register creates an unverified account and mails a verification link.
//
// Returns the persisted user or:
//   - ErrInvalidDataProvided joined with the *validators.ValidationError.
//   - A wrapped store.ErrEmailAlreadyExists for a taken email.
func (a *authService) Register(ctx context.Context, req models.RegisterRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	if err := a.validate(ctx, req); err != nil {
		log.Debug().Err(err).Str("email", req.Email).Msg("invalid registration data")
		return models.User{}, err
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), a.hashCost)
	if err != nil {
		log.Err(err).Msg("error hashing password")
		return models.User{}, fmt.Errorf("error hashing password: %w", err)
	}

	user, err := a.userRepository.CreateUser(ctx, models.User{
		Email:        req.Email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PasswordHash: string(passwordHash),
		IsActive:     true,
	})
	if err != nil {
		log.Err(err).Str("email", req.Email).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	token, err := a.tokenService.IssueEmailVerification(ctx, user)
	if err != nil {
		// the account exists; the user can ask for a password reset later
		log.Err(err).Int64("user_id", user.UserID).Msg("error issuing email verification token")
		return user, nil
	}

	a.mailQueue.Dispatch(ctx, verificationMessage(user, emailVerifyLink(a.publicURL, token)))
	log.Info().Int64("user_id", user.UserID).Msg("user registered")

	return user, nil
}

// VerifyEmail marks the token's user as verified.
//
// Returns ErrTokenIsExpired, ErrTokenIsInvalid (also for a token naming a
// user that does not exist) or ErrAlreadyVerified.
func (a *authService) VerifyEmail(ctx context.Context, token string) error {
	log := logger.FromContext(ctx)

	parsed, err := a.tokenService.ParseEmailVerification(ctx, token)
	if err != nil {
		log.Debug().Err(err).Msg("email verification token rejected")
		return err
	}

	if _, err = a.userRepository.FindUserByID(ctx, parsed.UserID); err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			log.Debug().Int64("user_id", parsed.UserID).Msg("email verification token for unknown user")
			return ErrTokenIsInvalid
		}
		log.Err(err).Int64("user_id", parsed.UserID).Msg("user search by id failed")
		return fmt.Errorf("user search by id failed: %w", err)
	}

	changed, err := a.userRepository.VerifyUser(ctx, parsed.UserID)
	if err != nil {
		log.Err(err).Int64("user_id", parsed.UserID).Msg("error verifying user")
		return fmt.Errorf("error verifying user: %w", err)
	}
	if !changed {
		return ErrAlreadyVerified
	}

	log.Info().Int64("user_id", parsed.UserID).Msg("email verified")
	return nil
}

// Login authenticates an existing user and issues a token pair.
//
// Returns ErrInvalidCredentials for an unknown email or a wrong password,
// then ErrAccountDisabled and ErrEmailNotVerified in that order.
func (a *authService) Login(ctx context.Context, req models.LoginRequest) (models.LoginResponse, error) {
	log := logger.FromContext(ctx)

	if err := a.validate(ctx, req); err != nil {
		log.Debug().Err(err).Msg("invalid login data")
		return models.LoginResponse{}, err
	}

	user, err := a.userRepository.FindUserByEmail(ctx, req.Email)
	if err != nil {
		if !errors.Is(err, store.ErrNoUserWasFound) {
			log.Err(err).Msg("user search by email failed")
			return models.LoginResponse{}, fmt.Errorf("user search by email failed: %w", err)
		}
		_ = bcrypt.CompareHashAndPassword(a.dummyHash, []byte(req.Password))
		return models.LoginResponse{}, ErrInvalidCredentials
	}

	if err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		log.Debug().Int64("user_id", user.UserID).Msg("wrong password")
		return models.LoginResponse{}, ErrInvalidCredentials
	}

	if !user.IsActive {
		return models.LoginResponse{}, ErrAccountDisabled
	}
	if !user.IsVerified {
		return models.LoginResponse{}, ErrEmailNotVerified
	}

	if err = a.userRepository.UpdateLastLogin(ctx, user.UserID, a.now().UTC()); err != nil {
		log.Err(err).Int64("user_id", user.UserID).Msg("error updating last login")
		return models.LoginResponse{}, fmt.Errorf("error updating last login: %w", err)
	}

	tokens, err := a.tokenService.IssuePair(ctx, user)
	if err != nil {
		log.Err(err).Int64("user_id", user.UserID).Msg("error issuing tokens")
		return models.LoginResponse{}, err
	}

	return models.LoginResponse{
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Tokens:    tokens,
	}, nil
}

func (a *authService) RefreshToken(ctx context.Context, req models.RefreshRequest) (string, error) {
	if err := a.validate(ctx, req); err != nil {
		return "", err
	}
	return a.tokenService.Refresh(ctx, req.Refresh)
}

// RequestPasswordReset mails a reset link if an account with the email
// exists. The result does not depend on whether it does.
func (a *authService) RequestPasswordReset(ctx context.Context, req models.PasswordResetRequest) error {
	log := logger.FromContext(ctx)

	if err := a.validate(ctx, req); err != nil {
		return err
	}

	user, err := a.userRepository.FindUserByEmail(ctx, req.Email)
	if err != nil {
		if !errors.Is(err, store.ErrNoUserWasFound) {
			log.Err(err).Msg("user search by email failed")
		}
		return nil
	}

	link, err := a.tokenService.IssuePasswordReset(ctx, user)
	if err != nil {
		log.Err(err).Int64("user_id", user.UserID).Msg("error issuing password reset token")
		return nil
	}

	a.mailQueue.Dispatch(ctx, passwordResetMessage(user, passwordResetLink(a.publicURL, link)))
	log.Info().Int64("user_id", user.UserID).Msg("password reset requested")

	return nil
}

func (a *authService) ConfirmResetTokenValid(ctx context.Context, link models.PasswordResetLink) error {
	_, err := a.tokenService.CheckPasswordReset(ctx, link)
	return err
}

// SetNewPassword checks the reset link again and stores the new password.
// Using the link changes the password hash, which invalidates the link.
func (a *authService) SetNewPassword(ctx context.Context, req models.SetNewPasswordRequest) error {
	log := logger.FromContext(ctx)

	if err := a.validate(ctx, req); err != nil {
		return err
	}

	user, err := a.tokenService.CheckPasswordReset(ctx, models.PasswordResetLink{UIDB64: req.UIDB64, Token: req.Token})
	if err != nil {
		return ErrInvalidResetLink
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), a.hashCost)
	if err != nil {
		log.Err(err).Msg("error hashing password")
		return fmt.Errorf("error hashing password: %w", err)
	}

	if err = a.userRepository.SetPassword(ctx, user.UserID, string(passwordHash)); err != nil {
		log.Err(err).Int64("user_id", user.UserID).Msg("error setting new password")
		return fmt.Errorf("error setting new password: %w", err)
	}

	log.Info().Int64("user_id", user.UserID).Msg("password reset")
	return nil
}

func (a *authService) validate(ctx context.Context, req any) error {
	if err := a.validator.Validate(ctx, req); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	return nil
}
