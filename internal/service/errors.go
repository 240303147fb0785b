package service

import "errors"

var (
	// ErrInvalidDataProvided wraps every input validation failure. The
	// concrete *validators.ValidationError is joined to it.
	ErrInvalidDataProvided = errors.New("invalid data provided")

	// ErrInvalidCredentials covers both an unknown email and a wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials, try again")
	ErrAccountDisabled    = errors.New("account disabled, contact admin")
	ErrEmailNotVerified   = errors.New("email is not verified")

	ErrTokenIsExpired      = errors.New("token is expired")
	ErrTokenIsInvalid      = errors.New("token is invalid")
	ErrTokenCreationFailed = errors.New("token creation failed")

	// ErrAlreadyVerified is returned by a second verification of the same account.
	ErrAlreadyVerified = errors.New("user is already verified")

	// ErrInvalidResetLink is the only error a password-reset check reports,
	// whatever the underlying cause.
	ErrInvalidResetLink = errors.New("the reset link is invalid")

	// ErrPermissionDenied is returned when a record exists but belongs to
	// another user.
	ErrPermissionDenied = errors.New("permission denied")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)
