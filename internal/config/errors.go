package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidStorageConfigs indicates invalid storage settings
	// (for example, empty DSN).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidAppConfigs indicates invalid application-level settings
	// (for example, missing token sign key).
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
	// ErrInvalidServerConfigs indicates a missing listen address or timeout.
	ErrInvalidServerConfigs = errors.New("invalid server configuration")
	// ErrInvalidMailConfigs indicates an unknown mail driver or a driver
	// missing its connection settings.
	ErrInvalidMailConfigs = errors.New("invalid mail configuration")
	// ErrInvalidWorkerConfigs indicates invalid background worker settings
	// (for example, zero mail workers).
	ErrInvalidWorkerConfigs = errors.New("invalid worker configuration")
)
