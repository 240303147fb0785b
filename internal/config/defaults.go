package config

import "time"

const (
	defaultLogLevel             = "debug"
	defaultPasswordHashCost     = 12
	defaultTokenIssuer          = "go-ledger"
	defaultAccessTokenDuration  = 5 * time.Minute
	defaultRefreshTokenDuration = 24 * time.Hour
	defaultEmailTokenDuration   = 24 * time.Hour
	defaultPasswordResetTimeout = 72 * time.Hour
	defaultPublicURL            = "http://localhost:8080"
	defaultHTTPAddress          = "localhost:8080"
	defaultRequestTimeout       = 30 * time.Second
	defaultShutdownTimeout      = 10 * time.Second
	defaultMaxOpenConns         = 10
	defaultMaxIdleConns         = 4
	defaultMailFrom             = "no-reply@localhost"
	defaultMailTimeout          = 10 * time.Second
	defaultMailQueueSize        = 128
	defaultMailWorkers          = 2
)

// defaults returns the lowest-priority configuration layer.
func defaults() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			LogLevel:             defaultLogLevel,
			PasswordHashCost:     defaultPasswordHashCost,
			TokenIssuer:          defaultTokenIssuer,
			AccessTokenDuration:  defaultAccessTokenDuration,
			RefreshTokenDuration: defaultRefreshTokenDuration,
			EmailTokenDuration:   defaultEmailTokenDuration,
			PasswordResetTimeout: defaultPasswordResetTimeout,
			PublicURL:            defaultPublicURL,
		},
		Storage: Storage{
			DB: DB{
				MaxOpenConns: defaultMaxOpenConns,
				MaxIdleConns: defaultMaxIdleConns,
			},
		},
		Server: Server{
			HTTPAddress:     defaultHTTPAddress,
			RequestTimeout:  defaultRequestTimeout,
			ShutdownTimeout: defaultShutdownTimeout,
		},
		Mail: Mail{
			Driver:    MailDriverLog,
			From:      defaultMailFrom,
			Timeout:   defaultMailTimeout,
			QueueSize: defaultMailQueueSize,
		},
		Workers: Workers{
			MailWorkers: defaultMailWorkers,
		},
	}
}
