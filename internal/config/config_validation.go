// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"net/url"
)

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
func (cfg *StructuredConfig) validate() error {
	if cfg.App.TokenSignKey == "" || cfg.App.TokenIssuer == "" {
		return fmt.Errorf("%w: token sign key and issuer are required", ErrInvalidAppConfigs)
	}

	if cfg.App.AccessTokenDuration <= 0 || cfg.App.RefreshTokenDuration <= 0 ||
		cfg.App.EmailTokenDuration <= 0 || cfg.App.PasswordResetTimeout <= 0 {
		return fmt.Errorf("%w: token lifetimes must be positive", ErrInvalidAppConfigs)
	}

	if u, err := url.Parse(cfg.App.PublicURL); err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: public url must be absolute", ErrInvalidAppConfigs)
	}

	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Server.HTTPAddress == "" || cfg.Server.RequestTimeout <= 0 {
		return ErrInvalidServerConfigs
	}

	if err := cfg.Mail.validate(); err != nil {
		return err
	}

	if cfg.Workers.MailWorkers < 1 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}

func (m Mail) validate() error {
	if m.QueueSize < 1 || m.From == "" {
		return ErrInvalidMailConfigs
	}

	switch m.Driver {
	case MailDriverLog:
		return nil
	case MailDriverHTTP:
		if m.APIURL == "" || m.APIToken == "" {
			return fmt.Errorf("%w: http driver needs api url and token", ErrInvalidMailConfigs)
		}
		return nil
	case MailDriverAMQP:
		if m.AMQPURL == "" || m.AMQPExchange == "" || m.AMQPQueue == "" {
			return fmt.Errorf("%w: amqp driver needs url, exchange and queue", ErrInvalidMailConfigs)
		}
		return nil
	default:
		return fmt.Errorf("%w: unknown driver %q", ErrInvalidMailConfigs, m.Driver)
	}
}
