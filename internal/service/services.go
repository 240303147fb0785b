package service

import (
	"fmt"

	"github.com/MKhiriev/go-ledger/internal/config"
	"github.com/MKhiriev/go-ledger/internal/logger"
	"github.com/MKhiriev/go-ledger/internal/mail"
	"github.com/MKhiriev/go-ledger/internal/store"
	"github.com/MKhiriev/go-ledger/internal/validators"
	"github.com/MKhiriev/go-ledger/models"
)

type Services struct {
	AuthService    AuthService
	TokenService   TokenService
	LedgerService  LedgerService
	StatsService   StatsService
	AppInfoService AppInfoService
}

func NewServices(
	storages *store.Storages,
	mailQueue mail.Queue,
	buildInfo models.AppBuildInfo,
	cfg config.StructuredConfig,
	logger *logger.Logger,
) (*Services, error) {
	tokenService := NewTokenService(storages.UserRepository, cfg.App, logger)

	authService, err := NewAuthService(storages.UserRepository, tokenService, mailQueue, validators.NewRequestValidator(), cfg.App, logger)
	if err != nil {
		return nil, fmt.Errorf("error creating auth service: %w", err)
	}

	appInfoService, err := NewAppInfoService(buildInfo, logger)
	if err != nil {
		return nil, fmt.Errorf("error creating app info service: %w", err)
	}

	return &Services{
		AuthService:    authService,
		TokenService:   tokenService,
		LedgerService:  NewLedgerService(storages.LedgerRepository, validators.NewLedgerValidator(cfg.App.ExpenseCategories), logger),
		StatsService:   NewStatsService(storages.LedgerRepository, logger),
		AppInfoService: appInfoService,
	}, nil
}
