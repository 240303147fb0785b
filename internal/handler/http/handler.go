package http

import (
	"time"

	"github.com/MKhiriev/go-ledger/internal/config"
	"github.com/MKhiriev/go-ledger/internal/logger"
	"github.com/MKhiriev/go-ledger/internal/service"
)

type Handler struct {
	services *service.Services

	requestTimeout time.Duration

	logger *logger.Logger
}

func NewHandler(services *service.Services, cfg config.Server, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:       services,
		requestTimeout: cfg.RequestTimeout,
		logger:         logger,
	}
}
