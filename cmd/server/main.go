package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-ledger/internal/config"
	"github.com/MKhiriev/go-ledger/internal/handler"
	"github.com/MKhiriev/go-ledger/internal/logger"
	"github.com/MKhiriev/go-ledger/internal/mail"
	"github.com/MKhiriev/go-ledger/internal/server"
	"github.com/MKhiriev/go-ledger/internal/service"
	"github.com/MKhiriev/go-ledger/internal/store"
	"github.com/MKhiriev/go-ledger/internal/workers"
	"github.com/MKhiriev/go-ledger/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("go-ledger-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	if err = logger.SetLevel(cfg.App.LogLevel); err != nil {
		log.Fatal().Err(err).Msg("error setting log level")
	}

	log.Debug().Any("server", cfg.Server).Any("workers", cfg.Workers).Msg("received configs")

	ctx := context.Background()

	db, err := store.NewConnectPostgres(ctx, cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to database")
	}
	defer db.Close()

	if err = db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("error applying migrations")
	}

	storages := store.NewStorages(db, log)

	sender, err := mail.NewSender(cfg.Mail, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating mail sender")
	}
	dispatcher := mail.NewDispatcher(sender, cfg.Mail, cfg.Workers.MailWorkers, log)

	services, err := service.NewServices(storages, dispatcher, appBuildInfo(cfg.App), *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handlers, err := handler.NewHandlers(services, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, workers.NewWorkers(dispatcher), cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	if err = srv.RunServer(ctx); err != nil {
		log.Error().Err(err).Msg("server stopped with error")
	}
}

// appBuildInfo prefers the version linked into the binary and falls back
// to APP_VERSION for builds without ldflags.
func appBuildInfo(cfg config.App) models.AppBuildInfo {
	version := buildVersion
	if version == "N/A" && cfg.Version != "" {
		version = cfg.Version
	}
	return models.NewAppBuildInfo(version, buildDate, buildCommit)
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
