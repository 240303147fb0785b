package server

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/MKhiriev/go-ledger/internal/config"
	"github.com/MKhiriev/go-ledger/internal/handler"
	"github.com/MKhiriev/go-ledger/internal/logger"
	"github.com/MKhiriev/go-ledger/internal/workers"
	"golang.org/x/sync/errgroup"
)

type server struct {
	httpServer      *httpServer
	workers         *workers.Workers
	shutdownTimeout time.Duration
	logger          *logger.Logger
}

// NewServer builds the process server. background may be nil when there
// are no workers to run.
func NewServer(handlers *handler.Handlers, background *workers.Workers, cfg config.Server, logger *logger.Logger) (Server, error) {
	logger.Info().Msg("creating new server...")

	if handlers == nil || handlers.HTTP == nil || cfg.HTTPAddress == "" {
		return nil, errNoServersAreCreated
	}

	return &server{
		httpServer:      newHTTPServer(handlers.HTTP.Init(), cfg, logger),
		workers:         background,
		shutdownTimeout: cfg.ShutdownTimeout,
		logger:          logger,
	}, nil
}

func (s *server) RunServer(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx,
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(s.httpServer.RunServer)
	if s.workers != nil {
		g.Go(func() error {
			return s.workers.Run(gctx)
		})
	}

	// stop the HTTP server once a signal arrives or a component fails
	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := s.shutdownContext()
		defer cancel()
		if err := s.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("error shutting down HTTP server: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		s.logger.Error().Err(err).Msg("server stopped with error")
		return err
	}

	s.logger.Info().Msg("server shutdown gracefully")
	return nil
}

func (s *server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *server) shutdownContext() (context.Context, context.CancelFunc) {
	if s.shutdownTimeout <= 0 {
		return context.WithCancel(context.Background())
	}
	return context.WithTimeout(context.Background(), s.shutdownTimeout)
}
