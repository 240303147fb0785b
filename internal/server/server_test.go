package server

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/MKhiriev/go-ledger/internal/config"
	"github.com/MKhiriev/go-ledger/internal/handler"
	"github.com/MKhiriev/go-ledger/internal/logger"
	"github.com/MKhiriev/go-ledger/internal/service"
	"github.com/MKhiriev/go-ledger/internal/workers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type workerFunc func(ctx context.Context) error

func (f workerFunc) Run(ctx context.Context) error {
	return f(ctx)
}

func testServerConfig() config.Server {
	return config.Server{
		HTTPAddress:     "127.0.0.1:0",
		RequestTimeout:  time.Second,
		ShutdownTimeout: time.Second,
	}
}

func newTestServer(t *testing.T, background *workers.Workers) Server {
	t.Helper()
	cfg := testServerConfig()

	handlers, err := handler.NewHandlers(&service.Services{}, cfg, logger.Nop())
	require.NoError(t, err)

	srv, err := NewServer(handlers, background, cfg, logger.Nop())
	require.NoError(t, err)
	return srv
}

func TestNewServer_NoHandlers(t *testing.T) {
	srv, err := NewServer(nil, nil, testServerConfig(), logger.Nop())

	assert.ErrorIs(t, err, errNoServersAreCreated)
	assert.Nil(t, srv)
}

func TestNewServer_NoAddress(t *testing.T) {
	handlers, err := handler.NewHandlers(&service.Services{}, testServerConfig(), logger.Nop())
	require.NoError(t, err)

	srv, err := NewServer(handlers, nil, config.Server{}, logger.Nop())

	assert.ErrorIs(t, err, errNoServersAreCreated)
	assert.Nil(t, srv)
}

func TestRunServer_StopsOnContextCancel(t *testing.T) {
	stopped := make(chan struct{})
	background := workers.NewWorkers(workerFunc(func(ctx context.Context) error {
		<-ctx.Done()
		close(stopped)
		return nil
	}))
	srv := newTestServer(t, background)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.RunServer(ctx) }()

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
	<-stopped
}

func TestRunServer_WorkerFailureStopsServer(t *testing.T) {
	errWorker := errors.New("queue broker unreachable")
	background := workers.NewWorkers(workerFunc(func(context.Context) error {
		return errWorker
	}))
	srv := newTestServer(t, background)

	done := make(chan error, 1)
	go func() { done <- srv.RunServer(context.Background()) }()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, errWorker)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
