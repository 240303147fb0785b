package server

import "context"

// Server defines the lifecycle contract of the process.
type Server interface {
	// RunServer serves until ctx is cancelled, a stop signal arrives or a
	// component fails, then shuts everything down. It returns the first
	// component error, or nil on a clean stop.
	RunServer(ctx context.Context) error

	// Shutdown gracefully stops the HTTP server within ctx's deadline.
	Shutdown(ctx context.Context) error
}
