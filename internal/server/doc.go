// Package server wires and runs the go-ledger process.
//
// It runs the HTTP server and the background workers (the mail dispatcher)
// under one signal-cancelled lifecycle and shuts them down gracefully.
package server
