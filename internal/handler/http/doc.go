// Package http implements the REST transport of go-ledger.
//
// It wires the chi router, decodes requests, maps service errors onto HTTP
// statuses and JSON error bodies, and carries the cross-cutting middleware:
// trace ids, access logging and bearer-token authentication.
package http
