// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package mail delivers outbound email.
//
// A Sender talks to one transport (log output, a Postmark-compatible HTTP
// API or a RabbitMQ exchange). The Dispatcher puts a bounded in-memory
// queue and a pool of workers in front of a Sender so request handlers
// can hand messages off without waiting for delivery.
package mail

//go:generate mockgen -source=interfaces.go -destination=../mock/mail_mock.go -package=mock

import "context"

// Sender delivers a single message synchronously.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// Queue accepts messages for asynchronous delivery.
//
// Dispatch must not block and must not report delivery problems to the
// caller: a message that cannot be queued is dropped and logged.
type Queue interface {
	Dispatch(ctx context.Context, msg Message)
}
