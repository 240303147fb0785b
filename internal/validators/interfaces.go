// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators provides abstractions for input validation and
// enforcement of business rules across the application.
//
// Implementations:
//   - RequestValidator: tag-driven checks of request DTOs (go-playground/validator).
//   - LedgerValidator: amount, label and date rules for ledger records.
//
// Every failure is a *ValidationError that unwraps to ErrInvalidInput, so
// callers can both match the class with errors.Is and show the message.
package validators

import "context"

// Validator defines a generic validation interface for arbitrary input values.
// Implementations may perform structural validation, semantic checks,
// cross-field rules.
type Validator interface {

	// Validate validates the provided input and optionally
	// restricts validation to specific named fields.
	Validate(context.Context, any, ...string) error
}
