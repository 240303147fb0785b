// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// ErrorResponse is the JSON body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// EmailVerifyResponse is returned by GET /auth/email-verify on success and
// on the already-verified conflict.
type EmailVerifyResponse struct {
	Email string `json:"email"`
}

// LoginResponse is the body of a successful login.
type LoginResponse struct {
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Tokens    TokenPair `json:"tokens"`
}

// RefreshResponse carries a freshly minted access token.
type RefreshResponse struct {
	Access string `json:"access"`
}

// SuccessResponse acknowledges a password-reset request.
type SuccessResponse struct {
	Success string `json:"success"`
}

// ResetTokenCheckResponse confirms a password-reset link is still valid.
type ResetTokenCheckResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	UIDB64  string `json:"uidb64"`
	Token   string `json:"token"`
}

// MessageResponse is a generic success body with a message.
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
