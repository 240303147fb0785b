// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	Email     string `json:"email" validate:"required,email,max=255"`
	FirstName string `json:"first_name" validate:"required,alphanumunicode,max=254"`
	LastName  string `json:"last_name" validate:"required,alphanumunicode,max=254"`
	Password  string `json:"password" validate:"required,min=8,max=68"`
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email,min=6,max=255"`
	Password string `json:"password" validate:"required,max=68"`
}

// RefreshRequest is the body of POST /auth/token/refresh.
type RefreshRequest struct {
	Refresh string `json:"refresh" validate:"required"`
}

// PasswordResetRequest is the body of POST /auth/password-reset.
type PasswordResetRequest struct {
	Email string `json:"email" validate:"required,email,min=6,max=200"`
}

// SetNewPasswordRequest is the body of PATCH /auth/password-reset-complete.
type SetNewPasswordRequest struct {
	Password string `json:"password" validate:"required,min=6,max=68"`
	Token    string `json:"token" validate:"required"`
	UIDB64   string `json:"uidb64" validate:"required"`
}
