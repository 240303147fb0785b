// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// User represents an account of the finance tracker.
// Credential and status fields are never exposed via JSON; only the
// public identity (email and names) is serialized.
type User struct {
	// UserID is the internal unique identifier of the user.
	UserID int64 `json:"-"`

	// Email is the unique login identifier. It is compared case-sensitively,
	// exactly as stored.
	Email string `json:"email"`

	// FirstName and LastName are alphanumeric display names.
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`

	// PasswordHash is the bcrypt hash of the user's password.
	// The plaintext password never reaches the storage layer.
	PasswordHash string `json:"-"`

	// IsVerified is flipped to true by a successful email verification.
	// Unverified users cannot log in.
	IsVerified bool `json:"-"`

	// IsActive is false for accounts disabled by an administrator.
	IsActive bool `json:"-"`

	// IsStaff marks administrative accounts.
	IsStaff bool `json:"-"`

	// DateJoined is the registration timestamp.
	DateJoined time.Time `json:"-"`

	// LastLogin is stamped on every successful login. It participates in
	// the password-reset token signature, so logging in invalidates
	// outstanding reset links.
	LastLogin *time.Time `json:"-"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}
