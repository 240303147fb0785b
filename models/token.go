// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"fmt"
	"strconv"

	"github.com/golang-jwt/jwt/v5"
)

// TokenType is the purpose a signed token was issued for. A token is only
// accepted by the operation matching its type.
type TokenType string

const (
	AccessToken            TokenType = "access"
	RefreshToken           TokenType = "refresh"
	EmailVerificationToken TokenType = "email_verify"
	PasswordResetToken     TokenType = "password_reset"
)

// TokenClaims is the claim set carried by every JWT the service issues.
// It extends the RFC 7519 registered claims with the token purpose.
type TokenClaims struct {
	jwt.RegisteredClaims

	// Type is serialized as the private "token_type" claim.
	Type TokenType `json:"token_type"`
}

// Token wraps a parsed or freshly signed JWT.
//
// SignedString holds the compact serialized form (header.payload.signature)
// ready to be sent to the client. UserID is the parsed "sub" claim.
type Token struct {
	// Claims are the decoded claims of the token.
	Claims TokenClaims `json:"-"`

	// SignedString is the compact JWS representation of the token.
	SignedString string `json:"-"`

	// UserID is the owner identifier extracted from the "sub" claim.
	UserID int64 `json:"-"`
}

// GetUserID parses the "sub" claim as a base-10 int64.
func (t *Token) GetUserID() (int64, error) {
	userIDString, err := t.Claims.GetSubject()
	if err != nil {
		return 0, fmt.Errorf("error extracting UserID from token: %w", err)
	}

	userID, err := strconv.ParseInt(userIDString, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("error converting UserID from token to int64: %w", err)
	}

	return userID, nil
}

// String returns the compact JWS serialization of the token.
func (t *Token) String() string {
	return t.SignedString
}

// TokenPair is a refresh token together with the access token minted
// alongside it.
type TokenPair struct {
	Refresh string `json:"refresh"`
	Access  string `json:"access"`
}

// PasswordResetLink is the pair sent to the user in a reset email:
// UIDB64 identifies the account, Token proves the request.
type PasswordResetLink struct {
	UIDB64 string `json:"uidb64"`
	Token  string `json:"token"`
}
