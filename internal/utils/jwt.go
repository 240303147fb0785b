package utils

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/MKhiriev/go-ledger/models"
	"github.com/golang-jwt/jwt/v5"
)

// ErrUnexpectedTokenType is returned by ValidateAndParseJWTToken when the
// token verifies but was issued for a different purpose.
var ErrUnexpectedTokenType = errors.New("unexpected token type")

// GenerateJWTToken creates a signed HMAC-SHA256 JWT token with the given parameters.
//
// The token includes the following claims:
//   - Issuer     (iss): identifies the service that issued the token
//   - Subject    (sub): the user ID encoded as a string
//   - ID         (jti): a fresh UUIDv7, so two tokens minted in the same second differ
//   - IssuedAt   (iat): the current time
//   - ExpiresAt  (exp): the current time plus tokenDuration
//   - token_type      : the purpose of the token
//
// All parameters are required. Returns an error if any of them are empty or zero.
//
// Example usage:
//
//	token, err := utils.GenerateJWTToken("go-ledger", 42, models.AccessToken, time.Hour, "secret")
func GenerateJWTToken(issuer string, userID int64, tokenType models.TokenType, tokenDuration time.Duration, signKey string) (models.Token, error) {
	if issuer == "" || tokenType == "" || tokenDuration <= 0 || signKey == "" {
		return models.Token{}, errors.New("invalid params for generating JWT Token")
	}

	now := time.Now()
	claims := models.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   strconv.FormatInt(userID, 10),
			ID:        NewUUIDGenerator().Generate(),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Type: tokenType,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(signKey))
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred during singing JWT token: %w", err)
	}

	return models.Token{Claims: claims, SignedString: tokenString, UserID: userID}, nil
}

// ValidateAndParseJWTToken validates the given JWT token string and extracts its claims.
//
// Validation includes:
//   - Signature verification using the provided sign key (HS256 only)
//   - Issuer (iss) claim check against the provided tokenIssuer
//   - Expiration (exp) claim check
//   - token_type claim check against expectedType
//   - Subject (sub) claim presence and conversion to int64 UserID
//
// Expiry is reported as an error wrapping jwt.ErrTokenExpired so that callers
// can tell an expired token apart from a forged or malformed one.
func ValidateAndParseJWTToken(tokenString, tokenSignKey, tokenIssuer string, expectedType models.TokenType) (models.Token, error) {
	claims := &models.TokenClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return []byte(tokenSignKey), nil
	}, jwt.WithIssuer(tokenIssuer), jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred validating and parsing token: %w", err)
	}

	if claims.Type != expectedType {
		return models.Token{}, fmt.Errorf("%w: got %q, want %q", ErrUnexpectedTokenType, claims.Type, expectedType)
	}

	token := models.Token{Claims: *claims, SignedString: tokenString}
	userID, err := token.GetUserID()
	if err != nil {
		return models.Token{}, err
	}
	token.UserID = userID

	return token, nil
}

// ParseBearerToken extracts the token from an "Authorization: Bearer <token>"
// header value.
func ParseBearerToken(authorizationHeader string) (string, error) {
	parts := strings.Split(strings.TrimSpace(authorizationHeader), " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", errors.New("invalid authorization header")
	}
	return parts[1], nil
}
