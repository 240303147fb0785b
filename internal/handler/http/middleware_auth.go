package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-ledger/internal/logger"
	"github.com/MKhiriev/go-ledger/internal/service"
	"github.com/MKhiriev/go-ledger/internal/utils"
)

// auth is an HTTP middleware that enforces JWT-based authentication.
//
// It extracts the bearer token from the "Authorization" header, verifies it
// as an access token via [service.TokenService.ParseAccess] and stores the
// user's ID in the request context with [utils.WithUserID] before
// delegating to the next handler.
//
// Requests are rejected with 401 and a JSON error body when the header is
// missing or malformed, when the token does not verify as an access token,
// or when its owner was deleted or deactivated.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			writeError(w, r, ErrEmptyAuthorizationHeader)
			return
		}

		tokenString, err := utils.ParseBearerToken(authHeader)
		if err != nil {
			writeError(w, r, fmt.Errorf("%w: %w", ErrInvalidAuthorizationHeader, err))
			return
		}

		ctx := r.Context()
		token, err := h.services.TokenService.ParseAccess(ctx, tokenString)
		if err != nil {
			if errors.Is(err, service.ErrTokenIsExpired) {
				log.Debug().Msg("access token expired")
			}
			writeError(w, r, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(utils.WithUserID(ctx, token.UserID)))
	})
}
