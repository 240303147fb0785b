package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-ledger/internal/logger"
	"github.com/MKhiriev/go-ledger/internal/service"
	"github.com/MKhiriev/go-ledger/internal/store"
	"github.com/MKhiriev/go-ledger/internal/utils"
	"github.com/MKhiriev/go-ledger/internal/validators"
	"github.com/MKhiriev/go-ledger/models"
)

var errorStatusMap = map[error]int{
	ErrInvalidJSON:                 http.StatusBadRequest,
	ErrInvalidRecordID:             http.StatusNotFound,
	ErrEmptyAuthorizationHeader:    http.StatusUnauthorized,
	ErrInvalidAuthorizationHeader:  http.StatusUnauthorized,
	service.ErrInvalidDataProvided: http.StatusBadRequest,
	service.ErrInvalidCredentials:  http.StatusUnauthorized,
	service.ErrAccountDisabled:     http.StatusUnauthorized,
	service.ErrEmailNotVerified:    http.StatusUnauthorized,
	service.ErrTokenIsExpired:      http.StatusUnauthorized,
	service.ErrTokenIsInvalid:      http.StatusUnauthorized,
	service.ErrInvalidResetLink:    http.StatusUnauthorized,
	service.ErrAlreadyVerified:     http.StatusConflict,
	service.ErrPermissionDenied:    http.StatusForbidden,
	service.ErrTokenCreationFailed: http.StatusInternalServerError,
	validators.ErrInvalidInput:     http.StatusBadRequest,

	store.ErrEmailAlreadyExists: http.StatusBadRequest,
	store.ErrNoUserWasFound:     http.StatusNotFound,
	store.ErrRecordNotFound:     http.StatusNotFound,

	store.ErrBuildingSQLQuery:   http.StatusInternalServerError,
	store.ErrExecutingQuery:     http.StatusInternalServerError,
	store.ErrExecutingStatement: http.StatusInternalServerError,
	store.ErrScanningRow:        http.StatusInternalServerError,
	store.ErrScanningRows:       http.StatusInternalServerError,
}

// errorMessages holds the client-facing text for errors whose own message
// is not meant for the API.
var errorMessages = map[error]string{
	ErrInvalidJSON:                "Invalid JSON was passed",
	ErrInvalidRecordID:            "Not found.",
	ErrEmptyAuthorizationHeader:   "Authentication credentials were not provided.",
	ErrInvalidAuthorizationHeader: "Authentication credentials were not provided.",
	service.ErrInvalidCredentials: "Invalid credentials, try again",
	service.ErrAccountDisabled:    "Account disabled, contact admin",
	service.ErrEmailNotVerified:   "Email is not verified",
	service.ErrTokenIsExpired:     "Token is expired",
	service.ErrTokenIsInvalid:     "Token is invalid or expired",
	service.ErrInvalidResetLink:   "The reset link is invalid",
	service.ErrPermissionDenied:   "You do not have permission to perform this action.",
	store.ErrEmailAlreadyExists:   "user with this email already exists",
	store.ErrRecordNotFound:       "Not found.",
	store.ErrNoUserWasFound:       "Not found.",
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// messageFromError picks the body text for err. Validation failures carry
// their own client-safe message; anything unmapped is reported by status text.
func messageFromError(err error, status int) string {
	var validationErr *validators.ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Message
	}
	for target, message := range errorMessages {
		if errors.Is(err, target) {
			return message
		}
	}
	return http.StatusText(status)
}

// writeError logs err and answers with {"error": "<message>"}.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFromError(err)
	log := logger.FromRequest(r)
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Int("status", status).Msg("request failed")
	} else {
		log.Debug().Err(err).Int("status", status).Msg("request rejected")
	}

	utils.WriteJSON(w, models.ErrorResponse{Error: messageFromError(err, status)}, status)
}
