package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-ledger/internal/logger"
	"github.com/MKhiriev/go-ledger/internal/service"
	"github.com/MKhiriev/go-ledger/internal/utils"
	"github.com/MKhiriev/go-ledger/models"
	"github.com/go-chi/chi/v5"
)

const (
	msgActivated          = "Successfully activated"
	msgAlreadyActivated   = "Already user activated"
	msgActivationExpired  = "Activation expired"
	msgInvalidToken       = "Invalid token"
	msgResetLinkSent      = "We have sent you a link to reset your password"
	msgCredentialsValid   = "Credentials Valid"
	msgResetTokenNotValid = "Token is not valid, please request a new one"
	msgPasswordResetDone  = "Password reset success"
)

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req models.RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	user, err := h.services.AuthService.Register(ctx, req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, user, http.StatusCreated)
}

// verifyEmail answers with its own bodies: an expired link is told apart
// from a malformed one, and a repeated activation is a 409 on the "email" key.
func (h *Handler) verifyEmail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	err := h.services.AuthService.VerifyEmail(ctx, r.URL.Query().Get("token"))
	switch {
	case err == nil:
		utils.WriteJSON(w, models.EmailVerifyResponse{Email: msgActivated}, http.StatusOK)
	case errors.Is(err, service.ErrAlreadyVerified):
		utils.WriteJSON(w, models.EmailVerifyResponse{Email: msgAlreadyActivated}, http.StatusConflict)
	case errors.Is(err, service.ErrTokenIsExpired):
		log.Debug().Err(err).Msg("activation link expired")
		utils.WriteJSON(w, models.ErrorResponse{Error: msgActivationExpired}, http.StatusBadRequest)
	case errors.Is(err, service.ErrTokenIsInvalid):
		log.Debug().Err(err).Msg("activation link rejected")
		utils.WriteJSON(w, models.ErrorResponse{Error: msgInvalidToken}, http.StatusBadRequest)
	default:
		writeError(w, r, err)
	}
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	resp, err := h.services.AuthService.Login(ctx, req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	log.Info().Str("email", resp.Email).Msg("user successfully logged in")
	utils.WriteJSON(w, resp, http.StatusOK)
}

func (h *Handler) refreshToken(w http.ResponseWriter, r *http.Request) {
	var req models.RefreshRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	access, err := h.services.AuthService.RefreshToken(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.RefreshResponse{Access: access}, http.StatusOK)
}

func (h *Handler) requestPasswordReset(w http.ResponseWriter, r *http.Request) {
	var req models.PasswordResetRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.services.AuthService.RequestPasswordReset(r.Context(), req); err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.SuccessResponse{Success: msgResetLinkSent}, http.StatusOK)
}

func (h *Handler) checkPasswordResetToken(w http.ResponseWriter, r *http.Request) {
	link := models.PasswordResetLink{
		UIDB64: chi.URLParam(r, "uidb64"),
		Token:  chi.URLParam(r, "token"),
	}

	if err := h.services.AuthService.ConfirmResetTokenValid(r.Context(), link); err != nil {
		logger.FromRequest(r).Debug().Err(err).Msg("password reset link rejected")
		utils.WriteJSON(w, models.ErrorResponse{Error: msgResetTokenNotValid}, http.StatusUnauthorized)
		return
	}

	utils.WriteJSON(w, models.ResetTokenCheckResponse{
		Success: true,
		Message: msgCredentialsValid,
		UIDB64:  link.UIDB64,
		Token:   link.Token,
	}, http.StatusOK)
}

func (h *Handler) setNewPassword(w http.ResponseWriter, r *http.Request) {
	var req models.SetNewPasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.services.AuthService.SetNewPassword(r.Context(), req); err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.MessageResponse{Success: true, Message: msgPasswordResetDone}, http.StatusOK)
}

func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidJSON, err)
	}
	return nil
}
