package http

import (
	"net/http"
	"strconv"

	"github.com/MKhiriev/go-ledger/internal/logger"
	"github.com/MKhiriev/go-ledger/internal/utils"
	"github.com/MKhiriev/go-ledger/models"
	"github.com/go-chi/chi/v5"
)

// The ledger handlers are built per record kind so /expenses and /income
// share one implementation. The acting user always comes from the auth
// middleware, never from the body.

func (h *Handler) listRecords(kind models.RecordKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID := h.mustUserID(r)

		records, err := h.services.LedgerService.List(r.Context(), ownerID, kind)
		if err != nil {
			writeError(w, r, err)
			return
		}
		if records == nil {
			records = []models.LedgerRecord{}
		}

		utils.WriteJSON(w, records, http.StatusOK)
	}
}

func (h *Handler) createRecord(kind models.RecordKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID := h.mustUserID(r)

		var payload models.RecordPayload
		if err := decodeJSON(r, &payload); err != nil {
			writeError(w, r, err)
			return
		}

		record, err := h.services.LedgerService.Create(r.Context(), ownerID, payload.Record(kind))
		if err != nil {
			writeError(w, r, err)
			return
		}

		logger.FromRequest(r).Info().Stringer("record", record).Msg("record created")
		utils.WriteJSON(w, record, http.StatusCreated)
	}
}

func (h *Handler) getRecord(kind models.RecordKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := recordID(r)
		if err != nil {
			writeError(w, r, err)
			return
		}

		record, err := h.services.LedgerService.Get(r.Context(), h.mustUserID(r), kind, id)
		if err != nil {
			writeError(w, r, err)
			return
		}

		utils.WriteJSON(w, record, http.StatusOK)
	}
}

func (h *Handler) updateRecord(kind models.RecordKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := recordID(r)
		if err != nil {
			writeError(w, r, err)
			return
		}

		var payload models.RecordPayload
		if err = decodeJSON(r, &payload); err != nil {
			writeError(w, r, err)
			return
		}

		record, err := h.services.LedgerService.Update(r.Context(), h.mustUserID(r), kind, id, payload.Record(kind))
		if err != nil {
			writeError(w, r, err)
			return
		}

		utils.WriteJSON(w, record, http.StatusOK)
	}
}

func (h *Handler) patchRecord(kind models.RecordKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := recordID(r)
		if err != nil {
			writeError(w, r, err)
			return
		}

		var payload models.RecordPayload
		if err = decodeJSON(r, &payload); err != nil {
			writeError(w, r, err)
			return
		}

		record, err := h.services.LedgerService.Patch(r.Context(), h.mustUserID(r), kind, id, payload.Patch(kind))
		if err != nil {
			writeError(w, r, err)
			return
		}

		utils.WriteJSON(w, record, http.StatusOK)
	}
}

func (h *Handler) deleteRecord(kind models.RecordKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := recordID(r)
		if err != nil {
			writeError(w, r, err)
			return
		}

		if err = h.services.LedgerService.Delete(r.Context(), h.mustUserID(r), kind, id); err != nil {
			writeError(w, r, err)
			return
		}

		logger.FromRequest(r).Info().Int64("id", id).Str("kind", string(kind)).Msg("record deleted")
		w.WriteHeader(http.StatusNoContent)
	}
}

func recordID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidRecordID
	}
	return id, nil
}

// mustUserID returns the user stored by the auth middleware. Routes using it
// are only mounted behind that middleware.
func (h *Handler) mustUserID(r *http.Request) int64 {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		h.logger.Error().Str("uri", r.RequestURI).Msg("no user id in request context")
	}
	return userID
}
