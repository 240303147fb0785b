package http

import (
	"net/http"

	"github.com/MKhiriev/go-ledger/internal/utils"
	"github.com/MKhiriev/go-ledger/models"
)

func (h *Handler) expenseCategorySummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.services.StatsService.ExpenseCategorySummary(r.Context(), h.mustUserID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.ExpenseSummaryResponse{CategoryData: summary}, http.StatusOK)
}

func (h *Handler) incomeSourceSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.services.StatsService.IncomeSourceSummary(r.Context(), h.mustUserID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.IncomeSummaryResponse{SourceData: summary}, http.StatusOK)
}
