package http

import (
	"net/http"
)

// getServerVersion answers with the bare version string as text/plain.
func (h *Handler) getServerVersion(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	appVersion := h.services.AppInfoService.GetAppVersion(ctx)

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(appVersion))
}
