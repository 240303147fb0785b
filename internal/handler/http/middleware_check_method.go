// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-ledger/internal/utils"
	"github.com/MKhiriev/go-ledger/models"
)

// CheckHTTPMethod returns an [http.HandlerFunc] that is intended to be
// registered as the router's MethodNotAllowed handler via
// [chi.Mux.MethodNotAllowed].
//
// Chi answers 405 Method Not Allowed when a path matches a route but the
// method does not. This handler answers 404 with the usual JSON error body
// instead, so an unsupported method looks exactly like an unknown path.
//
// Chi only calls it after the method lookup failed, so it never hands the
// request back to the router.
//
// Usage:
//
//	router := chi.NewRouter()
//	router.MethodNotAllowed(CheckHTTPMethod())
//	// ... register routes ...
func CheckHTTPMethod() func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		utils.WriteJSON(w, models.ErrorResponse{Error: "Not found."}, http.StatusNotFound)
	}
}
