package http

import (
	"github.com/MKhiriev/go-ledger/models"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	// set before mounting so every sub-router inherits it
	router.MethodNotAllowed(CheckHTTPMethod())
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	if h.requestTimeout > 0 {
		router.Use(middleware.Timeout(h.requestTimeout))
	}

	// routes without authorization
	router.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.register)
		r.Get("/email-verify", h.verifyEmail)
		r.Post("/login", h.login)
		r.Post("/token/refresh", h.refreshToken)
		r.Post("/password-reset", h.requestPasswordReset)
		r.Get("/password-reset/{uidb64}/{token}", h.checkPasswordResetToken)
		r.Patch("/password-reset-complete", h.setNewPassword)
	})
	router.Get("/api/version/", h.getServerVersion)

	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Route("/expenses", h.ledgerRoutes(models.Expense))
		r.Route("/income", h.ledgerRoutes(models.Income))

		r.Route("/userstats", func(r chi.Router) {
			r.Get("/expense-category-data/", h.expenseCategorySummary)
			r.Get("/income-category-data/", h.incomeSourceSummary)
		})
	})

	return router
}

func (h *Handler) ledgerRoutes(kind models.RecordKind) func(r chi.Router) {
	return func(r chi.Router) {
		r.Get("/", h.listRecords(kind))
		r.Post("/", h.createRecord(kind))
		r.Get("/{id}", h.getRecord(kind))
		r.Put("/{id}", h.updateRecord(kind))
		r.Patch("/{id}", h.patchRecord(kind))
		r.Delete("/{id}", h.deleteRecord(kind))
	}
}
