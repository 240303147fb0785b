package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MKhiriev/go-ledger/internal/config"
	"github.com/MKhiriev/go-ledger/internal/logger"
	"github.com/MKhiriev/go-ledger/internal/service"
	"github.com/MKhiriev/go-ledger/models"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit_RegistersAllRoutes(t *testing.T) {
	h := newTestHandler(t, &service.Services{})
	router := h.Init()

	routes := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/auth/register"},
		{http.MethodGet, "/auth/email-verify"},
		{http.MethodPost, "/auth/login"},
		{http.MethodPost, "/auth/token/refresh"},
		{http.MethodPost, "/auth/password-reset"},
		{http.MethodGet, "/auth/password-reset/Nw/token"},
		{http.MethodPatch, "/auth/password-reset-complete"},
		{http.MethodGet, "/expenses/"},
		{http.MethodPost, "/expenses/"},
		{http.MethodGet, "/expenses/1"},
		{http.MethodPut, "/expenses/1"},
		{http.MethodPatch, "/expenses/1"},
		{http.MethodDelete, "/expenses/1"},
		{http.MethodGet, "/income/"},
		{http.MethodPost, "/income/"},
		{http.MethodGet, "/income/1"},
		{http.MethodPut, "/income/1"},
		{http.MethodPatch, "/income/1"},
		{http.MethodDelete, "/income/1"},
		{http.MethodGet, "/userstats/expense-category-data/"},
		{http.MethodGet, "/userstats/income-category-data/"},
		{http.MethodGet, "/api/version/"},
	}

	for _, route := range routes {
		assert.True(t, router.Match(chi.NewRouteContext(), route.method, route.path), "%s %s", route.method, route.path)
	}
}

func TestInit_CommonHeadersAndStatuses(t *testing.T) {
	h := newTestHandler(t, &service.Services{})

	rr := serve(t, h, http.MethodGet, "/nowhere", "", false)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.NotEmpty(t, rr.Header().Get(traceIDHeader))

	rr = serve(t, h, http.MethodDelete, "/auth/login", "", false)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.NotEmpty(t, rr.Header().Get(traceIDHeader))
}

func TestInit_WrongMethodOnLedgerRoutes(t *testing.T) {
	h := newHandlerWithLedger(t, &fakeLedgerService{})

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodPut, "/expenses/"},
		{http.MethodPatch, "/expenses/"},
		{http.MethodDelete, "/expenses/"},
		{http.MethodPut, "/income/"},
		{http.MethodPatch, "/income/"},
		{http.MethodDelete, "/income/"},
		{http.MethodPost, "/expenses/5"},
		{http.MethodPost, "/income/5"},
		{http.MethodPost, "/userstats/expense-category-data/"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			done := make(chan *httptest.ResponseRecorder, 1)
			go func() {
				done <- serve(t, h, tt.method, tt.path, "", true)
			}()

			select {
			case rr := <-done:
				assert.Equal(t, http.StatusNotFound, rr.Code)
				assert.JSONEq(t, `{"error":"Not found."}`, rr.Body.String())
			case <-time.After(5 * time.Second):
				t.Fatalf("%s %s did not return", tt.method, tt.path)
			}
		})
	}
}

func TestInit_RecoversFromPanics(t *testing.T) {
	stats := &fakeStatsService{
		expenseFn: func(context.Context, int64) (models.CategorySummary, error) {
			panic("unexpected")
		},
	}
	h := newTestHandler(t, &service.Services{StatsService: stats})

	rr := serve(t, h, http.MethodGet, "/userstats/expense-category-data/", "", true)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestInit_RequestTimeoutApplied(t *testing.T) {
	var deadlineSet bool
	stats := &fakeStatsService{
		expenseFn: func(ctx context.Context, _ int64) (models.CategorySummary, error) {
			_, deadlineSet = ctx.Deadline()
			return models.CategorySummary{}, nil
		},
	}
	svcs := &service.Services{
		StatsService:   stats,
		TokenService:   acceptingTokenService(),
		AppInfoService: &fakeAppInfoService{version: "test"},
	}
	h := NewHandler(svcs, config.Server{RequestTimeout: time.Minute}, logger.Nop())

	rr := serve(t, h, http.MethodGet, "/userstats/expense-category-data/", "", true)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, deadlineSet)
}
