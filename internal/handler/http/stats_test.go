package http

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/MKhiriev/go-ledger/internal/service"
	"github.com/MKhiriev/go-ledger/models"
	"github.com/stretchr/testify/assert"
)

func TestSummaryEndpoints(t *testing.T) {
	stats := &fakeStatsService{
		expenseFn: func(_ context.Context, userID int64) (models.CategorySummary, error) {
			assert.Equal(t, testUserID, userID)
			return models.CategorySummary{"A": {Amount: "10.00"}, "B": {Amount: "3.00"}}, nil
		},
		incomeFn: func(context.Context, int64) (models.CategorySummary, error) {
			return models.CategorySummary{}, nil
		},
	}
	h := newTestHandler(t, &service.Services{StatsService: stats})

	rr := serve(t, h, http.MethodGet, "/userstats/expense-category-data/", "", true)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"category_data":{"A":{"amount":"10.00"},"B":{"amount":"3.00"}}}`, rr.Body.String())

	rr = serve(t, h, http.MethodGet, "/userstats/income-category-data/", "", true)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"source_data":{}}`, rr.Body.String())
}

func TestSummaryEndpoints_Errors(t *testing.T) {
	stats := &fakeStatsService{
		expenseFn: func(context.Context, int64) (models.CategorySummary, error) {
			return nil, errors.New("db down")
		},
	}
	h := newTestHandler(t, &service.Services{StatsService: stats})

	rr := serve(t, h, http.MethodGet, "/userstats/expense-category-data/", "", true)
	assert.Equal(t, http.StatusInternalServerError, rr.Code)

	rr = serve(t, h, http.MethodGet, "/userstats/income-category-data/", "", false)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}
