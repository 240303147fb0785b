package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-ledger/internal/logger"
	"github.com/MKhiriev/go-ledger/internal/store"
	"github.com/MKhiriev/go-ledger/models"
	"github.com/shopspring/decimal"
)

// summaryWindowDays is the length of the trailing summary window. Both
// ends are inclusive, so the window spans summaryWindowDays+1 dates.
const summaryWindowDays = 365

// statsService implements StatsService.
type statsService struct {
	ledgerRepository store.LedgerRepository

	// now is the clock "today" is taken from, in UTC.
	now func() time.Time

	logger *logger.Logger
}

func NewStatsService(ledgerRepository store.LedgerRepository, logger *logger.Logger) StatsService {
	return &statsService{
		ledgerRepository: ledgerRepository,
		now:              time.Now,
		logger:           logger,
	}
}

func (s *statsService) ExpenseCategorySummary(ctx context.Context, userID int64) (models.CategorySummary, error) {
	return s.summary(ctx, userID, models.Expense)
}

func (s *statsService) IncomeSourceSummary(ctx context.Context, userID int64) (models.CategorySummary, error) {
	return s.summary(ctx, userID, models.Income)
}

func (s *statsService) summary(ctx context.Context, userID int64, kind models.RecordKind) (models.CategorySummary, error) {
	to := models.NewDate(s.now().UTC())
	from := to.AddDays(-summaryWindowDays)

	records, err := s.ledgerRepository.ListRecordsBetween(ctx, userID, kind, from, to)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Int64("user_id", userID).
			Str("kind", string(kind)).
			Msg("error loading records for summary")
		return nil, fmt.Errorf("error loading records for summary: %w", err)
	}

	return summarize(records), nil
}

// summarize sums amounts per label. The result is never nil.
func summarize(records []models.LedgerRecord) models.CategorySummary {
	totals := make(map[string]decimal.Decimal)
	for _, r := range records {
		totals[r.Label] = totals[r.Label].Add(r.Amount)
	}

	summary := make(models.CategorySummary, len(totals))
	for label, total := range totals {
		summary[label] = models.CategoryAmount{Amount: total.StringFixed(2)}
	}
	return summary
}
