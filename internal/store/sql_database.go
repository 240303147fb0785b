package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/MKhiriev/go-ledger/internal/logger"
	"github.com/MKhiriev/go-ledger/migrations"
)

// retryDelays are the pauses between attempts for retryable failures.
var retryDelays = []time.Duration{50 * time.Millisecond, 200 * time.Millisecond}

// DB wraps the connection pool together with the error classifier used to
// retry transient failures.
type DB struct {
	*sql.DB
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// Migrate applies the embedded schema migrations.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB)
}

// withRetry runs op and re-runs it while the classifier marks the failure as
// retryable, up to len(retryDelays) extra attempts.
func (db *DB) withRetry(ctx context.Context, op func() error) error {
	err := op()
	if err == nil || db.errorClassificator == nil {
		return err
	}

	for _, delay := range retryDelays {
		if db.errorClassificator.Classify(err) != Retryable {
			return err
		}

		logger.FromContext(ctx).Warn().Err(err).Dur("delay", delay).Msg("retrying database call")

		select {
		case <-ctx.Done():
			return err
		case <-time.After(delay):
		}

		if err = op(); err == nil {
			return nil
		}
	}

	return err
}
