package mail

import (
	"context"

	"github.com/MKhiriev/go-ledger/internal/logger"
)

// LogSender writes messages to the log instead of delivering them.
// It is the default driver and is meant for development.
type LogSender struct {
	from   string
	logger *logger.Logger
}

func NewLogSender(from string, logger *logger.Logger) *LogSender {
	return &LogSender{from: from, logger: logger}
}

func (s *LogSender) Send(ctx context.Context, msg Message) error {
	if err := msg.validate(); err != nil {
		return err
	}

	s.logger.Info().
		Str("from", s.from).
		Str("to", msg.To).
		Str("subject", msg.Subject).
		Str("body", msg.Body).
		Msg("outbound mail")
	return nil
}
