package mail

import (
	"fmt"

	"github.com/MKhiriev/go-ledger/internal/config"
	"github.com/MKhiriev/go-ledger/internal/logger"
)

// NewSender builds the Sender selected by cfg.Driver. An empty driver
// means "log".
func NewSender(cfg config.Mail, logger *logger.Logger) (Sender, error) {
	switch cfg.Driver {
	case "", config.MailDriverLog:
		return NewLogSender(cfg.From, logger), nil
	case config.MailDriverHTTP:
		return NewHTTPSender(cfg, logger), nil
	case config.MailDriverAMQP:
		sender, err := NewAMQPSender(cfg, logger)
		if err != nil {
			return nil, err
		}
		return sender, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
	}
}
