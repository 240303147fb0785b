// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package mail

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-ledger/internal/config"
	"github.com/MKhiriev/go-ledger/internal/logger"
	"github.com/MKhiriev/go-ledger/internal/utils"
)

const (
	postmarkTokenHeader = "X-Postmark-Server-Token"
	postmarkEmailPath   = "/email"
)

// postmarkEmail is the request body of POST /email.
type postmarkEmail struct {
	From     string `json:"From"`
	To       string `json:"To"`
	Subject  string `json:"Subject"`
	TextBody string `json:"TextBody"`
}

// postmarkResponse is returned for both accepted and rejected messages;
// a non-zero ErrorCode means the message was not accepted.
type postmarkResponse struct {
	ErrorCode int    `json:"ErrorCode"`
	Message   string `json:"Message"`
	MessageID string `json:"MessageID"`
}

// HTTPSender posts messages to a Postmark-compatible HTTP API.
type HTTPSender struct {
	client *utils.HTTPClient
	from   string
	logger *logger.Logger
}

func NewHTTPSender(cfg config.Mail, logger *logger.Logger) *HTTPSender {
	client := utils.NewHTTPClient(
		utils.WithBaseURL(cfg.APIURL),
		utils.WithTimeout(cfg.Timeout),
		utils.WithHeader("Accept", "application/json"),
		utils.WithHeader(postmarkTokenHeader, cfg.APIToken),
		utils.WithRetries(2, 200*time.Millisecond),
	)

	return &HTTPSender{client: client, from: cfg.From, logger: logger}
}

func (s *HTTPSender) Send(ctx context.Context, msg Message) error {
	if err := msg.validate(); err != nil {
		return err
	}

	var result postmarkResponse
	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(postmarkEmail{
			From:     s.from,
			To:       msg.To,
			Subject:  msg.Subject,
			TextBody: msg.Body,
		}).
		SetResult(&result).
		SetError(&result).
		Post(postmarkEmailPath)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDeliveryFailed, err)
	}

	if resp.IsError() || result.ErrorCode != 0 {
		return fmt.Errorf("%w: status %d, code %d: %s", ErrDeliveryFailed, resp.StatusCode(), result.ErrorCode, result.Message)
	}

	s.logger.Debug().Str("to", msg.To).Str("message_id", result.MessageID).Msg("mail accepted by API")
	return nil
}
