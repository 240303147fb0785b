package mail

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-ledger/internal/config"
	"github.com/MKhiriev/go-ledger/internal/logger"
	amqp "github.com/rabbitmq/amqp091-go"
)

const defaultPublishTimeout = 5 * time.Second

// publisher is the part of *amqp.Channel used for sending.
type publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// amqpEnvelope is the JSON body published for the external mail worker.
type amqpEnvelope struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// AMQPSender publishes messages to a RabbitMQ direct exchange. The queue
// name is used as routing key.
type AMQPSender struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	pub     publisher

	exchange string
	queue    string
	from     string
	timeout  time.Duration

	logger *logger.Logger
}

// NewAMQPSender dials the broker and declares the durable exchange, the
// durable queue and the binding between them.
func NewAMQPSender(cfg config.Mail, logger *logger.Logger) (*AMQPSender, error) {
	conn, err := amqp.Dial(cfg.AMQPURL)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	s := &AMQPSender{
		conn:     conn,
		channel:  channel,
		pub:      channel,
		exchange: cfg.AMQPExchange,
		queue:    cfg.AMQPQueue,
		from:     cfg.From,
		timeout:  cfg.Timeout,
		logger:   logger,
	}

	if err = s.setup(); err != nil {
		s.Close()
		return nil, fmt.Errorf("setup exchange and queue: %w", err)
	}

	return s, nil
}

func (s *AMQPSender) setup() error {
	if err := s.channel.ExchangeDeclare(s.exchange, amqp.ExchangeDirect, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare exchange: %w", err)
	}
	if _, err := s.channel.QueueDeclare(s.queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare queue: %w", err)
	}
	if err := s.channel.QueueBind(s.queue, s.queue, s.exchange, false, nil); err != nil {
		return fmt.Errorf("bind queue: %w", err)
	}
	return nil
}

func (s *AMQPSender) Send(ctx context.Context, msg Message) error {
	if err := msg.validate(); err != nil {
		return err
	}

	body, err := json.Marshal(amqpEnvelope{From: s.from, To: msg.To, Subject: msg.Subject, Body: msg.Body})
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	timeout := s.timeout
	if timeout <= 0 {
		timeout = defaultPublishTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	err = s.pub.PublishWithContext(ctx, s.exchange, s.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("%w: publish message: %w", ErrDeliveryFailed, err)
	}

	s.logger.Debug().
		Str("to", msg.To).
		Str("exchange", s.exchange).
		Str("queue", s.queue).
		Msg("mail published")
	return nil
}

// Close releases the channel and the connection.
func (s *AMQPSender) Close() error {
	var errs []error
	if s.channel != nil {
		errs = append(errs, s.channel.Close())
	}
	if s.conn != nil {
		errs = append(errs, s.conn.Close())
	}
	return errors.Join(errs...)
}
