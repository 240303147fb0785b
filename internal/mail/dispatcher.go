package mail

import (
	"context"
	"io"
	"time"

	"github.com/MKhiriev/go-ledger/internal/config"
	"github.com/MKhiriev/go-ledger/internal/logger"
	"golang.org/x/sync/errgroup"
)

// Dispatcher queues messages in memory and delivers them with a fixed
// number of worker goroutines. Delivery is best effort: a full queue drops
// the message and send failures are only logged.
type Dispatcher struct {
	sender  Sender
	queue   chan Message
	workers int
	timeout time.Duration

	logger *logger.Logger
}

// NewDispatcher creates a Dispatcher in front of sender. Non-positive
// sizes fall back to one.
func NewDispatcher(sender Sender, cfg config.Mail, workers int, logger *logger.Logger) *Dispatcher {
	size := cfg.QueueSize
	if size < 1 {
		size = 1
	}
	if workers < 1 {
		workers = 1
	}

	return &Dispatcher{
		sender:  sender,
		queue:   make(chan Message, size),
		workers: workers,
		timeout: cfg.Timeout,
		logger:  logger,
	}
}

// Dispatch enqueues msg without blocking.
func (d *Dispatcher) Dispatch(ctx context.Context, msg Message) {
	select {
	case d.queue <- msg:
	default:
		logger.FromContext(ctx).Err(ErrQueueFull).
			Str("to", msg.To).
			Str("subject", msg.Subject).
			Msg("mail dropped")
	}
}

// Run starts the workers and blocks until ctx is done. Messages still in
// the queue at that point are discarded. A sender that implements
// io.Closer is closed before Run returns.
func (d *Dispatcher) Run(ctx context.Context) error {
	d.logger.Info().Int("workers", d.workers).Int("queue_size", cap(d.queue)).Msg("mail dispatcher started")

	g, ctx := errgroup.WithContext(ctx)
	for range d.workers {
		g.Go(func() error {
			d.work(ctx)
			return nil
		})
	}
	err := g.Wait()

	if closer, ok := d.sender.(io.Closer); ok {
		if closeErr := closer.Close(); closeErr != nil {
			d.logger.Err(closeErr).Msg("error closing mail sender")
		}
	}

	d.logger.Info().Int("pending", len(d.queue)).Msg("mail dispatcher stopped")
	return err
}

func (d *Dispatcher) work(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg := <-d.queue:
			d.send(ctx, msg)
		}
	}
}

func (d *Dispatcher) send(ctx context.Context, msg Message) {
	if d.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}

	if err := d.sender.Send(ctx, msg); err != nil {
		d.logger.Err(err).Str("to", msg.To).Str("subject", msg.Subject).Msg("error sending mail")
		return
	}
	d.logger.Debug().Str("to", msg.To).Str("subject", msg.Subject).Msg("mail sent")
}
