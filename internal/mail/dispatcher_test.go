package mail

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/MKhiriev/go-ledger/internal/config"
	"github.com/MKhiriev/go-ledger/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSender records delivered messages and can be told to fail.
type fakeSender struct {
	mu     sync.Mutex
	sent   []Message
	err    error
	closed bool
	got    chan Message
}

func newFakeSender() *fakeSender {
	return &fakeSender{got: make(chan Message, 16)}
}

func (f *fakeSender) Send(_ context.Context, msg Message) error {
	f.mu.Lock()
	f.sent = append(f.sent, msg)
	err := f.err
	f.mu.Unlock()

	f.got <- msg
	return err
}

func (f *fakeSender) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func waitMessage(t *testing.T, ch <-chan Message) Message {
	t.Helper()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for message")
		return Message{}
	}
}

func TestDispatcher_DeliversQueuedMessages(t *testing.T) {
	sender := newFakeSender()
	d := NewDispatcher(sender, config.Mail{QueueSize: 4}, 2, logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- d.Run(ctx) }()

	d.Dispatch(context.Background(), Message{To: "a@example.com", Subject: "one"})
	d.Dispatch(context.Background(), Message{To: "b@example.com", Subject: "two"})

	subjects := []string{waitMessage(t, sender.got).Subject, waitMessage(t, sender.got).Subject}
	assert.ElementsMatch(t, []string{"one", "two"}, subjects)

	cancel()
	require.NoError(t, <-done)
	assert.True(t, sender.closed, "sender must be closed when Run returns")
}

func TestDispatcher_DropsWhenQueueIsFull(t *testing.T) {
	sender := newFakeSender()
	d := NewDispatcher(sender, config.Mail{QueueSize: 1}, 1, logger.Nop())

	// no workers running: the first message fills the queue
	d.Dispatch(context.Background(), Message{To: "a@example.com", Subject: "kept"})
	d.Dispatch(context.Background(), Message{To: "b@example.com", Subject: "dropped"})

	require.Len(t, d.queue, 1)
	assert.Equal(t, "kept", (<-d.queue).Subject)
}

func TestDispatcher_SendErrorDoesNotStopWorkers(t *testing.T) {
	sender := newFakeSender()
	sender.err = errors.New("smtp down")
	d := NewDispatcher(sender, config.Mail{QueueSize: 2}, 1, logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go d.Run(ctx)

	d.Dispatch(context.Background(), Message{To: "a@example.com", Subject: "first"})
	waitMessage(t, sender.got)

	d.Dispatch(context.Background(), Message{To: "a@example.com", Subject: "second"})
	assert.Equal(t, "second", waitMessage(t, sender.got).Subject)
}

func TestNewDispatcher_NormalizesSizes(t *testing.T) {
	d := NewDispatcher(newFakeSender(), config.Mail{}, 0, logger.Nop())

	assert.Equal(t, 1, cap(d.queue))
	assert.Equal(t, 1, d.workers)
}

func TestDispatcher_Run_ReturnsOnCancelledContext(t *testing.T) {
	d := NewDispatcher(newFakeSender(), config.Mail{QueueSize: 1}, 3, logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.NoError(t, d.Run(ctx))
}
