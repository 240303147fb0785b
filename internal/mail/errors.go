package mail

import "errors"

var (
	// ErrUnknownDriver is returned by NewSender for an unsupported driver name.
	ErrUnknownDriver = errors.New("unknown mail driver")

	// ErrInvalidMessage is returned when a message lacks a recipient or subject.
	ErrInvalidMessage = errors.New("invalid mail message")

	// ErrQueueFull is logged when Dispatch has to drop a message.
	ErrQueueFull = errors.New("mail queue is full")

	// ErrDeliveryFailed wraps transport-level send failures.
	ErrDeliveryFailed = errors.New("mail delivery failed")
)
