package mail

import "fmt"

// Message is a plain-text email.
type Message struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

func (m Message) validate() error {
	if m.To == "" {
		return fmt.Errorf("%w: empty recipient", ErrInvalidMessage)
	}
	if m.Subject == "" {
		return fmt.Errorf("%w: empty subject", ErrInvalidMessage)
	}
	return nil
}
