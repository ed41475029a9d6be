package email

import (
	"context"
	"fmt"
)

// Message is a fully rendered outbound email.
type Message struct {
	To       []string
	Subject  string
	BodyHTML string
	BodyText string
	ReplyTo  string
}

// Sender delivers one message and returns the provider-assigned message
// id. Implementations make exactly one delivery attempt; retry policy,
// if any, belongs to the caller.
type Sender interface {
	Send(ctx context.Context, msg *Message) (string, error)
}

// DeliveryError carries the provider's rejection back to the caller.
type DeliveryError struct {
	Provider   string
	StatusCode int
	Message    string
}

func (e *DeliveryError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s delivery failed (%d): %s", e.Provider, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s delivery failed: %s", e.Provider, e.Message)
}
