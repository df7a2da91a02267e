package domain

import "context"

// Notification is an outbound message carrying a ciphertext to a recipient.
type Notification struct {
	ID        string // correlation ID for logs
	Recipient string // E.164 phone number, e.g. "+2348012345678"
	Body      string
}

// NotificationReceipt is the provider's acknowledgement of a sent message.
type NotificationReceipt struct {
	SID    string
	Body   string
	Status string
	To     string
}

// Notifier delivers notifications through a third-party messaging API.
type Notifier interface {
	Send(ctx context.Context, n Notification) (*NotificationReceipt, error)
}
