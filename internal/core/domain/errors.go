package domain

import (
	"errors"
	"fmt"
)

var (
	ErrMissingAlgorithm = errors.New("algorithm not provided")
	ErrUnknownAlgorithm = errors.New("unknown algorithm")
	ErrMissingRotations = errors.New("rotations not provided")
	ErrInvalidRecipient = errors.New("invalid recipient phone number")

	// ErrNotifierDisabled is returned when a notification is requested but no
	// messaging credentials were configured.
	ErrNotifierDisabled = errors.New("notifier is not configured")

	// ErrNotificationRejected wraps provider-side refusals (bad number, sandbox
	// not joined, ...). The provider error carries the human readable reason.
	ErrNotificationRejected = errors.New("notification rejected by provider")
)

// InvalidRotationsError reports a rotation count that is present but not positive.
type InvalidRotationsError struct {
	Rotations int
}

func (e *InvalidRotationsError) Error() string {
	return fmt.Sprintf("rotations must be positive, %d provided", e.Rotations)
}
