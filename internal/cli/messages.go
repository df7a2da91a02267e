package cli

import (
	"errors"
	"fmt"

	"github.com/irgordon/cipher-cli/internal/core/domain"
)

const (
	msgMissingAlgorithm = `Required flag "algorithm" not provided`
	msgUnknownAlgorithm = "Unknown algorithm provided"
	msgMissingRotations = `Required flag "rotations" not provided`
	msgInvalidRotations = `Invalid value provided for "rotations"`
	msgInvalidRecipient = `Invalid phone number provided for "recipient"`
	msgNotifierDisabled = "Notifications are not configured. Set TWILIO_ACCOUNT_SID, TWILIO_AUTH_TOKEN and TWILIO_WHATSAPP_NUMBER."
)

// cipherErrorMessage maps a CipherService error to the text shown to the user.
func cipherErrorMessage(err error) string {
	var rotErr *domain.InvalidRotationsError
	switch {
	case errors.Is(err, domain.ErrMissingAlgorithm):
		return msgMissingAlgorithm
	case errors.Is(err, domain.ErrUnknownAlgorithm):
		return msgUnknownAlgorithm
	case errors.Is(err, domain.ErrMissingRotations):
		return msgMissingRotations
	case errors.As(err, &rotErr):
		return fmt.Sprintf("Rotations cannot be less than 0, %d provided", rotErr.Rotations)
	default:
		return err.Error()
	}
}

type reasoner interface {
	Reason() string
}

// notificationErrorMessage maps a NotificationService error to the text shown to the user.
func notificationErrorMessage(err error) string {
	var r reasoner
	switch {
	case errors.Is(err, domain.ErrInvalidRecipient):
		return msgInvalidRecipient
	case errors.Is(err, domain.ErrNotifierDisabled):
		return msgNotifierDisabled
	case errors.As(err, &r):
		return fmt.Sprintf("There was a problem sending your message :( \nWhatsApp message was not sent because: %q.", r.Reason())
	default:
		return fmt.Sprintf("There was a problem sending your message :( \n%s", err)
	}
}

func notificationSuccessMessage(receipt *domain.NotificationReceipt) string {
	return fmt.Sprintf("Notification handled successfully!! \nYour WhatsApp message with content %q is now %q.", receipt.Body, receipt.Status)
}

func resultMessage(res *domain.CipherResult) string {
	label := map[domain.Direction][2]string{
		domain.DirectionEncrypt: {"Plaintext", "Ciphertext"},
		domain.DirectionDecrypt: {"Ciphertext", "Plaintext"},
	}[res.Direction]

	if res.Algorithm == domain.AlgorithmCaesar {
		return fmt.Sprintf("%s: %s \nRotations: %d \n%s: %s", label[0], res.Input, res.Rotations, label[1], res.Output)
	}
	return fmt.Sprintf("%s: %s \n%s: %s", label[0], res.Input, label[1], res.Output)
}
