package services

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/irgordon/cipher-cli/internal/core/domain"
)

// MessagePrefix is prepended to every ciphertext relayed to a recipient.
const MessagePrefix = "From your partner in mischief: "

// recipientPattern accepts a '+' followed by 13 to 15 digits with no leading zero.
var recipientPattern = regexp.MustCompile(`^\+[1-9]\d{12,14}$`)

type notifyRequest struct {
	Recipient  string `validate:"required,recipient"`
	Ciphertext string
}

// NotificationService relays ciphertexts to a recipient through a domain.Notifier.
type NotificationService struct {
	notifier domain.Notifier
	limiter  *rate.Limiter
	validate *validator.Validate
	logger   *slog.Logger
}

// NewNotificationService wires the service. A nil notifier is allowed and makes
// every Notify call fail with domain.ErrNotifierDisabled; a nil limiter disables
// throttling.
func NewNotificationService(notifier domain.Notifier, limiter *rate.Limiter, logger *slog.Logger) *NotificationService {
	v := validator.New()
	// Registering a static tag on a fresh validator cannot fail
	_ = v.RegisterValidation("recipient", func(fl validator.FieldLevel) bool {
		return recipientPattern.MatchString(fl.Field().String())
	})

	if limiter == nil {
		limiter = rate.NewLimiter(rate.Inf, 0)
	}

	return &NotificationService{
		notifier: notifier,
		limiter:  limiter,
		validate: v,
		logger:   logger,
	}
}

// NormalizeRecipient trims the number and adds the leading '+' when it was left off,
// so "2348012345678" and "+2348012345678" are the same recipient.
func NormalizeRecipient(s string) string {
	s = strings.TrimSpace(s)
	if s != "" && !strings.HasPrefix(s, "+") {
		s = "+" + s
	}
	return s
}

// Notify sends ciphertext to recipient and returns the provider receipt.
func (s *NotificationService) Notify(ctx context.Context, recipient, ciphertext string) (*domain.NotificationReceipt, error) {
	req := notifyRequest{
		Recipient:  NormalizeRecipient(recipient),
		Ciphertext: ciphertext,
	}

	// 1. Validate before touching the network
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidRecipient, recipient)
	}

	if s.notifier == nil {
		return nil, domain.ErrNotifierDisabled
	}

	// 2. Throttle outbound calls
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("notification throttled: %w", err)
	}

	n := domain.Notification{
		ID:        uuid.NewString(),
		Recipient: req.Recipient,
		Body:      MessagePrefix + req.Ciphertext,
	}

	s.logger.Info("Sending notification", slog.String("notification_id", n.ID))

	receipt, err := s.notifier.Send(ctx, n)
	if err != nil {
		s.logger.Error("Notification failed",
			slog.String("notification_id", n.ID),
			slog.Any("error", err),
		)
		return nil, fmt.Errorf("failed to send notification: %w", err)
	}

	s.logger.Info("Notification accepted",
		slog.String("notification_id", n.ID),
		slog.String("sid", receipt.SID),
		slog.String("status", receipt.Status),
	)
	return receipt, nil
}
