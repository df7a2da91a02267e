package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"golang.org/x/time/rate"

	"github.com/irgordon/cipher-cli/internal/config"
	"github.com/irgordon/cipher-cli/internal/core/domain"
)

// ==============================================================================
// 1. Twilio Wire Types
// ==============================================================================

type twilioMessage struct {
	SID         string  `json:"sid"`
	Body        string  `json:"body"`
	Status      string  `json:"status"`
	To          string  `json:"to"`
	From        string  `json:"from"`
	Direction   string  `json:"direction"`
	APIVersion  string  `json:"api_version"`
	DateCreated string  `json:"date_created"`
	DateSent    *string `json:"date_sent"`
	URI         string  `json:"uri"`
}

// TwilioError is the decoded body of a request Twilio refused.
type TwilioError struct {
	Code     int    `json:"code"`
	Message  string `json:"message"`
	MoreInfo string `json:"more_info"`
	Status   int    `json:"status"`
}

func (e *TwilioError) Error() string {
	return fmt.Sprintf("twilio error %d: %s", e.Code, e.Message)
}

func (e *TwilioError) Unwrap() error { return domain.ErrNotificationRejected }

// Reason is the provider's explanation, suitable for showing to the user.
func (e *TwilioError) Reason() string { return e.Message }

// ==============================================================================
// 2. The WhatsApp Provider
// ==============================================================================

// TwilioProvider implements domain.Notifier on top of the Twilio Messages API,
// delivering through the WhatsApp channel.
type TwilioProvider struct {
	cfg        config.TwilioConfig
	httpClient *http.Client
	maxRetries uint64
	newBackOff func() backoff.BackOff
	limiter    *rate.Limiter
	logger     *slog.Logger
}

// NewTwilioProvider takes its credentials explicitly; it never reads the environment.
func NewTwilioProvider(cfg config.TwilioConfig, client *http.Client, maxRetries uint64, logger *slog.Logger) (*TwilioProvider, error) {
	if !cfg.Enabled() {
		return nil, domain.ErrNotifierDisabled
	}
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &TwilioProvider{
		cfg:        cfg,
		httpClient: client,
		maxRetries: maxRetries,
		newBackOff: func() backoff.BackOff { return backoff.NewExponentialBackOff() },
		limiter:    rate.NewLimiter(rate.Inf, 0),
		logger:     logger,
	}, nil
}

// WithLimiter throttles every attempt, retries included, against the API.
func (p *TwilioProvider) WithLimiter(limiter *rate.Limiter) *TwilioProvider {
	p.limiter = limiter
	return p
}

// WithBackOff replaces the retry schedule. The retry cap still applies.
func (p *TwilioProvider) WithBackOff(newBackOff func() backoff.BackOff) *TwilioProvider {
	p.newBackOff = newBackOff
	return p
}

func (p *TwilioProvider) endpoint() string {
	return fmt.Sprintf("%s/Accounts/%s/Messages.json", p.cfg.BaseURL, url.PathEscape(p.cfg.AccountSID))
}

// Send posts the message, retrying transport failures, 429s and 5xx responses with
// exponential backoff. A 400 is final and comes back as *TwilioError.
func (p *TwilioProvider) Send(ctx context.Context, n domain.Notification) (*domain.NotificationReceipt, error) {
	form := url.Values{}
	form.Set("To", "whatsapp:"+n.Recipient)
	form.Set("From", "whatsapp:"+p.cfg.FromNumber)
	form.Set("Body", n.Body)
	payload := form.Encode()

	var receipt *domain.NotificationReceipt
	attempt := 0

	operation := func() error {
		attempt++
		if err := p.limiter.Wait(ctx); err != nil {
			return backoff.Permanent(fmt.Errorf("twilio: attempt %d throttled: %w", attempt, err))
		}
		r, err := p.post(ctx, payload)
		if err != nil {
			var terr *TwilioError
			if errors.As(err, &terr) {
				return backoff.Permanent(err)
			}
			p.logger.Warn("Twilio request failed",
				slog.String("notification_id", n.ID),
				slog.Int("attempt", attempt),
				slog.Any("error", err),
			)
			return err
		}
		receipt = r
		return nil
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(p.newBackOff(), p.maxRetries),
		ctx,
	)
	if err := backoff.Retry(operation, policy); err != nil {
		return nil, err
	}
	return receipt, nil
}

type retryableStatusError struct {
	code int
}

func (e *retryableStatusError) Error() string {
	return fmt.Sprintf("received status code: %d", e.code)
}

func (p *TwilioProvider) post(ctx context.Context, payload string) (*domain.NotificationReceipt, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint(), strings.NewReader(payload))
	if err != nil {
		return nil, backoff.Permanent(fmt.Errorf("twilio: failed to build request: %w", err))
	}
	req.SetBasicAuth(p.cfg.AccountSID, p.cfg.AuthToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("twilio: transport error: %w", err)
	}
	defer resp.Body.Close()

	// Twilio bodies are small; cap the read anyway
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("twilio: failed to read response body: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusCreated:
		var msg twilioMessage
		if err := json.Unmarshal(body, &msg); err != nil {
			return nil, backoff.Permanent(fmt.Errorf("twilio: malformed success response: %w", err))
		}
		return &domain.NotificationReceipt{
			SID:    msg.SID,
			Body:   msg.Body,
			Status: msg.Status,
			To:     msg.To,
		}, nil

	case resp.StatusCode == http.StatusBadRequest:
		var terr TwilioError
		if err := json.Unmarshal(body, &terr); err != nil {
			return nil, backoff.Permanent(fmt.Errorf("twilio: malformed error response: %w", err))
		}
		return nil, &terr

	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return nil, &retryableStatusError{code: resp.StatusCode}

	default:
		return nil, backoff.Permanent(fmt.Errorf("received status code: %d", resp.StatusCode))
	}
}

var _ domain.Notifier = (*TwilioProvider)(nil)
