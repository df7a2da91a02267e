package adapters_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/irgordon/cipher-cli/internal/adapters"
	"github.com/irgordon/cipher-cli/internal/config"
	"github.com/irgordon/cipher-cli/internal/core/domain"
)

const successBody = `{
	"sid": "SM123",
	"body": "From your partner in mischief: Kl!",
	"status": "queued",
	"to": "whatsapp:+2348012345678",
	"from": "whatsapp:+14155238886",
	"direction": "outbound-api",
	"api_version": "2010-04-01",
	"date_created": "Thu, 30 Jul 2015 20:12:31 +0000",
	"date_sent": null,
	"uri": "/2010-04-01/Accounts/AC123/Messages/SM123.json"
}`

func newProvider(t *testing.T, srv *httptest.Server, retries uint64) *adapters.TwilioProvider {
	t.Helper()
	cfg := config.TwilioConfig{
		AccountSID: "AC123",
		AuthToken:  "secret",
		FromNumber: "+14155238886",
		BaseURL:    srv.URL + "/2010-04-01",
	}
	p, err := adapters.NewTwilioProvider(cfg, srv.Client(), retries, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	return p.WithBackOff(func() backoff.BackOff {
		return backoff.NewConstantBackOff(time.Millisecond)
	})
}

func notification() domain.Notification {
	return domain.Notification{
		ID:        "test-id",
		Recipient: "+2348012345678",
		Body:      "From your partner in mischief: Kl!",
	}
}

func TestTwilioProvider_Send_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/2010-04-01/Accounts/AC123/Messages.json", r.URL.Path)

		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "AC123", user)
		assert.Equal(t, "secret", pass)

		raw, _ := io.ReadAll(r.Body)
		form, err := url.ParseQuery(string(raw))
		assert.NoError(t, err)
		assert.Equal(t, "whatsapp:+2348012345678", form.Get("To"))
		assert.Equal(t, "whatsapp:+14155238886", form.Get("From"))
		assert.Equal(t, "From your partner in mischief: Kl!", form.Get("Body"))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		io.WriteString(w, successBody)
	}))
	defer srv.Close()

	receipt, err := newProvider(t, srv, 0).Send(context.Background(), notification())
	require.NoError(t, err)
	assert.Equal(t, "SM123", receipt.SID)
	assert.Equal(t, "queued", receipt.Status)
	assert.Equal(t, "From your partner in mischief: Kl!", receipt.Body)
}

func TestTwilioProvider_Send_BadRequestIsFinal(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
		io.WriteString(w, `{"code": 63007, "message": "Twilio could not find a Channel with the specified From address", "more_info": "https://www.twilio.com/docs/errors/63007", "status": 400}`)
	}))
	defer srv.Close()

	_, err := newProvider(t, srv, 3).Send(context.Background(), notification())
	require.Error(t, err)

	var terr *adapters.TwilioError
	require.True(t, errors.As(err, &terr))
	assert.Equal(t, 63007, terr.Code)
	assert.Contains(t, terr.Message, "could not find a Channel")
	assert.ErrorIs(t, err, domain.ErrNotificationRejected)
	assert.Equal(t, int32(1), calls.Load())
}

func TestTwilioProvider_Send_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		io.WriteString(w, successBody)
	}))
	defer srv.Close()

	receipt, err := newProvider(t, srv, 3).Send(context.Background(), notification())
	require.NoError(t, err)
	assert.Equal(t, "SM123", receipt.SID)
	assert.Equal(t, int32(3), calls.Load())
}

func TestTwilioProvider_Send_GivesUpAfterMaxRetries(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := newProvider(t, srv, 2).Send(context.Background(), notification())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
	assert.Equal(t, int32(3), calls.Load())
}

func TestTwilioProvider_Send_UnexpectedStatus(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := newProvider(t, srv, 3).Send(context.Background(), notification())
	require.Error(t, err)
	assert.Equal(t, "received status code: 401", err.Error())
	assert.Equal(t, int32(1), calls.Load())
}

func TestNewTwilioProvider_RequiresCredentials(t *testing.T) {
	_, err := adapters.NewTwilioProvider(config.TwilioConfig{AccountSID: "AC123"}, nil, 0, slog.New(slog.NewTextHandler(io.Discard, nil)))
	assert.ErrorIs(t, err, domain.ErrNotifierDisabled)
}

func TestTwilioProvider_Send_RetriesShareLimiter(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	// One token an hour: the retry after the first 503 has to wait past the deadline.
	p := newProvider(t, srv, 3).WithLimiter(rate.NewLimiter(rate.Every(time.Hour), 1))

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	_, err := p.Send(ctx, notification())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "throttled")
	assert.Equal(t, int32(1), calls.Load())
}
