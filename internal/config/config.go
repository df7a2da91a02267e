package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

const defaultTwilioBaseURL = "https://api.twilio.com/2010-04-01"

// Config holds all runtime configuration for the CLI.
// The cipher core never sees it; only the orchestration layer does.
type Config struct {
	Environment string // "development" or "production"
	LogLevel    slog.Level
	LogFormat   string // "text" or "json"

	Twilio TwilioConfig
	Notify NotifyConfig
}

// TwilioConfig is handed to the Twilio provider at construction time.
type TwilioConfig struct {
	AccountSID string
	AuthToken  string
	FromNumber string // WhatsApp-enabled sender, E.164
	BaseURL    string
}

// Enabled reports whether every credential needed to send a message is present.
func (t TwilioConfig) Enabled() bool {
	return t.AccountSID != "" && t.AuthToken != "" && t.FromNumber != ""
}

func (t TwilioConfig) partial() bool {
	set := 0
	for _, v := range []string{t.AccountSID, t.AuthToken, t.FromNumber} {
		if v != "" {
			set++
		}
	}
	return set > 0 && set < 3
}

// NotifyConfig bounds how hard the notifier may hit the messaging API.
type NotifyConfig struct {
	RatePerSecond float64
	Burst         int
	MaxRetries    uint64
	Timeout       time.Duration
}

// Load parses the environment and applies sensible default fallbacks.
// Call godotenv before Load if a .env file should be honoured.
func Load() (*Config, error) {
	env := getEnv("CIPHER_ENV", "development")

	level, err := parseLevel(getEnv("CIPHER_LOG_LEVEL", "warn"))
	if err != nil {
		return nil, err
	}

	format := strings.ToLower(getEnv("CIPHER_LOG_FORMAT", "text"))
	if format != "text" && format != "json" {
		return nil, fmt.Errorf("config: CIPHER_LOG_FORMAT must be text or json, got %q", format)
	}

	twilio := TwilioConfig{
		AccountSID: getEnv("TWILIO_ACCOUNT_SID", ""),
		AuthToken:  getEnv("TWILIO_AUTH_TOKEN", ""),
		FromNumber: getEnv("TWILIO_WHATSAPP_NUMBER", ""),
		BaseURL:    strings.TrimRight(getEnv("TWILIO_API_BASE_URL", defaultTwilioBaseURL), "/"),
	}

	// Fail fast on half-configured credentials in production
	if env == "production" && twilio.partial() {
		return nil, fmt.Errorf("config: TWILIO_ACCOUNT_SID, TWILIO_AUTH_TOKEN and TWILIO_WHATSAPP_NUMBER must be set together")
	}

	rate, err := strconv.ParseFloat(getEnv("CIPHER_NOTIFY_RATE", "1"), 64)
	if err != nil || rate <= 0 {
		return nil, fmt.Errorf("config: CIPHER_NOTIFY_RATE must be a positive number")
	}

	burst, err := strconv.Atoi(getEnv("CIPHER_NOTIFY_BURST", "1"))
	if err != nil || burst < 1 {
		return nil, fmt.Errorf("config: CIPHER_NOTIFY_BURST must be a positive integer")
	}

	retries, err := strconv.ParseUint(getEnv("CIPHER_NOTIFY_MAX_RETRIES", "3"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("config: invalid CIPHER_NOTIFY_MAX_RETRIES: %w", err)
	}

	timeout, err := time.ParseDuration(getEnv("CIPHER_NOTIFY_TIMEOUT", "15s"))
	if err != nil {
		return nil, fmt.Errorf("config: invalid CIPHER_NOTIFY_TIMEOUT: %w", err)
	}

	return &Config{
		Environment: env,
		LogLevel:    level,
		LogFormat:   format,
		Twilio:      twilio,
		Notify: NotifyConfig{
			RatePerSecond: rate,
			Burst:         burst,
			MaxRetries:    retries,
			Timeout:       timeout,
		},
	}, nil
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("config: invalid CIPHER_LOG_LEVEL: %w", err)
	}
	return level, nil
}

// getEnv retrieves an environment variable or returns a fallback value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
