package models

import (
	"net/url"
	"time"

	"github.com/rohanthewiz/serr"
)

// ============================================================================
// Application Configuration
//
// Values come from flags, TAXFORM_* environment variables or an optional
// taxform.yaml (see cmd/root.go). Defaults run the whole flow on one
// machine: the form posts to this server's own receiving endpoint.
// ============================================================================

// Config holds the runtime settings for the server and the terminal form.
type Config struct {
	Address       string        // Listen address for the web server (TAXFORM_ADDRESS)
	SubmitURL     string        // Remote endpoint receiving submissions (TAXFORM_SUBMIT_URL)
	SubmitTimeout time.Duration // Upper bound for one submission round trip (TAXFORM_SUBMIT_TIMEOUT)
	SessionTTL    time.Duration // Idle lifetime of a form session (TAXFORM_SESSION_TTL)
	RateLimit     int           // Requests per minute per client, 0 disables (TAXFORM_RATE_LIMIT)
	LogLevel      string        // debug, info, warn, error (TAXFORM_LOG_LEVEL)
}

const (
	DefaultAddress       = ":8000"
	DefaultSubmitURL     = "http://localhost:8000/api/v1/submissions"
	DefaultSubmitTimeout = 30 * time.Second
	DefaultSessionTTL    = 30 * time.Minute
	DefaultRateLimit     = 300
	DefaultLogLevel      = "info"
)

// DefaultConfig returns a config that runs locally without any settings.
func DefaultConfig() Config {
	return Config{
		Address:       DefaultAddress,
		SubmitURL:     DefaultSubmitURL,
		SubmitTimeout: DefaultSubmitTimeout,
		SessionTTL:    DefaultSessionTTL,
		RateLimit:     DefaultRateLimit,
		LogLevel:      DefaultLogLevel,
	}
}

// Validate fails fast on settings that would only surface at submit time.
func (c Config) Validate() error {
	if c.Address == "" {
		return serr.New("address is required")
	}

	u, err := url.Parse(c.SubmitURL)
	if err != nil {
		return serr.Wrap(err, "invalid submit_url")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return serr.New("submit_url must be an http or https URL")
	}
	if u.Host == "" {
		return serr.New("submit_url must include a host")
	}

	if c.SubmitTimeout <= 0 {
		return serr.New("submit_timeout must be positive")
	}
	if c.SessionTTL < time.Minute {
		return serr.New("session_ttl must be at least 1m")
	}
	if c.RateLimit < 0 {
		return serr.New("rate_limit cannot be negative")
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return serr.New("log_level must be one of debug, info, warn, error")
	}
	return nil
}
