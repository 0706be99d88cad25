package formprobe

import (
	"errors"
	"fmt"
	"time"

	"github.com/galactis/web/internal/domain/model"
)

// Defaults for a probe run.
const (
	DefaultBaseURL = "http://localhost:9080"
	DefaultCount   = 11
	DefaultLimit   = 10
	DefaultIP      = "203.0.113.7"
	DefaultTimeout = 10 * time.Second
)

// ErrInvalidConfig is returned by Config.Validate.
var ErrInvalidConfig = errors.New("invalid probe config")

// Config holds configuration for one probe run
type Config struct {
	BaseURL string         // Base URL of the service
	IP      string         // Value sent as X-Forwarded-For on every request
	Count   int            // Number of submissions to send
	Form    model.FormKind // Which form endpoint to target
	Limit   int            // Expected number of accepted submissions per window
	Timeout time.Duration  // Per-request HTTP timeout
	Verbose bool           // Log every response
}

// Validate fills zero values with defaults and rejects the rest.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.IP == "" {
		c.IP = DefaultIP
	}
	if c.Form == "" {
		c.Form = model.FormContact
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.Count <= 0 {
		return fmt.Errorf("%w: count must be positive, got %d", ErrInvalidConfig, c.Count)
	}
	if c.Limit < 0 {
		return fmt.Errorf("%w: limit must not be negative, got %d", ErrInvalidConfig, c.Limit)
	}
	if _, err := endpoint(c.Form); err != nil {
		return err
	}
	return nil
}

// endpoint maps a form kind to its API path.
func endpoint(form model.FormKind) (string, error) {
	switch form {
	case model.FormContact:
		return "/contact", nil
	case model.FormPartner:
		return "/contact/partner", nil
	default:
		return "", fmt.Errorf("%w: unknown form %q", ErrInvalidConfig, form)
	}
}
