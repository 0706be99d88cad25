package hygraph

import (
	"net/http"
	"time"

	"github.com/galactis/web/pkg/logger"
)

// Option applies a configuration option to the Client.
type Option func(*Client)

// WithToken authorizes requests with a permanent auth token.
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

// WithTimeout bounds each request.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithHTTPClient sets the base HTTP client. Token auth wraps its transport.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.base = hc
		}
	}
}

// WithLogger sets a custom logger for the client.
func WithLogger(lg logger.Logger) Option {
	return func(c *Client) {
		if lg != nil {
			c.logger = lg
		}
	}
}
