package hubspot

import (
	"net/http"

	"github.com/galactis/web/pkg/logger"
)

// Option applies a configuration option to the Client.
type Option func(*Client)

// WithHTTPClient sets the HTTP client used for submissions.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithBaseURL overrides the Forms API host.
func WithBaseURL(base string) Option {
	return func(c *Client) {
		if base != "" {
			c.baseURL = base
		}
	}
}

// WithSiteURL sets the page URI reported when a lead has no source.
func WithSiteURL(site string) Option {
	return func(c *Client) {
		if site != "" {
			c.siteURL = site
		}
	}
}

// WithSubscriptionTypeID sets the consent subscription type.
func WithSubscriptionTypeID(id int) Option {
	return func(c *Client) {
		if id > 0 {
			c.subscriptionTypeID = id
		}
	}
}

// WithDevelopment makes an unconfigured client accept leads.
func WithDevelopment(dev bool) Option {
	return func(c *Client) {
		c.development = dev
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
