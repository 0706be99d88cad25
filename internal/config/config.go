// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load layers a dotenv file, an optional YAML file and GALACTIS_* env vars.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"time"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// Environment is "development" or "production". In development an
	// unconfigured CRM accepts submissions locally.
	Environment string `koanf:"environment"`

	// SiteURL is the public site origin, used as the CRM page URI fallback.
	SiteURL string `koanf:"site_url"`

	// RateLimit is the number of submissions allowed per client per window.
	RateLimit int `koanf:"rate_limit"`

	// RateWindow is the length of a rate-limit window and the sweep interval.
	RateWindow time.Duration `koanf:"rate_window"`

	// CRMTimeout bounds a single outbound CRM submission.
	CRMTimeout time.Duration `koanf:"crm_timeout"`

	// HubSpot Forms API settings.
	HubSpotPortalID           string `koanf:"hubspot_portal_id"`
	HubSpotFormID             string `koanf:"hubspot_form_id"`
	HubSpotBaseURL            string `koanf:"hubspot_base_url"`
	HubSpotSubscriptionTypeID int    `koanf:"hubspot_subscription_type_id"`

	// Hygraph content API settings. An empty endpoint disables the CMS.
	HygraphEndpoint string        `koanf:"hygraph_endpoint"`
	HygraphToken    string        `koanf:"hygraph_token"`
	HygraphTimeout  time.Duration `koanf:"hygraph_timeout"`

	// BlogPostLimit caps the number of posts fetched for the listing.
	BlogPostLimit int `koanf:"blog_post_limit"`

	// ContentTTL is how long a successful CMS fetch is served from cache.
	ContentTTL time.Duration `koanf:"content_ttl"`

	// RevalidationSecret authenticates the CMS webhook. Empty disables it.
	RevalidationSecret string `koanf:"revalidation_secret"`
}

// IsDevelopment reports whether the process runs in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:                  "info",
		LogFormat:                 "text",
		Addr:                      ":8080",
		Environment:               "production",
		SiteURL:                   "https://galactis.ai",
		RateLimit:                 10,
		RateWindow:                time.Hour,
		CRMTimeout:                5 * time.Second,
		HubSpotBaseURL:            "https://api.hsforms.com",
		HubSpotSubscriptionTypeID: 999,
		HygraphTimeout:            5 * time.Second,
		BlogPostLimit:             10,
		ContentTTL:                time.Hour,
	}
}
