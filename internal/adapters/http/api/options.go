package api

import (
	"code.cloudfoundry.org/clock"

	"github.com/galactis/web/pkg/logger"
)

// DefaultPostLimit is the listing size when ?limit is absent.
const DefaultPostLimit = 10

type options struct {
	revalidationSecret string
	postLimit          int
	clock              clock.Clock
	logger             logger.Logger
}

func defaultOptions() options {
	return options{
		postLimit: DefaultPostLimit,
		clock:     clock.NewClock(),
		logger:    logger.NewNop(),
	}
}

// Option configures a Server.
type Option func(*options)

// WithRevalidationSecret sets the shared secret POST /revalidate requires.
// An empty secret disables the endpoint.
func WithRevalidationSecret(secret string) Option {
	return func(o *options) {
		o.revalidationSecret = secret
	}
}

// WithPostLimit sets the default listing size.
func WithPostLimit(limit int) Option {
	return func(o *options) {
		if limit > 0 {
			o.postLimit = limit
		}
	}
}

// WithClock sets the clock used for revalidation timestamps.
func WithClock(c clock.Clock) Option {
	return func(o *options) {
		if c != nil {
			o.clock = c
		}
	}
}

// WithLogger sets a custom logger for handlers and middleware.
func WithLogger(lg logger.Logger) Option {
	return func(o *options) {
		if lg != nil {
			o.logger = lg
		}
	}
}
