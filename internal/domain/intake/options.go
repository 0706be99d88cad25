package intake

import (
	"time"

	"code.cloudfoundry.org/clock"

	"github.com/galactis/web/pkg/logger"
)

// Option applies a configuration option to the Forwarder.
type Option func(*Forwarder)

// WithLogger sets a custom logger for the forwarder.
func WithLogger(lg logger.Logger) Option {
	return func(f *Forwarder) {
		if lg != nil {
			f.logger = lg
		}
	}
}

// WithClock sets the clock used for lead timestamps.
func WithClock(c clock.Clock) Option {
	return func(f *Forwarder) {
		if c != nil {
			f.clock = c
		}
	}
}

// WithCRMTimeout bounds each CRM call.
func WithCRMTimeout(d time.Duration) Option {
	return func(f *Forwarder) {
		if d > 0 {
			f.crmTimeout = d
		}
	}
}

// WithIDGenerator replaces the submission id source.
func WithIDGenerator(gen func() string) Option {
	return func(f *Forwarder) {
		if gen != nil {
			f.newID = gen
		}
	}
}
