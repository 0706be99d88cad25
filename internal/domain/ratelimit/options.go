package ratelimit

import (
	"time"

	"code.cloudfoundry.org/clock"

	"github.com/galactis/web/pkg/logger"
)

// Option applies a configuration option to the Limiter.
type Option func(*Limiter)

// WithLimit sets the number of submissions allowed per window.
func WithLimit(limit int) Option {
	return func(l *Limiter) {
		if limit > 0 {
			l.limit = limit
		}
	}
}

// WithWindow sets the window length, which is also the sweep interval.
func WithWindow(window time.Duration) Option {
	return func(l *Limiter) {
		if window > 0 {
			l.window = window
		}
	}
}

// WithClock injects the time source.
func WithClock(c clock.Clock) Option {
	return func(l *Limiter) {
		if c != nil {
			l.clock = c
		}
	}
}

// WithLogger sets a custom logger for the limiter.
func WithLogger(lg logger.Logger) Option {
	return func(l *Limiter) {
		if lg != nil {
			l.logger = lg
		}
	}
}
