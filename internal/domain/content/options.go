package content

import (
	"time"

	"github.com/galactis/web/pkg/logger"
)

// Option applies a configuration option to the Reader.
type Option func(*Reader)

// WithTTL sets how long a successful fetch is served from cache.
func WithTTL(ttl time.Duration) Option {
	return func(r *Reader) {
		if ttl > 0 {
			r.ttl = ttl
		}
	}
}

// WithFetchTimeout bounds a single shared CMS load.
func WithFetchTimeout(d time.Duration) Option {
	return func(r *Reader) {
		if d > 0 {
			r.fetchTimeout = d
		}
	}
}

// WithLogger sets a custom logger for the reader.
func WithLogger(lg logger.Logger) Option {
	return func(r *Reader) {
		if lg != nil {
			r.logger = lg
		}
	}
}
