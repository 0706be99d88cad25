package service

import (
	"time"

	"code.cloudfoundry.org/clock"

	"github.com/galactis/web/internal/domain/content"
	"github.com/galactis/web/internal/domain/intake"
	"github.com/galactis/web/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(lg logger.Logger) Option {
	return func(s *Service) {
		if lg != nil {
			s.logger = lg
		}
	}
}

// WithRateLimit sets the per-client submission budget and its window.
func WithRateLimit(limit int, window time.Duration) Option {
	return func(s *Service) {
		if limit > 0 {
			s.rateLimit = limit
		}
		if window > 0 {
			s.rateWindow = window
		}
	}
}

// WithCRMTimeout bounds each CRM call.
func WithCRMTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.crmTimeout = d
		}
	}
}

// WithContentTTL sets the content cache lifetime.
func WithContentTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.contentTTL = ttl
		}
	}
}

// WithCRM sets the lead destination.
func WithCRM(crm intake.CRM) Option {
	return func(s *Service) {
		s.crm = crm
	}
}

// WithContentSource sets the CMS.
func WithContentSource(src content.Source) Option {
	return func(s *Service) {
		s.source = src
	}
}

// WithClock sets the clock shared by the limiter and the forwarder.
func WithClock(c clock.Clock) Option {
	return func(s *Service) {
		if c != nil {
			s.clock = c
		}
	}
}
