// Package service composes the intake pipeline and the content reader into
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"sync"
	"time"

	"code.cloudfoundry.org/clock"

	"github.com/galactis/web/internal/domain/content"
	"github.com/galactis/web/internal/domain/intake"
	"github.com/galactis/web/internal/domain/model"
	"github.com/galactis/web/internal/domain/ratelimit"
	"github.com/galactis/web/pkg/logger"
)

// Service implements the API dependencies for the website backend.
type Service struct {
	mu sync.RWMutex

	// Core components
	limiter   *ratelimit.Limiter
	forwarder *intake.Forwarder
	reader    *content.Reader

	// Collaborators
	crm    intake.CRM
	source content.Source

	// Configuration
	rateLimit  int
	rateWindow time.Duration
	crmTimeout time.Duration
	contentTTL time.Duration
	clock      clock.Clock

	// State
	started bool
	cancel  context.CancelFunc
	done    chan struct{}

	logger logger.Logger
}

// New constructs a Service. Components are built immediately so the
// service can answer requests before Start; Start only launches the
// background sweep.
func New(opts ...Option) *Service {
	s := &Service{
		rateLimit:  ratelimit.DefaultLimit,
		rateWindow: ratelimit.DefaultWindow,
		crmTimeout: intake.DefaultCRMTimeout,
		contentTTL: content.DefaultTTL,
		clock:      clock.NewClock(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.NewNop()
	}

	s.limiter = ratelimit.New(
		ratelimit.WithLimit(s.rateLimit),
		ratelimit.WithWindow(s.rateWindow),
		ratelimit.WithClock(s.clock),
		ratelimit.WithLogger(s.logger.Named("ratelimit")),
	)
	s.forwarder = intake.New(s.crm, s.limiter,
		intake.WithClock(s.clock),
		intake.WithCRMTimeout(s.crmTimeout),
		intake.WithLogger(s.logger.Named("intake")),
	)
	s.reader = content.New(s.source,
		content.WithTTL(s.contentTTL),
		content.WithLogger(s.logger.Named("content")),
	)
	return s
}

// Start launches the rate-limit sweep. It is a no-op when already started.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		s.limiter.Run(runCtx)
	}()

	s.cancel = cancel
	s.done = done
	s.started = true
	s.logger.Info(ctx, "website service started",
		logger.Int("rate_limit", s.rateLimit),
		logger.Duration("rate_window", s.rateWindow),
		logger.Duration("crm_timeout", s.crmTimeout),
		logger.Bool("crm_configured", configured(s.crm)),
		logger.Bool("cms_configured", configured(s.source)),
	)
	return nil
}

// Stop ends the sweep and waits for it to return.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.cancel()
	<-s.done
	s.started = false
	s.logger.Info(context.Background(), "website service stopped")
}

// SubmitContact forwards a general contact submission.
func (s *Service) SubmitContact(ctx context.Context, clientID string, c model.GeneralContact) intake.Outcome {
	return s.forwarder.SubmitContact(ctx, clientID, c)
}

// SubmitPartner forwards a partner application.
func (s *Service) SubmitPartner(ctx context.Context, clientID string, p model.PartnerApplication) intake.Outcome {
	return s.forwarder.SubmitPartner(ctx, clientID, p)
}

// ListPosts returns up to limit published posts.
func (s *Service) ListPosts(ctx context.Context, limit int) []model.BlogPost {
	return s.reader.ListPosts(ctx, limit)
}

// PostBySlug returns the published post with slug.
func (s *Service) PostBySlug(ctx context.Context, slug string) (model.BlogPost, bool) {
	return s.reader.PostBySlug(ctx, slug)
}

// Slugs returns every published slug.
func (s *Service) Slugs(ctx context.Context) []string {
	return s.reader.Slugs(ctx)
}

// Invalidate drops cached content.
func (s *Service) Invalidate() {
	s.reader.Invalidate()
	s.logger.Debug(context.Background(), "content cache flushed")
}

// Limiter exposes the rate limiter for inspection.
func (s *Service) Limiter() *ratelimit.Limiter { return s.limiter }

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return map[string]any{
		"started":            s.started,
		"rateLimit":          s.limiter.Limit(),
		"rateWindowSeconds":  int(s.limiter.Window().Seconds()),
		"rateLimitRecords":   s.limiter.Len(),
		"crmTimeoutMs":       s.crmTimeout.Milliseconds(),
		"crmConfigured":      configured(s.crm),
		"cmsConfigured":      configured(s.source),
		"contentCachedItems": s.reader.CachedItems(),
	}
}

// configured reports whether a collaborator is set and, if it can tell,
// whether it has the settings it needs.
func configured(c any) bool {
	if c == nil {
		return false
	}
	if cc, ok := c.(interface{ Configured() bool }); ok {
		return cc.Configured()
	}
	return true
}
