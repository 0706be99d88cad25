// Package content reads blog posts from the CMS.
//
// Read errors never reach callers: a failed list is empty and a failed
// single-post read is "not found". Successful reads are cached until the
// TTL passes or Invalidate is called; failures are not cached.
package content

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"

	"github.com/galactis/web/internal/domain/model"
	"github.com/galactis/web/pkg/logger"
	"github.com/galactis/web/pkg/metrics"
)

// Defaults for the reader.
const (
	DefaultTTL          = time.Hour
	DefaultFetchTimeout = 10 * time.Second
)

// Source is the CMS.
type Source interface {
	ListPosts(ctx context.Context, first, skip int) ([]model.BlogPost, error)
	PostBySlug(ctx context.Context, slug string) (model.BlogPost, error)
	Slugs(ctx context.Context) ([]string, error)
}

// Reader is a caching, error-swallowing view of a Source.
type Reader struct {
	source Source
	cache  *cache.Cache
	group  singleflight.Group
	ttl    time.Duration
	// fetchTimeout bounds a shared CMS load, which outlives any one caller.
	fetchTimeout time.Duration
	logger       logger.Logger
}

// New creates a Reader over source. A nil source behaves as unconfigured.
func New(source Source, opts ...Option) *Reader {
	r := &Reader{
		source:       source,
		ttl:          DefaultTTL,
		fetchTimeout: DefaultFetchTimeout,
		logger:       logger.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.cache = cache.New(r.ttl, 2*r.ttl)
	return r
}

// ListPosts returns up to limit published posts, or an empty slice.
func (r *Reader) ListPosts(ctx context.Context, limit int) []model.BlogPost {
	key := fmt.Sprintf("posts:%d", limit)
	v, err := r.fetch(ctx, "list_posts", key, func(ctx context.Context) (any, error) {
		if r.source == nil {
			return nil, ErrNotConfigured
		}
		return r.source.ListPosts(ctx, limit, 0)
	})
	if err != nil {
		return []model.BlogPost{}
	}
	posts, _ := v.([]model.BlogPost)
	if posts == nil {
		return []model.BlogPost{}
	}
	return append([]model.BlogPost(nil), posts...)
}

// PostBySlug returns the published post with slug.
func (r *Reader) PostBySlug(ctx context.Context, slug string) (model.BlogPost, bool) {
	if slug == "" {
		return model.BlogPost{}, false
	}
	v, err := r.fetch(ctx, "post_by_slug", "post:"+slug, func(ctx context.Context) (any, error) {
		if r.source == nil {
			return nil, ErrNotConfigured
		}
		return r.source.PostBySlug(ctx, slug)
	})
	if err != nil {
		return model.BlogPost{}, false
	}
	post, ok := v.(model.BlogPost)
	return post, ok
}

// Slugs returns every published slug, or an empty slice.
func (r *Reader) Slugs(ctx context.Context) []string {
	v, err := r.fetch(ctx, "slugs", "slugs", func(ctx context.Context) (any, error) {
		if r.source == nil {
			return nil, ErrNotConfigured
		}
		return r.source.Slugs(ctx)
	})
	if err != nil {
		return []string{}
	}
	slugs, _ := v.([]string)
	return append([]string{}, slugs...)
}

// Invalidate drops every cached result.
func (r *Reader) Invalidate() {
	r.cache.Flush()
}

// CachedItems returns the number of cached results.
func (r *Reader) CachedItems() int {
	return r.cache.ItemCount()
}

// fetch serves key from cache or runs load once for all concurrent callers.
// The shared load runs detached from ctx under its own timeout, so one
// caller going away does not fail the others; each caller still stops
// waiting when its own ctx is done.
func (r *Reader) fetch(ctx context.Context, op, key string, load func(context.Context) (any, error)) (any, error) {
	if v, ok := r.cache.Get(key); ok {
		metrics.RecordCacheLookup(true)
		return v, nil
	}
	metrics.RecordCacheLookup(false)

	ch := r.group.DoChan(key, func() (any, error) {
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.fetchTimeout)
		defer cancel()

		start := time.Now()
		v, err := load(loadCtx)
		elapsed := time.Since(start)

		switch {
		case err == nil:
			metrics.RecordCMSFetch(op, "ok", float64(elapsed.Milliseconds()))
			r.cache.Set(key, v, cache.DefaultExpiration)
		case errors.Is(err, ErrNotConfigured):
			metrics.RecordCMSFetch(op, "not_configured", 0)
			r.logger.Warn(loadCtx, "cms not configured", logger.String("operation", op))
		case errors.Is(err, ErrNotFound):
			metrics.RecordCMSFetch(op, "not_found", float64(elapsed.Milliseconds()))
			r.logger.Debug(loadCtx, "cms post not found", logger.String("key", key))
		default:
			metrics.RecordCMSFetch(op, "error", float64(elapsed.Milliseconds()))
			r.logger.Error(loadCtx, "cms fetch failed",
				logger.String("operation", op),
				logger.String("key", key),
				logger.Error(err),
			)
		}
		return v, err
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		return res.Val, res.Err
	}
}
