// Package hygraph reads published blog posts from a Hygraph content API.
package hygraph

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/galactis/web/internal/domain/model"
	"github.com/galactis/web/pkg/logger"
)

// DefaultTimeout bounds a request when no timeout option is given.
const DefaultTimeout = 5 * time.Second

const maxResponseBody = 4 << 20

// Client is a minimal GraphQL client for the Hygraph content API.
type Client struct {
	endpoint string
	token    string
	timeout  time.Duration
	base     *http.Client
	http     *http.Client
	logger   logger.Logger
}

// New creates a Client. An empty endpoint yields a client whose every call
// returns ErrNotConfigured.
func New(endpoint string, opts ...Option) *Client {
	c := &Client{
		endpoint: strings.TrimSpace(endpoint),
		timeout:  DefaultTimeout,
		base:     &http.Client{},
		logger:   logger.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	hc := c.base
	if c.token != "" {
		ctx := context.WithValue(context.Background(), oauth2.HTTPClient, c.base)
		hc = oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: c.token}))
	}
	c.http = &http.Client{
		Transport:     hc.Transport,
		CheckRedirect: hc.CheckRedirect,
		Jar:           hc.Jar,
		Timeout:       c.timeout,
	}
	return c
}

// Configured reports whether an endpoint is set.
func (c *Client) Configured() bool { return c.endpoint != "" }

// ListPosts returns up to first published posts after skipping skip.
func (c *Client) ListPosts(ctx context.Context, first, skip int) ([]model.BlogPost, error) {
	var data struct {
		Posts []post `json:"posts"`
	}
	vars := map[string]any{"first": first, "skip": skip}
	if err := c.query(ctx, queryAllPosts, vars, &data); err != nil {
		return nil, err
	}

	posts := make([]model.BlogPost, 0, len(data.Posts))
	for _, p := range data.Posts {
		posts = append(posts, p.toModel())
	}
	c.logger.Debug(ctx, "fetched posts", logger.Int("count", len(posts)))
	return posts, nil
}

// PostBySlug returns the published post with slug, or ErrNotFound.
func (c *Client) PostBySlug(ctx context.Context, slug string) (model.BlogPost, error) {
	var data struct {
		Post *post `json:"post"`
	}
	if err := c.query(ctx, queryPostBySlug, map[string]any{"slug": slug}, &data); err != nil {
		return model.BlogPost{}, err
	}
	if data.Post == nil {
		return model.BlogPost{}, fmt.Errorf("%w: %s", ErrNotFound, slug)
	}
	if data.Post.CoverImage == nil {
		c.logger.Debug(ctx, "post has no cover image", logger.String("slug", slug))
	}
	return data.Post.toModel(), nil
}

// Slugs returns the slug of every published post.
func (c *Client) Slugs(ctx context.Context) ([]string, error) {
	var data struct {
		Posts []struct {
			Slug string `json:"slug"`
		} `json:"posts"`
	}
	if err := c.query(ctx, queryAllSlugs, nil, &data); err != nil {
		return nil, err
	}
	slugs := make([]string, 0, len(data.Posts))
	for _, p := range data.Posts {
		slugs = append(slugs, p.Slug)
	}
	return slugs, nil
}

func (c *Client) query(ctx context.Context, query string, vars map[string]any, out any) error {
	if !c.Configured() {
		return ErrNotConfigured
	}

	body, err := json.Marshal(request{Query: query, Variables: vars})
	if err != nil {
		return fmt.Errorf("encode query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("hygraph request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: %d", ErrStatus, resp.StatusCode)
	}

	var envelope response
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if len(envelope.Errors) > 0 {
		msgs := make([]string, 0, len(envelope.Errors))
		for _, e := range envelope.Errors {
			msgs = append(msgs, e.Message)
		}
		return fmt.Errorf("%w: %s", ErrGraphQL, strings.Join(msgs, "; "))
	}
	if len(envelope.Data) == 0 || string(envelope.Data) == "null" {
		return fmt.Errorf("%w: empty data", ErrGraphQL)
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return fmt.Errorf("decode data: %w", err)
	}
	return nil
}
