// Package site renders the public blog pages.
package site

import (
	"bytes"
	"context"
	"errors"
	"html/template"
	"net/http"
	"strings"

	"github.com/galactis/web/internal/domain/content"
	"github.com/galactis/web/internal/domain/model"
	"github.com/galactis/web/pkg/logger"
)

// Error constants
var (
	ErrRender = errors.New("blog page render failed")
)

const (
	listPath = "/resources/blog"
	postPath = "/resources/blog/"
)

// Posts reads blog content.
type Posts interface {
	ListPosts(ctx context.Context, limit int) []model.BlogPost
	PostBySlug(ctx context.Context, slug string) (model.BlogPost, bool)
}

// BlogHandler serves the listing and post pages.
type BlogHandler struct {
	posts  Posts
	limit  int
	logger logger.Logger
}

// NewBlogHandler creates a blog handler listing up to limit posts.
func NewBlogHandler(posts Posts, limit int, lg logger.Logger) *BlogHandler {
	if limit <= 0 {
		limit = 10
	}
	if lg == nil {
		lg = logger.NewNop()
	}
	return &BlogHandler{posts: posts, limit: limit, logger: lg}
}

// Register attaches the blog routes to mux.
func Register(_ context.Context, mux *http.ServeMux, h *BlogHandler) {
	if mux == nil {
		panic("mux is nil")
	}
	mux.HandleFunc(listPath, h.HandleList)
	mux.HandleFunc(postPath, h.HandlePost)
}

type listPage struct {
	Title string
	Posts []model.BlogPost
}

type postPage struct {
	Title    string
	Post     model.BlogPost
	Body     template.HTML
	ReadTime int
}

// HandleList handles GET /resources/blog. The fallback posts are shown when
// the CMS returns nothing.
func (h *BlogHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	posts := content.OrFallback(h.posts.ListPosts(r.Context(), h.limit))
	h.render(r.Context(), w, http.StatusOK, "list", listPage{Title: "Blog", Posts: posts})
}

// HandlePost handles GET /resources/blog/{slug}.
func (h *BlogHandler) HandlePost(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	slug := strings.Trim(strings.TrimPrefix(r.URL.Path, postPath), "/")
	if slug == "" {
		http.Redirect(w, r, listPath, http.StatusMovedPermanently)
		return
	}

	post, ok := h.posts.PostBySlug(r.Context(), slug)
	if !ok {
		post, ok = content.FallbackBySlug(slug)
	}
	if !ok {
		h.render(r.Context(), w, http.StatusNotFound, "notfound", listPage{Title: "Post not found"})
		return
	}

	text := post.Content
	if text == "" {
		text = post.Excerpt
	}
	h.render(r.Context(), w, http.StatusOK, "post", postPage{
		Title: post.Title,
		Post:  post,
		// Rendered unescaped: only editors of the first-party Hygraph project
		// can author post HTML. Fallback posts carry no content.
		Body:     template.HTML(post.Content), //nolint:gosec // trusted CMS content
		ReadTime: max(content.ReadTime(text), 1),
	})
}

func (h *BlogHandler) render(ctx context.Context, w http.ResponseWriter, status int, name string, data any) {
	var buf bytes.Buffer
	if err := pages.ExecuteTemplate(&buf, name, data); err != nil {
		h.logger.Error(ctx, "render blog page", logger.String("template", name), logger.Error(errors.Join(ErrRender, err)))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
