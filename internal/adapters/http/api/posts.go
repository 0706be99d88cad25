package api

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/galactis/web/internal/domain/content"
	"github.com/galactis/web/internal/domain/model"
)

const maxPostLimit = 100

// PostsDependencies reads blog content.
type PostsDependencies interface {
	ListPosts(ctx context.Context, limit int) []model.BlogPost
	PostBySlug(ctx context.Context, slug string) (model.BlogPost, bool)
}

type postsResponse struct {
	Posts    []model.BlogPost `json:"posts"`
	Fallback bool             `json:"fallback"`
}

// PostsHandler serves blog posts as JSON.
type PostsHandler struct {
	deps         PostsDependencies
	defaultLimit int
}

// NewPostsHandler creates a new posts handler.
func NewPostsHandler(deps PostsDependencies, defaultLimit int) *PostsHandler {
	if defaultLimit <= 0 {
		defaultLimit = DefaultPostLimit
	}
	return &PostsHandler{deps: deps, defaultLimit: defaultLimit}
}

// HandleListPosts handles GET /posts?limit=N requests.
func (h *PostsHandler) HandleListPosts(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_posts"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	limit := h.defaultLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > maxPostLimit {
			writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
			return
		}
		limit = n
	}

	posts := h.deps.ListPosts(r.Context(), limit)
	writeJSON(w, http.StatusOK, postsResponse{
		Posts:    content.OrFallback(posts),
		Fallback: len(posts) == 0,
	})
}

// HandleGetPost handles GET /posts/{slug} requests.
func (h *PostsHandler) HandleGetPost(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_post"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	slug := strings.TrimPrefix(r.URL.Path, "/posts/")
	if slug == "" || strings.Contains(slug, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	post, ok := h.deps.PostBySlug(r.Context(), slug)
	if !ok {
		post, ok = content.FallbackBySlug(slug)
	}
	if !ok {
		writeError(w, http.StatusNotFound, "not_found", NewKind(op, ErrNotFound))
		return
	}
	writeJSON(w, http.StatusOK, post)
}
