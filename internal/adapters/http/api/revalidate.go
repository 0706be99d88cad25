package api

import (
	"crypto/subtle"
	"net/http"

	"code.cloudfoundry.org/clock"

	"github.com/galactis/web/pkg/logger"
	"github.com/galactis/web/pkg/metrics"
)

// HeaderWebhookSecret carries the CMS webhook's shared secret.
const HeaderWebhookSecret = "X-Webhook-Secret"

// RevalidatedPaths are the pages a content change refreshes.
var RevalidatedPaths = []string{"/resources/blog", "/resources/blog/[slug]", "/sitemap.xml"}

// RevalidateDependencies drops cached content.
type RevalidateDependencies interface {
	Invalidate()
}

type messageResponse struct {
	Message string `json:"message"`
}

type revalidateResponse struct {
	Revalidated bool     `json:"revalidated"`
	Now         int64    `json:"now"`
	Paths       []string `json:"paths"`
}

// RevalidateHandler handles the CMS publish webhook.
type RevalidateHandler struct {
	deps   RevalidateDependencies
	secret string
	clock  clock.Clock
	logger logger.Logger
}

// NewRevalidateHandler creates a new revalidate handler.
func NewRevalidateHandler(deps RevalidateDependencies, secret string, c clock.Clock, lg logger.Logger) *RevalidateHandler {
	if c == nil {
		c = clock.NewClock()
	}
	if lg == nil {
		lg = logger.NewNop()
	}
	return &RevalidateHandler{deps: deps, secret: secret, clock: c, logger: lg}
}

// HandleRevalidate handles POST /revalidate requests.
func (h *RevalidateHandler) HandleRevalidate(w http.ResponseWriter, r *http.Request) {
	const op = "api.revalidate"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	ctx := r.Context()

	if h.secret == "" {
		h.logger.Error(ctx, "revalidation requested but no secret configured",
			logger.Error(NewKind(op, ErrNotConfigured)))
		writeJSON(w, http.StatusInternalServerError, messageResponse{Message: "Revalidation secret not configured"})
		return
	}

	got := r.Header.Get(HeaderWebhookSecret)
	if subtle.ConstantTimeCompare([]byte(got), []byte(h.secret)) != 1 {
		h.logger.Warn(ctx, "revalidation rejected", logger.Error(NewKind(op, ErrUnauthorized)))
		writeJSON(w, http.StatusUnauthorized, messageResponse{Message: "Invalid secret"})
		return
	}

	h.deps.Invalidate()
	metrics.RecordRevalidation()
	h.logger.Info(ctx, "content cache revalidated", logger.Any("paths", RevalidatedPaths))

	writeJSON(w, http.StatusOK, revalidateResponse{
		Revalidated: true,
		Now:         h.clock.Now().UnixMilli(),
		Paths:       append([]string(nil), RevalidatedPaths...),
	})
}
