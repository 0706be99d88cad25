// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/galactis/web/pkg/logger"
	"github.com/galactis/web/pkg/metrics"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	IntakeDependencies
	PostsDependencies
	RevalidateDependencies
}

// GenericErrorMessage is the only detail a client sees for a 500.
const GenericErrorMessage = "An error occurred. Please try again."

const maxBodyBytes = 64 << 10

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler     *HealthHandler
	statsHandler      *StatsHandler
	contactHandler    *ContactHandler
	postsHandler      *PostsHandler
	revalidateHandler *RevalidateHandler
	logger            logger.Logger
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...Option) *Server {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Server{
		healthHandler:     NewHealthHandler(),
		statsHandler:      NewStatsHandler(statsProvider),
		contactHandler:    NewContactHandler(deps, o.logger),
		postsHandler:      NewPostsHandler(deps, o.postLimit),
		revalidateHandler: NewRevalidateHandler(deps, o.revalidationSecret, o.clock, o.logger),
		logger:            o.logger,
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/contact", MetricsMiddleware(s.contactHandler.HandleContact, "contact"))
	mux.HandleFunc("/contact/partner", MetricsMiddleware(s.contactHandler.HandlePartner, "contact_partner"))
	mux.HandleFunc("/revalidate", MetricsMiddleware(s.revalidateHandler.HandleRevalidate, "revalidate"))
	mux.HandleFunc("/posts", MetricsMiddleware(s.postsHandler.HandleListPosts, "posts"))
	mux.HandleFunc("/posts/", MetricsMiddleware(s.postsHandler.HandleGetPost, "post"))
}

// Handler wraps h with the middleware every route shares.
func (s *Server) Handler(h http.Handler) http.Handler {
	return RequestIDMiddleware(RecoverMiddleware(h, s.logger))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// errWrongShape marks a body that is valid JSON but does not fit the target
// type. The target is still filled as far as the value allows.
var errWrongShape = errors.New("body does not match the expected shape")

// decodeJSON reads a single JSON value from the request body.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(body)
	var typeErr *json.UnmarshalTypeError
	err := dec.Decode(v)
	if err != nil && !errors.As(err, &typeErr) {
		return fmt.Errorf("decode body: %w", err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errors.New("decode body: trailing data")
	}
	if typeErr != nil {
		return fmt.Errorf("decode body: %w: %w", errWrongShape, typeErr)
	}
	return nil
}
