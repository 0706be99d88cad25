package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/galactis/web/internal/domain/identity"
	"github.com/galactis/web/internal/domain/intake"
	"github.com/galactis/web/internal/domain/model"
	"github.com/galactis/web/internal/domain/validation"
	"github.com/galactis/web/pkg/logger"
	"github.com/galactis/web/pkg/metrics"
)

// IntakeDependencies runs submissions through the intake pipeline.
type IntakeDependencies interface {
	SubmitContact(ctx context.Context, clientID string, c model.GeneralContact) intake.Outcome
	SubmitPartner(ctx context.Context, clientID string, p model.PartnerApplication) intake.Outcome
}

type submitResponse struct {
	OK      bool   `json:"ok"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// ContactHandler handles the intake forms.
type ContactHandler struct {
	deps   IntakeDependencies
	logger logger.Logger
}

// NewContactHandler creates a new contact handler.
func NewContactHandler(deps IntakeDependencies, lg logger.Logger) *ContactHandler {
	if lg == nil {
		lg = logger.NewNop()
	}
	return &ContactHandler{deps: deps, logger: lg}
}

// HandleContact handles POST /contact requests.
func (h *ContactHandler) HandleContact(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_contact"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req model.GeneralContact
	if !h.decode(w, r, op, model.FormContact, &req) {
		return
	}
	out := h.deps.SubmitContact(r.Context(), identity.FromRequest(r), req)
	h.writeOutcome(r.Context(), w, op, out)
}

// HandlePartner handles POST /contact/partner requests.
func (h *ContactHandler) HandlePartner(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_partner"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req model.PartnerApplication
	if !h.decode(w, r, op, model.FormPartner, &req) {
		return
	}
	out := h.deps.SubmitPartner(r.Context(), identity.FromRequest(r), req)
	h.writeOutcome(r.Context(), w, op, out)
}

// decode reads the form body. A body of the wrong shape is not an error here:
// the mistyped fields stay empty and validation rejects them.
func (h *ContactHandler) decode(w http.ResponseWriter, r *http.Request, op string, form model.FormKind, v any) bool {
	err := decodeJSON(w, r, v)
	switch {
	case err == nil:
		return true
	case errors.Is(err, errWrongShape):
		h.logger.Debug(r.Context(), "submission body has the wrong shape",
			logger.String("request_id", RequestID(r.Context())),
			logger.Error(err),
		)
		return true
	default:
		metrics.RecordSubmission(string(form), "malformed")
		h.internalError(r.Context(), w, WrapKind(op, ErrBadRequest, err))
		return false
	}
}

func (h *ContactHandler) writeOutcome(ctx context.Context, w http.ResponseWriter, op string, out intake.Outcome) {
	switch {
	case out.OK():
		writeJSON(w, http.StatusOK, submitResponse{OK: true, Message: out.Message})
	case errors.Is(out.Err, intake.ErrRateLimited):
		writeJSON(w, http.StatusTooManyRequests, submitResponse{OK: false, Error: intake.Reason(out.Err)})
	case validation.Reason(out.Err) != "":
		writeJSON(w, http.StatusBadRequest, submitResponse{OK: false, Error: validation.Reason(out.Err)})
	default:
		h.internalError(ctx, w, WrapKind(op, ErrInternal, out.Err))
	}
}

// internalError logs err and answers with the generic 500 body.
func (h *ContactHandler) internalError(ctx context.Context, w http.ResponseWriter, err error) {
	h.logger.Error(ctx, "submission failed",
		logger.String("request_id", RequestID(ctx)),
		logger.Error(err),
	)
	writeJSON(w, http.StatusInternalServerError, submitResponse{OK: false, Error: GenericErrorMessage})
}
