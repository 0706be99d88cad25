// Package intake runs the form submission pipeline.
//
// Every submission goes through the same steps in order: validate, rate
// limit, compose a Lead, deliver it to the CRM. Only the first two can turn
// a submission away. Delivery failures of any kind are logged and counted but
// the caller is always told the submission went through.
package intake

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"code.cloudfoundry.org/clock"
	"github.com/google/uuid"

	"github.com/galactis/web/internal/domain/identity"
	"github.com/galactis/web/internal/domain/model"
	"github.com/galactis/web/internal/domain/ratelimit"
	"github.com/galactis/web/internal/domain/validation"
	"github.com/galactis/web/pkg/logger"
	"github.com/galactis/web/pkg/metrics"
)

// DefaultCRMTimeout bounds a CRM call when no timeout option is given.
const DefaultCRMTimeout = 5 * time.Second

const defaultSource = "website"

// Delivery outcomes as recorded in metrics and logs.
const (
	deliveryDelivered = "delivered"
	deliveryRejected  = "rejected"
	deliveryError     = "error"
	deliveryTimeout   = "timeout"
	deliveryPanic     = "panic"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// CRM accepts leads.
type CRM interface {
	Submit(ctx context.Context, lead model.Lead) (model.Delivery, error)
}

// Outcome is the result of one submission. Exactly one of Message and Err
// is set.
type Outcome struct {
	SubmissionID string
	Message      string
	Err          error
}

// OK reports whether the submission was accepted.
func (o Outcome) OK() bool { return o.Err == nil }

// Forwarder validates, rate limits and forwards submissions.
//
// A submission that passes validation and the rate limit is accepted no
// matter what the CRM does: an error, an ok:false answer, a timeout or a
// panic in the CRM client all still yield an accepted Outcome.
type Forwarder struct {
	crm       CRM
	validator *validation.Validator
	contact   ratelimit.Scope
	partner   ratelimit.Scope

	clock      clock.Clock
	crmTimeout time.Duration
	newID      func() string
	logger     logger.Logger
}

// New creates a Forwarder. Each form kind gets its own budget on limiter.
func New(crm CRM, limiter *ratelimit.Limiter, opts ...Option) *Forwarder {
	f := &Forwarder{
		crm:        crm,
		validator:  validation.New(),
		contact:    limiter.Scope(string(model.FormContact)),
		partner:    limiter.Scope(string(model.FormPartner)),
		clock:      clock.NewClock(),
		crmTimeout: DefaultCRMTimeout,
		newID:      uuid.NewString,
		logger:     logger.NewNop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// SubmitContact runs the pipeline for the general contact form.
func (f *Forwarder) SubmitContact(ctx context.Context, clientID string, c model.GeneralContact) Outcome {
	if o, rejected := f.admit(ctx, model.FormContact, f.contact, clientID, c); rejected {
		return o
	}

	lead := model.Lead{
		Name:      c.Name,
		Email:     c.Email,
		Company:   c.Company,
		Phone:     c.Phone,
		Message:   c.Message,
		Source:    c.Source,
		Timestamp: f.clock.Now().UTC(),
	}
	if lead.Source == "" {
		lead.Source = defaultSource
	}

	id := f.newID()
	f.deliver(ctx, model.FormContact, id, lead)
	metrics.RecordSubmission(string(model.FormContact), "accepted")
	return Outcome{SubmissionID: id, Message: MessageContactThanks}
}

// SubmitPartner runs the pipeline for the partner application form.
func (f *Forwarder) SubmitPartner(ctx context.Context, clientID string, p model.PartnerApplication) Outcome {
	if o, rejected := f.admit(ctx, model.FormPartner, f.partner, clientID, p); rejected {
		return o
	}

	lead := model.Lead{
		Name:      p.Name,
		Email:     p.Email,
		Company:   p.Company,
		Message:   PartnerMessage(p),
		Source:    PartnerSource(p.PartnerType),
		Timestamp: f.clock.Now().UTC(),
	}

	id := f.newID()
	f.deliver(ctx, model.FormPartner, id, lead)
	metrics.RecordSubmission(string(model.FormPartner), "accepted")
	return Outcome{SubmissionID: id, Message: MessagePartnerThanks}
}

// admit runs validation then the rate limit. Validation comes first so an
// invalid submission never spends budget.
func (f *Forwarder) admit(
	ctx context.Context,
	form model.FormKind,
	scope ratelimit.Scope,
	clientID string,
	s model.Submission,
) (Outcome, bool) {
	if res := f.validator.Validate(s); !res.OK() {
		metrics.RecordSubmission(string(form), "invalid")
		f.logger.Debug(ctx, "submission rejected",
			logger.String("form", string(form)),
			logger.String("reason", res.Reason()),
		)
		return Outcome{Err: res.Err()}, true
	}

	if clientID == "" {
		clientID = identity.Unknown
	}
	if !scope.Allow(ctx, clientID) {
		metrics.RecordSubmission(string(form), "rate_limited")
		metrics.RecordRateLimitDenial(string(form))
		f.logger.Info(ctx, "submission rate limited",
			logger.String("form", string(form)),
			logger.String("client", clientID),
		)
		return Outcome{Err: ErrRateLimited}, true
	}
	return Outcome{}, false
}

type crmResult struct {
	delivery model.Delivery
	err      error
}

// deliver sends lead to the CRM and records what happened. It returns once
// the CRM answers or the timeout passes, whichever is first.
func (f *Forwarder) deliver(ctx context.Context, form model.FormKind, id string, lead model.Lead) {
	log := f.logger.With(
		logger.String("submission_id", id),
		logger.String("form", string(form)),
	)

	ctx, cancel := context.WithTimeout(ctx, f.crmTimeout)
	defer cancel()

	start := time.Now()
	results := make(chan crmResult, 1)
	go func() {
		results <- f.call(ctx, lead)
	}()

	var res crmResult
	select {
	case res = <-results:
	case <-ctx.Done():
		res = crmResult{err: fmt.Errorf("%w: %w", ErrCRMTimeout, ctx.Err())}
	}
	elapsed := time.Since(start)

	outcome := classifyDelivery(res)
	metrics.RecordCRMDelivery(string(form), outcome, float64(elapsed.Milliseconds()))

	switch outcome {
	case deliveryDelivered:
		log.Info(ctx, "lead delivered",
			logger.String("contact_id", res.delivery.ContactID),
			logger.Duration("latency", elapsed),
		)
	case deliveryRejected:
		log.Warn(ctx, "crm rejected lead",
			logger.String("crm_error", res.delivery.Error),
			logger.Duration("latency", elapsed),
		)
	default:
		log.Error(ctx, "crm delivery failed",
			logger.String("outcome", outcome),
			logger.Error(res.err),
			logger.Duration("latency", elapsed),
		)
	}
}

// call invokes the CRM, turning a panic into ErrCRMPanic.
func (f *Forwarder) call(ctx context.Context, lead model.Lead) (res crmResult) {
	defer func() {
		if r := recover(); r != nil {
			res = crmResult{err: fmt.Errorf("%w: %v", ErrCRMPanic, r)}
		}
	}()
	if f.crm == nil {
		return crmResult{err: errNoCRM}
	}
	d, err := f.crm.Submit(ctx, lead)
	return crmResult{delivery: d, err: err}
}

func classifyDelivery(res crmResult) string {
	switch {
	case res.err == nil && res.delivery.OK:
		return deliveryDelivered
	case res.err == nil:
		return deliveryRejected
	case isTimeout(res.err):
		return deliveryTimeout
	case isPanic(res.err):
		return deliveryPanic
	default:
		return deliveryError
	}
}

// PartnerMessage renders a partner application as the CRM message body.
func PartnerMessage(p model.PartnerApplication) string {
	return fmt.Sprintf(
		"Partner Application - Type: %s\nRegions: %s\nBusiness Summary: %s\nWebsite: %s\nAdditional Info: %s",
		p.PartnerType,
		p.Regions,
		p.BusinessSummary,
		orNA(p.Website),
		orNA(p.AdditionalInfo),
	)
}

// PartnerSource returns the lead source tag for a partner type, e.g.
// "partner_application_service_provider".
func PartnerSource(partnerType string) string {
	return "partner_application_" + whitespaceRun.ReplaceAllString(strings.ToLower(partnerType), "_")
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
