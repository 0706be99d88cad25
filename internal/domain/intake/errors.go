package intake

import (
	"context"
	"errors"

	"github.com/galactis/web/internal/domain/validation"
)

var (
	// ErrRateLimited is returned when the client has used its window budget.
	ErrRateLimited = errors.New("rate limited")

	// ErrCRMTimeout marks a CRM call abandoned at the deadline.
	ErrCRMTimeout = errors.New("crm call timed out")

	// ErrCRMPanic marks a CRM call that panicked.
	ErrCRMPanic = errors.New("crm call panicked")

	errNoCRM = errors.New("no crm client")
)

// Client-facing messages.
const (
	MessageContactThanks = "Thank you! We'll contact you soon."
	MessagePartnerThanks = "Thank you! Our partnerships team will contact you soon."
	MessageRateLimited   = "Too many requests. Please try again later."
)

// Reason returns the client-facing message for a rejected Outcome error.
func Reason(err error) string {
	if errors.Is(err, ErrRateLimited) {
		return MessageRateLimited
	}
	return validation.Reason(err)
}

func isTimeout(err error) bool {
	return errors.Is(err, ErrCRMTimeout) || errors.Is(err, context.DeadlineExceeded)
}

func isPanic(err error) bool { return errors.Is(err, ErrCRMPanic) }
