package formprobe

import (
	"errors"
	"net/http"
)

// ErrMismatch is returned when the observed boundary differs from the limit.
var ErrMismatch = errors.New("rate limit boundary mismatch")

// Deviation is one response that did not match the expected status.
// Got is 0 when the request itself failed.
type Deviation struct {
	Attempt int
	Want    int
	Got     int
}

// ExpectedStatus is the status the attempt-th submission should receive
// from a fresh window with the given limit.
func ExpectedStatus(attempt, limit int) int {
	if attempt <= limit {
		return http.StatusOK
	}
	return http.StatusTooManyRequests
}

func (r *Report) check(attempt, got, limit int) {
	if want := ExpectedStatus(attempt, limit); got != want {
		r.Deviations = append(r.Deviations, Deviation{Attempt: attempt, Want: want, Got: got})
	}
}

// Matches reports whether every response landed on the expected side of
// the boundary.
func (r *Report) Matches() bool { return len(r.Deviations) == 0 }
