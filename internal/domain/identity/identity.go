// Package identity derives a best-effort client identifier from proxy headers.
//
// The identifier is a rate-limit key, not a verified identity: headers are
// taken as-is and no IP syntax check is made.
package identity

import (
	"net/http"
	"strings"
)

// Unknown is returned when no forwarding header is present. All such
// clients share one rate-limit budget.
const Unknown = "unknown"

const (
	headerForwardedFor = "X-Forwarded-For"
	headerRealIP       = "X-Real-Ip"
)

// FromHeaders returns the first X-Forwarded-For entry, else X-Real-IP,
// else Unknown.
func FromHeaders(h http.Header) string {
	if forwarded := h.Get(headerForwardedFor); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		return strings.TrimSpace(first)
	}
	if realIP := h.Get(headerRealIP); realIP != "" {
		return realIP
	}
	return Unknown
}

// FromRequest is FromHeaders applied to r.Header.
func FromRequest(r *http.Request) string {
	return FromHeaders(r.Header)
}
