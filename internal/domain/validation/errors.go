package validation

import "errors"

// Rejection reasons. Each error's text is also the client-facing message.
var (
	ErrMissingFields      = errors.New("missing required fields")
	ErrInvalidEmail       = errors.New("invalid email format")
	ErrInvalidPartnerType = errors.New("invalid partner type")
)

var reasons = map[error]string{
	ErrMissingFields:      "Missing required fields",
	ErrInvalidEmail:       "Invalid email format",
	ErrInvalidPartnerType: "Invalid partner type",
}

// Reason returns the client-facing message for a rejection error, or "" if
// err is not one of this package's sentinels.
func Reason(err error) string {
	for sentinel, reason := range reasons {
		if errors.Is(err, sentinel) {
			return reason
		}
	}
	return ""
}
