package hubspot

import "errors"

// ErrTransport wraps failures to reach the Forms API.
var ErrTransport = errors.New("hubspot transport error")

const errNotConfigured = "HubSpot not configured"
