package content

import "errors"

var (
	// ErrNotConfigured is returned by a Source that has no CMS endpoint.
	ErrNotConfigured = errors.New("cms not configured")

	// ErrNotFound is returned by a Source when no published post has the slug.
	ErrNotFound = errors.New("post not found")
)
