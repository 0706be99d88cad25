package hygraph

import (
	"errors"

	"github.com/galactis/web/internal/domain/content"
)

var (
	// ErrNotConfigured is returned when no endpoint is set.
	ErrNotConfigured = content.ErrNotConfigured

	// ErrNotFound is returned when no published post has the slug.
	ErrNotFound = content.ErrNotFound

	// ErrGraphQL is returned when the response carries GraphQL errors.
	ErrGraphQL = errors.New("hygraph graphql error")

	// ErrStatus is returned for non-2xx responses.
	ErrStatus = errors.New("hygraph unexpected status")
)
