package port

import (
	"context"
	"errors"
)

// ErrNotFound is returned by DocumentStore.Load when a source is absent.
// The index builder treats it as "skip this document", not a failure.
var ErrNotFound = errors.New("document not found")

// DocumentStore loads raw knowledge-base documents by source name.
type DocumentStore interface {
	// Load returns the plain-text content of a source.
	// Returns ErrNotFound if the source does not exist.
	Load(ctx context.Context, source string) (string, error)

	// Sources lists the source names available in the store.
	Sources(ctx context.Context) ([]string, error)
}
