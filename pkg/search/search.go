// Package search finds query IDs from free text.
package search

import (
	"context"
	"errors"

	"github.com/hashicorp-forge/docmap/pkg/mapping"
)

// DefaultLimit is the number of hits returned when a search sets no limit.
const DefaultLimit = 10

// ErrEmptyQuery is returned when a search has no text.
var ErrEmptyQuery = errors.New("search text required")

// Hit is a single search result.
type Hit struct {
	QueryID string
	Query   string
	Score   float64
}

// QueryIndex is a full-text index over a query mapping.
type QueryIndex interface {
	// Name returns the index implementation name.
	Name() string

	// IndexQueries replaces the indexed queries with the entries of the
	// forward query table (query text to query ID).
	IndexQueries(ctx context.Context, forward mapping.Table) error

	// Search returns up to limit hits ordered by descending score. A limit
	// of zero or less uses DefaultLimit.
	Search(ctx context.Context, text string, limit int) ([]Hit, error)

	// Count returns the number of indexed queries.
	Count() (uint64, error)

	// Close releases the index.
	Close() error
}
