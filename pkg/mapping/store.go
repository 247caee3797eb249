package mapping

import (
	"context"
)

// Store persists a forward table and its reverse for a given kind.
type Store interface {
	// Name returns the store name (e.g., "jsonfile", "sqlite").
	Name() string

	// Save replaces any previously saved tables of kind.
	Save(ctx context.Context, kind Kind, forward, reverse Table) error

	// Load returns the saved forward and reverse tables of kind.
	Load(ctx context.Context, kind Kind) (Table, Table, error)
}
