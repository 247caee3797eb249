// Package mapping builds forward and reverse lookup tables between keys
// (page keys or query text) and their short identifiers.
package mapping

import (
	"errors"
	"fmt"
	"sort"

	"github.com/hashicorp/go-multierror"
)

var (
	// ErrCollision is returned by strict builds when two distinct keys
	// produce the same identifier.
	ErrCollision = errors.New("identifier collision")

	// ErrNotInverse is returned when a forward and reverse table do not
	// invert each other.
	ErrNotInverse = errors.New("tables are not inverse")
)

// Table is a string-to-string lookup table.
type Table map[string]string

// Kind distinguishes document tables from query tables.
type Kind string

const (
	KindDocument Kind = "document"
	KindQuery    Kind = "query"
)

// IsValid returns true if this is a recognized kind.
func (k Kind) IsValid() bool {
	switch k {
	case KindDocument, KindQuery:
		return true
	default:
		return false
	}
}

// String returns the string representation of the kind.
func (k Kind) String() string {
	return string(k)
}

// Keys returns the keys of t in sorted order.
func (t Table) Keys() []string {
	keys := make([]string, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Invert returns a table mapping each value of t back to its key. If two
// keys share a value the lexically greatest key wins.
func (t Table) Invert() Table {
	inv := make(Table, len(t))
	for _, k := range t.Keys() {
		inv[t[k]] = k
	}
	return inv
}

// Equal returns true if both tables hold the same entries.
func (t Table) Equal(other Table) bool {
	if len(t) != len(other) {
		return false
	}
	for k, v := range t {
		if ov, ok := other[k]; !ok || ov != v {
			return false
		}
	}
	return true
}

// CheckInverse verifies that forward[reverse[id]] == id and
// reverse[forward[key]] == key for every entry. All violations are
// reported.
func CheckInverse(forward, reverse Table) error {
	var result *multierror.Error

	for _, key := range forward.Keys() {
		id := forward[key]
		if got, ok := reverse[id]; !ok || got != key {
			result = multierror.Append(result,
				fmt.Errorf("%w: key %q maps to %q but reverse maps %q to %q",
					ErrNotInverse, key, id, id, got))
		}
	}
	for _, id := range reverse.Keys() {
		key := reverse[id]
		if got, ok := forward[key]; !ok || got != id {
			result = multierror.Append(result,
				fmt.Errorf("%w: id %q maps to %q but forward maps %q to %q",
					ErrNotInverse, id, key, key, got))
		}
	}

	return result.ErrorOrNil()
}
