package docid

import (
	"fmt"

	"github.com/google/uuid"
)

// Namespace is the UUIDv5 namespace for docmap names. It is itself the v5
// UUID of "docmap" in the URL namespace, so it never changes between builds.
var Namespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("docmap"))

// StableUUID returns the name-based (v5) UUID of name in Namespace.
// Unlike document and query IDs it is not truncated, which makes it
// suitable as a durable row identity.
func StableUUID(name string) uuid.UUID {
	return uuid.NewSHA1(Namespace, []byte(name))
}

// ParseStableUUID parses a UUID previously produced by StableUUID.
// Accepts standard UUID formats (with or without hyphens).
func ParseStableUUID(s string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, fmt.Errorf("%w: UUID cannot be empty", ErrInvalidInput)
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: invalid UUID format: %v", ErrInvalidInput, err)
	}
	if u.Version() != 5 {
		return uuid.Nil, fmt.Errorf("%w: UUID %s is version %d, want 5", ErrInvalidInput, s, u.Version())
	}
	return u, nil
}
