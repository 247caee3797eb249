package docid

import (
	"fmt"
)

const (
	// DefaultDocumentIDLength is the number of hex characters in a document ID.
	DefaultDocumentIDLength = 8

	// DefaultQueryIDLength is the number of hex characters in a query ID.
	DefaultQueryIDLength = 5
)

// DocumentID returns the identifier of page of filename, which is the
// truncated digest of the normalized page key. "report" and "report.pdf"
// therefore share IDs.
func DocumentID(filename string, page int, length int) (string, error) {
	k, err := NewPageKey(filename, page)
	if err != nil {
		return "", err
	}
	return k.DocumentID(length), nil
}

// QueryID returns the identifier of a query, the truncated digest of the
// raw query text.
func QueryID(query string, length int) string {
	return Hash(query, length)
}

// Generator derives IDs with configured lengths.
type Generator struct {
	DocumentLength int
	QueryLength    int
}

// DefaultGenerator returns a Generator using the default ID lengths.
func DefaultGenerator() Generator {
	return Generator{
		DocumentLength: DefaultDocumentIDLength,
		QueryLength:    DefaultQueryIDLength,
	}
}

// Validate checks both ID lengths.
func (g Generator) Validate() error {
	if err := ValidateLength(g.DocumentLength); err != nil {
		return fmt.Errorf("document id: %w", err)
	}
	if err := ValidateLength(g.QueryLength); err != nil {
		return fmt.Errorf("query id: %w", err)
	}
	return nil
}

// DocumentID returns the page key and document ID for (filename, page).
func (g Generator) DocumentID(filename string, page int) (PageKey, string, error) {
	k, err := NewPageKey(filename, page)
	if err != nil {
		return PageKey{}, "", err
	}
	return k, k.DocumentID(g.DocumentLength), nil
}

// QueryID returns the query ID for query.
func (g Generator) QueryID(query string) string {
	return QueryID(query, g.QueryLength)
}
