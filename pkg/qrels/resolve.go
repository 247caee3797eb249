package qrels

import (
	"errors"
	"fmt"

	"github.com/hashicorp/go-multierror"

	"github.com/hashicorp-forge/docmap/pkg/docid"
	"github.com/hashicorp-forge/docmap/pkg/mapping"
)

// ErrUnknownDocument is returned for judged document IDs missing from the
// reverse mapping.
var ErrUnknownDocument = errors.New("unknown document id")

// Assessment is a judged document resolved to its source page.
type Assessment struct {
	QueryID string
	DocID   string
	Key     docid.PageKey
}

// Resolve looks up every pooled document in the reverse document mapping
// and decodes its page key. Entries that cannot be resolved are collected
// into the returned error; all others are still returned.
func Resolve(pool *Pool, reverse mapping.Table) ([]Assessment, error) {
	var (
		out    []Assessment
		result *multierror.Error
	)

	for _, qid := range pool.QueryIDs() {
		for _, doc := range pool.Docs(qid) {
			combined, ok := reverse[doc]
			if !ok {
				result = multierror.Append(result,
					fmt.Errorf("%w: query %s: %q", ErrUnknownDocument, qid, doc))
				continue
			}

			key, err := docid.ParsePageKey(combined)
			if err != nil {
				result = multierror.Append(result,
					fmt.Errorf("query %s: document %q: %w", qid, doc, err))
				continue
			}

			out = append(out, Assessment{QueryID: qid, DocID: doc, Key: key})
		}
	}

	return out, result.ErrorOrNil()
}
