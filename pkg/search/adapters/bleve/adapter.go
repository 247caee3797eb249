// Package bleve implements search.QueryIndex on an embedded Bleve index.
package bleve

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/hashicorp/go-hclog"

	"github.com/hashicorp-forge/docmap/pkg/docid"
	docmapping "github.com/hashicorp-forge/docmap/pkg/mapping"
	"github.com/hashicorp-forge/docmap/pkg/search"
)

const (
	fieldID    = "id"
	fieldQuery = "query"
)

// queryDocument is the indexed form of a query mapping entry.
type queryDocument struct {
	ID    string `json:"id"`
	Query string `json:"query"`
}

// Config contains Bleve configuration.
type Config struct {
	// Path is the index directory. An empty path keeps the index in memory.
	Path string

	Logger hclog.Logger
}

// Adapter implements search.QueryIndex for Bleve (embedded full-text search).
type Adapter struct {
	index  bleve.Index
	path   string
	logger hclog.Logger
}

var _ search.QueryIndex = (*Adapter)(nil)

// NewAdapter opens or creates the query index.
func NewAdapter(cfg Config) (*Adapter, error) {
	if cfg.Logger == nil {
		cfg.Logger = hclog.NewNullLogger()
	}

	a := &Adapter{
		path:   cfg.Path,
		logger: cfg.Logger.Named("bleve"),
	}

	var err error
	if cfg.Path == "" {
		a.index, err = bleve.NewMemOnly(createQueryMapping())
	} else {
		if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create index directory: %w", err)
		}
		a.index, err = openOrCreateIndex(cfg.Path, createQueryMapping())
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open query index: %w", err)
	}

	return a, nil
}

// openOrCreateIndex opens an existing Bleve index or creates a new one.
func openOrCreateIndex(path string, indexMapping mapping.IndexMapping) (bleve.Index, error) {
	idx, err := bleve.Open(path)
	if err == bleve.ErrorIndexPathDoesNotExist {
		return bleve.New(path, indexMapping)
	}
	return idx, err
}

// createQueryMapping creates the index mapping for queries.
func createQueryMapping() mapping.IndexMapping {
	indexMapping := bleve.NewIndexMapping()

	textFieldMapping := bleve.NewTextFieldMapping()
	textFieldMapping.Analyzer = "en" // English analyzer with stemming

	keywordFieldMapping := bleve.NewKeywordFieldMapping()

	queryMapping := bleve.NewDocumentMapping()
	queryMapping.AddFieldMappingsAt(fieldID, keywordFieldMapping)
	queryMapping.AddFieldMappingsAt(fieldQuery, textFieldMapping)

	indexMapping.DefaultMapping = queryMapping

	return indexMapping
}

// Name returns the index name.
func (a *Adapter) Name() string {
	return "bleve"
}

// documentKey returns the index document ID of a query text. The empty
// query is a valid mapping entry but bleve rejects empty document IDs.
func documentKey(text string) string {
	return docid.StableUUID("query:" + text).String()
}

// IndexQueries replaces the index contents with forward. Entries are keyed
// by query text so queries sharing an ID are all kept.
func (a *Adapter) IndexQueries(ctx context.Context, forward docmapping.Table) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	stale, err := a.allIDs()
	if err != nil {
		return err
	}

	keep := make(map[string]struct{}, len(forward))
	for text := range forward {
		keep[documentKey(text)] = struct{}{}
	}

	batch := a.index.NewBatch()
	for _, key := range stale {
		if _, ok := keep[key]; !ok {
			batch.Delete(key)
		}
	}
	for _, text := range forward.Keys() {
		doc := queryDocument{ID: forward[text], Query: text}
		if err := batch.Index(documentKey(text), doc); err != nil {
			return fmt.Errorf("failed to add query to batch: %w", err)
		}
	}

	if err := a.index.Batch(batch); err != nil {
		return fmt.Errorf("failed to index queries: %w", err)
	}

	a.logger.Info("indexed queries",
		"queries", len(forward),
		"path", a.path,
	)
	return nil
}

// Search matches text against the indexed query text.
func (a *Adapter) Search(ctx context.Context, text string, limit int) ([]search.Hit, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, search.ErrEmptyQuery
	}
	if limit <= 0 {
		limit = search.DefaultLimit
	}

	q := bleve.NewMatchQuery(text)
	q.SetField(fieldQuery)

	req := bleve.NewSearchRequestOptions(q, limit, 0, false)
	req.Fields = []string{fieldID, fieldQuery}
	req.SortBy([]string{"-_score", "_id"})

	res, err := a.index.SearchInContext(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}

	hits := make([]search.Hit, 0, len(res.Hits))
	for _, h := range res.Hits {
		hit := search.Hit{Score: h.Score}
		if id, ok := h.Fields[fieldID].(string); ok {
			hit.QueryID = id
		}
		if query, ok := h.Fields[fieldQuery].(string); ok {
			hit.Query = query
		}
		hits = append(hits, hit)
	}

	a.logger.Debug("searched queries",
		"text", text,
		"hits", len(hits),
		"total", res.Total,
	)
	return hits, nil
}

// Count returns the number of indexed queries.
func (a *Adapter) Count() (uint64, error) {
	return a.index.DocCount()
}

// Close closes the index.
func (a *Adapter) Close() error {
	return a.index.Close()
}

func (a *Adapter) allIDs() ([]string, error) {
	count, err := a.index.DocCount()
	if err != nil {
		return nil, fmt.Errorf("failed to count indexed queries: %w", err)
	}
	if count == 0 {
		return nil, nil
	}

	req := bleve.NewSearchRequestOptions(bleve.NewMatchAllQuery(), int(count), 0, false)
	res, err := a.index.Search(req)
	if err != nil {
		return nil, fmt.Errorf("failed to list indexed queries: %w", err)
	}

	ids := make([]string, 0, len(res.Hits))
	for _, h := range res.Hits {
		ids = append(ids, h.ID)
	}
	return ids, nil
}
