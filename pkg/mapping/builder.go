package mapping

import (
	"fmt"
	"sort"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-multierror"

	"github.com/hashicorp-forge/docmap/pkg/docid"
)

// Collision records two distinct keys that produced the same identifier.
// Existing is the key that held the identifier first; Incoming replaced it
// in the reverse table.
type Collision struct {
	ID       string
	Existing string
	Incoming string
}

func (c Collision) Error() string {
	return fmt.Sprintf("id %q produced by both %q and %q", c.ID, c.Existing, c.Incoming)
}

// Result is the output of a build.
type Result struct {
	Kind       Kind
	Forward    Table
	Reverse    Table
	Collisions []Collision
}

// BuilderConfig holds configuration for a Builder.
type BuilderConfig struct {
	// Generator sets the identifier lengths. Zero value uses the defaults.
	Generator docid.Generator

	// Strict makes builds fail when any collision is detected. Otherwise
	// collisions are logged and the last key wins in the reverse table.
	Strict bool

	Logger hclog.Logger
}

// Builder builds mapping tables for batches of documents or queries.
type Builder struct {
	gen    docid.Generator
	strict bool
	logger hclog.Logger
}

// NewBuilder creates a new Builder.
func NewBuilder(cfg BuilderConfig) (*Builder, error) {
	if cfg.Logger == nil {
		cfg.Logger = hclog.NewNullLogger()
	}
	if cfg.Generator == (docid.Generator{}) {
		cfg.Generator = docid.DefaultGenerator()
	}
	if err := cfg.Generator.Validate(); err != nil {
		return nil, fmt.Errorf("invalid generator: %w", err)
	}

	return &Builder{
		gen:    cfg.Generator,
		strict: cfg.Strict,
		logger: cfg.Logger.Named("mapping-builder"),
	}, nil
}

// BuildDocuments maps every page 1..n of every file to its document ID,
// where n is the page count given for the file. Files are visited in
// sorted order. An invalid filename or a negative page count aborts the
// build.
func (b *Builder) BuildDocuments(pagesPerFile map[string]int) (*Result, error) {
	filenames := make([]string, 0, len(pagesPerFile))
	for f := range pagesPerFile {
		filenames = append(filenames, f)
	}
	sort.Strings(filenames)

	res := newResult(KindDocument)
	for _, filename := range filenames {
		total := pagesPerFile[filename]
		if err := validation.Validate(total, validation.Min(0)); err != nil {
			return nil, fmt.Errorf("%w: page count for %q: %v", docid.ErrInvalidInput, filename, err)
		}

		for page := 1; page <= total; page++ {
			key, id, err := b.gen.DocumentID(filename, page)
			if err != nil {
				return nil, fmt.Errorf("error building key for %q page %d: %w", filename, page, err)
			}
			b.insert(res, key.String(), id)
		}
	}

	b.logger.Debug("built document mapping",
		"files", len(filenames),
		"entries", len(res.Forward),
		"collisions", len(res.Collisions),
	)

	return b.finish(res)
}

// BuildQueries maps every query to its query ID. Duplicate queries
// collapse into one entry.
func (b *Builder) BuildQueries(queries []string) (*Result, error) {
	res := newResult(KindQuery)
	for _, q := range queries {
		b.insert(res, q, b.gen.QueryID(q))
	}

	b.logger.Debug("built query mapping",
		"queries", len(queries),
		"entries", len(res.Forward),
		"collisions", len(res.Collisions),
	)

	return b.finish(res)
}

func newResult(kind Kind) *Result {
	return &Result{
		Kind:    kind,
		Forward: make(Table),
		Reverse: make(Table),
	}
}

func (b *Builder) insert(res *Result, key, id string) {
	if existing, ok := res.Reverse[id]; ok && existing != key {
		c := Collision{ID: id, Existing: existing, Incoming: key}
		res.Collisions = append(res.Collisions, c)
		b.logger.Warn("identifier collision",
			"kind", res.Kind,
			"id", id,
			"existing", existing,
			"incoming", key,
		)
	}
	res.Forward[key] = id
	res.Reverse[id] = key
}

func (b *Builder) finish(res *Result) (*Result, error) {
	if !b.strict || len(res.Collisions) == 0 {
		return res, nil
	}

	var result *multierror.Error
	for _, c := range res.Collisions {
		result = multierror.Append(result, fmt.Errorf("%w: %s", ErrCollision, c.Error()))
	}
	return nil, result
}

// BuildDocumentMapping builds a document mapping with the default ID length
// and returns the forward and reverse tables.
func BuildDocumentMapping(pagesPerFile map[string]int) (Table, Table, error) {
	b, err := NewBuilder(BuilderConfig{})
	if err != nil {
		return nil, nil, err
	}
	res, err := b.BuildDocuments(pagesPerFile)
	if err != nil {
		return nil, nil, err
	}
	return res.Forward, res.Reverse, nil
}

// BuildQueryMapping builds a query mapping with the default ID length and
// returns the forward and reverse tables.
func BuildQueryMapping(queries []string) (Table, Table, error) {
	b, err := NewBuilder(BuilderConfig{})
	if err != nil {
		return nil, nil, err
	}
	res, err := b.BuildQueries(queries)
	if err != nil {
		return nil, nil, err
	}
	return res.Forward, res.Reverse, nil
}
