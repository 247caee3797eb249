// Package sqlite stores mapping tables in a SQL catalog, one row per entry,
// with page keys decoded into filename and page columns. The catalog lives
// in SQLite by default and can be moved to PostgreSQL.
package sqlite

import (
	"context"
	"errors"
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/hashicorp/go-hclog"
	"gorm.io/gorm"

	"github.com/hashicorp-forge/docmap/pkg/database"
	"github.com/hashicorp-forge/docmap/pkg/docid"
	"github.com/hashicorp-forge/docmap/pkg/mapping"
)

// ErrNotFound is returned when an identifier has no catalog entry.
var ErrNotFound = errors.New("catalog entry not found")

// Entry is a single mapping entry.
type Entry struct {
	ID uint `gorm:"primaryKey"`

	// Kind is "document" or "query".
	Kind string `gorm:"not null;uniqueIndex:idx_kind_key;index:idx_kind_entry_id"`

	// Key is the page key or query text.
	Key string `gorm:"column:entry_key;not null;uniqueIndex:idx_kind_key"`

	// EntryID is the short identifier derived from Key.
	EntryID string `gorm:"column:entry_id;not null;index:idx_kind_entry_id"`

	// UUID is the stable name-based UUID of kind and key.
	UUID string `gorm:"not null;uniqueIndex"`

	// Reverse is true if this entry is the one the reverse table returns
	// for EntryID. Only one entry per identifier can hold it.
	Reverse bool `gorm:"column:is_reverse;not null;default:false"`

	// Filename and Page are set for document entries.
	Filename *string
	Page     *int

	CreatedAt time.Time
}

// TableName sets the table name.
func (Entry) TableName() string {
	return "mapping_entries"
}

// Config contains catalog configuration.
type Config struct {
	// Driver is database.DriverSQLite (default) or database.DriverPostgres.
	Driver string

	// Path is the SQLite database file, or the DSN for PostgreSQL. Use
	// database.MemoryPath for a throwaway SQLite catalog.
	Path string

	Logger hclog.Logger
}

// Catalog implements mapping.Store on a gorm database.
type Catalog struct {
	db     *gorm.DB
	logger hclog.Logger
}

var _ mapping.Store = (*Catalog)(nil)

// Open opens (or creates) the catalog and migrates its schema.
func Open(cfg Config) (*Catalog, error) {
	if cfg.Logger == nil {
		cfg.Logger = hclog.NewNullLogger()
	}
	logger := cfg.Logger.Named("catalog")

	db, err := database.Open(cfg.Driver, cfg.Path, logger)
	if err != nil {
		return nil, err
	}
	return New(db, logger)
}

// New wraps an existing database connection and migrates the schema.
func New(db *gorm.DB, logger hclog.Logger) (*Catalog, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	if err := db.AutoMigrate(&Entry{}); err != nil {
		return nil, fmt.Errorf("failed to migrate catalog: %w", err)
	}
	return &Catalog{db: db, logger: logger}, nil
}

// Name returns the store name.
func (c *Catalog) Name() string {
	return "sqlite"
}

// Close closes the database connection.
func (c *Catalog) Close() error {
	return database.Close(c.db)
}

// Save replaces all entries of kind with forward. Every reverse entry must
// point at a forward entry with the same identifier.
func (c *Catalog) Save(ctx context.Context, kind mapping.Kind, forward, reverse mapping.Table) error {
	if err := validateKind(kind); err != nil {
		return err
	}

	entries := make([]Entry, 0, len(forward))
	for _, key := range forward.Keys() {
		id := forward[key]
		e := Entry{
			Kind:    kind.String(),
			Key:     key,
			EntryID: id,
			UUID:    docid.StableUUID(kind.String() + ":" + key).String(),
			Reverse: reverse[id] == key,
		}

		if kind == mapping.KindDocument {
			pk, err := docid.ParsePageKey(key)
			if err != nil {
				return fmt.Errorf("error decoding document key: %w", err)
			}
			filename, page := pk.Filename(), pk.Page()
			e.Filename = &filename
			e.Page = &page
		}

		entries = append(entries, e)
	}

	for _, id := range reverse.Keys() {
		key := reverse[id]
		if forward[key] != id {
			return fmt.Errorf("%w: reverse entry %q -> %q has no forward entry",
				mapping.ErrNotInverse, id, key)
		}
	}

	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("kind = ?", kind.String()).Delete(&Entry{}).Error; err != nil {
			return fmt.Errorf("error clearing %s entries: %w", kind, err)
		}
		if len(entries) == 0 {
			return nil
		}
		if err := tx.CreateInBatches(&entries, 500).Error; err != nil {
			return fmt.Errorf("error inserting %s entries: %w", kind, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	c.logger.Info("catalog saved",
		"kind", kind,
		"entries", len(entries),
	)
	return nil
}

// Load returns the forward and reverse tables of kind.
func (c *Catalog) Load(ctx context.Context, kind mapping.Kind) (mapping.Table, mapping.Table, error) {
	if err := validateKind(kind); err != nil {
		return nil, nil, err
	}

	var entries []Entry
	if err := c.db.WithContext(ctx).
		Where("kind = ?", kind.String()).
		Order("entry_key").
		Find(&entries).Error; err != nil {
		return nil, nil, fmt.Errorf("error loading %s entries: %w", kind, err)
	}

	forward := make(mapping.Table, len(entries))
	reverse := make(mapping.Table, len(entries))
	for _, e := range entries {
		forward[e.Key] = e.EntryID
		if e.Reverse {
			reverse[e.EntryID] = e.Key
		}
	}

	c.logger.Debug("catalog loaded",
		"kind", kind,
		"entries", len(entries),
	)
	return forward, reverse, nil
}

// Lookup returns the entry the reverse table holds for id.
func (c *Catalog) Lookup(ctx context.Context, kind mapping.Kind, id string) (*Entry, error) {
	if err := validateKind(kind); err != nil {
		return nil, err
	}
	if err := validation.Validate(id, validation.Required); err != nil {
		return nil, fmt.Errorf("%w: id %v", docid.ErrInvalidInput, err)
	}

	var e Entry
	err := c.db.WithContext(ctx).
		Where("kind = ? AND entry_id = ? AND is_reverse = ?", kind.String(), id, true).
		First(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %s %q", ErrNotFound, kind, id)
	}
	if err != nil {
		return nil, fmt.Errorf("error looking up %s %q: %w", kind, id, err)
	}
	return &e, nil
}

// Collisions returns the identifiers of kind shared by more than one key.
func (c *Catalog) Collisions(ctx context.Context, kind mapping.Kind) ([]string, error) {
	if err := validateKind(kind); err != nil {
		return nil, err
	}

	var ids []string
	err := c.db.WithContext(ctx).
		Model(&Entry{}).
		Where("kind = ?", kind.String()).
		Group("entry_id").
		Having("COUNT(*) > 1").
		Order("entry_id").
		Pluck("entry_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("error finding collisions: %w", err)
	}
	return ids, nil
}

func validateKind(kind mapping.Kind) error {
	if !kind.IsValid() {
		return fmt.Errorf("%w: unknown mapping kind %q", docid.ErrInvalidInput, kind)
	}
	return nil
}
