package storage

import (
	"errors"

	"github.com/julianstephens/tally/internal/models"
)

// ErrNotFound is returned when an update or delete targets a missing row.
var ErrNotFound = errors.New("record not found")

// ErrNotInitialized is returned by Load when the store has never been created.
var ErrNotInitialized = errors.New("storage not initialized, run 'tally init' first")

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// LoadAll returns every counter, newest first, and every entry, oldest first.
	LoadAll() ([]models.Counter, []models.Entry, error)

	// Counters
	InsertCounter(models.Counter) error
	// UpdateCounter replaces every field except ID and CreatedAt.
	UpdateCounter(models.Counter) error
	// DeleteCounter removes the counter and all of its entries atomically.
	DeleteCounter(id string) error
	CountCounters() (int, error)
	ListDistinctTags() ([]string, error)

	// Entries
	InsertEntry(models.Entry) error
	DeleteEntriesForCounter(counterID string) error

	// Utils
	GetConfigPath() string
}

// Migrator is implemented by SQL backends with a versioned schema.
type Migrator interface {
	// SchemaVersion returns the applied and the newest embedded schema versions.
	SchemaVersion() (current, latest int, err error)
	// Migrate applies pending migrations and returns how many ran.
	Migrate(logFn func(string)) (int, error)
}
