// Package catalog records which message templates a program or log source
// uses, and which property names each template exposes.
//
// Structured-logging pipelines use a catalog to build field schemas: every
// distinct template seen for a source is stored once, with its property
// names, and re-saving it bumps its sequence number and timestamp.
package catalog

import (
	"errors"
	"time"

	"github.com/randalmurphal/msgtemplate/pkg/msgtemplate"
)

// Store persists catalog entries.
// Implementations must be safe for concurrent use.
type Store interface {
	// Save stores an entry, keyed by (Source, Template).
	// An existing entry keeps its ID; its properties, dialect, sequence and
	// timestamp are replaced. The stored entry is returned.
	// Returns ErrIDConflict if e.ID already names an entry with another key.
	Save(e Entry) (Entry, error)

	// Get retrieves an entry by ID.
	// Returns ErrNotFound if the entry doesn't exist.
	Get(id string) (Entry, error)

	// List returns all entries for a source, ordered by sequence.
	// Returns empty slice (not error) if the source has no entries.
	List(source string) ([]Entry, error)

	// Delete removes an entry by ID.
	// Returns nil if the entry doesn't exist.
	Delete(id string) error

	// DeleteSource removes all entries for a source.
	DeleteSource(source string) error

	// Close releases any resources (connections, files).
	Close() error
}

// Entry is one template seen for a source.
type Entry struct {
	ID         string    `json:"id" yaml:"id"`
	Source     string    `json:"source" yaml:"source"`
	Template   string    `json:"template" yaml:"template"`
	Properties []string  `json:"properties" yaml:"properties"`
	Dialect    string    `json:"dialect" yaml:"dialect"`
	Sequence   int       `json:"sequence" yaml:"sequence"`
	SeenAt     time.Time `json:"seen_at" yaml:"seen_at"`
}

// NewEntry builds an unsaved entry for a parsed template.
func NewEntry(source string, t *msgtemplate.Template, d msgtemplate.Dialect) Entry {
	return Entry{
		Source:     source,
		Template:   t.Text(),
		Properties: t.PropertyNames(),
		Dialect:    d.String(),
	}
}

// Sentinel errors for catalog operations.
var (
	// ErrNotFound indicates an entry doesn't exist.
	ErrNotFound = errors.New("catalog entry not found")

	// ErrStoreClosed indicates the store has been closed.
	ErrStoreClosed = errors.New("catalog store closed")

	// ErrIDConflict indicates a caller-supplied ID belongs to another template.
	ErrIDConflict = errors.New("catalog entry id belongs to another template")
)
