package catalog

import (
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore is an in-memory catalog for tests and one-shot CLI runs.
// Data is lost when the process exits.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]Entry    // id -> entry
	byKey   map[entryKey]string // (source, template) -> id
	closed  bool
}

type entryKey struct {
	source   string
	template string
}

// NewMemoryStore creates a new in-memory catalog.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]Entry),
		byKey:   make(map[entryKey]string),
	}
}

// Save implements Store.
func (m *MemoryStore) Save(e Entry) (Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return Entry{}, ErrStoreClosed
	}

	key := entryKey{source: e.Source, template: e.Template}
	if id, ok := m.byKey[key]; ok {
		e.ID = id
	} else if e.ID == "" {
		e.ID = uuid.NewString()
	} else if _, taken := m.entries[e.ID]; taken {
		return Entry{}, ErrIDConflict
	}

	seq := 1
	for _, existing := range m.entries {
		if existing.Source == e.Source && existing.Sequence >= seq {
			seq = existing.Sequence + 1
		}
	}
	e.Sequence = seq
	e.SeenAt = time.Now().UTC()
	// Copy properties to avoid retaining caller's slice
	e.Properties = slices.Clone(e.Properties)
	if e.Properties == nil {
		e.Properties = []string{}
	}

	m.entries[e.ID] = e
	m.byKey[key] = e.ID
	return copyEntry(e), nil
}

// Get implements Store.
func (m *MemoryStore) Get(id string) (Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return Entry{}, ErrStoreClosed
	}

	e, ok := m.entries[id]
	if !ok {
		return Entry{}, ErrNotFound
	}
	return copyEntry(e), nil
}

// List implements Store.
func (m *MemoryStore) List(source string) ([]Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrStoreClosed
	}

	var entries []Entry
	for _, e := range m.entries {
		if e.Source == source {
			entries = append(entries, copyEntry(e))
		}
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Sequence < entries[j].Sequence
	})
	return entries, nil
}

// Delete implements Store.
func (m *MemoryStore) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}

	if e, ok := m.entries[id]; ok {
		delete(m.byKey, entryKey{source: e.Source, template: e.Template})
		delete(m.entries, id)
	}
	return nil
}

// DeleteSource implements Store.
func (m *MemoryStore) DeleteSource(source string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}

	for id, e := range m.entries {
		if e.Source == source {
			delete(m.byKey, entryKey{source: e.Source, template: e.Template})
			delete(m.entries, id)
		}
	}
	return nil
}

// Close implements Store.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	m.entries = nil
	m.byKey = nil
	return nil
}

// Len returns the total number of entries across all sources.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

func copyEntry(e Entry) Entry {
	e.Properties = slices.Clone(e.Properties)
	return e
}
