package cache

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/randalmurphal/msgtemplate/pkg/msgtemplate"
	"github.com/randalmurphal/msgtemplate/pkg/msgtemplate/observability"
)

// Cache is a thread-safe map from template text to parsed Template.
// It uses sync.RWMutex since lookups vastly outnumber inserts.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]*msgtemplate.Template
	full    bool

	parser     *msgtemplate.Parser
	maxEntries int
	logger     *slog.Logger
	metrics    observability.MetricsRecorder
}

// Option configures a Cache.
type Option func(*Cache)

// WithMaxEntries limits how many templates are stored. Zero or a negative
// value means no limit.
//
// Default: 0 (unbounded)
func WithMaxEntries(n int) Option {
	return func(c *Cache) {
		c.maxEntries = n
	}
}

// WithLogger sets the logger for parse and capacity events.
//
// Default: nil (no logging)
func WithLogger(logger *slog.Logger) Option {
	return func(c *Cache) {
		c.logger = logger
	}
}

// WithMetrics sets the recorder for cache lookups and parses.
//
// Default: observability.NoopMetrics{}
func WithMetrics(m observability.MetricsRecorder) Option {
	return func(c *Cache) {
		if m != nil {
			c.metrics = m
		}
	}
}

// New creates an empty cache that parses with p.
// A nil p uses a default permissive parser.
func New(p *msgtemplate.Parser, opts ...Option) *Cache {
	if p == nil {
		p = msgtemplate.NewParser()
	}
	c := &Cache{
		entries: make(map[string]*msgtemplate.Template),
		parser:  p,
		metrics: observability.NoopMetrics{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Parse returns the cached template for text, parsing and storing it on
// first use. The parser runs at most once per stored text.
func (c *Cache) Parse(ctx context.Context, text string) *msgtemplate.Template {
	// Fast path: already parsed
	c.mu.RLock()
	t, ok := c.entries[text]
	c.mu.RUnlock()
	if ok {
		c.metrics.RecordCacheLookup(ctx, true)
		return t
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// Double-check after acquiring write lock
	if t, ok := c.entries[text]; ok {
		c.metrics.RecordCacheLookup(ctx, true)
		return t
	}
	c.metrics.RecordCacheLookup(ctx, false)

	start := time.Now()
	t = c.parser.Parse(text)
	elapsed := time.Since(start)

	props := 0
	for range t.Properties() {
		props++
	}
	c.metrics.RecordParse(ctx, c.parser.Dialect().String(), t.Len(), props, elapsed)
	observability.LogTemplateParsed(c.logger, text, t.Len(), props, float64(elapsed.Microseconds())/1000)

	if c.maxEntries > 0 && len(c.entries) >= c.maxEntries {
		if !c.full {
			c.full = true
			observability.LogCacheFull(c.logger, c.maxEntries)
		}
		return t
	}
	c.entries[text] = t
	return t
}

// Get returns the cached template for text without parsing.
func (c *Cache) Get(text string) (*msgtemplate.Template, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	t, ok := c.entries[text]
	return t, ok
}

// Len returns the number of stored templates.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Keys returns the stored template texts.
// The order is not guaranteed.
func (c *Cache) Keys() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	keys := make([]string, 0, len(c.entries))
	for k := range c.entries {
		keys = append(keys, k)
	}
	return keys
}

// Clear removes all stored templates.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*msgtemplate.Template)
	c.full = false
}
