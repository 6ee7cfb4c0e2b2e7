package catalog

import (
	"context"
	"log/slog"

	"github.com/randalmurphal/msgtemplate/pkg/msgtemplate"
	"github.com/randalmurphal/msgtemplate/pkg/msgtemplate/observability"
)

// Recorder saves parsed templates to a Store with logging and metrics.
type Recorder struct {
	store   Store
	logger  *slog.Logger
	metrics observability.MetricsRecorder
}

// RecorderOption configures a Recorder.
type RecorderOption func(*Recorder)

// WithLogger sets the logger for save events and failures.
func WithLogger(logger *slog.Logger) RecorderOption {
	return func(r *Recorder) {
		r.logger = logger
	}
}

// WithMetrics sets the recorder for catalog saves.
func WithMetrics(m observability.MetricsRecorder) RecorderOption {
	return func(r *Recorder) {
		if m != nil {
			r.metrics = m
		}
	}
}

// NewRecorder creates a Recorder writing to store.
func NewRecorder(store Store, opts ...RecorderOption) *Recorder {
	r := &Recorder{store: store, metrics: observability.NoopMetrics{}}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Record saves t under source and returns the stored entry.
func (r *Recorder) Record(ctx context.Context, source string, t *msgtemplate.Template, d msgtemplate.Dialect) (Entry, error) {
	e, err := r.store.Save(NewEntry(source, t, d))
	r.metrics.RecordCatalogSave(ctx, source, err)
	if err != nil {
		observability.LogCatalogError(r.logger, source, "save", err)
		return Entry{}, err
	}
	observability.LogCatalogSaved(r.logger, e.ID, source, len(e.Properties))
	return e, nil
}

// Store returns the underlying store.
func (r *Recorder) Store() Store { return r.store }
