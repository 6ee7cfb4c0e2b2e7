package render

import (
	"log/slog"

	"github.com/randalmurphal/msgtemplate/pkg/msgtemplate"
	"github.com/randalmurphal/msgtemplate/pkg/msgtemplate/observability"
)

// MissingAction specifies how to handle properties without a value.
type MissingAction int

const (
	// MissingKeep writes the property's source text, e.g. "{Name}".
	// This is the default behavior.
	MissingKeep MissingAction = iota

	// MissingEmpty writes nothing for the property.
	MissingEmpty

	// MissingError fails the render with an UndefinedPropertyError.
	MissingError
)

// ParseMissingAction converts a configuration name into a MissingAction.
func ParseMissingAction(name string) (MissingAction, bool) {
	switch name {
	case "keep", "":
		return MissingKeep, true
	case "empty":
		return MissingEmpty, true
	case "error":
		return MissingError, true
	default:
		return MissingKeep, false
	}
}

// FormatFunc renders a bound value using a property's raw format spec.
// It is only called for properties that have a format spec.
type FormatFunc func(value any, format string) string

// Option configures a Renderer.
type Option func(*Renderer)

// WithMissingAction sets how unbound properties are handled.
//
// Default: MissingKeep (write the property source as-is)
//
// Example:
//
//	r := NewRenderer(WithMissingAction(MissingError))
//	_, err := r.RenderString("{missing}", nil)
//	// err: "undefined property: missing"
func WithMissingAction(action MissingAction) Option {
	return func(r *Renderer) {
		r.missingAction = action
	}
}

// WithFormatter sets the function applied to properties with a format spec.
//
// Default: none (format specs are ignored and values use %v)
//
// Example:
//
//	r := NewRenderer(WithFormatter(func(v any, f string) string {
//	    if f == "F2" {
//	        return fmt.Sprintf("%.2f", v)
//	    }
//	    return fmt.Sprint(v)
//	}))
func WithFormatter(fn FormatFunc) Option {
	return func(r *Renderer) {
		r.formatter = fn
	}
}

// WithParser sets the parser used by RenderString and RenderAll.
//
// Default: a permissive msgtemplate.Parser
func WithParser(p *msgtemplate.Parser) Option {
	return func(r *Renderer) {
		if p != nil {
			r.parser = p
		}
	}
}

// WithLogger sets a logger that receives a warning listing unresolved
// properties for each render that had any.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Renderer) {
		r.logger = logger
	}
}

// WithMetrics sets the metrics recorder used by RenderContext.
//
// Default: observability.NoopMetrics{}
func WithMetrics(m observability.MetricsRecorder) Option {
	return func(r *Renderer) {
		if m != nil {
			r.metrics = m
		}
	}
}
