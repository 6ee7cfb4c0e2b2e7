package render

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/randalmurphal/msgtemplate/pkg/msgtemplate"
	"github.com/randalmurphal/msgtemplate/pkg/msgtemplate/observability"
)

// Renderer substitutes bound values into parsed templates.
//
// Create with NewRenderer() and configure with Option functions.
// Renderer is safe for concurrent use after construction.
type Renderer struct {
	missingAction MissingAction
	formatter     FormatFunc
	parser        *msgtemplate.Parser
	logger        *slog.Logger
	metrics       observability.MetricsRecorder
}

// NewRenderer creates a new Renderer with the given options.
//
// Default configuration:
//   - MissingAction: MissingKeep (keep property source as-is)
//   - Formatter: none
//   - Parser: permissive
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{
		missingAction: MissingKeep,
		parser:        msgtemplate.NewParser(),
		metrics:       observability.NoopMetrics{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render writes tmpl with each property replaced by its value from vars.
//
// Errors are only returned when MissingAction is MissingError and a
// property has no value.
//
// Example:
//
//	tmpl := msgtemplate.Parse("Hello {Name}")
//	out, _ := NewRenderer().Render(tmpl, map[string]any{"Name": "World"})
//	// out: "Hello World"
func (r *Renderer) Render(tmpl *msgtemplate.Template, vars map[string]any) (string, error) {
	return r.RenderContext(context.Background(), tmpl, vars)
}

// RenderContext is Render with a context for metrics.
func (r *Renderer) RenderContext(ctx context.Context, tmpl *msgtemplate.Template, vars map[string]any) (string, error) {
	var b strings.Builder
	b.Grow(len(tmpl.Text()))
	var missing []string

	for _, n := range tmpl.All() {
		switch n := n.(type) {
		case msgtemplate.Literal:
			b.WriteString(n.Text)
		case msgtemplate.Property:
			val, ok := lookup(vars, n.Name)
			if ok {
				b.WriteString(r.formatValue(n, val))
				continue
			}
			missing = append(missing, n.Name.Text)
			switch r.missingAction {
			case MissingEmpty:
			default: // MissingKeep, MissingError
				b.WriteString(n.Source())
			}
		}
	}

	var err error
	if len(missing) > 0 {
		observability.LogRenderMissing(r.logger, tmpl.Text(), missing)
		if r.missingAction == MissingError {
			err = &UndefinedPropertyError{Names: missing}
		}
	}
	r.metrics.RecordRender(ctx, len(missing), err)
	return b.String(), err
}

// RenderString parses text with the renderer's parser and renders it.
func (r *Renderer) RenderString(text string, vars map[string]any) (string, error) {
	return r.Render(r.parser.Parse(text), vars)
}

// MustRender renders tmpl and panics on error.
//
// Use this when you're certain all properties are bound or when using
// MissingKeep/MissingEmpty which never return errors.
func (r *Renderer) MustRender(tmpl *msgtemplate.Template, vars map[string]any) string {
	out, err := r.Render(tmpl, vars)
	if err != nil {
		panic(fmt.Sprintf("render: %v", err))
	}
	return out
}

// RenderAll parses and renders every string in texts.
//
// Returns a new slice with rendered strings.
// On error (with MissingError), returns nil and the first error.
func (r *Renderer) RenderAll(texts []string, vars map[string]any) ([]string, error) {
	if texts == nil {
		return nil, nil
	}

	results := make([]string, len(texts))
	for i, text := range texts {
		out, err := r.RenderString(text, vars)
		if err != nil {
			return nil, err
		}
		results[i] = out
	}
	return results, nil
}

// formatValue renders one bound value according to the property's hint
// and format spec.
func (r *Renderer) formatValue(p msgtemplate.Property, val any) string {
	if p.HasFormat && r.formatter != nil {
		return r.formatter(val, p.Format)
	}
	switch p.Hint {
	case msgtemplate.HintCapture:
		return fmt.Sprintf("%+v", val)
	case msgtemplate.HintStringify:
		return strconv.Quote(fmt.Sprint(val))
	default:
		return fmt.Sprintf("%v", val)
	}
}

// lookup resolves a property name against vars. The full name is tried
// first; dotted names then walk nested map[string]any values.
func lookup(vars map[string]any, name msgtemplate.PropertyName) (any, bool) {
	if name.IsZero() || vars == nil {
		return nil, false
	}
	if v, ok := vars[name.Text]; ok {
		return v, true
	}
	if name.Kind != msgtemplate.NameDotted {
		return nil, false
	}

	var cur any = vars
	for _, seg := range name.Segments() {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		if cur, ok = m[seg]; !ok {
			return nil, false
		}
	}
	return cur, true
}

// UndefinedPropertyError is returned when MissingError is set and one or
// more properties have no value.
type UndefinedPropertyError struct {
	// Names lists the unresolved property names in template order.
	// Properties with an empty body appear as "".
	Names []string
}

// Error implements the error interface.
func (e *UndefinedPropertyError) Error() string {
	if len(e.Names) == 1 {
		return fmt.Sprintf("undefined property: %s", e.Names[0])
	}
	return fmt.Sprintf("undefined properties: %s", strings.Join(e.Names, ", "))
}

// defaultRenderer is the package-level renderer with default settings.
var defaultRenderer = NewRenderer()

// Render renders tmpl using the default renderer.
//
// Uses MissingKeep behavior (unbound properties stay as-is).
func Render(tmpl *msgtemplate.Template, vars map[string]any) string {
	// Default renderer never returns errors (MissingKeep).
	out, _ := defaultRenderer.Render(tmpl, vars)
	return out
}

// RenderString parses and renders text using the default renderer.
//
// Example:
//
//	out := render.RenderString("Hello {Name}", map[string]any{"Name": "World"})
//	// out: "Hello World"
func RenderString(text string, vars map[string]any) string {
	out, _ := defaultRenderer.RenderString(text, vars)
	return out
}
