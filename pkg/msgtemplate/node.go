package msgtemplate

import (
	"strings"
)

// Node is one element of a parsed template: a Literal or a Property.
//
// The set of implementations is closed; use a type switch to inspect nodes.
type Node interface {
	// Span returns the byte offsets [start, end) the node covers in the input.
	Span() (start, end int)

	// Source returns the exact input text the node was parsed from.
	Source() string

	node()
}

// Literal is a run of text that is not part of any property.
type Literal struct {
	Text string
	Pos  int
}

// Span implements Node.
func (l Literal) Span() (int, int) { return l.Pos, l.Pos + len(l.Text) }

// Source implements Node.
func (l Literal) Source() string { return l.Text }

func (Literal) node() {}

// Form identifies which placeholder syntax a property was written in.
type Form int

const (
	// FormPlain is {Name}, {@Name}, {$Name} or {Name:Format}.
	FormPlain Form = iota

	// FormGo is {{.Name}} or {{Name}}.
	FormGo

	// FormBuiltin is ${Name} or ${Name:Format}.
	FormBuiltin
)

// String returns a short name for the form.
func (f Form) String() string {
	switch f {
	case FormPlain:
		return "plain"
	case FormGo:
		return "go"
	case FormBuiltin:
		return "builtin"
	default:
		return "unknown"
	}
}

// Hint modifies how a property's value should be rendered.
type Hint int

const (
	// HintNone means no hint symbol was given.
	HintNone Hint = iota

	// HintCapture (@) asks for the value to be captured as a structure.
	HintCapture

	// HintStringify ($) asks for the value to be rendered as a string.
	HintStringify
)

// Symbol returns the source symbol for the hint, or "" for HintNone.
func (h Hint) Symbol() string {
	switch h {
	case HintCapture:
		return "@"
	case HintStringify:
		return "$"
	default:
		return ""
	}
}

// String returns a short name for the hint.
func (h Hint) String() string {
	switch h {
	case HintCapture:
		return "capture"
	case HintStringify:
		return "stringify"
	default:
		return "none"
	}
}

// NameKind classifies a property name.
type NameKind int

const (
	// NameNone marks a property with an empty body, such as {} or ${}.
	NameNone NameKind = iota

	// NameIdentifier is a single [A-Za-z_][A-Za-z0-9_]* identifier.
	NameIdentifier

	// NameDotted is two or more identifiers joined by '.', e.g. http.method.
	NameDotted

	// NameIndex is a positional index such as 0 or 12. The digits are kept
	// verbatim; no integer conversion is attempted.
	NameIndex
)

// String returns a short name for the kind.
func (k NameKind) String() string {
	switch k {
	case NameIdentifier:
		return "identifier"
	case NameDotted:
		return "dotted"
	case NameIndex:
		return "index"
	default:
		return "none"
	}
}

// PropertyName is the name part of a property.
type PropertyName struct {
	Kind NameKind

	// Text is the name exactly as written: "UserId", "http.method", "0".
	Text string
}

// IsZero reports whether the property had no name.
func (n PropertyName) IsZero() bool { return n.Kind == NameNone }

// Segments returns the identifier segments of the name. A dotted name
// yields two or more segments, an identifier or index yields one, and an
// empty name yields nil. The returned slice is freshly allocated.
func (n PropertyName) Segments() []string {
	switch n.Kind {
	case NameNone:
		return nil
	case NameDotted:
		return strings.Split(n.Text, ".")
	default:
		return []string{n.Text}
	}
}

// String returns the name as written.
func (n PropertyName) String() string { return n.Text }

// Property is a placeholder to be substituted at render time.
type Property struct {
	Form Form

	// Hint is set only for FormPlain.
	Hint Hint

	// Dot records the optional '.' after {{ in FormGo.
	Dot bool

	Name PropertyName

	// Format is the raw text between ':' and the closing delimiter. It is
	// meaningful only when HasFormat is true; "{Name:}" has an empty format.
	Format    string
	HasFormat bool

	Pos int
	End int
}

// Span implements Node.
func (p Property) Span() (int, int) { return p.Pos, p.End }

// Source implements Node. The text is rebuilt from the parsed fields.
func (p Property) Source() string {
	var b strings.Builder
	switch p.Form {
	case FormGo:
		b.WriteString("{{")
		if p.Dot {
			b.WriteByte('.')
		}
		b.WriteString(p.Name.Text)
		b.WriteString("}}")
		return b.String()
	case FormBuiltin:
		b.WriteString("${")
	default:
		b.WriteByte('{')
		b.WriteString(p.Hint.Symbol())
	}
	b.WriteString(p.Name.Text)
	if p.HasFormat {
		b.WriteByte(':')
		b.WriteString(p.Format)
	}
	b.WriteByte('}')
	return b.String()
}

func (Property) node() {}

// Compile-time interface checks.
var (
	_ Node = Literal{}
	_ Node = Property{}
)
