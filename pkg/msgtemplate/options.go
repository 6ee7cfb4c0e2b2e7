package msgtemplate

import "log/slog"

// Dialect selects how empty or borderline property bodies are treated.
type Dialect int

const (
	// DialectPermissive accepts properties without a name: {}, {@}, {:F2},
	// ${} and {{.}} all parse as properties whose Name is NameNone. A format
	// spec may contain line breaks. This is the default.
	DialectPermissive Dialect = iota

	// DialectStrict requires a name in every form. "${}" is literal text,
	// '{' must be followed by '@', '$', '{', a letter, '_' or a digit, and a
	// property must close on the line it was opened on.
	DialectStrict
)

// String returns the dialect name used in configuration files.
func (d Dialect) String() string {
	switch d {
	case DialectPermissive:
		return "permissive"
	case DialectStrict:
		return "strict"
	default:
		return "unknown"
	}
}

// ParseDialect converts a configuration name into a Dialect.
func ParseDialect(name string) (Dialect, bool) {
	switch name {
	case "permissive", "":
		return DialectPermissive, true
	case "strict":
		return DialectStrict, true
	default:
		return DialectPermissive, false
	}
}

// Option configures a Parser.
type Option func(*Parser)

// WithDialect sets the grammar dialect.
//
// Default: DialectPermissive
//
// Example:
//
//	p := NewParser(WithDialect(DialectStrict))
//	t := p.Parse("${}")
//	// t holds a single Literal "${}"
func WithDialect(d Dialect) Option {
	return func(p *Parser) {
		p.dialect = d
	}
}

// WithLogger sets a logger that receives a debug record each time a
// property attempt is abandoned and its opener is kept as literal text.
//
// Default: nil (no logging)
func WithLogger(logger *slog.Logger) Option {
	return func(p *Parser) {
		p.logger = logger
	}
}
