package msgtemplate

import (
	"log/slog"

	"github.com/randalmurphal/msgtemplate/pkg/msgtemplate/observability"
)

// Parser turns template text into a Template.
//
// Create with NewParser() and configure with Option functions.
// Parser holds no mutable state and is safe for concurrent use.
type Parser struct {
	dialect Dialect
	logger  *slog.Logger
}

// NewParser creates a Parser with the given options.
//
// Default configuration:
//   - Dialect: DialectPermissive
//   - Logger: none
func NewParser(opts ...Option) *Parser {
	p := &Parser{dialect: DialectPermissive}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Dialect returns the dialect the parser was configured with.
func (p *Parser) Dialect() Dialect { return p.dialect }

// Parse parses text into a Template. It never fails: text that does not
// form a property is kept as literal text.
//
// Example:
//
//	t := NewParser().Parse("User {UserId} logged in from {@Client}")
//	// t.PropertyNames(): ["UserId", "Client"]
func (p *Parser) Parse(text string) *Template {
	st := parseState{
		parser:  p,
		input:   text,
		scan:    scanner{input: text, dialect: p.dialect},
		formats: newFormatScanner(text, p.dialect == DialectStrict),
		litPos:  -1,
	}
	st.run()
	return &Template{text: text, nodes: st.nodes}
}

// parseState is the per-call state of a single Parse.
type parseState struct {
	parser  *Parser
	input   string
	scan    scanner
	formats formatScanner
	nodes   []Node

	// litPos is the start of the pending literal run, or -1.
	litPos int
}

func (st *parseState) run() {
	pos := 0
	for pos < len(st.input) {
		end, reason := st.scan.scanLiteral(pos)
		if reason != ReasonCandidate {
			st.markLiteral(pos)
			pos = end
			continue
		}
		pos = st.property(pos)
	}
	st.flush()
}

// property tries the property forms at pos in order of specificity and
// returns the position to continue from. A failed attempt keeps the opener
// as literal text; it is never retried with another form once the opener
// has been committed to.
func (st *parseState) property(pos int) int {
	in := st.input
	if in[pos] == '$' {
		if prop, ok := st.builtinProperty(pos); ok {
			return st.emit(prop)
		}
		return st.abandon(pos, pos+2, FormBuiltin)
	}

	form := FormPlain
	if pos+1 < len(in) && in[pos+1] == '{' {
		if prop, ok := st.goProperty(pos); ok {
			return st.emit(prop)
		}
		form = FormGo
	}
	if prop, ok := st.plainProperty(pos); ok {
		return st.emit(prop)
	}
	return st.abandon(pos, pos+1, form)
}

// plainProperty matches '{' hint? name? (':' format)? '}'.
func (st *parseState) plainProperty(pos int) (Property, bool) {
	in := st.input
	prop := Property{Form: FormPlain, Pos: pos}
	i := pos + 1
	if i < len(in) {
		switch in[i] {
		case '@':
			prop.Hint = HintCapture
			i++
		case '$':
			prop.Hint = HintStringify
			i++
		}
	}
	return st.body(prop, i)
}

// builtinProperty matches "${" name? (':' format)? '}'.
func (st *parseState) builtinProperty(pos int) (Property, bool) {
	return st.body(Property{Form: FormBuiltin, Pos: pos}, pos+2)
}

// body parses the shared name, format and closing brace of the plain and
// builtin forms, starting at i.
func (st *parseState) body(prop Property, i int) (Property, bool) {
	in := st.input
	name, i, ok := scanName(in, i)
	if !ok || !st.nameAllowed(name) {
		return Property{}, false
	}
	prop.Name = name

	if i < len(in) && in[i] == ':' {
		end := st.formats.closeAt(i + 1)
		if end < 0 {
			return Property{}, false
		}
		prop.Format = in[i+1 : end]
		prop.HasFormat = true
		i = end
	}

	if i >= len(in) || in[i] != '}' {
		return Property{}, false
	}
	prop.End = i + 1
	return prop, true
}

// goProperty matches "{{" '.'? name? "}}".
func (st *parseState) goProperty(pos int) (Property, bool) {
	in := st.input
	prop := Property{Form: FormGo, Pos: pos}
	i := pos + 2
	if i < len(in) && in[i] == '.' {
		prop.Dot = true
		i++
	}

	name, i, ok := scanName(in, i)
	if !ok || !st.nameAllowed(name) {
		return Property{}, false
	}
	prop.Name = name

	if i+1 >= len(in) || in[i] != '}' || in[i+1] != '}' {
		return Property{}, false
	}
	prop.End = i + 2
	return prop, true
}

func (st *parseState) nameAllowed(name PropertyName) bool {
	return !name.IsZero() || st.parser.dialect == DialectPermissive
}

// markLiteral starts a literal run at start unless one is already pending.
// A pending run always extends up to the next property or the end of input.
func (st *parseState) markLiteral(start int) {
	if st.litPos < 0 {
		st.litPos = start
	}
}

// flushTo emits the pending literal run as input[litPos:end].
func (st *parseState) flushTo(end int) {
	if st.litPos < 0 {
		return
	}
	if end > st.litPos {
		st.nodes = append(st.nodes, Literal{Text: st.input[st.litPos:end], Pos: st.litPos})
	}
	st.litPos = -1
}

func (st *parseState) flush() { st.flushTo(len(st.input)) }

func (st *parseState) emit(prop Property) int {
	st.flushTo(prop.Pos)
	st.nodes = append(st.nodes, prop)
	return prop.End
}

// abandon keeps input[pos:end] as literal after a failed property attempt.
func (st *parseState) abandon(pos, end int, form Form) int {
	st.logFallback(pos, form)
	st.markLiteral(pos)
	return end
}

func (st *parseState) logFallback(pos int, form Form) {
	observability.LogPropertyFallback(st.parser.logger, form.String(), pos)
}
