package msgtemplate

import (
	"unicode/utf8"
)

// Reason says which rule the literal scanner applied at a position.
type Reason int

const (
	// ReasonEOF means the cursor is at the end of the input.
	ReasonEOF Reason = iota

	// ReasonText is a maximal run of bytes other than '{', '$' and '}'.
	ReasonText

	// ReasonLoneDollar is a '$' not followed by '{'.
	ReasonLoneDollar

	// ReasonStrayClose is a '}' outside any property.
	ReasonStrayClose

	// ReasonInvalidOpen is a '{' followed by a character that cannot start
	// a property body. The '{' and that character are consumed together.
	ReasonInvalidOpen

	// ReasonEmptyBuiltin is "${" directly followed by '}' in the strict
	// dialect. Only "${" is consumed.
	ReasonEmptyBuiltin

	// ReasonInvalidGoOpen is "{{" followed by something other than '.' or an
	// identifier start.
	ReasonInvalidGoOpen

	// ReasonCandidate means a property may start here. No text is consumed.
	ReasonCandidate
)

// String returns a short name for the reason.
func (r Reason) String() string {
	switch r {
	case ReasonEOF:
		return "eof"
	case ReasonText:
		return "text"
	case ReasonLoneDollar:
		return "lone-dollar"
	case ReasonStrayClose:
		return "stray-close"
	case ReasonInvalidOpen:
		return "invalid-open"
	case ReasonEmptyBuiltin:
		return "empty-builtin"
	case ReasonInvalidGoOpen:
		return "invalid-go-open"
	case ReasonCandidate:
		return "candidate"
	default:
		return "unknown"
	}
}

// scanner classifies literal text. It is only ever consulted outside a
// property body, so every '}' it sees is stray.
type scanner struct {
	input   string
	dialect Dialect
}

// scanLiteral decides what the text at pos is. For every reason except
// ReasonEOF and ReasonCandidate, end > pos and input[pos:end] is literal.
func (s *scanner) scanLiteral(pos int) (end int, reason Reason) {
	in := s.input
	if pos >= len(in) {
		return pos, ReasonEOF
	}

	switch in[pos] {
	case '$':
		if pos+1 >= len(in) || in[pos+1] != '{' {
			return pos + 1, ReasonLoneDollar
		}
		if s.dialect == DialectStrict && pos+2 < len(in) && in[pos+2] == '}' {
			return pos + 2, ReasonEmptyBuiltin
		}
		return pos, ReasonCandidate

	case '}':
		return pos + 1, ReasonStrayClose

	case '{':
		if pos+1 < len(in) && in[pos+1] == '{' {
			return s.scanGoOpen(pos)
		}
		if pos+1 < len(in) && s.canStartPlainBody(in[pos+1]) {
			return pos, ReasonCandidate
		}
		return s.consumeWithNext(pos, 1), ReasonInvalidOpen

	default:
		i := pos + 1
		for i < len(in) && !isDelimiter(in[i]) {
			i++
		}
		return i, ReasonText
	}
}

// scanGoOpen handles "{{" at pos.
func (s *scanner) scanGoOpen(pos int) (int, Reason) {
	in := s.input
	if pos+2 < len(in) {
		c := in[pos+2]
		if c == '.' || isIdentStart(c) {
			return pos, ReasonCandidate
		}
		if c == '}' && s.dialect == DialectPermissive {
			return pos, ReasonCandidate
		}
		if isDelimiter(c) {
			// Leave the second brace for the next attempt so "{{{.X}}}"
			// still finds the go-style property after the first '{'.
			return pos + 1, ReasonInvalidGoOpen
		}
	}
	return s.consumeWithNext(pos, 2), ReasonInvalidGoOpen
}

// canStartPlainBody reports whether c may follow a single '{'.
func (s *scanner) canStartPlainBody(c byte) bool {
	switch {
	case c == '@', c == '$', c == '{', isIdentStart(c), isDigit(c):
		return true
	case c == '}', c == ':':
		return s.dialect == DialectPermissive
	}
	return false
}

// consumeWithNext consumes an n-byte opener at pos plus the character after
// it, when there is one.
func (s *scanner) consumeWithNext(pos, n int) int {
	end := pos + n
	if end >= len(s.input) {
		return len(s.input)
	}
	_, size := utf8.DecodeRuneInString(s.input[end:])
	return end + size
}
