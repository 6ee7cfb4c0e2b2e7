package msgtemplate

// Character classes for the ASCII subset the template grammar cares about.
// Built once at init and read-only afterwards.
var (
	identStartChars [256]bool
	identChars      [256]bool
	digitChars      [256]bool
)

func init() {
	for c := 'a'; c <= 'z'; c++ {
		identStartChars[c] = true
		identChars[c] = true
	}
	for c := 'A'; c <= 'Z'; c++ {
		identStartChars[c] = true
		identChars[c] = true
	}
	for c := '0'; c <= '9'; c++ {
		identChars[c] = true
		digitChars[c] = true
	}
	identStartChars['_'] = true
	identChars['_'] = true
}

func isIdentStart(c byte) bool { return identStartChars[c] }
func isIdentChar(c byte) bool  { return identChars[c] }
func isDigit(c byte) bool      { return digitChars[c] }

// isDelimiter reports whether c can open or close a property.
func isDelimiter(c byte) bool {
	return c == '{' || c == '}' || c == '$'
}

// scanIdentifier returns the end of the identifier starting at pos,
// or pos if none starts there.
func scanIdentifier(s string, pos int) int {
	if pos >= len(s) || !isIdentStart(s[pos]) {
		return pos
	}
	i := pos + 1
	for i < len(s) && isIdentChar(s[i]) {
		i++
	}
	return i
}

// scanDigits returns the end of the digit run starting at pos.
func scanDigits(s string, pos int) int {
	i := pos
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	return i
}

// scanName reads an optional property name at pos.
//
// It returns the name (Kind NameNone when no name starts at pos), the
// position just past it, and ok=false when the text at pos is a name that
// can never be valid, which is a digit run followed by '.'.
func scanName(s string, pos int) (PropertyName, int, bool) {
	if pos >= len(s) {
		return PropertyName{}, pos, true
	}

	c := s[pos]
	switch {
	case isDigit(c):
		end := scanDigits(s, pos)
		if end < len(s) && s[end] == '.' {
			return PropertyName{}, pos, false
		}
		return PropertyName{Kind: NameIndex, Text: s[pos:end]}, end, true

	case isIdentStart(c):
		end := scanIdentifier(s, pos)
		segments := 1
		for end+1 < len(s) && s[end] == '.' && isIdentStart(s[end+1]) {
			end = scanIdentifier(s, end+1)
			segments++
		}
		kind := NameIdentifier
		if segments > 1 {
			kind = NameDotted
		}
		return PropertyName{Kind: kind, Text: s[pos:end]}, end, true
	}

	return PropertyName{}, pos, true
}

// formatScanner finds where a format spec that starts at a given position
// stops. Callers scan left to right, so the last stop found is reused until
// the cursor moves past it, which keeps repeated failed attempts linear.
type formatScanner struct {
	s             string
	stopAtNewline bool

	from int // cursor the cached stop was computed for
	stop int // index of the stopping byte, or len(s)
}

func newFormatScanner(s string, stopAtNewline bool) formatScanner {
	return formatScanner{s: s, stopAtNewline: stopAtNewline, from: -1, stop: -1}
}

// closeAt returns the index of the '}' that ends a format spec starting at
// pos, or -1 when the format is unterminated.
func (f *formatScanner) closeAt(pos int) int {
	if f.from < 0 || pos < f.from || pos > f.stop {
		f.from = pos
		f.stop = f.find(pos)
	}
	if f.stop < len(f.s) && f.s[f.stop] == '}' {
		return f.stop
	}
	return -1
}

func (f *formatScanner) find(pos int) int {
	for i := pos; i < len(f.s); i++ {
		switch f.s[i] {
		case '}':
			return i
		case '\n', '\r':
			if f.stopAtNewline {
				return i
			}
		}
	}
	return len(f.s)
}
