package msgtemplate

import (
	"iter"
	"strings"
)

// Template is the parsed form of a message template. It is immutable.
type Template struct {
	text  string
	nodes []Node
}

// defaultParser backs the package-level Parse. It is never modified.
var defaultParser = NewParser()

// Parse parses text with the default (permissive) parser.
//
// Example:
//
//	t := msgtemplate.Parse("{Duration:HH:mm:ss}")
//	for _, n := range t.All() {
//	    if p, ok := n.(msgtemplate.Property); ok {
//	        fmt.Println(p.Name, p.Format) // Duration HH:mm:ss
//	    }
//	}
func Parse(text string) *Template {
	return defaultParser.Parse(text)
}

// Text returns the input the template was parsed from.
func (t *Template) Text() string { return t.text }

// Len returns the number of nodes.
func (t *Template) Len() int { return len(t.nodes) }

// All iterates over the nodes in source order.
func (t *Template) All() iter.Seq2[int, Node] {
	return func(yield func(int, Node) bool) {
		for i, n := range t.nodes {
			if !yield(i, n) {
				return
			}
		}
	}
}

// Properties iterates over the property nodes in source order.
func (t *Template) Properties() iter.Seq[Property] {
	return func(yield func(Property) bool) {
		for _, n := range t.nodes {
			if p, ok := n.(Property); ok {
				if !yield(p) {
					return
				}
			}
		}
	}
}

// HasProperties reports whether the template contains at least one property.
func (t *Template) HasProperties() bool {
	for range t.Properties() {
		return true
	}
	return false
}

// PropertyNames returns the distinct property names in first-seen order.
// Properties without a name are skipped.
func (t *Template) PropertyNames() []string {
	names := make([]string, 0, len(t.nodes)/2)
	seen := make(map[string]struct{})
	for p := range t.Properties() {
		if p.Name.IsZero() {
			continue
		}
		if _, ok := seen[p.Name.Text]; ok {
			continue
		}
		seen[p.Name.Text] = struct{}{}
		names = append(names, p.Name.Text)
	}
	return names
}

// String rebuilds the source text from the nodes. It always equals Text().
func (t *Template) String() string {
	var b strings.Builder
	b.Grow(len(t.text))
	for _, n := range t.nodes {
		b.WriteString(n.Source())
	}
	return b.String()
}
