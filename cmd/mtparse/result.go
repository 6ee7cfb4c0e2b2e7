package main

import (
	"fmt"
	"io"

	"github.com/randalmurphal/msgtemplate/pkg/msgtemplate"
)

// result is the printable form of one parsed template.
type result struct {
	Template   string     `json:"template" yaml:"template"`
	Nodes      []nodeView `json:"nodes" yaml:"nodes"`
	Properties []string   `json:"properties" yaml:"properties"`
	Rendered   *string    `json:"rendered,omitempty" yaml:"rendered,omitempty"`
	CatalogID  string     `json:"catalog_id,omitempty" yaml:"catalog_id,omitempty"`
}

// nodeView flattens a Literal or Property for output.
type nodeView struct {
	Kind     string  `json:"kind" yaml:"kind"`
	Start    int     `json:"start" yaml:"start"`
	End      int     `json:"end" yaml:"end"`
	Text     string  `json:"text,omitempty" yaml:"text,omitempty"`
	Form     string  `json:"form,omitempty" yaml:"form,omitempty"`
	Hint     string  `json:"hint,omitempty" yaml:"hint,omitempty"`
	Name     string  `json:"name,omitempty" yaml:"name,omitempty"`
	NameKind string  `json:"name_kind,omitempty" yaml:"name_kind,omitempty"`
	Format   *string `json:"format,omitempty" yaml:"format,omitempty"`
}

func newResult(t *msgtemplate.Template) result {
	r := result{
		Template:   t.Text(),
		Nodes:      make([]nodeView, 0, t.Len()),
		Properties: t.PropertyNames(),
	}
	for _, n := range t.All() {
		start, end := n.Span()
		v := nodeView{Start: start, End: end}
		switch n := n.(type) {
		case msgtemplate.Literal:
			v.Kind = "literal"
			v.Text = n.Text
		case msgtemplate.Property:
			v.Kind = "property"
			v.Form = n.Form.String()
			if n.Hint != msgtemplate.HintNone {
				v.Hint = n.Hint.String()
			}
			v.Name = n.Name.Text
			v.NameKind = n.Name.Kind.String()
			if n.HasFormat {
				format := n.Format
				v.Format = &format
			}
		}
		r.Nodes = append(r.Nodes, v)
	}
	return r
}

func writeText(w io.Writer, r result) {
	fmt.Fprintf(w, "template: %q\n", r.Template)
	for _, n := range r.Nodes {
		if n.Kind == "literal" {
			fmt.Fprintf(w, "  literal  [%d,%d) %q\n", n.Start, n.End, n.Text)
			continue
		}
		fmt.Fprintf(w, "  property [%d,%d) form=%s name=%q kind=%s", n.Start, n.End, n.Form, n.Name, n.NameKind)
		if n.Hint != "" {
			fmt.Fprintf(w, " hint=%s", n.Hint)
		}
		if n.Format != nil {
			fmt.Fprintf(w, " format=%q", *n.Format)
		}
		fmt.Fprintln(w)
	}
	if r.Rendered != nil {
		fmt.Fprintf(w, "  rendered: %q\n", *r.Rendered)
	}
	if r.CatalogID != "" {
		fmt.Fprintf(w, "  catalog: %s\n", r.CatalogID)
	}
}
