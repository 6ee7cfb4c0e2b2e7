package msgtemplate_test

import (
	"testing"

	"github.com/randalmurphal/msgtemplate/pkg/msgtemplate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func firstProperty(t *testing.T, input string) msgtemplate.Property {
	t.Helper()
	for p := range msgtemplate.Parse(input).Properties() {
		return p
	}
	require.Failf(t, "no property", "input %q", input)
	return msgtemplate.Property{}
}

func TestPropertyName_Segments(t *testing.T) {
	assert.Equal(t, []string{"http", "method"}, firstProperty(t, "{http.method}").Name.Segments())
	assert.Equal(t, []string{"User"}, firstProperty(t, "{User}").Name.Segments())
	assert.Equal(t, []string{"12"}, firstProperty(t, "{12}").Name.Segments())
	assert.Nil(t, firstProperty(t, "{}").Name.Segments())
}

func TestPropertyName_Kinds(t *testing.T) {
	tests := []struct {
		input string
		kind  msgtemplate.NameKind
	}{
		{"{User}", msgtemplate.NameIdentifier},
		{"{a.b}", msgtemplate.NameDotted},
		{"{3}", msgtemplate.NameIndex},
		{"{:F2}", msgtemplate.NameNone},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			p := firstProperty(t, tt.input)
			assert.Equal(t, tt.kind, p.Name.Kind)
			assert.Equal(t, tt.kind == msgtemplate.NameNone, p.Name.IsZero())
		})
	}
}

func TestProperty_Source(t *testing.T) {
	inputs := []string{
		"{User}", "{@User}", "{$User}", "{User:F2}", "{User:}",
		"{{.User}}", "{{User}}", "${User}", "${User:x:y}", "{}", "{{.}}", "${}",
	}
	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			p := firstProperty(t, in)
			assert.Equal(t, in, p.Source())
			start, end := p.Span()
			assert.Equal(t, 0, start)
			assert.Equal(t, len(in), end)
		})
	}
}

func TestEnumStrings(t *testing.T) {
	assert.Equal(t, "plain", msgtemplate.FormPlain.String())
	assert.Equal(t, "go", msgtemplate.FormGo.String())
	assert.Equal(t, "builtin", msgtemplate.FormBuiltin.String())
	assert.Equal(t, "capture", msgtemplate.HintCapture.String())
	assert.Equal(t, "stringify", msgtemplate.HintStringify.String())
	assert.Equal(t, "none", msgtemplate.HintNone.String())
	assert.Equal(t, "@", msgtemplate.HintCapture.Symbol())
	assert.Equal(t, "", msgtemplate.HintNone.Symbol())
	assert.Equal(t, "dotted", msgtemplate.NameDotted.String())
}
