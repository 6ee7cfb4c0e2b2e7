package msgtemplate_test

import (
	"sync"
	"testing"

	"github.com/randalmurphal/msgtemplate/pkg/msgtemplate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestTemplate_PropertyNames verifies encoder-style name extraction.
func TestTemplate_PropertyNames(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"none", "plain text", []string{}},
		{"in order", "{B} then {A}", []string{"B", "A"}},
		{"deduplicated", "{A} {A:F2} {@A}", []string{"A"}},
		{"all forms", "{X} {{.Y}} ${Z} {0} {http.method}", []string{"X", "Y", "Z", "0", "http.method"}},
		{"empty bodies skipped", "{} ${} {{.}} {N}", []string{"N"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := msgtemplate.Parse(tt.input).PropertyNames()
			assert.Equal(t, tt.want, got)
		})
	}
}

// TestTemplate_Iteration verifies forward traversal and early exit.
func TestTemplate_Iteration(t *testing.T) {
	tmpl := msgtemplate.Parse("a {B} c {D} e")
	require.Equal(t, 5, tmpl.Len())
	assert.Equal(t, "a {B} c {D} e", tmpl.Text())

	var indexes []int
	for i := range tmpl.All() {
		indexes = append(indexes, i)
		if i == 2 {
			break
		}
	}
	assert.Equal(t, []int{0, 1, 2}, indexes)

	var names []string
	for p := range tmpl.Properties() {
		names = append(names, p.Name.Text)
		break
	}
	assert.Equal(t, []string{"B"}, names)

	assert.True(t, tmpl.HasProperties())
	assert.False(t, msgtemplate.Parse("{Name").HasProperties())
}

// TestTemplate_ConcurrentParse verifies parsers can be shared.
func TestTemplate_ConcurrentParse(t *testing.T) {
	p := msgtemplate.NewParser(msgtemplate.WithDialect(msgtemplate.DialectStrict))
	inputs := []string{"{A} {B}", "${C:x}", "{{.D}}", "{0.x}", "plain"}

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			in := inputs[i%len(inputs)]
			for j := 0; j < 100; j++ {
				assert.Equal(t, in, p.Parse(in).String())
			}
		}(i)
	}
	wg.Wait()
}
