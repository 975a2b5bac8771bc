package render_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gowiki/pkg/render"
)

func renderText(t *testing.T, source string, vars render.Variables) string {
	t.Helper()

	var sb strings.Builder
	require.NoError(t, render.Text(&sb, compile(source), vars, nil))
	return sb.String()
}

func TestText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		source string
		want   string
	}{
		{name: "paragraphs", source: "one\ntwo\n\nthree", want: "one two\n\nthree\n\n"},
		{name: "header", source: "== Title ==\ntext", want: "Title\n\ntext\n\n"},
		{name: "emphasis is dropped", source: "''a'' '''b'''", want: "a b\n\n"},
		{name: "quote", source: "; quoted", want: "> quoted\n\n"},
		{name: "break inside a quote keeps the prefix", source: "; a<br>b", want: "> a\n> b\n\n"},
		{name: "pre lines", source: " a\n b", want: "a\nb\n\n"},
		{name: "rule writes nothing", source: "a\n----\nb", want: "a\n\nb\n\n"},
		{name: "signature", source: "-- John", want: "-- \nJohn\n\n"},
		{name: "unordered list", source: "* a\n* b", want: " - a\n - b\n\n"},
		{name: "ordered list", source: "# a\n# b", want: " 1. a\n 2. b\n\n"},
		{
			name:   "nested list indents one level deeper",
			source: "* a\n** b\n* c",
			want:   " - a\n    - b\n - c\n\n",
		},
		{
			name:   "ordered numbering skips nested lists",
			source: "# a\n#* b\n# c",
			want:   " 1. a\n    - b\n 2. c\n\n",
		},
		{name: "url link with label", source: "[[http://x.org|X]]", want: "X\n\n"},
		{name: "url link without label", source: "[[http://x.org]]", want: "<http://x.org>\n\n"},
		{name: "image link writes nothing", source: "a[[Image:x.png|alt]]b", want: "ab\n\n"},
		{name: "unknown link", source: "[[Foo:x]]", want: "(Unknown link type: Foo)\n\n"},
		{name: "missing variable", source: "Hi {{{name}}}!", want: "Hi !\n\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, renderText(t, tt.source, nil))
		})
	}
}

func TestText_Variables(t *testing.T) {
	t.Parallel()

	vars := render.Variables{"name": "Ann", "site": "http://x.org"}

	assert.Equal(t, "Hi Ann!\n\n", renderText(t, "Hi {{{name}}}!", vars))
	assert.Equal(t, "<http://x.org>\n\n", renderText(t, "[[{{{site}}}]]", vars))
	assert.Equal(t, "Ann\n\n", renderText(t, "[[{{{site}}}|{{{name}}}]]", vars))
}

func TestText_SharedContext(t *testing.T) {
	t.Parallel()

	ctx := render.NewListContext()
	ctx.SetIndent("  ")

	var sb strings.Builder
	require.NoError(t, render.Text(&sb, compile("a<br>b"), nil, ctx))
	assert.Equal(t, "a\n  b\n\n", sb.String())
	assert.Equal(t, 0, ctx.Depth())
}

func TestText_WriterError(t *testing.T) {
	t.Parallel()

	err := render.Text(&failingWriter{limit: 3}, compile("* first\n* second"), nil, nil)
	assert.ErrorIs(t, err, errSink)
}

func TestPlainText(t *testing.T) {
	t.Parallel()

	nodes := compile("''a''<sub>b</sub>")
	require.Len(t, nodes, 1)
	assert.Equal(t, "ab", render.PlainText(nodes[0].Children))
	assert.Empty(t, render.PlainText(nil))
}
