package compiler_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gowiki/pkg/compiler"
	"github.com/yaklabco/gowiki/pkg/parser"
	"github.com/yaklabco/gowiki/pkg/render"
	"github.com/yaklabco/gowiki/pkg/wikiast"
)

func compile(source string) []*wikiast.Node {
	return compiler.Compile(parser.Parse(source))
}

func debug(t *testing.T, nodes []*wikiast.Node) string {
	t.Helper()

	var sb strings.Builder
	require.NoError(t, render.Debug(&sb, nodes))
	return sb.String()
}

func TestCompile_Inline(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		source string
		want   string
	}{
		{name: "italic", source: "''italic''", want: "<i>italic</i>"},
		{name: "bold", source: "'''bold'''", want: "<b>bold</b>"},
		{name: "both", source: "'''''both'''''", want: "<b><i>both</i></b>"},
		{name: "nested tags", source: "<b>a<sub>2</sub></b>", want: "<b>a<sub>2</sub></b>"},
		{name: "unterminated emphasis splices", source: "a ''b", want: "a b"},
		{name: "mismatched close splices the inner tag", source: "<b><i>x</b>y", want: "<b>x</b>y"},
		{name: "stray close is dropped", source: "x</b>y", want: "xy"},
		{name: "break", source: "a<br>b", want: "a<br/>\nb"},
		{name: "variable", source: "Hi {{{name}}}", want: "Hi [name]"},
		{name: "variable name is plain text", source: "{{{''na''me}}}", want: "[name]"},
		{name: "unterminated variable splices", source: "{{{x", want: "x"},
		{name: "url link", source: "[[http://x.org|X]]", want: "<LINK:url:http://x.org|X>"},
		{name: "url link without segments", source: "[[http://x.org]]", want: "<LINK:url:http://x.org>"},
		{name: "image link", source: "[[Image:a.png|Alt]]", want: "<LINK:Image:a.png>"},
		{name: "unknown namespace", source: "[[Foo:bar|baz]]", want: "<LINK:Foo?bar|baz>"},
		{name: "middle empty segment is kept", source: "[[x||y]]", want: "<LINK:url:x||y>"},
		{name: "formatted segment", source: "[[x|''y'']]", want: "<LINK:url:x|<i>y</i>>"},
		{
			name:   "namespace after markup stays in the href",
			source: "[[''a'':b]]",
			want:   "<LINK:url:<i>a</i>HREF_NSb>",
		},
		{name: "unterminated link splices", source: "[[x|y", want: "xHREF_SEGy"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, "\n<p>"+tt.want+"</p>\n", debug(t, compile(tt.source)))
		})
	}
}

func TestCompile_LinkSegments(t *testing.T) {
	t.Parallel()

	tests := []struct {
		source   string
		segments int
	}{
		{"[[x]]", 0},
		{"[[x|]]", 0},
		{"[[x|a]]", 1},
		{"[[x|a|]]", 1},
		{"[[x||]]", 1},
		{"[[x|a|b]]", 2},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			t.Parallel()

			link := wikiast.FindFirst(compile(tt.source), func(n *wikiast.Node) bool {
				return n.Kind == wikiast.NodeLink
			})
			require.NotNil(t, link)
			assert.Len(t, link.Link.Segments, tt.segments)
			assert.Empty(t, link.Children)
		})
	}
}

func TestCompile_NamespaceSelection(t *testing.T) {
	t.Parallel()

	nodes := compile("[[Image:a.png]] [[Wiki:Page]] [[https://x.org]]")

	links := wikiast.FindByKind(nodes, wikiast.NodeLink)
	require.Len(t, links, 3)
	assert.IsType(t, wikiast.ImageNamespace{}, links[0].Link.Namespace)
	assert.Equal(t, wikiast.UnknownNamespace{Namespace: "Wiki"}, links[1].Link.Namespace)
	assert.IsType(t, wikiast.URLNamespace{}, links[2].Link.Namespace)
}

func TestCompile_AdjacentTextMerges(t *testing.T) {
	t.Parallel()

	nodes := compiler.CompileTokens([]wikiast.Token{
		{Kind: wikiast.TokText, Arg: "a"},
		{Kind: wikiast.TokText, Arg: "b"},
		{Kind: wikiast.TokVarClose},
		{Kind: wikiast.TokText, Arg: "c"},
	})

	require.Len(t, nodes, 1)
	assert.Equal(t, "abc", nodes[0].Text)
}

func TestCompileTokens_StraySeparators(t *testing.T) {
	t.Parallel()

	nodes := compiler.CompileTokens([]wikiast.Token{
		{Kind: wikiast.TokLinkNamespace},
		{Kind: wikiast.TokLinkSegment},
		{Kind: wikiast.TokLinkClose},
	})

	require.Len(t, nodes, 2)
	assert.Equal(t, wikiast.TokLinkNamespace, nodes[0].Token)
	assert.Equal(t, wikiast.TokLinkSegment, nodes[1].Token)
}

func TestCompile_Blocks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		source string
		want   string
	}{
		{name: "header", source: "== Title ==", want: "\n<h2>Title</h2>\n"},
		{name: "header of equal signs", source: "====", want: "\n<h2></h2>\n"},
		{name: "quote", source: "; q", want: "\n<quote>q</quote>\n"},
		{name: "pre", source: " a\n b", want: "\n<pre>a\\CR\\LF\nb</pre>\n"},
		{name: "hr", source: "---", want: "\n<hr></hr>\n"},
		{name: "signature", source: "-- signed", want: "\n<sign>signed</sign>\n"},
		{
			name:   "nested list",
			source: "* a\n** b\n* c",
			want:   "\n<ul>\n<li>a</li>\n\n<ul>\n<li>b</li>\n</ul>\n\n<li>c</li>\n</ul>\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, debug(t, compile(tt.source)))
		})
	}
}

func TestCompile_ListShape(t *testing.T) {
	t.Parallel()

	nodes := compile("* a\n** b\n* c")
	require.Len(t, nodes, 1)

	list := nodes[0]
	assert.Equal(t, wikiast.NodeUList, list.Kind)
	require.Len(t, list.Children, 3)
	assert.Equal(t, wikiast.NodeItem, list.Children[0].Kind)
	assert.Equal(t, wikiast.NodeUList, list.Children[1].Kind)
	assert.Equal(t, wikiast.NodeItem, list.Children[2].Kind)

	require.Len(t, list.Children[1].Children, 1)
	assert.Equal(t, "b", render.PlainText(list.Children[1].Children[0].Children))
}

func TestCompile_HeaderLevel(t *testing.T) {
	t.Parallel()

	nodes := compile("=== Deep ===")
	require.Len(t, nodes, 1)
	assert.Equal(t, wikiast.NodeHeader, nodes[0].Kind)
	assert.Equal(t, 3, nodes[0].Level)
	assert.Equal(t, "h3", nodes[0].Tag)
}

func TestCompile_UnknownBlock(t *testing.T) {
	t.Parallel()

	assert.Empty(t, compiler.Compile([]wikiast.Block{{Kind: wikiast.BlockUnknown}}))
}

func TestCompile_HRHasNoChildren(t *testing.T) {
	t.Parallel()

	nodes := compiler.Compile([]wikiast.Block{{
		Kind:   wikiast.BlockHR,
		Tokens: []wikiast.Token{{Kind: wikiast.TokText, Arg: "x"}},
	}})
	require.Len(t, nodes, 1)
	assert.False(t, nodes[0].HasChildren())
}

func TestCompile_Idempotent(t *testing.T) {
	t.Parallel()

	source := "== T ==\n''a'' [[Image:x.png|y]] {{{v}}}\n* 1\n*# 2\n----\n-- me"
	assert.Equal(t, debug(t, compile(source)), debug(t, compile(source)))
}

func FuzzCompile(f *testing.F) {
	f.Add("''a'''b'''c''")
	f.Add("[[Image:x|y|z]] {{{a}}} <b><i>x</b>")
	f.Add("* a\n## b\n*** c\n; q\n pre")

	f.Fuzz(func(t *testing.T, source string) {
		nodes := compile(source)
		for _, node := range nodes {
			if !node.IsBlock() {
				t.Fatalf("top-level node %s is not a block", node.Kind)
			}
		}
		err := wikiast.Walk(nodes, func(n *wikiast.Node) error {
			if n.Kind == wikiast.NodeLink && n.Link == nil {
				t.Fatalf("link without attributes")
			}
			return nil
		})
		if err != nil {
			t.Fatal(err)
		}
	})
}
