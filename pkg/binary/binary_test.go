package binary_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gowiki/pkg/binary"
	"github.com/yaklabco/gowiki/pkg/compiler"
	"github.com/yaklabco/gowiki/pkg/parser"
	"github.com/yaklabco/gowiki/pkg/render"
	"github.com/yaklabco/gowiki/pkg/wikiast"
)

const richDocument = `== Welcome {{{name}}} ==
''Italic'', '''bold''' and '''''both''''' with <sub>sub</sub> and <tt>tt</tt>.<br>
A [[http://example.com/?a=1&b=2|link & more]] and [[Image:logo.png|Logo]] and [[Wiki:Page|x|]].
[[''odd'':ns]] [[x||y]]

* one
** two
*# three
* four
# five

; quoted<br>text
 pre line
 second line
----
-- signature
`

func compile(source string) []*wikiast.Node {
	return compiler.Compile(parser.Parse(source))
}

// renders returns every rendering of nodes, used to compare forests.
func renders(t *testing.T, nodes []*wikiast.Node, vars render.Variables) []string {
	t.Helper()

	var text, markup, mail, debug strings.Builder
	require.NoError(t, render.Text(&text, nodes, vars, nil))
	require.NoError(t, render.Markup(&markup, nodes, vars, nil, nil))
	require.NoError(t, render.Markup(&mail, nodes, vars, render.NewMailStyler(nil), nil))
	require.NoError(t, render.Debug(&debug, nodes))
	return []string{text.String(), markup.String(), mail.String(), debug.String()}
}

func TestStore_RoundTrip(t *testing.T) {
	t.Parallel()

	nodes := compile(richDocument)
	data, err := binary.Store(nodes)
	require.NoError(t, err)

	loaded, err := binary.Load(data)
	require.NoError(t, err)

	for _, vars := range []render.Variables{nil, {"name": "Ann <admin>"}} {
		assert.Equal(t, renders(t, nodes, vars), renders(t, loaded, vars))
	}

	again, err := binary.Store(loaded)
	require.NoError(t, err)
	assert.Equal(t, data, again)
}

func TestStore_Layout(t *testing.T) {
	t.Parallel()

	data, err := binary.Store([]*wikiast.Node{wikiast.NewText("hi")})
	require.NoError(t, err)

	want := []byte{
		'W', 'I', 'K', 'I',
		0x00, 0x00, 0x01, 0x00,
		0x01, 0x00, 0x00, 0x00,
		't', 'E', 'h', 'i', 0x00,
	}
	assert.Equal(t, want, data)
}

func TestStore_HeaderAndLinkLayout(t *testing.T) {
	t.Parallel()

	nodes := []*wikiast.Node{
		wikiast.NewHeader(2, nil),
		wikiast.NewLink(wikiast.URLNamespace{}, []*wikiast.Node{wikiast.NewText("u")}, nil),
	}
	data, err := binary.Store(nodes)
	require.NoError(t, err)

	body := data[12:]
	want := []byte{
		'h', 'e', '2', 0x00, 0x00, 0x00, 0x00, 0x00,
		'l', 'i', 0x00, 0x01, 0x00, 0x00, 0x00,
		'H', 'r', 0x01, 0x00, 0x00, 0x00,
		't', 'E', 'u', 0x00,
	}
	assert.Equal(t, want, body)
}

func TestTagBits(t *testing.T) {
	t.Parallel()

	tests := []struct {
		tag      binary.Tag
		name     string
		str      bool
		children bool
	}{
		{binary.TagLink, "li", true, true},
		{binary.TagHeader, "he", true, true},
		{binary.TagElement, "el", true, true},
		{binary.TagText, "tE", true, false},
		{binary.TagVariable, "vA", true, false},
		{binary.TagToken, "tK", true, false},
		{binary.TagHref, "Hr", false, true},
		{binary.TagSegment, "Se", false, true},
		{binary.TagPara, "Pa", false, true},
		{binary.TagPre, "Pr", false, true},
		{binary.TagQuote, "Qu", false, true},
		{binary.TagOList, "Ol", false, true},
		{binary.TagUList, "Ul", false, true},
		{binary.TagItem, "It", false, true},
		{binary.TagSignature, "Si", false, true},
		{binary.TagBreak, "BR", false, false},
		{binary.TagLine, "LI", false, false},
		{binary.TagHR, "HR", false, false},
	}

	seen := make(map[binary.Tag]bool)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.name, tt.tag.String())
			assert.Equal(t, binary.MakeTag(tt.name[0], tt.name[1]), tt.tag)
			assert.Equal(t, tt.str, tt.tag.HasString())
			assert.Equal(t, tt.children, tt.tag.HasChildren())
		})
		assert.False(t, seen[tt.tag], "duplicate tag %s", tt.name)
		seen[tt.tag] = true
	}
}

func TestLoad_ListKindsSurvive(t *testing.T) {
	t.Parallel()

	data, err := binary.Store(compile("# a\n* b"))
	require.NoError(t, err)

	loaded, err := binary.Load(data)
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, wikiast.NodeOList, loaded[0].Kind)
	assert.Equal(t, wikiast.NodeUList, loaded[1].Kind)
}

func TestLoad_Namespaces(t *testing.T) {
	t.Parallel()

	nodes := []*wikiast.Node{
		wikiast.NewLink(wikiast.URLNamespace{}, nil, nil),
		wikiast.NewLink(wikiast.ImageNamespace{}, nil, nil),
		wikiast.NewLink(wikiast.UnknownNamespace{Namespace: "url"}, nil, nil),
		wikiast.NewLink(wikiast.UnknownNamespace{Namespace: "Wiki"}, nil, nil),
	}
	data, err := binary.Store(nodes)
	require.NoError(t, err)

	loaded, err := binary.Load(data)
	require.NoError(t, err)
	require.Len(t, loaded, 4)
	assert.Equal(t, wikiast.URLNamespace{}, loaded[0].Link.Namespace)
	assert.Equal(t, wikiast.ImageNamespace{}, loaded[1].Link.Namespace)
	assert.Equal(t, wikiast.UnknownNamespace{Namespace: "url"}, loaded[2].Link.Namespace)
	assert.Equal(t, wikiast.UnknownNamespace{Namespace: "Wiki"}, loaded[3].Link.Namespace)
}

func TestLoad_Empty(t *testing.T) {
	t.Parallel()

	data, err := binary.Store(nil)
	require.NoError(t, err)
	assert.Len(t, data, 12)

	loaded, err := binary.Load(data)
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	valid, err := binary.Store([]*wikiast.Node{wikiast.NewHeader(1, []*wikiast.Node{wikiast.NewText("x")})})
	require.NoError(t, err)

	header := valid[:8]
	withBody := func(body ...byte) []byte {
		return append(bytes.Clone(header), body...)
	}

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{name: "empty", data: nil, want: binary.ErrTruncated},
		{name: "bad magic", data: append([]byte("WIKX"), valid[4:]...), want: binary.ErrBadMagic},
		{name: "bad version", data: append(append(bytes.Clone(valid[:4]), 0, 0, 2, 0), valid[8:]...), want: binary.ErrBadVersion},
		{name: "missing count", data: withBody(), want: binary.ErrTruncated},
		{name: "count exceeds input", data: withBody(0xFF, 0xFF, 0xFF, 0x7F), want: binary.ErrTruncated},
		{name: "unknown tag", data: withBody(1, 0, 0, 0, 'Z', 'Z'), want: binary.ErrUnknownTag},
		{name: "unterminated string", data: withBody(1, 0, 0, 0, 't', 'E', 'a'), want: binary.ErrTruncated},
		{name: "bad header level", data: withBody(1, 0, 0, 0, 'h', 'e', '0', 0, 0, 0, 0, 0), want: binary.ErrMalformed},
		{name: "non-numeric header level", data: withBody(1, 0, 0, 0, 'h', 'e', 'x', 0, 0, 0, 0, 0), want: binary.ErrMalformed},
		{name: "group outside link", data: withBody(1, 0, 0, 0, 'H', 'r', 0, 0, 0, 0), want: binary.ErrMalformed},
		{name: "link without href", data: withBody(1, 0, 0, 0, 'l', 'i', 0, 0, 0, 0, 0), want: binary.ErrMalformed},
		{name: "link starting with a segment", data: withBody(1, 0, 0, 0, 'l', 'i', 0, 1, 0, 0, 0, 'S', 'e', 0, 0, 0, 0), want: binary.ErrMalformed},
		{name: "bad token name", data: withBody(1, 0, 0, 0, 't', 'K', 'X', 0), want: binary.ErrMalformed},
		{name: "trailing bytes", data: append(bytes.Clone(valid), 0), want: binary.ErrMalformed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			nodes, err := binary.Load(tt.data)
			require.ErrorIs(t, err, tt.want)
			assert.Nil(t, nodes)
		})
	}
}

func TestLoad_EveryTruncationFails(t *testing.T) {
	t.Parallel()

	data, err := binary.Store(compile(richDocument))
	require.NoError(t, err)

	for n := range len(data) {
		nodes, err := binary.Load(data[:n])
		require.Error(t, err, "prefix of %d bytes", n)
		assert.Nil(t, nodes)
	}
}

func TestStore_RejectsNUL(t *testing.T) {
	t.Parallel()

	_, err := binary.Store([]*wikiast.Node{wikiast.NewText("a\x00b")})
	assert.ErrorIs(t, err, binary.ErrUnencodable)
}

func TestStore_RejectsLinkWithoutTarget(t *testing.T) {
	t.Parallel()

	_, err := binary.Store([]*wikiast.Node{{Kind: wikiast.NodeLink}})
	assert.ErrorIs(t, err, binary.ErrUnencodable)
}

// nested returns elements nested so that the innermost text sits in the
// node list at the given depth.
func nested(depth int) []*wikiast.Node {
	nodes := []*wikiast.Node{wikiast.NewText("x")}
	for range depth - 1 {
		nodes = []*wikiast.Node{wikiast.NewElement("b", nodes)}
	}
	return nodes
}

func TestStore_NestingLimit(t *testing.T) {
	t.Parallel()

	t.Run("at the limit round trips", func(t *testing.T) {
		t.Parallel()

		data, err := binary.Store(nested(binary.MaxDepth))
		require.NoError(t, err)

		loaded, err := binary.Load(data)
		require.NoError(t, err)
		assert.Equal(t, binary.MaxDepth, wikiast.Count(loaded))
	})

	t.Run("beyond the limit is refused", func(t *testing.T) {
		t.Parallel()

		data, err := binary.Store(nested(binary.MaxDepth + 1))
		require.ErrorIs(t, err, binary.ErrUnencodable)
		assert.Nil(t, data)
	})

	t.Run("compiled deep markup", func(t *testing.T) {
		t.Parallel()

		source := strings.Repeat("<b>", 5000) + "x" + strings.Repeat("</b>", 5000)
		_, err := binary.Store(compile(source))
		assert.ErrorIs(t, err, binary.ErrUnencodable)
	})

	t.Run("writer is reusable after refusal", func(t *testing.T) {
		t.Parallel()

		w := binary.NewWriter()
		require.Error(t, w.WriteNodes(nested(binary.MaxDepth+1)))

		w = binary.NewWriter()
		require.NoError(t, w.WriteNodes(nested(binary.MaxDepth)))
	})
}

func TestWriter_Grows(t *testing.T) {
	t.Parallel()

	var nodes []*wikiast.Node
	for range 2000 {
		nodes = append(nodes, wikiast.NewBlock(wikiast.NodePara, []*wikiast.Node{wikiast.NewText("paragraph")}))
	}

	w := binary.NewWriter()
	require.NoError(t, w.WriteNodes(nodes))
	assert.Greater(t, w.Len(), 10240)

	var sink bytes.Buffer
	n, err := w.WriteTo(&sink)
	require.NoError(t, err)
	assert.Equal(t, int64(w.Len()), n)

	loaded, err := binary.Load(sink.Bytes())
	require.NoError(t, err)
	assert.Len(t, loaded, 2000)
}

func TestStore_SkipsNilNodes(t *testing.T) {
	t.Parallel()

	data, err := binary.Store([]*wikiast.Node{nil, wikiast.NewBreak(), nil})
	require.NoError(t, err)

	loaded, err := binary.Load(data)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, wikiast.NodeBreak, loaded[0].Kind)
}

func FuzzLoad(f *testing.F) {
	seed, err := binary.Store(compile(richDocument))
	if err != nil {
		f.Fatal(err)
	}
	f.Add(seed)
	f.Add([]byte("WIKI"))

	f.Fuzz(func(t *testing.T, data []byte) {
		nodes, err := binary.Load(data)
		if err != nil {
			if nodes != nil {
				t.Fatal("nodes returned with an error")
			}
			return
		}
		if _, err := binary.Store(nodes); err != nil {
			t.Fatalf("re-encoding a loaded forest: %v", err)
		}
	})
}

func FuzzRoundTrip(f *testing.F) {
	f.Add(richDocument)
	f.Add("''a'' [[b|c]] {{{d}}}")

	f.Fuzz(func(t *testing.T, source string) {
		nodes := compile(source)
		data, err := binary.Store(nodes)
		if err != nil {
			// Source text holding NUL bytes cannot be cached.
			return
		}
		loaded, err := binary.Load(data)
		if err != nil {
			t.Fatalf("loading a stored forest: %v", err)
		}
		if !assert.Equal(t, renders(t, nodes, nil), renders(t, loaded, nil)) {
			t.FailNow()
		}
	})
}
