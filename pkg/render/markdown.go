package render

import (
	"io"
	"strconv"
	"strings"

	"github.com/yaklabco/gowiki/pkg/langdetect"
	"github.com/yaklabco/gowiki/pkg/wikiast"
)

// markdownListIndent nests a list under the previous item. Four spaces cover
// both "- " and "N. " markers.
const markdownListIndent = "    "

//nolint:gochecknoglobals // Read-only replacer.
var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"`", "\\`",
	`*`, `\*`,
	`_`, `\_`,
	`[`, `\[`,
	`]`, `\]`,
	`<`, `\<`,
	`>`, `\>`,
	`#`, `\#`,
	`|`, `\|`,
)

// destinationEscaper keeps an href inside a <...> link destination, which
// ends at the first unescaped '>' and cannot span lines.
//
//nolint:gochecknoglobals // Read-only replacer.
var destinationEscaper = strings.NewReplacer(
	`\`, `\\`,
	`<`, `\<`,
	`>`, `\>`,
	"\n", "%0A",
	"\r", "%0D",
)

type markdownRenderer struct {
	out  output
	vars Variables
	ctx  *ListContext

	// lineStart is set while nothing has been written on the current line
	// after a block prefix.
	lineStart bool
}

// Markdown writes a CommonMark rendering of nodes. Preformatted blocks become
// fenced code blocks tagged with a detected language.
func Markdown(w io.Writer, nodes []*wikiast.Node, vars Variables) error {
	r := &markdownRenderer{out: output{w: w}, vars: vars, ctx: NewListContext()}
	r.nodes(nodes)
	return r.out.err
}

func (r *markdownRenderer) nodes(nodes []*wikiast.Node) {
	for _, node := range nodes {
		if node == nil {
			continue
		}
		if r.out.failed() {
			return
		}
		r.node(node)
	}
}

func (r *markdownRenderer) node(node *wikiast.Node) {
	switch node.Kind {
	case wikiast.NodeText:
		r.text(node.Text)
	case wikiast.NodeBreak, wikiast.NodeLine:
		r.out.write("\\\n", r.ctx.Indent())
		r.lineStart = true
	case wikiast.NodeVariable:
		r.text(r.vars[node.Text])
	case wikiast.NodeElement:
		r.element(node)
	case wikiast.NodeLink:
		r.link(node.Link)
	case wikiast.NodeToken:
	case wikiast.NodeHeader:
		level := min(max(node.Level, 1), 6)
		r.block(strings.Repeat("#", level)+" ", node.Children)
	case wikiast.NodeQuote:
		indent := r.ctx.Indent()
		r.ctx.SetIndent(indent + quotePrefix)
		r.block(quotePrefix, node.Children)
		r.ctx.SetIndent(indent)
	case wikiast.NodePre:
		r.pre(node)
	case wikiast.NodeOList, wikiast.NodeUList:
		r.list(node)
	case wikiast.NodeItem:
		r.item(node)
	case wikiast.NodeHR:
		r.out.write("---\n\n")
	case wikiast.NodeSignature:
		r.block("-- ", node.Children)
	default:
		r.block("", node.Children)
	}
}

func (r *markdownRenderer) block(prefix string, children []*wikiast.Node) {
	r.out.write(prefix)
	r.lineStart = true
	r.nodes(children)
	r.out.write("\n\n")
}

func (r *markdownRenderer) text(text string) {
	if text == "" {
		return
	}
	text = markdownEscaper.Replace(text)
	if r.lineStart {
		text = escapeLineStart(text)
		r.lineStart = false
	}
	r.out.write(text)
}

// escapeLineStart keeps text at the start of a line from reading as a list
// marker, a setext underline or a block quote.
func escapeLineStart(text string) string {
	switch text[0] {
	case '-', '+', '=':
		return `\` + text
	}

	digits := 0
	for digits < len(text) && text[digits] >= '0' && text[digits] <= '9' {
		digits++
	}
	if digits > 0 && digits < len(text) && (text[digits] == '.' || text[digits] == ')') {
		return text[:digits] + `\` + text[digits:]
	}
	return text
}

func (r *markdownRenderer) element(node *wikiast.Node) {
	var open, closing string
	switch node.Tag {
	case wikiast.TagBold:
		open, closing = "**", "**"
	case wikiast.TagItalic:
		open, closing = "*", "*"
	case "tt":
		open, closing = "<code>", "</code>"
	default:
		open, closing = "<"+node.Tag+">", "</"+node.Tag+">"
	}

	r.out.write(open)
	r.lineStart = false
	r.nodes(node.Children)
	r.out.write(closing)
}

func (r *markdownRenderer) link(link *wikiast.LinkAttrs) {
	if link == nil {
		return
	}
	r.lineStart = false

	href, segments := linkText(link, r.vars)
	label := href
	if len(segments) > 0 {
		label = segments[0]
	}

	switch ns := namespaceOf(link).(type) {
	case wikiast.URLNamespace:
		r.out.write("[", markdownEscaper.Replace(label), "](<", destinationEscaper.Replace(href), ">)")
	case wikiast.ImageNamespace:
		alt := ""
		if len(segments) > 0 {
			alt = segments[0]
		}
		r.out.write("![", markdownEscaper.Replace(alt), "](<", destinationEscaper.Replace(href), ">)")
	default:
		r.out.write("*Unknown link type: **", markdownEscaper.Replace(ns.Name()), "**.*")
	}
}

func (r *markdownRenderer) pre(node *wikiast.Node) {
	content := flattenText(node.Children, r.vars)

	fence := "```"
	for strings.Contains(content, fence) {
		fence += "`"
	}

	r.out.write(fence, langdetect.FenceInfo([]byte(content)), "\n", content, "\n", fence, "\n\n")
}

func (r *markdownRenderer) list(node *wikiast.Node) {
	indent := r.ctx.Indent()
	if r.ctx.Depth() > 0 {
		r.ctx.SetIndent(indent + markdownListIndent)
	}

	r.ctx.Enter(node.Kind == wikiast.NodeOList)
	r.nodes(node.Children)
	r.ctx.Leave()

	r.ctx.SetIndent(indent)
	if r.ctx.Depth() == 0 {
		r.out.write("\n")
	}
}

func (r *markdownRenderer) item(node *wikiast.Node) {
	id := r.ctx.Next()

	marker := "- "
	if r.ctx.Ordered() {
		marker = strconv.Itoa(id) + ". "
	}

	r.out.write(r.ctx.Indent(), marker)
	r.lineStart = true
	r.nodes(node.Children)
	r.out.write("\n")
}
