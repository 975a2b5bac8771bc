package render

import (
	"html"
	"io"

	"github.com/yaklabco/gowiki/pkg/wikiast"
)

type markupRenderer struct {
	out    output
	vars   Variables
	styler Styler
	ctx    *ListContext
}

// Markup writes the styled rendering of nodes. A nil styler uses a plain
// HTMLStyler; a nil ctx starts a fresh list context.
func Markup(w io.Writer, nodes []*wikiast.Node, vars Variables, styler Styler, ctx *ListContext) error {
	if styler == nil {
		styler = NewHTMLStyler()
	}
	if ctx == nil {
		ctx = NewListContext()
	}

	r := &markupRenderer{out: output{w: w}, vars: vars, styler: styler, ctx: ctx}
	r.out.check(styler.BeginDocument(w))
	r.nodes(nodes)
	if !r.out.failed() {
		r.out.check(styler.EndDocument(w))
	}
	return r.out.err
}

func (r *markupRenderer) nodes(nodes []*wikiast.Node) {
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

func (r *markupRenderer) node(node *wikiast.Node) {
	switch node.Kind {
	case wikiast.NodeText:
		r.out.write(html.EscapeString(node.Text))
	case wikiast.NodeBreak, wikiast.NodeLine:
		r.out.write(r.ctx.Indent(), "<br />\n")
	case wikiast.NodeVariable:
		r.out.write(r.vars[node.Text])
	case wikiast.NodeElement:
		r.out.write("<", node.Tag, ">")
		r.nodes(node.Children)
		r.out.write("</", node.Tag, ">")
	case wikiast.NodeLink:
		if node.Link == nil {
			return
		}
		href, segments := linkText(node.Link, r.vars)
		r.out.check(namespaceOf(node.Link).RenderMarkup(r.out.w, href, segments, r.styler))
	case wikiast.NodeToken:
	case wikiast.NodeHR:
		r.out.check(r.styler.HR(r.out.w))
	default:
		r.out.check(r.styler.BeginBlock(r.out.w, node.Tag, ""))
		r.nodes(node.Children)
		if !r.out.failed() {
			r.out.check(r.styler.EndBlock(r.out.w, node.Tag))
		}
	}
}
