package render

import (
	"io"
	"strconv"

	"github.com/yaklabco/gowiki/pkg/wikiast"
)

// listIndent is added to the indent string for every nested list level.
const listIndent = "   "

// quotePrefix marks quoted text and extends the indent inside a quote.
const quotePrefix = "> "

type textRenderer struct {
	out  output
	vars Variables
	ctx  *ListContext
}

// Text writes the plain-text rendering of nodes. A nil ctx starts a fresh
// list context.
func Text(w io.Writer, nodes []*wikiast.Node, vars Variables, ctx *ListContext) error {
	if ctx == nil {
		ctx = NewListContext()
	}
	r := &textRenderer{out: output{w: w}, vars: vars, ctx: ctx}
	r.nodes(nodes)
	return r.out.err
}

func (r *textRenderer) nodes(nodes []*wikiast.Node) {
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

func (r *textRenderer) node(node *wikiast.Node) {
	switch node.Kind {
	case wikiast.NodeText:
		r.out.write(node.Text)
	case wikiast.NodeBreak, wikiast.NodeLine:
		r.out.write("\n", r.ctx.Indent())
	case wikiast.NodeVariable:
		r.out.write(r.vars[node.Text])
	case wikiast.NodeElement:
		r.nodes(node.Children)
	case wikiast.NodeLink:
		r.link(node.Link)
	case wikiast.NodeToken, wikiast.NodeHR:
	case wikiast.NodeQuote:
		r.quote(node)
	case wikiast.NodeOList, wikiast.NodeUList:
		r.list(node)
	case wikiast.NodeItem:
		r.item(node)
	case wikiast.NodeSignature:
		r.out.write("-- \n")
		r.nodes(node.Children)
		r.out.write("\n\n")
	default:
		r.nodes(node.Children)
		r.out.write("\n\n")
	}
}

func (r *textRenderer) link(link *wikiast.LinkAttrs) {
	if link == nil {
		return
	}
	href, segments := linkText(link, r.vars)
	r.out.check(namespaceOf(link).RenderText(r.out.w, href, segments))
}

func (r *textRenderer) quote(node *wikiast.Node) {
	indent := r.ctx.Indent()
	r.out.write(indent, quotePrefix)

	r.ctx.SetIndent(indent + quotePrefix)
	r.nodes(node.Children)
	r.ctx.SetIndent(indent)

	r.out.write("\n\n")
}

func (r *textRenderer) list(node *wikiast.Node) {
	indent := r.ctx.Indent()
	if r.ctx.Depth() > 0 {
		r.ctx.SetIndent(indent + listIndent)
	}

	r.ctx.Enter(node.Kind == wikiast.NodeOList)
	r.nodes(node.Children)
	r.ctx.Leave()

	r.ctx.SetIndent(indent)
	if r.ctx.Depth() == 0 {
		r.out.write("\n")
	}
}

func (r *textRenderer) item(node *wikiast.Node) {
	id := r.ctx.Next()

	marker := " - "
	if r.ctx.Ordered() {
		marker = " " + strconv.Itoa(id) + ". "
	}

	r.out.write(r.ctx.Indent(), marker)
	r.nodes(node.Children)
	r.out.write("\n")
}
