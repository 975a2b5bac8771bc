package render

import (
	"io"

	"github.com/yaklabco/gowiki/pkg/wikiast"
)

type debugRenderer struct {
	out output
}

// Debug writes a bracket-tagged trace of the tree shape.
func Debug(w io.Writer, nodes []*wikiast.Node) error {
	r := &debugRenderer{out: output{w: w}}
	r.nodes(nodes)
	return r.out.err
}

func (r *debugRenderer) nodes(nodes []*wikiast.Node) {
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

func (r *debugRenderer) node(node *wikiast.Node) {
	switch node.Kind {
	case wikiast.NodeText:
		r.out.write(node.Text)
	case wikiast.NodeBreak:
		r.out.write("<br/>\n")
	case wikiast.NodeLine:
		r.out.write("\\CR\\LF\n")
	case wikiast.NodeVariable:
		r.out.write("[", node.Text, "]")
	case wikiast.NodeToken:
		r.out.write(node.Token.String())
	case wikiast.NodeLink:
		r.link(node.Link)
	case wikiast.NodeElement:
		r.element(node)
	default:
		r.out.write("\n")
		r.element(node)
		r.out.write("\n")
	}
}

func (r *debugRenderer) element(node *wikiast.Node) {
	r.out.write("<", node.Tag, ">")
	r.nodes(node.Children)
	r.out.write("</", node.Tag, ">")
}

func (r *debugRenderer) link(link *wikiast.LinkAttrs) {
	if link == nil {
		r.out.write("<LINK:?>")
		return
	}

	segments := make([]string, len(link.Segments))
	for i, seg := range link.Segments {
		segments[i] = flattenDebug(seg)
	}

	r.out.write("<LINK:")
	if !r.out.failed() {
		r.out.check(namespaceOf(link).RenderDebug(r.out.w, flattenDebug(link.Href), segments))
	}
	r.out.write(">")
}
