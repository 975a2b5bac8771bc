package pretty

import (
	"strconv"
	"strings"

	"github.com/yaklabco/gowiki/pkg/render"
	"github.com/yaklabco/gowiki/pkg/wikiast"
)

const maxTextLabel = 48

// FormatTree renders nodes as an indented tree, one node per line.
func (s *Styles) FormatTree(nodes []*wikiast.Node) string {
	var sb strings.Builder
	s.treeLevel(&sb, nodes, "")
	return sb.String()
}

func (s *Styles) treeLevel(sb *strings.Builder, nodes []*wikiast.Node, prefix string) {
	for i, node := range nodes {
		last := i == len(nodes)-1

		branch, indent := "├── ", "│   "
		if last {
			branch, indent = "└── ", "    "
		}

		sb.WriteString(s.Branch.Render(prefix + branch))
		sb.WriteString(s.nodeLabel(node))
		sb.WriteString("\n")

		if node == nil {
			continue
		}

		s.treeLevel(sb, node.Children, prefix+indent)

		if node.Kind == wikiast.NodeLink && node.Link != nil {
			s.linkParts(sb, node.Link, prefix+indent)
		}
	}
}

func (s *Styles) linkParts(sb *strings.Builder, link *wikiast.LinkAttrs, prefix string) {
	groups := append([][]*wikiast.Node{link.Href}, link.Segments...)
	for i, group := range groups {
		branch, indent := "├── ", "│   "
		if i == len(groups)-1 {
			branch, indent = "└── ", "    "
		}

		label := "href"
		if i > 0 {
			label = "segment " + strconv.Itoa(i)
		}

		sb.WriteString(s.Branch.Render(prefix + branch))
		sb.WriteString(s.Dim.Render(label))
		sb.WriteString("\n")
		s.treeLevel(sb, group, prefix+indent)
	}
}

func (s *Styles) nodeLabel(node *wikiast.Node) string {
	if node == nil {
		return s.Token.Render("<nil>")
	}

	switch node.Kind {
	case wikiast.NodeText:
		return s.Text.Render(strconv.Quote(truncateString(node.Text, maxTextLabel)))
	case wikiast.NodeVariable:
		return s.Variable.Render("{{{" + node.Text + "}}}")
	case wikiast.NodeElement:
		return s.Inline.Render("<" + node.Tag + ">")
	case wikiast.NodeBreak, wikiast.NodeLine:
		return s.Inline.Render(node.Kind.String())
	case wikiast.NodeToken:
		return s.Token.Render("Token " + node.Token.String())
	case wikiast.NodeLink:
		label := "Link"
		if node.Link != nil && node.Link.Namespace != nil {
			label += " " + node.Link.Namespace.Name()
		}
		if node.Link != nil {
			if href := render.PlainText(node.Link.Href); href != "" {
				label += " " + truncateString(href, maxTextLabel)
			}
		}
		return s.Link.Render(label)
	case wikiast.NodeHeader:
		return s.Block.Render("Header h" + strconv.Itoa(node.Level))
	default:
		return s.Block.Render(node.Kind.String())
	}
}
