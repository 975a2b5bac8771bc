package compiler

import (
	"slices"

	"github.com/yaklabco/gowiki/pkg/wikiast"
)

// normalizeLink builds a link from the raw children found between [[ and ]].
// A leading text node followed by a namespace separator selects the
// namespace; the rest splits on segment separators into the href and the
// segments. A trailing empty segment is dropped.
func normalizeLink(raw []*wikiast.Node) *wikiast.Node {
	var ns wikiast.Namespace = wikiast.URLNamespace{}
	if len(raw) > 1 && raw[0].Kind == wikiast.NodeText && isToken(raw[1], wikiast.TokLinkNamespace) {
		ns = wikiast.NamespaceFor(raw[0].Text)
		raw = raw[2:]
	}

	end := nextSegment(raw)
	href := slices.Clip(raw[:end])

	var segments [][]*wikiast.Node
	for end < len(raw) {
		raw = raw[end+1:]
		if len(raw) == 0 {
			break
		}
		end = nextSegment(raw)
		segments = append(segments, slices.Clip(raw[:end]))
	}

	return wikiast.NewLink(ns, href, segments)
}

// nextSegment returns the index of the first segment separator in nodes, or
// len(nodes).
func nextSegment(nodes []*wikiast.Node) int {
	for i, node := range nodes {
		if isToken(node, wikiast.TokLinkSegment) {
			return i
		}
	}
	return len(nodes)
}

func isToken(node *wikiast.Node, kind wikiast.TokenKind) bool {
	return node.Kind == wikiast.NodeToken && node.Token == kind
}
