// Package compiler builds the wiki AST from parsed blocks.
//
// Bracketed constructs (tags, variables, links) are compiled by scanning
// forward to their closing token. A construct that never closes is not an
// error: its opening token is dropped and its children are spliced into the
// parent, so compilation always produces a tree.
package compiler

import (
	"github.com/yaklabco/gowiki/pkg/render"
	"github.com/yaklabco/gowiki/pkg/wikiast"
)

//nolint:gochecknoglobals // Read-only lookup table.
var blockNodeKinds = map[wikiast.BlockKind]wikiast.NodeKind{
	wikiast.BlockPara:      wikiast.NodePara,
	wikiast.BlockQuote:     wikiast.NodeQuote,
	wikiast.BlockPre:       wikiast.NodePre,
	wikiast.BlockUL:        wikiast.NodeUList,
	wikiast.BlockOL:        wikiast.NodeOList,
	wikiast.BlockItem:      wikiast.NodeItem,
	wikiast.BlockHR:        wikiast.NodeHR,
	wikiast.BlockSignature: wikiast.NodeSignature,
}

// Compile turns blocks into a forest of block nodes. Blocks of unknown kind
// produce nothing.
func Compile(blocks []wikiast.Block) []*wikiast.Node {
	var out []*wikiast.Node
	for i := range blocks {
		if node := compileBlock(&blocks[i]); node != nil {
			out = append(out, node)
		}
	}
	return out
}

func compileBlock(block *wikiast.Block) *wikiast.Node {
	children := CompileTokens(block.Tokens)
	for i := range block.Items {
		if child := compileBlock(&block.Items[i]); child != nil {
			children = append(children, child)
		}
	}

	if block.Kind == wikiast.BlockHeader {
		return wikiast.NewHeader(block.Level, children)
	}
	kind, ok := blockNodeKinds[block.Kind]
	if !ok {
		return nil
	}
	return wikiast.NewBlock(kind, children)
}

// CompileTokens turns one block's inline tokens into inline nodes.
func CompileTokens(tokens []wikiast.Token) []*wikiast.Node {
	s := scanner{tokens: tokens}
	out, _ := s.compile(nil, 0, wikiast.TokNop)
	return out
}

type scanner struct {
	tokens []wikiast.Token
}

// compile appends the nodes for tokens[pos:] to out until it reaches a token
// of kind stop, and returns the index of that token. TokNop never stops.
// Without a stop token the returned index is len(tokens).
func (s *scanner) compile(out []*wikiast.Node, pos int, stop wikiast.TokenKind) ([]*wikiast.Node, int) {
	for i := pos; i < len(s.tokens); i++ {
		token := s.tokens[i]
		if stop != wikiast.TokNop && token.Kind == stop {
			return out, i
		}

		switch token.Kind {
		case wikiast.TokText:
			out = appendText(out, token.Arg)
		case wikiast.TokBreak:
			out = append(out, wikiast.NewBreak())
		case wikiast.TokLine:
			out = append(out, wikiast.NewLine())
		case wikiast.TokTagOpen, wikiast.TokVarOpen, wikiast.TokLinkOpen:
			out, i = s.construct(out, i)
		case wikiast.TokLinkNamespace, wikiast.TokLinkSegment:
			out = append(out, wikiast.NewToken(token.Kind))
		default:
			// Stray closing tokens.
		}
	}
	return out, len(s.tokens)
}

// construct compiles the construct opened at tokens[start] and returns the
// index of its last consumed token.
func (s *scanner) construct(out []*wikiast.Node, start int) ([]*wikiast.Node, int) {
	open := s.tokens[start]
	children, end := s.compile(nil, start+1, closerOf(open.Kind))

	if end < len(s.tokens) && (open.Kind != wikiast.TokTagOpen || s.tokens[end].Arg == open.Arg) {
		return append(out, build(open, children)), end
	}

	for _, child := range children {
		if child.Kind == wikiast.NodeText {
			out = appendText(out, child.Text)
			continue
		}
		out = append(out, child)
	}

	if end < len(s.tokens) {
		// A mismatched close belongs to an enclosing construct.
		return out, end - 1
	}
	return out, end
}

func closerOf(kind wikiast.TokenKind) wikiast.TokenKind {
	switch kind {
	case wikiast.TokTagOpen:
		return wikiast.TokTagClose
	case wikiast.TokVarOpen:
		return wikiast.TokVarClose
	case wikiast.TokLinkOpen:
		return wikiast.TokLinkClose
	default:
		return wikiast.TokNop
	}
}

func build(open wikiast.Token, children []*wikiast.Node) *wikiast.Node {
	switch open.Kind {
	case wikiast.TokVarOpen:
		return wikiast.NewVariable(render.PlainText(children))
	case wikiast.TokLinkOpen:
		return normalizeLink(children)
	default:
		return wikiast.NewElement(open.Arg, children)
	}
}

// appendText merges text into a trailing text node.
func appendText(out []*wikiast.Node, text string) []*wikiast.Node {
	if n := len(out); n > 0 && out[n-1].Kind == wikiast.NodeText {
		out[n-1].Text += text
		return out
	}
	return append(out, wikiast.NewText(text))
}
