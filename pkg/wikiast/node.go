// Package wikiast defines the vocabulary shared by the wiki tokenizer, block
// parser, compiler, renderers and binary codec: inline tokens, blocks and the
// AST node model.
package wikiast

import (
	"strconv"
	"strings"
)

// NodeKind classifies an AST node.
type NodeKind uint16

// Node kinds for inline-level and block-level elements.
const (
	// Inline-level nodes.
	NodeText NodeKind = iota
	NodeBreak
	NodeLine
	NodeVariable
	NodeElement
	NodeLink
	NodeToken

	// Block-level nodes.
	NodeHeader
	NodePara
	NodePre
	NodeQuote
	NodeOList
	NodeUList
	NodeItem
	NodeHR
	NodeSignature
)

//nolint:gochecknoglobals // Read-only lookup table.
var nodeKindNames = [...]string{
	NodeText:      "Text",
	NodeBreak:     "Break",
	NodeLine:      "Line",
	NodeVariable:  "Variable",
	NodeElement:   "Element",
	NodeLink:      "Link",
	NodeToken:     "Token",
	NodeHeader:    "Header",
	NodePara:      "Para",
	NodePre:       "Pre",
	NodeQuote:     "Quote",
	NodeOList:     "OList",
	NodeUList:     "UList",
	NodeItem:      "Item",
	NodeHR:        "HR",
	NodeSignature: "Signature",
}

func (k NodeKind) String() string {
	if int(k) < len(nodeKindNames) {
		return nodeKindNames[k]
	}
	return "NodeKind(" + strconv.Itoa(int(k)) + ")"
}

// ParseNodeKind returns the kind named name, ignoring case.
func ParseNodeKind(name string) (NodeKind, bool) {
	for kind, kindName := range nodeKindNames {
		if strings.EqualFold(name, kindName) {
			return NodeKind(kind), true
		}
	}
	return 0, false
}

// Fixed element tags.
const (
	TagBold      = "b"
	TagItalic    = "i"
	TagBreak     = "br"
	TagPara      = "p"
	TagPre       = "pre"
	TagQuote     = "quote"
	TagOList     = "ol"
	TagUList     = "ul"
	TagItem      = "li"
	TagHR        = "hr"
	TagSignature = "sign"
)

// Node is a single element of the wiki AST. The tree is a plain owned tree:
// every node belongs to exactly one parent slice and holds no back-references.
type Node struct {
	// Kind identifies what type of node this is.
	Kind NodeKind

	// Tag is the element tag: the generic tag of NodeElement or the fixed tag
	// of a block node (see HeaderTag for headers).
	Tag string

	// Text is the payload of NodeText and the name of NodeVariable.
	Text string

	// Level is the header level of NodeHeader.
	Level int

	// Token is the token kind carried by a NodeToken.
	Token TokenKind

	// Children are the inline or block children in document order.
	Children []*Node

	// Link holds the normalized target of a NodeLink.
	Link *LinkAttrs
}

// LinkAttrs is the normalized form of a link: a namespace strategy, the href
// nodes and the ordered segment node groups that followed '|' separators.
type LinkAttrs struct {
	Namespace Namespace
	Href      []*Node
	Segments  [][]*Node
}

// IsBlock returns true if this is a block-level node.
func (n *Node) IsBlock() bool {
	return n.Kind >= NodeHeader
}

// IsInline returns true if this is an inline-level node.
func (n *Node) IsInline() bool {
	return n.Kind < NodeHeader
}

// HasChildren returns true if this node has any children.
func (n *Node) HasChildren() bool {
	return len(n.Children) > 0
}

// NewText creates a text node.
func NewText(text string) *Node {
	return &Node{Kind: NodeText, Text: text}
}

// NewBreak creates a forced break node.
func NewBreak() *Node {
	return &Node{Kind: NodeBreak, Tag: TagBreak}
}

// NewLine creates a forced line node.
func NewLine() *Node {
	return &Node{Kind: NodeLine}
}

// NewVariable creates a variable reference.
func NewVariable(name string) *Node {
	return &Node{Kind: NodeVariable, Text: name}
}

// NewElement creates a generic inline element such as <b> or <sub>.
func NewElement(tag string, children []*Node) *Node {
	return &Node{Kind: NodeElement, Tag: tag, Children: children}
}

// NewToken wraps a link separator token that did not end up inside a link.
func NewToken(kind TokenKind) *Node {
	return &Node{Kind: NodeToken, Token: kind}
}

// NewLink creates a normalized link node.
func NewLink(ns Namespace, href []*Node, segments [][]*Node) *Node {
	if ns == nil {
		ns = URLNamespace{}
	}
	return &Node{Kind: NodeLink, Link: &LinkAttrs{Namespace: ns, Href: href, Segments: segments}}
}

// HeaderTag returns the element tag of a header of the given level.
func HeaderTag(level int) string {
	return "h" + strconv.Itoa(level)
}

// NewHeader creates a header block.
func NewHeader(level int, children []*Node) *Node {
	return &Node{Kind: NodeHeader, Tag: HeaderTag(level), Level: level, Children: children}
}

// NewBlock creates a block node of a kind with a fixed tag. It returns nil
// for inline kinds and for NodeHeader, which needs a level.
func NewBlock(kind NodeKind, children []*Node) *Node {
	tag, ok := blockTag(kind)
	if !ok {
		return nil
	}
	if kind == NodeHR {
		children = nil
	}
	return &Node{Kind: kind, Tag: tag, Children: children}
}

func blockTag(kind NodeKind) (string, bool) {
	switch kind {
	case NodePara:
		return TagPara, true
	case NodePre:
		return TagPre, true
	case NodeQuote:
		return TagQuote, true
	case NodeOList:
		return TagOList, true
	case NodeUList:
		return TagUList, true
	case NodeItem:
		return TagItem, true
	case NodeHR:
		return TagHR, true
	case NodeSignature:
		return TagSignature, true
	default:
		return "", false
	}
}
