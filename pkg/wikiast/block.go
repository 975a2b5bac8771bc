package wikiast

// BlockKind classifies a structural unit of source text.
type BlockKind uint16

// Block kinds recognized by the block parser.
const (
	BlockUnknown BlockKind = iota
	BlockHeader
	BlockPara
	BlockQuote
	BlockPre
	BlockUL
	BlockOL
	BlockItem
	BlockHR
	BlockSignature
)

//nolint:gochecknoglobals // Read-only lookup table.
var blockNames = [...]string{
	BlockUnknown:   "UNKNOWN",
	BlockHeader:    "HEADER",
	BlockPara:      "PARA",
	BlockQuote:     "QUOTE",
	BlockPre:       "PRE",
	BlockUL:        "UL",
	BlockOL:        "OL",
	BlockItem:      "ITEM",
	BlockHR:        "HR",
	BlockSignature: "SIGNATURE",
}

func (k BlockKind) String() string {
	if int(k) < len(blockNames) {
		return blockNames[k]
	}
	return "UNKNOWN"
}

// Block is a classified run of source lines awaiting compilation.
// Blocks exist only between line parsing and AST compilation.
type Block struct {
	// Kind classifies the block.
	Kind BlockKind

	// Level is the header level for BlockHeader.
	Level int

	// Marker is the raw '#'/'*' prefix of a BlockItem. It is consumed by list
	// reconciliation and is empty once the item has been placed in a list.
	Marker string

	// Tokens is the block's own inline content.
	Tokens []Token

	// Items holds nested blocks of a list (items and sub-lists, in order).
	Items []Block
}

// Append adds tokens to the block's inline content.
func (b *Block) Append(tokens ...Token) {
	b.Tokens = append(b.Tokens, tokens...)
}

// LastToken returns the block's final token and whether there is one.
func (b *Block) LastToken() (Token, bool) {
	if len(b.Tokens) == 0 {
		return Token{}, false
	}
	return b.Tokens[len(b.Tokens)-1], true
}

// ListMarker returns the marker character a list level contributes to an
// item prefix: '#' for ordered lists, '*' otherwise.
func (k BlockKind) ListMarker() byte {
	if k == BlockOL {
		return '#'
	}
	return '*'
}
