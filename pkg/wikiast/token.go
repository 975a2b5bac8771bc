package wikiast

import "strconv"

// TokenKind classifies an inline token produced by the line tokenizer.
type TokenKind uint16

// Inline token kinds.
const (
	// TokNop never appears in tokenizer output. The compiler uses it as the
	// "no terminator" marker when compiling a whole token stream.
	TokNop TokenKind = iota

	TokText          // run of literal text, Arg holds the text
	TokVarOpen       // '{{{'
	TokVarClose      // '}}}'
	TokLinkOpen      // '[['
	TokLinkClose     // ']]'
	TokLinkNamespace // ':' after a namespace prefix inside a link
	TokLinkSegment   // '|' inside a link
	TokTagOpen       // <name>, Arg holds the canonical tag name
	TokTagClose      // </name>
	TokTagSelfClosed // <name/>
	TokBreak         // forced break, from <br>
	TokLine          // forced line, joins preformatted lines
)

//nolint:gochecknoglobals // Read-only lookup table.
var tokenNames = [...]string{
	TokNop:           "NOP",
	TokText:          "TEXT",
	TokVarOpen:       "VAR_S",
	TokVarClose:      "VAR_E",
	TokLinkOpen:      "HREF_S",
	TokLinkClose:     "HREF_E",
	TokLinkNamespace: "HREF_NS",
	TokLinkSegment:   "HREF_SEG",
	TokTagOpen:       "TAG_S",
	TokTagClose:      "TAG_E",
	TokTagSelfClosed: "TAG_CLOSED",
	TokBreak:         "BREAK",
	TokLine:          "LINE",
}

// String returns the trace name of the token kind.
func (k TokenKind) String() string {
	if int(k) < len(tokenNames) {
		return tokenNames[k]
	}
	return "unknown(" + strconv.Itoa(int(k)) + ")"
}

// ParseTokenKind maps a trace name back to its kind.
func ParseTokenKind(name string) (TokenKind, bool) {
	for kind, known := range tokenNames {
		if known == name {
			return TokenKind(kind), true
		}
	}
	return TokNop, false
}

// Token is a single inline token. Tokens live only for the duration of one
// block's compilation.
type Token struct {
	// Kind classifies the token.
	Kind TokenKind

	// Arg is the literal text for TokText and the tag name for tag tokens.
	// It is empty for every other kind.
	Arg string
}

// String renders the token the way the parser traces print it.
func (t Token) String() string {
	if t.Kind == TokText {
		return strconv.Quote(t.Arg)
	}
	if t.Arg == "" {
		return t.Kind.String()
	}
	return t.Kind.String() + " {" + t.Arg + "}"
}
