// Package parser turns wiki source text into blocks of inline tokens.
//
// Parsing runs in two levels. Tokenize converts one logical line into inline
// tokens (emphasis toggles, link and variable delimiters, allow-listed HTML
// tags). Parse groups lines into typed blocks and reconciles nested lists.
// Neither level reports errors: malformed markup degrades to literal text.
package parser

import (
	"strings"

	"github.com/yaklabco/gowiki/pkg/wikiast"
)

// emphasis identifies one of the two apostrophe-driven emphasis kinds.
type emphasis uint8

const (
	emphasisNone emphasis = iota
	emphasisBold
	emphasisItalic
)

func (e emphasis) tag() string {
	if e == emphasisBold {
		return wikiast.TagBold
	}
	return wikiast.TagItalic
}

func (e emphasis) other() emphasis {
	if e == emphasisBold {
		return emphasisItalic
	}
	return emphasisBold
}

// emphasisStack holds at most two open emphasis kinds, innermost last.
type emphasisStack struct {
	value [2]emphasis
	size  int
}

func (s *emphasisStack) push(e emphasis) { s.value[s.size] = e; s.size++ }
func (s *emphasisStack) pop()            { s.size-- }
func (s *emphasisStack) top() emphasis   { return s.value[s.size-1] }

// apostropheRuns maps the length of an apostrophe run to its meaning.
// Lengths outside the table, or mapped to emphasisNone, are literal text.
//
//nolint:gochecknoglobals // Read-only lookup table.
var apostropheRuns = [...]struct {
	kind emphasis
	both bool
}{
	2: {kind: emphasisItalic},
	3: {kind: emphasisBold},
	5: {both: true},
}

// linkSchemes are the prefixes that keep a link's first ':' as text.
//
//nolint:gochecknoglobals // Read-only lookup table.
var linkSchemes = []string{"http", "https", "ftp", "mailto"}

// lineTokenizer holds the state of a single Tokenize call.
type lineTokenizer struct {
	src  string
	prev int // start of pending literal text
	cur  int
	out  []wikiast.Token

	stack emphasisStack

	inWiki         bool
	inHref         bool
	inFirstSegment bool
}

// Tokenize converts one logical line into inline tokens.
func Tokenize(line string) []wikiast.Token {
	tok := &lineTokenizer{src: line, inWiki: true}
	return tok.run()
}

func (t *lineTokenizer) run() []wikiast.Token {
	for t.cur < len(t.src) {
		c := t.src[t.cur]
		if !t.inWiki {
			if c == '<' {
				t.htmlTag()
			} else {
				t.cur++
			}
			continue
		}

		switch c {
		case '\'':
			t.apostrophes()
		case '{':
			t.repeated('{', 3, wikiast.TokVarOpen)
		case '}':
			t.repeated('}', 3, wikiast.TokVarClose)
		case '[':
			if t.repeated('[', 2, wikiast.TokLinkOpen) {
				t.inHref = true
				t.inFirstSegment = true
			}
		case ']':
			if t.repeated(']', 2, wikiast.TokLinkClose) {
				t.inHref = false
				t.inFirstSegment = false
			}
		case ':':
			t.cur++
			if t.inFirstSegment {
				// Only one namespace per link.
				t.inFirstSegment = false
				if !isLinkScheme(t.pending(1)) {
					t.flush(1)
					t.emit(wikiast.TokLinkNamespace, "")
				}
			}
		case '|':
			t.cur++
			if t.inHref {
				t.inFirstSegment = false
				t.flush(1)
				t.emit(wikiast.TokLinkSegment, "")
			}
		case '<':
			t.htmlTag()
		default:
			t.cur++
		}
	}

	t.flush(0)
	return t.out
}

func (t *lineTokenizer) emit(kind wikiast.TokenKind, arg string) {
	t.out = append(t.out, wikiast.Token{Kind: kind, Arg: arg})
}

// pending returns the literal text between prev and cur, minus the last
// skip bytes.
func (t *lineTokenizer) pending(skip int) string {
	end := t.cur - skip
	if end <= t.prev {
		return ""
	}
	return t.src[t.prev:end]
}

// flush emits the pending literal text, minus the last skip bytes, and
// starts a new pending run at cur.
func (t *lineTokenizer) flush(skip int) {
	if text := t.pending(skip); text != "" {
		t.emit(wikiast.TokText, text)
	}
	t.prev = t.cur
}

// repeated consumes up to count copies of c. A full run emits kind and
// reports true; a shorter run stays pending as literal text.
func (t *lineTokenizer) repeated(c byte, count int, kind wikiast.TokenKind) bool {
	n := 0
	for n < count && t.cur < len(t.src) && t.src[t.cur] == c {
		t.cur++
		n++
	}
	if n < count {
		return false
	}
	t.flush(n)
	t.emit(kind, "")
	return true
}

func (t *lineTokenizer) apostrophes() {
	start := t.cur
	for t.cur < len(t.src) && t.src[t.cur] == '\'' {
		t.cur++
	}

	count := t.cur - start
	if count >= len(apostropheRuns) {
		return
	}
	run := apostropheRuns[count]
	if !run.both && run.kind == emphasisNone {
		return
	}

	t.flush(count)
	if run.both {
		t.toggleBoth()
		return
	}
	t.toggle(run.kind)
}

// toggleBoth handles a five-apostrophe run.
func (t *lineTokenizer) toggleBoth() {
	var first, second emphasis
	switch t.stack.size {
	case 0:
		first, second = emphasisBold, emphasisItalic
	case 1:
		first = t.stack.value[0]
		second = first.other()
	default:
		first, second = t.stack.value[1], t.stack.value[0]
	}

	t.toggle(first)
	t.toggle(second)
}

// toggle opens or closes one emphasis kind. Closing the outer of two open
// kinds closes both and reopens the inner one, so the emitted tags always
// nest.
func (t *lineTokenizer) toggle(kind emphasis) {
	switch {
	case t.stack.size == 0 || (t.stack.size == 1 && t.stack.top() != kind):
		t.stack.push(kind)
		t.emit(wikiast.TokTagOpen, kind.tag())
	case t.stack.top() == kind:
		t.stack.pop()
		t.emit(wikiast.TokTagClose, kind.tag())
	default:
		inner := t.stack.top()
		t.stack.pop()
		t.emit(wikiast.TokTagClose, inner.tag())
		t.emit(wikiast.TokTagClose, kind.tag())
		t.emit(wikiast.TokTagOpen, inner.tag())
		t.stack.value[0] = inner
	}
}

// htmlTag scans "<name>", "</name>" or "<name/>". The whole tag is consumed
// whether or not the name is allow-listed; a '<' without a closing '>' is
// left as literal text.
func (t *lineTokenizer) htmlTag() {
	start := t.cur
	kind := wikiast.TokTagOpen

	t.cur++
	if t.cur < len(t.src) && t.src[t.cur] == '/' {
		kind = wikiast.TokTagClose
		t.cur++
	}

	nameStart := t.cur
	end := strings.IndexByte(t.src[t.cur:], '>')
	if end < 0 {
		t.cur = start + 1
		return
	}
	nameEnd := nameStart + end
	t.cur = nameEnd + 1

	if nameEnd > nameStart && t.src[nameEnd-1] == '/' {
		kind = wikiast.TokTagSelfClosed
		nameEnd--
	}

	t.flush(t.cur - start)

	tag, ok := lookupTag(t.src[nameStart:nameEnd])
	if !ok || tag.deny == kind {
		return
	}
	tag.apply(t, t.src[nameStart:nameEnd], kind)
}

func isLinkScheme(prefix string) bool {
	for _, scheme := range linkSchemes {
		if strings.EqualFold(prefix, scheme) {
			return true
		}
	}
	return false
}
