package parser

import (
	"strings"

	"github.com/yaklabco/gowiki/pkg/wikiast"
)

// lineTrailingSpace is stripped from the end of every source line.
const lineTrailingSpace = " \t\r\v\f"

//nolint:gochecknoglobals // Read-only token.
var spaceToken = wikiast.Token{Kind: wikiast.TokText, Arg: " "}

// blockParser holds the state of a single Parse call.
type blockParser struct {
	out []wikiast.Block
	cur wikiast.Block

	// lists is the stack of open lists, outermost first. Its depth equals
	// the marker length of the most recent item.
	lists []wikiast.Block
}

// Parse splits text into top-level blocks. Lists are fully reconciled: every
// item sits inside an OL/UL block, nested lists sit inside their parent list
// right after the item they follow.
func Parse(text string) []wikiast.Block {
	p := &blockParser{}

	for len(text) > 0 {
		line := text
		if idx := strings.IndexByte(text, '\n'); idx >= 0 {
			line, text = text[:idx], text[idx+1:]
		} else {
			text = ""
		}
		p.parseLine(strings.TrimRight(line, lineTrailingSpace))
	}

	p.reset(wikiast.BlockUnknown)
	p.foldLists(0)

	return p.out
}

func (p *blockParser) parseLine(line string) {
	if line == "" {
		p.reset(wikiast.BlockUnknown)
		return
	}

	switch line[0] {
	case '=':
		p.header(line)
		return
	case ';':
		p.quote(strings.TrimLeft(line[1:], lineTrailingSpace))
		return
	case ' ':
		p.pre(strings.TrimLeft(line, lineTrailingSpace))
		return
	case '*', '#':
		p.item(line)
		return
	case '-':
		dashes := len(line) - len(strings.TrimLeft(line, "-"))
		if dashes == len(line) && dashes >= 2 {
			p.hr()
			return
		}
		if dashes == 2 && line[2] == ' ' {
			p.signature(strings.TrimLeft(line[3:], lineTrailingSpace))
			return
		}
	}

	p.para(line)
}

// inline tokenizes text into the current block.
func (p *blockParser) inline(text string) {
	if text == "" {
		return
	}
	p.cur.Append(Tokenize(text)...)
}

func (p *blockParser) header(line string) {
	leading := len(line) - len(strings.TrimLeft(line, "="))

	var level int
	if leading == len(line) {
		// Only equal signs: split the run in two halves.
		level = leading / 2
	} else {
		trailing := len(line) - len(strings.TrimRight(line, "="))
		level = min(leading, trailing)
	}

	if level == 0 {
		p.para(line)
		return
	}

	p.reset(wikiast.BlockUnknown)
	p.cur.Kind = wikiast.BlockHeader
	p.cur.Level = level
	p.inline(strings.TrimSpace(line[level : len(line)-level]))
}

func (p *blockParser) para(text string) {
	kind := wikiast.BlockPara
	switch p.cur.Kind {
	case wikiast.BlockItem, wikiast.BlockSignature:
		kind = p.cur.Kind
	}

	p.changeBlock(kind)
	p.inline(text)
}

func (p *blockParser) quote(text string) {
	p.changeBlock(wikiast.BlockQuote)
	p.inline(text)
}

func (p *blockParser) pre(text string) {
	kind := wikiast.BlockPre
	if p.cur.Kind == wikiast.BlockItem {
		kind = wikiast.BlockItem
	}

	p.changeBlock(kind)
	p.inline(text)
}

func (p *blockParser) item(line string) {
	markerEnd := len(line) - len(strings.TrimLeft(line, "*#"))

	p.reset(wikiast.BlockUnknown)
	p.changeBlock(wikiast.BlockItem)

	p.cur.Marker = line[:markerEnd]
	p.inline(strings.TrimLeft(line[markerEnd:], lineTrailingSpace))
}

func (p *blockParser) hr() {
	p.reset(wikiast.BlockUnknown)
	p.cur.Kind = wikiast.BlockHR
}

func (p *blockParser) signature(text string) {
	p.changeBlock(wikiast.BlockSignature)
	p.inline(text)
}

// changeBlock starts a block of the given kind, or joins the next line to
// the current block when the kind is unchanged.
func (p *blockParser) changeBlock(kind wikiast.BlockKind) {
	switch {
	case p.cur.Kind != kind:
		p.reset(kind)
	case kind == wikiast.BlockPre:
		p.cur.Append(wikiast.Token{Kind: wikiast.TokLine})
	default:
		last, ok := p.cur.LastToken()
		if !ok || last.Kind == wikiast.TokBreak {
			return
		}
		p.cur.Append(spaceToken)
	}
}

// reset closes the current block and starts an empty one of the given kind.
func (p *blockParser) reset(kind wikiast.BlockKind) {
	if p.cur.Kind != wikiast.BlockUnknown {
		p.push()
	}
	p.cur = wikiast.Block{Kind: kind}
}

// push moves the current block to the output, reconciling list nesting for
// items.
func (p *blockParser) push() {
	if p.cur.Kind != wikiast.BlockItem {
		p.foldLists(0)
		p.out = append(p.out, p.cur)
		return
	}

	marker := p.cur.Marker
	common := p.commonDepth(marker)
	p.foldLists(common)

	for i := common; i < len(marker); i++ {
		kind := wikiast.BlockUL
		if marker[i] == '#' {
			kind = wikiast.BlockOL
		}
		p.lists = append(p.lists, wikiast.Block{Kind: kind})
	}

	p.cur.Marker = ""
	top := &p.lists[len(p.lists)-1]
	top.Items = append(top.Items, p.cur)
}

// commonDepth returns the length of the common prefix of marker and the
// open list stack.
func (p *blockParser) commonDepth(marker string) int {
	depth := 0
	for depth < len(p.lists) && depth < len(marker) {
		if p.lists[depth].Kind.ListMarker() != marker[depth] {
			break
		}
		depth++
	}
	return depth
}

// foldLists closes every open list deeper than depth, deepest first, moving
// each into its parent. When depth is zero the outermost list goes to the
// output.
func (p *blockParser) foldLists(depth int) {
	if depth >= len(p.lists) {
		return
	}

	for i := len(p.lists) - 1; i > depth; i-- {
		parent := &p.lists[i-1]
		parent.Items = append(parent.Items, p.lists[i])
	}

	if depth == 0 {
		p.out = append(p.out, p.lists[0])
	} else {
		parent := &p.lists[depth-1]
		parent.Items = append(parent.Items, p.lists[depth])
	}

	p.lists = p.lists[:depth]
}
