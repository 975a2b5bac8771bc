package parser

import (
	"slices"
	"strings"

	"github.com/yaklabco/gowiki/pkg/wikiast"
)

// tagInfo describes one allow-listed HTML tag.
type tagInfo struct {
	name string

	// deny is the tag form that is ignored for this name.
	deny wikiast.TokenKind

	apply func(t *lineTokenizer, name string, kind wikiast.TokenKind)
}

func emitAs(tag string) func(*lineTokenizer, string, wikiast.TokenKind) {
	return func(t *lineTokenizer, _ string, kind wikiast.TokenKind) {
		t.emit(kind, tag)
	}
}

func emitName(t *lineTokenizer, name string, kind wikiast.TokenKind) {
	t.emit(kind, name)
}

func emitBreak(t *lineTokenizer, _ string, _ wikiast.TokenKind) {
	t.emit(wikiast.TokBreak, "")
}

func switchNowiki(t *lineTokenizer, _ string, kind wikiast.TokenKind) {
	t.inWiki = kind == wikiast.TokTagClose
}

// knownTags is sorted by name; lookupTag binary-searches it.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownTags = []tagInfo{
	{name: "b", deny: wikiast.TokTagSelfClosed, apply: emitAs(wikiast.TagBold)},
	{name: "br", deny: wikiast.TokTagClose, apply: emitBreak},
	{name: "em", deny: wikiast.TokTagSelfClosed, apply: emitAs(wikiast.TagItalic)},
	{name: "i", deny: wikiast.TokTagSelfClosed, apply: emitAs(wikiast.TagItalic)},
	{name: "nowiki", deny: wikiast.TokTagSelfClosed, apply: switchNowiki},
	{name: "strong", deny: wikiast.TokTagSelfClosed, apply: emitAs(wikiast.TagBold)},
	{name: "sub", deny: wikiast.TokTagSelfClosed, apply: emitName},
	{name: "sup", deny: wikiast.TokTagSelfClosed, apply: emitName},
	{name: "tt", deny: wikiast.TokTagSelfClosed, apply: emitName},
}

// lookupTag finds an allow-listed tag by exact, case-sensitive name.
func lookupTag(name string) (tagInfo, bool) {
	pos, found := slices.BinarySearchFunc(knownTags, name, func(info tagInfo, target string) int {
		return strings.Compare(info.name, target)
	})
	if !found {
		return tagInfo{}, false
	}
	return knownTags[pos], true
}
