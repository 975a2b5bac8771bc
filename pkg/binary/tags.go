// Package binary encodes a wiki forest in the tagged binary cache format.
//
// A stream starts with a little-endian uint32 magic ("WIKI") and version,
// followed by a uint32 count of top-level nodes. Every node is a uint16 tag
// made of two ASCII characters. A lower-case first character means a
// NUL-terminated string follows; a lower-case second character means a
// uint32 child count and that many child nodes follow.
package binary

// Stream header values.
const (
	Magic   uint32 = 0x494B4957 // "WIKI"
	Version uint32 = 0x00010000 // 1.0
)

// MaxDepth bounds the nesting of node lists. The top-level list is depth 1.
// Deeper streams are rejected on read and refused on write.
const MaxDepth = 4096

// lowerCaseBit is set in lower-case ASCII letters.
const lowerCaseBit = 0x20

// Tag identifies a node kind in the stream. The first tag character is the
// low byte, so tags read naturally in a hex dump.
type Tag uint16

// MakeTag builds a tag from its two characters.
func MakeTag(first, second byte) Tag {
	return Tag(uint16(second)<<8 | uint16(first))
}

// Node tags, first character in the low byte.
const (
	TagLink      Tag = 'l' | 'i'<<8
	TagHeader    Tag = 'h' | 'e'<<8
	TagElement   Tag = 'e' | 'l'<<8
	TagText      Tag = 't' | 'E'<<8
	TagVariable  Tag = 'v' | 'A'<<8
	TagToken     Tag = 't' | 'K'<<8
	TagHref      Tag = 'H' | 'r'<<8
	TagSegment   Tag = 'S' | 'e'<<8
	TagPara      Tag = 'P' | 'a'<<8
	TagPre       Tag = 'P' | 'r'<<8
	TagQuote     Tag = 'Q' | 'u'<<8
	TagOList     Tag = 'O' | 'l'<<8
	TagUList     Tag = 'U' | 'l'<<8
	TagItem      Tag = 'I' | 't'<<8
	TagSignature Tag = 'S' | 'i'<<8
	TagBreak     Tag = 'B' | 'R'<<8
	TagLine      Tag = 'L' | 'I'<<8
	TagHR        Tag = 'H' | 'R'<<8
)

// HasString reports whether a NUL-terminated string follows the tag.
func (t Tag) HasString() bool {
	return t&lowerCaseBit != 0
}

// HasChildren reports whether a child count and children follow the tag.
func (t Tag) HasChildren() bool {
	return (t>>8)&lowerCaseBit != 0
}

func (t Tag) String() string {
	return string([]byte{byte(t), byte(t >> 8)})
}
