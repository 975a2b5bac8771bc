package binary

import (
	"bytes"
	stdbinary "encoding/binary"
	"fmt"
	"strconv"

	"github.com/yaklabco/gowiki/pkg/wikiast"
)

// minNodeSize is the smallest encoding of a node: a bare tag.
const minNodeSize = 2

//nolint:gochecknoglobals // Read-only lookup table.
var tagBlocks = map[Tag]wikiast.NodeKind{
	TagPara:      wikiast.NodePara,
	TagPre:       wikiast.NodePre,
	TagQuote:     wikiast.NodeQuote,
	TagOList:     wikiast.NodeOList,
	TagUList:     wikiast.NodeUList,
	TagItem:      wikiast.NodeItem,
	TagSignature: wikiast.NodeSignature,
}

// Reader decodes a stream held in memory.
type Reader struct {
	data  []byte
	pos   int
	depth int
}

// NewReader validates the stream header and returns a reader positioned at
// the top-level node count.
func NewReader(data []byte) (*Reader, error) {
	r := &Reader{data: data}

	magic, err := r.uint32()
	if err != nil {
		return nil, err
	}
	if magic != Magic {
		return nil, fmt.Errorf("%w: magic %#08x", ErrBadMagic, magic)
	}

	version, err := r.uint32()
	if err != nil {
		return nil, err
	}
	if version != Version {
		return nil, fmt.Errorf("%w: %#08x", ErrBadVersion, version)
	}

	return r, nil
}

// Load decodes a complete stream. Any error yields no nodes.
func Load(data []byte) ([]*wikiast.Node, error) {
	r, err := NewReader(data)
	if err != nil {
		return nil, err
	}

	nodes, err := r.ReadNodes()
	if err != nil {
		return nil, err
	}
	if r.pos != len(r.data) {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrMalformed, len(r.data)-r.pos)
	}
	return nodes, nil
}

// ReadNodes decodes a count followed by that many nodes.
func (r *Reader) ReadNodes() ([]*wikiast.Node, error) {
	count, err := r.count()
	if err != nil {
		return nil, err
	}

	r.depth++
	defer func() { r.depth-- }()
	if r.depth > MaxDepth {
		return nil, fmt.Errorf("%w: nesting deeper than %d", ErrMalformed, MaxDepth)
	}

	nodes := make([]*wikiast.Node, 0, count)
	for range count {
		node, err := r.readNode()
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
	}
	return nodes, nil
}

func (r *Reader) readNode() (*wikiast.Node, error) {
	offset := r.pos
	tag, data, err := r.head()
	if err != nil {
		return nil, err
	}

	switch tag {
	case TagText:
		return wikiast.NewText(data), nil
	case TagVariable:
		return wikiast.NewVariable(data), nil
	case TagToken:
		kind, ok := wikiast.ParseTokenKind(data)
		if !ok {
			return nil, fmt.Errorf("%w: token %q at offset %d", ErrMalformed, data, offset)
		}
		return wikiast.NewToken(kind), nil
	case TagBreak:
		return wikiast.NewBreak(), nil
	case TagLine:
		return wikiast.NewLine(), nil
	case TagHR:
		return wikiast.NewBlock(wikiast.NodeHR, nil), nil
	case TagLink:
		return r.readLink(data, offset)
	case TagHref, TagSegment:
		return nil, fmt.Errorf("%w: %s group outside a link at offset %d", ErrMalformed, tag, offset)
	}

	kind, isBlock := tagBlocks[tag]
	if !isBlock && tag != TagHeader && tag != TagElement {
		return nil, fmt.Errorf("%w: %q at offset %d", ErrUnknownTag, tag.String(), offset)
	}

	children, err := r.ReadNodes()
	if err != nil {
		return nil, err
	}

	switch tag {
	case TagHeader:
		level, err := strconv.Atoi(data)
		if err != nil || level < 1 {
			return nil, fmt.Errorf("%w: header level %q at offset %d", ErrMalformed, data, offset)
		}
		return wikiast.NewHeader(level, children), nil
	case TagElement:
		return wikiast.NewElement(data, children), nil
	default:
		return wikiast.NewBlock(kind, children), nil
	}
}

// readLink decodes a link body: one href group, then segment groups.
func (r *Reader) readLink(name string, offset int) (*wikiast.Node, error) {
	count, err := r.count()
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, fmt.Errorf("%w: link without href at offset %d", ErrMalformed, offset)
	}

	var href []*wikiast.Node
	var segments [][]*wikiast.Node
	for i := range count {
		groupOffset := r.pos
		tag, _, err := r.head()
		if err != nil {
			return nil, err
		}

		want := TagSegment
		if i == 0 {
			want = TagHref
		}
		if tag != want {
			return nil, fmt.Errorf("%w: %q in link at offset %d, want %q",
				ErrMalformed, tag.String(), groupOffset, want.String())
		}

		group, err := r.ReadNodes()
		if err != nil {
			return nil, err
		}
		if i == 0 {
			href = group
		} else {
			segments = append(segments, group)
		}
	}

	return wikiast.NewLink(namespaceByName(name), href, segments), nil
}

// namespaceByName maps a stored namespace name back to its strategy. URL
// links are stored with an empty name.
func namespaceByName(name string) wikiast.Namespace {
	if name == "" {
		return wikiast.URLNamespace{}
	}
	return wikiast.NamespaceFor(name)
}

// head reads a tag and its string, if the tag carries one.
func (r *Reader) head() (Tag, string, error) {
	if len(r.data)-r.pos < 2 {
		return 0, "", fmt.Errorf("%w: tag at offset %d", ErrTruncated, r.pos)
	}
	tag := Tag(stdbinary.LittleEndian.Uint16(r.data[r.pos:]))
	r.pos += 2

	if !tag.HasString() {
		return tag, "", nil
	}

	end := bytes.IndexByte(r.data[r.pos:], 0)
	if end < 0 {
		return 0, "", fmt.Errorf("%w: unterminated string at offset %d", ErrTruncated, r.pos)
	}
	data := string(r.data[r.pos : r.pos+end])
	r.pos += end + 1
	return tag, data, nil
}

// count reads a child count and rejects counts the remaining input cannot
// hold.
func (r *Reader) count() (int, error) {
	offset := r.pos
	n, err := r.uint32()
	if err != nil {
		return 0, err
	}
	if uint64(n) > uint64(len(r.data)-r.pos)/minNodeSize {
		return 0, fmt.Errorf("%w: count %d at offset %d exceeds input", ErrTruncated, n, offset)
	}
	return int(n), nil
}

func (r *Reader) uint32() (uint32, error) {
	if len(r.data)-r.pos < 4 {
		return 0, fmt.Errorf("%w: uint32 at offset %d", ErrTruncated, r.pos)
	}
	v := stdbinary.LittleEndian.Uint32(r.data[r.pos:])
	r.pos += 4
	return v, nil
}
