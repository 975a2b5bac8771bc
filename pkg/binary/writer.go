package binary

import (
	stdbinary "encoding/binary"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/yaklabco/gowiki/pkg/wikiast"
)

// initialBufferSize is the first allocation of a Writer; the buffer doubles
// whenever it fills up.
const initialBufferSize = 10240

//nolint:gochecknoglobals // Read-only lookup table.
var blockTags = map[wikiast.NodeKind]Tag{
	wikiast.NodePara:      TagPara,
	wikiast.NodePre:       TagPre,
	wikiast.NodeQuote:     TagQuote,
	wikiast.NodeOList:     TagOList,
	wikiast.NodeUList:     TagUList,
	wikiast.NodeItem:      TagItem,
	wikiast.NodeSignature: TagSignature,
}

// Writer encodes nodes into an in-memory buffer. The stream header is
// written on creation.
type Writer struct {
	buf   []byte
	depth int
}

// NewWriter returns a writer holding only the stream header.
func NewWriter() *Writer {
	w := &Writer{buf: make([]byte, 0, initialBufferSize)}
	w.putUint32(Magic)
	w.putUint32(Version)
	return w
}

// Store encodes a forest into a complete stream.
func Store(nodes []*wikiast.Node) ([]byte, error) {
	w := NewWriter()
	if err := w.WriteNodes(nodes); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

// Bytes returns the encoded stream. The slice aliases the writer's buffer.
func (w *Writer) Bytes() []byte {
	return w.buf
}

// Len returns the number of encoded bytes.
func (w *Writer) Len() int {
	return len(w.buf)
}

// WriteTo writes the encoded stream to dst.
func (w *Writer) WriteTo(dst io.Writer) (int64, error) {
	n, err := dst.Write(w.buf)
	return int64(n), err
}

// WriteNodes encodes a count followed by the nodes. Nil nodes are skipped.
// On error the writer content is unspecified.
func (w *Writer) WriteNodes(nodes []*wikiast.Node) error {
	w.depth++
	defer func() { w.depth-- }()
	if w.depth > MaxDepth {
		return fmt.Errorf("%w: nesting deeper than %d", ErrUnencodable, MaxDepth)
	}

	count := 0
	for _, node := range nodes {
		if node != nil {
			count++
		}
	}
	if err := w.putCount(count); err != nil {
		return err
	}

	for _, node := range nodes {
		if node == nil {
			continue
		}
		if err := w.writeNode(node); err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) writeNode(node *wikiast.Node) error {
	switch node.Kind {
	case wikiast.NodeText:
		return w.writeEntry(TagText, node.Text, nil)
	case wikiast.NodeVariable:
		return w.writeEntry(TagVariable, node.Text, nil)
	case wikiast.NodeElement:
		return w.writeEntry(TagElement, node.Tag, node.Children)
	case wikiast.NodeToken:
		return w.writeEntry(TagToken, node.Token.String(), nil)
	case wikiast.NodeBreak:
		return w.writeEntry(TagBreak, "", nil)
	case wikiast.NodeLine:
		return w.writeEntry(TagLine, "", nil)
	case wikiast.NodeHR:
		return w.writeEntry(TagHR, "", nil)
	case wikiast.NodeHeader:
		return w.writeEntry(TagHeader, strconv.Itoa(node.Level), node.Children)
	case wikiast.NodeLink:
		return w.writeLink(node.Link)
	}

	tag, ok := blockTags[node.Kind]
	if !ok {
		return fmt.Errorf("%w: node kind %s", ErrUnencodable, node.Kind)
	}
	return w.writeEntry(tag, "", node.Children)
}

// writeLink stores the namespace name (empty for URL links) and one href
// group followed by the segment groups.
func (w *Writer) writeLink(link *wikiast.LinkAttrs) error {
	if link == nil {
		return fmt.Errorf("%w: link without target", ErrUnencodable)
	}

	name := ""
	if _, isURL := link.Namespace.(wikiast.URLNamespace); !isURL && link.Namespace != nil {
		name = link.Namespace.Name()
		if name == "" {
			return fmt.Errorf("%w: unnamed link namespace", ErrUnencodable)
		}
	}

	if err := w.writeHead(TagLink, name); err != nil {
		return err
	}
	if err := w.putCount(1 + len(link.Segments)); err != nil {
		return err
	}
	if err := w.writeEntry(TagHref, "", link.Href); err != nil {
		return err
	}
	for _, seg := range link.Segments {
		if err := w.writeEntry(TagSegment, "", seg); err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) writeEntry(tag Tag, data string, children []*wikiast.Node) error {
	if err := w.writeHead(tag, data); err != nil {
		return err
	}
	if tag.HasChildren() {
		return w.WriteNodes(children)
	}
	return nil
}

// writeHead writes the tag and, when the tag carries one, the string.
func (w *Writer) writeHead(tag Tag, data string) error {
	w.putUint16(uint16(tag))
	if !tag.HasString() {
		return nil
	}
	if strings.IndexByte(data, 0) >= 0 {
		return fmt.Errorf("%w: NUL byte in %s string", ErrUnencodable, tag)
	}
	w.reserve(len(data) + 1)
	w.buf = append(w.buf, data...)
	w.buf = append(w.buf, 0)
	return nil
}

func (w *Writer) putCount(count int) error {
	if uint64(count) > math.MaxUint32 {
		return fmt.Errorf("%w: %d children", ErrUnencodable, count)
	}
	w.putUint32(uint32(count))
	return nil
}

func (w *Writer) putUint16(v uint16) {
	w.reserve(2)
	w.buf = stdbinary.LittleEndian.AppendUint16(w.buf, v)
}

func (w *Writer) putUint32(v uint32) {
	w.reserve(4)
	w.buf = stdbinary.LittleEndian.AppendUint32(w.buf, v)
}

// reserve makes room for n more bytes, doubling the buffer as needed.
func (w *Writer) reserve(n int) {
	if cap(w.buf)-len(w.buf) >= n {
		return
	}
	size := max(cap(w.buf), initialBufferSize)
	for size-len(w.buf) < n {
		size *= 2
	}
	grown := make([]byte, len(w.buf), size)
	copy(grown, w.buf)
	w.buf = grown
}
