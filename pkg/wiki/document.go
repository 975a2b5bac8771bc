// Package wiki is the public entry point to gowiki: it compiles wiki markup
// into a Document, renders it in any of the supported output forms, and
// keeps compiled documents in a binary cache next to (or apart from) their
// sources.
package wiki

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/yaklabco/gowiki/pkg/binary"
	"github.com/yaklabco/gowiki/pkg/compiler"
	"github.com/yaklabco/gowiki/pkg/fsutil"
	"github.com/yaklabco/gowiki/pkg/parser"
	"github.com/yaklabco/gowiki/pkg/render"
	"github.com/yaklabco/gowiki/pkg/wikiast"
)

// Document is a compiled wiki page. It is immutable once built and safe to
// render from several goroutines.
type Document struct {
	nodes     []*wikiast.Node
	fromCache bool
}

// Compile parses and compiles wiki text. It never fails: malformed markup
// degrades to literal text.
func Compile(text string) *Document {
	return &Document{nodes: compiler.Compile(parser.Parse(text))}
}

// Load decodes a document from its binary form.
func Load(data []byte) (*Document, error) {
	nodes, err := binary.Load(data)
	if err != nil {
		return nil, fmt.Errorf("load document: %w", err)
	}
	return &Document{nodes: nodes}, nil
}

// Nodes returns the top-level nodes. The slice must not be modified.
func (d *Document) Nodes() []*wikiast.Node {
	return d.nodes
}

// FromCache reports whether the document was loaded from a binary cache.
func (d *Document) FromCache() bool {
	return d.fromCache
}

// Title returns the trimmed plain text of the first header, or "".
// Variables render empty.
func (d *Document) Title() string {
	header := wikiast.FindFirst(d.nodes, func(n *wikiast.Node) bool {
		return n.Kind == wikiast.NodeHeader
	})
	if header == nil {
		return ""
	}
	return strings.TrimSpace(render.PlainText(header.Children))
}

// Text writes the plain-text rendering. A nil ctx starts a fresh list context.
func (d *Document) Text(w io.Writer, vars render.Variables, ctx *render.ListContext) error {
	return render.Text(w, d.nodes, vars, ctx)
}

// Markup writes the styled rendering through styler, or plain HTML if
// styler is nil.
func (d *Document) Markup(w io.Writer, vars render.Variables, styler render.Styler, ctx *render.ListContext) error {
	return render.Markup(w, d.nodes, vars, styler, ctx)
}

// Debug writes the structural trace.
func (d *Document) Debug(w io.Writer) error {
	return render.Debug(w, d.nodes)
}

// Markdown writes a CommonMark rendering.
func (d *Document) Markdown(w io.Writer, vars render.Variables) error {
	return render.Markdown(w, d.nodes, vars)
}

// Encode returns the binary form of the document.
func (d *Document) Encode() ([]byte, error) {
	data, err := binary.Store(d.nodes)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return data, nil
}

// Store writes the binary form to path atomically, holding the path's
// advisory lock while it does.
func (d *Document) Store(ctx context.Context, path string) error {
	return d.store(ctx, path, time.Time{})
}

// store writes the cache and, when stamp is set, gives it that mtime.
func (d *Document) store(ctx context.Context, path string, stamp time.Time) error {
	data, err := d.Encode()
	if err != nil {
		return err
	}

	lock, err := fsutil.Lock(ctx, path)
	if err != nil {
		return fmt.Errorf("store %s: %w", path, err)
	}
	defer func() { _ = lock.Unlock() }()

	if err := fsutil.WriteAtomic(ctx, path, data, 0); err != nil {
		return fmt.Errorf("store %s: %w", path, err)
	}

	if !stamp.IsZero() {
		if err := os.Chtimes(path, stamp, stamp); err != nil {
			return fmt.Errorf("stamp %s: %w", path, err)
		}
	}

	return nil
}
