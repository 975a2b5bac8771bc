package render_test

import (
	"errors"

	"github.com/yaklabco/gowiki/pkg/compiler"
	"github.com/yaklabco/gowiki/pkg/parser"
	"github.com/yaklabco/gowiki/pkg/wikiast"
)

func compile(source string) []*wikiast.Node {
	return compiler.Compile(parser.Parse(source))
}

var errSink = errors.New("sink closed")

// failingWriter accepts limit bytes and then fails every write.
type failingWriter struct {
	limit int
}

func (w *failingWriter) Write(p []byte) (int, error) {
	if len(p) > w.limit {
		n := w.limit
		w.limit = 0
		return n, errSink
	}
	w.limit -= len(p)
	return len(p), nil
}
