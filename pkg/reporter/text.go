package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/gowiki/internal/ui/pretty"
	"github.com/yaklabco/gowiki/pkg/runner"
)

// TextReporter writes one line per file followed by a one-line summary.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Dim.Render("No wiki files found"))
		}
		return 0, nil
	}

	for _, file := range result.Files {
		path := r.styles.FilePath.Render(r.opts.displayPath(file.Path))

		switch {
		case file.Error != nil:
			fmt.Fprintf(r.bw, "%s: %s\n", path, r.styles.Failure.Render(fmt.Sprintf("error: %v", file.Error)))
		case file.CacheHit:
			fmt.Fprintf(r.bw, "%s: %s %s\n", path, r.styles.TableHit.Render("cached"),
				r.styles.Dim.Render(fmt.Sprintf("(%d nodes)", file.Nodes)))
		default:
			fmt.Fprintf(r.bw, "%s: %s %s\n", path, r.styles.TableMiss.Render("compiled"),
				r.styles.Dim.Render(fmt.Sprintf("(%d nodes)", file.Nodes)))
		}
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
	}

	return result.Stats.FilesErrored, nil
}
