package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/gowiki/internal/ui/pretty"
	"github.com/yaklabco/gowiki/pkg/runner"
)

// SummaryReporter writes only aggregate statistics: a one-line summary, or
// a summary block when ShowSummary is set.
type SummaryReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewSummaryReporter creates a new summary reporter.
func NewSummaryReporter(opts Options) *SummaryReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &SummaryReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *SummaryReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	var stats runner.Stats
	if result != nil {
		stats = result.Stats
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummary(stats))
	} else {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(stats))
	}

	return stats.FilesErrored, nil
}
