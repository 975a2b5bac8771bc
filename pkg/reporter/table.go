package reporter

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"time"

	"golang.org/x/term"

	"github.com/yaklabco/gowiki/internal/ui/pretty"
	"github.com/yaklabco/gowiki/pkg/runner"
)

// defaultTermWidth is used when terminal width cannot be determined.
const defaultTermWidth = 100

// TableReporter formats results as a styled table with one row per file.
type TableReporter struct {
	opts      Options
	styles    *pretty.Styles
	formatter *pretty.TableFormatter
	bw        *bufio.Writer
}

// NewTableReporter creates a new table reporter.
func NewTableReporter(opts Options) *TableReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	styles := pretty.NewStyles(colorEnabled)

	return &TableReporter{
		opts:      opts,
		styles:    styles,
		formatter: pretty.NewTableFormatter(styles, getTerminalWidth(opts.Writer)),
		bw:        bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TableReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
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

	fmt.Fprint(r.bw, r.formatter.FormatTable(r.relative(result)))

	if r.opts.ShowSummary {
		var elapsed string
		if result.Duration > 0 {
			elapsed = result.Duration.Round(time.Millisecond).String()
		}
		fmt.Fprintln(r.bw, r.formatter.FormatTableSummary(result.Stats, elapsed))
	}

	return result.Stats.FilesErrored, nil
}

// relative returns a copy of result with display paths.
func (r *TableReporter) relative(result *runner.Result) *runner.Result {
	rel := *result
	rel.Files = make([]runner.FileOutcome, len(result.Files))
	for i, file := range result.Files {
		file.Path = r.opts.displayPath(file.Path)
		rel.Files[i] = file
	}
	return &rel
}

// getTerminalWidth attempts to get the terminal width from the writer.
func getTerminalWidth(writer io.Writer) int {
	if f, ok := writer.(interface{ Fd() uintptr }); ok {
		width, _, err := term.GetSize(int(f.Fd()))
		if err == nil && width > 0 {
			return width
		}
	}
	return defaultTermWidth
}
