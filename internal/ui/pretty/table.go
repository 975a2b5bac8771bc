package pretty

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/gowiki/pkg/runner"
)

// Table formatting constants.
const (
	tablePadding     = 2
	tableColumnCount = 5 // FILE, CACHE, NODES, TIME, ERROR
	minFileWidth     = 20
	cacheWidth       = 5
	minNodesWidth    = 5
	timeWidth        = 9
	minErrorWidth    = 20
	heavySeparator   = "="
	defaultTermWidth = 100

	cacheHit  = "hit"
	cacheMiss = "miss"
	cacheOff  = "off"
	cacheFail = "-"
)

// TableRow represents a single row in the cache table.
type TableRow struct {
	File  string
	Cache string
	Nodes string
	Time  string
	Error string
}

// TableFormatter formats batch outcomes as a styled table.
type TableFormatter struct {
	styles    *Styles
	termWidth int
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(styles *Styles, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{
		styles:    styles,
		termWidth: termWidth,
	}
}

// OutcomeToTableRow converts a file outcome to a table row.
func OutcomeToTableRow(outcome runner.FileOutcome) TableRow {
	row := TableRow{
		File: outcome.Path,
		Time: outcome.Duration.Round(time.Microsecond).String(),
	}

	switch {
	case outcome.Error != nil:
		row.Cache = cacheFail
		row.Nodes = cacheFail
		row.Error = outcome.Error.Error()
	case outcome.CacheHit:
		row.Cache = cacheHit
	case outcome.CachePath == "":
		row.Cache = cacheOff
	default:
		row.Cache = cacheMiss
	}

	if outcome.Error == nil {
		row.Nodes = strconv.Itoa(outcome.Nodes)
	}

	return row
}

// FormatTable formats runner results as a styled table.
func (t *TableFormatter) FormatTable(result *runner.Result) string {
	if result == nil || len(result.Files) == 0 {
		return ""
	}

	rows := make([]TableRow, 0, len(result.Files))
	for _, outcome := range result.Files {
		rows = append(rows, OutcomeToTableRow(outcome))
	}

	widths := t.calculateColumnWidths(rows)

	var builder strings.Builder

	builder.WriteString(t.formatHeader(widths))
	builder.WriteString("\n")
	builder.WriteString(t.formatSeparator(widths))
	builder.WriteString("\n")

	for _, row := range rows {
		builder.WriteString(t.formatRow(row, widths))
		builder.WriteString("\n")
	}

	builder.WriteString(t.formatSeparator(widths))
	builder.WriteString("\n")

	return builder.String()
}

type columnWidths struct {
	file  int
	nodes int
	err   int
}

// calculateColumnWidths determines column widths based on content.
func (t *TableFormatter) calculateColumnWidths(rows []TableRow) columnWidths {
	widths := columnWidths{
		file:  minFileWidth,
		nodes: minNodesWidth,
		err:   minErrorWidth,
	}

	for _, row := range rows {
		widths.file = max(widths.file, len(row.File))
		widths.nodes = max(widths.nodes, len(row.Nodes))
		widths.err = max(widths.err, len(row.Error))
	}

	// Shrink the error column first, then the file column.
	if excess := t.calculateTotalWidth(widths) - t.termWidth; excess > 0 {
		widths.err = max(minErrorWidth, widths.err-excess)
	}
	if excess := t.calculateTotalWidth(widths) - t.termWidth; excess > 0 {
		widths.file = max(minFileWidth, widths.file-excess)
	}

	return widths
}

func (t *TableFormatter) calculateTotalWidth(widths columnWidths) int {
	return widths.file + cacheWidth + widths.nodes + timeWidth + widths.err +
		tablePadding*tableColumnCount
}

func (t *TableFormatter) formatHeader(widths columnWidths) string {
	header := fmt.Sprintf(" %-*s  %-*s  %*s  %*s  %-*s",
		widths.file, "FILE",
		cacheWidth, "CACHE",
		widths.nodes, "NODES",
		timeWidth, "TIME",
		widths.err, "ERROR",
	)
	return t.styles.TableHeader.Render(header)
}

func (t *TableFormatter) formatSeparator(widths columnWidths) string {
	return t.styles.TableSeparator.Render(strings.Repeat(heavySeparator, t.calculateTotalWidth(widths)))
}

func (t *TableFormatter) formatRow(row TableRow, widths columnWidths) string {
	content := fmt.Sprintf(" %-*s  %-*s  %*s  %*s  %-*s",
		widths.file, truncateFilePath(row.File, widths.file),
		cacheWidth, row.Cache,
		widths.nodes, row.Nodes,
		timeWidth, truncateString(row.Time, timeWidth),
		widths.err, truncateString(row.Error, widths.err),
	)
	return t.rowStyle(row).Render(strings.TrimRight(content, " "))
}

func (t *TableFormatter) rowStyle(row TableRow) lipgloss.Style {
	switch row.Cache {
	case cacheFail:
		return t.styles.TableErrorRow
	case cacheHit:
		return t.styles.TableHit
	case cacheMiss:
		return t.styles.TableMiss
	default:
		return lipgloss.NewStyle()
	}
}

// FormatTableSummary formats a summary line for table output.
func (t *TableFormatter) FormatTableSummary(stats runner.Stats, duration string) string {
	parts := []string{
		fmt.Sprintf("%d %s", stats.FilesDiscovered, plural(stats.FilesDiscovered, wordFile, wordFiles)),
		t.styles.TableHit.Render(fmt.Sprintf("%d hits", stats.CacheHits)),
		t.styles.TableMiss.Render(fmt.Sprintf("%d misses", stats.CacheMisses())),
	}

	if stats.FilesErrored > 0 {
		parts = append(parts, t.styles.TableErrorRow.Render(fmt.Sprintf("%d errors", stats.FilesErrored)))
	}

	if duration != "" {
		parts = append(parts, t.styles.Dim.Render(duration))
	}

	return " " + strings.Join(parts, " | ")
}

// truncateString truncates a string to maxLen, adding "..." if truncated.
func truncateString(str string, maxLen int) string {
	if len(str) <= maxLen {
		return str
	}
	if maxLen <= 3 {
		return str[:maxLen]
	}
	return str[:maxLen-3] + "..."
}

// truncateFilePath truncates a file path, preserving the end (filename) rather than beginning.
func truncateFilePath(path string, maxLen int) string {
	if len(path) <= maxLen {
		return path
	}
	if maxLen <= 3 {
		return path[len(path)-maxLen:]
	}
	return "..." + path[len(path)-maxLen+3:]
}
