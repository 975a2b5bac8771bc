package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/gowiki/pkg/runner"
)

const (
	summaryDividerWidth = 40
	wordFile            = "file"
	wordFiles           = "files"
)

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "12 files compiled (9 cached, 3 rebuilt), 1840 nodes, 1 failed".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	if stats.FilesDiscovered == 0 && stats.FilesErrored == 0 {
		return s.Dim.Render("No wiki files found") + "\n"
	}

	parts := []string{
		fmt.Sprintf("%d %s compiled (%s, %s)",
			stats.FilesCompiled, plural(stats.FilesCompiled, wordFile, wordFiles),
			s.TableHit.Render(fmt.Sprintf("%d cached", stats.CacheHits)),
			s.TableMiss.Render(fmt.Sprintf("%d rebuilt", stats.CacheMisses())),
		),
		fmt.Sprintf("%d nodes", stats.NodesTotal),
	}

	if stats.FilesErrored > 0 {
		parts = append(parts, s.Failure.Render(fmt.Sprintf("%d failed", stats.FilesErrored)))
	}

	return strings.Join(parts, ", ") + "\n"
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	builder.WriteString("  Files found:       " +
		s.SummaryValue.Render(strconv.Itoa(stats.FilesDiscovered)) + "\n")
	builder.WriteString("  Files compiled:    " +
		s.SummaryValue.Render(strconv.Itoa(stats.FilesCompiled)) + "\n")

	if stats.FilesErrored > 0 {
		builder.WriteString("  Files failed:      " +
			s.Failure.Render(strconv.Itoa(stats.FilesErrored)) + "\n")
	}

	builder.WriteString("\n")

	builder.WriteString("  Cache hits:        " +
		s.TableHit.Render(strconv.Itoa(stats.CacheHits)) + "\n")
	builder.WriteString("  Cache misses:      " +
		s.TableMiss.Render(strconv.Itoa(stats.CacheMisses())) + "\n")
	builder.WriteString("  Total nodes:       " +
		s.SummaryValue.Render(strconv.Itoa(stats.NodesTotal)) + "\n")

	builder.WriteString("\n")

	if stats.FilesErrored > 0 {
		builder.WriteString(s.Failure.Render("Build failed"))
	} else {
		builder.WriteString(s.Success.Render("Build succeeded"))
	}
	builder.WriteString("\n")

	return builder.String()
}
