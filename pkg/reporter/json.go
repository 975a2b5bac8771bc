package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/gowiki/pkg/runner"
)

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version string           `json:"version"`
	Files   []JSONFileResult `json:"files"`
	Summary JSONSummary      `json:"summary"`
}

// JSONFileResult represents a single file's outcome.
type JSONFileResult struct {
	Path       string `json:"path"`
	CachePath  string `json:"cachePath,omitempty"`
	CacheHit   bool   `json:"cacheHit"`
	Nodes      int    `json:"nodes"`
	DurationNS int64  `json:"durationNs"`
	Error      string `json:"error,omitempty"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	FilesDiscovered int   `json:"filesDiscovered"`
	FilesCompiled   int   `json:"filesCompiled"`
	FilesErrored    int   `json:"filesErrored"`
	CacheHits       int   `json:"cacheHits"`
	CacheMisses     int   `json:"cacheMisses"`
	Nodes           int   `json:"nodes"`
	DurationNS      int64 `json:"durationNs"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := r.buildOutput(result)

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return output.Summary.FilesErrored, nil
}

func (r *JSONReporter) buildOutput(result *runner.Result) *JSONOutput {
	output := &JSONOutput{
		Version: "1.0.0",
		Files:   make([]JSONFileResult, 0),
	}

	if result == nil {
		return output
	}

	output.Files = make([]JSONFileResult, 0, len(result.Files))
	for _, file := range result.Files {
		fileResult := JSONFileResult{
			Path:       r.opts.displayPath(file.Path),
			CachePath:  file.CachePath,
			CacheHit:   file.CacheHit,
			Nodes:      file.Nodes,
			DurationNS: file.Duration.Nanoseconds(),
		}
		if file.Error != nil {
			fileResult.Error = file.Error.Error()
		}
		output.Files = append(output.Files, fileResult)
	}

	stats := result.Stats
	output.Summary = JSONSummary{
		FilesDiscovered: stats.FilesDiscovered,
		FilesCompiled:   stats.FilesCompiled,
		FilesErrored:    stats.FilesErrored,
		CacheHits:       stats.CacheHits,
		CacheMisses:     stats.CacheMisses(),
		Nodes:           stats.NodesTotal,
		DurationNS:      result.Duration.Nanoseconds(),
	}

	return output
}
