package runner

import (
	"time"

	"github.com/yaklabco/gowiki/pkg/wiki"
)

// FileOutcome is the result of compiling one file.
type FileOutcome struct {
	// Path is the source file.
	Path string

	// CachePath is where the compiled form is cached; empty with NoCache.
	CachePath string

	// CacheHit is true if the document came from a fresh cache.
	CacheHit bool

	// Nodes is the number of nodes in the compiled tree.
	Nodes int

	// Duration is the time spent on this file.
	Duration time.Duration

	// Document is the compiled document when Options.KeepDocuments is set.
	Document *wiki.Document

	// Error is set if the file could not be compiled.
	Error error
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the number of files found during discovery.
	FilesDiscovered int

	// FilesCompiled is the number of files compiled without error,
	// including cache hits.
	FilesCompiled int

	// FilesErrored is the number of files that failed.
	FilesErrored int

	// CacheHits is the number of files served from cache.
	CacheHits int

	// NodesTotal is the number of nodes across all compiled files.
	NodesTotal int
}

// CacheMisses is the number of successfully compiled files that were not
// served from cache.
func (s Stats) CacheMisses() int {
	return s.FilesCompiled - s.CacheHits
}

// Result is the overall runner result.
type Result struct {
	// Files holds one outcome per discovered file, ordered by path.
	Files []FileOutcome

	// Stats contains aggregate statistics.
	Stats Stats

	// Duration is the wall-clock time of the whole run.
	Duration time.Duration
}

// HasFailures reports whether any file failed to compile.
func (r *Result) HasFailures() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesErrored > 0
}

func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}

	r.Stats.FilesCompiled++
	r.Stats.NodesTotal += outcome.Nodes
	if outcome.CacheHit {
		r.Stats.CacheHits++
	}
}
