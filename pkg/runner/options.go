// Package runner compiles many wiki sources at once: it discovers files,
// fans them out to a worker pool and collects per-file outcomes in a
// deterministic order.
package runner

import "github.com/yaklabco/gowiki/pkg/config"

// Options controls a batch run.
type Options struct {
	// Paths are the files or directories to process.
	// If empty, defaults to the working directory.
	Paths []string

	// WorkingDir is the base directory used to resolve relative Paths.
	// If empty, the process working directory is used.
	WorkingDir string

	// Extensions are the file extensions (with leading dot) treated as wiki
	// sources. Defaults to config.DefaultExtensions().
	Extensions []string

	// IncludeGlobs restrict discovery to matching paths, relative to
	// WorkingDir. Empty includes everything with a matching extension.
	IncludeGlobs []string

	// ExcludeGlobs skip matching files or directories.
	ExcludeGlobs []string

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool

	// Jobs is the maximum number of concurrent workers.
	// 0 or negative means runtime.NumCPU().
	Jobs int

	// CacheDir holds compiled documents; empty keeps them beside sources.
	CacheDir string

	// NoCache compiles every file without touching any cache.
	NoCache bool

	// Refresh recompiles every file and rewrites its cache.
	Refresh bool

	// KeepDocuments retains each compiled document in its FileOutcome.
	KeepDocuments bool
}

// OptionsFromConfig builds Options for paths from a resolved configuration.
func OptionsFromConfig(cfg *config.Config, paths []string) Options {
	opts := Options{Paths: paths}
	if cfg == nil {
		return opts
	}

	opts.Extensions = cfg.EffectiveExtensions()
	opts.ExcludeGlobs = cfg.Ignore
	opts.Jobs = cfg.Jobs
	opts.CacheDir = cfg.CacheDir
	opts.NoCache = cfg.NoCache
	opts.Refresh = cfg.Refresh
	return opts
}

func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) == 0 {
		return config.DefaultExtensions()
	}
	return o.Extensions
}

func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}
