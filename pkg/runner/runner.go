package runner

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/yaklabco/gowiki/internal/logging"
	"github.com/yaklabco/gowiki/pkg/wiki"
	"github.com/yaklabco/gowiki/pkg/wikiast"
)

// CompileFunc compiles one source through its cache.
type CompileFunc func(ctx context.Context, path, cachePath string, opts ...wiki.Option) (*wiki.Document, error)

// Runner compiles batches of files.
type Runner struct {
	// Compile handles a single file. New sets it to wiki.CompileCached.
	Compile CompileFunc
}

// New creates a Runner backed by wiki.CompileCached.
func New() *Runner {
	return &Runner{Compile: wiki.CompileCached}
}

// Run discovers files under opts.Paths and compiles them concurrently.
// Outcomes are ordered by path regardless of completion order. A cancelled
// context stops the run and returns the outcomes collected so far with the
// context error.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	start := time.Now()

	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{Files: make([]FileOutcome, 0, len(files))}
	result.Stats.FilesDiscovered = len(files)
	defer func() { result.Duration = time.Since(start) }()

	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	jobs = min(jobs, len(files))

	logging.FromContext(ctx).Debug("compiling",
		logging.FieldFilesDiscovered, len(files),
		logging.FieldJobs, jobs,
	)

	workCh := make(chan string)
	outCh := make(chan FileOutcome)

	var wg sync.WaitGroup
	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.worker(ctx, opts, workCh, outCh)
		}()
	}

	go func() {
		defer close(workCh)
		for _, path := range files {
			select {
			case <-ctx.Done():
				return
			case workCh <- path:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outCh)
	}()

	outcomes := make(map[string]FileOutcome, len(files))
	for outcome := range outCh {
		outcomes[outcome.Path] = outcome
	}

	for _, path := range files {
		if outcome, ok := outcomes[path]; ok {
			result.accumulate(outcome)
		}
	}

	if ctx.Err() != nil {
		return result, fmt.Errorf("run cancelled: %w", ctx.Err())
	}

	return result, nil
}

func (r *Runner) worker(ctx context.Context, opts Options, workCh <-chan string, outCh chan<- FileOutcome) {
	compile := r.Compile
	if compile == nil {
		compile = wiki.CompileCached
	}

	var cacheOpts []wiki.Option
	if opts.NoCache {
		cacheOpts = append(cacheOpts, wiki.WithRefresh(true), wiki.WithReadOnly(true))
	} else if opts.Refresh {
		cacheOpts = append(cacheOpts, wiki.WithRefresh(true))
	}

	for path := range workCh {
		select {
		case <-ctx.Done():
			return
		default:
		}

		outcome := FileOutcome{Path: path}
		if !opts.NoCache {
			outcome.CachePath = wiki.CachePath(opts.CacheDir, path)
		}

		start := time.Now()
		doc, err := compile(ctx, path, outcome.CachePath, cacheOpts...)
		outcome.Duration = time.Since(start)

		if err != nil {
			outcome.Error = err
		} else {
			outcome.CacheHit = doc.FromCache()
			outcome.Nodes = wikiast.Count(doc.Nodes())
			if opts.KeepDocuments {
				outcome.Document = doc
			}
		}

		select {
		case <-ctx.Done():
			return
		case outCh <- outcome:
		}
	}
}
