package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gowiki/internal/logging"
	"github.com/yaklabco/gowiki/pkg/config"
	"github.com/yaklabco/gowiki/pkg/fsutil"
	"github.com/yaklabco/gowiki/pkg/reporter"
	"github.com/yaklabco/gowiki/pkg/runner"
	"github.com/yaklabco/gowiki/pkg/wiki"
)

type cacheFlags struct {
	cacheDir string
	jobs     int
	ignore   []string
	refresh  bool
	quiet    bool
	report   string
}

func newCacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the compile cache",
		Long: `Build or remove compiled documents for whole directory trees.

Without a cache directory each compiled document is written beside its
source with a ` + wiki.CacheExt + ` suffix.`,
	}

	cmd.AddCommand(newCacheBuildCommand())
	cmd.AddCommand(newCacheCleanCommand())

	return cmd
}

func addCacheFlags(cmd *cobra.Command, flags *cacheFlags) {
	cmd.Flags().StringVar(&flags.cacheDir, "cache-dir", "", "directory for compiled documents (default: beside each source)")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
}

func (f *cacheFlags) toConfig() *config.Config {
	return &config.Config{
		CacheDir: f.cacheDir,
		Jobs:     f.jobs,
		Ignore:   f.ignore,
		Refresh:  f.refresh,
	}
}

func newCacheBuildCommand() *cobra.Command {
	flags := &cacheFlags{}

	cmd := &cobra.Command{
		Use:   "build [paths...]",
		Short: "Compile wiki files and refresh their caches",
		Long: `Compile every wiki source under the given paths (default: the current
directory) with a pool of workers, writing caches for stale or missing
entries, and report the outcome per file.`,
		Example: `  gowiki cache build                     # Current directory
  gowiki cache build docs/ --jobs 4      # Four workers
  gowiki cache build --refresh           # Recompile everything
  gowiki cache build --cache-dir .wikic  # Keep caches in one place
  gowiki cache build --report json       # Machine-readable report`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCacheBuild(cmd, args, flags)
		},
	}

	addCacheFlags(cmd, flags)
	cmd.Flags().IntVarP(&flags.jobs, "jobs", "j", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().BoolVar(&flags.refresh, "refresh", false, "recompile even when the cache is fresh")
	cmd.Flags().BoolVarP(&flags.quiet, "quiet", "q", false, "print only a one-line summary")
	cmd.Flags().StringVar(&flags.report, "report", "table", "report format: text, table, json, summary")

	return cmd
}

func runCacheBuild(cmd *cobra.Command, args []string, flags *cacheFlags) error {
	format, err := reporter.ParseFormat(flags.report)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}
	showSummary := true
	if flags.quiet {
		format, showSummary = reporter.FormatSummary, false
	}

	cfg, err := loadConfig(cmd, flags.toConfig())
	if err != nil {
		return err
	}

	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	opts := runner.OptionsFromConfig(cfg, args)
	opts.WorkingDir = workDir
	// A build always writes; no_cache only governs rendering.
	opts.NoCache = false

	result, err := runner.New().Run(ctx, opts)
	if err != nil {
		return fmt.Errorf("cache build: %w", err)
	}

	logger.Debug("cache build finished",
		logging.FieldFilesCompiled, result.Stats.FilesCompiled,
		logging.FieldCacheHits, result.Stats.CacheHits,
		logging.FieldFilesFailed, result.Stats.FilesErrored,
	)

	rep, err := reporter.New(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		Format:      format,
		Color:       colorMode(cmd),
		ShowSummary: showSummary,
		WorkingDir:  workDir,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if _, err := rep.Report(ctx, result); err != nil {
		return fmt.Errorf("report results: %w", err)
	}

	for _, outcome := range result.Files {
		if outcome.Error != nil {
			logger.Error("compile failed", logging.FieldPath, outcome.Path, logging.FieldError, outcome.Error)
		}
	}

	if ExitCodeFromResult(result) != ExitSuccess {
		return ErrCompileFailed
	}
	return nil
}

func newCacheCleanCommand() *cobra.Command {
	flags := &cacheFlags{}

	cmd := &cobra.Command{
		Use:   "clean [paths...]",
		Short: "Remove compiled documents",
		Long: `Remove the cache file (and its lock file) of every wiki source under the
given paths (default: the current directory).`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCacheClean(cmd, args, flags)
		},
	}

	addCacheFlags(cmd, flags)

	return cmd
}

func runCacheClean(cmd *cobra.Command, args []string, flags *cacheFlags) error {
	cfg, err := loadConfig(cmd, flags.toConfig())
	if err != nil {
		return err
	}

	ctx := commandContext(cmd)

	opts := runner.OptionsFromConfig(cfg, args)
	sources, err := runner.Discover(ctx, opts)
	if err != nil {
		return fmt.Errorf("cache clean: %w", err)
	}

	removed := 0
	for _, source := range sources {
		cachePath := wiki.CachePath(cfg.CacheDir, source)
		for _, path := range []string{cachePath, cachePath + fsutil.LockSuffix} {
			err := os.Remove(path)
			switch {
			case err == nil:
				if path == cachePath {
					removed++
				}
			case errors.Is(err, fs.ErrNotExist):
			default:
				return fmt.Errorf("remove %s: %w", path, err)
			}
		}
	}

	logging.FromContext(ctx).Info("removed cache files",
		logging.FieldFiles, removed,
		logging.FieldFilesDiscovered, len(sources),
	)
	return nil
}
