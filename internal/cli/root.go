// Package cli provides the Cobra command structure for gowiki.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gowiki/internal/configloader"
	"github.com/yaklabco/gowiki/internal/logging"
	"github.com/yaklabco/gowiki/pkg/config"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root gowiki command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "gowiki",
		Short: "Compile and render wiki markup",
		Long: `gowiki compiles lightweight wiki markup into a document tree and renders it
as plain text, HTML, mail-ready HTML with inline styles, Markdown, or a
structural debug trace.

Compiled documents are cached in a compact binary form next to their sources
(or under a cache directory) and reused until the source changes.`,
		Example: `  gowiki render page.wiki               # Plain text on stdout
  gowiki render -f html -o page.html page.wiki
  gowiki tree page.wiki                 # Inspect the document tree
  gowiki cache build docs/              # Warm the cache for a directory`,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			level := "info"
			if debug {
				level = "debug"
			}
			logger := logging.NewWithWriter(cmd.ErrOrStderr(), level)

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cmd.SetContext(logging.WithLogger(ctx, logger))
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	})

	rootCmd.AddGroup(commandGroups()...)
	rootCmd.SetHelpCommandGroupID(groupSetup)
	rootCmd.SetCompletionCommandGroupID(groupSetup)

	for _, sub := range []struct {
		group string
		cmd   *cobra.Command
	}{
		{groupCompile, newRenderCommand()},
		{groupCompile, newDebugCommand()},
		{groupCompile, newTreeCommand()},
		{groupCache, newCacheCommand()},
		{groupSetup, newConfigCommand()},
		{groupSetup, newVersionCommand(info)},
	} {
		sub.cmd.GroupID = sub.group
		rootCmd.AddCommand(sub.cmd)
	}

	installHelp(rootCmd)

	return rootCmd
}

// loadConfig resolves the configuration for cmd with cliCfg layered on top,
// and applies its log level unless --debug was given.
func loadConfig(cmd *cobra.Command, cliCfg *config.Config) (*config.Config, error) {
	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	result, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}

	if debug, _ := cmd.Flags().GetBool("debug"); !debug {
		logger.SetLevel(logging.ParseLevel(result.Config.LogLevel))
	}

	for _, warning := range result.Warnings {
		logger.Warn(warning)
	}
	if len(result.LoadedFrom) > 0 {
		logger.Debug("loaded configuration", logging.FieldFiles, result.LoadedFrom)
	}

	return result.Config, nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func colorMode(cmd *cobra.Command) string {
	mode, err := cmd.Flags().GetString("color")
	if err != nil {
		return "auto"
	}
	return mode
}
