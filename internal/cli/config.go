package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/yaklabco/gowiki/internal/configloader"
	"github.com/yaklabco/gowiki/internal/logging"
	"github.com/yaklabco/gowiki/pkg/config"
	"github.com/yaklabco/gowiki/pkg/fsutil"
)

// initFlags holds the flags for the config init command.
type initFlags struct {
	force   bool
	full    bool
	restore bool
	output  string
}

func newConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Create and inspect configuration",
	}

	cmd.AddCommand(newConfigInitCommand())
	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigEnvCommand())

	return cmd
}

func newConfigInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a gowiki configuration file",
		Long: `Create a ` + configloader.ProjectConfigFiles[0] + ` configuration file in the current directory.
An existing file is only replaced after confirmation (or with --force), and
is first copied to a backup, which --restore puts back.`,
		Example: `  gowiki config init                       Create a commented skeleton
  gowiki config init --full                Write every setting with its default
  gowiki config init --output custom.yml   Write to a custom file path
  gowiki config init --restore             Undo the last overwrite`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "overwrite an existing configuration file")
	cmd.Flags().BoolVar(&flags.full, "full", false, "write every setting with its default")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "",
		"output file path (default: "+configloader.ProjectConfigFiles[0]+")")
	cmd.Flags().BoolVar(&flags.restore, "restore", false, "restore the configuration file from its backup")

	return cmd
}

func runConfigInit(cmd *cobra.Command, flags *initFlags) error {
	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)

	if flags.restore {
		if flags.force || flags.full {
			return fmt.Errorf("%w: --restore cannot be combined with --force or --full", ErrUsage)
		}
		path, err := configloader.RestoreTemplate(ctx, flags.output)
		if err != nil {
			return err
		}
		logger.Info("restored configuration file", logging.FieldPath, path)
		return nil
	}

	opts := configloader.InitOptions{
		Path:  flags.output,
		Full:  flags.full,
		Force: flags.force,
	}
	// The prompt decides on its own whether the real stdin is a terminal.
	if in := cmd.InOrStdin(); in != os.Stdin {
		opts.In = in
		opts.Out = cmd.OutOrStdout()
	}

	result, err := configloader.WriteTemplate(ctx, opts)
	if err != nil {
		return err
	}

	if result.BackedUp {
		logger.Warn("previous configuration backed up", logging.FieldPath, fsutil.BackupPath(result.Path))
	}
	logger.Info("created configuration file", logging.FieldPath, result.Path)

	return nil
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the resolved configuration",
		Long: `Print the configuration after merging system, user, project and explicit
config files, GOWIKI_* environment variables and defaults.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, &config.Config{})
			if err != nil {
				return err
			}

			data, err := cfg.ToYAMLWithHeader("# Resolved gowiki configuration")
			if err != nil {
				return fmt.Errorf("encode config: %w", err)
			}

			if _, err := cmd.OutOrStdout().Write(data); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			return nil
		},
	}
}

func newConfigEnvCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "env",
		Short: "List supported environment variables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			lines := envLines(lipgloss.NewStyle())
			if _, err := fmt.Fprintln(cmd.OutOrStdout(), strings.Join(lines, "\n")); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			return nil
		},
	}
}
