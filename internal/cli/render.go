package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/muesli/reflow/wordwrap"
	"github.com/spf13/cobra"

	"github.com/yaklabco/gowiki/internal/logging"
	"github.com/yaklabco/gowiki/pkg/config"
	"github.com/yaklabco/gowiki/pkg/fsutil"
	"github.com/yaklabco/gowiki/pkg/render"
	"github.com/yaklabco/gowiki/pkg/wiki"
)

type renderFlags struct {
	format     string
	vars       []string
	wrap       int
	cache      bool
	cacheDir   string
	refresh    bool
	output     string
	standalone bool
}

func newRenderCommand() *cobra.Command {
	flags := &renderFlags{}

	cmd := &cobra.Command{
		Use:   "render [files...]",
		Short: "Render wiki files",
		Long:  renderLongDescription,
		Example: `  gowiki render page.wiki                      # Plain text
  gowiki render --format html page.wiki        # HTML
  gowiki render --var user=Ann page.wiki       # Substitute {{{user}}}
  gowiki render --wrap 72 notes.wiki           # Wrap text at 72 columns
  gowiki render --no-cache page.wiki           # Skip the compile cache
  cat page.wiki | gowiki render -f markdown    # Read from stdin`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, args, flags, "")
		},
	}

	addRenderFlags(cmd, flags, true)

	return cmd
}

const renderLongDescription = `Compile wiki files and render them to standard output.

With no files, the page is read from standard input and never cached.
Several files are rendered one after another, separated by a blank line.
Without --format the configured format is used, plain text by default.`

func newDebugCommand() *cobra.Command {
	flags := &renderFlags{}

	cmd := &cobra.Command{
		Use:   "debug [files...]",
		Short: "Print the structural trace of wiki files",
		Long: `Compile wiki files and print the bracket-tagged trace of their document
trees. This is the same as "render --format debug".`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, args, flags, config.FormatDebug)
		},
	}

	addRenderFlags(cmd, flags, false)

	return cmd
}

func addRenderFlags(cmd *cobra.Command, flags *renderFlags, withFormat bool) {
	if withFormat {
		cmd.Flags().StringVarP(&flags.format, "format", "f", "",
			"output format: "+config.FormatNames())
		cmd.Flags().StringArrayVar(&flags.vars, "var", nil, "set a variable, as name=value (repeatable)")
		cmd.Flags().IntVar(&flags.wrap, "wrap", 0, "wrap plain text at this column (0 = no wrapping)")
		cmd.Flags().BoolVar(&flags.standalone, "standalone", false, "wrap html output in a complete document titled by the first header")
	}
	cmd.Flags().BoolVar(&flags.cache, "cache", true, "read and write the compile cache")
	cmd.Flags().Bool("no-cache", false, "do not use the compile cache")
	cmd.Flags().StringVar(&flags.cacheDir, "cache-dir", "", "directory for compiled documents (default: beside each source)")
	cmd.Flags().BoolVar(&flags.refresh, "refresh", false, "recompile even when the cache is fresh")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "write to this file instead of standard output")
}

func (f *renderFlags) toConfig(cmd *cobra.Command, forced config.Format) (*config.Config, error) {
	cliCfg := &config.Config{
		Wrap:     f.wrap,
		CacheDir: f.cacheDir,
		Refresh:  f.refresh,
	}

	switch {
	case forced != "":
		cliCfg.Format = forced
	case f.format != "":
		format, ok := config.ParseFormat(f.format)
		if !ok {
			return nil, fmt.Errorf("%w: unknown format %q (want %s)", ErrUsage, f.format, config.FormatNames())
		}
		cliCfg.Format = format
	}

	noCache, _ := cmd.Flags().GetBool("no-cache")
	cliCfg.NoCache = noCache || !f.cache

	vars, err := parseVars(f.vars)
	if err != nil {
		return nil, err
	}
	cliCfg.Variables = vars

	return cliCfg, nil
}

func runRender(cmd *cobra.Command, args []string, flags *renderFlags, forced config.Format) error {
	cliCfg, err := flags.toConfig(cmd, forced)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(cmd, cliCfg)
	if err != nil {
		return err
	}

	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)

	var buf bytes.Buffer
	out := cmd.OutOrStdout()
	if flags.output != "" {
		out = &buf
	}

	if len(args) == 0 {
		source, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		if err := renderDocument(out, wiki.Compile(string(source)), cfg, flags.standalone); err != nil {
			return fmt.Errorf("render stdin: %w", err)
		}
	}

	for i, path := range args {
		doc, err := compileSource(ctx, path, cfg)
		if err != nil {
			return err
		}

		logger.Debug("rendering", logging.FieldPath, path, logging.FieldFormat, cfg.Format,
			logging.FieldCacheHit, doc.FromCache())

		if i > 0 {
			if _, err := io.WriteString(out, "\n"); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
		}
		if err := renderDocument(out, doc, cfg, flags.standalone); err != nil {
			return fmt.Errorf("render %s: %w", path, err)
		}
	}

	if flags.output != "" {
		if err := fsutil.WriteAtomic(ctx, flags.output, buf.Bytes(), 0); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		logger.Info("wrote output", logging.FieldOutput, flags.output, logging.FieldBytes, buf.Len())
	}

	return nil
}

// compileSource compiles path, going through the compile cache unless it is
// disabled.
func compileSource(ctx context.Context, path string, cfg *config.Config) (*wiki.Document, error) {
	if cfg.NoCache {
		return wiki.CompileFile(ctx, path)
	}
	return wiki.CompileCached(ctx, path, wiki.CachePath(cfg.CacheDir, path), wiki.WithRefresh(cfg.Refresh))
}

// renderDocument writes doc in the configured format.
func renderDocument(w io.Writer, doc *wiki.Document, cfg *config.Config, standalone bool) error {
	vars := render.Variables(cfg.Variables)

	switch cfg.Format {
	case config.FormatHTML:
		styler := render.NewHTMLStyler()
		styler.Standalone = standalone
		styler.Title = doc.Title()
		return doc.Markup(w, vars, styler, nil)
	case config.FormatMail:
		return doc.Markup(w, vars, mailStyler(cfg.Mail), nil)
	case config.FormatDebug:
		return doc.Debug(w)
	case config.FormatMarkdown:
		return doc.Markdown(w, vars)
	default:
		if cfg.Wrap <= 0 {
			return doc.Text(w, vars, nil)
		}

		var text strings.Builder
		if err := doc.Text(&text, vars, nil); err != nil {
			return err
		}
		if _, err := io.WriteString(w, wordwrap.String(text.String(), cfg.Wrap)); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		return nil
	}
}

func mailStyler(mail config.MailConfig) *render.MailStyler {
	var resolve render.ImageResolver
	if mail.DataDir != "" {
		resolve = render.DataDirResolver(mail.DataDir)
	}
	return render.NewMailStyler(resolve, render.WithLogo(mail.Logo))
}

// parseVars turns name=value pairs into variables.
func parseVars(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}

	vars := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("%w: --var %q must be name=value", ErrUsage, pair)
		}
		vars[name] = value
	}
	return vars, nil
}
