package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gowiki/internal/ui/pretty"
	"github.com/yaklabco/gowiki/pkg/config"
	"github.com/yaklabco/gowiki/pkg/wiki"
	"github.com/yaklabco/gowiki/pkg/wikiast"
)

func newTreeCommand() *cobra.Command {
	var noCache bool
	var kind string

	cmd := &cobra.Command{
		Use:   "tree [file]",
		Short: "Show the document tree of a wiki file",
		Long: `Compile a wiki file and print its document tree, one node per line.
With no file, the page is read from standard input. With --kind only the
subtrees rooted at nodes of that kind are shown.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTree(cmd, args, noCache, kind)
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "do not use the compile cache")
	cmd.Flags().StringVar(&kind, "kind", "", "show only nodes of this kind, such as link, header or item")

	return cmd
}

func runTree(cmd *cobra.Command, args []string, noCache bool, kindName string) error {
	var filter *wikiast.NodeKind
	if kindName != "" {
		kind, ok := wikiast.ParseNodeKind(kindName)
		if !ok {
			return fmt.Errorf("%w: unknown node kind %q", ErrUsage, kindName)
		}
		filter = &kind
	}

	cfg, err := loadConfig(cmd, &config.Config{NoCache: noCache})
	if err != nil {
		return err
	}

	var doc *wiki.Document
	if len(args) == 0 {
		source, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		doc = wiki.Compile(string(source))
	} else {
		doc, err = compileSource(commandContext(cmd), args[0], cfg)
		if err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode(cmd), out))

	header := "(untitled)"
	if title := doc.Title(); title != "" {
		header = title
	}

	nodes := doc.Nodes()
	if filter != nil {
		nodes = wikiast.FindByKind(nodes, *filter)
	}

	_, err = fmt.Fprintf(out, "%s %s\n%s",
		styles.Bold.Render(header),
		styles.Dim.Render(fmt.Sprintf("(%d nodes)", wikiast.Count(nodes))),
		styles.FormatTree(nodes),
	)
	if err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
