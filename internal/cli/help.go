package cli

import (
	"cmp"
	"io"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yaklabco/gowiki/internal/configloader"
	"github.com/yaklabco/gowiki/internal/ui/pretty"
	"github.com/yaklabco/gowiki/pkg/config"
)

// Command groups listed in the root help.
const (
	groupCompile = "compile"
	groupCache   = "cache"
	groupSetup   = "setup"
)

func commandGroups() []*cobra.Group {
	return []*cobra.Group{
		{ID: groupCompile, Title: "Compiling:"},
		{ID: groupCache, Title: "Caching:"},
		{ID: groupSetup, Title: "Setup:"},
	}
}

// flagColumnGap separates the flag column from its usage text.
const flagColumnGap = 3

// installHelp replaces cobra's help and usage output on root. Subcommands
// inherit both.
func installHelp(root *cobra.Command) {
	root.SetHelpFunc(func(cmd *cobra.Command, _ []string) {
		out := cmd.OutOrStdout()
		page := newHelpPage(cmd, out)
		page.addHeader(cmd)
		page.addUsage(cmd)
		if _, err := io.WriteString(out, page.String()); err != nil {
			cmd.PrintErrln(err)
		}
	})

	root.SetUsageFunc(func(cmd *cobra.Command) error {
		out := cmd.OutOrStderr()
		page := newHelpPage(cmd, out)
		page.addUsage(cmd)
		_, err := io.WriteString(out, page.String())
		return err
	})
}

// helpPage collects the sections of one help screen.
type helpPage struct {
	styles   *pretty.Styles
	sections []string
}

func newHelpPage(cmd *cobra.Command, out io.Writer) *helpPage {
	return &helpPage{styles: pretty.NewStyles(pretty.IsColorEnabled(colorMode(cmd), out))}
}

func (p *helpPage) String() string {
	if len(p.sections) == 0 {
		return ""
	}
	return strings.Join(p.sections, "\n\n") + "\n"
}

// add appends a section. Sections without lines are dropped.
func (p *helpPage) add(heading string, lines ...string) {
	if len(lines) == 0 {
		return
	}
	body := strings.Join(lines, "\n")
	if heading != "" {
		body = p.styles.SummaryTitle.Render(heading) + "\n" + body
	}
	p.sections = append(p.sections, body)
}

func (p *helpPage) addHeader(cmd *cobra.Command) {
	title := p.styles.Block.Render(cmd.CommandPath())
	if cmd.Version != "" {
		title += " " + p.styles.Dim.Render(cmd.Version)
	}
	p.add("", title)

	if desc := strings.TrimSpace(cmp.Or(cmd.Long, cmd.Short)); desc != "" {
		p.add("", trimLineEnds(desc))
	}
}

func (p *helpPage) addUsage(cmd *cobra.Command) {
	var usage []string
	if cmd.Runnable() {
		usage = append(usage, "  "+p.styles.Block.Render(cmd.UseLine()))
	}
	if cmd.HasAvailableSubCommands() {
		usage = append(usage, "  "+p.styles.Block.Render(cmd.CommandPath()+" [command]"))
	}
	p.add("Usage:", usage...)

	if len(cmd.Aliases) > 0 {
		p.add("Aliases:", "  "+strings.Join(cmd.Aliases, ", "))
	}
	if cmd.HasExample() {
		examples := strings.Split(trimLineEnds(cmd.Example), "\n")
		for i, line := range examples {
			examples[i] = p.styles.Dim.Render(line)
		}
		p.add("Examples:", examples...)
	}

	p.addCommands(cmd)

	if cmd.LocalFlags().Lookup("format") != nil {
		p.add("Formats:", formatLines()...)
	}

	p.add("Flags:", p.flagLines(cmd.LocalFlags())...)
	p.add("Global Flags:", p.flagLines(cmd.InheritedFlags())...)

	if !cmd.HasParent() {
		env := envLines(p.styles.Variable)
		for i, line := range env {
			env[i] = "  " + line
		}
		p.add("Environment:", env...)
	}

	if cmd.HasAvailableSubCommands() {
		p.add("", `Use "`+p.styles.Block.Render(cmd.CommandPath()+" [command] --help")+
			`" for more information about a command.`)
	}
}

// addCommands lists subcommands under their group titles, then any
// ungrouped ones.
func (p *helpPage) addCommands(cmd *cobra.Command) {
	if !cmd.HasAvailableSubCommands() {
		return
	}

	listed := func(sub *cobra.Command) bool {
		return sub.IsAvailableCommand() || sub.Name() == "help"
	}

	for _, group := range cmd.Groups() {
		var lines []string
		for _, sub := range cmd.Commands() {
			if sub.GroupID == group.ID && listed(sub) {
				lines = append(lines, p.commandLine(sub))
			}
		}
		p.add(group.Title, lines...)
	}

	var rest []string
	for _, sub := range cmd.Commands() {
		if sub.GroupID == "" && listed(sub) {
			rest = append(rest, p.commandLine(sub))
		}
	}
	title := "Additional Commands:"
	if len(cmd.Groups()) == 0 {
		title = "Commands:"
	}
	p.add(title, rest...)
}

func (p *helpPage) commandLine(sub *cobra.Command) string {
	name := sub.Name()
	pad := strings.Repeat(" ", max(sub.NamePadding()-len(name), 0))
	return "  " + p.styles.Inline.Render(name) + pad + " " + sub.Short
}

// flagLines renders one aligned line per visible flag: names and value type
// on the left, usage and default on the right.
func (p *helpPage) flagLines(flags *pflag.FlagSet) []string {
	type row struct {
		width  int
		styled string
		usage  string
	}

	var rows []row
	width := 0
	flags.VisitAll(func(flag *pflag.Flag) {
		if flag.Hidden {
			return
		}

		valueType, usage := pflag.UnquoteUsage(flag)

		plain := "    --" + flag.Name
		styled := "    " + p.styles.Variable.Render("--"+flag.Name)
		if flag.Shorthand != "" {
			plain = "-" + flag.Shorthand + ", --" + flag.Name
			styled = p.styles.Variable.Render("-"+flag.Shorthand) + ", " + p.styles.Variable.Render("--"+flag.Name)
		}
		if valueType != "" {
			plain += " " + valueType
			styled += " " + p.styles.Dim.Render(valueType)
		}

		if def := flagDefault(flag); def != "" {
			usage += " (default " + def + ")"
		}

		rows = append(rows, row{width: len(plain), styled: styled, usage: usage})
		width = max(width, len(plain))
	})

	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		lines = append(lines, "  "+r.styled+strings.Repeat(" ", width-r.width+flagColumnGap)+r.usage)
	}
	return lines
}

// flagDefault returns the default worth showing, or "" for zero values.
func flagDefault(flag *pflag.Flag) string {
	switch flag.DefValue {
	case "", "false", "0", "[]":
		return ""
	}
	if flag.Value.Type() == "string" {
		return strconv.Quote(flag.DefValue)
	}
	return flag.DefValue
}

func formatLines() []string {
	width := 0
	for _, f := range config.Formats() {
		width = max(width, len(f))
	}

	lines := make([]string, 0, len(config.Formats()))
	for _, f := range config.Formats() {
		lines = append(lines, "  "+string(f)+strings.Repeat(" ", width-len(f)+2)+f.Description())
	}
	return lines
}

// envLines lists the recognised environment variables sorted by name, with
// names styled and padded to one column.
func envLines(nameStyle lipgloss.Style) []string {
	vars := configloader.ListEnvVars()
	names := slices.Sorted(maps.Keys(vars))

	width := 0
	for _, name := range names {
		width = max(width, len(name))
	}

	lines := make([]string, 0, len(names))
	for _, name := range names {
		lines = append(lines, nameStyle.Render(name)+strings.Repeat(" ", width-len(name)+2)+vars[name])
	}
	return lines
}

func trimLineEnds(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}
