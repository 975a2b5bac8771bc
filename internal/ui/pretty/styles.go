// Package pretty provides Lipgloss-based styled output for the CLI: AST
// trees, batch tables and run summaries.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Styles contains all styled renderers for CLI output.
type Styles struct {
	// Tree styles
	Block    lipgloss.Style
	Inline   lipgloss.Style
	Text     lipgloss.Style
	Link     lipgloss.Style
	Variable lipgloss.Style
	Token    lipgloss.Style
	Branch   lipgloss.Style

	// Summary styles
	FilePath     lipgloss.Style
	SummaryTitle lipgloss.Style
	SummaryValue lipgloss.Style
	Success      lipgloss.Style
	Failure      lipgloss.Style
	Warning      lipgloss.Style

	// Table styles
	TableHeader    lipgloss.Style
	TableSeparator lipgloss.Style
	TableHit       lipgloss.Style
	TableMiss      lipgloss.Style
	TableErrorRow  lipgloss.Style

	// Misc
	Dim  lipgloss.Style
	Bold lipgloss.Style
}

// NewStyles creates a new Styles with the given color mode.
func NewStyles(colorEnabled bool) *Styles {
	if !colorEnabled {
		return newNoColorStyles()
	}
	return newColorStyles()
}

func newColorStyles() *Styles {
	return &Styles{
		Block:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true),
		Inline:   lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
		Text:     lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
		Link:     lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Underline(true),
		Variable: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		Token:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		Branch:   lipgloss.NewStyle().Foreground(lipgloss.Color("8")),

		FilePath:     lipgloss.NewStyle().Bold(true),
		SummaryTitle: lipgloss.NewStyle().Bold(true),
		SummaryValue: lipgloss.NewStyle(),
		Success:      lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
		Failure:      lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Warning:      lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),

		TableHeader:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7")),
		TableSeparator: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		TableHit:       lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		TableMiss:      lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		TableErrorRow:  lipgloss.NewStyle().Foreground(lipgloss.Color("9")),

		Dim:  lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Bold: lipgloss.NewStyle().Bold(true),
	}
}

func newNoColorStyles() *Styles {
	plain := lipgloss.NewStyle()
	return &Styles{
		Block:          plain,
		Inline:         plain,
		Text:           plain,
		Link:           plain,
		Variable:       plain,
		Token:          plain,
		Branch:         plain,
		FilePath:       plain,
		SummaryTitle:   plain,
		SummaryValue:   plain,
		Success:        plain,
		Failure:        plain,
		Warning:        plain,
		TableHeader:    plain,
		TableSeparator: plain,
		TableHit:       plain,
		TableMiss:      plain,
		TableErrorRow:  plain,
		Dim:            plain,
		Bold:           plain,
	}
}

// IsColorEnabled determines if color should be enabled based on mode and writer.
// Mode values: "auto" (default), "always", "never".
// In auto mode, color is enabled only if the writer is a TTY and NO_COLOR is not set.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default:
		if os.Getenv("NO_COLOR") != "" {
			return false
		}
		if f, ok := writer.(*os.File); ok {
			return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		}
		return false
	}
}
