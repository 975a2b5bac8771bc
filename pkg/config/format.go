package config

import "strings"

// Format names an output form.
type Format string

const (
	FormatText     Format = "text"
	FormatHTML     Format = "html"
	FormatMail     Format = "mail"
	FormatDebug    Format = "debug"
	FormatMarkdown Format = "markdown"
)

// Formats returns every supported format in display order.
func Formats() []Format {
	return []Format{FormatText, FormatHTML, FormatMail, FormatDebug, FormatMarkdown}
}

// Description returns a one-line summary of the format for help text.
func (f Format) Description() string {
	switch f {
	case FormatText:
		return "plain text, optionally wrapped"
	case FormatHTML:
		return "HTML with plain block tags"
	case FormatMail:
		return "HTML with inline styles for mail clients"
	case FormatDebug:
		return "bracket-tagged trace of the document tree"
	case FormatMarkdown:
		return "CommonMark (alias: md)"
	}
	return ""
}

// IsValid reports whether f is a supported format.
func (f Format) IsValid() bool {
	for _, known := range Formats() {
		if f == known {
			return true
		}
	}
	return false
}

// ParseFormat normalizes a user-supplied format name. "md" is accepted for
// markdown.
func ParseFormat(name string) (Format, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "md" {
		return FormatMarkdown, true
	}
	f := Format(name)
	return f, f.IsValid()
}

// FormatNames returns the supported formats joined for help and error text.
func FormatNames() string {
	names := make([]string, 0, len(Formats()))
	for _, f := range Formats() {
		names = append(names, string(f))
	}
	return strings.Join(names, ", ")
}
