// Package langdetect guesses the language of preformatted wiki blocks so the
// markdown export can tag its fenced code blocks. Detection uses go-enry for
// shebangs and classification, with a few cheap textual patterns tried first.
package langdetect

import (
	"bytes"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Text is returned when no language could be detected with confidence.
const Text = "text"

// sample is a preformatted block prepared once for all pattern checks.
type sample struct {
	raw     []byte
	trimmed []byte
	str     string
}

// pattern recognizes one language from textual markers.
type pattern struct {
	lang  string
	match func(s sample) bool
}

// patterns are checked in order; the more specific markers come first.
//
//nolint:gochecknoglobals // Read-only lookup table.
var patterns = []pattern{
	{lang: "go", match: func(s sample) bool {
		return bytes.HasPrefix(s.trimmed, []byte("package "))
	}},
	{lang: "python", match: looksLikePython},
	{lang: "html", match: func(s sample) bool {
		lower := bytes.ToLower(s.trimmed)
		return containsAny(string(lower), "<!doctype html", "<html", "<head>", "<body>")
	}},
	{lang: "json", match: func(s sample) bool {
		return (bytes.HasPrefix(s.trimmed, []byte("{")) || bytes.HasPrefix(s.trimmed, []byte("["))) &&
			bytes.Contains(s.trimmed, []byte(`"`))
	}},
	{lang: "dockerfile", match: func(s sample) bool {
		return bytes.HasPrefix(s.trimmed, []byte("FROM ")) ||
			(strings.Contains(s.str, "\nFROM ") && strings.Contains(s.str, "\nRUN ")) ||
			(strings.Contains(s.str, "WORKDIR ") && strings.Contains(s.str, "COPY "))
	}},
	{lang: "sql", match: func(s sample) bool {
		upper := strings.ToUpper(strings.TrimSpace(s.str))
		for _, verb := range []string{"SELECT ", "INSERT ", "UPDATE ", "DELETE ", "CREATE "} {
			if strings.HasPrefix(upper, verb) {
				return true
			}
		}
		return false
	}},
	{lang: "rust", match: func(s sample) bool {
		return containsAny(s.str, "fn main()", "println!", "let mut ")
	}},
	{lang: "javascript", match: func(s sample) bool {
		return containsAny(s.str, "=>", "const ", "let ", "console.log")
	}},
	{lang: "yaml", match: looksLikeYAML},
}

// classifierCandidates limits the go-enry classifier to languages likely to
// appear in a wiki page.
//
//nolint:gochecknoglobals // Read-only lookup table.
var classifierCandidates = []string{
	"Go", "Python", "Shell", "JavaScript", "TypeScript",
	"Ruby", "Rust", "Java", "C", "C++", "SQL", "JSON",
	"YAML", "HTML", "CSS", "Markdown", "Dockerfile",
}

// Detect returns a lower-case language name for content, or Text.
func Detect(content []byte) string {
	if len(bytes.TrimSpace(content)) == 0 {
		return Text
	}

	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return normalize(lang)
	}

	s := sample{raw: content, trimmed: bytes.TrimSpace(content), str: string(content)}
	for _, p := range patterns {
		if p.match(s) {
			return p.lang
		}
	}

	if lang, safe := enry.GetLanguageByClassifier(content, classifierCandidates); safe && lang != "" {
		return normalize(lang)
	}

	return Text
}

// FenceInfo returns the info string for a fenced code block holding content:
// the detected language, or "" when nothing was detected.
func FenceInfo(content []byte) string {
	if lang := Detect(content); lang != Text {
		return lang
	}
	return ""
}

func looksLikePython(s sample) bool {
	if strings.Contains(s.str, "def ") && strings.Contains(s.str, "):") {
		return true
	}
	if strings.Contains(s.str, "import ") && !strings.Contains(s.str, "import (") &&
		(strings.Contains(s.str, "from ") || strings.HasPrefix(strings.TrimSpace(s.str), "import ")) {
		return true
	}
	return containsAny(s.str, "__name__", "__main__")
}

// looksLikeYAML counts "key: value" lines and root list items.
func looksLikeYAML(s sample) bool {
	keys := 0
	for _, line := range bytes.Split(s.raw, []byte("\n")) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 || line[0] == '#' {
			continue
		}
		if bytes.Contains(line, []byte(": ")) &&
			!bytes.ContainsAny(line, "({") && line[0] != '"' {
			keys++
		}
		if bytes.HasPrefix(line, []byte("- ")) {
			keys++
		}
	}
	return keys >= 2
}

func containsAny(s string, needles ...string) bool {
	for _, needle := range needles {
		if strings.Contains(s, needle) {
			return true
		}
	}
	return false
}

// normalize converts go-enry language names to fence info strings.
func normalize(lang string) string {
	if lang == "Shell" {
		return "bash"
	}
	return strings.ToLower(lang)
}
