// Package render writes a compiled wiki forest to an io.Writer.
//
// Four renderings are provided: Text (plain text), Markup (HTML themed by a
// Styler), Debug (a bracket-tagged trace of the tree shape) and Markdown
// (CommonMark export). Renderers only read the tree, so one forest may be
// rendered concurrently as long as callers do not share a Styler or a
// ListContext.
package render

import (
	"io"
	"strings"

	"github.com/yaklabco/gowiki/pkg/wikiast"
)

// Variables maps variable names to their substitution values. A missing name
// renders as nothing.
type Variables map[string]string

// output writes to an io.Writer and keeps the first error. Every write after
// a failure is a no-op.
type output struct {
	w   io.Writer
	err error
}

func (o *output) write(parts ...string) {
	for _, part := range parts {
		if o.err != nil {
			return
		}
		if part == "" {
			continue
		}
		_, o.err = io.WriteString(o.w, part)
	}
}

// check records err unless an earlier error is already held.
func (o *output) check(err error) {
	if o.err == nil {
		o.err = err
	}
}

func (o *output) failed() bool {
	return o.err != nil
}

// PlainText returns the text rendering of nodes without variables.
func PlainText(nodes []*wikiast.Node) string {
	return flattenText(nodes, nil)
}

// flattenText renders nodes to plain text with a private list context.
func flattenText(nodes []*wikiast.Node, vars Variables) string {
	if len(nodes) == 0 {
		return ""
	}
	var sb strings.Builder
	// strings.Builder never fails.
	_ = Text(&sb, nodes, vars, nil)
	return sb.String()
}

func flattenDebug(nodes []*wikiast.Node) string {
	if len(nodes) == 0 {
		return ""
	}
	var sb strings.Builder
	_ = Debug(&sb, nodes)
	return sb.String()
}

// linkText flattens a link's href and segments to text.
func linkText(link *wikiast.LinkAttrs, vars Variables) (string, []string) {
	href := flattenText(link.Href, vars)
	segments := make([]string, len(link.Segments))
	for i, seg := range link.Segments {
		segments[i] = flattenText(seg, vars)
	}
	return href, segments
}

// namespaceOf returns the link's namespace, treating a missing one as URL.
func namespaceOf(link *wikiast.LinkAttrs) wikiast.Namespace {
	if link.Namespace == nil {
		return wikiast.URLNamespace{}
	}
	return link.Namespace
}
