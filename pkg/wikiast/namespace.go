package wikiast

import (
	"html"
	"io"
)

// Namespace names with a fixed meaning.
const (
	NamespaceURL   = "url"
	NamespaceImage = "Image"
)

// ImageRenderer resolves and emits an image reference. Stylers implement it.
type ImageRenderer interface {
	Image(w io.Writer, path, style, alt string) error
}

// Namespace selects how a link's target and segments render. The href and
// segments passed in are already flattened to text.
type Namespace interface {
	// Name is the namespace name persisted in the binary form.
	Name() string

	RenderText(w io.Writer, href string, segments []string) error
	RenderMarkup(w io.Writer, href string, segments []string, images ImageRenderer) error
	RenderDebug(w io.Writer, href string, segments []string) error
}

// NamespaceFor returns the strategy for a namespace prefix captured in front
// of a link's first ':'. Only "Image" is recognized.
func NamespaceFor(prefix string) Namespace {
	if prefix == NamespaceImage {
		return ImageNamespace{}
	}
	return UnknownNamespace{Namespace: prefix}
}

// URLNamespace renders a link as an anchor.
type URLNamespace struct{}

func (URLNamespace) Name() string { return NamespaceURL }

func (URLNamespace) RenderText(w io.Writer, href string, segments []string) error {
	if len(segments) > 0 {
		return writeStrings(w, segments[0])
	}
	return writeStrings(w, "<", href, ">")
}

func (URLNamespace) RenderMarkup(w io.Writer, href string, segments []string, _ ImageRenderer) error {
	contents := href
	if len(segments) > 0 {
		contents = segments[0]
	}
	return writeStrings(w, `<a href="`, html.EscapeString(href), `">`, html.EscapeString(contents), "</a>")
}

func (URLNamespace) RenderDebug(w io.Writer, href string, segments []string) error {
	if err := writeStrings(w, "url:", href); err != nil {
		return err
	}
	for _, seg := range segments {
		if err := writeStrings(w, "|", seg); err != nil {
			return err
		}
	}
	return nil
}

// ImageNamespace renders a link as an image; the first segment is the alt text.
type ImageNamespace struct{}

func (ImageNamespace) Name() string { return NamespaceImage }

// RenderText writes nothing: images have no plain-text form.
func (ImageNamespace) RenderText(io.Writer, string, []string) error { return nil }

func (ImageNamespace) RenderMarkup(w io.Writer, href string, segments []string, images ImageRenderer) error {
	alt := ""
	if len(segments) > 0 {
		alt = ` alt="` + html.EscapeString(segments[0]) + `"`
	}
	if images != nil {
		return images.Image(w, href, "", alt)
	}
	return writeStrings(w, `<img src="`, html.EscapeString(href), `"`, alt, "/>")
}

func (ImageNamespace) RenderDebug(w io.Writer, href string, _ []string) error {
	return writeStrings(w, "Image:", href)
}

// UnknownNamespace keeps an unrecognized namespace name for diagnostics.
type UnknownNamespace struct {
	Namespace string
}

func (u UnknownNamespace) Name() string { return u.Namespace }

func (u UnknownNamespace) RenderText(w io.Writer, _ string, _ []string) error {
	return writeStrings(w, "(Unknown link type: ", u.Namespace, ")")
}

func (u UnknownNamespace) RenderMarkup(w io.Writer, _ string, _ []string, _ ImageRenderer) error {
	return writeStrings(w, "<em>Unknown link type: <strong>", html.EscapeString(u.Namespace), "</strong>.</em>")
}

func (u UnknownNamespace) RenderDebug(w io.Writer, href string, segments []string) error {
	if err := writeStrings(w, u.Namespace, "?", href); err != nil {
		return err
	}
	for _, seg := range segments {
		if err := writeStrings(w, "|", seg); err != nil {
			return err
		}
	}
	return nil
}

func writeStrings(w io.Writer, parts ...string) error {
	for _, part := range parts {
		if part == "" {
			continue
		}
		if _, err := io.WriteString(w, part); err != nil {
			return err
		}
	}
	return nil
}
