package render

import (
	"html"
	"io"
)

// HTMLStyler produces plain, class-annotated HTML.
type HTMLStyler struct {
	// Standalone wraps the output in a complete HTML document.
	Standalone bool

	// Title is the document title used when Standalone is set.
	Title string
}

// NewHTMLStyler returns a styler that writes an HTML fragment.
func NewHTMLStyler() *HTMLStyler {
	return &HTMLStyler{}
}

// htmlBlock is the element and class a wiki block tag maps to.
type htmlBlock struct {
	element string
	class   string
}

func htmlBlockFor(tag string) htmlBlock {
	switch tag {
	case "quote":
		return htmlBlock{element: "blockquote", class: "quote"}
	case "sign":
		return htmlBlock{element: "p", class: "sign"}
	default:
		return htmlBlock{element: tag}
	}
}

func (s *HTMLStyler) BeginDocument(w io.Writer) error {
	if !s.Standalone {
		return nil
	}
	_, err := io.WriteString(w, "<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\" />\n<title>"+
		html.EscapeString(s.Title)+"</title>\n</head>\n<body>\n")
	return err
}

func (s *HTMLStyler) EndDocument(w io.Writer) error {
	if !s.Standalone {
		return nil
	}
	_, err := io.WriteString(w, "</body>\n</html>\n")
	return err
}

func (s *HTMLStyler) Image(w io.Writer, path, style, alt string) error {
	out := output{w: w}
	out.write(`<img src="`, html.EscapeString(path), `"`)
	if style != "" {
		out.write(` style="`, style, `"`)
	}
	out.write(alt, " />")
	return out.err
}

func (s *HTMLStyler) BeginBlock(w io.Writer, tag, extraStyle string) error {
	block := htmlBlockFor(tag)

	out := output{w: w}
	out.write("<", block.element)
	if block.class != "" {
		out.write(` class="`, block.class, `"`)
	}
	if extraStyle != "" {
		out.write(` style="`, extraStyle, `"`)
	}
	out.write(">")
	if tag == "ul" || tag == "ol" {
		out.write("\n")
	}
	return out.err
}

func (s *HTMLStyler) EndBlock(w io.Writer, tag string) error {
	_, err := io.WriteString(w, "</"+htmlBlockFor(tag).element+">\n")
	return err
}

func (s *HTMLStyler) HR(w io.Writer) error {
	_, err := io.WriteString(w, "<hr />\n")
	return err
}
