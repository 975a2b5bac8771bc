package render

import "io"

// Styler themes markup output. Markup calls BeginDocument and EndDocument
// once around the forest, BeginBlock and EndBlock around every block except
// rules, HR for rules and Image for image links.
type Styler interface {
	BeginDocument(w io.Writer) error
	EndDocument(w io.Writer) error

	// Image writes an image reference. alt is either empty or a complete
	// ` alt="..."` attribute.
	Image(w io.Writer, path, style, alt string) error

	// BeginBlock opens a block. tag is the node tag ("p", "h2", "quote",
	// "sign", ...); extraStyle is appended to the block's own style.
	BeginBlock(w io.Writer, tag, extraStyle string) error
	EndBlock(w io.Writer, tag string) error

	HR(w io.Writer) error
}
