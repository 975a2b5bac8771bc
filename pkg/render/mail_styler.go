package render

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
)

// ErrImageOutsideDataDir is returned by a DataDirResolver for an image path
// that escapes the data directory.
var ErrImageOutsideDataDir = errors.New("image path outside data directory")

// ImageResolver turns an image path from the document into the URI written
// to the src attribute, for example a "cid:" reference to a mail attachment.
type ImageResolver func(path string) (string, error)

// DataDirResolver resolves image paths relative to dir and refuses paths
// that leave it. The result is a file path, not a URI.
func DataDirResolver(dir string) ImageResolver {
	return func(path string) (string, error) {
		full := filepath.Join(dir, filepath.FromSlash(path))
		rel, err := filepath.Rel(dir, full)
		if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return "", fmt.Errorf("%w: %s", ErrImageOutsideDataDir, path)
		}
		return full, nil
	}
}

// Mail theme constants.
const (
	mailLeftPadding = 109
	mailFontAfterHR = 10

	mailDocumentStyle = "font-family: Helvetica Neu, Calibri, Tahoma, Arial, sans-serif; " +
		"font-size: 13px; width: 809px; margin: 1em auto; padding: 13px; background: #EEE"
	mailRuleStyle   = "margin-top: 1em; padding-top: 1em; border: none; border-top: solid 1px #DDD; color: #AAA"
	mailFooterStyle = "padding-left: 109px; font-size: 10px; border: none; border-top: solid 1px #DDD; color: #AAA"
	mailSignStyle   = "font-style: italic; color: #888"
	mailQuoteStyle  = "margin: 1em; padding: 1em; background: #F8F8F8; color: #666"

	// DefaultMailLogo is the logo path used when none is configured.
	DefaultMailLogo = "images/mail_logo.png"
)

//nolint:gochecknoglobals // Read-only lookup table.
var mailFontSizes = map[string]int{
	"h1":   22,
	"h2":   20,
	"h3":   18,
	"h4":   16,
	"sign": 14,
}

// MailStyler produces HTML with inline CSS suitable for mail clients. A rule
// is not drawn on its own: it becomes the top border of the next block, and
// everything after it uses smaller fonts. Resolved image URIs are memoized
// per path.
type MailStyler struct {
	logo    string
	resolve ImageResolver
	uris    map[string]string
	hasHR   bool
}

// MailOption configures a MailStyler.
type MailOption func(*MailStyler)

// WithLogo sets the logo image path; an empty path disables the logo.
func WithLogo(path string) MailOption {
	return func(s *MailStyler) {
		s.logo = path
	}
}

// NewMailStyler returns a mail styler resolving images through resolve.
// A nil resolve writes image paths unchanged.
func NewMailStyler(resolve ImageResolver, opts ...MailOption) *MailStyler {
	if resolve == nil {
		resolve = func(path string) (string, error) { return path, nil }
	}
	s := &MailStyler{
		logo:    DefaultMailLogo,
		resolve: resolve,
		uris:    make(map[string]string),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *MailStyler) uri(path string) (string, error) {
	if uri, ok := s.uris[path]; ok {
		return uri, nil
	}
	uri, err := s.resolve(path)
	if err != nil {
		return "", fmt.Errorf("resolving image %q: %w", path, err)
	}
	s.uris[path] = uri
	return uri, nil
}

func (s *MailStyler) BeginDocument(w io.Writer) error {
	out := output{w: w}
	out.write(`<div style="`, mailDocumentStyle, "\">\n")
	if out.err == nil && s.logo != "" {
		if err := s.Image(w, s.logo, "float: left", ""); err != nil {
			return err
		}
		out.write("\n")
	}
	return out.err
}

func (s *MailStyler) EndDocument(w io.Writer) error {
	out := output{w: w}
	if s.hasHR {
		out.write(`<p style="`, mailFooterStyle, "\">&nbsp;</p>\n\n")
		s.hasHR = false
	}
	out.write("</div>\n")
	return out.err
}

func (s *MailStyler) Image(w io.Writer, path, style, alt string) error {
	uri, err := s.uri(path)
	if err != nil {
		return err
	}

	out := output{w: w}
	out.write("<img")
	if style != "" {
		out.write(` style="`, style, `"`)
	}
	out.write(` src="`, uri, `"`, alt, " />")
	return out.err
}

func (s *MailStyler) BeginBlock(w io.Writer, tag, extraStyle string) error {
	element := tag
	leftProperty := "padding"
	var styles []string

	font, hasFont := mailFontSizes[tag]
	switch tag {
	case "sign":
		element = "p"
		styles = append(styles, mailSignStyle)
	case "quote":
		element = "div"
		leftProperty = "margin"
		styles = append(styles, mailQuoteStyle)
	}

	if s.hasHR {
		if hasFont {
			font = font * 77 / 100
		} else {
			font, hasFont = mailFontAfterHR, true
		}
	}
	if hasFont {
		styles = append([]string{"font-size: " + strconv.Itoa(font) + "px"}, styles...)
	}
	if s.hasHR {
		styles = append(styles, mailRuleStyle)
		s.hasHR = false
	}
	if extraStyle != "" {
		styles = append(styles, extraStyle)
	}
	styles = append(styles, leftProperty+"-left: "+strconv.Itoa(mailLeftPadding)+"px")

	_, err := io.WriteString(w, "<"+element+` style="`+strings.Join(styles, "; ")+`">`)
	return err
}

func (s *MailStyler) EndBlock(w io.Writer, tag string) error {
	element := tag
	switch tag {
	case "sign":
		element = "p"
	case "quote":
		element = "div"
	}
	_, err := io.WriteString(w, "</"+element+">\n\n")
	return err
}

// HR defers the rule to the next block.
func (s *MailStyler) HR(io.Writer) error {
	s.hasHR = true
	return nil
}
