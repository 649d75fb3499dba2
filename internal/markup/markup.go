// Package markup converts Markdown card titles to HTML fragments.
//
// Conversion uses Goldmark with GitHub Flavored Markdown, inline-styled
// syntax highlighting and :shortcode: emoji. Raw HTML in the source is never
// passed through, and the output is filtered by a bluemonday policy before it
// is returned, so the fragment is safe to embed in the card document.
package markup

import (
	"bytes"
	"errors"
	"fmt"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	gemoji "github.com/yuin/goldmark-emoji"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// ErrConversion indicates Markdown conversion failed.
var ErrConversion = errors.New("markdown conversion failed")

// highlightStyle is the chroma style used for fenced code blocks.
const highlightStyle = "monokai"

// GoldmarkRenderer converts Markdown to sanitized HTML using goldmark (pure Go).
// It is safe for concurrent use.
type GoldmarkRenderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

// NewGoldmarkRenderer creates a GoldmarkRenderer with GFM, highlighting and emoji shortcodes.
func NewGoldmarkRenderer() *GoldmarkRenderer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM, // Tables, strikethrough, autolinks, task lists
			highlighting.NewHighlighting(
				highlighting.WithStyle(highlightStyle),
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(false), // inline styles, the document has no external stylesheet
				),
			),
			// Shortcodes become Unicode glyphs so the emoji pass can pick them up.
			gemoji.New(gemoji.WithRenderingMethod(gemoji.Unicode)),
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(), // Treat newlines as <br>
			html.WithXHTML(),     // Self-closing tags
			// WithUnsafe() intentionally not used: raw HTML is omitted.
		),
	)
	return &GoldmarkRenderer{md: md, policy: newPolicy()}
}

// newPolicy allows user-generated-content markup plus the inline styles
// chroma emits for highlighted code.
func newPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowStyles("color", "background-color", "font-weight", "font-style", "text-decoration").
		OnElements("span", "pre")
	return p
}

// RenderMarkup converts Markdown source to an HTML fragment.
func (r *GoldmarkRenderer) RenderMarkup(source string) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(source), &buf); err != nil {
		return "", fmt.Errorf("%w: %v", ErrConversion, err)
	}
	return r.policy.Sanitize(buf.String()), nil
}
