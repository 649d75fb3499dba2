package ogimage

import (
	"fmt"
	"html"

	"github.com/phanu-phoo/og-image/internal/emoji"
	"github.com/phanu-phoo/og-image/internal/markup"
)

// DefaultFooterLogo is the image shown in the top-right corner of every card.
const DefaultFooterLogo = "https://phanx-web-dev.web.app/asset/Odds-Logo.svg"

// Sanitizer escapes a string for safe interpolation into HTML or CSS.
type Sanitizer interface {
	Sanitize(s string) string
}

// MarkupRenderer converts Markdown source to an HTML fragment.
type MarkupRenderer interface {
	RenderMarkup(source string) (string, error)
}

// Emojifier rewrites emoji glyphs in an HTML fragment into image references.
type Emojifier interface {
	Emojify(fragment string) string
}

// SanitizerFunc adapts a function to the Sanitizer interface.
type SanitizerFunc func(string) string

// Sanitize calls f(s).
func (f SanitizerFunc) Sanitize(s string) string { return f(s) }

// MarkupRendererFunc adapts a function to the MarkupRenderer interface.
type MarkupRendererFunc func(string) (string, error)

// RenderMarkup calls f(source).
func (f MarkupRendererFunc) RenderMarkup(source string) (string, error) { return f(source) }

// EmojifierFunc adapts a function to the Emojifier interface.
type EmojifierFunc func(string) string

// Emojify calls f(fragment).
func (f EmojifierFunc) Emojify(fragment string) string { return f(fragment) }

// HTMLEscaper escapes the five HTML-significant characters: & < > " '.
type HTMLEscaper struct{}

// Sanitize returns s with HTML-significant characters replaced by entities.
func (HTMLEscaper) Sanitize(s string) string {
	return html.EscapeString(s)
}

// Compile-time interface implementation checks.
var (
	_ Sanitizer      = HTMLEscaper{}
	_ Sanitizer      = SanitizerFunc(nil)
	_ MarkupRenderer = MarkupRendererFunc(nil)
	_ MarkupRenderer = (*markup.GoldmarkRenderer)(nil)
	_ Emojifier      = EmojifierFunc(nil)
	_ Emojifier      = (*emoji.Twemoji)(nil)
)

// documentTemplate is the complete card document.
// Arguments: stylesheet, image row, title fragment, footer logo URL.
const documentTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Generated Image</title>
<meta name="viewport" content="width=device-width, initial-scale=1">
<style>
%s
</style>
</head>
<body>
<div class="flex flex-column display-full">
<div class="logo-wrapper">%s</div>
<div class="title">%s</div>
</div>
<div class="footer-logo">
<img alt="Generated Image" src="%s" width="auto" height="120" />
</div>
</body>
</html>`

// Renderer builds card documents. It holds no mutable state and is safe
// for concurrent use.
type Renderer struct {
	fonts      *Fonts
	sanitizer  Sanitizer
	markup     MarkupRenderer
	emojifier  Emojifier
	footerLogo string
}

// RendererOption configures a Renderer.
type RendererOption func(*Renderer)

// WithSanitizer replaces the HTML escaper.
func WithSanitizer(s Sanitizer) RendererOption {
	return func(r *Renderer) {
		r.sanitizer = s
	}
}

// WithMarkupRenderer replaces the Goldmark Markdown renderer.
func WithMarkupRenderer(m MarkupRenderer) RendererOption {
	return func(r *Renderer) {
		r.markup = m
	}
}

// WithEmojifier replaces the Twemoji emoji substitution.
func WithEmojifier(e Emojifier) RendererOption {
	return func(r *Renderer) {
		r.emojifier = e
	}
}

// WithEmojiBaseURL points Twemoji image references at another CDN or mirror.
// The URL must end with "/"; each glyph resolves to {baseURL}{codepoints}.svg.
func WithEmojiBaseURL(baseURL string) RendererOption {
	return func(r *Renderer) {
		r.emojifier = emoji.NewTwemoji(baseURL)
	}
}

// WithFooterLogo sets the footer logo URL.
func WithFooterLogo(url string) RendererOption {
	return func(r *Renderer) {
		r.footerLogo = url
	}
}

// NewRenderer creates a Renderer embedding fonts.
// A nil fonts value renders empty font payloads, which is useful in tests.
func NewRenderer(fonts *Fonts, opts ...RendererOption) *Renderer {
	if fonts == nil {
		fonts = &Fonts{}
	}

	r := &Renderer{
		fonts:      fonts,
		sanitizer:  HTMLEscaper{},
		markup:     markup.NewGoldmarkRenderer(),
		emojifier:  emoji.NewTwemoji(emoji.DefaultBaseURL),
		footerLogo: DefaultFooterLogo,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Render returns the complete HTML document for req.
// The only error comes from the Markdown renderer and wraps ErrMarkupRender.
func (r *Renderer) Render(req RenderRequest) (string, error) {
	css := buildCSS(req.Theme, req.FontSize, r.fonts, r.sanitizer)
	images := buildImageRow(req, r.sanitizer)

	title, err := r.buildTitle(req)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf(documentTemplate, css, images, title, r.sanitizer.Sanitize(r.footerLogo)), nil
}

// buildTitle renders or escapes the title text, then substitutes emoji.
func (r *Renderer) buildTitle(req RenderRequest) (string, error) {
	var fragment string
	if req.Markdown {
		out, err := r.markup.RenderMarkup(req.Text)
		if err != nil {
			return "", fmt.Errorf("%w: %w", ErrMarkupRender, err)
		}
		fragment = out
	} else {
		fragment = r.sanitizer.Sanitize(req.Text)
	}
	return r.emojifier.Emojify(fragment), nil
}
