package ogimage

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Theme constants. Any value other than ThemeDark renders the light palette.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// DefaultImageDimension is used for any image width or height not supplied.
const DefaultImageDimension = "400"

// FileType selects the output format of a generation.
type FileType string

// Supported output formats.
const (
	FileTypePNG  FileType = "png"
	FileTypeJPEG FileType = "jpeg"
	FileTypeHTML FileType = "html"
)

// ContentType returns the MIME type for the file type.
func (f FileType) ContentType() string {
	switch f {
	case FileTypeJPEG:
		return "image/jpeg"
	case FileTypeHTML:
		return "text/html; charset=utf-8"
	default:
		return "image/png"
	}
}

// Validate checks that f is a supported file type.
// The empty value is accepted and means png.
func (f FileType) Validate() error {
	switch FileType(strings.ToLower(string(f))) {
	case "", FileTypePNG, FileTypeJPEG, FileTypeHTML:
		return nil
	}
	return fmt.Errorf("%w: %q (must be png, jpeg, or html)", ErrInvalidFileType, string(f))
}

// ParseFileType maps a file extension (with or without the leading dot) to a FileType.
func ParseFileType(ext string) (FileType, error) {
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "", "png":
		return FileTypePNG, nil
	case "jpeg", "jpg":
		return FileTypeJPEG, nil
	case "html", "htm":
		return FileTypeHTML, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidFileType, ext)
}

// RenderRequest describes one card. All string fields are untrusted.
type RenderRequest struct {
	Text     string   // Title, plain text or Markdown
	Theme    string   // "light" or "dark"
	Markdown bool     // Parse Text as Markdown
	FontSize string   // CSS length, e.g. "96px"
	Images   []string // Image URLs, laid out left to right
	Widths   []string // Per-image widths, index-aligned with Images
	Heights  []string // Per-image heights, index-aligned with Images
}

// dimensionAt returns dims[i], or DefaultImageDimension when absent.
func dimensionAt(dims []string, i int) string {
	if i < len(dims) && dims[i] != "" {
		return dims[i]
	}
	return DefaultImageDimension
}

// Input contains generation parameters.
type Input struct {
	Request  RenderRequest
	FileType FileType // png (default), jpeg, or html
}

// Result holds the generated document and, unless FileType is html, the image.
type Result struct {
	HTML        []byte
	Image       []byte
	ContentType string
}

// Option configures a Generator.
type Option func(*Generator)

// generatorConfig holds internal configuration for Generator.
type generatorConfig struct {
	timeout     time.Duration
	fontDir     string
	viewport    Viewport
	jpegQuality int
}

// Viewport is the browser window size used for screenshots, in CSS pixels.
type Viewport struct {
	Width  int
	Height int
}

// Default screenshot settings.
const (
	defaultTimeout       = 30 * time.Second
	DefaultViewportWidth = 2048
	// DefaultViewportHeight matches the 1.75:1 ratio of common preview cards.
	DefaultViewportHeight = 1170
	DefaultJPEGQuality    = 80
)

// WithTimeout sets the screenshot timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("ogimage: WithTimeout duration must be positive")
	}
	return func(g *Generator) {
		g.cfg.timeout = d
	}
}

// WithFonts uses already loaded fonts.
func WithFonts(f *Fonts) Option {
	return func(g *Generator) {
		g.fonts = f
	}
}

// WithFontDir loads the fonts from dir when the generator is created.
// Ignored if WithFonts is also given.
func WithFontDir(dir string) Option {
	return func(g *Generator) {
		g.cfg.fontDir = dir
	}
}

// WithViewport sets the screenshot size.
func WithViewport(width, height int) Option {
	return func(g *Generator) {
		g.cfg.viewport = Viewport{Width: width, Height: height}
	}
}

// WithJPEGQuality sets the JPEG compression quality (1-100).
func WithJPEGQuality(q int) Option {
	return func(g *Generator) {
		g.cfg.jpegQuality = q
	}
}

// WithLogger sets the logger used for generation events.
func WithLogger(l *zap.Logger) Option {
	return func(g *Generator) {
		if l != nil {
			g.logger = l
		}
	}
}

// WithRendererOptions forwards options to the generator's Renderer.
func WithRendererOptions(opts ...RendererOption) Option {
	return func(g *Generator) {
		g.rendererOpts = append(g.rendererOpts, opts...)
	}
}
