package ogimage

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"go.uber.org/zap"
)

// Viewport limits accepted by NewGenerator.
const (
	MaxViewportSide = 8192
	minJPEGQuality  = 1
	maxJPEGQuality  = 100
)

// Generator renders cards and rasterizes them in headless Chrome.
// A Generator owns one browser; use a GeneratorPool for parallel work.
type Generator struct {
	cfg           generatorConfig
	fonts         *Fonts
	logger        *zap.Logger
	rendererOpts  []RendererOption
	renderer      *Renderer
	screenshotter screenshotter
}

// NewGenerator creates a Generator. Fonts come from WithFonts, else from
// WithFontDir; with neither, cards fall back to the browser's sans-serif.
// The browser is launched on the first raster Generate call.
func NewGenerator(opts ...Option) (*Generator, error) {
	g := &Generator{
		cfg: generatorConfig{
			timeout:     defaultTimeout,
			viewport:    Viewport{Width: DefaultViewportWidth, Height: DefaultViewportHeight},
			jpegQuality: DefaultJPEGQuality,
		},
		logger: zap.NewNop(),
	}

	for _, opt := range opts {
		opt(g)
	}

	if err := g.cfg.validate(); err != nil {
		return nil, err
	}

	if g.fonts == nil {
		if g.cfg.fontDir != "" {
			fonts, err := LoadFonts(g.cfg.fontDir)
			if err != nil {
				return nil, err
			}
			g.fonts = fonts
		} else {
			g.logger.Warn("no font directory configured, cards use fallback fonts")
			g.fonts = &Fonts{}
		}
	}

	g.renderer = NewRenderer(g.fonts, g.rendererOpts...)

	// Injected by tests
	if g.screenshotter == nil {
		g.screenshotter = newRodScreenshotter(g.cfg.timeout)
	}

	return g, nil
}

// validate checks screenshot settings.
func (c *generatorConfig) validate() error {
	vp := c.viewport
	if vp.Width <= 0 || vp.Height <= 0 || vp.Width > MaxViewportSide || vp.Height > MaxViewportSide {
		return fmt.Errorf("%w: %dx%d (each side must be 1-%d)", ErrInvalidViewport, vp.Width, vp.Height, MaxViewportSide)
	}
	if c.jpegQuality < minJPEGQuality || c.jpegQuality > maxJPEGQuality {
		return fmt.Errorf("%w: %d (must be %d-%d)", ErrInvalidQuality, c.jpegQuality, minJPEGQuality, maxJPEGQuality)
	}
	return nil
}

// Renderer returns the document renderer used by the generator.
func (g *Generator) Renderer() *Renderer {
	return g.renderer
}

// Generate renders input and, unless FileType is html, rasterizes it.
// The context is used for cancellation and timeout.
func (g *Generator) Generate(ctx context.Context, input Input) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			g.logger.Error("panic during generation",
				zap.Any("panic", r),
				zap.ByteString("stack", debug.Stack()),
			)
			result = nil
			err = fmt.Errorf("%w: %v", ErrGenerate, r)
		}
	}()

	fileType, err := g.validateInput(input)
	if err != nil {
		return nil, err
	}

	start := time.Now()

	doc, err := g.renderer.Render(input.Request)
	if err != nil {
		return nil, fmt.Errorf("rendering document: %w", err)
	}

	result = &Result{HTML: []byte(doc), ContentType: fileType.ContentType()}
	if fileType == FileTypeHTML {
		g.logger.Debug("rendered document",
			zap.Int("bytes", len(doc)),
			zap.Duration("elapsed", time.Since(start)),
		)
		return result, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	opts := newScreenshotOptions(fileType, g.cfg.viewport, g.cfg.jpegQuality)
	img, err := g.screenshotter.Screenshot(ctx, doc, opts)
	if err != nil {
		return nil, fmt.Errorf("capturing screenshot: %w", err)
	}
	result.Image = img

	g.logger.Debug("generated image",
		zap.String("type", string(fileType)),
		zap.Int("bytes", len(img)),
		zap.Duration("elapsed", time.Since(start)),
	)

	return result, nil
}

// Close releases resources (headless Chrome browser).
func (g *Generator) Close() error {
	if g.screenshotter != nil {
		return g.screenshotter.Close()
	}
	return nil
}

// validateInput normalizes the file type.
func (g *Generator) validateInput(input Input) (FileType, error) {
	if err := input.FileType.Validate(); err != nil {
		return "", err
	}
	return ParseFileType(string(input.FileType))
}
