package ogimage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/phanu-phoo/og-image/internal/fileutil"
	"github.com/phanu-phoo/og-image/internal/process"
)

// screenshotter abstracts HTML to image conversion to allow different backends.
type screenshotter interface {
	Screenshot(ctx context.Context, htmlContent string, opts *screenshotOptions) ([]byte, error)
	Close() error
}

// pageRenderer captures an HTML file, enabling tests without a browser.
type pageRenderer interface {
	RenderFromFile(ctx context.Context, filePath string, opts *screenshotOptions) ([]byte, error)
	Close() error
}

// Compile-time interface checks
var (
	_ screenshotter = (*rodScreenshotter)(nil)
	_ pageRenderer  = (*rodRenderer)(nil)
)

// screenshotOptions holds the capture settings for one document.
type screenshotOptions struct {
	Viewport Viewport
	Format   proto.PageCaptureScreenshotFormat
	Quality  int // JPEG only
}

// newScreenshotOptions builds capture settings for a raster file type.
func newScreenshotOptions(ft FileType, vp Viewport, jpegQuality int) *screenshotOptions {
	opts := &screenshotOptions{
		Viewport: vp,
		Format:   proto.PageCaptureScreenshotFormatPng,
	}
	if ft == FileTypeJPEG {
		opts.Format = proto.PageCaptureScreenshotFormatJpeg
		opts.Quality = jpegQuality
	}
	return opts
}

// captureRequest converts options to the CDP screenshot call.
func (o *screenshotOptions) captureRequest() *proto.PageCaptureScreenshot {
	req := &proto.PageCaptureScreenshot{Format: o.Format}
	if o.Format == proto.PageCaptureScreenshotFormatJpeg && o.Quality > 0 {
		q := o.Quality
		req.Quality = &q
	}
	return req
}

// rodRenderer implements pageRenderer using go-rod.
// Rod downloads Chromium on first run if no browser is found.
type rodRenderer struct {
	mu       sync.Mutex
	browser  *rod.Browser
	launcher *launcher.Launcher
	timeout  time.Duration
}

// newRodRenderer creates a rodRenderer with the given timeout.
func newRodRenderer(timeout time.Duration) *rodRenderer {
	return &rodRenderer{timeout: timeout}
}

// ensureBrowser lazily launches and connects to the browser.
func (r *rodRenderer) ensureBrowser() (*rod.Browser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.browser != nil {
		return r.browser, nil
	}

	l := launcher.New()

	// Pre-installed browser (Docker/containerized environments)
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}

	// Chrome refuses to start sandboxed as root inside most containers.
	if os.Getenv("CI") == "true" || os.Getenv("ROD_NO_SANDBOX") == "1" || os.Getenv("ROD_BROWSER_BIN") != "" {
		l = l.NoSandbox(true)
	}

	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		killLauncher(l)
		return nil, fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	r.browser = browser
	r.launcher = l
	return browser, nil
}

// Close releases browser resources and kills the browser process tree.
func (r *rodRenderer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var err error
	if r.browser != nil {
		err = r.browser.Close()
		r.browser = nil
	}
	if r.launcher != nil {
		killLauncher(r.launcher)
		r.launcher = nil
	}
	return err
}

// killLauncher terminates the launched browser and its children. The
// launcher's own Kill runs even when the group kill fails.
func killLauncher(l *launcher.Launcher) {
	_ = process.KillTree(l.PID())
	l.Kill()
}

// RenderFromFile opens a local HTML file in headless Chrome and captures the
// viewport. Returns explicit errors instead of panicking when browser
// operations fail.
func (r *rodRenderer) RenderFromFile(ctx context.Context, filePath string, opts *screenshotOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if opts == nil {
		opts = newScreenshotOptions(FileTypePNG, Viewport{Width: DefaultViewportWidth, Height: DefaultViewportHeight}, DefaultJPEGQuality)
	}

	browser, err := r.ensureBrowser()
	if err != nil {
		return nil, err
	}

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	// Close through the original handle; the bound one dies with ctx.
	defer func(p *rod.Page) { _ = p.Close() }(page)

	timeout := r.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
		if timeout <= 0 {
			return nil, context.DeadlineExceeded
		}
	}
	page = page.Context(ctx).Timeout(timeout)

	if err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             opts.Viewport.Width,
		Height:            opts.Viewport.Height,
		DeviceScaleFactor: 1,
	}); err != nil {
		return nil, fmt.Errorf("%w: setting viewport: %v", ErrPageCreate, err)
	}

	if err := page.Navigate("file://" + filePath); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}
	// Load fires after fonts, avatars and emoji images have arrived.
	if err := page.WaitLoad(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	img, err := page.Screenshot(false, opts.captureRequest())
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrScreenshot, err)
	}

	return img, nil
}

// rodScreenshotter converts HTML to images using headless Chrome via go-rod.
type rodScreenshotter struct {
	renderer pageRenderer
}

// newRodScreenshotter creates a rodScreenshotter with production renderer.
func newRodScreenshotter(timeout time.Duration) *rodScreenshotter {
	return &rodScreenshotter{renderer: newRodRenderer(timeout)}
}

// Screenshot rasterizes htmlContent. The document goes through a temp file:
// inline fonts make it too large for a data URL navigation.
func (c *rodScreenshotter) Screenshot(ctx context.Context, htmlContent string, opts *screenshotOptions) ([]byte, error) {
	tmpPath, cleanup, err := fileutil.WriteTempFile(htmlContent, "html")
	if err != nil {
		return nil, err
	}
	defer cleanup()

	return c.renderer.RenderFromFile(ctx, tmpPath, opts)
}

// Close releases browser resources.
func (c *rodScreenshotter) Close() error {
	if c.renderer != nil {
		return c.renderer.Close()
	}
	return nil
}
