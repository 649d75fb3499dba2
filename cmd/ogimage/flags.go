package main

import (
	"errors"
	"fmt"
	"io"
	"time"

	flag "github.com/spf13/pflag"
	"go.uber.org/zap"

	ogimage "github.com/phanu-phoo/og-image"
	"github.com/phanu-phoo/og-image/internal/config"
	"github.com/phanu-phoo/og-image/internal/logger"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config   string
	fontDir  string
	timeout  time.Duration
	logLevel string
	verbose  bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.StringVar(&f.fontDir, "font-dir", "", "directory holding the .woff2 font faces")
	fs.DurationVarP(&f.timeout, "timeout", "t", 0, "screenshot timeout (e.g., 30s, 2m)")
	fs.StringVar(&f.logLevel, "log-level", "", "log level: debug, info, warn, error")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "debug logging (same as --log-level debug)")
}

// newFlagSet returns a FlagSet that reports to w and returns errors
// instead of exiting.
func newFlagSet(name string, w io.Writer, usage func(io.Writer)) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(w)
	fs.Usage = func() { usage(w) }
	return fs
}

// parseFlagSet parses args, tagging parse failures as usage errors.
func parseFlagSet(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	return nil
}

// loadSettings layers the configuration: defaults, then the config file,
// then OGIMAGE_* variables, then explicitly set common flags.
// The result is not validated; callers apply their own flags first.
func loadSettings(fs *flag.FlagSet, f *commonFlags, deps *Dependencies) (*config.Config, error) {
	warnUnknownEnvVars(deps.Stderr, deps.Environ())

	env, err := loadEnvConfig(deps.Getenv)
	if err != nil {
		return nil, err
	}

	cfg := config.DefaultConfig()
	name := f.config
	if name == "" {
		name = env.ConfigPath
	}
	if name != "" {
		cfg, err = config.LoadConfig(name)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
	}

	applyEnvConfig(env, cfg)

	if fs.Changed("font-dir") {
		cfg.Fonts.Dir = f.fontDir
	}
	if fs.Changed("timeout") {
		cfg.Browser.Timeout = f.timeout
	}
	if fs.Changed("log-level") {
		cfg.Log.Level = f.logLevel
	}
	if f.verbose {
		cfg.Log.Level = "debug"
	}

	return cfg, nil
}

// newLogger builds the command logger. Logs go to stderr so render can
// stream the card to stdout.
func newLogger(cfg *config.Config, deps *Dependencies) (*zap.Logger, error) {
	return logger.New(cfg.Log, deps.Stderr)
}

// generatorOptions maps the configuration to generator options.
// Zero values keep the library defaults.
func generatorOptions(cfg *config.Config, log *zap.Logger) []ogimage.Option {
	opts := []ogimage.Option{ogimage.WithLogger(log)}

	if cfg.Browser.Timeout > 0 {
		opts = append(opts, ogimage.WithTimeout(cfg.Browser.Timeout))
	}
	if cfg.Fonts.Dir != "" {
		opts = append(opts, ogimage.WithFontDir(cfg.Fonts.Dir))
	}
	if vp, ok := viewportFor(cfg.Browser); ok {
		opts = append(opts, ogimage.WithViewport(vp.Width, vp.Height))
	}
	if cfg.Browser.JPEGQuality > 0 {
		opts = append(opts, ogimage.WithJPEGQuality(cfg.Browser.JPEGQuality))
	}

	var rendererOpts []ogimage.RendererOption
	if cfg.Render.FooterLogo != "" {
		rendererOpts = append(rendererOpts, ogimage.WithFooterLogo(cfg.Render.FooterLogo))
	}
	if cfg.Render.EmojiBaseURL != "" {
		rendererOpts = append(rendererOpts, ogimage.WithEmojiBaseURL(cfg.Render.EmojiBaseURL))
	}
	if len(rendererOpts) > 0 {
		opts = append(opts, ogimage.WithRendererOptions(rendererOpts...))
	}

	return opts
}

// viewportFor returns the configured viewport, filling an unset side with
// its default. ok is false when neither side is set.
func viewportFor(b config.BrowserConfig) (vp ogimage.Viewport, ok bool) {
	if b.Width <= 0 && b.Height <= 0 {
		return ogimage.Viewport{}, false
	}
	vp = ogimage.Viewport{Width: b.Width, Height: b.Height}
	if vp.Width <= 0 {
		vp.Width = ogimage.DefaultViewportWidth
	}
	if vp.Height <= 0 {
		vp.Height = ogimage.DefaultViewportHeight
	}
	return vp, true
}
