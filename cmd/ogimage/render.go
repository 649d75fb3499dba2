package main

import (
	"context"
	"fmt"
	"path/filepath"

	flag "github.com/spf13/pflag"
	"go.uber.org/zap"

	ogimage "github.com/phanu-phoo/og-image"
	"github.com/phanu-phoo/og-image/internal/fileutil"
	"github.com/phanu-phoo/og-image/internal/server"
)

// defaultOutputName is the output base name when --output is not given.
const defaultOutputName = "og-image"

// renderFlags holds all flags for the render command.
type renderFlags struct {
	common   commonFlags
	output   string
	format   string
	theme    string
	markdown bool
	fontSize string
	images   []string
	widths   []string
	heights  []string
	width    int
	height   int
	quality  int
}

// parseRenderFlags parses render command flags and returns positional args.
func parseRenderFlags(args []string, deps *Dependencies) (*renderFlags, *flag.FlagSet, []string, error) {
	fs := newFlagSet("render", deps.Stderr, printRenderUsage)
	f := &renderFlags{}

	fs.StringVarP(&f.output, "output", "o", "", `output file ("-" = stdout)`)
	fs.StringVarP(&f.format, "format", "f", "", "output format: png, jpeg, html (default from --output extension)")
	fs.StringVar(&f.theme, "theme", ogimage.ThemeLight, "theme: light, dark")
	fs.BoolVar(&f.markdown, "md", false, "parse the text as Markdown")
	fs.StringVar(&f.fontSize, "font-size", "", "title font size as a CSS length (default from config)")
	fs.StringArrayVarP(&f.images, "image", "i", nil, "image URL (repeatable, max 8)")
	fs.StringArrayVar(&f.widths, "image-width", nil, "image width, index-aligned with --image (repeatable)")
	fs.StringArrayVar(&f.heights, "image-height", nil, "image height, index-aligned with --image (repeatable)")
	fs.IntVar(&f.width, "width", 0, "viewport width in pixels")
	fs.IntVar(&f.height, "height", 0, "viewport height in pixels")
	fs.IntVar(&f.quality, "quality", 0, "JPEG quality (1-100)")
	addCommonFlags(fs, &f.common)

	if err := parseFlagSet(fs, args); err != nil {
		return nil, nil, nil, err
	}
	return f, fs, fs.Args(), nil
}

// runRender renders one card and writes it to a file or stdout.
func runRender(ctx context.Context, args []string, deps *Dependencies) error {
	f, fs, positional, err := parseRenderFlags(args, deps)
	if err != nil {
		return err
	}
	if len(positional) != 1 {
		return fmt.Errorf("%w: render takes exactly one <text> argument, got %d", ErrUsage, len(positional))
	}

	cfg, err := loadSettings(fs, &f.common, deps)
	if err != nil {
		return err
	}
	if fs.Changed("width") {
		cfg.Browser.Width = f.width
	}
	if fs.Changed("height") {
		cfg.Browser.Height = f.height
	}
	if fs.Changed("quality") {
		cfg.Browser.JPEGQuality = f.quality
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	fileType, output, err := resolveOutput(f.output, f.format)
	if err != nil {
		return err
	}

	fontSize := f.fontSize
	if fontSize == "" {
		fontSize = cfg.Render.DefaultFontSize
	}
	req := ogimage.RenderRequest{
		Text:     positional[0],
		Theme:    f.theme,
		Markdown: f.markdown,
		FontSize: fontSize,
		Images:   f.images,
		Widths:   f.widths,
		Heights:  f.heights,
	}
	if err := server.ValidateRequest(req); err != nil {
		return err
	}

	log, err := newLogger(cfg, deps)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	gen, err := ogimage.NewGenerator(generatorOptions(cfg, log)...)
	if err != nil {
		return err
	}
	defer func() {
		if err := gen.Close(); err != nil {
			log.Warn("closing browser", zap.Error(err))
		}
	}()

	res, err := gen.Generate(ctx, ogimage.Input{Request: req, FileType: fileType})
	if err != nil {
		return err
	}

	data := res.Image
	if fileType == ogimage.FileTypeHTML {
		data = res.HTML
	}

	if output == "-" {
		if _, err := deps.Stdout.Write(data); err != nil {
			return fmt.Errorf("%w: stdout: %v", ErrWriteOutput, err)
		}
		return nil
	}

	if err := fileutil.WriteFileAtomic(output, data); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrWriteOutput, output, err)
	}
	log.Info("card written",
		zap.String("path", output),
		zap.String("type", string(fileType)),
		zap.Int("bytes", len(data)),
	)
	return nil
}

// resolveOutput picks the file type and output path.
// Priority for the type: --format, then the --output extension, then png.
func resolveOutput(output, format string) (ogimage.FileType, string, error) {
	fileType := ogimage.FileTypePNG
	var err error

	switch {
	case format != "":
		fileType, err = ogimage.ParseFileType(format)
	case output != "" && output != "-" && filepath.Ext(output) != "":
		fileType, err = ogimage.ParseFileType(filepath.Ext(output))
	}
	if err != nil {
		return "", "", err
	}

	if output == "" {
		output = defaultOutputName + "." + string(fileType)
	}
	return fileType, output, nil
}
