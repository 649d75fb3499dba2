package ogimage

// Notes:
// - FileType: extension parsing, validation, content types
// - Options: WithTimeout panics on non-positive durations, other options
//   are checked through the generator configuration they set

import (
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
)

// ---------------------------------------------------------------------------
// TestParseFileType - Extension mapping
// ---------------------------------------------------------------------------

func TestParseFileType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		ext     string
		want    FileType
		wantErr error
	}{
		{"", FileTypePNG, nil},
		{"png", FileTypePNG, nil},
		{".png", FileTypePNG, nil},
		{"PNG", FileTypePNG, nil},
		{"jpeg", FileTypeJPEG, nil},
		{"jpg", FileTypeJPEG, nil},
		{".JPG", FileTypeJPEG, nil},
		{"html", FileTypeHTML, nil},
		{"htm", FileTypeHTML, nil},
		{"gif", "", ErrInvalidFileType},
		{"webp", "", ErrInvalidFileType},
		{"png/../x", "", ErrInvalidFileType},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.ext, func(t *testing.T) {
			t.Parallel()

			got, err := ParseFileType(tt.ext)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ParseFileType(%q) error = %v, want %v", tt.ext, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseFileType(%q) = %q, want %q", tt.ext, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestFileType_Validate - Accepted values
// ---------------------------------------------------------------------------

func TestFileType_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		ft      FileType
		wantErr bool
	}{
		{"", false},
		{FileTypePNG, false},
		{FileTypeJPEG, false},
		{FileTypeHTML, false},
		{"JPEG", false},
		{"jpg", true},
		{"pdf", true},
	}

	for _, tt := range tests {
		err := tt.ft.Validate()
		if (err != nil) != tt.wantErr {
			t.Errorf("FileType(%q).Validate() error = %v, wantErr %v", tt.ft, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, ErrInvalidFileType) {
			t.Errorf("FileType(%q).Validate() error = %v, want ErrInvalidFileType", tt.ft, err)
		}
	}
}

// ---------------------------------------------------------------------------
// TestFileType_ContentType - MIME types
// ---------------------------------------------------------------------------

func TestFileType_ContentType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		ft   FileType
		want string
	}{
		{FileTypePNG, "image/png"},
		{"", "image/png"},
		{FileTypeJPEG, "image/jpeg"},
		{FileTypeHTML, "text/html; charset=utf-8"},
	}

	for _, tt := range tests {
		if got := tt.ft.ContentType(); got != tt.want {
			t.Errorf("FileType(%q).ContentType() = %q, want %q", tt.ft, got, tt.want)
		}
	}
}

// ---------------------------------------------------------------------------
// TestWithTimeoutPanic - Programmer error
// ---------------------------------------------------------------------------

func TestWithTimeoutPanic(t *testing.T) {
	t.Parallel()

	for _, d := range []time.Duration{0, -1 * time.Second} {
		d := d
		t.Run(d.String(), func(t *testing.T) {
			t.Parallel()

			defer func() {
				if r := recover(); r == nil {
					t.Errorf("expected panic for duration %v", d)
				}
			}()
			WithTimeout(d)
		})
	}
}

// ---------------------------------------------------------------------------
// TestOptions - Generator configuration
// ---------------------------------------------------------------------------

func TestOptions(t *testing.T) {
	t.Parallel()

	fonts := &Fonts{Regular: "r"}
	logger := zap.NewExample()

	g := &Generator{logger: zap.NewNop()}
	for _, opt := range []Option{
		WithTimeout(5 * time.Second),
		WithFonts(fonts),
		WithFontDir("/srv/fonts"),
		WithViewport(1200, 630),
		WithJPEGQuality(90),
		WithLogger(logger),
		WithLogger(nil),
		WithRendererOptions(WithFooterLogo("a")),
		WithRendererOptions(WithFooterLogo("b")),
	} {
		opt(g)
	}

	if g.cfg.timeout != 5*time.Second {
		t.Errorf("timeout = %v, want 5s", g.cfg.timeout)
	}
	if g.fonts != fonts {
		t.Error("WithFonts did not set fonts")
	}
	if g.cfg.fontDir != "/srv/fonts" {
		t.Errorf("fontDir = %q, want /srv/fonts", g.cfg.fontDir)
	}
	if g.cfg.viewport != (Viewport{Width: 1200, Height: 630}) {
		t.Errorf("viewport = %+v, want 1200x630", g.cfg.viewport)
	}
	if g.cfg.jpegQuality != 90 {
		t.Errorf("jpegQuality = %d, want 90", g.cfg.jpegQuality)
	}
	if g.logger != logger {
		t.Error("WithLogger(nil) should keep the previous logger")
	}
	if len(g.rendererOpts) != 2 {
		t.Errorf("rendererOpts = %d, want 2 (options accumulate)", len(g.rendererOpts))
	}
}
