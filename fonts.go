package ogimage

import (
	"encoding/base64"
	"errors"

	"github.com/phanu-phoo/og-image/internal/assets"
)

// Font file names looked up by LoadFonts.
const (
	FontRegular = "Inter-Regular"
	FontBold    = "Inter-Bold"
	FontMono    = "Vera-Mono"
)

// Fonts holds the three font payloads as base64 text, ready for data URIs.
// A Fonts value is never modified after construction and may be shared.
type Fonts struct {
	Regular string
	Bold    string
	Mono    string
}

// NewFonts encodes raw woff2 payloads.
func NewFonts(regular, bold, mono []byte) *Fonts {
	return &Fonts{
		Regular: base64.StdEncoding.EncodeToString(regular),
		Bold:    base64.StdEncoding.EncodeToString(bold),
		Mono:    base64.StdEncoding.EncodeToString(mono),
	}
}

// LoadFonts reads Inter-Regular.woff2, Inter-Bold.woff2 and Vera-Mono.woff2
// from dir. Returns ErrInvalidFontPath if dir is not a readable directory and
// ErrFontNotFound if any of the files is missing.
func LoadFonts(dir string) (*Fonts, error) {
	loader, err := assets.NewFilesystemLoader(dir)
	if err != nil {
		return nil, convertAssetError(err)
	}
	return loadFontsFrom(loader)
}

// loadFontsFrom reads the three fonts through any FontLoader.
func loadFontsFrom(loader assets.FontLoader) (*Fonts, error) {
	payloads := make([][]byte, 0, 3)
	for _, name := range []string{FontRegular, FontBold, FontMono} {
		data, err := loader.LoadFont(name)
		if err != nil {
			return nil, convertAssetError(err)
		}
		payloads = append(payloads, data)
	}
	return NewFonts(payloads[0], payloads[1], payloads[2]), nil
}

// convertAssetError maps internal asset errors to public errors.
func convertAssetError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, assets.ErrFontNotFound), errors.Is(err, assets.ErrEmptyFont),
		errors.Is(err, assets.ErrInvalidAssetName):
		return wrapError(ErrFontNotFound, err)
	case errors.Is(err, assets.ErrInvalidBasePath), errors.Is(err, assets.ErrPathTraversal):
		return wrapError(ErrInvalidFontPath, err)
	default:
		return err
	}
}

// wrapError creates a new error that wraps the original with a public sentinel.
// The resulting error preserves the original message via Error() and supports
// errors.Is() matching against the public sentinel via Unwrap().
func wrapError(sentinel, original error) error {
	return &wrappedAssetError{sentinel: sentinel, original: original}
}

type wrappedAssetError struct {
	sentinel error
	original error
}

func (e *wrappedAssetError) Error() string {
	return e.original.Error()
}

// Unwrap returns the public sentinel for errors.Is() matching.
func (e *wrappedAssetError) Unwrap() error {
	return e.sentinel
}
