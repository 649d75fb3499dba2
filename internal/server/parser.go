package server

import (
	"fmt"
	"net/url"
	"strings"

	ogimage "github.com/phanu-phoo/og-image"
)

// Request limits.
const (
	MaxImages          = 8
	MaxTextLength      = 1000
	MaxImageURLLength  = 2048 // Browser limit
	MaxFontSizeLength  = 20   // "96px", "3.5rem"
	MaxDimensionLength = 20
)

// DefaultFontSize applies when the fontSize query parameter is absent.
const DefaultFontSize = "96px"

// parseRequest builds generator input from the final path segment and the
// query string. name is already URL-decoded; its last dot separates a known
// extension, so "v1.2 Released.png" keeps the inner dot in the title. When
// the suffix is not a known extension ("Version 1.5", "Mr. Smith") the whole
// name is the title and the card is a png. Unknown themes fall back to light.
func parseRequest(name string, query url.Values, defaultFontSize string) (ogimage.Input, error) {
	text, fileType := splitExtension(name)

	theme := query.Get("theme")
	if theme != ogimage.ThemeDark {
		theme = ogimage.ThemeLight
	}
	fontSize := query.Get("fontSize")
	if fontSize == "" {
		fontSize = defaultFontSize
	}

	req := ogimage.RenderRequest{
		Text:     text,
		Theme:    theme,
		Markdown: isTrue(query.Get("md")),
		FontSize: fontSize,
		Images:   listParam(query, "images"),
		Widths:   listParam(query, "widths"),
		Heights:  listParam(query, "heights"),
	}
	if err := ValidateRequest(req); err != nil {
		return ogimage.Input{}, err
	}

	return ogimage.Input{Request: req, FileType: fileType}, nil
}

// splitExtension separates a known file extension from name.
func splitExtension(name string) (string, ogimage.FileType) {
	i := strings.LastIndexByte(name, '.')
	if i < 0 {
		return name, ogimage.FileTypePNG
	}
	fileType, err := ogimage.ParseFileType(name[i+1:])
	if err != nil {
		return name, ogimage.FileTypePNG
	}
	return name[:i], fileType
}

// ValidateRequest applies the limits enforced on untrusted requests: theme
// is light or dark, at most MaxImages images (and dimensions), absolute
// http(s) image URLs, and bounded field lengths.
func ValidateRequest(req ogimage.RenderRequest) error {
	if err := checkLength("text", req.Text, MaxTextLength); err != nil {
		return err
	}

	switch req.Theme {
	case ogimage.ThemeLight, ogimage.ThemeDark:
	default:
		return fmt.Errorf("%w: %q (must be light or dark)", ErrInvalidTheme, req.Theme)
	}

	if err := checkLength("fontSize", req.FontSize, MaxFontSizeLength); err != nil {
		return err
	}

	if len(req.Images) > MaxImages {
		return fmt.Errorf("%w: %d (max %d)", ErrTooManyImages, len(req.Images), MaxImages)
	}
	for i, img := range req.Images {
		if err := validateImageURL(img); err != nil {
			return fmt.Errorf("images[%d]: %w", i, err)
		}
	}

	if err := validateDimensions("widths", req.Widths); err != nil {
		return err
	}
	return validateDimensions("heights", req.Heights)
}

// listParam returns every value of key, accepting both the plain and the
// bracketed form ("images=a&images[]=b").
func listParam(query url.Values, key string) []string {
	values := append([]string{}, query[key]...)
	return append(values, query[key+"[]"]...)
}

// validateDimensions checks a per-image dimension list. Entries past
// MaxImages could never pair with an image and are rejected.
func validateDimensions(key string, dims []string) error {
	if len(dims) > MaxImages {
		return fmt.Errorf("%w: %d %s (max %d)", ErrTooManyImages, len(dims), key, MaxImages)
	}
	for i, d := range dims {
		if err := checkLength(fmt.Sprintf("%s[%d]", key, i), d, MaxDimensionLength); err != nil {
			return err
		}
	}
	return nil
}

// validateImageURL accepts absolute http and https URLs only.
func validateImageURL(raw string) error {
	if err := checkLength("image", raw, MaxImageURLLength); err != nil {
		return err
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidImageURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %q (must be an absolute http or https URL)", ErrInvalidImageURL, raw)
	}
	return nil
}

func checkLength(field, value string, max int) error {
	if len(value) > max {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, field, len(value), max)
	}
	return nil
}

func isTrue(v string) bool {
	return v == "1" || v == "true"
}
