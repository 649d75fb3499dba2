package ogimage

import (
	"fmt"
	"strings"
)

// dividerHTML separates two consecutive images in the row.
const dividerHTML = `<div class="plus">X</div>`

// imageAlt is the alt text of every image in the card.
const imageAlt = "Generated Image"

// buildImage generates a circular, bordered image element.
// src, width and height are untrusted and all go through sanitize.
// An empty width or height falls back to DefaultImageDimension.
func buildImage(src, width, height string, sanitize Sanitizer) string {
	if width == "" {
		width = DefaultImageDimension
	}
	if height == "" {
		height = DefaultImageDimension
	}
	return fmt.Sprintf(`<img class="logo" alt="%s" src="%s" width="%s" height="%s" />`,
		imageAlt,
		sanitize.Sanitize(src),
		sanitize.Sanitize(width),
		sanitize.Sanitize(height),
	)
}

// buildDivider returns the divider placed before the image at index i.
// The first image has none.
func buildDivider(i int) string {
	if i == 0 {
		return ""
	}
	return dividerHTML
}

// buildImageRow lays out every image of req, in order, with dividers
// between consecutive images.
func buildImageRow(req RenderRequest, sanitize Sanitizer) string {
	var buf strings.Builder
	for i, src := range req.Images {
		buf.WriteString(buildDivider(i))
		buf.WriteString(buildImage(src, dimensionAt(req.Widths, i), dimensionAt(req.Heights, i), sanitize))
	}
	return buf.String()
}
