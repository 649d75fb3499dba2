package ogimage

import "errors"

// Sentinel errors for library operations.
var (
	ErrMarkupRender   = errors.New("markup rendering failed")
	ErrScreenshot     = errors.New("screenshot failed")
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")
	ErrGenerate       = errors.New("generation failed")

	// Input validation errors.
	ErrInvalidFileType = errors.New("invalid file type")
	ErrInvalidViewport = errors.New("invalid viewport")
	ErrInvalidQuality  = errors.New("invalid JPEG quality")

	// Font loading errors.
	ErrFontNotFound    = errors.New("font not found")
	ErrInvalidFontPath = errors.New("invalid font path")
)
