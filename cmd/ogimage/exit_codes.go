package main

import (
	"errors"
	"os"

	ogimage "github.com/phanu-phoo/og-image"
	"github.com/phanu-phoo/og-image/internal/config"
	"github.com/phanu-phoo/og-image/internal/logger"
	"github.com/phanu-phoo/og-image/internal/server"
)

// Exit codes for the og-image CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful render or clean shutdown
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied, listen failure
	ExitBrowser = 4 // Browser/Chrome errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, ogimage.ErrBrowserConnect) ||
		errors.Is(err, ogimage.ErrPageCreate) ||
		errors.Is(err, ogimage.ErrPageLoad) ||
		errors.Is(err, ogimage.ErrScreenshot) {
		return ExitBrowser
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrInvalidEnv) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrOutOfRange) ||
		errors.Is(err, config.ErrInputTooLarge) ||
		errors.Is(err, logger.ErrInvalidLevel) ||
		errors.Is(err, ogimage.ErrInvalidFileType) ||
		errors.Is(err, ogimage.ErrInvalidViewport) ||
		errors.Is(err, ogimage.ErrInvalidQuality) ||
		errors.Is(err, ogimage.ErrMarkupRender) ||
		errors.Is(err, server.ErrInvalidTheme) ||
		errors.Is(err, server.ErrTooManyImages) ||
		errors.Is(err, server.ErrInvalidImageURL) ||
		errors.Is(err, server.ErrFieldTooLong) {
		return ExitUsage
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, server.ErrListen) ||
		errors.Is(err, ogimage.ErrFontNotFound) ||
		errors.Is(err, ogimage.ErrInvalidFontPath) {
		return ExitIO
	}

	return ExitGeneral
}
