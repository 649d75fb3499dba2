// Package hints provides actionable error hints for common CLI failures.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/phanu-phoo/og-image/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv file which Docker creates automatically.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ForBrowserConnect returns hints for browser connection errors.
// Detects CI/Docker environment and suggests relevant environment variables.
func ForBrowserConnect() string {
	var hints []string

	inCI := os.Getenv("CI") != "" ||
		os.Getenv("GITHUB_ACTIONS") != "" ||
		os.Getenv("GITLAB_CI") != "" ||
		os.Getenv("JENKINS_URL") != ""

	if (inCI || IsInContainer()) && os.Getenv("ROD_NO_SANDBOX") != "1" {
		hints = append(hints, "set ROD_NO_SANDBOX=1 for Docker/CI")
	}

	if os.Getenv("ROD_BROWSER_BIN") == "" {
		hints = append(hints, "set ROD_BROWSER_BIN to use an installed Chrome")
	}

	return formatHints(hints)
}

// ForTimeout returns a hint about raising the render timeout.
func ForTimeout() string {
	return format("remote images can be slow; raise --timeout or OGIMAGE_TIMEOUT")
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config and, when one was searched, the per-user config path.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if filepath.Base(filepath.Dir(p)) == "og-image" {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForFontDir returns hints for font directory errors.
func ForFontDir(fontFiles []string) string {
	if len(fontFiles) == 0 {
		return format("check --font-dir points to a readable directory")
	}
	return format("--font-dir must contain " + strings.Join(fontFiles, ", "))
}

// ForOutputDirectory returns hints for output file write errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForAddrInUse returns hints for listen failures.
func ForAddrInUse(addr string) string {
	return format("another process is using " + addr + "; pick one with --addr")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
