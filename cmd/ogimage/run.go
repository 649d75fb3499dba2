package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	flag "github.com/spf13/pflag"

	ogimage "github.com/phanu-phoo/og-image"
	"github.com/phanu-phoo/og-image/internal/config"
	"github.com/phanu-phoo/og-image/internal/hints"
)

// Sentinel errors for CLI operations.
var (
	ErrUsage       = errors.New("invalid usage")
	ErrWriteOutput = errors.New("failed to write output file")
	ErrInvalidEnv  = errors.New("invalid environment variable")
)

// runMain dispatches to a command and returns the process exit code.
func runMain(ctx context.Context, args []string, deps *Dependencies) int {
	if len(args) == 0 {
		printUsage(deps.Stderr)
		return ExitUsage
	}

	var err error
	switch args[0] {
	case "render":
		err = runRender(ctx, args[1:], deps)
	case "serve":
		err = runServe(ctx, args[1:], deps)
	case "version", "--version":
		fmt.Fprintf(deps.Stdout, "og-image %s\n", Version)
		return ExitSuccess
	case "help", "--help", "-h":
		return runHelp(args[1:], deps)
	default:
		fmt.Fprintf(deps.Stderr, "Unknown command: %s\n", args[0])
		printUsage(deps.Stderr)
		return ExitUsage
	}

	if errors.Is(err, flag.ErrHelp) {
		return ExitSuccess
	}
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v%s\n", err, hintFor(err))
	}
	return exitCodeFor(err)
}

// hintFor returns an actionable hint for err, or "".
func hintFor(err error) string {
	switch {
	case errors.Is(err, ogimage.ErrBrowserConnect):
		return hints.ForBrowserConnect()
	case errors.Is(err, context.DeadlineExceeded):
		return hints.ForTimeout()
	case errors.Is(err, config.ErrConfigNotFound):
		return hints.ForConfigNotFound(triedPaths(err))
	case errors.Is(err, ogimage.ErrFontNotFound), errors.Is(err, ogimage.ErrInvalidFontPath):
		return hints.ForFontDir([]string{
			ogimage.FontRegular + ".woff2",
			ogimage.FontBold + ".woff2",
			ogimage.FontMono + ".woff2",
		})
	case errors.Is(err, ErrWriteOutput):
		return hints.ForOutputDirectory()
	}
	return ""
}

// triedPaths extracts the searched locations from a config-not-found error.
func triedPaths(err error) []string {
	_, list, ok := strings.Cut(err.Error(), "tried ")
	if !ok {
		return nil
	}
	return strings.Split(list, ", ")
}
