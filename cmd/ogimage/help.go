package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: og-image <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  render     Render one card to a file")
	fmt.Fprintln(w, "  serve      Serve cards over HTTP")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'og-image help <command>' for details on a specific command.")
}

// printCommonUsage prints the flags shared by render and serve.
func printCommonUsage(w io.Writer) {
	fmt.Fprintln(w, "Common:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "      --font-dir <path>     Directory with Inter-Regular, Inter-Bold, Vera-Mono .woff2")
	fmt.Fprintln(w, "  -t, --timeout <d>         Screenshot timeout (e.g., 30s)")
	fmt.Fprintln(w, "      --log-level <s>       debug, info, warn, error")
	fmt.Fprintln(w, "  -v, --verbose             Debug logging")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  OGIMAGE_CONFIG, OGIMAGE_ADDR, OGIMAGE_FONT_DIR, OGIMAGE_TIMEOUT,")
	fmt.Fprintln(w, "  OGIMAGE_WORKERS, OGIMAGE_LOG_LEVEL")
	fmt.Fprintln(w, "  Precedence: flags > environment > config file > defaults")
}

// printRenderUsage prints usage for the render command.
func printRenderUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: og-image render <text> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render one card.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output file, \"-\" for stdout (default og-image.<format>)")
	fmt.Fprintln(w, "  -f, --format <s>          png, jpeg, html (default from --output extension)")
	fmt.Fprintln(w, "      --width <n>           Viewport width in pixels")
	fmt.Fprintln(w, "      --height <n>          Viewport height in pixels")
	fmt.Fprintln(w, "      --quality <n>         JPEG quality (1-100)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Card:")
	fmt.Fprintln(w, "      --theme <s>           light, dark")
	fmt.Fprintln(w, "      --md                  Parse the text as Markdown")
	fmt.Fprintln(w, "      --font-size <s>       Title font size (default 96px)")
	fmt.Fprintln(w, "  -i, --image <url>         Image URL, repeatable (max 8)")
	fmt.Fprintln(w, "      --image-width <s>     Width for the image at the same position")
	fmt.Fprintln(w, "      --image-height <s>    Height for the image at the same position")
	fmt.Fprintln(w)
	printCommonUsage(w)
}

// printServeUsage prints usage for the serve command.
func printServeUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: og-image serve [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Serve cards at GET /{text}.{png|jpeg|html}?theme=&md=&fontSize=&images=&widths=&heights=")
	fmt.Fprintln(w, "plus /healthz and /metrics. Stops gracefully on SIGINT or SIGTERM.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Server:")
	fmt.Fprintln(w, "  -a, --addr <addr>         Listen address (default :3000)")
	fmt.Fprintln(w, "  -w, --workers <n>         Browser instances (0 = auto)")
	fmt.Fprintln(w)
	printCommonUsage(w)
}

// runHelp prints help for a specific command.
func runHelp(args []string, deps *Dependencies) int {
	if len(args) == 0 {
		printUsage(deps.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case "render":
		printRenderUsage(deps.Stdout)
	case "serve":
		printServeUsage(deps.Stdout)
	case "version":
		fmt.Fprintln(deps.Stdout, "Usage: og-image version")
		fmt.Fprintln(deps.Stdout)
		fmt.Fprintln(deps.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(deps.Stdout, "Usage: og-image help [command]")
		fmt.Fprintln(deps.Stdout)
		fmt.Fprintln(deps.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(deps.Stderr, "Unknown command: %s\n", args[0])
		printUsage(deps.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}
