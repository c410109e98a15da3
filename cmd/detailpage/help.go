package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: detailpage <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  compile    Compile page documents to HTML (default)")
	fmt.Fprintln(w, "  inspect    Show how a document's blocks will be read")
	fmt.Fprintln(w, "  fonts      List supported fonts")
	fmt.Fprintln(w, "  doctor     Check the environment for PNG export")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'detailpage help <command>' for details on a specific command.")
}

// printCompileUsage prints usage for the compile command.
func printCompileUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: detailpage compile <input> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Compile JSON or YAML page documents to self-contained HTML.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    Document file or directory (optional if config has input.defaultDir)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output file or directory")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w, "      --font <s>            Font selector (see 'detailpage fonts')")
	fmt.Fprintln(w, "      --strict              Fail when any block renders as an error fragment")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Assets:")
	fmt.Fprintln(w, "      --style <s>           Style name, CSS file path, or CSS")
	fmt.Fprintln(w, "      --template <name>     Template set name")
	fmt.Fprintln(w, "      --asset-path <dir>    Custom asset directory")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "PNG Export:")
	fmt.Fprintln(w, "      --png                 Also write a full-page PNG next to the HTML")
	fmt.Fprintln(w, "      --width <px>          Viewport width (default 860)")
	fmt.Fprintln(w, "  -t, --timeout <d>         Export timeout per page (e.g., 30s, 2m)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show debug logs and timing")
}

// printInspectUsage prints usage for the inspect command.
func printInspectUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: detailpage inspect <document> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "List every block with its type, decode status, and carousel grouping.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "      --json                Print the outline as JSON")
	fmt.Fprintln(w, "      --strict              Fail when any block is malformed")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case cmdCompile:
		printCompileUsage(env.Stdout)
	case cmdInspect:
		printInspectUsage(env.Stdout)
	case cmdFonts:
		fmt.Fprintln(env.Stdout, "Usage: detailpage fonts [--json]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "List the fonts accepted by --font. Unknown selectors use the default.")
	case cmdDoctor:
		fmt.Fprintln(env.Stdout, "Usage: detailpage doctor [--json]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Check Chrome, sandbox settings, and assets.")
	case cmdVersion:
		fmt.Fprintln(env.Stdout, "Usage: detailpage version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case cmdHelp:
		fmt.Fprintln(env.Stdout, "Usage: detailpage help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
