package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"go.uber.org/automaxprocs/maxprocs"

	detailpage "github.com/alnah/go-detailpage"
	"github.com/alnah/go-detailpage/internal/config"
	"github.com/alnah/go-detailpage/internal/fileutil"
	"github.com/alnah/go-detailpage/internal/hints"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Command names.
const (
	cmdCompile = "compile"
	cmdInspect = "inspect"
	cmdFonts   = "fonts"
	cmdDoctor  = "doctor"
	cmdVersion = "version"
	cmdHelp    = "help"
)

func main() {
	// Configure GOMAXPROCS with conditional logging.
	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	if slices.Contains(os.Args, "-v") || slices.Contains(os.Args, "--verbose") {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...any) {
			fmt.Fprintf(os.Stderr, format+"\n", args...)
		}))
	} else {
		_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...any) {}))
	}

	os.Exit(runMain(os.Args, DefaultEnv()))
}

// runMain dispatches a command and returns the process exit code.
// A first argument that looks like a document path runs compile.
func runMain(args []string, env *Environment) int {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	ctx, stop := notifyContext(context.Background())
	defer stop()

	cmd, rest := args[1], args[2:]
	var err error
	switch {
	case cmd == cmdCompile:
		err = runCompile(ctx, rest, env)
	case cmd == cmdInspect:
		err = runInspect(rest, env)
	case cmd == cmdFonts:
		err = runFonts(rest, env)
	case cmd == cmdDoctor:
		err = runDoctor(rest, env)
	case cmd == cmdVersion:
		fmt.Fprintf(env.Stdout, "go-detailpage %s\n", Version)
	case cmd == cmdHelp:
		runHelp(rest, env)
	case cmd == "-h" || cmd == "--help":
		printUsage(env.Stdout)
	case looksLikeDocument(cmd):
		err = runCompile(ctx, args[1:], env)
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", cmd)
		printUsage(env.Stderr)
		return ExitUsage
	}

	if err != nil {
		fmt.Fprintf(env.Stderr, "error: %v%s\n", err, hintFor(err))
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// isCommand reports whether arg names a subcommand.
func isCommand(arg string) bool {
	switch arg {
	case cmdCompile, cmdInspect, cmdFonts, cmdDoctor, cmdVersion, cmdHelp:
		return true
	}
	return false
}

// looksLikeDocument reports whether arg should be treated as compile input.
func looksLikeDocument(arg string) bool {
	if isCommand(arg) {
		return false
	}
	return fileutil.IsDocumentFile(arg) || fileutil.IsFilePath(arg)
}

// hintFor returns an actionable hint for err, or "".
func hintFor(err error) string {
	var parseErr *detailpage.ParseError
	switch {
	case errors.As(err, &parseErr):
		return hints.ForParseError(parseErr.Line, parseErr.Column)
	case errors.Is(err, detailpage.ErrParse):
		return hints.ForParseError(0, 0)
	case errors.Is(err, detailpage.ErrSchema):
		return hints.ForSchemaError()
	case errors.Is(err, detailpage.ErrBrowserConnect):
		return hints.ForBrowserConnect()
	case errors.Is(err, context.DeadlineExceeded):
		return hints.ForTimeout()
	case errors.Is(err, config.ErrConfigNotFound):
		return hints.ForConfigNotFound(userConfigSuggestions())
	case errors.Is(err, detailpage.ErrStyleNotFound):
		return hints.ForStyleNotFound([]string{detailpage.DefaultStyle})
	case errors.Is(err, detailpage.ErrTemplateSetNotFound):
		return hints.ForTemplateSetNotFound([]string{detailpage.DefaultTemplateSet})
	case errors.Is(err, ErrWriteOutput):
		return hints.ForOutputDirectory()
	case errors.Is(err, ErrBlockFailures):
		return hints.ForBlockFailures("<document>")
	}
	return ""
}

// userConfigSuggestions returns the user-level config paths LoadConfig searches.
func userConfigSuggestions() []string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return nil
	}
	return []string{filepath.Join(dir, "go-detailpage", "config.yaml")}
}
