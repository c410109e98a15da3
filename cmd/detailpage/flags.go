package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// assetFlags holds asset-related flags (style, template set, asset path).
type assetFlags struct {
	style     string // Style name, CSS file path, or inline CSS
	template  string // Template set name
	assetPath string // Override asset directory
}

// exportFlags holds PNG export flags.
type exportFlags struct {
	png     bool
	width   int
	timeout string
}

// compileFlags holds all flags for the compile command.
type compileFlags struct {
	common  commonFlags
	output  string
	font    string
	workers int
	strict  bool
	assets  assetFlags
	export  exportFlags
}

// inspectFlags holds flags for the inspect command.
type inspectFlags struct {
	json   bool
	strict bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug logs and timing")
}

// addAssetFlags adds asset flags to a FlagSet.
func addAssetFlags(fs *flag.FlagSet, f *assetFlags) {
	fs.StringVar(&f.style, "style", "", "style name, CSS file path, or CSS")
	fs.StringVar(&f.template, "template", "", "template set name")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
}

// addExportFlags adds PNG export flags to a FlagSet.
func addExportFlags(fs *flag.FlagSet, f *exportFlags) {
	fs.BoolVar(&f.png, "png", false, "also export a full-page PNG")
	fs.IntVar(&f.width, "width", 0, "PNG viewport width in pixels (0 = 860)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "PNG export timeout per page (e.g., 30s, 2m)")
}

// newCompileFlagSet registers every compile flag on a fresh FlagSet.
func newCompileFlagSet(f *compileFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("compile", flag.ContinueOnError)

	// I/O flags
	fs.StringVarP(&f.output, "output", "o", "", "output directory")
	fs.StringVar(&f.font, "font", "", "font selector (unknown = Noto Sans KR)")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.BoolVar(&f.strict, "strict", false, "fail when any block renders as an error fragment")

	// Flag groups
	addCommonFlags(fs, &f.common)
	addAssetFlags(fs, &f.assets)
	addExportFlags(fs, &f.export)

	return fs
}

// parseCompileFlags parses compile command flags and returns positional args.
func parseCompileFlags(args []string, stderr io.Writer) (*compileFlags, []string, error) {
	f := &compileFlags{}
	fs := newCompileFlagSet(f)
	fs.SetOutput(stderr)
	fs.Usage = func() { printCompileUsage(stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}

// parseInspectFlags parses inspect command flags and returns positional args.
func parseInspectFlags(args []string, stderr io.Writer) (*inspectFlags, []string, error) {
	fs := flag.NewFlagSet("inspect", flag.ContinueOnError)
	f := &inspectFlags{}

	fs.BoolVar(&f.json, "json", false, "print the outline as JSON")
	fs.BoolVar(&f.strict, "strict", false, "fail when any block is malformed")

	fs.SetOutput(stderr)
	fs.Usage = func() { printInspectUsage(stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}

// parseJSONFlag parses the --json flag shared by the fonts and doctor commands.
func parseJSONFlag(name string, args []string, stderr io.Writer) (bool, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	jsonOutput := fs.Bool("json", false, "print JSON")
	fs.SetOutput(stderr)

	if err := fs.Parse(args); err != nil {
		return false, err
	}
	return *jsonOutput, nil
}
