package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/goccy/go-json"
	flag "github.com/spf13/pflag"

	detailpage "github.com/alnah/go-detailpage"
)

// fontEntry is the JSON form of one supported font.
type fontEntry struct {
	Selector string `json:"selector"`
	Family   string `json:"family"`
	Weights  []int  `json:"weights"`
	Default  bool   `json:"default"`
}

// runFonts lists the fonts accepted by --font.
func runFonts(args []string, env *Environment) error {
	jsonOutput, err := parseJSONFlag("fonts", args, env.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return fmt.Errorf("%w: %v", ErrInvalidFlags, err)
	}

	def := detailpage.DefaultFont()
	all := detailpage.Fonts()
	entries := make([]fontEntry, 0, len(all))
	for _, f := range all {
		entries = append(entries, fontEntry{
			Selector: f.Selector,
			Family:   f.Family,
			Weights:  f.Weights,
			Default:  f.Selector == def.Selector,
		})
	}

	if jsonOutput {
		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding fonts: %w", err)
		}
		fmt.Fprintln(env.Stdout, string(data))
		return nil
	}

	printFonts(env.Stdout, entries)
	return nil
}

func printFonts(w io.Writer, entries []fontEntry) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SELECTOR\tWEIGHTS\t")
	for _, e := range entries {
		weights := make([]string, len(e.Weights))
		for i, wt := range e.Weights {
			weights[i] = strconv.Itoa(wt)
		}
		mark := ""
		if e.Default {
			mark = "(default)"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", e.Selector, strings.Join(weights, ","), mark)
	}
	_ = tw.Flush()
}
