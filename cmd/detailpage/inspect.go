package main

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/goccy/go-json"
	flag "github.com/spf13/pflag"

	detailpage "github.com/alnah/go-detailpage"
)

// ErrMalformedBlocks reports an inspect --strict run that found bad blocks.
var ErrMalformedBlocks = errors.New("document has malformed blocks")

// inspectReport is the JSON form of an inspect run.
type inspectReport struct {
	Project     string                 `json:"project"`
	Description string                 `json:"description"`
	Blocks      []detailpage.BlockInfo `json:"blocks"`
	Malformed   int                    `json:"malformed"`
}

// runInspect prints how the compiler will read a document, block by block.
func runInspect(args []string, env *Environment) error {
	flags, positional, err := parseInspectFlags(args, env.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return fmt.Errorf("%w: %v", ErrInvalidFlags, err)
	}
	if len(positional) != 1 {
		return fmt.Errorf("%w: inspect takes exactly one document", ErrNoInput)
	}
	path := positional[0]

	text, err := readDocument(path)
	if err != nil {
		return err
	}
	doc, err := detailpage.ParseDocument(text)
	if err != nil {
		return err
	}

	infos := detailpage.Outline(doc)
	bad := detailpage.MalformedBlocks(infos)

	if flags.json {
		report := inspectReport{
			Project:     doc.Project,
			Description: doc.Description,
			Blocks:      infos,
			Malformed:   len(bad),
		}
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding outline: %w", err)
		}
		fmt.Fprintln(env.Stdout, string(data))
	} else {
		printOutline(env.Stdout, doc, infos)
	}

	if flags.strict && len(bad) > 0 {
		return fmt.Errorf("%w: %d in %s", ErrMalformedBlocks, len(bad), path)
	}
	return nil
}

// printOutline writes the human-readable block table.
func printOutline(w io.Writer, doc *detailpage.Document, infos []detailpage.BlockInfo) {
	fmt.Fprintf(w, "%s: %s\n\n", doc.Project, doc.Description)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tBLOCK\tTYPE\tSTATUS\tCAROUSEL")
	for _, info := range infos {
		carousel := "-"
		if info.Carousel != "" {
			carousel = fmt.Sprintf("%s[%d]", info.Carousel, info.Slide)
		}
		typ := string(info.Type)
		if typ == "" {
			typ = "-"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", info.Index, info.ID, typ, info.Status, carousel)
	}
	_ = tw.Flush()

	var problems int
	for _, info := range infos {
		if info.Problem == "" {
			continue
		}
		if problems == 0 {
			fmt.Fprintln(w, "\nProblems:")
		}
		problems++
		fmt.Fprintf(w, "  [%d] %s\n", info.Index, info.Problem)
	}

	fmt.Fprintf(w, "\n%d blocks, %d malformed\n", len(infos), problems)
}
