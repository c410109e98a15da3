package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
)

// TemplateSet holds the HTML templates for page generation.
// The three files are parsed together, so one may call templates defined in
// another (the carousel reuses the "sticker" template from blocks.html).
type TemplateSet struct {
	Name     string // Identifier (name or directory path)
	Blocks   string // blocks.html content
	Carousel string // carousel.html content
	Error    string // error.html content
}

// Template set file names, in parse order.
const (
	BlocksFile   = "blocks.html"
	CarouselFile = "carousel.html"
	ErrorFile    = "error.html"
)

// DefaultTemplateSetName is the name of the built-in template set.
const DefaultTemplateSetName = "default"

// DefaultStyleName is the name of the built-in stylesheet.
const DefaultStyleName = "default"

// CarouselScriptName is the name of the built-in carousel script.
const CarouselScriptName = "carousel"

// FontFamilyPlaceholder is replaced in stylesheets by the selected font's
// CSS family name.
const FontFamilyPlaceholder = "$FONT_FAMILY"

// readTemplateSet reads the three files of a set through read, which must
// report missing files with an error matching fs.ErrNotExist.
func readTemplateSet(name string, read func(file string) ([]byte, error)) (*TemplateSet, error) {
	files := []string{BlocksFile, CarouselFile, ErrorFile}
	contents := make([]string, len(files))
	var missing []string

	for i, file := range files {
		data, err := read(file)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				missing = append(missing, file)
				continue
			}
			return nil, fmt.Errorf("%w: reading %s: %v", ErrAssetRead, file, err)
		}
		contents[i] = string(data)
	}

	switch len(missing) {
	case 0:
	case len(files):
		return nil, fmt.Errorf("%w: %q", ErrTemplateSetNotFound, name)
	default:
		return nil, fmt.Errorf("%w: %q missing %s", ErrIncompleteTemplateSet, name, strings.Join(missing, ", "))
	}

	return &TemplateSet{
		Name:     name,
		Blocks:   contents[0],
		Carousel: contents[1],
		Error:    contents[2],
	}, nil
}
