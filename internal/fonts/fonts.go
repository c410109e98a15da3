// Package fonts holds the registry of supported Korean web fonts.
package fonts

import (
	"strconv"
	"strings"
)

// Font describes one web font served by Google Fonts.
type Font struct {
	Selector string // name accepted from callers, e.g. "Nanum Gothic"
	Family   string // URL family identifier, e.g. "Nanum+Gothic"
	Weights  []int
	CSSName  string // quoted font-family value, e.g. "'Nanum Gothic'"
}

// DisplayFamily is the secondary font every page loads for numbers and
// decorative headings.
const DisplayFamily = "family=Quicksand:wght@400;600;700"

const stylesheetBase = "https://fonts.googleapis.com/css2?"

// registry is ordered; the first entry is the default.
var registry = []Font{
	{Selector: "Noto Sans KR", Family: "Noto+Sans+KR", Weights: []int{400, 700, 900}, CSSName: "'Noto Sans KR'"},
	{Selector: "Gothic A1", Family: "Gothic+A1", Weights: []int{400, 700, 900}, CSSName: "'Gothic A1'"},
	{Selector: "Nanum Gothic", Family: "Nanum+Gothic", Weights: []int{400, 700, 800}, CSSName: "'Nanum Gothic'"},
	{Selector: "Nanum Myeongjo", Family: "Nanum+Myeongjo", Weights: []int{400, 700, 800}, CSSName: "'Nanum Myeongjo'"},
	{Selector: "IBM Plex Sans KR", Family: "IBM+Plex+Sans+KR", Weights: []int{400, 500, 700}, CSSName: "'IBM Plex Sans KR'"},
}

// Default returns the fallback font.
func Default() Font { return registry[0] }

// All returns every registered font in display order.
func All() []Font {
	out := make([]Font, len(registry))
	copy(out, registry)
	return out
}

// Lookup returns the font registered under selector. Unknown selectors,
// including the empty string, yield Default. Matching is exact.
func Lookup(selector string) Font {
	f, _ := Find(selector)
	return f
}

// Find is Lookup that also reports whether selector was registered.
func Find(selector string) (Font, bool) {
	for _, f := range registry {
		if f.Selector == selector {
			return f, true
		}
	}
	return Default(), false
}

// StylesheetURL returns the css2 URL loading this font and the display font.
func (f Font) StylesheetURL() string {
	var sb strings.Builder
	sb.WriteString(stylesheetBase)
	sb.WriteString("family=")
	sb.WriteString(f.Family)
	sb.WriteString(":wght@")
	for i, w := range f.Weights {
		if i > 0 {
			sb.WriteByte(';')
		}
		sb.WriteString(strconv.Itoa(w))
	}
	sb.WriteByte('&')
	sb.WriteString(DisplayFamily)
	sb.WriteString("&display=swap")
	return sb.String()
}
