package pipeline

import (
	"html"
	"strings"

	"github.com/alnah/go-detailpage/internal/assets"
	"github.com/alnah/go-detailpage/internal/fonts"
)

// Font service origins the head preconnects to.
const (
	fontsOrigin  = "https://fonts.googleapis.com"
	staticOrigin = "https://fonts.gstatic.com"
)

// HeadData holds the inputs of the <head> section.
type HeadData struct {
	Project     string
	Description string
	Font        fonts.Font
	Style       string // stylesheet with the font placeholder still in place
}

// BuildHead renders the <head> element: metadata, the title, font links and
// the embedded stylesheet with the selected font substituted.
func BuildHead(d HeadData) string {
	var sb strings.Builder
	sb.Grow(len(d.Style) + 512)

	sb.WriteString("<head>\n")
	sb.WriteString(`<meta charset="UTF-8">` + "\n")
	sb.WriteString(`<meta name="viewport" content="width=device-width, initial-scale=1.0">` + "\n")
	sb.WriteString("<title>")
	sb.WriteString(html.EscapeString(d.Project + " - " + d.Description))
	sb.WriteString("</title>\n\n")

	sb.WriteString(`<link rel="preconnect" href="` + fontsOrigin + `">` + "\n")
	sb.WriteString(`<link rel="preconnect" href="` + staticOrigin + `" crossorigin>` + "\n")
	sb.WriteString(`<link href="`)
	sb.WriteString(html.EscapeString(d.Font.StylesheetURL()))
	sb.WriteString(`" rel="stylesheet" crossorigin="anonymous">` + "\n\n")

	sb.WriteString("<style>\n")
	sb.WriteString(sanitizeCSS(SubstituteFont(d.Style, d.Font)))
	sb.WriteString("</style>\n")
	sb.WriteString("</head>")
	return sb.String()
}

// SubstituteFont replaces the font placeholder in css with f's CSS name.
func SubstituteFont(css string, f fonts.Font) string {
	return strings.ReplaceAll(css, assets.FontFamilyPlaceholder, f.CSSName)
}

// sanitizeCSS escapes sequences that could break out of a <style> block.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}

// sanitizeScript keeps a script body from closing its <script> element early.
func sanitizeScript(js string) string {
	return strings.ReplaceAll(js, "</script", `<\/script`)
}
