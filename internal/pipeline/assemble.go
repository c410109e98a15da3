package pipeline

import (
	"strings"

	"github.com/alnah/go-detailpage/internal/fonts"
	"github.com/alnah/go-detailpage/internal/model"
)

// Doctype opens every compiled page.
const Doctype = "<!DOCTYPE html>\n<html lang=\"ko\">\n"

// Page is a compiled document together with what happened while building it.
type Page struct {
	HTML      string
	Font      fonts.Font
	Carousels []string
	Failures  []*model.BlockRenderError
}

// Assembler joins the head and the composed body into a full document.
type Assembler struct {
	composer *Composer
	style    string
	script   string
}

// NewAssembler creates an Assembler using style as the page stylesheet and
// script as the carousel behavior.
func NewAssembler(c *Composer, style, script string) *Assembler {
	return &Assembler{composer: c, style: style, script: script}
}

// Assemble builds the page for doc. Block failures are reported in the
// result, never as an error.
func (a *Assembler) Assemble(doc *model.Document, font fonts.Font) *Page {
	head := BuildHead(HeadData{
		Project:     doc.Project,
		Description: doc.Description,
		Font:        font,
		Style:       a.style,
	})
	body := a.composer.Compose(doc.Blocks)

	var sb strings.Builder
	sb.Grow(len(Doctype) + len(head) + len(body.HTML) + len(a.script) + 128)
	sb.WriteString(Doctype)
	sb.WriteString(head)
	sb.WriteByte('\n')
	sb.WriteString(`<body><div class="container">`)
	sb.WriteString(body.HTML)
	sb.WriteString(`</div>`)
	// One shared script initializes every carousel on the page.
	if len(body.Carousels) > 0 {
		sb.WriteString("\n<script>\n")
		sb.WriteString(sanitizeScript(a.script))
		sb.WriteString("</script>\n")
	}
	sb.WriteString("</body>\n</html>")

	return &Page{
		HTML:      sb.String(),
		Font:      font,
		Carousels: body.Carousels,
		Failures:  body.Failures,
	}
}
