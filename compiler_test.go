package detailpage

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/alnah/go-detailpage/internal/pipeline"
)

const sampleDocument = `{
  "project": "Spring Sale",
  "description": "Hydrating Cream",
  "blocks": [
    {"type": "hero_section", "block_id": "hero", "brandTag": "BRAND", "mainTitle": "Deep <strong>moisture</strong>", "subTitle": "for dry skin", "emojiDeco": "💧"},
    {"type": "full_image", "block_id": "img-1", "src": "front.jpg", "alt": "front"},
    {"type": "full_image", "block_id": "img-2", "src": "back.jpg", "alt": "back", "sticker": {"text": "NEW", "position": "top-right"}},
    {"type": "catch_phrase", "block_id": "cp", "lines": ["light", "fresh"]},
    {"type": "footer_section", "block_id": "foot", "logo": "BRAND", "text": "thanks", "emoji": "🙏"}
  ]
}`

func newTestCompiler(t *testing.T, opts ...Option) *Compiler {
	t.Helper()

	c, err := NewCompiler(opts...)
	if err != nil {
		t.Fatalf("NewCompiler() error = %v", err)
	}
	return c
}

// ---------------------------------------------------------------------------
// TestCompile - End to end
// ---------------------------------------------------------------------------

func TestCompile(t *testing.T) {
	t.Parallel()

	c := newTestCompiler(t)
	res, err := c.CompileResult(sampleDocument, "IBM Plex Sans KR")
	if err != nil {
		t.Fatalf("CompileResult() error = %v", err)
	}

	for _, want := range []string{
		"<!DOCTYPE html>\n<html lang=\"ko\">\n<head>",
		"<title>Spring Sale - Hydrating Cream</title>",
		"family=IBM+Plex+Sans+KR:wght@400;500;700",
		"font-family: 'IBM Plex Sans KR', sans-serif;",
		"Deep <strong>moisture</strong>",
		`id="carousel-0"`,
		"light<br>fresh",
		"<script>",
	} {
		if !strings.Contains(res.HTML, want) {
			t.Errorf("page missing %q", want)
		}
	}
	if !strings.HasSuffix(res.HTML, "</body>\n</html>") {
		t.Error("page should end with </body> and </html>")
	}
	if res.Font.Selector != "IBM Plex Sans KR" {
		t.Errorf("Font = %q", res.Font.Selector)
	}
	if len(res.Carousels) != 1 || len(res.Failures) != 0 {
		t.Errorf("Carousels = %v, Failures = %v", res.Carousels, res.Failures)
	}
}

func TestCompile_PackageLevel(t *testing.T) {
	t.Parallel()

	html, err := Compile(sampleDocument, "")
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	if !strings.Contains(html, "'Noto Sans KR'") {
		t.Error("empty font selector should use the default font")
	}

	again, err := Compile(sampleDocument, "")
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	if again != html {
		t.Error("compiling the same input twice should give identical output")
	}
}

func TestCompile_FontFallback(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.DebugLevel)
	c := newTestCompiler(t, WithLogger(zap.New(core)))

	res, err := c.CompileResult(sampleDocument, "Comic Sans")
	if err != nil {
		t.Fatalf("CompileResult() error = %v", err)
	}
	if res.Font.Selector != DefaultFont().Selector {
		t.Errorf("Font = %q, want default", res.Font.Selector)
	}
	if logs.FilterMessage("unknown font, using default").Len() != 1 {
		t.Error("fallback should be logged at debug level")
	}
}

// ---------------------------------------------------------------------------
// TestCompile_FatalErrors - Document level failures
// ---------------------------------------------------------------------------

func TestCompile_FatalErrors(t *testing.T) {
	t.Parallel()

	c := newTestCompiler(t)

	tests := []struct {
		name      string
		input     string
		wantErr   error
		wantField string
	}{
		{"not JSON", `{"project": `, ErrParse, ""},
		{"empty input", "", ErrParse, ""},
		{"top level array", `[]`, ErrSchema, ""},
		{"missing project", `{"description":"d","blocks":[]}`, ErrSchema, "project"},
		{"null description", `{"project":"p","description":null,"blocks":[]}`, ErrSchema, "description"},
		{"blocks not array", `{"project":"p","description":"d","blocks":{}}`, ErrSchema, "blocks"},
		{"missing blocks", `{"project":"p","description":"d"}`, ErrSchema, "blocks"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			html, err := c.Compile(tt.input, "")
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Compile() error = %v, want %v", err, tt.wantErr)
			}
			if html != "" {
				t.Error("failed compilation should return no page")
			}
			if tt.wantField != "" {
				var se *SchemaError
				if !errors.As(err, &se) || se.Field != tt.wantField {
					t.Errorf("error = %v, want SchemaError on %q", err, tt.wantField)
				}
			}
		})
	}
}

func TestCompile_ParseErrorPosition(t *testing.T) {
	t.Parallel()

	_, err := Compile("{\n  \"project\": x\n}", "")
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("error = %v, want *ParseError", err)
	}
	// The decoder cannot notice the bad token before line 2.
	if pe.Offset >= 0 && pe.Line < 2 {
		t.Errorf("Line = %d, want at least 2", pe.Line)
	}
}

// ---------------------------------------------------------------------------
// TestCompileResult_Failures - Block isolation through the public API
// ---------------------------------------------------------------------------

func TestCompileResult_Failures(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.InfoLevel)
	c := newTestCompiler(t, WithLogger(zap.New(core)))

	doc := `{"project":"p","description":"d","blocks":[
		{"type":"footer_section","block_id":"ok","logo":"A","text":"t","emoji":"e"},
		{"type":"points_section","block_id":"bad","title":"T","subtitle":"S","points":"nope"},
		{"type":"mystery","block_id":"m"}
	]}`

	res, err := c.CompileResult(doc, "")
	if err != nil {
		t.Fatalf("CompileResult() error = %v", err)
	}
	if len(res.Failures) != 1 {
		t.Fatalf("Failures = %v, want 1", res.Failures)
	}
	f := res.Failures[0]
	if f.BlockID != "bad" || !errors.Is(f, ErrBlockRender) || !errors.Is(f, ErrMalformedBlock) {
		t.Errorf("failure = %v", f)
	}
	if !strings.Contains(res.HTML, `data-block-id="bad"`) || !strings.Contains(res.HTML, `<div class="footer-logo">A</div>`) {
		t.Error("page should hold the error fragment and the healthy block")
	}
	if !strings.Contains(res.HTML, "<!-- Unknown block type -->") {
		t.Error("unknown type should render the placeholder comment")
	}

	if logs.FilterMessage("block render failed").Len() != 1 {
		t.Error("failure should be logged once")
	}
	if logs.FilterMessage("page compiled with failed blocks").Len() != 1 {
		t.Error("page summary should be logged")
	}
}

func TestParseDocument(t *testing.T) {
	t.Parallel()

	doc, err := ParseDocument(sampleDocument)
	if err != nil {
		t.Fatalf("ParseDocument() error = %v", err)
	}
	if doc.Project != "Spring Sale" || len(doc.Blocks) != 5 {
		t.Errorf("doc = %s", doc)
	}
	if doc.Blocks[1].Type() != "full_image" {
		t.Errorf("Blocks[1].Type() = %q", doc.Blocks[1].Type())
	}
}

// ---------------------------------------------------------------------------
// TestNewCompiler - Options
// ---------------------------------------------------------------------------

// completeTemplates defines every required template with a fixed marker.
func completeTemplates(name string) *TemplateSet {
	var sb strings.Builder
	for _, tmpl := range pipeline.RequiredTemplates() {
		sb.WriteString(`{{define "` + tmpl + `"}}<x-` + tmpl + `>{{end}}`)
	}
	return NewTemplateSet(name, sb.String(), "", "")
}

func TestNewCompiler_Style(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cssPath := filepath.Join(dir, "brand.css")
	if err := os.WriteFile(cssPath, []byte("body { font-family: $FONT_FAMILY; color: teal; }"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name  string
		style string
		want  string
	}{
		{"css content", "h1 { font-family: $FONT_FAMILY; }", "h1 { font-family: 'Gothic A1'; }"},
		{"file path", cssPath, "body { font-family: 'Gothic A1'; color: teal; }"},
		{"named style", DefaultStyle, ".carousel-container"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := newTestCompiler(t, WithStyle(tt.style))
			html, err := c.Compile(sampleDocument, "Gothic A1")
			if err != nil {
				t.Fatalf("Compile() error = %v", err)
			}
			if !strings.Contains(html, tt.want) {
				t.Errorf("page missing %q", tt.want)
			}
		})
	}
}

func TestNewCompiler_Errors(t *testing.T) {
	t.Parallel()

	broken := NewTemplateSet("broken", `{{define "hero_section"}}{{.MainTitle}`, "", "")

	tests := []struct {
		name    string
		opts    []Option
		wantErr error
	}{
		{"unknown style", []Option{WithStyle("neon")}, ErrStyleNotFound},
		{"missing style file", []Option{WithStyle("./does/not/exist.css")}, os.ErrNotExist},
		{"unknown template set", []Option{WithTemplateSet("fancy")}, ErrTemplateSetNotFound},
		{"incomplete templates", []Option{WithTemplates(NewTemplateSet("thin", `{{define "hero_section"}}{{end}}`, "", ""))}, ErrIncompleteTemplateSet},
		{"template syntax", []Option{WithTemplates(broken)}, ErrTemplateParse},
		{"invalid asset path", []Option{WithAssetPath("/nonexistent/assets/dir")}, ErrInvalidAssetPath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := NewCompiler(tt.opts...)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("NewCompiler() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewCompiler_CustomTemplates(t *testing.T) {
	t.Parallel()

	c := newTestCompiler(t, WithTemplates(completeTemplates("markers")))
	html, err := c.Compile(sampleDocument, "")
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	for _, want := range []string{"<x-hero_section>", "<x-carousel>", "<x-catch_phrase>", "<x-footer_section>"} {
		if !strings.Contains(html, want) {
			t.Errorf("page missing %q", want)
		}
	}
}

func TestNewCompiler_AssetPath(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "styles"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "styles", "brand.css"), []byte(".brand { color: $FONT_FAMILY; }"), 0o644); err != nil {
		t.Fatal(err)
	}

	c := newTestCompiler(t, WithAssetPath(dir), WithStyle("brand"))
	html, err := c.Compile(sampleDocument, "")
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	if !strings.Contains(html, ".brand { color: 'Noto Sans KR'; }") {
		t.Error("custom style should be loaded from the asset path")
	}
	// Templates and script fall back to the embedded defaults.
	if !strings.Contains(html, `class="hero-section"`) || !strings.Contains(html, "data-carousel-ready") {
		t.Error("embedded templates and script should fill the gaps")
	}
}
