package detailpage

import (
	"fmt"
	"os"
	"sync"

	"go.uber.org/zap"

	"github.com/alnah/go-detailpage/internal/assets"
	"github.com/alnah/go-detailpage/internal/fileutil"
	"github.com/alnah/go-detailpage/internal/fonts"
	"github.com/alnah/go-detailpage/internal/model"
	"github.com/alnah/go-detailpage/internal/pipeline"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.BlockRenderer = (*pipeline.Renderer)(nil)
	_ assets.AssetLoader     = (*publicToInternalAdapter)(nil)
	_ AssetLoader            = (*assetLoaderAdapter)(nil)
)

// Document is a parsed page description. Blocks stay raw until compilation.
type Document = model.Document

// Block is one decoded content block.
type Block = model.Block

// BlockType is a block discriminant such as "hero_section".
type BlockType = model.Type

// Result is a compiled page and the block failures recovered while
// building it.
type Result struct {
	HTML      string
	Font      Font                // font actually used, after fallback
	Carousels []string            // element ids, in page order
	Failures  []*BlockRenderError // one per error fragment, in page order
}

// Compiler turns page descriptions into self-contained HTML documents.
// Create with NewCompiler. A Compiler is immutable and safe for concurrent use.
type Compiler struct {
	cfg               compilerConfig
	logger            *zap.Logger
	assetLoader       assets.AssetLoader
	publicAssetLoader AssetLoader
	assembler         *pipeline.Assembler
}

// NewCompiler creates a Compiler with the embedded assets.
// Use options to customize behavior (e.g., WithStyle, WithAssetPath, WithLogger).
// Returns error if asset loading or template parsing fails.
func NewCompiler(opts ...Option) (*Compiler, error) {
	c := &Compiler{
		logger:      zap.NewNop(),
		assetLoader: assets.NewEmbeddedLoader(),
	}

	for _, opt := range opts {
		opt(c)
	}

	switch {
	case c.publicAssetLoader != nil:
		// WithAssetLoader (public interface): wrap to internal interface
		c.assetLoader = &publicToInternalAdapter{pub: c.publicAssetLoader}
	case c.cfg.assetPath != "":
		resolver, err := assets.NewAssetResolver(c.cfg.assetPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
		}
		c.assetLoader = resolver
	}

	if err := c.resolveStyle(); err != nil {
		return nil, err
	}

	script, err := c.assetLoader.LoadScript(assets.CarouselScriptName)
	if err != nil {
		return nil, fmt.Errorf("loading carousel script: %w", convertAssetError(err))
	}

	ts, err := c.resolveTemplateSet()
	if err != nil {
		return nil, err
	}

	renderer, err := pipeline.NewRenderer(ts)
	if err != nil {
		return nil, fmt.Errorf("initializing renderer: %w", convertAssetError(err))
	}

	composer := pipeline.NewComposer(renderer, c.logger)
	c.assembler = pipeline.NewAssembler(composer, c.cfg.resolvedStyle, script)
	return c, nil
}

// Compile parses documentText and returns the HTML page using the font named
// by font. Unknown fonts fall back to DefaultFont.
//
// Only ParseError and SchemaError are returned. Blocks that fail are replaced
// by error fragments; use CompileResult to inspect them.
func (c *Compiler) Compile(documentText, font string) (string, error) {
	res, err := c.CompileResult(documentText, font)
	if err != nil {
		return "", err
	}
	return res.HTML, nil
}

// CompileResult is Compile with the build details.
func (c *Compiler) CompileResult(documentText, font string) (*Result, error) {
	doc, err := ParseDocument(documentText)
	if err != nil {
		return nil, err
	}
	return c.CompileDocument(doc, font), nil
}

// CompileDocument builds the page for an already parsed document.
func (c *Compiler) CompileDocument(doc *Document, font string) *Result {
	f, known := fonts.Find(font)
	if !known && font != "" {
		c.logger.Debug("unknown font, using default",
			zap.String("font", font),
			zap.String("default", f.Selector))
	}

	page := c.assembler.Assemble(doc, f)
	if len(page.Failures) > 0 {
		c.logger.Info("page compiled with failed blocks",
			zap.String("project", doc.Project),
			zap.Int("failures", len(page.Failures)))
	}

	return &Result{
		HTML:      page.HTML,
		Font:      page.Font,
		Carousels: page.Carousels,
		Failures:  page.Failures,
	}
}

// ParseDocument validates the top level of documentText. Blocks are checked
// later, one at a time, during compilation.
func ParseDocument(documentText string) (*Document, error) {
	return model.Parse([]byte(documentText))
}

// resolveStyle resolves the style input (name, path, or CSS content) to CSS content.
// Called during NewCompiler after options are applied and the asset loader is configured.
func (c *Compiler) resolveStyle() error {
	input := c.cfg.styleInput
	if input == "" {
		input = assets.DefaultStyleName
	}

	// File path? (contains / or \)
	if fileutil.IsFilePath(input) {
		content, err := os.ReadFile(input) // #nosec G304 -- user-provided path
		if err != nil {
			return fmt.Errorf("loading style file %q: %w", input, err)
		}
		c.cfg.resolvedStyle = string(content)
		return nil
	}

	// CSS content? (contains {)
	if fileutil.IsCSS(input) {
		c.cfg.resolvedStyle = input
		return nil
	}

	css, err := c.assetLoader.LoadStyle(input)
	if err != nil {
		return fmt.Errorf("loading style %q: %w", input, convertAssetError(err))
	}
	c.cfg.resolvedStyle = css
	return nil
}

// resolveTemplateSet returns the templates given by WithTemplates, or loads
// the named (or default) set.
func (c *Compiler) resolveTemplateSet() (*assets.TemplateSet, error) {
	if c.cfg.templateSet != nil {
		return toInternalTemplateSet(c.cfg.templateSet), nil
	}

	name := c.cfg.templateSetName
	if name == "" {
		name = assets.DefaultTemplateSetName
	}
	ts, err := c.assetLoader.LoadTemplateSet(name)
	if err != nil {
		return nil, fmt.Errorf("loading template set %q: %w", name, convertAssetError(err))
	}
	return ts, nil
}

// defaultCompiler backs the package-level Compile.
var defaultCompiler = sync.OnceValues(func() (*Compiler, error) {
	return NewCompiler()
})

// Compile compiles documentText with the built-in assets.
// See Compiler.Compile.
func Compile(documentText, font string) (string, error) {
	c, err := defaultCompiler()
	if err != nil {
		return "", err
	}
	return c.Compile(documentText, font)
}
