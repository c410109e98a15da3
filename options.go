package detailpage

import "go.uber.org/zap"

// Option configures a Compiler.
type Option func(*Compiler)

// compilerConfig holds option values until NewCompiler resolves them.
type compilerConfig struct {
	assetPath       string
	styleInput      string
	resolvedStyle   string
	templateSetName string
	templateSet     *TemplateSet
}

// WithLogger sets the logger that receives block failure warnings.
// A nil logger keeps the default no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Compiler) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithAssetPath loads assets from a custom directory, falling back to the
// embedded defaults for anything it does not contain.
// Ignored if WithAssetLoader is also used.
func WithAssetPath(path string) Option {
	return func(c *Compiler) {
		c.cfg.assetPath = path
	}
}

// WithAssetLoader sets a custom asset loader.
// Takes precedence over WithAssetPath.
func WithAssetLoader(loader AssetLoader) Option {
	return func(c *Compiler) {
		c.publicAssetLoader = loader
	}
}

// WithStyle sets the page stylesheet.
// Accepts a style name ("default"), a file path ("./brand.css"), or CSS
// content ("body { ... }"). Use FontFamilyPlaceholder where the selected
// font belongs.
func WithStyle(style string) Option {
	return func(c *Compiler) {
		c.cfg.styleInput = style
	}
}

// WithTemplateSet selects a template set by name from the asset loader.
func WithTemplateSet(name string) Option {
	return func(c *Compiler) {
		c.cfg.templateSetName = name
	}
}

// WithTemplates uses ts directly instead of loading a template set.
// Takes precedence over WithTemplateSet.
func WithTemplates(ts *TemplateSet) Option {
	return func(c *Compiler) {
		c.cfg.templateSet = ts
	}
}
