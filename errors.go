package detailpage

import (
	"errors"

	"github.com/alnah/go-detailpage/internal/model"
	"github.com/alnah/go-detailpage/internal/pipeline"
)

// Sentinel errors for library operations.
var (
	// Document errors. Only these leave Compile.
	ErrParse          = model.ErrParse
	ErrSchema         = model.ErrSchema
	ErrMalformedBlock = model.ErrMalformedBlock
	ErrBlockRender    = model.ErrBlockRender

	// ErrTemplateParse reports a template set that is not valid html/template.
	ErrTemplateParse = pipeline.ErrTemplateParse

	// Export errors.
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")
	ErrScreenshot     = errors.New("screenshot capture failed")
	ErrInvalidWidth   = errors.New("invalid viewport width")

	// Asset loading errors.
	ErrStyleNotFound         = errors.New("style not found")
	ErrScriptNotFound        = errors.New("script not found")
	ErrTemplateSetNotFound   = errors.New("template set not found")
	ErrIncompleteTemplateSet = errors.New("template set missing required template")
	ErrInvalidAssetPath      = errors.New("invalid asset path")
)

// Typed document errors, usable with errors.As.
type (
	// ParseError reports input that is not well-formed JSON.
	ParseError = model.ParseError

	// SchemaError reports a missing or mistyped top-level field.
	SchemaError = model.SchemaError

	// FieldError reports a missing or mistyped field inside a block.
	FieldError = model.FieldError

	// BlockRenderError describes one block or image run that failed to render
	// and was replaced by an error fragment.
	BlockRenderError = model.BlockRenderError
)
