package detailpage

import (
	"errors"

	"github.com/alnah/go-detailpage/internal/assets"
)

// Asset name constants for the built-in style, script and templates.
const (
	// DefaultStyle is the name of the built-in CSS style.
	DefaultStyle = assets.DefaultStyleName

	// DefaultTemplateSet is the name of the built-in template set.
	DefaultTemplateSet = assets.DefaultTemplateSetName

	// CarouselScript is the name of the built-in carousel script.
	CarouselScript = assets.CarouselScriptName

	// FontFamilyPlaceholder marks where stylesheets receive the selected font.
	FontFamilyPlaceholder = assets.FontFamilyPlaceholder
)

// AssetLoader defines the contract for loading the stylesheet, the carousel
// script and the HTML templates of a page.
// Implementations may load from filesystem, embedded assets, a database, etc.
//
// The library provides NewAssetLoader() for filesystem-based loading with
// fallback to embedded defaults. Implement this interface for custom backends.
type AssetLoader interface {
	// LoadStyle loads a CSS style by name (without .css extension).
	// Returns ErrStyleNotFound if the style doesn't exist.
	LoadStyle(name string) (string, error)

	// LoadTemplateSet loads block, carousel and error templates by name.
	// Returns ErrTemplateSetNotFound if the template set doesn't exist.
	// Returns ErrIncompleteTemplateSet if required templates are missing.
	LoadTemplateSet(name string) (*TemplateSet, error)

	// LoadScript loads a script by name (without .js extension).
	// Returns ErrScriptNotFound if the script doesn't exist.
	LoadScript(name string) (string, error)
}

// TemplateSet holds the html/template sources a page is rendered with.
// The three sources share one namespace: each must use {{define}} and
// together they must define a template per block type plus "sticker",
// "carousel" and "error".
type TemplateSet struct {
	Name     string // Identifier (name or path)
	Blocks   string // Block templates
	Carousel string // Carousel template
	Error    string // Error fragment template
}

// NewTemplateSet creates a TemplateSet from template sources.
func NewTemplateSet(name, blocks, carousel, errorFragment string) *TemplateSet {
	return &TemplateSet{
		Name:     name,
		Blocks:   blocks,
		Carousel: carousel,
		Error:    errorFragment,
	}
}

// NewAssetLoader creates an AssetLoader for the given base path.
// If basePath is empty, returns a loader using only embedded assets.
// If basePath is set, custom assets take precedence with fallback to embedded.
//
// The basePath directory should contain:
//   - styles/{name}.css for CSS styles
//   - scripts/{name}.js for scripts
//   - templates/{name}/blocks.html, carousel.html and error.html for template sets
//
// Returns ErrInvalidAssetPath if basePath is set but not a valid, readable directory.
func NewAssetLoader(basePath string) (AssetLoader, error) {
	resolver, err := assets.NewAssetResolver(basePath)
	if err != nil {
		return nil, convertAssetError(err)
	}
	return &assetLoaderAdapter{resolver: resolver}, nil
}

// assetLoaderAdapter wraps internal AssetResolver to return public types.
type assetLoaderAdapter struct {
	resolver *assets.AssetResolver
}

func (a *assetLoaderAdapter) LoadStyle(name string) (string, error) {
	content, err := a.resolver.LoadStyle(name)
	if err != nil {
		return "", convertAssetError(err)
	}
	return content, nil
}

func (a *assetLoaderAdapter) LoadScript(name string) (string, error) {
	content, err := a.resolver.LoadScript(name)
	if err != nil {
		return "", convertAssetError(err)
	}
	return content, nil
}

func (a *assetLoaderAdapter) LoadTemplateSet(name string) (*TemplateSet, error) {
	ts, err := a.resolver.LoadTemplateSet(name)
	if err != nil {
		return nil, convertAssetError(err)
	}
	return fromInternalTemplateSet(ts), nil
}

// publicToInternalAdapter wraps a public AssetLoader to the internal interface.
type publicToInternalAdapter struct {
	pub AssetLoader
}

func (a *publicToInternalAdapter) LoadStyle(name string) (string, error) {
	return a.pub.LoadStyle(name)
}

func (a *publicToInternalAdapter) LoadScript(name string) (string, error) {
	return a.pub.LoadScript(name)
}

func (a *publicToInternalAdapter) LoadTemplateSet(name string) (*assets.TemplateSet, error) {
	ts, err := a.pub.LoadTemplateSet(name)
	if err != nil {
		return nil, err
	}
	return toInternalTemplateSet(ts), nil
}

func fromInternalTemplateSet(ts *assets.TemplateSet) *TemplateSet {
	return &TemplateSet{
		Name:     ts.Name,
		Blocks:   ts.Blocks,
		Carousel: ts.Carousel,
		Error:    ts.Error,
	}
}

func toInternalTemplateSet(ts *TemplateSet) *assets.TemplateSet {
	if ts == nil {
		return nil
	}
	return &assets.TemplateSet{
		Name:     ts.Name,
		Blocks:   ts.Blocks,
		Carousel: ts.Carousel,
		Error:    ts.Error,
	}
}

// convertAssetError maps internal asset errors to public errors.
func convertAssetError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, assets.ErrStyleNotFound):
		return wrapError(ErrStyleNotFound, err)
	case errors.Is(err, assets.ErrScriptNotFound):
		return wrapError(ErrScriptNotFound, err)
	case errors.Is(err, assets.ErrTemplateSetNotFound):
		return wrapError(ErrTemplateSetNotFound, err)
	case errors.Is(err, assets.ErrIncompleteTemplateSet):
		return wrapError(ErrIncompleteTemplateSet, err)
	case errors.Is(err, assets.ErrInvalidBasePath),
		errors.Is(err, assets.ErrPathTraversal):
		return wrapError(ErrInvalidAssetPath, err)
	case errors.Is(err, assets.ErrInvalidAssetName):
		return wrapError(ErrStyleNotFound, err) // Invalid name means not found
	default:
		return err
	}
}

// wrapError creates a new error that wraps the original with a public sentinel.
// The resulting error preserves the original message via Error() and supports
// errors.Is() matching against the public sentinel via Unwrap().
func wrapError(sentinel, original error) error {
	return &wrappedAssetError{sentinel: sentinel, original: original}
}

type wrappedAssetError struct {
	sentinel error
	original error
}

func (e *wrappedAssetError) Error() string {
	return e.original.Error()
}

// Unwrap returns the public sentinel for errors.Is() matching.
func (e *wrappedAssetError) Unwrap() error {
	return e.sentinel
}
