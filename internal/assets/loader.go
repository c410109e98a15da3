package assets

// AssetLoader defines the contract for loading page assets.
type AssetLoader interface {
	// LoadStyle loads a CSS style by name (without .css extension).
	// Returns ErrStyleNotFound if the style doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadStyle(name string) (string, error)

	// LoadTemplateSet loads the block, carousel and error templates of a set.
	// Returns ErrTemplateSetNotFound if no file of the set exists and
	// ErrIncompleteTemplateSet if only some do.
	LoadTemplateSet(name string) (*TemplateSet, error)

	// LoadScript loads a script by name (without .js extension).
	// Returns ErrScriptNotFound if the script doesn't exist.
	LoadScript(name string) (string, error)
}
