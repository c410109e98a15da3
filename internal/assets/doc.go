// Package assets provides the stylesheet, HTML templates and carousel script
// used to compile detail pages.
//
// # Loader Architecture
//
// The package implements a layered loading system:
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from go:embed filesystem (defaults)
//	    ├── FilesystemLoader  - loads from custom directory on disk
//	    └── AssetResolver     - combines both with custom-first fallback
//
// AssetResolver is the loader used by the compiler. It tries the custom
// FilesystemLoader first and falls back to EmbeddedLoader when the asset is
// not found, so a custom directory may override a single file.
//
// # Directory Structure
//
//	{basePath}/
//	├── styles/
//	│   └── {name}.css           # page stylesheet, $FONT_FAMILY is substituted
//	├── scripts/
//	│   └── {name}.js            # carousel behavior
//	└── templates/
//	    └── {name}/
//	        ├── blocks.html      # one {{define}} per block type
//	        ├── carousel.html    # image-run carousel
//	        └── error.html       # block failure fragment
//
// # Security
//
// Asset names are validated to prevent path traversal attacks.
// FilesystemLoader resolves symlinks and verifies paths stay within basePath.
package assets
