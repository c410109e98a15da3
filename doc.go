// Package detailpage compiles block-based product detail page descriptions
// into self-contained HTML documents.
//
// # Quick Start
//
// Compile a JSON description with one of the supported Korean web fonts:
//
//	html, err := detailpage.Compile(documentText, "Nanum Gothic")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("page.html", []byte(html), 0644)
//
// The package-level Compile uses the built-in stylesheet and templates. Create a
// Compiler to customize them.
//
// # Document Format
//
// A document is a JSON object with "project", "description" and an ordered
// "blocks" array. Each block carries a "type" discriminant and a "block_id":
//
//	{
//	  "project": "Spring sale",
//	  "description": "Hydrating cream",
//	  "blocks": [
//	    {"type": "hero_section", "block_id": "h1", "brandTag": "BRAND", ...},
//	    {"type": "full_image", "block_id": "i1", "src": "a.jpg", "alt": "front"},
//	    {"type": "full_image", "block_id": "i2", "src": "b.jpg", "alt": "back"}
//	  ]
//	}
//
// Consecutive full_image blocks are shown as one carousel. Free-text fields are
// inserted as HTML without escaping, so content may carry inline markup.
//
// # Failure Handling
//
// Only a malformed document fails compilation, with a *ParseError (not JSON) or
// a *SchemaError (missing or mistyped top-level field). A block that cannot be
// rendered is replaced by a visible error fragment and the rest of the page is
// still produced:
//
//	res, err := compiler.CompileResult(documentText, "")
//	for _, f := range res.Failures {
//	    log.Printf("block %s: %v", f.BlockID, f.Err)
//	}
//
// # Configuration
//
// Use functional options to customize the compiler:
//
//	compiler, err := detailpage.NewCompiler(
//	    detailpage.WithStyle("./brand.css"),
//	    detailpage.WithAssetPath("/path/to/custom/assets"),
//	    detailpage.WithLogger(logger),
//	)
//
// A Compiler is immutable and safe for concurrent use.
//
// # PNG Export
//
// Exporter captures compiled pages with headless Chrome (go-rod). For batch
// export, ExporterPool manages several browser instances:
//
//	pool, err := detailpage.NewExporterPool(detailpage.ResolvePoolSize(0))
//	defer pool.Close()
//
//	exp := pool.Acquire()
//	defer pool.Release(exp)
//	png, err := exp.ToPNG(ctx, html)
//
// # Custom Assets
//
// Override the built-in stylesheet, script and templates using AssetLoader:
//
//	loader, err := detailpage.NewAssetLoader("/path/to/assets")
//	compiler, err := detailpage.NewCompiler(detailpage.WithAssetLoader(loader))
//
// Asset directory structure:
//
//	assets/
//	├── styles/
//	│   └── custom.css
//	├── scripts/
//	│   └── carousel.js
//	└── templates/
//	    └── custom/
//	        ├── blocks.html
//	        ├── carousel.html
//	        └── error.html
//
// Missing assets fall back to the embedded defaults.
package detailpage
