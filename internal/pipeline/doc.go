// Package pipeline compiles a parsed document into a detail page.
//
// The stages are:
//   - Renderer: maps one decoded block to markup through the template set
//   - Composer: walks the raw block list, groups consecutive full_image
//     blocks into carousels and isolates failures per block or image run
//   - BuildHead: metadata, font links and the stylesheet for the chosen font
//   - Assembler: doctype, head, container body and the carousel script
//
// Everything here is synchronous and deterministic. Browser rendering for PNG
// export is handled separately by the root detailpage package using headless
// Chrome (go-rod).
package pipeline
