package detailpage

import "github.com/alnah/go-detailpage/internal/fonts"

// Font describes a supported web font.
type Font = fonts.Font

// DefaultFont returns the font used when a selector is unknown.
func DefaultFont() Font { return fonts.Default() }

// Fonts lists every supported font, default first.
func Fonts() []Font { return fonts.All() }

// LookupFont returns the font for selector, falling back to DefaultFont.
// The boolean reports whether selector was recognized.
func LookupFont(selector string) (Font, bool) { return fonts.Find(selector) }
