// Package htmldoc extracts positioned text spans from HTML documents.
//
// HTML has no page geometry, so the reader lays the document out on
// synthetic letter-size pages: each block (heading, paragraph, list item,
// table row, ...) becomes one span whose size, weight and vertical position
// follow the tag that produced it. Headings get larger sizes and more space
// above them, as a typesetter would give them.
package htmldoc

// blockKind is the structural role of a laid-out block
type blockKind int

const (
	blockParagraph blockKind = iota
	blockHeading
	blockListItem
	blockTableRow
	blockCode
	blockQuote
)

// block is one unit of text before layout
type block struct {
	kind   blockKind
	text   string
	level  int // 1-6 for headings
	bold   bool
	italic bool
}

// NavigationExclusionMode controls how navigation, headers, and footers are filtered.
type NavigationExclusionMode int

const (
	// NavigationExclusionNone includes all content without filtering.
	NavigationExclusionNone NavigationExclusionMode = iota

	// NavigationExclusionExplicit skips <nav>, <aside> and the ARIA navigation
	// and complementary roles. <header> and <footer> are skipped only at the
	// top level of the body or of a single wrapper element.
	NavigationExclusionExplicit

	// NavigationExclusionStandard (default) also skips elements whose class
	// or id names a navigation, header, footer or sidebar region.
	NavigationExclusionStandard

	// NavigationExclusionAggressive also skips link-dense containers.
	NavigationExclusionAggressive
)

// Synthetic page geometry, in points
const (
	pageWidth    = 612.0
	pageHeight   = 792.0
	pageMargin   = 72.0
	contentWidth = pageWidth - 2*pageMargin

	bodySize    = 12.0
	lineSpacing = 1.2
	charWidth   = 0.5 // average glyph width as a fraction of the size
)

// headingSizes maps h1-h6 to font sizes
var headingSizes = [7]float64{0, 24, 20, 16, 14, 13, 12}

// style returns the font, size and spacing for a block
func (b block) style() (font string, size, spaceBefore, spaceAfter float64) {
	switch b.kind {
	case blockHeading:
		size = headingSizes[b.level]
		return "sans-serif", size, size * 1.2, size * 0.5
	case blockCode:
		return "monospace", 10, 6, 6
	case blockListItem, blockTableRow:
		return "serif", bodySize, 2, 2
	default:
		return "serif", bodySize, 0, bodySize * 0.6
	}
}
