package model

import "strings"

// TextSpan is a positioned run of text sharing one font, size and style.
type TextSpan struct {
	// Text is the span text as extracted. Extractors strip surrounding
	// whitespace but do not otherwise normalize it.
	Text string

	// Page is the 1-based page number
	Page int

	// BBox is the span's bounding box in top-left-origin coordinates
	BBox BBox

	// Font is the font name with any subset prefix removed
	Font string

	// Size is the font size in layout units
	Size float64

	Bold   bool
	Italic bool
}

// Trimmed returns the span text without surrounding whitespace.
func (s TextSpan) Trimmed() string {
	return strings.TrimSpace(s.Text)
}

// Top returns the top edge of the span.
func (s TextSpan) Top() float64 {
	return s.BBox.Y0
}

// Bottom returns the bottom edge of the span.
func (s TextSpan) Bottom() float64 {
	return s.BBox.Y1
}
