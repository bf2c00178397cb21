package text

import (
	"math"

	"github.com/tsawler/outliner/model"
)

// TextDensity returns the share of a page covered by span boxes. The page
// area is approximated by the furthest right and bottom span edges. Pages
// without spans have zero density.
func TextDensity(spans []model.TextSpan, page int) float64 {
	var textArea, maxX, maxY float64
	found := false

	for _, s := range spans {
		if s.Page != page {
			continue
		}
		found = true
		textArea += s.BBox.Area()
		maxX = math.Max(maxX, s.BBox.X1)
		maxY = math.Max(maxY, s.BBox.Y1)
	}

	pageArea := maxX * maxY
	if !found || pageArea == 0 {
		return 0
	}
	return textArea / pageArea
}

// PageDensities returns TextDensity for every page that has spans
func PageDensities(spans []model.TextSpan) map[int]float64 {
	densities := make(map[int]float64)
	for _, s := range spans {
		if _, done := densities[s.Page]; !done {
			densities[s.Page] = TextDensity(spans, s.Page)
		}
	}
	return densities
}
