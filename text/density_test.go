package text

import (
	"math"
	"testing"

	"github.com/tsawler/outliner/model"
)

func TestTextDensity(t *testing.T) {
	spans := []model.TextSpan{
		{Text: "a", Page: 1, BBox: model.NewBBox(0, 0, 50, 10)},
		{Text: "b", Page: 1, BBox: model.NewBBox(50, 90, 100, 100)},
		{Text: "c", Page: 2, BBox: model.NewBBox(0, 0, 10, 10)},
	}

	// 500 + 500 over a 100 x 100 page
	if got := TextDensity(spans, 1); math.Abs(got-0.1) > 1e-9 {
		t.Errorf("TextDensity(page 1) = %v, want 0.1", got)
	}
	if got := TextDensity(spans, 2); got != 1 {
		t.Errorf("TextDensity(page 2) = %v, want 1", got)
	}
	if got := TextDensity(spans, 3); got != 0 {
		t.Errorf("TextDensity(page 3) = %v, want 0", got)
	}
}

func TestTextDensity_ZeroArea(t *testing.T) {
	spans := []model.TextSpan{{Text: "a", Page: 1, BBox: model.NewBBox(0, 0, 0, 0)}}
	if got := TextDensity(spans, 1); got != 0 {
		t.Errorf("TextDensity() = %v, want 0", got)
	}
}

func TestPageDensities(t *testing.T) {
	spans := []model.TextSpan{
		{Text: "a", Page: 1, BBox: model.NewBBox(0, 0, 10, 10)},
		{Text: "b", Page: 3, BBox: model.NewBBox(0, 0, 10, 10)},
	}
	densities := PageDensities(spans)
	if len(densities) != 2 || densities[1] != 1 || densities[3] != 1 {
		t.Errorf("unexpected densities %v", densities)
	}
}
