package layout

import (
	"math"
	"testing"

	"github.com/tsawler/outliner/model"
)

// makeSpan creates a span for layout tests
func makeSpan(t string, page int, x0, y0, x1, y1, size float64, bold bool) model.TextSpan {
	return model.TextSpan{
		Text: t,
		Page: page,
		BBox: model.NewBBox(x0, y0, x1, y1),
		Font: "Helvetica",
		Size: size,
		Bold: bold,
	}
}

func TestComputeStats_Empty(t *testing.T) {
	stats := ComputeStats(nil)
	if stats.SpanCount != 0 || stats.MeanSize != 0 || stats.StdDevSize != 0 {
		t.Errorf("expected zero stats, got %+v", stats)
	}
	if len(stats.CommonFonts) != 0 {
		t.Errorf("expected no common fonts, got %v", stats.CommonFonts)
	}
}

func TestComputeStats_Sizes(t *testing.T) {
	spans := []model.TextSpan{
		makeSpan("a", 1, 0, 0, 10, 10, 10, false),
		makeSpan("b", 1, 0, 20, 10, 32, 12, false),
		makeSpan("c", 1, 0, 40, 10, 54, 14, false),
		makeSpan("d", 1, 0, 60, 10, 76, 16, false),
	}

	stats := ComputeStats(spans)

	if stats.MeanSize != 13 {
		t.Errorf("MeanSize = %v, want 13", stats.MeanSize)
	}
	if stats.MedianSize != 13 {
		t.Errorf("MedianSize = %v, want 13", stats.MedianSize)
	}
	if stats.MaxSize != 16 {
		t.Errorf("MaxSize = %v, want 16", stats.MaxSize)
	}
	if math.Abs(stats.StdDevSize-math.Sqrt(5)) > 1e-9 {
		t.Errorf("StdDevSize = %v, want %v", stats.StdDevSize, math.Sqrt(5))
	}
}

func TestComputeStats_OddMedian(t *testing.T) {
	spans := []model.TextSpan{
		makeSpan("a", 1, 0, 0, 10, 10, 20, false),
		makeSpan("b", 1, 0, 0, 10, 10, 10, false),
		makeSpan("c", 1, 0, 0, 10, 10, 12, false),
	}
	if got := ComputeStats(spans).MedianSize; got != 12 {
		t.Errorf("MedianSize = %v, want 12", got)
	}
}

func TestComputeStats_SingleSpanHasZeroStdDev(t *testing.T) {
	stats := ComputeStats([]model.TextSpan{makeSpan("only", 1, 0, 0, 10, 10, 11, false)})
	if stats.StdDevSize != 0 {
		t.Errorf("StdDevSize = %v, want 0", stats.StdDevSize)
	}
	if stats.MeanSize != 11 {
		t.Errorf("MeanSize = %v, want 11", stats.MeanSize)
	}
}

func TestComputeStats_UniformSizes(t *testing.T) {
	var spans []model.TextSpan
	for i := 0; i < 5; i++ {
		spans = append(spans, makeSpan("x", 1, 0, float64(i*20), 10, float64(i*20+12), 12, false))
	}
	if got := ComputeStats(spans).StdDevSize; got != 0 {
		t.Errorf("StdDevSize = %v, want 0", got)
	}
}

func TestComputeStats_CommonFonts(t *testing.T) {
	fonts := []string{"A", "B", "B", "C", "A", "D"}
	var spans []model.TextSpan
	for _, f := range fonts {
		s := makeSpan("x", 1, 0, 0, 10, 10, 10, false)
		s.Font = f
		spans = append(spans, s)
	}

	got := ComputeStats(spans).CommonFonts
	want := []string{"A", "B", "C"}
	if len(got) != len(want) {
		t.Fatalf("CommonFonts = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("CommonFonts[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestComputeStats_PageStats(t *testing.T) {
	spans := []model.TextSpan{
		makeSpan("a", 1, 10, 0, 110, 12, 10, false),
		makeSpan("b", 2, 20, 0, 70, 14, 10, false),
		makeSpan("c", 1, 0, 20, 30, 30, 10, false),
	}

	stats := ComputeStats(spans)
	p1 := stats.Pages[1]
	if len(p1.Widths) != 2 || p1.Widths[0] != 100 || p1.Widths[1] != 30 {
		t.Errorf("page 1 widths = %v, want [100 30]", p1.Widths)
	}
	if len(p1.Heights) != 2 || p1.Heights[0] != 12 || p1.Heights[1] != 10 {
		t.Errorf("page 1 heights = %v, want [12 10]", p1.Heights)
	}
	if p2 := stats.Pages[2]; len(p2.Widths) != 1 || p2.Widths[0] != 50 {
		t.Errorf("page 2 widths = %v, want [50]", p2.Widths)
	}
}
