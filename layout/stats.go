package layout

import (
	"math"
	"sort"

	"github.com/tsawler/outliner/model"
)

// maxCommonFonts is the number of most frequent font names kept in DocumentStats
const maxCommonFonts = 3

// PageStats holds the raw span dimensions of a single page
type PageStats struct {
	Widths  []float64
	Heights []float64
}

// DocumentStats holds corpus-wide size and font statistics for one
// detection pass. It is computed once and only read afterwards.
type DocumentStats struct {
	// SpanCount is the number of spans the statistics were computed from
	SpanCount int

	MeanSize   float64
	MedianSize float64
	MaxSize    float64

	// StdDevSize is the population standard deviation of span sizes.
	// Zero when there are fewer than two spans.
	StdDevSize float64

	// CommonFonts are the most frequent font names, most frequent first.
	// Equal counts keep first-seen order.
	CommonFonts []string

	// Pages maps 1-based page numbers to per-page span dimensions
	Pages map[int]PageStats
}

// ComputeStats aggregates size and font statistics over spans. An empty
// input yields the zero DocumentStats.
func ComputeStats(spans []model.TextSpan) DocumentStats {
	stats := DocumentStats{
		SpanCount: len(spans),
		Pages:     make(map[int]PageStats),
	}
	if len(spans) == 0 {
		return stats
	}

	sizes := make([]float64, len(spans))
	sum := 0.0
	for i, s := range spans {
		sizes[i] = s.Size
		sum += s.Size
		if s.Size > stats.MaxSize {
			stats.MaxSize = s.Size
		}

		ps := stats.Pages[s.Page]
		ps.Widths = append(ps.Widths, s.BBox.Width())
		ps.Heights = append(ps.Heights, s.BBox.Height())
		stats.Pages[s.Page] = ps
	}

	stats.MeanSize = sum / float64(len(sizes))
	stats.MedianSize = median(sizes)
	stats.StdDevSize = populationStdDev(sizes, stats.MeanSize)
	stats.CommonFonts = commonFonts(spans, maxCommonFonts)

	return stats
}

// median returns the median of values without modifying the input
func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}

func populationStdDev(values []float64, mean float64) float64 {
	if len(values) < 2 {
		return 0
	}
	sq := 0.0
	for _, v := range values {
		d := v - mean
		sq += d * d
	}
	return math.Sqrt(sq / float64(len(values)))
}

// commonFonts ranks font names by frequency. The sort is stable over
// first-seen order so equal counts keep extraction order.
func commonFonts(spans []model.TextSpan, limit int) []string {
	counts := make(map[string]int)
	var order []string
	for _, s := range spans {
		if _, seen := counts[s.Font]; !seen {
			order = append(order, s.Font)
		}
		counts[s.Font]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	if len(order) > limit {
		order = order[:limit]
	}
	return order
}
