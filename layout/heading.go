package layout

import (
	"math"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/tsawler/outliner/model"
)

// HeadingConfig holds configuration for candidate selection
type HeadingConfig struct {
	// MaxHeadings caps the number of headings kept per document
	// Default: 50
	MaxHeadings int

	// MinScore is the lowest selection threshold, whatever the score mean
	// Default: 2
	MinScore float64

	// ThresholdRatio scales the mean candidate score into the selection threshold
	// Default: 0.7
	ThresholdRatio float64
}

// DefaultHeadingConfig returns the standard selection configuration
func DefaultHeadingConfig() HeadingConfig {
	return HeadingConfig{
		MaxHeadings:    50,
		MinScore:       2,
		ThresholdRatio: 0.7,
	}
}

// Scoring constants
const (
	minHeadingLen = 2
	maxHeadingLen = 200

	// vertical gap (layout units) that counts as separation above/below
	gapAboveThreshold = 15.0
	gapBelowThreshold = 10.0

	// spans whose top edges are closer than this share a text line
	sameLineTolerance = 5.0

	// size tolerance for the recurring-style bonus
	styleSizeTolerance = 1.0

	// other spans that must share a style for the recurring-style bonus
	minStylePeers = 2
)

// HeadingCandidate is a span that scored above zero as a potential heading
type HeadingCandidate struct {
	// Index is the span's position in extraction order
	Index int

	// Span is the originating span
	Span model.TextSpan

	// Text is the trimmed span text
	Text string

	// Score is the accumulated heuristic score
	Score int
}

// Page returns the page of the originating span
func (c HeadingCandidate) Page() int {
	return c.Span.Page
}

// Top returns the top edge of the originating span
func (c HeadingCandidate) Top() float64 {
	return c.Span.BBox.Y0
}

// Size returns the font size of the originating span
func (c HeadingCandidate) Size() float64 {
	return c.Span.Size
}

// Scorer assigns heading scores to spans. It indexes the spans once so the
// spacing, same-line and recurring-style rules avoid a quadratic scan.
// A Scorer is read-only after construction and safe for concurrent use.
type Scorer struct {
	spans  []model.TextSpan
	stats  DocumentStats
	pages  map[int]*pageIndex
	styles map[styleKey][]float64
}

// pageIndex holds the sorted vertical edges of one page's spans
type pageIndex struct {
	tops    []float64 // ascending Y0
	bottoms []float64 // ascending Y1
}

type styleKey struct {
	font string
	bold bool
}

// NewScorer builds a scorer over spans using precomputed stats
func NewScorer(spans []model.TextSpan, stats DocumentStats) *Scorer {
	s := &Scorer{
		spans:  spans,
		stats:  stats,
		pages:  make(map[int]*pageIndex),
		styles: make(map[styleKey][]float64),
	}

	for _, span := range spans {
		idx := s.pages[span.Page]
		if idx == nil {
			idx = &pageIndex{}
			s.pages[span.Page] = idx
		}
		idx.tops = append(idx.tops, span.BBox.Y0)
		idx.bottoms = append(idx.bottoms, span.BBox.Y1)

		key := styleKey{font: span.Font, bold: span.Bold}
		s.styles[key] = append(s.styles[key], span.Size)
	}

	for _, idx := range s.pages {
		sort.Float64s(idx.tops)
		sort.Float64s(idx.bottoms)
	}
	for _, sizes := range s.styles {
		sort.Float64s(sizes)
	}

	return s
}

// Candidates scores every span and returns those scoring above zero, in
// extraction order.
func (s *Scorer) Candidates() []HeadingCandidate {
	var candidates []HeadingCandidate
	for i := range s.spans {
		score, ok := s.Score(i)
		if !ok || score <= 0 {
			continue
		}
		candidates = append(candidates, HeadingCandidate{
			Index: i,
			Span:  s.spans[i],
			Text:  s.spans[i].Trimmed(),
			Score: score,
		})
	}
	return candidates
}

// Score returns the heading score of the span at index i. The second return
// value is false when the span is rejected outright (length or exclusion
// pattern) or i is out of range.
func (s *Scorer) Score(i int) (int, bool) {
	if i < 0 || i >= len(s.spans) {
		return 0, false
	}
	span := s.spans[i]
	text := span.Trimmed()
	length := utf8.RuneCountInString(text)

	if length < minHeadingLen || length > maxHeadingLen {
		return 0, false
	}
	if isExcludedHeading(text) {
		return 0, false
	}

	above, hasAbove, below, hasBelow := s.gaps(span)

	score := sizeScore(span.Size, s.stats.MeanSize)
	score += boldScore(span.Bold)
	score += patternScore(text)
	score += spacingScore(above, hasAbove, below, hasBelow)
	score += lengthScore(length)
	score += caseScore(text)
	if s.isStandalone(span) {
		score++
	}
	score += styleScore(s.stylePeers(span))

	return score, true
}

// gaps returns the vertical gap to the nearest span entirely above (closest
// bottom edge) and entirely below (closest top edge) on the same page.
func (s *Scorer) gaps(span model.TextSpan) (above float64, hasAbove bool, below float64, hasBelow bool) {
	idx := s.pages[span.Page]
	if idx == nil {
		return 0, false, 0, false
	}

	// largest bottom edge strictly above our top edge
	if n := sort.SearchFloat64s(idx.bottoms, span.BBox.Y0); n > 0 {
		above = span.BBox.Y0 - idx.bottoms[n-1]
		hasAbove = true
	}

	// smallest top edge strictly below our bottom edge
	n := sort.Search(len(idx.tops), func(k int) bool {
		return idx.tops[k] > span.BBox.Y1
	})
	if n < len(idx.tops) {
		below = idx.tops[n] - span.BBox.Y1
		hasBelow = true
	}

	return above, hasAbove, below, hasBelow
}

// isStandalone reports whether no other span on the page shares the
// span's text line.
func (s *Scorer) isStandalone(span model.TextSpan) bool {
	idx := s.pages[span.Page]
	if idx == nil {
		return true
	}

	y := span.BBox.Y0
	start := sort.SearchFloat64s(idx.tops, y-sameLineTolerance-1)
	nearby := 0
	for k := start; k < len(idx.tops) && idx.tops[k] < y+sameLineTolerance+1; k++ {
		if math.Abs(idx.tops[k]-y) < sameLineTolerance {
			nearby++
		}
	}
	// the span itself is always in the window
	return nearby <= 1
}

// stylePeers counts the other spans sharing the span's font and bold flag
// with a size within styleSizeTolerance.
func (s *Scorer) stylePeers(span model.TextSpan) int {
	sizes := s.styles[styleKey{font: span.Font, bold: span.Bold}]

	start := sort.SearchFloat64s(sizes, span.Size-styleSizeTolerance-1)
	count := 0
	for k := start; k < len(sizes) && sizes[k] < span.Size+styleSizeTolerance+1; k++ {
		if math.Abs(sizes[k]-span.Size) < styleSizeTolerance {
			count++
		}
	}
	if count > 0 {
		count-- // the span itself
	}
	return count
}

// isExcludedHeading reports whether text looks like a page number, figure
// or table caption, or appendix marker.
func isExcludedHeading(text string) bool {
	return matchesAny(headingExcludePatterns, strings.ToLower(strings.TrimSpace(text)))
}

// sizeScore rewards fonts larger than the corpus mean
func sizeScore(size, meanSize float64) int {
	if meanSize <= 0 {
		return 0
	}
	ratio := size / meanSize
	switch {
	case ratio >= 1.5:
		return 3
	case ratio >= 1.2:
		return 2
	case ratio >= 1.1:
		return 1
	default:
		return 0
	}
}

func boldScore(bold bool) int {
	if bold {
		return 2
	}
	return 0
}

// patternScore rewards numbered, lettered and bulleted heading shapes
func patternScore(text string) int {
	if hasHeadingPattern(text) {
		return 3
	}
	return 0
}

func hasHeadingPattern(text string) bool {
	return matchesAny(headingPatterns, text)
}

// spacingScore rewards visual separation from the surrounding text
func spacingScore(above float64, hasAbove bool, below float64, hasBelow bool) int {
	score := 0
	if hasAbove && above > gapAboveThreshold {
		score++
	}
	if hasBelow && below > gapBelowThreshold {
		score++
	}
	return score
}

// lengthScore favors short lines; headings are rarely long
func lengthScore(length int) int {
	switch {
	case length >= 5 && length <= 80:
		return 1
	case length > 120:
		return -1
	default:
		return 0
	}
}

func caseScore(text string) int {
	if isTitleCase(text) || isUpperCase(text) {
		return 1
	}
	return 0
}

// styleScore rewards a font style that recurs, as heading styles do
func styleScore(peers int) int {
	if peers >= minStylePeers {
		return 1
	}
	return 0
}
