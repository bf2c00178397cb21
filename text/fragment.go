package text

import (
	"math"
	"sort"
	"strings"

	"github.com/tsawler/outliner/model"
)

// Fragment is a positioned run of glyphs in top-left page coordinates
type Fragment struct {
	Text      string
	X, Y      float64 // left and top edges
	Width     float64
	Height    float64
	FontName  string
	FontSize  float64
	Direction Direction
}

// NewFragment creates a fragment whose height is its font size
func NewFragment(text string, x, y, width float64, fontName string, fontSize float64) Fragment {
	return Fragment{
		Text:      text,
		X:         x,
		Y:         y,
		Width:     width,
		Height:    fontSize,
		FontName:  fontName,
		FontSize:  fontSize,
		Direction: DetectDirection(text),
	}
}

// Right returns the right edge of the fragment
func (f Fragment) Right() float64 {
	return f.X + f.Width
}

// Bottom returns the bottom edge of the fragment
func (f Fragment) Bottom() float64 {
	return f.Y + f.Height
}

// Assembler merges fragments into text spans
type Assembler struct {
	// LineTolerance is the fraction of a fragment's height within which the
	// next fragment's top edge must fall to share its line
	// Default: 0.5
	LineTolerance float64

	// MaxGap is the horizontal gap, in multiples of the font size, beyond
	// which a line is split into separate spans
	// Default: 1.5
	MaxGap float64

	// SizeTolerance is the largest size difference between fragments of one span
	// Default: 0.1
	SizeTolerance float64
}

// NewAssembler creates an assembler with default settings
func NewAssembler() *Assembler {
	return &Assembler{
		LineTolerance: 0.5,
		MaxGap:        1.5,
		SizeTolerance: 0.1,
	}
}

// Assemble merges the fragments of one page into spans. Fragments are
// grouped into lines in the order given; within a line they are ordered by
// the line's reading direction. Whitespace-only spans are dropped and span
// text is trimmed.
func (a *Assembler) Assemble(page int, fragments []Fragment) []model.TextSpan {
	var spans []model.TextSpan
	for _, line := range a.groupLines(fragments) {
		spans = append(spans, a.assembleLine(page, line)...)
	}
	return spans
}

// groupLines splits fragments into lines. A fragment joins the current line
// when its top edge is within LineTolerance × height of the previous one.
func (a *Assembler) groupLines(fragments []Fragment) [][]Fragment {
	if len(fragments) == 0 {
		return nil
	}

	var lines [][]Fragment
	current := []Fragment{fragments[0]}

	for i := 1; i < len(fragments); i++ {
		frag, prev := fragments[i], fragments[i-1]
		if math.Abs(frag.Y-prev.Y) <= prev.Height*a.LineTolerance {
			current = append(current, frag)
			continue
		}
		lines = append(lines, current)
		current = []Fragment{frag}
	}

	return append(lines, current)
}

func (a *Assembler) assembleLine(page int, line []Fragment) []model.TextSpan {
	dir := lineDirection(line)
	ordered := orderForReading(line, dir)
	metrics := measureLine(ordered, dir)

	var spans []model.TextSpan
	run := []Fragment{ordered[0]}

	for i := 1; i < len(ordered); i++ {
		prev, next := ordered[i-1], ordered[i]
		gap := horizontalGap(prev, next, dir)
		if a.sameStyle(prev, next) && gap <= prev.FontSize*a.MaxGap {
			run = append(run, next)
			continue
		}
		if span, ok := buildSpan(page, run, dir, metrics); ok {
			spans = append(spans, span)
		}
		run = []Fragment{next}
	}

	if span, ok := buildSpan(page, run, dir, metrics); ok {
		spans = append(spans, span)
	}
	return spans
}

func (a *Assembler) sameStyle(f, g Fragment) bool {
	return f.FontName == g.FontName && math.Abs(f.FontSize-g.FontSize) <= a.SizeTolerance
}

// buildSpan joins a run of same-style fragments into one span
func buildSpan(page int, run []Fragment, dir Direction, metrics lineMetrics) (model.TextSpan, bool) {
	var sb strings.Builder
	x0, y0 := run[0].X, run[0].Y
	x1, y1 := run[0].Right(), run[0].Bottom()
	sizeSum := 0.0

	for i, frag := range run {
		sb.WriteString(frag.Text)
		if i < len(run)-1 && shouldInsertSpace(frag, run[i+1], horizontalGap(frag, run[i+1], dir), metrics) {
			sb.WriteByte(' ')
		}

		x0 = math.Min(x0, frag.X)
		y0 = math.Min(y0, frag.Y)
		x1 = math.Max(x1, frag.Right())
		y1 = math.Max(y1, frag.Bottom())
		sizeSum += frag.FontSize
	}

	text := strings.TrimSpace(Normalize(sb.String()))
	if text == "" {
		return model.TextSpan{}, false
	}

	name, style := ParseFontName(run[0].FontName)
	return model.TextSpan{
		Text:   text,
		Page:   page,
		BBox:   model.NewBBox(x0, y0, x1, y1),
		Font:   name,
		Size:   sizeSum / float64(len(run)),
		Bold:   style.Bold,
		Italic: style.Italic,
	}, true
}

// orderForReading sorts a copy of the line left to right, or right to left
// for RTL lines.
func orderForReading(fragments []Fragment, dir Direction) []Fragment {
	ordered := make([]Fragment, len(fragments))
	copy(ordered, fragments)

	sort.SliceStable(ordered, func(i, j int) bool {
		if dir == RTL {
			return ordered[i].X > ordered[j].X
		}
		return ordered[i].X < ordered[j].X
	})
	return ordered
}

// horizontalGap is the distance between two consecutive fragments in
// reading direction; negative when they overlap.
func horizontalGap(frag, next Fragment, dir Direction) float64 {
	if dir == RTL {
		return frag.X - next.Right()
	}
	return next.X - frag.Right()
}

// lineMetrics holds line-level measurements for spacing decisions
type lineMetrics struct {
	isCharacterLevel  bool    // fragments average two characters or fewer
	hasExplicitSpaces bool    // the line carries its own space characters
	baseGap           float64 // 10th percentile gap between non-space fragments
	typicalCharGap    float64 // 25th percentile gap between non-space fragments
}

// measureLine computes spacing metrics over an ordered line
func measureLine(fragments []Fragment, dir Direction) lineMetrics {
	var metrics lineMetrics
	if len(fragments) == 0 {
		return metrics
	}

	totalChars := 0
	for _, frag := range fragments {
		totalChars += len([]rune(frag.Text))
		if strings.TrimSpace(frag.Text) == "" || strings.Contains(frag.Text, " ") {
			metrics.hasExplicitSpaces = true
		}
	}
	metrics.isCharacterLevel = float64(totalChars)/float64(len(fragments)) <= 2.0

	var gaps []float64
	for i := 0; i < len(fragments)-1; i++ {
		if strings.TrimSpace(fragments[i].Text) == "" || strings.TrimSpace(fragments[i+1].Text) == "" {
			continue
		}
		if gap := horizontalGap(fragments[i], fragments[i+1], dir); gap > 0 {
			gaps = append(gaps, gap)
		}
	}
	if len(gaps) == 0 {
		return metrics
	}

	sort.Float64s(gaps)
	metrics.baseGap = gaps[len(gaps)/10]
	metrics.typicalCharGap = gaps[len(gaps)/4]
	return metrics
}

// shouldInsertSpace decides whether a word break separates two fragments.
// Word-level producers are judged against an estimated space width;
// character-level producers against the line's own gap distribution.
func shouldInsertSpace(frag, next Fragment, gap float64, metrics lineMetrics) bool {
	if strings.HasSuffix(frag.Text, " ") || strings.HasPrefix(next.Text, " ") {
		return false
	}
	if gap < frag.FontSize*0.05 {
		return false
	}

	if metrics.isCharacterLevel && metrics.hasExplicitSpaces {
		if metrics.typicalCharGap > 0 {
			return gap >= metrics.typicalCharGap*5.0
		}
		return false
	}

	if metrics.isCharacterLevel {
		threshold := frag.FontSize * 0.8
		if metrics.baseGap > 0 {
			threshold = math.Max(threshold, metrics.baseGap*3.0)
		}
		return gap >= threshold
	}

	// about half of a typical space (a quarter em)
	return gap >= frag.FontSize*0.25*0.5
}
