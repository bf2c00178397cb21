package htmldoc

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/tsawler/outliner/model"
)

// cursor tracks the write position on the synthetic page stack
type cursor struct {
	page int
	y    float64 // top of the next line
}

func (c *cursor) atTop() bool {
	return c.y == pageMargin
}

// reserve starts a new page when a line of height lineHeight would no
// longer fit above the bottom margin.
func (c *cursor) reserve(lineHeight float64) {
	if c.y+lineHeight > pageHeight-pageMargin && !c.atTop() {
		c.page++
		c.y = pageMargin
	}
}

// layoutBlocks typesets blocks onto letter-size pages and returns one span
// per wrapped line, in reading order, plus the number of pages used.
func layoutBlocks(blocks []block) ([]model.TextSpan, int) {
	if len(blocks) == 0 {
		return nil, 0
	}

	var spans []model.TextSpan
	c := &cursor{page: 1, y: pageMargin}

	for _, b := range blocks {
		font, size, before, after := b.style()
		lineHeight := size * lineSpacing

		if !c.atTop() {
			c.y += before
		}

		for _, line := range wrap(b.text, maxLineRunes(size)) {
			c.reserve(lineHeight)
			width := math.Min(float64(utf8.RuneCountInString(line))*size*charWidth, contentWidth)
			spans = append(spans, model.TextSpan{
				Text:   line,
				Page:   c.page,
				BBox:   model.NewBBox(pageMargin, c.y, pageMargin+width, c.y+size),
				Font:   font,
				Size:   size,
				Bold:   b.bold,
				Italic: b.italic,
			})
			c.y += lineHeight
		}

		c.y += after
	}

	return spans, c.page
}

// maxLineRunes is how many average glyphs of the given size fit on a line
func maxLineRunes(size float64) int {
	n := int(contentWidth / (size * charWidth))
	if n < 1 {
		return 1
	}
	return n
}

// wrap breaks text into lines of at most limit runes at word boundaries.
// Words longer than a line are split.
func wrap(s string, limit int) []string {
	var lines []string
	var current strings.Builder
	currentLen := 0

	flush := func() {
		if currentLen > 0 {
			lines = append(lines, current.String())
			current.Reset()
			currentLen = 0
		}
	}

	for _, word := range strings.Fields(s) {
		for utf8.RuneCountInString(word) > limit {
			flush()
			runes := []rune(word)
			lines = append(lines, string(runes[:limit]))
			word = string(runes[limit:])
		}

		n := utf8.RuneCountInString(word)
		if currentLen > 0 && currentLen+1+n > limit {
			flush()
		}
		if currentLen > 0 {
			current.WriteByte(' ')
			currentLen++
		}
		current.WriteString(word)
		currentLen += n
	}
	flush()

	return lines
}
