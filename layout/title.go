package layout

import (
	"math"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/tsawler/outliner/model"
)

// DefaultTitle is returned when neither metadata nor content yields a title
const DefaultTitle = "Document Title"

// TitleSource records which strategy produced a title
type TitleSource int

const (
	TitleFallback TitleSource = iota
	TitleFromMetadata
	TitleFromContent
)

// String returns a string representation of the title source
func (s TitleSource) String() string {
	switch s {
	case TitleFromMetadata:
		return "metadata"
	case TitleFromContent:
		return "content"
	default:
		return "fallback"
	}
}

const (
	minTitleLen = 3
	maxTitleLen = 200

	// metadata titles must be longer than this
	minMetadataTitleLen = 2

	longTitleLen   = 100
	capsTitleLen   = 5
	titleUpperZone = 0.3 // fraction of page height
	titleCenterTol = 0.2 // fraction of page width
	titleLargeFrac = 0.8 // of the largest first-page size
	titleMeanBoost = 1.5 // of the mean first-page size
)

// TitleExtractor picks a document title. It is independent of heading
// detection and safe for concurrent use.
type TitleExtractor struct {
	logger zerolog.Logger
}

// NewTitleExtractor creates a title extractor that does not log
func NewTitleExtractor() *TitleExtractor {
	return &TitleExtractor{logger: zerolog.Nop()}
}

// WithLogger returns a copy of the extractor that logs to logger
func (t *TitleExtractor) WithLogger(logger zerolog.Logger) *TitleExtractor {
	return &TitleExtractor{logger: logger}
}

// Extract returns the document title and the strategy that produced it.
// The metadata title wins when it is usable; otherwise first-page spans are
// scored; otherwise DefaultTitle is returned. The content heuristic is not
// evaluated when the metadata title is accepted.
func (t *TitleExtractor) Extract(metadataTitle string, spans []model.TextSpan) (string, TitleSource) {
	if title, ok := MetadataTitle(metadataTitle); ok {
		t.logger.Debug().Str("title", title).Msg("title from metadata")
		return title, TitleFromMetadata
	}

	if title, ok := ContentTitle(spans); ok {
		t.logger.Debug().Str("title", title).Msg("title from content")
		return title, TitleFromContent
	}

	t.logger.Debug().Str("title", DefaultTitle).Msg("using fallback title")
	return DefaultTitle, TitleFallback
}

// MetadataTitle trims a metadata title field and accepts it when it is
// longer than two characters.
func MetadataTitle(raw string) (string, bool) {
	title := strings.TrimSpace(raw)
	if utf8.RuneCountInString(title) > minMetadataTitleLen {
		return title, true
	}
	return "", false
}

// titleCandidate is a scored first-page span
type titleCandidate struct {
	index int
	text  string
	top   float64
	score int
}

// ContentTitle looks for large, bold, high, centered text on page 1.
func ContentTitle(spans []model.TextSpan) (string, bool) {
	var firstPage []model.TextSpan
	for _, s := range spans {
		if s.Page == 1 {
			firstPage = append(firstPage, s)
		}
	}
	if len(firstPage) == 0 {
		return "", false
	}

	var sizeSum, maxSize, pageHeight, pageWidth float64
	for _, s := range firstPage {
		sizeSum += s.Size
		maxSize = math.Max(maxSize, s.Size)
		pageHeight = math.Max(pageHeight, s.BBox.Y1)
		pageWidth = math.Max(pageWidth, s.BBox.X1)
	}
	meanSize := sizeSum / float64(len(firstPage))

	var candidates []titleCandidate
	for i, s := range firstPage {
		text := s.Trimmed()
		if !titleEligible(text) {
			continue
		}

		score := titleScore(s, text, maxSize, meanSize, pageWidth, pageHeight)
		if score > 0 {
			candidates = append(candidates, titleCandidate{
				index: i,
				text:  text,
				top:   s.BBox.Y0,
				score: score,
			})
		}
	}
	if len(candidates) == 0 {
		return "", false
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		return candidates[i].top < candidates[j].top
	})

	title := cleanTitle(candidates[0].text)
	if utf8.RuneCountInString(title) < minTitleLen {
		return "", false
	}
	return title, true
}

// titleEligible applies the length bounds and the non-title patterns
func titleEligible(text string) bool {
	n := utf8.RuneCountInString(text)
	if n < minTitleLen || n > maxTitleLen {
		return false
	}
	return !matchesAny(titleExcludePatterns, strings.ToLower(text))
}

// titleScore scores one first-page span as a title candidate
func titleScore(s model.TextSpan, text string, maxSize, meanSize, pageWidth, pageHeight float64) int {
	score := 0

	if s.Size >= maxSize*titleLargeFrac {
		score += 3
	} else if s.Size >= meanSize*titleMeanBoost {
		score += 2
	}

	if s.Bold {
		score += 2
	}

	if s.BBox.Y0 <= pageHeight*titleUpperZone {
		score += 2
	}

	center := s.BBox.Center().X
	if math.Abs(center-pageWidth/2) < pageWidth*titleCenterTol {
		score++
	}

	n := utf8.RuneCountInString(text)
	if n > longTitleLen {
		score--
	}

	if isTitleCase(text) || (isUpperCase(text) && n > capsTitleLen) {
		score++
	}

	return score
}

// cleanTitle collapses whitespace and strips surrounding quotes
func cleanTitle(text string) string {
	title := whitespaceRun.ReplaceAllString(strings.TrimSpace(text), " ")
	return strings.Trim(title, `"'`)
}
