package layout

import (
	"regexp"

	"github.com/tsawler/outliner/model"
)

// Heading shapes. Matched case-insensitively against the start of the
// trimmed text; any match is worth the pattern bonus once.
var headingPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^\d+\.?\s+`),           // 1. or 1
	regexp.MustCompile(`(?i)^\d+\.\d+\.?\s+`),      // 1.1. or 1.1
	regexp.MustCompile(`(?i)^\d+\.\d+\.\d+\.?\s+`), // 1.1.1. or 1.1.1
	regexp.MustCompile(`(?i)^[IVXLCDM]+\.?\s+`),    // roman numerals
	regexp.MustCompile(`(?i)^[A-Z]\.?\s+`),         // A. or A
	regexp.MustCompile(`(?i)^[a-z]\)?\s+`),         // a) or a
	regexp.MustCompile(`^[•▪▫◦‣⁃]\s+`),
	regexp.MustCompile(`^[-*]\s+`),
}

// Heading exclusions, matched against the lowercased trimmed text.
var headingExcludePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^\d+$`), // page numbers
	regexp.MustCompile(`^page\s+\d+`),
	regexp.MustCompile(`^fig[\p{L}\p{N}_]*\s+\d+`),
	regexp.MustCompile(`^table\s+\d+`),
	regexp.MustCompile(`^appendix\s*[a-z]?$`),
}

// Numeral overrides for level assignment, most specific first. A three-part
// numeral also starts with a one-part numeral, so the order matters.
var levelOverrides = []struct {
	pattern *regexp.Regexp
	level   model.Level
}{
	{regexp.MustCompile(`^\d+\.\d+\.\d+\.?\s`), model.H3},
	{regexp.MustCompile(`^\d+\.\d+\.?\s`), model.H2},
	{regexp.MustCompile(`^\d+\.?\s`), model.H1},
}

// Title exclusions, matched against the lowercased trimmed text.
var titleExcludePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^\d+$`),
	regexp.MustCompile(`^page\s+\d+`),
	regexp.MustCompile(`^chapter\s+\d+`),
	regexp.MustCompile(`^fig[\p{L}\p{N}_]*\s+\d+`),
	regexp.MustCompile(`^table\s+\d+`),
	regexp.MustCompile(`^[\p{L}\p{N}_]{1,3}\s*$`), // very short
	regexp.MustCompile(`^[^\p{L}\p{N}_]*$`),       // punctuation only
}

var whitespaceRun = regexp.MustCompile(`\s+`)

func matchesAny(patterns []*regexp.Regexp, s string) bool {
	for _, p := range patterns {
		if p.MatchString(s) {
			return true
		}
	}
	return false
}
