package model

import "strings"

// Level is the hierarchical rank of a heading. Only H1, H2 and H3 are
// produced; the zero value is not a valid level.
type Level int

const (
	LevelUnknown Level = iota
	H1                 // coarsest
	H2
	H3 // finest
)

// String returns the artifact form of the level ("H1", "H2", "H3").
func (l Level) String() string {
	switch l {
	case H1:
		return "H1"
	case H2:
		return "H2"
	case H3:
		return "H3"
	default:
		return "unknown"
	}
}

// Valid reports whether l is one of H1, H2 or H3.
func (l Level) Valid() bool {
	return l >= H1 && l <= H3
}

// Priority returns the sort priority of the level (H1 < H2 < H3). Invalid
// levels sort with H1.
func (l Level) Priority() int {
	if !l.Valid() {
		return int(H1)
	}
	return int(l)
}

// ParseLevel parses "H1".."H3" (case-insensitive). The second return value is
// false for anything else.
func ParseLevel(s string) (Level, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "H1":
		return H1, true
	case "H2":
		return H2, true
	case "H3":
		return H3, true
	}
	return LevelUnknown, false
}

// Heading is a detected heading.
type Heading struct {
	Level Level
	Text  string
	Page  int
}

// Outline is the ordered sequence of headings in reading order.
type Outline []Heading

// Len returns the number of headings.
func (o Outline) Len() int {
	return len(o)
}

// AtLevel returns the headings at the given level, in outline order.
func (o Outline) AtLevel(level Level) []Heading {
	var result []Heading
	for _, h := range o {
		if h.Level == level {
			result = append(result, h)
		}
	}
	return result
}

// OnPage returns the headings found on the given page.
func (o Outline) OnPage(page int) []Heading {
	var result []Heading
	for _, h := range o {
		if h.Page == page {
			result = append(result, h)
		}
	}
	return result
}

// TableOfContents renders the outline as indented plain text, two spaces
// per level.
func (o Outline) TableOfContents() string {
	var sb strings.Builder
	for _, h := range o {
		indent := 0
		if h.Level.Valid() {
			indent = int(h.Level) - 1
		}
		sb.WriteString(strings.Repeat("  ", indent))
		sb.WriteString(h.Text)
		sb.WriteString("\n")
	}
	return sb.String()
}
