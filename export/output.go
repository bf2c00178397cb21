package export

import (
	"fmt"
	"io"
	"strings"
)

// OutputFormat selects how an artifact is rendered
type OutputFormat int

const (
	// OutputJSON is the persisted artifact form
	OutputJSON OutputFormat = iota
	// OutputText is an indented table of contents for terminals
	OutputText
)

// String returns a human-readable representation of the output format
func (f OutputFormat) String() string {
	switch f {
	case OutputJSON:
		return "json"
	case OutputText:
		return "text"
	default:
		return "unknown"
	}
}

// FileExtension returns the typical file extension for this format
func (f OutputFormat) FileExtension() string {
	if f == OutputText {
		return ".txt"
	}
	return ".json"
}

// ParseOutputFormat parses "json" or "text"
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return OutputJSON, nil
	case "text", "txt":
		return OutputText, nil
	}
	return OutputJSON, fmt.Errorf("unknown output format %q", s)
}

// Write renders the artifact to w in the given format
func (a Artifact) Write(w io.Writer, f OutputFormat) error {
	if f == OutputText {
		return a.WriteText(w)
	}
	return a.WriteJSON(w)
}

// WriteText writes the title followed by the outline, indented two spaces
// per level, with page numbers.
func (a Artifact) WriteText(w io.Writer) error {
	var sb strings.Builder
	sb.WriteString(a.Title)
	sb.WriteString("\n")
	if a.Error != "" {
		fmt.Fprintf(&sb, "error: %s\n", a.Error)
	}

	for _, e := range a.Outline {
		indent := levelPriority(e.Level) - 1
		fmt.Fprintf(&sb, "%s%s (p. %d)\n", strings.Repeat("  ", indent), e.Text, e.Page)
	}

	_, err := io.WriteString(w, sb.String())
	return err
}
