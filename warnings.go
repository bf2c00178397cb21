package outliner

import (
	"fmt"
	"strings"
)

// Warning is a non-fatal issue met while extracting a document, such as an
// unreadable metadata dictionary or a page without text.
type Warning struct {
	// Source names the component that raised the warning ("pdf", "html")
	Source string

	// Page is the 1-based page the warning refers to, or 0 for the document
	Page int

	Message string
}

// String returns the warning as "source: page N: message"
func (w Warning) String() string {
	var sb strings.Builder
	if w.Source != "" {
		sb.WriteString(w.Source)
		sb.WriteString(": ")
	}
	if w.Page > 0 {
		fmt.Fprintf(&sb, "page %d: ", w.Page)
	}
	sb.WriteString(w.Message)
	return sb.String()
}

// FormatWarnings joins warnings into one line separated by semicolons
func FormatWarnings(warnings []Warning) string {
	parts := make([]string, len(warnings))
	for i, w := range warnings {
		parts[i] = w.String()
	}
	return strings.Join(parts, "; ")
}
