package text

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// maxFilenameLen is the longest name CleanFilename returns, in characters
const maxFilenameLen = 200

// Normalize applies NFKC normalization, removes byte order marks, turns
// non-breaking spaces into spaces and collapses whitespace runs into single
// spaces. Ligatures such as "ﬁ" become their plain letters.
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ReplaceAll(s, "\ufeff", "")
	s = strings.ReplaceAll(s, "\u00a0", " ")
	s = norm.NFKC.String(s)
	return strings.Join(strings.Fields(s), " ")
}

var filenameReplacer = strings.NewReplacer(
	"<", "_", ">", "_", ":", "_", `"`, "_", "/", "_",
	`\`, "_", "|", "_", "?", "_", "*", "_",
)

// CleanFilename replaces characters that are unsafe in file names with
// underscores and caps the result at 200 characters.
func CleanFilename(name string) string {
	cleaned := filenameReplacer.Replace(name)
	if utf8.RuneCountInString(cleaned) <= maxFilenameLen {
		return cleaned
	}
	return string([]rune(cleaned)[:maxFilenameLen])
}
