package text

import "strings"

// FontStyle holds the style flags derived from a font name
type FontStyle struct {
	Bold   bool
	Italic bool
}

// weight and slant keywords found in PostScript and TrueType font names,
// e.g. "Helvetica-BoldOblique", "Arial,BoldItalic", "NotoSans-Black"
var (
	boldKeywords   = []string{"bold", "black", "heavy", "semibold", "demi"}
	italicKeywords = []string{"italic", "oblique", "slanted"}
)

// ParseFontName strips a leading slash and a subset prefix ("ABCDEF+") from
// a font name and derives its style flags.
func ParseFontName(name string) (string, FontStyle) {
	name = strings.TrimPrefix(name, "/")
	name = stripSubsetPrefix(name)

	lower := strings.ToLower(name)
	return name, FontStyle{
		Bold:   containsAny(lower, boldKeywords),
		Italic: containsAny(lower, italicKeywords),
	}
}

// stripSubsetPrefix removes the six-uppercase-letter tag PDF producers put
// in front of embedded font subsets.
func stripSubsetPrefix(name string) string {
	if len(name) < 7 || name[6] != '+' {
		return name
	}
	for i := 0; i < 6; i++ {
		if name[i] < 'A' || name[i] > 'Z' {
			return name
		}
	}
	return name[7:]
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
