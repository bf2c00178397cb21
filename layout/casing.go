package layout

import "unicode"

// isTitleCase reports whether s is title-cased: every cased run starts with
// an upper- or title-case letter followed only by lowercase letters, and s
// contains at least one cased letter. "1. Introduction" and "The Big Idea"
// qualify; "The big idea" does not.
func isTitleCase(s string) bool {
	cased := false
	prevCased := false
	for _, r := range s {
		switch {
		case unicode.IsUpper(r) || unicode.IsTitle(r):
			if prevCased {
				return false
			}
			prevCased = true
			cased = true
		case unicode.IsLower(r):
			if !prevCased {
				return false
			}
			prevCased = true
			cased = true
		default:
			prevCased = false
		}
	}
	return cased
}

// isUpperCase reports whether s has at least one cased letter and no
// lowercase letters.
func isUpperCase(s string) bool {
	cased := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) || unicode.IsTitle(r) {
			cased = true
		}
	}
	return cased
}
