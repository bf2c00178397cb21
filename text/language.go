package text

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/tsawler/outliner/model"
)

// Sampling limits for language detection
const (
	languageSampleSpans = 50
	languageSampleChars = 1000
)

// DefaultLanguage is reported when no script-specific characters are found
const DefaultLanguage = "en"

// DetectLanguage guesses the document language from the scripts used in
// the first spans. It recognizes Japanese (any kana), Chinese (Han without
// kana), Russian (Cyrillic), Hebrew and Arabic, in that order of
// precedence, and reports DefaultLanguage otherwise.
func DetectLanguage(spans []model.TextSpan) string {
	sample := languageSample(spans)

	var hasKana, hasHan, hasCyrillic, hasHebrew, hasArabic bool
	for _, r := range sample {
		switch {
		case unicode.In(r, unicode.Hiragana, unicode.Katakana):
			hasKana = true
		case unicode.Is(unicode.Han, r):
			hasHan = true
		case r >= 0x0400 && r <= 0x04FF:
			hasCyrillic = true
		case r >= 0x0590 && r <= 0x05FF:
			hasHebrew = true
		case r >= 0x0600 && r <= 0x06FF:
			hasArabic = true
		}
	}

	switch {
	case hasKana:
		return "ja"
	case hasHan:
		return "zh"
	case hasCyrillic:
		return "ru"
	case hasHebrew:
		return "he"
	case hasArabic:
		return "ar"
	default:
		return DefaultLanguage
	}
}

// languageSample joins the text of up to the first 50 spans, stopping once
// more than 1000 characters have been collected.
func languageSample(spans []model.TextSpan) string {
	var sb strings.Builder
	n := 0
	for i, s := range spans {
		if i >= languageSampleSpans {
			break
		}
		sb.WriteString(s.Text)
		sb.WriteByte(' ')
		n += utf8.RuneCountInString(s.Text) + 1
		if n > languageSampleChars {
			break
		}
	}
	return sb.String()
}
