package text

import "testing"

func TestDirectionString(t *testing.T) {
	tests := []struct {
		dir      Direction
		expected string
	}{
		{LTR, "LTR"},
		{RTL, "RTL"},
		{Neutral, "Neutral"},
		{Direction(42), "Unknown"},
	}

	for _, tt := range tests {
		if got := tt.dir.String(); got != tt.expected {
			t.Errorf("Direction(%d).String() = %q, want %q", tt.dir, got, tt.expected)
		}
	}
}

func TestDetectDirection(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected Direction
	}{
		{"empty", "", Neutral},
		{"latin", "Hello World", LTR},
		{"digits only", "12345", Neutral},
		{"punctuation only", "...!?", Neutral},
		{"arabic", "مرحبا بالعالم", RTL},
		{"hebrew", "שלום עולם", RTL},
		{"cyrillic", "Привет", LTR},
		{"japanese", "こんにちは", LTR},
		{"mostly hebrew", "שלום עולם hi", RTL},
		{"mostly latin", "Hello World שלום", LTR},
		{"tie", "ab של", LTR},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectDirection(tt.text); got != tt.expected {
				t.Errorf("DetectDirection(%q) = %v, want %v", tt.text, got, tt.expected)
			}
		})
	}
}

func TestCharDirection(t *testing.T) {
	tests := []struct {
		r        rune
		expected Direction
	}{
		{'A', LTR},
		{'z', LTR},
		{'5', Neutral},
		{' ', Neutral},
		{'$', Neutral},
		{'.', Neutral},
		{'ש', RTL},
		{'م', RTL},
		{'ܐ', RTL}, // Syriac
		{'Ж', LTR},
		{'中', LTR},
	}

	for _, tt := range tests {
		if got := CharDirection(tt.r); got != tt.expected {
			t.Errorf("CharDirection(%q) = %v, want %v", tt.r, got, tt.expected)
		}
	}
}

func TestLineDirection(t *testing.T) {
	rtl := []Fragment{
		NewFragment("שלום", 100, 10, 30, "Arial", 12),
		NewFragment("עולם", 60, 10, 30, "Arial", 12),
		NewFragment("42", 20, 10, 10, "Arial", 12),
	}
	if got := lineDirection(rtl); got != RTL {
		t.Errorf("lineDirection() = %v, want RTL", got)
	}

	neutral := []Fragment{NewFragment("42", 20, 10, 10, "Arial", 12)}
	if got := lineDirection(neutral); got != LTR {
		t.Errorf("lineDirection() = %v, want LTR for neutral lines", got)
	}
}
