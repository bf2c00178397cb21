package text

import "testing"

func TestParseFontName(t *testing.T) {
	tests := []struct {
		name           string
		expectedName   string
		expectedBold   bool
		expectedItalic bool
	}{
		{"Helvetica", "Helvetica", false, false},
		{"Helvetica-Bold", "Helvetica-Bold", true, false},
		{"Helvetica-BoldOblique", "Helvetica-BoldOblique", true, true},
		{"Times-Italic", "Times-Italic", false, true},
		{"/Times-BoldItalic", "Times-BoldItalic", true, true},
		{"ABCDEF+Arial,Bold", "Arial,Bold", true, false},
		{"XYZABC+NotoSans-Black", "NotoSans-Black", true, false},
		{"Myriad-SemiboldIt", "Myriad-SemiboldIt", true, false},
		{"Abcdef+Arial", "Abcdef+Arial", false, false},
		{"ABC+Arial", "ABC+Arial", false, false},
		{"", "", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, style := ParseFontName(tt.name)
			if name != tt.expectedName {
				t.Errorf("name = %q, want %q", name, tt.expectedName)
			}
			if style.Bold != tt.expectedBold {
				t.Errorf("Bold = %v, want %v", style.Bold, tt.expectedBold)
			}
			if style.Italic != tt.expectedItalic {
				t.Errorf("Italic = %v, want %v", style.Italic, tt.expectedItalic)
			}
		})
	}
}
