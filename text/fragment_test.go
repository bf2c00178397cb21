package text

import (
	"testing"

	"github.com/tsawler/outliner/model"
)

func TestNewFragment(t *testing.T) {
	f := NewFragment("Hello", 72, 100, 30, "Helvetica", 12)
	if f.Height != 12 {
		t.Errorf("Height = %v, want 12", f.Height)
	}
	if f.Right() != 102 || f.Bottom() != 112 {
		t.Errorf("Right/Bottom = %v/%v, want 102/112", f.Right(), f.Bottom())
	}
	if f.Direction != LTR {
		t.Errorf("Direction = %v, want LTR", f.Direction)
	}
}

func TestAssemble_Empty(t *testing.T) {
	if spans := NewAssembler().Assemble(1, nil); len(spans) != 0 {
		t.Errorf("expected no spans, got %d", len(spans))
	}
}

func TestAssemble_WordLevel(t *testing.T) {
	frags := []Fragment{
		NewFragment("Hello", 72, 100, 30, "ABCDEF+Helvetica-Bold", 12),
		NewFragment("World", 106, 100, 30, "ABCDEF+Helvetica-Bold", 12),
	}

	spans := NewAssembler().Assemble(3, frags)
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}

	s := spans[0]
	if s.Text != "Hello World" {
		t.Errorf("Text = %q, want %q", s.Text, "Hello World")
	}
	if s.Page != 3 {
		t.Errorf("Page = %d, want 3", s.Page)
	}
	if s.Font != "Helvetica-Bold" || !s.Bold || s.Italic {
		t.Errorf("unexpected style: font=%q bold=%v italic=%v", s.Font, s.Bold, s.Italic)
	}
	want := model.NewBBox(72, 100, 136, 112)
	if s.BBox != want {
		t.Errorf("BBox = %+v, want %+v", s.BBox, want)
	}
	if s.Size != 12 {
		t.Errorf("Size = %v, want 12", s.Size)
	}
}

func TestAssemble_TightFragmentsJoinWithoutSpace(t *testing.T) {
	frags := []Fragment{
		NewFragment("Intro", 72, 100, 30, "Helvetica", 12),
		NewFragment("duction", 102.5, 100, 40, "Helvetica", 12),
	}

	spans := NewAssembler().Assemble(1, frags)
	if len(spans) != 1 || spans[0].Text != "Introduction" {
		t.Errorf("expected a single joined word, got %+v", spans)
	}
}

func TestAssemble_SplitsOnFontChange(t *testing.T) {
	frags := []Fragment{
		NewFragment("Bold", 72, 100, 24, "Helvetica-Bold", 12),
		NewFragment("normal text", 100, 100, 60, "Helvetica", 12),
	}

	spans := NewAssembler().Assemble(1, frags)
	if len(spans) != 2 {
		t.Fatalf("expected 2 spans, got %d", len(spans))
	}
	if !spans[0].Bold || spans[1].Bold {
		t.Errorf("expected only the first span to be bold")
	}
}

func TestAssemble_SplitsOnSizeChange(t *testing.T) {
	frags := []Fragment{
		NewFragment("Big", 72, 100, 24, "Helvetica", 16),
		NewFragment("small", 100, 100, 30, "Helvetica", 10),
	}
	if spans := NewAssembler().Assemble(1, frags); len(spans) != 2 {
		t.Errorf("expected 2 spans, got %d", len(spans))
	}
}

func TestAssemble_SplitsOnLargeGap(t *testing.T) {
	frags := []Fragment{
		NewFragment("Left", 72, 100, 30, "Helvetica", 12),
		NewFragment("Right", 300, 100, 30, "Helvetica", 12),
	}

	spans := NewAssembler().Assemble(1, frags)
	if len(spans) != 2 {
		t.Fatalf("expected 2 spans, got %d", len(spans))
	}
	if spans[0].Text != "Left" || spans[1].Text != "Right" {
		t.Errorf("unexpected span texts %q, %q", spans[0].Text, spans[1].Text)
	}
}

func TestAssemble_Lines(t *testing.T) {
	frags := []Fragment{
		NewFragment("First line", 72, 100, 60, "Helvetica", 12),
		NewFragment("Second line", 72, 130, 60, "Helvetica", 12),
	}

	spans := NewAssembler().Assemble(1, frags)
	if len(spans) != 2 {
		t.Fatalf("expected 2 spans, got %d", len(spans))
	}
	if spans[1].BBox.Y0 != 130 {
		t.Errorf("second span top = %v, want 130", spans[1].BBox.Y0)
	}
}

func TestAssemble_OrdersLineByX(t *testing.T) {
	frags := []Fragment{
		NewFragment("World", 106, 100, 30, "Helvetica", 12),
		NewFragment("Hello", 72, 101, 30, "Helvetica", 12),
	}

	spans := NewAssembler().Assemble(1, frags)
	if len(spans) != 1 || spans[0].Text != "Hello World" {
		t.Errorf("expected %q, got %+v", "Hello World", spans)
	}
}

func TestAssemble_DropsWhitespace(t *testing.T) {
	frags := []Fragment{
		NewFragment("   ", 72, 100, 10, "Helvetica", 12),
		NewFragment("  Padded  ", 72, 140, 60, "Helvetica", 12),
	}

	spans := NewAssembler().Assemble(1, frags)
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	if spans[0].Text != "Padded" {
		t.Errorf("Text = %q, want %q", spans[0].Text, "Padded")
	}
}

func TestAssemble_CharacterLevel(t *testing.T) {
	var frags []Fragment
	x := 72.0
	for _, r := range "Hi there" {
		frags = append(frags, NewFragment(string(r), x, 100, 6, "Times-Italic", 12))
		x += 6
	}

	spans := NewAssembler().Assemble(1, frags)
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	if spans[0].Text != "Hi there" {
		t.Errorf("Text = %q, want %q", spans[0].Text, "Hi there")
	}
	if !spans[0].Italic || spans[0].Bold {
		t.Errorf("expected italic, non-bold span")
	}
}

func TestAssemble_CharacterLevelWithoutSpaces(t *testing.T) {
	// glyphs within words sit half a unit apart; words are 9 units apart
	frags := []Fragment{
		NewFragment("a", 72, 100, 6, "Helvetica", 10),
		NewFragment("b", 78.5, 100, 6, "Helvetica", 10),
		NewFragment("c", 93.5, 100, 6, "Helvetica", 10),
		NewFragment("d", 100, 100, 6, "Helvetica", 10),
	}

	spans := NewAssembler().Assemble(1, frags)
	if len(spans) != 1 || spans[0].Text != "ab cd" {
		t.Errorf("expected %q, got %+v", "ab cd", spans)
	}
}

func TestAssemble_RTL(t *testing.T) {
	frags := []Fragment{
		NewFragment("עולם", 20, 100, 30, "Arial", 12),
		NewFragment("שלום", 60, 100, 30, "Arial", 12),
	}

	spans := NewAssembler().Assemble(1, frags)
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	if spans[0].Text != "שלום עולם" {
		t.Errorf("Text = %q, want %q", spans[0].Text, "שלום עולם")
	}
	if spans[0].BBox.X0 != 20 || spans[0].BBox.X1 != 90 {
		t.Errorf("BBox = %+v, want x 20..90", spans[0].BBox)
	}
}

func TestAssemble_NormalizesText(t *testing.T) {
	frags := []Fragment{NewFragment("\ufb01nal\u00a0report", 72, 100, 60, "Helvetica", 12)}

	spans := NewAssembler().Assemble(1, frags)
	if len(spans) != 1 || spans[0].Text != "final report" {
		t.Errorf("expected normalized text, got %+v", spans)
	}
}

func TestShouldInsertSpace(t *testing.T) {
	word := lineMetrics{}
	tests := []struct {
		name     string
		frag     Fragment
		next     Fragment
		gap      float64
		metrics  lineMetrics
		expected bool
	}{
		{"word gap", NewFragment("a", 0, 0, 5, "F", 12), NewFragment("b", 0, 0, 5, "F", 12), 3, word, true},
		{"kerning", NewFragment("a", 0, 0, 5, "F", 12), NewFragment("b", 0, 0, 5, "F", 12), 0.5, word, false},
		{"overlap", NewFragment("a", 0, 0, 5, "F", 12), NewFragment("b", 0, 0, 5, "F", 12), -2, word, false},
		{"trailing space", NewFragment("a ", 0, 0, 5, "F", 12), NewFragment("b", 0, 0, 5, "F", 12), 5, word, false},
		{"leading space", NewFragment("a", 0, 0, 5, "F", 12), NewFragment(" b", 0, 0, 5, "F", 12), 5, word, false},
		{
			"character level explicit spaces",
			NewFragment("a", 0, 0, 5, "F", 12), NewFragment("b", 0, 0, 5, "F", 12), 4,
			lineMetrics{isCharacterLevel: true, hasExplicitSpaces: true, typicalCharGap: 1}, false,
		},
		{
			"character level large gap",
			NewFragment("a", 0, 0, 5, "F", 12), NewFragment("b", 0, 0, 5, "F", 12), 10,
			lineMetrics{isCharacterLevel: true}, true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := shouldInsertSpace(tt.frag, tt.next, tt.gap, tt.metrics); got != tt.expected {
				t.Errorf("shouldInsertSpace() = %v, want %v", got, tt.expected)
			}
		})
	}
}
