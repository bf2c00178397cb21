package reader

import (
	"errors"
	"strings"
	"testing"

	"github.com/ledongthuc/pdf"

	"github.com/tsawler/outliner/internal/testpdf"
)

// reportPages is a two-page report with a title, a numbered section and
// body text, plus an empty third page.
func reportPages() [][]testpdf.Line {
	return append(testpdf.Sections(), nil)
}

func openReport(t *testing.T) *Reader {
	t.Helper()
	path := testpdf.WriteFile(t, "report.pdf", testpdf.Build("My Report", reportPages()))
	r, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	t.Cleanup(func() { r.Close() })
	return r
}

func TestOpen_Metadata(t *testing.T) {
	r := openReport(t)

	if r.PageCount() != 3 {
		t.Errorf("PageCount() = %d, want 3", r.PageCount())
	}
	if r.FileSize() <= 0 {
		t.Errorf("FileSize() = %d, want > 0", r.FileSize())
	}
	if got := r.Metadata().Title; got != "My Report" {
		t.Errorf("Metadata().Title = %q, want %q", got, "My Report")
	}
}

func TestPageSpans(t *testing.T) {
	r := openReport(t)

	spans, err := r.PageSpans(1)
	if err != nil {
		t.Fatalf("PageSpans(1) error: %v", err)
	}
	if len(spans) != 3 {
		t.Fatalf("expected 3 spans, got %d: %+v", len(spans), spans)
	}

	want := []struct {
		text string
		bold bool
		size float64
	}{
		{"Annual Report", true, 24},
		{"1. Introduction", true, 16},
		{"This is body text.", false, 10},
	}
	for i, w := range want {
		s := spans[i]
		if s.Text != w.text {
			t.Errorf("span %d text = %q, want %q", i, s.Text, w.text)
		}
		if s.Bold != w.bold {
			t.Errorf("span %d bold = %v, want %v", i, s.Bold, w.bold)
		}
		if s.Size != w.size {
			t.Errorf("span %d size = %v, want %v", i, s.Size, w.size)
		}
		if s.Page != 1 {
			t.Errorf("span %d page = %d, want 1", i, s.Page)
		}
	}

	if !spans[0].BBox.Above(spans[1].BBox) || !spans[1].BBox.Above(spans[2].BBox) {
		t.Error("expected spans top to bottom in page coordinates")
	}
	if spans[0].Font != "Helvetica-Bold" {
		t.Errorf("font = %q, want Helvetica-Bold", spans[0].Font)
	}
}

func TestPageSpans_Coordinates(t *testing.T) {
	r := openReport(t)

	spans, err := r.PageSpans(1)
	if err != nil || len(spans) == 0 {
		t.Fatalf("PageSpans(1) = %v, %v", spans, err)
	}

	// baseline 720 on a 792 page, 24pt: top = 792 - (720 + 0.8*24)
	title := spans[0]
	if diff := title.BBox.Y0 - 52.8; diff > 0.01 || diff < -0.01 {
		t.Errorf("title top = %v, want 52.8", title.BBox.Y0)
	}
	if title.BBox.X0 != 200 {
		t.Errorf("title left = %v, want 200", title.BBox.X0)
	}
	// 13 glyphs of 500 units at 24pt
	if diff := title.BBox.Width() - 156; diff > 0.01 || diff < -0.01 {
		t.Errorf("title width = %v, want 156", title.BBox.Width())
	}
}

func TestPageSpans_OutOfRange(t *testing.T) {
	r := openReport(t)
	for _, n := range []int{0, 4, -1} {
		if _, err := r.PageSpans(n); err == nil {
			t.Errorf("PageSpans(%d) expected error", n)
		}
	}
}

func TestDocument(t *testing.T) {
	r := openReport(t)

	doc, err := r.Document(0)
	if err != nil {
		t.Fatalf("Document() error: %v", err)
	}
	if doc.TotalPages != 3 {
		t.Errorf("TotalPages = %d, want 3", doc.TotalPages)
	}
	if doc.ScannedPages != 3 {
		t.Errorf("ScannedPages = %d, want 3", doc.ScannedPages)
	}
	if len(doc.Spans) != 5 {
		t.Fatalf("expected 5 spans, got %d", len(doc.Spans))
	}
	if doc.Spans[3].Text != "1.1 Background" || doc.Spans[3].Page != 2 {
		t.Errorf("unexpected span %+v", doc.Spans[3])
	}
	if doc.Spans[4].Text != "More body text (with parens)." {
		t.Errorf("unexpected span text %q", doc.Spans[4].Text)
	}
	if doc.Metadata.Title != "My Report" {
		t.Errorf("Metadata.Title = %q", doc.Metadata.Title)
	}

	found := false
	for _, w := range r.Warnings() {
		if w.Page == 3 && strings.Contains(w.Message, "no extractable text") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a warning for the empty page, got %v", r.Warnings())
	}
}

func TestDocument_MaxPages(t *testing.T) {
	r := openReport(t)

	doc, err := r.Document(1)
	if err != nil {
		t.Fatalf("Document(1) error: %v", err)
	}
	for _, s := range doc.Spans {
		if s.Page != 1 {
			t.Errorf("span from page %d beyond the page limit", s.Page)
		}
	}
	if doc.TotalPages != 3 || doc.ScannedPages != 1 {
		t.Errorf("pages = %d/%d, want 1/3", doc.ScannedPages, doc.TotalPages)
	}
}

func TestOpen_Rejects(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		opts Options
		want error
	}{
		{"empty", nil, Options{}, ErrEmptyFile},
		{"not pdf", []byte("hello, world"), Options{}, ErrNotPDF},
		{"too large", testpdf.Build("x", nil), Options{MaxFileBytes: 10}, ErrTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := testpdf.WriteFile(t, "input.pdf", tt.data)
			_, err := OpenWithOptions(path, tt.opts)
			if !errors.Is(err, tt.want) {
				t.Errorf("OpenWithOptions() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestOpen_Corrupt(t *testing.T) {
	path := testpdf.WriteFile(t, "corrupt.pdf", []byte("%PDF-1.4\nthis is not a pdf body\n%%EOF\n"))
	if _, err := Open(path); err == nil {
		t.Error("expected error for corrupt PDF")
	}
}

func TestOpen_Missing(t *testing.T) {
	if _, err := Open("does-not-exist.pdf"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestClose_Idempotent(t *testing.T) {
	r := openReport(t)
	if err := r.Close(); err != nil {
		t.Errorf("first Close() error: %v", err)
	}
	if err := r.Close(); err != nil {
		t.Errorf("second Close() error: %v", err)
	}
}

func TestWarningString(t *testing.T) {
	if got := (Warning{Page: 3, Message: "no text"}).String(); got != "page 3: no text" {
		t.Errorf("String() = %q", got)
	}
	if got := (Warning{Message: "bad info"}).String(); got != "bad info" {
		t.Errorf("String() = %q", got)
	}
}

func TestFragmentsFromContent(t *testing.T) {
	glyphs := []pdf.Text{
		{Font: "Helvetica", FontSize: 10, X: 110, Y: 700, W: 5, S: "A"},
		{Font: "Helvetica", FontSize: 10, X: 115, Y: 700, W: 5, S: "\n"},
		{Font: "Helvetica", FontSize: 10, X: 115, Y: 700, W: 5, S: ""},
		{Font: "Helvetica", FontSize: 0, X: 120, Y: 700, W: 5, S: "B"},
	}
	box := mediaBox{x0: 10, y0: 0, x1: 622, y1: 792}

	frags := fragmentsFromContent(glyphs, box)
	if len(frags) != 2 {
		t.Fatalf("expected 2 fragments, got %d", len(frags))
	}
	if frags[0].X != 100 || frags[0].Y != 84 || frags[0].Height != 10 {
		t.Errorf("unexpected geometry %+v", frags[0])
	}
	if frags[1].FontSize != 1 {
		t.Errorf("expected non-positive sizes to be clamped, got %v", frags[1].FontSize)
	}
}

func TestDocumentSpansAreValid(t *testing.T) {
	r := openReport(t)
	doc, err := r.Document(0)
	if err != nil {
		t.Fatal(err)
	}
	for _, s := range doc.Spans {
		if !s.BBox.IsValid() || s.Size <= 0 || s.Page < 1 || s.Text != strings.TrimSpace(s.Text) {
			t.Errorf("invalid span %+v", s)
		}
	}
}
