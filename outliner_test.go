package outliner

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/tsawler/outliner/export"
	"github.com/tsawler/outliner/internal/testpdf"
	"github.com/tsawler/outliner/layout"
	"github.com/tsawler/outliner/model"
)

func span(text string, page int, x0, y0, x1, y1, size float64, bold bool) model.TextSpan {
	return model.TextSpan{
		Text: text,
		Page: page,
		BBox: model.NewBBox(x0, y0, x1, y1),
		Font: "Helvetica",
		Size: size,
		Bold: bold,
	}
}

func sectionSpans() []model.TextSpan {
	return []model.TextSpan{
		span("This is regular paragraph text", 1, 72, 250, 500, 260, 10, false),
		span("1. Introduction", 1, 72, 50, 300, 66, 16, true),
		span("1.1 Background", 1, 72, 90, 300, 104, 14, true),
	}
}

const guideHTML = `<!DOCTYPE html>
<html>
<head><title>Guide</title></head>
<body>
<nav><a href="/">Home</a> <a href="/docs">Docs</a></nav>
<h1>1. Getting Started</h1>
<p>the first paragraph explains things.</p>
<h2>1.1 Installation</h2>
<p>the second paragraph explains more.</p>
<h2>1.2 Configuration</h2>
<p>the last paragraph wraps up.</p>
</body>
</html>`

func writeTemp(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestOpen_NonExistent(t *testing.T) {
	_, _, err := Open("nonexistent.pdf").Outline()
	if err == nil {
		t.Error("expected error for non-existent file")
	}
}

func TestOpen_NoFilename(t *testing.T) {
	if _, _, err := Open("").Outline(); err == nil {
		t.Error("expected error for empty filename")
	}
}

func TestFromSpans_Sections(t *testing.T) {
	result, warnings, err := FromSpans(sectionSpans(), model.Metadata{Title: "  My Report  "}).Outline()
	if err != nil {
		t.Fatalf("Outline failed: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}

	if result.Title != "My Report" {
		t.Errorf("Title = %q, want %q", result.Title, "My Report")
	}
	if result.TitleSource != layout.TitleFromMetadata {
		t.Errorf("TitleSource = %v, want metadata", result.TitleSource)
	}

	want := model.Outline{
		{Level: model.H1, Text: "1. Introduction", Page: 1},
		{Level: model.H2, Text: "1.1 Background", Page: 1},
	}
	if !reflect.DeepEqual(result.Outline, want) {
		t.Errorf("Outline = %+v, want %+v", result.Outline, want)
	}

	if result.Language != "en" {
		t.Errorf("Language = %q, want en", result.Language)
	}
	if _, ok := result.Densities[1]; !ok {
		t.Errorf("expected a density for page 1, got %v", result.Densities)
	}
	if result.Spans != 3 || result.TotalPages != 1 || result.ScannedPages != 1 {
		t.Errorf("Spans/TotalPages/ScannedPages = %d/%d/%d, want 3/1/1",
			result.Spans, result.TotalPages, result.ScannedPages)
	}
}

func TestFromSpans_Empty(t *testing.T) {
	result, _, err := FromSpans(nil, model.Metadata{}).Outline()
	if err != nil {
		t.Fatalf("Outline failed: %v", err)
	}
	if result.Title != layout.DefaultTitle {
		t.Errorf("Title = %q, want %q", result.Title, layout.DefaultTitle)
	}
	if len(result.Outline) != 0 {
		t.Errorf("expected empty outline, got %v", result.Outline)
	}

	artifact := result.Artifact()
	if artifact.Title != export.DefaultTitle || artifact.Outline == nil || len(artifact.Outline) != 0 {
		t.Errorf("Artifact = %+v", artifact)
	}
}

func TestFromSpans_DoesNotModifyInput(t *testing.T) {
	spans := sectionSpans()
	before := append([]model.TextSpan(nil), spans...)

	if _, _, err := FromSpans(spans, model.Metadata{}).Outline(); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(spans, before) {
		t.Error("Outline modified its input spans")
	}
}

func TestHTML_Outline(t *testing.T) {
	path := writeTemp(t, "guide.html", []byte(guideHTML))

	result, warnings, err := Open(path).Outline()
	if err != nil {
		t.Fatalf("Outline failed: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}

	if result.Title != "Guide" || result.TitleSource != layout.TitleFromMetadata {
		t.Errorf("Title = %q (%v), want Guide from metadata", result.Title, result.TitleSource)
	}

	want := model.Outline{
		{Level: model.H1, Text: "1. Getting Started", Page: 1},
		{Level: model.H2, Text: "1.1 Installation", Page: 1},
		{Level: model.H2, Text: "1.2 Configuration", Page: 1},
	}
	if !reflect.DeepEqual(result.Outline, want) {
		t.Errorf("Outline = %+v, want %+v", result.Outline, want)
	}
}

func TestHTML_NoVisibleText(t *testing.T) {
	path := writeTemp(t, "blank.html", []byte(`<html><head><title>Placeholder Page</title></head><body></body></html>`))

	result, warnings, err := Open(path).Outline()
	if err != nil {
		t.Fatalf("Outline failed: %v", err)
	}
	if result.Title != "Placeholder Page" {
		t.Errorf("Title = %q, want %q", result.Title, "Placeholder Page")
	}
	if len(result.Outline) != 0 {
		t.Errorf("expected empty outline, got %v", result.Outline)
	}
	if len(warnings) != 1 || warnings[0].Source != "html" {
		t.Errorf("warnings = %v, want one html warning", warnings)
	}
}

func TestHTML_SizeLimits(t *testing.T) {
	empty := writeTemp(t, "empty.html", nil)
	if _, _, err := Open(empty).Outline(); !errors.Is(err, ErrEmptyFile) {
		t.Errorf("empty file error = %v, want ErrEmptyFile", err)
	}

	path := writeTemp(t, "guide.html", []byte(guideHTML))
	if _, _, err := Open(path).MaxFileBytes(10).Outline(); !errors.Is(err, ErrTooLarge) {
		t.Errorf("large file error = %v, want ErrTooLarge", err)
	}
	if _, _, err := Open(path).MaxFileBytes(-1).Outline(); err != nil {
		t.Errorf("disabled limit error = %v", err)
	}
}

func TestPDF_Outline(t *testing.T) {
	pages := append(testpdf.Sections(), nil)
	path := testpdf.WriteFile(t, "report.pdf", testpdf.Build("Quarterly Results", pages))

	result, warnings, err := Open(path).Outline()
	if err != nil {
		t.Fatalf("Outline failed: %v", err)
	}

	if result.Title != "Quarterly Results" {
		t.Errorf("Title = %q, want %q", result.Title, "Quarterly Results")
	}
	want := model.Outline{
		{Level: model.H1, Text: "Annual Report", Page: 1},
		{Level: model.H1, Text: "1. Introduction", Page: 1},
		{Level: model.H2, Text: "1.1 Background", Page: 2},
	}
	if !reflect.DeepEqual(result.Outline, want) {
		t.Errorf("Outline = %+v, want %+v", result.Outline, want)
	}
	if result.TotalPages != 3 || result.ScannedPages != 3 {
		t.Errorf("TotalPages/ScannedPages = %d/%d, want 3/3", result.TotalPages, result.ScannedPages)
	}

	found := false
	for _, w := range warnings {
		if w.Source == "pdf" && w.Page == 3 {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a pdf warning for page 3, got %v", warnings)
	}
}

func TestPDF_MaxPagesAndHeadingConfig(t *testing.T) {
	path := testpdf.WriteFile(t, "report.pdf", testpdf.Build("Quarterly Results", testpdf.Sections()))

	result, _, err := Open(path).MaxPages(1).Outline()
	if err != nil {
		t.Fatalf("Outline failed: %v", err)
	}
	for _, h := range result.Outline {
		if h.Page != 1 {
			t.Errorf("heading %q on page %d beyond the page limit", h.Text, h.Page)
		}
	}
	if result.ScannedPages != 1 || result.TotalPages != 2 {
		t.Errorf("ScannedPages/TotalPages = %d/%d, want 1/2", result.ScannedPages, result.TotalPages)
	}

	cfg := layout.DefaultHeadingConfig()
	cfg.MaxHeadings = 1
	result, _, err = Open(path).HeadingConfig(cfg).Outline()
	if err != nil {
		t.Fatalf("Outline failed: %v", err)
	}
	if len(result.Outline) != 1 {
		t.Errorf("expected 1 heading, got %d", len(result.Outline))
	}
}

func TestPDF_SniffedFormat(t *testing.T) {
	path := testpdf.WriteFile(t, "upload.bin", testpdf.Build("Sniffed", testpdf.Sections()))

	artifact, _, err := Open(path).Artifact()
	if err != nil {
		t.Fatalf("Artifact failed: %v", err)
	}
	if artifact.Title != "Sniffed" {
		t.Errorf("Title = %q, want Sniffed", artifact.Title)
	}
	if len(artifact.Outline) == 0 {
		t.Error("expected headings")
	}
}

func TestUnsupportedFormat(t *testing.T) {
	path := writeTemp(t, "notes.txt", []byte("just some notes"))
	_, _, err := Open(path).Outline()
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestPageCount(t *testing.T) {
	path := testpdf.WriteFile(t, "report.pdf", testpdf.Build("x", testpdf.Sections()))
	if n := Must(Open(path).PageCount()); n != 2 {
		t.Errorf("PageCount = %d, want 2", n)
	}
}

func TestExtractorIsImmutable(t *testing.T) {
	base := Open("doc.pdf")
	limited := base.MaxPages(3).MaxFileBytes(1024)

	if base.options.maxPages != 50 || base.options.maxFileBytes != 0 {
		t.Errorf("base options changed: %+v", base.options)
	}
	if limited.options.maxPages != 3 || limited.options.maxFileBytes != 1024 {
		t.Errorf("limited options = %+v", limited.options)
	}
	if base.MaxPages(0).options.maxPages != 50 {
		t.Error("MaxPages(0) should restore the default")
	}
}

func TestWarnings(t *testing.T) {
	tests := []struct {
		w    Warning
		want string
	}{
		{Warning{Message: "plain"}, "plain"},
		{Warning{Source: "pdf", Message: "metadata unreadable"}, "pdf: metadata unreadable"},
		{Warning{Source: "pdf", Page: 3, Message: "no extractable text"}, "pdf: page 3: no extractable text"},
	}
	for _, tt := range tests {
		if got := tt.w.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}

	all := FormatWarnings([]Warning{tests[0].w, tests[2].w})
	if all != "plain; pdf: page 3: no extractable text" {
		t.Errorf("FormatWarnings = %q", all)
	}
	if FormatWarnings(nil) != "" {
		t.Error("FormatWarnings(nil) should be empty")
	}
}

func TestMustPanics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic")
		} else if !strings.Contains(r.(error).Error(), "open pdf") {
			t.Errorf("unexpected panic value: %v", r)
		}
	}()
	MustResult(Open("missing.pdf").Outline())
}
