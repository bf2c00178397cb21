// Package testpdf builds small, valid PDF files for tests.
package testpdf

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// Line is one line of text drawn on a test page
type Line struct {
	Text string
	X, Y float64 // baseline origin in PDF user space
	Size float64
	Bold bool
}

// Build writes a minimal single-font-family PDF with one content stream
// per page. Glyphs are 500 units wide. A page with no lines gets an empty
// content stream.
func Build(title string, pages [][]Line) []byte {
	var objects []string

	widths := strings.TrimSpace(strings.Repeat("500 ", 95))
	fontObj := func(base string) string {
		return fmt.Sprintf("<< /Type /Font /Subtype /Type1 /BaseFont /%s /Encoding /WinAnsiEncoding "+
			"/FirstChar 32 /LastChar 126 /Widths [%s] >>", base, widths)
	}

	// 1 catalog, 2 pages, 3-4 fonts, 5 info, then page/content pairs
	var kids []string
	for i := range pages {
		kids = append(kids, fmt.Sprintf("%d 0 R", 6+2*i))
	}
	objects = append(objects,
		"<< /Type /Catalog /Pages 2 0 R >>",
		fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d /MediaBox [0 0 612 792] >>", strings.Join(kids, " "), len(pages)),
		fontObj("Helvetica"),
		fontObj("Helvetica-Bold"),
		fmt.Sprintf("<< /Title (%s) /Producer (outliner tests) >>", escapePDFString(title)),
	)

	for i, lines := range pages {
		var content strings.Builder
		for _, l := range lines {
			font := "F1"
			if l.Bold {
				font = "F2"
			}
			fmt.Fprintf(&content, "BT /%s %g Tf 1 0 0 1 %g %g Tm (%s) Tj ET\n", font, l.Size, l.X, l.Y, escapePDFString(l.Text))
		}
		stream := content.String()
		objects = append(objects,
			fmt.Sprintf("<< /Type /Page /Parent 2 0 R /Resources << /Font << /F1 3 0 R /F2 4 0 R >> >> /Contents %d 0 R >>", 7+2*i),
			fmt.Sprintf("<< /Length %d >>\nstream\n%sendstream", len(stream), stream),
		)
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")

	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R /Info 5 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)

	return buf.Bytes()
}

func escapePDFString(s string) string {
	return strings.NewReplacer(`\`, `\\`, "(", `\(`, ")", `\)`).Replace(s)
}

// WriteFile writes data to a file in a fresh temporary directory
func WriteFile(t testing.TB, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

// Sections returns a two-page document: a bold title and a numbered section
// with body text on page 1, a numbered subsection with body text on page 2.
func Sections() [][]Line {
	return [][]Line{
		{
			{Text: "Annual Report", X: 200, Y: 720, Size: 24, Bold: true},
			{Text: "1. Introduction", X: 72, Y: 650, Size: 16, Bold: true},
			{Text: "This is body text.", X: 72, Y: 620, Size: 10},
		},
		{
			{Text: "1.1 Background", X: 72, Y: 700, Size: 14, Bold: true},
			{Text: "More body text (with parens).", X: 72, Y: 670, Size: 10},
		},
	}
}
