// Package reader extracts positioned text spans and metadata from PDF files.
//
// # Opening PDF Files
//
// Use [Open] to open a PDF file for reading:
//
//	r, err := reader.Open("document.pdf")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer r.Close()
//
// Or use [NewReader] with an existing *os.File. Files are checked before
// parsing: empty files, files over the size limit and files without a PDF
// header are rejected with [ErrEmptyFile], [ErrTooLarge] and [ErrNotPDF].
//
// # Document Information
//
//   - PageCount() - number of pages in the file
//   - Metadata() - the Info dictionary title, author, subject, creator and producer
//   - Warnings() - non-fatal issues met while reading
//
// The Info dictionary is read through pdfcpu after validation in relaxed
// mode. When pdfcpu rejects a file that is still readable, the trailer is
// consulted directly and a warning is recorded.
//
// # Span Extraction
//
//   - PageSpans(n) - the text spans of one page (1-based)
//   - Document(maxPages) - spans of the first maxPages pages plus metadata
//
// Glyph runs are converted to top-left page coordinates and merged into
// spans by [github.com/tsawler/outliner/text.Assembler]. Pages without
// extractable text, such as scanned images, yield no spans and a warning.
// Malformed content streams that make the parser panic are recovered and
// reported as errors for the affected page.
package reader
