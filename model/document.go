package model

// Metadata contains document-level information read from the source file
type Metadata struct {
	Title    string
	Author   string
	Subject  string
	Creator  string
	Producer string
}

// Document is the output of an extractor: metadata plus the spans of the
// scanned pages in extraction order.
type Document struct {
	Metadata Metadata

	// TotalPages is the page count of the source document
	TotalPages int

	// ScannedPages is the number of leading pages spans were read from
	ScannedPages int

	Spans []TextSpan
}

// PageSpans returns the spans on the given page in extraction order.
func (d *Document) PageSpans(page int) []TextSpan {
	if d == nil {
		return nil
	}
	var result []TextSpan
	for _, s := range d.Spans {
		if s.Page == page {
			result = append(result, s)
		}
	}
	return result
}

// IsEmpty reports whether the document produced no spans.
func (d *Document) IsEmpty() bool {
	return d == nil || len(d.Spans) == 0
}
