// Package outliner extracts a document title and a three-level heading
// outline from PDF and HTML files.
//
// Basic usage:
//
//	result, warnings, err := outliner.Open("report.pdf").Outline()
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", outliner.FormatWarnings(warnings))
//	}
//	fmt.Println(result.Title)
//	for _, h := range result.Outline {
//	    fmt.Println(h.Level, h.Text, h.Page)
//	}
//
// With options:
//
//	artifact, _, err := outliner.Open("report.pdf").
//	    MaxPages(10).
//	    WithLogger(logger).
//	    Artifact()
//
// Spans produced elsewhere can be analyzed directly:
//
//	result, _, err := outliner.FromSpans(spans, model.Metadata{Title: "Report"}).Outline()
//
// The lower-level layout, reader and htmldoc packages are also available.
package outliner

import (
	"github.com/tsawler/outliner/model"
)

// Open returns an Extractor for a PDF or HTML file. Nothing is read until a
// terminal operation such as Outline is called.
//
// Example:
//
//	result, warnings, err := outliner.Open("document.pdf").Outline()
func Open(filename string) *Extractor {
	return &Extractor{
		filename: filename,
		options:  defaultOptions(),
	}
}

// FromDocument creates an Extractor over an already-extracted document.
//
// Example:
//
//	r, err := reader.Open("document.pdf")
//	if err != nil {
//	    // handle error
//	}
//	defer r.Close()
//	doc, err := r.Document(reader.DefaultMaxPages)
//	if err != nil {
//	    // handle error
//	}
//	result, _, err := outliner.FromDocument(doc).Outline()
func FromDocument(doc *model.Document) *Extractor {
	return &Extractor{
		doc:     doc,
		options: defaultOptions(),
	}
}

// FromSpans creates an Extractor over spans in extraction order plus the
// metadata of their source document.
func FromSpans(spans []model.TextSpan, metadata model.Metadata) *Extractor {
	pages := 0
	for _, s := range spans {
		if s.Page > pages {
			pages = s.Page
		}
	}
	return FromDocument(&model.Document{
		Metadata:     metadata,
		TotalPages:   pages,
		ScannedPages: pages,
		Spans:        spans,
	})
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	pages := outliner.Must(outliner.Open("document.pdf").PageCount())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustResult is a helper that wraps a call to Outline or Artifact and panics
// if the error is non-nil. It discards warnings and returns just the value.
//
// Example:
//
//	result := outliner.MustResult(outliner.Open("document.pdf").Outline())
func MustResult[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
