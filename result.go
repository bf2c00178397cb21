package outliner

import (
	"time"

	"github.com/tsawler/outliner/export"
	"github.com/tsawler/outliner/layout"
	"github.com/tsawler/outliner/model"
)

// Result is the outcome of analyzing one document
type Result struct {
	// Title is the detected title; never empty
	Title string

	// TitleSource records whether the title came from metadata, page-one
	// content or the fallback
	TitleSource layout.TitleSource

	// Outline holds at most 50 headings in reading order
	Outline model.Outline

	// Language is the detected language code of the opening text
	Language string

	// Densities maps each scanned page to its text density
	Densities map[int]float64

	// TotalPages and ScannedPages describe how much of the source was read
	TotalPages   int
	ScannedPages int

	// Spans is the number of spans analyzed
	Spans int

	// Elapsed is the wall time of the analysis, extraction included
	Elapsed time.Duration
}

// Artifact formats the result into its persisted form
func (r *Result) Artifact() export.Artifact {
	return export.Format(r.Title, r.Outline)
}
