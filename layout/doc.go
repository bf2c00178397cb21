// Package layout turns a flat stream of positioned text spans into a document
// title and a three-level heading outline.
//
// The analysis is purely heuristic. It relies on visual cues (font size,
// weight, position, vertical spacing, text shape) and never on a layout
// grammar or on the meaning of the text.
//
// # Heading Detection
//
// The [HeadingDetector] runs four stages over the spans of a document:
//
//	stats := layout.ComputeStats(spans)               // corpus statistics
//	cands := layout.NewScorer(spans, stats).Candidates() // score each span
//	cands = layout.SelectCandidates(cands, config)    // threshold, cap, reorder
//	outline := layout.AssignLevels(cands)             // H1/H2/H3
//
// Most callers use the detector directly:
//
//	outline := layout.NewHeadingDetector().Detect(spans)
//
// # Title Extraction
//
// The [TitleExtractor] is independent of heading detection. It prefers the
// metadata title, then scores first-page spans for size, weight, position and
// centering, and finally falls back to [DefaultTitle]:
//
//	title, source := layout.NewTitleExtractor().Extract(meta.Title, spans)
//
// # Determinism
//
// Every stage is a pure function of its input. Ties are broken by extraction
// order (the index of a span in the input slice), so repeated runs over the
// same spans produce identical output. Pattern tables are package-level and
// never modified.
package layout
