// Package model provides the value types shared by the extractors, the
// outline detector and the formatter.
//
// # Spans
//
// A [TextSpan] is a contiguous run of text sharing one font, size and style,
// positioned on a page by a [BBox]. Extractors produce spans in reading order
// for each page; that slice order is the "extraction order" used to break
// ties wherever a deterministic choice is required.
//
// Spans are values. Nothing downstream of an extractor mutates them.
//
// # Coordinates
//
// Unlike raw PDF user space, a [BBox] uses a top-left origin: Y0 is the top
// edge, Y1 the bottom edge, and Y grows towards the bottom of the page.
//
// # Outline
//
// A [Heading] is a detected heading with a [Level] (H1, H2 or H3), its text
// and the 1-based page it appears on. An [Outline] is the ordered list of
// headings in reading order.
//
// # Documents
//
// A [Document] bundles the [Metadata] read from the source file with the
// extracted spans and the number of pages that were scanned.
package model
