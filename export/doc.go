// Package export turns a detected title and outline into the persisted
// artifact.
//
// [Format] applies the output rules to raw detector output: headings with
// fewer than two characters are dropped, invalid levels become H1, pages
// below 1 become 1, duplicates (same lowercased text on the same page) keep
// their first occurrence, heading text is cleaned and truncated, and the
// outline is stably sorted by page and then by level. A blank title becomes
// [DefaultTitle].
//
// Artifacts are written as indented JSON with exactly the keys "title" and
// "outline"; a [Degraded] artifact additionally carries "error".
package export
