// Package text turns positioned glyph runs into text spans.
//
// # Span Assembly
//
// Extractors report text as [Fragment] values: short runs of glyphs with a
// position in top-left page coordinates, a font name and a size. The
// [Assembler] groups fragments into lines, orders each line for reading and
// merges neighbouring fragments that share a font into one
// [github.com/tsawler/outliner/model.TextSpan]:
//
//	asm := text.NewAssembler()
//	spans := asm.Assemble(pageNum, fragments)
//
// Spaces are inserted between fragments using line-level metrics, so both
// word-level and character-level producers yield readable text.
//
// # Font Styles
//
// [ParseFontName] strips subset prefixes ("ABCDEF+Helvetica-Bold") and
// derives bold and italic flags from the style keywords in the name.
//
// # Text Direction
//
// [DetectDirection] classifies text as LTR, RTL or Neutral from Unicode
// script properties. RTL lines are ordered right to left.
//
// # Utilities
//
//   - [Normalize] - NFKC normalization, BOM and NBSP cleanup, whitespace collapsing
//   - [CleanFilename] - filesystem-safe names for output artifacts
//   - [DetectLanguage] - coarse script-based language sniffing
//   - [TextDensity] - fraction of a page covered by text
package text
