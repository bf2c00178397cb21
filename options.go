package outliner

import (
	"github.com/rs/zerolog"

	"github.com/tsawler/outliner/htmldoc"
	"github.com/tsawler/outliner/layout"
	"github.com/tsawler/outliner/reader"
)

// ExtractOptions holds configuration for outline extraction.
type ExtractOptions struct {
	// Leading pages read from the source
	maxPages int

	// Input size limit; zero uses the reader default, negative disables it
	maxFileBytes int64

	// Candidate selection knobs
	heading layout.HeadingConfig

	// HTML boilerplate filtering
	navigation htmldoc.NavigationExclusionMode

	logger zerolog.Logger
}

// defaultOptions returns the default extraction options.
func defaultOptions() ExtractOptions {
	return ExtractOptions{
		maxPages:   reader.DefaultMaxPages,
		heading:    layout.DefaultHeadingConfig(),
		navigation: htmldoc.NavigationExclusionStandard,
		logger:     zerolog.Nop(),
	}
}

