package layout

import (
	"github.com/rs/zerolog"

	"github.com/tsawler/outliner/model"
)

// HeadingLayout holds the intermediate results of one detection pass
type HeadingLayout struct {
	// Outline is the final heading outline in reading order
	Outline model.Outline

	// Stats are the corpus statistics the scores were computed against
	Stats DocumentStats

	// Candidates are all spans that scored above zero, in extraction order
	Candidates []HeadingCandidate

	// Selected are the candidates kept by selection, in reading order
	Selected []HeadingCandidate

	// Config is the configuration used for selection
	Config HeadingConfig
}

// HeadingDetector detects and levels the headings of a document
type HeadingDetector struct {
	config HeadingConfig
	logger zerolog.Logger
}

// NewHeadingDetector creates a new heading detector with default configuration
func NewHeadingDetector() *HeadingDetector {
	return &HeadingDetector{
		config: DefaultHeadingConfig(),
		logger: zerolog.Nop(),
	}
}

// NewHeadingDetectorWithConfig creates a heading detector with custom configuration
func NewHeadingDetectorWithConfig(config HeadingConfig) *HeadingDetector {
	return &HeadingDetector{
		config: config,
		logger: zerolog.Nop(),
	}
}

// WithLogger returns a copy of the detector that logs to logger
func (d *HeadingDetector) WithLogger(logger zerolog.Logger) *HeadingDetector {
	return &HeadingDetector{
		config: d.config,
		logger: logger,
	}
}

// Config returns the detector's configuration
func (d *HeadingDetector) Config() HeadingConfig {
	return d.config
}

// Detect returns the heading outline of spans. An empty input yields an
// empty outline.
func (d *HeadingDetector) Detect(spans []model.TextSpan) model.Outline {
	return d.Analyze(spans).Outline
}

// Analyze runs a detection pass and returns every intermediate stage
func (d *HeadingDetector) Analyze(spans []model.TextSpan) *HeadingLayout {
	result := &HeadingLayout{
		Outline: model.Outline{},
		Config:  d.config,
	}
	if len(spans) == 0 {
		return result
	}

	result.Stats = ComputeStats(spans)
	result.Candidates = NewScorer(spans, result.Stats).Candidates()
	result.Selected = SelectCandidates(result.Candidates, d.config)
	result.Outline = AssignLevels(result.Selected)

	d.logger.Debug().
		Int("spans", len(spans)).
		Float64("mean_size", result.Stats.MeanSize).
		Int("candidates", len(result.Candidates)).
		Int("headings", len(result.Outline)).
		Msg("detected headings")

	return result
}
