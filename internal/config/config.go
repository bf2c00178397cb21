// Package config resolves the command and server settings from flags,
// environment variables, an optional YAML or JSON file, and defaults, in
// that order of precedence.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tsawler/outliner/htmldoc"
	"github.com/tsawler/outliner/layout"
	"github.com/tsawler/outliner/reader"
)

// Defaults
const (
	DefaultInputDir     = "/app/input"
	DefaultOutputDir    = "/app/output"
	DefaultWorkers      = 4
	DefaultAddr         = ":8080"
	DefaultNavigation   = "standard"
	DefaultMaxPages     = reader.DefaultMaxPages
	DefaultMaxFileBytes = reader.DefaultMaxFileBytes
)

// HeadingConfig holds the candidate selection knobs
type HeadingConfig struct {
	MaxHeadings    int
	MinScore       float64
	ThresholdRatio float64
}

// Config is the resolved configuration. A zero field means "unset" until
// ApplyDefaults runs.
type Config struct {
	InputDir  string
	OutputDir string

	// Workers bounds the documents processed in parallel
	Workers int

	MaxPages     int
	MaxFileBytes int64

	// Timeout bounds the processing of one document; zero disables it
	Timeout time.Duration

	// Addr is the HTTP listen address
	Addr string

	// Navigation is the HTML boilerplate filter: none, explicit, standard
	// or aggressive
	Navigation string

	// MetricsFile, when set, receives a Prometheus text dump after a batch run
	MetricsFile string

	Heading HeadingConfig
}

// Default returns a fully populated configuration
func Default() Config {
	var c Config
	c.ApplyDefaults()
	return c
}

// ApplyDefaults fills every unset field with its default
func (c *Config) ApplyDefaults() {
	if c.InputDir == "" {
		c.InputDir = DefaultInputDir
	}
	if c.OutputDir == "" {
		c.OutputDir = DefaultOutputDir
	}
	if c.Workers == 0 {
		c.Workers = DefaultWorkers
	}
	if c.MaxPages == 0 {
		c.MaxPages = DefaultMaxPages
	}
	if c.MaxFileBytes == 0 {
		c.MaxFileBytes = DefaultMaxFileBytes
	}
	if c.Addr == "" {
		c.Addr = DefaultAddr
	}
	if c.Navigation == "" {
		c.Navigation = DefaultNavigation
	}

	def := layout.DefaultHeadingConfig()
	if c.Heading.MaxHeadings == 0 {
		c.Heading.MaxHeadings = def.MaxHeadings
	}
	if c.Heading.MinScore == 0 {
		c.Heading.MinScore = def.MinScore
	}
	if c.Heading.ThresholdRatio == 0 {
		c.Heading.ThresholdRatio = def.ThresholdRatio
	}
}

// Validate reports every invalid field of a resolved configuration
func (c Config) Validate() error {
	var errs []error
	if c.Workers < 1 {
		errs = append(errs, fmt.Errorf("workers must be at least 1, got %d", c.Workers))
	}
	if c.MaxPages < 1 {
		errs = append(errs, fmt.Errorf("maxPages must be at least 1, got %d", c.MaxPages))
	}
	if c.Timeout < 0 {
		errs = append(errs, fmt.Errorf("timeout must not be negative, got %s", c.Timeout))
	}
	if _, err := ParseNavigation(c.Navigation); err != nil {
		errs = append(errs, err)
	}
	if c.Heading.MaxHeadings < 1 {
		errs = append(errs, fmt.Errorf("heading.maxHeadings must be at least 1, got %d", c.Heading.MaxHeadings))
	}
	if c.Heading.MinScore < 0 {
		errs = append(errs, fmt.Errorf("heading.minScore must not be negative, got %g", c.Heading.MinScore))
	}
	if c.Heading.ThresholdRatio <= 0 {
		errs = append(errs, fmt.Errorf("heading.thresholdRatio must be positive, got %g", c.Heading.ThresholdRatio))
	}
	return errors.Join(errs...)
}

// LayoutHeadingConfig converts the heading knobs for the detector
func (c Config) LayoutHeadingConfig() layout.HeadingConfig {
	return layout.HeadingConfig{
		MaxHeadings:    c.Heading.MaxHeadings,
		MinScore:       c.Heading.MinScore,
		ThresholdRatio: c.Heading.ThresholdRatio,
	}
}

// NavigationMode parses the configured HTML boilerplate filter
func (c Config) NavigationMode() htmldoc.NavigationExclusionMode {
	mode, err := ParseNavigation(c.Navigation)
	if err != nil {
		return htmldoc.NavigationExclusionStandard
	}
	return mode
}

// ParseNavigation parses a navigation filter name. The empty string means
// the default.
func ParseNavigation(s string) (htmldoc.NavigationExclusionMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none":
		return htmldoc.NavigationExclusionNone, nil
	case "explicit":
		return htmldoc.NavigationExclusionExplicit, nil
	case "", "standard":
		return htmldoc.NavigationExclusionStandard, nil
	case "aggressive":
		return htmldoc.NavigationExclusionAggressive, nil
	}
	return htmldoc.NavigationExclusionStandard, fmt.Errorf("unknown navigation mode %q", s)
}

// Resolve layers environment, file and defaults under the explicitly set
// fields of flags, then validates the result. path may be empty.
func Resolve(flags Config, path string) (Config, error) {
	cfg := flags
	if err := cfg.ApplyEnv(); err != nil {
		return cfg, err
	}
	if path != "" {
		fc, err := LoadFile(path)
		if err != nil {
			return cfg, err
		}
		if err := cfg.ApplyFile(fc); err != nil {
			return cfg, err
		}
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
