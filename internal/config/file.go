package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	yaml "gopkg.in/yaml.v3"
)

// FileConfig is the on-disk configuration schema
type FileConfig struct {
	Input        string `yaml:"input" json:"input"`
	Output       string `yaml:"output" json:"output"`
	Workers      int    `yaml:"workers" json:"workers"`
	MaxPages     int    `yaml:"maxPages" json:"maxPages"`
	MaxFileBytes int64  `yaml:"maxFileBytes" json:"maxFileBytes"`
	Timeout      string `yaml:"timeout" json:"timeout"`
	Navigation   string `yaml:"navigation" json:"navigation"`
	MetricsFile  string `yaml:"metricsFile" json:"metricsFile"`

	Server struct {
		Addr string `yaml:"addr" json:"addr"`
	} `yaml:"server" json:"server"`

	Heading struct {
		MaxHeadings    int     `yaml:"maxHeadings" json:"maxHeadings"`
		MinScore       float64 `yaml:"minScore" json:"minScore"`
		ThresholdRatio float64 `yaml:"thresholdRatio" json:"thresholdRatio"`
	} `yaml:"heading" json:"heading"`
}

// LoadFile reads YAML or JSON into FileConfig.
func LoadFile(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, fmt.Errorf("read config: %w", err)
	}

	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse yaml: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse json: %w", err)
		}
	default:
		// YAML is a superset of JSON
		if err := yaml.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse config: %w", err)
		}
	}
	return fc, nil
}

// ApplyFile copies file values into the fields of c that are still unset.
func (c *Config) ApplyFile(fc FileConfig) error {
	if c.InputDir == "" {
		c.InputDir = fc.Input
	}
	if c.OutputDir == "" {
		c.OutputDir = fc.Output
	}
	if c.Workers == 0 {
		c.Workers = fc.Workers
	}
	if c.MaxPages == 0 {
		c.MaxPages = fc.MaxPages
	}
	if c.MaxFileBytes == 0 {
		c.MaxFileBytes = fc.MaxFileBytes
	}
	if c.Timeout == 0 && fc.Timeout != "" {
		d, err := time.ParseDuration(fc.Timeout)
		if err != nil {
			return fmt.Errorf("config timeout: %w", err)
		}
		c.Timeout = d
	}
	if c.Navigation == "" {
		c.Navigation = fc.Navigation
	}
	if c.MetricsFile == "" {
		c.MetricsFile = fc.MetricsFile
	}
	if c.Addr == "" {
		c.Addr = fc.Server.Addr
	}

	if c.Heading.MaxHeadings == 0 {
		c.Heading.MaxHeadings = fc.Heading.MaxHeadings
	}
	if c.Heading.MinScore == 0 {
		c.Heading.MinScore = fc.Heading.MinScore
	}
	if c.Heading.ThresholdRatio == 0 {
		c.Heading.ThresholdRatio = fc.Heading.ThresholdRatio
	}
	return nil
}
