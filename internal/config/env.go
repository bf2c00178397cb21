package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Environment variables read by ApplyEnv
const (
	EnvInputDir     = "OUTLINER_INPUT_DIR"
	EnvOutputDir    = "OUTLINER_OUTPUT_DIR"
	EnvWorkers      = "OUTLINER_WORKERS"
	EnvMaxPages     = "OUTLINER_MAX_PAGES"
	EnvMaxFileBytes = "OUTLINER_MAX_FILE_BYTES"
	EnvTimeout      = "OUTLINER_TIMEOUT"
	EnvAddr         = "OUTLINER_ADDR"
	EnvNavigation   = "OUTLINER_NAVIGATION"
	EnvMetricsFile  = "OUTLINER_METRICS_FILE"
)

// ApplyEnv populates unset fields of c from the process environment.
func (c *Config) ApplyEnv() error {
	return c.ApplyEnvFrom(os.LookupEnv)
}

// ApplyEnvFrom populates unset fields of c using lookup. Explicit values
// take precedence over the environment; malformed numbers are errors.
func (c *Config) ApplyEnvFrom(lookup func(string) (string, bool)) error {
	get := func(key string) string {
		v, _ := lookup(key)
		return strings.TrimSpace(v)
	}

	setString := func(dst *string, key string) {
		if *dst == "" {
			*dst = get(key)
		}
	}
	setString(&c.InputDir, EnvInputDir)
	setString(&c.OutputDir, EnvOutputDir)
	setString(&c.Addr, EnvAddr)
	setString(&c.Navigation, EnvNavigation)
	setString(&c.MetricsFile, EnvMetricsFile)

	setInt := func(dst *int, key string) error {
		s := get(key)
		if *dst != 0 || s == "" {
			return nil
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		*dst = n
		return nil
	}
	if err := setInt(&c.Workers, EnvWorkers); err != nil {
		return err
	}
	if err := setInt(&c.MaxPages, EnvMaxPages); err != nil {
		return err
	}

	if s := get(EnvMaxFileBytes); c.MaxFileBytes == 0 && s != "" {
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvMaxFileBytes, err)
		}
		c.MaxFileBytes = n
	}

	if s := get(EnvTimeout); c.Timeout == 0 && s != "" {
		d, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvTimeout, err)
		}
		c.Timeout = d
	}
	return nil
}
