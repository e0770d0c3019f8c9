// Package config handles configuration loading and validation for
// inkform.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config holds the complete analysis configuration.
type Config struct {
	// Analysis tunables for the structural pipeline.
	Analysis AnalysisConfig `toml:"analysis" json:"analysis"`

	// Geometry provider selection.
	Geometry GeometryConfig `toml:"geometry" json:"geometry"`

	// Output formatting.
	Output OutputConfig `toml:"output" json:"output"`

	// Logging configuration.
	Logging LoggingConfig `toml:"logging" json:"logging"`
}

// AnalysisConfig holds the perceptual and spatial thresholds.
type AnalysisConfig struct {
	// GroupDeltaE is the ΔE threshold for clustering solid paints
	// into paint groups.
	GroupDeltaE float64 `toml:"group_delta_e" json:"group_delta_e"`

	// ClusterDistanceFrac is the shape-cluster merge threshold as a
	// fraction of the viewBox diagonal.
	ClusterDistanceFrac float64 `toml:"cluster_distance_frac" json:"cluster_distance_frac"`
}

// GeometryConfig selects the geometry provider.
type GeometryConfig struct {
	// PluginPath is the path to an external geometry-provider plugin
	// binary. Empty selects the built-in pure-computation provider.
	PluginPath string `toml:"plugin_path" json:"plugin_path"`
}

// OutputConfig holds output formatting preferences.
type OutputConfig struct {
	// Format is the default output format: "text" or "json".
	Format string `toml:"format" json:"format"`

	// Preview enables ANSI colour swatches in terminal output.
	Preview bool `toml:"preview" json:"preview"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	// Level is the log level: trace, debug, info, warn, or error.
	Level string `toml:"level" json:"level"`

	// JSON switches log output to JSON lines.
	JSON bool `toml:"json" json:"json"`
}

// Default returns the configuration used when no file is supplied.
func Default() *Config {
	return &Config{
		Analysis: AnalysisConfig{
			GroupDeltaE:         12,
			ClusterDistanceFrac: 0.15,
		},
		Output: OutputConfig{
			Format:  "text",
			Preview: true,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads a TOML configuration file over the defaults and
// validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

// Validate checks the configuration for out-of-range values.
func (c *Config) Validate() error {
	if c.Analysis.GroupDeltaE <= 0 {
		return fmt.Errorf("analysis.group_delta_e must be positive, got %g", c.Analysis.GroupDeltaE)
	}
	if c.Analysis.ClusterDistanceFrac <= 0 || c.Analysis.ClusterDistanceFrac > 1 {
		return fmt.Errorf("analysis.cluster_distance_frac must be in (0, 1], got %g", c.Analysis.ClusterDistanceFrac)
	}
	switch c.Output.Format {
	case "text", "json":
	default:
		return fmt.Errorf("output.format must be text or json, got %q", c.Output.Format)
	}
	switch c.Logging.Level {
	case "trace", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of trace, debug, info, warn, error, got %q", c.Logging.Level)
	}
	return nil
}
