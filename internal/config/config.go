// Package config loads the benchmark configuration file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Aggregation selects how per-model averages combine into the overall score.
type Aggregation string

const (
	// AggregationScenarios weights each model by its evaluated-scenario count.
	AggregationScenarios Aggregation = "scenarios"

	// AggregationModels averages model scores with equal weight.
	AggregationModels Aggregation = "models"
)

// EngineConfig selects one diagnostic algorithm to benchmark.
type EngineConfig struct {
	// Kind names a built-in engine ("single-fault", "null", "random", "worst").
	Kind string `yaml:"kind"`

	// Name overrides the display name; defaults to Kind.
	Name string `yaml:"name,omitempty"`

	// Params are engine-specific settings, e.g. {seed: 7} for "random".
	Params map[string]any `yaml:"params,omitempty"`
}

// Config is the benchmark configuration.
type Config struct {
	// DataDir is the benchmark data root, containing models/ and scenarios/.
	DataDir string `yaml:"data_dir"`

	// TimeoutSec is the per-scenario diagnosis budget in seconds.
	TimeoutSec int `yaml:"timeout_seconds"`

	// Aggregation is "scenarios" (default) or "models".
	Aggregation Aggregation `yaml:"aggregation,omitempty"`

	// Parallel evaluates independent models concurrently.
	Parallel bool `yaml:"parallel,omitempty"`

	// Workers caps concurrent models when Parallel is set. 0 means NumCPU.
	Workers int `yaml:"workers,omitempty"`

	Engines []EngineConfig `yaml:"engines"`

	// ReportPath, when set, receives the CSV summary.
	ReportPath string `yaml:"report_path,omitempty"`

	// StorePath, when set, names the sqlite database score records append to.
	StorePath string `yaml:"store_path,omitempty"`
}

const DefaultTimeoutSec = 20

// Load reads and validates a config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.TimeoutSec == 0 {
		c.TimeoutSec = DefaultTimeoutSec
	}
	if c.Aggregation == "" {
		c.Aggregation = AggregationScenarios
	}
	if len(c.Engines) == 0 {
		c.Engines = []EngineConfig{{Kind: "single-fault"}}
	}
}

// Validate checks that the config is usable.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data_dir is required")
	}
	if c.TimeoutSec < 1 {
		return fmt.Errorf("timeout_seconds must be at least 1, got %d", c.TimeoutSec)
	}
	switch c.Aggregation {
	case AggregationScenarios, AggregationModels:
	default:
		return fmt.Errorf("aggregation must be %q or %q, got %q",
			AggregationScenarios, AggregationModels, c.Aggregation)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}
	for i, e := range c.Engines {
		if e.Kind == "" {
			return fmt.Errorf("engines[%d]: kind is required", i)
		}
	}
	return nil
}
