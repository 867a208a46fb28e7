package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// HistoryConfig represents run-history configuration
type HistoryConfig struct {
	// Enabled turns on recording of runs to the history database
	Enabled bool `yaml:"enabled"`

	// DBPath is the path to the history database
	DBPath string `yaml:"db_path"`

	// KeepRuns is the number of recorded runs to retain (0 = unlimited)
	KeepRuns int `yaml:"keep_runs"`
}

// Config represents doctest configuration options
type Config struct {
	// Ellipsis enables wildcard matching: "..." in expected output
	// matches any substring of actual output
	Ellipsis bool `yaml:"ellipsis"`

	// Verbose prints a line per example as the run proceeds
	Verbose bool `yaml:"verbose"`

	// Color enables colored output (still requires a terminal)
	Color bool `yaml:"color"`

	// History contains run-history configuration
	History HistoryConfig `yaml:"history"`

	// Bindings are literal values injected into the namespace of every
	// scope, alongside the builtins
	Bindings map[string]interface{} `yaml:"bindings"`
}

// DefaultConfig returns a Config with sensible default values
func DefaultConfig() *Config {
	return &Config{
		Ellipsis: true,
		Verbose:  false,
		Color:    true,
		History: HistoryConfig{
			Enabled:  true,
			DBPath:   filepath.Join(".doctest", "history.db"),
			KeepRuns: 100,
		},
	}
}

// yamlConfig mirrors Config with pointer fields so absent keys are
// distinguishable from explicit zero values during the merge
type yamlConfig struct {
	Ellipsis *bool `yaml:"ellipsis"`
	Verbose  *bool `yaml:"verbose"`
	Color    *bool `yaml:"color"`
	History  *struct {
		Enabled  *bool   `yaml:"enabled"`
		DBPath   *string `yaml:"db_path"`
		KeepRuns *int    `yaml:"keep_runs"`
	} `yaml:"history"`
	Bindings map[string]interface{} `yaml:"bindings"`
}

// LoadConfig loads configuration from the specified file path.
// If the file doesn't exist, returns default configuration without error.
// If the file exists but is malformed, returns an error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var yamlCfg yamlConfig
	if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if yamlCfg.Ellipsis != nil {
		cfg.Ellipsis = *yamlCfg.Ellipsis
	}
	if yamlCfg.Verbose != nil {
		cfg.Verbose = *yamlCfg.Verbose
	}
	if yamlCfg.Color != nil {
		cfg.Color = *yamlCfg.Color
	}
	if yamlCfg.History != nil {
		if yamlCfg.History.Enabled != nil {
			cfg.History.Enabled = *yamlCfg.History.Enabled
		}
		if yamlCfg.History.DBPath != nil {
			cfg.History.DBPath = *yamlCfg.History.DBPath
		}
		if yamlCfg.History.KeepRuns != nil {
			cfg.History.KeepRuns = *yamlCfg.History.KeepRuns
		}
	}
	if yamlCfg.Bindings != nil {
		cfg.Bindings = yamlCfg.Bindings
	}

	return cfg, nil
}

// LoadConfigFromDir loads configuration from .doctest/config.yaml in the
// specified directory. A missing directory or file yields the defaults.
func LoadConfigFromDir(dir string) (*Config, error) {
	return LoadConfig(filepath.Join(dir, ".doctest", "config.yaml"))
}

// MergeWithFlags merges CLI flags into the configuration.
// Non-nil flag values override configuration values, so CLI flags take
// precedence over config file settings.
func (c *Config) MergeWithFlags(ellipsis, verbose, noColor, noHistory *bool) {
	if ellipsis != nil {
		c.Ellipsis = *ellipsis
	}
	if verbose != nil {
		c.Verbose = *verbose
	}
	if noColor != nil && *noColor {
		c.Color = false
	}
	if noHistory != nil && *noHistory {
		c.History.Enabled = false
	}
}

// Validate validates the configuration values
func (c *Config) Validate() error {
	if c.History.Enabled && c.History.DBPath == "" {
		return fmt.Errorf("history.db_path cannot be empty when history is enabled")
	}
	if c.History.KeepRuns < 0 {
		return fmt.Errorf("history.keep_runs must be >= 0, got %d", c.History.KeepRuns)
	}
	if _, err := c.EvalBindings(); err != nil {
		return err
	}
	return nil
}

// EvalBindings converts the configured bindings into the evaluator's value
// domain: integers widen to int64, floats to float64; strings and booleans
// pass through. Other YAML values are rejected.
func (c *Config) EvalBindings() (map[string]interface{}, error) {
	if len(c.Bindings) == 0 {
		return nil, nil
	}

	out := make(map[string]interface{}, len(c.Bindings))
	for name, value := range c.Bindings {
		switch v := value.(type) {
		case int:
			out[name] = int64(v)
		case int64:
			out[name] = v
		case float64:
			out[name] = v
		case string:
			out[name] = v
		case bool:
			out[name] = v
		default:
			return nil, fmt.Errorf("binding %q has unsupported type %T", name, value)
		}
	}
	return out, nil
}
