// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jonathan/resume-screener/internal/schemas"
	"github.com/jonathan/resume-screener/internal/types"
	embedded "github.com/jonathan/resume-screener/schemas"
)

// Output formats for the screen command.
const (
	FormatTable = "table"
	FormatCSV   = "csv"
	FormatXLSX  = "xlsx"
	FormatJSON  = "json"
)

// Defaults used when neither the config file nor flags set a value.
const (
	DefaultFormat  = FormatTable
	DefaultAddr    = "127.0.0.1:8080"
	DefaultDelayMS = 100
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Job description, at most one of these
	Job     string `json:"job,omitempty"`      // Path to job description text file
	JobText string `json:"job_text,omitempty"` // Inline job description
	JobURL  string `json:"job_url,omitempty"`  // URL to fetch job posting from

	// Documents
	Inputs []string `json:"inputs,omitempty"` // Files, directories, or zip archives

	// Scoring
	Weights *types.CriteriaWeights `json:"weights,omitempty"`
	DelayMS *int                   `json:"delay_ms,omitempty"` // Pause between documents

	// Output
	Output string `json:"output,omitempty"` // Export path; stdout when empty
	Format string `json:"format,omitempty"` // table, csv, xlsx, json
	Addr   string `json:"addr,omitempty"`   // Listen address for serve

	// Behavior
	UseBrowser bool `json:"use_browser,omitempty"` // Use headless browser for SPA sites
	Verbose    bool `json:"verbose,omitempty"`     // Print detailed debug information
	LogJSON    bool `json:"log_json,omitempty"`    // Emit JSON logs
}

// LoadConfig loads configuration from a JSON file and checks it against the
// config schema.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := schemas.Validate(embedded.Config, data); err != nil {
		return nil, fmt.Errorf("config file %s does not match schema: %w", path, err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	sources := 0
	for _, s := range []string{c.Job, c.JobText, c.JobURL} {
		if s != "" {
			sources++
		}
	}
	if sources > 1 {
		return fmt.Errorf("config error: 'job', 'job_text' and 'job_url' are mutually exclusive")
	}

	if c.DelayMS != nil && *c.DelayMS < 0 {
		return fmt.Errorf("config error: 'delay_ms' must be non-negative")
	}

	if c.Weights != nil {
		if err := c.Weights.Validate(); err != nil {
			return fmt.Errorf("config error: invalid weights: %w", err)
		}
	}

	switch c.Format {
	case "", FormatTable, FormatCSV, FormatXLSX, FormatJSON:
	default:
		return fmt.Errorf("config error: unknown format %q", c.Format)
	}

	if c.Job != "" {
		if _, err := os.Stat(c.Job); os.IsNotExist(err) {
			return fmt.Errorf("config error: job file not found: %s", c.Job)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.Job == "" && result.JobText == "" && result.JobURL == "" {
		result.Job = defaults.Job
		result.JobText = defaults.JobText
		result.JobURL = defaults.JobURL
	}
	if result.Output == "" {
		result.Output = defaults.Output
	}
	if result.Format == "" {
		result.Format = defaults.Format
	}
	if result.Format == "" {
		result.Format = DefaultFormat
	}
	if result.Addr == "" {
		result.Addr = defaults.Addr
	}
	if result.Addr == "" {
		result.Addr = DefaultAddr
	}

	if len(result.Inputs) == 0 {
		result.Inputs = append([]string(nil), defaults.Inputs...)
	}

	// Pointer fields: nil means unset
	if result.Weights == nil {
		if defaults.Weights != nil {
			w := *defaults.Weights
			result.Weights = &w
		} else {
			w := types.DefaultWeights()
			result.Weights = &w
		}
	}
	if result.DelayMS == nil {
		d := DefaultDelayMS
		if defaults.DelayMS != nil {
			d = *defaults.DelayMS
		}
		result.DelayMS = &d
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// Delay returns the configured pause between documents.
func (c *Config) Delay() time.Duration {
	if c.DelayMS == nil {
		return DefaultDelayMS * time.Millisecond
	}
	return time.Duration(*c.DelayMS) * time.Millisecond
}

// CriteriaWeights returns the configured weights or the defaults.
func (c *Config) CriteriaWeights() types.CriteriaWeights {
	if c.Weights == nil {
		return types.DefaultWeights()
	}
	return *c.Weights
}
