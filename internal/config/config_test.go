package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-screener/internal/types"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func intPtr(v int) *int { return &v }

func TestLoadConfig_ValidJSON(t *testing.T) {
	path := writeConfig(t, `{
		"job_url": "https://example.com/job",
		"inputs": ["resumes/", "batch.zip"],
		"weights": {"skills": 0.5, "experience": 0.2, "education": 0.2, "keywords": 0.1},
		"delay_ms": 0,
		"format": "csv",
		"verbose": true
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "https://example.com/job", cfg.JobURL)
	assert.Equal(t, []string{"resumes/", "batch.zip"}, cfg.Inputs)
	require.NotNil(t, cfg.Weights)
	assert.InDelta(t, 0.5, cfg.Weights.Skills, 1e-9)
	require.NotNil(t, cfg.DelayMS)
	assert.Equal(t, 0, *cfg.DelayMS)
	assert.Equal(t, FormatCSV, cfg.Format)
	assert.True(t, cfg.Verbose)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, `{ invalid json }`))
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_SchemaViolation(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, `{"weights": {"skills": 3}}`))
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "does not match schema")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.json")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "config path is empty")
}

func TestValidate(t *testing.T) {
	jobFile := filepath.Join(t.TempDir(), "jd.txt")
	require.NoError(t, os.WriteFile(jobFile, []byte("Python engineer"), 0o644))

	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{name: "empty", cfg: Config{}},
		{name: "existing job file", cfg: Config{Job: jobFile}},
		{name: "mutually exclusive", cfg: Config{Job: jobFile, JobURL: "https://example.com"}, wantErr: "mutually exclusive"},
		{name: "inline and url", cfg: Config{JobText: "x", JobURL: "https://example.com"}, wantErr: "mutually exclusive"},
		{name: "negative delay", cfg: Config{DelayMS: intPtr(-5)}, wantErr: "delay_ms"},
		{name: "bad weights", cfg: Config{Weights: &types.CriteriaWeights{Skills: -0.1}}, wantErr: "invalid weights"},
		{name: "unknown format", cfg: Config{Format: "pdf"}, wantErr: "unknown format"},
		{name: "missing job file", cfg: Config{Job: "/nonexistent/jd.txt"}, wantErr: "job file not found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestMergeWithDefaults(t *testing.T) {
	fileWeights := types.CriteriaWeights{Skills: 1}
	defaults := Config{
		Job:     "jd.txt",
		Inputs:  []string{"resumes"},
		Weights: &fileWeights,
		DelayMS: intPtr(0),
		Output:  "out.csv",
	}

	cfg := Config{Format: FormatJSON}
	merged := cfg.MergeWithDefaults(defaults)

	assert.Equal(t, "jd.txt", merged.Job)
	assert.Equal(t, []string{"resumes"}, merged.Inputs)
	assert.Equal(t, fileWeights, merged.CriteriaWeights())
	assert.Equal(t, time.Duration(0), merged.Delay())
	assert.Equal(t, "out.csv", merged.Output)
	assert.Equal(t, FormatJSON, merged.Format)
	assert.Equal(t, DefaultAddr, merged.Addr)

	// Mutating the merged weights must not leak into defaults.
	merged.Weights.Skills = 0.3
	assert.InDelta(t, 1.0, fileWeights.Skills, 1e-9)
}

func TestMergeWithDefaults_JobSourceNotMixed(t *testing.T) {
	cfg := Config{JobURL: "https://example.com/job"}
	merged := cfg.MergeWithDefaults(Config{Job: "jd.txt"})

	assert.Empty(t, merged.Job)
	assert.Equal(t, "https://example.com/job", merged.JobURL)
}

func TestMergeWithDefaults_BuiltIns(t *testing.T) {
	merged := (&Config{}).MergeWithDefaults(Config{})

	assert.Equal(t, DefaultFormat, merged.Format)
	assert.Equal(t, types.DefaultWeights(), merged.CriteriaWeights())
	assert.Equal(t, DefaultDelayMS*time.Millisecond, merged.Delay())
}
