package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-screener/internal/config"
	"github.com/jonathan/resume-screener/internal/types"
)

// sharedFlags are the flags common to screen and serve. Each overrides the
// config file only when set explicitly.
type sharedFlags struct {
	configPath string
	job        string
	jobText    string
	jobURL     string
	delayMS    int
	skills     float64
	experience float64
	education  float64
	keywords   float64
	useBrowser bool
	verbose    bool
	logJSON    bool
}

func (f *sharedFlags) register(cmd *cobra.Command) {
	defaults := types.DefaultWeights()
	flags := cmd.Flags()

	// Config file flag (processed first)
	flags.StringVar(&f.configPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	flags.StringVarP(&f.job, "job", "j", "", "Path to job description text file")
	flags.StringVar(&f.jobText, "job-text", "", "Job description text")
	flags.StringVar(&f.jobURL, "job-url", "", "URL to fetch the job posting from")
	flags.IntVar(&f.delayMS, "delay-ms", config.DefaultDelayMS, "Pause between documents in milliseconds")
	flags.Float64Var(&f.skills, "weight-skills", defaults.Skills, "Weight of the skills sub-score (0-1)")
	flags.Float64Var(&f.experience, "weight-experience", defaults.Experience, "Weight of the experience sub-score (0-1)")
	flags.Float64Var(&f.education, "weight-education", defaults.Education, "Weight of the education sub-score (0-1)")
	flags.Float64Var(&f.keywords, "weight-keywords", defaults.Keywords, "Weight of the keyword sub-score (0-1)")
	flags.BoolVar(&f.useBrowser, "use-browser", false, "Use headless browser for SPA job pages (requires Chrome)")
	flags.BoolVarP(&f.verbose, "verbose", "v", false, "Print detailed debug information")
	flags.BoolVar(&f.logJSON, "log-json", false, "Emit logs as JSON")
}

// load reads the config file if given, applies the environment and then
// explicitly set flags, fills defaults and validates the result.
func (f *sharedFlags) load(cmd *cobra.Command) (config.Config, error) {
	var cfg config.Config
	if f.configPath != "" {
		loaded, err := config.LoadConfig(f.configPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to load config: %w", err)
		}
		if err := loaded.Validate(); err != nil {
			return cfg, err
		}
		cfg = *loaded
	}

	if v := os.Getenv("SCREENER_LOG_JSON"); v != "" {
		logJSON, err := strconv.ParseBool(v)
		if err != nil {
			return cfg, fmt.Errorf("invalid SCREENER_LOG_JSON %q: %w", v, err)
		}
		cfg.LogJSON = logJSON
	}

	changed := cmd.Flags().Changed
	if changed("job") || changed("job-text") || changed("job-url") {
		cfg.Job, cfg.JobText, cfg.JobURL = f.job, f.jobText, f.jobURL
	}
	if changed("delay-ms") {
		d := f.delayMS
		cfg.DelayMS = &d
	}
	if changed("weight-skills") || changed("weight-experience") || changed("weight-education") || changed("weight-keywords") {
		w := cfg.CriteriaWeights()
		if changed("weight-skills") {
			w.Skills = f.skills
		}
		if changed("weight-experience") {
			w.Experience = f.experience
		}
		if changed("weight-education") {
			w.Education = f.education
		}
		if changed("weight-keywords") {
			w.Keywords = f.keywords
		}
		cfg.Weights = &w
	}
	if changed("use-browser") {
		cfg.UseBrowser = f.useBrowser
	}
	if changed("verbose") {
		cfg.Verbose = f.verbose
	}
	if changed("log-json") {
		cfg.LogJSON = f.logJSON
	}

	cfg = cfg.MergeWithDefaults(config.Config{})
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
