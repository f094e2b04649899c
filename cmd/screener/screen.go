package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/resume-screener/internal/config"
	"github.com/jonathan/resume-screener/internal/ingestion"
	"github.com/jonathan/resume-screener/internal/observability"
	"github.com/jonathan/resume-screener/internal/pipeline"
	"github.com/jonathan/resume-screener/internal/ranking"
	"github.com/jonathan/resume-screener/internal/rendering"
	"github.com/jonathan/resume-screener/internal/schemas"
	"github.com/jonathan/resume-screener/internal/skills"
	"github.com/jonathan/resume-screener/internal/types"
	embedded "github.com/jonathan/resume-screener/schemas"
)

var screenCmd = &cobra.Command{
	Use:   "screen [files or directories...]",
	Short: "Score and rank a batch of resumes against a job description",
	Long: `Extracts text from each resume (PDF, HTML, TXT, MD, or ZIP archives of those),
scores it against the job description, and prints a ranking or writes an export.

Ctrl-C stops the batch after the document in progress; completed results are still reported.

Configuration can be loaded from a JSON file using --config. Command-line arguments override config file values.`,
	RunE: runScreenCmd,
}

var (
	screenFlags  sharedFlags
	screenOutput string
	screenFormat string
	screenTop    int
)

func init() {
	screenFlags.register(screenCmd)
	screenCmd.Flags().StringVarP(&screenOutput, "output", "o", "", "Write the export to this path instead of stdout")
	screenCmd.Flags().StringVarP(&screenFormat, "format", "f", config.DefaultFormat, "Output format: table, csv, xlsx, json")
	screenCmd.Flags().IntVar(&screenTop, "top", 3, "Number of score breakdowns to print in table format")

	rootCmd.AddCommand(screenCmd)
}

func runScreenCmd(cmd *cobra.Command, args []string) error {
	cfg, err := screenFlags.load(cmd)
	if err != nil {
		return err
	}
	if len(args) > 0 {
		cfg.Inputs = args
	}
	if cmd.Flags().Changed("output") {
		cfg.Output = screenOutput
	}
	if cmd.Flags().Changed("format") {
		cfg.Format = screenFormat
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	logger, err := observability.NewLogger(cfg.LogJSON, cfg.Verbose)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return screen(ctx, cfg, screenTop, cmd.OutOrStdout(), logger)
}

// screen runs one batch described by cfg and writes the result to out, or
// to cfg.Output when set.
func screen(ctx context.Context, cfg config.Config, top int, out io.Writer, logger *zap.Logger) error {
	if len(cfg.Inputs) == 0 {
		return fmt.Errorf("no resumes given: pass files or directories, or set 'inputs' in the config")
	}

	jd, meta, err := ingestion.LoadJobDescription(ctx, ingestion.JobDescriptionOptions{
		Text:       cfg.JobText,
		Path:       cfg.Job,
		URL:        cfg.JobURL,
		UseBrowser: cfg.UseBrowser,
	}, logger.Named("jobdesc"))
	if err != nil {
		return fmt.Errorf("failed to load job description: %w", err)
	}
	logger.Info("loaded job description",
		zap.String("source", meta.Source),
		zap.String("hash", meta.Hash))

	registry := ingestion.NewRegistry()
	collector := ingestion.NewCollector(registry, logger.Named("ingestion"))
	sources, skipped, err := collector.CollectPaths(cfg.Inputs)
	if err != nil {
		return err
	}
	for _, name := range skipped {
		logger.Warn("skipping unsupported file", zap.String("name", name))
	}
	if len(sources) == 0 {
		return fmt.Errorf("no supported resumes found (supported: %s, .zip)", strings.Join(registry.Extensions(), ", "))
	}

	job := pipeline.NewJob()
	job.Add(sources...)

	processor := pipeline.NewProcessor(logger.Named("pipeline"), nil)
	processor.Extractor = registry
	processor.Delay = cfg.Delay()
	processor.OnProgress = func(ev pipeline.ProgressEvent) {
		switch ev.Kind {
		case pipeline.EventDocumentStarted:
			logger.Info(ev.Message, zap.Int("index", ev.Index), zap.Int("total", ev.Total))
		case pipeline.EventDocumentFailed:
			logger.Warn("document failed", zap.String("document", ev.Name), zap.String("reason", ev.Message))
		}
	}

	summary, err := processor.Run(ctx, job, jd, cfg.CriteriaWeights())
	if err != nil {
		return err
	}
	docs := job.Documents()

	if cfg.Format == config.FormatTable {
		printer := observability.NewPrinter(out)
		if cfg.Verbose {
			printer.PrintJobDescription(jd, skills.Extract(jd))
		}
		ranked := ranking.RankDocuments(docs)
		printer.PrintRanking(ranked)
		for i := 0; i < min(top, len(ranked)); i++ {
			printer.PrintBreakdown(ranked[i].Document)
		}
		printer.PrintRunSummary(summary, docs)
		return nil
	}

	return export(cfg, docs, out, logger)
}

// export writes docs in cfg.Format to cfg.Output, or to out when no path is set.
func export(cfg config.Config, docs []types.Document, out io.Writer, logger *zap.Logger) error {
	now := time.Now()

	var write func(io.Writer) error
	switch cfg.Format {
	case config.FormatCSV, config.FormatXLSX:
		rows, err := rendering.BuildRows(docs)
		if err != nil {
			return err
		}
		write = func(w io.Writer) error {
			if cfg.Format == config.FormatCSV {
				return rendering.WriteCSV(w, rows)
			}
			return rendering.WriteXLSX(w, rows)
		}
	case config.FormatJSON:
		report, err := rendering.BuildReport(docs, cfg.CriteriaWeights(), now)
		if err != nil {
			return err
		}
		if err := schemas.ValidateValue(embedded.ScoreReport, report); err != nil {
			return fmt.Errorf("report failed schema validation: %w", err)
		}
		write = func(w io.Writer) error { return rendering.WriteJSON(w, report) }
	default:
		return fmt.Errorf("unknown format %q", cfg.Format)
	}

	path := cfg.Output
	if path == "" && cfg.Format == config.FormatXLSX {
		path = rendering.ExportFilename(now, "xlsx")
	}
	if path == "" {
		return write(out)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	logger.Info("wrote export", zap.String("path", path), zap.String("format", cfg.Format))
	return nil
}
