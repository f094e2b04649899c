package main

import (
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/resume-screener/internal/config"
	"github.com/jonathan/resume-screener/internal/ingestion"
	"github.com/jonathan/resume-screener/internal/observability"
	"github.com/jonathan/resume-screener/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the local HTTP API",
	Long: `Starts an HTTP server that holds one screening workspace: upload resumes, set the
job description and weights, start or stop a run, follow progress over SSE and download exports.

A job description given with --job, --job-text or --job-url is loaded before the server starts.
SCREENER_PORT overrides the port of the configured address unless --addr is set.`,
	RunE: runServe,
}

var (
	serveFlags sharedFlags
	serveAddr  string
)

func init() {
	serveFlags.register(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", config.DefaultAddr, "Address to listen on")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := serveFlags.load(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("addr") {
		cfg.Addr = serveAddr
	} else if port := os.Getenv("SCREENER_PORT"); port != "" {
		host, _, err := net.SplitHostPort(cfg.Addr)
		if err != nil {
			return fmt.Errorf("invalid addr %q: %w", cfg.Addr, err)
		}
		cfg.Addr = net.JoinHostPort(host, port)
	}

	logger, err := observability.NewLogger(cfg.LogJSON, cfg.Verbose)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srvCfg := server.Config{
		Addr:       cfg.Addr,
		Delay:      cfg.Delay(),
		UseBrowser: cfg.UseBrowser,
		Weights:    cfg.CriteriaWeights(),
	}
	if cfg.Job != "" || cfg.JobText != "" || cfg.JobURL != "" {
		jd, meta, err := ingestion.LoadJobDescription(ctx, ingestion.JobDescriptionOptions{
			Text:       cfg.JobText,
			Path:       cfg.Job,
			URL:        cfg.JobURL,
			UseBrowser: cfg.UseBrowser,
		}, logger.Named("jobdesc"))
		if err != nil {
			return fmt.Errorf("failed to load job description: %w", err)
		}
		logger.Info("loaded job description", zap.String("source", meta.Source), zap.String("hash", meta.Hash))
		srvCfg.JobDescription = jd
	}

	srv, err := server.New(srvCfg, logger.Named("server"))
	if err != nil {
		return err
	}
	return srv.Run(ctx)
}
