// Package server provides the local HTTP API for a single screening workspace.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-screener/internal/ingestion"
	"github.com/jonathan/resume-screener/internal/metrics"
	"github.com/jonathan/resume-screener/internal/pipeline"
	"github.com/jonathan/resume-screener/internal/server/ratelimit"
	"github.com/jonathan/resume-screener/internal/types"
)

const (
	// DefaultMaxUploadBytes caps one POST /documents body.
	DefaultMaxUploadBytes = 64 << 20
	shutdownTimeout       = 30 * time.Second
	keepAliveInterval     = 15 * time.Second
)

// Config holds server configuration
type Config struct {
	Addr           string
	Delay          time.Duration
	UseBrowser     bool
	Weights        types.CriteriaWeights
	JobDescription string
	MaxUploadBytes int64
	RateLimit      *ratelimit.Config
}

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	logger      *zap.Logger
	registry    *prometheus.Registry
	processor   *pipeline.Processor
	collector   *ingestion.Collector
	rateLimiter *ratelimit.Limiter
	validate    *validator.Validate
	events      *broker
	job         *pipeline.Job
	useBrowser  bool
	maxUpload   int64

	mu             sync.RWMutex
	jobDescription string
	jobMeta        *ingestion.Metadata
	weights        types.CriteriaWeights

	baseCtx    context.Context
	cancelRuns context.CancelFunc
	runs       sync.WaitGroup
}

// New creates a new server instance
func New(cfg Config, logger *zap.Logger) (*Server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Weights == (types.CriteriaWeights{}) {
		cfg.Weights = types.DefaultWeights()
	}
	if err := cfg.Weights.Validate(); err != nil {
		return nil, fmt.Errorf("invalid weights: %w", err)
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = DefaultMaxUploadBytes
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)
	httpMetrics := metrics.NewMiddleware(reg)

	registry := ingestion.NewRegistry()
	processor := pipeline.NewProcessor(logger.Named("pipeline"), m)
	processor.Extractor = registry
	processor.Delay = cfg.Delay

	ctx, cancel := context.WithCancel(context.Background())
	s := &Server{
		logger:      logger,
		registry:    reg,
		processor:   processor,
		collector:   ingestion.NewCollector(registry, logger.Named("ingestion")),
		rateLimiter: ratelimit.NewLimiter(cfg.RateLimit),
		validate:    validator.New(),
		events:      newBroker(),
		job:         pipeline.NewJob(),
		useBrowser:  cfg.UseBrowser,
		maxUpload:   cfg.MaxUploadBytes,
		weights:     cfg.Weights,
		baseCtx:     ctx,
		cancelRuns:  cancel,
	}
	processor.OnProgress = s.events.publish

	if cfg.JobDescription != "" {
		text := ingestion.CleanText(cfg.JobDescription)
		s.jobDescription = text
		s.jobMeta = ingestion.NewMetadata(text, ingestion.SourceInline)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /job-description", s.handleGetJobDescription)
	mux.HandleFunc("PUT /job-description", s.handlePutJobDescription)
	mux.HandleFunc("GET /weights", s.handleGetWeights)
	mux.HandleFunc("PUT /weights", s.handlePutWeights)
	mux.HandleFunc("POST /documents", s.handleUploadDocuments)
	mux.HandleFunc("GET /documents", s.handleListDocuments)
	mux.HandleFunc("GET /documents/{id}", s.handleGetDocument)
	mux.HandleFunc("DELETE /documents/{id}", s.handleDeleteDocument)
	mux.HandleFunc("POST /run", s.handleRun)
	mux.HandleFunc("POST /stop", s.handleStop)
	mux.HandleFunc("GET /status", s.handleStatus)
	mux.HandleFunc("GET /events", s.handleEvents)
	mux.HandleFunc("GET /results", s.handleResults)
	mux.HandleFunc("GET /export.csv", s.handleExportCSV)
	mux.HandleFunc("GET /export.xlsx", s.handleExportXLSX)
	mux.HandleFunc("GET /export.json", s.handleExportJSON)
	mux.Handle("GET /metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	s.httpServer = &http.Server{
		Addr:              cfg.Addr,
		Handler:           httpMetrics.Handler(s.withRateLimit(s.withLogging(s.withCORS(mux)))),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	return s, nil
}

// Handler returns the root handler with middleware applied.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Job returns the workspace's batch.
func (s *Server) Job() *pipeline.Job {
	return s.job
}

// Run serves until ctx is cancelled, then stops any active batch and shuts
// down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.httpServer.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Run over an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("server starting", zap.String("addr", ln.Addr().String()))
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		s.logger.Info("shutting down server")
		return s.Shutdown()
	})

	return g.Wait()
}

// Shutdown stops active work and the HTTP server.
func (s *Server) Shutdown() error {
	s.job.RequestStop()
	s.cancelRuns()

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	err := s.httpServer.Shutdown(ctx)
	s.runs.Wait()
	s.rateLimiter.Stop()
	if err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.logger.Info("server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit rejects clients that exceed their route budget
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, info := s.rateLimiter.Allow(clientID(r), r.Method, r.URL.Path)
		if info.Limit > 0 {
			w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
			w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		}
		if !allowed {
			if info.RetryAfter > 0 {
				w.Header().Set("Retry-After", fmt.Sprintf("%d", int(info.RetryAfter.Round(time.Second).Seconds())+1))
			}
			s.logger.Warn("rate limit exceeded",
				zap.String("client", clientID(r)),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path))
			s.errorResponse(w, http.StatusTooManyRequests, "Rate limit exceeded. Please try again later.")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug("request completed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("remote", r.RemoteAddr),
			zap.Duration("elapsed", time.Since(start)))
	})
}

// clientID identifies the caller by IP address.
func clientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("failed to encode JSON response", zap.Error(err))
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// errResponse maps err to a status code and writes it.
func (s *Server) errResponse(w http.ResponseWriter, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", zap.Error(err))
	}
	s.errorResponse(w, status, err.Error())
}
