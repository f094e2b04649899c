package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/resume-screener/internal/ingestion"
	"github.com/jonathan/resume-screener/internal/metrics"
	"github.com/jonathan/resume-screener/internal/parsing"
	"github.com/jonathan/resume-screener/internal/ranking"
	"github.com/jonathan/resume-screener/internal/types"
)

// DefaultDelay is the pause between documents.
const DefaultDelay = 100 * time.Millisecond

// Scorer produces a score breakdown for one document's text.
type Scorer interface {
	Score(text, jobDescription string, weights types.CriteriaWeights) (*types.ScoreBreakdown, error)
}

// Processor runs a job's pending documents through extraction and scoring.
type Processor struct {
	Extractor  ingestion.TextExtractor
	Scorer     Scorer
	Delay      time.Duration
	Logger     *zap.Logger
	Metrics    *metrics.Metrics
	OnProgress ProgressCallback
}

// NewProcessor returns a processor using the default extractor registry and
// scoring engine.
func NewProcessor(logger *zap.Logger, m *metrics.Metrics) *Processor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Processor{
		Extractor: ingestion.NewRegistry(),
		Scorer:    ranking.NewEngine(),
		Delay:     DefaultDelay,
		Logger:    logger,
		Metrics:   m,
	}
}

// RunSummary describes the outcome of one run.
type RunSummary struct {
	Total     int           `json:"total"`
	Processed int           `json:"processed"`
	Completed int           `json:"completed"`
	Failed    int           `json:"failed"`
	Skipped   int           `json:"skipped"`
	Stopped   bool          `json:"stopped"`
	Duration  time.Duration `json:"duration"`
}

// Run processes every pending document of job in order. A stop request or
// context cancellation takes effect before the next document starts; the
// document in flight always finishes. Terminal documents are skipped.
func (p *Processor) Run(ctx context.Context, job *Job, jobDescription string, weights types.CriteriaWeights) (*RunSummary, error) {
	if err := claim(job, jobDescription, weights); err != nil {
		return nil, err
	}
	return p.execute(ctx, job, criteria{jobDescription, weights}), nil
}

// Start claims job and runs it in the background. Precondition failures are
// returned synchronously; the summary is delivered on the returned channel.
func (p *Processor) Start(ctx context.Context, job *Job, jobDescription string, weights types.CriteriaWeights) (<-chan *RunSummary, error) {
	if err := claim(job, jobDescription, weights); err != nil {
		return nil, err
	}

	done := make(chan *RunSummary, 1)
	go func() {
		done <- p.execute(ctx, job, criteria{jobDescription, weights})
		close(done)
	}()
	return done, nil
}

// claim checks run preconditions and marks job as running. Nothing on the
// job changes when it fails.
func claim(job *Job, jobDescription string, weights types.CriteriaWeights) error {
	if strings.TrimSpace(jobDescription) == "" {
		return ranking.ErrMissingJobDescription
	}
	if err := weights.Validate(); err != nil {
		return fmt.Errorf("invalid weights: %w", err)
	}
	if !job.begin(weights) {
		return ErrRunInProgress
	}
	return nil
}

func (p *Processor) execute(ctx context.Context, job *Job, c criteria) *RunSummary {
	log := p.logger()
	start := time.Now()
	ids := job.ids()
	summary := &RunSummary{Total: len(ids)}

	job.setStatus(StatusInitializing)
	p.Metrics.RunStarted()
	p.emitProgress(ProgressEvent{Kind: EventRunStarted, Message: StatusInitializing, Total: len(ids)})
	log.Info("batch run started", zap.Int("documents", len(ids)))

	for i, id := range ids {
		if job.StopRequested() || ctx.Err() != nil {
			summary.Stopped = true
			break
		}

		doc, ok := job.Document(id)
		if !ok || doc.Status != types.StatusPending {
			summary.Skipped++
			continue
		}

		p.processDocument(ctx, job, doc, c, i+1, len(ids), summary)

		if i < len(ids)-1 && !p.pause(ctx) {
			summary.Stopped = true
			break
		}
	}
	summary.Duration = time.Since(start)

	// A stop that arrives while the last document is in flight still counts.
	summary.Stopped = job.end(summary.Stopped || ctx.Err() != nil)
	if summary.Stopped {
		p.Metrics.RunFinished(metrics.OutcomeStopped)
		p.emitProgress(ProgressEvent{Kind: EventRunStopped, Message: StatusStopped, Total: len(ids)})
		log.Info("batch run stopped",
			zap.Int("processed", summary.Processed),
			zap.Duration("duration", summary.Duration))
		return summary
	}

	p.Metrics.RunFinished(metrics.OutcomeCompleted)
	p.emitProgress(ProgressEvent{Kind: EventRunCompleted, Message: StatusComplete, Total: len(ids)})
	log.Info("batch run completed",
		zap.Int("completed", summary.Completed),
		zap.Int("failed", summary.Failed),
		zap.Duration("duration", summary.Duration))
	return summary
}

// criteria is what every document in a run is scored against.
type criteria struct {
	jobDescription string
	weights        types.CriteriaWeights
}

func (p *Processor) processDocument(ctx context.Context, job *Job, doc types.Document, c criteria, index, total int, summary *RunSummary) {
	msg := fmt.Sprintf("Processing %s...", doc.Name)
	job.setStatus(msg)
	job.update(doc.ID, func(d *types.Document) {
		d.Status = types.StatusProcessing
		d.Error = ""
	})
	p.emitProgress(ProgressEvent{
		Kind:       EventDocumentStarted,
		Message:    msg,
		DocumentID: doc.ID,
		Name:       doc.Name,
		Status:     string(types.StatusProcessing),
		Index:      index,
		Total:      total,
	})

	started := time.Now()
	text, contact, score, err := p.analyze(ctx, doc, c)
	elapsed := time.Since(started)
	summary.Processed++

	if err != nil {
		reason := failureMessage(err)
		p.finish(job, doc.ID, func(d *types.Document) {
			d.Status = types.StatusError
			d.Error = reason
		})
		summary.Failed++
		p.Metrics.DocumentProcessed(string(types.StatusError), elapsed)
		p.logger().Warn("document failed",
			zap.String("document", doc.Name),
			zap.Error(err))
		p.emitProgress(ProgressEvent{
			Kind:       EventDocumentFailed,
			Message:    reason,
			DocumentID: doc.ID,
			Name:       doc.Name,
			Status:     string(types.StatusError),
			Index:      index,
			Total:      total,
		})
		return
	}

	p.finish(job, doc.ID, func(d *types.Document) {
		d.Status = types.StatusCompleted
		d.Text = text
		d.Contact = &contact
		d.Score = score
	})
	summary.Completed++
	p.Metrics.DocumentProcessed(string(types.StatusCompleted), elapsed)
	p.Metrics.ObserveScore(score.OverallScore)
	p.logger().Debug("document scored",
		zap.String("document", doc.Name),
		zap.Int("overall_score", score.OverallScore),
		zap.Duration("elapsed", elapsed))
	p.emitProgress(ProgressEvent{
		Kind:       EventDocumentCompleted,
		Message:    fmt.Sprintf("Scored %s: %d", doc.Name, score.OverallScore),
		DocumentID: doc.ID,
		Name:       doc.Name,
		Status:     string(types.StatusCompleted),
		Index:      index,
		Total:      total,
	})
}

// analyze extracts and scores one document. Panics from extractors or the
// scorer are converted to errors so one bad document cannot end the run.
func (p *Processor) analyze(ctx context.Context, doc types.Document, c criteria) (text string, contact types.Contact, score *types.ScoreBreakdown, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("processing %s panicked: %v", doc.Name, r)
		}
	}()

	text, err = p.Extractor.ExtractText(ctx, doc.Source)
	if err != nil {
		return "", types.Contact{}, nil, err
	}
	contact = parsing.ExtractContact(text)

	score, err = p.Scorer.Score(text, c.jobDescription, c.weights)
	if err != nil {
		return "", types.Contact{}, nil, fmt.Errorf("scoring failed: %w", err)
	}
	return text, contact, score, nil
}

func (p *Processor) finish(job *Job, id uuid.UUID, fn func(d *types.Document)) {
	if _, ok := job.update(id, fn); !ok {
		p.logger().Debug("document removed before it finished", zap.String("id", id.String()))
	}
}

// pause waits Delay between documents. It reports false if ctx ends first.
func (p *Processor) pause(ctx context.Context) bool {
	if p.Delay <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(p.Delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

func (p *Processor) logger() *zap.Logger {
	if p.Logger == nil {
		return zap.NewNop()
	}
	return p.Logger
}

// failureMessage returns the human-readable reason recorded on a failed document.
func failureMessage(err error) string {
	var extractErr *ingestion.ExtractionError
	if errors.As(err, &extractErr) && extractErr.Message != "" {
		return extractErr.Message
	}
	return err.Error()
}
