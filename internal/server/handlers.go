package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/resume-screener/internal/ingestion"
	"github.com/jonathan/resume-screener/internal/pipeline"
	"github.com/jonathan/resume-screener/internal/ranking"
	"github.com/jonathan/resume-screener/internal/rendering"
	"github.com/jonathan/resume-screener/internal/schemas"
	"github.com/jonathan/resume-screener/internal/types"
	embedded "github.com/jonathan/resume-screener/schemas"
)

// errNoActiveRun is returned by POST /stop when nothing is running.
var errNoActiveRun = errors.New("no batch run in progress")

// uploadField is the multipart field carrying resume files.
const uploadField = "files"

// JobDescriptionRequest sets the workspace job description.
type JobDescriptionRequest struct {
	Text       string `json:"text" validate:"required_without=URL"`
	URL        string `json:"url" validate:"omitempty,url"`
	UseBrowser *bool  `json:"use_browser,omitempty"`
}

// JobDescriptionResponse is the current job description.
type JobDescriptionResponse struct {
	Text     string              `json:"text"`
	Metadata *ingestion.Metadata `json:"metadata,omitempty"`
}

// UploadResponse lists the documents created by an upload.
type UploadResponse struct {
	Added   []types.Document `json:"added"`
	Skipped []string         `json:"skipped"`
}

// RunResponse acknowledges a started run.
type RunResponse struct {
	Status pipeline.Snapshot `json:"status"`
}

func (s *Server) handleGetJobDescription(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	resp := JobDescriptionResponse{Text: s.jobDescription, Metadata: s.jobMeta}
	s.mu.RUnlock()
	s.jsonResponse(w, http.StatusOK, resp)
}

func (s *Server) handlePutJobDescription(w http.ResponseWriter, r *http.Request) {
	var req JobDescriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := s.validate.Struct(req); err != nil {
		s.errResponse(w, &ErrValidation{Field: "text", Message: "either text or a valid url is required"})
		return
	}

	useBrowser := s.useBrowser
	if req.UseBrowser != nil {
		useBrowser = *req.UseBrowser
	}
	text, meta, err := ingestion.LoadJobDescription(r.Context(), ingestion.JobDescriptionOptions{
		Text:       req.Text,
		URL:        req.URL,
		UseBrowser: useBrowser,
	}, s.logger.Named("jobdesc"))
	if err != nil {
		s.errResponse(w, err)
		return
	}

	s.mu.Lock()
	s.jobDescription = text
	s.jobMeta = meta
	s.mu.Unlock()

	s.logger.Info("job description updated",
		zap.String("source", meta.Source),
		zap.Int("length", len(text)))
	s.jsonResponse(w, http.StatusOK, JobDescriptionResponse{Text: text, Metadata: meta})
}

func (s *Server) handleGetWeights(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	weights := s.weights
	s.mu.RUnlock()
	s.jsonResponse(w, http.StatusOK, weights)
}

// handlePutWeights replaces the weights used by the next run.
func (s *Server) handlePutWeights(w http.ResponseWriter, r *http.Request) {
	var weights types.CriteriaWeights
	if err := json.NewDecoder(r.Body).Decode(&weights); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := weights.Validate(); err != nil {
		s.errResponse(w, &ErrValidation{Field: "weights", Message: "each weight must be between 0 and 1"})
		return
	}

	s.mu.Lock()
	s.weights = weights
	s.mu.Unlock()
	s.jsonResponse(w, http.StatusOK, weights)
}

func (s *Server) handleUploadDocuments(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid multipart upload: "+err.Error())
		return
	}
	defer r.MultipartForm.RemoveAll() //nolint:errcheck

	files := r.MultipartForm.File[uploadField]
	if len(files) == 0 {
		s.errResponse(w, &ErrValidation{Field: uploadField, Message: "at least one file is required"})
		return
	}

	resp := UploadResponse{Added: []types.Document{}, Skipped: []string{}}
	var sources []types.Source
	for _, fh := range files {
		data, err := readUpload(fh)
		if err != nil {
			s.errorResponse(w, http.StatusBadRequest, fmt.Sprintf("failed to read %s: %v", fh.Filename, err))
			return
		}
		got, skipped, err := s.collector.CollectUpload(fh.Filename, data)
		if err != nil {
			s.errorResponse(w, http.StatusBadRequest, fmt.Sprintf("failed to read %s: %v", fh.Filename, err))
			return
		}
		sources = append(sources, got...)
		resp.Skipped = append(resp.Skipped, skipped...)
	}

	resp.Added = append(resp.Added, s.job.Add(sources...)...)
	s.logger.Info("documents uploaded",
		zap.Int("added", len(resp.Added)),
		zap.Int("skipped", len(resp.Skipped)))

	status := http.StatusCreated
	if len(resp.Added) == 0 {
		status = http.StatusOK
	}
	s.jsonResponse(w, status, resp)
}

func readUpload(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

// handleListDocuments lists documents in upload order. Extracted text is
// omitted unless text=1.
func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	docs := s.job.Documents()
	if r.URL.Query().Get("text") != "1" {
		for i := range docs {
			docs[i].Text = ""
		}
	}
	s.jsonResponse(w, http.StatusOK, docs)
}

func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errResponse(w, &ErrValidation{Field: "id", Message: "must be a UUID"})
		return
	}
	doc, ok := s.job.Document(id)
	if !ok {
		s.errResponse(w, pipeline.ErrDocumentNotFound)
		return
	}
	s.jsonResponse(w, http.StatusOK, doc)
}

func (s *Server) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errResponse(w, &ErrValidation{Field: "id", Message: "must be a UUID"})
		return
	}
	if err := s.job.Remove(id); err != nil {
		s.errResponse(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleRun starts a batch run in the background and returns immediately.
func (s *Server) handleRun(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	jd, weights := s.jobDescription, s.weights
	s.mu.RUnlock()

	done, err := s.processor.Start(s.baseCtx, s.job, jd, weights)
	if err != nil {
		s.errResponse(w, err)
		return
	}

	s.runs.Add(1)
	go func() {
		defer s.runs.Done()
		summary := <-done
		s.logger.Info("run finished",
			zap.Int("completed", summary.Completed),
			zap.Int("failed", summary.Failed),
			zap.Bool("stopped", summary.Stopped))
	}()

	s.jsonResponse(w, http.StatusAccepted, RunResponse{Status: s.job.Snapshot()})
}

func (s *Server) handleStop(w http.ResponseWriter, _ *http.Request) {
	if !s.job.RequestStop() {
		s.errorResponse(w, http.StatusConflict, errNoActiveRun.Error())
		return
	}
	s.jsonResponse(w, http.StatusAccepted, s.job.Snapshot())
}

func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, s.job.Snapshot())
}

// handleEvents streams progress events. A "status" event with the current
// snapshot is sent first.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	events, unsubscribe := s.events.subscribe()
	defer unsubscribe()

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	if err := sse.WriteEvent("status", s.job.Snapshot()); err != nil {
		return
	}

	keepAlive := time.NewTicker(keepAliveInterval)
	defer keepAlive.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-s.baseCtx.Done():
			return
		case <-keepAlive.C:
			if err := sse.WriteComment("keep-alive"); err != nil {
				return
			}
		case ev, ok := <-events:
			if !ok {
				return
			}
			if err := sse.WriteEvent(string(ev.Kind), ev); err != nil {
				s.logger.Debug("event stream closed", zap.Error(err))
				return
			}
		}
	}
}

func (s *Server) handleResults(w http.ResponseWriter, _ *http.Request) {
	ranked := ranking.RankDocuments(s.job.Documents())
	if ranked == nil {
		ranked = []ranking.RankedDocument{}
	}
	s.jsonResponse(w, http.StatusOK, ranked)
}

func (s *Server) handleExportCSV(w http.ResponseWriter, _ *http.Request) {
	rows, err := rendering.BuildRows(s.job.Documents())
	if err != nil {
		s.errResponse(w, err)
		return
	}

	var buf bytes.Buffer
	if err := rendering.WriteCSV(&buf, rows); err != nil {
		s.errResponse(w, err)
		return
	}
	s.attachment(w, "text/csv; charset=utf-8", rendering.ExportFilename(time.Now(), "csv"), buf.Bytes())
}

func (s *Server) handleExportXLSX(w http.ResponseWriter, _ *http.Request) {
	rows, err := rendering.BuildRows(s.job.Documents())
	if err != nil {
		s.errResponse(w, err)
		return
	}

	var buf bytes.Buffer
	if err := rendering.WriteXLSX(&buf, rows); err != nil {
		s.errResponse(w, err)
		return
	}
	s.attachment(w, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		rendering.ExportFilename(time.Now(), "xlsx"), buf.Bytes())
}

func (s *Server) handleExportJSON(w http.ResponseWriter, _ *http.Request) {
	// Report the weights the scores were computed with, not the current ones.
	weights, ok := s.job.RunWeights()
	if !ok {
		s.mu.RLock()
		weights = s.weights
		s.mu.RUnlock()
	}

	report, err := rendering.BuildReport(s.job.Documents(), weights, time.Now())
	if err != nil {
		s.errResponse(w, err)
		return
	}
	if err := schemas.ValidateValue(embedded.ScoreReport, report); err != nil {
		s.errResponse(w, fmt.Errorf("report failed schema validation: %w", err))
		return
	}

	var buf bytes.Buffer
	if err := rendering.WriteJSON(&buf, report); err != nil {
		s.errResponse(w, err)
		return
	}
	s.attachment(w, "application/json", rendering.ExportFilename(time.Now(), "json"), buf.Bytes())
}

// attachment writes body as a file download.
func (s *Server) attachment(w http.ResponseWriter, contentType, filename string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		s.logger.Debug("export write failed", zap.Error(err))
	}
}
