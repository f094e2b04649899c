package server

import (
	"archive/zip"
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-screener/internal/fetch"
	"github.com/jonathan/resume-screener/internal/ingestion"
	"github.com/jonathan/resume-screener/internal/pipeline"
	"github.com/jonathan/resume-screener/internal/ranking"
	"github.com/jonathan/resume-screener/internal/rendering"
	"github.com/jonathan/resume-screener/internal/server/ratelimit"
	"github.com/jonathan/resume-screener/internal/types"
)

const testJD = "Senior Python engineer with AWS, Docker and Kubernetes experience"

func newTestServer(t *testing.T, cfg Config) *Server {
	t.Helper()
	if cfg.RateLimit == nil {
		cfg.RateLimit = &ratelimit.Config{Enabled: false}
	}
	s, err := New(cfg, nil)
	require.NoError(t, err)
	t.Cleanup(func() { s.rateLimiter.Stop() })
	return s
}

func do(t *testing.T, s *Server, method, target string, body []byte, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func doJSON(t *testing.T, s *Server, method, target string, v any) *httptest.ResponseRecorder {
	t.Helper()
	var body []byte
	if v != nil {
		var err error
		body, err = json.Marshal(v)
		require.NoError(t, err)
	}
	return do(t, s, method, target, body, "application/json")
}

type upload struct {
	name string
	data []byte
}

func multipartBody(t *testing.T, files ...upload) ([]byte, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, f := range files {
		part, err := mw.CreateFormFile(uploadField, f.name)
		require.NoError(t, err)
		_, err = part.Write(f.data)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return buf.Bytes(), mw.FormDataContentType()
}

func zipOf(t *testing.T, entries map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, body := range entries {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(body))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func uploadResumes(t *testing.T, s *Server, files ...upload) UploadResponse {
	t.Helper()
	body, ct := multipartBody(t, files...)
	w := do(t, s, http.MethodPost, "/documents", body, ct)
	require.Contains(t, []int{http.StatusCreated, http.StatusOK}, w.Code, w.Body.String())

	var resp UploadResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func waitIdle(t *testing.T, s *Server) {
	t.Helper()
	require.Eventually(t, func() bool { return !s.job.IsRunning() }, 5*time.Second, 10*time.Millisecond)
}

func TestHealthEndpoint(t *testing.T) {
	s := newTestServer(t, Config{})

	w := do(t, s, http.MethodGet, "/health", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
}

func TestJobDescription(t *testing.T) {
	s := newTestServer(t, Config{})

	w := doJSON(t, s, http.MethodPut, "/job-description", JobDescriptionRequest{Text: "  Go   developer  "})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = do(t, s, http.MethodGet, "/job-description", nil, "")
	var resp JobDescriptionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Go developer", resp.Text)
	require.NotNil(t, resp.Metadata)
	assert.Equal(t, ingestion.SourceInline, resp.Metadata.Source)
	assert.NotEmpty(t, resp.Metadata.Hash)
}

func TestJobDescription_Validation(t *testing.T) {
	s := newTestServer(t, Config{})

	tests := []struct {
		name string
		body string
	}{
		{name: "empty", body: `{}`},
		{name: "bad url", body: `{"url":"not a url"}`},
		{name: "malformed", body: `{"text":`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, s, http.MethodPut, "/job-description", []byte(tt.body), "application/json")
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestWeights(t *testing.T) {
	s := newTestServer(t, Config{})

	w := do(t, s, http.MethodGet, "/weights", nil, "")
	var got types.CriteriaWeights
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, types.DefaultWeights(), got)

	next := types.CriteriaWeights{Skills: 1, Experience: 0, Education: 0, Keywords: 0}
	w = doJSON(t, s, http.MethodPut, "/weights", next)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, s, http.MethodGet, "/weights", nil, "")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, next, got)

	w = do(t, s, http.MethodPut, "/weights", []byte(`{"skills":1.5}`), "application/json")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUploadDocuments(t *testing.T) {
	s := newTestServer(t, Config{})

	resp := uploadResumes(t, s,
		upload{name: "jane.txt", data: []byte("Jane Doe\nPython developer")},
		upload{name: "batch.zip", data: zipOf(t, map[string]string{"john.md": "John Smith\nGo developer", "notes.exe": "x"})},
		upload{name: "photo.png", data: []byte{0x89}},
	)

	require.Len(t, resp.Added, 2)
	assert.Equal(t, "jane.txt", resp.Added[0].Name)
	assert.Equal(t, "john.md", resp.Added[1].Name)
	assert.ElementsMatch(t, []string{"batch.zip!notes.exe", "photo.png"}, resp.Skipped)

	w := do(t, s, http.MethodGet, "/documents", nil, "")
	var docs []types.Document
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &docs))
	require.Len(t, docs, 2)
	assert.Equal(t, types.StatusPending, docs[0].Status)
}

func TestUploadDocuments_NoFiles(t *testing.T) {
	s := newTestServer(t, Config{})

	body, ct := multipartBody(t)
	w := do(t, s, http.MethodPost, "/documents", body, ct)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, s, http.MethodPost, "/documents", []byte("plain"), "text/plain")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDocumentByID(t *testing.T) {
	s := newTestServer(t, Config{})
	resp := uploadResumes(t, s, upload{name: "a.txt", data: []byte("Python")})
	id := resp.Added[0].ID.String()

	w := do(t, s, http.MethodGet, "/documents/"+id, nil, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(t, s, http.MethodGet, "/documents/not-a-uuid", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, s, http.MethodDelete, "/documents/"+uuid.NewString(), nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, s, http.MethodDelete, "/documents/"+id, nil, "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, 0, s.job.Len())
}

func TestRun_MissingJobDescription(t *testing.T) {
	s := newTestServer(t, Config{})
	uploadResumes(t, s, upload{name: "a.txt", data: []byte("Python")})

	w := do(t, s, http.MethodPost, "/run", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), ranking.ErrMissingJobDescription.Error())
	assert.Equal(t, types.StatusPending, s.job.Documents()[0].Status)
}

func TestRun_EndToEnd(t *testing.T) {
	s := newTestServer(t, Config{JobDescription: testJD})
	uploadResumes(t, s,
		upload{name: "weak.txt", data: []byte("Bob Stone\nCashier")},
		upload{name: "strong.txt", data: []byte("Jane Doe\njane@example.com\nPython developer, 8 years of experience with AWS, Docker and Kubernetes.\nMaster of Science")},
	)

	w := do(t, s, http.MethodPost, "/run", nil, "")
	require.Equal(t, http.StatusAccepted, w.Code, w.Body.String())
	waitIdle(t, s)

	w = do(t, s, http.MethodGet, "/status", nil, "")
	var snap pipeline.Snapshot
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snap))
	assert.True(t, snap.Analyzed)
	assert.Equal(t, pipeline.StatusComplete, snap.Status)
	assert.Equal(t, 2, snap.Counts[types.StatusCompleted])

	w = do(t, s, http.MethodGet, "/results", nil, "")
	var ranked []ranking.RankedDocument
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ranked))
	require.Len(t, ranked, 2)
	assert.Equal(t, "strong.txt", ranked[0].Document.Name)
	assert.Equal(t, 1, ranked[0].Rank)

	w = do(t, s, http.MethodGet, "/export.csv", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "resume_analysis_")
	records, err := csv.NewReader(w.Body).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, rendering.Header, records[0])
	assert.Equal(t, "Jane Doe", records[1][1])
	assert.Equal(t, "Not found", records[2][2])

	w = do(t, s, http.MethodGet, "/export.xlsx", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(w.Body.String(), "PK"))

	w = do(t, s, http.MethodGet, "/export.json", nil, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var report rendering.Report
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	assert.Len(t, report.Results, 2)
}

func TestExportJSON_ReportsRunWeights(t *testing.T) {
	runWeights := types.CriteriaWeights{Skills: 0.7, Experience: 0.1, Education: 0.1, Keywords: 0.1}
	s := newTestServer(t, Config{JobDescription: testJD, Weights: runWeights})
	uploadResumes(t, s, upload{name: "jane.txt", data: []byte("Jane Doe\nPython developer with AWS")})

	w := do(t, s, http.MethodPost, "/run", nil, "")
	require.Equal(t, http.StatusAccepted, w.Code, w.Body.String())
	waitIdle(t, s)

	w = doJSON(t, s, http.MethodPut, "/weights", types.DefaultWeights())
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = do(t, s, http.MethodGet, "/export.json", nil, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var report rendering.Report
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	assert.Equal(t, runWeights, report.Weights)
}

func TestExport_NoResults(t *testing.T) {
	s := newTestServer(t, Config{})

	for _, path := range []string{"/export.csv", "/export.xlsx", "/export.json"} {
		w := do(t, s, http.MethodGet, path, nil, "")
		assert.Equal(t, http.StatusNotFound, w.Code, path)
		assert.Contains(t, w.Body.String(), rendering.NoResultsMessage, path)
	}
}

func TestRun_ConflictAndStop(t *testing.T) {
	s := newTestServer(t, Config{JobDescription: testJD})

	release := make(chan struct{})
	s.processor.Extractor = ingestion.ExtractorFunc(func(ctx context.Context, src types.Source) (string, error) {
		select {
		case <-release:
		case <-ctx.Done():
		}
		return string(src.Data), nil
	})
	resp := uploadResumes(t, s,
		upload{name: "a.txt", data: []byte("Python")},
		upload{name: "b.txt", data: []byte("Go")},
	)

	w := do(t, s, http.MethodPost, "/run", nil, "")
	require.Equal(t, http.StatusAccepted, w.Code)

	w = do(t, s, http.MethodPost, "/run", nil, "")
	assert.Equal(t, http.StatusConflict, w.Code)

	w = do(t, s, http.MethodDelete, "/documents/"+resp.Added[0].ID.String(), nil, "")
	assert.Equal(t, http.StatusConflict, w.Code)

	require.Eventually(t, func() bool {
		return s.job.Snapshot().Counts[types.StatusProcessing] == 1
	}, 2*time.Second, 5*time.Millisecond)

	w = do(t, s, http.MethodPost, "/stop", nil, "")
	assert.Equal(t, http.StatusAccepted, w.Code)
	close(release)
	waitIdle(t, s)

	snap := s.job.Snapshot()
	assert.Equal(t, pipeline.StatusStopped, snap.Status)
	assert.False(t, snap.Analyzed)
	assert.Equal(t, 1, snap.Counts[types.StatusCompleted])
	assert.Equal(t, 1, snap.Counts[types.StatusPending])
}

func TestStop_Idle(t *testing.T) {
	s := newTestServer(t, Config{})
	w := do(t, s, http.MethodPost, "/stop", nil, "")
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestEvents_StreamsProgress(t *testing.T) {
	s := newTestServer(t, Config{JobDescription: testJD})
	uploadResumes(t, s, upload{name: "a.txt", data: []byte("Python")})

	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ts.URL+"/events", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	reader := bufio.NewReader(resp.Body)
	nextEvent := func() string {
		for {
			line, err := reader.ReadString('\n')
			require.NoError(t, err)
			if strings.HasPrefix(line, "event: ") {
				return strings.TrimSpace(strings.TrimPrefix(line, "event: "))
			}
		}
	}

	require.Equal(t, "status", nextEvent())
	require.Eventually(t, func() bool { return s.events.len() == 1 }, time.Second, 5*time.Millisecond)

	w := do(t, s, http.MethodPost, "/run", nil, "")
	require.Equal(t, http.StatusAccepted, w.Code)

	var seen []string
	for {
		ev := nextEvent()
		seen = append(seen, ev)
		if ev == string(pipeline.EventRunCompleted) {
			break
		}
	}
	assert.Equal(t, []string{
		string(pipeline.EventRunStarted),
		string(pipeline.EventDocumentStarted),
		string(pipeline.EventDocumentCompleted),
		string(pipeline.EventRunCompleted),
	}, seen)
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t, Config{})
	do(t, s, http.MethodGet, "/health", nil, "")

	w := do(t, s, http.MethodGet, "/metrics", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "resume_screener_http_requests_total")
	assert.Contains(t, w.Body.String(), "go_goroutines")
}

func TestRateLimit(t *testing.T) {
	s := newTestServer(t, Config{RateLimit: &ratelimit.Config{
		Enabled:       true,
		DefaultLimit:  2,
		DefaultWindow: time.Hour,
	}})

	for i := 0; i < 2; i++ {
		assert.Equal(t, http.StatusOK, do(t, s, http.MethodGet, "/status", nil, "").Code)
	}
	w := do(t, s, http.MethodGet, "/status", nil, "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))

	assert.Equal(t, http.StatusOK, do(t, s, http.MethodGet, "/health", nil, "").Code)
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t, Config{})
	w := do(t, s, http.MethodOptions, "/run", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestServe_GracefulShutdown(t *testing.T) {
	s := newTestServer(t, Config{})
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- s.Serve(ctx, ln) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + ln.Addr().String() + "/health")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestNew_InvalidWeights(t *testing.T) {
	_, err := New(Config{Weights: types.CriteriaWeights{Skills: 2}}, nil)
	assert.Error(t, err)
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "validation", err: &ErrValidation{Field: "f", Message: "m"}, want: http.StatusBadRequest},
		{name: "missing jd", err: ranking.ErrMissingJobDescription, want: http.StatusBadRequest},
		{name: "running", err: pipeline.ErrRunInProgress, want: http.StatusConflict},
		{name: "not found", err: pipeline.ErrDocumentNotFound, want: http.StatusNotFound},
		{name: "no results", err: rendering.ErrNoResults, want: http.StatusNotFound},
		{name: "unsupported", err: ingestion.ErrUnsupportedFormat, want: http.StatusUnsupportedMediaType},
		{name: "fetch", err: &fetch.Error{URL: "https://example.com", Message: "HTTP 500"}, want: http.StatusBadGateway},
		{name: "other", err: errors.New("boom"), want: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}
