package rendering

import (
	"encoding/json"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/resume-screener/internal/ranking"
	"github.com/jonathan/resume-screener/internal/types"
)

// Report is the JSON export of a screening run.
type Report struct {
	GeneratedAt time.Time             `json:"generated_at"`
	Weights     types.CriteriaWeights `json:"weights"`
	Total       int                   `json:"total"`
	Failed      []FailedEntry         `json:"failed"`
	Results     []ReportEntry         `json:"results"`
}

// ReportEntry is one ranked document in a Report.
type ReportEntry struct {
	Rank    int                  `json:"rank"`
	ID      uuid.UUID            `json:"id"`
	Name    string               `json:"name"`
	Band    types.ScoreBand      `json:"band"`
	Contact types.Contact        `json:"contact"`
	Score   types.ScoreBreakdown `json:"score"`
}

// FailedEntry is a document that could not be scored.
type FailedEntry struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Error string    `json:"error"`
}

// BuildReport ranks docs into a Report. It returns ErrNoResults when nothing
// has completed.
func BuildReport(docs []types.Document, weights types.CriteriaWeights, now time.Time) (*Report, error) {
	ranked := ranking.RankDocuments(docs)
	if len(ranked) == 0 {
		return nil, ErrNoResults
	}

	report := &Report{
		GeneratedAt: now.UTC(),
		Weights:     weights,
		Total:       len(docs),
		Failed:      []FailedEntry{},
		Results:     make([]ReportEntry, 0, len(ranked)),
	}
	for _, r := range ranked {
		entry := ReportEntry{
			Rank:  r.Rank,
			ID:    r.Document.ID,
			Name:  r.Document.Name,
			Band:  types.BandFor(r.Document.Score.OverallScore),
			Score: *r.Document.Score,
		}
		if r.Document.Contact != nil {
			entry.Contact = *r.Document.Contact
		}
		report.Results = append(report.Results, entry)
	}
	for _, d := range docs {
		if d.Status == types.StatusError {
			report.Failed = append(report.Failed, FailedEntry{ID: d.ID, Name: d.Name, Error: d.Error})
		}
	}
	return report, nil
}

// WriteJSON writes report as indented JSON.
func WriteJSON(w io.Writer, report *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return &RenderError{Format: "json", Message: "failed to encode report", Cause: err}
	}
	return nil
}
