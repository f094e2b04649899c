package rendering

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jonathan/resume-screener/internal/ranking"
	"github.com/jonathan/resume-screener/internal/types"
)

const (
	notFound      = "Not found"
	listSeparator = "; "
)

// Header is the export column order.
var Header = []string{
	"Rank",
	"Name",
	"Email",
	"Phone",
	"Overall Score",
	"Skills Score",
	"Experience Score",
	"Education Score",
	"Keyword Score",
	"Skills Found",
	"Experience Years",
	"Education Level",
	"Recommendation",
	"Strengths",
	"Weaknesses",
}

// Row is one exported result.
type Row struct {
	Rank            int
	Name            string
	Email           string
	Phone           string
	OverallScore    int
	SkillsScore     int
	ExperienceScore int
	EducationScore  int
	KeywordScore    int
	Skills          string
	ExperienceYears int
	EducationLevel  string
	Recommendation  string
	Strengths       string
	Weaknesses      string
}

// BuildRows ranks docs and flattens the completed ones into export rows.
// It returns ErrNoResults when nothing has completed.
func BuildRows(docs []types.Document) ([]Row, error) {
	ranked := ranking.RankDocuments(docs)
	if len(ranked) == 0 {
		return nil, ErrNoResults
	}

	rows := make([]Row, 0, len(ranked))
	for _, r := range ranked {
		rows = append(rows, newRow(r))
	}
	return rows, nil
}

func newRow(r ranking.RankedDocument) Row {
	s := r.Document.Score
	var c types.Contact
	if r.Document.Contact != nil {
		c = *r.Document.Contact
	}

	level := string(s.EducationLevel)
	if level == "" {
		level = string(types.EducationNone)
	}

	return Row{
		Rank:            r.Rank,
		Name:            orNotFound(c.Name),
		Email:           orNotFound(c.Email),
		Phone:           orNotFound(c.Phone),
		OverallScore:    s.OverallScore,
		SkillsScore:     s.SkillsMatch,
		ExperienceScore: s.ExperienceMatch,
		EducationScore:  s.EducationMatch,
		KeywordScore:    s.KeywordMatch,
		Skills:          strings.Join(s.DetectedSkills, listSeparator),
		ExperienceYears: s.ExperienceYears,
		EducationLevel:  level,
		Recommendation:  string(s.Recommendation),
		Strengths:       strings.Join(s.Strengths, listSeparator),
		Weaknesses:      strings.Join(s.Weaknesses, listSeparator),
	}
}

// Values returns the row's cells in Header order.
func (r Row) Values() []any {
	return []any{
		r.Rank,
		r.Name,
		r.Email,
		r.Phone,
		r.OverallScore,
		r.SkillsScore,
		r.ExperienceScore,
		r.EducationScore,
		r.KeywordScore,
		r.Skills,
		r.ExperienceYears,
		r.EducationLevel,
		r.Recommendation,
		r.Strengths,
		r.Weaknesses,
	}
}

// Strings returns the row's cells formatted as text in Header order.
func (r Row) Strings() []string {
	values := r.Values()
	out := make([]string, len(values))
	for i, v := range values {
		switch x := v.(type) {
		case int:
			out[i] = strconv.Itoa(x)
		case string:
			out[i] = x
		default:
			out[i] = fmt.Sprint(x)
		}
	}
	return out
}

// ExportFilename returns the dated download name for ext ("csv", "xlsx", "json").
func ExportFilename(now time.Time, ext string) string {
	return fmt.Sprintf("resume_analysis_%s.%s", now.UTC().Format(time.DateOnly), ext)
}

func orNotFound(s string) string {
	if s == "" {
		return notFound
	}
	return s
}
