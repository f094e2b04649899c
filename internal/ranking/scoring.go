package ranking

import (
	"errors"
	"math"
	"strings"
	"time"

	"github.com/jonathan/resume-screener/internal/experience"
	"github.com/jonathan/resume-screener/internal/skills"
	"github.com/jonathan/resume-screener/internal/types"
)

// ErrMissingJobDescription is returned when scoring is attempted without a job description.
var ErrMissingJobDescription = errors.New("job description is required for scoring")

const (
	maxSubScore     = 100
	pointsPerSkill  = 8
	maxOverallScore = 100
	minOverallScore = 0
)

// educationPoints is the fixed sub-score per education level.
var educationPoints = map[types.EducationLevel]float64{
	types.EducationPhD:         100,
	types.EducationMasters:     85,
	types.EducationBachelors:   70,
	types.EducationAssociates:  50,
	types.EducationCertificate: 40,
	types.EducationNone:        20,
}

// Engine scores resume text against a job description. The zero value is
// ready to use and reads the wall clock.
type Engine struct {
	// Now supplies the current time for the date-span experience fallback.
	Now func() time.Time
}

// NewEngine returns an Engine using the wall clock.
func NewEngine() *Engine {
	return &Engine{Now: time.Now}
}

func (e *Engine) now() time.Time {
	if e == nil || e.Now == nil {
		return time.Now()
	}
	return e.Now()
}

// Score extracts skills, experience, education and keyword overlap from text
// and combines them under weights into a ScoreBreakdown. The result depends
// only on its arguments and the clock.
func (e *Engine) Score(text, jobDescription string, weights types.CriteriaWeights) (*types.ScoreBreakdown, error) {
	if strings.TrimSpace(jobDescription) == "" {
		return nil, ErrMissingJobDescription
	}

	detected := skills.Extract(text)
	years := experience.EstimateYearsAt(text, e.now())
	edu := ClassifyEducation(text)
	keywords := KeywordMatch(text, jobDescription)

	sub := subScores{
		skills:     computeSkillsScore(len(detected)),
		experience: computeExperienceScore(years),
		education:  computeEducationScore(edu.Level),
		keywords:   math.Min(keywords, maxSubScore),
	}
	overall := computeOverallScore(sub, weights)

	return &types.ScoreBreakdown{
		OverallScore:    overall,
		SkillsMatch:     roundScore(sub.skills),
		ExperienceMatch: roundScore(sub.experience),
		EducationMatch:  roundScore(sub.education),
		KeywordMatch:    roundScore(sub.keywords),
		Strengths:       generateStrengths(sub, edu),
		Weaknesses:      generateWeaknesses(sub),
		Recommendation:  types.RecommendationFor(overall),
		DetectedSkills:  detected,
		ExperienceYears: years,
		EducationLevel:  edu.Level,
	}, nil
}

// subScores holds the unrounded component scores, each in [0,100].
type subScores struct {
	skills     float64
	experience float64
	education  float64
	keywords   float64
}

func computeSkillsScore(count int) float64 {
	return math.Min(float64(count*pointsPerSkill), maxSubScore)
}

func computeExperienceScore(years int) float64 {
	switch {
	case years >= 10:
		return 100
	case years >= 7:
		return 90
	case years >= 5:
		return 80
	case years >= 3:
		return 70
	case years >= 1:
		return 50
	default:
		return 20
	}
}

func computeEducationScore(level types.EducationLevel) float64 {
	if pts, ok := educationPoints[level]; ok {
		return pts
	}
	return educationPoints[types.EducationNone]
}

// computeOverallScore rounds the weighted sum and clamps it to [0,100];
// weights are not normalized, so the raw sum can exceed 100.
func computeOverallScore(sub subScores, w types.CriteriaWeights) int {
	raw := sub.skills*w.Skills +
		sub.experience*w.Experience +
		sub.education*w.Education +
		sub.keywords*w.Keywords

	overall := roundScore(raw)
	if overall > maxOverallScore {
		overall = maxOverallScore
	}
	if overall < minOverallScore {
		overall = minOverallScore
	}
	return overall
}

func roundScore(v float64) int {
	return int(math.Round(v))
}
