package types

import "slices"

// EducationLevel is the highest education level detected in a document.
type EducationLevel string

// Education levels in ascending order of priority.
const (
	EducationNone        EducationLevel = "none"
	EducationCertificate EducationLevel = "certificate"
	EducationAssociates  EducationLevel = "associates"
	EducationBachelors   EducationLevel = "bachelors"
	EducationMasters     EducationLevel = "masters"
	EducationPhD         EducationLevel = "phd"
)

// IsAdvanced reports whether the level is a graduate degree.
func (l EducationLevel) IsAdvanced() bool {
	return l == EducationMasters || l == EducationPhD
}

// Education is the result of classifying a document's education section.
type Education struct {
	Level       EducationLevel `json:"level"`
	HasAdvanced bool           `json:"has_advanced"`
}

// Recommendation is the qualitative hiring tier derived from the overall score.
type Recommendation string

// Recommendation tiers, highest first.
const (
	RecommendExcellent Recommendation = "Excellent candidate - highly recommended"
	RecommendStrong    Recommendation = "Strong candidate - recommend interview"
	RecommendGood      Recommendation = "Good candidate - worth considering"
	RecommendAverage   Recommendation = "Average candidate - may need additional screening"
	RecommendBelow     Recommendation = "Below requirements - consider only if desperate"
)

// RecommendationFor maps an overall score to its tier.
func RecommendationFor(overall int) Recommendation {
	switch {
	case overall >= 85:
		return RecommendExcellent
	case overall >= 75:
		return RecommendStrong
	case overall >= 65:
		return RecommendGood
	case overall >= 50:
		return RecommendAverage
	default:
		return RecommendBelow
	}
}

// ScoreBand is a coarse display bucket for an overall score.
type ScoreBand string

// Display bands, aligned with the recommendation thresholds.
const (
	BandExcellent ScoreBand = "excellent"
	BandStrong    ScoreBand = "strong"
	BandGood      ScoreBand = "good"
	BandAverage   ScoreBand = "average"
	BandLow       ScoreBand = "low"
)

// BandFor returns the display band for an overall score.
func BandFor(overall int) ScoreBand {
	switch {
	case overall >= 85:
		return BandExcellent
	case overall >= 75:
		return BandStrong
	case overall >= 65:
		return BandGood
	case overall >= 50:
		return BandAverage
	default:
		return BandLow
	}
}

// ScoreBreakdown is the full scoring result for one document.
type ScoreBreakdown struct {
	OverallScore    int            `json:"overall_score"`
	SkillsMatch     int            `json:"skills_match"`
	ExperienceMatch int            `json:"experience_match"`
	EducationMatch  int            `json:"education_match"`
	KeywordMatch    int            `json:"keyword_match"`
	Strengths       []string       `json:"strengths"`
	Weaknesses      []string       `json:"weaknesses"`
	Recommendation  Recommendation `json:"recommendation"`
	DetectedSkills  []string       `json:"detected_skills"`
	ExperienceYears int            `json:"experience_years"`
	EducationLevel  EducationLevel `json:"education_level"`
}

// Clone returns a deep copy of the breakdown.
func (s *ScoreBreakdown) Clone() *ScoreBreakdown {
	if s == nil {
		return nil
	}
	c := *s
	c.Strengths = slices.Clone(s.Strengths)
	c.Weaknesses = slices.Clone(s.Weaknesses)
	c.DetectedSkills = slices.Clone(s.DetectedSkills)
	return &c
}
