package ranking

import "github.com/jonathan/resume-screener/internal/types"

// Narrative strings attached to a ScoreBreakdown.
const (
	StrengthSkills     = "Strong technical skills portfolio"
	StrengthExperience = "Excellent experience level"
	StrengthEducation  = "Advanced educational background"
	StrengthKeywords   = "Good alignment with job requirements"

	WeaknessSkills     = "Limited technical skills mentioned"
	WeaknessExperience = "Could benefit from more experience"
	WeaknessEducation  = "Educational background could be stronger"
	WeaknessKeywords   = "Limited alignment with job description"
)

func generateStrengths(sub subScores, edu types.Education) []string {
	out := []string{}
	if sub.skills >= 70 {
		out = append(out, StrengthSkills)
	}
	if sub.experience >= 80 {
		out = append(out, StrengthExperience)
	}
	if edu.HasAdvanced {
		out = append(out, StrengthEducation)
	}
	if sub.keywords >= 60 {
		out = append(out, StrengthKeywords)
	}
	return out
}

func generateWeaknesses(sub subScores) []string {
	out := []string{}
	if sub.skills < 40 {
		out = append(out, WeaknessSkills)
	}
	if sub.experience < 50 {
		out = append(out, WeaknessExperience)
	}
	if sub.education < 50 {
		out = append(out, WeaknessEducation)
	}
	if sub.keywords < 40 {
		out = append(out, WeaknessKeywords)
	}
	return out
}
