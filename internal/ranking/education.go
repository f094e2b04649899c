// Package ranking scores resume text against a job description and orders
// scored documents.
package ranking

import (
	"strings"

	"github.com/jonathan/resume-screener/internal/types"
)

// educationGroup lists the lowercase fragments that indicate a level.
type educationGroup struct {
	level    types.EducationLevel
	keywords []string
}

// educationGroups is ordered from highest to lowest priority.
var educationGroups = []educationGroup{
	{types.EducationPhD, []string{"ph.d", "phd", "doctorate", "doctoral", "doctor of philosophy"}},
	{types.EducationMasters, []string{"master", "mba", "ms", "m.s.", "ma", "m.a.", "msc", "m.sc.", "med", "m.ed."}},
	{types.EducationBachelors, []string{"bachelor", "bs", "b.s.", "ba", "b.a.", "bsc", "b.sc.", "undergraduate", "beng", "b.eng."}},
	{types.EducationAssociates, []string{"associate", "aa", "as", "a.s.", "aas"}},
	{types.EducationCertificate, []string{"certificate", "certification", "diploma", "cert."}},
}

// ClassifyEducation returns the highest-priority education level whose
// keywords appear anywhere in text. Matching is unanchored, so short
// abbreviations like "ms" or "as" fire inside ordinary words.
func ClassifyEducation(text string) types.Education {
	lower := strings.ToLower(text)
	for _, g := range educationGroups {
		for _, kw := range g.keywords {
			if strings.Contains(lower, kw) {
				return types.Education{Level: g.level, HasAdvanced: g.level.IsAdvanced()}
			}
		}
	}
	return types.Education{Level: types.EducationNone}
}
