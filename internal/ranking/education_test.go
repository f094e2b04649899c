package ranking

import (
	"testing"

	"github.com/jonathan/resume-screener/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestClassifyEducation(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		want     types.EducationLevel
		advanced bool
	}{
		{"phd beats bachelor", "PhD in Physics, Bachelor of Arts", types.EducationPhD, true},
		{"doctorate", "Doctorate in Chemistry", types.EducationPhD, true},
		{"mba", "MBA from Wharton", types.EducationMasters, true},
		{"bachelor", "Bachelor of Engineering", types.EducationBachelors, false},
		{"associate", "Associate degree", types.EducationAssociates, false},
		{"certificate", "Certificate in cloud", types.EducationCertificate, false},
		{"none", "Self taught engineer", types.EducationNone, false},
		{"empty", "", types.EducationNone, false},
		// "ma" inside "amazon" is an accepted over-match.
		{"unanchored substring", "Worked at Amazon", types.EducationMasters, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyEducation(tt.text)
			assert.Equal(t, tt.want, got.Level)
			assert.Equal(t, tt.advanced, got.HasAdvanced)
		})
	}
}
