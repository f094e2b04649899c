package experience

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var fixedNow = time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)

func TestEstimateYearsAt(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{"of experience", "5 years of experience", 5},
		{"plus sign", "10+ years experience building APIs", 10},
		{"singular", "1 year experience", 1},
		{"in phrase", "7 years in backend development", 7},
		{"with phrase", "3 years with Go", 3},
		{"experience before number", "Experience: over 8 years", 8},
		{"case insensitive", "6 YEARS OF EXPERIENCE", 6},
		{"max of several", "2 years with Java, 4 years in Go", 4},
		{"out of range ignored", "99 years of experience", 0},
		{"zero ignored", "0 years experience", 0},
		{"date span only", "Acme 2015 - Initech 2020", 5},
		{"stated beats span", "12 years of experience. 2019 2021", 12},
		{"span beats stated", "2 years with Go. Worked 2005 to 2020", 15},
		{"single year no span", "Graduated 2012", 0},
		{"pre-1990 ignored", "1985 1995", 0},
		{"future year ignored", "2020 2030", 0},
		{"nothing", "no numbers here", 0},
		{"empty", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EstimateYearsAt(tt.text, fixedNow))
		})
	}
}

func TestEstimateYearsAt_ExperienceScanStopsAtLineEnd(t *testing.T) {
	text := "Experience\n5 years"
	assert.Equal(t, 0, EstimateYearsAt(text, fixedNow))
}

func TestEstimateYears_UsesCurrentYear(t *testing.T) {
	assert.Equal(t, 5, EstimateYears("2015 2020"))
}

func TestEstimateYearsAt_CappedAtMax(t *testing.T) {
	got := EstimateYearsAt("50 years of experience", fixedNow)
	assert.Equal(t, MaxYears, got)
}
