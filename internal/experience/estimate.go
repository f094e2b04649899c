// Package experience estimates years of professional experience from resume text.
package experience

import (
	"regexp"
	"strconv"
	"time"
)

const (
	// MaxYears is the largest estimate ever returned.
	MaxYears = 50
	// earliestYear is the lower bound for calendar years used in the date-span fallback.
	earliestYear = 1990
)

var statedPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(\d+)\+?\s*years?\s+(?:of\s+)?experience`),
	regexp.MustCompile(`(?i)(\d+)\+?\s*years?\s+(?:in|with)`),
	regexp.MustCompile(`(?i)experience.*?(\d+)\+?\s*years?`),
}

var calendarYear = regexp.MustCompile(`\b(20\d{2}|19\d{2})\b`)

// EstimateYears estimates experience using the current calendar year as the
// upper bound for the date-span fallback.
func EstimateYears(text string) int {
	return EstimateYearsAt(text, time.Now())
}

// EstimateYearsAt returns the largest of the explicitly stated year counts
// and the span between the earliest and latest calendar years mentioned.
// Returns 0 when nothing usable is found.
func EstimateYearsAt(text string, now time.Time) int {
	best := 0
	for _, c := range statedYears(text) {
		best = max(best, c)
	}
	if span := dateSpan(text, now.Year()); span > 0 {
		best = max(best, span)
	}
	return best
}

// statedYears collects every integer in [1, MaxYears] captured by the
// stated-experience patterns.
func statedYears(text string) []int {
	var out []int
	for _, re := range statedPatterns {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			n, err := strconv.Atoi(m[1])
			if err != nil {
				continue
			}
			if n >= 1 && n <= MaxYears {
				out = append(out, n)
			}
		}
	}
	return out
}

// dateSpan returns max-min over calendar years in [earliestYear, currentYear]
// when at least two are present and the span is in [1, MaxYears], else 0.
func dateSpan(text string, currentYear int) int {
	var years []int
	for _, m := range calendarYear.FindAllStringSubmatch(text, -1) {
		y, err := strconv.Atoi(m[1])
		if err != nil || y < earliestYear || y > currentYear {
			continue
		}
		years = append(years, y)
	}
	if len(years) < 2 {
		return 0
	}

	lo, hi := years[0], years[0]
	for _, y := range years[1:] {
		lo = min(lo, y)
		hi = max(hi, y)
	}
	span := hi - lo
	if span < 1 || span > MaxYears {
		return 0
	}
	return span
}
