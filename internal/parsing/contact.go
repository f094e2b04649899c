// Package parsing extracts structured facts from plain resume text.
package parsing

import (
	"regexp"
	"strings"

	"github.com/jonathan/resume-screener/internal/types"
)

var (
	emailPattern = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Z|a-z]{2,}\b`)
	phonePattern = regexp.MustCompile(`(?:\+?1[-.\s]?)?\(?([0-9]{3})\)?[-.\s]?([0-9]{3})[-.\s]?([0-9]{4})`)
	nameWord     = regexp.MustCompile(`^[A-Za-z][A-Za-z.,'-]*$`)
)

const (
	nameScanLines  = 10
	nameMinWords   = 2
	nameMaxWords   = 4
	nameMaxWordLen = 20
)

// headerMarkers are lowercase fragments that disqualify a line from being a name.
var headerMarkers = []string{"resume", "curriculum", "cv"}

// ExtractContact recovers name, email and phone from resume text. Each field
// is left empty when nothing matches. The first match wins for every field.
func ExtractContact(text string) types.Contact {
	return types.Contact{
		Name:  ExtractName(text),
		Email: emailPattern.FindString(text),
		Phone: phonePattern.FindString(text),
	}
}

// ExtractName returns the first of the leading non-empty lines that looks
// like a personal name, or "" when none qualifies.
func ExtractName(text string) string {
	lines := NonEmptyLines(text)
	if len(lines) > nameScanLines {
		lines = lines[:nameScanLines]
	}

	for _, line := range lines {
		if isHeaderLine(line) {
			continue
		}
		if words, ok := nameWords(line); ok {
			return strings.Join(words, " ")
		}
	}
	return ""
}

// NonEmptyLines splits text on newlines and returns the trimmed lines that
// are not blank, in order.
func NonEmptyLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func isHeaderLine(line string) bool {
	lower := strings.ToLower(line)
	for _, marker := range headerMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// nameWords returns the multi-character words of line and whether they form
// a plausible name.
func nameWords(line string) ([]string, bool) {
	var words []string
	for _, w := range strings.Fields(line) {
		if len(w) > 1 {
			words = append(words, w)
		}
	}
	if len(words) < nameMinWords || len(words) > nameMaxWords {
		return nil, false
	}
	for _, w := range words {
		if len(w) > nameMaxWordLen || !nameWord.MatchString(w) {
			return nil, false
		}
	}
	return words, true
}
