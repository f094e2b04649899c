package ranking

import (
	"regexp"
	"strings"

	"github.com/jonathan/resume-screener/internal/skills"
)

var (
	nonWord   = regexp.MustCompile(`[^\w\s]`)
	alphaOnly = regexp.MustCompile(`^[a-z]+$`)
)

const minTokenLen = 3

var stopWords = map[string]struct{}{
	"the": {}, "and": {}, "or": {}, "but": {}, "in": {}, "on": {}, "at": {},
	"to": {}, "for": {}, "of": {}, "with": {}, "by": {}, "a": {}, "an": {},
	"is": {}, "are": {}, "was": {}, "were": {}, "be": {}, "been": {},
	"have": {}, "has": {}, "had": {}, "will": {}, "would": {}, "could": {},
	"should": {}, "may": {}, "might": {}, "can": {}, "this": {}, "that": {},
	"these": {}, "those": {}, "i": {}, "you": {}, "he": {}, "she": {},
	"it": {}, "we": {}, "they": {},
}

// ExtractKeywords tokenizes text into lowercase alphabetic words longer than
// two characters, dropping stop words. Duplicates are kept in input order.
func ExtractKeywords(text string) []string {
	cleaned := nonWord.ReplaceAllString(strings.ToLower(text), " ")

	var out []string
	for _, tok := range strings.Fields(cleaned) {
		if len(tok) < minTokenLen {
			continue
		}
		if _, stop := stopWords[tok]; stop {
			continue
		}
		if !alphaOnly.MatchString(tok) {
			continue
		}
		out = append(out, tok)
	}
	return out
}

// KeywordMatch returns the percentage (0-100) of distinct job description
// keywords that also occur in text. A blank job description, or one with no
// usable keywords, scores 0.
func KeywordMatch(text, jobDescription string) float64 {
	score, _ := KeywordOverlap(text, jobDescription)
	return score
}

// KeywordOverlap is KeywordMatch that also returns the matched job keywords
// in the order they first appear in the job description.
func KeywordOverlap(text, jobDescription string) (float64, []string) {
	if strings.TrimSpace(jobDescription) == "" {
		return 0, nil
	}

	jobSet := skills.NewOrderedSet[string]()
	for _, tok := range ExtractKeywords(jobDescription) {
		jobSet.Add(tok)
	}
	if jobSet.Len() == 0 {
		return 0, nil
	}

	docSet := make(map[string]struct{})
	for _, tok := range ExtractKeywords(text) {
		docSet[tok] = struct{}{}
	}

	var matched []string
	for _, tok := range jobSet.Items() {
		if _, ok := docSet[tok]; ok {
			matched = append(matched, tok)
		}
	}
	return float64(len(matched)) / float64(jobSet.Len()) * 100, matched
}
