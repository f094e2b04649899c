package ingestion

import (
	"context"

	"github.com/jonathan/resume-screener/internal/fetch"
	"github.com/jonathan/resume-screener/internal/types"
)

// HTMLExtractor extracts visible text from saved HTML resumes.
type HTMLExtractor struct{}

// ExtractText strips markup and page chrome, keeping one line per block element.
func (HTMLExtractor) ExtractText(_ context.Context, src types.Source) (string, error) {
	data, err := readSource(src)
	if err != nil {
		return "", err
	}
	text, err := fetch.ExtractText(string(data), fetch.ResumeSelectors())
	if err != nil {
		return "", &ExtractionError{Name: src.Name, Message: "failed to parse HTML", Cause: err}
	}
	return CleanText(text), nil
}
