package ingestion

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/jonathan/resume-screener/internal/types"
	"github.com/ledongthuc/pdf"
)

// PDFExtractor extracts page text from PDF documents. Calls are serialized;
// the parser is not safe for concurrent use.
type PDFExtractor struct {
	mu sync.Mutex
}

// ExtractText returns the cleaned text of every readable page, separated by
// blank lines.
func (p *PDFExtractor) ExtractText(ctx context.Context, src types.Source) (string, error) {
	data, err := readSource(src)
	if err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	text, err := extractPDFText(data)
	if err != nil {
		return "", &ExtractionError{Name: src.Name, Message: PDFFailureMessage, Cause: err}
	}
	return CleanText(text), nil
}

// extractPDFText converts parser panics on malformed input into errors.
func extractPDFText(data []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf parser panic: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}

	var sb strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		sb.WriteString(pageText)
		sb.WriteString("\n\n")
	}
	return sb.String(), nil
}
