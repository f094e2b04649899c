package ingestion

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jonathan/resume-screener/internal/types"
)

// TextExtractor converts one document source into plain text.
type TextExtractor interface {
	ExtractText(ctx context.Context, src types.Source) (string, error)
}

// ExtractorFunc adapts a function to TextExtractor.
type ExtractorFunc func(ctx context.Context, src types.Source) (string, error)

// ExtractText calls f.
func (f ExtractorFunc) ExtractText(ctx context.Context, src types.Source) (string, error) {
	return f(ctx, src)
}

// Registry dispatches extraction by lowercase file extension.
type Registry struct {
	extractors map[string]TextExtractor
}

// NewRegistry returns a registry with PDF, HTML and plain text extractors.
func NewRegistry() *Registry {
	r := &Registry{extractors: make(map[string]TextExtractor)}
	r.Register(".pdf", &PDFExtractor{})
	r.Register(".html", HTMLExtractor{})
	r.Register(".htm", HTMLExtractor{})
	r.Register(".txt", PlainTextExtractor{})
	r.Register(".md", PlainTextExtractor{})
	return r
}

// Register sets the extractor for ext, replacing any existing one.
func (r *Registry) Register(ext string, e TextExtractor) {
	r.extractors[normalizeExt(ext)] = e
}

// Supports reports whether name has a registered extension.
func (r *Registry) Supports(name string) bool {
	_, ok := r.extractors[normalizeExt(filepath.Ext(name))]
	return ok
}

// Extensions lists registered extensions in sorted order.
func (r *Registry) Extensions() []string {
	out := make([]string, 0, len(r.extractors))
	for ext := range r.extractors {
		out = append(out, ext)
	}
	sort.Strings(out)
	return out
}

// ExtractText extracts text from src with the extractor for its extension.
// Blank output is reported as ErrEmptyText.
func (r *Registry) ExtractText(ctx context.Context, src types.Source) (string, error) {
	ext := normalizeExt(filepath.Ext(src.Name))
	e, ok := r.extractors[ext]
	if !ok {
		return "", &ExtractionError{Name: src.Name, Message: fmt.Sprintf("no extractor for %q", ext), Cause: ErrUnsupportedFormat}
	}

	text, err := e.ExtractText(ctx, src)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return "", &ExtractionError{Name: src.Name, Message: "extraction produced no text", Cause: ErrEmptyText}
	}
	return text, nil
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(ext)
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

// readSource returns in-memory data, or reads Path when Data is nil.
func readSource(src types.Source) ([]byte, error) {
	if src.Data != nil {
		return src.Data, nil
	}
	if src.Path == "" {
		return nil, &ExtractionError{Name: src.Name, Message: "source has no data or path"}
	}
	data, err := os.ReadFile(src.Path)
	if err != nil {
		return nil, &ExtractionError{Name: src.Name, Message: "failed to read file", Cause: err}
	}
	return data, nil
}
