package ingestion

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/jonathan/resume-screener/internal/fetch"
	"go.uber.org/zap"
)

// JobDescriptionOptions selects where the job description comes from.
// Text takes precedence over Path, which takes precedence over URL.
type JobDescriptionOptions struct {
	Text       string
	Path       string
	URL        string
	UseBrowser bool
	Fetch      *fetch.Options
}

// Job description source labels recorded in Metadata.Source.
const (
	SourceInline = "inline"
	SourceFile   = "file"
	SourceURL    = "url"
)

// LoadJobDescription resolves the configured source to cleaned text.
func LoadJobDescription(ctx context.Context, opts JobDescriptionOptions, logger *zap.Logger) (string, *Metadata, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	switch {
	case strings.TrimSpace(opts.Text) != "":
		text := CleanText(opts.Text)
		return text, NewMetadata(text, SourceInline), nil

	case opts.Path != "":
		data, err := os.ReadFile(opts.Path)
		if err != nil {
			if os.IsNotExist(err) {
				return "", nil, fmt.Errorf("job description file not found: %w", err)
			}
			return "", nil, fmt.Errorf("failed to read job description: %w", err)
		}
		text := CleanText(string(data))
		return text, NewMetadata(text, SourceFile), nil

	case opts.URL != "":
		return loadJobDescriptionURL(ctx, opts, logger)
	}
	return "", nil, ErrNoJobDescription
}

func loadJobDescriptionURL(ctx context.Context, opts JobDescriptionOptions, logger *zap.Logger) (string, *Metadata, error) {
	platform := fetch.DetectPlatform(opts.URL)
	content, noise := fetch.Selectors(platform)
	logger.Debug("fetching job description", zap.String("url", opts.URL), zap.String("platform", string(platform)))

	result, err := fetch.URL(ctx, opts.URL, opts.Fetch)
	if err != nil {
		return "", nil, fmt.Errorf("failed to fetch job description: %w", err)
	}

	text, err := fetch.ExtractText(result.HTML, content, noise...)
	if err != nil {
		return "", nil, fmt.Errorf("failed to extract job description: %w", err)
	}

	if opts.UseBrowser && fetch.NeedsBrowser(text) {
		logger.Debug("content too short, rendering with browser", zap.Int("chars", len(text)))
		html, err := fetch.Render(ctx, opts.URL, fetch.DefaultBrowserTimeout, logger)
		if err != nil {
			logger.Warn("browser rendering failed, using HTTP content", zap.Error(err))
		} else if rendered, err := fetch.ExtractText(html, content, noise...); err == nil {
			text = rendered
		}
	}

	text = CleanText(text)
	meta := NewMetadata(text, SourceURL)
	meta.URL = opts.URL
	meta.Platform = string(platform)
	return text, meta, nil
}
