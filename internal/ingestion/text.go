package ingestion

import (
	"context"
	"regexp"
	"strings"
	"unicode"

	"github.com/jonathan/resume-screener/internal/types"
)

var (
	horizontalSpace = regexp.MustCompile(`[ \t\f\v\x{00A0}]+`)
	blankRun        = regexp.MustCompile(`\n{3,}`)
)

// CleanText normalizes extracted text: line endings become LF, control
// characters are dropped, runs of spaces collapse to one, lines are trimmed,
// and more than one consecutive blank line is reduced to one.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")
	content = strings.Map(func(r rune) rune {
		if r != '\n' && r != '\t' && unicode.IsControl(r) {
			return -1
		}
		return r
	}, content)

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(horizontalSpace.ReplaceAllString(line, " "))
	}

	result := blankRun.ReplaceAllString(strings.Join(lines, "\n"), "\n\n")
	return strings.TrimSpace(result)
}

// PlainTextExtractor reads UTF-8 text files.
type PlainTextExtractor struct{}

// ExtractText returns the cleaned file contents.
func (PlainTextExtractor) ExtractText(_ context.Context, src types.Source) (string, error) {
	data, err := readSource(src)
	if err != nil {
		return "", err
	}
	return CleanText(strings.ToValidUTF8(string(data), "")), nil
}
