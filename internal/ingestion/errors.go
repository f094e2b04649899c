// Package ingestion turns uploaded files into plain text for screening.
package ingestion

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedFormat is returned for files no extractor handles.
	ErrUnsupportedFormat = errors.New("unsupported file format")
	// ErrEmptyText is returned when extraction succeeds but yields no text.
	ErrEmptyText = errors.New("no text content found")
	// ErrNoJobDescription is returned when no job description source is configured.
	ErrNoJobDescription = errors.New("no job description source provided")
)

// PDFFailureMessage is the user-facing message for unreadable PDFs.
const PDFFailureMessage = "Failed to extract text from PDF. Please ensure the file is a valid PDF."

// ExtractionError reports a failure to turn one document into text.
type ExtractionError struct {
	Name    string
	Message string
	Cause   error
}

func (e *ExtractionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Name, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Name, e.Message)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}
