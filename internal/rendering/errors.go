// Package rendering exports ranked screening results as CSV, XLSX, and JSON.
package rendering

import (
	"errors"
	"fmt"
)

// NoResultsMessage is shown when an export is requested before anything completed.
const NoResultsMessage = "No completed analyses to export."

// ErrNoResults is returned when there are no completed documents to export.
var ErrNoResults = errors.New(NoResultsMessage)

// RenderError represents a general rendering failure
type RenderError struct {
	Format  string
	Message string
	Cause   error
}

func (e *RenderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("render %s: %s: %v", e.Format, e.Message, e.Cause)
	}
	return fmt.Sprintf("render %s: %s", e.Format, e.Message)
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}
