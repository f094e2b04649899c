package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/resume-screener/internal/fetch"
	"github.com/jonathan/resume-screener/internal/ingestion"
	"github.com/jonathan/resume-screener/internal/pipeline"
	"github.com/jonathan/resume-screener/internal/ranking"
	"github.com/jonathan/resume-screener/internal/rendering"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var validationErr *ErrValidation
	var fetchErr *fetch.Error
	switch {
	case errors.As(err, &validationErr),
		errors.Is(err, ranking.ErrMissingJobDescription),
		errors.Is(err, ingestion.ErrNoJobDescription),
		errors.Is(err, ingestion.ErrEmptyText):
		return http.StatusBadRequest
	case errors.Is(err, pipeline.ErrRunInProgress):
		return http.StatusConflict
	case errors.Is(err, pipeline.ErrDocumentNotFound),
		errors.Is(err, rendering.ErrNoResults):
		return http.StatusNotFound
	case errors.Is(err, ingestion.ErrUnsupportedFormat):
		return http.StatusUnsupportedMediaType
	case errors.As(err, &fetchErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
