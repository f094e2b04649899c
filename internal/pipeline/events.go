package pipeline

import "github.com/google/uuid"

// EventKind identifies a progress event.
type EventKind string

// Progress event kinds emitted by Processor.Run.
const (
	EventRunStarted        EventKind = "run_started"
	EventDocumentStarted   EventKind = "document_started"
	EventDocumentCompleted EventKind = "document_completed"
	EventDocumentFailed    EventKind = "document_failed"
	EventRunStopped        EventKind = "run_stopped"
	EventRunCompleted      EventKind = "run_completed"
)

// ProgressEvent represents a progress update during a batch run
type ProgressEvent struct {
	Kind       EventKind `json:"kind"`
	Message    string    `json:"message"`
	DocumentID uuid.UUID `json:"document_id,omitempty"`
	Name       string    `json:"name,omitempty"`
	Status     string    `json:"status,omitempty"`
	Index      int       `json:"index,omitempty"`
	Total      int       `json:"total"`
}

// ProgressCallback is called when batch progress occurs
type ProgressCallback func(event ProgressEvent)

// emitProgress calls the progress callback if configured
func (p *Processor) emitProgress(event ProgressEvent) {
	if p.OnProgress != nil {
		p.OnProgress(event)
	}
}
