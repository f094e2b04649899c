// Package types provides type definitions for structured data used throughout the resume-screener system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"github.com/google/uuid"
)

// DocumentStatus is the lifecycle state of a document within a batch.
type DocumentStatus string

// Document lifecycle states. Transitions are pending -> processing -> completed|error.
const (
	StatusPending    DocumentStatus = "pending"
	StatusProcessing DocumentStatus = "processing"
	StatusCompleted  DocumentStatus = "completed"
	StatusError      DocumentStatus = "error"
)

// IsTerminal reports whether the status is completed or error.
func (s DocumentStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusError
}

// Source is the raw input a document was created from.
type Source struct {
	Name string `json:"name"`
	Path string `json:"path,omitempty"`
	Data []byte `json:"-"`
}

// Contact holds identity fields recovered from document text. Each field is
// empty when not found.
type Contact struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Document is one candidate application within a batch.
type Document struct {
	ID      uuid.UUID       `json:"id"`
	Name    string          `json:"name"`
	Source  Source          `json:"-"`
	Text    string          `json:"text,omitempty"`
	Status  DocumentStatus  `json:"status"`
	Error   string          `json:"error,omitempty"`
	Contact *Contact        `json:"contact,omitempty"`
	Score   *ScoreBreakdown `json:"score,omitempty"`
}

// NewDocument creates a pending document for the given source.
func NewDocument(src Source) *Document {
	return &Document{
		ID:     uuid.New(),
		Name:   src.Name,
		Source: src,
		Status: StatusPending,
	}
}

// Clone returns a copy that shares no mutable state with d.
func (d *Document) Clone() Document {
	c := *d
	if d.Contact != nil {
		contact := *d.Contact
		c.Contact = &contact
	}
	if d.Score != nil {
		c.Score = d.Score.Clone()
	}
	return c
}
