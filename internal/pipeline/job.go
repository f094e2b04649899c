// Package pipeline drives documents through extraction and scoring one at a
// time, tracking per-document status and honoring stop requests between
// documents.
package pipeline

import (
	"errors"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/jonathan/resume-screener/internal/types"
)

var (
	// ErrRunInProgress is returned when a job already has an active run.
	ErrRunInProgress = errors.New("a batch run is already in progress")
	// ErrDocumentNotFound is returned for unknown document IDs.
	ErrDocumentNotFound = errors.New("document not found")
)

// Status messages published on the job.
const (
	StatusInitializing = "Initializing..."
	StatusStopping     = "Stopping..."
	StatusStopped      = "Stopped by user"
	StatusComplete     = "Analysis complete"
)

// Job is an ordered collection of documents screened together. Readers may
// call any method concurrently with an active run; they observe snapshots.
type Job struct {
	mu         sync.RWMutex
	docs       []*types.Document
	status     string
	analyzed   bool
	runWeights *types.CriteriaWeights

	running       atomic.Bool
	stopRequested atomic.Bool
}

// NewJob returns an empty job.
func NewJob() *Job {
	return &Job{}
}

// Add appends a pending document per source and returns copies of them.
// Documents added during a run are left for the next run.
func (j *Job) Add(sources ...types.Source) []types.Document {
	j.mu.Lock()
	defer j.mu.Unlock()

	added := make([]types.Document, 0, len(sources))
	for _, src := range sources {
		doc := types.NewDocument(src)
		j.docs = append(j.docs, doc)
		added = append(added, doc.Clone())
	}
	if len(sources) > 0 {
		j.analyzed = false
	}
	return added
}

// Remove deletes a document. Removal is refused while a run is active.
func (j *Job) Remove(id uuid.UUID) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.running.Load() {
		return ErrRunInProgress
	}

	for i, d := range j.docs {
		if d.ID == id {
			j.docs = append(j.docs[:i], j.docs[i+1:]...)
			return nil
		}
	}
	return ErrDocumentNotFound
}

// Clear removes every document and resets the job. Refused while a run is active.
func (j *Job) Clear() error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.running.Load() {
		return ErrRunInProgress
	}
	j.docs = nil
	j.status = ""
	j.analyzed = false
	j.runWeights = nil
	return nil
}

// Documents returns copies of all documents in upload order.
func (j *Job) Documents() []types.Document {
	j.mu.RLock()
	defer j.mu.RUnlock()

	out := make([]types.Document, len(j.docs))
	for i, d := range j.docs {
		out[i] = d.Clone()
	}
	return out
}

// Document returns a copy of the document with id.
func (j *Job) Document(id uuid.UUID) (types.Document, bool) {
	j.mu.RLock()
	defer j.mu.RUnlock()

	for _, d := range j.docs {
		if d.ID == id {
			return d.Clone(), true
		}
	}
	return types.Document{}, false
}

// Len returns the number of documents.
func (j *Job) Len() int {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return len(j.docs)
}

// RequestStop asks the active run to stop at the next document boundary.
// It has no effect when no run is active.
func (j *Job) RequestStop() bool {
	j.mu.Lock()
	defer j.mu.Unlock()

	if !j.running.Load() {
		return false
	}
	j.stopRequested.Store(true)
	j.status = StatusStopping
	return true
}

// IsRunning reports whether a run is active.
func (j *Job) IsRunning() bool {
	return j.running.Load()
}

// StopRequested reports whether a stop has been requested for the active run.
func (j *Job) StopRequested() bool {
	return j.stopRequested.Load()
}

// Status returns the latest published status message.
func (j *Job) Status() string {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.status
}

// Analyzed reports whether an uncancelled pass has completed since the last
// documents were added.
func (j *Job) Analyzed() bool {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.analyzed
}

// RunWeights returns the weights of the most recent run. ok is false when
// no run has started since the job was created or cleared.
func (j *Job) RunWeights() (weights types.CriteriaWeights, ok bool) {
	j.mu.RLock()
	defer j.mu.RUnlock()
	if j.runWeights == nil {
		return types.CriteriaWeights{}, false
	}
	return *j.runWeights, true
}

// Snapshot is a point-in-time summary of a job.
type Snapshot struct {
	Status        string                       `json:"status"`
	Running       bool                         `json:"running"`
	StopRequested bool                         `json:"stop_requested"`
	Analyzed      bool                         `json:"analyzed"`
	Total         int                          `json:"total"`
	Counts        map[types.DocumentStatus]int `json:"counts"`
}

// Snapshot summarizes the job's current state.
func (j *Job) Snapshot() Snapshot {
	j.mu.RLock()
	defer j.mu.RUnlock()

	counts := map[types.DocumentStatus]int{
		types.StatusPending:    0,
		types.StatusProcessing: 0,
		types.StatusCompleted:  0,
		types.StatusError:      0,
	}
	for _, d := range j.docs {
		counts[d.Status]++
	}
	return Snapshot{
		Status:        j.status,
		Running:       j.running.Load(),
		StopRequested: j.stopRequested.Load(),
		Analyzed:      j.analyzed,
		Total:         len(j.docs),
		Counts:        counts,
	}
}

// begin claims the job for a run scored with weights. The claim is taken
// under the write lock so Remove and Clear never interleave with it.
func (j *Job) begin(weights types.CriteriaWeights) bool {
	j.mu.Lock()
	defer j.mu.Unlock()

	if !j.running.CompareAndSwap(false, true) {
		return false
	}
	j.stopRequested.Store(false)
	j.runWeights = &weights
	return true
}

// end releases the job and publishes the terminal status. A stop requested
// at any point before the release counts, so end reports whether the run
// finished stopped. Only an unstopped run marks the job analyzed.
func (j *Job) end(stopped bool) bool {
	j.mu.Lock()
	defer j.mu.Unlock()

	stopped = stopped || j.stopRequested.Load()
	if stopped {
		j.status = StatusStopped
	} else {
		j.analyzed = true
		j.status = StatusComplete
	}
	j.stopRequested.Store(false)
	j.running.Store(false)
	return stopped
}

func (j *Job) setStatus(msg string) {
	j.mu.Lock()
	j.status = msg
	j.mu.Unlock()
}

func (j *Job) ids() []uuid.UUID {
	j.mu.RLock()
	defer j.mu.RUnlock()
	out := make([]uuid.UUID, len(j.docs))
	for i, d := range j.docs {
		out[i] = d.ID
	}
	return out
}

// update applies fn to the live document with id under the write lock.
func (j *Job) update(id uuid.UUID, fn func(d *types.Document)) (types.Document, bool) {
	j.mu.Lock()
	defer j.mu.Unlock()
	for _, d := range j.docs {
		if d.ID == id {
			fn(d)
			return d.Clone(), true
		}
	}
	return types.Document{}, false
}
