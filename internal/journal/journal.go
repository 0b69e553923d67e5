package journal

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned by Get for unknown run IDs.
var ErrNotFound = errors.New("run not found")

// Record summarises one run of a sequence.
type Record struct {
	ID         string    `json:"id"`
	Sequence   string    `json:"sequence"`
	Units      int       `json:"units"`
	Iterations int       `json:"iterations"`
	Completed  int       `json:"completed"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	FailedUnit string    `json:"failed_unit,omitempty"`
	Error      string    `json:"error,omitempty"`
}

// Succeeded reports whether every requested iteration completed.
func (r Record) Succeeded() bool {
	return r.Error == "" && r.Completed == r.Iterations
}

// Duration returns the wall time of the run.
func (r Record) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

// Journal stores run records.
type Journal interface {
	// Record stores or replaces a record keyed by its ID.
	Record(ctx context.Context, rec Record) error
	// List returns every record, oldest first.
	List(ctx context.Context) ([]Record, error)
	// Close releases the underlying storage.
	Close() error
}

// NewRunID returns a fresh random run identifier.
func NewRunID() string {
	return uuid.NewString()
}

// Noop is a Journal that stores nothing.
type Noop struct{}

// Record implements Journal.
func (Noop) Record(context.Context, Record) error { return nil }

// List implements Journal.
func (Noop) List(context.Context) ([]Record, error) { return nil, nil }

// Close implements Journal.
func (Noop) Close() error { return nil }
