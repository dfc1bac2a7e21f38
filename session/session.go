// Package session persists workflow state per session identifier.
//
// Each session is one scheduling run. The store holds one record per
// session containing the cursor (the last completed step), the status,
// and the full shared state, and supports point-in-time snapshot and
// resume. Writes are last-writer-wins per session; sessions never share
// a transaction, so stores only need independent per-session read/write.
//
// In-memory store (no persistence):
//
//	store := session.NewMemoryStore()
//
// Persistent store:
//
//	store, _ := session.NewFileStore("~/.meetflow/sessions")
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/deepnoodle-ai/meetflow/workflow"
	"go.jetify.com/typeid"
)

// ErrNotFound is returned when a session does not exist.
var ErrNotFound = errors.New("session not found")

// Status is the lifecycle state of a session.
type Status string

const (
	StatusRunning         Status = "running"
	StatusWaitingForInput Status = "waiting_for_input"
	StatusCompleted       Status = "completed"
	StatusFailed          Status = "failed"
)

// Record is the persisted snapshot of one session: the checkpoint written
// after each step.
type Record struct {
	ID        string          `json:"id"`
	Cursor    string          `json:"cursor"`
	Status    Status          `json:"status"`
	State     *workflow.State `json:"state"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Copy returns a deep copy of the record.
func (r *Record) Copy() *Record {
	cp := *r
	if r.State != nil {
		cp.State = r.State.Copy()
	}
	return &cp
}

// Store is the storage abstraction for session checkpoints.
type Store interface {
	// Create allocates a new session with a fresh identifier, cursor at
	// "start", status running, and empty state.
	Create(ctx context.Context) (*Record, error)

	// Save atomically overwrites the persisted snapshot for the record's
	// session. Last writer wins.
	Save(ctx context.Context, record *Record) error

	// Load returns the full persisted snapshot, or ErrNotFound.
	Load(ctx context.Context, id string) (*Record, error)

	// ApplyPatch merges a partial state into the existing session state
	// without the caller resending the whole record. Used to inject
	// external input while a session waits. Returns the updated record.
	ApplyPatch(ctx context.Context, id string, patch *workflow.Patch) (*Record, error)

	// Delete removes a session. Idempotent: returns nil if absent.
	Delete(ctx context.Context, id string) error

	// List returns snapshots of all sessions, most recently updated first.
	List(ctx context.Context) ([]*Record, error)
}

// NewID generates a new session identifier.
func NewID() (string, error) {
	value, err := typeid.WithPrefix("session")
	if err != nil {
		return "", fmt.Errorf("error creating session id: %w", err)
	}
	return value.String(), nil
}

// newRecord returns a fresh record positioned at the start of the graph.
func newRecord() (*Record, error) {
	id, err := NewID()
	if err != nil {
		return nil, err
	}
	now := time.Now()
	return &Record{
		ID:        id,
		Cursor:    workflow.CursorStart,
		Status:    StatusRunning,
		State:     workflow.NewState(),
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}
