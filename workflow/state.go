// Package workflow defines the scheduling pipeline: the shared state
// record accumulated across steps, the step registry and step
// implementations, and the fixed graph the engine drives.
package workflow

import (
	"encoding/json"
	"fmt"

	"github.com/deepnoodle-ai/meetflow/schedule"
)

// State is the shared record accumulated over a session. Each field is
// written by exactly one step and read by downstream steps; Messages is
// the only append-only field.
type State struct {
	Messages       []string                `json:"messages"`
	Threads        []schedule.Thread       `json:"threads,omitempty"`
	Proposed       *schedule.MeetingList   `json:"proposed_meetings,omitempty"`
	Pending        []schedule.Event        `json:"pending_events,omitempty"`
	Conflicts      *schedule.ConflictSet   `json:"conflicts,omitempty"`
	ResolutionText string                  `json:"resolution_text,omitempty"`
	Created        []schedule.CreatedEvent `json:"created_events,omitempty"`
}

// NewState returns an empty state record.
func NewState() *State {
	return &State{}
}

// Patch is a partial state produced by one step: only the fields the step
// produces are set. Messages are appended; all other non-nil fields
// replace the corresponding state field. A non-nil empty Pending slice is
// a valid replacement (conflict resolution may cancel every event).
type Patch struct {
	Messages       []string
	Threads        []schedule.Thread
	Proposed       *schedule.MeetingList
	Pending        []schedule.Event
	Conflicts      *schedule.ConflictSet
	ResolutionText string
	Created        []schedule.CreatedEvent
}

// Apply merges the patch into the state.
func (s *State) Apply(p *Patch) {
	if p == nil {
		return
	}
	s.Messages = append(s.Messages, p.Messages...)
	if p.Threads != nil {
		s.Threads = p.Threads
	}
	if p.Proposed != nil {
		s.Proposed = p.Proposed
	}
	if p.Pending != nil {
		s.Pending = p.Pending
	}
	if p.Conflicts != nil {
		s.Conflicts = p.Conflicts
	}
	if p.ResolutionText != "" {
		s.ResolutionText = p.ResolutionText
	}
	if p.Created != nil {
		s.Created = p.Created
	}
}

// Copy returns a deep copy of the state via JSON round-trip. The state is
// fully JSON-serializable by construction, so this cannot fail in
// practice.
func (s *State) Copy() *State {
	data, err := json.Marshal(s)
	if err != nil {
		panic(fmt.Sprintf("state not serializable: %v", err))
	}
	cp := &State{}
	if err := json.Unmarshal(data, cp); err != nil {
		panic(fmt.Sprintf("state not deserializable: %v", err))
	}
	return cp
}
