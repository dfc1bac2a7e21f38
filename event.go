package meetflow

import "github.com/deepnoodle-ai/meetflow/schedule"

// EventType is the type of event emitted by a session run.
type EventType string

const (
	// EventTypeThreadID carries the session identifier, emitted first on
	// every new run so the caller can resume later.
	EventTypeThreadID EventType = "thread_id"

	// EventTypeMessage carries a human-readable progress string.
	EventTypeMessage EventType = "message"

	// EventTypeEventsToSchedule carries the normalized meeting candidates.
	EventTypeEventsToSchedule EventType = "events_to_schedule"

	// EventTypeFinal closes the initial run segment: it carries the pending
	// events and the conflict list (null when no conflicts were found).
	EventTypeFinal EventType = "final"

	// EventTypeMeetingsScheduled carries one created calendar event. One
	// event is emitted per creation, paced by the engine's Pacer.
	EventTypeMeetingsScheduled EventType = "meetings_scheduled"

	// EventTypeError carries a terminal error message.
	EventTypeError EventType = "error"
)

func (t EventType) String() string {
	return string(t)
}

// StreamEvent is one progress event on a session stream. Content is set
// for thread_id and message events; Data is set for the typed payloads.
type StreamEvent struct {
	Type    EventType `json:"type"`
	Content string    `json:"content,omitempty"`
	Data    any       `json:"data,omitempty"`
}

// MeetingsData is the payload of an events_to_schedule event.
type MeetingsData struct {
	Meetings []schedule.Meeting `json:"meetings"`
}

// ScheduledData is the payload of a meetings_scheduled event.
type ScheduledData struct {
	Meetings []schedule.CreatedEvent `json:"meetings"`
}

// FinalData is the payload of a final event. ConflictingEvents is nil when
// conflict detection found nothing; in that case the run proceeds straight
// to event creation without suspending.
type FinalData struct {
	EventsToSchedule  []schedule.Event    `json:"events_to_schedule"`
	ConflictingEvents []schedule.Conflict `json:"conflicting_events"`
}
