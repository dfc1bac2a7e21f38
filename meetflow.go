// Package meetflow provides a durable workflow engine that turns inbound
// email threads into scheduled calendar events.
//
// The engine scans mail threads, asks a language model to extract meeting
// intents, checks the target calendar for conflicts, suspends for human
// conflict resolution when needed, and finally commits events to the
// calendar. Each run is a session: progress is checkpointed to a session
// store after every step, so a run that pauses for human input resumes
// later with exactly the state it left off with.
//
// This package defines the collaborator interfaces (mail, calendar, and
// language-model clients), the stream types used to observe progress, and
// the shared error taxonomy. The engine itself lives in the engine
// subpackage; concrete collaborator clients live under providers.
package meetflow

import (
	"context"

	"github.com/deepnoodle-ai/meetflow/schedule"
)

// MailClient reads threads from a mail provider.
type MailClient interface {
	// ListThreads returns references to the most recent threads in the
	// inbox, up to maxResults.
	ListThreads(ctx context.Context, maxResults int64) ([]schedule.ThreadRef, error)

	// GetThread returns the full thread, including per-message headers.
	GetThread(ctx context.Context, id string) (*schedule.RawThread, error)
}

// CalendarClient reads and writes events on a calendar provider.
type CalendarClient interface {
	// ListEvents returns the events on the calendar that fall within the
	// given RFC3339 time window.
	ListEvents(ctx context.Context, calendarID, timeMin, timeMax string) ([]schedule.CalendarEvent, error)

	// InsertEvent creates the event and returns the provider's view of it,
	// including assigned ID and links. The event's request token should be
	// used by the implementation to make creation idempotent where the
	// provider supports it.
	InsertEvent(ctx context.Context, calendarID string, event *schedule.Event) (*schedule.CalendarEvent, error)

	// DeleteEvent removes an event by its provider-assigned ID.
	DeleteEvent(ctx context.Context, calendarID, eventID string) error
}

// ModelClient is the language-model collaborator. All three calls are
// stateless request/response; the engine adds no retries around them.
type ModelClient interface {
	// ExtractMeetings extracts upcoming meeting candidates from the given
	// threads. now is the current time in RFC3339, used to discard past
	// meetings. Returns the "none" sentinel list when no meetings are found.
	ExtractMeetings(ctx context.Context, threads []schedule.Thread, now string) (*schedule.MeetingList, error)

	// NormalizeTimestamp converts a raw timestamp string into RFC3339,
	// assuming the given IANA timezone when the input is naive.
	NormalizeTimestamp(ctx context.Context, raw, timezone string) (string, error)

	// ResolveConflicts interprets free-text human input against the conflict
	// list and returns the replacement event list plus a human-readable
	// summary of how the conflicts were resolved.
	ResolveConflicts(ctx context.Context, conflicts []schedule.Conflict, pending []schedule.Event, input string) (*schedule.MeetingList, string, error)
}

// Services bundles the live collaborator handles for one session. Handles
// are created per session and never shared across sessions.
type Services struct {
	Mail     MailClient
	Calendar CalendarClient
	Model    ModelClient
}

// Dialer acquires authenticated collaborator handles. Dial is called once
// per session at the authenticate step, and again after a resume when the
// original handles did not survive the suspension.
type Dialer interface {
	Dial(ctx context.Context) (*Services, error)
}

// DialerFunc adapts a function to the Dialer interface.
type DialerFunc func(ctx context.Context) (*Services, error)

func (f DialerFunc) Dial(ctx context.Context) (*Services, error) {
	return f(ctx)
}
