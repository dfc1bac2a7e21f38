// Package schedule defines the data model for the meeting scheduling
// pipeline: mail threads, meeting candidates, calendar events, and
// conflicts, plus the pure logic for interval overlap and mail header
// extraction.
package schedule

import "time"

// ThreadRef identifies a mail thread without its contents.
type ThreadRef struct {
	ID string `json:"id"`
}

// Header is a single mail message header.
type Header struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// RawMessage is a mail message as returned by the provider, before header
// extraction.
type RawMessage struct {
	ID      string   `json:"id"`
	Snippet string   `json:"snippet"`
	Headers []Header `json:"headers"`
}

// RawThread is a mail thread as returned by the provider.
type RawThread struct {
	ID       string       `json:"id"`
	Messages []RawMessage `json:"messages"`
}

// Message is a processed mail message.
type Message struct {
	ID        string   `json:"id"`
	Body      string   `json:"body"`
	From      string   `json:"from"`
	To        []string `json:"to"`
	Timestamp string   `json:"timestamp"`
}

// Thread is a processed mail thread: subject plus its messages in order.
type Thread struct {
	ID       string    `json:"thread_id"`
	Subject  string    `json:"subject"`
	Messages []Message `json:"messages"`
}

// EventTime is a point in time with an IANA timezone, in the shape
// calendar providers use.
type EventTime struct {
	DateTime string `json:"dateTime"`
	TimeZone string `json:"timeZone"`
}

// Time parses the RFC3339 timestamp.
func (t EventTime) Time() (time.Time, error) {
	return time.Parse(time.RFC3339, t.DateTime)
}

// Meeting is one meeting candidate extracted from a thread.
type Meeting struct {
	Summary     string    `json:"summary"`
	Start       EventTime `json:"start"`
	End         EventTime `json:"end"`
	Location    string    `json:"location"`
	Description string    `json:"description"`
	Attendees   []string  `json:"attendees"`
}

// MeetingList is a list of meeting candidates with an explicit "none"
// sentinel, rather than relying on absence of a value.
type MeetingList struct {
	None     bool      `json:"none,omitempty"`
	Meetings []Meeting `json:"meetings,omitempty"`
}

// NoMeetings returns the sentinel list indicating no meetings were found.
func NoMeetings() *MeetingList {
	return &MeetingList{None: true}
}

// IsNone reports whether the list is the "none" sentinel.
func (l *MeetingList) IsNone() bool {
	return l == nil || l.None
}

// Event is a meeting candidate normalized for conflict checking and
// creation. RequestID is a stable per-run token attached during
// normalization, used to make provider-side creation idempotent.
type Event struct {
	Meeting
	RequestID string `json:"request_id"`
}

// CalendarEvent is a snapshot of an event that exists on the calendar.
type CalendarEvent struct {
	ID          string    `json:"id,omitempty"`
	Summary     string    `json:"summary"`
	Start       EventTime `json:"start"`
	End         EventTime `json:"end"`
	Location    string    `json:"location"`
	Description string    `json:"description"`
	Attendees   []string  `json:"attendees,omitempty"`
	EventLink   string    `json:"event_link,omitempty"`
	MeetingLink string    `json:"meeting_link,omitempty"`
	Created     string    `json:"created,omitempty"`
	Updated     string    `json:"updated,omitempty"`
}

// Conflict pairs one pending event with the existing calendar items that
// overlap its window. Existing may be empty for events with no overlap;
// the aggregate conflict set is only surfaced when at least one pending
// event has a non-empty Existing list.
type Conflict struct {
	Existing []CalendarEvent `json:"existing"`
	NewEvent Event           `json:"new_event"`
}

// ConflictSet is the aggregate conflict detection result with an explicit
// "none" sentinel. It is set exactly once per session.
type ConflictSet struct {
	None  bool       `json:"none,omitempty"`
	Items []Conflict `json:"items,omitempty"`
}

// NoConflicts returns the sentinel set indicating no conflicts were found.
func NoConflicts() *ConflictSet {
	return &ConflictSet{None: true}
}

// IsNone reports whether the set is the "none" sentinel.
func (c *ConflictSet) IsNone() bool {
	return c == nil || c.None
}

// CreatedEvent is a confirmed calendar event with provider-assigned
// identifiers and links.
type CreatedEvent struct {
	Summary     string   `json:"summary"`
	EventLink   string   `json:"event_link"`
	MeetingLink string   `json:"meeting_link"`
	Start       string   `json:"start"`
	End         string   `json:"end"`
	Timezone    string   `json:"timezone"`
	Location    string   `json:"location"`
	Description string   `json:"description"`
	Attendees   []string `json:"attendees"`
	CreatedAt   string   `json:"created_at"`
	UpdatedAt   string   `json:"updated_at"`
}
