// Package prompt builds the language-model prompts used by the
// scheduling pipeline and parses the model's JSON replies. Both model
// providers share these, so switching providers never changes the
// contract the engine relies on.
package prompt

import (
	"encoding/json"
	"fmt"

	"github.com/deepnoodle-ai/meetflow/schedule"
)

// Prompt is one system/user message pair ready to send to a model.
type Prompt struct {
	System string
	User   string
}

const extractSystem = `You are an intelligent assistant for an email agent that extracts meeting details from a list of email threads.

### Input:
You will receive:
- A list of email threads as JSON, where each thread includes:
  - A thread ID
  - A subject line
  - A list of messages, with each message containing:
    - Message ID
    - Message body (contains meeting details)
    - Sender email (message from)
    - Recipient emails (message to)
    - Timestamp (including UTC offset)
- The current date and time in ISO 8601 format

### Extraction Guidelines:
1. **Meeting Detection**:
   - Extract meeting details only if they are explicitly mentioned.
   - If no meeting details are found, return the literal string NONE.
   - Ignore past meetings; only return upcoming meetings based on the current date and time.
2. **Timezone Handling**:
   - Determine the timezone using the timestamp of the message containing meeting details.
   - Map the UTC offset in the timestamp (e.g. "-0700") to its corresponding region format, such as "America/Phoenix" or "America/New_York".
3. **Meeting Duration**:
   - If the meeting duration or end time is not specified, assume a default duration of 30 minutes.
4. **Attendee Emails**:
   - Carefully extract attendee emails without any typos or errors.
5. **Meeting Location**:
   - If a location is explicitly mentioned in the email, use it.
   - If no location is provided, assume the meeting is Online.

### Output:
Either the literal string NONE, or a JSON object with this shape and nothing else:
{"meetings": [{"summary": "...", "start": {"dateTime": "2025-01-02T15:00:00-07:00", "timeZone": "America/Phoenix"}, "end": {"dateTime": "2025-01-02T15:30:00-07:00", "timeZone": "America/Phoenix"}, "location": "Online", "description": "...", "attendees": ["email1@example.com", "email2@example.com"]}]}

Ensure accuracy and completeness in extracting the details.`

// ExtractMeetings builds the prompt that extracts upcoming meeting
// candidates from the given threads. now is the current time in RFC3339.
func ExtractMeetings(threads []schedule.Thread, now string) (*Prompt, error) {
	data, err := json.MarshalIndent(threads, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("error encoding threads: %w", err)
	}
	user := fmt.Sprintf(`Extract the meeting details from the following thread of emails:
%s

Here is the current date and time:
%s`, data, now)
	return &Prompt{System: extractSystem, User: user}, nil
}

const normalizeSystem = `Parse the input timestamp and return it in RFC3339 format.
If the timestamp is naive (i.e. has no timezone), assume the given timezone.

### Input:
- A timestamp string
- A timezone string

### Output:
- A timestamp string in RFC3339 format`

// NormalizeTimestamp builds the prompt that converts a raw timestamp
// string into RFC3339 form.
func NormalizeTimestamp(raw, timezone string) *Prompt {
	user := fmt.Sprintf(`This is the timestamp string:
%s
This is the timezone string:
%s

Return the timestamp string in RFC3339 format only, nothing else.`, raw, timezone)
	return &Prompt{System: normalizeSystem, User: user}
}

const resolveSystem = `You are an intelligent assistant for an email agent that resolves conflicts in calendar events.

### Input:
You will receive:
- A list of conflicting events as JSON, where each item includes:
  - Existing events
  - New event
- A list of events to be scheduled
- The user's input regarding the resolution of the conflicts

Based on the user's input, resolve the conflicts and return the events to be scheduled. The user may reschedule, keep, or cancel events; the resolved list may be empty if everything is canceled.

### Output:
A JSON object with this shape and nothing else:
{"resolved_events": {"meetings": [{"summary": "...", "start": {"dateTime": "...", "timeZone": "..."}, "end": {"dateTime": "...", "timeZone": "..."}, "location": "...", "description": "...", "attendees": ["..."]}]}, "resolution_description": "A short human-readable summary of how the conflicts were resolved."}`

// ResolveConflicts builds the prompt that folds the user's free-text
// resolution into the pending event list.
func ResolveConflicts(conflicts []schedule.Conflict, pending []schedule.Event, input string) (*Prompt, error) {
	conflictData, err := json.MarshalIndent(conflicts, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("error encoding conflicts: %w", err)
	}
	pendingData, err := json.MarshalIndent(pending, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("error encoding pending events: %w", err)
	}
	user := fmt.Sprintf(`This is the list of conflicting events:
%s

This is the list of events to be scheduled:
%s

This is the user's input regarding the resolution of the conflicts:
%s`, conflictData, pendingData, input)
	return &Prompt{System: resolveSystem, User: user}, nil
}
