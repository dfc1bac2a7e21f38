package prompt

import (
	"errors"
	"testing"

	"github.com/deepnoodle-ai/meetflow"
	"github.com/deepnoodle-ai/meetflow/schedule"
	"github.com/stretchr/testify/require"
)

func TestParseMeetings(t *testing.T) {
	list, err := ParseMeetings(`{"meetings": [{"summary": "Standup", "start": {"dateTime": "2025-01-02T15:00:00-07:00", "timeZone": "America/Phoenix"}, "end": {"dateTime": "2025-01-02T15:30:00-07:00", "timeZone": "America/Phoenix"}, "location": "Online", "description": "Daily sync", "attendees": ["a@example.com"]}]}`)
	require.NoError(t, err)
	require.False(t, list.IsNone())
	require.Len(t, list.Meetings, 1)
	require.Equal(t, "Standup", list.Meetings[0].Summary)
	require.Equal(t, "America/Phoenix", list.Meetings[0].Start.TimeZone)
	require.Equal(t, []string{"a@example.com"}, list.Meetings[0].Attendees)
}

func TestParseMeetingsNone(t *testing.T) {
	for _, text := range []string{
		"NONE",
		"none",
		"  NONE\n",
		`{"meetings": []}`,
	} {
		list, err := ParseMeetings(text)
		require.NoError(t, err, "input %q", text)
		require.True(t, list.IsNone(), "input %q", text)
	}
}

func TestParseMeetingsFenced(t *testing.T) {
	list, err := ParseMeetings("```json\n{\"meetings\": [{\"summary\": \"Review\"}]}\n```")
	require.NoError(t, err)
	require.False(t, list.IsNone())
	require.Equal(t, "Review", list.Meetings[0].Summary)
}

func TestParseMeetingsMalformed(t *testing.T) {
	_, err := ParseMeetings("I could not find any meetings, sorry!")
	require.Error(t, err)
	require.True(t, errors.Is(err, meetflow.ErrMalformedModelOutput))
}

func TestParseResolution(t *testing.T) {
	list, summary, err := ParseResolution(`{"resolved_events": {"meetings": [{"summary": "Standup (moved)"}]}, "resolution_description": "Moved the standup to 4pm."}`)
	require.NoError(t, err)
	require.False(t, list.IsNone())
	require.Equal(t, "Standup (moved)", list.Meetings[0].Summary)
	require.Equal(t, "Moved the standup to 4pm.", summary)
}

func TestParseResolutionCancelAll(t *testing.T) {
	list, summary, err := ParseResolution(`{"resolved_events": {"meetings": []}, "resolution_description": "Canceled both events."}`)
	require.NoError(t, err)
	require.True(t, list.IsNone())
	require.Equal(t, "Canceled both events.", summary)
}

func TestParseResolutionMalformed(t *testing.T) {
	_, _, err := ParseResolution(`{"resolved_events": null}`)
	require.Error(t, err)
	require.True(t, errors.Is(err, meetflow.ErrMalformedModelOutput))

	_, _, err = ParseResolution("not json at all")
	require.True(t, errors.Is(err, meetflow.ErrMalformedModelOutput))
}

func TestParseTimestamp(t *testing.T) {
	ts, err := ParseTimestamp("2025-03-04T10:00:00-07:00\n")
	require.NoError(t, err)
	require.Equal(t, "2025-03-04T10:00:00-07:00", ts)

	_, err = ParseTimestamp("March 4th at 10am")
	require.True(t, errors.Is(err, meetflow.ErrMalformedModelOutput))
}

func TestStripFences(t *testing.T) {
	require.Equal(t, `{"a": 1}`, StripFences("```json\n{\"a\": 1}\n```"))
	require.Equal(t, `{"a": 1}`, StripFences("```\n{\"a\": 1}\n```"))
	require.Equal(t, `{"a": 1}`, StripFences(`{"a": 1}`))
}

func TestExtractMeetingsPrompt(t *testing.T) {
	threads := []schedule.Thread{{
		ID:      "t1",
		Subject: "Planning",
		Messages: []schedule.Message{{
			ID:        "m1",
			Body:      "Let's meet tomorrow at 3pm",
			From:      "a@example.com",
			To:        []string{"b@example.com"},
			Timestamp: "Tue, 4 Mar 2025 10:00:00 -0700",
		}},
	}}
	p, err := ExtractMeetings(threads, "2025-03-04T09:00:00-07:00")
	require.NoError(t, err)
	require.Contains(t, p.System, "NONE")
	require.Contains(t, p.User, "Planning")
	require.Contains(t, p.User, "2025-03-04T09:00:00-07:00")
}

func TestExtractMeetingsPromptDefaults(t *testing.T) {
	// Extraction must instruct the model to fill in the defaults that the
	// rest of the pipeline relies on: a 30-minute duration when none is
	// given and an Online location when none is mentioned.
	p, err := ExtractMeetings(nil, "2025-03-04T09:00:00-07:00")
	require.NoError(t, err)
	require.Contains(t, p.System, "default duration of 30 minutes")
	require.Contains(t, p.System, "assume the meeting is Online")
	require.Contains(t, p.System, "only return upcoming meetings")
}

func TestResolveConflictsPrompt(t *testing.T) {
	pending := []schedule.Event{{Meeting: schedule.Meeting{Summary: "Standup"}, RequestID: "r1"}}
	conflicts := []schedule.Conflict{{
		Existing: []schedule.CalendarEvent{{Summary: "Focus time"}},
		NewEvent: pending[0],
	}}
	p, err := ResolveConflicts(conflicts, pending, "move the standup to 4pm")
	require.NoError(t, err)
	require.Contains(t, p.User, "Focus time")
	require.Contains(t, p.User, "move the standup to 4pm")
	require.Contains(t, p.System, "resolution_description")
}
