package prompt

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/deepnoodle-ai/meetflow"
	"github.com/deepnoodle-ai/meetflow/schedule"
)

// ParseMeetings parses a meeting extraction reply. The literal NONE (and
// an empty meeting list) map to the "none" sentinel; anything else must
// be the documented meetings JSON object.
func ParseMeetings(text string) (*schedule.MeetingList, error) {
	body := StripFences(text)
	if strings.EqualFold(body, "NONE") {
		return schedule.NoMeetings(), nil
	}
	var list schedule.MeetingList
	if err := json.Unmarshal([]byte(body), &list); err != nil {
		return nil, fmt.Errorf("%w: %v", meetflow.ErrMalformedModelOutput, err)
	}
	if len(list.Meetings) == 0 {
		return schedule.NoMeetings(), nil
	}
	list.None = false
	return &list, nil
}

type resolutionReply struct {
	ResolvedEvents        *schedule.MeetingList `json:"resolved_events"`
	ResolutionDescription string                `json:"resolution_description"`
}

// ParseResolution parses a conflict resolution reply into the replacement
// meeting list and the human-readable summary.
func ParseResolution(text string) (*schedule.MeetingList, string, error) {
	body := StripFences(text)
	var reply resolutionReply
	if err := json.Unmarshal([]byte(body), &reply); err != nil {
		return nil, "", fmt.Errorf("%w: %v", meetflow.ErrMalformedModelOutput, err)
	}
	if reply.ResolutionDescription == "" {
		return nil, "", fmt.Errorf("%w: missing resolution_description", meetflow.ErrMalformedModelOutput)
	}
	if reply.ResolvedEvents == nil || len(reply.ResolvedEvents.Meetings) == 0 {
		return schedule.NoMeetings(), reply.ResolutionDescription, nil
	}
	return reply.ResolvedEvents, reply.ResolutionDescription, nil
}

// ParseTimestamp parses a timestamp normalization reply, validating that
// the result is RFC3339.
func ParseTimestamp(text string) (string, error) {
	body := strings.TrimSpace(StripFences(text))
	if _, err := time.Parse(time.RFC3339, body); err != nil {
		return "", fmt.Errorf("%w: %q is not RFC3339", meetflow.ErrMalformedModelOutput, body)
	}
	return body, nil
}

// StripFences removes a surrounding markdown code fence, if present.
// Models sometimes wrap JSON output in ```json fences despite
// instructions not to.
func StripFences(text string) string {
	body := strings.TrimSpace(text)
	if !strings.HasPrefix(body, "```") {
		return body
	}
	body = strings.TrimPrefix(body, "```")
	if idx := strings.Index(body, "\n"); idx >= 0 {
		body = body[idx+1:]
	}
	body = strings.TrimSuffix(strings.TrimSpace(body), "```")
	return strings.TrimSpace(body)
}
