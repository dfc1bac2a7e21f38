package schedule

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRelevant(t *testing.T) {
	require.False(t, (&RawThread{}).Relevant())
	require.False(t, (&RawThread{Messages: make([]RawMessage, 2)}).Relevant())
	require.True(t, (&RawThread{Messages: make([]RawMessage, 3)}).Relevant())
	require.True(t, (&RawThread{Messages: make([]RawMessage, 10)}).Relevant())
}

func TestHeaderCaseInsensitive(t *testing.T) {
	m := &RawMessage{Headers: []Header{
		{Name: "subject", Value: "Quarterly planning"},
		{Name: "FROM", Value: "alice@example.com"},
	}}
	require.Equal(t, "Quarterly planning", m.Header("Subject"))
	require.Equal(t, "alice@example.com", m.Header("From"))
	require.Equal(t, "", m.Header("Date"))
}

func TestRecipients(t *testing.T) {
	m := &RawMessage{Headers: []Header{
		{Name: "To", Value: "bob@example.com"},
		{Name: "Cc", Value: "carol@example.com"},
		{Name: "From", Value: "alice@example.com"},
	}}
	require.Equal(t, []string{"bob@example.com", "carol@example.com"}, m.Recipients())
}

func TestThreadFromRaw(t *testing.T) {
	raw := &RawThread{
		ID: "t1",
		Messages: []RawMessage{
			{
				ID:      "m1",
				Snippet: "Shall we meet Tuesday at 3?",
				Headers: []Header{
					{Name: "Subject", Value: "Sync up"},
					{Name: "From", Value: "alice@example.com"},
					{Name: "To", Value: "bob@example.com"},
					{Name: "Date", Value: "Tue, 4 Mar 2025 10:00:00 -0700"},
				},
			},
			{
				ID:      "m2",
				Snippet: "Works for me",
				Headers: []Header{
					{Name: "Subject", Value: "Re: Sync up"},
					{Name: "From", Value: "bob@example.com"},
					{Name: "To", Value: "alice@example.com"},
					{Name: "Cc", Value: "carol@example.com"},
					{Name: "Date", Value: "Tue, 4 Mar 2025 10:05:00 -0700"},
				},
			},
		},
	}

	thread := ThreadFromRaw(raw)
	require.Equal(t, "t1", thread.ID)
	require.Equal(t, "Sync up", thread.Subject, "subject comes from the first message")
	require.Len(t, thread.Messages, 2)
	require.Equal(t, "Shall we meet Tuesday at 3?", thread.Messages[0].Body)
	require.Equal(t, "alice@example.com", thread.Messages[0].From)
	require.Equal(t, []string{"bob@example.com"}, thread.Messages[0].To)
	require.Equal(t, "Tue, 4 Mar 2025 10:00:00 -0700", thread.Messages[0].Timestamp)
	require.Equal(t, []string{"alice@example.com", "carol@example.com"}, thread.Messages[1].To)
}
