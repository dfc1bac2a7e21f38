package workflow

import (
	"testing"

	"github.com/deepnoodle-ai/meetflow/schedule"
	"github.com/stretchr/testify/require"
)

func TestApplyAppendsMessages(t *testing.T) {
	state := NewState()
	state.Apply(&Patch{Messages: []string{"one"}})
	state.Apply(&Patch{Messages: []string{"two", "three"}})
	require.Equal(t, []string{"one", "two", "three"}, state.Messages)
}

func TestApplyReplacesFields(t *testing.T) {
	state := NewState()
	state.Apply(&Patch{
		Proposed: &schedule.MeetingList{Meetings: []schedule.Meeting{{Summary: "a"}}},
	})
	require.Len(t, state.Proposed.Meetings, 1)

	state.Apply(&Patch{Proposed: schedule.NoMeetings()})
	require.True(t, state.Proposed.IsNone())

	// A nil field leaves the state untouched
	state.Apply(&Patch{Messages: []string{"unrelated"}})
	require.True(t, state.Proposed.IsNone())
}

func TestApplyEmptyPendingReplaces(t *testing.T) {
	state := NewState()
	state.Apply(&Patch{Pending: []schedule.Event{{Meeting: schedule.Meeting{Summary: "a"}}}})
	require.Len(t, state.Pending, 1)

	// An empty non-nil slice is a valid replacement: resolution may
	// cancel every event.
	state.Apply(&Patch{Pending: []schedule.Event{}})
	require.NotNil(t, state.Pending)
	require.Empty(t, state.Pending)
}

func TestApplyResolutionText(t *testing.T) {
	state := NewState()
	state.Apply(&Patch{ResolutionText: "move it to 4pm"})
	require.Equal(t, "move it to 4pm", state.ResolutionText)

	state.Apply(&Patch{})
	require.Equal(t, "move it to 4pm", state.ResolutionText)
}

func TestApplyNil(t *testing.T) {
	state := NewState()
	state.Apply(nil)
	require.Empty(t, state.Messages)
}

func TestCopyIsDeep(t *testing.T) {
	state := NewState()
	state.Apply(&Patch{
		Messages: []string{"one"},
		Threads:  []schedule.Thread{{ID: "t1", Subject: "s"}},
		Pending:  []schedule.Event{{Meeting: schedule.Meeting{Summary: "a"}, RequestID: "r1"}},
	})

	cp := state.Copy()
	cp.Messages[0] = "mutated"
	cp.Threads[0].Subject = "mutated"
	cp.Pending[0].RequestID = "mutated"

	require.Equal(t, "one", state.Messages[0])
	require.Equal(t, "s", state.Threads[0].Subject)
	require.Equal(t, "r1", state.Pending[0].RequestID)
}
