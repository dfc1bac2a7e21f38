package workflow

import (
	"testing"

	"github.com/deepnoodle-ai/meetflow/schedule"
	"github.com/stretchr/testify/require"
)

func TestNewGraphValidation(t *testing.T) {
	_, err := NewGraph("", nil)
	require.Error(t, err)

	_, err = NewGraph("a", []*Node{{Name: "b"}})
	require.Error(t, err)

	_, err = NewGraph("a", []*Node{
		{Name: "a", Next: []Edge{{To: "missing"}}},
	})
	require.Error(t, err)

	g, err := NewGraph("a", []*Node{
		{Name: "a", Next: []Edge{{To: "b"}}},
		{Name: "b", Terminal: true},
	})
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b"}, g.Names())
}

func TestNextFromStart(t *testing.T) {
	g := SchedulingGraph()
	next, err := g.Next(CursorStart, NewState())
	require.NoError(t, err)
	require.Equal(t, StepAuthenticate, next)
}

func TestNextUnknownCursor(t *testing.T) {
	g := SchedulingGraph()
	_, err := g.Next("bogus", NewState())
	require.Error(t, err)
}

func TestSchedulingGraphNoMeetingsBranch(t *testing.T) {
	g := SchedulingGraph()
	state := NewState()
	state.Proposed = schedule.NoMeetings()

	next, err := g.Next(StepExtractMeetings, state)
	require.NoError(t, err)
	require.Equal(t, StepNoMeetings, next)

	// no_meetings is terminal
	next, err = g.Next(StepNoMeetings, state)
	require.NoError(t, err)
	require.Equal(t, "", next)
}

func TestSchedulingGraphMeetingsBranch(t *testing.T) {
	g := SchedulingGraph()
	state := NewState()
	state.Proposed = &schedule.MeetingList{Meetings: []schedule.Meeting{{Summary: "a"}}}

	next, err := g.Next(StepExtractMeetings, state)
	require.NoError(t, err)
	require.Equal(t, StepNormalizeEvents, next)

	next, err = g.Next(StepNormalizeEvents, state)
	require.NoError(t, err)
	require.Equal(t, StepDetectConflicts, next)
}

func TestSchedulingGraphConflictBranches(t *testing.T) {
	g := SchedulingGraph()

	state := NewState()
	state.Conflicts = schedule.NoConflicts()
	next, err := g.Next(StepDetectConflicts, state)
	require.NoError(t, err)
	require.Equal(t, StepCreateEvents, next)

	state = NewState()
	state.Conflicts = &schedule.ConflictSet{Items: []schedule.Conflict{{}}}
	next, err = g.Next(StepDetectConflicts, state)
	require.NoError(t, err)
	require.Equal(t, StepResolveConflicts, next)

	node, ok := g.Node(StepResolveConflicts)
	require.True(t, ok)
	require.True(t, node.AwaitInput)

	next, err = g.Next(StepResolveConflicts, state)
	require.NoError(t, err)
	require.Equal(t, StepCreateEvents, next)

	next, err = g.Next(StepCreateEvents, state)
	require.NoError(t, err)
	require.Equal(t, "", next)
}

func TestDefaultRegistryCoversGraph(t *testing.T) {
	g := SchedulingGraph()
	r := DefaultRegistry()
	for _, name := range g.Names() {
		_, err := r.Get(name)
		require.NoError(t, err, "step %s must be registered", name)
	}
}
