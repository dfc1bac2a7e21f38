package workflow

import (
	"fmt"
	"sort"
)

// Edge is a directed transition to another node. When is evaluated against
// the current state; a nil When always matches. Edges are evaluated in
// order and the first match wins.
type Edge struct {
	To   string
	When func(*State) bool
}

// Node is one step position in the graph.
type Node struct {
	Name string
	Next []Edge

	// Terminal marks a node after which the session completes.
	Terminal bool

	// AwaitInput marks the suspension point: the engine halts before
	// executing this node until external human input has been applied.
	AwaitInput bool
}

// Graph is the fixed step topology the engine drives. The cursor moves
// strictly forward through it.
type Graph struct {
	nodes map[string]*Node
	start string
}

// NewGraph creates and validates a graph with the given start node.
func NewGraph(start string, nodes []*Node) (*Graph, error) {
	if start == "" {
		return nil, fmt.Errorf("graph start node required")
	}
	byName := make(map[string]*Node, len(nodes))
	for _, node := range nodes {
		if node.Name == "" {
			return nil, fmt.Errorf("node name cannot be empty")
		}
		byName[node.Name] = node
	}
	if _, ok := byName[start]; !ok {
		return nil, fmt.Errorf("start node %q not found", start)
	}
	for _, node := range byName {
		for _, edge := range node.Next {
			if _, ok := byName[edge.To]; !ok {
				return nil, fmt.Errorf("edge from %q to unknown node %q", node.Name, edge.To)
			}
		}
	}
	return &Graph{nodes: byName, start: start}, nil
}

// Node returns the node with the given name.
func (g *Graph) Node(name string) (*Node, bool) {
	node, ok := g.nodes[name]
	return node, ok
}

// Names returns the names of all nodes in the graph, sorted.
func (g *Graph) Names() []string {
	names := make([]string, 0, len(g.nodes))
	for name := range g.nodes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Next returns the name of the step that follows the given cursor for the
// given state, or "" when the pipeline is complete. The cursor "start"
// yields the graph's start node.
func (g *Graph) Next(cursor string, state *State) (string, error) {
	if cursor == CursorStart {
		return g.start, nil
	}
	node, ok := g.nodes[cursor]
	if !ok {
		return "", fmt.Errorf("unknown cursor %q", cursor)
	}
	if node.Terminal {
		return "", nil
	}
	for _, edge := range node.Next {
		if edge.When == nil || edge.When(state) {
			return edge.To, nil
		}
	}
	return "", nil
}

// SchedulingGraph returns the fixed topology of the scheduling pipeline:
//
//	start -> authenticate -> fetch_threads -> extract_meetings
//	  -> no_meetings (terminal, when extraction found nothing)
//	  -> normalize_events -> detect_conflicts
//	       -> create_events (when no conflicts)
//	       -> resolve_conflicts -> create_events
func SchedulingGraph() *Graph {
	graph, err := NewGraph(StepAuthenticate, []*Node{
		{Name: StepAuthenticate, Next: []Edge{{To: StepFetchThreads}}},
		{Name: StepFetchThreads, Next: []Edge{{To: StepExtractMeetings}}},
		{
			Name: StepExtractMeetings,
			Next: []Edge{
				{To: StepNoMeetings, When: func(s *State) bool { return s.Proposed.IsNone() }},
				{To: StepNormalizeEvents},
			},
		},
		{Name: StepNoMeetings, Terminal: true},
		{Name: StepNormalizeEvents, Next: []Edge{{To: StepDetectConflicts}}},
		{
			Name: StepDetectConflicts,
			Next: []Edge{
				{To: StepCreateEvents, When: func(s *State) bool { return s.Conflicts.IsNone() }},
				{To: StepResolveConflicts},
			},
		},
		{Name: StepResolveConflicts, AwaitInput: true, Next: []Edge{{To: StepCreateEvents}}},
		{Name: StepCreateEvents, Terminal: true},
	})
	if err != nil {
		// The topology is fixed at compile time; a validation failure is a bug.
		panic(err)
	}
	return graph
}
