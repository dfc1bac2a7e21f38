package workflow

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/deepnoodle-ai/meetflow"
	"github.com/deepnoodle-ai/meetflow/slogger"
)

// Step and cursor names. The cursor records the last completed step and
// only ever advances forward through the graph.
const (
	CursorStart = "start"

	StepAuthenticate     = "authenticate"
	StepFetchThreads     = "fetch_threads"
	StepExtractMeetings  = "extract_meetings"
	StepNoMeetings       = "no_meetings"
	StepNormalizeEvents  = "normalize_events"
	StepDetectConflicts  = "detect_conflicts"
	StepResolveConflicts = "resolve_conflicts"
	StepCreateEvents     = "create_events"
)

// StepFunc is one named unit of pipeline work: it reads the current state
// and the session's service handles, and returns a partial state patch.
// Steps never mutate state they did not produce, and never swallow a
// collaborator failure.
type StepFunc func(ctx context.Context, env *Env, state *State) (*Patch, error)

// Env carries the per-session execution environment: the dialer used to
// acquire service handles, the handles themselves once acquired, and the
// knobs steps need. Handles are never shared across sessions.
type Env struct {
	Dialer     meetflow.Dialer
	CalendarID string
	MaxThreads int64
	Now        func() time.Time
	Logger     slogger.Logger

	services *meetflow.Services
}

// Connect dials the collaborator services and stores the handles on the
// environment. Called by the authenticate step.
func (e *Env) Connect(ctx context.Context) error {
	services, err := e.Dialer.Dial(ctx)
	if err != nil {
		return err
	}
	e.services = services
	return nil
}

// Services returns the live service handles, dialing first if none are
// held. The lazy dial covers resumption: a session that suspended for
// human input reacquires handles on the first service call after resume,
// without rolling the cursor back to authenticate.
func (e *Env) Services(ctx context.Context) (*meetflow.Services, error) {
	if e.services != nil {
		return e.services, nil
	}
	if err := e.Connect(ctx); err != nil {
		return nil, err
	}
	return e.services, nil
}

// Registry maps step names to step functions.
type Registry struct {
	steps map[string]StepFunc
}

// NewRegistry returns an empty step registry.
func NewRegistry() *Registry {
	return &Registry{steps: map[string]StepFunc{}}
}

// Register adds a step function under the given name, replacing any
// existing registration.
func (r *Registry) Register(name string, fn StepFunc) {
	r.steps[name] = fn
}

// Get returns the step function registered under the given name.
func (r *Registry) Get(name string) (StepFunc, error) {
	fn, ok := r.steps[name]
	if !ok {
		return nil, fmt.Errorf("step %q not registered", name)
	}
	return fn, nil
}

// Names returns the registered step names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.steps))
	for name := range r.steps {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
