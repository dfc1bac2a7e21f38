// Package engine drives scheduling sessions through the workflow graph.
//
// Each session advances a cursor through the graph one step at a time.
// After every step the engine checkpoints (cursor, status, state) to the
// session store before emitting any event for that step, so an observed
// event always reflects durable state. When the graph reaches its
// suspension point with no human input applied, the engine persists the
// session as waiting_for_input and returns; Resume picks it up later from
// exactly that checkpoint.
package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/deepnoodle-ai/meetflow"
	"github.com/deepnoodle-ai/meetflow/session"
	"github.com/deepnoodle-ai/meetflow/slogger"
	"github.com/deepnoodle-ai/meetflow/workflow"
)

const (
	DefaultCalendarID = "primary"
	DefaultMaxThreads = 50
)

// Options configures an Engine.
type Options struct {
	// Store persists session checkpoints. Required.
	Store session.Store

	// Dialer acquires collaborator service handles. Required.
	Dialer meetflow.Dialer

	// Graph is the step topology. Defaults to workflow.SchedulingGraph().
	Graph *workflow.Graph

	// Registry maps step names to implementations. Defaults to
	// workflow.DefaultRegistry().
	Registry *workflow.Registry

	// CalendarID is the target calendar. Defaults to "primary".
	CalendarID string

	// MaxThreads caps how many inbox threads are scanned. Defaults to 50.
	MaxThreads int64

	// Logger receives engine and step logs. Defaults to a no-op logger.
	Logger slogger.Logger

	// Pacer spaces out meetings_scheduled events. Defaults to no pause.
	Pacer Pacer

	// Now supplies the current time. Defaults to time.Now.
	Now func() time.Time
}

// Engine runs scheduling sessions. It is safe for concurrent use; each
// Start or Resume call drives one session on its own goroutine with its
// own service handles.
type Engine struct {
	store      session.Store
	dialer     meetflow.Dialer
	graph      *workflow.Graph
	registry   *workflow.Registry
	calendarID string
	maxThreads int64
	logger     slogger.Logger
	pacer      Pacer
	now        func() time.Time
}

// New creates an Engine with the given options.
func New(opts Options) (*Engine, error) {
	if opts.Store == nil {
		return nil, fmt.Errorf("session store is required")
	}
	if opts.Dialer == nil {
		return nil, fmt.Errorf("dialer is required")
	}
	if opts.Graph == nil {
		opts.Graph = workflow.SchedulingGraph()
	}
	if opts.Registry == nil {
		opts.Registry = workflow.DefaultRegistry()
	}
	if opts.CalendarID == "" {
		opts.CalendarID = DefaultCalendarID
	}
	if opts.MaxThreads <= 0 {
		opts.MaxThreads = DefaultMaxThreads
	}
	if opts.Logger == nil {
		opts.Logger = slogger.DefaultLogger
	}
	if opts.Pacer == nil {
		opts.Pacer = NewNullPacer()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Engine{
		store:      opts.Store,
		dialer:     opts.Dialer,
		graph:      opts.Graph,
		registry:   opts.Registry,
		calendarID: opts.CalendarID,
		maxThreads: opts.MaxThreads,
		logger:     opts.Logger,
		pacer:      opts.Pacer,
		now:        opts.Now,
	}, nil
}

// Start creates a new session and begins running it. The returned stream
// carries a thread_id event first, then progress events as steps
// complete. The stream closes when the run completes, suspends for human
// input, or fails.
func (e *Engine) Start(ctx context.Context) (string, *meetflow.Stream, error) {
	record, err := e.store.Create(ctx)
	if err != nil {
		return "", nil, fmt.Errorf("error creating session: %w", err)
	}
	stream := meetflow.NewStream()
	publisher := meetflow.NewPublisher(stream)
	go func() {
		defer publisher.Close()
		if err := publisher.Send(ctx, &meetflow.StreamEvent{
			Type:    meetflow.EventTypeThreadID,
			Content: record.ID,
		}); err != nil {
			return
		}
		e.run(ctx, record, publisher)
	}()
	return record.ID, stream, nil
}

// Resume applies the human's free-text resolution to a suspended session
// and continues it from its checkpoint. The session must exist and be
// waiting for input, and the resolution must be non-empty; otherwise an
// InvalidStateError is returned and no state is written.
func (e *Engine) Resume(ctx context.Context, sessionID, resolution string) (*meetflow.Stream, error) {
	if resolution == "" {
		// An empty resolution would be dropped by the patch merge and the
		// run would immediately re-suspend, so reject it up front.
		return nil, &meetflow.InvalidStateError{
			SessionID: sessionID,
			Err:       meetflow.ErrEmptyResolution,
		}
	}
	record, err := e.store.Load(ctx, sessionID)
	if err != nil {
		return nil, &meetflow.InvalidStateError{SessionID: sessionID, Err: err}
	}
	if record.Status != session.StatusWaitingForInput {
		return nil, &meetflow.InvalidStateError{
			SessionID: sessionID,
			Status:    string(record.Status),
		}
	}
	record, err = e.store.ApplyPatch(ctx, sessionID, &workflow.Patch{
		ResolutionText: resolution,
	})
	if err != nil {
		return nil, fmt.Errorf("error applying resolution: %w", err)
	}
	record.Status = session.StatusRunning
	if err := e.store.Save(ctx, record); err != nil {
		return nil, fmt.Errorf("error saving session: %w", err)
	}
	stream := meetflow.NewStream()
	publisher := meetflow.NewPublisher(stream)
	go func() {
		defer publisher.Close()
		e.run(ctx, record, publisher)
	}()
	return stream, nil
}

// run advances the session until it completes, suspends, or fails. The
// checkpoint for a step is always written before that step's events are
// emitted.
func (e *Engine) run(ctx context.Context, record *session.Record, publisher *meetflow.Publisher) {
	logger := e.logger.With("session_id", record.ID)
	env := &workflow.Env{
		Dialer:     e.dialer,
		CalendarID: e.calendarID,
		MaxThreads: e.maxThreads,
		Now:        e.now,
		Logger:     logger,
	}

	for {
		next, err := e.graph.Next(record.Cursor, record.State)
		if err != nil {
			e.fail(ctx, record, publisher, err)
			return
		}
		if next == "" {
			record.Status = session.StatusCompleted
			if err := e.store.Save(ctx, record); err != nil {
				logger.Error("error saving completed session", "error", err)
			}
			return
		}
		node, ok := e.graph.Node(next)
		if !ok {
			e.fail(ctx, record, publisher, fmt.Errorf("unknown step %q", next))
			return
		}

		if node.AwaitInput && record.State.ResolutionText == "" {
			record.Status = session.StatusWaitingForInput
			if err := e.store.Save(ctx, record); err != nil {
				e.fail(ctx, record, publisher, err)
				return
			}
			logger.Info("session waiting for input", "cursor", record.Cursor)
			return
		}

		fn, err := e.registry.Get(next)
		if err != nil {
			e.fail(ctx, record, publisher, err)
			return
		}
		logger.Debug("executing step", "step", next)
		patch, err := fn(ctx, env, record.State)
		if err != nil {
			e.fail(ctx, record, publisher, &meetflow.StepError{Step: next, Err: err})
			return
		}

		record.State.Apply(patch)
		record.Cursor = next
		if node.Terminal {
			record.Status = session.StatusCompleted
		}
		if err := e.store.Save(ctx, record); err != nil {
			e.fail(ctx, record, publisher, err)
			return
		}
		if err := e.emitStep(ctx, publisher, next, patch, record.State); err != nil {
			// The observer went away; the session itself is unaffected.
			logger.Debug("stream closed during emit", "step", next, "error", err)
			return
		}
		if node.Terminal {
			return
		}
	}
}

// fail marks the session failed, keeping partial state for inspection,
// then surfaces the error on the stream.
func (e *Engine) fail(ctx context.Context, record *session.Record, publisher *meetflow.Publisher, cause error) {
	e.logger.Error("session failed", "session_id", record.ID, "cursor", record.Cursor, "error", cause)
	record.Status = session.StatusFailed
	if err := e.store.Save(ctx, record); err != nil {
		e.logger.Error("error saving failed session", "session_id", record.ID, "error", err)
	}
	_ = publisher.Send(ctx, &meetflow.StreamEvent{
		Type:    meetflow.EventTypeError,
		Content: cause.Error(),
	})
}
