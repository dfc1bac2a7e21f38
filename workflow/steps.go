package workflow

import (
	"context"
	"time"

	"github.com/deepnoodle-ai/meetflow"
	"github.com/deepnoodle-ai/meetflow/schedule"
	"github.com/google/uuid"
)

// DefaultRegistry returns a registry with the full scheduling step set.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(StepAuthenticate, Authenticate)
	r.Register(StepFetchThreads, FetchThreads)
	r.Register(StepExtractMeetings, ExtractMeetings)
	r.Register(StepNoMeetings, NoMeetings)
	r.Register(StepNormalizeEvents, NormalizeEvents)
	r.Register(StepDetectConflicts, DetectConflicts)
	r.Register(StepResolveConflicts, ResolveConflicts)
	r.Register(StepCreateEvents, CreateEvents)
	return r
}

// Authenticate acquires the session's service handles. It must complete
// before any service-calling step; on failure the whole run fails.
func Authenticate(ctx context.Context, env *Env, state *State) (*Patch, error) {
	if err := env.Connect(ctx); err != nil {
		return nil, &meetflow.AuthError{Err: err}
	}
	return &Patch{
		Messages: []string{"Mail and calendar services authenticated, fetching email threads from the inbox..."},
	}, nil
}

// FetchThreads retrieves inbox threads and keeps those with more than two
// messages; shorter threads are treated as not meeting-relevant.
func FetchThreads(ctx context.Context, env *Env, state *State) (*Patch, error) {
	services, err := env.Services(ctx)
	if err != nil {
		return nil, err
	}
	refs, err := services.Mail.ListThreads(ctx, env.MaxThreads)
	if err != nil {
		return nil, err
	}
	threads := make([]schedule.Thread, 0, len(refs))
	for _, ref := range refs {
		raw, err := services.Mail.GetThread(ctx, ref.ID)
		if err != nil {
			return nil, err
		}
		if !raw.Relevant() {
			continue
		}
		threads = append(threads, *schedule.ThreadFromRaw(raw))
	}
	env.Logger.Info("fetched threads", "total", len(refs), "relevant", len(threads))
	return &Patch{
		Threads:  threads,
		Messages: []string{"Email threads with messages retrieved, extracting meeting details..."},
	}, nil
}

// ExtractMeetings asks the language model for meeting candidates across
// the full thread set in one call.
func ExtractMeetings(ctx context.Context, env *Env, state *State) (*Patch, error) {
	services, err := env.Services(ctx)
	if err != nil {
		return nil, err
	}
	now := env.Now().Format(time.RFC3339)
	meetings, err := services.Model.ExtractMeetings(ctx, state.Threads, now)
	if err != nil {
		return nil, err
	}
	if meetings.IsNone() {
		return &Patch{
			Proposed: schedule.NoMeetings(),
			Messages: []string{"No meeting details found in the email threads."},
		}, nil
	}
	return &Patch{
		Proposed: meetings,
		Messages: []string{"Extracted meeting details from the email threads, creating meeting events to be scheduled..."},
	}, nil
}

// NoMeetings is the terminal step of the empty-extraction branch.
func NoMeetings(ctx context.Context, env *Env, state *State) (*Patch, error) {
	return &Patch{Messages: []string{"No meeting details found!"}}, nil
}

// NormalizeEvents turns the proposed meetings into pending events, minting
// a stable per-run request token for each so downstream creation can be
// idempotent on the provider side.
func NormalizeEvents(ctx context.Context, env *Env, state *State) (*Patch, error) {
	pending := make([]schedule.Event, 0, len(state.Proposed.Meetings))
	for _, meeting := range state.Proposed.Meetings {
		pending = append(pending, schedule.Event{
			Meeting:   meeting,
			RequestID: uuid.NewString(),
		})
	}
	return &Patch{
		Pending:  pending,
		Messages: []string{"Created meeting events to be scheduled, fetching conflicting events..."},
	}, nil
}

// DetectConflicts queries the calendar for each pending event's window and
// classifies overlapping items under closed-open interval semantics. The
// aggregate result is the "none" sentinel when no pending event has any
// overlapping item.
func DetectConflicts(ctx context.Context, env *Env, state *State) (*Patch, error) {
	services, err := env.Services(ctx)
	if err != nil {
		return nil, err
	}
	conflicts := make([]schedule.Conflict, 0, len(state.Pending))
	found := false
	for _, event := range state.Pending {
		timeMin, err := rfc3339(ctx, services.Model, event.Start)
		if err != nil {
			return nil, err
		}
		timeMax, err := rfc3339(ctx, services.Model, event.End)
		if err != nil {
			return nil, err
		}
		existing, err := services.Calendar.ListEvents(ctx, env.CalendarID, timeMin, timeMax)
		if err != nil {
			return nil, err
		}
		overlapping, err := schedule.FilterConflicting(event, existing)
		if err != nil {
			return nil, err
		}
		if len(overlapping) > 0 {
			found = true
		}
		conflicts = append(conflicts, schedule.Conflict{Existing: overlapping, NewEvent: event})
	}
	if !found {
		return &Patch{
			Conflicts: schedule.NoConflicts(),
			Messages:  []string{"No conflicting events found, scheduling the events..."},
		}, nil
	}
	return &Patch{
		Conflicts: &schedule.ConflictSet{Items: conflicts},
		Messages:  []string{"Found conflicting events, need to resolve them..."},
	}, nil
}

// ResolveConflicts folds the human's free-text input into the pending
// event list via the language model. It only runs when conflicts were
// found and resolution text has been applied; the replacement list may be
// empty if the human cancels everything.
func ResolveConflicts(ctx context.Context, env *Env, state *State) (*Patch, error) {
	services, err := env.Services(ctx)
	if err != nil {
		return nil, err
	}
	resolved, summary, err := services.Model.ResolveConflicts(ctx, state.Conflicts.Items, state.Pending, state.ResolutionText)
	if err != nil {
		return nil, err
	}
	pending := make([]schedule.Event, 0, len(resolved.Meetings))
	if !resolved.IsNone() {
		for _, meeting := range resolved.Meetings {
			pending = append(pending, schedule.Event{
				Meeting:   meeting,
				RequestID: uuid.NewString(),
			})
		}
	}
	return &Patch{
		Pending:  pending,
		Messages: []string{summary},
	}, nil
}

// CreateEvents commits each pending event to the calendar: any item still
// occupying the event's window is deleted, then the event is inserted.
// This step is never replayed; a crash mid-step leaves the session
// retryable only as a fresh run, an at-least-once risk mitigated by the
// request tokens minted in normalize_events.
func CreateEvents(ctx context.Context, env *Env, state *State) (*Patch, error) {
	services, err := env.Services(ctx)
	if err != nil {
		return nil, err
	}
	created := make([]schedule.CreatedEvent, 0, len(state.Pending))
	for _, event := range state.Pending {
		timeMin, err := rfc3339(ctx, services.Model, event.Start)
		if err != nil {
			return nil, err
		}
		timeMax, err := rfc3339(ctx, services.Model, event.End)
		if err != nil {
			return nil, err
		}
		existing, err := services.Calendar.ListEvents(ctx, env.CalendarID, timeMin, timeMax)
		if err != nil {
			return nil, err
		}
		occupying, err := schedule.FilterConflicting(event, existing)
		if err != nil {
			return nil, err
		}
		for _, item := range occupying {
			if err := services.Calendar.DeleteEvent(ctx, env.CalendarID, item.ID); err != nil {
				return nil, err
			}
			env.Logger.Info("deleted conflicting event", "summary", item.Summary, "event_id", item.ID)
		}
		inserted, err := services.Calendar.InsertEvent(ctx, env.CalendarID, &event)
		if err != nil {
			return nil, err
		}
		created = append(created, schedule.CreatedEvent{
			Summary:     inserted.Summary,
			EventLink:   inserted.EventLink,
			MeetingLink: inserted.MeetingLink,
			Start:       inserted.Start.DateTime,
			End:         inserted.End.DateTime,
			Timezone:    inserted.Start.TimeZone,
			Location:    inserted.Location,
			Description: inserted.Description,
			Attendees:   inserted.Attendees,
			CreatedAt:   inserted.Created,
			UpdatedAt:   inserted.Updated,
		})
	}
	return &Patch{
		Created:  created,
		Messages: []string{"Created meeting events in the calendar and sent notifications to the attendees!"},
	}, nil
}

// rfc3339 returns the timestamp in RFC3339 form, asking the model to
// normalize it only when it does not already parse.
func rfc3339(ctx context.Context, model meetflow.ModelClient, t schedule.EventTime) (string, error) {
	if _, err := time.Parse(time.RFC3339, t.DateTime); err == nil {
		return t.DateTime, nil
	}
	return model.NormalizeTimestamp(ctx, t.DateTime, t.TimeZone)
}
