package engine

import (
	"context"

	"github.com/deepnoodle-ai/meetflow"
	"github.com/deepnoodle-ai/meetflow/schedule"
	"github.com/deepnoodle-ai/meetflow/workflow"
)

// emitStep publishes the events a completed step produces: the step's
// progress messages first, then the step's typed payload if it has one.
func (e *Engine) emitStep(ctx context.Context, publisher *meetflow.Publisher, step string, patch *workflow.Patch, state *workflow.State) error {
	if patch != nil {
		for _, msg := range patch.Messages {
			if err := publisher.Send(ctx, &meetflow.StreamEvent{
				Type:    meetflow.EventTypeMessage,
				Content: msg,
			}); err != nil {
				return err
			}
		}
	}

	switch step {
	case workflow.StepNormalizeEvents:
		meetings := make([]schedule.Meeting, 0, len(state.Pending))
		for _, event := range state.Pending {
			meetings = append(meetings, event.Meeting)
		}
		return publisher.Send(ctx, &meetflow.StreamEvent{
			Type: meetflow.EventTypeEventsToSchedule,
			Data: &meetflow.MeetingsData{Meetings: meetings},
		})

	case workflow.StepDetectConflicts:
		// conflicting_events is null when detection found nothing; the run
		// then proceeds straight to creation without suspending.
		var conflicts []schedule.Conflict
		if !state.Conflicts.IsNone() {
			conflicts = state.Conflicts.Items
		}
		return publisher.Send(ctx, &meetflow.StreamEvent{
			Type: meetflow.EventTypeFinal,
			Data: &meetflow.FinalData{
				EventsToSchedule:  state.Pending,
				ConflictingEvents: conflicts,
			},
		})

	case workflow.StepCreateEvents:
		for i, created := range state.Created {
			if i > 0 {
				if err := e.pacer.Pause(ctx); err != nil {
					return err
				}
			}
			if err := publisher.Send(ctx, &meetflow.StreamEvent{
				Type: meetflow.EventTypeMeetingsScheduled,
				Data: &meetflow.ScheduledData{
					Meetings: []schedule.CreatedEvent{created},
				},
			}); err != nil {
				return err
			}
		}
	}
	return nil
}
