package cli

import (
	"fmt"

	"github.com/deepnoodle-ai/meetflow"
	"github.com/deepnoodle-ai/meetflow/schedule"
	"github.com/fatih/color"
)

var (
	headerStyle  = color.New(color.FgCyan, color.Bold)
	successStyle = color.New(color.FgGreen)
	errorStyle   = color.New(color.FgRed)
	warningStyle = color.New(color.FgYellow, color.Bold)
	mutedStyle   = color.New(color.FgHiBlack)
	boldStyle    = color.New(color.Bold)
)

// printEvent renders one stream event to stdout.
func printEvent(event *meetflow.StreamEvent) {
	switch event.Type {
	case meetflow.EventTypeThreadID:
		fmt.Println(mutedStyle.Sprintf("Session: %s", event.Content))

	case meetflow.EventTypeMessage:
		fmt.Println(event.Content)

	case meetflow.EventTypeEventsToSchedule:
		data, ok := event.Data.(*meetflow.MeetingsData)
		if !ok {
			return
		}
		fmt.Println(headerStyle.Sprint("Meetings to schedule:"))
		for _, meeting := range data.Meetings {
			printMeeting(meeting)
		}

	case meetflow.EventTypeFinal:
		data, ok := event.Data.(*meetflow.FinalData)
		if !ok {
			return
		}
		if len(data.ConflictingEvents) > 0 {
			printConflicts(data.ConflictingEvents)
		}

	case meetflow.EventTypeMeetingsScheduled:
		data, ok := event.Data.(*meetflow.ScheduledData)
		if !ok {
			return
		}
		for _, created := range data.Meetings {
			fmt.Println(successStyle.Sprintf("Scheduled: %s", created.Summary))
			fmt.Println(mutedStyle.Sprintf("  %s - %s (%s)", created.Start, created.End, created.Timezone))
			if created.EventLink != "" {
				fmt.Println(mutedStyle.Sprintf("  %s", created.EventLink))
			}
			if created.MeetingLink != "" {
				fmt.Println(mutedStyle.Sprintf("  %s", created.MeetingLink))
			}
		}

	case meetflow.EventTypeError:
		fmt.Println(errorStyle.Sprintf("Error: %s", event.Content))
	}
}

func printMeeting(meeting schedule.Meeting) {
	fmt.Println(boldStyle.Sprintf("  %s", meeting.Summary))
	fmt.Println(mutedStyle.Sprintf("    %s - %s (%s)", meeting.Start.DateTime, meeting.End.DateTime, meeting.Start.TimeZone))
	if meeting.Location != "" {
		fmt.Println(mutedStyle.Sprintf("    Location: %s", meeting.Location))
	}
	for _, attendee := range meeting.Attendees {
		fmt.Println(mutedStyle.Sprintf("    Attendee: %s", attendee))
	}
}

func printConflicts(conflicts []schedule.Conflict) {
	fmt.Println(warningStyle.Sprint("Conflicting events found:"))
	for _, conflict := range conflicts {
		if len(conflict.Existing) == 0 {
			continue
		}
		fmt.Println(boldStyle.Sprintf("  %s", conflict.NewEvent.Summary))
		fmt.Println(mutedStyle.Sprintf("    %s - %s", conflict.NewEvent.Start.DateTime, conflict.NewEvent.End.DateTime))
		fmt.Println("    overlaps with:")
		for _, existing := range conflict.Existing {
			fmt.Println(mutedStyle.Sprintf("    - %s (%s - %s)", existing.Summary, existing.Start.DateTime, existing.End.DateTime))
		}
	}
}
