package google

import (
	"context"
	"net/http"

	"github.com/deepnoodle-ai/meetflow"
	"github.com/deepnoodle-ai/meetflow/retry"
	"github.com/deepnoodle-ai/meetflow/schedule"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

var _ meetflow.CalendarClient = &Calendar{}

// Calendar reads and writes events via the Google Calendar API.
type Calendar struct {
	svc *calendar.Service
}

// NewCalendar creates a Calendar client from an authenticated HTTP client.
func NewCalendar(ctx context.Context, client *http.Client) (*Calendar, error) {
	svc, err := calendar.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, &meetflow.ServiceError{Service: "calendar", Op: "new service", Err: err}
	}
	return &Calendar{svc: svc}, nil
}

func (c *Calendar) ListEvents(ctx context.Context, calendarID, timeMin, timeMax string) ([]schedule.CalendarEvent, error) {
	var resp *calendar.Events
	err := retry.Do(ctx, func() error {
		var err error
		resp, err = c.svc.Events.List(calendarID).
			TimeMin(timeMin).
			TimeMax(timeMax).
			SingleEvents(true).
			OrderBy("startTime").
			Context(ctx).
			Do()
		return wrapAPIError(err)
	})
	if err != nil {
		return nil, &meetflow.ServiceError{Service: "calendar", Op: "list events", Err: err}
	}
	events := make([]schedule.CalendarEvent, 0, len(resp.Items))
	for _, item := range resp.Items {
		events = append(events, eventFromItem(item))
	}
	return events, nil
}

func (c *Calendar) InsertEvent(ctx context.Context, calendarID string, event *schedule.Event) (*schedule.CalendarEvent, error) {
	body := &calendar.Event{
		Summary:     event.Summary,
		Location:    event.Location,
		Description: event.Description,
		Start: &calendar.EventDateTime{
			DateTime: event.Start.DateTime,
			TimeZone: event.Start.TimeZone,
		},
		End: &calendar.EventDateTime{
			DateTime: event.End.DateTime,
			TimeZone: event.End.TimeZone,
		},
	}
	for _, email := range event.Attendees {
		body.Attendees = append(body.Attendees, &calendar.EventAttendee{Email: email})
	}
	// The request token makes conference creation idempotent on the
	// provider side if the insert is ever replayed.
	if event.RequestID != "" {
		body.ConferenceData = &calendar.ConferenceData{
			CreateRequest: &calendar.CreateConferenceRequest{
				RequestId: event.RequestID,
			},
		}
	}
	var inserted *calendar.Event
	err := retry.Do(ctx, func() error {
		var err error
		inserted, err = c.svc.Events.Insert(calendarID, body).
			ConferenceDataVersion(1).
			SendUpdates("all").
			Context(ctx).
			Do()
		return wrapAPIError(err)
	})
	if err != nil {
		return nil, &meetflow.ServiceError{Service: "calendar", Op: "insert event", Err: err}
	}
	result := eventFromItem(inserted)
	return &result, nil
}

func (c *Calendar) DeleteEvent(ctx context.Context, calendarID, eventID string) error {
	err := retry.Do(ctx, func() error {
		return wrapAPIError(c.svc.Events.Delete(calendarID, eventID).
			SendUpdates("all").
			Context(ctx).
			Do())
	})
	if err != nil {
		return &meetflow.ServiceError{Service: "calendar", Op: "delete event", Err: err}
	}
	return nil
}

func eventFromItem(item *calendar.Event) schedule.CalendarEvent {
	event := schedule.CalendarEvent{
		ID:          item.Id,
		Summary:     item.Summary,
		Location:    item.Location,
		Description: item.Description,
		EventLink:   item.HtmlLink,
		MeetingLink: item.HangoutLink,
		Created:     item.Created,
		Updated:     item.Updated,
	}
	if item.Start != nil {
		event.Start = schedule.EventTime{DateTime: item.Start.DateTime, TimeZone: item.Start.TimeZone}
	}
	if item.End != nil {
		event.End = schedule.EventTime{DateTime: item.End.DateTime, TimeZone: item.End.TimeZone}
	}
	for _, attendee := range item.Attendees {
		event.Attendees = append(event.Attendees, attendee.Email)
	}
	return event
}
