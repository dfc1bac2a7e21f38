package engine

import (
	"context"
	"fmt"

	"github.com/deepnoodle-ai/meetflow"
	"github.com/deepnoodle-ai/meetflow/schedule"
)

type mockMail struct {
	threads []*schedule.RawThread
	err     error
}

func (m *mockMail) ListThreads(ctx context.Context, maxResults int64) ([]schedule.ThreadRef, error) {
	if m.err != nil {
		return nil, m.err
	}
	refs := make([]schedule.ThreadRef, 0, len(m.threads))
	for _, t := range m.threads {
		refs = append(refs, schedule.ThreadRef{ID: t.ID})
	}
	return refs, nil
}

func (m *mockMail) GetThread(ctx context.Context, id string) (*schedule.RawThread, error) {
	for _, t := range m.threads {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, fmt.Errorf("thread %q not found", id)
}

type mockCalendar struct {
	existing []schedule.CalendarEvent
	inserted []schedule.Event
	deleted  []string
}

func (m *mockCalendar) ListEvents(ctx context.Context, calendarID, timeMin, timeMax string) ([]schedule.CalendarEvent, error) {
	var remaining []schedule.CalendarEvent
	for _, event := range m.existing {
		removed := false
		for _, id := range m.deleted {
			if event.ID == id {
				removed = true
			}
		}
		if !removed {
			remaining = append(remaining, event)
		}
	}
	return remaining, nil
}

func (m *mockCalendar) InsertEvent(ctx context.Context, calendarID string, event *schedule.Event) (*schedule.CalendarEvent, error) {
	m.inserted = append(m.inserted, *event)
	return &schedule.CalendarEvent{
		ID:          fmt.Sprintf("created-%d", len(m.inserted)),
		Summary:     event.Summary,
		Start:       event.Start,
		End:         event.End,
		Location:    event.Location,
		Description: event.Description,
		Attendees:   event.Attendees,
		EventLink:   "https://calendar.example.com/event",
		MeetingLink: "https://meet.example.com/abc",
		Created:     "2025-03-04T00:00:00Z",
		Updated:     "2025-03-04T00:00:00Z",
	}, nil
}

func (m *mockCalendar) DeleteEvent(ctx context.Context, calendarID, eventID string) error {
	m.deleted = append(m.deleted, eventID)
	return nil
}

type mockModel struct {
	meetings     *schedule.MeetingList
	extractErr   error
	resolved     *schedule.MeetingList
	summary      string
	resolveCalls int
	lastInput    string
}

func (m *mockModel) ExtractMeetings(ctx context.Context, threads []schedule.Thread, now string) (*schedule.MeetingList, error) {
	if m.extractErr != nil {
		return nil, m.extractErr
	}
	return m.meetings, nil
}

func (m *mockModel) NormalizeTimestamp(ctx context.Context, raw, timezone string) (string, error) {
	return raw, nil
}

func (m *mockModel) ResolveConflicts(ctx context.Context, conflicts []schedule.Conflict, pending []schedule.Event, input string) (*schedule.MeetingList, string, error) {
	m.resolveCalls++
	m.lastInput = input
	return m.resolved, m.summary, nil
}

func mockDialer(mail *mockMail, cal *mockCalendar, model *mockModel) meetflow.Dialer {
	return meetflow.DialerFunc(func(ctx context.Context) (*meetflow.Services, error) {
		return &meetflow.Services{Mail: mail, Calendar: cal, Model: model}, nil
	})
}

func collectEvents(stream *meetflow.Stream) []*meetflow.StreamEvent {
	var events []*meetflow.StreamEvent
	for event := range stream.Channel() {
		events = append(events, event)
	}
	return events
}

func eventTypes(events []*meetflow.StreamEvent) []meetflow.EventType {
	types := make([]meetflow.EventType, 0, len(events))
	for _, event := range events {
		types = append(types, event.Type)
	}
	return types
}

func threeMessageThread(id string) *schedule.RawThread {
	thread := &schedule.RawThread{ID: id}
	for i := 0; i < 3; i++ {
		thread.Messages = append(thread.Messages, schedule.RawMessage{
			ID:      fmt.Sprintf("%s-m%d", id, i),
			Snippet: "Let's meet Tuesday at 10am",
			Headers: []schedule.Header{
				{Name: "Subject", Value: "Planning"},
				{Name: "From", Value: "alice@example.com"},
				{Name: "To", Value: "bob@example.com"},
				{Name: "Date", Value: "Tue, 4 Mar 2025 09:00:00 +0000"},
			},
		})
	}
	return thread
}

func meetingAt(summary, start, end string) schedule.Meeting {
	return schedule.Meeting{
		Summary:   summary,
		Start:     schedule.EventTime{DateTime: start, TimeZone: "UTC"},
		End:       schedule.EventTime{DateTime: end, TimeZone: "UTC"},
		Location:  "Online",
		Attendees: []string{"alice@example.com", "bob@example.com"},
	}
}
