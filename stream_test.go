package meetflow

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStreamDeliversInOrder(t *testing.T) {
	ctx := context.Background()
	stream := NewStream()
	publisher := NewPublisher(stream)

	go func() {
		defer publisher.Close()
		for _, content := range []string{"one", "two", "three"} {
			err := publisher.Send(ctx, &StreamEvent{Type: EventTypeMessage, Content: content})
			require.NoError(t, err)
		}
	}()

	var got []string
	for event := range stream.Channel() {
		require.Equal(t, EventTypeMessage, event.Type)
		got = append(got, event.Content)
	}
	require.Equal(t, []string{"one", "two", "three"}, got)
}

func TestPublisherSendAfterClose(t *testing.T) {
	ctx := context.Background()
	stream := NewStream()
	publisher := NewPublisher(stream)

	publisher.Close()
	err := publisher.Send(ctx, &StreamEvent{Type: EventTypeMessage, Content: "late"})
	require.ErrorIs(t, err, ErrStreamClosed)

	// Close is idempotent
	publisher.Close()
}

func TestPublisherStopsWhenStreamClosed(t *testing.T) {
	ctx := context.Background()
	stream := NewStream()
	publisher := NewPublisher(stream)

	// Fill the buffer so the next send would block
	for i := 0; i < 16; i++ {
		require.NoError(t, publisher.Send(ctx, &StreamEvent{Type: EventTypeMessage}))
	}

	stream.Close()
	err := publisher.Send(ctx, &StreamEvent{Type: EventTypeMessage})
	require.ErrorIs(t, err, ErrStreamClosed)
}

func TestPublisherSendCanceledContext(t *testing.T) {
	stream := NewStream()
	publisher := NewPublisher(stream)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for i := 0; i < 16; i++ {
		if err := publisher.Send(context.Background(), &StreamEvent{Type: EventTypeMessage}); err != nil {
			t.Fatalf("unexpected error filling buffer: %v", err)
		}
	}
	err := publisher.Send(ctx, &StreamEvent{Type: EventTypeMessage})
	require.ErrorIs(t, err, context.Canceled)
}
