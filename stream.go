package meetflow

import (
	"context"
	"errors"
	"sync"
)

// ErrStreamClosed indicates that the stream has been closed.
var ErrStreamClosed = errors.New("stream closed")

// Stream delivers progress events for a single session run to an observer.
// Events arrive in the exact order steps complete; no reordering or
// batching occurs.
type Stream struct {
	events chan *StreamEvent
	done   chan struct{} // Signal channel for shutdown
}

// NewStream returns a new Stream. One stream is created per Start or
// Resume call on the engine.
func NewStream() *Stream {
	return &Stream{
		events: make(chan *StreamEvent, 16),
		done:   make(chan struct{}),
	}
}

// Channel returns a channel that can be used by the client to receive
// events. The channel is closed when the run completes, suspends, or fails.
func (s *Stream) Channel() <-chan *StreamEvent {
	return s.events
}

// Close is used by the client to indicate that it no longer wishes to
// receive events, even if the run is not yet done. Any publisher should
// monitor the done channel and stop sending events when it is closed.
func (s *Stream) Close() {
	select {
	case <-s.done:
		return
	default:
		close(s.done)
	}
}

// Publisher is a helper for sending events to a Stream.
type Publisher struct {
	stream    *Stream
	closeOnce sync.Once
	closed    bool
	mutex     sync.Mutex
}

func NewPublisher(stream *Stream) *Publisher {
	return &Publisher{
		stream:    stream,
		closeOnce: sync.Once{},
	}
}

// Send sends an event to the stream's events channel.
func (p *Publisher) Send(ctx context.Context, event *StreamEvent) error {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if p.closed {
		return ErrStreamClosed
	}

	// Send the event, as long as the stream is open and the context
	// hasn't been canceled.
	select {
	case <-p.stream.done:
		p.close()
		return ErrStreamClosed

	case <-ctx.Done():
		p.close()
		return ctx.Err()

	case p.stream.events <- event:
		return nil
	}
}

// Close the publisher and close the corresponding Stream. No more calls to
// Send should be made, however doing so will not cause a panic.
func (p *Publisher) Close() {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	p.close()
}

func (p *Publisher) close() {
	p.closeOnce.Do(func() {
		p.closed = true
		close(p.stream.events)
	})
}
