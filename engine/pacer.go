package engine

import (
	"context"
	"time"
)

// Pacer controls the delay between consecutive meetings_scheduled events,
// giving observers time to render each creation.
type Pacer interface {
	Pause(ctx context.Context) error
}

type nullPacer struct{}

func (nullPacer) Pause(ctx context.Context) error { return nil }

// NewNullPacer returns a pacer that never pauses.
func NewNullPacer() Pacer {
	return nullPacer{}
}

type fixedDelayPacer struct {
	delay time.Duration
}

// NewFixedDelayPacer returns a pacer that pauses for the given duration,
// or until the context is canceled.
func NewFixedDelayPacer(delay time.Duration) Pacer {
	return &fixedDelayPacer{delay: delay}
}

func (p *fixedDelayPacer) Pause(ctx context.Context) error {
	timer := time.NewTimer(p.delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
