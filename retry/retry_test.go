package retry

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type statusError struct {
	code int
}

func (e *statusError) Error() string   { return fmt.Sprintf("status %d", e.code) }
func (e *statusError) StatusCode() int { return e.code }

func TestRecoverableError(t *testing.T) {
	err := NewRecoverableError(errors.New("test error"))
	assert.True(t, IsRecoverable(err))
	assert.False(t, IsRecoverable(errors.New("test error")))
	assert.False(t, IsRecoverable(nil))
}

func TestRetry(t *testing.T) {
	ctx := context.Background()
	count := 0
	err := Do(ctx, func() error {
		count++
		return NewRecoverableError(errors.New("test error"))
	}, WithMaxRetries(3), WithBaseWait(time.Millisecond*20))
	assert.Error(t, err)
	assert.Equal(t, "test error", err.Error())
	assert.Equal(t, 3, count)
}

func TestRetryStatusCodes(t *testing.T) {
	ctx := context.Background()

	count := 0
	err := Do(ctx, func() error {
		count++
		return &statusError{code: 429}
	}, WithMaxRetries(2), WithBaseWait(time.Millisecond))
	assert.Error(t, err)
	assert.Equal(t, 2, count)

	count = 0
	err = Do(ctx, func() error {
		count++
		return &statusError{code: 404}
	}, WithMaxRetries(3), WithBaseWait(time.Millisecond))
	assert.Error(t, err)
	assert.Equal(t, 1, count, "non-retryable status should not be retried")
}

func TestRetrySucceedsAfterFailure(t *testing.T) {
	ctx := context.Background()
	count := 0
	err := Do(ctx, func() error {
		count++
		if count < 2 {
			return &statusError{code: 503}
		}
		return nil
	}, WithBaseWait(time.Millisecond))
	assert.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestShouldRetry(t *testing.T) {
	assert.True(t, ShouldRetry(429))
	assert.True(t, ShouldRetry(503))
	assert.True(t, ShouldRetry(504))
	assert.False(t, ShouldRetry(400))
	assert.False(t, ShouldRetry(500))
}
