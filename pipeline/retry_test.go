package pipeline_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paperpress/paperpress"
	"github.com/paperpress/paperpress/pipeline"
)

// noDelays allows three retries without waiting in tests.
var noDelays = []time.Duration{0, 0, 0}

func TestRetryWithDelays(t *testing.T) {
	t.Parallel()

	t.Run("SucceedsFirstTry", func(t *testing.T) {
		t.Parallel()

		calls := 0
		err := pipeline.RetryWithDelays(context.Background(), func(ctx context.Context) error {
			calls++
			return nil
		}, noDelays)
		require.NoError(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("RetriesUntilSuccess", func(t *testing.T) {
		t.Parallel()

		calls := 0
		err := pipeline.RetryWithDelays(context.Background(), func(ctx context.Context) error {
			calls++
			if calls < 3 {
				return paperpress.Errorf(paperpress.EUNAVAILABLE, "flaky")
			}
			return nil
		}, noDelays)
		require.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("ExhaustsScheduleAndReturnsLastError", func(t *testing.T) {
		t.Parallel()

		calls := 0
		err := pipeline.RetryWithDelays(context.Background(), func(ctx context.Context) error {
			calls++
			return errors.New("still broken")
		}, noDelays)
		assert.EqualError(t, err, "still broken")
		assert.Equal(t, 4, calls) // 1 initial + 3 retries
	})

	t.Run("ValidationErrorNotRetried", func(t *testing.T) {
		t.Parallel()

		calls := 0
		err := pipeline.RetryWithDelays(context.Background(), func(ctx context.Context) error {
			calls++
			return paperpress.Errorf(paperpress.EINVALID, "bad url")
		}, noDelays)
		assert.Equal(t, paperpress.EINVALID, paperpress.ErrorCode(err))
		assert.Equal(t, 1, calls)
	})

	t.Run("RenderErrorNotRetried", func(t *testing.T) {
		t.Parallel()

		calls := 0
		err := pipeline.RetryWithDelays(context.Background(), func(ctx context.Context) error {
			calls++
			return paperpress.Errorf(paperpress.ERENDER, "latex error")
		}, noDelays)
		assert.Equal(t, paperpress.ERENDER, paperpress.ErrorCode(err))
		assert.Equal(t, 1, calls)
	})

	t.Run("CancelledWhileWaiting", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		err := pipeline.RetryWithDelays(ctx, func(ctx context.Context) error {
			cancel()
			return errors.New("fail then cancel")
		}, []time.Duration{time.Hour})
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("NilScheduleMeansSingleAttempt", func(t *testing.T) {
		t.Parallel()

		calls := 0
		err := pipeline.RetryWithDelays(context.Background(), func(ctx context.Context) error {
			calls++
			return errors.New("nope")
		}, nil)
		assert.Error(t, err)
		assert.Equal(t, 1, calls)
	})
}

func TestBackoff(t *testing.T) {
	t.Parallel()

	assert.Equal(t,
		[]time.Duration{time.Second, 2 * time.Second, 4 * time.Second},
		pipeline.Backoff(3, time.Second, 2))

	assert.Equal(t,
		[]time.Duration{500 * time.Millisecond, 750 * time.Millisecond},
		pipeline.Backoff(2, 500*time.Millisecond, 1.5))

	assert.Empty(t, pipeline.Backoff(0, time.Second, 2))
}

func TestDefaultRetryDelays(t *testing.T) {
	t.Parallel()

	assert.Equal(t,
		[]time.Duration{time.Second, 2 * time.Second, 4 * time.Second},
		pipeline.DefaultRetryDelays())
}
