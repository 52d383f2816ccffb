package pipeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJobStore(t *testing.T) {
	t.Parallel()

	t.Run("CreateAndGet", func(t *testing.T) {
		t.Parallel()

		s := NewJobStore(0)
		job := s.Create("https://example.com/a")
		require.NotEmpty(t, job.ID)
		assert.Equal(t, JobPending, job.Status)

		got, ok := s.Get(job.ID)
		require.True(t, ok)
		assert.Equal(t, "https://example.com/a", got.URL)
	})

	t.Run("Complete", func(t *testing.T) {
		t.Parallel()

		s := NewJobStore(0)
		job := s.Create("https://example.com/a")
		s.Complete(job.ID, "/tmp/out.pdf")

		got, ok := s.Get(job.ID)
		require.True(t, ok)
		assert.Equal(t, JobDone, got.Status)
		assert.Equal(t, "/tmp/out.pdf", got.Output)
	})

	t.Run("Fail", func(t *testing.T) {
		t.Parallel()

		s := NewJobStore(0)
		job := s.Create("https://example.com/a")
		s.Fail(job.ID, "extraction failed")

		got, ok := s.Get(job.ID)
		require.True(t, ok)
		assert.Equal(t, JobFailed, got.Status)
		assert.Equal(t, "extraction failed", got.Error)
	})

	t.Run("UnknownID", func(t *testing.T) {
		t.Parallel()

		s := NewJobStore(0)
		_, ok := s.Get("nope")
		assert.False(t, ok)
	})

	t.Run("ExpiresAfterTTLEvenWhenDone", func(t *testing.T) {
		t.Parallel()

		now := time.Now()
		s := NewJobStore(time.Hour)
		s.now = func() time.Time { return now }

		job := s.Create("https://example.com/a")
		s.Complete(job.ID, "/tmp/out.pdf")

		now = now.Add(59 * time.Minute)
		_, ok := s.Get(job.ID)
		assert.True(t, ok)

		now = now.Add(2 * time.Minute)
		_, ok = s.Get(job.ID)
		assert.False(t, ok)
		assert.Zero(t, s.Len())
	})

	t.Run("SweepOnCreate", func(t *testing.T) {
		t.Parallel()

		now := time.Now()
		s := NewJobStore(time.Hour)
		s.now = func() time.Time { return now }

		s.Create("https://example.com/old")
		now = now.Add(2 * time.Hour)
		s.Create("https://example.com/new")

		assert.Equal(t, 1, s.Len())
	})

	t.Run("GetReturnsCopy", func(t *testing.T) {
		t.Parallel()

		s := NewJobStore(0)
		job := s.Create("https://example.com/a")

		got, ok := s.Get(job.ID)
		require.True(t, ok)
		got.Status = JobFailed

		again, ok := s.Get(job.ID)
		require.True(t, ok)
		assert.Equal(t, JobPending, again.Status)
	})
}
