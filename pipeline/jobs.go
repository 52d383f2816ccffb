package pipeline

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultJobTTL is how long a job record is retained after creation,
// whether or not its artifact was claimed.
const DefaultJobTTL = time.Hour

// JobStatus is the lifecycle state of an asynchronous conversion job.
type JobStatus string

const (
	JobPending JobStatus = "pending"
	JobDone    JobStatus = "done"
	JobFailed  JobStatus = "failed"
)

// Job tracks one asynchronous conversion for status polling.
type Job struct {
	ID        string
	URL       string
	Status    JobStatus
	Output    string
	Error     string
	CreatedAt time.Time
}

// JobStore is a bounded, time-expiring in-memory map of conversion jobs.
// Entries are evicted TTL after creation regardless of status; expired
// entries are swept lazily on access.
type JobStore struct {
	mu   sync.Mutex
	jobs map[string]*Job
	ttl  time.Duration
	now  func() time.Time
}

// NewJobStore returns a JobStore with the given TTL. Zero or negative ttl
// means DefaultJobTTL.
func NewJobStore(ttl time.Duration) *JobStore {
	if ttl <= 0 {
		ttl = DefaultJobTTL
	}
	return &JobStore{
		jobs: make(map[string]*Job),
		ttl:  ttl,
		now:  time.Now,
	}
}

// Create registers a pending job for url and returns it.
func (s *JobStore) Create(url string) *Job {
	job := &Job{
		ID:        uuid.NewString(),
		URL:       url,
		Status:    JobPending,
		CreatedAt: s.now(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweepLocked()
	s.jobs[job.ID] = job
	return job
}

// Complete marks the job done and records its output artifact.
func (s *JobStore) Complete(id, output string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if job, ok := s.jobs[id]; ok {
		job.Status = JobDone
		job.Output = output
	}
}

// Fail marks the job failed with a message.
func (s *JobStore) Fail(id, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if job, ok := s.jobs[id]; ok {
		job.Status = JobFailed
		job.Error = message
	}
}

// Get returns a copy of the job, or false if it is unknown or expired.
func (s *JobStore) Get(id string) (Job, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweepLocked()

	job, ok := s.jobs[id]
	if !ok {
		return Job{}, false
	}
	return *job, true
}

// Len reports the number of live jobs.
func (s *JobStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweepLocked()
	return len(s.jobs)
}

func (s *JobStore) sweepLocked() {
	cutoff := s.now().Add(-s.ttl)
	for id, job := range s.jobs {
		if job.CreatedAt.Before(cutoff) {
			delete(s.jobs, id)
		}
	}
}
