package pipeline

import (
	"sync"
	"time"
)

// JobStatus represents the state of a re-segmentation job.
type JobStatus string

const (
	StatusQueued     JobStatus = "queued"
	StatusExtracting JobStatus = "extracting"
	StatusSegmenting JobStatus = "segmenting"
	StatusStoring    JobStatus = "storing"
	StatusCompleted  JobStatus = "completed"
	StatusFailed     JobStatus = "failed"
)

// Job tracks the state of a single snapshot re-parse.
type Job struct {
	mu sync.Mutex

	ID         string `json:"job_id"`
	SnapshotID string `json:"snapshot_id"`

	Status   JobStatus `json:"status"`
	Phase    string    `json:"phase"`
	Filename string    `json:"filename"`

	Result Result `json:"result"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Internal: not serialized.
	errors []string
}

// Result summarizes what the re-parse produced.
type Result struct {
	LineCount       int      `json:"line_count"`
	ExperienceCount int      `json:"experience_count"`
	ProjectCount    int      `json:"project_count"`
	ParserVersion   string   `json:"parser_version"`
	Errors          []string `json:"errors"`
}

// JobStore is a thread-safe in-memory job registry with TTL eviction.
type JobStore struct {
	mu   sync.Mutex
	jobs map[string]*Job
	ttl  time.Duration
}

func NewJobStore(ttl time.Duration) *JobStore {
	return &JobStore{
		jobs: make(map[string]*Job),
		ttl:  ttl,
	}
}

func (s *JobStore) Put(job *Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.ID] = job
}

func (s *JobStore) Get(id string) *Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.jobs[id]
}

// Cleanup removes expired jobs.
func (s *JobStore) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, job := range s.jobs {
		if now.Sub(job.UpdatedAt) > s.ttl {
			delete(s.jobs, id)
		}
	}
}

// SetStatus updates job status atomically.
func (j *Job) SetStatus(status JobStatus, phase string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Status = status
	j.Phase = phase
	j.UpdatedAt = time.Now()
}

// AddError records an error.
func (j *Job) AddError(err string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.errors = append(j.errors, err)
	j.Result.Errors = j.errors
	j.UpdatedAt = time.Now()
}

// SetResult records what the re-parse produced.
func (j *Job) SetResult(lineCount, experienceCount, projectCount int, parserVersion string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Result.LineCount = lineCount
	j.Result.ExperienceCount = experienceCount
	j.Result.ProjectCount = projectCount
	j.Result.ParserVersion = parserVersion
	j.UpdatedAt = time.Now()
}

// JobSnapshot is a read-only, JSON-safe copy of job state.
type JobSnapshot struct {
	ID         string    `json:"job_id"`
	SnapshotID string    `json:"snapshot_id"`
	Status     JobStatus `json:"status"`
	Phase      string    `json:"phase"`
	Filename   string    `json:"filename"`
	Result     Result    `json:"result"`
}

// Snapshot returns a JSON-safe copy of the job state.
func (j *Job) Snapshot() JobSnapshot {
	j.mu.Lock()
	defer j.mu.Unlock()
	errs := j.Result.Errors
	if errs == nil {
		errs = []string{}
	}
	return JobSnapshot{
		ID:         j.ID,
		SnapshotID: j.SnapshotID,
		Status:     j.Status,
		Phase:      j.Phase,
		Filename:   j.Filename,
		Result: Result{
			LineCount:       j.Result.LineCount,
			ExperienceCount: j.Result.ExperienceCount,
			ProjectCount:    j.Result.ProjectCount,
			ParserVersion:   j.Result.ParserVersion,
			Errors:          errs,
		},
	}
}
