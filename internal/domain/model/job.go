package model

import "time"

// BatchInput is the shared payload of a batch prediction: employees plus
// the performance and engagement collections covering all of them.
type BatchInput struct {
	Employees   []Employee          `json:"employees"`
	Performance []PerformanceRecord `json:"performance"`
	Engagement  []EngagementRecord  `json:"engagement"`
	// Departments optionally maps a department name to its context.
	Departments map[string]DepartmentContext `json:"departments,omitempty"`
}

// Job is an asynchronous batch scoring request flowing through the queue.
type Job struct {
	ID          string
	Input       BatchInput
	SubmittedAt time.Time
}

// JobState is the lifecycle state of a Job.
type JobState string

// Job states.
const (
	JobQueued  JobState = "queued"
	JobRunning JobState = "running"
	JobDone    JobState = "done"
	JobFailed  JobState = "failed"
)

// JobStatus reports the progress of a Job.
type JobStatus struct {
	JobID       string     `json:"job_id"`
	State       JobState   `json:"state"`
	Employees   int        `json:"employees"`
	Predictions int        `json:"predictions"`
	Error       string     `json:"error,omitempty"`
	SubmittedAt time.Time  `json:"submitted_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// BatchResult is a scored batch, highest risk first, plus the employee IDs
// on each side of the risk threshold.
type BatchResult struct {
	Predictions    []ChurnPrediction `json:"predictions"`
	RiskThreshold  float64           `json:"risk_threshold"`
	AboveThreshold []string          `json:"above_threshold"`
	BelowThreshold []string          `json:"below_threshold"`
}
