// Package demoload drives a running attrition service with a synthetic
// workforce and checks the rankings it returns.
package demoload

import "time"

// Default configuration values.
const (
	DefaultBaseURL      = "http://localhost:9080"
	DefaultEmployees    = 500
	DefaultBatchSize    = 50
	DefaultTopN         = 20
	DefaultTimeout      = 30 * time.Second
	DefaultPollInterval = 250 * time.Millisecond
)

// Config holds configuration for a demo run.
type Config struct {
	BaseURL      string        // Base URL of the service
	Employees    int           // Number of employees to generate
	BatchSize    int           // Employees per batch request or job
	TopN         int           // Number of top risks to fetch
	Workers      int           // Concurrent job submissions
	Timeout      time.Duration // HTTP request timeout
	PollInterval time.Duration // Delay between job status polls
	Seed         uint64        // Generator seed; 0 picks a random one
	OutputFile   string        // Optional file for the generated workforce
	Verbose      bool          // Log every job
}

// withDefaults fills zero fields with defaults.
func (c Config) withDefaults() Config {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.Employees <= 0 {
		c.Employees = DefaultEmployees
	}
	if c.BatchSize <= 0 {
		c.BatchSize = DefaultBatchSize
	}
	if c.TopN <= 0 {
		c.TopN = DefaultTopN
	}
	if c.Workers <= 0 {
		c.Workers = 1
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.PollInterval <= 0 {
		c.PollInterval = DefaultPollInterval
	}
	return c
}

// Stats holds run statistics.
type Stats struct {
	EmployeesGenerated int
	BatchScored        int
	AboveThreshold     int
	JobsSubmitted      int
	JobsAccepted       int
	JobsDuplicate      int
	JobsRejected       int
	JobsFailed         int
	JobsDone           int
	TopEntries         int
	Interventions      int
	StartTime          time.Time
	EndTime            time.Time
	Duration           time.Duration
}
