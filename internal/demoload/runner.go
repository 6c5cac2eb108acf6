package demoload

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/okian/attrition/internal/adapters/repository"
	"github.com/okian/attrition/internal/domain/model"
	"github.com/okian/attrition/pkg/logger"
	"golang.org/x/sync/errgroup"
)

const (
	directoryPermission  = 0750
	percentageMultiplier = 100
)

type jobRequest struct {
	JobID string `json:"job_id"`
	model.BatchInput
}

type ackResponse struct {
	Status    string          `json:"status"`
	Duplicate bool            `json:"duplicate"`
	Job       model.JobStatus `json:"job"`
}

// Run executes a complete demo: it scores the first batch synchronously,
// submits the rest as jobs, waits for them and checks the rankings.
func Run(ctx context.Context, cfg Config) (*Stats, error) {
	cfg = cfg.withDefaults()
	log := logger.Named("demoload")
	stats := &Stats{StartTime: time.Now()}
	client := newHTTPClient(cfg.BaseURL, cfg.Timeout)

	log.Info(ctx, "starting attrition demo",
		logger.String("baseURL", cfg.BaseURL),
		logger.Int("employees", cfg.Employees),
		logger.Int("batchSize", cfg.BatchSize),
		logger.Int("workers", cfg.Workers),
		logger.Int("topN", cfg.TopN))

	// Step 1: Check service health
	if err := checkServiceHealth(ctx, client); err != nil {
		return stats, err
	}

	// Step 2: Generate the workforce
	workforce, err := NewGenerator(cfg.Seed, stats.StartTime).Workforce(cfg.Employees)
	if err != nil {
		return stats, fmt.Errorf("workforce generation failed: %w", err)
	}
	stats.EmployeesGenerated = len(workforce.Employees)
	batches := Split(workforce, cfg.BatchSize)

	// Step 3: Score the first batch synchronously
	if err := scoreBatch(ctx, client, batches[0], stats); err != nil {
		return stats, err
	}

	// Step 4: Submit the remaining batches as jobs
	runID := strconv.FormatInt(stats.StartTime.UnixNano(), 36)
	jobIDs, err := submitJobs(ctx, client, cfg, runID, batches[1:], stats)
	if err != nil {
		return stats, err
	}

	// Step 5: Wait for the jobs
	if err := awaitJobs(ctx, client, cfg, jobIDs, stats); err != nil {
		return stats, err
	}

	// Step 6: Check rankings and interventions
	if err := checkTopRisks(ctx, client, cfg.TopN, stats); err != nil {
		return stats, err
	}
	if err := checkInterventions(ctx, client, stats); err != nil {
		return stats, err
	}

	if cfg.OutputFile != "" {
		if err := saveWorkforce(cfg.OutputFile, workforce); err != nil {
			log.Warn(ctx, "failed to save workforce", logger.Error(err))
		}
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	displayFinalStats(ctx, stats)
	return stats, nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, client *HTTPClient) error {
	status, err := client.getJSON(ctx, "/healthz", nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnhealthy, err)
	}
	if status != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrUnhealthy, status)
	}
	logger.Get().Info(ctx, "service is healthy")
	return nil
}

func scoreBatch(ctx context.Context, client *HTTPClient, batch model.BatchInput, stats *Stats) error {
	var res model.BatchResult
	if _, err := client.postJSON(ctx, "/predictions/batch", batch, &res); err != nil {
		return fmt.Errorf("batch scoring failed: %w", err)
	}
	if err := verifyBatch(batch, res); err != nil {
		return err
	}
	stats.BatchScored = len(res.Predictions)
	stats.AboveThreshold = len(res.AboveThreshold)
	logger.Get().Info(ctx, "scored batch",
		logger.Int("predictions", len(res.Predictions)),
		logger.Float64("riskThreshold", res.RiskThreshold),
		logger.Int("aboveThreshold", len(res.AboveThreshold)))
	return nil
}

// submitJobs posts every batch as a job with at most cfg.Workers requests
// in flight, then resubmits the first job to confirm it is deduplicated.
func submitJobs(ctx context.Context, client *HTTPClient, cfg Config, runID string, batches []model.BatchInput, stats *Stats) ([]string, error) {
	if len(batches) == 0 {
		return nil, nil
	}
	log := logger.Get()

	var (
		mu       sync.Mutex
		accepted []string
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)
	for i, batch := range batches {
		jobID := runID + "-" + strconv.Itoa(i)
		g.Go(func() error {
			var ack ackResponse
			status, err := client.postJSON(gctx, "/jobs", jobRequest{JobID: jobID, BatchInput: batch}, &ack)

			mu.Lock()
			defer mu.Unlock()
			stats.JobsSubmitted++
			switch {
			case status == http.StatusTooManyRequests:
				stats.JobsRejected++
				log.Warn(gctx, "job rejected", logger.String("jobID", jobID))
				return nil
			case err != nil:
				return fmt.Errorf("job %s submission failed: %w", jobID, err)
			case ack.Duplicate:
				stats.JobsDuplicate++
			default:
				stats.JobsAccepted++
				accepted = append(accepted, jobID)
			}
			if cfg.Verbose {
				log.Info(gctx, "job submitted", logger.String("jobID", jobID), logger.Int("employees", len(batch.Employees)))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if len(accepted) > 0 {
		// Resubmit the lowest-numbered accepted job with its own batch.
		first := slices.MinFunc(accepted, func(a, b string) int { return jobIndex(a) - jobIndex(b) })
		var ack ackResponse
		status, err := client.postJSON(ctx, "/jobs", jobRequest{JobID: first, BatchInput: batches[jobIndex(first)]}, &ack)
		if err != nil {
			return nil, fmt.Errorf("job resubmission failed: %w", err)
		}
		if status != http.StatusOK || !ack.Duplicate {
			return nil, fmt.Errorf("%w: resubmitted job %s was not reported as duplicate", ErrVerification, first)
		}
		stats.JobsDuplicate++
	}

	log.Info(ctx, "jobs submitted",
		logger.Int("accepted", stats.JobsAccepted),
		logger.Int("duplicate", stats.JobsDuplicate),
		logger.Int("rejected", stats.JobsRejected))
	return accepted, nil
}

// jobIndex returns the batch index encoded in a job ID built by submitJobs.
func jobIndex(jobID string) int {
	i, _ := strconv.Atoi(jobID[strings.LastIndexByte(jobID, '-')+1:])
	return i
}

// awaitJobs polls every job until it reaches a terminal state.
func awaitJobs(ctx context.Context, client *HTTPClient, cfg Config, jobIDs []string, stats *Stats) error {
	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)
	for _, id := range jobIDs {
		g.Go(func() error {
			st, err := pollJob(gctx, client, id, cfg.PollInterval)
			if err != nil {
				return err
			}
			mu.Lock()
			defer mu.Unlock()
			if st.State == model.JobFailed {
				stats.JobsFailed++
				logger.Get().Warn(gctx, "job failed", logger.String("jobID", id), logger.String("error", st.Error))
				return nil
			}
			stats.JobsDone++
			return nil
		})
	}
	return g.Wait()
}

func pollJob(ctx context.Context, client *HTTPClient, id string, interval time.Duration) (model.JobStatus, error) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		var st model.JobStatus
		if _, err := client.getJSON(ctx, "/jobs/"+id, &st); err != nil {
			return st, fmt.Errorf("job %s status: %w", id, err)
		}
		if st.State == model.JobDone || st.State == model.JobFailed {
			return st, nil
		}
		select {
		case <-ctx.Done():
			return st, fmt.Errorf("%w: %s: %w", ErrJobTimeout, id, ctx.Err())
		case <-ticker.C:
		}
	}
}

func checkTopRisks(ctx context.Context, client *HTTPClient, topN int, stats *Stats) error {
	var entries []repository.Entry
	if _, err := client.getJSON(ctx, "/risk/top?limit="+strconv.Itoa(topN), &entries); err != nil {
		return fmt.Errorf("top risks retrieval failed: %w", err)
	}
	if err := verifyTop(entries, topN); err != nil {
		return err
	}
	stats.TopEntries = len(entries)
	displayTopRisks(ctx, entries)
	return nil
}

func checkInterventions(ctx context.Context, client *HTTPClient, stats *Stats) error {
	var preds []model.ChurnPrediction
	if _, err := client.getJSON(ctx, "/interventions", &preds); err != nil {
		return fmt.Errorf("interventions retrieval failed: %w", err)
	}
	if err := verifyInterventions(preds); err != nil {
		return err
	}
	stats.Interventions = len(preds)
	return nil
}

// saveWorkforce writes the generated workforce as indented JSON.
func saveWorkforce(filename string, workforce model.BatchInput) error {
	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	data, err := json.MarshalIndent(workforce, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal workforce: %w", err)
	}
	if err := os.WriteFile(filename, data, 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return nil
}

// displayFinalStats logs the final run statistics.
func displayFinalStats(ctx context.Context, stats *Stats) {
	var acceptRate float64
	if stats.JobsSubmitted > 0 {
		acceptRate = float64(stats.JobsAccepted) / float64(stats.JobsSubmitted) * percentageMultiplier
	}
	logger.Get().Info(ctx, "final statistics",
		logger.Int("employeesGenerated", stats.EmployeesGenerated),
		logger.Int("batchScored", stats.BatchScored),
		logger.Int("aboveThreshold", stats.AboveThreshold),
		logger.Int("jobsSubmitted", stats.JobsSubmitted),
		logger.Int("jobsAccepted", stats.JobsAccepted),
		logger.Int("jobsDuplicate", stats.JobsDuplicate),
		logger.Int("jobsRejected", stats.JobsRejected),
		logger.Int("jobsDone", stats.JobsDone),
		logger.Int("jobsFailed", stats.JobsFailed),
		logger.Int("topEntries", stats.TopEntries),
		logger.Int("interventions", stats.Interventions),
		logger.Duration("duration", stats.Duration),
		logger.Float64("acceptRate", acceptRate))
}

// IsVerificationError reports whether err came from a failed check.
func IsVerificationError(err error) bool {
	return errors.Is(err, ErrVerification)
}
