package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/okian/attrition/internal/demoload"
)

const defaultRunTimeout = 10 * time.Minute

func main() {
	var (
		baseURL    = flag.String("url", demoload.DefaultBaseURL, "Base URL of the service")
		employees  = flag.Int("employees", demoload.DefaultEmployees, "Number of employees to generate")
		batchSize  = flag.Int("batch", demoload.DefaultBatchSize, "Employees per batch request or job")
		topN       = flag.Int("top", demoload.DefaultTopN, "Number of top risks to fetch")
		workers    = flag.Int("workers", runtime.NumCPU(), "Concurrent job submissions")
		timeout    = flag.Duration("timeout", demoload.DefaultTimeout, "HTTP request timeout")
		poll       = flag.Duration("poll", demoload.DefaultPollInterval, "Delay between job status polls")
		seed       = flag.Uint64("seed", 0, "Generator seed; 0 picks a random one")
		outputFile = flag.String("output", "", "Write the generated workforce to this JSON file")
		logFile    = flag.String("log", "", "Log file (default: demo_load_TIMESTAMP.log)")
		verbose    = flag.Bool("verbose", false, "Enable verbose logging")
		help       = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		demoload.ShowHelp()
		return
	}

	if err := demoload.SetupLogging(*logFile, *verbose); err != nil {
		_, _ = os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultRunTimeout)
	defer cancel()

	cfg := demoload.Config{
		BaseURL:      *baseURL,
		Employees:    *employees,
		BatchSize:    *batchSize,
		TopN:         *topN,
		Workers:      *workers,
		Timeout:      *timeout,
		PollInterval: *poll,
		Seed:         *seed,
		OutputFile:   *outputFile,
		Verbose:      *verbose,
	}

	if _, err := demoload.Run(ctx, cfg); err != nil {
		if demoload.IsVerificationError(err) {
			_, _ = os.Stderr.WriteString("Service returned inconsistent results: " + err.Error() + "\n")
		} else {
			_, _ = os.Stderr.WriteString("Demo failed: " + err.Error() + "\n")
		}
		os.Exit(1)
	}
}
