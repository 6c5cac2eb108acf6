package demoload

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/okian/attrition/pkg/logger"
)

const logFilePermission = 0600

// SetupLogging sends log output to stdout and to logFile. An empty logFile
// gets a timestamped name; "-" logs to stdout only.
func SetupLogging(logFile string, verbose bool) error {
	var w io.Writer = os.Stdout
	if logFile != "-" {
		if logFile == "" {
			logFile = "demo_load_" + time.Now().Format("20060102_150405") + ".log"
		}
		file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermission)
		if err != nil {
			return fmt.Errorf("failed to create log file: %w", err)
		}
		w = io.MultiWriter(os.Stdout, file)
	}
	if err := logger.Init(logger.WithWriter(w)); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	if verbose {
		return logger.SetLevelString("debug")
	}
	return nil
}

// ShowHelp prints usage information for the demo load tool.
func ShowHelp() {
	_, _ = os.Stdout.WriteString(`Attrition Demo Load
===================

Generates a synthetic workforce, scores it through a running attrition
service and checks the rankings that come back.

Usage:
  go run ./cmd/demo-load [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:9080")
  -employees int
        Number of employees to generate (default 500)
  -batch int
        Employees per batch request or job (default 50)
  -top int
        Number of top risks to fetch (default 20)
  -workers int
        Concurrent job submissions (default CPU cores)
  -timeout duration
        HTTP request timeout (default 30s)
  -poll duration
        Delay between job status polls (default 250ms)
  -seed uint
        Generator seed; 0 picks a random one
  -output string
        Write the generated workforce to this JSON file
  -log string
        Log file (default: demo_load_TIMESTAMP.log, "-" for stdout only)
  -verbose
        Enable verbose logging
  -help
        Show this help message

Examples:
  # Score 2000 employees in batches of 100
  go run ./cmd/demo-load -employees 2000 -batch 100

  # Reproducible run against another host
  go run ./cmd/demo-load -seed 42 -url http://localhost:8080
`)
}
