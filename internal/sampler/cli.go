package sampler

import (
	"os"

	"github.com/okian/appraisal/pkg/logger"
)

// SetupLogging sends logs to logFile when set, otherwise to stdout.
func SetupLogging(logFile string, verbose bool) error {
	var err error
	if logFile != "" {
		err = logger.InitFile(logFile)
	} else {
		err = logger.Init()
	}
	if err != nil {
		return err
	}
	if verbose {
		return logger.SetLevelString("debug")
	}
	return nil
}

// ShowHelp prints usage information for the sampler.
func ShowHelp() {
	os.Stdout.WriteString(`Appraisal Sampler
=================

Submits random vehicles to a running appraisal service and verifies every
answer: profit identity, rounding, repair items and the purchase rule.

Usage:
  go run ./cmd/sampler [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:9080")
  -samples int
        Number of vehicles to generate and submit (default 1000)
  -workers int
        Number of concurrent submissions (default CPU cores * 2)
  -preset string
        Only use this preset (default: all presets)
  -invalid-every int
        Leave every Nth sample incomplete to exercise rejection (default 0)
  -timeout duration
        HTTP request timeout (default 10s)
  -probe-timeout duration
        How long to wait for /healthz (default 30s)
  -output string
        Save generated samples to this JSON file
  -log string
        Log to this file instead of stdout
  -verbose
        Enable debug logging
  -help
        Show this help message

Examples:
  go run ./cmd/sampler -samples 5000 -workers 16
  go run ./cmd/sampler -preset mileage -invalid-every 10 -output out/samples.json
`)
}
