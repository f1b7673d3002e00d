package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/okian/appraisal/internal/sampler"
	"github.com/okian/appraisal/pkg/logger"
)

// Default configuration constants.
const (
	defaultSamples      = 1000
	defaultWorkers      = 2 // multiplier for runtime.NumCPU()
	defaultTimeout      = 10 * time.Second
	defaultProbeTimeout = 30 * time.Second
	defaultRunTimeout   = 10 * time.Minute
)

func main() {
	var (
		baseURL      = flag.String("url", "http://localhost:9080", "Base URL of the service")
		samples      = flag.Int("samples", defaultSamples, "Number of vehicles to generate and submit")
		workers      = flag.Int("workers", runtime.NumCPU()*defaultWorkers, "Number of concurrent submissions")
		preset       = flag.String("preset", "", "Only use this preset")
		invalidEvery = flag.Int("invalid-every", 0, "Leave every Nth sample incomplete")
		timeout      = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		probeTimeout = flag.Duration("probe-timeout", defaultProbeTimeout, "How long to wait for /healthz")
		outputFile   = flag.String("output", "", "Save generated samples to this JSON file")
		logFile      = flag.String("log", "", "Log to this file instead of stdout")
		verbose      = flag.Bool("verbose", false, "Enable debug logging")
		help         = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		sampler.ShowHelp()
		return
	}

	if err := sampler.SetupLogging(*logFile, *verbose); err != nil {
		os.Stderr.WriteString("failed to setup logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultRunTimeout)
	defer cancel()

	cfg := &sampler.Config{
		BaseURL:      *baseURL,
		Samples:      *samples,
		Workers:      *workers,
		Timeout:      *timeout,
		ProbeTimeout: *probeTimeout,
		Preset:       *preset,
		InvalidEvery: *invalidEvery,
		OutputFile:   *outputFile,
		Verbose:      *verbose,
	}

	if _, err := sampler.Run(ctx, cfg); err != nil {
		logger.Get().Error(ctx, "sampling failed", logger.Error(err))
		_ = logger.Sync()
		cancel()
		os.Exit(1)
	}
	_ = logger.Sync()
}
