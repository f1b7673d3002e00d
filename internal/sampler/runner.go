package sampler

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/okian/appraisal/pkg/logger"
)

// Run executes a complete sampling pass and returns its statistics.
func Run(ctx context.Context, cfg *Config) (*Stats, error) {
	stats := &Stats{StartTime: time.Now()}

	logger.Get().Info(ctx, "starting appraisal sampler",
		logger.String("baseURL", cfg.BaseURL),
		logger.Int("samples", cfg.Samples),
		logger.Int("workers", cfg.Workers),
		logger.String("preset", cfg.Preset),
		logger.String("timeout", cfg.Timeout.String()))

	c := newClient(cfg.BaseURL, cfg.Timeout)

	// Step 1: wait for the service
	if err := waitHealthy(ctx, c, cfg.ProbeTimeout); err != nil {
		return stats, fmt.Errorf("service health check failed: %w", err)
	}

	// Step 2: generate
	samples, err := generateSamples(ctx, cfg, stats)
	if err != nil {
		return stats, fmt.Errorf("sample generation failed: %w", err)
	}

	// Step 3: submit concurrently
	outcomes, err := submitSamples(ctx, cfg, c, samples, stats)
	if err != nil {
		return stats, fmt.Errorf("sample submission failed: %w", err)
	}

	// Step 4: verify
	verifyErr := verifyOutcomes(ctx, outcomes, stats)

	// Step 5: save
	if cfg.OutputFile != "" {
		if err := saveSamples(ctx, cfg.OutputFile, samples); err != nil {
			logger.Get().Warn(ctx, "failed to save samples", logger.Error(err))
		}
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	displayFinalStats(ctx, stats)

	if verifyErr != nil {
		return stats, verifyErr
	}
	logger.Get().Info(ctx, "sampling completed successfully")
	return stats, nil
}

// saveSamples writes the generated samples to filename as a JSON array.
func saveSamples(ctx context.Context, filename string, samples []Sample) error {
	if len(samples) == 0 {
		return ErrNoSamples
	}
	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, directoryPerm); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	data, err := json.MarshalIndent(samples, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal samples: %w", err)
	}
	if err := os.WriteFile(filename, data, outputFilePerm); err != nil {
		return fmt.Errorf("failed to write samples: %w", err)
	}
	logger.Get().Info(ctx, "samples saved to file", logger.String("filename", filename))
	return nil
}

func displayFinalStats(ctx context.Context, stats *Stats) {
	var acceptRate, perSecond float64
	if stats.Submitted > 0 {
		acceptRate = float64(stats.Accepted) / float64(stats.Submitted) * percentage
	}
	if stats.Duration > 0 {
		perSecond = float64(stats.Submitted) / stats.Duration.Seconds()
	}

	logger.Get().Info(ctx, "final statistics",
		logger.Int("generated", stats.Generated),
		logger.Int("submitted", stats.Submitted),
		logger.Int("accepted", stats.Accepted),
		logger.Int("rejected", stats.Rejected),
		logger.Int("failed", stats.Failed),
		logger.Int("purchaseWorthy", stats.Worthy),
		logger.Int("mismatches", stats.Mismatches),
		logger.String("duration", stats.Duration.String()),
		logger.Float64("acceptRate", acceptRate),
		logger.Float64("requestsPerSecond", perSecond))
}
