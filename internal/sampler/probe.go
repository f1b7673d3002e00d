package sampler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v5"

	"github.com/okian/appraisal/pkg/logger"
)

// waitHealthy polls /healthz with exponential backoff until it answers 200
// or maxElapsed passes.
func waitHealthy(ctx context.Context, c *client, maxElapsed time.Duration) error {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = probeInitialInterval
	policy.MaxInterval = probeMaxInterval

	notify := func(err error, next time.Duration) {
		logger.Get().Warn(ctx, "service not ready", logger.Error(err), logger.String("retryIn", next.String()))
	}

	operation := func() (int, error) {
		status, err := c.status(ctx, "/healthz")
		if err != nil {
			return 0, err
		}
		if status != http.StatusOK {
			return status, fmt.Errorf("%w: status %d", ErrUnhealthy, status)
		}
		return status, nil
	}

	if _, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(policy),
		backoff.WithMaxElapsedTime(maxElapsed),
		backoff.WithNotify(notify)); err != nil {
		return fmt.Errorf("health probe: %w", err)
	}
	logger.Get().Info(ctx, "service is healthy")
	return nil
}
