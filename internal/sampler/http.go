package sampler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/okian/appraisal/pkg/logger"
)

const requestIDHeader = "X-Request-ID"

// client wraps http.Client with the service base URL.
type client struct {
	http    *http.Client
	baseURL string
}

func newClient(baseURL string, timeout time.Duration) *client {
	return &client{http: &http.Client{Timeout: timeout}, baseURL: baseURL}
}

// status performs a GET and returns only the status code.
func (c *client) status(ctx context.Context, path string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, http.NoBody)
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.StatusCode, nil
}

// postJSON sends body as JSON and returns the status and raw response.
func (c *client) postJSON(ctx context.Context, path, requestID string, body any) (int, []byte, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return 0, nil, fmt.Errorf("marshal request body: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return 0, nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(requestIDHeader, requestID)

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("read response: %w", err)
	}
	return resp.StatusCode, raw, nil
}

// submitSamples posts every sample with at most cfg.Workers in flight.
// Transport failures are recorded on the outcome rather than aborting the run.
func submitSamples(ctx context.Context, cfg *Config, c *client, samples []Sample, stats *Stats) ([]Outcome, error) {
	logger.Get().Info(ctx, "submitting samples", logger.Int("count", len(samples)), logger.Int("workers", cfg.Workers))

	var submitted, accepted, rejected, failed atomic.Int64
	outcomes := make([]Outcome, len(samples))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(cfg.Workers, 1))
	for i, s := range samples {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out := submitOne(gctx, c, s)
			outcomes[i] = out

			n := submitted.Add(1)
			switch {
			case out.Err != nil:
				failed.Add(1)
			case out.Status == http.StatusOK:
				accepted.Add(1)
			case out.Status == http.StatusBadRequest:
				rejected.Add(1)
			default:
				failed.Add(1)
			}
			if cfg.Verbose {
				logger.Get().Debug(gctx, "sample submitted",
					logger.String("requestId", s.RequestID),
					logger.Int("status", out.Status),
					logger.Int64("progress", n))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("submission cancelled: %w", err)
	}

	stats.Submitted = int(submitted.Load())
	stats.Accepted = int(accepted.Load())
	stats.Rejected = int(rejected.Load())
	stats.Failed = int(failed.Load())

	logger.Get().Info(ctx, "submission completed",
		logger.Int("accepted", stats.Accepted),
		logger.Int("rejected", stats.Rejected),
		logger.Int("failed", stats.Failed))
	return outcomes, nil
}

func submitOne(ctx context.Context, c *client, s Sample) Outcome {
	out := Outcome{Sample: s}
	status, raw, err := c.postJSON(ctx, "/appraisals", s.RequestID, request{Preset: s.Preset, Vehicle: s.Vehicle, Ratings: s.Ratings})
	out.Status = status
	if err != nil {
		out.Err = err
		return out
	}
	if status != http.StatusOK {
		return out
	}
	var resp Response
	if err := json.Unmarshal(raw, &resp); err != nil {
		out.Err = fmt.Errorf("decode response: %w", err)
		return out
	}
	out.Response = &resp
	return out
}
