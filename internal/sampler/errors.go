package sampler

import "errors"

var (
	// ErrUnhealthy is returned while /healthz answers with a non-200 status.
	ErrUnhealthy = errors.New("service unhealthy")
	// ErrMismatch marks a response that breaks a pricing invariant.
	ErrMismatch = errors.New("response mismatch")
	// ErrVerificationFailed is returned by Run when any response mismatched.
	ErrVerificationFailed = errors.New("verification failed")
	// ErrNoSamples is returned when there is nothing to save.
	ErrNoSamples = errors.New("no samples")
)
