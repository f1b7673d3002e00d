package service

import "errors"

// Sentinel kinds for service errors.
var (
	ErrNoFormatter = errors.New("service: invalid currency formatter")
)
