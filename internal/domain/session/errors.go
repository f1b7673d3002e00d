package session

import "errors"

// Session errors.
var (
	ErrIncomplete    = errors.New("session: required inputs missing")
	ErrNoResult      = errors.New("session: no result to edit")
	ErrNotCollecting = errors.New("session: inputs are locked until reset")
	ErrUnknownName   = errors.New("session: unknown field or rating")
)
