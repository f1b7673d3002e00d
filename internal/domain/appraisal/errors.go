package appraisal

import "errors"

// Sentinel error kinds for input validation.
var (
	ErrMissingField     = errors.New("missing field")
	ErrInvalidNumber    = errors.New("invalid number")
	ErrInvalidOption    = errors.New("invalid option")
	ErrRatingOutOfRange = errors.New("rating out of range")
	ErrUnknownPreset    = errors.New("unknown preset")
)
