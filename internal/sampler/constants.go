package sampler

import "time"

// Probe backoff constants.
const (
	probeInitialInterval = 100 * time.Millisecond
	probeMaxInterval     = 2 * time.Second
)

// Generation ranges.
const (
	maxSampleAge     = 15
	maxSampleMileage = 200_000
	unknownMakeEvery = 10
)

// Pricing rules the sampler checks responses against.
const (
	roundingUnit     int64 = 1_000_000
	repairBelow            = 3
	minDocuments           = 4
	percentage             = 100
	directoryPerm          = 0o750
	outputFilePerm         = 0o600
)
