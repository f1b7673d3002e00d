// Package sampler drives a running appraisal service with random vehicles
// and checks every answer against the pricing invariants.
package sampler

import (
	"time"

	"github.com/okian/appraisal/internal/domain/appraisal"
)

// Config holds configuration for a sampling run.
type Config struct {
	BaseURL      string        // Base URL of the service
	Samples      int           // Number of vehicles to generate
	Workers      int           // Concurrent submissions
	Timeout      time.Duration // Per request timeout
	ProbeTimeout time.Duration // How long to wait for /healthz
	Preset       string        // Empty mixes every preset
	InvalidEvery int           // Every Nth sample is left incomplete; 0 disables
	OutputFile   string        // Optional JSON dump of the samples
	Verbose      bool
}

// Sample is one generated submission and what the sampler expects of it.
type Sample struct {
	RequestID   string                `json:"request_id"`
	Preset      appraisal.Preset      `json:"preset"`
	Vehicle     appraisal.VehicleInfo `json:"vehicle"`
	Ratings     appraisal.Ratings     `json:"ratings"`
	ExpectValid bool                  `json:"expect_valid"`
}

// request is the POST /appraisals body.
type request struct {
	Preset  appraisal.Preset      `json:"preset"`
	Vehicle appraisal.VehicleInfo `json:"vehicle"`
	Ratings appraisal.Ratings     `json:"ratings"`
}

// Response is the subset of the POST /appraisals answer the sampler checks.
type Response struct {
	ID string `json:"id"`
	appraisal.Result
	ProfitMargin float64 `json:"profit_margin"`
	ProfitTier   string  `json:"profit_tier"`
}

// Outcome pairs a sample with what the service answered.
type Outcome struct {
	Sample   Sample
	Status   int
	Response *Response
	Err      error
}

// Stats holds run statistics.
type Stats struct {
	Generated  int
	Submitted  int
	Accepted   int
	Rejected   int
	Failed     int
	Worthy     int
	Mismatches int
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
}
