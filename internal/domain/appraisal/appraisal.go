package appraisal

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Formula maps vehicle data to an appraisal result. Implementations are
// pure: the same inputs always produce the same Result.
type Formula interface {
	// Preset names the formula.
	Preset() Preset
	// RequiredFields lists the VehicleInfo fields a submission must fill.
	RequiredFields() []string
	// UsesRatings reports whether the five condition ratings are inputs.
	UsesRatings() bool
	// Appraise computes the result. Callers validate inputs first.
	Appraise(info VehicleInfo, ratings Ratings) Result
}

// Option configures a formula.
type Option func(*options)

type options struct {
	referenceYear int
}

// WithReferenceYear fixes the year vehicle age is measured from.
// Non-positive values keep the current calendar year.
func WithReferenceYear(year int) Option {
	return func(o *options) {
		if year > 0 {
			o.referenceYear = year
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{referenceYear: time.Now().Year()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// NewFormula returns the formula registered under preset.
func NewFormula(preset Preset, opts ...Option) (Formula, error) {
	switch Preset(normalize(string(preset))) {
	case PresetRated:
		return NewRatedFormula(opts...), nil
	case PresetMileage:
		return NewMileageFormula(opts...), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPreset, preset)
	}
}

// Presets lists the available presets, default first.
func Presets() []Preset {
	return []Preset{PresetRated, PresetMileage}
}

// ParsePreset resolves a preset name; an empty name yields fallback.
func ParsePreset(name string, fallback Preset) (Preset, error) {
	n := normalize(name)
	if n == "" {
		return fallback, nil
	}
	for _, p := range Presets() {
		if string(p) == n {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPreset, name)
}

// Calculate appraises with the rated formula against the current year.
func Calculate(info VehicleInfo, ratings Ratings) Result {
	return NewRatedFormula().Appraise(info, ratings)
}

// Profit is the single definition of potential profit.
func Profit(sellPrice, buyPrice, repairCost int64) int64 {
	return sellPrice - buyPrice - repairCost
}

// RoundingUnit is the granularity every price is rounded to.
func RoundingUnit() int64 { return roundingUnit }

// roundDiv divides num by den rounding half away from zero. den must be > 0.
func roundDiv(num, den int64) int64 {
	if num < 0 {
		return -((-num + den/2) / den)
	}
	return (num + den/2) / den
}

// roundScaled rounds num/scale to the nearest multiple of roundingUnit.
func roundScaled(num, scale int64) int64 {
	return roundDiv(num, scale*roundingUnit) * roundingUnit
}

// finish derives buy, sell, profit from a market price and repair cost.
func finish(r *Result) {
	r.RecommendedBuyPrice = roundScaled((r.MarketPrice-r.RepairCost)*buyDiscountPct, percent)
	r.RecommendedSellPrice = roundScaled(r.MarketPrice*sellMarkupPct, percent)
	r.PotentialProfit = Profit(r.RecommendedSellPrice, r.RecommendedBuyPrice, r.RepairCost)
}

// age returns whole years between the model year and the reference year.
// Unparsable years count as brand new.
func age(year string, referenceYear int) int64 {
	y, err := strconv.Atoi(strings.TrimSpace(year))
	if err != nil {
		return 0
	}
	a := referenceYear - y
	switch {
	case a < 0:
		return 0
	case a > maxVehicleAge:
		return maxVehicleAge
	}
	return int64(a)
}

// parseMileage reads a non-negative distance. Unparsable input counts as 0.
func parseMileage(s string) int64 {
	m, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || m < 0 {
		return 0
	}
	return m
}
