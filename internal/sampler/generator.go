package sampler

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"slices"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/okian/appraisal/internal/domain/appraisal"
	"github.com/okian/appraisal/pkg/logger"
)

var (
	models    = []string{"Avanza", "Civic", "Jazz", "Ertiga", "X5", "Xpander", "Ayla", "Camry"}
	bodyTypes = []string{"sedan", "hatchback", "suv", "mpv", "pickup"}
)

// randIntn returns a uniform int in [0, n) using crypto/rand.
func randIntn(n int) int {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0
	}
	return int(v.Int64())
}

func pick(values []string) string {
	return values[randIntn(len(values))]
}

// generateSamples creates cfg.Samples random submissions.
func generateSamples(ctx context.Context, cfg *Config, stats *Stats) ([]Sample, error) {
	presets, err := presetsFor(cfg.Preset)
	if err != nil {
		return nil, err
	}

	makes := make([]string, 0, len(appraisal.Makes()))
	for name := range appraisal.Makes() {
		makes = append(makes, name)
	}
	slices.Sort(makes)

	year := time.Now().Year()
	samples := make([]Sample, cfg.Samples)
	for i := range samples {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("generation cancelled: %w", err)
		}
		samples[i] = generateSample(presets[i%len(presets)], makes, year)
		if cfg.InvalidEvery > 0 && (i+1)%cfg.InvalidEvery == 0 {
			samples[i].Vehicle.Model = ""
			samples[i].ExpectValid = false
		}
	}

	stats.Generated = len(samples)
	logger.Get().Info(ctx, "generated samples", logger.Int("count", len(samples)), logger.Int("presets", len(presets)))
	return samples, nil
}

func presetsFor(name string) ([]appraisal.Preset, error) {
	if name == "" {
		return appraisal.Presets(), nil
	}
	p, err := appraisal.ParsePreset(name, appraisal.PresetRated)
	if err != nil {
		return nil, err
	}
	return []appraisal.Preset{p}, nil
}

func generateSample(preset appraisal.Preset, makes []string, year int) Sample {
	brand := pick(makes)
	if randIntn(unknownMakeEvery) == 0 {
		brand = "Unbranded"
	}
	info := appraisal.VehicleInfo{
		Make:  brand,
		Model: pick(models),
		Year:  strconv.Itoa(year - randIntn(maxSampleAge+1)),
	}

	s := Sample{RequestID: uuid.NewString(), Preset: preset, ExpectValid: true}
	switch preset {
	case appraisal.PresetMileage:
		info.Mileage = strconv.Itoa(randIntn(maxSampleMileage + 1))
		info.Condition = pick(appraisal.Conditions)
	default:
		info.BodyType = pick(bodyTypes)
		info.Transmission = pick(appraisal.Transmissions)
		for _, name := range appraisal.RatingNames {
			s.Ratings = s.Ratings.With(name, appraisal.MinRating+randIntn(appraisal.MaxRating))
		}
	}
	s.Vehicle = info
	return s
}
