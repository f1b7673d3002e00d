package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okian/appraisal/internal/config"
	"github.com/okian/appraisal/internal/domain/appraisal"
)

func TestOrderedFormulas(t *testing.T) {
	cfg := config.New(context.Background())
	cfg.DefaultPreset = "mileage"
	cfg.ReferenceYear = 2025

	formulas, err := orderedFormulas(cfg)
	require.NoError(t, err)
	require.Len(t, formulas, len(appraisal.Presets()))
	assert.Equal(t, appraisal.PresetMileage, formulas[0].Preset())
	assert.Equal(t, appraisal.PresetRated, formulas[1].Preset())
}
