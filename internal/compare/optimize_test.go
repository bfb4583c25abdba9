package compare

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emiliopalmerini/uhpc/internal/domain"
	"github.com/emiliopalmerini/uhpc/internal/engine"
)

func names(cs []Candidate) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.Prediction.Mix.Name
	}
	return out
}

func TestOptimize_Defaults(t *testing.T) {
	got, err := Optimize(context.Background(), engine.Default(), DefaultRequirements(), nil)
	require.NoError(t, err)
	require.Len(t, got, 3)

	// Every family meets strength and early strength but exceeds the budget.
	assert.Equal(t, []string{"Balanced Performance", "High-Performance Optimized", "Ultra-High Performance Solution"}, names(got))
	for _, c := range got {
		assert.Equal(t, 2, c.Met, c.Prediction.Mix.Name)
		assert.False(t, c.MeetsCost)
		assert.Equal(t, 95, c.Suitability)
		assert.Equal(t, "excellent", c.Grade)
		assert.Equal(t, "most requirements met", c.Verdict())
	}
}

func TestOptimize_RanksRequirementsMetFirst(t *testing.T) {
	req := DefaultRequirements()
	req.TargetStrength = 115

	got, err := Optimize(context.Background(), engine.Default(), req, nil)
	require.NoError(t, err)

	assert.Equal(t, "Ultra-High Performance Solution", got[0].Prediction.Mix.Name)
	assert.Equal(t, 2, got[0].Met)
	assert.Equal(t, []string{"Balanced Performance", "High-Performance Optimized"}, names(got[1:]))
	assert.InDelta(t, 75.80, got[0].EarlyStrength, 0.01)
}

func TestOptimize_GenerousBudget(t *testing.T) {
	req := DefaultRequirements()
	req.MaxCost = 200

	got, err := Optimize(context.Background(), engine.Default(), req, nil)
	require.NoError(t, err)
	for _, c := range got {
		assert.Equal(t, 3, c.Met)
		assert.Equal(t, "all requirements met", c.Verdict())
	}
}

func TestOptimize_InvalidRequirements(t *testing.T) {
	req := DefaultRequirements()
	req.MaxCost = 0
	_, err := Optimize(context.Background(), engine.Default(), req, nil)
	var invalid *domain.InvalidInputError
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, "max_cost_usd", invalid.Field)
}

func TestOptimize_EmptyCandidates(t *testing.T) {
	_, err := Optimize(context.Background(), engine.Default(), DefaultRequirements(), []domain.MixDesign{})
	var empty *domain.EmptyInputError
	assert.True(t, errors.As(err, &empty))
}

func TestProgression(t *testing.T) {
	m, err := domain.Preset("standard-uhpc")
	require.NoError(t, err)

	steps, err := Progression(engine.Default(), m, 90)
	require.NoError(t, err)
	require.Len(t, steps, 7)

	prev := 0.0
	for _, s := range steps {
		assert.Greater(t, s.Prediction.CompressiveStrength.Value, prev)
		prev = s.Prediction.CompressiveStrength.Value
		assert.Equal(t, s.AgeDays == 7 || s.AgeDays == 28 || s.AgeDays == 90, s.Milestone)
	}
	assert.Equal(t, 28.0, steps[4].AgeDays)
	assert.InDelta(t, 100, steps[4].GainPercent, 1e-9)
	assert.Less(t, steps[0].GainPercent, 100.0)
}

func TestProgression_DefaultsToAllKeyAges(t *testing.T) {
	m, err := domain.Preset("sustainable")
	require.NoError(t, err)

	steps, err := Progression(engine.Default(), m, 0)
	require.NoError(t, err)
	assert.Len(t, steps, len(KeyAges()))
	assert.Equal(t, 365.0, steps[len(steps)-1].AgeDays)
}
