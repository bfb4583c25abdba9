package engine

import (
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emiliopalmerini/uhpc/internal/domain"
)

func preset(t *testing.T, name string) domain.MixDesign {
	t.Helper()
	m, err := domain.Preset(name)
	require.NoError(t, err)
	return m
}

func TestPredict_ReferenceValues(t *testing.T) {
	tests := []struct {
		preset  string
		fc, ft  float64
		modulus float64
		upv     float64
		cost    string
	}{
		{"standard-uhpc", 94.259, 10.180, 44363.4, 4140.08, "135.41"},
		{"high-strength-bridge", 120, 13.38, 47195.4, 4147.65, "153.64"},
		{"sustainable", 116.511, 11.360, 49322.7, 4156.35, "117.8"},
		{"cost-optimized", 93.029, 8.419, 46591.5, 4150.23, "105.58"},
	}
	e := Default()
	for _, tt := range tests {
		t.Run(tt.preset, func(t *testing.T) {
			p, err := e.Predict(preset(t, tt.preset))
			require.NoError(t, err)

			assert.InDelta(t, tt.fc, p.CompressiveStrength.Value, 0.01)
			assert.InDelta(t, tt.ft, p.TensileStrength.Value, 0.01)
			assert.InDelta(t, tt.modulus, p.ElasticModulus.Value, 0.1)
			assert.InDelta(t, tt.upv, p.UPV.Value, 0.01)
			assert.Equal(t, tt.cost, p.Cost.String())
		})
	}
}

func TestPredict_Deterministic(t *testing.T) {
	e := Default()
	m := preset(t, "sustainable")

	first, err := e.Predict(m)
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]domain.Prediction, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			p, err := e.Predict(m)
			assert.NoError(t, err)
			results[i] = p
		}(i)
	}
	wg.Wait()

	for i, p := range results {
		assert.True(t, first.SameAs(p), "prediction %d differs", i)
	}

	other, err := New()
	require.NoError(t, err)
	again, err := other.Predict(m)
	require.NoError(t, err)
	assert.True(t, first.SameAs(again))
}

func TestPredict_Traceability(t *testing.T) {
	e := Default()
	p, err := e.Predict(preset(t, "standard-uhpc"))
	require.NoError(t, err)

	assert.Equal(t, DefaultVersion, p.EngineVersion)
	assert.Equal(t, e.CoefficientsDigest(), p.CoefficientsDigest)
	assert.Len(t, p.DescriptorDigest, 64)

	older, err := e.Predict(preset(t, "standard-uhpc").WithAge(90))
	require.NoError(t, err)
	assert.NotEqual(t, p.DescriptorDigest, older.DescriptorDigest)
	assert.Equal(t, p.CoefficientsDigest, older.CoefficientsDigest)
}

func TestPredict_InvalidInput(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(*domain.MixDesign)
		field string
	}{
		{"zero cement", func(m *domain.MixDesign) { m.Cement = 0 }, "cement"},
		{"negative water", func(m *domain.MixDesign) { m.Water = -1 }, "water"},
		{"negative slag", func(m *domain.MixDesign) { m.Slag = -20 }, "slag"},
		{"negative fiber", func(m *domain.MixDesign) { m.SteelFiber = -1 }, "steel_fiber"},
		{"zero age", func(m *domain.MixDesign) { m.AgeDays = 0 }, "age_days"},
		{"NaN silica fume", func(m *domain.MixDesign) { m.SilicaFume = math.NaN() }, "silica_fume"},
	}
	e := Default()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := preset(t, "standard-uhpc")
			tt.edit(&m)

			_, err := e.Predict(m)
			var invalid *domain.InvalidInputError
			require.True(t, errors.As(err, &invalid), "got %v", err)
			assert.Equal(t, tt.field, invalid.Field)
		})
	}
}

func TestPredict_AgeRaisesStrength(t *testing.T) {
	e := Default()
	m := preset(t, "standard-uhpc")

	prev := 0.0
	for _, age := range []float64{1, 3, 7, 14, 28} {
		p, err := e.Predict(m.WithAge(age))
		require.NoError(t, err)
		assert.Greater(t, p.CompressiveStrength.Value, prev, "age %v", age)
		prev = p.CompressiveStrength.Value
	}
}

func TestPredict_ClampsToRanges(t *testing.T) {
	e := Default()
	lean := domain.MixDesign{Cement: 200, Water: 400, AgeDays: 1}
	p, err := e.Predict(lean)
	require.NoError(t, err)

	assert.Equal(t, 10.0, p.CompressiveStrength.Value)
	assert.Equal(t, 1.0, p.TensileStrength.Value)
	assert.Equal(t, 15000.0, p.ElasticModulus.Value)
	assert.GreaterOrEqual(t, p.UPV.Value, 3000.0)
}

func TestPredict_FiberRaisesTensileOnlyAndCost(t *testing.T) {
	e := Default()
	plain, err := e.Predict(preset(t, "standard-uhpc"))
	require.NoError(t, err)

	m := preset(t, "standard-uhpc")
	m.SteelFiber = 100
	fibered, err := e.Predict(m)
	require.NoError(t, err)

	assert.InDelta(t, plain.TensileStrength.Value+2, fibered.TensileStrength.Value, 1e-9)
	assert.Equal(t, plain.CompressiveStrength.Value, fibered.CompressiveStrength.Value)
	assert.Equal(t, "255.41", fibered.Cost.String())
}

func TestPredict_Confidence(t *testing.T) {
	p, err := Default().Predict(preset(t, "custom"))
	require.NoError(t, err)

	want := math.Pow(0.91*0.88*0.86*0.84, 0.25)
	assert.InDelta(t, want, p.Confidence, 1e-9)
	assert.Equal(t, 0.91, p.CompressiveStrength.R2)
	assert.Equal(t, 1.0, p.CostR2)
}

func TestWithCoefficients(t *testing.T) {
	set := DefaultCoefficients()
	set.Version = "test/1"
	set.BaseStrength = 20

	e, err := New(WithCoefficients(set))
	require.NoError(t, err)
	assert.NotEqual(t, Default().CoefficientsDigest(), e.CoefficientsDigest())

	m := preset(t, "standard-uhpc")
	base, err := Default().Predict(m)
	require.NoError(t, err)
	half, err := e.Predict(m)
	require.NoError(t, err)

	assert.Equal(t, "test/1", half.EngineVersion)
	assert.InDelta(t, base.CompressiveStrength.Value/2, half.CompressiveStrength.Value, 1e-9)
	assert.Equal(t, base.DescriptorDigest, half.DescriptorDigest)
	assert.False(t, base.SameAs(half))
}

func TestNew_RequiresVersion(t *testing.T) {
	set := DefaultCoefficients()
	set.Version = ""
	_, err := New(WithCoefficients(set))
	assert.Error(t, err)
}
