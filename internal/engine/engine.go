// Package engine evaluates the empirical UHPC correlations for a mix design.
package engine

import (
	"fmt"
	"math"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/emiliopalmerini/uhpc/internal/codec"
	"github.com/emiliopalmerini/uhpc/internal/confidence"
	"github.com/emiliopalmerini/uhpc/internal/domain"
)

// Engine is safe for concurrent use; it holds only immutable coefficients.
type Engine struct {
	coeffs CoefficientSet
	digest string
}

// Option configures an Engine.
type Option func(*Engine)

// WithCoefficients replaces the default coefficient set.
func WithCoefficients(c CoefficientSet) Option {
	return func(e *Engine) {
		e.coeffs = c
	}
}

// New builds an engine and fingerprints its coefficient set.
func New(opts ...Option) (*Engine, error) {
	e := &Engine{coeffs: DefaultCoefficients()}
	for _, opt := range opts {
		opt(e)
	}
	if e.coeffs.Version == "" {
		return nil, fmt.Errorf("coefficient set has no version")
	}
	d, err := e.coeffs.Digest()
	if err != nil {
		return nil, fmt.Errorf("failed to digest coefficients: %w", err)
	}
	e.digest = d
	return e, nil
}

var (
	defaultOnce   sync.Once
	defaultEngine *Engine
)

// Default returns a shared engine over the built-in coefficients.
func Default() *Engine {
	defaultOnce.Do(func() {
		e, err := New()
		if err != nil {
			panic(fmt.Sprintf("engine: default coefficients: %v", err))
		}
		defaultEngine = e
	})
	return defaultEngine
}

// Version returns the coefficient set version.
func (e *Engine) Version() string { return e.coeffs.Version }

// CoefficientsDigest returns the content digest of the coefficient set.
func (e *Engine) CoefficientsDigest() string { return e.digest }

// Predict evaluates every property for m. The same descriptor and coefficient
// set always yield the same result.
func (e *Engine) Predict(m domain.MixDesign) (domain.Prediction, error) {
	m, err := domain.NewMixDesign(m)
	if err != nil {
		return domain.Prediction{}, err
	}
	digest, err := codec.Digest(m)
	if err != nil {
		return domain.Prediction{}, fmt.Errorf("failed to digest descriptor: %w", err)
	}

	c := e.coeffs
	fc := e.compressive(m)
	ft := c.Tensile.clamp(fc*(c.TensileBase+c.TensileSilicaFume*m.SilicaFume) + c.TensileFiber*m.SteelFiber)
	density := (m.CoarseAggregate + m.FineAggregate) / c.ReferenceAggregate
	modulus := c.Modulus.clamp(c.ModulusFactor * math.Sqrt(fc) * density)
	upv := c.UPV.clamp(c.UPVBase + c.UPVStrengthGain*math.Sqrt(fc) + c.UPVDensityGain*density)

	return domain.Prediction{
		Mix:                 m,
		CompressiveStrength: domain.Property{Value: fc, Unit: "MPa", R2: c.Fit.Compressive},
		TensileStrength:     domain.Property{Value: ft, Unit: "MPa", R2: c.Fit.Tensile},
		ElasticModulus:      domain.Property{Value: modulus, Unit: "MPa", R2: c.Fit.Modulus},
		UPV:                 domain.Property{Value: upv, Unit: "m/s", R2: c.Fit.UPV},
		Cost:                e.cost(m),
		CostR2:              c.Fit.Cost,
		Confidence:          confidence.Aggregate(c.Fit.Compressive, c.Fit.Tensile, c.Fit.Modulus, c.Fit.UPV),
		DescriptorDigest:    digest,
		EngineVersion:       c.Version,
		CoefficientsDigest:  e.digest,
	}, nil
}

func (e *Engine) compressive(m domain.MixDesign) float64 {
	c := e.coeffs
	binder := m.Binder()
	ageFactor := math.Log(m.AgeDays+1) / math.Log(c.ReferenceAge+1)
	slagF := 1 + c.SlagGain*m.Slag/binder
	flyF := 1 + c.FlyAshGain*m.FlyAsh/binder
	sfF := 1 + c.SilicaFumeGain*m.SilicaFume/binder
	base := c.BaseStrength * math.Pow(binder/m.Water, c.BinderExponent)
	return c.Compressive.clamp(base * ageFactor * slagF * flyF * sfF * (1 + m.Superplasticizer/c.PlasticizerScale))
}

func (e *Engine) cost(m domain.MixDesign) decimal.Decimal {
	p := e.coeffs.Prices
	items := []struct {
		mass  float64
		price decimal.Decimal
	}{
		{m.Cement, p.Cement},
		{m.Slag, p.Slag},
		{m.FlyAsh, p.FlyAsh},
		{m.SilicaFume, p.SilicaFume},
		{m.CoarseAggregate, p.CoarseAggregate},
		{m.FineAggregate, p.FineAggregate},
		{m.Superplasticizer, p.Superplasticizer},
		{m.Water, p.Water},
		{m.SteelFiber, p.SteelFiber},
	}
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(decimal.NewFromFloat(it.mass).Mul(it.price))
	}
	return total.Round(2)
}
