package engine

import (
	"github.com/shopspring/decimal"

	"github.com/emiliopalmerini/uhpc/internal/codec"
)

// DefaultVersion names the built-in coefficient set.
const DefaultVersion = "uhpc-empirical/2024.1"

// Range is a closed clamp interval.
type Range struct {
	Min float64 `cbor:"1,keyasint"`
	Max float64 `cbor:"2,keyasint"`
}

func (r Range) clamp(v float64) float64 {
	if v < r.Min {
		return r.Min
	}
	if v > r.Max {
		return r.Max
	}
	return v
}

// Prices are material prices in USD per kg.
type Prices struct {
	Cement           decimal.Decimal `cbor:"1,keyasint"`
	Slag             decimal.Decimal `cbor:"2,keyasint"`
	FlyAsh           decimal.Decimal `cbor:"3,keyasint"`
	SilicaFume       decimal.Decimal `cbor:"4,keyasint"`
	CoarseAggregate  decimal.Decimal `cbor:"5,keyasint"`
	FineAggregate    decimal.Decimal `cbor:"6,keyasint"`
	Superplasticizer decimal.Decimal `cbor:"7,keyasint"`
	Water            decimal.Decimal `cbor:"8,keyasint"`
	SteelFiber       decimal.Decimal `cbor:"9,keyasint"`
}

// Fit holds the coefficient of determination reported for each correlation.
type Fit struct {
	Compressive float64 `cbor:"1,keyasint"`
	Tensile     float64 `cbor:"2,keyasint"`
	Modulus     float64 `cbor:"3,keyasint"`
	UPV         float64 `cbor:"4,keyasint"`
	Cost        float64 `cbor:"5,keyasint"`
}

// CoefficientSet is the versioned data behind every formula the engine evaluates.
type CoefficientSet struct {
	Version string `cbor:"1,keyasint"`

	ReferenceAge     float64 `cbor:"2,keyasint"`
	BaseStrength     float64 `cbor:"3,keyasint"`
	BinderExponent   float64 `cbor:"4,keyasint"`
	SlagGain         float64 `cbor:"5,keyasint"`
	FlyAshGain       float64 `cbor:"6,keyasint"`
	SilicaFumeGain   float64 `cbor:"7,keyasint"`
	PlasticizerScale float64 `cbor:"8,keyasint"`
	Compressive      Range   `cbor:"9,keyasint"`

	TensileBase       float64 `cbor:"10,keyasint"`
	TensileSilicaFume float64 `cbor:"11,keyasint"`
	TensileFiber      float64 `cbor:"12,keyasint"`
	Tensile           Range   `cbor:"13,keyasint"`

	ReferenceAggregate float64 `cbor:"14,keyasint"`
	ModulusFactor      float64 `cbor:"15,keyasint"`
	Modulus            Range   `cbor:"16,keyasint"`

	UPVBase         float64 `cbor:"17,keyasint"`
	UPVStrengthGain float64 `cbor:"18,keyasint"`
	UPVDensityGain  float64 `cbor:"19,keyasint"`
	UPV             Range   `cbor:"20,keyasint"`

	Prices Prices `cbor:"21,keyasint"`
	Fit    Fit    `cbor:"22,keyasint"`
}

// DefaultCoefficients returns the built-in empirical set.
func DefaultCoefficients() CoefficientSet {
	return CoefficientSet{
		Version: DefaultVersion,

		ReferenceAge:     28,
		BaseStrength:     40,
		BinderExponent:   0.7,
		SlagGain:         0.3,
		FlyAshGain:       0.2,
		SilicaFumeGain:   0.4,
		PlasticizerScale: 100,
		Compressive:      Range{Min: 10, Max: 120},

		TensileBase:       0.08,
		TensileSilicaFume: 0.0007,
		TensileFiber:      0.02,
		Tensile:           Range{Min: 1, Max: 15},

		ReferenceAggregate: 1800,
		ModulusFactor:      4700,
		Modulus:            Range{Min: 15000, Max: 50000},

		UPVBase:         3800,
		UPVStrengthGain: 15,
		UPVDensityGain:  200,
		UPV:             Range{Min: 3000, Max: 5000},

		Prices: Prices{
			Cement:           decimal.RequireFromString("0.12"),
			Slag:             decimal.RequireFromString("0.08"),
			FlyAsh:           decimal.RequireFromString("0.06"),
			SilicaFume:       decimal.RequireFromString("0.80"),
			CoarseAggregate:  decimal.RequireFromString("0.02"),
			FineAggregate:    decimal.RequireFromString("0.015"),
			Superplasticizer: decimal.RequireFromString("2.00"),
			Water:            decimal.RequireFromString("0.001"),
			SteelFiber:       decimal.RequireFromString("1.20"),
		},
		Fit: Fit{Compressive: 0.91, Tensile: 0.88, Modulus: 0.86, UPV: 0.84, Cost: 1},
	}
}

// Digest identifies the set by content.
func (c CoefficientSet) Digest() (string, error) {
	return codec.Digest(c)
}
