package domain

import (
	"math"

	"github.com/shopspring/decimal"
)

// Property is one predicted quantity with the R² of the correlation behind it.
type Property struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
	R2    float64 `json:"r2"`
}

// Prediction is the engine output for exactly one MixDesign and one coefficient set.
type Prediction struct {
	Mix                 MixDesign       `json:"mix"`
	CompressiveStrength Property        `json:"compressive_strength"`
	TensileStrength     Property        `json:"tensile_strength"`
	ElasticModulus      Property        `json:"elastic_modulus"`
	UPV                 Property        `json:"upv"`
	Cost                decimal.Decimal `json:"cost_usd_per_m3"`
	CostR2              float64         `json:"cost_r2"`
	Confidence          float64         `json:"confidence"`

	DescriptorDigest   string `json:"descriptor_digest"`
	EngineVersion      string `json:"engine_version"`
	CoefficientsDigest string `json:"coefficients_digest"`
}

// CostFloat returns the cost as a float for ratios and charts.
func (p Prediction) CostFloat() float64 {
	f, _ := p.Cost.Float64()
	return f
}

// StrengthPerCost is MPa per USD/m³, 0 when cost is zero.
func (p Prediction) StrengthPerCost() float64 {
	c := p.CostFloat()
	if c == 0 {
		return 0
	}
	return p.CompressiveStrength.Value / c
}

// TensileRatioPercent is ft/fc in percent.
func (p Prediction) TensileRatioPercent() float64 {
	if p.CompressiveStrength.Value == 0 {
		return 0
	}
	return p.TensileStrength.Value / p.CompressiveStrength.Value * 100
}

// ModulusRatio is E/fc.
func (p Prediction) ModulusRatio() float64 {
	if p.CompressiveStrength.Value == 0 {
		return 0
	}
	return p.ElasticModulus.Value / p.CompressiveStrength.Value
}

// SameAs reports whether two predictions come from the same descriptor and
// coefficient set and carry the same values.
func (p Prediction) SameAs(o Prediction) bool {
	return p.DescriptorDigest == o.DescriptorDigest &&
		p.EngineVersion == o.EngineVersion &&
		p.CoefficientsDigest == o.CoefficientsDigest &&
		almostEqual(p.CompressiveStrength.Value, o.CompressiveStrength.Value) &&
		almostEqual(p.TensileStrength.Value, o.TensileStrength.Value) &&
		almostEqual(p.ElasticModulus.Value, o.ElasticModulus.Value) &&
		almostEqual(p.UPV.Value, o.UPV.Value) &&
		p.Cost.Equal(o.Cost)
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}
