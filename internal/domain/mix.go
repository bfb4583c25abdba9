package domain

import "math"

// SteelDensity is the density of steel fibers in kg/m³.
const SteelDensity = 7850.0

// MixDesign describes one concrete mix per cubic metre. It is a value type:
// methods never modify the receiver and With* helpers return copies.
type MixDesign struct {
	Name             string  `json:"name,omitempty" yaml:"name,omitempty" cbor:"1,keyasint,omitempty"`
	Cement           float64 `json:"cement" yaml:"cement" cbor:"2,keyasint"`
	Water            float64 `json:"water" yaml:"water" cbor:"3,keyasint"`
	Slag             float64 `json:"slag" yaml:"slag" cbor:"4,keyasint"`
	FlyAsh           float64 `json:"fly_ash" yaml:"fly_ash" cbor:"5,keyasint"`
	SilicaFume       float64 `json:"silica_fume" yaml:"silica_fume" cbor:"6,keyasint"`
	CoarseAggregate  float64 `json:"coarse_aggregate" yaml:"coarse_aggregate" cbor:"7,keyasint"`
	FineAggregate    float64 `json:"fine_aggregate" yaml:"fine_aggregate" cbor:"8,keyasint"`
	Superplasticizer float64 `json:"superplasticizer" yaml:"superplasticizer" cbor:"9,keyasint"`
	SteelFiber       float64 `json:"steel_fiber" yaml:"steel_fiber" cbor:"10,keyasint"`
	AgeDays          float64 `json:"age_days" yaml:"age_days" cbor:"11,keyasint"`
}

// NewMixDesign returns m after checking it against the hard physical bounds.
func NewMixDesign(m MixDesign) (MixDesign, error) {
	if err := m.Check(); err != nil {
		return MixDesign{}, err
	}
	return m, nil
}

// Check reports the first hard-bound violation as an *InvalidInputError.
func (m MixDesign) Check() error {
	if v := m.Violations(); len(v) > 0 {
		return v[0]
	}
	return nil
}

// Violations lists every hard-bound violation in field order.
func (m MixDesign) Violations() []*InvalidInputError {
	var out []*InvalidInputError
	for _, f := range Fields {
		v := f.Get(m)
		reason := ""
		switch {
		case math.IsNaN(v) || math.IsInf(v, 0):
			reason = "must be a finite number"
		case f.Required && v == 0:
			reason = "is required"
		case f.Required && v < 0:
			reason = "must be positive"
		case v < f.HardMin:
			reason = "must not be negative"
		default:
			continue
		}
		out = append(out, &InvalidInputError{Field: f.Key, Value: v, Reason: reason})
	}
	return out
}

// Binder is the total cementitious content (cement plus SCMs).
func (m MixDesign) Binder() float64 {
	return m.Cement + m.Slag + m.FlyAsh + m.SilicaFume
}

// WaterBinderRatio returns water over total binder, or 0 when there is no binder.
func (m MixDesign) WaterBinderRatio() float64 {
	if b := m.Binder(); b > 0 {
		return m.Water / b
	}
	return 0
}

// WaterCementRatio returns water over cement, or 0 when there is no cement.
func (m MixDesign) WaterCementRatio() float64 {
	if m.Cement > 0 {
		return m.Water / m.Cement
	}
	return 0
}

// SCMPercent is the slag plus fly ash share of the binder, in percent.
func (m MixDesign) SCMPercent() float64 {
	if b := m.Binder(); b > 0 {
		return (m.Slag + m.FlyAsh) / b * 100
	}
	return 0
}

// FiberVolumePercent converts the steel fiber dosage to a volume fraction in percent.
func (m MixDesign) FiberVolumePercent() float64 {
	return m.SteelFiber / SteelDensity * 100
}

// WithAge returns a copy of m evaluated at a different curing age.
func (m MixDesign) WithAge(days float64) MixDesign {
	m.AgeDays = days
	return m
}

// WithName returns a copy of m with a different label.
func (m MixDesign) WithName(name string) MixDesign {
	m.Name = name
	return m
}

// Label returns the mix name, or fallback when the mix is unnamed.
func (m MixDesign) Label(fallback string) string {
	if m.Name != "" {
		return m.Name
	}
	return fallback
}
