// Package standards holds the reference strength-development curves and
// checks mix designs against the ranges each standard was validated for.
package standards

import (
	_ "embed"
	"fmt"
	"math"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/emiliopalmerini/uhpc/internal/domain"
)

//go:embed data/standards.yaml
var standardsYAML []byte

// ID identifies a reference standard.
type ID string

const (
	ACI209    ID = "aci-209r-92"
	Eurocode2 ID = "eurocode-2"
)

// Curve kinds
const (
	KindHyperbolic  = "hyperbolic"
	KindExponential = "exponential"
)

// Curve is a normalised strength development law f(t)/f(28).
type Curve struct {
	Kind string  `yaml:"kind" json:"kind"`
	A    float64 `yaml:"a,omitempty" json:"a,omitempty"`
	B    float64 `yaml:"b,omitempty" json:"b,omitempty"`
	S    float64 `yaml:"s,omitempty" json:"s,omitempty"`
}

// Window is a closed validity interval.
type Window struct {
	Min float64 `yaml:"min" json:"min"`
	Max float64 `yaml:"max" json:"max"`
}

// Contains reports whether v lies in the window.
func (w Window) Contains(v float64) bool {
	return v >= w.Min && v <= w.Max
}

// Standard is one reference curve with its validity limits.
type Standard struct {
	ID            ID      `yaml:"id" json:"id"`
	Name          string  `yaml:"name" json:"name"`
	Title         string  `yaml:"title" json:"title"`
	Curve         Curve   `yaml:"curve" json:"curve"`
	MinAgeDays    float64 `yaml:"min_age_days" json:"min_age_days"`
	MaxAgeDays    float64 `yaml:"max_age_days" json:"max_age_days"`
	BelowMinRatio float64 `yaml:"below_min_ratio" json:"below_min_ratio"`
	WaterBinder   Window  `yaml:"water_binder" json:"water_binder"`
}

// Ratio returns f(t)/f(28) at age t. Below the minimum maturity the curve is
// undefined: ok is false and the declared fallback ratio is returned.
func (s Standard) Ratio(age float64) (ratio float64, ok bool) {
	if age < s.MinAgeDays || age <= 0 {
		return s.BelowMinRatio, false
	}
	switch s.Curve.Kind {
	case KindHyperbolic:
		return age / (s.Curve.A + s.Curve.B*age), true
	case KindExponential:
		return math.Exp(s.Curve.S * (1 - math.Sqrt(float64(domain.DesignAge)/age))), true
	}
	return 0, false
}

var (
	loadOnce sync.Once
	loaded   []Standard
	loadErr  error
)

func load() ([]Standard, error) {
	loadOnce.Do(func() {
		var doc struct {
			Standards []Standard `yaml:"standards"`
		}
		if err := yaml.Unmarshal(standardsYAML, &doc); err != nil {
			loadErr = fmt.Errorf("failed to parse reference standards: %w", err)
			return
		}
		for _, s := range doc.Standards {
			if s.Curve.Kind != KindHyperbolic && s.Curve.Kind != KindExponential {
				loadErr = fmt.Errorf("standard %s: unknown curve kind %q", s.ID, s.Curve.Kind)
				return
			}
		}
		loaded = doc.Standards
	})
	return loaded, loadErr
}

// All returns every known standard in declaration order.
func All() ([]Standard, error) {
	all, err := load()
	if err != nil {
		return nil, err
	}
	return append([]Standard(nil), all...), nil
}

// Lookup returns the standard with the given id.
func Lookup(id ID) (Standard, error) {
	all, err := load()
	if err != nil {
		return Standard{}, err
	}
	for _, s := range all {
		if s.ID == id {
			return s, nil
		}
	}
	return Standard{}, fmt.Errorf("%w: %q", domain.ErrUnknownStandard, id)
}

// ParseID normalises user input such as "ACI-209R-92" or "eurocode-2".
func ParseID(s string) (ID, error) {
	id := ID(strings.ToLower(strings.TrimSpace(s)))
	if _, err := Lookup(id); err != nil {
		return "", err
	}
	return id, nil
}
