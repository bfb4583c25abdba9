package compare

import (
	"fmt"
	"strings"

	"github.com/emiliopalmerini/uhpc/internal/domain"
)

// Objective selects the property a ranking maximises or minimises.
type Objective string

const (
	MaxCompressive Objective = "max-compressive"
	MaxTensile     Objective = "max-tensile"
	MaxModulus     Objective = "max-modulus"
	MaxUPV         Objective = "max-upv"
	MinCost        Objective = "min-cost"
	MaxEfficiency  Objective = "max-efficiency"
)

// Objectives lists every supported objective.
var Objectives = []Objective{MaxCompressive, MaxTensile, MaxModulus, MaxUPV, MinCost, MaxEfficiency}

// ParseObjective accepts an objective name in any case.
func ParseObjective(s string) (Objective, error) {
	o := Objective(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Objectives {
		if o == known {
			return o, nil
		}
	}
	return "", fmt.Errorf("%w: %q", domain.ErrUnknownObjective, s)
}

// Score returns the value the objective ranks by, where higher is better.
func (o Objective) Score(p domain.Prediction) (float64, error) {
	switch o {
	case MaxCompressive:
		return p.CompressiveStrength.Value, nil
	case MaxTensile:
		return p.TensileStrength.Value, nil
	case MaxModulus:
		return p.ElasticModulus.Value, nil
	case MaxUPV:
		return p.UPV.Value, nil
	case MinCost:
		return -p.CostFloat(), nil
	case MaxEfficiency:
		return p.StrengthPerCost(), nil
	}
	return 0, fmt.Errorf("%w: %q", domain.ErrUnknownObjective, string(o))
}
