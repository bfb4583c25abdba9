package compare

import (
	"fmt"

	"github.com/emiliopalmerini/uhpc/internal/domain"
	"github.com/emiliopalmerini/uhpc/internal/ports"
)

var (
	keyAges    = []float64{1, 3, 7, 14, 28, 56, 90, 180, 365}
	milestones = []float64{7, 28, 90}
)

// KeyAges returns the curing ages reported in a progression.
func KeyAges() []float64 {
	return append([]float64(nil), keyAges...)
}

// Step is the prediction at one age.
type Step struct {
	AgeDays    float64           `json:"age_days"`
	Prediction domain.Prediction `json:"prediction"`
	// GainPercent is strength relative to the 28-day value.
	GainPercent float64 `json:"gain_percent"`
	Milestone   bool    `json:"milestone"`
}

// Progression predicts m at every key age up to maxAge.
func Progression(p ports.Predictor, m domain.MixDesign, maxAge float64) ([]Step, error) {
	ages := KeyAges()
	if maxAge <= 0 {
		maxAge = ages[len(ages)-1]
	}
	ref, err := p.Predict(m.WithAge(domain.DesignAge))
	if err != nil {
		return nil, fmt.Errorf("failed to predict 28-day strength: %w", err)
	}
	f28 := ref.CompressiveStrength.Value

	var steps []Step
	for _, age := range ages {
		if age > maxAge {
			break
		}
		pred, err := p.Predict(m.WithAge(age))
		if err != nil {
			return nil, fmt.Errorf("failed to predict at %g days: %w", age, err)
		}
		steps = append(steps, Step{
			AgeDays:     age,
			Prediction:  pred,
			GainPercent: pred.CompressiveStrength.Value / f28 * 100,
			Milestone:   isMilestone(age),
		})
	}
	return steps, nil
}

func isMilestone(age float64) bool {
	for _, m := range milestones {
		if age == m {
			return true
		}
	}
	return false
}
