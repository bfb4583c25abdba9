package standards

import (
	"fmt"

	"github.com/emiliopalmerini/uhpc/internal/confidence"
	"github.com/emiliopalmerini/uhpc/internal/domain"
	"github.com/emiliopalmerini/uhpc/internal/ports"
)

// AgreementDays is the age span compared against the reference curves.
const AgreementDays = 90

// AgreementStatus grades the average correlation.
type AgreementStatus string

const (
	AgreementExcellent AgreementStatus = "excellent"
	AgreementGood      AgreementStatus = "good"
	AgreementReview    AgreementStatus = "review"
)

// Correlation is the Pearson coefficient between the model and one curve.
type Correlation struct {
	Standard ID        `json:"standard"`
	Name     string    `json:"name"`
	Percent  []float64 `json:"percent_of_28_day"`
	Pearson  float64   `json:"pearson"`
}

// Agreement compares the predicted strength development of a mix with the
// reference curves, all normalised to the 28-day strength.
type Agreement struct {
	Mix          domain.MixDesign `json:"mix"`
	Ages         []float64        `json:"ages"`
	Model        []float64        `json:"model_percent_of_28_day"`
	Correlations []Correlation    `json:"correlations"`
	Average      float64          `json:"average"`
	Status       AgreementStatus  `json:"status"`
}

// GradeAgreement maps an average correlation to a status.
func GradeAgreement(r float64) AgreementStatus {
	switch {
	case r > confidence.High:
		return AgreementExcellent
	case r > confidence.Medium:
		return AgreementGood
	default:
		return AgreementReview
	}
}

// Agree evaluates m at every day from 1 to AgreementDays.
func Agree(p ports.Predictor, m domain.MixDesign) (Agreement, error) {
	all, err := All()
	if err != nil {
		return Agreement{}, err
	}

	ref, err := p.Predict(m.WithAge(domain.DesignAge))
	if err != nil {
		return Agreement{}, fmt.Errorf("failed to predict 28-day strength: %w", err)
	}
	f28 := ref.CompressiveStrength.Value

	a := Agreement{Mix: m}
	for day := 1; day <= AgreementDays; day++ {
		age := float64(day)
		pred, err := p.Predict(m.WithAge(age))
		if err != nil {
			return Agreement{}, fmt.Errorf("failed to predict at %g days: %w", age, err)
		}
		a.Ages = append(a.Ages, age)
		a.Model = append(a.Model, pred.CompressiveStrength.Value/f28*100)
	}

	sum := 0.0
	for _, s := range all {
		c := Correlation{Standard: s.ID, Name: s.Name}
		for _, age := range a.Ages {
			ratio, _ := s.Ratio(age)
			c.Percent = append(c.Percent, ratio*100)
		}
		c.Pearson = confidence.Pearson(a.Model, c.Percent)
		sum += c.Pearson
		a.Correlations = append(a.Correlations, c)
	}
	if len(a.Correlations) > 0 {
		a.Average = sum / float64(len(a.Correlations))
	}
	a.Status = GradeAgreement(a.Average)
	return a, nil
}
