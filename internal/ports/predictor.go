package ports

import "github.com/emiliopalmerini/uhpc/internal/domain"

// Predictor maps a mix design to predicted properties.
type Predictor interface {
	Predict(m domain.MixDesign) (domain.Prediction, error)
}
