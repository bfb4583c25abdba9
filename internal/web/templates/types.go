package templates

import (
	"github.com/emiliopalmerini/uhpc/internal/compare"
	"github.com/emiliopalmerini/uhpc/internal/domain"
	"github.com/emiliopalmerini/uhpc/internal/standards"
)

// ReportData is everything the prediction report renders.
type ReportData struct {
	Title       string
	Preset      string
	Presets     []string
	Prediction  domain.Prediction
	Analysis    domain.Analysis
	Reports     []standards.Report
	Progression []compare.Step
	Agreement   standards.Agreement
	// Confidence is the model confidence after extrapolation penalties.
	Confidence      float64
	ConfidenceLevel string
}
