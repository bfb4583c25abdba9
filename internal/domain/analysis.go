package domain

import "math"

// PerformanceClass buckets a compressive strength.
type PerformanceClass string

const (
	ClassUltraHigh  PerformanceClass = "ultra-high"
	ClassVeryHigh   PerformanceClass = "very-high"
	ClassHigh       PerformanceClass = "high"
	ClassMediumHigh PerformanceClass = "medium-high"
	ClassStandard   PerformanceClass = "standard"
)

// ClassifyStrength maps compressive strength (MPa) to a performance class.
func ClassifyStrength(fc float64) PerformanceClass {
	switch {
	case fc >= 100:
		return ClassUltraHigh
	case fc >= 80:
		return ClassVeryHigh
	case fc >= 60:
		return ClassHigh
	case fc >= 40:
		return ClassMediumHigh
	default:
		return ClassStandard
	}
}

// UPVQuality grades a pulse velocity in m/s.
func UPVQuality(upv float64) string {
	switch {
	case upv > 4500:
		return "excellent"
	case upv > 4000:
		return "good"
	default:
		return "fair"
	}
}

// RecommendedApplications lists typical uses for a compressive strength.
func RecommendedApplications(fc float64) []string {
	switch {
	case fc >= 80:
		return []string{"bridge structures", "high-rise buildings", "protective structures"}
	case fc >= 60:
		return []string{"structural elements", "marine structures", "industrial floors"}
	default:
		return []string{"general construction", "pavements", "foundations"}
	}
}

// SustainabilityScore rates a mix from 0 to 10 from its SCM share and w/c ratio.
func SustainabilityScore(m MixDesign) float64 {
	wc := math.Min(m.WaterCementRatio(), 0.6)
	return math.Min(10, m.SCMPercent()/5+(1-wc)*10)
}

// Application is a target use for the optimizer.
type Application string

const (
	AppBridge          Application = "bridge"
	AppHighRise        Application = "high-rise"
	AppMarine          Application = "marine"
	AppIndustrialFloor Application = "industrial-floor"
)

// Suitability scores how well a predicted mix fits an application, in percent.
func Suitability(app Application, p Prediction) int {
	fc := p.CompressiveStrength.Value
	switch app {
	case AppBridge:
		if fc > 80 {
			return 95
		}
		return 75
	case AppHighRise:
		if fc > 70 {
			return 90
		}
		return 70
	case AppMarine:
		if p.Mix.SCMPercent() > 20 {
			return 85
		}
		return 65
	case AppIndustrialFloor:
		if p.CostFloat() < 100 {
			return 90
		}
		return 70
	default:
		return 80
	}
}

// SuitabilityGrade turns a suitability score into a label.
func SuitabilityGrade(score int) string {
	switch {
	case score >= 90:
		return "excellent"
	case score >= 75:
		return "good"
	default:
		return "acceptable"
	}
}

// Analysis bundles the derived indicators shown next to a prediction.
type Analysis struct {
	Class               PerformanceClass `json:"performance_class"`
	UPVQuality          string           `json:"upv_quality"`
	Applications        []string         `json:"applications"`
	WaterCementRatio    float64          `json:"water_cement_ratio"`
	WaterBinderRatio    float64          `json:"water_binder_ratio"`
	SCMPercent          float64          `json:"scm_percent"`
	SustainabilityScore float64          `json:"sustainability_score"`
	StrengthPerCost     float64          `json:"strength_per_cost"`
	TensileRatioPercent float64          `json:"tensile_ratio_percent"`
	ModulusRatio        float64          `json:"modulus_ratio"`
}

// Analyze derives the indicators for a prediction.
func Analyze(p Prediction) Analysis {
	fc := p.CompressiveStrength.Value
	return Analysis{
		Class:               ClassifyStrength(fc),
		UPVQuality:          UPVQuality(p.UPV.Value),
		Applications:        RecommendedApplications(fc),
		WaterCementRatio:    p.Mix.WaterCementRatio(),
		WaterBinderRatio:    p.Mix.WaterBinderRatio(),
		SCMPercent:          p.Mix.SCMPercent(),
		SustainabilityScore: SustainabilityScore(p.Mix),
		StrengthPerCost:     p.StrengthPerCost(),
		TensileRatioPercent: p.TensileRatioPercent(),
		ModulusRatio:        p.ModulusRatio(),
	}
}
