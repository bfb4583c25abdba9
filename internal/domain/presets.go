package domain

import (
	"fmt"
	"sort"
)

// DesignAge is the reference curing age in days.
const DesignAge = 28

// presets are ready-made mixes for quick predictions, keyed by slug.
var presets = map[string]MixDesign{
	"custom": {
		Name: "Custom", Cement: 350, Water: 175, Slag: 50, FlyAsh: 30, SilicaFume: 20,
		CoarseAggregate: 1000, FineAggregate: 750, Superplasticizer: 8, AgeDays: DesignAge,
	},
	"standard-uhpc": {
		Name: "Standard UHPC", Cement: 400, Water: 160, SilicaFume: 40,
		CoarseAggregate: 1000, FineAggregate: 750, Superplasticizer: 12, AgeDays: DesignAge,
	},
	"high-strength-bridge": {
		Name: "High-Strength Bridge", Cement: 450, Water: 140, Slag: 50, SilicaFume: 45,
		CoarseAggregate: 950, FineAggregate: 700, Superplasticizer: 15, AgeDays: DesignAge,
	},
	"sustainable": {
		Name: "Sustainable Mix", Cement: 300, Water: 150, Slag: 120, FlyAsh: 80, SilicaFume: 25,
		CoarseAggregate: 1000, FineAggregate: 750, Superplasticizer: 8, AgeDays: DesignAge,
	},
	"cost-optimized": {
		Name: "Cost-Optimized", Cement: 320, Water: 175, Slag: 80, FlyAsh: 60, SilicaFume: 15,
		CoarseAggregate: 1050, FineAggregate: 800, Superplasticizer: 6, AgeDays: DesignAge,
	},
}

var comparisonSet = []MixDesign{
	{Name: "Standard UHPC", Cement: 400, Water: 160, SilicaFume: 40,
		CoarseAggregate: 1000, FineAggregate: 750, Superplasticizer: 12, AgeDays: DesignAge},
	{Name: "High-Performance UHPC", Cement: 450, Water: 140, SilicaFume: 50,
		CoarseAggregate: 950, FineAggregate: 700, Superplasticizer: 15, AgeDays: DesignAge},
	{Name: "Sustainable UHPC", Cement: 300, Water: 150, Slag: 120, FlyAsh: 80, SilicaFume: 25,
		CoarseAggregate: 1000, FineAggregate: 750, Superplasticizer: 10, AgeDays: DesignAge},
}

var optimizationCandidates = []MixDesign{
	{Name: "Ultra-High Performance Solution", Cement: 450, Water: 135, SilicaFume: 50,
		CoarseAggregate: 950, FineAggregate: 700, Superplasticizer: 18, AgeDays: DesignAge},
	{Name: "High-Performance Optimized", Cement: 400, Water: 150, Slag: 50, SilicaFume: 40,
		CoarseAggregate: 1000, FineAggregate: 750, Superplasticizer: 15, AgeDays: DesignAge},
	{Name: "Balanced Performance", Cement: 350, Water: 165, Slag: 80, FlyAsh: 40, SilicaFume: 25,
		CoarseAggregate: 1050, FineAggregate: 800, Superplasticizer: 12, AgeDays: DesignAge},
}

// ComparisonSet returns the default trio used when comparing mixes.
func ComparisonSet() []MixDesign {
	return append([]MixDesign(nil), comparisonSet...)
}

// OptimizationCandidates returns the solution families offered by the optimizer.
func OptimizationCandidates() []MixDesign {
	return append([]MixDesign(nil), optimizationCandidates...)
}

// Preset returns a copy of the named preset.
func Preset(slug string) (MixDesign, error) {
	m, ok := presets[slug]
	if !ok {
		return MixDesign{}, fmt.Errorf("%w: %q", ErrUnknownPreset, slug)
	}
	return m, nil
}

// PresetNames returns preset slugs in sorted order.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for k := range presets {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
