package compare

import (
	"context"
	"fmt"
	"sort"

	"github.com/emiliopalmerini/uhpc/internal/domain"
	"github.com/emiliopalmerini/uhpc/internal/ports"
)

// EarlyAge is the age at which early strength is checked.
const EarlyAge = 7

// Requirements describe what a project needs from a mix.
type Requirements struct {
	TargetStrength   float64            `json:"target_strength_mpa" yaml:"target_strength_mpa"`
	AgeDays          float64            `json:"age_days" yaml:"age_days"`
	MaxCost          float64            `json:"max_cost_usd" yaml:"max_cost_usd"`
	MinEarlyStrength float64            `json:"min_early_strength_mpa" yaml:"min_early_strength_mpa"`
	Application      domain.Application `json:"application" yaml:"application"`
}

// DefaultRequirements match a typical bridge brief.
func DefaultRequirements() Requirements {
	return Requirements{
		TargetStrength:   80,
		AgeDays:          domain.DesignAge,
		MaxCost:          120,
		MinEarlyStrength: 50,
		Application:      domain.AppBridge,
	}
}

// Check validates the requirements.
func (r Requirements) Check() error {
	switch {
	case r.TargetStrength <= 0:
		return &domain.InvalidInputError{Field: "target_strength_mpa", Value: r.TargetStrength, Reason: "must be positive"}
	case r.AgeDays <= 0:
		return &domain.InvalidInputError{Field: "age_days", Value: r.AgeDays, Reason: "must be positive"}
	case r.MaxCost <= 0:
		return &domain.InvalidInputError{Field: "max_cost_usd", Value: r.MaxCost, Reason: "must be positive"}
	case r.MinEarlyStrength < 0:
		return &domain.InvalidInputError{Field: "min_early_strength_mpa", Value: r.MinEarlyStrength, Reason: "must not be negative"}
	}
	return nil
}

// Candidate is one evaluated solution.
type Candidate struct {
	Prediction    domain.Prediction `json:"prediction"`
	EarlyStrength float64           `json:"early_strength_mpa"`
	MeetsStrength bool              `json:"meets_strength"`
	MeetsEarly    bool              `json:"meets_early_strength"`
	MeetsCost     bool              `json:"meets_cost"`
	Met           int               `json:"requirements_met"`
	Suitability   int               `json:"suitability"`
	Grade         string            `json:"suitability_grade"`
	Analysis      domain.Analysis   `json:"analysis"`
}

// Verdict summarises how many requirements a candidate meets.
func (c Candidate) Verdict() string {
	switch c.Met {
	case 3:
		return "all requirements met"
	case 2:
		return "most requirements met"
	default:
		return "requirements need adjustment"
	}
}

// Optimize evaluates the candidates against the requirements and orders them by
// requirements met, then by lowest cost. A nil candidate list uses the built-in
// solution families.
func Optimize(ctx context.Context, p ports.Predictor, req Requirements, candidates []domain.MixDesign, opts ...Option) ([]Candidate, error) {
	if err := req.Check(); err != nil {
		return nil, err
	}
	if candidates == nil {
		candidates = domain.OptimizationCandidates()
	}
	if len(candidates) == 0 {
		return nil, &domain.EmptyInputError{Operation: "optimize"}
	}

	batch := make([]domain.MixDesign, 0, 2*len(candidates))
	for _, m := range candidates {
		batch = append(batch, m.WithAge(req.AgeDays), m.WithAge(EarlyAge))
	}
	preds, err := PredictAll(ctx, p, batch, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate candidates: %w", err)
	}

	out := make([]Candidate, len(candidates))
	for i := range candidates {
		at, early := preds[2*i], preds[2*i+1]
		c := Candidate{
			Prediction:    at,
			EarlyStrength: early.CompressiveStrength.Value,
			MeetsStrength: at.CompressiveStrength.Value >= req.TargetStrength,
			MeetsEarly:    early.CompressiveStrength.Value >= req.MinEarlyStrength,
			MeetsCost:     at.CostFloat() <= req.MaxCost,
			Suitability:   domain.Suitability(req.Application, at),
			Analysis:      domain.Analyze(at),
		}
		for _, ok := range []bool{c.MeetsStrength, c.MeetsEarly, c.MeetsCost} {
			if ok {
				c.Met++
			}
		}
		c.Grade = domain.SuitabilityGrade(c.Suitability)
		out[i] = c
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Met != out[j].Met {
			return out[i].Met > out[j].Met
		}
		return out[i].Prediction.Cost.LessThan(out[j].Prediction.Cost)
	})
	return out, nil
}
