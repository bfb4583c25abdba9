package standards

import (
	"fmt"
	"math"

	"github.com/emiliopalmerini/uhpc/internal/domain"
)

// Status is the outcome of validating a mix against one standard.
type Status string

const (
	StatusPass         Status = "pass"
	StatusExtrapolated Status = "extrapolated"
	StatusInvalid      Status = "invalid"
)

// Issue is one finding. Exactly one of Warning or Invalid is set.
type Issue struct {
	Code     string                       `json:"code"`
	Severity string                       `json:"severity"`
	Field    string                       `json:"field"`
	Message  string                       `json:"message"`
	Warning  *domain.ExtrapolationWarning `json:"-"`
	Invalid  *domain.InvalidInputError    `json:"-"`
}

// Err returns the typed error behind the issue.
func (i Issue) Err() error {
	if i.Invalid != nil {
		return i.Invalid
	}
	return i.Warning
}

// Report is the validation result for one standard.
type Report struct {
	Standard ID      `json:"standard"`
	Name     string  `json:"name"`
	Status   Status  `json:"status"`
	Issues   []Issue `json:"issues"`
}

// Warnings returns the extrapolation warnings in the report.
func (r Report) Warnings() []*domain.ExtrapolationWarning {
	var out []*domain.ExtrapolationWarning
	for _, i := range r.Issues {
		if i.Warning != nil {
			out = append(out, i.Warning)
		}
	}
	return out
}

// Validate checks m against a standard. Out-of-range inputs are reported as
// extrapolated, never rejected; only hard-bound violations make a mix invalid.
func Validate(m domain.MixDesign, id ID) (Report, error) {
	std, err := Lookup(id)
	if err != nil {
		return Report{}, err
	}
	r := Report{Standard: std.ID, Name: std.Name, Status: StatusPass, Issues: []Issue{}}

	if violations := m.Violations(); len(violations) > 0 {
		r.Status = StatusInvalid
		for _, v := range violations {
			r.Issues = append(r.Issues, Issue{
				Code:     v.Code(),
				Severity: v.Severity().String(),
				Field:    v.Field,
				Message:  v.Error(),
				Invalid:  v,
			})
		}
		return r, nil
	}

	for _, w := range extrapolations(m, std) {
		r.Issues = append(r.Issues, Issue{
			Code:     w.Code(),
			Severity: w.Severity().String(),
			Field:    w.Field,
			Message:  w.Error(),
			Warning:  w,
		})
	}
	if len(r.Issues) > 0 {
		r.Status = StatusExtrapolated
	}
	return r, nil
}

// ValidateAll runs Validate for every known standard.
func ValidateAll(m domain.MixDesign) ([]Report, error) {
	all, err := All()
	if err != nil {
		return nil, err
	}
	reports := make([]Report, 0, len(all))
	for _, s := range all {
		r, err := Validate(m, s.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to validate against %s: %w", s.ID, err)
		}
		reports = append(reports, r)
	}
	return reports, nil
}

func extrapolations(m domain.MixDesign, std Standard) []*domain.ExtrapolationWarning {
	var out []*domain.ExtrapolationWarning

	minAge := math.Max(std.MinAgeDays, 1)
	if m.AgeDays < minAge || m.AgeDays > std.MaxAgeDays {
		out = append(out, &domain.ExtrapolationWarning{
			Field: "age_days", Value: m.AgeDays, Min: minAge, Max: std.MaxAgeDays, Standard: std.Name,
		})
	}

	if wb := m.WaterBinderRatio(); !std.WaterBinder.Contains(wb) {
		out = append(out, &domain.ExtrapolationWarning{
			Field: "water_binder_ratio", Value: wb, Min: std.WaterBinder.Min, Max: std.WaterBinder.Max, Standard: std.Name,
		})
	}

	for _, f := range domain.Fields {
		if f.Key == "age_days" {
			continue
		}
		if v := f.Get(m); v < f.Min || v > f.Max {
			out = append(out, &domain.ExtrapolationWarning{Field: f.Key, Value: v, Min: f.Min, Max: f.Max})
		}
	}
	return out
}
