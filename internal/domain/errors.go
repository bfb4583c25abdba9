package domain

import (
	"errors"
	"fmt"
)

// Severity indicates how a problem should be surfaced.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// Error codes
const (
	CodeInvalidInput = "INVALID_INPUT"
	CodeExtrapolated = "EXTRAPOLATED"
	CodeEmptyInput   = "EMPTY_INPUT"
)

var (
	ErrUnknownStandard  = errors.New("unknown standard")
	ErrUnknownObjective = errors.New("unknown objective")
	ErrUnknownPreset    = errors.New("unknown preset")
)

// InvalidInputError is returned when a descriptor field is missing or outside
// its hard physical bound.
type InvalidInputError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("[%s] %s: %s %s (got %g)", e.Severity(), CodeInvalidInput, e.Field, e.Reason, e.Value)
}

func (e *InvalidInputError) Code() string       { return CodeInvalidInput }
func (e *InvalidInputError) Severity() Severity { return SeverityError }

// ExtrapolationWarning marks an input that is physically valid but lies outside
// the range a standard or the empirical model was validated for.
type ExtrapolationWarning struct {
	Field    string
	Value    float64
	Min      float64
	Max      float64
	Standard string
}

func (e *ExtrapolationWarning) Error() string {
	scope := "model calibration"
	if e.Standard != "" {
		scope = e.Standard
	}
	return fmt.Sprintf("[%s] %s: %s=%g outside %s range [%g, %g]",
		e.Severity(), CodeExtrapolated, e.Field, e.Value, scope, e.Min, e.Max)
}

func (e *ExtrapolationWarning) Code() string       { return CodeExtrapolated }
func (e *ExtrapolationWarning) Severity() Severity { return SeverityWarning }

// EmptyInputError is returned when an operation over candidates receives none.
type EmptyInputError struct {
	Operation string
}

func (e *EmptyInputError) Error() string {
	return fmt.Sprintf("[%s] %s: %s requires at least one mix design", e.Severity(), CodeEmptyInput, e.Operation)
}

func (e *EmptyInputError) Code() string       { return CodeEmptyInput }
func (e *EmptyInputError) Severity() Severity { return SeverityError }
