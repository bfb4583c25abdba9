package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"github.com/emiliopalmerini/uhpc/internal/compare"
	"github.com/emiliopalmerini/uhpc/internal/domain"
	"github.com/emiliopalmerini/uhpc/internal/standards"
)

// objectiveValue is a pflag.Value restricted to the ranking objectives.
type objectiveValue compare.Objective

var _ pflag.Value = (*objectiveValue)(nil)

func newObjectiveValue(def compare.Objective) *objectiveValue {
	v := objectiveValue(def)
	return &v
}

func (v *objectiveValue) String() string { return string(*v) }
func (v *objectiveValue) Type() string   { return "objective" }

func (v *objectiveValue) Set(s string) error {
	obj, err := compare.ParseObjective(s)
	if err != nil {
		return err
	}
	*v = objectiveValue(obj)
	return nil
}

func (v *objectiveValue) Objective() compare.Objective { return compare.Objective(*v) }

func objectiveNames() string {
	names := make([]string, len(compare.Objectives))
	for i, o := range compare.Objectives {
		names[i] = string(o)
	}
	return strings.Join(names, ", ")
}

// standardValue is a pflag.Value holding a reference standard id. Empty means all.
type standardValue standards.ID

var _ pflag.Value = (*standardValue)(nil)

func (v *standardValue) String() string { return string(*v) }
func (v *standardValue) Type() string   { return "standard" }

func (v *standardValue) Set(s string) error {
	if strings.TrimSpace(s) == "" {
		*v = ""
		return nil
	}
	id, err := standards.ParseID(s)
	if err != nil {
		return err
	}
	*v = standardValue(id)
	return nil
}

func (v *standardValue) ID() standards.ID { return standards.ID(*v) }

// applicationValue is a pflag.Value for the optimizer's target application.
type applicationValue domain.Application

var _ pflag.Value = (*applicationValue)(nil)

var applications = []domain.Application{domain.AppBridge, domain.AppHighRise, domain.AppMarine, domain.AppIndustrialFloor}

func (v *applicationValue) String() string { return string(*v) }
func (v *applicationValue) Type() string   { return "application" }

func (v *applicationValue) Set(s string) error {
	for _, a := range applications {
		if strings.EqualFold(s, string(a)) {
			*v = applicationValue(a)
			return nil
		}
	}
	return fmt.Errorf("unknown application %q (want bridge, high-rise, marine or industrial-floor)", s)
}
