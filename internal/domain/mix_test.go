package domain

import (
	"errors"
	"math"
	"testing"
)

func standardMix() MixDesign {
	m, _ := Preset("standard-uhpc")
	return m
}

func TestMixDesign_Check_Valid(t *testing.T) {
	for _, name := range PresetNames() {
		m, err := Preset(name)
		if err != nil {
			t.Fatalf("Preset(%q): %v", name, err)
		}
		if err := m.Check(); err != nil {
			t.Errorf("preset %q should be valid, got %v", name, err)
		}
	}
}

func TestMixDesign_Check_HardBounds(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(*MixDesign)
		field string
	}{
		{"missing cement", func(m *MixDesign) { m.Cement = 0 }, "cement"},
		{"negative cement", func(m *MixDesign) { m.Cement = -10 }, "cement"},
		{"missing water", func(m *MixDesign) { m.Water = 0 }, "water"},
		{"negative slag", func(m *MixDesign) { m.Slag = -1 }, "slag"},
		{"negative fly ash", func(m *MixDesign) { m.FlyAsh = -0.5 }, "fly_ash"},
		{"negative silica fume", func(m *MixDesign) { m.SilicaFume = -2 }, "silica_fume"},
		{"negative coarse aggregate", func(m *MixDesign) { m.CoarseAggregate = -1 }, "coarse_aggregate"},
		{"negative fine aggregate", func(m *MixDesign) { m.FineAggregate = -1 }, "fine_aggregate"},
		{"negative superplasticizer", func(m *MixDesign) { m.Superplasticizer = -1 }, "superplasticizer"},
		{"negative steel fiber", func(m *MixDesign) { m.SteelFiber = -5 }, "steel_fiber"},
		{"missing age", func(m *MixDesign) { m.AgeDays = 0 }, "age_days"},
		{"negative age", func(m *MixDesign) { m.AgeDays = -3 }, "age_days"},
		{"NaN water", func(m *MixDesign) { m.Water = math.NaN() }, "water"},
		{"infinite cement", func(m *MixDesign) { m.Cement = math.Inf(1) }, "cement"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := standardMix()
			tt.edit(&m)

			_, err := NewMixDesign(m)
			var invalid *InvalidInputError
			if !errors.As(err, &invalid) {
				t.Fatalf("expected InvalidInputError, got %v", err)
			}
			if invalid.Field != tt.field {
				t.Errorf("expected field %s, got %s", tt.field, invalid.Field)
			}
		})
	}
}

func TestMixDesign_DerivedRatios(t *testing.T) {
	m := MixDesign{Cement: 300, Water: 150, Slag: 120, FlyAsh: 80, SilicaFume: 25, SteelFiber: 157, AgeDays: 28}

	if got := m.Binder(); got != 525 {
		t.Errorf("Binder() = %v, want 525", got)
	}
	if got := m.WaterCementRatio(); !almostEqual(got, 0.5) {
		t.Errorf("WaterCementRatio() = %v, want 0.5", got)
	}
	if got := m.WaterBinderRatio(); !almostEqual(got, 150.0/525.0) {
		t.Errorf("WaterBinderRatio() = %v", got)
	}
	if got := m.SCMPercent(); !almostEqual(got, 200.0/525.0*100) {
		t.Errorf("SCMPercent() = %v", got)
	}
	if got := m.FiberVolumePercent(); !almostEqual(got, 2.0) {
		t.Errorf("FiberVolumePercent() = %v, want 2", got)
	}
}

func TestMixDesign_ZeroBinderRatios(t *testing.T) {
	var m MixDesign
	if m.WaterBinderRatio() != 0 || m.WaterCementRatio() != 0 || m.SCMPercent() != 0 {
		t.Error("ratios on an empty mix should be zero")
	}
}

func TestMixDesign_WithAgeReturnsCopy(t *testing.T) {
	m := standardMix()
	older := m.WithAge(90)

	if m.AgeDays != DesignAge {
		t.Errorf("original age changed to %v", m.AgeDays)
	}
	if older.AgeDays != 90 {
		t.Errorf("expected copy at 90 days, got %v", older.AgeDays)
	}
	if older.WithName("x").Name != "x" || older.Name != m.Name {
		t.Error("WithName should only change the copy")
	}
}

func TestPreset_Unknown(t *testing.T) {
	if _, err := Preset("nope"); !errors.Is(err, ErrUnknownPreset) {
		t.Errorf("expected ErrUnknownPreset, got %v", err)
	}
}

func TestComparisonSet_IsACopy(t *testing.T) {
	set := ComparisonSet()
	set[0].Cement = 1
	if ComparisonSet()[0].Cement == 1 {
		t.Error("ComparisonSet should return a fresh slice")
	}
}

func TestMixDesign_Violations_ListsAll(t *testing.T) {
	m := MixDesign{Cement: 0, Water: -1, Slag: -5, AgeDays: 28}
	v := m.Violations()
	if len(v) != 3 {
		t.Fatalf("expected 3 violations, got %d", len(v))
	}
	want := []string{"cement", "water", "slag"}
	for i, f := range want {
		if v[i].Field != f {
			t.Errorf("violation %d: expected %s, got %s", i, f, v[i].Field)
		}
	}
}

func TestFields_SetGet(t *testing.T) {
	for i, f := range Fields {
		var m MixDesign
		v := float64(i + 1)
		f.Set(&m, v)
		if got := f.Get(m); got != v {
			t.Errorf("%s: Get after Set = %v, want %v", f.Key, got, v)
		}
	}
	if _, ok := FieldByKey("fly_ash"); !ok {
		t.Error("fly_ash should be a known field")
	}
}
