package domain

// Field describes one numeric input of a MixDesign.
type Field struct {
	Key      string
	Label    string
	Unit     string
	Min      float64 // calibrated range of the empirical model
	Max      float64
	HardMin  float64 // physical bound; below it the input is rejected
	Required bool    // zero is treated as missing
	Get      func(MixDesign) float64
	Set      func(*MixDesign, float64)
}

// Fields lists the descriptor inputs in presentation order.
var Fields = []Field{
	{Key: "cement", Label: "Cement", Unit: "kg/m³", Min: 200, Max: 500, Required: true,
		Get: func(m MixDesign) float64 { return m.Cement },
		Set: func(m *MixDesign, x float64) { m.Cement = x }},
	{Key: "water", Label: "Water", Unit: "kg/m³", Min: 120, Max: 250, Required: true,
		Get: func(m MixDesign) float64 { return m.Water },
		Set: func(m *MixDesign, x float64) { m.Water = x }},
	{Key: "slag", Label: "Slag", Unit: "kg/m³", Min: 0, Max: 200,
		Get: func(m MixDesign) float64 { return m.Slag },
		Set: func(m *MixDesign, x float64) { m.Slag = x }},
	{Key: "fly_ash", Label: "Fly Ash", Unit: "kg/m³", Min: 0, Max: 150,
		Get: func(m MixDesign) float64 { return m.FlyAsh },
		Set: func(m *MixDesign, x float64) { m.FlyAsh = x }},
	{Key: "silica_fume", Label: "Silica Fume", Unit: "kg/m³", Min: 0, Max: 50,
		Get: func(m MixDesign) float64 { return m.SilicaFume },
		Set: func(m *MixDesign, x float64) { m.SilicaFume = x }},
	{Key: "coarse_aggregate", Label: "Coarse Aggregate", Unit: "kg/m³", Min: 800, Max: 1200,
		Get: func(m MixDesign) float64 { return m.CoarseAggregate },
		Set: func(m *MixDesign, x float64) { m.CoarseAggregate = x }},
	{Key: "fine_aggregate", Label: "Fine Aggregate", Unit: "kg/m³", Min: 600, Max: 900,
		Get: func(m MixDesign) float64 { return m.FineAggregate },
		Set: func(m *MixDesign, x float64) { m.FineAggregate = x }},
	{Key: "superplasticizer", Label: "Superplasticizer", Unit: "kg/m³", Min: 0, Max: 20,
		Get: func(m MixDesign) float64 { return m.Superplasticizer },
		Set: func(m *MixDesign, x float64) { m.Superplasticizer = x }},
	{Key: "steel_fiber", Label: "Steel Fiber", Unit: "kg/m³", Min: 0, Max: 160,
		Get: func(m MixDesign) float64 { return m.SteelFiber },
		Set: func(m *MixDesign, x float64) { m.SteelFiber = x }},
	{Key: "age_days", Label: "Age", Unit: "days", Min: 1, Max: 365, Required: true,
		Get: func(m MixDesign) float64 { return m.AgeDays },
		Set: func(m *MixDesign, x float64) { m.AgeDays = x }},
}

// FieldByKey looks up a field by its JSON key.
func FieldByKey(key string) (Field, bool) {
	for _, f := range Fields {
		if f.Key == key {
			return f, true
		}
	}
	return Field{}, false
}
