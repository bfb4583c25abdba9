// Package confidence combines per-property R² values into a single score.
package confidence

import "math"

// Aggregate combines scores with a geometric mean so one weak correlation
// pulls the result down.
func Aggregate(scores ...float64) float64 {
	if len(scores) == 0 {
		return 0
	}

	product := 1.0
	for _, s := range scores {
		if s <= 0 {
			return 0
		}
		product *= s
	}

	return math.Pow(product, 1.0/float64(len(scores)))
}

// Decay reduces a base confidence by 10% per extrapolated input.
func Decay(base float64, factors int) float64 {
	if factors <= 0 {
		return base
	}
	return base * math.Pow(0.9, float64(factors))
}

// Clamp keeps a score in [0, 1].
func Clamp(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}

// Pearson returns the correlation coefficient of two equally sized series,
// or 0 when either series has no variance.
func Pearson(x, y []float64) float64 {
	n := len(x)
	if n == 0 || n != len(y) {
		return 0
	}

	var meanX, meanY float64
	for i := range x {
		meanX += x[i]
		meanY += y[i]
	}
	meanX /= float64(n)
	meanY /= float64(n)

	var cov, varX, varY float64
	for i := range x {
		dx, dy := x[i]-meanX, y[i]-meanY
		cov += dx * dy
		varX += dx * dx
		varY += dy * dy
	}
	if varX == 0 || varY == 0 {
		return 0
	}
	return cov / math.Sqrt(varX*varY)
}

const (
	High   = 0.90
	Medium = 0.80
	Low    = 0.60
)

// Level names the band a score falls in.
func Level(score float64) string {
	switch {
	case score >= High:
		return "high"
	case score >= Medium:
		return "medium"
	case score >= Low:
		return "low"
	default:
		return "very low"
	}
}
