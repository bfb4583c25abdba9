package util

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// FormatMPa formats a stress with one decimal, e.g. "94.3 MPa".
func FormatMPa(v float64) string {
	return fmt.Sprintf("%.1f MPa", v)
}

// FormatGPa formats a modulus given in MPa as GPa, e.g. "44.4 GPa".
func FormatGPa(mpa float64) string {
	return fmt.Sprintf("%.1f GPa", mpa/1000)
}

// FormatVelocity formats a pulse velocity, e.g. "4140 m/s".
func FormatVelocity(v float64) string {
	return fmt.Sprintf("%.0f m/s", v)
}

// FormatUSD formats a cost per cubic metre, e.g. "$135.41/m³".
func FormatUSD(d decimal.Decimal) string {
	return "$" + d.StringFixed(2) + "/m³"
}

// FormatPercent formats a percentage with one decimal.
func FormatPercent(v float64) string {
	return fmt.Sprintf("%.1f%%", v)
}

// FormatDays formats an age in days, dropping the fraction when whole.
func FormatDays(d float64) string {
	if d == float64(int64(d)) {
		return fmt.Sprintf("%d d", int64(d))
	}
	return fmt.Sprintf("%.1f d", d)
}

// FormatDateTime formats a timestamp as "2006-01-02 15:04" in UTC.
func FormatDateTime(t time.Time) string {
	return t.UTC().Format("2006-01-02 15:04")
}

// ShortID returns the first 8 characters of an id.
func ShortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}
