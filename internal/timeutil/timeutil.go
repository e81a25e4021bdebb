package timeutil

import (
	"math"
	"time"
)

// -----------------------------
// Time relative to the model epoch
// -----------------------------

// Y2K is the reference epoch of the solar model: 2000-01-01 00:00:00 UTC
// (Unix 946684800).
//
// Note this is midnight, not the 12:00 TT instant astronomers call J2000.0.
// The orbital coefficients in internal/sun are applied to days counted from
// this instant, and results are reproduced with that convention.
var Y2K = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// DaysSince returns the (fractional) number of days from epoch to t.
// The result is negative for instants before epoch.
func DaysSince(t, epoch time.Time) float64 {
	// Sub saturates at ~292 years; go through Unix seconds instead so far
	// past/future instants still produce a usable day count.
	sec := float64(t.Unix()-epoch.Unix()) + float64(t.Nanosecond()-epoch.Nanosecond())/1e9
	return sec / 86400.0
}

// DecimalUT returns the UTC time of day of t in decimal hours [0, 24).
func DecimalUT(t time.Time) float64 {
	u := t.UTC()
	sec := float64(u.Second()) + float64(u.Nanosecond())/1e9
	return float64(u.Hour()) + (float64(u.Minute())+sec/60.0)/60.0
}

// -----------------------------
// Basic degree/radian helpers and trig with degree inputs.
// -----------------------------

func Deg2Rad(d float64) float64 {
	return d * math.Pi / 180.0
}

func Rad2Deg(r float64) float64 {
	return r * 180.0 / math.Pi
}

func SinD(deg float64) float64 {
	return math.Sin(Deg2Rad(deg))
}

func CosD(deg float64) float64 {
	return math.Cos(Deg2Rad(deg))
}

func Normalize360(d float64) float64 {
	d = math.Mod(d, 360.0)
	if d < 0 {
		d += 360.0
	}
	// math.Mod of a tiny negative value plus 360 rounds up to 360.
	if d >= 360.0 {
		d = 0
	}
	return d
}

// Normalize180 wraps d into [-180, 180).
func Normalize180(d float64) float64 {
	return Normalize360(d+180.0) - 180.0
}

// Clamp limits x to [lo, hi]. NaN is passed through.
func Clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
