package sun

import (
	"math"
	"time"

	"github.com/thurmanmarka/sundir/internal/timeutil"
)

// Coefficients is the empirical low-precision solar model. The values are
// treated as an opaque table; change Version together with any value.
type Coefficients struct {
	Version string

	L0, LRate float64 // mean longitude (deg, deg/day)
	G0, GRate float64 // mean anomaly (deg, deg/day)
	C1, C2    float64 // equation of center terms (deg)
	R0        float64 // distance (AU)
	R1, R2    float64
	Eps0      float64 // obliquity (deg)
	EpsRate   float64 // deg/day
	LST0      float64 // sidereal time at epoch (deg)
	LSTRate   float64 // deg/day
}

// Model is the coefficient table every computation uses.
var Model = Coefficients{
	Version: "lowprec-2000.1",

	L0: 280.460, LRate: 0.9856474,
	G0: 357.528, GRate: 0.9856003,
	C1: 1.915, C2: 0.020,
	R0: 1.00014, R1: 0.01671, R2: 0.00014,
	Eps0: 23.439, EpsRate: 0.0000004,
	LST0: 100.46, LSTRate: 0.985647,
}

// Orbit holds the orbital intermediates for one instant. Angles in degrees.
type Orbit struct {
	N    float64 // days since timeutil.Y2K
	L    float64 // mean longitude, not range-reduced
	G    float64 // mean anomaly
	Lam  float64 // ecliptic longitude
	Beta float64 // ecliptic latitude, always 0 (true value stays under 0.00033 deg)
	R    float64 // Earth-Sun distance, AU
	Eps  float64 // mean obliquity of the ecliptic
}

// OrbitAt evaluates the orbital stage at time t.
func OrbitAt(t time.Time) Orbit {
	return orbitForDays(timeutil.DaysSince(t, timeutil.Y2K))
}

func orbitForDays(n float64) Orbit {
	c := Model

	L := c.L0 + c.LRate*n
	g := c.G0 + c.GRate*n

	return Orbit{
		N:    n,
		L:    L,
		G:    g,
		Lam:  L + c.C1*timeutil.SinD(g) + c.C2*timeutil.SinD(2*g),
		Beta: 0,
		R:    c.R0 - c.R1*timeutil.CosD(g) - c.R2*timeutil.CosD(2*g),
		Eps:  c.Eps0 - c.EpsRate*n,
	}
}

// RAMode selects how right ascension is recovered from ecliptic longitude.
type RAMode int

const (
	// RAQuadrant uses the two-argument arctangent; RA lands in [0, 360).
	RAQuadrant RAMode = iota
	// RAPrincipal uses the single-argument arctangent, reproducing the
	// original program. RA lands in (-90, 90) and is wrong by 180 degrees
	// for half of all ecliptic longitudes.
	RAPrincipal
)

// Equatorial represents equatorial coordinates (right ascension and declination)
// in degrees.
type Equatorial struct {
	RA  float64 // right ascension, degrees
	Dec float64 // declination, degrees
}

// EquatorialFromOrbit converts the ecliptic position in o to equatorial
// coordinates.
func EquatorialFromOrbit(o Orbit, mode RAMode) Equatorial {
	lam := timeutil.Deg2Rad(o.Lam)
	eps := timeutil.Deg2Rad(o.Eps)

	var ra float64
	switch mode {
	case RAPrincipal:
		ra = math.Atan(math.Cos(eps) * math.Tan(lam))
	default:
		ra = math.Atan2(math.Cos(eps)*math.Sin(lam), math.Cos(lam))
		if ra < 0 {
			ra += 2 * math.Pi
		}
	}

	// Declination range matches asin's, so no quadrant work is needed.
	dec := math.Asin(timeutil.Clamp(math.Sin(eps)*math.Sin(lam), -1, 1))

	raDeg := timeutil.Rad2Deg(ra)
	if mode != RAPrincipal {
		raDeg = timeutil.Normalize360(raDeg)
	}

	return Equatorial{
		RA:  raDeg,
		Dec: timeutil.Rad2Deg(dec),
	}
}
