// Package reference computes the Sun's position with the full Meeus solar
// theory (VSOP87-based apparent coordinates, nutation, apparent sidereal
// time) so the low-precision model in internal/sun can be measured against it.
package reference

import (
	"time"

	"github.com/soniakeys/meeus/v3/julian"
	"github.com/soniakeys/meeus/v3/sidereal"
	"github.com/soniakeys/meeus/v3/solar"
	"github.com/soniakeys/unit"

	"github.com/thurmanmarka/sundir/internal/sun"
	"github.com/thurmanmarka/sundir/internal/timeutil"
)

// Apparent is the Sun's apparent geocentric position plus Greenwich apparent
// sidereal time at one instant.
type Apparent struct {
	RA   unit.RA
	Dec  unit.Angle
	GAST unit.Time
}

// At returns the reference position at t.
//
// UT is used in place of TT; the ~70 s difference moves the Sun by less than
// 0.001 degrees.
func At(t time.Time) Apparent {
	jd := julian.TimeToJD(t.UTC())
	ra, dec := solar.ApparentEquatorial(jd)

	return Apparent{
		RA:   ra,
		Dec:  dec,
		GAST: sidereal.Apparent(jd),
	}
}

// Equatorial returns the reference RA/Dec in degrees, RA in [0, 360).
func (a Apparent) Equatorial() sun.Equatorial {
	return sun.Equatorial{
		RA:  timeutil.Normalize360(unit.Angle(a.RA).Deg()),
		Dec: a.Dec.Deg(),
	}
}

// LocalSiderealTime returns apparent local sidereal time in degrees [0, 360)
// for east longitude lon.
func (a Apparent) LocalSiderealTime(lon float64) float64 {
	return timeutil.Normalize360(a.GAST.Angle().Deg() + lon)
}

// Observe returns the reference equatorial and horizontal positions for an
// observer at (lat, lon). The horizontal stage is the same one the model uses,
// so differences come from RA/Dec and sidereal time alone.
func Observe(lat, lon float64, t time.Time) (sun.Equatorial, sun.Horizontal) {
	a := At(t)
	eq := a.Equatorial()
	return eq, sun.ToHorizontal(eq, lat, a.LocalSiderealTime(lon))
}

// Delta is model minus reference, in degrees. RA and Az are wrapped to
// [-180, 180).
type Delta struct {
	Time time.Time
	RA   float64
	Dec  float64
	Alt  float64
	Az   float64

	// AzDefined is false when either side fell back to the undefined-azimuth
	// value; Az is then meaningless.
	AzDefined bool
}

// Compare evaluates the model (in the given RA mode) and the reference for
// the same observer and instant.
func Compare(lat, lon float64, t time.Time, mode sun.RAMode) Delta {
	mEq, mHz := sun.Observe(lat, lon, t, mode)
	rEq, rHz := Observe(lat, lon, t)

	return Delta{
		Time:      t,
		RA:        timeutil.Normalize180(mEq.RA - rEq.RA),
		Dec:       mEq.Dec - rEq.Dec,
		Alt:       mHz.Alt - rHz.Alt,
		Az:        timeutil.Normalize180(mHz.Az - rHz.Az),
		AzDefined: !mHz.AzimuthUndefined && !rHz.AzimuthUndefined,
	}
}
