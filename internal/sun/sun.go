package sun

import (
	"math"
	"time"

	"github.com/thurmanmarka/sundir/internal/timeutil"
)

// singularEps bounds |cos(alt)·cos(lat)| below which azimuth is treated as
// undefined (observer at a pole, or the Sun at zenith/nadir). cos(90°) in
// float64 is ~6e-17, and asin of a sine one ulp short of 1 lands ~1.5e-8 rad
// from the zenith, so an exact zero test would never fire. 1e-7 rad is about
// 0.02 arcsec.
const singularEps = 1e-7

// Horizontal holds the observer-relative position of the Sun.
type Horizontal struct {
	Alt float64 // altitude, degrees [-90, 90]
	Az  float64 // azimuth from North toward East, degrees [0, 360)

	LST float64 // local sidereal time, degrees [0, 360)
	HA  float64 // hour angle, radians

	// AzimuthUndefined reports that Az was set to 0 because the azimuth
	// formula's divisor vanished.
	AzimuthUndefined bool
}

// LocalSiderealTime returns the observer's local sidereal time in degrees
// [0, 360) for the model day count n, east longitude lon (deg) and decimal UT.
func LocalSiderealTime(n, lon, ut float64) float64 {
	return timeutil.Normalize360(Model.LST0 + Model.LSTRate*n + lon + 15.0*ut)
}

// ToHorizontal converts equatorial coordinates to altitude/azimuth for an
// observer at latitude lat (deg) with local sidereal time lst (deg).
func ToHorizontal(eq Equatorial, lat, lst float64) Horizontal {
	latRad := timeutil.Deg2Rad(lat)
	decRad := timeutil.Deg2Rad(eq.Dec)

	ha := timeutil.Deg2Rad(lst) - timeutil.Deg2Rad(eq.RA)

	sinAlt := math.Sin(decRad)*math.Sin(latRad) + math.Cos(decRad)*math.Cos(latRad)*math.Cos(ha)
	alt := math.Asin(timeutil.Clamp(sinAlt, -1, 1))

	h := Horizontal{
		Alt: timeutil.Rad2Deg(alt),
		LST: lst,
		HA:  ha,
	}

	div := math.Cos(alt) * math.Cos(latRad)
	if math.Abs(div) < singularEps {
		h.AzimuthUndefined = true
		return h
	}

	cosAz := (math.Sin(decRad) - math.Sin(alt)*math.Sin(latRad)) / div
	// Normalize360 folds a 359.999... that rounds to 360 on conversion.
	h.Az = timeutil.Normalize360(timeutil.Rad2Deg(AzimuthFromCos(cosAz, math.Sin(ha))))

	return h
}

// AzimuthFromCos recovers azimuth in radians [0, 2π) from its cosine and the
// sine of the hour angle. cosAz is clamped to [-1, 1] first; rounding can push
// a geometrically valid ratio just past either end.
func AzimuthFromCos(cosAz, sinHA float64) float64 {
	az := math.Acos(timeutil.Clamp(cosAz, -1, 1))
	if sinHA >= 0 {
		// Sun west of the meridian.
		az = 2*math.Pi - az
	}
	if az >= 2*math.Pi {
		az = 0
	}
	return az
}

// Observe runs the full pipeline for an observer at (lat, lon) at time t.
func Observe(lat, lon float64, t time.Time, mode RAMode) (Equatorial, Horizontal) {
	o := OrbitAt(t)
	eq := EquatorialFromOrbit(o, mode)
	lst := LocalSiderealTime(o.N, lon, timeutil.DecimalUT(t))
	return eq, ToHorizontal(eq, lat, lst)
}

// Altitude returns the Sun's geometric altitude in degrees at (lat, lon) at t.
func Altitude(lat, lon float64, t time.Time, mode RAMode) float64 {
	_, h := Observe(lat, lon, t, mode)
	return h.Alt
}
