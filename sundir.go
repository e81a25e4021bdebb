// Package sundir computes the apparent direction of the Sun for an observer
// on Earth at a given instant.
//
// It uses a low-precision closed-form solar model (roughly a degree of
// accuracy) and returns the Sun's position three ways: equatorial
// coordinates, horizontal coordinates relative to the observer, and a unit
// vector in the observer's local East-North-Up frame.
//
// Every function is pure: results depend only on the arguments, nothing is
// cached, and all functions are safe for concurrent use. The package never
// reads the clock; callers pass the instant in.
package sundir

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/thurmanmarka/sundir/internal/sun"
	"github.com/thurmanmarka/sundir/internal/timeutil"
)

// ModelVersion identifies the coefficient table behind every result.
var ModelVersion = sun.Model.Version

// Coordinates represent an observer's location.
type Coordinates struct {
	Lat float64 // degrees, north positive, [-90, 90]
	Lon float64 // degrees, east positive (west negative, e.g. -105 for 105°W)
}

// Equatorial holds the Sun's right ascension and declination in degrees.
type Equatorial struct {
	RA  float64 `json:"ra"`
	Dec float64 `json:"dec"`
}

// Horizontal holds the Sun's altitude and azimuth in degrees. Azimuth is
// measured from North toward East, in [0, 360).
type Horizontal struct {
	Alt float64 `json:"alt"`
	Az  float64 `json:"az"`
}

// Direction is a unit vector pointing at the Sun in the observer's local
// tangent frame.
type Direction struct {
	East  float64 `json:"east"`
	North float64 `json:"north"`
	Up    float64 `json:"up"`
}

// Position is the Sun's position for one observer at one instant.
type Position struct {
	Time       time.Time  `json:"time"`
	Equatorial Equatorial `json:"equatorial"`
	Horizontal Horizontal `json:"horizontal"`
	Vector     Direction  `json:"vector"`

	// AzimuthFallback is set when azimuth is geometrically undefined (observer
	// at a pole, or the Sun at zenith or nadir). Horizontal.Az is then 0.
	AzimuthFallback bool `json:"azimuth_fallback,omitempty"`
}

// RAMode selects how right ascension is derived from ecliptic longitude.
type RAMode int

const (
	// RAQuadrant uses a two-argument arctangent so RA lands in the correct
	// quadrant, in [0, 360). This is the default.
	RAQuadrant RAMode = iota

	// RAPrincipal uses the single-argument arctangent of the original
	// program. RA is confined to (-90, 90) and is off by 180 degrees for about
	// half the year, which also corrupts altitude and azimuth. Use it only to
	// reproduce legacy results.
	RAPrincipal
)

// String returns the mode's name as accepted by ParseRAMode.
func (m RAMode) String() string {
	switch m {
	case RAQuadrant:
		return "quadrant"
	case RAPrincipal:
		return "principal"
	default:
		return fmt.Sprintf("RAMode(%d)", int(m))
	}
}

// ParseRAMode parses "quadrant" or "principal". The empty string selects
// RAQuadrant.
func ParseRAMode(s string) (RAMode, error) {
	switch s {
	case "", "quadrant":
		return RAQuadrant, nil
	case "principal", "legacy":
		return RAPrincipal, nil
	default:
		return 0, fmt.Errorf("unknown RA mode %q (use quadrant or principal)", s)
	}
}

// Options tune a computation. The zero value is the recommended default.
type Options struct {
	RAMode RAMode
}

var (
	// ErrInvalidLatitude is returned when |latitude| > 90 or latitude is NaN.
	ErrInvalidLatitude = errors.New("latitude must be within [-90, 90] degrees")

	// ErrInvalidLongitude is returned when longitude is NaN or infinite.
	ErrInvalidLongitude = errors.New("longitude must be a finite number of degrees")
)

// Validate reports whether c describes a point on Earth.
func (c Coordinates) Validate() error {
	if math.IsNaN(c.Lat) || c.Lat < -90 || c.Lat > 90 {
		return fmt.Errorf("%w: got %v", ErrInvalidLatitude, c.Lat)
	}
	if math.IsNaN(c.Lon) || math.IsInf(c.Lon, 0) {
		return fmt.Errorf("%w: got %v", ErrInvalidLongitude, c.Lon)
	}
	return nil
}

// SunPosition returns the Sun's position for an observer at loc at instant t,
// using default options.
func SunPosition(loc Coordinates, t time.Time) (Position, error) {
	return SunPositionWith(loc, t, Options{})
}

// SunPositionWith is SunPosition with explicit options.
func SunPositionWith(loc Coordinates, t time.Time, opts Options) (Position, error) {
	if err := loc.Validate(); err != nil {
		return Position{}, err
	}

	eq, hz := sun.Observe(loc.Lat, loc.Lon, t, internalMode(opts.RAMode))

	h := Horizontal{Alt: hz.Alt, Az: hz.Az}

	return Position{
		Time:            t.UTC(),
		Equatorial:      Equatorial{RA: eq.RA, Dec: eq.Dec},
		Horizontal:      h,
		Vector:          h.Direction(),
		AzimuthFallback: hz.AzimuthUndefined,
	}, nil
}

// Compute is the three-tuple form of SunPosition: longitude first, then
// latitude, both in degrees.
func Compute(lonDeg, latDeg float64, t time.Time) (Equatorial, Horizontal, Direction, error) {
	p, err := SunPosition(Coordinates{Lat: latDeg, Lon: lonDeg}, t)
	if err != nil {
		return Equatorial{}, Horizontal{}, Direction{}, err
	}
	return p.Equatorial, p.Horizontal, p.Vector, nil
}

// Direction returns the East-North-Up unit vector for h.
//
//	east  = cos(alt)·sin(az)
//	north = cos(alt)·cos(az)
//	up    = sin(alt)
func (h Horizontal) Direction() Direction {
	alt := timeutil.Deg2Rad(h.Alt)
	az := timeutil.Deg2Rad(h.Az)

	return Direction{
		East:  math.Cos(alt) * math.Sin(az),
		North: math.Cos(alt) * math.Cos(az),
		Up:    math.Sin(alt),
	}
}

// Norm returns the Euclidean length of d.
func (d Direction) Norm() float64 {
	return math.Sqrt(d.East*d.East + d.North*d.North + d.Up*d.Up)
}

func internalMode(m RAMode) sun.RAMode {
	if m == RAPrincipal {
		return sun.RAPrincipal
	}
	return sun.RAQuadrant
}
