package sundir

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/thurmanmarka/sundir/internal/solver"
	"github.com/thurmanmarka/sundir/internal/sun"
)

// MaxCrossingWindow caps the span a single FindCrossing call searches.
const MaxCrossingWindow = 400 * 24 * time.Hour

// ErrInvalidAltitude is returned when a target altitude is NaN or outside
// [-90, 90].
var ErrInvalidAltitude = errors.New("invalid target altitude")

// CrossingKind is the direction in which the Sun passes a target altitude.
type CrossingKind int

const (
	// Rising means the Sun's altitude increases through the target.
	Rising CrossingKind = iota
	// Setting means the Sun's altitude decreases through the target.
	Setting
)

func (k CrossingKind) String() string {
	if k == Setting {
		return "setting"
	}
	return "rising"
}

// ParseCrossingKind parses "rising" or "setting".
func ParseCrossingKind(s string) (CrossingKind, error) {
	switch s {
	case "", "rising", "rise":
		return Rising, nil
	case "setting", "set":
		return Setting, nil
	default:
		return 0, fmt.Errorf("unknown crossing kind %q (use rising or setting)", s)
	}
}

// FindCrossing returns the first instant in [start, end] at which the Sun's
// geometric altitude crosses targetAlt (degrees) in the given direction, to
// within 30 seconds. The window may span at most MaxCrossingWindow. found is false when no such crossing exists in the
// window, which is normal for polar day and polar night.
//
// No refraction or solar radius correction is applied, so targetAlt=0 finds
// the geometric centre crossing the horizon, a few minutes after apparent
// sunrise and before apparent sunset.
func FindCrossing(loc Coordinates, start, end time.Time, targetAlt float64, kind CrossingKind, opts Options) (at time.Time, found bool, err error) {
	if err := loc.Validate(); err != nil {
		return time.Time{}, false, err
	}
	if !start.Before(end) {
		return time.Time{}, false, fmt.Errorf("%w: end %s not after start %s", ErrInvalidWindow,
			end.Format(time.RFC3339), start.Format(time.RFC3339))
	}
	if end.Sub(start) > MaxCrossingWindow {
		return time.Time{}, false, fmt.Errorf("%w: window %s longer than %s", ErrInvalidWindow,
			end.Sub(start), MaxCrossingWindow)
	}
	if math.IsNaN(targetAlt) || targetAlt < -90 || targetAlt > 90 {
		return time.Time{}, false, fmt.Errorf("%w: %v outside [-90, 90]", ErrInvalidAltitude, targetAlt)
	}

	mode := internalMode(opts.RAMode)
	alt := func(t time.Time) float64 {
		return sun.Altitude(loc.Lat, loc.Lon, t, mode)
	}

	dir := solver.Rising
	if kind == Setting {
		dir = solver.Setting
	}

	at, found = solver.FindCrossing(alt, start, end, solver.DefaultSearch(targetAlt, dir))
	if !found {
		return time.Time{}, false, nil
	}
	return at.UTC(), true, nil
}
