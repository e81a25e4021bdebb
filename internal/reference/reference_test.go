package reference

import (
	"math"
	"testing"
	"time"

	"github.com/thurmanmarka/sundir/internal/sun"
)

func TestAtSolstice(t *testing.T) {
	// June solstice 2020 was at 21:44 UTC on June 20.
	a := At(time.Date(2020, time.June, 20, 21, 44, 0, 0, time.UTC))
	eq := a.Equatorial()

	if math.Abs(eq.Dec-23.4366) > 0.005 {
		t.Errorf("Dec = %.5f, want 23.4366 (obliquity in 2020)", eq.Dec)
	}
	if math.Abs(eq.RA-90) > 0.01 {
		t.Errorf("RA = %.5f, want 90 at the solstice", eq.RA)
	}
}

func TestLocalSiderealTimeRange(t *testing.T) {
	a := At(time.Date(2020, time.June, 21, 12, 0, 0, 0, time.UTC))
	for _, lon := range []float64{-180, -104.990302, 0, 90, 180} {
		lst := a.LocalSiderealTime(lon)
		if lst < 0 || lst >= 360 {
			t.Errorf("LST(lon=%g) = %g outside [0,360)", lon, lst)
		}
	}
}

// TestModelAccuracy walks a year at Denver and checks the low-precision model
// stays within a degree of the reference.
func TestModelAccuracy(t *testing.T) {
	const (
		lat = 39.739212
		lon = -104.990302
	)

	start := time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)
	var maxRA, maxDec, maxAlt float64

	for h := 0; h < 366*24; h += 7 {
		ts := start.Add(time.Duration(h) * time.Hour)
		d := Compare(lat, lon, ts, sun.RAQuadrant)

		maxRA = math.Max(maxRA, math.Abs(d.RA))
		maxDec = math.Max(maxDec, math.Abs(d.Dec))
		maxAlt = math.Max(maxAlt, math.Abs(d.Alt))
	}

	t.Logf("max |ΔRA|=%.4f° |ΔDec|=%.4f° |ΔAlt|=%.4f°", maxRA, maxDec, maxAlt)

	if maxRA > 1 {
		t.Errorf("max |ΔRA| = %.4f°, want < 1°", maxRA)
	}
	if maxDec > 0.5 {
		t.Errorf("max |ΔDec| = %.4f°, want < 0.5°", maxDec)
	}
	if maxAlt > 1.5 {
		t.Errorf("max |ΔAlt| = %.4f°, want < 1.5°", maxAlt)
	}
}

// TestPrincipalModeIsOffByHalfTurn shows the single-argument RA form is off by
// 180 degrees whenever the ecliptic longitude is in the second or third
// quadrant.
func TestPrincipalModeIsOffByHalfTurn(t *testing.T) {
	// Early September: ecliptic longitude ~160°.
	d := Compare(0, 0, time.Date(2020, time.September, 3, 0, 0, 0, 0, time.UTC), sun.RAPrincipal)
	if math.Abs(math.Abs(d.RA)-180) > 1 {
		t.Errorf("principal ΔRA = %.4f°, want ~±180°", d.RA)
	}

	// Early May: ecliptic longitude ~43°, both forms agree.
	d = Compare(0, 0, time.Date(2020, time.May, 3, 0, 0, 0, 0, time.UTC), sun.RAPrincipal)
	if math.Abs(d.RA) > 1 {
		t.Errorf("principal ΔRA = %.4f°, want < 1°", d.RA)
	}
}
