package solver

import (
	"time"
)

// AltitudeFunc returns altitude in degrees at time t.
type AltitudeFunc func(t time.Time) float64

// Direction says which way the altitude must move through the target.
type Direction int

const (
	// Rising means altitude increases through the target value.
	Rising Direction = iota
	// Setting means altitude decreases through the target value.
	Setting
)

// Search configures a crossing search.
type Search struct {
	Target    float64       // altitude to cross, degrees
	Direction Direction     // Rising or Setting
	Step      time.Duration // coarse sampling interval used to bracket a crossing
	Tolerance time.Duration // bisection stops once the bracket is this narrow
}

// DefaultSearch samples every 30 minutes and refines to 30 seconds.
func DefaultSearch(target float64, dir Direction) Search {
	return Search{
		Target:    target,
		Direction: dir,
		Step:      30 * time.Minute,
		Tolerance: 30 * time.Second,
	}
}

// FindCrossing returns the first time in [start, end] at which f crosses
// s.Target in s.Direction. It samples at s.Step to find a bracket and then
// bisects it. ok is false when no crossing exists in the window.
func FindCrossing(f AltitudeFunc, start, end time.Time, s Search) (at time.Time, ok bool) {
	if !start.Before(end) {
		return time.Time{}, false
	}
	if s.Step <= 0 {
		s.Step = 30 * time.Minute
	}
	if s.Tolerance <= 0 {
		s.Tolerance = time.Second
	}

	prevT := start
	prev := f(prevT) - s.Target

	for {
		t := prevT.Add(s.Step)
		if t.After(end) {
			t = end
		}
		cur := f(t) - s.Target

		if crosses(prev, cur, s.Direction) {
			return bisect(f, prevT, t, prev, s), true
		}
		if !t.Before(end) {
			return time.Time{}, false
		}
		prevT, prev = t, cur
	}
}

func crosses(a, b float64, dir Direction) bool {
	if dir == Setting {
		return a > 0 && b <= 0
	}
	return a < 0 && b >= 0
}

func bisect(f AltitudeFunc, a, b time.Time, altA float64, s Search) time.Time {
	for b.Sub(a) > s.Tolerance {
		mid := a.Add(b.Sub(a) / 2)
		altM := f(mid) - s.Target

		if crosses(altA, altM, s.Direction) {
			b = mid
		} else {
			a, altA = mid, altM
		}
	}
	return a.Add(b.Sub(a) / 2)
}
