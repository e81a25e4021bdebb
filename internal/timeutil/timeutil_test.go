package timeutil

import (
	"math"
	"testing"
	"time"
)

func TestY2KIsUnix946684800(t *testing.T) {
	if got := Y2K.Unix(); got != 946684800 {
		t.Fatalf("Y2K.Unix() = %d, want 946684800", got)
	}
}

func TestDaysSince(t *testing.T) {
	tests := []struct {
		name string
		t    time.Time
		want float64
	}{
		{"epoch", Y2K, 0},
		{"noon", time.Date(2000, time.January, 1, 12, 0, 0, 0, time.UTC), 0.5},
		{"one day before", time.Date(1999, time.December, 31, 0, 0, 0, 0, time.UTC), -1},
		{"leap year", time.Date(2001, time.January, 1, 0, 0, 0, 0, time.UTC), 366},
		{"non-UTC zone", time.Date(2000, time.January, 1, 7, 0, 0, 0, time.FixedZone("X", 7*3600)), 0},
		{"far future", time.Date(2400, time.January, 1, 0, 0, 0, 0, time.UTC), 146097},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DaysSince(tt.t, Y2K)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("DaysSince() = %.12f, want %.12f", got, tt.want)
			}
		})
	}
}

func TestDecimalUT(t *testing.T) {
	tests := []struct {
		t    time.Time
		want float64
	}{
		{time.Date(2020, 6, 21, 0, 0, 0, 0, time.UTC), 0},
		{time.Date(2020, 6, 21, 12, 30, 0, 0, time.UTC), 12.5},
		{time.Date(2020, 6, 21, 18, 15, 36, 0, time.UTC), 18.26},
		{time.Date(2020, 6, 21, 6, 0, 0, 0, time.FixedZone("MDT", -6*3600)), 12},
	}

	for _, tt := range tests {
		if got := DecimalUT(tt.t); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("DecimalUT(%s) = %.12f, want %.12f", tt.t.Format(time.RFC3339), got, tt.want)
		}
	}
}

func TestNormalize360(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{360, 0},
		{720.5, 0.5},
		{-90, 270},
		{-1e-15, 0},
	}

	for _, tt := range tests {
		got := Normalize360(tt.in)
		if got < 0 || got >= 360 {
			t.Errorf("Normalize360(%g) = %g, outside [0,360)", tt.in, got)
		}
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Normalize360(%g) = %g, want %g", tt.in, got, tt.want)
		}
	}
}

func TestNormalize180(t *testing.T) {
	if got := Normalize180(190); math.Abs(got+170) > 1e-9 {
		t.Errorf("Normalize180(190) = %g, want -170", got)
	}
	if got := Normalize180(-10); math.Abs(got+10) > 1e-9 {
		t.Errorf("Normalize180(-10) = %g, want -10", got)
	}
}

func TestClamp(t *testing.T) {
	if got := Clamp(1+1e-12, -1, 1); got != 1 {
		t.Errorf("Clamp above = %g, want 1", got)
	}
	if got := Clamp(-1-1e-12, -1, 1); got != -1 {
		t.Errorf("Clamp below = %g, want -1", got)
	}
	if got := Clamp(0.25, -1, 1); got != 0.25 {
		t.Errorf("Clamp inside = %g, want 0.25", got)
	}
}
