package sundir_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/thurmanmarka/sundir"
)

func TestTrack(t *testing.T) {
	start := time.Date(2020, time.June, 21, 0, 0, 0, 0, time.UTC)
	end := start.Add(24 * time.Hour)

	samples, err := sundir.Track(context.Background(), denver, start, end, 10*time.Minute, sundir.Options{})
	if err != nil {
		t.Fatalf("Track() error = %v", err)
	}

	if len(samples) != 145 {
		t.Fatalf("len(samples) = %d, want 145", len(samples))
	}

	for i, s := range samples {
		want := start.Add(time.Duration(i) * 10 * time.Minute)
		if !s.Time.Equal(want) {
			t.Fatalf("sample %d at %s, want %s", i, s.Time.Format(time.RFC3339), want.Format(time.RFC3339))
		}
		p, _ := sundir.SunPosition(denver, want)
		if p != s {
			t.Fatalf("sample %d differs from SunPosition at the same instant", i)
		}
	}

	if !samples[len(samples)-1].Time.Equal(end) {
		t.Errorf("last sample at %s, want end %s", samples[len(samples)-1].Time, end)
	}
}

func TestTrackErrors(t *testing.T) {
	start := time.Date(2020, time.June, 21, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		loc  sundir.Coordinates
		end  time.Time
		step time.Duration
		want error
	}{
		{"zero step", denver, start.Add(time.Hour), 0, sundir.ErrInvalidWindow},
		{"end before start", denver, start.Add(-time.Hour), time.Minute, sundir.ErrInvalidWindow},
		{"too many samples", denver, start.Add(30 * 24 * time.Hour), time.Minute, sundir.ErrTooManySamples},
		{"invalid latitude", sundir.Coordinates{Lat: 95}, start.Add(time.Hour), time.Minute, sundir.ErrInvalidLatitude},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := sundir.Track(context.Background(), tt.loc, start, tt.end, tt.step, sundir.Options{})
			if !errors.Is(err, tt.want) {
				t.Errorf("Track() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestTrackSamples(t *testing.T) {
	start := time.Date(2020, time.June, 21, 0, 0, 0, 0, time.UTC)

	n, err := sundir.TrackSamples(start, start.Add((sundir.MaxTrackSamples-1)*time.Second), time.Second)
	if err != nil || n != sundir.MaxTrackSamples {
		t.Errorf("at the limit: n = %d, err = %v; want %d, nil", n, err, sundir.MaxTrackSamples)
	}
	if _, err := sundir.TrackSamples(start, start.Add(sundir.MaxTrackSamples*time.Second), time.Second); !errors.Is(err, sundir.ErrTooManySamples) {
		t.Errorf("one over the limit: err = %v, want ErrTooManySamples", err)
	}

	// end.Sub saturates for windows this wide.
	first := time.Date(1, time.January, 1, 0, 0, 0, 0, time.UTC)
	last := time.Date(9999, time.January, 1, 0, 0, 0, 0, time.UTC)
	if n, err := sundir.TrackSamples(first, last, time.Nanosecond); !errors.Is(err, sundir.ErrTooManySamples) {
		t.Errorf("saturated window: n = %d, err = %v; want ErrTooManySamples", n, err)
	}
	if _, err := sundir.Track(context.Background(), denver, first, last, time.Nanosecond, sundir.Options{}); !errors.Is(err, sundir.ErrTooManySamples) {
		t.Errorf("Track over saturated window: err = %v, want ErrTooManySamples", err)
	}
}

func TestTrackSingleSample(t *testing.T) {
	at := time.Date(2020, time.June, 21, 0, 0, 0, 0, time.UTC)

	samples, err := sundir.Track(context.Background(), denver, at, at, time.Minute, sundir.Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(samples) != 1 || !samples[0].Time.Equal(at) {
		t.Errorf("got %d samples, want exactly one at start", len(samples))
	}
}

func TestTrackCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Date(2020, time.June, 21, 0, 0, 0, 0, time.UTC)
	_, err := sundir.Track(ctx, denver, start, start.Add(24*time.Hour), time.Minute, sundir.Options{})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Track() error = %v, want context.Canceled", err)
	}
}
