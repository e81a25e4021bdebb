package sundir

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"
)

// MaxTrackSamples caps the number of positions a single Track call computes.
const MaxTrackSamples = 10000

var (
	// ErrInvalidWindow is returned when a time window is empty or a step is
	// not positive.
	ErrInvalidWindow = errors.New("invalid time window")

	// ErrTooManySamples is returned when a Track request exceeds MaxTrackSamples.
	ErrTooManySamples = errors.New("too many samples requested")
)

// Sample is one position in a track.
type Sample = Position

// TrackSamples returns how many samples Track would compute for the window,
// or an error if the window is invalid.
func TrackSamples(start, end time.Time, step time.Duration) (int, error) {
	if step <= 0 {
		return 0, fmt.Errorf("%w: step must be positive, got %s", ErrInvalidWindow, step)
	}
	if end.Before(start) {
		return 0, fmt.Errorf("%w: end %s before start %s", ErrInvalidWindow,
			end.Format(time.RFC3339), start.Format(time.RFC3339))
	}
	// Compare before adding the start sample; end.Sub saturates on very wide
	// windows and q+1 could wrap.
	q := end.Sub(start) / step
	if q >= MaxTrackSamples {
		return 0, fmt.Errorf("%w: more than %d", ErrTooManySamples, MaxTrackSamples)
	}
	return int(q) + 1, nil
}

// Track computes the Sun's position at start, start+step, ... up to and
// including end (when end falls on a step). Samples are computed in parallel
// and returned in time order.
func Track(ctx context.Context, loc Coordinates, start, end time.Time, step time.Duration, opts Options) ([]Sample, error) {
	if err := loc.Validate(); err != nil {
		return nil, err
	}
	n, err := TrackSamples(start, end, step)
	if err != nil {
		return nil, err
	}

	samples := make([]Sample, n)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i := range samples {
		if gctx.Err() != nil {
			break
		}
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			p, err := SunPositionWith(loc, start.Add(time.Duration(i)*step), opts)
			if err != nil {
				return err
			}
			samples[i] = p
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	// The loop may have stopped early on a cancelled parent without any
	// goroutine observing it.
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return samples, nil
}
