package main

import (
	"fmt"
	"io"
	"math"
)

// stats accumulates a running min/max/mean of signed errors and the mean and
// max of their magnitudes. NaN inputs are ignored.
type stats struct {
	count  int
	sum    float64
	sumAbs float64
	min    float64
	max    float64
	maxAbs float64
}

func (s *stats) add(v float64) {
	if math.IsNaN(v) {
		return
	}
	if s.count == 0 {
		s.min, s.max = v, v
	} else {
		if v < s.min {
			s.min = v
		}
		if v > s.max {
			s.max = v
		}
	}
	s.sum += v
	s.sumAbs += math.Abs(v)
	s.maxAbs = math.Max(s.maxAbs, math.Abs(v))
	s.count++
}

func (s *stats) mean() float64 {
	if s.count == 0 {
		return math.NaN()
	}
	return s.sum / float64(s.count)
}

func (s *stats) meanAbs() float64 {
	if s.count == 0 {
		return math.NaN()
	}
	return s.sumAbs / float64(s.count)
}

func (s *stats) print(w io.Writer, title string) {
	fmt.Fprintf(w, "\n%s (degrees, model - ref):\n", title)
	fmt.Fprintf(w, "  count:    %d\n", s.count)
	if s.count == 0 {
		return
	}
	fmt.Fprintf(w, "  min:      %.4f\n", s.min)
	fmt.Fprintf(w, "  max:      %.4f\n", s.max)
	fmt.Fprintf(w, "  mean:     %.4f\n", s.mean())
	fmt.Fprintf(w, "  mean|Δ|:  %.4f\n", s.meanAbs())
	fmt.Fprintf(w, "  max|Δ|:   %.4f\n", s.maxAbs)
}
