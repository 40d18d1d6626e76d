package schedule

import (
	"fmt"
	"math"
)

// Resolver answers rate-at-step queries for a fixed schedule. Segment
// boundaries are precomputed once so At is a small scan plus one
// interpolation.
type Resolver struct {
	segments []Segment
	starts   []int64 // global step at which each segment begins
	total    int64
	bounded  bool
}

// NewResolver builds a resolver for a well-formed schedule. Schedules with
// Problems are rejected.
func NewResolver(s Schedule) (*Resolver, error) {
	if problems := s.Problems(); len(problems) > 0 {
		return nil, fmt.Errorf("unusable schedule: %s", problems[0])
	}

	r := &Resolver{
		segments: append([]Segment(nil), s...),
		starts:   make([]int64, len(s)),
		bounded:  s.Bounded(),
	}

	var offset int64
	for i, seg := range r.segments {
		r.starts[i] = offset
		offset += seg.Steps
	}
	r.total = offset

	return r, nil
}

// At returns the learning rate applied at a global step. Steps past the last
// segment's span hold at the final segment's end value; negative steps are
// treated as step 0.
func (r *Resolver) At(step int64) float64 {
	if step < 0 {
		step = 0
	}

	last := len(r.segments) - 1
	for i := last; i >= 0; i-- {
		if step < r.starts[i] {
			continue
		}
		seg := r.segments[i]
		local := step - r.starts[i]
		if i == last && seg.Steps == 0 {
			// Unbounded final segment.
			return seg.InitialLearningRate
		}
		if local >= seg.Steps {
			// Only possible for the last segment: the step is beyond
			// the schedule, so it holds the final value.
			return seg.EndValue()
		}
		return seg.valueAt(local)
	}

	return r.segments[0].InitialLearningRate
}

// TotalSteps returns the combined segment span and whether it is finite.
func (r *Resolver) TotalSteps() (int64, bool) {
	return r.total, r.bounded
}

// Final is the rate held once the schedule is exhausted.
func (r *Resolver) Final() float64 {
	return r.segments[len(r.segments)-1].EndValue()
}

// Segments returns a copy of the schedule backing the resolver.
func (r *Resolver) Segments() Schedule {
	return append(Schedule(nil), r.segments...)
}

// valueAt interpolates within the segment at local step t. The span of N
// steps covers local steps 0..N-1 and the interpolation fraction is
// t/(N-1), so the first step yields exactly the initial rate and the last
// step exactly the end rate. A one-step segment holds its initial rate.
func (seg Segment) valueAt(t int64) float64 {
	switch seg.Scheduler {
	case Linear:
		return seg.InitialLearningRate +
			(seg.EndLearningRate-seg.InitialLearningRate)*fraction(t, seg.Steps)
	case CosineDecay:
		f := fraction(t, seg.Steps)
		return seg.EndLearningRate +
			(seg.InitialLearningRate-seg.EndLearningRate)*0.5*(1+math.Cos(math.Pi*f))
	default:
		return seg.InitialLearningRate
	}
}

func fraction(t, n int64) float64 {
	if n <= 1 {
		return 0
	}
	return float64(t) / float64(n-1)
}
