package temporal

import (
	"sort"
	"time"

	"github.com/grailbio/tgeo/errs"
)

// SyncMode selects how Synchronize aligns two sequences onto a common
// time domain.
type SyncMode uint8

const (
	// SyncIntersection restricts both sides to the intersection of their
	// spans, resampling each side only at its own instants within the
	// overlap plus the overlap's two boundary instants.
	SyncIntersection SyncMode = iota
	// SyncNoCrossings synchronizes onto the union of both sides' instant
	// times (restricted to the overlap), interpolating each side at
	// instants only the other side has.
	SyncNoCrossings
	// SyncCrossings is SyncNoCrossings plus turning-point insertion via a
	// caller-supplied CrossingFinder.
	SyncCrossings
)

// CrossingFinder computes the instants within (t0,t1) (exclusive of the
// endpoints, which are already shared after SyncNoCrossings) at which a
// lifted predicate or distance crosses a threshold, given the two
// segments' endpoint values. It returns them in ascending order. nil is
// a valid CrossingFinder that finds no crossings.
type CrossingFinder func(t0, t1 time.Time, a0, a1, b0, b1 TInstant) ([]time.Time, error)

// Synchronize aligns ta and tb onto the same time domain per mode,
// returning the two re-sampled sequences. Package lifting's Lift2 and
// package relate's TDWithin both go through it.
func Synchronize(ta, tb TSequence, mode SyncMode, find CrossingFinder) (TSequence, TSequence, error) {
	inter, ok := ta.span.Intersection(tb.span)
	if !ok {
		return TSequence{}, TSequence{}, errs.NewDomainError("temporal.Synchronize: sequences do not overlap in time")
	}

	resample := func(s TSequence, times []time.Time) (TSequence, error) {
		instants := make([]TInstant, 0, len(times))
		for _, t := range times {
			v, ok, err := s.At(t)
			if err != nil {
				return TSequence{}, err
			}
			if !ok {
				continue
			}
			instants = append(instants, NewTInstant(v, t))
		}
		return NewTSequence(s.Tag, s.Interp, instants, inter.LowerInc, inter.UpperInc)
	}

	if mode == SyncIntersection {
		// A true intersection-only sync must not interpolate either side
		// onto the other side's instant times: each side resamples only
		// at its own instants within the overlap, plus the shared window
		// boundaries.
		ownTimes := func(s TSequence) []time.Time {
			set := map[int64]time.Time{
				inter.Lower.UnixNano(): inter.Lower,
				inter.Upper.UnixNano(): inter.Upper,
			}
			for i := 0; i < s.N(); i++ {
				t := s.InstantAt(i).T
				if inter.ContainsTime(t) {
					set[t.UnixNano()] = t
				}
			}
			sorted := make([]time.Time, 0, len(set))
			for _, t := range set {
				sorted = append(sorted, t)
			}
			sort.Slice(sorted, func(i, j int) bool { return sorted[i].Before(sorted[j]) })
			return sorted
		}
		sa, err := resample(ta, ownTimes(ta))
		if err != nil {
			return TSequence{}, TSequence{}, err
		}
		sb, err := resample(tb, ownTimes(tb))
		if err != nil {
			return TSequence{}, TSequence{}, err
		}
		return sa, sb, nil
	}

	// SyncNoCrossings and SyncCrossings both synchronize onto the union of
	// both sides' instant times, interpolating each side at instants only
	// the other side has.
	times := map[int64]time.Time{
		inter.Lower.UnixNano(): inter.Lower,
		inter.Upper.UnixNano(): inter.Upper,
	}
	addSide := func(s TSequence) {
		for i := 0; i < s.N(); i++ {
			t := s.InstantAt(i).T
			if inter.ContainsTime(t) {
				times[t.UnixNano()] = t
			}
		}
	}
	addSide(ta)
	addSide(tb)

	sorted := make([]time.Time, 0, len(times))
	for _, t := range times {
		sorted = append(sorted, t)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Before(sorted[j]) })

	sa, err := resample(ta, sorted)
	if err != nil {
		return TSequence{}, TSequence{}, err
	}
	sb, err := resample(tb, sorted)
	if err != nil {
		return TSequence{}, TSequence{}, err
	}

	if mode != SyncCrossings || find == nil {
		return sa, sb, nil
	}

	// Insert turning points: for every overlapping pair of linear
	// segments on both (now-synchronized) sides, ask find() for crossing
	// instants and insert them on both sides.
	for i := 0; i+1 < sa.N(); i++ {
		a0, a1 := sa.InstantAt(i), sa.InstantAt(i+1)
		b0, b1 := sb.InstantAt(i), sb.InstantAt(i+1)
		crossings, err := find(a0.T, a1.T, a0, a1, b0, b1)
		if err != nil {
			return TSequence{}, TSequence{}, err
		}
		for _, t := range crossings {
			if !t.After(a0.T) || !t.Before(a1.T) {
				continue
			}
			va, _, err := sa.At(t)
			if err != nil {
				return TSequence{}, TSequence{}, err
			}
			vb, _, err := sb.At(t)
			if err != nil {
				return TSequence{}, TSequence{}, err
			}
			sa, err = sa.WithInstant(NewTInstant(va, t))
			if err != nil {
				return TSequence{}, TSequence{}, err
			}
			sb, err = sb.WithInstant(NewTInstant(vb, t))
			if err != nil {
				return TSequence{}, TSequence{}, err
			}
			i++ // re-index past the newly inserted instant on the next loop iteration.
		}
	}
	return sa, sb, nil
}
