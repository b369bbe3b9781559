package timeset

import (
	"sort"
	"time"

	"github.com/grailbio/tgeo/errs"
	"github.com/grailbio/tgeo/period"
)

// PeriodSet is an ordered, normalized, disjoint sequence of Periods, plus
// a cached bounding Period. "Normalized" means: no two periods overlap,
// and no two adjacent periods are adjacent-mergeable.
type PeriodSet struct {
	periods []period.Period
	span    period.Period
}

// Normalize sorts and merges an arbitrary slice of (possibly overlapping
// or adjacent) periods into ascending, disjoint, non-adjacent order.
// NewPeriodSet normalizes its input through it; being exported, it also
// normalizes a plain period list without building a PeriodSet.
func Normalize(in []period.Period) []period.Period {
	if len(in) == 0 {
		return nil
	}
	cp := make([]period.Period, len(in))
	copy(cp, in)
	sort.Slice(cp, func(i, j int) bool {
		return period.CmpBounds(cp[i].Lower, cp[j].Lower, true, true, cp[i].LowerInc, cp[j].LowerInc) < 0
	})
	out := make([]period.Period, 0, len(cp))
	cur := cp[0]
	for _, p := range cp[1:] {
		// cur.Upper vs p.Lower: do they overlap or touch mergeably?
		cmp := period.CmpBounds(cur.Upper, p.Lower, false, true, cur.UpperInc, p.LowerInc)
		if cmp >= 0 || period.BoundsAdjacent(cur.Upper, p.Lower, cur.UpperInc, p.LowerInc) {
			// Extend cur's upper bound to max(cur.Upper, p.Upper).
			if period.CmpBounds(p.Upper, cur.Upper, false, false, p.UpperInc, cur.UpperInc) > 0 {
				cur.Upper, cur.UpperInc = p.Upper, p.UpperInc
			}
		} else {
			out = append(out, cur)
			cur = p
		}
	}
	out = append(out, cur)
	return out
}

// NewPeriodSet builds a normalized PeriodSet from an arbitrary slice of
// periods.
func NewPeriodSet(periods []period.Period) (PeriodSet, error) {
	norm := Normalize(periods)
	if len(norm) == 0 {
		return PeriodSet{}, errs.NewDomainError("timeset: PeriodSet requires at least one period")
	}
	return newNormalizedPeriodSet(norm), nil
}

// newNormalizedPeriodSet wraps an already-normalized, non-empty period
// slice, computing the cached span from its first and last elements.
//
// This is deliberately the only place period-set span is computed, and it
// requires normalized input: MobilityDB's periodset_timespan_internal has
// a known history of copying the first/last period's inclusivity without
// checking that intermediate periods don't over-widen the span, which is
// only correct for normalized input. Since every PeriodSet in this
// package is built through Normalize or through set operations over
// already-normalized sets, that precondition always holds; see
// DESIGN.md's "Open Questions resolved".
func newNormalizedPeriodSet(norm []period.Period) PeriodSet {
	span := period.Period{
		Lower: norm[0].Lower, LowerInc: norm[0].LowerInc,
		Upper: norm[len(norm)-1].Upper, UpperInc: norm[len(norm)-1].UpperInc,
	}
	return PeriodSet{periods: norm, span: span}
}

// N returns the number of disjoint periods in the set.
func (s PeriodSet) N() int { return len(s.periods) }

// PeriodAt returns the i-th period in ascending order.
func (s PeriodSet) PeriodAt(i int) period.Period { return s.periods[i] }

// Span returns the cached bounding period.
func (s PeriodSet) Span() period.Period { return s.span }

// Periods returns a defensive copy of the set's periods in order.
func (s PeriodSet) Periods() []period.Period {
	out := make([]period.Period, len(s.periods))
	copy(out, s.periods)
	return out
}

// findTimestamp returns the index of the period containing t, and true;
// or the index at which a period starting after t would be inserted, and
// false.
func (s PeriodSet) findTimestamp(t time.Time) (int, bool) {
	i := sort.Search(len(s.periods), func(i int) bool {
		return period.CmpBounds(s.periods[i].Upper, t, false, true, s.periods[i].UpperInc, true) >= 0
	})
	if i < len(s.periods) && s.periods[i].ContainsTime(t) {
		return i, true
	}
	return i, false
}

// ContainsTime reports whether t falls within some period of s.
func (s PeriodSet) ContainsTime(t time.Time) bool {
	_, ok := s.findTimestamp(t)
	return ok
}

// ContainsTimestampSet reports whether every timestamp in ts falls within
// s.
func (s PeriodSet) ContainsTimestampSet(ts TimestampSet) bool {
	for i := 0; i < ts.N(); i++ {
		if !s.ContainsTime(ts.TimeAt(i)) {
			return false
		}
	}
	return true
}

// Contains reports whether o is entirely contained within s: every
// period of o is contained within some period of s.
func (s PeriodSet) Contains(o PeriodSet) bool {
	j := 0
	for i := 0; i < len(o.periods); i++ {
		op := o.periods[i]
		found := false
		for ; j < len(s.periods); j++ {
			if s.periods[j].Contains(op) {
				found = true
				break
			}
			if s.periods[j].Before(op) {
				continue
			}
			break
		}
		if !found {
			return false
		}
	}
	return true
}

// Overlaps reports whether s and o share at least one point
// (merge-walk, short-circuiting on the first witnessing pair).
func (s PeriodSet) Overlaps(o PeriodSet) bool {
	i, j := 0, 0
	for i < len(s.periods) && j < len(o.periods) {
		a, b := s.periods[i], o.periods[j]
		if a.Overlaps(b) {
			return true
		}
		if a.Before(b) {
			i++
		} else {
			j++
		}
	}
	return false
}

// Before reports whether s lies entirely before o.
func (s PeriodSet) Before(o PeriodSet) bool {
	return s.span.Before(o.span)
}

// After reports whether s lies entirely after o.
func (s PeriodSet) After(o PeriodSet) bool {
	return o.span.Before(s.span)
}

// OverBefore reports whether s overlaps o and does not extend past o's
// end.
func (s PeriodSet) OverBefore(o PeriodSet) bool {
	return s.Overlaps(o) && !o.span.Before(s.span) && period.CmpBounds(s.span.Upper, o.span.Upper, false, false, s.span.UpperInc, o.span.UpperInc) <= 0
}

// OverAfter reports whether s overlaps o and does not start before o.
func (s PeriodSet) OverAfter(o PeriodSet) bool {
	return s.Overlaps(o) && period.CmpBounds(s.span.Lower, o.span.Lower, true, true, s.span.LowerInc, o.span.LowerInc) >= 0
}

// Adjacent reports whether s and o touch at exactly one point without
// overlapping.
func (s PeriodSet) Adjacent(o PeriodSet) bool {
	if s.Overlaps(o) {
		return false
	}
	return s.span.Adjacent(o.span) || boundaryAdjacent(s, o)
}

// boundaryAdjacent checks adjacency at the level of individual periods,
// not just the outer span, since two period sets can have non-adjacent
// spans while an inner boundary still touches, or have adjacent spans
// while no actual period pair touches (e.g. a gap happens to align).
func boundaryAdjacent(s, o PeriodSet) bool {
	for _, a := range s.periods {
		for _, b := range o.periods {
			if a.Adjacent(b) {
				return true
			}
		}
	}
	return false
}

// Union returns the normalized union of s and o.
func (s PeriodSet) Union(o PeriodSet) (PeriodSet, error) {
	all := make([]period.Period, 0, len(s.periods)+len(o.periods))
	all = append(all, s.periods...)
	all = append(all, o.periods...)
	return NewPeriodSet(all)
}

// Intersection returns the intersection of s and o, or false if they do
// not overlap.
func (s PeriodSet) Intersection(o PeriodSet) (PeriodSet, bool) {
	var out []period.Period
	i, j := 0, 0
	for i < len(s.periods) && j < len(o.periods) {
		a, b := s.periods[i], o.periods[j]
		if inter, ok := a.Intersection(b); ok {
			out = append(out, inter)
		}
		if a.Before(b) {
			i++
		} else if b.Before(a) {
			j++
		} else if period.CmpBounds(a.Upper, b.Upper, false, false, a.UpperInc, b.UpperInc) <= 0 {
			i++
		} else {
			j++
		}
	}
	if len(out) == 0 {
		return PeriodSet{}, false
	}
	return newNormalizedPeriodSet(out), true
}

// Difference returns s minus o, or false if the result is empty.
func (s PeriodSet) Difference(o PeriodSet) (PeriodSet, bool) {
	var out []period.Period
	for _, a := range s.periods {
		cur := a
		valid := true
		for _, b := range o.periods {
			if !cur.Overlaps(b) {
				continue
			}
			// Subtract b from cur, which may split cur into two pieces.
			if period.CmpBounds(cur.Lower, b.Lower, true, true, cur.LowerInc, b.LowerInc) < 0 {
				left, err := period.New(cur.Lower, b.Lower, cur.LowerInc, !b.LowerInc)
				if err == nil {
					out = append(out, left)
				}
			}
			if period.CmpBounds(b.Upper, cur.Upper, false, false, b.UpperInc, cur.UpperInc) < 0 {
				cur, _ = period.New(b.Upper, cur.Upper, !b.UpperInc, cur.UpperInc)
				continue
			}
			valid = false
			break
		}
		if valid {
			out = append(out, cur)
		}
	}
	if len(out) == 0 {
		return PeriodSet{}, false
	}
	ps, err := NewPeriodSet(out)
	if err != nil {
		return PeriodSet{}, false
	}
	return ps, true
}

// Eq reports whether s and o contain exactly the same normalized periods.
func (s PeriodSet) Eq(o PeriodSet) bool {
	if len(s.periods) != len(o.periods) {
		return false
	}
	for i := range s.periods {
		if !s.periods[i].Eq(o.periods[i]) {
			return false
		}
	}
	return true
}

// TimestampSetToPeriodSet views each timestamp of ts as the instantaneous
// period [t,t], producing a PeriodSet.
func TimestampSetToPeriodSet(ts TimestampSet) (PeriodSet, error) {
	periods := make([]period.Period, ts.N())
	for i := 0; i < ts.N(); i++ {
		periods[i] = period.Instant(ts.TimeAt(i))
	}
	return NewPeriodSet(periods)
}
