// Package timeset implements TimestampSet and PeriodSet: the ordered,
// duplicate-free/normalized collections built on top of package period,
// and the full cross-type relation and set-algebra matrix between
// Timestamp, TimestampSet, Period, and PeriodSet.
//
// Grounded on interval/bedunion.go's BEDUnion: a packed, sorted array
// representation with binary-search lookup and sequential-query caching,
// generalized here from genomic [start,end) pairs to period.Period
// values with explicit bound inclusivity.
package timeset

import (
	"sort"
	"time"

	"github.com/grailbio/tgeo/errs"
	"github.com/grailbio/tgeo/period"
	"github.com/pkg/errors"
)

// TimestampSet is an ordered, duplicate-free, finite sequence of
// timestamps, plus a cached bounding Period.
type TimestampSet struct {
	times []time.Time
	span  period.Period
}

// NewTimestampSet builds a TimestampSet from an arbitrary (possibly
// unordered, possibly duplicated) slice of timestamps.
func NewTimestampSet(times []time.Time) (TimestampSet, error) {
	if len(times) == 0 {
		return TimestampSet{}, errs.NewDomainError("timeset: TimestampSet requires at least one timestamp")
	}
	cp := make([]time.Time, len(times))
	copy(cp, times)
	sort.Slice(cp, func(i, j int) bool { return cp[i].Before(cp[j]) })
	out := cp[:1]
	for _, t := range cp[1:] {
		if !t.Equal(out[len(out)-1]) {
			out = append(out, t)
		}
	}
	span := period.MustNew(out[0], out[len(out)-1], true, true)
	return TimestampSet{times: out, span: span}, nil
}

// N returns the number of timestamps in the set.
func (s TimestampSet) N() int { return len(s.times) }

// TimeAt returns the i-th timestamp in ascending order.
func (s TimestampSet) TimeAt(i int) time.Time { return s.times[i] }

// Span returns the cached bounding Period [t0, tn-1].
func (s TimestampSet) Span() period.Period { return s.span }

// Times returns a defensive copy of the set's timestamps in order.
func (s TimestampSet) Times() []time.Time {
	out := make([]time.Time, len(s.times))
	copy(out, s.times)
	return out
}

// search returns the index of t in s, or the insertion point and false.
func (s TimestampSet) search(t time.Time) (int, bool) {
	i := sort.Search(len(s.times), func(i int) bool { return !s.times[i].Before(t) })
	if i < len(s.times) && s.times[i].Equal(t) {
		return i, true
	}
	return i, false
}

// ContainsTime reports whether t is a member of s.
func (s TimestampSet) ContainsTime(t time.Time) bool {
	_, ok := s.search(t)
	return ok
}

// Contains reports whether every timestamp in o is also in s.
func (s TimestampSet) Contains(o TimestampSet) bool {
	for _, t := range o.times {
		if !s.ContainsTime(t) {
			return false
		}
	}
	return true
}

// Union returns the sorted, deduplicated union of s and o.
func (s TimestampSet) Union(o TimestampSet) (TimestampSet, error) {
	merged := make([]time.Time, 0, len(s.times)+len(o.times))
	i, j := 0, 0
	for i < len(s.times) && j < len(o.times) {
		switch {
		case s.times[i].Before(o.times[j]):
			merged = append(merged, s.times[i])
			i++
		case o.times[j].Before(s.times[i]):
			merged = append(merged, o.times[j])
			j++
		default:
			merged = append(merged, s.times[i])
			i++
			j++
		}
	}
	merged = append(merged, s.times[i:]...)
	merged = append(merged, o.times[j:]...)
	return NewTimestampSet(merged)
}

// Intersection returns the timestamps common to both s and o, or false if
// there are none.
func (s TimestampSet) Intersection(o TimestampSet) (TimestampSet, bool) {
	var out []time.Time
	i, j := 0, 0
	for i < len(s.times) && j < len(o.times) {
		switch {
		case s.times[i].Before(o.times[j]):
			i++
		case o.times[j].Before(s.times[i]):
			j++
		default:
			out = append(out, s.times[i])
			i++
			j++
		}
	}
	if len(out) == 0 {
		return TimestampSet{}, false
	}
	ts, err := NewTimestampSet(out)
	if err != nil {
		panic(errors.Wrap(err, "timeset: Intersection produced an invalid set"))
	}
	return ts, true
}

// Difference returns s minus o, or false if the result is empty.
func (s TimestampSet) Difference(o TimestampSet) (TimestampSet, bool) {
	var out []time.Time
	for _, t := range s.times {
		if !o.ContainsTime(t) {
			out = append(out, t)
		}
	}
	if len(out) == 0 {
		return TimestampSet{}, false
	}
	ts, err := NewTimestampSet(out)
	if err != nil {
		panic(errors.Wrap(err, "timeset: Difference produced an invalid set"))
	}
	return ts, true
}

// Eq reports whether s and o contain exactly the same timestamps.
func (s TimestampSet) Eq(o TimestampSet) bool {
	if len(s.times) != len(o.times) {
		return false
	}
	for i := range s.times {
		if !s.times[i].Equal(o.times[i]) {
			return false
		}
	}
	return true
}
