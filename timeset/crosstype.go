package timeset

import (
	"time"

	"github.com/grailbio/tgeo/period"
)

// Value is anything that can be viewed as a sorted sequence of disjoint
// periods: a Timestamp behaves as [t,t], and every other time-domain type
// is already such a sequence once a singleton timestamp collapses to a
// degenerate period and an empty set collapses to zero periods.
// Timestamp, TimestampSet, and PeriodSet implement it, and WrapPeriod
// adapts a period.Period to it, which is what lets the 16 {Timestamp,TimestampSet,Period,PeriodSet}²
// relation/set-algebra signatures share one implementation instead of 16
// hand-written ones.
type Value interface {
	toPeriodSet() PeriodSet
}

// Timestamp is a single instant, viewed as the degenerate period [t,t]
// for the purposes of every relation and set operation in this package.
type Timestamp time.Time

func (t Timestamp) toPeriodSet() PeriodSet {
	return newNormalizedPeriodSet([]period.Period{period.Instant(time.Time(t))})
}

// periodValue adapts period.Period to Value without requiring period.Period
// itself to import this package (avoiding an import cycle); call sites use
// WrapPeriod(p) to get a Value.
type periodValue struct{ p period.Period }

func (v periodValue) toPeriodSet() PeriodSet {
	return newNormalizedPeriodSet([]period.Period{v.p})
}

// WrapPeriod adapts a period.Period into a Value.
func WrapPeriod(p period.Period) Value { return periodValue{p} }

func (s TimestampSet) toPeriodSet() PeriodSet {
	ps, err := TimestampSetToPeriodSet(s)
	if err != nil {
		panic(err) // s is non-empty by construction.
	}
	return ps
}

func (s PeriodSet) toPeriodSet() PeriodSet { return s }

// Contains reports whether b is entirely contained within a, across any
// combination of Timestamp/TimestampSet/Period/PeriodSet.
func Contains(a, b Value) bool {
	return a.toPeriodSet().Contains(b.toPeriodSet())
}

// Overlaps reports whether a and b share at least one point.
func Overlaps(a, b Value) bool {
	return a.toPeriodSet().Overlaps(b.toPeriodSet())
}

// Before reports whether a lies entirely before b.
func Before(a, b Value) bool {
	return a.toPeriodSet().Before(b.toPeriodSet())
}

// After reports whether a lies entirely after b.
func After(a, b Value) bool {
	return a.toPeriodSet().After(b.toPeriodSet())
}

// OverBefore reports whether a overlaps b and does not extend past it.
func OverBefore(a, b Value) bool {
	return a.toPeriodSet().OverBefore(b.toPeriodSet())
}

// OverAfter reports whether a overlaps b and does not start before it.
func OverAfter(a, b Value) bool {
	return a.toPeriodSet().OverAfter(b.toPeriodSet())
}

// Adjacent reports whether a and b touch at exactly one point without
// overlapping.
func Adjacent(a, b Value) bool {
	return a.toPeriodSet().Adjacent(b.toPeriodSet())
}

// Union returns the union of a and b as a PeriodSet. Callers that know
// both operands are TimestampSets and want a TimestampSet result should
// call TimestampSet.Union directly instead.
func Union(a, b Value) (PeriodSet, error) {
	return a.toPeriodSet().Union(b.toPeriodSet())
}

// Intersection returns the intersection of a and b as a PeriodSet, or
// false if they do not overlap.
func Intersection(a, b Value) (PeriodSet, bool) {
	return a.toPeriodSet().Intersection(b.toPeriodSet())
}

// Difference returns a minus b as a PeriodSet, or false if the result is
// empty.
func Difference(a, b Value) (PeriodSet, bool) {
	return a.toPeriodSet().Difference(b.toPeriodSet())
}
