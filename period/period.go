// Package period implements Period, the half-open time interval with
// explicit bound inclusivity that every other time-domain type in this
// module is built from, and cmp_bounds, the single function that every
// interval relation ultimately delegates to.
package period

import (
	"time"

	"github.com/grailbio/tgeo/errs"
	"github.com/grailbio/tgeo/timeutil"
	"github.com/pkg/errors"
)

// Period is a half-open interval over time.Time with explicit bound
// inclusivity. The zero value is not a valid Period; use New.
type Period struct {
	Lower, Upper         time.Time
	LowerInc, UpperInc bool
}

// New constructs a Period, enforcing its invariants: lower <= upper, and
// an instantaneous period (lower == upper) must have both bounds
// inclusive.
func New(lower, upper time.Time, lowerInc, upperInc bool) (Period, error) {
	if upper.Before(lower) {
		return Period{}, errs.NewDomainError("period: lower %s is after upper %s", timeutil.Format(lower), timeutil.Format(upper))
	}
	if lower.Equal(upper) && !(lowerInc && upperInc) {
		return Period{}, errs.NewDomainError("period: instantaneous period %s must have both bounds inclusive", timeutil.Format(lower))
	}
	return Period{Lower: lower, Upper: upper, LowerInc: lowerInc, UpperInc: upperInc}, nil
}

// MustNew is New but panics on error; for use with literal constants in
// tests and internal callers that have already validated their input.
func MustNew(lower, upper time.Time, lowerInc, upperInc bool) Period {
	p, err := New(lower, upper, lowerInc, upperInc)
	if err != nil {
		panic(err)
	}
	return p
}

// Instant returns the instantaneous period [t, t].
func Instant(t time.Time) Period {
	return Period{Lower: t, Upper: t, LowerInc: true, UpperInc: true}
}

// IsInstant reports whether p spans a single instant.
func (p Period) IsInstant() bool {
	return p.Lower.Equal(p.Upper)
}

// Duration returns p.Upper - p.Lower.
func (p Period) Duration() time.Duration {
	return p.Upper.Sub(p.Lower)
}

// Shift returns p translated by d.
func (p Period) Shift(d time.Duration) Period {
	return Period{
		Lower: p.Lower.Add(d), Upper: p.Upper.Add(d),
		LowerInc: p.LowerInc, UpperInc: p.UpperInc,
	}
}

// Eq reports whether p and q denote the same interval, bound flags
// included.
func (p Period) Eq(q Period) bool {
	return p.Lower.Equal(q.Lower) && p.Upper.Equal(q.Upper) &&
		p.LowerInc == q.LowerInc && p.UpperInc == q.UpperInc
}

// boundKind distinguishes a lower bound from an upper bound for
// cmp_bounds, since the tie-breaking rule differs by which side of an
// interval the endpoint is on.
type boundKind bool

const (
	lowerBound boundKind = true
	upperBound boundKind = false
)

// CmpBounds compares two interval endpoints with full inclusivity
// semantics. It is the sole source of truth for every interval relation
// in this module; no caller should re-derive this policy.
//
// v1, v2 are the endpoint values; isLower1/isLower2 say whether each is a
// lower or an upper bound of its own interval; inc1/inc2 say whether each
// bound is inclusive. The return value is -1, 0, or +1 as in a
// conventional three-way comparator.
//
// Rule for v1 == v2:
//   - both lower bounds: inclusive sorts before exclusive (an interval
//     starting inclusively at v reaches further left than one starting
//     exclusively at v).
//   - both upper bounds: exclusive sorts before inclusive (an interval
//     ending exclusively at v stops short of one ending inclusively at v).
//   - one lower, one upper at the same value: they describe whether two
//     intervals meeting at v overlap, touch, or are adjacent. An
//     upper-inclusive bound and a lower-inclusive bound at the same v
//     are judged equal (they share exactly the point v); in every other
//     combination at least one interval does not reach v, the intervals
//     share no point, and the upper bound sorts strictly before the
//     lower bound.
func CmpBounds(v1, v2 time.Time, isLower1, isLower2 bool, inc1, inc2 bool) int {
	if v1.Before(v2) {
		return -1
	}
	if v2.Before(v1) {
		return 1
	}
	// v1 == v2.
	k1, k2 := boundKind(isLower1), boundKind(isLower2)
	switch {
	case k1 == lowerBound && k2 == lowerBound:
		if inc1 == inc2 {
			return 0
		}
		if inc1 {
			return -1
		}
		return 1
	case k1 == upperBound && k2 == upperBound:
		if inc1 == inc2 {
			return 0
		}
		if inc1 {
			return 1
		}
		return -1
	case k1 == upperBound && k2 == lowerBound:
		// p1 ends at v, p2 starts at v.
		if inc1 && inc2 {
			return 0 // share the point v exactly.
		}
		if !inc1 {
			return -1 // p1 never reaches v; it is entirely before p2.
		}
		// inc1 && !inc2: p1 reaches v inclusively, p2 starts exclusively
		// after v, so p1's upper bound is still before p2's lower bound.
		return -1
	case k1 == lowerBound && k2 == upperBound:
		if inc1 && inc2 {
			return 0
		}
		if !inc2 {
			return 1 // p2 never reaches v; p1's lower bound is after it.
		}
		return 1
	}
	panic("unreachable")
}

// BoundsAdjacent reports whether an upper bound v1 (inclusivity inc1) and
// a lower bound v2 (inclusivity inc2) describe two intervals that touch
// at exactly one point without overlapping: v1 == v2 and exactly one of
// the two bounds is inclusive.
func BoundsAdjacent(v1, v2 time.Time, inc1, inc2 bool) bool {
	return v1.Equal(v2) && (inc1 != inc2)
}

// cmpLower compares the lower bounds of p and q.
func cmpLower(p, q Period) int {
	return CmpBounds(p.Lower, q.Lower, true, true, p.LowerInc, q.LowerInc)
}

// cmpUpper compares the upper bounds of p and q.
func cmpUpper(p, q Period) int {
	return CmpBounds(p.Upper, q.Upper, false, false, p.UpperInc, q.UpperInc)
}

// Before reports whether p lies entirely before q (p's upper bound is
// before q's lower bound, with no shared point).
func (p Period) Before(q Period) bool {
	return CmpBounds(p.Upper, q.Lower, false, true, p.UpperInc, q.LowerInc) < 0
}

// After reports whether p lies entirely after q.
func (p Period) After(q Period) bool {
	return q.Before(p)
}

// Adjacent reports whether p and q touch at exactly one point without
// overlapping, in either order.
func (p Period) Adjacent(q Period) bool {
	return BoundsAdjacent(p.Upper, q.Lower, p.UpperInc, q.LowerInc) ||
		BoundsAdjacent(q.Upper, p.Lower, q.UpperInc, p.LowerInc)
}

// Overlaps reports whether p and q share at least one point.
func (p Period) Overlaps(q Period) bool {
	return CmpBounds(p.Lower, q.Upper, true, false, p.LowerInc, q.UpperInc) <= 0 &&
		CmpBounds(q.Lower, p.Upper, true, false, q.LowerInc, p.UpperInc) <= 0
}

// ContainsTime reports whether t falls within p.
func (p Period) ContainsTime(t time.Time) bool {
	return CmpBounds(p.Lower, t, true, true, p.LowerInc, true) <= 0 &&
		CmpBounds(t, p.Upper, true, false, true, p.UpperInc) <= 0
}

// Contains reports whether q is entirely contained within p.
func (p Period) Contains(q Period) bool {
	return cmpLower(p, q) <= 0 && cmpUpper(q, p) <= 0
}

// OverBefore reports whether p overlaps q and p's upper bound is not
// after q's upper bound (p "ends no later than" q while still sharing a
// point with it).
func (p Period) OverBefore(q Period) bool {
	return p.Overlaps(q) && cmpUpper(p, q) <= 0
}

// OverAfter reports whether p overlaps q and p's lower bound is not
// before q's lower bound.
func (p Period) OverAfter(q Period) bool {
	return p.Overlaps(q) && cmpLower(p, q) >= 0
}

// Union returns the union of p and q as a single Period, valid only when
// p and q overlap or are adjacent; callers that cannot guarantee this
// should go through timeset.PeriodSet instead.
func (p Period) Union(q Period) (Period, error) {
	if !p.Overlaps(q) && !p.Adjacent(q) {
		return Period{}, errors.Errorf("period.Union: %v and %v are neither overlapping nor adjacent", p, q)
	}
	lower, lowerInc := p.Lower, p.LowerInc
	if cmpLower(q, p) < 0 {
		lower, lowerInc = q.Lower, q.LowerInc
	}
	upper, upperInc := p.Upper, p.UpperInc
	if cmpUpper(q, p) > 0 {
		upper, upperInc = q.Upper, q.UpperInc
	}
	return Period{Lower: lower, Upper: upper, LowerInc: lowerInc, UpperInc: upperInc}, nil
}

// Intersection returns the intersection of p and q, and false if they do
// not overlap.
func (p Period) Intersection(q Period) (Period, bool) {
	if !p.Overlaps(q) {
		return Period{}, false
	}
	lower, lowerInc := p.Lower, p.LowerInc
	if cmpLower(q, p) > 0 {
		lower, lowerInc = q.Lower, q.LowerInc
	}
	upper, upperInc := p.Upper, p.UpperInc
	if cmpUpper(q, p) < 0 {
		upper, upperInc = q.Upper, q.UpperInc
	}
	if upper.Before(lower) {
		return Period{}, false
	}
	if lower.Equal(upper) && !(lowerInc && upperInc) {
		return Period{}, false
	}
	return Period{Lower: lower, Upper: upper, LowerInc: lowerInc, UpperInc: upperInc}, true
}

func (p Period) String() string {
	open, close := "(", ")"
	if p.LowerInc {
		open = "["
	}
	if p.UpperInc {
		close = "]"
	}
	return open + timeutil.Format(p.Lower) + ", " + timeutil.Format(p.Upper) + close
}
