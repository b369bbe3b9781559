package temporal

import (
	"time"

	"github.com/grailbio/tgeo/basevalue"
	"github.com/grailbio/tgeo/errs"
	"github.com/grailbio/tgeo/period"
)

// TSequence is a contiguous, strictly-time-increasing array of TInstant
// sharing one base type and interpolation, plus a cached bounding Period.
type TSequence struct {
	Tag     basevalue.Tag
	Interp  Interpolation
	instants []TInstant
	span    period.Period
}

// NewTSequence builds a TSequence, enforcing: at least one instant,
// strictly increasing times, Linear requires an interpolable base type,
// and Discrete sequences always have both span bounds inclusive.
func NewTSequence(tag basevalue.Tag, interp Interpolation, instants []TInstant, lowerInc, upperInc bool) (TSequence, error) {
	if len(instants) == 0 {
		return TSequence{}, errs.NewDomainError("temporal: TSequence requires at least one instant")
	}
	for i := 1; i < len(instants); i++ {
		if !instants[i-1].T.Before(instants[i].T) {
			return TSequence{}, errs.NewDomainError("temporal: TSequence instants must be strictly increasing in time")
		}
	}
	if interp == Linear {
		cap, err := basevalue.CapabilitiesFor(tag)
		if err != nil {
			return TSequence{}, err
		}
		if !cap.Interpolable {
			return TSequence{}, errs.NewUnsupportedError("temporal.NewTSequence", "base type %s does not support Linear interpolation", tag)
		}
	}
	if interp == Discrete {
		lowerInc, upperInc = true, true
	}
	cp := make([]TInstant, len(instants))
	copy(cp, instants)

	var span period.Period
	var err error
	if len(cp) == 1 {
		span = period.Instant(cp[0].T)
	} else {
		span, err = period.New(cp[0].T, cp[len(cp)-1].T, lowerInc, upperInc)
		if err != nil {
			return TSequence{}, err
		}
	}
	return TSequence{Tag: tag, Interp: interp, instants: cp, span: span}, nil
}

// N returns the number of instants.
func (s TSequence) N() int { return len(s.instants) }

// InstantAt returns the i-th instant.
func (s TSequence) InstantAt(i int) TInstant { return s.instants[i] }

// Span returns the cached bounding period.
func (s TSequence) Span() period.Period { return s.span }

// Instants returns a defensive copy of the sequence's instants.
func (s TSequence) Instants() []TInstant {
	out := make([]TInstant, len(s.instants))
	copy(out, s.instants)
	return out
}

// findSegment returns the index i such that t falls within
// [instants[i].T, instants[i+1].T), or len(instants)-1 if t is at or
// after the last instant; and ok=false if t precedes the first instant.
func (s TSequence) findSegment(t time.Time) (i int, ok bool) {
	if t.Before(s.instants[0].T) {
		return 0, false
	}
	// Linear scan is fine here; TSequence lengths in this domain are not
	// large enough to warrant a binary search. Synchronize (and so
	// lifting.Lift2) calls At() once per resampled time, so each of those
	// calls pays for this scan.
	for i = 0; i < len(s.instants)-1; i++ {
		if t.Before(s.instants[i+1].T) {
			return i, true
		}
	}
	return len(s.instants) - 1, true
}

// At returns the value of s at t, per the sequence's interpolation mode,
// and false if t is outside the sequence's span.
func (s TSequence) At(t time.Time) (basevalue.Value, bool, error) {
	if !s.span.ContainsTime(t) {
		return basevalue.Value{}, false, nil
	}
	i, ok := s.findSegment(t)
	if !ok {
		return basevalue.Value{}, false, nil
	}
	cur := s.instants[i]
	if cur.T.Equal(t) {
		return cur.Value, true, nil
	}
	switch s.Interp {
	case Discrete:
		return basevalue.Value{}, false, nil
	case Step:
		return cur.Value, true, nil
	case Linear:
		if i+1 >= len(s.instants) {
			return cur.Value, true, nil
		}
		next := s.instants[i+1]
		total := next.T.Sub(cur.T)
		if total <= 0 {
			return cur.Value, true, nil
		}
		r := float64(t.Sub(cur.T)) / float64(total)
		cap, err := basevalue.CapabilitiesFor(s.Tag)
		if err != nil {
			return basevalue.Value{}, false, err
		}
		v, err := cap.Interpolate(cur.Value, next.Value, r)
		if err != nil {
			return basevalue.Value{}, false, err
		}
		return v, true, nil
	default:
		return basevalue.Value{}, false, errs.NewInternalError("temporal: unknown interpolation %v", s.Interp)
	}
}

// WithInstant returns a copy of s with an additional instant inserted at
// its sorted position; if a value already exists at that exact time, it
// is replaced. This is the turning-point insertion primitive §4.4's
// SyncCrossings mode needs.
func (s TSequence) WithInstant(inst TInstant) (TSequence, error) {
	instants := s.Instants()
	i, ok := s.findSegment(inst.T)
	switch {
	case !ok:
		instants = append([]TInstant{inst}, instants...)
	default:
		if instants[i].T.Equal(inst.T) {
			instants[i] = inst
		} else {
			out := make([]TInstant, 0, len(instants)+1)
			out = append(out, instants[:i+1]...)
			out = append(out, inst)
			out = append(out, instants[i+1:]...)
			instants = out
		}
	}
	return NewTSequence(s.Tag, s.Interp, instants, s.span.LowerInc, s.span.UpperInc)
}
