package temporal

import (
	"time"

	"github.com/grailbio/tgeo/basevalue"
	"github.com/grailbio/tgeo/errs"
	"github.com/grailbio/tgeo/period"
)

// TSequenceSet is an ordered sequence of non-overlapping TSequences
// sharing the same interpolation.
type TSequenceSet struct {
	Tag       basevalue.Tag
	Interp    Interpolation
	sequences []TSequence
	span      period.Period
}

// NewTSequenceSet builds a TSequenceSet, enforcing that every sequence
// shares Tag and Interp, that sequences are given in ascending,
// non-overlapping order, and that adjacent sequences either don't touch
// or touch with not both bounds inclusive.
func NewTSequenceSet(tag basevalue.Tag, interp Interpolation, seqs []TSequence) (TSequenceSet, error) {
	if len(seqs) == 0 {
		return TSequenceSet{}, errs.NewDomainError("temporal: TSequenceSet requires at least one sequence")
	}
	cp := make([]TSequence, len(seqs))
	copy(cp, seqs)
	for i, s := range cp {
		if s.Tag != tag {
			return TSequenceSet{}, errs.NewDomainError("temporal: TSequenceSet base type mismatch at sequence %d", i)
		}
		if s.Interp != interp {
			return TSequenceSet{}, errs.NewDomainError("temporal: TSequenceSet interpolation mismatch at sequence %d", i)
		}
		if i > 0 {
			prev := cp[i-1]
			if !prev.span.Before(s.span) && !prev.span.Adjacent(s.span) {
				return TSequenceSet{}, errs.NewDomainError("temporal: TSequenceSet sequences %d and %d are not disjoint", i-1, i)
			}
			if prev.span.Upper.Equal(s.span.Lower) && prev.span.UpperInc && s.span.LowerInc {
				return TSequenceSet{}, errs.NewDomainError("temporal: TSequenceSet sequences %d and %d share an inclusive boundary instant", i-1, i)
			}
		}
	}
	span := period.Period{
		Lower: cp[0].span.Lower, LowerInc: cp[0].span.LowerInc,
		Upper: cp[len(cp)-1].span.Upper, UpperInc: cp[len(cp)-1].span.UpperInc,
	}
	return TSequenceSet{Tag: tag, Interp: interp, sequences: cp, span: span}, nil
}

// N returns the number of component sequences.
func (s TSequenceSet) N() int { return len(s.sequences) }

// SequenceAt returns the i-th component sequence.
func (s TSequenceSet) SequenceAt(i int) TSequence { return s.sequences[i] }

// Sequences returns a defensive copy of the component sequences.
func (s TSequenceSet) Sequences() []TSequence {
	out := make([]TSequence, len(s.sequences))
	copy(out, s.sequences)
	return out
}

// Span returns the cached bounding period (the union of child spans).
func (s TSequenceSet) Span() period.Period { return s.span }

// At returns the value of s at t, and false if t is not covered by any
// component sequence.
func (s TSequenceSet) At(t time.Time) (basevalue.Value, bool, error) {
	for _, seq := range s.sequences {
		if seq.span.ContainsTime(t) {
			return seq.At(t)
		}
	}
	return basevalue.Value{}, false, nil
}
