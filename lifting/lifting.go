// Package lifting implements the generic drivers that lift ordinary
// pointwise functions into the temporal-value domain: lift1 maps a
// pointwise function over a single temporal value, lift2
// synchronizes two temporal values and zips a pointwise binary function
// over them, and both automatically switch to crossing-aware
// synchronization when the function is flagged discontinuous.
package lifting

import (
	"github.com/grailbio/tgeo/basevalue"
	"github.com/grailbio/tgeo/temporal"
)

// Func1 is a pointwise unary base-type function B -> C.
type Func1 struct {
	// ResultTag is the base type the function produces.
	ResultTag basevalue.Tag
	Apply     func(a basevalue.Value) (basevalue.Value, error)
}

// Func2 is a pointwise binary base-type function (B,B) -> C. Discontinuous
// marks functions whose result can change value strictly between two
// linear-segment endpoints (inequality comparisons, dwithin, and the
// other predicates package relate lifts): lift2 automatically switches to
// SyncCrossings for these so the result is a lossless piecewise-constant
// step sequence.
type Func2 struct {
	ResultTag    basevalue.Tag
	Discontinuous bool
	Apply        func(a, b basevalue.Value) (basevalue.Value, error)
}

// Lift1 maps f over every instant of ta, preserving ta's interpolation
// iff f's result type admits it.
func Lift1(ta temporal.TSequence, f Func1) (temporal.TSequence, error) {
	cap, err := basevalue.CapabilitiesFor(f.ResultTag)
	if err != nil {
		return temporal.TSequence{}, err
	}
	interp := ta.Interp
	if interp == temporal.Linear && !cap.Interpolable {
		interp = temporal.Step
	}
	instants := make([]temporal.TInstant, ta.N())
	for i := 0; i < ta.N(); i++ {
		in := ta.InstantAt(i)
		v, err := f.Apply(in.Value)
		if err != nil {
			return temporal.TSequence{}, err
		}
		instants[i] = temporal.NewTInstant(v, in.T)
	}
	return temporal.NewTSequence(f.ResultTag, interp, instants, ta.Span().LowerInc, ta.Span().UpperInc)
}

// Lift1Set maps Lift1 over every component sequence of a TSequenceSet.
func Lift1Set(ta temporal.TSequenceSet, f Func1) (temporal.TSequenceSet, error) {
	cap, err := basevalue.CapabilitiesFor(f.ResultTag)
	if err != nil {
		return temporal.TSequenceSet{}, err
	}
	interp := ta.Interp
	if interp == temporal.Linear && !cap.Interpolable {
		interp = temporal.Step
	}
	seqs := make([]temporal.TSequence, ta.N())
	for i := 0; i < ta.N(); i++ {
		s, err := Lift1(ta.SequenceAt(i), f)
		if err != nil {
			return temporal.TSequenceSet{}, err
		}
		seqs[i] = s
	}
	return temporal.NewTSequenceSet(f.ResultTag, interp, seqs)
}

// Lift2 synchronizes ta and tb (using SyncCrossings automatically when
// f.Discontinuous, else SyncNoCrossings) and zips f pointwise over the
// aligned instants, producing the result sequence. find is consulted only
// when f.Discontinuous; it may be nil if the caller has no turning-point
// logic for this particular f (the result will then merely be sampled at
// each side's own instants, which is lossy for a discontinuous f but
// still returns a value).
func Lift2(ta, tb temporal.TSequence, f Func2, find temporal.CrossingFinder) (temporal.TSequence, error) {
	mode := temporal.SyncNoCrossings
	if f.Discontinuous {
		mode = temporal.SyncCrossings
	}
	sa, sb, err := temporal.Synchronize(ta, tb, mode, find)
	if err != nil {
		return temporal.TSequence{}, err
	}

	cap, err := basevalue.CapabilitiesFor(f.ResultTag)
	if err != nil {
		return temporal.TSequence{}, err
	}
	interp := temporal.Step
	if !f.Discontinuous && sa.Interp == temporal.Linear && sb.Interp == temporal.Linear && cap.Interpolable {
		interp = temporal.Linear
	}
	if sa.Interp == temporal.Discrete || sb.Interp == temporal.Discrete {
		interp = temporal.Discrete
	}

	instants := make([]temporal.TInstant, sa.N())
	for i := 0; i < sa.N(); i++ {
		av, bv := sa.InstantAt(i), sb.InstantAt(i)
		v, err := f.Apply(av.Value, bv.Value)
		if err != nil {
			return temporal.TSequence{}, err
		}
		instants[i] = temporal.NewTInstant(v, av.T)
	}
	return temporal.NewTSequence(f.ResultTag, interp, instants, sa.Span().LowerInc, sa.Span().UpperInc)
}
