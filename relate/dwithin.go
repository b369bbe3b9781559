package relate

import (
	"math"
	"sort"
	"time"

	"github.com/grailbio/tgeo/basevalue"
	"github.com/grailbio/tgeo/cbuffer"
	"github.com/grailbio/tgeo/errs"
	"github.com/grailbio/tgeo/temporal"
)

// solveQuadraticViete returns the real roots of a*x^2+b*x+c=0, computed
// so that catastrophic cancellation in the textbook (-b±√disc)/2a
// formula cannot silently erase the small root: when |b| is close to
// √disc, -b+sign(b)·√disc would subtract two nearly-equal magnitudes;
// instead this forms q = -(b+sign(b)·√disc)/2, which adds magnitudes,
// computes the larger-magnitude root q/a directly and recovers the other
// root from Viète's relation root1*root2 = c/a, i.e. root2 = c/q, which
// carries no cancellation.
func solveQuadraticViete(a, b, c float64) []float64 {
	if a == 0 {
		if b == 0 {
			return nil
		}
		return []float64{-c / b}
	}
	disc := b*b - 4*a*c
	if disc < 0 {
		return nil
	}
	sq := math.Sqrt(disc)
	var q float64
	if b >= 0 {
		q = -0.5 * (b + sq)
	} else {
		q = -0.5 * (b - sq)
	}
	if q == 0 {
		return []float64{0}
	}
	r1 := q / a
	r2 := c / q
	return []float64{r1, r2}
}

// dwithinCrossings finds the parameter values t in (0,1) at which the
// distance between two linearly-moving disk centers, minus the sum of
// their (also linearly-interpolated) radii, crosses the threshold d —
// i.e. where DWithin's truth value flips. c1 moves from a0 to a1, c2
// from b0 to b1, both over the same time window.
//
// Expand |Δcenter(t)| = d + r1(t) + r2(t) by squaring both sides (valid
// since both sides are the boundary of a half-plane split, so the sign
// ambiguity introduced by squaring is resolved by evaluating the
// original predicate on either side of each candidate root):
//
//	Δx(t) = Δx0 + t·δx,  Δy(t) = Δy0 + t·δy,  R(t) = R0 + t·δR
//	Δx(t)² + Δy(t)² − R(t)² = 0
//
// which is quadratic in t with
//
//	a = δx² + δy² − δR²
//	b = 2(Δx0·δx + Δy0·δy) − 2·R0·δR
//	c = Δx0² + Δy0² − R0²
func dwithinCrossings(a0, a1, b0, b1 cbuffer.Cbuffer, d float64) []float64 {
	dx0 := a0.Center.X - b0.Center.X
	dy0 := a0.Center.Y - b0.Center.Y
	ddx := (a1.Center.X - b1.Center.X) - dx0
	ddy := (a1.Center.Y - b1.Center.Y) - dy0
	r0 := a0.Radius + b0.Radius + d
	dr := (a1.Radius + b1.Radius + d) - r0

	qa := ddx*ddx + ddy*ddy - dr*dr
	qb := 2*(dx0*ddx+dy0*ddy) - 2*r0*dr
	qc := dx0*dx0 + dy0*dy0 - r0*r0

	roots := solveQuadraticViete(qa, qb, qc)
	out := make([]float64, 0, len(roots))
	for _, r := range roots {
		if r > 0 && r < 1 {
			out = append(out, r)
		}
	}
	return out
}

// DWithinCrossingFinder adapts dwithinCrossings to package temporal's
// CrossingFinder shape, so Synchronize (and through it, lifting.Lift2)
// can insert the exact instants at which two moving buffers' distance
// crosses threshold d, making the resulting temporal boolean lossless
// rather than merely sampled at the caller's original instants.
func DWithinCrossingFinder(d float64) temporal.CrossingFinder {
	return func(t0, t1 time.Time, a0, a1, b0, b1 temporal.TInstant) ([]time.Time, error) {
		ca0, ok := a0.Value.Data.(cbuffer.Cbuffer)
		if !ok {
			return nil, errs.NewInternalError("relate.DWithinCrossingFinder: non-Cbuffer instant value")
		}
		ca1 := a1.Value.Data.(cbuffer.Cbuffer)
		cb0 := b0.Value.Data.(cbuffer.Cbuffer)
		cb1 := b1.Value.Data.(cbuffer.Cbuffer)

		params := dwithinCrossings(ca0, ca1, cb0, cb1, d)
		if len(params) == 0 {
			return nil, nil
		}
		sort.Float64s(params)
		span := t1.Sub(t0)
		times := make([]time.Time, len(params))
		for i, p := range params {
			times[i] = t0.Add(time.Duration(float64(span) * p))
		}
		return times, nil
	}
}

// TDWithin lifts the DWithin predicate over two temporal buffers: it
// synchronizes them with SyncCrossings and the crossing finder above,
// then evaluates DWithin at every aligned instant into a step sequence,
// so the result changes value exactly at the instants the two buffers'
// separation crosses d — not merely at each side's own original sample
// instants.
func TDWithin(a, b temporal.TSequence, d float64) (temporal.TSequence, error) {
	f := func(x, y basevalue.Value) (basevalue.Value, error) {
		cx, ok := x.Data.(cbuffer.Cbuffer)
		if !ok {
			return basevalue.Value{}, errs.NewInternalError("relate.TDWithin: non-Cbuffer instant value")
		}
		cy, ok := y.Data.(cbuffer.Cbuffer)
		if !ok {
			return basevalue.Value{}, errs.NewInternalError("relate.TDWithin: non-Cbuffer instant value")
		}
		return basevalue.Value{Tag: basevalue.Bool, Data: cx.DWithin(cy, d)}, nil
	}
	sa, sb, err := temporal.Synchronize(a, b, temporal.SyncCrossings, DWithinCrossingFinder(d))
	if err != nil {
		return temporal.TSequence{}, err
	}
	instants := make([]temporal.TInstant, sa.N())
	for i := 0; i < sa.N(); i++ {
		av, bv := sa.InstantAt(i), sb.InstantAt(i)
		v, err := f(av.Value, bv.Value)
		if err != nil {
			return temporal.TSequence{}, err
		}
		instants[i] = temporal.NewTInstant(v, av.T)
	}
	return temporal.NewTSequence(basevalue.Bool, temporal.Step, instants, sa.Span().LowerInc, sa.Span().UpperInc)
}
