// Package relate implements the spatiotemporal relationship kernel:
// "ever"/"always" aggregates of a static predicate over a temporal
// circular buffer, and the temporal predicates (tintersects, tcontains,
// ...) that instead return a temporal boolean tracking how the
// predicate's truth value changes over time.
package relate

import (
	"github.com/grailbio/tgeo/basevalue"
	"github.com/grailbio/tgeo/cbuffer"
	"github.com/grailbio/tgeo/errs"
	"github.com/grailbio/tgeo/lifting"
	"github.com/grailbio/tgeo/temporal"
)

func diskGeometry(eng cbuffer.Engine, c cbuffer.Cbuffer) (cbuffer.Geometry, error) {
	return eng.NewPolygonFromRing(cbuffer.Circle(c), c.SRID)
}

func hullGeometry(eng cbuffer.Engine, c1, c2 cbuffer.Cbuffer) (cbuffer.Geometry, error) {
	ring, err := cbuffer.Segment(c1, c2)
	if err != nil {
		return nil, err
	}
	return eng.NewPolygonFromRing(ring, c1.SRID)
}

// units returns, for the given instant sequence and interpolation, the
// geometries whose union is the traversed area: one disk per instant
// for Discrete/Step, one tangent-hull per consecutive pair for Linear.
// Both Ever and Always reduce their aggregate over these units rather
// than over raw instants, which is what makes the Linear case exact — a
// per-instant sampling would silently drop a crossing occurring strictly
// between two given instants.
func units(eng cbuffer.Engine, seq []cbuffer.Instant, interp cbuffer.Interp) ([]cbuffer.Geometry, error) {
	if len(seq) == 0 {
		return nil, errs.NewDomainError("relate: empty instant sequence")
	}
	if len(seq) == 1 || interp != cbuffer.Linear {
		out := make([]cbuffer.Geometry, len(seq))
		for i, in := range seq {
			g, err := diskGeometry(eng, in.Value)
			if err != nil {
				return nil, err
			}
			out[i] = g
		}
		return out, nil
	}
	out := make([]cbuffer.Geometry, 0, len(seq)-1)
	for i := 0; i+1 < len(seq); i++ {
		g, err := hullGeometry(eng, seq[i].Value, seq[i+1].Value)
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, nil
}

// EverIntersects reports whether the moving buffer ever intersects g.
// Intersection is monotonic under union (union(A_i) ∩ g ≠ ∅ iff some
// A_i ∩ g ≠ ∅), so evaluating it against each traversed-area unit is
// exact, not an approximation.
func EverIntersects(eng cbuffer.Engine, seq []cbuffer.Instant, interp cbuffer.Interp, g cbuffer.Geometry) (bool, error) {
	us, err := units(eng, seq, interp)
	if err != nil {
		return false, err
	}
	for _, u := range us {
		ok, err := eng.Intersects2D(u, g)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

// AlwaysContains reports whether g contains the moving buffer at every
// instant. Containment of a union reduces the same way (union(A_i) ⊆ g
// iff every A_i ⊆ g), so this too is exact against the traversed-area
// units.
func AlwaysContains(eng cbuffer.Engine, seq []cbuffer.Instant, interp cbuffer.Interp, g cbuffer.Geometry) (bool, error) {
	us, err := units(eng, seq, interp)
	if err != nil {
		return false, err
	}
	for _, u := range us {
		ok, err := eng.Contains(g, u)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

// AlwaysCovers is AlwaysContains's cousin for the covers relation, which
// is likewise monotonic under union.
func AlwaysCovers(eng cbuffer.Engine, seq []cbuffer.Instant, interp cbuffer.Interp, g cbuffer.Geometry) (bool, error) {
	us, err := units(eng, seq, interp)
	if err != nil {
		return false, err
	}
	for _, u := range us {
		ok, err := eng.Covers(g, u)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

// EverTouches and EverContains are not monotonic under union (a segment's
// swept hull can touch or contain g without any single instant's disk
// doing so, and vice versa), so EverContains samples each given
// instant's disk and EverTouches tests each traversed-area unit, rather
// than claiming exactness across the whole continuum; callers needing an
// exact answer for a Linear sequence
// should insert extra instants at the relevant crossing times first
// (package temporal's CrossingFinder machinery).
func EverContains(eng cbuffer.Engine, seq []cbuffer.Instant, g cbuffer.Geometry) (bool, error) {
	for _, in := range seq {
		disk, err := diskGeometry(eng, in.Value)
		if err != nil {
			return false, err
		}
		ok, err := eng.Contains(disk, g)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

func EverTouches(eng cbuffer.Engine, seq []cbuffer.Instant, interp cbuffer.Interp, g cbuffer.Geometry) (bool, error) {
	us, err := units(eng, seq, interp)
	if err != nil {
		return false, err
	}
	for _, u := range us {
		ok, err := eng.Touches(u, g)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

func EverDisjoint(eng cbuffer.Engine, seq []cbuffer.Instant, g cbuffer.Geometry) (bool, error) {
	for _, in := range seq {
		disk, err := diskGeometry(eng, in.Value)
		if err != nil {
			return false, err
		}
		ok, err := eng.Intersects2D(disk, g)
		if err != nil {
			return false, err
		}
		if !ok {
			return true, nil
		}
	}
	return false, nil
}

// TIntersectsCbuffer lifts buffer-buffer intersection (distance between
// centers no greater than the sum of radii, computed directly without
// the geometry collaborator) over a temporal buffer, producing a
// temporal boolean. The equivalent MobilityDB operator,
// tintersects_cbuffer_tcbuffer, has a known history of silently computing
// tdisjoint instead: this implementation calls Cbuffer.IntersectsCbuffer
// directly, with no negation.
func TIntersectsCbuffer(c cbuffer.Cbuffer, seq temporal.TSequence) (temporal.TSequence, error) {
	f := lifting.Func1{
		ResultTag: basevalue.Bool,
		Apply: func(v basevalue.Value) (basevalue.Value, error) {
			other, ok := v.Data.(cbuffer.Cbuffer)
			if !ok {
				return basevalue.Value{}, errs.NewInternalError("relate.TIntersectsCbuffer: non-Cbuffer instant value")
			}
			return basevalue.Value{Tag: basevalue.Bool, Data: c.IntersectsCbuffer(other)}, nil
		},
	}
	return lifting.Lift1(seq, f)
}
