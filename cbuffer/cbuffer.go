package cbuffer

import (
	"math"

	"github.com/grailbio/tgeo/errs"
)

// Cbuffer is a circular buffer: a disk of the given Radius centered on
// Center.
type Cbuffer struct {
	Center Point
	Radius float64
	SRID   int
}

// New validates and constructs a Cbuffer. Radius must be positive; a
// non-positive radius is a DomainError, not a panic, since it can arrive
// from untrusted WKT/MF-JSON input.
func New(center Point, radius float64, srid int) (Cbuffer, error) {
	if !(radius > 0) {
		return Cbuffer{}, errs.NewDomainError("cbuffer: radius must be positive, got %v", radius)
	}
	return Cbuffer{Center: center, Radius: radius, SRID: srid}, nil
}

// Eq reports whether two buffers have the same center, radius, and SRID.
func (c Cbuffer) Eq(o Cbuffer) bool {
	return c.Center == o.Center && c.Radius == o.Radius && c.SRID == o.SRID
}

// Distance returns the distance between two buffers' centers, the metric
// package basevalue's Cbuffer Capabilities.Distance delegates to.
func (c Cbuffer) Distance(o Cbuffer) float64 {
	return math.Hypot(c.Center.X-o.Center.X, c.Center.Y-o.Center.Y)
}

// IntersectsCbuffer reports whether two disks overlap: the distance
// between their centers does not exceed the sum of their radii. This
// needs no geometry collaborator, unlike buffer-to-arbitrary-geometry
// predicates, since two disks' intersection reduces to a distance
// comparison.
func (c Cbuffer) IntersectsCbuffer(o Cbuffer) bool {
	return c.Distance(o) <= c.Radius+o.Radius
}

// DWithin reports whether two disks are within distance d of each
// other: the gap between their boundaries (distance between centers
// minus both radii) does not exceed d. d may be negative, expressing
// that the disks must overlap by at least -d.
func (c Cbuffer) DWithin(o Cbuffer, d float64) bool {
	return c.Distance(o)-c.Radius-o.Radius <= d
}

// Collinear reports whether b sits at parameter ratio of the segment
// a..c for both center and radius simultaneously, used to decide whether
// a middle instant is redundant (its circle is already implied by
// linear interpolation between its neighbors, so the lifting layer can
// compress three instants into two).
func Collinear(a, b, c Cbuffer, ratio float64, tolerance float64) bool {
	wantX := a.Center.X + ratio*(c.Center.X-a.Center.X)
	wantY := a.Center.Y + ratio*(c.Center.Y-a.Center.Y)
	wantR := a.Radius + ratio*(c.Radius-a.Radius)
	return math.Abs(wantX-b.Center.X) <= tolerance &&
		math.Abs(wantY-b.Center.Y) <= tolerance &&
		math.Abs(wantR-b.Radius) <= tolerance
}

// Interpolate returns the buffer linearly interpolated between a and c at
// parameter ratio in [0,1] — the same formula Collinear checks b against.
func Interpolate(a, c Cbuffer, ratio float64) Cbuffer {
	return Cbuffer{
		Center: Point{
			X: a.Center.X + ratio*(c.Center.X-a.Center.X),
			Y: a.Center.Y + ratio*(c.Center.Y-a.Center.Y),
		},
		Radius: a.Radius + ratio*(c.Radius-a.Radius),
		SRID:   a.SRID,
	}
}

func pointAt(center Point, r, angle float64) Point {
	return Point{X: center.X + r*math.Cos(angle), Y: center.Y + r*math.Sin(angle)}
}

// farthest picks whichever of center+r*(cosθ,sinθ) and center-r*(cosθ,sinθ)
// lies farther from other: the extreme point is selected by comparing
// the two candidates pairwise.
func farthest(center Point, r, theta float64, other Point) Point {
	c1 := pointAt(center, r, theta)
	c2 := pointAt(center, r, theta+math.Pi)
	d1 := math.Hypot(c1.X-other.X, c1.Y-other.Y)
	d2 := math.Hypot(c2.X-other.X, c2.Y-other.Y)
	if d1 >= d2 {
		return c1
	}
	return c2
}

// Circle returns the closed circular-arc ring tracing c's full boundary:
// a single Arc through (x-r,y), (x+r,y), back to (x-r,y) — the
// traversed area of a buffer held fixed at one instant, or of a
// discrete/step interpolation segment.
func Circle(c Cbuffer) Ring {
	west := Point{X: c.Center.X - c.Radius, Y: c.Center.Y}
	east := Point{X: c.Center.X + c.Radius, Y: c.Center.Y}
	return Ring{Segments: []CurveSegment{Arc{Start: west, Mid: east, End: west}}}
}

// Segment computes the traversed-area ring swept by a single linear
// interpolation segment from c1 to c2, via a tangent-line construction:
//
//   - if the centers coincide or one disk contains the other throughout
//     (d <= |r1-r2|), the traversed area is simply the larger disk;
//   - otherwise it is the convex hull of both disks: an external-tangent
//     trapezoid capped by a circular arc on each end.
//
// θ = atan2(Δy,Δx) is the direction from c1 to c2; δ = acos((r1-r2)/d) is
// the half-angle between the tangent line and the center line. Tᵢₐ/Tᵢᵦ
// are the two tangent touch-points on circle i; Aᵢ is the point on
// circle i farthest from the other center. The ring is
// arc(T₂ₐ,A₂,T₂ᵦ) → line(T₂ᵦ,T₁ᵦ) → arc(T₁ᵦ,A₁,T₁ₐ) → line(T₁ₐ,T₂ₐ).
func Segment(c1, c2 Cbuffer) (Ring, error) {
	if err := checkSRID(c1.SRID, c2.SRID); err != nil {
		return Ring{}, err
	}
	p1, p2 := c1.Center, c2.Center
	r1, r2 := c1.Radius, c2.Radius
	dx, dy := p2.X-p1.X, p2.Y-p1.Y
	d := math.Hypot(dx, dy)

	if d <= math.Abs(r1-r2)+1e-12 {
		if r1 >= r2 {
			return Circle(c1), nil
		}
		return Circle(c2), nil
	}

	theta := math.Atan2(dy, dx)
	delta := math.Acos(clamp((r1-r2)/d, -1, 1))

	t1a := pointAt(p1, r1, theta+delta)
	t1b := pointAt(p1, r1, theta-delta)
	t2a := pointAt(p2, r2, theta+delta)
	t2b := pointAt(p2, r2, theta-delta)
	a1 := farthest(p1, r1, theta, p2)
	a2 := farthest(p2, r2, theta, p1)

	return Ring{Segments: []CurveSegment{
		Arc{Start: t2a, Mid: a2, End: t2b},
		Line{Points: []Point{t2b, t1b}},
		Arc{Start: t1b, Mid: a1, End: t1a},
		Line{Points: []Point{t1a, t2a}},
	}}, nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
