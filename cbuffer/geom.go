// Package cbuffer implements the circular-buffer spatial kernel: Cbuffer
// (a 2D disk), traversed-area construction for discrete/step/linear
// interpolation, the collinearity test the lifting layer uses to decide
// whether three instants compress into one linear segment, and the
// GeometryEngine interface through which this module consumes an
// external 2D geometry library as an out-of-scope collaborator
// (point/polygon construction, intersects2d, contains, covers, touches,
// dwithin, boundary, buffer, relate_pattern, SRID get/set, projection).
package cbuffer

import "github.com/grailbio/tgeo/errs"

// Point is a 2D (optionally 3D) coordinate. Unlike Geometry, Point is a
// concrete value this package computes directly (tangent points, arc
// midpoints, ...) rather than delegating to the geometry collaborator;
// only once a full ring is assembled does it get handed to Engine to
// become an opaque Geometry.
type Point struct {
	X, Y float64
	Z    float64
	HasZ bool
}

// SRIDUnknown is the sentinel SRID value meaning "no spatial reference
// system known".
const SRIDUnknown = 0

// CurveSegment is one piece of a compound ring: either a three-point
// circular arc or a straight line through a list of points.
type CurveSegment interface{ isCurveSegment() }

// Arc is a circular arc through Start, Mid, End — the "CIRCULARSTRING"
// triple used to describe a full circle or a partial arc.
type Arc struct{ Start, Mid, End Point }

func (Arc) isCurveSegment() {}

// Line is a straight segment through an ordered list of points.
type Line struct{ Points []Point }

func (Line) isCurveSegment() {}

// Ring is an ordered, closed sequence of curve segments bounding a
// traversed-area polygon (or, for a single full circle, a ring with one
// Arc segment).
type Ring struct {
	Segments []CurveSegment
}

// Geometry is an opaque value produced and consumed by the geometry
// collaborator; this package never inspects its internals.
type Geometry interface {
	SRID() int
}

// Engine is the geometry collaborator this package and package relate
// consume. It is defined, not implemented, here: the underlying 2D
// geometry library (point/polygon construction, projection, buffer) is
// deliberately kept out of this core.
type Engine interface {
	NewPoint(p Point, srid int) Geometry
	NewPolygonFromRing(r Ring, srid int) (Geometry, error)
	NewLineString(pts []Point, srid int) Geometry

	Intersects2D(a, b Geometry) (bool, error)
	Contains(a, b Geometry) (bool, error)
	Covers(a, b Geometry) (bool, error)
	Touches(a, b Geometry) (bool, error)
	DWithin(a, b Geometry, d float64) (bool, error)
	Boundary(g Geometry) (Geometry, error)
	Buffer(g Geometry, d float64) (Geometry, error)
	RelatePattern(a, b Geometry, pattern string) (bool, error)
	IsEmpty(g Geometry) bool
	HasBoundary(g Geometry) bool

	WithSRID(g Geometry, srid int) Geometry
	Project(g Geometry, dstSRID int) (Geometry, error)
}

func checkSRID(a, b int) error {
	if a != SRIDUnknown && b != SRIDUnknown && a != b {
		return errs.NewDomainError("cbuffer: mismatched SRIDs %d and %d", a, b)
	}
	return nil
}
