package basevalue

import (
	"encoding/binary"
	"math"

	"github.com/dgryski/go-farm"
	"github.com/grailbio/tgeo/errs"
)

// Point is a 2D (optionally 3D) coordinate carried by GeomPoint and
// GeogPoint values. GeomPoint treats X/Y as planar Cartesian
// coordinates; GeogPoint treats them as longitude/latitude degrees on
// the WGS84 sphere, which only changes how Distance is computed.
type Point struct {
	X, Y, Z float64
	HasZ    bool
}

const earthRadiusMeters = 6371008.8

func haversineMeters(a, b Point) float64 {
	toRad := func(d float64) float64 { return d * math.Pi / 180 }
	lat1, lat2 := toRad(a.Y), toRad(b.Y)
	dLat, dLon := toRad(b.Y-a.Y), toRad(b.X-a.X)
	h := math.Sin(dLat/2)*math.Sin(dLat/2) + math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusMeters * math.Asin(math.Sqrt(h))
}

func pointEq(a, b Point) bool {
	return a.X == b.X && a.Y == b.Y && a.Z == b.Z && a.HasZ == b.HasZ
}

func pointHash(p Point) uint64 {
	var buf [24]byte
	binary.LittleEndian.PutUint64(buf[0:8], math.Float64bits(p.X))
	binary.LittleEndian.PutUint64(buf[8:16], math.Float64bits(p.Y))
	binary.LittleEndian.PutUint64(buf[16:24], math.Float64bits(p.Z))
	return farm.Hash64(buf[:])
}

// pointCapabilities builds the shared Point-based vtable for GeomPoint
// and GeogPoint; the two tags differ only in how Distance measures two
// points (planar Euclidean vs. great-circle).
func pointCapabilities(tag Tag, distance func(a, b Point) float64) *Capabilities {
	return &Capabilities{
		Tag:  tag,
		Copy: func(v Value) Value { return Value{Tag: tag, Data: v.Data.(Point)} },
		Compare: func(a, b Value) (int, error) {
			return 0, errs.NewUnsupportedError("basevalue.Compare", "%s has no total order", tag)
		},
		Eq: func(a, b Value) bool {
			pa, aok := a.Data.(Point)
			pb, bok := b.Data.(Point)
			return aok && bok && pointEq(pa, pb)
		},
		Interpolable: true,
		Interpolate: func(a, b Value, r float64) (Value, error) {
			pa, aok := a.Data.(Point)
			pb, bok := b.Data.(Point)
			if !aok || !bok {
				return Value{}, errs.NewInternalError("basevalue.Interpolate: non-Point operand for %s", tag)
			}
			out := Point{
				X:    pa.X + r*(pb.X-pa.X),
				Y:    pa.Y + r*(pb.Y-pa.Y),
				Z:    pa.Z + r*(pb.Z-pa.Z),
				HasZ: pa.HasZ || pb.HasZ,
			}
			return Value{Tag: tag, Data: out}, nil
		},
		Collinear: func(a, b, c Value, r float64) (bool, error) {
			pa, aok := a.Data.(Point)
			pb, bok := b.Data.(Point)
			pc, cok := c.Data.(Point)
			if !aok || !bok || !cok {
				return false, errs.NewInternalError("basevalue.Collinear: non-Point operand for %s", tag)
			}
			const eps = 1e-9
			want := Point{X: pa.X + r*(pc.X-pa.X), Y: pa.Y + r*(pc.Y-pa.Y), Z: pa.Z + r*(pc.Z-pa.Z)}
			return math.Abs(want.X-pb.X) < eps && math.Abs(want.Y-pb.Y) < eps && math.Abs(want.Z-pb.Z) < eps, nil
		},
		Distance: func(a, b Value) (float64, error) {
			pa, aok := a.Data.(Point)
			pb, bok := b.Data.(Point)
			if !aok || !bok {
				return 0, errs.NewInternalError("basevalue.Distance: non-Point operand for %s", tag)
			}
			return distance(pa, pb), nil
		},
		Hash: func(v Value) uint64 {
			p, ok := v.Data.(Point)
			if !ok {
				return 0
			}
			return pointHash(p)
		},
	}
}

func geomPointCapabilities() *Capabilities {
	return pointCapabilities(GeomPoint, func(a, b Point) float64 {
		dx, dy, dz := a.X-b.X, a.Y-b.Y, a.Z-b.Z
		if !a.HasZ && !b.HasZ {
			dz = 0
		}
		return math.Sqrt(dx*dx + dy*dy + dz*dz)
	})
}

func geogPointCapabilities() *Capabilities {
	return pointCapabilities(GeogPoint, haversineMeters)
}

// NPointValue is a position along a linear referencing network: a route
// identifier plus a fractional measure along it. NPointValues have no
// total order (Compare always errors), and two of them only interpolate
// or measure distance against each other when they share a Route;
// crossing routes is a caller error, not something
// this package can resolve without the network graph itself.
type NPointValue struct {
	Route   int64
	Measure float64
}

func npointCapabilities() *Capabilities {
	return &Capabilities{
		Tag:  NPoint,
		Copy: func(v Value) Value { return Value{Tag: NPoint, Data: v.Data.(NPointValue)} },
		Compare: func(a, b Value) (int, error) {
			return 0, errs.NewUnsupportedError("basevalue.Compare", "npoint has no total order")
		},
		Eq: func(a, b Value) bool {
			na, aok := a.Data.(NPointValue)
			nb, bok := b.Data.(NPointValue)
			return aok && bok && na.Route == nb.Route && na.Measure == nb.Measure
		},
		Interpolable: true,
		Interpolate: func(a, b Value, r float64) (Value, error) {
			na, aok := a.Data.(NPointValue)
			nb, bok := b.Data.(NPointValue)
			if !aok || !bok || na.Route != nb.Route {
				return Value{}, errs.NewUnsupportedError("basevalue.Interpolate", "npoint interpolation requires both values on the same route")
			}
			return Value{Tag: NPoint, Data: NPointValue{Route: na.Route, Measure: na.Measure + r*(nb.Measure-na.Measure)}}, nil
		},
		Collinear: func(a, b, c Value, r float64) (bool, error) {
			na, aok := a.Data.(NPointValue)
			nb, bok := b.Data.(NPointValue)
			nc, cok := c.Data.(NPointValue)
			if !aok || !bok || !cok || na.Route != nb.Route || nb.Route != nc.Route {
				return false, nil
			}
			const eps = 1e-9
			want := na.Measure + r*(nc.Measure-na.Measure)
			return math.Abs(want-nb.Measure) < eps, nil
		},
		Distance: func(a, b Value) (float64, error) {
			na, aok := a.Data.(NPointValue)
			nb, bok := b.Data.(NPointValue)
			if !aok || !bok || na.Route != nb.Route {
				return 0, errs.NewUnsupportedError("basevalue.Distance", "npoint distance requires both values on the same route")
			}
			return math.Abs(na.Measure - nb.Measure), nil
		},
		Hash: func(v Value) uint64 {
			n, ok := v.Data.(NPointValue)
			if !ok {
				return 0
			}
			var buf [16]byte
			binary.LittleEndian.PutUint64(buf[0:8], uint64(n.Route))
			binary.LittleEndian.PutUint64(buf[8:16], math.Float64bits(n.Measure))
			return farm.Hash64(buf[:])
		},
	}
}

// PoseValue is a 2D/3D position plus a heading angle in radians: the
// minimal reference frame a moving rigid body carries.
type PoseValue struct {
	Position Point
	Heading  float64
}

// shortestAngleDelta returns the signed angular distance from from to
// to, wrapped into [-pi, pi), so interpolating a heading always turns
// the short way around.
func shortestAngleDelta(from, to float64) float64 {
	d := math.Mod(to-from+math.Pi, 2*math.Pi) - math.Pi
	if d < -math.Pi {
		d += 2 * math.Pi
	}
	return d
}

func normalizeAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}

func poseCapabilities() *Capabilities {
	return &Capabilities{
		Tag:  Pose,
		Copy: func(v Value) Value { return Value{Tag: Pose, Data: v.Data.(PoseValue)} },
		Compare: func(a, b Value) (int, error) {
			return 0, errs.NewUnsupportedError("basevalue.Compare", "pose has no total order")
		},
		Eq: func(a, b Value) bool {
			pa, aok := a.Data.(PoseValue)
			pb, bok := b.Data.(PoseValue)
			return aok && bok && pointEq(pa.Position, pb.Position) && pa.Heading == pb.Heading
		},
		Interpolable: true,
		Interpolate: func(a, b Value, r float64) (Value, error) {
			pa, aok := a.Data.(PoseValue)
			pb, bok := b.Data.(PoseValue)
			if !aok || !bok {
				return Value{}, errs.NewInternalError("basevalue.Interpolate: non-Pose operand")
			}
			pos := Point{
				X:    pa.Position.X + r*(pb.Position.X-pa.Position.X),
				Y:    pa.Position.Y + r*(pb.Position.Y-pa.Position.Y),
				Z:    pa.Position.Z + r*(pb.Position.Z-pa.Position.Z),
				HasZ: pa.Position.HasZ || pb.Position.HasZ,
			}
			heading := normalizeAngle(pa.Heading + r*shortestAngleDelta(pa.Heading, pb.Heading))
			return Value{Tag: Pose, Data: PoseValue{Position: pos, Heading: heading}}, nil
		},
		Collinear: func(a, b, c Value, r float64) (bool, error) {
			pa, aok := a.Data.(PoseValue)
			pb, bok := b.Data.(PoseValue)
			pc, cok := c.Data.(PoseValue)
			if !aok || !bok || !cok {
				return false, errs.NewInternalError("basevalue.Collinear: non-Pose operand")
			}
			const eps = 1e-9
			want := Point{X: pa.Position.X + r*(pc.Position.X-pa.Position.X), Y: pa.Position.Y + r*(pc.Position.Y-pa.Position.Y)}
			return math.Abs(want.X-pb.Position.X) < eps && math.Abs(want.Y-pb.Position.Y) < eps, nil
		},
		Distance: func(a, b Value) (float64, error) {
			pa, aok := a.Data.(PoseValue)
			pb, bok := b.Data.(PoseValue)
			if !aok || !bok {
				return 0, errs.NewInternalError("basevalue.Distance: non-Pose operand")
			}
			dx, dy, dz := pa.Position.X-pb.Position.X, pa.Position.Y-pb.Position.Y, pa.Position.Z-pb.Position.Z
			return math.Sqrt(dx*dx + dy*dy + dz*dz), nil
		},
		Hash: func(v Value) uint64 {
			p, ok := v.Data.(PoseValue)
			if !ok {
				return 0
			}
			var buf [8]byte
			binary.LittleEndian.PutUint64(buf[:], math.Float64bits(p.Heading))
			return pointHash(p.Position) ^ farm.Hash64(buf[:])
		},
	}
}

// RigidGeometryValue is a rigid body's static shape reference plus the
// Pose it currently occupies: the shape itself never deforms, so only
// Pose varies over time. ShapeID names the static shape in whatever
// catalog the caller maintains; this package never resolves it to
// geometry.
type RigidGeometryValue struct {
	ShapeID string
	Pose    PoseValue
}

func rigidGeometryCapabilities() *Capabilities {
	return &Capabilities{
		Tag:  RigidGeometry,
		Copy: func(v Value) Value { return Value{Tag: RigidGeometry, Data: v.Data.(RigidGeometryValue)} },
		Compare: func(a, b Value) (int, error) {
			return 0, errs.NewUnsupportedError("basevalue.Compare", "rigidgeometry has no total order")
		},
		Eq: func(a, b Value) bool {
			ra, aok := a.Data.(RigidGeometryValue)
			rb, bok := b.Data.(RigidGeometryValue)
			return aok && bok && ra.ShapeID == rb.ShapeID && pointEq(ra.Pose.Position, rb.Pose.Position) && ra.Pose.Heading == rb.Pose.Heading
		},
		Interpolable: true,
		Interpolate: func(a, b Value, r float64) (Value, error) {
			ra, aok := a.Data.(RigidGeometryValue)
			rb, bok := b.Data.(RigidGeometryValue)
			if !aok || !bok || ra.ShapeID != rb.ShapeID {
				return Value{}, errs.NewUnsupportedError("basevalue.Interpolate", "rigidgeometry interpolation requires the same shape")
			}
			poseV, err := poseCapabilities().Interpolate(Value{Tag: Pose, Data: ra.Pose}, Value{Tag: Pose, Data: rb.Pose}, r)
			if err != nil {
				return Value{}, err
			}
			return Value{Tag: RigidGeometry, Data: RigidGeometryValue{ShapeID: ra.ShapeID, Pose: poseV.Data.(PoseValue)}}, nil
		},
		Collinear: func(a, b, c Value, r float64) (bool, error) {
			ra, aok := a.Data.(RigidGeometryValue)
			rb, bok := b.Data.(RigidGeometryValue)
			rc, cok := c.Data.(RigidGeometryValue)
			if !aok || !bok || !cok || ra.ShapeID != rb.ShapeID || rb.ShapeID != rc.ShapeID {
				return false, nil
			}
			return poseCapabilities().Collinear(Value{Tag: Pose, Data: ra.Pose}, Value{Tag: Pose, Data: rb.Pose}, Value{Tag: Pose, Data: rc.Pose}, r)
		},
		Distance: func(a, b Value) (float64, error) {
			ra, aok := a.Data.(RigidGeometryValue)
			rb, bok := b.Data.(RigidGeometryValue)
			if !aok || !bok {
				return 0, errs.NewInternalError("basevalue.Distance: non-RigidGeometry operand")
			}
			return poseCapabilities().Distance(Value{Tag: Pose, Data: ra.Pose}, Value{Tag: Pose, Data: rb.Pose})
		},
		Hash: func(v Value) uint64 {
			r, ok := v.Data.(RigidGeometryValue)
			if !ok {
				return 0
			}
			return farm.Hash64([]byte(r.ShapeID)) ^ pointHash(r.Pose.Position)
		},
	}
}
