// Package basevalue implements the base-type polymorphism layer: a
// tagged sum type over the base values a temporal sequence can carry
// (bool, int, float, text, point, circular buffer, ...), plus a per-tag
// capability table the lifting and temporal-value layers dispatch
// through instead of a runtime type switch in their hot loops.
//
// Grounded on biopb.Coord's hand-written comparison methods
// (Compare/LT/LE/EQ) generalized into a table of functions per tag: a
// "sum type with capability traits" design, where dispatch becomes a Go
// interface value (Capabilities) looked up once per tag instead of
// switched on in every call.
package basevalue

import "github.com/grailbio/tgeo/errs"

// Tag identifies a base type carried by a temporal value.
type Tag uint8

const (
	Bool Tag = iota
	Int
	Float
	Text
	GeomPoint
	GeogPoint
	Cbuffer
	// NPoint is a network-constrained point: a position along a linear
	// referencing network.
	NPoint
	// Pose and RigidGeometry are carried as base-type tags for
	// serialization and lifting (MF-JSON names both as root types) but
	// have no dedicated spatial-relation kernel — the relation kernel
	// covers circular buffers only.
	Pose
	RigidGeometry
)

func (t Tag) String() string {
	switch t {
	case Bool:
		return "bool"
	case Int:
		return "int"
	case Float:
		return "float"
	case Text:
		return "text"
	case GeomPoint:
		return "geompoint"
	case GeogPoint:
		return "geogpoint"
	case Cbuffer:
		return "cbuffer"
	case NPoint:
		return "npoint"
	case Pose:
		return "pose"
	case RigidGeometry:
		return "rigidgeometry"
	default:
		return "unknown"
	}
}

// Value is a single base value carried by a TInstant: a tag plus an
// opaque payload whose concrete Go type depends on the tag (bool, int64,
// float64, string, or a richer struct value such as Point or
// cbuffer.Cbuffer, the latter registered by another package).
type Value struct {
	Tag  Tag
	Data interface{}
}

// Capabilities is the per-tag vtable every higher layer dispatches
// through: copy, compare, interpolate, collinear, distance, equality,
// hash, and the function used to serialize a value's payload.
type Capabilities struct {
	Tag Tag

	// Copy returns a deep copy of v.Data.
	Copy func(v Value) Value

	// Compare returns -1/0/+1; only defined for totally ordered base
	// types (bool, int, float, text). Returns an UnsupportedError
	// otherwise.
	Compare func(a, b Value) (int, error)

	// Eq reports value equality (not ordering) and is defined for every
	// base type.
	Eq func(a, b Value) bool

	// Interpolable reports whether this base type supports linear
	// interpolation: Linear requires a base type with an interpolation
	// capability.
	Interpolable bool

	// Interpolate returns the value at parameter ratio r in [0,1] between
	// a (r=0) and b (r=1). Only called when Interpolable is true.
	Interpolate func(a, b Value, r float64) (Value, error)

	// Collinear reports whether three consecutive values sampled at
	// parameter ratios 0, r, 1 could be losslessly represented by the
	// single linear segment from a to c, generalized to any interpolable
	// base type.
	Collinear func(a, b, c Value, r float64) (bool, error)

	// Distance returns a non-negative distance between a and b. Defined
	// for numeric and spatial base types.
	Distance func(a, b Value) (float64, error)

	// Hash returns a content hash of v, used for memoization keys.
	Hash func(v Value) uint64
}

// registry is the process-wide type-tag table from Tag to Capabilities:
// initialized once at load and thereafter immutable.
var registry = map[Tag]*Capabilities{}

// Register installs the capability table for tag. It is called from each
// base-type's defining package's init() function and must not be called
// again for the same tag afterward; the registry is read-only from the
// caller's perspective once program initialization completes.
func Register(c *Capabilities) {
	if _, dup := registry[c.Tag]; dup {
		panic("basevalue: duplicate Register for tag " + c.Tag.String())
	}
	registry[c.Tag] = c
}

// CapabilitiesFor returns the registered capability table for tag.
func CapabilitiesFor(tag Tag) (*Capabilities, error) {
	c, ok := registry[tag]
	if !ok {
		return nil, errs.NewUnsupportedError("basevalue.CapabilitiesFor", "no capabilities registered for tag %s", tag)
	}
	return c, nil
}

func init() {
	Register(boolCapabilities())
	Register(intCapabilities())
	Register(floatCapabilities())
	Register(textCapabilities())
	Register(geomPointCapabilities())
	Register(geogPointCapabilities())
	Register(npointCapabilities())
	Register(poseCapabilities())
	Register(rigidGeometryCapabilities())
}
