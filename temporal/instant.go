// Package temporal implements the temporal value model: TInstant,
// TSequence, and TSequenceSet, parameterized by a basevalue.Tag and an
// interpolation mode, plus the synchronization step lifting depends on.
package temporal

import (
	"time"

	"github.com/grailbio/tgeo/basevalue"
)

// Interpolation is how a TSequence defines values between two consecutive
// instants.
type Interpolation uint8

const (
	// Discrete sequences model instantaneous events; the value is
	// undefined strictly between any two instants.
	Discrete Interpolation = iota
	// Step holds the earlier endpoint's value until the next instant.
	Step
	// Linear blends linearly between the two endpoints; only valid for
	// base types whose basevalue.Capabilities.Interpolable is true.
	Linear
)

func (i Interpolation) String() string {
	switch i {
	case Discrete:
		return "Discrete"
	case Step:
		return "Step"
	case Linear:
		return "Linear"
	default:
		return "Unknown"
	}
}

// TInstant is a single (value, time) pair.
type TInstant struct {
	Value basevalue.Value
	T     time.Time
}

// NewTInstant constructs a TInstant.
func NewTInstant(v basevalue.Value, t time.Time) TInstant {
	return TInstant{Value: v, T: t}
}

// Eq reports whether i and o carry the same value at the same instant.
func (i TInstant) Eq(o TInstant) bool {
	if !i.T.Equal(o.T) {
		return false
	}
	c, err := basevalue.CapabilitiesFor(i.Value.Tag)
	if err != nil {
		return false
	}
	return c.Eq(i.Value, o.Value)
}
