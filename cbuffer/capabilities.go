package cbuffer

import (
	"encoding/binary"
	"math"

	"github.com/grailbio/tgeo/basevalue"
	"github.com/grailbio/tgeo/errs"
)

// init registers Cbuffer's basevalue.Capabilities, so temporal sequences
// tagged basevalue.Cbuffer can use Linear interpolation (traversed-area
// construction is the geometric meaning of that interpolation) and so
// package relate's lifted predicates can compare, hash, and measure
// distance between buffer values without a type switch.
func init() {
	basevalue.Register(&basevalue.Capabilities{
		Tag:  basevalue.Cbuffer,
		Copy: func(v basevalue.Value) basevalue.Value { return v },
		Compare: func(a, b basevalue.Value) (int, error) {
			return 0, errs.NewUnsupportedError("basevalue.Compare", "cbuffer has no total order")
		},
		Eq: func(a, b basevalue.Value) bool {
			ca, aok := a.Data.(Cbuffer)
			cb, bok := b.Data.(Cbuffer)
			return aok && bok && ca.Eq(cb)
		},
		Interpolable: true,
		Interpolate: func(a, b basevalue.Value, r float64) (basevalue.Value, error) {
			ca, aok := a.Data.(Cbuffer)
			cb, bok := b.Data.(Cbuffer)
			if !aok || !bok {
				return basevalue.Value{}, errs.NewInternalError("cbuffer.Interpolate: non-Cbuffer operand")
			}
			return basevalue.Value{Tag: basevalue.Cbuffer, Data: Interpolate(ca, cb, r)}, nil
		},
		Collinear: func(a, b, c basevalue.Value, r float64) (bool, error) {
			ca, aok := a.Data.(Cbuffer)
			cb, bok := b.Data.(Cbuffer)
			cc, cok := c.Data.(Cbuffer)
			if !aok || !bok || !cok {
				return false, errs.NewInternalError("cbuffer.Collinear: non-Cbuffer operand")
			}
			return Collinear(ca, cb, cc, r, 1e-9), nil
		},
		Distance: func(a, b basevalue.Value) (float64, error) {
			ca, aok := a.Data.(Cbuffer)
			cb, bok := b.Data.(Cbuffer)
			if !aok || !bok {
				return 0, errs.NewInternalError("cbuffer.Distance: non-Cbuffer operand")
			}
			return ca.Distance(cb), nil
		},
		Hash: func(v basevalue.Value) uint64 {
			c, ok := v.Data.(Cbuffer)
			if !ok {
				return 0
			}
			var buf [24]byte
			binary.LittleEndian.PutUint64(buf[0:8], math.Float64bits(c.Center.X))
			binary.LittleEndian.PutUint64(buf[8:16], math.Float64bits(c.Center.Y))
			binary.LittleEndian.PutUint64(buf[16:24], math.Float64bits(c.Radius))
			return cacheKey(c, c) ^ binary.LittleEndian.Uint64(buf[:8])
		},
	})
}
