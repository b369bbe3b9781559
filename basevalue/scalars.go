package basevalue

import (
	"math"

	"github.com/dgryski/go-farm"
	"github.com/grailbio/tgeo/errs"
)

func boolCapabilities() *Capabilities {
	return &Capabilities{
		Tag:  Bool,
		Copy: func(v Value) Value { return Value{Tag: Bool, Data: v.Data.(bool)} },
		Compare: func(a, b Value) (int, error) {
			av, bv := a.Data.(bool), b.Data.(bool)
			if av == bv {
				return 0, nil
			}
			if !av && bv {
				return -1, nil
			}
			return 1, nil
		},
		Eq:           func(a, b Value) bool { return a.Data.(bool) == b.Data.(bool) },
		Interpolable: false,
		Interpolate: func(a, b Value, r float64) (Value, error) {
			return Value{}, errs.NewUnsupportedError("basevalue.Interpolate", "bool is not interpolable")
		},
		Collinear: func(a, b, c Value, r float64) (bool, error) {
			return a.Data.(bool) == b.Data.(bool) && b.Data.(bool) == c.Data.(bool), nil
		},
		Distance: func(a, b Value) (float64, error) {
			if a.Data.(bool) == b.Data.(bool) {
				return 0, nil
			}
			return 1, nil
		},
		Hash: func(v Value) uint64 {
			if v.Data.(bool) {
				return 1
			}
			return 0
		},
	}
}

func intCapabilities() *Capabilities {
	return &Capabilities{
		Tag:  Int,
		Copy: func(v Value) Value { return Value{Tag: Int, Data: v.Data.(int64)} },
		Compare: func(a, b Value) (int, error) {
			av, bv := a.Data.(int64), b.Data.(int64)
			switch {
			case av < bv:
				return -1, nil
			case av > bv:
				return 1, nil
			default:
				return 0, nil
			}
		},
		Eq:           func(a, b Value) bool { return a.Data.(int64) == b.Data.(int64) },
		Interpolable: true,
		Interpolate: func(a, b Value, r float64) (Value, error) {
			av, bv := float64(a.Data.(int64)), float64(b.Data.(int64))
			return Value{Tag: Int, Data: int64(math.Round(av + r*(bv-av)))}, nil
		},
		Collinear: func(a, b, c Value, r float64) (bool, error) {
			interp, err := intCapabilities().Interpolate(a, c, r)
			if err != nil {
				return false, err
			}
			return interp.Data.(int64) == b.Data.(int64), nil
		},
		Distance: func(a, b Value) (float64, error) {
			return math.Abs(float64(a.Data.(int64) - b.Data.(int64))), nil
		},
		Hash: func(v Value) uint64 {
			n := v.Data.(int64)
			buf := [8]byte{byte(n), byte(n >> 8), byte(n >> 16), byte(n >> 24), byte(n >> 32), byte(n >> 40), byte(n >> 48), byte(n >> 56)}
			return farm.Hash64(buf[:])
		},
	}
}

func floatCapabilities() *Capabilities {
	const eps = 1e-9
	return &Capabilities{
		Tag:  Float,
		Copy: func(v Value) Value { return Value{Tag: Float, Data: v.Data.(float64)} },
		Compare: func(a, b Value) (int, error) {
			av, bv := a.Data.(float64), b.Data.(float64)
			switch {
			case av < bv:
				return -1, nil
			case av > bv:
				return 1, nil
			default:
				return 0, nil
			}
		},
		Eq:           func(a, b Value) bool { return a.Data.(float64) == b.Data.(float64) },
		Interpolable: true,
		Interpolate: func(a, b Value, r float64) (Value, error) {
			av, bv := a.Data.(float64), b.Data.(float64)
			return Value{Tag: Float, Data: av + r*(bv-av)}, nil
		},
		Collinear: func(a, b, c Value, r float64) (bool, error) {
			av, bv, cv := a.Data.(float64), b.Data.(float64), c.Data.(float64)
			want := av + r*(cv-av)
			return math.Abs(want-bv) < eps, nil
		},
		Distance: func(a, b Value) (float64, error) {
			return math.Abs(a.Data.(float64) - b.Data.(float64)), nil
		},
		Hash: func(v Value) uint64 {
			bits := math.Float64bits(v.Data.(float64))
			buf := [8]byte{byte(bits), byte(bits >> 8), byte(bits >> 16), byte(bits >> 24), byte(bits >> 32), byte(bits >> 40), byte(bits >> 48), byte(bits >> 56)}
			return farm.Hash64(buf[:])
		},
	}
}

func textCapabilities() *Capabilities {
	return &Capabilities{
		Tag:  Text,
		Copy: func(v Value) Value { return Value{Tag: Text, Data: v.Data.(string)} },
		Compare: func(a, b Value) (int, error) {
			av, bv := a.Data.(string), b.Data.(string)
			switch {
			case av < bv:
				return -1, nil
			case av > bv:
				return 1, nil
			default:
				return 0, nil
			}
		},
		Eq:           func(a, b Value) bool { return a.Data.(string) == b.Data.(string) },
		Interpolable: false,
		Interpolate: func(a, b Value, r float64) (Value, error) {
			return Value{}, errs.NewUnsupportedError("basevalue.Interpolate", "text is not interpolable")
		},
		Collinear: func(a, b, c Value, r float64) (bool, error) {
			return a.Data.(string) == b.Data.(string) && b.Data.(string) == c.Data.(string), nil
		},
		Distance: func(a, b Value) (float64, error) {
			if a.Data.(string) == b.Data.(string) {
				return 0, nil
			}
			return 1, nil
		},
		Hash: func(v Value) uint64 {
			return farm.Hash64([]byte(v.Data.(string)))
		},
	}
}
