package lifting

import (
	"testing"
	"time"

	"github.com/grailbio/tgeo/basevalue"
	"github.com/grailbio/tgeo/temporal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(s int) time.Time { return time.Date(2026, 1, 1, 0, 0, s, 0, time.UTC) }
func fv(f float64) basevalue.Value { return basevalue.Value{Tag: basevalue.Float, Data: f} }

// For every total pointwise f, lift1(x, f).at(t) = f(x.at(t)) at every
// defined t.
func TestLift1Coherence(t *testing.T) {
	seq, err := temporal.NewTSequence(basevalue.Float, temporal.Linear, []temporal.TInstant{
		temporal.NewTInstant(fv(0), at(0)),
		temporal.NewTInstant(fv(10), at(10)),
	}, true, true)
	require.NoError(t, err)

	double := Func1{ResultTag: basevalue.Float, Apply: func(a basevalue.Value) (basevalue.Value, error) {
		return fv(a.Data.(float64) * 2), nil
	}}
	lifted, err := Lift1(seq, double)
	require.NoError(t, err)

	for _, s := range []int{0, 3, 7, 10} {
		orig, ok, err := seq.At(at(s))
		require.NoError(t, err)
		require.True(t, ok)
		want, err := double.Apply(orig)
		require.NoError(t, err)

		got, ok, err := lifted.At(at(s))
		require.NoError(t, err)
		require.True(t, ok)
		assert.InDelta(t, want.Data.(float64), got.Data.(float64), 1e-9)
	}
}

func TestLift2Sum(t *testing.T) {
	a, err := temporal.NewTSequence(basevalue.Float, temporal.Linear, []temporal.TInstant{
		temporal.NewTInstant(fv(0), at(0)), temporal.NewTInstant(fv(10), at(10)),
	}, true, true)
	require.NoError(t, err)
	b, err := temporal.NewTSequence(basevalue.Float, temporal.Linear, []temporal.TInstant{
		temporal.NewTInstant(fv(100), at(0)), temporal.NewTInstant(fv(200), at(10)),
	}, true, true)
	require.NoError(t, err)

	sum := Func2{ResultTag: basevalue.Float, Apply: func(x, y basevalue.Value) (basevalue.Value, error) {
		return fv(x.Data.(float64) + y.Data.(float64)), nil
	}}
	result, err := Lift2(a, b, sum, nil)
	require.NoError(t, err)
	v, ok, err := result.At(at(5))
	require.NoError(t, err)
	require.True(t, ok)
	assert.InDelta(t, 155.0, v.Data.(float64), 1e-9)
}
