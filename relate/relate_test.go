package relate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grailbio/tgeo/basevalue"
	"github.com/grailbio/tgeo/cbuffer"
	"github.com/grailbio/tgeo/temporal"
)

func at(s int) time.Time { return time.Date(2026, 1, 1, 0, 0, s, 0, time.UTC) }

func cbv(c cbuffer.Cbuffer) basevalue.Value { return basevalue.Value{Tag: basevalue.Cbuffer, Data: c} }

// mockGeometry is an opaque handle carrying only an identity tag, enough
// for mockEngine to decide predicate outcomes without real geometry math.
type mockGeometry struct {
	id   string
	srid int
}

func (g mockGeometry) SRID() int { return g.srid }

// mockEngine is a minimal cbuffer.Engine stand-in for tests: it counts
// every ring handed to it and answers Intersects2D/Contains from
// functions the test supplies (true when none is set); every other
// Engine method is left unimplemented. This exercises the call shape
// relate uses without requiring a real geometry library.
type mockEngine struct {
	cbuffer.Engine
	next         int
	intersectsFn func(a, b mockGeometry) bool
	containsFn   func(a, b mockGeometry) bool
}

func (m *mockEngine) NewPolygonFromRing(r cbuffer.Ring, srid int) (cbuffer.Geometry, error) {
	m.next++
	return mockGeometry{id: "ring", srid: srid}, nil
}

func (m *mockEngine) Intersects2D(a, b cbuffer.Geometry) (bool, error) {
	if m.intersectsFn == nil {
		return true, nil
	}
	return m.intersectsFn(a.(mockGeometry), b.(mockGeometry)), nil
}

func (m *mockEngine) Contains(a, b cbuffer.Geometry) (bool, error) {
	if m.containsFn == nil {
		return true, nil
	}
	return m.containsFn(a.(mockGeometry), b.(mockGeometry)), nil
}

// tintersects_cbuffer_tcbuffer must compute genuine intersection, not
// its negation. Cbuffer(Point(0,0),1) against a single-instant tcbuffer
// holding the identical buffer must be true at that instant, never
// false.
func TestTIntersectsCbufferNotNegated(t *testing.T) {
	c, err := cbuffer.New(cbuffer.Point{X: 0, Y: 0}, 1, 0)
	require.NoError(t, err)

	seq, err := temporal.NewTSequence(basevalue.Cbuffer, temporal.Discrete, []temporal.TInstant{
		temporal.NewTInstant(cbv(c), at(0)),
	}, true, true)
	require.NoError(t, err)

	result, err := TIntersectsCbuffer(c, seq)
	require.NoError(t, err)
	v, ok, err := result.At(at(0))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, true, v.Data)
}

func TestTIntersectsCbufferDisjointCase(t *testing.T) {
	c, err := cbuffer.New(cbuffer.Point{X: 0, Y: 0}, 1, 0)
	require.NoError(t, err)
	far, err := cbuffer.New(cbuffer.Point{X: 100, Y: 100}, 1, 0)
	require.NoError(t, err)

	seq, err := temporal.NewTSequence(basevalue.Cbuffer, temporal.Discrete, []temporal.TInstant{
		temporal.NewTInstant(cbv(far), at(0)),
	}, true, true)
	require.NoError(t, err)

	result, err := TIntersectsCbuffer(c, seq)
	require.NoError(t, err)
	v, _, err := result.At(at(0))
	require.NoError(t, err)
	assert.Equal(t, false, v.Data)
}

// ea_intersects_geo_tcbuffer must call the intersects variant, not a
// disjoint variant, when testing a moving buffer against
// a static geometry. This guards the plumbing directly: the mock engine
// reports "these two rings do intersect" and EverIntersects must return
// true, not its negation.
func TestEverIntersectsCallsIntersectsNotDisjoint(t *testing.T) {
	c1, _ := cbuffer.New(cbuffer.Point{X: 0, Y: 0}, 1, 0)
	c2, _ := cbuffer.New(cbuffer.Point{X: 5, Y: 0}, 1, 0)
	eng := &mockEngine{intersectsFn: func(a, b mockGeometry) bool { return true }}
	g := mockGeometry{id: "target"}

	ok, err := EverIntersects(eng, []cbuffer.Instant{{Value: c1}, {Value: c2}}, cbuffer.Linear, g)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestEverIntersectsFalseWhenNoUnitIntersects(t *testing.T) {
	c1, _ := cbuffer.New(cbuffer.Point{X: 0, Y: 0}, 1, 0)
	c2, _ := cbuffer.New(cbuffer.Point{X: 5, Y: 0}, 1, 0)
	eng := &mockEngine{intersectsFn: func(a, b mockGeometry) bool { return false }}
	g := mockGeometry{id: "target"}

	ok, err := EverIntersects(eng, []cbuffer.Instant{{Value: c1}, {Value: c2}}, cbuffer.Linear, g)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAlwaysContainsRequiresEveryUnit(t *testing.T) {
	c1, _ := cbuffer.New(cbuffer.Point{X: 0, Y: 0}, 1, 0)
	c2, _ := cbuffer.New(cbuffer.Point{X: 5, Y: 0}, 1, 0)
	calls := 0
	eng := &mockEngine{containsFn: func(a, b mockGeometry) bool {
		calls++
		return calls == 1
	}}
	g := mockGeometry{id: "target"}

	ok, err := AlwaysContains(eng, []cbuffer.Instant{{Value: c1}, {Value: c2}, {Value: c1}}, cbuffer.Linear, g)
	require.NoError(t, err)
	assert.False(t, ok)
}

// The classic ill-conditioned quadratic t²-(1e8+1e-8)t+1=0 has exact
// roots 1e8 and 1e-8. The naive (-b±√disc)/2a formula computes the
// small root by subtracting two nearly-equal ~1e8 magnitudes and loses
// most of its significant digits; the Viète-stabilized solver recovers
// both roots to near machine precision.
func TestSolveQuadraticVieteStableNearCancellation(t *testing.T) {
	b := -(1e8 + 1e-8)
	roots := solveQuadraticViete(1, b, 1)
	require.Len(t, roots, 2)

	var big, small float64
	if roots[0] > roots[1] {
		big, small = roots[0], roots[1]
	} else {
		big, small = roots[1], roots[0]
	}
	assert.InEpsilon(t, 1e8, big, 1e-9)
	assert.InEpsilon(t, 1e-8, small, 1e-6)
}

// Two stationary points 2 apart (well outside d=1) over [t0,t1] yield
// the quadratic a=0,b=0,c=3 — zero solutions, constant-false.
func TestDWithinScenario4NoMotionNoCrossing(t *testing.T) {
	a0 := cbuffer.Cbuffer{Center: cbuffer.Point{X: 0, Y: 0}}
	a1 := cbuffer.Cbuffer{Center: cbuffer.Point{X: 0, Y: 0}}
	b0 := cbuffer.Cbuffer{Center: cbuffer.Point{X: 2, Y: 0}}
	b1 := cbuffer.Cbuffer{Center: cbuffer.Point{X: 2, Y: 0}}

	roots := dwithinCrossings(a0, a1, b0, b1, 1)
	assert.Empty(t, roots)
	assert.False(t, a0.DWithin(b0, 1))
}

// Point (0,0)->(4,0) vs stationary (2,0), d=1, crosses at parameters
// u1=0.25 and u2=0.75 — instants t0+1 and t0+3 on a [t0,t0+4] window.
func TestDWithinScenario5Crossing(t *testing.T) {
	a0 := cbuffer.Cbuffer{Center: cbuffer.Point{X: 0, Y: 0}}
	a1 := cbuffer.Cbuffer{Center: cbuffer.Point{X: 4, Y: 0}}
	b0 := cbuffer.Cbuffer{Center: cbuffer.Point{X: 2, Y: 0}}
	b1 := cbuffer.Cbuffer{Center: cbuffer.Point{X: 2, Y: 0}}

	roots := dwithinCrossings(a0, a1, b0, b1, 1)
	require.Len(t, roots, 2)
	var lo, hi float64
	if roots[0] < roots[1] {
		lo, hi = roots[0], roots[1]
	} else {
		lo, hi = roots[1], roots[0]
	}
	assert.InDelta(t, 0.25, lo, 1e-9)
	assert.InDelta(t, 0.75, hi, 1e-9)
}

func TestDWithinCrossingFinderFindsThreshold(t *testing.T) {
	a0, _ := cbuffer.New(cbuffer.Point{X: 0, Y: 0}, 1, 0)
	a1, _ := cbuffer.New(cbuffer.Point{X: 10, Y: 0}, 1, 0)
	b0, _ := cbuffer.New(cbuffer.Point{X: 0, Y: 5}, 1, 0)
	b1, _ := cbuffer.New(cbuffer.Point{X: 10, Y: -5}, 1, 0)

	find := DWithinCrossingFinder(1)
	times, err := find(at(0), at(10),
		temporal.NewTInstant(cbv(a0), at(0)), temporal.NewTInstant(cbv(a1), at(10)),
		temporal.NewTInstant(cbv(b0), at(0)), temporal.NewTInstant(cbv(b1), at(10)))
	require.NoError(t, err)
	assert.NotEmpty(t, times)
	for _, tm := range times {
		assert.True(t, tm.After(at(0)) && tm.Before(at(10)))
	}
}

func TestTDWithinProducesStepSequence(t *testing.T) {
	a, err := temporal.NewTSequence(basevalue.Cbuffer, temporal.Linear, []temporal.TInstant{
		temporal.NewTInstant(cbv(mustCbuffer(0, 0, 1)), at(0)),
		temporal.NewTInstant(cbv(mustCbuffer(10, 0, 1)), at(10)),
	}, true, true)
	require.NoError(t, err)
	b, err := temporal.NewTSequence(basevalue.Cbuffer, temporal.Linear, []temporal.TInstant{
		temporal.NewTInstant(cbv(mustCbuffer(0, 5, 1)), at(0)),
		temporal.NewTInstant(cbv(mustCbuffer(10, -5, 1)), at(10)),
	}, true, true)
	require.NoError(t, err)

	result, err := TDWithin(a, b, 1)
	require.NoError(t, err)
	assert.Equal(t, temporal.Step, result.Interp)
	v0, ok, err := result.At(at(0))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, false, v0.Data)
}

func mustCbuffer(x, y, r float64) cbuffer.Cbuffer {
	c, err := cbuffer.New(cbuffer.Point{X: x, Y: y}, r, 0)
	if err != nil {
		panic(err)
	}
	return c
}
