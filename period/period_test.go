package period

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func t5() time.Time { return time.Date(2026, 1, 1, 0, 0, 5, 0, time.UTC) }

// cmp_bounds(lower=5,inc=true, lower=5,inc=false) -> -1: an inclusive
// lower bound sorts before an exclusive one at the same instant.
func TestCmpBoundsInclusiveLowerSortsFirst(t *testing.T) {
	v := t5()
	assert.Equal(t, -1, CmpBounds(v, v, true, true, true, false))
	assert.Equal(t, 1, CmpBounds(v, v, true, true, false, true))
	assert.Equal(t, 0, CmpBounds(v, v, true, true, true, true))
}

func TestCmpBoundsUpperExclusiveSortsFirst(t *testing.T) {
	v := t5()
	assert.Equal(t, -1, CmpBounds(v, v, false, false, false, true))
	assert.Equal(t, 1, CmpBounds(v, v, false, false, true, false))
}

func TestNewRejectsInvertedBounds(t *testing.T) {
	a := t5()
	b := a.Add(time.Hour)
	_, err := New(b, a, true, true)
	require.Error(t, err)
}

func TestNewRejectsNonInclusiveInstant(t *testing.T) {
	a := t5()
	_, err := New(a, a, true, false)
	require.Error(t, err)
	p, err := New(a, a, true, true)
	require.NoError(t, err)
	assert.True(t, p.IsInstant())
}

func TestOverlapsAdjacency(t *testing.T) {
	base := t5()
	p1 := MustNew(base, base.Add(2*time.Second), true, false) // [5,7)
	p2 := MustNew(base.Add(2*time.Second), base.Add(4*time.Second), true, true) // [7,9]
	assert.False(t, p1.Overlaps(p2))
	assert.True(t, p1.Adjacent(p2))
	assert.True(t, p1.Before(p2))

	p3 := MustNew(base.Add(2*time.Second), base.Add(4*time.Second), false, true) // (7,9]
	assert.False(t, p1.Adjacent(p3))
	assert.True(t, p1.Before(p3))
}

func TestContainsAndUnion(t *testing.T) {
	base := t5()
	outer := MustNew(base, base.Add(10*time.Second), true, true)
	inner := MustNew(base.Add(2*time.Second), base.Add(4*time.Second), true, true)
	assert.True(t, outer.Contains(inner))
	assert.False(t, inner.Contains(outer))

	u, err := outer.Union(inner)
	require.NoError(t, err)
	assert.True(t, u.Eq(outer))
}

func TestIntersection(t *testing.T) {
	base := t5()
	a := MustNew(base, base.Add(5*time.Second), true, true)
	b := MustNew(base.Add(3*time.Second), base.Add(8*time.Second), true, true)
	inter, ok := a.Intersection(b)
	require.True(t, ok)
	assert.True(t, inter.Eq(MustNew(base.Add(3*time.Second), base.Add(5*time.Second), true, true)))

	c := MustNew(base.Add(10*time.Second), base.Add(12*time.Second), true, true)
	_, ok = a.Intersection(c)
	assert.False(t, ok)
}
