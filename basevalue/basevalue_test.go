package basevalue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScalarCapabilitiesRegistered(t *testing.T) {
	for _, tag := range []Tag{Bool, Int, Float, Text, GeomPoint, GeogPoint, NPoint, Pose, RigidGeometry} {
		c, err := CapabilitiesFor(tag)
		require.NoError(t, err)
		assert.Equal(t, tag, c.Tag)
	}
}

func TestUnregisteredTagErrors(t *testing.T) {
	_, err := CapabilitiesFor(Cbuffer)
	assert.Error(t, err)
}

func TestFloatInterpolateAndCollinear(t *testing.T) {
	c, err := CapabilitiesFor(Float)
	require.NoError(t, err)
	a := Value{Tag: Float, Data: 0.0}
	b := Value{Tag: Float, Data: 10.0}
	mid, err := c.Interpolate(a, b, 0.5)
	require.NoError(t, err)
	assert.Equal(t, 5.0, mid.Data)

	ok, err := c.Collinear(a, mid, b, 0.5)
	require.NoError(t, err)
	assert.True(t, ok)

	off := Value{Tag: Float, Data: 6.0}
	ok, err = c.Collinear(a, off, b, 0.5)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestIntCompareAndDistance(t *testing.T) {
	c, err := CapabilitiesFor(Int)
	require.NoError(t, err)
	cmp, err := c.Compare(Value{Tag: Int, Data: int64(3)}, Value{Tag: Int, Data: int64(5)})
	require.NoError(t, err)
	assert.Equal(t, -1, cmp)
	d, err := c.Distance(Value{Tag: Int, Data: int64(3)}, Value{Tag: Int, Data: int64(5)})
	require.NoError(t, err)
	assert.Equal(t, 2.0, d)
}

func TestBoolNotInterpolable(t *testing.T) {
	c, err := CapabilitiesFor(Bool)
	require.NoError(t, err)
	assert.False(t, c.Interpolable)
	_, err = c.Interpolate(Value{Tag: Bool, Data: true}, Value{Tag: Bool, Data: false}, 0.5)
	assert.Error(t, err)
}
