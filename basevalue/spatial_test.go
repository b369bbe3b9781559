package basevalue

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeomPointInterpolateAndDistance(t *testing.T) {
	c, err := CapabilitiesFor(GeomPoint)
	require.NoError(t, err)
	a := Value{Tag: GeomPoint, Data: Point{X: 0, Y: 0}}
	b := Value{Tag: GeomPoint, Data: Point{X: 10, Y: 0}}

	mid, err := c.Interpolate(a, b, 0.5)
	require.NoError(t, err)
	assert.Equal(t, Point{X: 5, Y: 0}, mid.Data)

	d, err := c.Distance(a, b)
	require.NoError(t, err)
	assert.Equal(t, 10.0, d)

	ok, err := c.Collinear(a, mid, b, 0.5)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestGeogPointDistanceIsGreatCircle(t *testing.T) {
	c, err := CapabilitiesFor(GeogPoint)
	require.NoError(t, err)
	// Roughly one degree of longitude along the equator is ~111km.
	a := Value{Tag: GeogPoint, Data: Point{X: 0, Y: 0}}
	b := Value{Tag: GeogPoint, Data: Point{X: 1, Y: 0}}
	d, err := c.Distance(a, b)
	require.NoError(t, err)
	assert.InDelta(t, 111195.0, d, 500)
}

func TestNPointRequiresSameRoute(t *testing.T) {
	c, err := CapabilitiesFor(NPoint)
	require.NoError(t, err)
	a := Value{Tag: NPoint, Data: NPointValue{Route: 1, Measure: 0.2}}
	b := Value{Tag: NPoint, Data: NPointValue{Route: 1, Measure: 0.8}}
	mid, err := c.Interpolate(a, b, 0.5)
	require.NoError(t, err)
	assert.Equal(t, 0.5, mid.Data.(NPointValue).Measure)

	other := Value{Tag: NPoint, Data: NPointValue{Route: 2, Measure: 0.1}}
	_, err = c.Interpolate(a, other, 0.5)
	assert.Error(t, err)
}

func TestPoseInterpolateWrapsHeadingShortestWay(t *testing.T) {
	c, err := CapabilitiesFor(Pose)
	require.NoError(t, err)
	// From a heading near 2*pi to one just past 0 should turn forward a
	// short distance, not backward almost a full revolution.
	a := Value{Tag: Pose, Data: PoseValue{Position: Point{X: 0, Y: 0}, Heading: 2*math.Pi - 0.1}}
	b := Value{Tag: Pose, Data: PoseValue{Position: Point{X: 0, Y: 0}, Heading: 0.1}}
	mid, err := c.Interpolate(a, b, 0.5)
	require.NoError(t, err)
	got := mid.Data.(PoseValue).Heading
	assert.True(t, got < 0.01 || got > 2*math.Pi-0.01, "got heading %v, want near 0 (mod 2pi)", got)
}

func TestRigidGeometryRequiresSameShape(t *testing.T) {
	c, err := CapabilitiesFor(RigidGeometry)
	require.NoError(t, err)
	a := Value{Tag: RigidGeometry, Data: RigidGeometryValue{ShapeID: "forklift", Pose: PoseValue{Position: Point{X: 0, Y: 0}}}}
	b := Value{Tag: RigidGeometry, Data: RigidGeometryValue{ShapeID: "forklift", Pose: PoseValue{Position: Point{X: 10, Y: 0}}}}
	mid, err := c.Interpolate(a, b, 0.5)
	require.NoError(t, err)
	assert.Equal(t, Point{X: 5, Y: 0}, mid.Data.(RigidGeometryValue).Pose.Position)

	other := Value{Tag: RigidGeometry, Data: RigidGeometryValue{ShapeID: "pallet", Pose: PoseValue{}}}
	_, err = c.Interpolate(a, other, 0.5)
	assert.Error(t, err)
}
