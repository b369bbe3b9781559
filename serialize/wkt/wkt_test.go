package wkt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grailbio/tgeo/basevalue"
	"github.com/grailbio/tgeo/cbuffer"
	"github.com/grailbio/tgeo/period"
	"github.com/grailbio/tgeo/temporal"
	"github.com/grailbio/tgeo/timeset"
)

func at(s int) time.Time { return time.Date(2026, 1, 1, 0, 0, s, 0, time.UTC) }

func TestPeriodRoundTrip(t *testing.T) {
	p := period.MustNew(at(0), at(10), true, false)
	s := WritePeriod(p)
	got, err := ParsePeriod(s)
	require.NoError(t, err)
	assert.True(t, p.Eq(got))
}

// Literal example: Period '[2000-01-01, 2000-01-02]'.
func TestPeriodLiteralExample(t *testing.T) {
	lo := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	hi := time.Date(2000, 1, 2, 0, 0, 0, 0, time.UTC)
	p := period.MustNew(lo, hi, true, true)
	s := WritePeriod(p)
	got, err := ParsePeriod(s)
	require.NoError(t, err)
	assert.True(t, p.Eq(got))
}

func TestTimestampSetRoundTrip(t *testing.T) {
	ts, err := timeset.NewTimestampSet([]time.Time{at(3), at(1), at(7)})
	require.NoError(t, err)
	got, err := ParseTimestampSet(WriteTimestampSet(ts))
	require.NoError(t, err)
	assert.True(t, ts.Eq(got))
}

func TestPeriodSetRoundTrip(t *testing.T) {
	ps, err := timeset.NewPeriodSet([]period.Period{
		period.MustNew(at(0), at(2), true, false),
		period.MustNew(at(5), at(8), true, true),
	})
	require.NoError(t, err)
	got, err := ParsePeriodSet(WritePeriodSet(ps))
	require.NoError(t, err)
	assert.True(t, ps.Eq(got))
}

func TestCbufferRoundTripWithSRID(t *testing.T) {
	c2, err := cbuffer.New(cbuffer.Point{X: 1.5, Y: -2}, 3, 4326)
	require.NoError(t, err)
	s := WriteCbuffer(c2, true)
	assert.Contains(t, s, "SRID=4326;")
	got, err := ParseCbuffer(s)
	require.NoError(t, err)
	assert.Equal(t, c2.SRID, got.SRID)
	assert.InDelta(t, c2.Center.X, got.Center.X, 1e-9)
	assert.InDelta(t, c2.Radius, got.Radius, 1e-9)
}

func TestCbufferRoundTripWithoutSRID(t *testing.T) {
	c, err := cbuffer.New(cbuffer.Point{X: 0, Y: 0}, 1, 0)
	require.NoError(t, err)
	s := WriteCbuffer(c, true)
	assert.NotContains(t, s, "SRID")
	got, err := ParseCbuffer(s)
	require.NoError(t, err)
	assert.True(t, c.Eq(got))
}

func TestTInstantTextRoundTrip(t *testing.T) {
	in := temporal.NewTInstant(basevalue.Value{Tag: basevalue.Text, Data: `hello "world"`}, at(2))
	s, err := WriteTInstant(in)
	require.NoError(t, err)
	got, err := ParseTInstant(s, basevalue.Text)
	require.NoError(t, err)
	assert.True(t, in.Eq(got))
}

func TestTInstantRoundTrip(t *testing.T) {
	in := temporal.NewTInstant(basevalue.Value{Tag: basevalue.Float, Data: 3.5}, at(1))
	s, err := WriteTInstant(in)
	require.NoError(t, err)
	got, err := ParseTInstant(s, basevalue.Float)
	require.NoError(t, err)
	assert.True(t, in.Eq(got))
}

func TestTInstantGeomPointRoundTrip(t *testing.T) {
	in := temporal.NewTInstant(basevalue.Value{Tag: basevalue.GeomPoint, Data: basevalue.Point{X: 1.5, Y: -2.25}}, at(1))
	s, err := WriteTInstant(in)
	require.NoError(t, err)
	got, err := ParseTInstant(s, basevalue.GeomPoint)
	require.NoError(t, err)
	assert.True(t, in.Eq(got))
}

func TestTInstantNPointRoundTrip(t *testing.T) {
	in := temporal.NewTInstant(basevalue.Value{Tag: basevalue.NPoint, Data: basevalue.NPointValue{Route: 7, Measure: 0.25}}, at(1))
	s, err := WriteTInstant(in)
	require.NoError(t, err)
	got, err := ParseTInstant(s, basevalue.NPoint)
	require.NoError(t, err)
	assert.True(t, in.Eq(got))
}

func TestTInstantPoseRoundTrip(t *testing.T) {
	in := temporal.NewTInstant(basevalue.Value{Tag: basevalue.Pose, Data: basevalue.PoseValue{
		Position: basevalue.Point{X: 1, Y: 2}, Heading: 1.25,
	}}, at(1))
	s, err := WriteTInstant(in)
	require.NoError(t, err)
	got, err := ParseTInstant(s, basevalue.Pose)
	require.NoError(t, err)
	assert.True(t, in.Eq(got))
}

func TestTInstantRigidGeometryRoundTrip(t *testing.T) {
	in := temporal.NewTInstant(basevalue.Value{Tag: basevalue.RigidGeometry, Data: basevalue.RigidGeometryValue{
		ShapeID: "forklift-07",
		Pose:    basevalue.PoseValue{Position: basevalue.Point{X: 3, Y: 4}, Heading: 0.5},
	}}, at(1))
	s, err := WriteTInstant(in)
	require.NoError(t, err)
	got, err := ParseTInstant(s, basevalue.RigidGeometry)
	require.NoError(t, err)
	assert.True(t, in.Eq(got))
}

func TestTSequenceRoundTrip(t *testing.T) {
	seq, err := temporal.NewTSequence(basevalue.Float, temporal.Linear, []temporal.TInstant{
		temporal.NewTInstant(basevalue.Value{Tag: basevalue.Float, Data: 0.0}, at(0)),
		temporal.NewTInstant(basevalue.Value{Tag: basevalue.Float, Data: 10.0}, at(10)),
	}, true, true)
	require.NoError(t, err)
	s, err := WriteTSequence(seq)
	require.NoError(t, err)
	got, err := ParseTSequence(s, basevalue.Float)
	require.NoError(t, err)
	require.Equal(t, seq.N(), got.N())
	for i := 0; i < seq.N(); i++ {
		assert.True(t, seq.InstantAt(i).Eq(got.InstantAt(i)))
	}
}

func TestTSequenceCbufferRoundTrip(t *testing.T) {
	c1, _ := cbuffer.New(cbuffer.Point{X: 0, Y: 0}, 1, 0)
	seq, err := temporal.NewTSequence(basevalue.Cbuffer, temporal.Discrete, []temporal.TInstant{
		temporal.NewTInstant(basevalue.Value{Tag: basevalue.Cbuffer, Data: c1}, at(0)),
	}, true, true)
	require.NoError(t, err)
	s, err := WriteTSequence(seq)
	require.NoError(t, err)
	got, err := ParseTSequence(s, basevalue.Cbuffer)
	require.NoError(t, err)
	assert.True(t, seq.InstantAt(0).Eq(got.InstantAt(0)))
}

func TestTSequenceSetRoundTrip(t *testing.T) {
	s1, err := temporal.NewTSequence(basevalue.Float, temporal.Step, []temporal.TInstant{
		temporal.NewTInstant(basevalue.Value{Tag: basevalue.Float, Data: 1.0}, at(0)),
		temporal.NewTInstant(basevalue.Value{Tag: basevalue.Float, Data: 2.0}, at(3)),
	}, true, false)
	require.NoError(t, err)
	s2, err := temporal.NewTSequence(basevalue.Float, temporal.Step, []temporal.TInstant{
		temporal.NewTInstant(basevalue.Value{Tag: basevalue.Float, Data: 5.0}, at(10)),
	}, true, true)
	require.NoError(t, err)
	ss, err := temporal.NewTSequenceSet(basevalue.Float, temporal.Step, []temporal.TSequence{s1, s2})
	require.NoError(t, err)

	s, err := WriteTSequenceSet(ss)
	require.NoError(t, err)
	got, err := ParseTSequenceSet(s, basevalue.Float)
	require.NoError(t, err)
	require.Equal(t, ss.N(), got.N())
	for i := 0; i < ss.N(); i++ {
		assert.Equal(t, ss.SequenceAt(i).N(), got.SequenceAt(i).N())
	}
}
