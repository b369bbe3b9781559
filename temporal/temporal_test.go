package temporal

import (
	"testing"
	"time"

	"github.com/grailbio/tgeo/basevalue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(s int) time.Time { return time.Date(2026, 1, 1, 0, 0, s, 0, time.UTC) }

func fv(f float64) basevalue.Value { return basevalue.Value{Tag: basevalue.Float, Data: f} }

func TestTSequenceLinearAt(t *testing.T) {
	seq, err := NewTSequence(basevalue.Float, Linear, []TInstant{
		NewTInstant(fv(0), at(0)),
		NewTInstant(fv(10), at(10)),
	}, true, true)
	require.NoError(t, err)

	v, ok, err := seq.At(at(5))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 5.0, v.Data)

	_, ok, err = seq.At(at(20))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestTSequenceStepAt(t *testing.T) {
	seq, err := NewTSequence(basevalue.Float, Step, []TInstant{
		NewTInstant(fv(1), at(0)),
		NewTInstant(fv(2), at(10)),
	}, true, true)
	require.NoError(t, err)
	v, ok, err := seq.At(at(5))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 1.0, v.Data)
}

func TestTSequenceRejectsNonIncreasingTimes(t *testing.T) {
	_, err := NewTSequence(basevalue.Float, Step, []TInstant{
		NewTInstant(fv(1), at(5)),
		NewTInstant(fv(2), at(0)),
	}, true, true)
	assert.Error(t, err)
}

func TestLinearRejectsNonInterpolableBase(t *testing.T) {
	_, err := NewTSequence(basevalue.Bool, Linear, []TInstant{
		NewTInstant(basevalue.Value{Tag: basevalue.Bool, Data: true}, at(0)),
		NewTInstant(basevalue.Value{Tag: basevalue.Bool, Data: false}, at(5)),
	}, true, true)
	assert.Error(t, err)
}

func TestSynchronizeIntersection(t *testing.T) {
	a, err := NewTSequence(basevalue.Float, Linear, []TInstant{
		NewTInstant(fv(0), at(0)), NewTInstant(fv(10), at(10)),
	}, true, true)
	require.NoError(t, err)
	b, err := NewTSequence(basevalue.Float, Linear, []TInstant{
		NewTInstant(fv(100), at(5)), NewTInstant(fv(200), at(15)),
	}, true, true)
	require.NoError(t, err)

	sa, sb, err := Synchronize(a, b, SyncIntersection, nil)
	require.NoError(t, err)
	assert.True(t, sa.Span().Eq(sb.Span()))
	assert.True(t, sa.Span().Lower.Equal(at(5)))
	assert.True(t, sa.Span().Upper.Equal(at(10)))
}

// SyncIntersection must not interpolate either side onto the other
// side's instant times: a has an instant at 6 that b lacks, so only sa
// should pick it up.
func TestSyncIntersectionDoesNotCrossInterpolate(t *testing.T) {
	a, err := NewTSequence(basevalue.Float, Linear, []TInstant{
		NewTInstant(fv(0), at(0)), NewTInstant(fv(60), at(6)), NewTInstant(fv(100), at(10)),
	}, true, true)
	require.NoError(t, err)
	b, err := NewTSequence(basevalue.Float, Linear, []TInstant{
		NewTInstant(fv(500), at(5)), NewTInstant(fv(1000), at(10)),
	}, true, true)
	require.NoError(t, err)

	sa, sb, err := Synchronize(a, b, SyncIntersection, nil)
	require.NoError(t, err)
	require.Equal(t, 3, sa.N())
	require.Equal(t, 2, sb.N())
	for i := 0; i < sb.N(); i++ {
		assert.True(t, sb.InstantAt(i).T.Equal(at(5)) || sb.InstantAt(i).T.Equal(at(10)))
	}
}

// SyncNoCrossings, by contrast, does interpolate each side onto the
// other's instant times: both sides end up with the same instant count.
func TestSyncNoCrossingsDoesCrossInterpolate(t *testing.T) {
	a, err := NewTSequence(basevalue.Float, Linear, []TInstant{
		NewTInstant(fv(0), at(0)), NewTInstant(fv(60), at(6)), NewTInstant(fv(100), at(10)),
	}, true, true)
	require.NoError(t, err)
	b, err := NewTSequence(basevalue.Float, Linear, []TInstant{
		NewTInstant(fv(500), at(5)), NewTInstant(fv(1000), at(10)),
	}, true, true)
	require.NoError(t, err)

	sa, sb, err := Synchronize(a, b, SyncNoCrossings, nil)
	require.NoError(t, err)
	assert.Equal(t, sa.N(), sb.N())
	assert.Equal(t, 3, sb.N())
}

func TestWithInstantInsertsMidSegment(t *testing.T) {
	seq, err := NewTSequence(basevalue.Float, Linear, []TInstant{
		NewTInstant(fv(0), at(0)), NewTInstant(fv(10), at(10)),
	}, true, true)
	require.NoError(t, err)
	seq2, err := seq.WithInstant(NewTInstant(fv(5), at(5)))
	require.NoError(t, err)
	require.Equal(t, 3, seq2.N())
	assert.Equal(t, 5.0, seq2.InstantAt(1).Value.Data)
}
