package temporal

import (
	"testing"

	"github.com/grailbio/testutil/expect"

	"github.com/grailbio/tgeo/basevalue"
)

// Table-driven in the style of interval/bedunion_test.go's
// TestLoadSortedBEDIntervals: one slice of cases, one loop, expect.* per
// assertion rather than testify.

func TestTSequenceAtTable(t *testing.T) {
	linear, err := NewTSequence(basevalue.Float, Linear, []TInstant{
		NewTInstant(fv(0), at(0)),
		NewTInstant(fv(10), at(10)),
	}, true, true)
	expect.NoError(t, err)

	step, err := NewTSequence(basevalue.Float, Step, []TInstant{
		NewTInstant(fv(1), at(0)),
		NewTInstant(fv(2), at(10)),
	}, true, true)
	expect.NoError(t, err)

	tests := []struct {
		name string
		seq  TSequence
		at   int
		want float64
		ok   bool
	}{
		{"linear interpolates the midpoint", linear, 5, 5.0, true},
		{"linear holds the lower endpoint", linear, 0, 0.0, true},
		{"linear is undefined past the span", linear, 20, 0.0, false},
		{"step holds the prior value until the next instant", step, 5, 1.0, true},
		{"step switches exactly at the next instant", step, 10, 2.0, true},
	}

	for _, tt := range tests {
		v, ok, err := tt.seq.At(at(tt.at))
		expect.NoError(t, err)
		expect.EQ(t, tt.ok, ok)
		if ok {
			expect.EQ(t, tt.want, v.Data)
		}
	}
}

func TestSynchronizeTable(t *testing.T) {
	a, err := NewTSequence(basevalue.Float, Linear, []TInstant{
		NewTInstant(fv(0), at(0)), NewTInstant(fv(10), at(10)),
	}, true, true)
	expect.NoError(t, err)
	b, err := NewTSequence(basevalue.Float, Linear, []TInstant{
		NewTInstant(fv(100), at(5)), NewTInstant(fv(200), at(15)),
	}, true, true)
	expect.NoError(t, err)

	sa, sb, err := Synchronize(a, b, SyncIntersection, nil)
	expect.NoError(t, err)
	expect.EQ(t, true, sa.Span().Eq(sb.Span()))
	expect.EQ(t, true, sa.Span().Lower.Equal(at(5)))
	expect.EQ(t, true, sa.Span().Upper.Equal(at(10)))
}
