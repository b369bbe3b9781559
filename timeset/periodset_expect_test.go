package timeset

import (
	"testing"

	"github.com/grailbio/testutil/expect"

	"github.com/grailbio/tgeo/period"
)

// Table-driven in the style of interval/bedunion_test.go's
// TestLoadSortedBEDIntervals: one slice of cases, one loop, expect.* per
// assertion rather than testify.

func TestPeriodSetUnionTable(t *testing.T) {
	tests := []struct {
		name     string
		a, b     []period.Period
		wantN    int
		wantHead period.Period
	}{
		{
			name:     "disjoint periods merge across a bridging interval",
			a:        []period.Period{incl(1, 3), incl(5, 7)},
			b:        []period.Period{incl(2, 6)},
			wantN:    1,
			wantHead: incl(1, 7),
		},
		{
			name:     "opposite-exclusivity shared bound still merges",
			a:        []period.Period{period.MustNew(day(1), day(3), true, false)},
			b:        []period.Period{period.MustNew(day(3), day(5), true, true)},
			wantN:    1,
			wantHead: incl(1, 5),
		},
		{
			name:     "non-overlapping periods stay distinct",
			a:        []period.Period{incl(1, 3)},
			b:        []period.Period{incl(10, 12)},
			wantN:    2,
			wantHead: incl(1, 3),
		},
	}

	for _, tt := range tests {
		a, err := NewPeriodSet(tt.a)
		expect.NoError(t, err)
		b, err := NewPeriodSet(tt.b)
		expect.NoError(t, err)

		u, err := a.Union(b)
		expect.NoError(t, err)
		expect.EQ(t, tt.wantN, u.N())
		if !u.PeriodAt(0).Eq(tt.wantHead) {
			t.Errorf("%s: first merged period = %v, want %v", tt.name, u.PeriodAt(0), tt.wantHead)
		}
	}
}

func TestContainsTimeTable(t *testing.T) {
	s, err := NewPeriodSet([]period.Period{incl(1, 3), incl(5, 7)})
	expect.NoError(t, err)

	tests := []struct {
		name string
		t    int
		want bool
	}{
		{"inside first period", 2, true},
		{"in the gap between periods", 4, false},
		{"on the inclusive lower bound of the second period", 5, true},
		{"past the last period", 9, false},
	}

	for _, tt := range tests {
		expect.EQ(t, tt.want, s.ContainsTime(day(tt.t)))
	}
}
