package timeset

import (
	"github.com/biogo/store/llrb"
	"github.com/grailbio/tgeo/period"
)

// StreamingPeriodSetBuilder accumulates periods that may arrive
// out of order and in arbitrary overlap with each other, and produces a
// normalized PeriodSet on Finish. It serves callers whose periods
// arrive one at a time rather than as a single slice (e.g. a streaming
// merge of several upstream feeds).
//
// Grounded on encoding/bampair/shard_info.go's ShardInfo, which indexes
// bam.Shard values by (refID, start) in a biogo/store/llrb.Tree for
// efficient floor/get lookups; here the tree orders period.Period values
// by (lower bound, upper bound) so Finish can walk them in ascending
// order with a single in-order traversal; Finish hands that list to
// NewPeriodSet, which sorts and merges it.
type StreamingPeriodSetBuilder struct {
	tree llrb.Tree
	n    int
}

// NewStreamingPeriodSetBuilder returns an empty builder.
func NewStreamingPeriodSetBuilder() *StreamingPeriodSetBuilder {
	return &StreamingPeriodSetBuilder{tree: llrb.Tree{}}
}

// periodKey adapts period.Period to llrb.Comparable, ordering first by
// lower bound and then by upper bound via period.CmpBounds so that ties
// at the same lower-bound value are still totally ordered.
type periodKey struct {
	p period.Period
	// seq disambiguates periods whose lower AND upper bounds tie exactly,
	// so the tree never silently drops a distinct-but-equal-keyed entry.
	seq int
}

func (k periodKey) Compare(c llrb.Comparable) int {
	o := c.(periodKey)
	if d := period.CmpBounds(k.p.Lower, o.p.Lower, true, true, k.p.LowerInc, o.p.LowerInc); d != 0 {
		return d
	}
	if d := period.CmpBounds(k.p.Upper, o.p.Upper, false, false, k.p.UpperInc, o.p.UpperInc); d != 0 {
		return d
	}
	return k.seq - o.seq
}

// Add inserts p into the builder.
func (b *StreamingPeriodSetBuilder) Add(p period.Period) {
	b.tree.Insert(periodKey{p: p, seq: b.n})
	b.n++
}

// Finish drains the builder into a normalized PeriodSet. The builder must
// not be reused afterward.
func (b *StreamingPeriodSetBuilder) Finish() (PeriodSet, error) {
	ordered := make([]period.Period, 0, b.n)
	b.tree.Do(func(c llrb.Comparable) bool {
		ordered = append(ordered, c.(periodKey).p)
		return false
	})
	return NewPeriodSet(ordered)
}
