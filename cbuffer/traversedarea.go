package cbuffer

import (
	"encoding/binary"
	"math"
	"sync"

	farm "github.com/dgryski/go-farm"

	"github.com/grailbio/tgeo/errs"
)

// Interp mirrors package temporal's Interpolation without importing it,
// keeping cbuffer a leaf package: temporal and lifting sit above
// cbuffer, not below it.
type Interp uint8

const (
	Discrete Interp = iota
	Step
	Linear
)

// Instant pairs a buffer value with the time it holds at, the minimal
// shape TraversedArea needs from a TSequence without depending on
// package temporal.
type Instant struct {
	Value Cbuffer
	Nanos int64
}

// TraversedArea builds one ring per "occupied" interval of seq under
// interp: one ring per instant for Discrete/Step (each instant's buffer
// held as a static disk until the next), and one ring per consecutive
// pair for Linear (the tangent-hull sweep Segment computes). The union of
// these rings is the traversed area of a temporal buffer; the caller is
// responsible for unioning the returned rings via the geometry engine.
func TraversedArea(seq []Instant, interp Interp) ([]Ring, error) {
	if len(seq) == 0 {
		return nil, errs.NewDomainError("cbuffer.TraversedArea: empty sequence")
	}
	if len(seq) == 1 || interp != Linear {
		rings := make([]Ring, len(seq))
		for i, in := range seq {
			rings[i] = Circle(in.Value)
		}
		return rings, nil
	}
	rings := make([]Ring, 0, len(seq)-1)
	for i := 0; i+1 < len(seq); i++ {
		r, err := Segment(seq[i].Value, seq[i+1].Value)
		if err != nil {
			return nil, err
		}
		rings = append(rings, r)
	}
	return rings, nil
}

// cacheKey hashes a traversed-area query (the two endpoint buffers) with
// farm.Hash64 so repeated queries over a moving buffer's consecutive
// segments (a common access pattern when rendering a whole TSequence)
// avoid recomputing tangent-line trigonometry.
func cacheKey(c1, c2 Cbuffer) uint64 {
	var buf [40]byte
	binary.LittleEndian.PutUint64(buf[0:8], math.Float64bits(c1.Center.X))
	binary.LittleEndian.PutUint64(buf[8:16], math.Float64bits(c1.Center.Y))
	binary.LittleEndian.PutUint64(buf[16:24], math.Float64bits(c1.Radius))
	binary.LittleEndian.PutUint64(buf[24:32], math.Float64bits(c2.Center.X))
	binary.LittleEndian.PutUint64(buf[32:40], math.Float64bits(c2.Center.Y))
	h := farm.Hash64(buf[:])
	return farm.Hash64WithSeed(fbytes(c2.Radius), h)
}

func fbytes(f float64) []byte {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], math.Float64bits(f))
	return b[:]
}

// SegmentCache memoizes Segment by the two endpoint buffers, sharded
// across a fixed number of locks to keep lock contention low under
// concurrent readers.
type SegmentCache struct {
	shards [cacheShards]segmentShard
}

const cacheShards = 16

type segmentShard struct {
	mu sync.Mutex
	m  map[uint64]Ring
}

// NewSegmentCache returns an empty cache ready for concurrent use.
func NewSegmentCache() *SegmentCache {
	c := &SegmentCache{}
	for i := range c.shards {
		c.shards[i].m = make(map[uint64]Ring)
	}
	return c
}

// Segment returns the cached ring for (c1,c2), computing and storing it
// on a miss.
func (c *SegmentCache) Segment(c1, c2 Cbuffer) (Ring, error) {
	key := cacheKey(c1, c2)
	shard := &c.shards[key%cacheShards]
	shard.mu.Lock()
	defer shard.mu.Unlock()
	if r, ok := shard.m[key]; ok {
		return r, nil
	}
	r, err := Segment(c1, c2)
	if err != nil {
		return Ring{}, err
	}
	shard.m[key] = r
	return r, nil
}
