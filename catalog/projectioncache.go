package catalog

import (
	"strconv"
	"sync"

	"github.com/blainsmith/seahash"
	"github.com/grailbio/base/log"
	gunsafe "github.com/grailbio/base/unsafe"
)

const numProjectionCacheShards = 1024

// Projection is an opaque coordinate-transform handle between two
// spatial reference systems. Building one is assumed expensive (parsing
// two PROJ.4 definitions and composing a transform pipeline); callers
// go through ProjectionCache rather than constructing one per call.
type Projection struct {
	SrcSRID, DstSRID int
	// Forward/Inverse transform a point between the two reference
	// systems. Both are the identity function when Src == Dst.
	Forward func(x, y float64) (float64, float64)
	Inverse func(x, y float64) (float64, float64)
}

func identityProjection(src, dst int) *Projection {
	id := func(x, y float64) (float64, float64) { return x, y }
	return &Projection{SrcSRID: src, DstSRID: dst, Forward: id, Inverse: id}
}

// Builder constructs a Projection between two catalog entries; supplied
// by callers that have a real geodesy/proj implementation wired in
// (this package only caches the result).
type Builder func(src, dst SRIDEntry) (*Projection, error)

type projectionShard struct {
	mu    sync.Mutex
	cache map[uint64]*Projection
}

// ProjectionCache is a sharded, thread-safe cache from an (src SRID, dst
// SRID) pair to its Projection handle, sharded the way
// encoding/bamprovider's concurrentMap shards by sequence name: a
// seahash of the lookup key selects one of numProjectionCacheShards
// independently-locked buckets, so concurrent lookups for different
// SRID pairs rarely contend.
type ProjectionCache struct {
	shards  [numProjectionCacheShards]projectionShard
	catalog *SRIDCatalog
	build   Builder
}

// NewProjectionCache builds a cache that resolves cache misses against
// cat using build. build may be nil, in which case only src==dst
// identity projections are ever produced and any other pair misses with
// ok=false.
func NewProjectionCache(cat *SRIDCatalog, build Builder) *ProjectionCache {
	c := &ProjectionCache{catalog: cat, build: build}
	for i := range c.shards {
		c.shards[i].cache = make(map[uint64]*Projection)
	}
	return c
}

func pairKey(src, dst int) uint64 {
	// strconv avoids a fixed-width binary encoding dependency for what
	// is a low-frequency cache-key computation (projection construction
	// dominates any pair-key hashing cost).
	return seahash.Sum64(gunsafe.StringToBytes(strconv.Itoa(src) + ":" + strconv.Itoa(dst)))
}

// Get returns the cached (or newly built and cached) Projection from
// src to dst, building it via the configured Builder on a miss.
func (c *ProjectionCache) Get(src, dst int) (*Projection, bool) {
	if src == dst {
		return identityProjection(src, dst), true
	}
	h := pairKey(src, dst)
	shard := &c.shards[h%uint64(len(c.shards))]

	shard.mu.Lock()
	p, ok := shard.cache[h]
	shard.mu.Unlock()
	if ok {
		return p, true
	}

	if c.build == nil || c.catalog == nil {
		return nil, false
	}
	srcEntry, ok1 := c.catalog.Lookup(src)
	dstEntry, ok2 := c.catalog.Lookup(dst)
	if !ok1 || !ok2 {
		log.Error.Printf("catalog: projection lookup %d->%d failed: unknown SRID in catalog", src, dst)
		return nil, false
	}
	built, err := c.build(srcEntry, dstEntry)
	if err != nil {
		log.Error.Printf("catalog: building projection %d->%d failed: %v", src, dst, err)
		return nil, false
	}

	shard.mu.Lock()
	shard.cache[h] = built
	shard.mu.Unlock()
	return built, true
}

// ApproxSize returns the approximate number of cached pairs (not
// counting identity pairs, which are never stored). It returns a
// correct number only when invoked while no other goroutine is adding
// entries, the same caveat concurrentMap.approxSize documents.
func (c *ProjectionCache) ApproxSize() int {
	n := 0
	for i := range c.shards {
		s := &c.shards[i]
		s.mu.Lock()
		n += len(s.cache)
		s.mu.Unlock()
	}
	return n
}
