package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grailbio/tgeo/basevalue"
)

func TestLookupByName(t *testing.T) {
	d, ok := LookupByName("cbuffer")
	require.True(t, ok)
	assert.Equal(t, basevalue.Cbuffer, d.Tag)
}

func TestLookupByTag(t *testing.T) {
	d, ok := LookupByTag(basevalue.Float)
	require.True(t, ok)
	assert.Equal(t, "float", d.Name)
}

func TestLookupUnknownName(t *testing.T) {
	_, ok := LookupByName("nonexistent")
	assert.False(t, ok)
}

func TestNamesIncludesAllRegisteredTypes(t *testing.T) {
	names := Names()
	assert.Contains(t, names, "cbuffer")
	assert.Contains(t, names, "boolean")
	assert.Len(t, names, 10)
}

const sampleCatalog = `# srid,name,proj4
4326,WGS 84,+proj=longlat +datum=WGS84 +no_defs
3857,WGS 84 / Pseudo-Mercator,+proj=merc +a=6378137 +b=6378137 +lat_ts=0 +lon_0=0 +x_0=0 +y_0=0 +k=1 +units=m +nadgrids=@null +wktext +no_defs
`

func TestLoadSRIDCatalogFromReader(t *testing.T) {
	cat, err := LoadSRIDCatalogFromReader(strings.NewReader(sampleCatalog))
	require.NoError(t, err)
	assert.Equal(t, 2, cat.Len())

	e, ok := cat.Lookup(4326)
	require.True(t, ok)
	assert.Equal(t, "WGS 84", e.Name)
	assert.Contains(t, e.Proj4, "+proj=longlat")

	e2, ok := cat.Lookup(3857)
	require.True(t, ok)
	assert.Contains(t, e2.Proj4, "+proj=merc")
}

func TestLoadSRIDCatalogRejectsMalformedLine(t *testing.T) {
	_, err := LoadSRIDCatalogFromReader(strings.NewReader("not-a-valid-line\n"))
	assert.Error(t, err)
}

func TestProjectionCacheIdentity(t *testing.T) {
	c := NewProjectionCache(nil, nil)
	p, ok := c.Get(4326, 4326)
	require.True(t, ok)
	x, y := p.Forward(1.5, 2.5)
	assert.Equal(t, 1.5, x)
	assert.Equal(t, 2.5, y)
	assert.Equal(t, 0, c.ApproxSize())
}

func TestProjectionCacheBuildsAndCaches(t *testing.T) {
	cat, err := LoadSRIDCatalogFromReader(strings.NewReader(sampleCatalog))
	require.NoError(t, err)

	builds := 0
	build := func(src, dst SRIDEntry) (*Projection, error) {
		builds++
		return &Projection{
			SrcSRID: src.SRID, DstSRID: dst.SRID,
			Forward: func(x, y float64) (float64, float64) { return x + 1, y + 1 },
		}, nil
	}
	c := NewProjectionCache(cat, build)

	p1, ok := c.Get(4326, 3857)
	require.True(t, ok)
	x, y := p1.Forward(0, 0)
	assert.Equal(t, 1.0, x)
	assert.Equal(t, 1.0, y)
	assert.Equal(t, 1, builds)
	assert.Equal(t, 1, c.ApproxSize())

	_, ok = c.Get(4326, 3857)
	require.True(t, ok)
	assert.Equal(t, 1, builds, "second lookup of the same pair must hit the cache, not rebuild")
}

func TestProjectionCacheMissingSRIDFails(t *testing.T) {
	cat, err := LoadSRIDCatalogFromReader(strings.NewReader(sampleCatalog))
	require.NoError(t, err)
	c := NewProjectionCache(cat, func(src, dst SRIDEntry) (*Projection, error) {
		return identityProjection(src.SRID, dst.SRID), nil
	})
	_, ok := c.Get(4326, 999999)
	assert.False(t, ok)
}

func TestSnapshotRoundTrip(t *testing.T) {
	cat, err := LoadSRIDCatalogFromReader(strings.NewReader(sampleCatalog))
	require.NoError(t, err)

	data, err := MarshalSnapshot(cat)
	require.NoError(t, err)
	assert.NotEmpty(t, data)

	got, err := UnmarshalSnapshot(data)
	require.NoError(t, err)
	assert.Equal(t, cat.Len(), got.Len())
	e, ok := got.Lookup(3857)
	require.True(t, ok)
	assert.Equal(t, "WGS 84 / Pseudo-Mercator", e.Name)
}
