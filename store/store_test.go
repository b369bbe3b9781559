package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPutGetValueRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "value.snappy")
	want := []byte("Cbuffer(Point(1.5 -2),3)@2026-01-01T00:00:01")

	require.NoError(t, PutValue(ctx, path, want))
	got, err := GetValue(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestPutValueEmpty(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "empty.snappy")
	require.NoError(t, PutValue(ctx, path, nil))
	got, err := GetValue(ctx, path)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestPutGetBulkRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "bulk.wkt.gz")
	items := []string{
		"Period '[2000-01-01, 2000-01-02]'",
		"Cbuffer(Point(0 0),1)",
		"TSEQUENCE Linear[0@2026-01-01T00:00:00, 10@2026-01-01T00:00:10)",
	}

	require.NoError(t, PutBulk(ctx, path, items))
	got, err := GetBulk(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, items, got)
}

func TestGetBulkEmptyInput(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "empty_bulk.wkt.gz")
	require.NoError(t, PutBulk(ctx, path, nil))
	got, err := GetBulk(ctx, path)
	require.NoError(t, err)
	assert.Empty(t, got)
}
