// Package store is the ambient persistence layer: snappy-compressed
// single-value storage for one serialized temporal value (typically a
// WKB blob), and gzip-compressed bulk export/import of many WKT or
// MF-JSON encoded values.
package store

import (
	"context"
	"io"

	"github.com/golang/snappy"
	"github.com/pkg/errors"

	"github.com/grailbio/base/file"
	"github.com/grailbio/base/vcontext"
)

// PutValue snappy-compresses data and writes it to path (a local path
// or any github.com/grailbio/base/file-supported URL scheme).
//
// Grounded on encoding/bampair/disk_mate_shard.go's use of
// github.com/golang/snappy for spilled-record compression, generalized
// from its streaming per-record writer to a single block.Encode/Decode
// call since a stored value here is one already-serialized blob rather
// than an open-ended record stream.
func PutValue(ctx context.Context, path string, data []byte) (err error) {
	if ctx == nil {
		ctx = vcontext.Background()
	}
	f, err := file.Create(ctx, path)
	if err != nil {
		return errors.Wrapf(err, "store.PutValue: create %s", path)
	}
	defer func() {
		if cerr := f.Close(ctx); cerr != nil && err == nil {
			err = cerr
		}
	}()
	compressed := snappy.Encode(nil, data)
	if _, err = f.Writer(ctx).Write(compressed); err != nil {
		return errors.Wrapf(err, "store.PutValue: write %s", path)
	}
	return nil
}

// GetValue reads and snappy-decompresses the value PutValue wrote to
// path.
func GetValue(ctx context.Context, path string) (data []byte, err error) {
	if ctx == nil {
		ctx = vcontext.Background()
	}
	f, err := file.Open(ctx, path)
	if err != nil {
		return nil, errors.Wrapf(err, "store.GetValue: open %s", path)
	}
	defer func() {
		if cerr := f.Close(ctx); cerr != nil && err == nil {
			err = cerr
		}
	}()
	compressed, err := io.ReadAll(f.Reader(ctx))
	if err != nil {
		return nil, errors.Wrapf(err, "store.GetValue: read %s", path)
	}
	data, err = snappy.Decode(nil, compressed)
	if err != nil {
		return nil, errors.Wrapf(err, "store.GetValue: snappy decode %s", path)
	}
	return data, nil
}
