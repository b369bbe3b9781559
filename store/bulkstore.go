package store

import (
	"bufio"
	"context"

	"github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"

	"github.com/grailbio/base/file"
	"github.com/grailbio/base/vcontext"
)

// PutBulk gzip-compresses items (one WKT or MF-JSON encoded value per
// line) and writes them to path, for bulk export of many temporal
// values at once — unlike PutValue, which stores a single snappy
// block, a bulk export is a long, highly repetitive text stream where
// gzip's larger window wins.
//
// Grounded on encoding/converter/convert.go and encoding/bgzf's use of
// github.com/klauspost/compress/gzip for streaming compression via
// github.com/grailbio/base/file, generalized from BAM/BGZF block
// streams to newline-delimited serialized-value streams.
func PutBulk(ctx context.Context, path string, items []string) (err error) {
	if ctx == nil {
		ctx = vcontext.Background()
	}
	f, err := file.Create(ctx, path)
	if err != nil {
		return errors.Wrapf(err, "store.PutBulk: create %s", path)
	}
	defer func() {
		if cerr := f.Close(ctx); cerr != nil && err == nil {
			err = cerr
		}
	}()
	gw := gzip.NewWriter(f.Writer(ctx))
	defer func() {
		if cerr := gw.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	w := bufio.NewWriter(gw)
	for _, item := range items {
		if _, err = w.WriteString(item); err != nil {
			return errors.Wrapf(err, "store.PutBulk: write %s", path)
		}
		if err = w.WriteByte('\n'); err != nil {
			return errors.Wrapf(err, "store.PutBulk: write %s", path)
		}
	}
	if err = w.Flush(); err != nil {
		return errors.Wrapf(err, "store.PutBulk: flush %s", path)
	}
	return nil
}

// GetBulk reads back the items PutBulk wrote to path.
func GetBulk(ctx context.Context, path string) (items []string, err error) {
	if ctx == nil {
		ctx = vcontext.Background()
	}
	f, err := file.Open(ctx, path)
	if err != nil {
		return nil, errors.Wrapf(err, "store.GetBulk: open %s", path)
	}
	defer func() {
		if cerr := f.Close(ctx); cerr != nil && err == nil {
			err = cerr
		}
	}()
	gr, err := gzip.NewReader(f.Reader(ctx))
	if err != nil {
		return nil, errors.Wrapf(err, "store.GetBulk: gunzip %s", path)
	}
	defer gr.Close()

	scanner := bufio.NewScanner(gr)
	// Bulk-exported WKT/MF-JSON lines (especially TSequenceSet WKT) can
	// run much longer than bufio.Scanner's 64KiB default; grow the
	// buffer the way bedunion.go documents needing to for long lines.
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 16*1024*1024)
	for scanner.Scan() {
		items = append(items, scanner.Text())
	}
	if err = scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "store.GetBulk: read %s", path)
	}
	return items, nil
}
