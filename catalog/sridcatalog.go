package catalog

import (
	"bufio"
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/grailbio/base/file"
	"github.com/grailbio/base/fileio"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/vcontext"
	"github.com/klauspost/compress/gzip"

	"github.com/grailbio/tgeo/errs"
)

// SRIDEntry is one row of a loaded SRID catalog: the spatial reference
// identifier, its human-readable name, and its PROJ.4 definition string
// (opaque to this package — ProjectionCache hands the whole entry to the
// caller's Builder without interpreting it).
type SRIDEntry struct {
	SRID  int
	Name  string
	Proj4 string
}

// SRIDCatalog is an in-memory index of loaded SRIDEntry rows, keyed by
// SRID.
type SRIDCatalog struct {
	entries map[int]SRIDEntry
}

// Lookup returns the catalog entry for srid.
func (c *SRIDCatalog) Lookup(srid int) (SRIDEntry, bool) {
	e, ok := c.entries[srid]
	return e, ok
}

// Len returns the number of loaded entries.
func (c *SRIDCatalog) Len() int { return len(c.entries) }

// parseSRIDLine parses one "srid,name,proj4..." CSV-ish catalog line.
// The proj4 field may itself contain commas (proj4 strings are
// space-separated "+key=value" tokens), so it is everything after the
// second comma rather than a strict 3-column split.
func parseSRIDLine(line string) (SRIDEntry, bool, error) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return SRIDEntry{}, false, nil
	}
	first := strings.IndexByte(line, ',')
	if first < 0 {
		return SRIDEntry{}, false, errs.NewParseError(0, "srid,name,proj4", line)
	}
	second := strings.IndexByte(line[first+1:], ',')
	if second < 0 {
		return SRIDEntry{}, false, errs.NewParseError(0, "srid,name,proj4", line)
	}
	second += first + 1
	srid, err := strconv.Atoi(strings.TrimSpace(line[:first]))
	if err != nil {
		return SRIDEntry{}, false, errs.NewParseError(0, "integer SRID", line[:first])
	}
	return SRIDEntry{
		SRID:  srid,
		Name:  strings.TrimSpace(line[first+1 : second]),
		Proj4: strings.TrimSpace(line[second+1:]),
	}, true, nil
}

// LoadSRIDCatalogFromReader parses a "srid,name,proj4" CSV-style
// catalog, one entry per line.
func LoadSRIDCatalogFromReader(r io.Reader) (*SRIDCatalog, error) {
	scanner := bufio.NewScanner(r)
	cat := &SRIDCatalog{entries: make(map[int]SRIDEntry)}
	for scanner.Scan() {
		entry, ok, err := parseSRIDLine(scanner.Text())
		if err != nil {
			log.Error.Printf("catalog: rejecting malformed SRID catalog line %q: %v", scanner.Text(), err)
			return nil, err
		}
		if ok {
			cat.entries[entry.SRID] = entry
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "catalog.LoadSRIDCatalogFromReader")
	}
	return cat, nil
}

// LoadSRIDCatalog loads a SRID catalog from a local path or any URL
// scheme github.com/grailbio/base/file supports (including s3://),
// transparently gunzipping when the path's extension indicates it.
//
// Grounded on interval/bedunion.go's NewBEDUnionFromPath: open via
// file.Open against a context, sniff the path for fileio.Gzip, and wrap
// the reader only when needed.
func LoadSRIDCatalog(ctx context.Context, path string) (cat *SRIDCatalog, err error) {
	if ctx == nil {
		ctx = vcontext.Background()
	}
	f, err := file.Open(ctx, path)
	if err != nil {
		return nil, errors.Wrapf(err, "catalog.LoadSRIDCatalog: open %s", path)
	}
	defer func() {
		if cerr := f.Close(ctx); cerr != nil && err == nil {
			err = cerr
		}
	}()
	reader := io.Reader(f.Reader(ctx))
	if fileio.DetermineType(path) == fileio.Gzip {
		gz, gerr := gzip.NewReader(reader)
		if gerr != nil {
			return nil, errors.Wrapf(gerr, "catalog.LoadSRIDCatalog: gunzip %s", path)
		}
		defer gz.Close()
		reader = gz
	}
	return LoadSRIDCatalogFromReader(reader)
}
