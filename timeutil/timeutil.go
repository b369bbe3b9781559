// Package timeutil is the thin time collaborator used throughout this
// module for parsing/formatting of timestamps and date/interval
// arithmetic. Go's standard library time package already is such a
// collaborator, so this package does not reimplement it; it only fixes
// the exact textual forms this module's parsers and formatters agree on.
package timeutil

import (
	"time"

	"github.com/pkg/errors"
)

// Layout is the canonical timestamp text form used by every parser and
// formatter in this module (Period, TInstant, MF-JSON "datetimes", WKT).
// It is the RFC 3339 date-time form without a zone offset, with up to
// microsecond fractional seconds (trailing zeros dropped); unlike a bare
// time.RFC3339 layout it keeps sub-second values, but it keeps neither
// the zone offset nor precision finer than a microsecond.
const Layout = "2006-01-02T15:04:05.999999"

// MFJSONLayout is the same instant, formatted with "T" as the date-time
// separator the way OGC Moving Features JSON requires. It is identical
// to Layout; the constant exists so call sites document which contract
// they're satisfying.
const MFJSONLayout = Layout

// Parse parses a timestamp in Layout form.
func Parse(s string) (time.Time, error) {
	t, err := time.Parse(Layout, s)
	if err != nil {
		// Accept a trailing "Z" or numeric offset too, since EWKT/MF-JSON
		// producers in the wild often include one.
		if t2, err2 := time.Parse(time.RFC3339Nano, s); err2 == nil {
			return t2.UTC(), nil
		}
		return time.Time{}, errors.Wrapf(err, "timeutil.Parse: %q", s)
	}
	return t.UTC(), nil
}

// Format renders t in the canonical Layout form, always in UTC.
func Format(t time.Time) string {
	return t.UTC().Format(Layout)
}

// Before reports whether a strictly precedes b.
func Before(a, b time.Time) bool { return a.Before(b) }

// Max returns the later of a and b.
func Max(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

// Min returns the earlier of a and b.
func Min(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
