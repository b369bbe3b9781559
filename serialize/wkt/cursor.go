// Package wkt implements the human-readable WKT/EWKT representation for
// Period, TimestampSet, PeriodSet, Cbuffer, TInstant, TSequence, and
// TSequenceSet, plus the recursive-descent cursor both the writer's
// round-trip tests and any future grammar extension parse against.
//
// Grounded on ha1tch-tsqlparser's hand-rolled rune-at-a-time lexer
// style (no parser-generator dependency anywhere in the retrieved
// corpus for a grammar this small), adapted from its T-SQL tokenizer's
// skip-whitespace/peek/expect shape to this module's period/set/
// sequence grammar.
package wkt

import (
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/grailbio/tgeo/errs"
	"github.com/grailbio/tgeo/timeutil"
)

// cursor is a minimal recursive-descent reader over a WKT/EWKT string.
type cursor struct {
	s   string
	pos int
}

func newCursor(s string) *cursor { return &cursor{s: s} }

func (c *cursor) skipSpace() {
	for c.pos < len(c.s) && unicode.IsSpace(rune(c.s[c.pos])) {
		c.pos++
	}
}

func (c *cursor) peek() (byte, bool) {
	c.skipSpace()
	if c.pos >= len(c.s) {
		return 0, false
	}
	return c.s[c.pos], true
}

func (c *cursor) expect(b byte) error {
	ch, ok := c.peek()
	if !ok || ch != b {
		got := "EOF"
		if ok {
			got = string(ch)
		}
		return errs.NewParseError(c.pos, string(b), got)
	}
	c.pos++
	return nil
}

// word reads a run of letters/digits (an identifier like "SRID",
// "CIRCULARSTRING", "Inf", a type keyword, ...).
func (c *cursor) word() string {
	c.skipSpace()
	start := c.pos
	for c.pos < len(c.s) && (unicode.IsLetter(rune(c.s[c.pos])) || unicode.IsDigit(rune(c.s[c.pos]))) {
		c.pos++
	}
	return c.s[start:c.pos]
}

func (c *cursor) number() (float64, error) {
	c.skipSpace()
	start := c.pos
	if c.pos < len(c.s) && (c.s[c.pos] == '+' || c.s[c.pos] == '-') {
		c.pos++
	}
	for c.pos < len(c.s) && (unicode.IsDigit(rune(c.s[c.pos])) || c.s[c.pos] == '.' || c.s[c.pos] == 'e' || c.s[c.pos] == 'E' || c.s[c.pos] == '+' || c.s[c.pos] == '-') {
		c.pos++
	}
	tok := c.s[start:c.pos]
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return 0, errs.NewParseError(start, "number", tok)
	}
	return v, nil
}

func (c *cursor) integer() (int, error) {
	f, err := c.number()
	if err != nil {
		return 0, err
	}
	return int(f), nil
}

// timestamp reads a quoted or bare RFC3339-ish timestamp token up to the
// next ',' ')' or whitespace-delimited boundary.
func (c *cursor) timestamp() (time.Time, error) {
	c.skipSpace()
	quoted := false
	if c.pos < len(c.s) && c.s[c.pos] == '"' {
		quoted = true
		c.pos++
	}
	start := c.pos
	for c.pos < len(c.s) {
		ch := c.s[c.pos]
		if quoted && ch == '"' {
			break
		}
		if !quoted && (ch == ',' || ch == ')' || ch == ']' || unicode.IsSpace(rune(ch))) {
			break
		}
		c.pos++
	}
	tok := c.s[start:c.pos]
	if quoted {
		if err := c.expect('"'); err != nil {
			return time.Time{}, err
		}
	}
	t, err := timeutil.Parse(tok)
	if err != nil {
		return time.Time{}, errs.NewParseError(start, "timestamp", tok)
	}
	return t, nil
}

// quotedString reads a Go-syntax double-quoted string (as produced by
// strconv.Quote) starting at the cursor's current position.
func (c *cursor) quotedString() (string, error) {
	c.skipSpace()
	start := c.pos
	if err := c.expect('"'); err != nil {
		return "", err
	}
	for c.pos < len(c.s) {
		if c.s[c.pos] == '\\' && c.pos+1 < len(c.s) {
			c.pos += 2
			continue
		}
		if c.s[c.pos] == '"' {
			break
		}
		c.pos++
	}
	if err := c.expect('"'); err != nil {
		return "", err
	}
	tok := c.s[start:c.pos]
	s, err := strconv.Unquote(tok)
	if err != nil {
		return "", errs.NewParseError(start, "quoted string", tok)
	}
	return s, nil
}

// remaining returns what's left of the input, for error messages.
func (c *cursor) remaining() string { return strings.TrimSpace(c.s[c.pos:]) }
