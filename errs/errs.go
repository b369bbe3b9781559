// Package errs defines the domain-coded error taxonomy shared by every
// package in this module: malformed input, out-of-range values, dimension
// mismatches, unsupported type/interpolation combinations, and broken
// internal invariants. Callers should use errors.As to recover the
// concrete type when they need to branch on it; everything else should
// just treat these as ordinary errors and wrap them with
// github.com/pkg/errors as they propagate.
package errs

import "fmt"

// ParseError reports malformed text or WKB input.
type ParseError struct {
	Pos      int
	Expected string
	Got      string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at position %d: expected %s, got %q", e.Pos, e.Expected, e.Got)
}

// NewParseError constructs a ParseError at the given cursor position.
func NewParseError(pos int, expected, got string) error {
	return &ParseError{Pos: pos, Expected: expected, Got: got}
}

// DomainError reports a value outside its allowed range: a negative
// radius, an empty geometry where one is forbidden, mismatched SRIDs, a
// sequence set with heterogeneous interpolation, and similar.
type DomainError struct {
	Msg string
}

func (e *DomainError) Error() string { return "domain error: " + e.Msg }

// NewDomainError constructs a DomainError with a formatted message.
func NewDomainError(format string, args ...interface{}) error {
	return &DomainError{Msg: fmt.Sprintf(format, args...)}
}

// DimensionalityError reports a 2D/3D or geometry/geography mismatch
// between operands.
type DimensionalityError struct {
	Msg string
}

func (e *DimensionalityError) Error() string { return "dimensionality error: " + e.Msg }

// NewDimensionalityError constructs a DimensionalityError.
func NewDimensionalityError(format string, args ...interface{}) error {
	return &DimensionalityError{Msg: fmt.Sprintf(format, args...)}
}

// UnsupportedError reports an operation not defined for a given base-type
// or interpolation combination.
type UnsupportedError struct {
	Op  string
	Msg string
}

func (e *UnsupportedError) Error() string {
	if e.Msg == "" {
		return "unsupported operation: " + e.Op
	}
	return fmt.Sprintf("unsupported operation %s: %s", e.Op, e.Msg)
}

// NewUnsupportedError constructs an UnsupportedError.
func NewUnsupportedError(op, format string, args ...interface{}) error {
	return &UnsupportedError{Op: op, Msg: fmt.Sprintf(format, args...)}
}

// InternalError reports a broken invariant. Unlike the other error types,
// code that constructs one should treat it as panic-equivalent: something
// the caller cannot recover from by retrying or supplying different
// input.
type InternalError struct {
	Msg string
}

func (e *InternalError) Error() string { return "internal error: " + e.Msg }

// NewInternalError constructs an InternalError.
func NewInternalError(format string, args ...interface{}) error {
	return &InternalError{Msg: fmt.Sprintf(format, args...)}
}
