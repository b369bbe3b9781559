// Package wkb implements Well-Known Binary (and HexWKB, its hex-encoded
// form) for every type-domain value in this module: Period, TimestampSet,
// PeriodSet, Cbuffer, TInstant, TSequence, TSequenceSet. Three independent
// variant bits select NDR vs. XDR byte order, whether the SRID is
// serialized (EXTENDED), and whether a trailing HighwayHash-256 checksum
// is appended.
//
// byteBuffer wraps a growable []byte with a single read or write cursor,
// generalized to a per-buffer endianness parameter since WKB must
// support both byte orders.
package wkb

import (
	"encoding/binary"
	"math"

	"github.com/grailbio/tgeo/errs"
)

// Endian selects NDR (little-endian) or XDR (big-endian) encoding.
type Endian uint8

const (
	NDR Endian = iota // little-endian
	XDR               // big-endian
)

func (e Endian) byteOrder() binary.ByteOrder {
	if e == XDR {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

// byteBuffer wraps a growable []byte with a read or write cursor and the
// endianness every fixed-width field in this buffer is encoded with.
type byteBuffer struct {
	n    int
	buf  []byte
	order binary.ByteOrder
}

func newWriter(order Endian) *byteBuffer {
	return &byteBuffer{order: order.byteOrder()}
}

func newReader(data []byte, order Endian) *byteBuffer {
	return &byteBuffer{buf: data, order: order.byteOrder()}
}

func (b *byteBuffer) ensure(extra int) {
	if cap(b.buf) >= b.n+extra {
		return
	}
	newCap := ((b.n+extra)/16 + 1) * 16
	if newCap < cap(b.buf)*2 {
		newCap = cap(b.buf) * 2
	}
	newBuf := make([]byte, newCap)
	copy(newBuf, b.buf[:b.n])
	b.buf = newBuf
}

func (b *byteBuffer) Bytes() []byte { return b.buf[:b.n] }

func (b *byteBuffer) remaining() int { return len(b.buf) - b.n }

func (b *byteBuffer) need(n int) error {
	if b.remaining() < n {
		return errs.NewParseError(b.n, "more bytes", "end of buffer")
	}
	return nil
}

func (b *byteBuffer) PutUint8(v uint8) {
	b.ensure(1)
	b.buf[b.n] = v
	b.n++
}

func (b *byteBuffer) Uint8() (uint8, error) {
	if err := b.need(1); err != nil {
		return 0, err
	}
	v := b.buf[b.n]
	b.n++
	return v, nil
}

func (b *byteBuffer) PutUint32(v uint32) {
	b.ensure(4)
	b.order.PutUint32(b.buf[b.n:b.n+4], v)
	b.n += 4
}

func (b *byteBuffer) Uint32() (uint32, error) {
	if err := b.need(4); err != nil {
		return 0, err
	}
	v := b.order.Uint32(b.buf[b.n : b.n+4])
	b.n += 4
	return v, nil
}

func (b *byteBuffer) PutUint64(v uint64) {
	b.ensure(8)
	b.order.PutUint64(b.buf[b.n:b.n+8], v)
	b.n += 8
}

func (b *byteBuffer) Uint64() (uint64, error) {
	if err := b.need(8); err != nil {
		return 0, err
	}
	v := b.order.Uint64(b.buf[b.n : b.n+8])
	b.n += 8
	return v, nil
}

func (b *byteBuffer) PutInt64(v int64) { b.PutUint64(uint64(v)) }

func (b *byteBuffer) Int64() (int64, error) {
	v, err := b.Uint64()
	return int64(v), err
}

func (b *byteBuffer) PutFloat64(v float64) { b.PutUint64(math.Float64bits(v)) }

func (b *byteBuffer) Float64() (float64, error) {
	v, err := b.Uint64()
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(v), nil
}

// PutUvarint writes v as a LEB128 unsigned varint — always byte-order
// independent, the way WKB treats its own counts.
func (b *byteBuffer) PutUvarint(v uint64) {
	var tmp [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(tmp[:], v)
	b.ensure(n)
	copy(b.buf[b.n:], tmp[:n])
	b.n += n
}

func (b *byteBuffer) Uvarint() (uint64, error) {
	v, n := binary.Uvarint(b.buf[b.n:])
	if n <= 0 {
		return 0, errs.NewParseError(b.n, "varint", "truncated or malformed varint")
	}
	b.n += n
	return v, nil
}

func (b *byteBuffer) PutRawBytes(p []byte) {
	b.ensure(len(p))
	copy(b.buf[b.n:], p)
	b.n += len(p)
}

func (b *byteBuffer) RawBytes(n int) ([]byte, error) {
	if err := b.need(n); err != nil {
		return nil, err
	}
	v := b.buf[b.n : b.n+n]
	b.n += n
	return v, nil
}
