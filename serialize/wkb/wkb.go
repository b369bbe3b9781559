package wkb

import (
	"time"

	"github.com/minio/highwayhash"
	"github.com/pkg/errors"

	"github.com/grailbio/tgeo/basevalue"
	"github.com/grailbio/tgeo/cbuffer"
	"github.com/grailbio/tgeo/errs"
	"github.com/grailbio/tgeo/period"
	"github.com/grailbio/tgeo/temporal"
	"github.com/grailbio/tgeo/timeset"
)

// typeTag identifies which of this module's types a WKB payload holds.
type typeTag uint8

const (
	tagPeriod typeTag = iota + 1
	tagTimestampSet
	tagPeriodSet
	tagCbuffer
	tagTInstant
	tagTSequence
	tagTSequenceSet
)

const (
	flagExtended = 0x80 // SRID present
	flagChecksum = 0x40 // trailing HighwayHash-256 checksum present
)

// highwayKey is the fixed 32-byte key the checksum variant hashes with.
// WKB's checksum trailer exists to catch accidental corruption, not to
// authenticate origin, so a fixed, published key (rather than a
// per-message secret) is the right choice — the same role a CRC
// polynomial plays in other wire formats.
var highwayKey = make([]byte, 32)

// Options selects one point in the WKB variant matrix: byte order,
// whether the SRID is serialized, and whether a trailing checksum is
// appended.
type Options struct {
	Endian   Endian
	Extended bool // serialize SRID
	Checksum bool // append a HighwayHash-256 trailer
}

func (o Options) flags() uint8 {
	var f uint8
	if o.Extended {
		f |= flagExtended
	}
	if o.Checksum {
		f |= flagChecksum
	}
	return f
}

func writeHeader(w *byteBuffer, o Options, tag typeTag, srid int) {
	w.PutUint8(uint8(o.Endian))
	w.PutUint8(uint8(tag) | o.flags())
	if o.Extended {
		w.PutUint32(uint32(int32(srid)))
	}
}

func readHeader(data []byte) (order Endian, tag typeTag, extended, checksum bool, srid int, rest []byte, err error) {
	if len(data) < 2 {
		return 0, 0, false, false, 0, nil, errs.NewParseError(0, "2-byte WKB header", "short buffer")
	}
	order = Endian(data[0])
	flagged := data[1]
	tag = typeTag(flagged &^ (flagExtended | flagChecksum))
	extended = flagged&flagExtended != 0
	checksum = flagged&flagChecksum != 0
	r := newReader(data[2:], order)
	if extended {
		v, err := r.Uint32()
		if err != nil {
			return 0, 0, false, false, 0, nil, err
		}
		srid = int(int32(v))
	}
	return order, tag, extended, checksum, srid, r.buf[r.n:], nil
}

func appendChecksum(buf []byte) []byte {
	sum := highwayhash.Sum(buf, highwayKey)
	return append(buf, sum[:]...)
}

func verifyChecksum(buf []byte) ([]byte, error) {
	if len(buf) < 32 {
		return nil, errs.NewParseError(len(buf), "32-byte checksum trailer", "short buffer")
	}
	body, trailer := buf[:len(buf)-32], buf[len(buf)-32:]
	sum := highwayhash.Sum(body, highwayKey)
	for i := range sum {
		if sum[i] != trailer[i] {
			return nil, errs.NewParseError(len(body), "matching checksum", "checksum mismatch")
		}
	}
	return body, nil
}

// -- Period ------------------------------------------------------------

func writePeriodBody(w *byteBuffer, p period.Period) {
	var flags uint8
	if p.LowerInc {
		flags |= 1
	}
	if p.UpperInc {
		flags |= 2
	}
	w.PutUint8(flags)
	w.PutInt64(p.Lower.UnixNano())
	w.PutInt64(p.Upper.UnixNano())
}

func readPeriodBody(r *byteBuffer) (period.Period, error) {
	flags, err := r.Uint8()
	if err != nil {
		return period.Period{}, err
	}
	lo, err := r.Int64()
	if err != nil {
		return period.Period{}, err
	}
	hi, err := r.Int64()
	if err != nil {
		return period.Period{}, err
	}
	return period.New(time.Unix(0, lo).UTC(), time.Unix(0, hi).UTC(), flags&1 != 0, flags&2 != 0)
}

// WritePeriod serializes p per Options.
func WritePeriod(p period.Period, o Options) []byte {
	w := newWriter(o.Endian)
	writeHeader(w, o, tagPeriod, 0)
	writePeriodBody(w, p)
	buf := w.Bytes()
	if o.Checksum {
		buf = appendChecksum(buf)
	}
	return buf
}

// ReadPeriod parses a Period previously written by WritePeriod.
func ReadPeriod(data []byte) (period.Period, error) {
	order, tag, _, checksum, _, _, err := readHeader(data)
	if err != nil {
		return period.Period{}, err
	}
	if checksum {
		data, err = verifyChecksum(data)
		if err != nil {
			return period.Period{}, err
		}
	}
	if tag != tagPeriod {
		return period.Period{}, errs.NewParseError(0, "Period WKB", "type tag mismatch")
	}
	_, _, _, _, _, rest, err := readHeader(data)
	if err != nil {
		return period.Period{}, err
	}
	return readPeriodBody(newReader(rest, order))
}

// -- TimestampSet --------------------------------------------------------

// WriteTimestampSet serializes ts per Options.
func WriteTimestampSet(ts timeset.TimestampSet, o Options) []byte {
	w := newWriter(o.Endian)
	writeHeader(w, o, tagTimestampSet, 0)
	times := ts.Times()
	w.PutUvarint(uint64(len(times)))
	for _, t := range times {
		w.PutInt64(t.UnixNano())
	}
	buf := w.Bytes()
	if o.Checksum {
		buf = appendChecksum(buf)
	}
	return buf
}

// ReadTimestampSet parses a TimestampSet previously written by
// WriteTimestampSet.
func ReadTimestampSet(data []byte) (timeset.TimestampSet, error) {
	order, tag, _, checksum, _, _, err := readHeader(data)
	if err != nil {
		return timeset.TimestampSet{}, err
	}
	if checksum {
		if data, err = verifyChecksum(data); err != nil {
			return timeset.TimestampSet{}, err
		}
	}
	if tag != tagTimestampSet {
		return timeset.TimestampSet{}, errs.NewParseError(0, "TimestampSet WKB", "type tag mismatch")
	}
	_, _, _, _, _, rest, err := readHeader(data)
	if err != nil {
		return timeset.TimestampSet{}, err
	}
	r := newReader(rest, order)
	n, err := r.Uvarint()
	if err != nil {
		return timeset.TimestampSet{}, err
	}
	times := make([]time.Time, n)
	for i := range times {
		v, err := r.Int64()
		if err != nil {
			return timeset.TimestampSet{}, err
		}
		times[i] = time.Unix(0, v).UTC()
	}
	return timeset.NewTimestampSet(times)
}

// -- PeriodSet -----------------------------------------------------------

// WritePeriodSet serializes ps per Options.
func WritePeriodSet(ps timeset.PeriodSet, o Options) []byte {
	w := newWriter(o.Endian)
	writeHeader(w, o, tagPeriodSet, 0)
	periods := ps.Periods()
	w.PutUvarint(uint64(len(periods)))
	for _, p := range periods {
		writePeriodBody(w, p)
	}
	buf := w.Bytes()
	if o.Checksum {
		buf = appendChecksum(buf)
	}
	return buf
}

// ReadPeriodSet parses a PeriodSet previously written by WritePeriodSet.
func ReadPeriodSet(data []byte) (timeset.PeriodSet, error) {
	order, tag, _, checksum, _, _, err := readHeader(data)
	if err != nil {
		return timeset.PeriodSet{}, err
	}
	if checksum {
		if data, err = verifyChecksum(data); err != nil {
			return timeset.PeriodSet{}, err
		}
	}
	if tag != tagPeriodSet {
		return timeset.PeriodSet{}, errs.NewParseError(0, "PeriodSet WKB", "type tag mismatch")
	}
	_, _, _, _, _, rest, err := readHeader(data)
	if err != nil {
		return timeset.PeriodSet{}, err
	}
	r := newReader(rest, order)
	n, err := r.Uvarint()
	if err != nil {
		return timeset.PeriodSet{}, err
	}
	periods := make([]period.Period, n)
	for i := range periods {
		p, err := readPeriodBody(r)
		if err != nil {
			return timeset.PeriodSet{}, err
		}
		periods[i] = p
	}
	return timeset.NewPeriodSet(periods)
}

// -- Cbuffer ---------------------------------------------------------

func writeCbufferBody(w *byteBuffer, c cbuffer.Cbuffer) {
	w.PutFloat64(c.Center.X)
	w.PutFloat64(c.Center.Y)
	w.PutFloat64(c.Radius)
}

func readCbufferBody(r *byteBuffer, srid int) (cbuffer.Cbuffer, error) {
	x, err := r.Float64()
	if err != nil {
		return cbuffer.Cbuffer{}, err
	}
	y, err := r.Float64()
	if err != nil {
		return cbuffer.Cbuffer{}, err
	}
	radius, err := r.Float64()
	if err != nil {
		return cbuffer.Cbuffer{}, err
	}
	return cbuffer.New(cbuffer.Point{X: x, Y: y}, radius, srid)
}

// WriteCbuffer serializes c per Options; the SRID is only written when
// o.Extended is set and the SRID is known.
func WriteCbuffer(c cbuffer.Cbuffer, o Options) []byte {
	if o.Extended && c.SRID == cbuffer.SRIDUnknown {
		o.Extended = false
	}
	srid := 0
	if o.Extended {
		srid = c.SRID
	}
	w := newWriter(o.Endian)
	writeHeader(w, o, tagCbuffer, srid)
	writeCbufferBody(w, c)
	buf := w.Bytes()
	if o.Checksum {
		buf = appendChecksum(buf)
	}
	return buf
}

// ReadCbuffer parses a Cbuffer previously written by WriteCbuffer.
func ReadCbuffer(data []byte) (cbuffer.Cbuffer, error) {
	order, tag, _, checksum, srid, _, err := readHeader(data)
	if err != nil {
		return cbuffer.Cbuffer{}, err
	}
	if checksum {
		if data, err = verifyChecksum(data); err != nil {
			return cbuffer.Cbuffer{}, err
		}
	}
	if tag != tagCbuffer {
		return cbuffer.Cbuffer{}, errs.NewParseError(0, "Cbuffer WKB", "type tag mismatch")
	}
	_, _, _, _, srid, rest, err := readHeader(data)
	if err != nil {
		return cbuffer.Cbuffer{}, err
	}
	return readCbufferBody(newReader(rest, order), srid)
}

// -- Point/NPoint/Pose/RigidGeometry --------------------------------------

func writePointBody(w *byteBuffer, p basevalue.Point) {
	var flags uint8
	if p.HasZ {
		flags |= 1
	}
	w.PutUint8(flags)
	w.PutFloat64(p.X)
	w.PutFloat64(p.Y)
	if p.HasZ {
		w.PutFloat64(p.Z)
	}
}

func readPointBody(r *byteBuffer) (basevalue.Point, error) {
	flags, err := r.Uint8()
	if err != nil {
		return basevalue.Point{}, err
	}
	x, err := r.Float64()
	if err != nil {
		return basevalue.Point{}, err
	}
	y, err := r.Float64()
	if err != nil {
		return basevalue.Point{}, err
	}
	hasZ := flags&1 != 0
	var z float64
	if hasZ {
		z, err = r.Float64()
		if err != nil {
			return basevalue.Point{}, err
		}
	}
	return basevalue.Point{X: x, Y: y, Z: z, HasZ: hasZ}, nil
}

func writeNPointBody(w *byteBuffer, n basevalue.NPointValue) {
	w.PutInt64(n.Route)
	w.PutFloat64(n.Measure)
}

func readNPointBody(r *byteBuffer) (basevalue.NPointValue, error) {
	route, err := r.Int64()
	if err != nil {
		return basevalue.NPointValue{}, err
	}
	measure, err := r.Float64()
	if err != nil {
		return basevalue.NPointValue{}, err
	}
	return basevalue.NPointValue{Route: route, Measure: measure}, nil
}

func writePoseBody(w *byteBuffer, p basevalue.PoseValue) {
	writePointBody(w, p.Position)
	w.PutFloat64(p.Heading)
}

func readPoseBody(r *byteBuffer) (basevalue.PoseValue, error) {
	pos, err := readPointBody(r)
	if err != nil {
		return basevalue.PoseValue{}, err
	}
	heading, err := r.Float64()
	if err != nil {
		return basevalue.PoseValue{}, err
	}
	return basevalue.PoseValue{Position: pos, Heading: heading}, nil
}

func writeRigidGeometryBody(w *byteBuffer, g basevalue.RigidGeometryValue) {
	w.PutUvarint(uint64(len(g.ShapeID)))
	w.PutRawBytes([]byte(g.ShapeID))
	writePoseBody(w, g.Pose)
}

func readRigidGeometryBody(r *byteBuffer) (basevalue.RigidGeometryValue, error) {
	n, err := r.Uvarint()
	if err != nil {
		return basevalue.RigidGeometryValue{}, err
	}
	raw, err := r.RawBytes(int(n))
	if err != nil {
		return basevalue.RigidGeometryValue{}, err
	}
	pose, err := readPoseBody(r)
	if err != nil {
		return basevalue.RigidGeometryValue{}, err
	}
	return basevalue.RigidGeometryValue{ShapeID: string(raw), Pose: pose}, nil
}

// -- base values ----------------------------------------------------------

func writeBaseValue(w *byteBuffer, v basevalue.Value) error {
	w.PutUint8(uint8(v.Tag))
	switch v.Tag {
	case basevalue.Bool:
		b := v.Data.(bool)
		if b {
			w.PutUint8(1)
		} else {
			w.PutUint8(0)
		}
	case basevalue.Int:
		w.PutInt64(v.Data.(int64))
	case basevalue.Float:
		w.PutFloat64(v.Data.(float64))
	case basevalue.Text:
		s := v.Data.(string)
		w.PutUvarint(uint64(len(s)))
		w.PutRawBytes([]byte(s))
	case basevalue.Cbuffer:
		writeCbufferBody(w, v.Data.(cbuffer.Cbuffer))
	case basevalue.GeomPoint, basevalue.GeogPoint:
		writePointBody(w, v.Data.(basevalue.Point))
	case basevalue.NPoint:
		writeNPointBody(w, v.Data.(basevalue.NPointValue))
	case basevalue.Pose:
		writePoseBody(w, v.Data.(basevalue.PoseValue))
	case basevalue.RigidGeometry:
		writeRigidGeometryBody(w, v.Data.(basevalue.RigidGeometryValue))
	default:
		return errs.NewUnsupportedError("wkb.writeBaseValue", "no WKB encoding for base type %s", v.Tag)
	}
	return nil
}

func readBaseValue(r *byteBuffer) (basevalue.Value, error) {
	tagByte, err := r.Uint8()
	if err != nil {
		return basevalue.Value{}, err
	}
	tag := basevalue.Tag(tagByte)
	switch tag {
	case basevalue.Bool:
		b, err := r.Uint8()
		if err != nil {
			return basevalue.Value{}, err
		}
		return basevalue.Value{Tag: tag, Data: b != 0}, nil
	case basevalue.Int:
		v, err := r.Int64()
		if err != nil {
			return basevalue.Value{}, err
		}
		return basevalue.Value{Tag: tag, Data: v}, nil
	case basevalue.Float:
		v, err := r.Float64()
		if err != nil {
			return basevalue.Value{}, err
		}
		return basevalue.Value{Tag: tag, Data: v}, nil
	case basevalue.Text:
		n, err := r.Uvarint()
		if err != nil {
			return basevalue.Value{}, err
		}
		raw, err := r.RawBytes(int(n))
		if err != nil {
			return basevalue.Value{}, err
		}
		return basevalue.Value{Tag: tag, Data: string(raw)}, nil
	case basevalue.Cbuffer:
		c, err := readCbufferBody(r, 0)
		if err != nil {
			return basevalue.Value{}, err
		}
		return basevalue.Value{Tag: tag, Data: c}, nil
	case basevalue.GeomPoint, basevalue.GeogPoint:
		p, err := readPointBody(r)
		if err != nil {
			return basevalue.Value{}, err
		}
		return basevalue.Value{Tag: tag, Data: p}, nil
	case basevalue.NPoint:
		n, err := readNPointBody(r)
		if err != nil {
			return basevalue.Value{}, err
		}
		return basevalue.Value{Tag: tag, Data: n}, nil
	case basevalue.Pose:
		p, err := readPoseBody(r)
		if err != nil {
			return basevalue.Value{}, err
		}
		return basevalue.Value{Tag: tag, Data: p}, nil
	case basevalue.RigidGeometry:
		g, err := readRigidGeometryBody(r)
		if err != nil {
			return basevalue.Value{}, err
		}
		return basevalue.Value{Tag: tag, Data: g}, nil
	default:
		return basevalue.Value{}, errs.NewUnsupportedError("wkb.readBaseValue", "no WKB decoding for base type tag %d", tagByte)
	}
}

// -- TInstant --------------------------------------------------------------

// WriteTInstant serializes in per Options. err is non-nil only if in's
// base type has no WKB encoding.
func WriteTInstant(in temporal.TInstant, o Options) ([]byte, error) {
	w := newWriter(o.Endian)
	writeHeader(w, o, tagTInstant, 0)
	w.PutInt64(in.T.UnixNano())
	if err := writeBaseValue(w, in.Value); err != nil {
		return nil, err
	}
	buf := w.Bytes()
	if o.Checksum {
		buf = appendChecksum(buf)
	}
	return buf, nil
}

// ReadTInstant parses a TInstant previously written by WriteTInstant.
func ReadTInstant(data []byte) (temporal.TInstant, error) {
	order, tag, _, checksum, _, _, err := readHeader(data)
	if err != nil {
		return temporal.TInstant{}, err
	}
	if checksum {
		if data, err = verifyChecksum(data); err != nil {
			return temporal.TInstant{}, err
		}
	}
	if tag != tagTInstant {
		return temporal.TInstant{}, errs.NewParseError(0, "TInstant WKB", "type tag mismatch")
	}
	_, _, _, _, _, rest, err := readHeader(data)
	if err != nil {
		return temporal.TInstant{}, err
	}
	r := newReader(rest, order)
	nanos, err := r.Int64()
	if err != nil {
		return temporal.TInstant{}, err
	}
	v, err := readBaseValue(r)
	if err != nil {
		return temporal.TInstant{}, err
	}
	return temporal.NewTInstant(v, time.Unix(0, nanos).UTC()), nil
}

// -- TSequence ---------------------------------------------------------

// WriteTSequence serializes seq per Options.
func WriteTSequence(seq temporal.TSequence, o Options) ([]byte, error) {
	w := newWriter(o.Endian)
	writeHeader(w, o, tagTSequence, 0)
	w.PutUint8(uint8(seq.Interp))
	var flags uint8
	if seq.Span().LowerInc {
		flags |= 1
	}
	if seq.Span().UpperInc {
		flags |= 2
	}
	w.PutUint8(flags)
	w.PutUvarint(uint64(seq.N()))
	for i := 0; i < seq.N(); i++ {
		in := seq.InstantAt(i)
		w.PutInt64(in.T.UnixNano())
		if err := writeBaseValue(w, in.Value); err != nil {
			return nil, err
		}
	}
	buf := w.Bytes()
	if o.Checksum {
		buf = appendChecksum(buf)
	}
	return buf, nil
}

// ReadTSequence parses a TSequence previously written by WriteTSequence.
func ReadTSequence(data []byte) (temporal.TSequence, error) {
	order, tag, _, checksum, _, _, err := readHeader(data)
	if err != nil {
		return temporal.TSequence{}, err
	}
	if checksum {
		if data, err = verifyChecksum(data); err != nil {
			return temporal.TSequence{}, err
		}
	}
	if tag != tagTSequence {
		return temporal.TSequence{}, errs.NewParseError(0, "TSequence WKB", "type tag mismatch")
	}
	_, _, _, _, _, rest, err := readHeader(data)
	if err != nil {
		return temporal.TSequence{}, err
	}
	r := newReader(rest, order)
	interpByte, err := r.Uint8()
	if err != nil {
		return temporal.TSequence{}, err
	}
	flags, err := r.Uint8()
	if err != nil {
		return temporal.TSequence{}, err
	}
	n, err := r.Uvarint()
	if err != nil {
		return temporal.TSequence{}, err
	}
	instants := make([]temporal.TInstant, n)
	var tag0 basevalue.Tag
	for i := range instants {
		nanos, err := r.Int64()
		if err != nil {
			return temporal.TSequence{}, err
		}
		v, err := readBaseValue(r)
		if err != nil {
			return temporal.TSequence{}, err
		}
		tag0 = v.Tag
		instants[i] = temporal.NewTInstant(v, time.Unix(0, nanos).UTC())
	}
	return temporal.NewTSequence(tag0, temporal.Interpolation(interpByte), instants, flags&1 != 0, flags&2 != 0)
}

// -- TSequenceSet ------------------------------------------------------

// WriteTSequenceSet serializes ss per Options.
func WriteTSequenceSet(ss temporal.TSequenceSet, o Options) ([]byte, error) {
	w := newWriter(o.Endian)
	writeHeader(w, o, tagTSequenceSet, 0)
	w.PutUint8(uint8(ss.Interp))
	w.PutUvarint(uint64(ss.N()))
	for i := 0; i < ss.N(); i++ {
		seq := ss.SequenceAt(i)
		var flags uint8
		if seq.Span().LowerInc {
			flags |= 1
		}
		if seq.Span().UpperInc {
			flags |= 2
		}
		w.PutUint8(flags)
		w.PutUvarint(uint64(seq.N()))
		for j := 0; j < seq.N(); j++ {
			in := seq.InstantAt(j)
			w.PutInt64(in.T.UnixNano())
			if err := writeBaseValue(w, in.Value); err != nil {
				return nil, err
			}
		}
	}
	buf := w.Bytes()
	if o.Checksum {
		buf = appendChecksum(buf)
	}
	return buf, nil
}

// ReadTSequenceSet parses a TSequenceSet previously written by
// WriteTSequenceSet.
func ReadTSequenceSet(data []byte) (temporal.TSequenceSet, error) {
	order, tag, _, checksum, _, _, err := readHeader(data)
	if err != nil {
		return temporal.TSequenceSet{}, err
	}
	if checksum {
		if data, err = verifyChecksum(data); err != nil {
			return temporal.TSequenceSet{}, err
		}
	}
	if tag != tagTSequenceSet {
		return temporal.TSequenceSet{}, errs.NewParseError(0, "TSequenceSet WKB", "type tag mismatch")
	}
	_, _, _, _, _, rest, err := readHeader(data)
	if err != nil {
		return temporal.TSequenceSet{}, err
	}
	r := newReader(rest, order)
	interpByte, err := r.Uint8()
	if err != nil {
		return temporal.TSequenceSet{}, err
	}
	nseq, err := r.Uvarint()
	if err != nil {
		return temporal.TSequenceSet{}, err
	}
	interp := temporal.Interpolation(interpByte)
	seqs := make([]temporal.TSequence, nseq)
	var tag0 basevalue.Tag
	for i := range seqs {
		flags, err := r.Uint8()
		if err != nil {
			return temporal.TSequenceSet{}, err
		}
		ninst, err := r.Uvarint()
		if err != nil {
			return temporal.TSequenceSet{}, err
		}
		instants := make([]temporal.TInstant, ninst)
		for j := range instants {
			nanos, err := r.Int64()
			if err != nil {
				return temporal.TSequenceSet{}, err
			}
			v, err := readBaseValue(r)
			if err != nil {
				return temporal.TSequenceSet{}, err
			}
			tag0 = v.Tag
			instants[j] = temporal.NewTInstant(v, time.Unix(0, nanos).UTC())
		}
		seq, err := temporal.NewTSequence(tag0, interp, instants, flags&1 != 0, flags&2 != 0)
		if err != nil {
			return temporal.TSequenceSet{}, errors.Wrap(err, "wkb.ReadTSequenceSet")
		}
		seqs[i] = seq
	}
	return temporal.NewTSequenceSet(tag0, interp, seqs)
}

// Hex encodes a WKB payload as HexWKB: uppercase hexadecimal, per the
// textual interchange convention every WKB variant supports.
func Hex(data []byte) string {
	const digits = "0123456789ABCDEF"
	out := make([]byte, len(data)*2)
	for i, b := range data {
		out[i*2] = digits[b>>4]
		out[i*2+1] = digits[b&0xf]
	}
	return string(out)
}

// FromHex decodes a HexWKB string (either case) back to raw WKB bytes.
func FromHex(s string) ([]byte, error) {
	if len(s)%2 != 0 {
		return nil, errs.NewParseError(0, "even-length hex string", s)
	}
	out := make([]byte, len(s)/2)
	for i := range out {
		hi, err := hexDigit(s[i*2])
		if err != nil {
			return nil, err
		}
		lo, err := hexDigit(s[i*2+1])
		if err != nil {
			return nil, err
		}
		out[i] = hi<<4 | lo
	}
	return out, nil
}

func hexDigit(c byte) (byte, error) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', nil
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, nil
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, nil
	default:
		return 0, errs.NewParseError(0, "hex digit", string(c))
	}
}
