package wkt

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/grailbio/tgeo/basevalue"
	"github.com/grailbio/tgeo/cbuffer"
	"github.com/grailbio/tgeo/errs"
	"github.com/grailbio/tgeo/period"
	"github.com/grailbio/tgeo/temporal"
	"github.com/grailbio/tgeo/timeset"
	"github.com/grailbio/tgeo/timeutil"
)

func lowerBracket(inc bool) string {
	if inc {
		return "["
	}
	return "("
}

func upperBracket(inc bool) string {
	if inc {
		return "]"
	}
	return ")"
}

// WritePeriod renders p in WKT, e.g. "[2000-01-01T00:00:00, 2000-01-02T00:00:00]".
func WritePeriod(p period.Period) string {
	return fmt.Sprintf("%s%s, %s%s", lowerBracket(p.LowerInc), p.Lower.UTC().Format(timeutil.Layout), p.Upper.UTC().Format(timeutil.Layout), upperBracket(p.UpperInc))
}

// ParsePeriod parses a Period previously written by WritePeriod.
func ParsePeriod(s string) (period.Period, error) {
	c := newCursor(s)
	return parsePeriod(c)
}

func parsePeriod(c *cursor) (period.Period, error) {
	lowBracket, ok := c.peek()
	if !ok || (lowBracket != '[' && lowBracket != '(') {
		return period.Period{}, errs.NewParseError(c.pos, "'[' or '('", "other")
	}
	c.pos++
	lowerInc := lowBracket == '['
	lower, err := c.timestamp()
	if err != nil {
		return period.Period{}, err
	}
	if err := c.expect(','); err != nil {
		return period.Period{}, err
	}
	upper, err := c.timestamp()
	if err != nil {
		return period.Period{}, err
	}
	upBracket, ok := c.peek()
	if !ok || (upBracket != ']' && upBracket != ')') {
		return period.Period{}, errs.NewParseError(c.pos, "']' or ')'", "other")
	}
	c.pos++
	upperInc := upBracket == ']'
	return period.New(lower, upper, lowerInc, upperInc)
}

// WriteTimestampSet renders ts as "{t1, t2, ...}".
func WriteTimestampSet(ts timeset.TimestampSet) string {
	parts := make([]string, ts.N())
	for i := 0; i < ts.N(); i++ {
		parts[i] = ts.TimeAt(i).UTC().Format(timeutil.Layout)
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// ParseTimestampSet parses a TimestampSet previously written by
// WriteTimestampSet.
func ParseTimestampSet(s string) (timeset.TimestampSet, error) {
	c := newCursor(s)
	if err := c.expect('{'); err != nil {
		return timeset.TimestampSet{}, err
	}
	var times []time.Time
	for {
		t, err := c.timestamp()
		if err != nil {
			return timeset.TimestampSet{}, err
		}
		times = append(times, t)
		ch, ok := c.peek()
		if !ok {
			return timeset.TimestampSet{}, errs.NewParseError(c.pos, "',' or '}'", "EOF")
		}
		if ch == ',' {
			c.pos++
			continue
		}
		break
	}
	if err := c.expect('}'); err != nil {
		return timeset.TimestampSet{}, err
	}
	return timeset.NewTimestampSet(times)
}

// WritePeriodSet renders ps as "{[p1],[p2],...}".
func WritePeriodSet(ps timeset.PeriodSet) string {
	parts := make([]string, ps.N())
	for i := 0; i < ps.N(); i++ {
		parts[i] = WritePeriod(ps.PeriodAt(i))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// ParsePeriodSet parses a PeriodSet previously written by WritePeriodSet.
func ParsePeriodSet(s string) (timeset.PeriodSet, error) {
	c := newCursor(s)
	if err := c.expect('{'); err != nil {
		return timeset.PeriodSet{}, err
	}
	var periods []period.Period
	for {
		p, err := parsePeriod(c)
		if err != nil {
			return timeset.PeriodSet{}, err
		}
		periods = append(periods, p)
		ch, ok := c.peek()
		if !ok {
			return timeset.PeriodSet{}, errs.NewParseError(c.pos, "',' or '}'", "EOF")
		}
		if ch == ',' {
			c.pos++
			continue
		}
		break
	}
	if err := c.expect('}'); err != nil {
		return timeset.PeriodSet{}, err
	}
	return timeset.NewPeriodSet(periods)
}

// WriteCbuffer renders c as "Cbuffer(Point(x y),r)", optionally prefixed
// with "SRID=n;" when ewkt is true and c.SRID is known: EWKT prefixes
// SRID=N; when the SRID is known.
func WriteCbuffer(c cbuffer.Cbuffer, ewkt bool) string {
	body := fmt.Sprintf("Cbuffer(Point(%s %s),%s)", trimFloat(c.Center.X), trimFloat(c.Center.Y), trimFloat(c.Radius))
	if ewkt && c.SRID != cbuffer.SRIDUnknown {
		return fmt.Sprintf("SRID=%d;%s", c.SRID, body)
	}
	return body
}

// ParseCbuffer parses a Cbuffer previously written by WriteCbuffer.
func ParseCbuffer(s string) (cbuffer.Cbuffer, error) {
	c := newCursor(s)
	srid := cbuffer.SRIDUnknown
	if w := peekWord(c); w == "SRID" {
		c.pos += len(w)
		if err := c.expect('='); err != nil {
			return cbuffer.Cbuffer{}, err
		}
		n, err := c.integer()
		if err != nil {
			return cbuffer.Cbuffer{}, err
		}
		srid = n
		if err := c.expect(';'); err != nil {
			return cbuffer.Cbuffer{}, err
		}
	}
	if w := c.word(); w != "Cbuffer" {
		return cbuffer.Cbuffer{}, errs.NewParseError(c.pos, "Cbuffer", w)
	}
	if err := c.expect('('); err != nil {
		return cbuffer.Cbuffer{}, err
	}
	if w := c.word(); w != "Point" {
		return cbuffer.Cbuffer{}, errs.NewParseError(c.pos, "Point", w)
	}
	if err := c.expect('('); err != nil {
		return cbuffer.Cbuffer{}, err
	}
	x, err := c.number()
	if err != nil {
		return cbuffer.Cbuffer{}, err
	}
	y, err := c.number()
	if err != nil {
		return cbuffer.Cbuffer{}, err
	}
	if err := c.expect(')'); err != nil {
		return cbuffer.Cbuffer{}, err
	}
	if err := c.expect(','); err != nil {
		return cbuffer.Cbuffer{}, err
	}
	r, err := c.number()
	if err != nil {
		return cbuffer.Cbuffer{}, err
	}
	if err := c.expect(')'); err != nil {
		return cbuffer.Cbuffer{}, err
	}
	return cbuffer.New(cbuffer.Point{X: x, Y: y}, r, srid)
}

// WritePoint renders p as "Point(x y)" or, when p.HasZ, "Point Z(x y z)".
func WritePoint(p basevalue.Point) string {
	if p.HasZ {
		return fmt.Sprintf("Point Z(%s %s %s)", trimFloat(p.X), trimFloat(p.Y), trimFloat(p.Z))
	}
	return fmt.Sprintf("Point(%s %s)", trimFloat(p.X), trimFloat(p.Y))
}

// ParsePoint parses a Point previously written by WritePoint.
func ParsePoint(s string) (basevalue.Point, error) {
	c := newCursor(s)
	return parsePointAt(c)
}

func parsePointAt(c *cursor) (basevalue.Point, error) {
	if w := c.word(); w != "Point" {
		return basevalue.Point{}, errs.NewParseError(c.pos, "Point", w)
	}
	hasZ := false
	if peekWord(c) == "Z" {
		c.word()
		hasZ = true
	}
	if err := c.expect('('); err != nil {
		return basevalue.Point{}, err
	}
	x, err := c.number()
	if err != nil {
		return basevalue.Point{}, err
	}
	y, err := c.number()
	if err != nil {
		return basevalue.Point{}, err
	}
	var z float64
	if hasZ {
		z, err = c.number()
		if err != nil {
			return basevalue.Point{}, err
		}
	}
	if err := c.expect(')'); err != nil {
		return basevalue.Point{}, err
	}
	return basevalue.Point{X: x, Y: y, Z: z, HasZ: hasZ}, nil
}

// WriteNPoint renders n as "NPoint(route,measure)".
func WriteNPoint(n basevalue.NPointValue) string {
	return fmt.Sprintf("NPoint(%d,%s)", n.Route, trimFloat(n.Measure))
}

func parseNPointAt(c *cursor) (basevalue.NPointValue, error) {
	if w := c.word(); w != "NPoint" {
		return basevalue.NPointValue{}, errs.NewParseError(c.pos, "NPoint", w)
	}
	if err := c.expect('('); err != nil {
		return basevalue.NPointValue{}, err
	}
	route, err := c.integer()
	if err != nil {
		return basevalue.NPointValue{}, err
	}
	if err := c.expect(','); err != nil {
		return basevalue.NPointValue{}, err
	}
	measure, err := c.number()
	if err != nil {
		return basevalue.NPointValue{}, err
	}
	if err := c.expect(')'); err != nil {
		return basevalue.NPointValue{}, err
	}
	return basevalue.NPointValue{Route: int64(route), Measure: measure}, nil
}

// WritePose renders p as "Pose(Point(x y),heading)".
func WritePose(p basevalue.PoseValue) string {
	return fmt.Sprintf("Pose(%s,%s)", WritePoint(p.Position), trimFloat(p.Heading))
}

func parsePoseAt(c *cursor) (basevalue.PoseValue, error) {
	if w := c.word(); w != "Pose" {
		return basevalue.PoseValue{}, errs.NewParseError(c.pos, "Pose", w)
	}
	if err := c.expect('('); err != nil {
		return basevalue.PoseValue{}, err
	}
	pos, err := parsePointAt(c)
	if err != nil {
		return basevalue.PoseValue{}, err
	}
	if err := c.expect(','); err != nil {
		return basevalue.PoseValue{}, err
	}
	heading, err := c.number()
	if err != nil {
		return basevalue.PoseValue{}, err
	}
	if err := c.expect(')'); err != nil {
		return basevalue.PoseValue{}, err
	}
	return basevalue.PoseValue{Position: pos, Heading: heading}, nil
}

// WriteRigidGeometry renders r as `RigidGeometry("shapeID",Pose(...))`.
func WriteRigidGeometry(r basevalue.RigidGeometryValue) string {
	return fmt.Sprintf("RigidGeometry(%s,%s)", strconv.Quote(r.ShapeID), WritePose(r.Pose))
}

func parseRigidGeometryAt(c *cursor) (basevalue.RigidGeometryValue, error) {
	if w := c.word(); w != "RigidGeometry" {
		return basevalue.RigidGeometryValue{}, errs.NewParseError(c.pos, "RigidGeometry", w)
	}
	if err := c.expect('('); err != nil {
		return basevalue.RigidGeometryValue{}, err
	}
	shapeID, err := c.quotedString()
	if err != nil {
		return basevalue.RigidGeometryValue{}, err
	}
	if err := c.expect(','); err != nil {
		return basevalue.RigidGeometryValue{}, err
	}
	pose, err := parsePoseAt(c)
	if err != nil {
		return basevalue.RigidGeometryValue{}, err
	}
	if err := c.expect(')'); err != nil {
		return basevalue.RigidGeometryValue{}, err
	}
	return basevalue.RigidGeometryValue{ShapeID: shapeID, Pose: pose}, nil
}

func peekWord(c *cursor) string {
	save := c.pos
	w := c.word()
	c.pos = save
	return w
}

func trimFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func writeBaseValue(v basevalue.Value) (string, error) {
	switch v.Tag {
	case basevalue.Bool:
		if v.Data.(bool) {
			return "true", nil
		}
		return "false", nil
	case basevalue.Int:
		return strconv.FormatInt(v.Data.(int64), 10), nil
	case basevalue.Float:
		return trimFloat(v.Data.(float64)), nil
	case basevalue.Text:
		return strconv.Quote(v.Data.(string)), nil
	case basevalue.Cbuffer:
		return WriteCbuffer(v.Data.(cbuffer.Cbuffer), false), nil
	case basevalue.GeomPoint, basevalue.GeogPoint:
		return WritePoint(v.Data.(basevalue.Point)), nil
	case basevalue.NPoint:
		return WriteNPoint(v.Data.(basevalue.NPointValue)), nil
	case basevalue.Pose:
		return WritePose(v.Data.(basevalue.PoseValue)), nil
	case basevalue.RigidGeometry:
		return WriteRigidGeometry(v.Data.(basevalue.RigidGeometryValue)), nil
	default:
		return "", errs.NewUnsupportedError("wkt.writeBaseValue", "no WKT encoding for base type %s", v.Tag)
	}
}

func parseBaseValue(c *cursor, tag basevalue.Tag) (basevalue.Value, error) {
	switch tag {
	case basevalue.Bool:
		w := c.word()
		switch w {
		case "true":
			return basevalue.Value{Tag: tag, Data: true}, nil
		case "false":
			return basevalue.Value{Tag: tag, Data: false}, nil
		default:
			return basevalue.Value{}, errs.NewParseError(c.pos, "true or false", w)
		}
	case basevalue.Int:
		n, err := c.integer()
		if err != nil {
			return basevalue.Value{}, err
		}
		return basevalue.Value{Tag: tag, Data: int64(n)}, nil
	case basevalue.Float:
		f, err := c.number()
		if err != nil {
			return basevalue.Value{}, err
		}
		return basevalue.Value{Tag: tag, Data: f}, nil
	case basevalue.Text:
		s, err := c.quotedString()
		if err != nil {
			return basevalue.Value{}, err
		}
		return basevalue.Value{Tag: tag, Data: s}, nil
	case basevalue.Cbuffer:
		start := c.pos
		if w := c.word(); w != "Cbuffer" {
			return basevalue.Value{}, errs.NewParseError(start, "Cbuffer", w)
		}
		c.pos = start
		cb, err := parseCbufferAt(c)
		if err != nil {
			return basevalue.Value{}, err
		}
		return basevalue.Value{Tag: tag, Data: cb}, nil
	case basevalue.GeomPoint, basevalue.GeogPoint:
		p, err := parsePointAt(c)
		if err != nil {
			return basevalue.Value{}, err
		}
		return basevalue.Value{Tag: tag, Data: p}, nil
	case basevalue.NPoint:
		n, err := parseNPointAt(c)
		if err != nil {
			return basevalue.Value{}, err
		}
		return basevalue.Value{Tag: tag, Data: n}, nil
	case basevalue.Pose:
		p, err := parsePoseAt(c)
		if err != nil {
			return basevalue.Value{}, err
		}
		return basevalue.Value{Tag: tag, Data: p}, nil
	case basevalue.RigidGeometry:
		r, err := parseRigidGeometryAt(c)
		if err != nil {
			return basevalue.Value{}, err
		}
		return basevalue.Value{Tag: tag, Data: r}, nil
	default:
		return basevalue.Value{}, errs.NewUnsupportedError("wkt.parseBaseValue", "no WKT decoding for base type %s", tag)
	}
}

// parseCbufferAt parses a bare (non-EWKT-prefixed) Cbuffer literal
// starting at the cursor's current position, for embedding inside a
// TInstant/TSequence literal.
func parseCbufferAt(c *cursor) (cbuffer.Cbuffer, error) {
	if w := c.word(); w != "Cbuffer" {
		return cbuffer.Cbuffer{}, errs.NewParseError(c.pos, "Cbuffer", w)
	}
	if err := c.expect('('); err != nil {
		return cbuffer.Cbuffer{}, err
	}
	if w := c.word(); w != "Point" {
		return cbuffer.Cbuffer{}, errs.NewParseError(c.pos, "Point", w)
	}
	if err := c.expect('('); err != nil {
		return cbuffer.Cbuffer{}, err
	}
	x, err := c.number()
	if err != nil {
		return cbuffer.Cbuffer{}, err
	}
	y, err := c.number()
	if err != nil {
		return cbuffer.Cbuffer{}, err
	}
	if err := c.expect(')'); err != nil {
		return cbuffer.Cbuffer{}, err
	}
	if err := c.expect(','); err != nil {
		return cbuffer.Cbuffer{}, err
	}
	r, err := c.number()
	if err != nil {
		return cbuffer.Cbuffer{}, err
	}
	if err := c.expect(')'); err != nil {
		return cbuffer.Cbuffer{}, err
	}
	return cbuffer.New(cbuffer.Point{X: x, Y: y}, r, cbuffer.SRIDUnknown)
}

// WriteTInstant renders in as "value@timestamp".
func WriteTInstant(in temporal.TInstant) (string, error) {
	v, err := writeBaseValue(in.Value)
	if err != nil {
		return "", err
	}
	return v + "@" + in.T.UTC().Format(timeutil.Layout), nil
}

// ParseTInstant parses a TInstant of the given base type, previously
// written by WriteTInstant.
func ParseTInstant(s string, tag basevalue.Tag) (temporal.TInstant, error) {
	c := newCursor(s)
	v, err := parseBaseValue(c, tag)
	if err != nil {
		return temporal.TInstant{}, err
	}
	if err := c.expect('@'); err != nil {
		return temporal.TInstant{}, err
	}
	t, err := c.timestamp()
	if err != nil {
		return temporal.TInstant{}, err
	}
	return temporal.NewTInstant(v, t), nil
}

func interpKeyword(i temporal.Interpolation) string {
	switch i {
	case temporal.Discrete:
		return "Discrete"
	case temporal.Step:
		return "Step"
	case temporal.Linear:
		return "Linear"
	default:
		return "Step"
	}
}

func parseInterpKeyword(s string) temporal.Interpolation {
	switch s {
	case "Discrete":
		return temporal.Discrete
	case "Linear":
		return temporal.Linear
	default:
		return temporal.Step
	}
}

// WriteTSequence renders seq as "Interp[v1@t1, v2@t2, ...]" (brackets
// carry the span's bound inclusivity, as with Period).
func WriteTSequence(seq temporal.TSequence) (string, error) {
	var b strings.Builder
	b.WriteString(interpKeyword(seq.Interp))
	b.WriteString(lowerBracket(seq.Span().LowerInc))
	for i := 0; i < seq.N(); i++ {
		if i > 0 {
			b.WriteString(", ")
		}
		s, err := WriteTInstant(seq.InstantAt(i))
		if err != nil {
			return "", err
		}
		b.WriteString(s)
	}
	b.WriteString(upperBracket(seq.Span().UpperInc))
	return b.String(), nil
}

// ParseTSequence parses a TSequence of the given base type, previously
// written by WriteTSequence.
func ParseTSequence(s string, tag basevalue.Tag) (temporal.TSequence, error) {
	c := newCursor(s)
	kw := c.word()
	interp := parseInterpKeyword(kw)
	lowBracket, ok := c.peek()
	if !ok || (lowBracket != '[' && lowBracket != '(') {
		return temporal.TSequence{}, errs.NewParseError(c.pos, "'[' or '('", "other")
	}
	c.pos++
	lowerInc := lowBracket == '['
	var instants []temporal.TInstant
	for {
		v, err := parseBaseValue(c, tag)
		if err != nil {
			return temporal.TSequence{}, err
		}
		if err := c.expect('@'); err != nil {
			return temporal.TSequence{}, err
		}
		t, err := c.timestamp()
		if err != nil {
			return temporal.TSequence{}, err
		}
		instants = append(instants, temporal.NewTInstant(v, t))
		ch, ok := c.peek()
		if !ok {
			return temporal.TSequence{}, errs.NewParseError(c.pos, "',' or closing bracket", "EOF")
		}
		if ch == ',' {
			c.pos++
			continue
		}
		break
	}
	upBracket, ok := c.peek()
	if !ok || (upBracket != ']' && upBracket != ')') {
		return temporal.TSequence{}, errs.NewParseError(c.pos, "']' or ')'", "other")
	}
	c.pos++
	upperInc := upBracket == ']'
	return temporal.NewTSequence(tag, interp, instants, lowerInc, upperInc)
}

// WriteTSequenceSet renders ss as "{seq1, seq2, ...}".
func WriteTSequenceSet(ss temporal.TSequenceSet) (string, error) {
	parts := make([]string, ss.N())
	for i := 0; i < ss.N(); i++ {
		s, err := WriteTSequence(ss.SequenceAt(i))
		if err != nil {
			return "", err
		}
		parts[i] = s
	}
	return "{" + strings.Join(parts, ", ") + "}", nil
}

// ParseTSequenceSet parses a TSequenceSet of the given base type,
// previously written by WriteTSequenceSet.
func ParseTSequenceSet(s string, tag basevalue.Tag) (temporal.TSequenceSet, error) {
	c := newCursor(s)
	if err := c.expect('{'); err != nil {
		return temporal.TSequenceSet{}, err
	}
	var seqs []temporal.TSequence
	var interp temporal.Interpolation
	for {
		start := c.pos
		kw := c.word()
		interp = parseInterpKeyword(kw)
		c.pos = start
		depth := 0
		segStart := c.pos
		for c.pos < len(c.s) {
			ch := c.s[c.pos]
			if ch == '[' || ch == '(' {
				depth++
			} else if ch == ']' || ch == ')' {
				depth--
				c.pos++
				if depth == 0 {
					break
				}
				continue
			}
			c.pos++
		}
		seq, err := ParseTSequence(c.s[segStart:c.pos], tag)
		if err != nil {
			return temporal.TSequenceSet{}, err
		}
		seqs = append(seqs, seq)
		ch, ok := c.peek()
		if !ok {
			return temporal.TSequenceSet{}, errs.NewParseError(c.pos, "',' or '}'", "EOF")
		}
		if ch == ',' {
			c.pos++
			continue
		}
		break
	}
	if err := c.expect('}'); err != nil {
		return temporal.TSequenceSet{}, err
	}
	return temporal.NewTSequenceSet(tag, interp, seqs)
}
