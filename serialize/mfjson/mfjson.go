// Package mfjson implements the OGC Moving Features JSON encoding for
// TInstant, TSequence, and TSequenceSet values. The root object's "type"
// field names the carried base type (MovingBoolean, MovingInteger,
// MovingFloat, MovingText, MovingPoint, MovingGeometry, MovingNPoint,
// MovingPose, MovingRigidGeometry); sequence-set values nest their component
// sequences under "sequences".
//
// Built on encoding/json's struct-tag-driven marshaling, adapted here to
// a dynamic "type"-discriminated object that plain struct tags can't
// express directly — hand-declared wire structs marshaled field-by-field
// rather than via a schema compiler.
package mfjson

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/grailbio/tgeo/basevalue"
	"github.com/grailbio/tgeo/cbuffer"
	"github.com/grailbio/tgeo/errs"
	"github.com/grailbio/tgeo/temporal"
	"github.com/grailbio/tgeo/timeutil"
)

func movingTypeName(tag basevalue.Tag) (string, error) {
	switch tag {
	case basevalue.Bool:
		return "MovingBoolean", nil
	case basevalue.Int:
		return "MovingInteger", nil
	case basevalue.Float:
		return "MovingFloat", nil
	case basevalue.Text:
		return "MovingText", nil
	case basevalue.GeomPoint, basevalue.GeogPoint:
		return "MovingPoint", nil
	case basevalue.Cbuffer:
		return "MovingGeometry", nil
	case basevalue.NPoint:
		return "MovingNPoint", nil
	case basevalue.Pose:
		return "MovingPose", nil
	case basevalue.RigidGeometry:
		return "MovingRigidGeometry", nil
	default:
		return "", errs.NewUnsupportedError("mfjson.movingTypeName", "no MF-JSON type name for base type %s", tag)
	}
}

// crs is the OGC "Name"-form CRS object MF-JSON nests under "crs" when
// the value carries a known SRID.
type crs struct {
	Type       string            `json:"type"`
	Properties map[string]string `json:"properties"`
}

func crsFor(srid int) *crs {
	if srid == cbuffer.SRIDUnknown {
		return nil
	}
	return &crs{Type: "Name", Properties: map[string]string{"name": sridURN(srid)}}
}

func sridURN(srid int) string {
	return "urn:ogc:def:crs:EPSG::" + strconv.Itoa(srid)
}

// sequenceDoc is the shape of one TSequence's MF-JSON rendering; also
// embedded (without crs) inside a sequence-set's "sequences" array.
type sequenceDoc struct {
	Type          string        `json:"type,omitempty"`
	Values        []interface{} `json:"values"`
	Datetimes     []string      `json:"datetimes"`
	Interpolation string        `json:"interpolation"`
	LowerInc      bool          `json:"lower_inc"`
	UpperInc      bool          `json:"upper_inc"`
	Crs           *crs          `json:"crs,omitempty"`
}

func interpName(i temporal.Interpolation) string {
	switch i {
	case temporal.Discrete:
		return "Discrete"
	case temporal.Step:
		return "Step"
	case temporal.Linear:
		return "Linear"
	default:
		return "Discrete"
	}
}

func encodePointCoords(p basevalue.Point) []float64 {
	if p.HasZ {
		return []float64{p.X, p.Y, p.Z}
	}
	return []float64{p.X, p.Y}
}

func decodePointCoords(raw interface{}) (basevalue.Point, error) {
	arr, ok := raw.([]interface{})
	if !ok || (len(arr) != 2 && len(arr) != 3) {
		return basevalue.Point{}, errs.NewParseError(0, "[x,y] or [x,y,z] point", "malformed point")
	}
	x, xok := arr[0].(float64)
	y, yok := arr[1].(float64)
	if !xok || !yok {
		return basevalue.Point{}, errs.NewParseError(0, "numeric coordinates", "malformed point")
	}
	p := basevalue.Point{X: x, Y: y}
	if len(arr) == 3 {
		z, zok := arr[2].(float64)
		if !zok {
			return basevalue.Point{}, errs.NewParseError(0, "numeric z coordinate", "malformed point")
		}
		p.Z, p.HasZ = z, true
	}
	return p, nil
}

func encodeValue(v basevalue.Value) (interface{}, error) {
	switch v.Tag {
	case basevalue.Bool:
		return v.Data.(bool), nil
	case basevalue.Int:
		return v.Data.(int64), nil
	case basevalue.Float:
		return v.Data.(float64), nil
	case basevalue.Text:
		return v.Data.(string), nil
	case basevalue.Cbuffer:
		c := v.Data.(cbuffer.Cbuffer)
		return map[string]interface{}{
			"center": [2]float64{c.Center.X, c.Center.Y},
			"radius": c.Radius,
		}, nil
	case basevalue.GeomPoint, basevalue.GeogPoint:
		return encodePointCoords(v.Data.(basevalue.Point)), nil
	case basevalue.NPoint:
		n := v.Data.(basevalue.NPointValue)
		return map[string]interface{}{"route": n.Route, "measure": n.Measure}, nil
	case basevalue.Pose:
		p := v.Data.(basevalue.PoseValue)
		return map[string]interface{}{"position": encodePointCoords(p.Position), "heading": p.Heading}, nil
	case basevalue.RigidGeometry:
		g := v.Data.(basevalue.RigidGeometryValue)
		return map[string]interface{}{
			"shape": g.ShapeID,
			"pose":  map[string]interface{}{"position": encodePointCoords(g.Pose.Position), "heading": g.Pose.Heading},
		}, nil
	default:
		return nil, errs.NewUnsupportedError("mfjson.encodeValue", "no MF-JSON encoding for base type %s", v.Tag)
	}
}

func sridOf(v basevalue.Value) int {
	if c, ok := v.Data.(cbuffer.Cbuffer); ok {
		return c.SRID
	}
	return cbuffer.SRIDUnknown
}

func buildSequence(seq temporal.TSequence, withCRS bool) (sequenceDoc, error) {
	doc := sequenceDoc{
		Values:        make([]interface{}, seq.N()),
		Datetimes:     make([]string, seq.N()),
		Interpolation: interpName(seq.Interp),
		LowerInc:      seq.Span().LowerInc,
		UpperInc:      seq.Span().UpperInc,
	}
	for i := 0; i < seq.N(); i++ {
		in := seq.InstantAt(i)
		v, err := encodeValue(in.Value)
		if err != nil {
			return sequenceDoc{}, err
		}
		doc.Values[i] = v
		doc.Datetimes[i] = in.T.UTC().Format(timeutil.MFJSONLayout)
	}
	if withCRS && seq.N() > 0 {
		doc.Crs = crsFor(sridOf(seq.InstantAt(0).Value))
	}
	return doc, nil
}

// WriteTSequence renders seq as a single Moving<Type> MF-JSON document.
func WriteTSequence(seq temporal.TSequence) ([]byte, error) {
	name, err := movingTypeName(seq.Tag)
	if err != nil {
		return nil, err
	}
	doc, err := buildSequence(seq, true)
	if err != nil {
		return nil, err
	}
	doc.Type = name
	return json.Marshal(doc)
}

// sequenceSetDoc is the root MF-JSON shape for a TSequenceSet: the same
// envelope as a single sequence, but with "sequences" replacing
// "values"/"datetimes".
type sequenceSetDoc struct {
	Type          string        `json:"type"`
	Sequences     []sequenceDoc `json:"sequences"`
	Interpolation string        `json:"interpolation"`
	Crs           *crs          `json:"crs,omitempty"`
}

// WriteTSequenceSet renders ss as a Moving<Type> MF-JSON document with a
// "sequences" array: a sequence-set value nests its component sequences
// under "sequences": [ {…}, … ].
func WriteTSequenceSet(ss temporal.TSequenceSet) ([]byte, error) {
	name, err := movingTypeName(ss.Tag)
	if err != nil {
		return nil, err
	}
	doc := sequenceSetDoc{Type: name, Interpolation: interpName(ss.Interp), Sequences: make([]sequenceDoc, ss.N())}
	for i := 0; i < ss.N(); i++ {
		sd, err := buildSequence(ss.SequenceAt(i), false)
		if err != nil {
			return nil, err
		}
		doc.Sequences[i] = sd
	}
	if ss.N() > 0 {
		doc.Crs = crsFor(sridOf(ss.SequenceAt(0).InstantAt(0).Value))
	}
	return json.Marshal(doc)
}

// WriteTInstant renders a single instant as a degenerate one-point
// MovingXxx document (lower_inc=upper_inc=true, a single value/datetime
// pair) — MF-JSON has no separate instant object shape, so a
// one-element sequence is the canonical rendering.
func WriteTInstant(in temporal.TInstant) ([]byte, error) {
	name, err := movingTypeName(in.Value.Tag)
	if err != nil {
		return nil, err
	}
	v, err := encodeValue(in.Value)
	if err != nil {
		return nil, err
	}
	doc := sequenceDoc{
		Type:          name,
		Values:        []interface{}{v},
		Datetimes:     []string{in.T.UTC().Format(timeutil.MFJSONLayout)},
		Interpolation: "Discrete",
		LowerInc:      true,
		UpperInc:      true,
		Crs:           crsFor(sridOf(in.Value)),
	}
	return json.Marshal(doc)
}

func parseInterp(name string) temporal.Interpolation {
	switch name {
	case "Step":
		return temporal.Step
	case "Linear":
		return temporal.Linear
	default:
		return temporal.Discrete
	}
}

// sridFromCRS extracts the numeric SRID out of this package's
// "urn:ogc:def:crs:EPSG::<n>" name form; a nil or malformed crs decodes
// to cbuffer.SRIDUnknown.
func sridFromCRS(c *crs) int {
	if c == nil {
		return cbuffer.SRIDUnknown
	}
	name := c.Properties["name"]
	i := strings.LastIndex(name, "::")
	if i < 0 {
		return cbuffer.SRIDUnknown
	}
	n, err := strconv.Atoi(name[i+2:])
	if err != nil {
		return cbuffer.SRIDUnknown
	}
	return n
}

func decodeValue(tag basevalue.Tag, raw interface{}, srid int) (basevalue.Value, error) {
	switch tag {
	case basevalue.Bool:
		b, ok := raw.(bool)
		if !ok {
			return basevalue.Value{}, errs.NewParseError(0, "bool", "non-bool value")
		}
		return basevalue.Value{Tag: basevalue.Bool, Data: b}, nil
	case basevalue.Int:
		f, ok := raw.(float64)
		if !ok {
			return basevalue.Value{}, errs.NewParseError(0, "integer", "non-numeric value")
		}
		return basevalue.Value{Tag: basevalue.Int, Data: int64(f)}, nil
	case basevalue.Float:
		f, ok := raw.(float64)
		if !ok {
			return basevalue.Value{}, errs.NewParseError(0, "float", "non-numeric value")
		}
		return basevalue.Value{Tag: basevalue.Float, Data: f}, nil
	case basevalue.Text:
		s, ok := raw.(string)
		if !ok {
			return basevalue.Value{}, errs.NewParseError(0, "text", "non-string value")
		}
		return basevalue.Value{Tag: basevalue.Text, Data: s}, nil
	case basevalue.Cbuffer:
		m, ok := raw.(map[string]interface{})
		if !ok {
			return basevalue.Value{}, errs.NewParseError(0, "cbuffer object", "non-object value")
		}
		center, ok := m["center"].([]interface{})
		if !ok || len(center) != 2 {
			return basevalue.Value{}, errs.NewParseError(0, "[x,y] center", "malformed center")
		}
		x, xok := center[0].(float64)
		y, yok := center[1].(float64)
		r, rok := m["radius"].(float64)
		if !xok || !yok || !rok {
			return basevalue.Value{}, errs.NewParseError(0, "numeric center/radius", "malformed cbuffer fields")
		}
		c, err := cbuffer.New(cbuffer.Point{X: x, Y: y}, r, srid)
		if err != nil {
			return basevalue.Value{}, err
		}
		return basevalue.Value{Tag: basevalue.Cbuffer, Data: c}, nil
	case basevalue.GeomPoint, basevalue.GeogPoint:
		p, err := decodePointCoords(raw)
		if err != nil {
			return basevalue.Value{}, err
		}
		return basevalue.Value{Tag: tag, Data: p}, nil
	case basevalue.NPoint:
		m, ok := raw.(map[string]interface{})
		if !ok {
			return basevalue.Value{}, errs.NewParseError(0, "npoint object", "non-object value")
		}
		route, rok := m["route"].(float64)
		measure, mok := m["measure"].(float64)
		if !rok || !mok {
			return basevalue.Value{}, errs.NewParseError(0, "numeric route/measure", "malformed npoint fields")
		}
		return basevalue.Value{Tag: tag, Data: basevalue.NPointValue{Route: int64(route), Measure: measure}}, nil
	case basevalue.Pose:
		m, ok := raw.(map[string]interface{})
		if !ok {
			return basevalue.Value{}, errs.NewParseError(0, "pose object", "non-object value")
		}
		pos, err := decodePointCoords(m["position"])
		if err != nil {
			return basevalue.Value{}, err
		}
		heading, hok := m["heading"].(float64)
		if !hok {
			return basevalue.Value{}, errs.NewParseError(0, "numeric heading", "malformed pose fields")
		}
		return basevalue.Value{Tag: tag, Data: basevalue.PoseValue{Position: pos, Heading: heading}}, nil
	case basevalue.RigidGeometry:
		m, ok := raw.(map[string]interface{})
		if !ok {
			return basevalue.Value{}, errs.NewParseError(0, "rigidgeometry object", "non-object value")
		}
		shapeID, sok := m["shape"].(string)
		poseMap, pok := m["pose"].(map[string]interface{})
		if !sok || !pok {
			return basevalue.Value{}, errs.NewParseError(0, "shape string and pose object", "malformed rigidgeometry fields")
		}
		pos, err := decodePointCoords(poseMap["position"])
		if err != nil {
			return basevalue.Value{}, err
		}
		heading, hok := poseMap["heading"].(float64)
		if !hok {
			return basevalue.Value{}, errs.NewParseError(0, "numeric heading", "malformed rigidgeometry pose")
		}
		return basevalue.Value{Tag: tag, Data: basevalue.RigidGeometryValue{ShapeID: shapeID, Pose: basevalue.PoseValue{Position: pos, Heading: heading}}}, nil
	default:
		return basevalue.Value{}, errs.NewUnsupportedError("mfjson.decodeValue", "no MF-JSON decoding for base type %s", tag)
	}
}

// ReadTInstant parses the document WriteTInstant produced, given the
// expected base type (MF-JSON carries no machine-readable base-type
// discriminant beyond the human-facing "type" string).
func ReadTInstant(data []byte, tag basevalue.Tag) (temporal.TInstant, error) {
	var doc sequenceDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return temporal.TInstant{}, errs.NewParseError(0, "MF-JSON instant", err.Error())
	}
	if len(doc.Values) != 1 || len(doc.Datetimes) != 1 {
		return temporal.TInstant{}, errs.NewParseError(0, "single value/datetime pair", "malformed instant document")
	}
	srid := sridFromCRS(doc.Crs)
	v, err := decodeValue(tag, doc.Values[0], srid)
	if err != nil {
		return temporal.TInstant{}, err
	}
	t, err := timeutil.Parse(doc.Datetimes[0])
	if err != nil {
		return temporal.TInstant{}, errs.NewParseError(0, "timestamp", doc.Datetimes[0])
	}
	return temporal.NewTInstant(v, t), nil
}

func decodeSequence(doc sequenceDoc, tag basevalue.Tag, interp temporal.Interpolation) (temporal.TSequence, error) {
	if len(doc.Values) != len(doc.Datetimes) {
		return temporal.TSequence{}, errs.NewParseError(0, "matched values/datetimes", "length mismatch")
	}
	srid := sridFromCRS(doc.Crs)
	instants := make([]temporal.TInstant, len(doc.Values))
	for i := range doc.Values {
		v, err := decodeValue(tag, doc.Values[i], srid)
		if err != nil {
			return temporal.TSequence{}, err
		}
		t, err := timeutil.Parse(doc.Datetimes[i])
		if err != nil {
			return temporal.TSequence{}, errs.NewParseError(0, "timestamp", doc.Datetimes[i])
		}
		instants[i] = temporal.NewTInstant(v, t)
	}
	return temporal.NewTSequence(tag, interp, instants, doc.LowerInc, doc.UpperInc)
}

// ReadTSequence parses the document WriteTSequence produced.
func ReadTSequence(data []byte, tag basevalue.Tag) (temporal.TSequence, error) {
	var doc sequenceDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return temporal.TSequence{}, errs.NewParseError(0, "MF-JSON sequence", err.Error())
	}
	return decodeSequence(doc, tag, parseInterp(doc.Interpolation))
}

// ReadTSequenceSet parses the document WriteTSequenceSet produced.
func ReadTSequenceSet(data []byte, tag basevalue.Tag) (temporal.TSequenceSet, error) {
	var doc sequenceSetDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return temporal.TSequenceSet{}, errs.NewParseError(0, "MF-JSON sequence-set", err.Error())
	}
	if len(doc.Sequences) == 0 {
		return temporal.TSequenceSet{}, errs.NewParseError(0, "non-empty sequences array", "empty sequence-set document")
	}
	// The set's overall CRS, not each child's (children omit "crs" on
	// write), applies to every component sequence.
	setSRID := sridFromCRS(doc.Crs)
	interp := parseInterp(doc.Interpolation)
	seqs := make([]temporal.TSequence, len(doc.Sequences))
	for i, sd := range doc.Sequences {
		if setSRID != cbuffer.SRIDUnknown {
			sd.Crs = &crs{Type: "Name", Properties: map[string]string{"name": sridURN(setSRID)}}
		}
		seq, err := decodeSequence(sd, tag, interp)
		if err != nil {
			return temporal.TSequenceSet{}, err
		}
		seqs[i] = seq
	}
	return temporal.NewTSequenceSet(tag, interp, seqs)
}
