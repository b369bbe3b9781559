// Package catalog is the ambient registry/catalog layer: an immutable
// type-tag registry mirroring basevalue's, a sharded spatial-reference
// projection-handle cache, an S3/local SRID catalog loader, and a
// protobuf snapshot of a loaded catalog for cross-process handoff.
package catalog

import (
	"github.com/grailbio/tgeo/basevalue"
)

// TypeDescriptor names one base type the way a catalog entry (as
// opposed to the in-process basevalue.Tag) would: a stable string name
// alongside the tag, for use by anything that needs to round-trip a
// type through a text form (a config file, an external catalog, a
// snapshot) rather than compare Go constants directly.
type TypeDescriptor struct {
	Tag  basevalue.Tag
	Name string
}

// typesByName/typesByTag are process-wide and immutable after package
// initialization, the same contract basevalue's own tag registry keeps;
// no lock is needed once init() has run.
var (
	typesByName = map[string]TypeDescriptor{
		"boolean":       {basevalue.Bool, "boolean"},
		"integer":       {basevalue.Int, "integer"},
		"float":         {basevalue.Float, "float"},
		"text":          {basevalue.Text, "text"},
		"geompoint":     {basevalue.GeomPoint, "geompoint"},
		"geogpoint":     {basevalue.GeogPoint, "geogpoint"},
		"cbuffer":       {basevalue.Cbuffer, "cbuffer"},
		"npoint":        {basevalue.NPoint, "npoint"},
		"pose":          {basevalue.Pose, "pose"},
		"rigidgeometry": {basevalue.RigidGeometry, "rigidgeometry"},
	}
	typesByTag = func() map[basevalue.Tag]TypeDescriptor {
		m := make(map[basevalue.Tag]TypeDescriptor, len(typesByName))
		for _, d := range typesByName {
			m[d.Tag] = d
		}
		return m
	}()
)

// LookupByName returns the catalog's descriptor for a type name
// (case-sensitive, as written by a catalog snapshot).
func LookupByName(name string) (TypeDescriptor, bool) {
	d, ok := typesByName[name]
	return d, ok
}

// LookupByTag returns the catalog's descriptor for a basevalue.Tag.
func LookupByTag(tag basevalue.Tag) (TypeDescriptor, bool) {
	d, ok := typesByTag[tag]
	return d, ok
}

// Names returns every registered type name, for enumeration (e.g. a
// catalog dump or a CLI's `--help` type list).
func Names() []string {
	out := make([]string, 0, len(typesByName))
	for n := range typesByName {
		out = append(out, n)
	}
	return out
}
