package catalog

import (
	"sort"

	"github.com/gogo/protobuf/proto"
)

// SRIDSnapshotEntry is one wire-encoded SRIDEntry row. Field numbers are
// load-bearing (they are the protobuf wire tags) and must never be
// renumbered once a snapshot has shipped.
type SRIDSnapshotEntry struct {
	Srid  int32  `protobuf:"varint,1,opt,name=srid" json:"srid,omitempty"`
	Name  string `protobuf:"bytes,2,opt,name=name" json:"name,omitempty"`
	Proj4 string `protobuf:"bytes,3,opt,name=proj4" json:"proj4,omitempty"`
}

func (m *SRIDSnapshotEntry) Reset()         { *m = SRIDSnapshotEntry{} }
func (m *SRIDSnapshotEntry) String() string { return proto.CompactTextString(m) }
func (*SRIDSnapshotEntry) ProtoMessage()    {}

// RegistrySnapshot is a point-in-time dump of a loaded SRIDCatalog (and,
// implicitly, the fixed type registry every process already carries),
// wire-compatible across processes so a catalog loaded once by a
// long-lived service can be handed to short-lived workers without each
// one re-parsing the source catalog file.
//
// Hand-declared in the style of biopb.Coord (no .proto/protoc toolchain
// available here): gogo/protobuf's proto.Marshal/Unmarshal fall back to
// reflection over the "protobuf" struct tags below when a message
// doesn't implement the generated Marshaler/Unmarshaler fast path, so
// this type only needs to satisfy the minimal proto.Message interface
// (Reset/String/ProtoMessage) for the wire format to round-trip
// correctly.
type RegistrySnapshot struct {
	Entries []*SRIDSnapshotEntry `protobuf:"bytes,1,rep,name=entries" json:"entries,omitempty"`
}

func (m *RegistrySnapshot) Reset()         { *m = RegistrySnapshot{} }
func (m *RegistrySnapshot) String() string { return proto.CompactTextString(m) }
func (*RegistrySnapshot) ProtoMessage()    {}

// Snapshot renders cat as a RegistrySnapshot, with entries sorted by
// SRID so Marshal's output is deterministic across calls.
func Snapshot(cat *SRIDCatalog) *RegistrySnapshot {
	srids := make([]int, 0, len(cat.entries))
	for s := range cat.entries {
		srids = append(srids, s)
	}
	sort.Ints(srids)

	snap := &RegistrySnapshot{Entries: make([]*SRIDSnapshotEntry, len(srids))}
	for i, s := range srids {
		e := cat.entries[s]
		snap.Entries[i] = &SRIDSnapshotEntry{Srid: int32(e.SRID), Name: e.Name, Proj4: e.Proj4}
	}
	return snap
}

// Restore rebuilds a SRIDCatalog from a RegistrySnapshot.
func Restore(snap *RegistrySnapshot) *SRIDCatalog {
	cat := &SRIDCatalog{entries: make(map[int]SRIDEntry, len(snap.Entries))}
	for _, e := range snap.Entries {
		cat.entries[int(e.Srid)] = SRIDEntry{SRID: int(e.Srid), Name: e.Name, Proj4: e.Proj4}
	}
	return cat
}

// MarshalSnapshot serializes cat to the gogo/protobuf wire format.
func MarshalSnapshot(cat *SRIDCatalog) ([]byte, error) {
	return proto.Marshal(Snapshot(cat))
}

// UnmarshalSnapshot parses data produced by MarshalSnapshot.
func UnmarshalSnapshot(data []byte) (*SRIDCatalog, error) {
	var snap RegistrySnapshot
	if err := proto.Unmarshal(data, &snap); err != nil {
		return nil, err
	}
	return Restore(&snap), nil
}
