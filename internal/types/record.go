package types

import (
	"slices"

	"ave/internal/source"
)

// RecordInfo stores a user-declared nominal record without type parameters.
// Records with type parameters are registered through RegisterGeneric and
// behave as generics.
type RecordInfo struct {
	Name  source.StringID
	Decl  source.Span
	Props []Prop
}

// RegisterRecord allocates a nominal record type. Identity is by id.
func (reg *Registry) RegisterRecord(name source.StringID, decl source.Span) TypeID {
	var slot uint32
	reg.records, slot = appendInfo(reg.records, RecordInfo{Name: name, Decl: decl})
	return reg.newType(Type{Kind: KindRecord, Name: name, Payload: slot})
}

// SetRecordProps stores the ordered property table for the record.
func (reg *Registry) SetRecordProps(id TypeID, props []Prop) {
	tt, ok := reg.Lookup(id)
	if !ok || tt.Kind != KindRecord {
		return
	}
	reg.records[tt.Payload].Props = slices.Clone(props)
}

// RecordInfo retrieves record metadata by TypeID.
func (reg *Registry) RecordInfo(id TypeID) (*RecordInfo, bool) {
	tt, ok := reg.Lookup(reg.Canonical(id))
	if !ok || tt.Kind != KindRecord {
		return nil, false
	}
	return &reg.records[tt.Payload], true
}

// NamedInfo holds the resolution state for a forward type reference. Args is
// non-empty for an instantiation site (`Pair<num>`) whose generic was not yet
// known at parse time; the checker instantiates on resolve.
type NamedInfo struct {
	Target TypeID
	Args   []TypeID
}

// RegisterNamed allocates a forward reference that the checker resolves
// later. Повторное упоминание того же имени переиспользует слот.
func (reg *Registry) RegisterNamed(name source.StringID) TypeID {
	return reg.RegisterNamedInstance(name, nil)
}

// RegisterNamedInstance allocates a forward reference carrying instantiation
// arguments for a generic that is not resolved yet.
func (reg *Registry) RegisterNamedInstance(name source.StringID, args []TypeID) TypeID {
	for id := TypeID(1); int(id) < len(reg.types); id++ {
		tt := reg.types[id]
		if tt.Kind == KindNamed && tt.Name == name && slices.Equal(reg.named[tt.Payload].Args, args) {
			return id
		}
	}
	var slot uint32
	reg.named, slot = appendInfo(reg.named, NamedInfo{Args: slices.Clone(args)})
	return reg.newType(Type{Kind: KindNamed, Name: name, Payload: slot, Unresolved: true})
}

// NamedInfo retrieves forward reference metadata by TypeID.
func (reg *Registry) NamedInfo(id TypeID) (*NamedInfo, bool) {
	tt, ok := reg.Lookup(id)
	if !ok || tt.Kind != KindNamed {
		return nil, false
	}
	return &reg.named[tt.Payload], true
}

// Resolve binds a named reference to its target type in place. The id stays
// stable, so every annotation that captured it sees the resolution.
func (reg *Registry) Resolve(id, target TypeID) {
	tt, ok := reg.Lookup(id)
	if !ok || tt.Kind != KindNamed {
		return
	}
	reg.named[tt.Payload].Target = target
	reg.types[id].Unresolved = false
}

// IsUnresolved reports whether the id is a named reference still waiting for
// resolution.
func (reg *Registry) IsUnresolved(id TypeID) bool {
	tt, ok := reg.Lookup(id)
	return ok && tt.Kind == KindNamed && tt.Unresolved
}
