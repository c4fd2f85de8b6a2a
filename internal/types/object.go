package types

import (
	"slices"

	"ave/internal/source"
)

// Prop is one named property; property maps are insertion-ordered so error
// rendering stays deterministic.
type Prop struct {
	Name source.StringID
	Type TypeID
}

// ObjectInfo stores the property map of a structural object type.
type ObjectInfo struct {
	Props []Prop
}

// RegisterObject создаёт структурный объектный тип из упорядоченных свойств.
func (reg *Registry) RegisterObject(props []Prop) TypeID {
	for id := TypeID(1); int(id) < len(reg.types); id++ {
		tt := reg.types[id]
		if tt.Kind != KindObject {
			continue
		}
		if slices.Equal(reg.objects[tt.Payload].Props, props) {
			return id
		}
	}
	var slot uint32
	reg.objects, slot = appendInfo(reg.objects, ObjectInfo{Props: slices.Clone(props)})
	return reg.newType(Type{Kind: KindObject, Payload: slot})
}

// ObjectInfo retrieves object type metadata by TypeID.
func (reg *Registry) ObjectInfo(id TypeID) (*ObjectInfo, bool) {
	tt, ok := reg.Lookup(reg.Canonical(id))
	if !ok || tt.Kind != KindObject {
		return nil, false
	}
	return &reg.objects[tt.Payload], true
}

// PropsOf returns the ordered property map for any type that has one:
// object types, records, generic declarations, and generic instances.
func (reg *Registry) PropsOf(id TypeID) ([]Prop, bool) {
	tt, ok := reg.Lookup(reg.Canonical(id))
	if !ok {
		return nil, false
	}
	switch tt.Kind {
	case KindObject:
		return reg.objects[tt.Payload].Props, true
	case KindRecord:
		return reg.records[tt.Payload].Props, true
	case KindGeneric:
		return reg.generics[tt.Payload].Props, true
	case KindInstance:
		return reg.instances[tt.Payload].Props, true
	default:
		return nil, false
	}
}

// FindProp ищет свойство по имени в упорядоченной карте.
func FindProp(props []Prop, name source.StringID) (Prop, bool) {
	for _, p := range props {
		if p.Name == name {
			return p, true
		}
	}
	return Prop{}, false
}
