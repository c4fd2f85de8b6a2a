package types

import (
	"slices"
)

// UnionInfo stores the deduplicated member set of a union type.
// Members хранятся отсортированными по id, чтобы идентичность была
// структурной независимо от порядка записи.
type UnionInfo struct {
	Members []TypeID
}

// RegisterUnion builds a union from the member list. Duplicates collapse;
// a single survivor is returned as itself, never wrapped.
func (reg *Registry) RegisterUnion(members []TypeID) TypeID {
	flat := make([]TypeID, 0, len(members))
	for _, m := range members {
		m = reg.Canonical(m)
		// вложенный union разворачивается в общий набор
		if info, ok := reg.UnionInfo(m); ok {
			flat = append(flat, info.Members...)
			continue
		}
		flat = append(flat, m)
	}
	slices.Sort(flat)
	flat = slices.Compact(flat)

	if len(flat) == 0 {
		return reg.builtins.Error
	}
	if len(flat) == 1 {
		return flat[0]
	}

	for id := TypeID(1); int(id) < len(reg.types); id++ {
		tt := reg.types[id]
		if tt.Kind != KindUnion {
			continue
		}
		if slices.Equal(reg.unions[tt.Payload].Members, flat) {
			return id
		}
	}

	var slot uint32
	reg.unions, slot = appendInfo(reg.unions, UnionInfo{Members: flat})
	return reg.newType(Type{Kind: KindUnion, Payload: slot})
}

// UnionInfo retrieves union metadata by TypeID.
func (reg *Registry) UnionInfo(id TypeID) (*UnionInfo, bool) {
	tt, ok := reg.Lookup(reg.Canonical(id))
	if !ok || tt.Kind != KindUnion {
		return nil, false
	}
	return &reg.unions[tt.Payload], true
}

// Unite joins two types into a union, collapsing equal ids.
// Используется чекером для накопления типов return.
func (reg *Registry) Unite(a, b TypeID) TypeID {
	if a == NoTypeID {
		return b
	}
	if b == NoTypeID {
		return a
	}
	if reg.Canonical(a) == reg.Canonical(b) {
		return a
	}
	return reg.RegisterUnion([]TypeID{a, b})
}
