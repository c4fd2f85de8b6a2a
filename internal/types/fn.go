package types

import (
	"slices"

	"ave/internal/source"
)

// FnParam describes a single parameter of a function type.
type FnParam struct {
	Name       source.StringID
	Type       TypeID
	Required   bool
	Rest       bool
	HasDefault bool
}

// FnInfo stores metadata for function types.
type FnInfo struct {
	Params []FnParam
	Result TypeID
}

// RegisterFn creates or finds a function type with the given signature.
func (reg *Registry) RegisterFn(params []FnParam, result TypeID) TypeID {
	for id := TypeID(1); int(id) < len(reg.types); id++ {
		tt := reg.types[id]
		if tt.Kind != KindFn {
			continue
		}
		info := reg.fns[tt.Payload]
		if info.Result == result && slices.Equal(info.Params, params) {
			return id
		}
	}
	var slot uint32
	reg.fns, slot = appendInfo(reg.fns, FnInfo{
		Params: slices.Clone(params),
		Result: result,
	})
	return reg.newType(Type{Kind: KindFn, Payload: slot})
}

// FnInfo retrieves function type metadata by TypeID.
func (reg *Registry) FnInfo(id TypeID) (*FnInfo, bool) {
	tt, ok := reg.Lookup(reg.Canonical(id))
	if !ok || tt.Kind != KindFn {
		return nil, false
	}
	return &reg.fns[tt.Payload], true
}

// MinArity возвращает количество обязательных параметров.
func (info *FnInfo) MinArity() int {
	n := 0
	for _, p := range info.Params {
		if p.Required && !p.Rest {
			n++
		}
	}
	return n
}

// HasRest reports whether the last parameter absorbs the argument tail.
func (info *FnInfo) HasRest() bool {
	return len(info.Params) > 0 && info.Params[len(info.Params)-1].Rest
}
