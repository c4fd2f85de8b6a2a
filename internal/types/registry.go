package types

import (
	"fmt"

	"fortio.org/safecast"

	"ave/internal/source"
)

// Builtins stores TypeIDs for the singleton types.
type Builtins struct {
	Error  TypeID
	Infer  TypeID
	Any    TypeID
	Void   TypeID
	Num    TypeID
	Str    TypeID
	Bool   TypeID
	Object TypeID
	Array  TypeID // встроенный generic Array<T>
}

// Registry owns every type of one compilation and hands out stable TypeIDs.
// Identity is by id; generic instances and unions are deduplicated
// structurally. Никакого глобального счётчика — по реестру на компиляцию.
type Registry struct {
	types    []Type
	builtins Builtins
	strings  *source.Interner

	fns       []FnInfo
	generics  []GenericInfo
	instances []InstanceInfo
	unions    []UnionInfo
	objects   []ObjectInfo
	records   []RecordInfo
	named     []NamedInfo
}

// NewRegistry constructs a registry seeded with the built-in singletons.
// If strings is nil, a fresh interner is allocated.
func NewRegistry(strings *source.Interner) *Registry {
	if strings == nil {
		strings = source.NewInterner()
	}
	reg := &Registry{strings: strings}
	reg.types = append(reg.types, Type{Kind: KindInvalid}) // слот 0 — невалидный

	reg.builtins.Error = reg.newType(Type{Kind: KindError, Name: strings.Intern("<error>")})
	reg.builtins.Infer = reg.newType(Type{Kind: KindInfer, Name: strings.Intern("<infer>")})
	reg.builtins.Any = reg.newType(Type{Kind: KindAny, Name: strings.Intern("any")})
	reg.builtins.Void = reg.newType(Type{Kind: KindVoid, Name: strings.Intern("void")})
	reg.builtins.Num = reg.newType(Type{Kind: KindNum, Name: strings.Intern("num")})
	reg.builtins.Str = reg.newType(Type{Kind: KindStr, Name: strings.Intern("str")})
	reg.builtins.Bool = reg.newType(Type{Kind: KindBool, Name: strings.Intern("bool")})
	reg.builtins.Object = reg.newType(Type{Kind: KindObjectAny, Name: strings.Intern("object")})
	reg.builtins.Array = reg.registerArray()
	return reg
}

// Builtins returns TypeIDs for the singleton types.
func (reg *Registry) Builtins() Builtins {
	return reg.builtins
}

// Strings returns the interner shared with the rest of the pipeline.
func (reg *Registry) Strings() *source.Interner {
	return reg.strings
}

func (reg *Registry) newType(t Type) TypeID {
	lenTypes, err := safecast.Conv[uint32](len(reg.types))
	if err != nil {
		panic(fmt.Errorf("len(types) overflow: %w", err))
	}
	id := TypeID(lenTypes)
	reg.types = append(reg.types, t)
	return id
}

// Lookup returns the descriptor for a TypeID.
func (reg *Registry) Lookup(id TypeID) (Type, bool) {
	if id == NoTypeID || int(id) >= len(reg.types) {
		return Type{}, false
	}
	return reg.types[id], true
}

// MustLookup panics when id is invalid.
func (reg *Registry) MustLookup(id TypeID) Type {
	tt, ok := reg.Lookup(id)
	if !ok {
		panic("types: invalid TypeID")
	}
	return tt
}

// Len returns the number of allocated types including the invalid slot.
func (reg *Registry) Len() int {
	return len(reg.types)
}

// Canonical follows resolved named references down to the underlying type.
// Неразрешённый KindNamed возвращается как есть.
func (reg *Registry) Canonical(id TypeID) TypeID {
	for {
		tt, ok := reg.Lookup(id)
		if !ok || tt.Kind != KindNamed || tt.Unresolved {
			return id
		}
		next := reg.named[tt.Payload].Target
		if next == NoTypeID || next == id {
			return id
		}
		id = next
	}
}

// IsError reports whether the canonical type is the error sentinel.
func (reg *Registry) IsError(id TypeID) bool {
	tt, ok := reg.Lookup(reg.Canonical(id))
	return ok && tt.Kind == KindError
}

// IsAny reports whether the canonical type is 'any'.
func (reg *Registry) IsAny(id TypeID) bool {
	tt, ok := reg.Lookup(reg.Canonical(id))
	return ok && tt.Kind == KindAny
}

func (reg *Registry) kindOf(id TypeID) Kind {
	tt, ok := reg.Lookup(reg.Canonical(id))
	if !ok {
		return KindInvalid
	}
	return tt.Kind
}

func appendInfo[T any](infos []T, info T) ([]T, uint32) {
	infos = append(infos, info)
	slot, err := safecast.Conv[uint32](len(infos) - 1)
	if err != nil {
		panic(fmt.Errorf("type info overflow: %w", err))
	}
	return infos, slot
}
