package types

import (
	"slices"

	"ave/internal/source"
)

// GenericInfo stores a generic declaration: formal parameters plus the
// property map written in terms of those formals.
type GenericInfo struct {
	Name   source.StringID
	Params []TypeID // KindParam placeholders, по одному на формал
	Props  []Prop
}

// InstanceInfo stores an instantiation of a generic. Identity is structural:
// same parent id and pairwise equal type arguments.
type InstanceInfo struct {
	Parent TypeID
	Args   []TypeID
	Props  []Prop // свойства родителя с подставленными формалами
}

// RegisterGeneric allocates a generic declaration slot. Props may be attached
// later with SetGenericProps once the formals are interned.
func (reg *Registry) RegisterGeneric(name source.StringID, formalNames []source.StringID) TypeID {
	params := make([]TypeID, 0, len(formalNames))
	for i, fn := range formalNames {
		params = append(params, reg.newType(Type{
			Kind:    KindParam,
			Name:    fn,
			Payload: uint32(i), //nolint:gosec // количество формалов крошечное
		}))
	}
	var slot uint32
	reg.generics, slot = appendInfo(reg.generics, GenericInfo{Name: name, Params: params})
	return reg.newType(Type{Kind: KindGeneric, Name: name, Payload: slot})
}

// SetGenericProps stores the resolved property map for the declaration.
func (reg *Registry) SetGenericProps(id TypeID, props []Prop) {
	tt, ok := reg.Lookup(id)
	if !ok || tt.Kind != KindGeneric {
		return
	}
	reg.generics[tt.Payload].Props = slices.Clone(props)
}

// GenericInfo retrieves generic declaration metadata by TypeID.
func (reg *Registry) GenericInfo(id TypeID) (*GenericInfo, bool) {
	tt, ok := reg.Lookup(reg.Canonical(id))
	if !ok || tt.Kind != KindGeneric {
		return nil, false
	}
	return &reg.generics[tt.Payload], true
}

// Create instantiates a generic with concrete type arguments, substituting
// the formals throughout the property map. Equal instantiations share one id.
func (reg *Registry) Create(generic TypeID, args []TypeID) TypeID {
	generic = reg.Canonical(generic)
	info, ok := reg.GenericInfo(generic)
	if !ok {
		return reg.builtins.Error
	}
	if len(args) != len(info.Params) {
		return reg.builtins.Error
	}

	// структурная идентичность: тот же родитель + те же аргументы
	for id := TypeID(1); int(id) < len(reg.types); id++ {
		tt := reg.types[id]
		if tt.Kind != KindInstance {
			continue
		}
		inst := reg.instances[tt.Payload]
		if inst.Parent == generic && slices.Equal(inst.Args, args) {
			return id
		}
	}

	mapping := make(map[TypeID]TypeID, len(args))
	for i, p := range info.Params {
		mapping[p] = args[i]
	}
	props := make([]Prop, 0, len(info.Props))
	for _, p := range info.Props {
		props = append(props, Prop{Name: p.Name, Type: reg.substitute(p.Type, mapping)})
	}

	var slot uint32
	reg.instances, slot = appendInfo(reg.instances, InstanceInfo{
		Parent: generic,
		Args:   slices.Clone(args),
		Props:  props,
	})
	return reg.newType(Type{Kind: KindInstance, Name: reg.types[generic].Name, Payload: slot})
}

// InstanceInfo retrieves instantiation metadata by TypeID.
func (reg *Registry) InstanceInfo(id TypeID) (*InstanceInfo, bool) {
	tt, ok := reg.Lookup(reg.Canonical(id))
	if !ok || tt.Kind != KindInstance {
		return nil, false
	}
	return &reg.instances[tt.Payload], true
}

// substitute переписывает тип, заменяя формалы по mapping. Составные типы
// (функции, объекты, юнионы, инстансы) пересобираются рекурсивно.
func (reg *Registry) substitute(id TypeID, mapping map[TypeID]TypeID) TypeID {
	if repl, ok := mapping[id]; ok {
		return repl
	}
	tt, ok := reg.Lookup(id)
	if !ok {
		return id
	}
	switch tt.Kind {
	case KindFn:
		info := reg.fns[tt.Payload]
		params := make([]FnParam, len(info.Params))
		changed := false
		for i, p := range info.Params {
			np := p
			np.Type = reg.substitute(p.Type, mapping)
			if np.Type != p.Type {
				changed = true
			}
			params[i] = np
		}
		result := reg.substitute(info.Result, mapping)
		if !changed && result == info.Result {
			return id
		}
		return reg.RegisterFn(params, result)
	case KindObject:
		info := reg.objects[tt.Payload]
		props := make([]Prop, len(info.Props))
		changed := false
		for i, p := range info.Props {
			np := Prop{Name: p.Name, Type: reg.substitute(p.Type, mapping)}
			if np.Type != p.Type {
				changed = true
			}
			props[i] = np
		}
		if !changed {
			return id
		}
		return reg.RegisterObject(props)
	case KindUnion:
		info := reg.unions[tt.Payload]
		members := make([]TypeID, len(info.Members))
		changed := false
		for i, m := range info.Members {
			members[i] = reg.substitute(m, mapping)
			if members[i] != m {
				changed = true
			}
		}
		if !changed {
			return id
		}
		return reg.RegisterUnion(members)
	case KindInstance:
		info := reg.instances[tt.Payload]
		args := make([]TypeID, len(info.Args))
		changed := false
		for i, a := range info.Args {
			args[i] = reg.substitute(a, mapping)
			if args[i] != a {
				changed = true
			}
		}
		if !changed {
			return id
		}
		return reg.Create(info.Parent, args)
	default:
		return id
	}
}

// registerArray seeds the builtin Array<T> generic with its property map.
func (reg *Registry) registerArray() TypeID {
	name := reg.strings.Intern("Array")
	id := reg.RegisterGeneric(name, []source.StringID{reg.strings.Intern("T")})
	info, _ := reg.GenericInfo(id)
	elem := info.Params[0]
	push := reg.RegisterFn([]FnParam{{
		Name:     reg.strings.Intern("item"),
		Type:     elem,
		Required: true,
	}}, reg.builtins.Num)
	pop := reg.RegisterFn(nil, elem)
	reg.SetGenericProps(id, []Prop{
		{Name: reg.strings.Intern("length"), Type: reg.builtins.Num},
		{Name: reg.strings.Intern("push"), Type: push},
		{Name: reg.strings.Intern("pop"), Type: pop},
	})
	return id
}

// ArrayOf instantiates the builtin Array generic with the element type.
func (reg *Registry) ArrayOf(elem TypeID) TypeID {
	return reg.Create(reg.builtins.Array, []TypeID{elem})
}

// ElemOf returns the element type for an Array instance.
func (reg *Registry) ElemOf(id TypeID) (TypeID, bool) {
	inst, ok := reg.InstanceInfo(id)
	if !ok || inst.Parent != reg.builtins.Array || len(inst.Args) != 1 {
		return NoTypeID, false
	}
	return inst.Args[0], true
}
