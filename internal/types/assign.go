package types

// Equivalent reports whether two types denote the same type. Instances and
// unions are deduplicated at construction, so canonical id equality covers
// structural identity as well.
func (reg *Registry) Equivalent(a, b TypeID) bool {
	a = reg.Canonical(a)
	b = reg.Canonical(b)
	if reg.IsError(a) || reg.IsError(b) {
		return true
	}
	return a == b
}

// CanAssign reports whether a value of type src may be stored where dst is
// expected. 'any' accepts anything and is accepted anywhere; the error
// sentinel accepts silently so one root cause never cascades.
func (reg *Registry) CanAssign(dst, src TypeID) bool {
	dst = reg.Canonical(dst)
	src = reg.Canonical(src)

	if reg.IsError(dst) || reg.IsError(src) {
		return true
	}
	if dst == src {
		return true
	}
	// Неразрешённое имя уже отрепорчено чекером — не плодим каскад.
	if reg.IsUnresolved(dst) || reg.IsUnresolved(src) {
		return true
	}

	dk := reg.kindOf(dst)
	sk := reg.kindOf(src)
	if dk == KindAny || sk == KindAny {
		return true
	}

	// Union-приёмник: каждый член источника должен лечь в какой-то член.
	if dk == KindUnion {
		dstInfo, _ := reg.UnionInfo(dst)
		for _, s := range reg.memberSet(src) {
			if !reg.acceptedBySome(dstInfo.Members, s) {
				return false
			}
		}
		return true
	}

	// Union-источник в скалярный приёмник: все члены должны подходить.
	if sk == KindUnion {
		srcInfo, _ := reg.UnionInfo(src)
		for _, s := range srcInfo.Members {
			if !reg.CanAssign(dst, s) {
				return false
			}
		}
		return true
	}

	switch dk {
	case KindFn:
		return reg.fnAssignable(dst, src)
	case KindInstance:
		return reg.instanceAssignable(dst, src)
	case KindObjectAny:
		// примитив object принимает любое объектное значение
		switch sk {
		case KindObject, KindRecord, KindInstance, KindObjectAny:
			return true
		}
		return false
	case KindObject:
		dstProps, _ := reg.PropsOf(dst)
		return reg.propsSatisfied(dstProps, src)
	case KindRecord:
		// номинально — только сам id; структурно — объектный литерал,
		// закрывающий все свойства записи
		if sk == KindObject {
			dstProps, _ := reg.PropsOf(dst)
			return reg.propsSatisfied(dstProps, src)
		}
		return false
	default:
		// примитивы — только по идентичности, а она уже проверена
		return false
	}
}

// memberSet разворачивает union в набор членов; скаляр — набор из одного.
func (reg *Registry) memberSet(id TypeID) []TypeID {
	if info, ok := reg.UnionInfo(id); ok {
		return info.Members
	}
	return []TypeID{id}
}

func (reg *Registry) acceptedBySome(members []TypeID, src TypeID) bool {
	for _, m := range members {
		if reg.CanAssign(m, src) {
			return true
		}
	}
	return false
}

// fnAssignable: арность, rest-флаги, параметры строго эквивалентны,
// результат — назначаем.
func (reg *Registry) fnAssignable(dst, src TypeID) bool {
	dstInfo, ok := reg.FnInfo(dst)
	if !ok {
		return false
	}
	srcInfo, ok := reg.FnInfo(src)
	if !ok {
		return false
	}
	if len(dstInfo.Params) != len(srcInfo.Params) {
		return false
	}
	for i := range dstInfo.Params {
		dp, sp := dstInfo.Params[i], srcInfo.Params[i]
		if dp.Rest != sp.Rest {
			return false
		}
		if !reg.Equivalent(dp.Type, sp.Type) {
			return false
		}
	}
	return reg.CanAssign(dstInfo.Result, srcInfo.Result)
}

func (reg *Registry) instanceAssignable(dst, src TypeID) bool {
	dstInst, ok := reg.InstanceInfo(dst)
	if !ok {
		return false
	}
	if srcInst, ok := reg.InstanceInfo(src); ok {
		if dstInst.Parent != srcInst.Parent || len(dstInst.Args) != len(srcInst.Args) {
			return false
		}
		for i := range dstInst.Args {
			if !reg.Equivalent(dstInst.Args[i], srcInst.Args[i]) {
				return false
			}
		}
		return true
	}
	// объектный литерал в инстанс generic-записи — по ширине свойств
	if reg.kindOf(src) == KindObject {
		dstProps, _ := reg.PropsOf(dst)
		return reg.propsSatisfied(dstProps, src)
	}
	return false
}

// propsSatisfied: каждое свойство приёмника существует у источника с
// назначаемым типом; лишние свойства источника допустимы (width subtyping).
func (reg *Registry) propsSatisfied(dstProps []Prop, src TypeID) bool {
	srcProps, ok := reg.PropsOf(src)
	if !ok {
		return false
	}
	for _, dp := range dstProps {
		sp, found := FindProp(srcProps, dp.Name)
		if !found {
			return false
		}
		if !reg.CanAssign(dp.Type, sp.Type) {
			return false
		}
	}
	return true
}
