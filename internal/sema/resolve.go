package sema

import (
	"fmt"

	"ave/internal/ast"
	"ave/internal/diag"
	"ave/internal/source"
	"ave/internal/symbols"
	"ave/internal/types"
)

// resolveTypeInfo разрешает forward-ссылки аннотации по текущему scope и
// возвращает итоговый TypeID. Разрешение происходит на месте: один и тот же
// слот KindNamed виден всем аннотациям, которые его захватили.
func (tc *typeChecker) resolveTypeInfo(info *ast.TypeInfo) types.TypeID {
	tc.resolveDeep(info.Type, info.Span)
	return info.Type
}

const resolveMaxDepth = 32

func (tc *typeChecker) resolveDeep(id types.TypeID, sp source.Span) {
	tc.resolveDeepN(id, sp, 0)
}

func (tc *typeChecker) resolveDeepN(id types.TypeID, sp source.Span, depth int) {
	if depth > resolveMaxDepth {
		return
	}
	tt, ok := tc.reg.Lookup(id)
	if !ok {
		return
	}
	switch tt.Kind {
	case types.KindNamed:
		if tt.Unresolved {
			tc.resolveNamed(id, sp)
		}
	case types.KindFn:
		info, _ := tc.reg.FnInfo(id)
		for _, p := range info.Params {
			tc.resolveDeepN(p.Type, sp, depth+1)
		}
		tc.resolveDeepN(info.Result, sp, depth+1)
	case types.KindObject:
		info, _ := tc.reg.ObjectInfo(id)
		for _, p := range info.Props {
			tc.resolveDeepN(p.Type, sp, depth+1)
		}
	case types.KindUnion:
		info, _ := tc.reg.UnionInfo(id)
		for _, m := range info.Members {
			tc.resolveDeepN(m, sp, depth+1)
		}
	case types.KindInstance:
		info, _ := tc.reg.InstanceInfo(id)
		for _, a := range info.Args {
			tc.resolveDeepN(a, sp, depth+1)
		}
	}
}

// resolveNamed связывает одну unresolved-ссылку с типом записи (или generic-а)
// из таблицы символов; имя с аргументами инстанцируется.
func (tc *typeChecker) resolveNamed(id types.TypeID, sp source.Span) {
	tt, _ := tc.reg.Lookup(id)
	named, _ := tc.reg.NamedInfo(id)

	target := tc.lookupTypeName(tt.Name)
	if target == types.NoTypeID {
		name := tc.tab.Strings.MustLookup(tt.Name)
		msg := fmt.Sprintf("type '%s' is not defined", name)
		if hint, ok := closestName(name, tc.visibleTypeNames()); ok {
			msg += fmt.Sprintf(". Did you mean '%s'?", hint)
		}
		tc.report(diag.RefUnknownType, sp, msg)
		tc.reg.Resolve(id, tc.reg.Builtins().Error)
		return
	}

	if len(named.Args) > 0 {
		for _, a := range named.Args {
			tc.resolveDeep(a, sp)
		}
		target = tc.reg.Create(target, named.Args)
	}
	tc.reg.Resolve(id, target)
}

// lookupTypeName ищет имя типа в текущем scope среди записей.
func (tc *typeChecker) lookupTypeName(name source.StringID) types.TypeID {
	if symID, ok := tc.tab.Lookup(tc.scope, name); ok {
		sym := tc.tab.Symbol(symID)
		if sym.Kind == symbols.SymbolRecord {
			return sym.Type
		}
	}
	if name == tc.tab.Strings.Intern("Array") {
		return tc.reg.Builtins().Array
	}
	return types.NoTypeID
}

// visibleTypeNames собирает имена записей, видимых из текущего scope.
func (tc *typeChecker) visibleTypeNames() []string {
	var names []string
	scope := tc.scope
	for scope.IsValid() {
		s := tc.tab.Scope(scope)
		for _, symID := range s.Symbols {
			sym := tc.tab.Symbol(symID)
			if sym.Kind == symbols.SymbolRecord {
				if text, ok := tc.tab.Strings.Lookup(sym.Name); ok {
					names = append(names, text)
				}
			}
		}
		scope = s.Parent
	}
	return names
}
