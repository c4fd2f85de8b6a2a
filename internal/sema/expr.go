package sema

import (
	"fmt"

	"ave/internal/ast"
	"ave/internal/diag"
	"ave/internal/symbols"
	"ave/internal/token"
	"ave/internal/types"
)

// checkExpr вычисляет тип выражения и запоминает его на узле.
// Каждый узел получает ровно один тип; ошибочный — error.
func (tc *typeChecker) checkExpr(id ast.ExprID) types.TypeID {
	if !id.IsValid() {
		return tc.reg.Builtins().Error
	}
	if cached, ok := tc.exprTypes[id]; ok {
		return cached
	}
	result := tc.checkExprUncached(id)
	tc.exprTypes[id] = result
	return result
}

func (tc *typeChecker) checkExprUncached(id ast.ExprID) types.TypeID {
	expr := tc.builder.Exprs.Get(id)
	builtins := tc.reg.Builtins()
	if expr == nil {
		return builtins.Error
	}

	switch expr.Kind {
	case ast.ExprLiteral:
		data, _ := tc.builder.Exprs.Literal(id)
		switch data.Kind {
		case ast.LitStr:
			return builtins.Str
		case ast.LitBool:
			return builtins.Bool
		default:
			// числовые, включая hex и binary
			return builtins.Num
		}

	case ast.ExprIdent:
		return tc.checkIdent(id)

	case ast.ExprBinary:
		return tc.checkBinary(id)

	case ast.ExprPrefix, ast.ExprPostfix:
		return tc.checkUnary(id)

	case ast.ExprAssign:
		return tc.checkAssign(id)

	case ast.ExprGroup:
		data, _ := tc.builder.Exprs.Group(id)
		return tc.checkExpr(data.Inner)

	case ast.ExprCall:
		return tc.checkCall(id)

	case ast.ExprMember:
		return tc.checkMember(id)

	case ast.ExprArray:
		return tc.checkArray(id)

	case ast.ExprObject:
		return tc.checkObject(id)

	case ast.ExprFn:
		return tc.checkFnExpr(id)

	default:
		// ExprBad уже отрепорчен парсером
		return builtins.Error
	}
}

func (tc *typeChecker) checkIdent(id ast.ExprID) types.TypeID {
	data, _ := tc.builder.Exprs.Ident(id)
	symID, ok := tc.tab.Lookup(tc.scope, data.Name)
	if !ok {
		name := tc.tab.Strings.MustLookup(data.Name)
		msg := fmt.Sprintf("'%s' is not defined", name)
		if hint, ok := closestName(name, tc.tab.VisibleNames(tc.scope)); ok {
			msg += fmt.Sprintf(". Did you mean '%s'?", hint)
		}
		return tc.errType(diag.RefUndefined, tc.builder.Exprs.SpanOf(id), msg)
	}
	sym := tc.tab.Symbol(symID)
	if tc.reg.Canonical(sym.Type) == tc.reg.Builtins().Infer {
		// var без аннотации и инициализатора читается как any
		return tc.reg.Builtins().Any
	}
	return sym.Type
}

func (tc *typeChecker) checkBinary(id ast.ExprID) types.TypeID {
	data, _ := tc.builder.Exprs.Binary(id)
	left := tc.checkExpr(data.Left)
	right := tc.checkExpr(data.Right)

	result := tc.reg.BinaryResult(data.Op, left, right)
	if tc.reg.IsError(result) && !tc.reg.IsError(left) && !tc.reg.IsError(right) {
		tc.report(diag.SemaBadOperator, tc.builder.Exprs.SpanOf(id), fmt.Sprintf(
			"cannot use operator '%s' on types '%s' and '%s'",
			opText(data.Op), tc.reg.Display(left), tc.reg.Display(right)))
	}
	return result
}

func (tc *typeChecker) checkUnary(id ast.ExprID) types.TypeID {
	data, _ := tc.builder.Exprs.Unary(id)
	operand := tc.checkExpr(data.Operand)

	result := tc.reg.UnaryResult(data.Op, operand)
	if tc.reg.IsError(result) && !tc.reg.IsError(operand) {
		tc.report(diag.SemaBadUnary, tc.builder.Exprs.SpanOf(id), fmt.Sprintf(
			"cannot use operator '%s' on type '%s'",
			opText(data.Op), tc.reg.Display(operand)))
	}
	return result
}

// checkAssign: цель должна быть изменяемой; для var без типа присваивание
// доводит вывод.
func (tc *typeChecker) checkAssign(id ast.ExprID) types.TypeID {
	data, _ := tc.builder.Exprs.Assign(id)
	builtins := tc.reg.Builtins()
	value := tc.checkExpr(data.Value)

	target := tc.builder.Exprs.Get(data.Target)
	if target == nil {
		return builtins.Error
	}

	var targetType types.TypeID
	switch target.Kind {
	case ast.ExprIdent:
		ident, _ := tc.builder.Exprs.Ident(data.Target)
		symID, ok := tc.tab.Lookup(tc.scope, ident.Name)
		if !ok {
			return tc.checkExpr(data.Target) // репортит undefined
		}
		sym := tc.tab.Symbol(symID)
		if !sym.Mutable() {
			name := tc.tab.Strings.MustLookup(ident.Name)
			tc.report(diag.SemaAssignImmutable, target.Span, fmt.Sprintf(
				"cannot assign to constant '%s'", name))
		}
		if tc.reg.Canonical(sym.Type) == builtins.Infer {
			// hoisted var без аннотации получает тип первого присваивания
			sym.Type = value
			sym.Flags |= symbols.SymbolFlagInitialized
			tc.exprTypes[data.Target] = value
			return value
		}
		targetType = sym.Type
		tc.exprTypes[data.Target] = targetType
	case ast.ExprMember:
		targetType = tc.checkExpr(data.Target)
	default:
		// парсер уже отрепортил invalid assignment target
		tc.checkExpr(data.Target)
		return builtins.Error
	}

	if baseOp, compound := types.AssignOpFor(data.Op); compound {
		result := tc.reg.CompoundResult(baseOp, targetType, value)
		if tc.reg.IsError(result) && !tc.reg.IsError(targetType) && !tc.reg.IsError(value) {
			tc.report(diag.SemaBadOperator, tc.builder.Exprs.SpanOf(id), fmt.Sprintf(
				"cannot use operator '%s' on types '%s' and '%s'",
				opText(data.Op), tc.reg.Display(targetType), tc.reg.Display(value)))
		}
		return result
	}

	if !tc.reg.CanAssign(targetType, value) {
		tc.report(diag.SemaCannotAssign, tc.builder.Exprs.SpanOf(data.Value), fmt.Sprintf(
			"cannot assign '%s' to '%s'",
			tc.reg.Display(value), tc.reg.Display(targetType)))
		return builtins.Error
	}
	return value
}

// checkCall: вызываемое должно быть функцией (или any); обязательные
// параметры закрываются, rest поглощает хвост.
func (tc *typeChecker) checkCall(id ast.ExprID) types.TypeID {
	data, _ := tc.builder.Exprs.Call(id)
	builtins := tc.reg.Builtins()
	callee := tc.checkExpr(data.Callee)

	argTypes := make([]types.TypeID, len(data.Args))
	for i, arg := range data.Args {
		argTypes[i] = tc.checkExpr(arg)
	}

	if tc.reg.IsError(callee) {
		return builtins.Error
	}
	if tc.reg.IsAny(callee) {
		return builtins.Any
	}
	info, ok := tc.reg.FnInfo(callee)
	if !ok {
		return tc.errType(diag.SemaNotCallable, tc.builder.Exprs.SpanOf(data.Callee), fmt.Sprintf(
			"type '%s' is not callable", tc.reg.Display(callee)))
	}

	minArity := info.MinArity()
	maxArity := len(info.Params)
	switch {
	case len(data.Args) < minArity:
		tc.report(diag.SemaArityMismatch, tc.builder.Exprs.SpanOf(id), fmt.Sprintf(
			"expected at least %d arguments, got %d", minArity, len(data.Args)))
	case !info.HasRest() && len(data.Args) > maxArity:
		tc.report(diag.SemaArityMismatch, tc.builder.Exprs.SpanOf(id), fmt.Sprintf(
			"expected at most %d arguments, got %d", maxArity, len(data.Args)))
	}

	for i, argType := range argTypes {
		param, ok := paramAt(info, i)
		if !ok {
			break
		}
		want := param.Type
		if tc.reg.Canonical(want) == builtins.Infer {
			want = builtins.Any
		}
		if !tc.reg.CanAssign(want, argType) {
			name := tc.tab.Strings.MustLookup(param.Name)
			tc.report(diag.SemaBadArgument, tc.builder.Exprs.SpanOf(data.Args[i]), fmt.Sprintf(
				"cannot assign '%s' to parameter '%s' of type '%s'",
				tc.reg.Display(argType), name, tc.reg.Display(want)))
		}
	}

	result := info.Result
	if tc.reg.Canonical(result) == builtins.Infer {
		result = builtins.Any
	}
	return result
}

// paramAt возвращает параметр для позиции аргумента; rest поглощает хвост.
func paramAt(info *types.FnInfo, i int) (types.FnParam, bool) {
	if i < len(info.Params) {
		return info.Params[i], true
	}
	if info.HasRest() {
		return info.Params[len(info.Params)-1], true
	}
	return types.FnParam{}, false
}

// checkMember: доступ к свойству или индексирование.
func (tc *typeChecker) checkMember(id ast.ExprID) types.TypeID {
	data, _ := tc.builder.Exprs.Member(id)
	builtins := tc.reg.Builtins()
	object := tc.checkExpr(data.Object)

	if data.IsIndexed {
		index := tc.checkExpr(data.Property)
		if tc.reg.IsError(object) {
			return builtins.Error
		}
		if tc.reg.IsAny(object) {
			return builtins.Any
		}
		if elem, ok := tc.reg.ElemOf(object); ok {
			if !tc.reg.IsError(index) && !tc.reg.CanAssign(builtins.Num, index) {
				return tc.errType(diag.SemaBadIndex, tc.builder.Exprs.SpanOf(data.Property), fmt.Sprintf(
					"array index must be 'num', got '%s'", tc.reg.Display(index)))
			}
			return elem
		}
		return tc.errType(diag.SemaBadIndex, tc.builder.Exprs.SpanOf(id), fmt.Sprintf(
			"type '%s' is not indexable", tc.reg.Display(object)))
	}

	prop, _ := tc.builder.Exprs.Ident(data.Property)
	if tc.reg.IsError(object) {
		return builtins.Error
	}
	if tc.reg.IsAny(object) {
		return builtins.Any
	}

	props, ok := tc.reg.PropsOf(object)
	if !ok {
		return tc.errType(diag.SemaNoSuchField, tc.builder.Exprs.SpanOf(data.Property), fmt.Sprintf(
			"field '%s' does not exist on type %s",
			tc.tab.Strings.MustLookup(prop.Name), tc.reg.Display(object)))
	}
	if found, ok := types.FindProp(props, prop.Name); ok {
		tc.exprTypes[data.Property] = found.Type
		return found.Type
	}

	name := tc.tab.Strings.MustLookup(prop.Name)
	msg := fmt.Sprintf("field '%s' does not exist on type %s", name, tc.reg.Display(object))
	candidates := make([]string, 0, len(props))
	for _, p := range props {
		candidates = append(candidates, tc.tab.Strings.MustLookup(p.Name))
	}
	if hint, ok := closestName(name, candidates); ok {
		msg += fmt.Sprintf(". Did you mean '%s'?", hint)
	}
	return tc.errType(diag.SemaNoSuchField, tc.builder.Exprs.SpanOf(data.Property), msg)
}

// checkArray: тип элементов объединяется; пустой литерал — Array<any>.
func (tc *typeChecker) checkArray(id ast.ExprID) types.TypeID {
	data, _ := tc.builder.Exprs.Array(id)
	builtins := tc.reg.Builtins()

	elem := types.NoTypeID
	for _, e := range data.Elems {
		elem = tc.reg.Unite(elem, tc.checkExpr(e))
	}
	if elem == types.NoTypeID {
		elem = builtins.Any
	}
	return tc.reg.ArrayOf(elem)
}

// checkObject строит структурный тип из пар литерала.
func (tc *typeChecker) checkObject(id ast.ExprID) types.TypeID {
	data, _ := tc.builder.Exprs.Object(id)
	props := make([]types.Prop, 0, len(data.Fields))
	for _, field := range data.Fields {
		props = append(props, types.Prop{
			Name: field.Name,
			Type: tc.checkExpr(field.Value),
		})
	}
	return tc.reg.RegisterObject(props)
}

// checkFnExpr типизирует функцию: новый scope, параметры, тело, затем
// вывод результата. Аннотация результата infer замещается собранным union-ом.
func (tc *typeChecker) checkFnExpr(id ast.ExprID) types.TypeID {
	data, ok := tc.builder.Exprs.Fn(id)
	builtins := tc.reg.Builtins()
	if !ok {
		return builtins.Error
	}

	declared := tc.resolveTypeInfo(&data.Ret)

	body := tc.builder.Bodies.Get(data.Body)
	if body == nil {
		return builtins.Error
	}
	scope := tc.tab.NewScope(symbols.ScopeFunction, tc.scope, body.Span)

	fnParams := make([]types.FnParam, 0, len(data.Params))
	for i := range data.Params {
		param := &data.Params[i]
		paramType := tc.resolveTypeInfo(&param.Type)
		if tc.reg.Canonical(paramType) == builtins.Infer {
			paramType = builtins.Any
		}
		if param.Default.IsValid() {
			got := tc.checkExpr(param.Default)
			if !tc.reg.CanAssign(paramType, got) {
				tc.report(diag.SemaCannotAssign, tc.builder.Exprs.SpanOf(param.Default), fmt.Sprintf(
					"cannot assign '%s' to '%s'",
					tc.reg.Display(got), tc.reg.Display(paramType)))
			}
		}
		tc.tab.Declare(symbols.Symbol{
			Name:  param.Name,
			Kind:  symbols.SymbolParam,
			Scope: scope,
			Span:  param.Span,
			Flags: symbols.SymbolFlagMutable | symbols.SymbolFlagInitialized,
			Type:  paramType,
		})
		fnParams = append(fnParams, types.FnParam{
			Name:       param.Name,
			Type:       paramType,
			Required:   !param.Default.IsValid() && !param.Rest,
			Rest:       param.Rest,
			HasDefault: param.Default.IsValid(),
		})
	}

	tc.fnStack = append(tc.fnStack, fnContext{declared: tc.reg.Canonical(declared)})
	tc.checkBody(data.Body, scope)
	fn := tc.fnStack[len(tc.fnStack)-1]
	tc.fnStack = tc.fnStack[:len(tc.fnStack)-1]

	result := declared
	if tc.reg.Canonical(declared) == builtins.Infer {
		result = fn.gathered
		if result == types.NoTypeID {
			result = builtins.Void
		}
		data.Ret.Type = result
	}

	return tc.reg.RegisterFn(fnParams, result)
}

// opText даёт текст оператора для сообщений.
func opText(op token.Kind) string {
	switch op {
	case token.Plus:
		return "+"
	case token.Minus:
		return "-"
	case token.Star:
		return "*"
	case token.Slash:
		return "/"
	case token.SlashSlash:
		return "//"
	case token.Percent:
		return "%"
	case token.StarStar:
		return "**"
	case token.Amp:
		return "&"
	case token.Pipe:
		return "|"
	case token.Caret:
		return "^"
	case token.Lt:
		return "<"
	case token.LtEq:
		return "<="
	case token.Gt:
		return ">"
	case token.GtEq:
		return ">="
	case token.EqEq:
		return "=="
	case token.BangEq:
		return "!="
	case token.KwIs:
		return "is"
	case token.KwAnd:
		return "and"
	case token.KwOr:
		return "or"
	case token.Bang:
		return "!"
	case token.PlusPlus:
		return "++"
	case token.MinusMinus:
		return "--"
	case token.Assign:
		return "="
	case token.PlusAssign:
		return "+="
	case token.MinusAssign:
		return "-="
	case token.StarAssign:
		return "*="
	case token.SlashAssign:
		return "/="
	case token.PercentAssign:
		return "%="
	case token.StarStarAssign:
		return "**="
	case token.SlashSlashAssign:
		return "//="
	default:
		return op.String()
	}
}
