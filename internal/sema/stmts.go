package sema

import (
	"fmt"

	"ave/internal/ast"
	"ave/internal/diag"
	"ave/internal/symbols"
	"ave/internal/types"
)

func (tc *typeChecker) checkStmt(id ast.StmtID) {
	stmt := tc.builder.Stmts.Get(id)
	if stmt == nil {
		return
	}
	switch stmt.Kind {
	case ast.StmtExpr:
		data, _ := tc.builder.Stmts.Expr(id)
		tc.checkExpr(data.Expr)
	case ast.StmtVarDecl:
		tc.checkVarDecl(id)
	case ast.StmtIf:
		tc.checkIf(id)
	case ast.StmtWhile:
		data, _ := tc.builder.Stmts.While(id)
		tc.checkExpr(data.Cond)
		tc.checkBlock(data.Body)
	case ast.StmtFor:
		tc.checkFor(id)
	case ast.StmtReturn:
		tc.checkReturn(id)
	case ast.StmtFnDecl:
		tc.checkFnDecl(id)
	case ast.StmtRecord:
		tc.checkRecord(id)
	case ast.StmtBad:
		// узел уже отрепорчен парсером
	}
}

// checkVarDecl проверяет деклараторы: аннотация против вывода, затем
// объявление символа (var-имена уже посеяны hoisting-ом и только уточняются).
func (tc *typeChecker) checkVarDecl(id ast.StmtID) {
	data, _ := tc.builder.Stmts.VarDecl(id)
	builtins := tc.reg.Builtins()

	for i := range data.Decls {
		decl := &data.Decls[i]
		declared := tc.resolveTypeInfo(&decl.Type)

		inferred := types.NoTypeID
		if decl.Init.IsValid() {
			inferred = tc.checkExpr(decl.Init)
		}

		// вывод: аннотация infer замещается типом инициализатора; без
		// инициализатора она остаётся infer до первого присваивания
		final := declared
		if tc.reg.Canonical(declared) == builtins.Infer {
			if inferred != types.NoTypeID {
				final = inferred
				decl.Type.Type = final
			}
		} else if inferred != types.NoTypeID && !tc.reg.CanAssign(declared, inferred) {
			tc.report(diag.SemaCannotAssign, tc.builder.Exprs.SpanOf(decl.Init), fmt.Sprintf(
				"cannot assign '%s' to '%s'",
				tc.reg.Display(inferred), tc.reg.Display(declared)))
		}

		if data.Kind.Hoisted() {
			// var уже посеян в теле функции — уточняем тип и инициализацию
			if symID, ok := tc.tab.Lookup(tc.scope, decl.Name); ok {
				sym := tc.tab.Symbol(symID)
				if sym.Kind == symbols.SymbolVar {
					sym.Type = final
					if decl.Init.IsValid() {
						sym.Flags |= symbols.SymbolFlagInitialized
					}
					continue
				}
			}
			continue
		}

		sym := symbols.Symbol{
			Name:  decl.Name,
			Scope: tc.scope,
			Span:  decl.NameSpan,
			Type:  final,
			Decl:  id,
		}
		switch data.Kind {
		case ast.DeclConst:
			sym.Kind = symbols.SymbolConst
		default:
			sym.Kind = symbols.SymbolLet
			sym.Flags |= symbols.SymbolFlagMutable
		}
		if decl.Init.IsValid() {
			sym.Flags |= symbols.SymbolFlagInitialized
		}
		if existing, ok := tc.tab.Declare(sym); !ok {
			tc.reportRedeclared(decl.NameSpan, decl.Name, tc.tab.Symbol(existing))
		}
	}
}

func (tc *typeChecker) checkIf(id ast.StmtID) {
	data, _ := tc.builder.Stmts.If(id)
	tc.checkExpr(data.Cond)
	tc.checkBlock(data.Then)
	if data.Else.IsValid() {
		tc.checkBlock(data.Else)
	}
}

// checkFor: границы цикла числовые, счётчик объявляется в теле как num.
func (tc *typeChecker) checkFor(id ast.StmtID) {
	data, _ := tc.builder.Stmts.For(id)
	builtins := tc.reg.Builtins()

	bounds := []ast.ExprID{data.Start, data.Stop, data.Step}
	for _, bound := range bounds {
		if !bound.IsValid() {
			continue
		}
		got := tc.checkExpr(bound)
		if !tc.reg.IsError(got) && !tc.reg.CanAssign(builtins.Num, got) {
			tc.report(diag.SemaCannotAssign, tc.builder.Exprs.SpanOf(bound), fmt.Sprintf(
				"cannot assign '%s' to '%s'",
				tc.reg.Display(got), tc.reg.Display(builtins.Num)))
		}
	}

	body := tc.builder.Bodies.Get(data.Body)
	if body == nil {
		return
	}
	scope := tc.tab.NewScope(symbols.ScopeBlock, tc.scope, body.Span)
	tc.tab.Declare(symbols.Symbol{
		Name:  data.Name,
		Kind:  symbols.SymbolLet,
		Scope: scope,
		Span:  data.NameSpan,
		Flags: symbols.SymbolFlagMutable | symbols.SymbolFlagInitialized,
		Type:  builtins.Num,
		Decl:  id,
	})
	tc.checkBody(data.Body, scope)
}

// checkReturn: только внутри функции; тип накапливается union-ом и
// проверяется против аннотации.
func (tc *typeChecker) checkReturn(id ast.StmtID) {
	stmt := tc.builder.Stmts.Get(id)
	data, _ := tc.builder.Stmts.Return(id)
	builtins := tc.reg.Builtins()

	fn := tc.currentFn()
	if fn == nil {
		tc.report(diag.SemaReturnOutside, stmt.Span, "return outside of a function")
		if data.Value.IsValid() {
			tc.checkExpr(data.Value)
		}
		return
	}

	got := builtins.Void
	if data.Value.IsValid() {
		got = tc.checkExpr(data.Value)
	}
	fn.gathered = tc.reg.Unite(fn.gathered, got)
	fn.sawValue = fn.sawValue || data.Value.IsValid()

	if fn.declared != builtins.Infer && !tc.reg.CanAssign(fn.declared, got) {
		sp := stmt.Span
		if data.Value.IsValid() {
			sp = tc.builder.Exprs.SpanOf(data.Value)
		}
		tc.report(diag.SemaReturnType, sp, fmt.Sprintf(
			"cannot return '%s' from a function declared to return '%s'",
			tc.reg.Display(got), tc.reg.Display(fn.declared)))
	}
}

// checkFnDecl типизирует тело и уточняет hoisted-символ финальной сигнатурой.
func (tc *typeChecker) checkFnDecl(id ast.StmtID) {
	data, _ := tc.builder.Stmts.FnDecl(id)
	fnType := tc.checkFnExpr(data.Fn)

	if symID, ok := tc.tab.Lookup(tc.scope, data.Name); ok {
		sym := tc.tab.Symbol(symID)
		if sym.Kind == symbols.SymbolFunction && sym.Decl == id {
			sym.Type = fnType
		}
	}
}

// checkRecord дорезолвливает типы полей; сам тип зарегистрирован парсером,
// символ посеян на входе в scope.
func (tc *typeChecker) checkRecord(id ast.StmtID) {
	data, _ := tc.builder.Stmts.Record(id)
	for i := range data.Fields {
		tc.resolveTypeInfo(&data.Fields[i].Type)
	}
}
