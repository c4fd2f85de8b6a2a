package sema

import (
	"ave/internal/ast"
	"ave/internal/diag"
	"ave/internal/source"
	"ave/internal/symbols"
	"ave/internal/types"
)

// Options configure a semantic pass over a file.
type Options struct {
	Reporter diag.Reporter
	Registry *types.Registry
	Symbols  *symbols.Table
}

// Result stores semantic artefacts produced by the checker.
type Result struct {
	Registry  *types.Registry
	Symbols   *symbols.Table
	RootScope symbols.ScopeID
	ExprTypes map[ast.ExprID]types.TypeID
	HasError  bool
}

// Check performs semantic analysis: scope construction with hoisting,
// resolution of forward type references, and expression typing. Чекер никогда
// не прерывается — ошибочные узлы получают тип error и дальше молчат.
func Check(builder *ast.Builder, program ast.Program, opts Options) Result {
	reg := opts.Registry
	if reg == nil {
		reg = types.NewRegistry(builder.Strings)
	}
	tab := opts.Symbols
	if tab == nil {
		tab = symbols.NewTable(builder.Strings)
	}

	tc := typeChecker{
		builder:   builder,
		reg:       reg,
		tab:       tab,
		reporter:  opts.Reporter,
		exprTypes: make(map[ast.ExprID]types.TypeID),
	}

	rootBody := builder.Bodies.Get(program.Root)
	rootScope := tab.NewScope(symbols.ScopeRoot, symbols.NoScopeID, rootBody.Span)
	tc.checkBody(program.Root, rootScope)

	return Result{
		Registry:  reg,
		Symbols:   tab,
		RootScope: rootScope,
		ExprTypes: tc.exprTypes,
		HasError:  tc.hasError,
	}
}

// fnContext отслеживает объявленный и собранный тип результата функции.
type fnContext struct {
	declared types.TypeID // void/тип из аннотации; infer если не было
	gathered types.TypeID // union всех return-ов
	sawValue bool
}

type typeChecker struct {
	builder   *ast.Builder
	reg       *types.Registry
	tab       *symbols.Table
	reporter  diag.Reporter
	exprTypes map[ast.ExprID]types.TypeID

	scope   symbols.ScopeID
	fnStack []fnContext

	hasError bool
}

func (tc *typeChecker) errType(code diag.Code, sp source.Span, msg string) types.TypeID {
	tc.report(code, sp, msg)
	return tc.reg.Builtins().Error
}

func (tc *typeChecker) report(code diag.Code, sp source.Span, msg string) {
	tc.hasError = true
	if tc.reporter != nil {
		tc.reporter.Report(code, diag.SevError, sp, msg, nil)
	}
}

// checkBody создаёт scope, сажает hoisted-декларации и декларации записей,
// затем обходит утверждения по порядку.
func (tc *typeChecker) checkBody(id ast.BodyID, scope symbols.ScopeID) {
	body := tc.builder.Bodies.Get(id)
	if body == nil {
		return
	}

	prevScope := tc.scope
	tc.scope = scope
	defer func() { tc.scope = prevScope }()

	tc.seedHoisted(body, scope)
	tc.seedRecords(body, scope)

	for _, stmt := range body.Stmts {
		tc.checkStmt(stmt)
	}
}

// checkBlock — вложенное тело в новом блочном scope.
func (tc *typeChecker) checkBlock(id ast.BodyID) symbols.ScopeID {
	body := tc.builder.Bodies.Get(id)
	if body == nil {
		return symbols.NoScopeID
	}
	scope := tc.tab.NewScope(symbols.ScopeBlock, tc.scope, body.Span)
	tc.checkBody(id, scope)
	return scope
}

// seedHoisted делает функции и var-имена видимыми во всём scope до обхода.
func (tc *typeChecker) seedHoisted(body *ast.Body, scope symbols.ScopeID) {
	for _, decl := range body.Decls {
		sym := symbols.Symbol{
			Name:  decl.Name,
			Scope: scope,
			Span:  decl.Span,
			Type:  decl.Type,
			Decl:  decl.Stmt,
		}
		switch decl.Kind {
		case ast.HoistFunc:
			sym.Kind = symbols.SymbolFunction
			sym.Flags = symbols.SymbolFlagInitialized | symbols.SymbolFlagHoisted
		case ast.HoistVar:
			sym.Kind = symbols.SymbolVar
			sym.Flags = symbols.SymbolFlagMutable | symbols.SymbolFlagHoisted
		}
		if existing, ok := tc.tab.Declare(sym); !ok {
			prev := tc.tab.Symbol(existing)
			// повторный var с тем же именем — это одна и та же переменная
			if sym.Kind == symbols.SymbolVar && prev != nil && prev.Kind == symbols.SymbolVar {
				continue
			}
			tc.reportRedeclared(decl.Span, decl.Name, prev)
		}
	}
}

// seedRecords регистрирует декларации записей на входе в scope, чтобы
// forward-ссылки на типы разрешались по всему телу.
func (tc *typeChecker) seedRecords(body *ast.Body, scope symbols.ScopeID) {
	for _, stmtID := range body.Stmts {
		stmt := tc.builder.Stmts.Get(stmtID)
		if stmt == nil || stmt.Kind != ast.StmtRecord {
			continue
		}
		data, _ := tc.builder.Stmts.Record(stmtID)
		sym := symbols.Symbol{
			Name:  data.Name,
			Kind:  symbols.SymbolRecord,
			Scope: scope,
			Span:  data.NameSpan,
			Flags: symbols.SymbolFlagInitialized,
			Type:  data.Type.Type,
			Decl:  stmtID,
		}
		if existing, ok := tc.tab.Declare(sym); !ok {
			prev := tc.tab.Symbol(existing)
			tc.reportRedeclared(data.NameSpan, data.Name, prev)
		}
	}
}

func (tc *typeChecker) reportRedeclared(sp source.Span, name source.StringID, prev *symbols.Symbol) {
	text := tc.tab.Strings.MustLookup(name)
	msg := "cannot redeclare '" + text + "'"
	if prev != nil {
		msg += " (previously declared as " + prev.Kind.String() + ")"
	}
	tc.report(diag.RefRedeclared, sp, msg)
}

func (tc *typeChecker) currentFn() *fnContext {
	if len(tc.fnStack) == 0 {
		return nil
	}
	return &tc.fnStack[len(tc.fnStack)-1]
}
