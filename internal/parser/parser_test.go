package parser_test

import (
	"strings"
	"testing"

	"ave/internal/ast"
	"ave/internal/diag"
	"ave/internal/lexer"
	"ave/internal/parser"
	"ave/internal/source"
	"ave/internal/token"
	"ave/internal/types"
)

type parseFixture struct {
	Builder  *ast.Builder
	Registry *types.Registry
	Program  ast.Program
	Bag      *diag.Bag
}

func parseSrc(t *testing.T, src string) *parseFixture {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.ave", []byte(src)))

	bag := diag.NewBag(32)
	lx := lexer.New(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
	var toks []token.Token
	for {
		tok := lx.Next()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			break
		}
	}

	strs := source.NewInterner()
	builder := ast.NewBuilder(ast.Hints{}, strs)
	reg := types.NewRegistry(strs)
	res := parser.Parse(file, toks, builder, reg, parser.Options{
		Reporter: diag.BagReporter{Bag: bag},
	})
	return &parseFixture{Builder: builder, Registry: reg, Program: res.Program, Bag: bag}
}

func (f *parseFixture) rootStmts(t *testing.T, want int) []ast.StmtID {
	t.Helper()
	body := f.Builder.Bodies.Get(f.Program.Root)
	if len(body.Stmts) != want {
		t.Fatalf("got %d top-level statements, want %d", len(body.Stmts), want)
	}
	return body.Stmts
}

func (f *parseFixture) noErrors(t *testing.T) {
	t.Helper()
	if f.Bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", messages(f.Bag))
	}
}

func messages(bag *diag.Bag) []string {
	var msgs []string
	for _, d := range bag.Items() {
		msgs = append(msgs, d.Code.Kind().String()+": "+d.Message)
	}
	return msgs
}

func (f *parseFixture) exprStmt(t *testing.T, id ast.StmtID) ast.ExprID {
	t.Helper()
	data, ok := f.Builder.Stmts.Expr(id)
	if !ok {
		t.Fatalf("statement %v is %s, want ExprStmt", id, f.Builder.Stmts.Get(id).Kind)
	}
	return data.Expr
}

func TestVarDeclaration(t *testing.T) {
	f := parseSrc(t, "let a = 1")
	f.noErrors(t)
	stmts := f.rootStmts(t, 1)

	data, ok := f.Builder.Stmts.VarDecl(stmts[0])
	if !ok {
		t.Fatal("expected a VarDeclaration")
	}
	if data.Kind != ast.DeclBlock {
		t.Errorf("declaration kind %s, want let", data.Kind)
	}
	if len(data.Decls) != 1 {
		t.Fatalf("got %d declarators, want 1", len(data.Decls))
	}
	decl := data.Decls[0]
	if f.Builder.Strings.MustLookup(decl.Name) != "a" {
		t.Errorf("declarator name %q, want a", f.Builder.Strings.MustLookup(decl.Name))
	}
	lit, ok := f.Builder.Exprs.Literal(decl.Init)
	if !ok || lit.Num != 1 {
		t.Errorf("initializer is not Literal(1)")
	}
}

func TestChainedAssignmentIsRightAssociative(t *testing.T) {
	f := parseSrc(t, "a = b = 1")
	f.noErrors(t)
	stmts := f.rootStmts(t, 1)

	outer, ok := f.Builder.Exprs.Assign(f.exprStmt(t, stmts[0]))
	if !ok {
		t.Fatal("expected an AssignmentExpr")
	}
	if ident, ok := f.Builder.Exprs.Ident(outer.Target); !ok || f.Builder.Strings.MustLookup(ident.Name) != "a" {
		t.Error("outer target is not Identifier(a)")
	}
	inner, ok := f.Builder.Exprs.Assign(outer.Value)
	if !ok {
		t.Fatal("outer value is not a nested AssignmentExpr")
	}
	if ident, ok := f.Builder.Exprs.Ident(inner.Target); !ok || f.Builder.Strings.MustLookup(ident.Name) != "b" {
		t.Error("inner target is not Identifier(b)")
	}
	if lit, ok := f.Builder.Exprs.Literal(inner.Value); !ok || lit.Num != 1 {
		t.Error("inner value is not Literal(1)")
	}
}

func TestPrecedenceWithUnary(t *testing.T) {
	f := parseSrc(t, "1 + 2 * -3")
	f.noErrors(t)
	stmts := f.rootStmts(t, 1)

	add, ok := f.Builder.Exprs.Binary(f.exprStmt(t, stmts[0]))
	if !ok || add.Op != token.Plus {
		t.Fatal("root is not BinaryExpr(+)")
	}
	if lit, ok := f.Builder.Exprs.Literal(add.Left); !ok || lit.Num != 1 {
		t.Error("left of + is not Literal(1)")
	}
	mul, ok := f.Builder.Exprs.Binary(add.Right)
	if !ok || mul.Op != token.Star {
		t.Fatal("right of + is not BinaryExpr(*)")
	}
	neg, ok := f.Builder.Exprs.Unary(mul.Right)
	if !ok || neg.Op != token.Minus {
		t.Fatal("right of * is not PrefixUnaryExpr(-)")
	}
	if lit, ok := f.Builder.Exprs.Literal(neg.Operand); !ok || lit.Num != 3 {
		t.Error("operand of - is not Literal(3)")
	}
}

func TestPowerIsRightAssociative(t *testing.T) {
	f := parseSrc(t, "a ** b ** c")
	f.noErrors(t)
	stmts := f.rootStmts(t, 1)

	outer, ok := f.Builder.Exprs.Binary(f.exprStmt(t, stmts[0]))
	if !ok || outer.Op != token.StarStar {
		t.Fatal("root is not BinaryExpr(**)")
	}
	if _, ok := f.Builder.Exprs.Binary(outer.Right); !ok {
		t.Error("a ** b ** c must parse as a ** (b ** c)")
	}
}

func TestWhileWithLayout(t *testing.T) {
	f := parseSrc(t, "var k = 4\nwhile k\n  k -= 1")
	f.noErrors(t)
	stmts := f.rootStmts(t, 2)

	if _, ok := f.Builder.Stmts.VarDecl(stmts[0]); !ok {
		t.Fatal("first statement is not a VarDeclaration")
	}
	while, ok := f.Builder.Stmts.While(stmts[1])
	if !ok {
		t.Fatal("second statement is not a WhileStmt")
	}
	body := f.Builder.Bodies.Get(while.Body)
	if len(body.Stmts) != 1 {
		t.Fatalf("while body has %d statements, want 1", len(body.Stmts))
	}
	assign, ok := f.Builder.Exprs.Assign(f.exprStmt(t, body.Stmts[0]))
	if !ok || assign.Op != token.MinusAssign {
		t.Error("while body is not ExprStmt(AssignmentExpr(-=))")
	}
}

func TestIndexedMemberAccess(t *testing.T) {
	f := parseSrc(t, "array[index]")
	f.noErrors(t)
	stmts := f.rootStmts(t, 1)

	member, ok := f.Builder.Exprs.Member(f.exprStmt(t, stmts[0]))
	if !ok {
		t.Fatal("expected a MemberAccessExpr")
	}
	if !member.IsIndexed {
		t.Error("access must be indexed")
	}
	if ident, ok := f.Builder.Exprs.Ident(member.Object); !ok || f.Builder.Strings.MustLookup(ident.Name) != "array" {
		t.Error("object is not Identifier(array)")
	}
	if ident, ok := f.Builder.Exprs.Ident(member.Property); !ok || f.Builder.Strings.MustLookup(ident.Name) != "index" {
		t.Error("property is not Identifier(index)")
	}
}

func TestDottedMemberAccess(t *testing.T) {
	f := parseSrc(t, "d.age")
	f.noErrors(t)
	stmts := f.rootStmts(t, 1)

	member, ok := f.Builder.Exprs.Member(f.exprStmt(t, stmts[0]))
	if !ok || member.IsIndexed {
		t.Fatal("expected a dotted MemberAccessExpr")
	}
}

func TestInlineObjectLiteral(t *testing.T) {
	f := parseSrc(t, "let d = { age: 3, name: 'rex' }")
	f.noErrors(t)
	stmts := f.rootStmts(t, 1)

	data, _ := f.Builder.Stmts.VarDecl(stmts[0])
	obj, ok := f.Builder.Exprs.Object(data.Decls[0].Init)
	if !ok {
		t.Fatal("initializer is not an ObjectExpr")
	}
	if len(obj.Fields) != 2 {
		t.Fatalf("got %d fields, want 2", len(obj.Fields))
	}
	if f.Builder.Strings.MustLookup(obj.Fields[0].Name) != "age" ||
		f.Builder.Strings.MustLookup(obj.Fields[1].Name) != "name" {
		t.Error("field order must follow insertion order")
	}
}

func TestIndentedObjectLiteral(t *testing.T) {
	f := parseSrc(t, "let d =\n  age: 3\n  name: 'rex'")
	f.noErrors(t)
	stmts := f.rootStmts(t, 1)

	data, _ := f.Builder.Stmts.VarDecl(stmts[0])
	obj, ok := f.Builder.Exprs.Object(data.Decls[0].Init)
	if !ok {
		t.Fatal("initializer is not an ObjectExpr")
	}
	if len(obj.Fields) != 2 {
		t.Fatalf("got %d fields, want 2", len(obj.Fields))
	}
}

func TestColonPairInsideCall(t *testing.T) {
	f := parseSrc(t, "f(x: 1)")
	f.noErrors(t)
	stmts := f.rootStmts(t, 1)

	call, ok := f.Builder.Exprs.Call(f.exprStmt(t, stmts[0]))
	if !ok || len(call.Args) != 1 {
		t.Fatal("expected CallExpr with one argument")
	}
	obj, ok := f.Builder.Exprs.Object(call.Args[0])
	if !ok || len(obj.Fields) != 1 {
		t.Fatal("argument must be a single-property ObjectExpr")
	}
}

func TestSugarDeclaration(t *testing.T) {
	f := parseSrc(t, "mynum: num = 10")
	f.noErrors(t)
	stmts := f.rootStmts(t, 1)

	data, ok := f.Builder.Stmts.VarDecl(stmts[0])
	if !ok || data.Kind != ast.DeclSugar {
		t.Fatal("expected a sugar VarDeclaration")
	}
	if data.Decls[0].Type.Type != f.Registry.Builtins().Num {
		t.Error("annotation must resolve to num")
	}
}

func TestFunctionDeclarationAndHoisting(t *testing.T) {
	f := parseSrc(t, "func add(a: num, b: num): num\n  return a + b")
	f.noErrors(t)
	stmts := f.rootStmts(t, 1)

	data, ok := f.Builder.Stmts.FnDecl(stmts[0])
	if !ok {
		t.Fatal("expected a FunctionDeclaration")
	}
	fn, _ := f.Builder.Exprs.Fn(data.Fn)
	if len(fn.Params) != 2 || fn.IsArrow {
		t.Errorf("got %d params (arrow=%v), want 2 plain params", len(fn.Params), fn.IsArrow)
	}
	if fn.Ret.Type != f.Registry.Builtins().Num {
		t.Error("return annotation must resolve to num")
	}

	root := f.Builder.Bodies.Get(f.Program.Root)
	if len(root.Decls) != 1 || root.Decls[0].Kind != ast.HoistFunc {
		t.Fatalf("root body must carry one hoisted function, got %v", root.Decls)
	}
	if f.Builder.Strings.MustLookup(root.Decls[0].Name) != "add" {
		t.Error("hoisted name must be add")
	}
}

func TestVarHoistsIntoFunctionBody(t *testing.T) {
	f := parseSrc(t, "func g()\n  if true\n    var inner = 1")
	f.noErrors(t)

	data, _ := f.Builder.Stmts.FnDecl(f.rootStmts(t, 1)[0])
	fn, _ := f.Builder.Exprs.Fn(data.Fn)
	fnBody := f.Builder.Bodies.Get(fn.Body)
	if len(fnBody.Decls) != 1 || fnBody.Decls[0].Kind != ast.HoistVar {
		t.Fatalf("var must hoist into the function body, got %v", fnBody.Decls)
	}
}

func TestArrowFunction(t *testing.T) {
	f := parseSrc(t, "let double = (x: num) -> x * 2")
	f.noErrors(t)
	stmts := f.rootStmts(t, 1)

	data, _ := f.Builder.Stmts.VarDecl(stmts[0])
	fn, ok := f.Builder.Exprs.Fn(data.Decls[0].Init)
	if !ok {
		t.Fatal("initializer is not a FunctionExpr")
	}
	if !fn.IsArrow {
		t.Error("function must be marked as arrow")
	}
	body := f.Builder.Bodies.Get(fn.Body)
	if len(body.Stmts) != 1 {
		t.Fatal("arrow body must hold the implicit return")
	}
	if _, ok := f.Builder.Stmts.Return(body.Stmts[0]); !ok {
		t.Error("expression body must become an implicit ReturnStmt")
	}
}

func TestIfElifElse(t *testing.T) {
	f := parseSrc(t, "if a\n  x = 1\nelif b\n  x = 2\nelse\n  x = 3")
	f.noErrors(t)
	stmts := f.rootStmts(t, 1)

	data, ok := f.Builder.Stmts.If(stmts[0])
	if !ok {
		t.Fatal("expected an IfStmt")
	}
	if !data.Else.IsValid() {
		t.Fatal("elif chain must produce an else body")
	}
	elseBody := f.Builder.Bodies.Get(data.Else)
	if len(elseBody.Stmts) != 1 {
		t.Fatal("else body must hold the nested if")
	}
	nested, ok := f.Builder.Stmts.If(elseBody.Stmts[0])
	if !ok {
		t.Fatal("elif must nest as an IfStmt")
	}
	if !nested.Else.IsValid() {
		t.Error("nested if must carry the final else")
	}
}

func TestForStatement(t *testing.T) {
	f := parseSrc(t, "for i = 0, 10, 2\n  total += i")
	f.noErrors(t)
	stmts := f.rootStmts(t, 1)

	data, ok := f.Builder.Stmts.For(stmts[0])
	if !ok {
		t.Fatal("expected a ForStmt")
	}
	if f.Builder.Strings.MustLookup(data.Name) != "i" {
		t.Error("counter name must be i")
	}
	if !data.Step.IsValid() {
		t.Error("step expression must be present")
	}
}

func TestRecordDeclaration(t *testing.T) {
	f := parseSrc(t, "record Doggy\n  age: num\n  name: str")
	f.noErrors(t)
	stmts := f.rootStmts(t, 1)

	data, ok := f.Builder.Stmts.Record(stmts[0])
	if !ok {
		t.Fatal("expected a RecordDecl")
	}
	if len(data.Fields) != 2 {
		t.Fatalf("got %d fields, want 2", len(data.Fields))
	}
	info, ok := f.Registry.RecordInfo(data.Type.Type)
	if !ok {
		t.Fatal("record type must be registered")
	}
	if len(info.Props) != 2 {
		t.Error("record property table must hold both fields")
	}
}

func TestGenericRecordDeclaration(t *testing.T) {
	f := parseSrc(t, "record Box<T>\n  value: T")
	f.noErrors(t)
	stmts := f.rootStmts(t, 1)

	data, _ := f.Builder.Stmts.Record(stmts[0])
	info, ok := f.Registry.GenericInfo(data.Type.Type)
	if !ok {
		t.Fatal("parameterised record must register as a generic")
	}
	if len(info.Params) != 1 || len(info.Props) != 1 {
		t.Errorf("generic has %d params and %d props", len(info.Params), len(info.Props))
	}
	if info.Props[0].Type != info.Params[0] {
		t.Error("property type must reference the formal parameter")
	}
}

func TestUnionTypeAnnotation(t *testing.T) {
	f := parseSrc(t, "x: num | str = 1")
	f.noErrors(t)
	stmts := f.rootStmts(t, 1)

	data, _ := f.Builder.Stmts.VarDecl(stmts[0])
	union, ok := f.Registry.UnionInfo(data.Decls[0].Type.Type)
	if !ok {
		t.Fatal("annotation must be a UnionType")
	}
	if len(union.Members) != 2 {
		t.Errorf("union has %d members, want 2", len(union.Members))
	}
}

func TestArrayTypeAnnotation(t *testing.T) {
	f := parseSrc(t, "xs: num[] = [1, 2]")
	f.noErrors(t)
	stmts := f.rootStmts(t, 1)

	data, _ := f.Builder.Stmts.VarDecl(stmts[0])
	elem, ok := f.Registry.ElemOf(data.Decls[0].Type.Type)
	if !ok || elem != f.Registry.Builtins().Num {
		t.Error("num[] must denote Array<num>")
	}
}

func TestInvalidAssignmentTarget(t *testing.T) {
	f := parseSrc(t, "1 = 2")
	if !f.Bag.HasErrors() {
		t.Fatal("expected an error")
	}
	found := false
	for _, d := range f.Bag.Items() {
		if d.Message == "Invalid assignment target" {
			found = true
		}
	}
	if !found {
		t.Errorf("missing invalid-target diagnostic: %v", messages(f.Bag))
	}
}

func TestErrorRecoveryContinues(t *testing.T) {
	f := parseSrc(t, "let = 1\nlet ok = 2")
	if !f.Bag.HasErrors() {
		t.Fatal("expected an error for the broken declaration")
	}
	// парсер должен добраться до второй декларации
	body := f.Builder.Bodies.Get(f.Program.Root)
	foundOK := false
	for _, stmt := range body.Stmts {
		if data, ok := f.Builder.Stmts.VarDecl(stmt); ok {
			for _, decl := range data.Decls {
				if f.Builder.Strings.MustLookup(decl.Name) == "ok" {
					foundOK = true
				}
			}
		}
	}
	if !foundOK {
		t.Error("parser must recover and parse the second declaration")
	}
}

func TestParseIsDeterministic(t *testing.T) {
	src := "func f(a)\n  return a\nlet x = f(1) + 2 ** 3 ** 4\n"
	a := parseSrc(t, src)
	b := parseSrc(t, src)

	dumpA := dumpStmts(a)
	dumpB := dumpStmts(b)
	if dumpA != dumpB {
		t.Errorf("parsing is not deterministic:\n%s\nvs\n%s", dumpA, dumpB)
	}
}

func dumpStmts(f *parseFixture) string {
	var b strings.Builder
	body := f.Builder.Bodies.Get(f.Program.Root)
	for _, stmt := range body.Stmts {
		s := f.Builder.Stmts.Get(stmt)
		b.WriteString(s.Kind.String())
		b.WriteString(s.Span.String())
		b.WriteByte('\n')
	}
	return b.String()
}
