package sema_test

import (
	"strings"
	"testing"

	"ave/internal/diag"
	"ave/internal/driver"
)

func checkSrc(t *testing.T, src string) *driver.CheckResult {
	t.Helper()
	return driver.CheckSource("test.ave", src, 32)
}

func wantClean(t *testing.T, src string) *driver.CheckResult {
	t.Helper()
	res := checkSrc(t, src)
	if res.HasError() {
		t.Fatalf("unexpected errors:\n%s", allMessages(res))
	}
	return res
}

func wantError(t *testing.T, src string, kind diag.Kind, fragment string) *driver.CheckResult {
	t.Helper()
	res := checkSrc(t, src)
	if !res.HasError() {
		t.Fatalf("expected an error containing %q, got none", fragment)
	}
	for _, d := range res.Bag.Items() {
		if d.Code.Kind() == kind && strings.Contains(d.Message, fragment) {
			return res
		}
	}
	t.Fatalf("no %s containing %q, got:\n%s", kind, fragment, allMessages(res))
	return nil
}

func allMessages(res *driver.CheckResult) string {
	var b strings.Builder
	for _, d := range res.Bag.Items() {
		b.WriteString(d.Code.Kind().String())
		b.WriteString(": ")
		b.WriteString(d.Message)
		b.WriteByte('\n')
	}
	return b.String()
}

func TestAssignStringToNum(t *testing.T) {
	wantError(t, "mynum: num = 10\nmynum = \"aa\"",
		diag.KindTypeError, "cannot assign 'str' to 'num'")
}

func TestDeclaratorTypeMismatch(t *testing.T) {
	wantError(t, "let flag: bool = 1",
		diag.KindTypeError, "cannot assign 'num' to 'bool'")
}

func TestInferenceFromInitializer(t *testing.T) {
	wantClean(t, "let a = 1\nlet b = a + 2")
	wantError(t, "let a = 1\nlet b = a + 2\nb = 'no'",
		diag.KindTypeError, "cannot assign 'str' to 'num'")
}

func TestMissingFieldSuggestion(t *testing.T) {
	src := "record Doggy\n  age: num\nd: Doggy = { age: 3 }\nd.ages"
	wantError(t, src, diag.KindTypeError,
		"field 'ages' does not exist on type Doggy. Did you mean 'age'?")
}

func TestRecordAcceptsCoveringLiteral(t *testing.T) {
	wantClean(t, "record Doggy\n  age: num\nd: Doggy = { age: 3 }\nlet years = d.age + 1")
}

func TestRecordRejectsIncompleteLiteral(t *testing.T) {
	wantError(t, "record Doggy\n  age: num\n  name: str\nd: Doggy = { age: 3 }",
		diag.KindTypeError, "cannot assign")
}

func TestUnterminatedStringStillChecks(t *testing.T) {
	res := checkSrc(t, "x = \"hello")
	if !res.HasError() {
		t.Fatal("expected errors")
	}
	found := false
	for _, d := range res.Bag.Items() {
		if d.Code == diag.LexUnterminatedString && d.Code.Kind() == diag.KindSyntaxError {
			found = true
		}
	}
	if !found {
		t.Fatalf("missing the SyntaxError, got:\n%s", allMessages(res))
	}
}

func TestUndefinedIdentifierSuggestion(t *testing.T) {
	wantError(t, "let counter = 1\ncountr + 1",
		diag.KindReferenceError, "'countr' is not defined. Did you mean 'counter'?")
}

func TestUnknownTypeSuggestion(t *testing.T) {
	wantError(t, "record Doggy\n  age: num\nd: Dogy = { age: 1 }",
		diag.KindReferenceError, "type 'Dogy' is not defined. Did you mean 'Doggy'?")
}

func TestConstReassignment(t *testing.T) {
	wantError(t, "const limit = 10\nlimit = 20",
		diag.KindTypeError, "cannot assign to constant 'limit'")
}

func TestRedeclaration(t *testing.T) {
	wantError(t, "let a = 1\nlet a = 2",
		diag.KindReferenceError, "cannot redeclare 'a'")
}

func TestOperatorMisuse(t *testing.T) {
	wantError(t, "let x = true - 1",
		diag.KindTypeError, "cannot use operator '-' on types 'bool' and 'num'")
	wantError(t, "let x = -'no'",
		diag.KindTypeError, "cannot use operator '-' on type 'str'")
}

func TestStringConcatenation(t *testing.T) {
	wantClean(t, "let s = 'a' + 'b'\nlet mixed = 'n = ' + 1")
}

func TestCompoundAssignOnString(t *testing.T) {
	wantClean(t, "let s = 'a'\ns += 'b'")
	wantError(t, "let s = 'a'\ns -= 'b'",
		diag.KindTypeError, "cannot use operator '-='")
}

func TestCallChecking(t *testing.T) {
	wantClean(t, "func add(a: num, b: num): num\n  return a + b\nlet r = add(1, 2) * 3")
	wantError(t, "func add(a: num, b: num): num\n  return a + b\nadd(1)",
		diag.KindTypeError, "expected at least 2 arguments, got 1")
	wantError(t, "func add(a: num, b: num): num\n  return a + b\nadd(1, 2, 3)",
		diag.KindTypeError, "expected at most 2 arguments, got 3")
	wantError(t, "func add(a: num, b: num): num\n  return a + b\nadd(1, 'x')",
		diag.KindTypeError, "cannot assign 'str' to parameter 'b' of type 'num'")
	wantError(t, "let notFn = 1\nnotFn()",
		diag.KindTypeError, "type 'num' is not callable")
}

func TestDefaultParameterIsOptional(t *testing.T) {
	wantClean(t, "func inc(x: num, by: num = 1): num\n  return x + by\ninc(4)\ninc(4, 2)")
}

func TestFunctionHoisting(t *testing.T) {
	// вызов до текстуальной декларации
	wantClean(t, "let r = twice(2)\nfunc twice(x: num): num\n  return x * 2")
}

func TestReturnOutsideFunction(t *testing.T) {
	wantError(t, "return 1", diag.KindTypeError, "return outside of a function")
}

func TestReturnTypeMismatch(t *testing.T) {
	wantError(t, "func f(): num\n  return 'no'",
		diag.KindTypeError, "cannot return 'str' from a function declared to return 'num'")
}

func TestReturnTypeInference(t *testing.T) {
	res := wantClean(t, "func pick(flag: bool)\n  if flag\n    return 1\n  return 'two'\nlet v = pick(true)")
	// выведенный тип результата — union num|str
	found := false
	for _, tid := range res.Sema.ExprTypes {
		if info, ok := res.Sema.Registry.UnionInfo(tid); ok && len(info.Members) == 2 {
			found = true
		}
	}
	if !found {
		t.Error("inferred union return type must appear among expression types")
	}
}

func TestArrayIndexing(t *testing.T) {
	wantClean(t, "xs: num[] = [1, 2, 3]\nlet first = xs[0] + 1")
	wantError(t, "xs: num[] = [1, 2]\nxs['zero']",
		diag.KindTypeError, "array index must be 'num', got 'str'")
	wantError(t, "let n = 5\nn[0]",
		diag.KindTypeError, "type 'num' is not indexable")
}

func TestArrayProps(t *testing.T) {
	wantClean(t, "xs: num[] = [1, 2]\nlet n = xs.length\nxs.push(3)")
	wantError(t, "xs: num[] = [1, 2]\nxs.push('x')",
		diag.KindTypeError, "cannot assign 'str' to parameter 'item' of type 'num'")
}

func TestGenericRecordInstantiation(t *testing.T) {
	src := "record Box<T>\n  value: T\nb: Box<num> = { value: 1 }\nlet v = b.value + 1"
	wantClean(t, src)

	srcBad := "record Box<T>\n  value: T\nb: Box<num> = { value: 'no' }"
	wantError(t, srcBad, diag.KindTypeError, "cannot assign")
}

func TestUnionDeclarator(t *testing.T) {
	wantClean(t, "x: num | str = 1\ny: num | str = 'two'")
	wantError(t, "x: num | str = true",
		diag.KindTypeError, "cannot assign 'bool' to 'num | str'")
}

func TestAnyIsSilent(t *testing.T) {
	wantClean(t, "loose: any = 1\nlet a = loose + 1\nlet b = loose('x')\nlet c = loose.missing")
}

func TestErrorDoesNotCascade(t *testing.T) {
	res := checkSrc(t, "let x = nope + 1\nlet y = x * 2\nlet z = y - 3")
	errors := 0
	for _, d := range res.Bag.Items() {
		if d.Severity >= diag.SevError {
			errors++
		}
	}
	if errors != 1 {
		t.Errorf("one root cause must produce one diagnostic, got %d:\n%s", errors, allMessages(res))
	}
}

func TestVarAssignmentInference(t *testing.T) {
	wantClean(t, "var total\ntotal = 1\ntotal += 2")
	wantError(t, "var total\ntotal = 1\ntotal = 'x'",
		diag.KindTypeError, "cannot assign 'str' to 'num'")
}

func TestEveryExpressionGetsAType(t *testing.T) {
	res := wantClean(t, "let a = 1 + 2 * 3\nlet s = 'x' + 'y'\nfunc f(v: num): num\n  return v\nlet r = f(a)")
	for id, tid := range res.Sema.ExprTypes {
		if tid == 0 {
			t.Errorf("expression %d has no type", id)
		}
	}
	if len(res.Sema.ExprTypes) == 0 {
		t.Error("checker must record expression types")
	}
}

func TestForLoopBounds(t *testing.T) {
	wantClean(t, "var total = 0\nfor i = 0, 10, 2\n  total += i")
	wantError(t, "for i = 'a', 10\n  i",
		diag.KindTypeError, "cannot assign 'str' to 'num'")
}

func TestHasErrorPropagates(t *testing.T) {
	res := checkSrc(t, "let bad: num = 'str'")
	if !res.HasError() {
		t.Fatal("hasError must be set after a type error")
	}
	if !res.Sema.HasError {
		t.Fatal("sema result must carry the error flag")
	}
}
