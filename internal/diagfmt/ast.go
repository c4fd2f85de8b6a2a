package diagfmt

import (
	"fmt"
	"io"

	"ave/internal/ast"
	"ave/internal/source"
)

// FormatASTPretty печатает дерево разбора в стиле `├─`/`└─`.
func FormatASTPretty(w io.Writer, builder *ast.Builder, program ast.Program, fs *source.FileSet) error {
	file := fs.Get(program.File)
	fmt.Fprintf(w, "Program %s\n", file.Path)
	printBody(w, builder, program.Root, "", fs)
	return nil
}

func printBody(w io.Writer, b *ast.Builder, id ast.BodyID, prefix string, fs *source.FileSet) {
	body := b.Bodies.Get(id)
	if body == nil {
		return
	}
	for i, stmt := range body.Stmts {
		last := i == len(body.Stmts)-1
		printStmt(w, b, stmt, prefix, last, fs)
	}
}

func branch(prefix string, last bool) (head, rest string) {
	if last {
		return prefix + "└─ ", prefix + "   "
	}
	return prefix + "├─ ", prefix + "│  "
}

func printStmt(w io.Writer, b *ast.Builder, id ast.StmtID, prefix string, last bool, fs *source.FileSet) {
	head, rest := branch(prefix, last)
	stmt := b.Stmts.Get(id)
	if stmt == nil {
		fmt.Fprintf(w, "%s<nil stmt>\n", head)
		return
	}

	switch stmt.Kind {
	case ast.StmtExpr:
		data, _ := b.Stmts.Expr(id)
		fmt.Fprintf(w, "%sExprStmt %s\n", head, spanText(stmt.Span, fs))
		printExpr(w, b, data.Expr, rest, true, fs)
	case ast.StmtVarDecl:
		data, _ := b.Stmts.VarDecl(id)
		fmt.Fprintf(w, "%sVarDeclaration(%s) %s\n", head, data.Kind, spanText(stmt.Span, fs))
		for i, decl := range data.Decls {
			declLast := i == len(data.Decls)-1
			declHead, declRest := branch(rest, declLast)
			fmt.Fprintf(w, "%sVarDeclarator %q\n", declHead, b.Strings.MustLookup(decl.Name))
			if decl.Init.IsValid() {
				printExpr(w, b, decl.Init, declRest, true, fs)
			}
		}
	case ast.StmtIf:
		data, _ := b.Stmts.If(id)
		fmt.Fprintf(w, "%sIfStmt %s\n", head, spanText(stmt.Span, fs))
		printExpr(w, b, data.Cond, rest, !data.Then.IsValid() && !data.Else.IsValid(), fs)
		if data.Then.IsValid() {
			fmt.Fprintf(w, "%s├─ then\n", rest)
			printBody(w, b, data.Then, rest+"│  ", fs)
		}
		if data.Else.IsValid() {
			fmt.Fprintf(w, "%s└─ else\n", rest)
			printBody(w, b, data.Else, rest+"   ", fs)
		}
	case ast.StmtWhile:
		data, _ := b.Stmts.While(id)
		fmt.Fprintf(w, "%sWhileStmt %s\n", head, spanText(stmt.Span, fs))
		printExpr(w, b, data.Cond, rest, false, fs)
		printBody(w, b, data.Body, rest, fs)
	case ast.StmtFor:
		data, _ := b.Stmts.For(id)
		fmt.Fprintf(w, "%sForStmt %q %s\n", head, b.Strings.MustLookup(data.Name), spanText(stmt.Span, fs))
		printExpr(w, b, data.Start, rest, false, fs)
		printExpr(w, b, data.Stop, rest, !data.Step.IsValid(), fs)
		if data.Step.IsValid() {
			printExpr(w, b, data.Step, rest, false, fs)
		}
		printBody(w, b, data.Body, rest, fs)
	case ast.StmtReturn:
		data, _ := b.Stmts.Return(id)
		fmt.Fprintf(w, "%sReturnStmt %s\n", head, spanText(stmt.Span, fs))
		if data.Value.IsValid() {
			printExpr(w, b, data.Value, rest, true, fs)
		}
	case ast.StmtFnDecl:
		data, _ := b.Stmts.FnDecl(id)
		fmt.Fprintf(w, "%sFunctionDeclaration %q %s\n", head, b.Strings.MustLookup(data.Name), spanText(stmt.Span, fs))
		printExpr(w, b, data.Fn, rest, true, fs)
	case ast.StmtRecord:
		data, _ := b.Stmts.Record(id)
		fmt.Fprintf(w, "%sRecordDecl %q (%d fields) %s\n", head,
			b.Strings.MustLookup(data.Name), len(data.Fields), spanText(stmt.Span, fs))
	default:
		fmt.Fprintf(w, "%s%s %s\n", head, stmt.Kind, spanText(stmt.Span, fs))
	}
}

func printExpr(w io.Writer, b *ast.Builder, id ast.ExprID, prefix string, last bool, fs *source.FileSet) {
	head, rest := branch(prefix, last)
	expr := b.Exprs.Get(id)
	if expr == nil {
		fmt.Fprintf(w, "%s<nil expr>\n", head)
		return
	}

	switch expr.Kind {
	case ast.ExprLiteral:
		data, _ := b.Exprs.Literal(id)
		fmt.Fprintf(w, "%sLiteral %s\n", head, literalText(b, data))
	case ast.ExprIdent:
		data, _ := b.Exprs.Ident(id)
		fmt.Fprintf(w, "%sIdentifier %q\n", head, b.Strings.MustLookup(data.Name))
	case ast.ExprBinary:
		data, _ := b.Exprs.Binary(id)
		fmt.Fprintf(w, "%sBinaryExpr %s\n", head, data.Op)
		printExpr(w, b, data.Left, rest, false, fs)
		printExpr(w, b, data.Right, rest, true, fs)
	case ast.ExprPrefix, ast.ExprPostfix:
		data, _ := b.Exprs.Unary(id)
		fmt.Fprintf(w, "%s%s %s\n", head, expr.Kind, data.Op)
		printExpr(w, b, data.Operand, rest, true, fs)
	case ast.ExprAssign:
		data, _ := b.Exprs.Assign(id)
		fmt.Fprintf(w, "%sAssignmentExpr %s\n", head, data.Op)
		printExpr(w, b, data.Target, rest, false, fs)
		printExpr(w, b, data.Value, rest, true, fs)
	case ast.ExprGroup:
		data, _ := b.Exprs.Group(id)
		fmt.Fprintf(w, "%sGroupExpr\n", head)
		printExpr(w, b, data.Inner, rest, true, fs)
	case ast.ExprCall:
		data, _ := b.Exprs.Call(id)
		fmt.Fprintf(w, "%sCallExpr (%d args)\n", head, len(data.Args))
		printExpr(w, b, data.Callee, rest, len(data.Args) == 0, fs)
		for i, arg := range data.Args {
			printExpr(w, b, arg, rest, i == len(data.Args)-1, fs)
		}
	case ast.ExprMember:
		data, _ := b.Exprs.Member(id)
		fmt.Fprintf(w, "%sMemberAccessExpr (indexed=%v)\n", head, data.IsIndexed)
		printExpr(w, b, data.Object, rest, false, fs)
		printExpr(w, b, data.Property, rest, true, fs)
	case ast.ExprArray:
		data, _ := b.Exprs.Array(id)
		fmt.Fprintf(w, "%sArrayExpr (%d elems)\n", head, len(data.Elems))
		for i, elem := range data.Elems {
			printExpr(w, b, elem, rest, i == len(data.Elems)-1, fs)
		}
	case ast.ExprObject:
		data, _ := b.Exprs.Object(id)
		fmt.Fprintf(w, "%sObjectExpr (%d fields)\n", head, len(data.Fields))
		for i, field := range data.Fields {
			fieldLast := i == len(data.Fields)-1
			fieldHead, fieldRest := branch(rest, fieldLast)
			fmt.Fprintf(w, "%s%s:\n", fieldHead, b.Strings.MustLookup(field.Name))
			printExpr(w, b, field.Value, fieldRest, true, fs)
		}
	case ast.ExprFn:
		data, _ := b.Exprs.Fn(id)
		fmt.Fprintf(w, "%sFunctionExpr (%d params, arrow=%v)\n", head, len(data.Params), data.IsArrow)
		printBody(w, b, data.Body, rest, fs)
	default:
		fmt.Fprintf(w, "%s%s %s\n", head, expr.Kind, spanText(expr.Span, fs))
	}
}

func literalText(b *ast.Builder, data *ast.ExprLiteralData) string {
	switch data.Kind {
	case ast.LitNum:
		return fmt.Sprintf("%v", data.Num)
	case ast.LitBool:
		return fmt.Sprintf("%v", data.Bool)
	default:
		return fmt.Sprintf("%q", b.Strings.MustLookup(data.Text))
	}
}

func spanText(sp source.Span, fs *source.FileSet) string {
	start, end := fs.Resolve(sp)
	return fmt.Sprintf("(%d:%d-%d:%d)", start.Line, start.Col, end.Line, end.Col)
}
