package parser

import (
	"ave/internal/ast"
	"ave/internal/diag"
	"ave/internal/token"
)

// parseVarDecl разбирает `var|let|const` со списком деклараторов:
// NAME (':' type)? ('=' expr)? (',' ...)*.
// Для var имена дополнительно хойстятся в ближайшее тело функции.
func (p *Parser) parseVarDecl(kind ast.DeclKind) (ast.StmtID, bool) {
	kwTok := p.advance()

	var decls []ast.VarDeclarator
	for {
		nameTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected variable name")
		if !ok {
			// ресинк сделает вызывающий
			break
		}
		decl := ast.VarDeclarator{
			Name:     p.arenas.Strings.Intern(nameTok.Text),
			NameSpan: nameTok.Span,
			Type:     ast.Inferred(p.reg),
		}
		if p.eat(token.Colon) {
			decl.Type = p.parseTypeInfo()
		}
		if p.eat(token.Assign) {
			decl.Init = p.parseExpression(precNone)
		}
		decls = append(decls, decl)
		if !p.eat(token.Comma) {
			break
		}
	}

	if len(decls) == 0 {
		return ast.NoStmtID, false
	}
	p.terminateSimple("declaration")

	span := kwTok.Span.Cover(p.lastSpan)
	stmt := p.arenas.Stmts.NewVarDecl(span, kind, decls)

	if kind.Hoisted() {
		fnBody := p.currentFnBody()
		for _, decl := range decls {
			p.arenas.Bodies.Hoist(fnBody, ast.HoistedDecl{
				Kind: ast.HoistVar,
				Name: decl.Name,
				Span: decl.NameSpan,
				Stmt: stmt,
				Type: decl.Type.Type,
			})
		}
	}
	return stmt, true
}

// parseSugarDecl разбирает сахарную форму `NAME ':' type? ('=' expr)?`.
// Вызывается только когда statement начинается с Ident ':'.
func (p *Parser) parseSugarDecl() (ast.StmtID, bool) {
	nameTok := p.advance() // NAME
	p.advance()            // ':'

	decl := ast.VarDeclarator{
		Name:     p.arenas.Strings.Intern(nameTok.Text),
		NameSpan: nameTok.Span,
		Type:     ast.Inferred(p.reg),
	}
	if !p.at(token.Assign) && !p.peek().Terminates() {
		decl.Type = p.parseTypeInfo()
	}
	if p.eat(token.Assign) {
		decl.Init = p.parseExpression(precNone)
	}
	p.terminateSimple("declaration")

	span := nameTok.Span.Cover(p.lastSpan)
	return p.arenas.Stmts.NewVarDecl(span, ast.DeclSugar, []ast.VarDeclarator{decl}), true
}
