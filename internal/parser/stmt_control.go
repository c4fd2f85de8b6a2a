package parser

import (
	"ave/internal/ast"
	"ave/internal/diag"
	"ave/internal/token"
)

// parseIfStmt разбирает if/elif/else. Первый токен — KwIf либо KwElif:
// elif-цепочка сворачивается во вложенный if внутри else-тела.
func (p *Parser) parseIfStmt() (ast.StmtID, bool) {
	ifTok := p.advance()
	cond := p.parseExpression(precNone)
	then, _ := p.parseBlock(false)

	var els ast.BodyID
	switch p.peek().Kind {
	case token.KwElif:
		elifStmt, ok := p.parseIfStmt()
		if ok {
			stmtSpan := p.arenas.Stmts.Get(elifStmt).Span
			els = p.arenas.Bodies.New(stmtSpan)
			p.arenas.Bodies.Push(els, elifStmt)
		}
	case token.KwElse:
		p.advance()
		els, _ = p.parseBlock(false)
	}

	span := ifTok.Span.Cover(p.lastSpan)
	return p.arenas.Stmts.NewIf(span, cond, then, els), true
}

func (p *Parser) parseWhileStmt() (ast.StmtID, bool) {
	whileTok := p.advance()
	cond := p.parseExpression(precNone)
	body, _ := p.parseBlock(false)
	span := whileTok.Span.Cover(p.lastSpan)
	return p.arenas.Stmts.NewWhile(span, cond, body), true
}

// parseForStmt разбирает числовой счётчик:
// `for NAME '=' start ',' stop (',' step)? ':'? INDENT body DEDENT`.
func (p *Parser) parseForStmt() (ast.StmtID, bool) {
	forTok := p.advance()

	nameTok, ok := p.expect(token.Ident, diag.SynForBadHeader, "expected counter name after 'for'")
	if !ok {
		return ast.NoStmtID, false
	}
	if _, ok := p.expect(token.Assign, diag.SynForBadHeader, "expected '=' after counter name"); !ok {
		return ast.NoStmtID, false
	}
	start := p.parseExpression(precNone)
	if _, ok := p.expect(token.Comma, diag.SynForBadHeader, "expected ',' between start and stop"); !ok {
		return ast.NoStmtID, false
	}
	stop := p.parseExpression(precNone)
	step := ast.NoExprID
	if p.eat(token.Comma) {
		step = p.parseExpression(precNone)
	}

	body, _ := p.parseBlock(false)
	span := forTok.Span.Cover(p.lastSpan)
	return p.arenas.Stmts.NewFor(span, ast.StmtForData{
		Name:     p.arenas.Strings.Intern(nameTok.Text),
		NameSpan: nameTok.Span,
		Start:    start,
		Stop:     stop,
		Step:     step,
		Body:     body,
	}), true
}

// parseReturnStmt: `return expr?`, терминируется ';', Newline, Dedent или EOF.
func (p *Parser) parseReturnStmt() (ast.StmtID, bool) {
	retTok := p.advance()

	value := ast.NoExprID
	if !p.peek().Terminates() {
		value = p.parseExpression(precNone)
	}
	p.eat(token.Semicolon)
	p.terminateSimple("return statement")

	span := retTok.Span.Cover(p.lastSpan)
	return p.arenas.Stmts.NewReturn(span, value), true
}
