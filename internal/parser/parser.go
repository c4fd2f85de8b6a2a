package parser

import (
	"fmt"

	"ave/internal/ast"
	"ave/internal/diag"
	"ave/internal/source"
	"ave/internal/token"
	"ave/internal/types"
)

type Options struct {
	Reporter diag.Reporter
}

type Result struct {
	Program  ast.Program
	HasError bool
}

// Parser — состояние разбора одного файла поверх буфера токенов.
type Parser struct {
	file   *source.File
	toks   []token.Token
	pos    int
	arenas *ast.Builder
	reg    *types.Registry
	opts   Options

	lastSpan source.Span // span последнего съеденного токена для диагностики

	// стеки открытых тел: bodies — для func-деклараций текущего блока,
	// fnBodies — для hoisting var в ближайшее тело функции
	bodies   []ast.BodyID
	fnBodies []ast.BodyID

	// активные формальные параметры generic-записи при разборе её полей
	typeParams map[source.StringID]types.TypeID
	// записи и generic-и, уже объявленные выше по файлу
	declared map[source.StringID]types.TypeID

	hasError bool
}

// Parse — входная точка для разбора одного файла.
// Требует уже готовый буфер токенов (включая завершающий EOF).
func Parse(
	file *source.File,
	toks []token.Token,
	arenas *ast.Builder,
	reg *types.Registry,
	opts Options,
) Result {
	p := Parser{
		file:   file,
		toks:   toks,
		arenas: arenas,
		reg:    reg,
		opts:   opts,
	}

	root := arenas.Bodies.New(p.peek().Span)
	p.bodies = append(p.bodies, root)
	p.fnBodies = append(p.fnBodies, root)
	p.parseStatements(root, token.EOF)
	p.coverBody(root)

	return Result{
		Program:  ast.Program{File: file.ID, Root: root},
		HasError: p.hasError,
	}
}

// ===== курсор =====

func (p *Parser) peek() token.Token {
	if p.pos >= len(p.toks) {
		// буфер всегда заканчивается EOF; это страховка
		return token.Token{Kind: token.EOF, Span: p.lastSpan.ZeroideToEnd()}
	}
	return p.toks[p.pos]
}

func (p *Parser) peekAt(n int) token.Token {
	if p.pos+n >= len(p.toks) {
		return token.Token{Kind: token.EOF, Span: p.lastSpan.ZeroideToEnd()}
	}
	return p.toks[p.pos+n]
}

func (p *Parser) at(k token.Kind) bool {
	return p.peek().Kind == k
}

func (p *Parser) advance() token.Token {
	tok := p.peek()
	if tok.Kind != token.EOF {
		p.pos++
	}
	p.lastSpan = tok.Span
	return tok
}

func (p *Parser) eat(k token.Kind) bool {
	if p.at(k) {
		p.advance()
		return true
	}
	return false
}

// expect съедает токен нужного вида или репортит и возвращает ok=false.
func (p *Parser) expect(k token.Kind, code diag.Code, msg string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	p.err(code, msg)
	return p.peek(), false
}

// ===== диагностика и восстановление =====

func (p *Parser) err(code diag.Code, msg string) {
	p.errAt(code, p.peek().Span, msg)
}

func (p *Parser) errAt(code diag.Code, sp source.Span, msg string) {
	p.hasError = true
	if p.opts.Reporter != nil {
		p.opts.Reporter.Report(code, diag.SevError, sp, msg, nil)
	}
}

// resync пропускает токены до ближайшей границы утверждения:
// Newline, Dedent, ';' или EOF. Newline и ';' съедаются.
func (p *Parser) resync() {
	for {
		switch p.peek().Kind {
		case token.Newline, token.Semicolon:
			p.advance()
			return
		case token.Dedent, token.EOF:
			return
		default:
			p.advance()
		}
	}
}

// ===== утверждения =====

// parseStatements разбирает утверждения до терминатора (Dedent или EOF).
func (p *Parser) parseStatements(body ast.BodyID, until token.Kind) {
	for {
		k := p.peek().Kind
		if k == until || k == token.EOF {
			return
		}
		if k == token.Newline || k == token.Semicolon {
			p.advance()
			continue
		}
		before := p.pos
		stmt, ok := p.parseStatement()
		if !ok {
			// гарантируем продвижение, иначе битый ввод зациклит цикл
			if p.pos == before && !p.at(until) && !p.at(token.EOF) {
				p.advance()
			}
			p.resync()
			continue
		}
		p.arenas.Bodies.Push(body, stmt)
	}
}

// parseStatement выбирает распознаватель по первому токену.
func (p *Parser) parseStatement() (ast.StmtID, bool) {
	switch p.peek().Kind {
	case token.KwIf:
		return p.parseIfStmt()
	case token.KwWhile:
		return p.parseWhileStmt()
	case token.KwFor:
		return p.parseForStmt()
	case token.KwReturn:
		return p.parseReturnStmt()
	case token.KwRecord:
		return p.parseRecordDecl()
	case token.KwVar:
		return p.parseVarDecl(ast.DeclFunction)
	case token.KwLet:
		return p.parseVarDecl(ast.DeclBlock)
	case token.KwConst:
		return p.parseVarDecl(ast.DeclConst)
	case token.KwFunc:
		if p.peekAt(1).Kind == token.Ident {
			return p.parseFnDecl()
		}
		return p.parseExprStmt()
	case token.Ident:
		if p.peekAt(1).Kind == token.Colon {
			return p.parseSugarDecl()
		}
		return p.parseExprStmt()
	default:
		return p.parseExprStmt()
	}
}

func (p *Parser) parseExprStmt() (ast.StmtID, bool) {
	startTok := p.peek()
	expr := p.parseExpression(precNone)
	if node := p.arenas.Exprs.Get(expr); node != nil && node.Kind == ast.ExprBad {
		return ast.NoStmtID, false
	}
	p.eat(token.Semicolon)
	p.terminateSimple("expression")
	span := startTok.Span.Cover(p.lastSpan)
	return p.arenas.Stmts.NewExpr(span, expr), true
}

// terminateSimple проверяет, что простое утверждение закончилось на границе
// строки; иначе репортит и синхронизируется.
func (p *Parser) terminateSimple(what string) {
	tok := p.peek()
	if tok.Terminates() {
		p.eat(token.Newline)
		return
	}
	p.err(diag.SynUnexpectedToken, fmt.Sprintf("unexpected '%s' after %s", tok.Text, what))
	p.resync()
}

// ===== тела =====

// openBody создаёт тело и ставит его в стек блоков.
func (p *Parser) openBody(span source.Span, isFn bool) ast.BodyID {
	id := p.arenas.Bodies.New(span)
	p.bodies = append(p.bodies, id)
	if isFn {
		p.fnBodies = append(p.fnBodies, id)
	}
	return id
}

func (p *Parser) closeBody(isFn bool) {
	p.bodies = p.bodies[:len(p.bodies)-1]
	if isFn {
		p.fnBodies = p.fnBodies[:len(p.fnBodies)-1]
	}
}

func (p *Parser) currentBody() ast.BodyID {
	return p.bodies[len(p.bodies)-1]
}

func (p *Parser) currentFnBody() ast.BodyID {
	return p.fnBodies[len(p.fnBodies)-1]
}

// parseBlock разбирает `':'? INDENT stmts DEDENT` и возвращает тело.
func (p *Parser) parseBlock(isFn bool) (ast.BodyID, bool) {
	p.eat(token.Colon)
	p.eat(token.Newline)
	indentTok, ok := p.expect(token.Indent, diag.SynExpectIndent, "expected an indented block")
	if !ok {
		// пустое тело, чтобы чекер не падал
		return p.arenas.Bodies.New(p.peek().Span), false
	}
	body := p.openBody(indentTok.Span, isFn)
	p.parseStatements(body, token.Dedent)
	p.eat(token.Dedent)
	p.closeBody(isFn)
	p.coverBody(body)
	return body, true
}

// coverBody растягивает span тела на все вложенные утверждения.
func (p *Parser) coverBody(id ast.BodyID) {
	body := p.arenas.Bodies.Get(id)
	for _, stmt := range body.Stmts {
		if s := p.arenas.Stmts.Get(stmt); s != nil {
			body.Span = body.Span.Cover(s.Span)
		}
	}
}
