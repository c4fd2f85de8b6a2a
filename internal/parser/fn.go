package parser

import (
	"ave/internal/ast"
	"ave/internal/diag"
	"ave/internal/token"
	"ave/internal/types"
)

// parseFnDecl разбирает `func NAME (params) (':' type)? ':'? INDENT body DEDENT`
// и хойстит декларацию в текущий блок.
func (p *Parser) parseFnDecl() (ast.StmtID, bool) {
	funcTok := p.advance() // 'func'
	nameTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected function name after 'func'")
	if !ok {
		return ast.NoStmtID, false
	}
	name := p.arenas.Strings.Intern(nameTok.Text)

	fn, ok := p.parseFnRest(funcTok)
	if !ok {
		return ast.NoStmtID, false
	}

	span := funcTok.Span.Cover(p.lastSpan)
	stmt := p.arenas.Stmts.NewFnDecl(span, name, nameTok.Span, fn)

	// функция видна во всём объемлющем блоке
	p.arenas.Bodies.Hoist(p.currentBody(), ast.HoistedDecl{
		Kind: ast.HoistFunc,
		Name: name,
		Span: nameTok.Span,
		Stmt: stmt,
		Type: p.fnTypeOf(fn),
	})
	return stmt, true
}

// parseFnExpr — префикс-парселет анонимного функционального выражения.
func parseFnExpr(p *Parser, tok token.Token) ast.ExprID {
	fn, ok := p.parseFnRest(tok)
	if !ok {
		return p.arenas.Exprs.NewBad(tok.Span)
	}
	return fn
}

// parseFnRest разбирает всё после имени: параметры, аннотацию результата и
// тело. Стрелочные функции идут отдельным путём (parseArrowFn).
func (p *Parser) parseFnRest(startTok token.Token) (ast.ExprID, bool) {
	if _, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' to open parameter list"); !ok {
		return ast.NoExprID, false
	}
	params := p.parseParamList()

	// необязательная аннотация результата: ':' type, если дальше не блок
	ret := ast.Inferred(p.reg)
	if p.at(token.Colon) && !p.blockFollows() {
		p.advance()
		ret = p.parseTypeInfo()
	}

	body, _ := p.parseBlock(true)
	span := startTok.Span.Cover(p.lastSpan)
	fn := p.arenas.Exprs.NewFn(span, ast.ExprFnData{
		Params:  params,
		Ret:     ret,
		Body:    body,
		IsArrow: false,
	})
	return fn, true
}

// blockFollows: двоеточие прямо перед блоком, а не перед типом результата.
func (p *Parser) blockFollows() bool {
	switch p.peekAt(1).Kind {
	case token.Indent, token.Newline:
		return true
	default:
		return false
	}
}

// parseParamList читает параметры до ')': NAME (':' type)? ('=' expr)?.
// Параметр со значением по умолчанию перестаёт быть обязательным.
func (p *Parser) parseParamList() []ast.FnParam {
	var params []ast.FnParam
	for !p.at(token.RParen) && !p.at(token.EOF) {
		nameTok, ok := p.expect(token.Ident, diag.SynBadParameter, "expected parameter name")
		if !ok {
			p.skipParam()
			continue
		}
		param := ast.FnParam{
			Name: p.arenas.Strings.Intern(nameTok.Text),
			Span: nameTok.Span,
			Type: ast.Inferred(p.reg),
		}
		if p.eat(token.Colon) {
			param.Type = p.parseTypeInfo()
		}
		if p.eat(token.Assign) {
			param.Default = p.parseExpression(precNone)
		}
		params = append(params, param)
		if !p.eat(token.Comma) {
			break
		}
	}
	p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' to close parameter list")
	return params
}

func (p *Parser) skipParam() {
	for {
		switch p.peek().Kind {
		case token.Comma:
			p.advance()
			return
		case token.RParen, token.EOF:
			return
		default:
			p.advance()
		}
	}
}

// parseArrowFn разбирает `(params) -> expr|block` после того, как
// isArrowAhead подтвердил стрелку. Вызывается с уже съеденной '('.
func (p *Parser) parseArrowFn(openTok token.Token) ast.ExprID {
	params := p.parseParamList()
	if _, ok := p.expect(token.Arrow, diag.SynUnexpectedToken, "expected '->' in arrow function"); !ok {
		return p.arenas.Exprs.NewBad(openTok.Span)
	}

	var body ast.BodyID
	if p.at(token.Indent) || p.at(token.Colon) || p.at(token.Newline) {
		body, _ = p.parseBlock(true)
	} else {
		// тело-выражение превращается в неявный return
		value := p.parseExpression(precNone)
		valueSpan := p.arenas.Exprs.SpanOf(value)
		body = p.arenas.Bodies.New(valueSpan)
		ret := p.arenas.Stmts.NewReturn(valueSpan, value)
		p.arenas.Bodies.Push(body, ret)
	}

	span := openTok.Span.Cover(p.lastSpan)
	return p.arenas.Exprs.NewFn(span, ast.ExprFnData{
		Params:  params,
		Ret:     ast.Inferred(p.reg),
		Body:    body,
		IsArrow: true,
	})
}

// parseGroupOrArrow — префикс-парселет '(': либо группировка, либо
// стрелочная функция. Стрелка распознаётся заглядыванием за парную ')'.
func parseGroupOrArrow(p *Parser, tok token.Token) ast.ExprID {
	if p.isArrowAhead() {
		return p.parseArrowFn(tok)
	}
	inner := p.parseExpression(precNone)
	end, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' to close grouping")
	span := tok.Span
	if ok {
		span = span.Cover(end.Span)
	}
	return p.arenas.Exprs.NewGroup(span, inner)
}

// isArrowAhead сканирует буфер до парной ')' и проверяет '->' сразу за ней.
func (p *Parser) isArrowAhead() bool {
	depth := 1
	for i := p.pos; i < len(p.toks); i++ {
		switch p.toks[i].Kind {
		case token.LParen:
			depth++
		case token.RParen:
			depth--
			if depth == 0 {
				return i+1 < len(p.toks) && p.toks[i+1].Kind == token.Arrow
			}
		case token.EOF:
			return false
		}
	}
	return false
}

// fnTypeOf собирает FunctionType из синтаксиса функции для hoisted-сигнатуры.
func (p *Parser) fnTypeOf(fn ast.ExprID) types.TypeID {
	data, ok := p.arenas.Exprs.Fn(fn)
	if !ok {
		return p.reg.Builtins().Error
	}
	params := make([]types.FnParam, 0, len(data.Params))
	for _, param := range data.Params {
		params = append(params, types.FnParam{
			Name:       param.Name,
			Type:       param.Type.Type,
			Required:   !param.Default.IsValid() && !param.Rest,
			Rest:       param.Rest,
			HasDefault: param.Default.IsValid(),
		})
	}
	return p.reg.RegisterFn(params, data.Ret.Type)
}
