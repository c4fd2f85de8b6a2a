package parser

import (
	"fmt"
	"strings"

	"ave/internal/ast"
	"ave/internal/diag"
	"ave/internal/token"
)

// parseExpression — ядро Пратта. Читает префикс, затем в цикле навешивает
// инфиксы и постфиксы, чей приоритет строго больше minPrec
// (или не меньше — для правоассоциативных).
func (p *Parser) parseExpression(minPrec precedence) ast.ExprID {
	// перевод строки перед Indent — это начало отступного объектного
	// литерала, сам Newline не значим
	if p.at(token.Newline) && p.peekAt(1).Kind == token.Indent {
		p.advance()
	}

	tok := p.advance()
	prefix, ok := prefixParselets[tok.Kind]
	if !ok {
		p.errAt(diag.SynUnexpectedToken, tok.Span, fmt.Sprintf("Unexpected '%s'", tokenLabel(tok)))
		return p.arenas.Exprs.NewBad(tok.Span)
	}
	left := prefix.parse(p, tok)

	for {
		next := p.peek()

		if post, ok := postfixParselets[next.Kind]; ok && post.prec > minPrec {
			opTok := p.advance()
			span := p.arenas.Exprs.SpanOf(left).Cover(opTok.Span)
			left = p.arenas.Exprs.NewPostfix(span, opTok.Kind, left)
			continue
		}

		// двоеточие перед блоком открывает тело, а не пару "имя: значение"
		if next.Kind == token.Colon && p.blockFollows() {
			break
		}

		infix, ok := infixParselets[next.Kind]
		if !ok {
			break
		}
		binds := infix.prec > minPrec || (infix.rightAssoc && infix.prec >= minPrec)
		if !binds {
			break
		}
		opTok := p.advance()
		left = infix.parse(p, left, opTok)
	}

	return left
}

// ===== префиксы =====

func parseLiteral(p *Parser, tok token.Token) ast.ExprID {
	var data ast.ExprLiteralData
	switch tok.Kind {
	case token.NumLit:
		data = ast.ExprLiteralData{Kind: ast.LitNum, Num: tok.Num, Text: p.arenas.Strings.Intern(tok.Text)}
	case token.StrLit:
		inner := tok.Text
		if len(inner) >= 2 {
			inner = inner[1 : len(inner)-1]
		}
		data = ast.ExprLiteralData{Kind: ast.LitStr, Text: p.arenas.Strings.Intern(inner)}
	case token.HexLit:
		data = ast.ExprLiteralData{Kind: ast.LitHex, Text: p.arenas.Strings.Intern(tok.Text)}
	case token.BinLit:
		data = ast.ExprLiteralData{Kind: ast.LitBin, Text: p.arenas.Strings.Intern(tok.Text)}
	case token.KwTrue, token.KwFalse:
		data = ast.ExprLiteralData{Kind: ast.LitBool, Bool: tok.Kind == token.KwTrue, Text: p.arenas.Strings.Intern(tok.Text)}
	}
	return p.arenas.Exprs.NewLiteral(tok.Span, data)
}

func parseIdent(p *Parser, tok token.Token) ast.ExprID {
	return p.arenas.Exprs.NewIdent(tok.Span, p.arenas.Strings.Intern(tok.Text))
}

func parsePrefixUnary(p *Parser, tok token.Token) ast.ExprID {
	operand := p.parseExpression(precPreUnary)
	span := tok.Span.Cover(p.arenas.Exprs.SpanOf(operand))
	return p.arenas.Exprs.NewPrefix(span, tok.Kind, operand)
}

func parseArrayLiteral(p *Parser, tok token.Token) ast.ExprID {
	var elems []ast.ExprID
	for !p.at(token.RBracket) && !p.at(token.EOF) {
		elems = append(elems, p.parseExpression(precNone))
		if !p.eat(token.Comma) {
			break
		}
	}
	end, ok := p.expect(token.RBracket, diag.SynUnclosedBracket, "expected ']' to close array literal")
	span := tok.Span
	if ok {
		span = span.Cover(end.Span)
	}
	return p.arenas.Exprs.NewArray(span, elems)
}

// ===== инфиксы =====

func parseBinary(p *Parser, left ast.ExprID, tok token.Token) ast.ExprID {
	// правую часть разбираем на приоритете оператора; правая ассоциативность
	// обеспечивается правилом `>=` в основном цикле
	right := p.parseExpression(infixParselets[tok.Kind].prec)
	span := p.arenas.Exprs.SpanOf(left).Cover(p.arenas.Exprs.SpanOf(right))
	return p.arenas.Exprs.NewBinary(span, tok.Kind, left, right)
}

func parseAssign(p *Parser, left ast.ExprID, tok token.Token) ast.ExprID {
	if !p.arenas.Exprs.IsAssignTarget(left) {
		p.errAt(diag.SynInvalidAssignTarget, p.arenas.Exprs.SpanOf(left), "Invalid assignment target")
	}
	value := p.parseExpression(precAssign)
	span := p.arenas.Exprs.SpanOf(left).Cover(p.arenas.Exprs.SpanOf(value))
	return p.arenas.Exprs.NewAssign(span, tok.Kind, left, value)
}

func parseCall(p *Parser, left ast.ExprID, _ token.Token) ast.ExprID {
	var args []ast.ExprID
	for !p.at(token.RParen) && !p.at(token.EOF) {
		args = append(args, p.parseExpression(precNone))
		if !p.eat(token.Comma) {
			break
		}
	}
	end, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' to close argument list")
	span := p.arenas.Exprs.SpanOf(left)
	if ok {
		span = span.Cover(end.Span)
	}
	return p.arenas.Exprs.NewCall(span, left, args)
}

func parseIndexAccess(p *Parser, left ast.ExprID, _ token.Token) ast.ExprID {
	index := p.parseExpression(precNone)
	end, ok := p.expect(token.RBracket, diag.SynUnclosedBracket, "expected ']' to close index access")
	span := p.arenas.Exprs.SpanOf(left)
	if ok {
		span = span.Cover(end.Span)
	}
	return p.arenas.Exprs.NewMember(span, left, index, true)
}

func parseMemberAccess(p *Parser, left ast.ExprID, _ token.Token) ast.ExprID {
	nameTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected property name after '.'")
	if !ok {
		return p.arenas.Exprs.NewBad(p.arenas.Exprs.SpanOf(left))
	}
	prop := p.arenas.Exprs.NewIdent(nameTok.Span, p.arenas.Strings.Intern(nameTok.Text))
	span := p.arenas.Exprs.SpanOf(left).Cover(nameTok.Span)
	return p.arenas.Exprs.NewMember(span, left, prop, false)
}

// parseColonPair превращает `name: value` посреди выражения в объект с
// одним свойством — так инлайновые пары работают внутри бинарных выражений
// и списков аргументов.
func parseColonPair(p *Parser, left ast.ExprID, tok token.Token) ast.ExprID {
	ident, ok := p.arenas.Exprs.Ident(left)
	if !ok {
		p.errAt(diag.SynUnexpectedToken, tok.Span, "property name expected before ':'")
		return p.arenas.Exprs.NewBad(tok.Span)
	}
	value := p.parseExpression(precNone)
	span := p.arenas.Exprs.SpanOf(left).Cover(p.arenas.Exprs.SpanOf(value))
	field := ast.ObjectField{
		Name:     ident.Name,
		NameSpan: p.arenas.Exprs.SpanOf(left),
		Value:    value,
	}
	return p.arenas.Exprs.NewObject(span, []ast.ObjectField{field})
}

// tokenLabel даёт человекочитаемое имя токена для сообщений.
func tokenLabel(tok token.Token) string {
	if tok.Text != "" && !tok.IsLayout() {
		return tok.Text
	}
	switch tok.Kind {
	case token.EOF:
		return "end of file"
	case token.Newline:
		return "end of line"
	case token.Indent:
		return "indent"
	case token.Dedent:
		return "dedent"
	default:
		return strings.ToLower(tok.Kind.String())
	}
}
