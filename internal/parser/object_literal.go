package parser

import (
	"ave/internal/ast"
	"ave/internal/diag"
	"ave/internal/token"
)

// Объектные литералы. Две формы:
//   - отступная: INDENT (name ':' expr)+ DEDENT, пары разделяются
//     переводом строки или запятой;
//   - инлайновая: '{' name ':' expr (',' ...)? '}'.
// Внутри фигурных скобок лексер подавляет layout, так что инлайновая форма
// свободно переносится по строкам.

func parseIndentObject(p *Parser, tok token.Token) ast.ExprID {
	fields := p.parseObjectFields(token.Dedent)
	endTok, _ := p.expect(token.Dedent, diag.SynExpectDedent, "expected dedent to close object literal")
	span := tok.Span.Cover(endTok.Span)
	return p.arenas.Exprs.NewObject(span, fields)
}

func parseBraceObject(p *Parser, tok token.Token) ast.ExprID {
	fields := p.parseObjectFields(token.RBrace)
	end, ok := p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close object literal")
	span := tok.Span
	if ok {
		span = span.Cover(end.Span)
	}
	return p.arenas.Exprs.NewObject(span, fields)
}

// parseObjectFields читает пары `name ':' expr` до терминатора.
func (p *Parser) parseObjectFields(until token.Kind) []ast.ObjectField {
	var fields []ast.ObjectField
	for {
		for p.at(token.Newline) || p.at(token.Comma) {
			p.advance()
		}
		if p.at(until) || p.at(token.EOF) {
			return fields
		}

		nameTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected property name in object literal")
		if !ok {
			p.skipObjectField(until)
			continue
		}
		if _, ok := p.expect(token.Colon, diag.SynExpectColon, "expected ':' after property name"); !ok {
			p.skipObjectField(until)
			continue
		}
		value := p.parseExpression(precNone)
		fields = append(fields, ast.ObjectField{
			Name:     p.arenas.Strings.Intern(nameTok.Text),
			NameSpan: nameTok.Span,
			Value:    value,
		})

		if !p.at(token.Newline) && !p.at(token.Comma) {
			return fields
		}
	}
}

// skipObjectField пропускает повреждённую пару до разделителя.
func (p *Parser) skipObjectField(until token.Kind) {
	for {
		switch p.peek().Kind {
		case token.Newline, token.Comma:
			p.advance()
			return
		case until, token.EOF:
			return
		default:
			p.advance()
		}
	}
}
