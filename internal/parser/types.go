package parser

import (
	"ave/internal/ast"
	"ave/internal/diag"
	"ave/internal/source"
	"ave/internal/token"
	"ave/internal/types"
)

// Грамматика аннотаций типов:
//   atom  := primitive | NAME '[' ']' | NAME '<' type (',' type)* '>'
//          | NAME | '(' params ')' ('->' type)? | '{' (NAME ':' type)* '}'
//   union := atom ('|' atom)*
// Неизвестное имя становится unresolved-ссылкой, которую свяжет чекер.

// parseTypeInfo разбирает аннотацию и запоминает её span.
func (p *Parser) parseTypeInfo() ast.TypeInfo {
	startTok := p.peek()
	id := p.parseType()
	return ast.TypeInfo{Span: startTok.Span.Cover(p.lastSpan), Type: id}
}

func (p *Parser) parseType() types.TypeID {
	first := p.parseTypeAtom()
	if !p.at(token.Pipe) {
		return first
	}
	members := []types.TypeID{first}
	for p.eat(token.Pipe) {
		members = append(members, p.parseTypeAtom())
	}
	return p.reg.RegisterUnion(members)
}

func (p *Parser) parseTypeAtom() types.TypeID {
	tok := p.advance()
	builtins := p.reg.Builtins()

	switch tok.Kind {
	case token.KwNum:
		return p.arraySuffix(builtins.Num)
	case token.KwStr:
		return p.arraySuffix(builtins.Str)
	case token.KwBool:
		return p.arraySuffix(builtins.Bool)
	case token.KwAny:
		return p.arraySuffix(builtins.Any)
	case token.KwObject:
		return p.arraySuffix(builtins.Object)
	case token.KwVoid:
		return builtins.Void

	case token.Ident:
		return p.parseNamedType(tok)

	case token.LParen:
		return p.parseFnType()

	case token.LBrace:
		return p.parseObjectType()

	default:
		p.errAt(diag.SynExpectType, tok.Span, "expected a type")
		return builtins.Error
	}
}

// arraySuffix поддерживает краткую форму `T[]` → Array<T>.
func (p *Parser) arraySuffix(base types.TypeID) types.TypeID {
	if p.at(token.LBracket) && p.peekAt(1).Kind == token.RBracket {
		p.advance()
		p.advance()
		return p.reg.ArrayOf(base)
	}
	return base
}

// parseNamedType: формал generic-записи, уже объявленная запись, Array,
// generic-инстанс или unresolved-ссылка.
func (p *Parser) parseNamedType(tok token.Token) types.TypeID {
	name := p.arenas.Strings.Intern(tok.Text)

	if param, ok := p.typeParams[name]; ok {
		return p.arraySuffix(param)
	}

	// generic-инстанс: NAME '<' type (',' type)* '>'
	if p.at(token.Lt) {
		p.advance()
		var args []types.TypeID
		for {
			args = append(args, p.parseType())
			if !p.eat(token.Comma) {
				break
			}
		}
		p.expect(token.Gt, diag.SynUnexpectedToken, "expected '>' to close type arguments")

		if generic, ok := p.lookupGeneric(name); ok {
			return p.reg.Create(generic, args)
		}
		// generic ещё не объявлен — чекер инстанцирует при резолве
		return p.reg.RegisterNamedInstance(name, args)
	}

	if declared, ok := p.declared[name]; ok {
		return p.arraySuffix(declared)
	}
	return p.arraySuffix(p.reg.RegisterNamed(name))
}

func (p *Parser) lookupGeneric(name source.StringID) (types.TypeID, bool) {
	if declared, ok := p.declared[name]; ok {
		if _, isGeneric := p.reg.GenericInfo(declared); isGeneric {
			return declared, true
		}
	}
	if name == p.reg.Strings().Intern("Array") {
		return p.reg.Builtins().Array, true
	}
	return types.NoTypeID, false
}

// parseFnType: '(' (NAME ':' type | type) (',' ...)* ')' ('->' type)?.
// Без стрелки результат — void.
func (p *Parser) parseFnType() types.TypeID {
	var params []types.FnParam
	for !p.at(token.RParen) && !p.at(token.EOF) {
		var param types.FnParam
		if p.at(token.Ident) && p.peekAt(1).Kind == token.Colon {
			nameTok := p.advance()
			p.advance() // ':'
			param.Name = p.arenas.Strings.Intern(nameTok.Text)
		}
		param.Type = p.parseType()
		param.Required = true
		params = append(params, param)
		if !p.eat(token.Comma) {
			break
		}
	}
	p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' in function type")

	result := p.reg.Builtins().Void
	if p.eat(token.Arrow) {
		result = p.parseType()
	}
	return p.reg.RegisterFn(params, result)
}

// parseObjectType: '{' (NAME ':' type (','|';')?)* '}'.
func (p *Parser) parseObjectType() types.TypeID {
	var props []types.Prop
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		nameTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected property name in object type")
		if !ok {
			break
		}
		if _, ok := p.expect(token.Colon, diag.SynExpectColon, "expected ':' after property name"); !ok {
			break
		}
		props = append(props, types.Prop{
			Name: p.arenas.Strings.Intern(nameTok.Text),
			Type: p.parseType(),
		})
		if !p.eat(token.Comma) && !p.eat(token.Semicolon) {
			break
		}
	}
	p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close object type")
	return p.reg.RegisterObject(props)
}
