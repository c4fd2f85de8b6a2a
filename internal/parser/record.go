package parser

import (
	"ave/internal/ast"
	"ave/internal/diag"
	"ave/internal/source"
	"ave/internal/token"
	"ave/internal/types"
)

// parseRecordDecl разбирает декларацию записи:
// `record NAME ('<' NAME (',' NAME)* '>')? ':'? INDENT (NAME ':' type)+ DEDENT`.
// Тип регистрируется сразу, чтобы последующие аннотации в файле находили его
// по имени; с формалами запись ведёт себя как generic.
func (p *Parser) parseRecordDecl() (ast.StmtID, bool) {
	recTok := p.advance() // 'record'
	nameTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected record name after 'record'")
	if !ok {
		return ast.NoStmtID, false
	}
	name := p.arenas.Strings.Intern(nameTok.Text)

	// необязательный список формальных параметров
	var formals []source.StringID
	if p.eat(token.Lt) {
		for {
			formalTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected type parameter name")
			if !ok {
				break
			}
			formals = append(formals, p.arenas.Strings.Intern(formalTok.Text))
			if !p.eat(token.Comma) {
				break
			}
		}
		p.expect(token.Gt, diag.SynUnexpectedToken, "expected '>' to close type parameter list")
	}

	var recType types.TypeID
	if len(formals) > 0 {
		recType = p.reg.RegisterGeneric(name, formals)
		info, _ := p.reg.GenericInfo(recType)
		p.typeParams = make(map[source.StringID]types.TypeID, len(formals))
		for i, formal := range formals {
			p.typeParams[formal] = info.Params[i]
		}
		defer func() { p.typeParams = nil }()
	} else {
		recType = p.reg.RegisterRecord(name, nameTok.Span)
	}
	if p.declared == nil {
		p.declared = make(map[source.StringID]types.TypeID)
	}
	p.declared[name] = recType

	fields, props := p.parseRecordFields()
	if len(fields) == 0 {
		p.errAt(diag.SynEmptyRecord, nameTok.Span, "record must declare at least one property")
	}
	if len(formals) > 0 {
		p.reg.SetGenericProps(recType, props)
	} else {
		p.reg.SetRecordProps(recType, props)
	}

	span := recTok.Span.Cover(p.lastSpan)
	return p.arenas.Stmts.NewRecord(span, ast.StmtRecordData{
		Name:       name,
		NameSpan:   nameTok.Span,
		TypeParams: formals,
		Fields:     fields,
		Type:       ast.TypeInfo{Span: nameTok.Span, Type: recType},
	}), true
}

// parseRecordFields читает тело записи: `NAME ':' type` по одному на строку.
func (p *Parser) parseRecordFields() ([]ast.RecordField, []types.Prop) {
	p.eat(token.Colon)
	p.eat(token.Newline)
	if _, ok := p.expect(token.Indent, diag.SynExpectIndent, "expected an indented record body"); !ok {
		return nil, nil
	}

	var fields []ast.RecordField
	var props []types.Prop
	for !p.at(token.Dedent) && !p.at(token.EOF) {
		if p.eat(token.Newline) {
			continue
		}
		nameTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected property name in record body")
		if !ok {
			p.resync()
			continue
		}
		if _, ok := p.expect(token.Colon, diag.SynExpectColon, "expected ':' after property name"); !ok {
			p.resync()
			continue
		}
		info := p.parseTypeInfo()
		fieldName := p.arenas.Strings.Intern(nameTok.Text)
		fields = append(fields, ast.RecordField{
			Name:     fieldName,
			NameSpan: nameTok.Span,
			Type:     info,
		})
		props = append(props, types.Prop{Name: fieldName, Type: info.Type})
	}
	p.eat(token.Dedent)
	return fields, props
}
