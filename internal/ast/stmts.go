package ast

import (
	"ave/internal/source"
)

type StmtExprData struct {
	Expr ExprID
}

// VarDeclarator is one `name [: type] [= init]` entry of a declaration.
type VarDeclarator struct {
	Name     source.StringID
	NameSpan source.Span
	Type     TypeInfo
	Init     ExprID // NoExprID если инициализатора нет
}

type StmtVarDeclData struct {
	Kind  DeclKind
	Decls []VarDeclarator
}

type StmtIfData struct {
	Cond ExprID
	Then BodyID
	Else BodyID // NoBodyID если ветки else нет; elif — вложенный if внутри else
}

type StmtWhileData struct {
	Cond ExprID
	Body BodyID
}

// StmtForData is the numeric counter loop `for name = start, stop[, step]`.
type StmtForData struct {
	Name     source.StringID
	NameSpan source.Span
	Start    ExprID
	Stop     ExprID
	Step     ExprID // NoExprID если шаг не задан
	Body     BodyID
}

type StmtReturnData struct {
	Value ExprID // NoExprID для пустого return
}

type StmtFnDeclData struct {
	Name     source.StringID
	NameSpan source.Span
	Fn       ExprID // ExprFn с параметрами и телом
}

// RecordField is one `name: type` property of a record declaration.
type RecordField struct {
	Name     source.StringID
	NameSpan source.Span
	Type     TypeInfo
}

type StmtRecordData struct {
	Name       source.StringID
	NameSpan   source.Span
	TypeParams []source.StringID
	Fields     []RecordField
	Type       TypeInfo // тип записи, зарегистрированный парсером
}

// Stmts manages allocation of statements.
type Stmts struct {
	Arena    *Arena[Stmt]
	Exprs    *Arena[StmtExprData]
	VarDecls *Arena[StmtVarDeclData]
	Ifs      *Arena[StmtIfData]
	Whiles   *Arena[StmtWhileData]
	Fors     *Arena[StmtForData]
	Returns  *Arena[StmtReturnData]
	FnDecls  *Arena[StmtFnDeclData]
	Records  *Arena[StmtRecordData]
}

// NewStmts creates per-kind arenas preallocated using capHint.
func NewStmts(capHint uint) *Stmts {
	if capHint == 0 {
		capHint = 1 << 7
	}
	return &Stmts{
		Arena:    NewArena[Stmt](capHint),
		Exprs:    NewArena[StmtExprData](capHint),
		VarDecls: NewArena[StmtVarDeclData](capHint),
		Ifs:      NewArena[StmtIfData](capHint),
		Whiles:   NewArena[StmtWhileData](capHint),
		Fors:     NewArena[StmtForData](capHint),
		Returns:  NewArena[StmtReturnData](capHint),
		FnDecls:  NewArena[StmtFnDeclData](capHint),
		Records:  NewArena[StmtRecordData](capHint),
	}
}

func (s *Stmts) new(kind StmtKind, span source.Span, payload PayloadID) StmtID {
	return StmtID(s.Arena.Allocate(Stmt{
		Kind:    kind,
		Span:    span,
		Payload: payload,
	}))
}

// Get returns the statement header with the given ID.
func (s *Stmts) Get(id StmtID) *Stmt {
	return s.Arena.Get(uint32(id))
}

// NewExpr creates an expression statement.
func (s *Stmts) NewExpr(span source.Span, expr ExprID) StmtID {
	payload := s.Exprs.Allocate(StmtExprData{Expr: expr})
	return s.new(StmtExpr, span, PayloadID(payload))
}

// Expr returns the expression statement payload.
func (s *Stmts) Expr(id StmtID) (*StmtExprData, bool) {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != StmtExpr {
		return nil, false
	}
	return s.Exprs.Get(uint32(stmt.Payload)), true
}

// NewVarDecl creates a declaration statement.
func (s *Stmts) NewVarDecl(span source.Span, kind DeclKind, decls []VarDeclarator) StmtID {
	payload := s.VarDecls.Allocate(StmtVarDeclData{Kind: kind, Decls: decls})
	return s.new(StmtVarDecl, span, PayloadID(payload))
}

// VarDecl returns the declaration payload.
func (s *Stmts) VarDecl(id StmtID) (*StmtVarDeclData, bool) {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != StmtVarDecl {
		return nil, false
	}
	return s.VarDecls.Get(uint32(stmt.Payload)), true
}

// NewIf creates an if statement.
func (s *Stmts) NewIf(span source.Span, cond ExprID, then, els BodyID) StmtID {
	payload := s.Ifs.Allocate(StmtIfData{Cond: cond, Then: then, Else: els})
	return s.new(StmtIf, span, PayloadID(payload))
}

// If returns the if payload.
func (s *Stmts) If(id StmtID) (*StmtIfData, bool) {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != StmtIf {
		return nil, false
	}
	return s.Ifs.Get(uint32(stmt.Payload)), true
}

// NewWhile creates a while statement.
func (s *Stmts) NewWhile(span source.Span, cond ExprID, body BodyID) StmtID {
	payload := s.Whiles.Allocate(StmtWhileData{Cond: cond, Body: body})
	return s.new(StmtWhile, span, PayloadID(payload))
}

// While returns the while payload.
func (s *Stmts) While(id StmtID) (*StmtWhileData, bool) {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != StmtWhile {
		return nil, false
	}
	return s.Whiles.Get(uint32(stmt.Payload)), true
}

// NewFor creates a numeric for statement.
func (s *Stmts) NewFor(span source.Span, data StmtForData) StmtID {
	payload := s.Fors.Allocate(data)
	return s.new(StmtFor, span, PayloadID(payload))
}

// For returns the for payload.
func (s *Stmts) For(id StmtID) (*StmtForData, bool) {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != StmtFor {
		return nil, false
	}
	return s.Fors.Get(uint32(stmt.Payload)), true
}

// NewReturn creates a return statement.
func (s *Stmts) NewReturn(span source.Span, value ExprID) StmtID {
	payload := s.Returns.Allocate(StmtReturnData{Value: value})
	return s.new(StmtReturn, span, PayloadID(payload))
}

// Return returns the return payload.
func (s *Stmts) Return(id StmtID) (*StmtReturnData, bool) {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != StmtReturn {
		return nil, false
	}
	return s.Returns.Get(uint32(stmt.Payload)), true
}

// NewFnDecl creates a function declaration statement.
func (s *Stmts) NewFnDecl(span source.Span, name source.StringID, nameSpan source.Span, fn ExprID) StmtID {
	payload := s.FnDecls.Allocate(StmtFnDeclData{Name: name, NameSpan: nameSpan, Fn: fn})
	return s.new(StmtFnDecl, span, PayloadID(payload))
}

// FnDecl returns the function declaration payload.
func (s *Stmts) FnDecl(id StmtID) (*StmtFnDeclData, bool) {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != StmtFnDecl {
		return nil, false
	}
	return s.FnDecls.Get(uint32(stmt.Payload)), true
}

// NewRecord creates a record declaration statement.
func (s *Stmts) NewRecord(span source.Span, data StmtRecordData) StmtID {
	payload := s.Records.Allocate(data)
	return s.new(StmtRecord, span, PayloadID(payload))
}

// Record returns the record declaration payload.
func (s *Stmts) Record(id StmtID) (*StmtRecordData, bool) {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != StmtRecord {
		return nil, false
	}
	return s.Records.Get(uint32(stmt.Payload)), true
}

// NewBad creates the sentinel error statement.
func (s *Stmts) NewBad(span source.Span) StmtID {
	return s.new(StmtBad, span, NoPayloadID)
}
