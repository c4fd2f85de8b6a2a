package ast

import (
	"ave/internal/source"
	"ave/internal/types"
)

// HoistKind distinguishes hoisted declaration entries.
type HoistKind uint8

const (
	// HoistFunc is a function declaration visible throughout its scope.
	HoistFunc HoistKind = iota
	// HoistVar is a 'var' binding hoisted to the enclosing function body.
	HoistVar
)

// HoistedDecl is one entry of Body.Decls: a symbol visible throughout the
// scope regardless of textual order. Парсер заполняет список до чекера.
type HoistedDecl struct {
	Kind HoistKind
	Name source.StringID
	Span source.Span
	Stmt StmtID
	Type types.TypeID // сигнатура функции или аннотация var; может быть infer
}

// Body carries an ordered statement list plus the hoisted declarations.
type Body struct {
	Span  source.Span
	Stmts []StmtID
	Decls []HoistedDecl
}

// Bodies manages allocation of bodies.
type Bodies struct {
	Arena *Arena[Body]
}

func NewBodies(capHint uint) *Bodies {
	if capHint == 0 {
		capHint = 1 << 6
	}
	return &Bodies{
		Arena: NewArena[Body](capHint),
	}
}

// New allocates an empty body.
func (b *Bodies) New(span source.Span) BodyID {
	return BodyID(b.Arena.Allocate(Body{Span: span}))
}

// Get returns the body with the given ID.
func (b *Bodies) Get(id BodyID) *Body {
	return b.Arena.Get(uint32(id))
}

// Push appends a statement to the body.
func (b *Bodies) Push(id BodyID, stmt StmtID) {
	body := b.Get(id)
	body.Stmts = append(body.Stmts, stmt)
}

// Hoist appends a hoisted declaration entry to the body.
func (b *Bodies) Hoist(id BodyID, decl HoistedDecl) {
	body := b.Get(id)
	body.Decls = append(body.Decls, decl)
}
