package ast

import (
	"ave/internal/source"
)

type Hints struct{ Bodies, Stmts, Exprs uint }

// Builder объединяет арены одного разбора.
type Builder struct {
	Exprs   *Exprs
	Stmts   *Stmts
	Bodies  *Bodies
	Strings *source.Interner
}

// NewBuilder creates arenas with optional capacity hints. If strings is nil,
// a fresh interner is allocated.
func NewBuilder(hints Hints, strings *source.Interner) *Builder {
	if strings == nil {
		strings = source.NewInterner()
	}
	return &Builder{
		Exprs:   NewExprs(hints.Exprs),
		Stmts:   NewStmts(hints.Stmts),
		Bodies:  NewBodies(hints.Bodies),
		Strings: strings,
	}
}

// Program is the root of one parsed file.
type Program struct {
	File source.FileID
	Root BodyID
}
