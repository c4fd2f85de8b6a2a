package ast

import (
	"ave/internal/source"
	"ave/internal/types"
)

// TypeInfo pairs an annotation site with its resolved type. Span is empty
// when the annotation was omitted; Type is then the infer sentinel until the
// checker substitutes the inferred type in place.
type TypeInfo struct {
	Span source.Span
	Type types.TypeID
}

// Inferred builds a TypeInfo for an omitted annotation.
func Inferred(reg *types.Registry) TypeInfo {
	return TypeInfo{Type: reg.Builtins().Infer}
}
