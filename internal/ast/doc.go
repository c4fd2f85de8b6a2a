// Package ast models the syntax tree as a tagged sum: compact node headers
// {Kind, Span, Payload} in one arena per entity, with per-kind payload arenas
// behind typed accessors. IDs are uint32 with zero as "no node", which keeps
// the tree flat, cheap to allocate, and free of owning cycles. Bodies carry
// both the ordered statement list and the hoisted declarations the parser
// collects for the checker.
package ast
