// Package sema implements the checker: scope construction seeded from the
// parser's hoisted declarations, in-place resolution of forward type
// references, and a single post-order typing pass over expressions with
// pre-order scope handling for statements. A failed node is typed with the
// error sentinel and downstream rules stay silent about it, so one root cause
// produces one diagnostic.
package sema
