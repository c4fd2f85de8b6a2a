// Package lexer implements the indentation-aware scanner. A single forward
// pass maintains an indent stack and a bracket stack: at the start of every
// physical line outside brackets the leading width is measured and
// Indent/Dedent tokens are synthesised; inside any (, [, { nesting newlines
// and leading whitespace are treated as plain spaces. The lexer never fails
// hard on bad input — it reports through diag.Reporter and keeps scanning.
package lexer
