// Package token defines the lexical vocabulary of Ave: token kinds, the
// keyword table, and the Token struct produced by the lexer. Layout tokens
// (Newline/Indent/Dedent) are first-class kinds because the surface syntax is
// indentation-sensitive.
package token
