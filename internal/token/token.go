package token

import (
	"ave/internal/source"
)

// Token represents a single source token with its location.
// Num carries the parsed value for NumLit tokens; hex and binary literals
// keep their prefixed text so the emitter can reproduce them verbatim.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
	Num  float64
}

// IsLiteral reports whether the token is a numeric, boolean, or string literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case NumLit, StrLit, HexLit, BinLit, KwTrue, KwFalse:
		return true
	default:
		return false
	}
}

// IsLayout reports whether the token is synthesised layout.
func (t Token) IsLayout() bool {
	switch t.Kind {
	case Newline, Indent, Dedent:
		return true
	default:
		return false
	}
}

// IsPrimitiveName reports whether the token names a built-in primitive type.
func (t Token) IsPrimitiveName() bool {
	switch t.Kind {
	case KwNum, KwStr, KwBool, KwAny, KwObject, KwVoid:
		return true
	default:
		return false
	}
}

// IsKeyword reports whether the token is a language keyword.
func (t Token) IsKeyword() bool {
	switch t.Kind {
	case KwVar, KwLet, KwConst, KwFunc, KwRecord, KwIf, KwElif, KwElse,
		KwWhile, KwFor, KwReturn, KwTrue, KwFalse, KwAnd, KwOr, KwIs,
		KwNum, KwStr, KwBool, KwAny, KwObject, KwVoid:
		return true
	default:
		return false
	}
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// Terminates reports whether the token ends a simple statement.
func (t Token) Terminates() bool {
	switch t.Kind {
	case Newline, Dedent, Semicolon, EOF:
		return true
	default:
		return false
	}
}
