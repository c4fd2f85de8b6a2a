package token

var keywords = map[string]Kind{
	"var":    KwVar,
	"let":    KwLet,
	"const":  KwConst,
	"func":   KwFunc,
	"record": KwRecord,
	"if":     KwIf,
	"elif":   KwElif,
	"else":   KwElse,
	"while":  KwWhile,
	"for":    KwFor,
	"return": KwReturn,
	"true":   KwTrue,
	"false":  KwFalse,
	"and":    KwAnd,
	"or":     KwOr,
	"is":     KwIs,
	"num":    KwNum,
	"str":    KwStr,
	"bool":   KwBool,
	"any":    KwAny,
	"object": KwObject,
	"void":   KwVoid,
}

// LookupKeyword возвращает тип и bool если это ключевое слово.
// Ключевые слова регистрозависимые — только lowercase версии распознаются.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}
