package lexer

import (
	"ave/internal/diag"
	"ave/internal/token"
)

// Строки ограничиваются парной ' или ". Переводы строк внутри допустимы.
// Экранирование не обрабатывается — payload это сырой внутренний текст.
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	quote := lx.cursor.Bump() // открывающая кавычка
	for !lx.cursor.EOF() {
		b := lx.cursor.Bump()
		if b == quote {
			sp := lx.cursor.SpanFrom(start)
			return token.Token{Kind: token.StrLit, Span: sp, Text: lx.text(sp)}
		}
	}
	// EOF без закрывающей кавычки
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnterminatedString, sp, "Unterminated string literal")
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
}
