package lexer

import (
	"strconv"

	"ave/internal/diag"
	"ave/internal/token"
)

// Поддержка: 0, 123, 1.5, 1e-3, 1.0e+10, 0x1F, 0b1010.
// Десятичные литералы сразу парсятся в float64 (Token.Num);
// hex/binary сохраняют текст с префиксом для эмиттера.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()

	// база 0x / 0b?
	if lx.cursor.Peek() == '0' {
		b0, b1, ok := lx.cursor.Peek2()
		if ok && b0 == '0' && (b1 == 'x' || b1 == 'X') {
			return lx.scanRadix(start, token.HexLit, isHex, "expected hexadecimal digit after '0x'")
		}
		if ok && b0 == '0' && (b1 == 'b' || b1 == 'B') {
			return lx.scanRadix(start, token.BinLit, isBin, "expected binary digit after '0b'")
		}
	}

	// целая часть
	for isDec(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}

	// дробная часть: '.' за которым цифра
	if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '.' && isDec(b1) {
		lx.cursor.Bump() // '.'
		for isDec(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
	}

	// экспонента
	if lx.cursor.Peek() == 'e' || lx.cursor.Peek() == 'E' {
		// только если дальше цифра или знак с цифрой
		b1 := lx.cursor.PeekAt(1)
		b2 := lx.cursor.PeekAt(2)
		if isDec(b1) || ((b1 == '+' || b1 == '-') && isDec(b2)) {
			lx.cursor.Bump() // e/E
			if lx.cursor.Peek() == '+' || lx.cursor.Peek() == '-' {
				lx.cursor.Bump()
			}
			for isDec(lx.cursor.Peek()) {
				lx.cursor.Bump()
			}
		}
	}

	sp := lx.cursor.SpanFrom(start)
	text := lx.text(sp)

	lx.checkAdjacentIdent()

	value, err := strconv.ParseFloat(text, 64)
	if err != nil {
		lx.errLex(diag.LexBadNumber, sp, "malformed number literal")
		return token.Token{Kind: token.Invalid, Span: sp, Text: text}
	}
	return token.Token{Kind: token.NumLit, Span: sp, Text: text, Num: value}
}

// scanRadix читает 0x/0b литерал; требуется хотя бы одна цифра базы.
func (lx *Lexer) scanRadix(start Mark, kind token.Kind, digit func(byte) bool, errMsg string) token.Token {
	lx.cursor.Bump() // '0'
	lx.cursor.Bump() // 'x' | 'b'
	n := 0
	for digit(lx.cursor.Peek()) {
		lx.cursor.Bump()
		n++
	}
	sp := lx.cursor.SpanFrom(start)
	text := lx.text(sp)
	if n == 0 {
		lx.errLex(diag.LexBadNumber, sp, errMsg)
		return token.Token{Kind: token.Invalid, Span: sp, Text: text}
	}
	lx.checkAdjacentIdent()
	return token.Token{Kind: kind, Span: sp, Text: text}
}

// Идентификатор вплотную к числовому литералу — ошибка ("1abc").
func (lx *Lexer) checkAdjacentIdent() {
	if lx.cursor.EOF() || !isIdentStartByte(lx.cursor.Peek()) {
		return
	}
	start := lx.cursor.Mark()
	for !lx.cursor.EOF() && isIdentContinueByte(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	lx.errLex(diag.LexIdentAfterNumber, lx.cursor.SpanFrom(start),
		"Identifier starts immediately after number literal")
}
