package lexer

import (
	"ave/internal/diag"
	"ave/internal/source"
	"ave/internal/token"
)

// Lexer превращает байты файла в поток токенов, включая синтетические
// Newline/Indent/Dedent. Внутри скобок layout не производится.
type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options

	look    *token.Token  // 1 элементный буфер для токена
	pending []token.Token // очередь layout-токенов, выдаётся раньше сканера

	indents  []uint32 // стек ширин отступов, всегда начинается с [0]
	brackets []byte   // стек открытых скобок: '(', '[', '{'

	atLineStart bool
	lastKind    token.Kind // последний выданный kind — для склейки Newline
	eofFlushed  bool
	hasError    bool
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:        file,
		cursor:      NewCursor(file),
		opts:        opts,
		indents:     []uint32{0},
		atLineStart: true,
		lastKind:    token.Newline, // в начале файла Newline не выдаём
	}
}

// HasError reports whether any lexical error was recorded so far.
func (lx *Lexer) HasError() bool { return lx.hasError }

// Next возвращает следующий токен. После EOF всегда возвращает EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}
	tok := lx.next()
	lx.lastKind = tok.Kind
	return tok
}

// Peek возвращает следующий токен, не потребляя его.
func (lx *Lexer) Peek() token.Token {
	t := lx.Next()
	lx.look = &t
	return t
}

func (lx *Lexer) next() token.Token {
	// 1) Очередь layout-токенов всегда в приоритете.
	if len(lx.pending) > 0 {
		tok := lx.pending[0]
		lx.pending = lx.pending[1:]
		return tok
	}

	// 2) В начале физической строки (вне скобок) — измерить отступ.
	if lx.atLineStart && len(lx.brackets) == 0 {
		if tok, ok := lx.scanLayout(); ok {
			return tok
		}
	}

	// 3) Пропустить незначащие пробелы, комментарии и переводы строк внутри скобок.
	for !lx.cursor.EOF() {
		switch lx.cursor.Peek() {
		case ' ', '\t', '\r':
			lx.cursor.Bump()
			continue
		case '#':
			lx.skipComment()
			continue
		case '\n':
			if len(lx.brackets) > 0 {
				// внутри скобок \n — просто пробел
				lx.cursor.Bump()
				continue
			}
			return lx.scanNewline()
		}
		break
	}

	// 4) EOF: добить Dedent-ы, затем Newline, затем EOF.
	if lx.cursor.EOF() {
		return lx.flushEOF()
	}

	// 5) Выбрать сканер по первому байту.
	ch := lx.cursor.Peek()
	switch {
	case isIdentStartByte(ch):
		return lx.scanIdentOrKeyword()
	case isDec(ch):
		return lx.scanNumber()
	case ch == '\'' || ch == '"':
		return lx.scanString()
	default:
		return lx.scanOperatorOrPunct()
	}
}

// scanNewline потребляет \n вне скобок и выдаёт Newline с учётом склейки:
// после Newline/Indent/Dedent повторный Newline не выдаётся.
func (lx *Lexer) scanNewline() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '\n'
	lx.atLineStart = true
	if lx.lastKind == token.Newline || lx.lastKind == token.Indent || lx.lastKind == token.Dedent {
		return lx.next()
	}
	return token.Token{Kind: token.Newline, Span: lx.cursor.SpanFrom(start), Text: "\n"}
}

func (lx *Lexer) skipComment() {
	for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
		lx.cursor.Bump()
	}
}

// flushEOF синтезирует хвост потока: Dedent до нулевого отступа,
// одиночный Newline и затем EOF навсегда.
func (lx *Lexer) flushEOF() token.Token {
	if !lx.eofFlushed {
		lx.eofFlushed = true
		sp := lx.emptySpan()
		for len(lx.indents) > 1 {
			lx.indents = lx.indents[:len(lx.indents)-1]
			lx.pending = append(lx.pending, token.Token{Kind: token.Dedent, Span: sp})
		}
		if lx.lastKind != token.Newline || len(lx.pending) > 0 {
			lx.pending = append(lx.pending, token.Token{Kind: token.Newline, Span: sp})
		}
		lx.pending = append(lx.pending, token.Token{Kind: token.EOF, Span: sp})
		return lx.next()
	}
	return token.Token{Kind: token.EOF, Span: lx.emptySpan()}
}

// scanLayout измеряет ведущий отступ строки и выдаёт Indent/Dedent.
// Пустые и состоящие из одного комментария строки layout не создают.
// Возвращает (tok, true), если layout-токен был синтезирован.
func (lx *Lexer) scanLayout() (token.Token, bool) {
	start := lx.cursor.Mark()
	width := uint32(0)
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == ' ' || b == '\t' {
			// таб считается за одну колонку — фиксированная политика
			width++
			lx.cursor.Bump()
			continue
		}
		break
	}

	// Строка без кода: не трогаем стек отступов.
	if lx.cursor.EOF() || lx.cursor.Peek() == '\n' || lx.cursor.Peek() == '#' {
		if lx.cursor.Peek() == '#' {
			lx.skipComment()
		}
		if !lx.cursor.EOF() {
			lx.cursor.Bump() // '\n'
		}
		if lx.cursor.EOF() {
			lx.atLineStart = false
			return token.Token{}, false
		}
		return lx.scanLayout()
	}

	lx.atLineStart = false
	sp := lx.cursor.SpanFrom(start)
	top := lx.indents[len(lx.indents)-1]

	switch {
	case width > top:
		lx.indents = append(lx.indents, width)
		return token.Token{Kind: token.Indent, Span: sp}, true
	case width < top:
		count := 0
		for width < lx.indents[len(lx.indents)-1] {
			lx.indents = lx.indents[:len(lx.indents)-1]
			count++
		}
		if width != lx.indents[len(lx.indents)-1] {
			lx.errLex(diag.LexInconsistentDedent, sp, "inconsistent dedent")
		}
		for i := 1; i < count; i++ {
			lx.pending = append(lx.pending, token.Token{Kind: token.Dedent, Span: sp})
		}
		return token.Token{Kind: token.Dedent, Span: sp}, true
	default:
		return token.Token{}, false
	}
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

func (lx *Lexer) text(sp source.Span) string {
	return string(lx.file.Content[sp.Start:sp.End])
}
