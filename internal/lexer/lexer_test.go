package lexer_test

import (
	"testing"

	"ave/internal/diag"
	"ave/internal/lexer"
	"ave/internal/source"
	"ave/internal/token"
)

// makeTestLexer создаёт лексер для тестовой строки
func makeTestLexer(input string) (*lexer.Lexer, *diag.Bag) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.ave", []byte(input))
	file := fs.Get(fileID)

	bag := diag.NewBag(32)
	lx := lexer.New(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
	return lx, bag
}

// collectAllTokens собирает все токены до EOF
func collectAllTokens(lx *lexer.Lexer) []token.Token {
	tokens := make([]token.Token, 0)
	for {
		tok := lx.Next()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	return tokens
}

// expectKinds проверяет последовательность типов токенов
func expectKinds(t *testing.T, input string, expected []token.Kind) []token.Token {
	t.Helper()
	lx, bag := makeTestLexer(input)
	tokens := collectAllTokens(lx)

	if len(tokens) != len(expected) {
		t.Fatalf("input %q: got %d tokens, want %d\n%v\nbag: %v",
			input, len(tokens), len(expected), kindsOf(tokens), bag.Items())
	}
	for i, tok := range tokens {
		if tok.Kind != expected[i] {
			t.Errorf("input %q: token %d is %s, want %s", input, i, tok.Kind, expected[i])
		}
	}
	return tokens
}

func kindsOf(tokens []token.Token) []token.Kind {
	kinds := make([]token.Kind, 0, len(tokens))
	for _, tok := range tokens {
		kinds = append(kinds, tok.Kind)
	}
	return kinds
}

func TestSimpleTokens(t *testing.T) {
	expectKinds(t, "let a = 1", []token.Kind{
		token.KwLet, token.Ident, token.Assign, token.NumLit,
		token.Newline, token.EOF,
	})
}

func TestKeywordsAndPrimitives(t *testing.T) {
	cases := map[string]token.Kind{
		"var":    token.KwVar,
		"let":    token.KwLet,
		"const":  token.KwConst,
		"func":   token.KwFunc,
		"record": token.KwRecord,
		"if":     token.KwIf,
		"elif":   token.KwElif,
		"else":   token.KwElse,
		"while":  token.KwWhile,
		"for":    token.KwFor,
		"return": token.KwReturn,
		"true":   token.KwTrue,
		"false":  token.KwFalse,
		"and":    token.KwAnd,
		"or":     token.KwOr,
		"is":     token.KwIs,
		"num":    token.KwNum,
		"str":    token.KwStr,
		"bool":   token.KwBool,
		"any":    token.KwAny,
		"object": token.KwObject,
		"void":   token.KwVoid,
	}
	for text, kind := range cases {
		expectKinds(t, text, []token.Kind{kind, token.Newline, token.EOF})
	}

	// регистр имеет значение
	expectKinds(t, "Let", []token.Kind{token.Ident, token.Newline, token.EOF})
}

func TestNumberLiterals(t *testing.T) {
	toks := expectKinds(t, "1.5e+2", []token.Kind{token.NumLit, token.Newline, token.EOF})
	if toks[0].Num != 150 {
		t.Errorf("1.5e+2 parsed as %v, want 150", toks[0].Num)
	}

	toks = expectKinds(t, "0x1F", []token.Kind{token.HexLit, token.Newline, token.EOF})
	if toks[0].Text != "0x1F" {
		t.Errorf("hex literal text %q, want 0x1F", toks[0].Text)
	}
	expectKinds(t, "0b1010", []token.Kind{token.BinLit, token.Newline, token.EOF})
}

func TestBadHexLiteral(t *testing.T) {
	lx, bag := makeTestLexer("0x")
	collectAllTokens(lx)
	if !bag.HasErrors() {
		t.Fatal("expected an error for 0x without digits")
	}
	if bag.Items()[0].Code != diag.LexBadNumber {
		t.Errorf("got code %v, want LexBadNumber", bag.Items()[0].Code)
	}
}

func TestIdentAfterNumber(t *testing.T) {
	lx, bag := makeTestLexer("1abc")
	collectAllTokens(lx)
	if !bag.HasErrors() {
		t.Fatal("expected an error for identifier adjacent to number")
	}
	if got := bag.Items()[0].Message; got != "Identifier starts immediately after number literal" {
		t.Errorf("unexpected message: %q", got)
	}
}

func TestStringLiterals(t *testing.T) {
	toks := expectKinds(t, `x = "hi there"`, []token.Kind{
		token.Ident, token.Assign, token.StrLit, token.Newline, token.EOF,
	})
	if toks[2].Text != `"hi there"` {
		t.Errorf("string text %q", toks[2].Text)
	}

	// одинарные кавычки равнозначны
	expectKinds(t, "x = 'hi'", []token.Kind{
		token.Ident, token.Assign, token.StrLit, token.Newline, token.EOF,
	})
}

func TestUnterminatedString(t *testing.T) {
	lx, bag := makeTestLexer(`x = "hello`)
	collectAllTokens(lx)
	if !bag.HasErrors() {
		t.Fatal("expected an error for unterminated string")
	}
	d := bag.Items()[0]
	if d.Code != diag.LexUnterminatedString {
		t.Errorf("got code %v, want LexUnterminatedString", d.Code)
	}
	if d.Code.Kind() != diag.KindSyntaxError {
		t.Errorf("got kind %v, want SyntaxError", d.Code.Kind())
	}
	if d.Message != "Unterminated string literal" {
		t.Errorf("unexpected message: %q", d.Message)
	}
}

func TestGreedyOperators(t *testing.T) {
	expectKinds(t, "a **= b //= c ** d // e -> f ++ --", []token.Kind{
		token.Ident, token.StarStarAssign, token.Ident, token.SlashSlashAssign,
		token.Ident, token.StarStar, token.Ident, token.SlashSlash,
		token.Ident, token.Arrow, token.Ident, token.PlusPlus, token.MinusMinus,
		token.Newline, token.EOF,
	})
	expectKinds(t, "a <= b >= c == d != e", []token.Kind{
		token.Ident, token.LtEq, token.Ident, token.GtEq, token.Ident,
		token.EqEq, token.Ident, token.BangEq, token.Ident,
		token.Newline, token.EOF,
	})
}

func TestComments(t *testing.T) {
	expectKinds(t, "a = 1 # trailing comment\nb = 2", []token.Kind{
		token.Ident, token.Assign, token.NumLit, token.Newline,
		token.Ident, token.Assign, token.NumLit, token.Newline, token.EOF,
	})
	// строка из одного комментария не рождает layout
	expectKinds(t, "a = 1\n  # indented comment\nb = 2", []token.Kind{
		token.Ident, token.Assign, token.NumLit, token.Newline,
		token.Ident, token.Assign, token.NumLit, token.Newline, token.EOF,
	})
}

func TestIndentDedent(t *testing.T) {
	src := "while k\n  k -= 1\ndone"
	expectKinds(t, src, []token.Kind{
		token.KwWhile, token.Ident, token.Newline,
		token.Indent, token.Ident, token.MinusAssign, token.NumLit, token.Newline,
		token.Dedent, token.Ident, token.Newline, token.EOF,
	})
}

func TestNestedDedentAtEOF(t *testing.T) {
	src := "if a\n  if b\n    c"
	toks := expectKinds(t, src, []token.Kind{
		token.KwIf, token.Ident, token.Newline,
		token.Indent, token.KwIf, token.Ident, token.Newline,
		token.Indent, token.Ident,
		token.Dedent, token.Dedent, token.Newline, token.EOF,
	})

	// инвариант: Indent-ов столько же, сколько Dedent-ов
	indents, dedents := 0, 0
	for _, tok := range toks {
		switch tok.Kind {
		case token.Indent:
			indents++
		case token.Dedent:
			dedents++
		}
	}
	if indents != dedents {
		t.Errorf("indent/dedent mismatch: %d vs %d", indents, dedents)
	}
}

func TestInconsistentDedent(t *testing.T) {
	lx, bag := makeTestLexer("if a\n    b\n  c")
	collectAllTokens(lx)
	if !bag.HasErrors() {
		t.Fatal("expected inconsistent dedent error")
	}
	if bag.Items()[0].Message != "inconsistent dedent" {
		t.Errorf("unexpected message: %q", bag.Items()[0].Message)
	}
}

func TestLayoutSuppressedInsideBrackets(t *testing.T) {
	src := "f(\n  1,\n  2,\n)"
	expectKinds(t, src, []token.Kind{
		token.Ident, token.LParen, token.NumLit, token.Comma,
		token.NumLit, token.Comma, token.RParen,
		token.Newline, token.EOF,
	})
}

func TestNewlineCoalescing(t *testing.T) {
	expectKinds(t, "a\n\n\nb", []token.Kind{
		token.Ident, token.Newline, token.Ident, token.Newline, token.EOF,
	})
}

func TestMismatchedBracket(t *testing.T) {
	lx, bag := makeTestLexer("a = (1]")
	collectAllTokens(lx)
	if !bag.HasErrors() {
		t.Fatal("expected mismatched bracket error")
	}
	if bag.Items()[0].Code != diag.LexUnbalancedBracket {
		t.Errorf("got code %v, want LexUnbalancedBracket", bag.Items()[0].Code)
	}
}

func TestTokenTextMatchesSpan(t *testing.T) {
	src := "let answer = 40 + 2 # meaning\n"
	lx, _ := makeTestLexer(src)
	for _, tok := range collectAllTokens(lx) {
		if tok.IsLayout() || tok.Kind == token.EOF {
			continue
		}
		if got := src[tok.Span.Start:tok.Span.End]; got != tok.Text {
			t.Errorf("token %s: span text %q != token text %q", tok.Kind, got, tok.Text)
		}
	}
}
