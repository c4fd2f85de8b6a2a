package parser

import (
	"ave/internal/ast"
	"ave/internal/token"
)

// Таблица приоритетов. Чем больше число, тем сильнее связывание.
type precedence int

const (
	precNone precedence = iota
	precAssign
	precLogicOr
	precLogicAnd
	precBitOr
	precBitXor
	precBitAnd
	precEquality
	precComparison
	precAdd
	precMult
	precPow
	precPreUnary
	precPostUnary
	precCall
	precCompMemAccess
	precMemAccess
	precGrouping
	precMax
)

// prefixParselet разбирает выражение, начинающееся с токена tok
// (tok уже съеден).
type prefixParselet struct {
	parse func(p *Parser, tok token.Token) ast.ExprID
}

// infixParselet продолжает выражение left оператором tok (tok уже съеден).
// rightAssoc меняет правило цикла Пратта с `>` на `>=`.
type infixParselet struct {
	prec       precedence
	rightAssoc bool
	parse      func(p *Parser, left ast.ExprID, tok token.Token) ast.ExprID
}

// postfixParselet достраивает left постфиксным оператором.
type postfixParselet struct {
	prec precedence
}

var (
	prefixParselets  map[token.Kind]prefixParselet
	infixParselets   map[token.Kind]infixParselet
	postfixParselets map[token.Kind]postfixParselet
)

// Таблицы собираются в init, чтобы разорвать цикл инициализации между
// parse-функциями и самими таблицами.
func init() {
	prefixParselets = map[token.Kind]prefixParselet{
		token.NumLit:   {parseLiteral},
		token.StrLit:   {parseLiteral},
		token.HexLit:   {parseLiteral},
		token.BinLit:   {parseLiteral},
		token.KwTrue:   {parseLiteral},
		token.KwFalse:  {parseLiteral},
		token.Ident:    {parseIdent},
		token.LParen:   {parseGroupOrArrow},
		token.LBracket: {parseArrayLiteral},
		token.Indent:   {parseIndentObject},
		token.LBrace:   {parseBraceObject},
		token.KwFunc:   {parseFnExpr},

		token.Minus:      {parsePrefixUnary},
		token.Plus:       {parsePrefixUnary},
		token.Bang:       {parsePrefixUnary},
		token.PlusPlus:   {parsePrefixUnary},
		token.MinusMinus: {parsePrefixUnary},
	}

	binary := func(prec precedence) infixParselet {
		return infixParselet{prec: prec, parse: parseBinary}
	}
	assign := infixParselet{prec: precAssign, rightAssoc: true, parse: parseAssign}

	infixParselets = map[token.Kind]infixParselet{
		token.KwOr:  binary(precLogicOr),
		token.KwAnd: binary(precLogicAnd),
		token.Pipe:  binary(precBitOr),
		token.Caret: binary(precBitXor),
		token.Amp:   binary(precBitAnd),

		token.EqEq:   binary(precEquality),
		token.BangEq: binary(precEquality),
		token.KwIs:   binary(precEquality),

		token.Lt:   binary(precComparison),
		token.LtEq: binary(precComparison),
		token.Gt:   binary(precComparison),
		token.GtEq: binary(precComparison),

		token.Plus:  binary(precAdd),
		token.Minus: binary(precAdd),

		token.Star:       binary(precMult),
		token.Slash:      binary(precMult),
		token.SlashSlash: binary(precMult),
		token.Percent:    binary(precMult),

		token.StarStar: {prec: precPow, rightAssoc: true, parse: parseBinary},

		token.Assign:           assign,
		token.PlusAssign:       assign,
		token.MinusAssign:      assign,
		token.StarAssign:       assign,
		token.SlashAssign:      assign,
		token.PercentAssign:    assign,
		token.StarStarAssign:   assign,
		token.SlashSlashAssign: assign,

		token.LParen:   {prec: precCall, parse: parseCall},
		token.LBracket: {prec: precCompMemAccess, parse: parseIndexAccess},
		token.Dot:      {prec: precMemAccess, parse: parseMemberAccess},
		token.Colon:    {prec: precMax, parse: parseColonPair},
	}

	postfixParselets = map[token.Kind]postfixParselet{
		token.PlusPlus:   {prec: precPostUnary},
		token.MinusMinus: {prec: precPostUnary},
	}
}
