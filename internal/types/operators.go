package types

import (
	"ave/internal/token"
)

// Операторные таблицы. Результат KindError означает "операция не типизируется";
// диагностику формулирует чекер. Операнд any даёт дефолтный числовой/булевый
// результат оператора без ошибки.

// binaryClass groups binary operators by their typing rule.
type binaryClass uint8

const (
	binClassInvalid binaryClass = iota
	binClassAdd                 // num+num→num, любая сторона str → str
	binClassArith               // num,num → num
	binClassCompare             // num,num → bool
	binClassEquality            // не-error операнды → bool
	binClassLogic               // не-error операнды → bool
)

func classifyBinary(op token.Kind) binaryClass {
	switch op {
	case token.Plus:
		return binClassAdd
	case token.Minus, token.Star, token.Slash, token.SlashSlash,
		token.Percent, token.StarStar, token.Amp, token.Pipe, token.Caret:
		return binClassArith
	case token.Lt, token.LtEq, token.Gt, token.GtEq:
		return binClassCompare
	case token.EqEq, token.BangEq, token.KwIs:
		return binClassEquality
	case token.KwAnd, token.KwOr:
		return binClassLogic
	default:
		return binClassInvalid
	}
}

// IsBinaryOp reports whether the token kind is a typed binary operator.
func IsBinaryOp(op token.Kind) bool {
	return classifyBinary(op) != binClassInvalid
}

// BinaryResult computes the result type of `l op r`. The error sentinel is
// returned both for untypeable combinations and for error operands; в первом
// случае чекер репортит, во втором молча пропускает.
func (reg *Registry) BinaryResult(op token.Kind, l, r TypeID) TypeID {
	if reg.IsError(l) || reg.IsError(r) {
		return reg.builtins.Error
	}

	lNum := reg.isNumOperand(l)
	rNum := reg.isNumOperand(r)

	switch classifyBinary(op) {
	case binClassAdd:
		if reg.kindOf(l) == KindStr || reg.kindOf(r) == KindStr {
			return reg.builtins.Str
		}
		if lNum && rNum {
			return reg.builtins.Num
		}
		return reg.builtins.Error
	case binClassArith:
		if lNum && rNum {
			return reg.builtins.Num
		}
		return reg.builtins.Error
	case binClassCompare:
		if lNum && rNum {
			return reg.builtins.Bool
		}
		return reg.builtins.Error
	case binClassEquality, binClassLogic:
		return reg.builtins.Bool
	default:
		return reg.builtins.Error
	}
}

// UnaryResult computes the result type of a prefix or postfix unary operator.
func (reg *Registry) UnaryResult(op token.Kind, operand TypeID) TypeID {
	if reg.IsError(operand) {
		return reg.builtins.Error
	}
	switch op {
	case token.Plus, token.Minus, token.PlusPlus, token.MinusMinus:
		if reg.isNumOperand(operand) {
			return reg.builtins.Num
		}
		return reg.builtins.Error
	case token.Bang:
		return reg.builtins.Bool
	default:
		return reg.builtins.Error
	}
}

// CompoundResult types a compound assignment `l op= r`. `+=` additionally
// accepts a string left side (append); остальные требуют num,num.
func (reg *Registry) CompoundResult(op token.Kind, l, r TypeID) TypeID {
	if reg.IsError(l) || reg.IsError(r) {
		return reg.builtins.Error
	}
	if reg.IsAny(l) {
		return l
	}
	lNum := reg.isNumOperand(l)
	rNum := reg.isNumOperand(r)
	if op == token.Plus && reg.kindOf(l) == KindStr {
		return l
	}
	if lNum && rNum {
		return reg.builtins.Num
	}
	return reg.builtins.Error
}

// AssignOpFor возвращает базовый оператор для составного присваивания.
func AssignOpFor(kind token.Kind) (token.Kind, bool) {
	switch kind {
	case token.PlusAssign:
		return token.Plus, true
	case token.MinusAssign:
		return token.Minus, true
	case token.StarAssign:
		return token.Star, true
	case token.SlashAssign:
		return token.Slash, true
	case token.PercentAssign:
		return token.Percent, true
	case token.StarStarAssign:
		return token.StarStar, true
	case token.SlashSlashAssign:
		return token.SlashSlash, true
	default:
		return kind, false
	}
}

// isNumOperand: num подходит всегда, any считается num в операторной позиции.
func (reg *Registry) isNumOperand(id TypeID) bool {
	switch reg.kindOf(id) {
	case KindNum, KindAny:
		return true
	default:
		return false
	}
}
