package ast

import (
	"ave/internal/source"
	"ave/internal/token"
)

// ExprLitKind distinguishes literal payload shapes.
type ExprLitKind uint8

const (
	LitNum ExprLitKind = iota
	LitStr
	LitHex
	LitBin
	LitBool
)

// ExprLiteralData carries the literal payload. Num is the parsed value for
// LitNum; hex and binary keep Text with the 0x/0b prefix for the emitter;
// Text of LitStr is the raw inner text without quotes.
type ExprLiteralData struct {
	Kind ExprLitKind
	Text source.StringID
	Num  float64
	Bool bool
}

type ExprIdentData struct {
	Name source.StringID
}

type ExprBinaryData struct {
	Op    token.Kind
	Left  ExprID
	Right ExprID
}

// ExprUnaryData serves both prefix and postfix nodes; заголовок различает.
type ExprUnaryData struct {
	Op      token.Kind
	Operand ExprID
}

type ExprAssignData struct {
	Op     token.Kind // Assign или составная форма
	Target ExprID
	Value  ExprID
}

type ExprGroupData struct {
	Inner ExprID
}

type ExprCallData struct {
	Callee ExprID
	Args   []ExprID
}

type ExprMemberData struct {
	Object    ExprID
	Property  ExprID
	IsIndexed bool
}

type ExprArrayData struct {
	Elems []ExprID
}

// ObjectField is one key/value pair; insertion order is preserved.
type ObjectField struct {
	Name     source.StringID
	NameSpan source.Span
	Value    ExprID
}

type ExprObjectData struct {
	Fields []ObjectField
}

// FnParam описывает параметр функции на уровне синтаксиса.
type FnParam struct {
	Name    source.StringID
	Span    source.Span
	Type    TypeInfo
	Default ExprID // NoExprID если значения по умолчанию нет
	Rest    bool
}

type ExprFnData struct {
	Params  []FnParam
	Ret     TypeInfo
	Body    BodyID
	IsArrow bool
}

// Exprs manages allocation of expressions.
type Exprs struct {
	Arena    *Arena[Expr]
	Literals *Arena[ExprLiteralData]
	Idents   *Arena[ExprIdentData]
	Binaries *Arena[ExprBinaryData]
	Unaries  *Arena[ExprUnaryData]
	Assigns  *Arena[ExprAssignData]
	Groups   *Arena[ExprGroupData]
	Calls    *Arena[ExprCallData]
	Members  *Arena[ExprMemberData]
	Arrays   *Arena[ExprArrayData]
	Objects  *Arena[ExprObjectData]
	Fns      *Arena[ExprFnData]
}

// NewExprs creates per-kind arenas preallocated using capHint.
func NewExprs(capHint uint) *Exprs {
	if capHint == 0 {
		capHint = 1 << 8
	}
	return &Exprs{
		Arena:    NewArena[Expr](capHint),
		Literals: NewArena[ExprLiteralData](capHint),
		Idents:   NewArena[ExprIdentData](capHint),
		Binaries: NewArena[ExprBinaryData](capHint),
		Unaries:  NewArena[ExprUnaryData](capHint),
		Assigns:  NewArena[ExprAssignData](capHint),
		Groups:   NewArena[ExprGroupData](capHint),
		Calls:    NewArena[ExprCallData](capHint),
		Members:  NewArena[ExprMemberData](capHint),
		Arrays:   NewArena[ExprArrayData](capHint),
		Objects:  NewArena[ExprObjectData](capHint),
		Fns:      NewArena[ExprFnData](capHint),
	}
}

func (e *Exprs) new(kind ExprKind, span source.Span, payload PayloadID) ExprID {
	return ExprID(e.Arena.Allocate(Expr{
		Kind:    kind,
		Span:    span,
		Payload: payload,
	}))
}

// Get returns the expression header with the given ID.
func (e *Exprs) Get(id ExprID) *Expr {
	return e.Arena.Get(uint32(id))
}

// SpanOf возвращает span выражения (пустой для невалидного ID).
func (e *Exprs) SpanOf(id ExprID) source.Span {
	if expr := e.Get(id); expr != nil {
		return expr.Span
	}
	return source.Span{}
}

// NewLiteral creates a literal expression.
func (e *Exprs) NewLiteral(span source.Span, data ExprLiteralData) ExprID {
	payload := e.Literals.Allocate(data)
	return e.new(ExprLiteral, span, PayloadID(payload))
}

// Literal returns the literal payload for the given expression ID.
func (e *Exprs) Literal(id ExprID) (*ExprLiteralData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprLiteral {
		return nil, false
	}
	return e.Literals.Get(uint32(expr.Payload)), true
}

// NewIdent creates an identifier expression.
func (e *Exprs) NewIdent(span source.Span, name source.StringID) ExprID {
	payload := e.Idents.Allocate(ExprIdentData{Name: name})
	return e.new(ExprIdent, span, PayloadID(payload))
}

// Ident returns the identifier payload for the given expression ID.
func (e *Exprs) Ident(id ExprID) (*ExprIdentData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprIdent {
		return nil, false
	}
	return e.Idents.Get(uint32(expr.Payload)), true
}

// NewBinary creates a binary expression.
func (e *Exprs) NewBinary(span source.Span, op token.Kind, left, right ExprID) ExprID {
	payload := e.Binaries.Allocate(ExprBinaryData{Op: op, Left: left, Right: right})
	return e.new(ExprBinary, span, PayloadID(payload))
}

// Binary returns the binary payload for the given expression ID.
func (e *Exprs) Binary(id ExprID) (*ExprBinaryData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprBinary {
		return nil, false
	}
	return e.Binaries.Get(uint32(expr.Payload)), true
}

// NewPrefix creates a prefix unary expression.
func (e *Exprs) NewPrefix(span source.Span, op token.Kind, operand ExprID) ExprID {
	payload := e.Unaries.Allocate(ExprUnaryData{Op: op, Operand: operand})
	return e.new(ExprPrefix, span, PayloadID(payload))
}

// NewPostfix creates a postfix unary expression.
func (e *Exprs) NewPostfix(span source.Span, op token.Kind, operand ExprID) ExprID {
	payload := e.Unaries.Allocate(ExprUnaryData{Op: op, Operand: operand})
	return e.new(ExprPostfix, span, PayloadID(payload))
}

// Unary returns the unary payload for prefix and postfix nodes alike.
func (e *Exprs) Unary(id ExprID) (*ExprUnaryData, bool) {
	expr := e.Get(id)
	if expr == nil || (expr.Kind != ExprPrefix && expr.Kind != ExprPostfix) {
		return nil, false
	}
	return e.Unaries.Get(uint32(expr.Payload)), true
}

// NewAssign creates an assignment expression.
func (e *Exprs) NewAssign(span source.Span, op token.Kind, target, value ExprID) ExprID {
	payload := e.Assigns.Allocate(ExprAssignData{Op: op, Target: target, Value: value})
	return e.new(ExprAssign, span, PayloadID(payload))
}

// Assign returns the assignment payload for the given expression ID.
func (e *Exprs) Assign(id ExprID) (*ExprAssignData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprAssign {
		return nil, false
	}
	return e.Assigns.Get(uint32(expr.Payload)), true
}

// NewGroup creates a parenthesised group expression.
func (e *Exprs) NewGroup(span source.Span, inner ExprID) ExprID {
	payload := e.Groups.Allocate(ExprGroupData{Inner: inner})
	return e.new(ExprGroup, span, PayloadID(payload))
}

// Group returns the group payload for the given expression ID.
func (e *Exprs) Group(id ExprID) (*ExprGroupData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprGroup {
		return nil, false
	}
	return e.Groups.Get(uint32(expr.Payload)), true
}

// NewCall creates a call expression.
func (e *Exprs) NewCall(span source.Span, callee ExprID, args []ExprID) ExprID {
	payload := e.Calls.Allocate(ExprCallData{Callee: callee, Args: args})
	return e.new(ExprCall, span, PayloadID(payload))
}

// Call returns the call payload for the given expression ID.
func (e *Exprs) Call(id ExprID) (*ExprCallData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprCall {
		return nil, false
	}
	return e.Calls.Get(uint32(expr.Payload)), true
}

// NewMember creates a member access expression, dotted or indexed.
func (e *Exprs) NewMember(span source.Span, object, property ExprID, indexed bool) ExprID {
	payload := e.Members.Allocate(ExprMemberData{Object: object, Property: property, IsIndexed: indexed})
	return e.new(ExprMember, span, PayloadID(payload))
}

// Member returns the member payload for the given expression ID.
func (e *Exprs) Member(id ExprID) (*ExprMemberData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprMember {
		return nil, false
	}
	return e.Members.Get(uint32(expr.Payload)), true
}

// NewArray creates an array literal expression.
func (e *Exprs) NewArray(span source.Span, elems []ExprID) ExprID {
	payload := e.Arrays.Allocate(ExprArrayData{Elems: elems})
	return e.new(ExprArray, span, PayloadID(payload))
}

// Array returns the array payload for the given expression ID.
func (e *Exprs) Array(id ExprID) (*ExprArrayData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprArray {
		return nil, false
	}
	return e.Arrays.Get(uint32(expr.Payload)), true
}

// NewObject creates an object literal expression.
func (e *Exprs) NewObject(span source.Span, fields []ObjectField) ExprID {
	payload := e.Objects.Allocate(ExprObjectData{Fields: fields})
	return e.new(ExprObject, span, PayloadID(payload))
}

// Object returns the object payload for the given expression ID.
func (e *Exprs) Object(id ExprID) (*ExprObjectData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprObject {
		return nil, false
	}
	return e.Objects.Get(uint32(expr.Payload)), true
}

// NewFn creates a function expression (named, anonymous, or arrow).
func (e *Exprs) NewFn(span source.Span, data ExprFnData) ExprID {
	payload := e.Fns.Allocate(data)
	return e.new(ExprFn, span, PayloadID(payload))
}

// Fn returns the function payload for the given expression ID.
func (e *Exprs) Fn(id ExprID) (*ExprFnData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprFn {
		return nil, false
	}
	return e.Fns.Get(uint32(expr.Payload)), true
}

// NewBad creates the sentinel error node.
func (e *Exprs) NewBad(span source.Span) ExprID {
	return e.new(ExprBad, span, NoPayloadID)
}

// IsAssignTarget reports whether the expression may stand on the left of an
// assignment: identifier, dotted member, or indexed member.
func (e *Exprs) IsAssignTarget(id ExprID) bool {
	expr := e.Get(id)
	if expr == nil {
		return false
	}
	switch expr.Kind {
	case ExprIdent, ExprMember:
		return true
	default:
		return false
	}
}
