package types

import (
	"fmt"

	"ave/internal/source"
)

// TypeID uniquely identifies a type inside the registry.
type TypeID uint32

// NoTypeID marks the absence of a type.
const NoTypeID TypeID = 0

// Kind enumerates all supported kinds of types.
type Kind uint8

const (
	KindInvalid Kind = iota
	// KindError is the sentinel for a failed node; it propagates silently.
	KindError
	// KindInfer marks a pending inference at an annotation site.
	KindInfer
	KindAny
	KindVoid
	KindNum
	KindStr
	KindBool
	// KindObjectAny is the 'object' primitive: any object-shaped value.
	KindObjectAny
	// KindFn is a function type with an ordered parameter list.
	KindFn
	// KindGeneric is a generic declaration (Array, generic record).
	KindGeneric
	// KindInstance is an instantiation of a generic; identity is structural.
	KindInstance
	// KindUnion is a deduplicated member set; identity is structural.
	KindUnion
	// KindObject is a structural property map.
	KindObject
	// KindRecord is a user-defined nominal record without type parameters.
	KindRecord
	// KindParam is a formal type parameter inside a generic declaration.
	KindParam
	// KindNamed is a forward reference resolved by the checker.
	KindNamed
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindError:
		return "error"
	case KindInfer:
		return "infer"
	case KindAny:
		return "any"
	case KindVoid:
		return "void"
	case KindNum:
		return "num"
	case KindStr:
		return "str"
	case KindBool:
		return "bool"
	case KindObjectAny:
		return "object"
	case KindFn:
		return "fn"
	case KindGeneric:
		return "generic"
	case KindInstance:
		return "instance"
	case KindUnion:
		return "union"
	case KindObject:
		return "object literal"
	case KindRecord:
		return "record"
	case KindParam:
		return "type param"
	case KindNamed:
		return "named"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// IsPrimitive reports whether the kind is a built-in scalar.
func (k Kind) IsPrimitive() bool {
	switch k {
	case KindAny, KindVoid, KindNum, KindStr, KindBool, KindObjectAny:
		return true
	default:
		return false
	}
}

// Type is a compact descriptor for any supported type. Payload indexes the
// per-kind info table inside the Registry.
type Type struct {
	Kind       Kind
	Name       source.StringID // имя для именованных видов
	Payload    uint32
	Unresolved bool // KindNamed, пока чекер не свяжет Target
}
