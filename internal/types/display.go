package types

import (
	"strings"
)

// Display renders a type the way diagnostics quote it: 'num', 'Array<num>',
// '(item: num) -> str', '{age: num}', 'num | str'.
func (reg *Registry) Display(id TypeID) string {
	return reg.display(id, 0)
}

const displayMaxDepth = 16

func (reg *Registry) display(id TypeID, depth int) string {
	if depth > displayMaxDepth {
		return "..."
	}
	tt, ok := reg.Lookup(id)
	if !ok {
		return "<invalid>"
	}

	switch tt.Kind {
	case KindError:
		return "<error>"
	case KindInfer:
		return "<infer>"
	case KindNamed:
		if tt.Unresolved {
			return reg.strings.MustLookup(tt.Name)
		}
		return reg.display(reg.Canonical(id), depth+1)
	case KindAny, KindVoid, KindNum, KindStr, KindBool, KindObjectAny,
		KindRecord, KindParam:
		return reg.strings.MustLookup(tt.Name)
	case KindGeneric:
		info := reg.generics[tt.Payload]
		var b strings.Builder
		b.WriteString(reg.strings.MustLookup(tt.Name))
		b.WriteByte('<')
		for i, p := range info.Params {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(reg.display(p, depth+1))
		}
		b.WriteByte('>')
		return b.String()
	case KindInstance:
		info := reg.instances[tt.Payload]
		var b strings.Builder
		b.WriteString(reg.strings.MustLookup(tt.Name))
		b.WriteByte('<')
		for i, a := range info.Args {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(reg.display(a, depth+1))
		}
		b.WriteByte('>')
		return b.String()
	case KindFn:
		info := reg.fns[tt.Payload]
		var b strings.Builder
		b.WriteByte('(')
		for i, p := range info.Params {
			if i > 0 {
				b.WriteString(", ")
			}
			if name, ok := reg.strings.Lookup(p.Name); ok && name != "" {
				b.WriteString(name)
				b.WriteString(": ")
			}
			b.WriteString(reg.display(p.Type, depth+1))
		}
		b.WriteString(") -> ")
		b.WriteString(reg.display(info.Result, depth+1))
		return b.String()
	case KindObject:
		info := reg.objects[tt.Payload]
		var b strings.Builder
		b.WriteByte('{')
		for i, p := range info.Props {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(reg.strings.MustLookup(p.Name))
			b.WriteString(": ")
			b.WriteString(reg.display(p.Type, depth+1))
		}
		b.WriteByte('}')
		return b.String()
	case KindUnion:
		info := reg.unions[tt.Payload]
		parts := make([]string, 0, len(info.Members))
		for _, m := range info.Members {
			parts = append(parts, reg.display(m, depth+1))
		}
		return strings.Join(parts, " | ")
	default:
		return tt.Kind.String()
	}
}
