package symbols

import (
	"testing"

	"ave/internal/source"
)

func TestDeclareAndLookup(t *testing.T) {
	tab := NewTable(nil)
	root := tab.NewScope(ScopeRoot, NoScopeID, source.Span{})
	name := tab.Strings.Intern("x")

	id, ok := tab.Declare(Symbol{Name: name, Kind: SymbolLet, Scope: root, Flags: SymbolFlagMutable})
	if !ok || !id.IsValid() {
		t.Fatal("first declaration must succeed")
	}

	got, ok := tab.Lookup(root, name)
	if !ok || got != id {
		t.Fatal("lookup must find the declared symbol")
	}
	if !tab.Symbol(got).Mutable() {
		t.Error("let binding must be mutable")
	}
}

func TestRedeclarationReturnsExisting(t *testing.T) {
	tab := NewTable(nil)
	root := tab.NewScope(ScopeRoot, NoScopeID, source.Span{})
	name := tab.Strings.Intern("x")

	first, _ := tab.Declare(Symbol{Name: name, Kind: SymbolConst, Scope: root})
	second, ok := tab.Declare(Symbol{Name: name, Kind: SymbolLet, Scope: root})
	if ok {
		t.Fatal("redeclaration in the same scope must be rejected")
	}
	if second != first {
		t.Error("rejected declaration must report the existing symbol")
	}
}

func TestShadowingInNestedScope(t *testing.T) {
	tab := NewTable(nil)
	root := tab.NewScope(ScopeRoot, NoScopeID, source.Span{})
	inner := tab.NewScope(ScopeBlock, root, source.Span{})
	name := tab.Strings.Intern("x")

	outer, _ := tab.Declare(Symbol{Name: name, Kind: SymbolLet, Scope: root})
	shadow, ok := tab.Declare(Symbol{Name: name, Kind: SymbolConst, Scope: inner})
	if !ok {
		t.Fatal("shadowing in a nested scope is allowed")
	}

	if got, _ := tab.Lookup(inner, name); got != shadow {
		t.Error("inner scope must see the shadowing symbol")
	}
	if got, _ := tab.Lookup(root, name); got != outer {
		t.Error("outer scope must still see its own symbol")
	}
}

func TestLookupWalksParents(t *testing.T) {
	tab := NewTable(nil)
	root := tab.NewScope(ScopeRoot, NoScopeID, source.Span{})
	fn := tab.NewScope(ScopeFunction, root, source.Span{})
	block := tab.NewScope(ScopeBlock, fn, source.Span{})
	name := tab.Strings.Intern("outer")

	id, _ := tab.Declare(Symbol{Name: name, Kind: SymbolFunction, Scope: root})
	if got, ok := tab.Lookup(block, name); !ok || got != id {
		t.Error("lookup must walk the scope chain to the root")
	}
}

func TestVisibleNames(t *testing.T) {
	tab := NewTable(nil)
	root := tab.NewScope(ScopeRoot, NoScopeID, source.Span{})
	inner := tab.NewScope(ScopeBlock, root, source.Span{})

	tab.Declare(Symbol{Name: tab.Strings.Intern("alpha"), Kind: SymbolLet, Scope: root})
	tab.Declare(Symbol{Name: tab.Strings.Intern("beta"), Kind: SymbolLet, Scope: inner})

	names := tab.VisibleNames(inner)
	if len(names) != 2 {
		t.Fatalf("got %d visible names, want 2: %v", len(names), names)
	}
}
