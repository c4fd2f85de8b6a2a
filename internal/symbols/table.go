package symbols

import (
	"fmt"

	"fortio.org/safecast"

	"ave/internal/source"
)

// Table aggregates scope and symbol storage for one checked file.
type Table struct {
	scopes  []Scope
	symbols []Symbol
	Strings *source.Interner
}

// NewTable builds a fresh table. If strings is nil, a fresh interner is
// allocated.
func NewTable(strings *source.Interner) *Table {
	if strings == nil {
		strings = source.NewInterner()
	}
	return &Table{
		scopes:  make([]Scope, 1), // слот 0 — невалидный
		symbols: make([]Symbol, 1),
		Strings: strings,
	}
}

// NewScope allocates a scope under parent and links it into the tree.
func (t *Table) NewScope(kind ScopeKind, parent ScopeID, span source.Span) ScopeID {
	lenScopes, err := safecast.Conv[uint32](len(t.scopes))
	if err != nil {
		panic(fmt.Errorf("scope count overflow: %w", err))
	}
	id := ScopeID(lenScopes)
	t.scopes = append(t.scopes, Scope{
		Kind:      kind,
		Parent:    parent,
		Span:      span,
		NameIndex: make(map[source.StringID]SymbolID),
	})
	if parent.IsValid() {
		p := t.Scope(parent)
		p.Children = append(p.Children, id)
	}
	return id
}

// Scope returns the scope with the given ID.
func (t *Table) Scope(id ScopeID) *Scope {
	if !id.IsValid() || int(id) >= len(t.scopes) {
		return nil
	}
	return &t.scopes[id]
}

// Symbol returns the symbol with the given ID.
func (t *Table) Symbol(id SymbolID) *Symbol {
	if !id.IsValid() || int(id) >= len(t.symbols) {
		return nil
	}
	return &t.symbols[id]
}

// Declare adds a symbol to the scope. Если имя уже занято в этом scope,
// возвращается существующий символ и ok=false — политику конфликтов решает
// вызывающий.
func (t *Table) Declare(sym Symbol) (SymbolID, bool) {
	scope := t.Scope(sym.Scope)
	if scope == nil {
		return NoSymbolID, false
	}
	if existing, taken := scope.NameIndex[sym.Name]; taken {
		return existing, false
	}

	lenSymbols, err := safecast.Conv[uint32](len(t.symbols))
	if err != nil {
		panic(fmt.Errorf("symbol count overflow: %w", err))
	}
	id := SymbolID(lenSymbols)
	t.symbols = append(t.symbols, sym)
	scope.NameIndex[sym.Name] = id
	scope.Symbols = append(scope.Symbols, id)
	return id, true
}

// LookupLocal ищет имя только в указанном scope.
func (t *Table) LookupLocal(scope ScopeID, name source.StringID) (SymbolID, bool) {
	s := t.Scope(scope)
	if s == nil {
		return NoSymbolID, false
	}
	id, ok := s.NameIndex[name]
	return id, ok
}

// Lookup walks the scope chain up to the root.
func (t *Table) Lookup(scope ScopeID, name source.StringID) (SymbolID, bool) {
	for scope.IsValid() {
		if id, ok := t.LookupLocal(scope, name); ok {
			return id, true
		}
		scope = t.Scope(scope).Parent
	}
	return NoSymbolID, false
}

// VisibleNames collects every name reachable from the scope — материал для
// "Did you mean" подсказок.
func (t *Table) VisibleNames(scope ScopeID) []string {
	var names []string
	seen := make(map[source.StringID]bool)
	for scope.IsValid() {
		s := t.Scope(scope)
		for name := range s.NameIndex {
			if !seen[name] {
				seen[name] = true
				if text, ok := t.Strings.Lookup(name); ok && text != "" {
					names = append(names, text)
				}
			}
		}
		scope = s.Parent
	}
	return names
}
