package types

import "strings"

// Table is the symbol table shared by the parser and the checker.
//
// Scopes live in an arena indexed by ScopeID. The active stack holds the
// ids of the scopes currently open during parsing, innermost last; the
// global scope is at the bottom and is never popped.
//
// Two kinds of lookup are offered. Lookup and LookupScope follow the scope
// tree and give lexical visibility. ReadSymbol, AllSymbols and ParamType
// scan every scope in ascending id order regardless of activation; when
// unrelated scopes declare the same name, the lowest scope id wins.
type Table struct {
	scopes []*Scope // nil where no scope was created
	active []ScopeID
	refs   []*Ref
}

// NewTable returns a table holding only the global scope.
func NewTable() *Table {
	return &Table{
		scopes: []*Scope{newScope(GlobalScope, GlobalScope)},
		active: []ScopeID{GlobalScope},
	}
}

// CreateScope creates scope id as a child of the current scope.
// Creating an existing scope is a no-op.
func (t *Table) CreateScope(id ScopeID) *Scope {
	if s := t.Scope(id); s != nil {
		return s
	}
	for int(id) >= len(t.scopes) {
		t.scopes = append(t.scopes, nil)
	}
	s := newScope(id, t.Current())
	t.scopes[id] = s
	return s
}

// EnterScope pushes scope id onto the active stack.
// Entering a scope that was never created is a no-op.
func (t *Table) EnterScope(id ScopeID) {
	if t.Scope(id) == nil {
		return
	}
	t.active = append(t.active, id)
}

// ExitScope pops the innermost active scope. The global scope stays.
func (t *Table) ExitScope() {
	if len(t.active) > 1 {
		t.active = t.active[:len(t.active)-1]
	}
}

// Current returns the innermost active scope.
func (t *Table) Current() ScopeID {
	return t.active[len(t.active)-1]
}

// Scope returns the scope with the given id, or nil.
func (t *Table) Scope(id ScopeID) *Scope {
	if int(id) < len(t.scopes) {
		return t.scopes[id]
	}
	return nil
}

// Scopes returns all created scopes in ascending id order.
func (t *Table) Scopes() []*Scope {
	list := make([]*Scope, 0, len(t.scopes))
	for _, s := range t.scopes {
		if s != nil {
			list = append(list, s)
		}
	}
	return list
}

// NumScopes returns the number of created scopes, the global scope included.
func (t *Table) NumScopes() int {
	return len(t.Scopes())
}

// Insert writes obj into the innermost active scope, overwriting any
// object of the same name declared there.
func (t *Table) Insert(obj Object) {
	t.scopes[t.Current()].insert(obj)
}

// Lookup searches the active scopes from innermost to outermost.
func (t *Table) Lookup(name string) Object {
	for i := len(t.active) - 1; i >= 0; i-- {
		if obj := t.scopes[t.active[i]].Lookup(name); obj != nil {
			return obj
		}
	}
	return nil
}

// LookupScope searches scope id and then its ancestors.
// It returns the object and the scope it was found in.
func (t *Table) LookupScope(id ScopeID, name string) (Object, ScopeID) {
	s := t.Scope(id)
	for s != nil {
		if obj := s.Lookup(name); obj != nil {
			return obj, s.id
		}
		parent, ok := s.Parent()
		if !ok {
			break
		}
		s = t.Scope(parent)
	}
	return nil, GlobalScope
}

// ReadSymbol returns the first object named name found by scanning every
// scope in ascending id order.
func (t *Table) ReadSymbol(name string) Object {
	for _, s := range t.scopes {
		if s == nil {
			continue
		}
		if obj := s.Lookup(name); obj != nil {
			return obj
		}
	}
	return nil
}

// AllSymbols returns every object in the table, by scope id then by name.
func (t *Table) AllSymbols() []Object {
	var list []Object
	for _, s := range t.Scopes() {
		for _, name := range s.Names() {
			list = append(list, s.elems[name])
		}
	}
	return list
}

// Functions returns every function object in the table.
func (t *Table) Functions() []*FuncObj {
	var list []*FuncObj
	for _, obj := range t.AllSymbols() {
		if f, ok := obj.(*FuncObj); ok {
			list = append(list, f)
		}
	}
	return list
}

// ParamType scans the parameter lists of all functions for a parameter
// called name and returns its type.
func (t *Table) ParamType(name string) (Type, bool) {
	for _, f := range t.Functions() {
		if typ, ok := f.Param(name); ok {
			return typ, true
		}
	}
	return nil, false
}

// UpdateVarType sets the type of the variable found by ReadSymbol.
// It reports whether such a variable exists.
func (t *Table) UpdateVarType(name string, typ Type) bool {
	v, ok := t.ReadSymbol(name).(*Var)
	if ok {
		v.SetType(typ)
	}
	return ok
}

// UpdateVarAssigned marks the variable found by ReadSymbol as assigned.
// It reports whether such a variable exists.
func (t *Table) UpdateVarAssigned(name string) bool {
	v, ok := t.ReadSymbol(name).(*Var)
	if ok {
		v.SetAssigned()
	}
	return ok
}

// AddRef records a reference to name in the current scope.
func (t *Table) AddRef(name string, line uint32) {
	t.refs = append(t.refs, NewRef(name, line, t.Current()))
}

// Refs returns the recorded references in source order.
func (t *Table) Refs() []*Ref {
	return t.refs
}

// String returns a dump of all scopes for debugging.
func (t *Table) String() string {
	var buf strings.Builder
	for _, s := range t.Scopes() {
		s.writeTo(&buf)
	}
	return buf.String()
}
