package types

import (
	"fmt"
	"sort"
	"strings"
)

// Scope is one namespace of a Table. Scopes refer to their parent by id,
// so the scope tree survives after the parser has popped every scope.
type Scope struct {
	id     ScopeID
	parent ScopeID
	elems  map[string]Object
}

func newScope(id, parent ScopeID) *Scope {
	return &Scope{id: id, parent: parent, elems: make(map[string]Object)}
}

// ID returns the scope id.
func (s *Scope) ID() ScopeID {
	return s.id
}

// Parent returns the id of the enclosing scope.
// The global scope has no parent and reports ok == false.
func (s *Scope) Parent() (id ScopeID, ok bool) {
	if s.id == GlobalScope {
		return GlobalScope, false
	}
	return s.parent, true
}

// Lookup returns the object with the given name in this scope only.
func (s *Scope) Lookup(name string) Object {
	return s.elems[name]
}

// insert writes obj into the scope, replacing any object of the same name.
func (s *Scope) insert(obj Object) {
	s.elems[obj.Name()] = obj
	obj.setScope(s.id)
}

// Names returns the names of all objects in the scope, sorted alphabetically.
func (s *Scope) Names() []string {
	names := make([]string, 0, len(s.elems))
	for name := range s.elems {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NumObjects returns the number of objects in the scope.
func (s *Scope) NumObjects() int {
	return len(s.elems)
}

// String returns a string representation of the scope for debugging.
func (s *Scope) String() string {
	var buf strings.Builder
	s.writeTo(&buf)
	return buf.String()
}

func (s *Scope) writeTo(buf *strings.Builder) {
	if parent, ok := s.Parent(); ok {
		fmt.Fprintf(buf, "scope %d (parent %d) {\n", s.id, parent)
	} else {
		fmt.Fprintf(buf, "scope %d {\n", s.id)
	}
	for _, name := range s.Names() {
		fmt.Fprintf(buf, "  %s\n", s.elems[name])
	}
	buf.WriteString("}\n")
}
