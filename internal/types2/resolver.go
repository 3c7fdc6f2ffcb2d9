package types2

import (
	"github.com/you-not-fish/rstn/internal/types"
)

// declare makes obj visible in the current scope from now on.
func (c *Checker) declare(obj types.Object) {
	key := declKey{c.scope, obj.Name()}
	c.declared[key] = obj
	delete(c.hidden, key)
}

// declaredIn returns the keys currently declared in scope id.
func (c *Checker) declaredIn(id types.ScopeID) map[declKey]bool {
	keys := make(map[declKey]bool)
	for k := range c.declared {
		if k.scope == id {
			keys[k] = true
		}
	}
	return keys
}

// hideSince withdraws the names declared in scope id that are not in
// before, so a sibling arm sharing the scope id cannot see them.
func (c *Checker) hideSince(id types.ScopeID, before map[declKey]bool) {
	for k := range c.declared {
		if k.scope == id && !before[k] {
			delete(c.declared, k)
			c.hidden[k] = true
		}
	}
}

// entity is what an identifier resolves to. At most one field is set.
type entity struct {
	obj   types.Object // variable or function
	param types.Type   // parameter type
}

// resolve looks up name according to the configured resolution.
func (c *Checker) resolve(name string) entity {
	if c.conf.Resolution == TableScan {
		return c.resolveTable(name)
	}
	return c.resolveLexical(name)
}

// resolveLexical walks the scope tree outward from the current scope.
// In each scope it tries the declared variables and functions, the
// parameters of a function whose body the scope is, and finally the
// functions the parser recorded there, so calls may precede the callee.
func (c *Checker) resolveLexical(name string) entity {
	id := c.scope
	for {
		if obj := c.declared[declKey{id, name}]; obj != nil {
			return entity{obj: obj}
		}
		if d := c.funcScopes[id]; d != nil {
			if typ, ok := d.Obj.Param(name); ok {
				return entity{param: typ}
			}
		}
		s := c.table.Scope(id)
		if s == nil {
			break
		}
		if f, ok := s.Lookup(name).(*types.FuncObj); ok && !c.hidden[declKey{id, name}] {
			return entity{obj: f}
		}
		parent, ok := s.Parent()
		if !ok {
			break
		}
		id = parent
	}
	return entity{}
}

// resolveTable scans the whole table: variables first, then parameters of
// every function, then functions.
func (c *Checker) resolveTable(name string) entity {
	obj := c.table.ReadSymbol(name)
	if v, ok := obj.(*types.Var); ok {
		return entity{obj: v}
	}
	if typ, ok := c.table.ParamType(name); ok {
		return entity{param: typ}
	}
	if obj != nil {
		return entity{obj: obj}
	}
	for _, f := range c.table.Functions() {
		if f.Name() == name {
			return entity{obj: f}
		}
	}
	return entity{}
}

// lookupFunc resolves name as a function.
func (c *Checker) lookupFunc(name string) (*types.FuncObj, bool) {
	if f, ok := c.resolve(name).obj.(*types.FuncObj); ok {
		return f, true
	}
	if c.conf.Resolution == TableScan {
		for _, f := range c.table.Functions() {
			if f.Name() == name {
				return f, true
			}
		}
	}
	return nil, false
}
