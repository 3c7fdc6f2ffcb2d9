package types2

import (
	"github.com/you-not-fish/rstn/internal/syntax"
	"github.com/you-not-fish/rstn/internal/types"
)

// call checks a function call. When stmt is set the call is an
// expression statement and a function without result is allowed.
func (c *Checker) call(e *syntax.CallExpr, stmt bool) types.Type {
	name := e.Fun.Value
	f, ok := c.lookupFunc(name)
	if !ok {
		if ent := c.resolve(name); ent.obj != nil || ent.param != nil {
			c.exprErrorf(e, nil, "cannot call non-function %s", name)
		} else {
			c.exprErrorf(e, nil, "undefined function %s", name)
		}
		return tvoid
	}

	// Check each argument on its own before matching the signature.
	var args []types.Type
	for _, a := range e.Args {
		args = c.collectTypes(a, args)
	}
	if hasVoid(args) {
		return tvoid
	}

	params := f.ParamTypes()
	if len(args) != len(params) {
		c.exprErrorf(e, args, "wrong number of arguments in call to %s: have %d, want %d",
			name, len(args), len(params))
		return tvoid
	}
	for i, want := range params {
		if !checkCollection([]types.Type{want, args[i]}) {
			c.exprErrorf(e.Args[i], []types.Type{want, args[i]},
				"cannot use %s as %s in argument %d to %s", args[i], want, i, name)
			return tvoid
		}
	}

	if f.Result() == nil {
		if !stmt {
			c.exprErrorf(e, nil, "%s() has no value", name)
		}
		return tvoid
	}
	return f.Result()
}
