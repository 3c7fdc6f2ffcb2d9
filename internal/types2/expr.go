package types2

import (
	"github.com/you-not-fish/rstn/internal/syntax"
	"github.com/you-not-fish/rstn/internal/types"
)

var (
	tvoid   = types.Typ[types.Void]
	tint    = types.Typ[types.Int]
	tfloat  = types.Typ[types.Float]
	tstring = types.Typ[types.String]
	tbool   = types.Typ[types.Bool]
)

// checkCollection reports whether all types in list are identical to the
// first and the first is not Void. An empty list passes.
func checkCollection(list []types.Type) bool {
	return types.Unify(list)
}

// typeOf returns the type inferred for e, or Void if e does not check.
func (c *Checker) typeOf(e syntax.Expr) types.Type {
	return c.collectTypes(e, nil)[0]
}

// collectTypes appends the type inferred for e to acc, checking e's
// subexpressions on the way. Failed subtrees contribute Void; an error has
// then already been reported for them, and Void operands are not reported
// again by the enclosing expression.
func (c *Checker) collectTypes(e syntax.Expr, acc []types.Type) []types.Type {
	typ := c.exprInternal(e)
	c.recordType(e, typ)
	return append(acc, typ)
}

// exprInternal dispatches on the expression kind.
func (c *Checker) exprInternal(e syntax.Expr) types.Type {
	switch e := e.(type) {
	case *syntax.BasicLit:
		return c.basicLit(e)

	case *syntax.Name:
		return c.ident(e)

	case *syntax.Operation:
		if e.Y == nil {
			return c.unary(e)
		}
		return c.binary(e)

	case *syntax.CallExpr:
		return c.call(e, false)

	case *syntax.ArrayLit:
		return c.arrayLit(e)

	case *syntax.TupleExpr:
		return c.tupleExpr(e)

	case *syntax.RangeExpr:
		if c.rangeExpr(e) == tvoid {
			return tvoid
		}
		c.exprErrorf(e, nil, "cannot use range %s as a value outside a for loop", syntax.ExprString(e))
		return tvoid

	case *syntax.IndexExpr:
		return c.indexExpr(e)

	case *syntax.TupleIndexExpr:
		return c.tupleIndexExpr(e)

	case *syntax.SelectorExpr:
		if c.typeOf(e.X) == tvoid {
			return tvoid
		}
		c.exprErrorf(e, nil, "member access .%s is not supported", e.Sel.Value)
		return tvoid
	}

	c.errorf(e.Pos(), "unexpected expression %T", e)
	return tvoid
}

// basicLit returns the intrinsic type of a literal.
func (c *Checker) basicLit(e *syntax.BasicLit) types.Type {
	switch e.Kind {
	case syntax.IntLit:
		return tint
	case syntax.FloatLit:
		return tfloat
	case syntax.StringLit:
		return tstring
	case syntax.BoolLit:
		return tbool
	}
	c.errorf(e.Pos(), "unknown literal kind %s", e.Kind)
	return tvoid
}

// ident resolves an identifier used as a value: first as a variable, then
// as a function parameter.
func (c *Checker) ident(e *syntax.Name) types.Type {
	ent := c.resolve(e.Value)
	switch obj := ent.obj.(type) {
	case *types.Var:
		if !obj.Assigned() || obj.Type() == nil {
			c.exprErrorf(e, nil, "use of unassigned variable %s", e.Value)
			return tvoid
		}
		return obj.Type()
	case *types.FuncObj:
		c.exprErrorf(e, nil, "function %s used as a value", e.Value)
		return tvoid
	}
	if ent.param != nil {
		return ent.param
	}
	c.exprErrorf(e, nil, "identifier %s not found", e.Value)
	return tvoid
}

// unary checks -x and !x.
func (c *Checker) unary(e *syntax.Operation) types.Type {
	x := c.typeOf(e.X)
	if x == tvoid {
		return tvoid
	}

	switch e.Op {
	case syntax.Sub:
		if !isNumeric(x) {
			c.exprErrorf(e, []types.Type{x}, "operator - requires a numeric operand")
			return tvoid
		}
		return x
	case syntax.Not:
		if !isBoolean(x) {
			c.exprErrorf(e, []types.Type{x}, "operator ! requires a bool operand")
			return tvoid
		}
		return tbool
	}

	c.exprErrorf(e, []types.Type{x}, "invalid unary operator %s", e.Op)
	return tvoid
}

// binary checks arithmetic, logical and comparison operations.
func (c *Checker) binary(e *syntax.Operation) types.Type {
	var list []types.Type
	list = c.collectTypes(e.X, list)
	list = c.collectTypes(e.Y, list)
	x, y := list[0], list[1]
	if x == tvoid || y == tvoid {
		return tvoid
	}

	switch {
	case e.Op.IsArithmetic():
		if !isNumeric(x) || !isNumeric(y) {
			c.exprErrorf(e, list, "operator %s requires numeric operands", e.Op)
			return tvoid
		}
		if isFloat(x) || isFloat(y) {
			return tfloat
		}
		return tint

	case e.Op.IsLogical():
		if !isBoolean(x) || !isBoolean(y) {
			c.exprErrorf(e, list, "operator %s requires bool operands", e.Op)
			return tvoid
		}
		return tbool

	case e.Op.IsComparison():
		if !isNumeric(x) || !isNumeric(y) {
			c.exprErrorf(e, list, "operator %s requires numeric operands", e.Op)
			return tvoid
		}
		if !checkCollection(list) {
			c.exprErrorf(e, list, "mismatched types %s and %s", x, y)
			return tvoid
		}
		return tbool
	}

	c.exprErrorf(e, list, "invalid binary operator %s", e.Op)
	return tvoid
}

// arrayLit checks that all elements unify and yields [elem; n].
func (c *Checker) arrayLit(e *syntax.ArrayLit) types.Type {
	if len(e.Elems) == 0 {
		c.exprErrorf(e, nil, "empty array literal")
		return tvoid
	}
	var list []types.Type
	for _, x := range e.Elems {
		list = c.collectTypes(x, list)
	}
	if hasVoid(list) {
		return tvoid
	}
	if !checkCollection(list) {
		c.exprErrorf(e, list, "array elements have mismatched types")
		return tvoid
	}
	return types.NewArray(list[0], len(list))
}

// tupleExpr collects element types positionally.
func (c *Checker) tupleExpr(e *syntax.TupleExpr) types.Type {
	var list []types.Type
	for _, x := range e.Elems {
		list = c.collectTypes(x, list)
	}
	if hasVoid(list) {
		return tvoid
	}
	return types.NewTuple(list...)
}

// rangeExpr requires int bounds. A range has the type of its elements.
// It is only reached directly from a for statement.
func (c *Checker) rangeExpr(e *syntax.RangeExpr) types.Type {
	var list []types.Type
	list = c.collectTypes(e.Start, list)
	list = c.collectTypes(e.End, list)
	if hasVoid(list) {
		return tvoid
	}
	if !isInteger(list[0]) || !isInteger(list[1]) {
		c.exprErrorf(e, list, "range bounds must be int")
		return tvoid
	}
	return tint
}

// indexExpr checks x[i]: i must be int and x an array.
func (c *Checker) indexExpr(e *syntax.IndexExpr) types.Type {
	var list []types.Type
	list = c.collectTypes(e.X, list)
	list = c.collectTypes(e.Index, list)
	x, i := list[0], list[1]
	if x == tvoid || i == tvoid {
		return tvoid
	}
	if !isInteger(i) {
		c.exprErrorf(e.Index, []types.Type{i}, "array index must be int")
		return tvoid
	}
	a, ok := x.(*types.Array)
	if !ok {
		c.exprErrorf(e, []types.Type{x}, "cannot index non-array value of type %s", x)
		return tvoid
	}
	return a.Elem()
}

// tupleIndexExpr checks x.N against the tuple's arity.
func (c *Checker) tupleIndexExpr(e *syntax.TupleIndexExpr) types.Type {
	x := c.typeOf(e.X)
	if x == tvoid {
		return tvoid
	}
	t, ok := x.(*types.Tuple)
	if !ok {
		c.exprErrorf(e, []types.Type{x}, "cannot select field %d of non-tuple value of type %s", e.Index, x)
		return tvoid
	}
	if e.Index < 0 || e.Index >= t.Len() {
		c.exprErrorf(e, []types.Type{x}, "tuple index %d out of range for %s", e.Index, x)
		return tvoid
	}
	return t.At(e.Index)
}

func hasVoid(list []types.Type) bool {
	for _, t := range list {
		if t == tvoid {
			return true
		}
	}
	return false
}

// ----------------------------------------------------------------------------
// Type predicates

func isBoolean(t types.Type) bool {
	b, ok := t.(*types.Basic)
	return ok && b.Info()&types.IsBoolean != 0
}

func isNumeric(t types.Type) bool {
	b, ok := t.(*types.Basic)
	return ok && b.Info()&types.IsNumeric != 0
}

func isInteger(t types.Type) bool {
	b, ok := t.(*types.Basic)
	return ok && b.Info()&types.IsInteger != 0
}

func isFloat(t types.Type) bool {
	b, ok := t.(*types.Basic)
	return ok && b.Info()&types.IsFloat != 0
}
