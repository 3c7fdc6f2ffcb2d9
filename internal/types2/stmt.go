package types2

import (
	"github.com/you-not-fish/rstn/internal/syntax"
	"github.com/you-not-fish/rstn/internal/types"
)

// stmts checks a list of statements and reports whether all of them check.
// Unless AllErrors is set it stops at the first failing statement.
func (c *Checker) stmts(list []syntax.Stmt) bool {
	ok := true
	for _, s := range list {
		if !c.stmt(s) {
			ok = false
			if !c.conf.AllErrors {
				break
			}
		}
	}
	return ok
}

// stmt checks a single statement and reports whether it checks.
func (c *Checker) stmt(s syntax.Stmt) bool {
	before := c.errors

	switch s := s.(type) {
	case *syntax.ExprStmt:
		c.exprStmt(s)

	case *syntax.DeclStmt:
		c.declStmt(s)

	case *syntax.AssignStmt:
		c.assignStmt(s)

	case *syntax.BlockStmt:
		c.stmts(s.Stmts)

	case *syntax.IfStmt:
		c.ifStmt(s)

	case *syntax.LoopStmt:
		old := c.openScope(s.Scope)
		c.stmts(s.Body.Stmts)
		c.closeScope(old)

	case *syntax.ForStmt:
		c.forStmt(s)

	case *syntax.FuncDecl:
		c.funcDecl(s)

	case *syntax.ReturnStmt:
		c.returnStmt(s)

	default:
		c.errorf(s.Pos(), "unexpected statement %T", s)
	}

	return c.errors == before
}

// exprStmt checks an expression statement. A call to a function without
// result is allowed here.
func (c *Checker) exprStmt(s *syntax.ExprStmt) {
	if call, ok := s.X.(*syntax.CallExpr); ok {
		c.recordType(call, c.call(call, true))
		return
	}
	c.typeOf(s.X)
}

// declStmt checks let and const declarations. An annotated declaration
// must agree with its initializer; an unannotated one adopts the
// initializer's type. The variable becomes visible after its initializer
// is checked.
func (c *Checker) declStmt(s *syntax.DeclStmt) {
	defer c.declare(s.Obj)

	if s.Type != nil && !c.validType(s.Pos(), s.Type) {
		return
	}
	if s.Value == nil {
		return
	}

	val := c.typeOf(s.Value)
	if val == tvoid {
		return
	}

	if s.Type != nil {
		list := []types.Type{s.Type, val}
		if !checkCollection(list) {
			c.exprErrorf(s.Value, list, "cannot use %s value as %s in declaration of %s",
				val, s.Type, s.Name.Value)
			return
		}
	} else {
		c.setVarType(s.Obj, val)
	}
	c.setAssigned(s.Obj)
}

// assignStmt checks LHS = RHS. Constants cannot be assigned. A variable
// without a type adopts the type of its first assigned value.
func (c *Checker) assignStmt(s *syntax.AssignStmt) {
	val := c.typeOf(s.RHS)
	if val == tvoid {
		return
	}

	if n, ok := s.LHS.(*syntax.Name); ok {
		c.assignName(n, val)
		return
	}

	if v := c.rootVar(s.LHS); v != nil && v.IsConst() {
		c.exprErrorf(s.LHS, nil, "cannot assign to %s (constant %s)", syntax.ExprString(s.LHS), v.Name())
		return
	}
	target := c.typeOf(s.LHS)
	if target == tvoid {
		return
	}
	list := []types.Type{target, val}
	if !checkCollection(list) {
		c.exprErrorf(s.RHS, list, "cannot assign %s to %s of type %s", val, syntax.ExprString(s.LHS), target)
	}
}

// assignName checks an assignment to a plain identifier.
func (c *Checker) assignName(n *syntax.Name, val types.Type) {
	ent := c.resolve(n.Value)
	switch obj := ent.obj.(type) {
	case *types.Var:
		if obj.IsConst() {
			c.exprErrorf(n, nil, "cannot assign to constant %s", n.Value)
			return
		}
		if obj.Type() == nil {
			c.setVarType(obj, val)
		} else if list := []types.Type{obj.Type(), val}; !checkCollection(list) {
			c.exprErrorf(n, list, "cannot assign %s to %s of type %s", val, n.Value, obj.Type())
			return
		}
		c.setAssigned(obj)
		return
	case *types.FuncObj:
		c.exprErrorf(n, nil, "cannot assign to function %s", n.Value)
		return
	}

	if ent.param != nil {
		if list := []types.Type{ent.param, val}; !checkCollection(list) {
			c.exprErrorf(n, list, "cannot assign %s to parameter %s of type %s", val, n.Value, ent.param)
		}
		return
	}
	c.exprErrorf(n, nil, "identifier %s not found", n.Value)
}

// rootVar returns the variable at the root of an access chain, or nil.
func (c *Checker) rootVar(x syntax.Expr) *types.Var {
	for {
		switch e := x.(type) {
		case *syntax.Name:
			v, _ := c.resolve(e.Value).obj.(*types.Var)
			return v
		case *syntax.IndexExpr:
			x = e.X
		case *syntax.SelectorExpr:
			x = e.X
		case *syntax.TupleIndexExpr:
			x = e.X
		default:
			return nil
		}
	}
}

// ifStmt checks an if statement and its else chain.
func (c *Checker) ifStmt(s *syntax.IfStmt) {
	cond := c.typeOf(s.Cond)
	if cond == tvoid {
		return
	}
	if !isBoolean(cond) {
		c.exprErrorf(s.Cond, []types.Type{cond}, "non-boolean condition in if statement")
		return
	}

	implicitElse := s.Else != nil && s.Else.Implicit
	var before map[declKey]bool
	if implicitElse {
		before = c.declaredIn(s.Scope)
	}

	old := c.openScope(s.Scope)
	ok := c.stmts(s.Then.Stmts)
	c.closeScope(old)

	if implicitElse {
		c.hideSince(s.Scope, before)
	}

	if s.Else != nil && (ok || c.conf.AllErrors) {
		c.ifStmt(s.Else)
	}
}

// forStmt checks for (x in iter). The iterable must be an int range or an
// int array; the loop variable is an int.
func (c *Checker) forStmt(s *syntax.ForStmt) {
	var iter types.Type
	if r, ok := s.Iter.(*syntax.RangeExpr); ok {
		iter = c.rangeExpr(r)
		c.recordType(r, iter)
	} else {
		iter = c.typeOf(s.Iter)
	}
	if iter == tvoid {
		return
	}
	if _, isRange := s.Iter.(*syntax.RangeExpr); !isRange && !types.IsIntArray(iter) {
		c.exprErrorf(s.Iter, []types.Type{iter}, "cannot range over %s: want an int range or an int array", iter)
		return
	}

	old := c.openScope(s.Scope)
	c.setVarType(s.Obj, tint)
	c.setAssigned(s.Obj)
	c.declare(s.Obj)
	c.stmts(s.Body.Stmts)
	c.closeScope(old)
}

// funcDecl checks a function declaration. The function is visible in its
// own body.
func (c *Checker) funcDecl(d *syntax.FuncDecl) {
	c.declare(d.Obj)

	for _, p := range d.Params {
		if !c.validType(p.Pos(), p.Type) {
			return
		}
	}
	if d.Result != nil && !c.validType(d.Pos(), d.Result) {
		return
	}

	c.funcScopes[d.Scope] = d
	c.funcs = append(c.funcs, d)
	old := c.openScope(d.Scope)
	c.stmts(d.Body.Stmts)
	c.closeScope(old)
	c.funcs = c.funcs[:len(c.funcs)-1]
}

// returnStmt checks a return against the enclosing function's result.
// Outside a function the value only has to check.
func (c *Checker) returnStmt(s *syntax.ReturnStmt) {
	fn := c.currentFunc()

	if s.Result == nil {
		if fn != nil && fn.Result != nil {
			c.errorf(s.Pos(), "missing return value in %s (want %s)", fn.Name.Value, fn.Result)
		}
		return
	}

	val := c.typeOf(s.Result)
	if val == tvoid || fn == nil {
		return
	}
	if fn.Result == nil {
		c.exprErrorf(s.Result, []types.Type{val}, "unexpected return value in %s", fn.Name.Value)
		return
	}
	list := []types.Type{fn.Result, val}
	if !checkCollection(list) {
		c.exprErrorf(s.Result, list, "cannot use %s value as %s in return from %s", val, fn.Result, fn.Name.Value)
	}
}
