package types2

import (
	"github.com/you-not-fish/rstn/internal/syntax"
	"github.com/you-not-fish/rstn/internal/types"
)

// Checker is the type checker.
type Checker struct {
	conf   *Config
	table  *types.Table
	result *Result

	// Current checking context
	scope types.ScopeID       // current scope
	funcs []*syntax.FuncDecl // enclosing functions, innermost last

	// Objects whose declaration has been checked, keyed by the scope they
	// were declared in. Lexical resolution only sees these, so a name used
	// before its declaration does not resolve to it.
	declared map[declKey]types.Object

	// Names declared by the then arm of an if with a plain else. The else
	// arm shares the if's scope id but must not see them.
	hidden map[declKey]bool

	// Function declarations keyed by their body scope.
	funcScopes map[types.ScopeID]*syntax.FuncDecl

	// Error tracking
	errors int        // error count
	first  *TypeError // first error
}

type declKey struct {
	scope types.ScopeID
	name  string
}

// checkFile type-checks the statements of a file in order.
func (c *Checker) checkFile(file *syntax.File) {
	c.stmts(file.Stmts)
}

// openScope makes id the current scope and returns the previous one.
func (c *Checker) openScope(id types.ScopeID) types.ScopeID {
	old := c.scope
	c.scope = id
	return old
}

// closeScope restores the scope returned by openScope.
func (c *Checker) closeScope(old types.ScopeID) {
	c.scope = old
}

// setVarType back-fills the type of v.
func (c *Checker) setVarType(v *types.Var, typ types.Type) {
	if c.conf.Resolution == TableScan {
		c.table.UpdateVarType(v.Name(), typ)
		return
	}
	v.SetType(typ)
}

// setAssigned marks v as holding a value.
func (c *Checker) setAssigned(v *types.Var) {
	if c.conf.Resolution == TableScan {
		c.table.UpdateVarAssigned(v.Name())
		return
	}
	v.SetAssigned()
}

// currentFunc returns the innermost enclosing function, or nil.
func (c *Checker) currentFunc() *syntax.FuncDecl {
	if len(c.funcs) == 0 {
		return nil
	}
	return c.funcs[len(c.funcs)-1]
}

// recordType records the type of an expression.
func (c *Checker) recordType(e syntax.Expr, typ types.Type) {
	if types.IsValid(typ) {
		c.result.Types[e] = typ
	}
}
