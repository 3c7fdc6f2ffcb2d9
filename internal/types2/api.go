package types2

import (
	"fmt"

	"github.com/you-not-fish/rstn/internal/syntax"
	"github.com/you-not-fish/rstn/internal/types"
)

// Resolution selects how the checker resolves identifiers.
type Resolution int

const (
	// Lexical resolves names along the scope tree recorded by the parser,
	// honoring statement order within a scope.
	Lexical Resolution = iota

	// TableScan resolves names by scanning the whole symbol table in
	// ascending scope order, and parameters by scanning every function.
	TableScan
)

var resolutionNames = [...]string{
	Lexical:   "lexical",
	TableScan: "table",
}

func (r Resolution) String() string {
	if r >= 0 && int(r) < len(resolutionNames) {
		return resolutionNames[r]
	}
	return fmt.Sprintf("Resolution(%d)", int(r))
}

// ParseResolution converts a configuration string to a Resolution.
func ParseResolution(s string) (Resolution, error) {
	for r, name := range resolutionNames {
		if name == s {
			return Resolution(r), nil
		}
	}
	return Lexical, fmt.Errorf("unknown resolution %q (want lexical or table)", s)
}

// Config specifies the configuration for type checking.
type Config struct {
	// Error is called for each type error.
	// If nil, errors are only recorded in the Result.
	Error ErrorHandler

	// Resolution selects the identifier resolution strategy.
	Resolution Resolution

	// AllErrors keeps checking after a statement fails.
	// By default checking stops at the first failing statement.
	AllErrors bool
}

// Result holds the outcome of type checking.
type Result struct {
	// OK reports whether every checked statement type-checks.
	OK bool

	// Types maps expressions to their inferred types.
	// Expressions whose check failed are not recorded.
	Types map[syntax.Expr]types.Type

	// Errors lists the reported errors in order.
	Errors []*TypeError
}

// TypeOf returns the recorded type of e, or nil.
func (r *Result) TypeOf(e syntax.Expr) types.Type {
	return r.Types[e]
}

// Check type-checks a parsed file against the symbol table the parser
// built for it. The table's variables receive inferred types and assigned
// flags as a side effect.
//
// The returned error is the first type error, or nil if the file checks.
func Check(file *syntax.File, table *types.Table, conf *Config) (*Result, error) {
	if conf == nil {
		conf = &Config{}
	}

	c := &Checker{
		conf:       conf,
		table:      table,
		result:     &Result{Types: make(map[syntax.Expr]types.Type)},
		scope:      types.GlobalScope,
		declared:   make(map[declKey]types.Object),
		hidden:     make(map[declKey]bool),
		funcScopes: make(map[types.ScopeID]*syntax.FuncDecl),
	}

	c.checkFile(file)

	c.result.OK = c.errors == 0
	if c.errors > 0 {
		return c.result, c.first
	}
	return c.result, nil
}
