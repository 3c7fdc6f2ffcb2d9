// Package types2 implements semantic checking for the rstn language.
package types2

import (
	"fmt"
	"strings"

	"github.com/you-not-fish/rstn/internal/syntax"
	"github.com/you-not-fish/rstn/internal/types"
)

// TypeError represents a type checking error.
type TypeError struct {
	Pos   syntax.Pos
	Msg   string
	Expr  string       // offending expression, if any
	Types []types.Type // collected type evidence, if any
}

// Error implements the error interface.
func (e *TypeError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s", e.Pos, e.Msg)
	if e.Expr != "" || len(e.Types) > 0 {
		b.WriteString(" (")
		if e.Expr != "" {
			b.WriteString("in " + e.Expr)
			if len(e.Types) > 0 {
				b.WriteString("; ")
			}
		}
		if len(e.Types) > 0 {
			b.WriteString("types " + types.ListString(e.Types))
		}
		b.WriteString(")")
	}
	return b.String()
}

// ErrorHandler is a function called for each type error.
type ErrorHandler func(pos syntax.Pos, msg string)

// errorf reports a type checking error at the given position.
func (c *Checker) errorf(pos syntax.Pos, format string, args ...interface{}) {
	c.report(&TypeError{Pos: pos, Msg: fmt.Sprintf(format, args...)})
}

// exprErrorf reports an error about e together with the collected types.
func (c *Checker) exprErrorf(e syntax.Expr, list []types.Type, format string, args ...interface{}) {
	c.report(&TypeError{
		Pos:   e.Pos(),
		Msg:   fmt.Sprintf(format, args...),
		Expr:  syntax.ExprString(e),
		Types: list,
	})
}

func (c *Checker) report(err *TypeError) {
	if c.errors == 0 {
		c.first = err
	}
	c.errors++
	c.result.Errors = append(c.result.Errors, err)

	if c.conf.Error != nil {
		c.conf.Error(err.Pos, err.Msg)
	}
}
