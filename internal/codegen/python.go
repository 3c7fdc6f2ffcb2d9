// Package codegen renders a checked rstn AST as Python source.
//
// The translation is direct: every statement maps to one Python statement
// or block, loop becomes while True, ranges become range() calls and
// tuple indexing becomes subscripting. Declarations without a value bind None.
// Identifiers that are Python keywords, or that would shadow the range
// builtin, get a trailing underscore.
package codegen

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/you-not-fish/rstn/internal/syntax"
)

// DefaultIndent is the number of spaces per block level.
const DefaultIndent = 4

// Generate writes the Python translation of file to w.
func Generate(w io.Writer, file *syntax.File) error {
	return GenerateIndent(w, file, DefaultIndent)
}

// GenerateIndent is like Generate with a custom indentation width.
// Widths below 1 fall back to DefaultIndent.
func GenerateIndent(w io.Writer, file *syntax.File, width int) error {
	if width < 1 {
		width = DefaultIndent
	}
	g := &generator{e: newEmitter(w, width), names: renames(file)}
	g.e.emitComment("generated by rstnc")
	for _, s := range file.Stmts {
		g.stmt(s)
	}
	if g.e.err != nil {
		return fmt.Errorf("codegen: %w", g.e.err)
	}
	return nil
}

type generator struct {
	e     *emitter
	names map[string]string // rstn identifier -> Python identifier
}

// reserved holds the Python keywords and builtins an rstn identifier may
// not keep as is.
var reserved = map[string]bool{
	"False": true, "None": true, "True": true, "and": true, "as": true,
	"assert": true, "async": true, "await": true, "break": true, "class": true,
	"continue": true, "def": true, "del": true, "elif": true, "else": true,
	"except": true, "finally": true, "for": true, "from": true, "global": true,
	"if": true, "import": true, "in": true, "is": true, "lambda": true,
	"nonlocal": true, "not": true, "or": true, "pass": true, "raise": true,
	"return": true, "try": true, "while": true, "with": true, "yield": true,
	"range": true,
}

// renames maps every reserved identifier used in file to a fresh name
// that collides with no other identifier in the file.
func renames(file *syntax.File) map[string]string {
	used := make(map[string]bool)
	syntax.Inspect(file, func(n syntax.Node) bool {
		if name, ok := n.(*syntax.Name); ok {
			used[name.Value] = true
		}
		return true
	})

	names := make(map[string]string)
	for name := range used {
		if !reserved[name] {
			continue
		}
		alt := name + "_"
		for used[alt] {
			alt += "_"
		}
		used[alt] = true
		names[name] = alt
	}
	return names
}

// ident returns the Python spelling of an rstn identifier.
func (g *generator) ident(n *syntax.Name) string {
	if alt, ok := g.names[n.Value]; ok {
		return alt
	}
	return n.Value
}

// block emits the statements of b one level deeper. Python needs at least
// one statement per block, so an empty block becomes pass.
func (g *generator) block(b *syntax.BlockStmt) {
	g.e.in()
	if len(b.Stmts) == 0 {
		g.e.emit("pass")
	}
	for _, s := range b.Stmts {
		g.stmt(s)
	}
	g.e.out()
}

func (g *generator) stmt(s syntax.Stmt) {
	switch s := s.(type) {
	case *syntax.ExprStmt:
		g.e.emit("%s", g.expr(s.X))

	case *syntax.DeclStmt:
		if s.Value == nil {
			g.e.emit("%s = None", g.ident(s.Name))
		} else {
			g.e.emit("%s = %s", g.ident(s.Name), g.expr(s.Value))
		}

	case *syntax.AssignStmt:
		g.e.emit("%s = %s", g.expr(s.LHS), g.expr(s.RHS))

	case *syntax.BlockStmt:
		// Python has no bare blocks; the statements run in place.
		for _, x := range s.Stmts {
			g.stmt(x)
		}

	case *syntax.IfStmt:
		g.ifStmt(s, "if")

	case *syntax.LoopStmt:
		g.e.emit("while True:")
		g.block(s.Body)

	case *syntax.ForStmt:
		g.e.emit("for %s in %s:", g.ident(s.Var), g.expr(s.Iter))
		g.block(s.Body)

	case *syntax.FuncDecl:
		params := make([]string, len(s.Params))
		for i, p := range s.Params {
			params[i] = g.ident(p.Name)
		}
		g.e.emit("def %s(%s):", g.ident(s.Name), strings.Join(params, ", "))
		g.block(s.Body)
		if g.e.indent == 0 {
			g.e.emitLine()
		}

	case *syntax.ReturnStmt:
		if s.Result == nil {
			g.e.emit("return")
		} else {
			g.e.emit("return %s", g.expr(s.Result))
		}

	default:
		g.e.fail(fmt.Errorf("%s: unexpected statement %T", s.Pos(), s))
	}
}

// ifStmt emits an if chain. Else-if links become elif and the implicit
// else becomes a plain else.
func (g *generator) ifStmt(s *syntax.IfStmt, keyword string) {
	g.e.emit("%s %s:", keyword, g.expr(s.Cond))
	g.block(s.Then)

	switch {
	case s.Else == nil:
	case s.Else.Implicit:
		g.e.emit("else:")
		g.block(s.Else.Then)
	default:
		g.ifStmt(s.Else, "elif")
	}
}

// expr returns the Python form of an expression.
func (g *generator) expr(x syntax.Expr) string {
	var b strings.Builder
	g.writeExpr(&b, x, true)
	return b.String()
}

// writeExpr writes x to b. Nested operations and negative literals are
// parenthesized so the source grouping survives Python's precedence rules,
// where -x ** 2 means -(x ** 2).
func (g *generator) writeExpr(b *strings.Builder, x syntax.Expr, top bool) {
	switch x := x.(type) {
	case *syntax.Name:
		b.WriteString(g.ident(x))

	case *syntax.BasicLit:
		lit := literal(x)
		if !top && strings.HasPrefix(lit, "-") {
			lit = "(" + lit + ")"
		}
		b.WriteString(lit)

	case *syntax.Operation:
		if x.Y == nil {
			if !top {
				b.WriteByte('(')
			}
			b.WriteString(operator(x.Op))
			g.writeExpr(b, x.X, false)
			if !top {
				b.WriteByte(')')
			}
			return
		}
		if !top {
			b.WriteByte('(')
		}
		g.writeExpr(b, x.X, false)
		b.WriteString(" " + operator(x.Op) + " ")
		g.writeExpr(b, x.Y, false)
		if !top {
			b.WriteByte(')')
		}

	case *syntax.CallExpr:
		b.WriteString(g.ident(x.Fun))
		g.writeList(b, "(", x.Args, ")")

	case *syntax.TupleExpr:
		if len(x.Elems) == 1 {
			b.WriteByte('(')
			g.writeExpr(b, x.Elems[0], true)
			b.WriteString(",)")
			return
		}
		g.writeList(b, "(", x.Elems, ")")

	case *syntax.ArrayLit:
		g.writeList(b, "[", x.Elems, "]")

	case *syntax.IndexExpr:
		g.writeExpr(b, x.X, false)
		b.WriteByte('[')
		g.writeExpr(b, x.Index, true)
		b.WriteByte(']')

	case *syntax.TupleIndexExpr:
		g.writeExpr(b, x.X, false)
		b.WriteString("[" + strconv.Itoa(x.Index) + "]")

	case *syntax.SelectorExpr:
		g.writeExpr(b, x.X, false)
		b.WriteString("." + g.ident(x.Sel))

	case *syntax.RangeExpr:
		b.WriteString("range(")
		g.writeExpr(b, x.Start, true)
		b.WriteString(", ")
		if x.Inclusive {
			g.writeExpr(b, x.End, false)
			b.WriteString(" + 1")
		} else {
			g.writeExpr(b, x.End, true)
		}
		b.WriteByte(')')

	default:
		g.e.fail(fmt.Errorf("%s: unexpected expression %T", x.Pos(), x))
	}
}

func (g *generator) writeList(b *strings.Builder, open string, list []syntax.Expr, close string) {
	b.WriteString(open)
	for i, x := range list {
		if i > 0 {
			b.WriteString(", ")
		}
		g.writeExpr(b, x, true)
	}
	b.WriteString(close)
}

// literal renders a literal in Python syntax.
func literal(lit *syntax.BasicLit) string {
	switch lit.Kind {
	case syntax.BoolLit:
		if lit.Value == "true" {
			return "True"
		}
		return "False"
	case syntax.StringLit:
		return strconv.Quote(lit.Value)
	}
	return lit.Value
}

// operator maps an rstn operator to its Python spelling.
func operator(op syntax.Token) string {
	switch op {
	case syntax.AndAnd:
		return "and"
	case syntax.OrOr:
		return "or"
	case syntax.Not:
		return "not "
	}
	return op.String()
}
