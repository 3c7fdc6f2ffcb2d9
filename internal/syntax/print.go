package syntax

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/you-not-fish/rstn/internal/types"
)

// Fprint writes a textual representation of the AST to w.
func Fprint(w io.Writer, node Node) {
	p := &printer{w: w}
	p.print(node)
}

type printer struct {
	w      io.Writer
	indent int
}

func (p *printer) printf(format string, args ...interface{}) {
	fmt.Fprintf(p.w, "%s%s", strings.Repeat("  ", p.indent), fmt.Sprintf(format, args...))
}

// child prints a labelled sub-node one level deeper.
func (p *printer) child(label string, n Node) {
	p.printf("%s:\n", label)
	p.indent++
	p.print(n)
	p.indent--
}

func (p *printer) block(b *BlockStmt) {
	p.indent++
	for _, s := range b.Stmts {
		p.print(s)
	}
	p.indent--
}

func (p *printer) print(node Node) {
	if node == nil {
		return
	}

	switch n := node.(type) {
	case *File:
		p.printf("File %s\n", n.pos)
		p.indent++
		for _, s := range n.Stmts {
			p.print(s)
		}
		p.indent--

	case *DeclStmt:
		kind := "Let"
		if n.Const {
			kind = "Const"
		}
		p.printf("%s %s %s\n", kind, n.pos, n.Name.Value)
		p.indent++
		if n.Type != nil {
			p.printf("Type: %s\n", n.Type)
		}
		if n.Value != nil {
			p.child("Value", n.Value)
		}
		p.indent--

	case *FuncDecl:
		p.printf("FuncDecl %s %s scope=%d\n", n.pos, n.Name.Value, n.Scope)
		p.indent++
		if len(n.Params) > 0 {
			p.printf("Params:\n")
			p.indent++
			for _, f := range n.Params {
				p.printf("%s: %s\n", f.Name.Value, f.Type)
			}
			p.indent--
		}
		if n.Result != nil {
			p.printf("Result: %s\n", n.Result)
		}
		p.printf("Body:\n")
		p.block(n.Body)
		p.indent--

	case *BlockStmt:
		p.printf("BlockStmt %s\n", n.pos)
		p.block(n)

	case *IfStmt:
		if n.Implicit {
			p.printf("Else %s scope=%d\n", n.pos, n.Scope)
			p.block(n.Then)
			break
		}
		p.printf("IfStmt %s scope=%d\n", n.pos, n.Scope)
		p.indent++
		p.child("Cond", n.Cond)
		p.printf("Then:\n")
		p.block(n.Then)
		if n.Else != nil {
			p.print(n.Else)
		}
		p.indent--

	case *LoopStmt:
		p.printf("LoopStmt %s scope=%d\n", n.pos, n.Scope)
		p.block(n.Body)

	case *ForStmt:
		p.printf("ForStmt %s %s scope=%d\n", n.pos, n.Var.Value, n.Scope)
		p.indent++
		p.child("Iter", n.Iter)
		p.printf("Body:\n")
		p.block(n.Body)
		p.indent--

	case *ReturnStmt:
		p.printf("ReturnStmt %s\n", n.pos)
		if n.Result != nil {
			p.indent++
			p.print(n.Result)
			p.indent--
		}

	case *AssignStmt:
		p.printf("AssignStmt %s\n", n.pos)
		p.indent++
		p.child("LHS", n.LHS)
		p.child("RHS", n.RHS)
		p.indent--

	case *ExprStmt:
		p.printf("ExprStmt %s\n", n.pos)
		p.indent++
		p.print(n.X)
		p.indent--

	case *Name:
		p.printf("Name %s %q\n", n.pos, n.Value)

	case *BasicLit:
		p.printf("BasicLit %s %s %s\n", n.pos, n.Kind, litString(n))

	case *Operation:
		if n.Y == nil {
			p.printf("UnaryOp %s %s\n", n.pos, n.Op)
			p.indent++
			p.print(n.X)
			p.indent--
		} else {
			p.printf("BinaryOp %s %s\n", n.pos, n.Op)
			p.indent++
			p.child("X", n.X)
			p.child("Y", n.Y)
			p.indent--
		}

	case *CallExpr:
		p.printf("CallExpr %s %s\n", n.pos, n.Fun.Value)
		if len(n.Args) > 0 {
			p.indent++
			p.printf("Args:\n")
			p.indent++
			for _, a := range n.Args {
				p.print(a)
			}
			p.indent -= 2
		}

	case *TupleExpr:
		p.printf("TupleExpr %s\n", n.pos)
		p.indent++
		for _, e := range n.Elems {
			p.print(e)
		}
		p.indent--

	case *ArrayLit:
		p.printf("ArrayLit %s\n", n.pos)
		p.indent++
		for _, e := range n.Elems {
			p.print(e)
		}
		p.indent--

	case *IndexExpr:
		p.printf("IndexExpr %s\n", n.pos)
		p.indent++
		p.child("X", n.X)
		p.child("Index", n.Index)
		p.indent--

	case *SelectorExpr:
		p.printf("SelectorExpr %s\n", n.pos)
		p.indent++
		p.child("X", n.X)
		p.printf("Sel: %s\n", n.Sel.Value)
		p.indent--

	case *TupleIndexExpr:
		p.printf("TupleIndexExpr %s %d\n", n.pos, n.Index)
		p.indent++
		p.print(n.X)
		p.indent--

	case *RangeExpr:
		op := ".."
		if n.Inclusive {
			op = "..="
		}
		p.printf("RangeExpr %s %s\n", n.pos, op)
		p.indent++
		p.child("Start", n.Start)
		p.child("End", n.End)
		p.indent--

	default:
		p.printf("<%T>\n", node)
	}
}

// litString renders a literal the way it is written in source.
func litString(lit *BasicLit) string {
	if lit.Kind == StringLit {
		return strconv.Quote(lit.Value)
	}
	return lit.Value
}

// ExprString returns the source form of an expression. Binary operations
// are fully parenthesized except at the top level.
func ExprString(e Expr) string {
	var b strings.Builder
	writeExpr(&b, e, true)
	return b.String()
}

func writeExpr(b *strings.Builder, e Expr, top bool) {
	switch x := e.(type) {
	case nil:
		b.WriteString("<nil>")
	case *Name:
		b.WriteString(x.Value)
	case *BasicLit:
		if x.Kind == StringLit {
			b.WriteString(`"` + x.Value + `"`)
		} else {
			b.WriteString(x.Value)
		}
	case *Operation:
		if x.Y == nil {
			b.WriteString(x.Op.String())
			writeExpr(b, x.X, false)
			return
		}
		if !top {
			b.WriteByte('(')
		}
		writeExpr(b, x.X, false)
		b.WriteString(" " + x.Op.String() + " ")
		writeExpr(b, x.Y, false)
		if !top {
			b.WriteByte(')')
		}
	case *CallExpr:
		b.WriteString(x.Fun.Value)
		writeList(b, "(", x.Args, ")")
	case *TupleExpr:
		writeList(b, "(", x.Elems, ")")
	case *ArrayLit:
		writeList(b, "[", x.Elems, "]")
	case *IndexExpr:
		writeExpr(b, x.X, false)
		b.WriteByte('[')
		writeExpr(b, x.Index, true)
		b.WriteByte(']')
	case *SelectorExpr:
		writeExpr(b, x.X, false)
		b.WriteString("." + x.Sel.Value)
	case *TupleIndexExpr:
		writeExpr(b, x.X, false)
		b.WriteString("." + strconv.Itoa(x.Index))
	case *RangeExpr:
		writeExpr(b, x.Start, false)
		if x.Inclusive {
			b.WriteString("..=")
		} else {
			b.WriteString("..")
		}
		writeExpr(b, x.End, false)
	default:
		fmt.Fprintf(b, "<%T>", e)
	}
}

func writeList(b *strings.Builder, open string, list []Expr, close string) {
	b.WriteString(open)
	for i, e := range list {
		if i > 0 {
			b.WriteString(", ")
		}
		writeExpr(b, e, true)
	}
	b.WriteString(close)
}

// typeString formats an optional type annotation.
func typeString(t types.Type) string {
	if t == nil {
		return ""
	}
	return t.String()
}
