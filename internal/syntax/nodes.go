package syntax

import "github.com/you-not-fish/rstn/internal/types"

// ----------------------------------------------------------------------------
// Interfaces
//
// There are 2 main classes of nodes: Expressions and Statements.
// All nodes implement the Node interface. The node set is closed: the
// marker methods keep implementations inside this package, so a type
// switch over Expr or Stmt can list every case.

// Node is the interface implemented by all AST nodes.
type Node interface {
	Pos() Pos // position of first character belonging to the node
	aNode()   // marker method to restrict implementations to this package
}

// Expr is the interface for all expression nodes.
type Expr interface {
	Node
	aExpr()
}

// Stmt is the interface for all statement nodes.
type Stmt interface {
	Node
	aStmt()
}

// ----------------------------------------------------------------------------
// Base node types

// node is the base struct embedded in all AST nodes.
type node struct {
	pos Pos
}

func (n *node) Pos() Pos { return n.pos }
func (n *node) aNode()   {}

// expr is embedded in all expression nodes.
type expr struct{ node }

func (*expr) aExpr() {}

// stmt is embedded in all statement nodes.
type stmt struct{ node }

func (*stmt) aStmt() {}

// ----------------------------------------------------------------------------
// Files

// File represents a complete source file: a sequence of statements.
type File struct {
	node
	Stmts []Stmt
}

// Field represents a function parameter: Name: Type.
type Field struct {
	node
	Name *Name
	Type types.Type
}

// ----------------------------------------------------------------------------
// Expressions

// Name represents an identifier.
type Name struct {
	expr
	Value string // identifier string
}

// BasicLit represents a literal value (int, float, string, bool).
type BasicLit struct {
	expr
	Value string  // literal text (verbatim content for strings)
	Kind  LitKind // IntLit, FloatLit, StringLit, BoolLit
	Num   Number  // value for IntLit and FloatLit
}

// Operation represents a unary or binary operation.
// For unary operations, Y is nil.
// For binary operations, both X and Y are set.
type Operation struct {
	expr
	Op Token // operator token
	X  Expr  // left operand (or only operand for unary)
	Y  Expr  // right operand (nil for unary)
}

// CallExpr represents a function call: Fun(Args...)
type CallExpr struct {
	expr
	Fun  *Name  // called function
	Args []Expr // argument list
}

// TupleExpr represents a tuple literal: (a, b, ...). () is the empty tuple.
type TupleExpr struct {
	expr
	Elems []Expr
}

// ArrayLit represents an array literal: [a, b, ...]
type ArrayLit struct {
	expr
	Elems []Expr
}

// IndexExpr represents an index expression: X[Index]
type IndexExpr struct {
	expr
	X     Expr // indexed expression
	Index Expr // index expression
}

// SelectorExpr represents a member access: X.Sel
type SelectorExpr struct {
	expr
	X   Expr  // receiver expression
	Sel *Name // member name
}

// TupleIndexExpr represents a positional tuple access: X.Index
type TupleIndexExpr struct {
	expr
	X     Expr
	Index int
}

// RangeExpr represents Start..End or Start..=End.
type RangeExpr struct {
	expr
	Start     Expr
	End       Expr
	Inclusive bool
}

// ----------------------------------------------------------------------------
// Statements

// ExprStmt represents an expression used as a statement.
type ExprStmt struct {
	stmt
	X Expr // expression
}

// DeclStmt represents let Name [: Type] [= Value]; or const Name: Type = Value;
type DeclStmt struct {
	stmt
	Const bool
	Name  *Name
	Type  types.Type // declared type (nil if inferred)
	Value Expr       // initializer (nil if none)
	Obj   *types.Var // symbol inserted by the parser
}

// AssignStmt represents an assignment: LHS = RHS.
// LHS is a Name or an access chain of IndexExpr, SelectorExpr and
// TupleIndexExpr nodes rooted at a Name.
type AssignStmt struct {
	stmt
	LHS Expr
	RHS Expr
}

// BlockStmt represents a block statement: { Stmts... }
type BlockStmt struct {
	stmt
	Stmts  []Stmt // statements
	Rbrace Pos    // position of closing brace
}

// IfStmt represents an if statement: if Cond Then [else Else].
// A plain else block is represented as an Implicit IfStmt whose condition
// is the literal true and whose Scope is that of the enclosing if.
type IfStmt struct {
	stmt
	Cond     Expr
	Then     *BlockStmt
	Else     *IfStmt // nil, else-if, or Implicit else
	Scope    types.ScopeID
	Implicit bool
}

// LoopStmt represents an unconditional loop: loop { Body }
type LoopStmt struct {
	stmt
	Body  *BlockStmt
	Scope types.ScopeID
}

// ForStmt represents for (Var in Iter) { Body }
type ForStmt struct {
	stmt
	Var   *Name
	Iter  Expr
	Body  *BlockStmt
	Scope types.ScopeID
	Obj   *types.Var // loop variable, declared in Scope
}

// FuncDecl represents fn Name(Params) [-> Result] { Body }
type FuncDecl struct {
	stmt
	Name   *Name
	Params []*Field
	Result types.Type // nil for functions without a result
	Body   *BlockStmt
	Scope  types.ScopeID
	Obj    *types.FuncObj
}

// ReturnStmt represents a return statement: return [Result];
type ReturnStmt struct {
	stmt
	Result Expr // return value (nil for bare return)
}
