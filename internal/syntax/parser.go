package syntax

import (
	"fmt"
	"io"
	"strconv"

	"github.com/you-not-fish/rstn/internal/types"
)

// SyntaxError represents a lexical or syntax error, or a scanner warning.
type SyntaxError struct {
	Pos Pos
	Msg string
}

func (e *SyntaxError) Error() string {
	return e.Pos.String() + ": " + e.Msg
}

// Parser performs syntax analysis on rstn source code.
//
// While parsing it populates a symbol table: every block gets a fresh scope
// id, and declarations are inserted into the scope that is active when they
// are parsed. The first error stops the parse.
type Parser struct {
	scanner *Scanner
	table   *types.Table

	// Current token info (cached from scanner)
	tok Token
	lit string
	pos Pos

	// Error handling
	errh     func(pos Pos, msg string)
	errcnt   int
	first    error // first error encountered
	abort    bool  // set by the first error
	warnings []*SyntaxError

	lastScope types.ScopeID // last minted scope id

	parens    map[Pos]bool // top-level comma per '(' already scanned
	lookahead int          // tokens read by hasTopLevelComma
}

// NewParser creates a new Parser for the given source.
// errh is called for the fatal error, if any; it may be nil.
func NewParser(filename string, src io.Reader, errh func(pos Pos, msg string)) *Parser {
	p := &Parser{
		table:  types.NewTable(),
		errh:   errh,
		parens: make(map[Pos]bool),
	}
	p.scanner = NewScanner(filename, src, func(line, col uint32, msg string) {
		p.errorAt(NewPos(filename, line, col), msg)
	})
	p.scanner.SetWarningHandler(func(line, col uint32, msg string) {
		p.warnings = append(p.warnings, &SyntaxError{Pos: NewPos(filename, line, col), Msg: msg})
	})
	p.next() // prime the parser with first token
	return p
}

// Table returns the symbol table built while parsing.
func (p *Parser) Table() *types.Table {
	return p.table
}

// Errors returns the number of errors encountered during parsing.
func (p *Parser) Errors() int {
	return p.errcnt
}

// FirstError returns the first error encountered, or nil if none.
func (p *Parser) FirstError() error {
	return p.first
}

// Warnings returns the recoverable diagnostics reported by the scanner.
func (p *Parser) Warnings() []*SyntaxError {
	return p.warnings
}

// ----------------------------------------------------------------------------
// Token navigation

// next advances to the next token.
func (p *Parser) next() {
	if p.abort {
		p.tok = _EOF
		return
	}
	p.scanner.Next()
	p.tok = p.scanner.Token()
	p.lit = p.scanner.Literal()
	p.pos = p.scanner.Pos()
	if p.abort {
		p.tok = _EOF
	}
}

// got reports whether the current token is tok.
// If so, it consumes the token and returns true.
func (p *Parser) got(tok Token) bool {
	if p.tok == tok {
		p.next()
		return true
	}
	return false
}

// want consumes the current token if it matches tok.
// Otherwise, reports an error.
func (p *Parser) want(tok Token) {
	if !p.got(tok) {
		p.syntaxError("expected " + tok.String() + ", found " + p.tokString())
	}
}

// mark captures the parser position for a bounded lookahead.
func (p *Parser) mark() Mark {
	return p.scanner.Save()
}

// reset rewinds to a position captured by mark.
func (p *Parser) reset(m Mark) {
	p.scanner.Restore(m)
	p.tok = p.scanner.Token()
	p.lit = p.scanner.Literal()
	p.pos = p.scanner.Pos()
}

// tokString describes the current token for diagnostics.
func (p *Parser) tokString() string {
	switch p.tok {
	case _Name:
		return "name " + p.lit
	case _Literal:
		if p.scanner.LitKind() == StringLit {
			return "literal " + strconv.Quote(p.lit)
		}
		return "literal " + p.lit
	}
	return p.tok.String()
}

// ----------------------------------------------------------------------------
// Error handling

// syntaxError reports a syntax error at the current position.
func (p *Parser) syntaxError(msg string) {
	p.errorAt(p.pos, msg)
}

// errorAt reports an error at a specific position and stops the parse.
func (p *Parser) errorAt(pos Pos, msg string) {
	if p.abort {
		return
	}
	p.first = &SyntaxError{Pos: pos, Msg: msg}
	p.errcnt++
	if p.errh != nil {
		p.errh(pos, msg)
	}
	p.abort = true
	p.tok = _EOF
}

// ----------------------------------------------------------------------------
// Scopes

// newScope mints the next scope id and creates it under the current scope.
// The first minted id is 1; 0 is the global scope.
func (p *Parser) newScope() types.ScopeID {
	p.lastScope++
	p.table.CreateScope(p.lastScope)
	return p.lastScope
}

// scopedBlock parses a block inside scope id.
func (p *Parser) scopedBlock(id types.ScopeID) *BlockStmt {
	p.table.EnterScope(id)
	b := p.blockStmt()
	p.table.ExitScope()
	return b
}

// ----------------------------------------------------------------------------
// Parsing entry point

// Parse parses a complete source file and returns the AST.
func (p *Parser) Parse() *File {
	f := &File{}
	f.pos = p.pos

	for !p.abort && p.tok != _EOF {
		if s := p.stmt(); s != nil && !p.abort {
			f.Stmts = append(f.Stmts, s)
		}
	}

	return f
}

// ----------------------------------------------------------------------------
// Helper methods

// name parses an identifier and returns a Name node.
func (p *Parser) name() *Name {
	n := &Name{Value: p.lit}
	n.pos = p.pos
	if p.tok != _Name {
		p.syntaxError("expected identifier, found " + p.tokString())
		n.Value = "_"
		return n
	}
	p.next()
	return n
}

// unitType parses a type annotation:
//
//	int | float | string | bool | Name | [T; N] | (T1, T2, ...)
func (p *Parser) unitType() types.Type {
	switch p.tok {
	case _IntType:
		p.next()
		return types.Typ[types.Int]
	case _FloatType:
		p.next()
		return types.Typ[types.Float]
	case _StringType:
		p.next()
		return types.Typ[types.String]
	case _BoolType:
		p.next()
		return types.Typ[types.Bool]

	case _Name:
		t := types.NewIdent(p.lit)
		p.next()
		return t

	case _Lbrack:
		p.next()
		elem := p.unitType()
		if !p.got(_Semi) {
			p.want(_Comma)
		}
		n := p.arrayLen()
		p.want(_Rbrack)
		return types.NewArray(elem, n)

	case _Lparen:
		p.next()
		var elems []types.Type
		for p.tok != _Rparen && p.tok != _EOF {
			elems = append(elems, p.unitType())
			if !p.got(_Comma) {
				break
			}
		}
		p.want(_Rparen)
		return types.NewTuple(elems...)
	}

	p.syntaxError("expected type, found " + p.tokString())
	return types.Typ[types.Void]
}

// arrayLen parses the length of an array type.
func (p *Parser) arrayLen() int {
	num := p.scanner.Number()
	if p.tok != _Literal || p.scanner.LitKind() != IntLit || num.Int < 0 {
		p.syntaxError("expected array length, found " + p.tokString())
		return 0
	}
	p.next()
	return int(num.Int)
}

// ----------------------------------------------------------------------------
// Statements

// stmt parses a statement.
func (p *Parser) stmt() Stmt {
	switch p.tok {
	case _Let, _Const:
		return p.declStmt()

	case _If:
		return p.ifStmt()

	case _Loop:
		return p.loopStmt()

	case _For:
		return p.forStmt()

	case _Fn:
		return p.funcDecl()

	case _Return:
		return p.returnStmt()

	case _Name:
		return p.nameStmt()

	default:
		return p.exprStmt(p.pos, p.expr())
	}
}

// nameStmt parses a statement that starts with an identifier. One token of
// lookahead past the identifier tells an assignment from an expression:
//
//	id = value;
//	id.a[0] = value;
//	id.a[0] + 1;
//	f(x);
func (p *Parser) nameStmt() Stmt {
	pos := p.pos
	switch p.scanner.Peek().Tok {
	case _Assign:
		lhs := p.name()
		p.table.AddRef(lhs.Value, lhs.pos.Line())
		return p.assignStmt(pos, lhs)

	case _Dot, _Lbrack:
		x := p.expr()
		if p.tok == _Assign {
			return p.assignStmt(pos, x)
		}
		return p.exprStmt(pos, x)
	}
	return p.exprStmt(pos, p.expr())
}

// exprStmt finishes an expression statement.
func (p *Parser) exprStmt(pos Pos, x Expr) Stmt {
	s := &ExprStmt{X: x}
	s.pos = pos
	p.want(_Semi)
	return s
}

// assignStmt parses = RHS; after an assignable LHS.
func (p *Parser) assignStmt(pos Pos, lhs Expr) Stmt {
	if !assignable(lhs) {
		p.errorAt(lhs.Pos(), "cannot assign to "+ExprString(lhs))
		return nil
	}
	s := &AssignStmt{LHS: lhs}
	s.pos = pos

	p.want(_Assign)
	s.RHS = p.expr()
	p.want(_Semi)

	return s
}

// assignable reports whether x is a name or an access chain rooted at one.
func assignable(x Expr) bool {
	for {
		switch e := x.(type) {
		case *Name:
			return true
		case *IndexExpr:
			x = e.X
		case *SelectorExpr:
			x = e.X
		case *TupleIndexExpr:
			x = e.X
		default:
			return false
		}
	}
}

// declStmt parses:
//
//	let Name [: Type] [= Value];
//	const Name: Type = Value;
func (p *Parser) declStmt() Stmt {
	s := &DeclStmt{Const: p.tok == _Const}
	s.pos = p.pos
	p.next()

	s.Name = p.name()
	if p.got(_Colon) {
		s.Type = p.unitType()
	}
	if p.got(_Assign) {
		s.Value = p.expr()
	}
	if s.Const && (s.Type == nil || s.Value == nil) && !p.abort {
		p.errorAt(s.pos, fmt.Sprintf("const %s requires a type and a value", s.Name.Value))
		return nil
	}
	p.want(_Semi)
	if p.abort {
		return nil
	}

	if s.Const {
		s.Obj = types.NewConst(s.Name.Value, s.pos.Line(), s.Type)
	} else {
		s.Obj = types.NewVar(s.Name.Value, s.pos.Line(), s.Type)
	}
	p.table.Insert(s.Obj)

	return s
}

// funcDecl parses: fn Name(p1: T1, ...) [-> Result] { Body }
//
// The function symbol is inserted into the enclosing scope before the body
// is parsed, so the body can call the function recursively. Parameters are
// recorded in the function symbol only.
func (p *Parser) funcDecl() Stmt {
	d := &FuncDecl{}
	d.pos = p.pos

	p.want(_Fn)
	d.Name = p.name()
	d.Params = p.paramList()

	if p.got(_Arrow) {
		d.Result = p.unitType()
	}

	names := make([]string, len(d.Params))
	typs := make([]types.Type, len(d.Params))
	for i, f := range d.Params {
		names[i] = f.Name.Value
		typs[i] = f.Type
	}
	d.Obj = types.NewFunc(d.Name.Value, d.pos.Line(), names, typs, d.Result)
	p.table.Insert(d.Obj)

	d.Scope = p.newScope()
	d.Body = p.scopedBlock(d.Scope)

	return d
}

// paramList parses (p1: T1, p2: T2, ...)
func (p *Parser) paramList() []*Field {
	p.want(_Lparen)

	var params []*Field
	for p.tok != _Rparen && p.tok != _EOF {
		f := &Field{}
		f.pos = p.pos
		f.Name = p.name()
		p.want(_Colon)
		f.Type = p.unitType()
		params = append(params, f)

		if !p.got(_Comma) {
			break
		}
	}

	p.want(_Rparen)
	return params
}

// blockStmt parses { stmts... }
func (p *Parser) blockStmt() *BlockStmt {
	b := &BlockStmt{}
	b.pos = p.pos

	p.want(_Lbrace)

	for p.tok != _Rbrace && p.tok != _EOF {
		if s := p.stmt(); s != nil {
			b.Stmts = append(b.Stmts, s)
		}
	}

	b.Rbrace = p.pos
	p.want(_Rbrace)

	return b
}

// ifStmt parses: if Cond { Then } [else if ... | else { Else }]
//
// A plain else block is parsed in the scope of the if it belongs to and is
// represented as an implicit "if true".
func (p *Parser) ifStmt() *IfStmt {
	s := &IfStmt{}
	s.pos = p.pos

	p.want(_If)
	s.Cond = p.expr()
	s.Scope = p.newScope()
	s.Then = p.scopedBlock(s.Scope)

	if p.got(_Else) {
		if p.tok == _If {
			s.Else = p.ifStmt()
		} else {
			e := &IfStmt{Scope: s.Scope, Implicit: true}
			e.pos = p.pos
			cond := &BasicLit{Value: "true", Kind: BoolLit}
			cond.pos = p.pos
			e.Cond = cond
			e.Then = p.scopedBlock(s.Scope)
			s.Else = e
		}
	}

	return s
}

// loopStmt parses: loop { Body }
func (p *Parser) loopStmt() Stmt {
	s := &LoopStmt{}
	s.pos = p.pos

	p.want(_Loop)
	s.Scope = p.newScope()
	s.Body = p.scopedBlock(s.Scope)

	return s
}

// forStmt parses: for (Var in Iter) { Body }
// The loop variable is declared in the loop's own scope.
func (p *Parser) forStmt() Stmt {
	s := &ForStmt{}
	s.pos = p.pos

	p.want(_For)
	paren := p.got(_Lparen)
	s.Var = p.name()
	p.want(_In)
	s.Iter = p.expr()
	if paren {
		p.want(_Rparen)
	}

	s.Scope = p.newScope()
	p.table.EnterScope(s.Scope)
	s.Obj = types.NewVar(s.Var.Value, s.Var.pos.Line(), nil)
	p.table.Insert(s.Obj)
	s.Body = p.blockStmt()
	p.table.ExitScope()

	return s
}

// returnStmt parses: return [expr];
func (p *Parser) returnStmt() Stmt {
	s := &ReturnStmt{}
	s.pos = p.pos

	p.want(_Return)
	if p.tok != _Semi {
		s.Result = p.expr()
	}
	p.want(_Semi)

	return s
}

// ----------------------------------------------------------------------------
// Expressions

// expr parses an expression.
func (p *Parser) expr() Expr {
	return p.binaryExpr(0)
}

// binaryExpr parses a binary expression with minimum precedence prec.
// Every level is left associative: the right operand is parsed with the
// operator's own precedence as the new minimum.
func (p *Parser) binaryExpr(prec int) Expr {
	x := p.unaryExpr()

	for {
		oprec := p.tok.Precedence()
		if oprec <= prec {
			return x
		}

		// Binary expression position starts at the left operand.
		op := &Operation{Op: p.tok, X: x}
		op.pos = x.Pos()

		p.next() // consume operator

		op.Y = p.binaryExpr(oprec)
		x = op
	}
}

// unaryExpr parses a unary expression. Unary operators nest to the right.
func (p *Parser) unaryExpr() Expr {
	switch p.tok {
	case _Not, _Sub:
		op := &Operation{Op: p.tok}
		op.pos = p.pos
		p.next()
		op.X = p.unaryExpr()
		return op
	}
	return p.operand()
}

// operand parses literals, names with their calls and access chains,
// array literals and parenthesized expressions or tuples.
func (p *Parser) operand() Expr {
	switch p.tok {
	case _Literal:
		lit := &BasicLit{Value: p.lit, Kind: p.scanner.LitKind()}
		if lit.Kind != StringLit {
			lit.Num = p.scanner.Number()
		}
		lit.pos = p.pos
		p.next()
		if lit.Kind != StringLit && (p.tok == _Range || p.tok == _RangeIncl) {
			return p.rangeExpr(lit)
		}
		return lit

	case _True, _False:
		lit := &BasicLit{Value: p.tok.String(), Kind: BoolLit}
		lit.pos = p.pos
		p.next()
		return lit

	case _Name:
		n := &Name{Value: p.lit}
		n.pos = p.pos
		p.table.AddRef(n.Value, n.pos.Line())
		p.next()
		switch p.tok {
		case _Lparen:
			return p.callExpr(n)
		case _Dot, _Lbrack:
			return p.accessChain(n)
		}
		return n

	case _Lbrack:
		return p.arrayLit()

	case _Lparen:
		return p.parenOrTuple()
	}

	p.syntaxError("expected expression, found " + p.tokString())
	n := &Name{Value: "_"}
	n.pos = p.pos
	return n
}

// rangeExpr parses the rest of Start..End or Start..=End.
func (p *Parser) rangeExpr(start Expr) Expr {
	r := &RangeExpr{Start: start, Inclusive: p.tok == _RangeIncl}
	r.pos = start.Pos()
	p.next()
	r.End = p.expr()
	return r
}

// callExpr parses Fun(args...)
func (p *Parser) callExpr(fun *Name) Expr {
	call := &CallExpr{Fun: fun}
	call.pos = fun.Pos()

	p.want(_Lparen)
	if p.tok != _Rparen {
		call.Args = p.exprList()
	}
	p.want(_Rparen)

	return call
}

// accessChain parses any sequence of .name, .N and [expr] after x.
func (p *Parser) accessChain(x Expr) Expr {
	for {
		switch p.tok {
		case _Dot:
			p.next()
			switch {
			case p.tok == _Name:
				sel := &SelectorExpr{X: x}
				sel.pos = x.Pos()
				sel.Sel = p.name()
				x = sel
			case p.tok == _Literal && p.scanner.LitKind() == IntLit && p.scanner.Number().Int >= 0:
				ti := &TupleIndexExpr{X: x, Index: int(p.scanner.Number().Int)}
				ti.pos = x.Pos()
				p.next()
				x = ti
			default:
				p.syntaxError("expected member name or tuple index, found " + p.tokString())
				return x
			}

		case _Lbrack:
			idx := &IndexExpr{X: x}
			idx.pos = x.Pos()
			p.next()
			idx.Index = p.expr()
			p.want(_Rbrack)
			x = idx

		default:
			return x
		}
	}
}

// arrayLit parses [a, b, ...]
func (p *Parser) arrayLit() Expr {
	lit := &ArrayLit{}
	lit.pos = p.pos

	p.want(_Lbrack)
	if p.tok != _Rbrack {
		lit.Elems = p.exprList()
	}
	p.want(_Rbrack)

	return lit
}

// parenOrTuple parses ( ... ) as a tuple when a comma appears at the top
// level before the matching ')', and as a parenthesized expression
// otherwise. () is the empty tuple.
func (p *Parser) parenOrTuple() Expr {
	pos := p.pos
	if !p.hasTopLevelComma() {
		p.want(_Lparen)
		if p.tok != _Rparen {
			x := p.expr()
			p.want(_Rparen)
			return x
		}
		p.want(_Rparen)
		t := &TupleExpr{}
		t.pos = pos
		return t
	}

	t := &TupleExpr{}
	t.pos = pos
	p.want(_Lparen)
	for p.tok != _Rparen && p.tok != _EOF {
		t.Elems = append(t.Elems, p.expr())
		if !p.got(_Comma) {
			break
		}
	}
	p.want(_Rparen)
	return t
}

// hasTopLevelComma reports whether a comma occurs at nesting depth zero
// between the current '(' and its matching ')'. The first call scans the
// whole group once, silently, and records the answer for every '(' nested
// inside it, so nested groups never rescan. The parser is left where it
// started.
func (p *Parser) hasTopLevelComma() bool {
	if comma, ok := p.parens[p.pos]; ok {
		return comma
	}

	start := p.pos
	m := p.mark()
	p.scanner.quiet++
	defer func() {
		p.scanner.quiet--
		p.reset(m)
	}()

	type group struct {
		paren bool
		pos   Pos
		comma bool
	}
	stack := []group{{paren: true, pos: start}}
	for len(stack) > 0 {
		p.scanner.Next()
		p.lookahead++
		top := &stack[len(stack)-1]
		switch tok := p.scanner.Token(); tok {
		case _Lparen, _Lbrack, _Lbrace:
			stack = append(stack, group{paren: tok == _Lparen, pos: p.scanner.Pos()})
		case _Rparen, _Rbrack, _Rbrace:
			if top.paren {
				p.parens[top.pos] = top.comma
			}
			stack = stack[:len(stack)-1]
		case _Comma:
			top.comma = true
		case _EOF:
			for _, g := range stack {
				if g.paren {
					p.parens[g.pos] = false
				}
			}
			stack = nil
		}
	}
	return p.parens[start]
}

// exprList parses a comma-separated list of expressions.
func (p *Parser) exprList() []Expr {
	list := []Expr{p.expr()}
	for p.got(_Comma) {
		list = append(list, p.expr())
	}
	return list
}
