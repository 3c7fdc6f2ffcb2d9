// Package syntax implements lexical and syntactic analysis for the rstn language.
package syntax

import "fmt"

// Token represents the type of a lexical token.
type Token uint

const (
	// Special tokens
	_EOF Token = iota // end of file

	// Literals
	_Name    // identifier: foo, bar, total
	_Literal // literal value (used with LitKind)

	// Operators (ordered by precedence, low to high)
	_Assign // =

	// Logical operators
	_OrOr   // ||
	_AndAnd // &&

	// Comparison operators
	_Eql // ==
	_Neq // !=
	_Lss // <
	_Leq // <=
	_Gtr // >
	_Geq // >=

	// Additive
	_Add // +
	_Sub // -

	// Multiplicative
	_Mul // *
	_Div // /
	_Rem // %

	// Exponent
	_Pow // **

	// Unary operators
	_Not // !

	// Arrows and ranges
	_Arrow     // ->
	_Range     // ..
	_RangeIncl // ..=

	// Delimiters
	_Lparen // (
	_Rparen // )
	_Lbrack // [
	_Rbrack // ]
	_Lbrace // {
	_Rbrace // }
	_Comma  // ,
	_Semi   // ;
	_Colon  // :
	_Dot    // .

	// Keywords
	_Const
	_Else
	_False
	_Fn
	_For
	_If
	_In
	_Let
	_Loop
	_Return
	_True

	// Type keywords
	_IntType
	_FloatType
	_StringType
	_BoolType

	tokenCount
)

// tokenNames maps tokens to their string representation.
var tokenNames = [...]string{
	_EOF: "EOF",

	_Name:    "NAME",
	_Literal: "LITERAL",

	_Assign: "=",

	_OrOr:   "||",
	_AndAnd: "&&",

	_Eql: "==",
	_Neq: "!=",
	_Lss: "<",
	_Leq: "<=",
	_Gtr: ">",
	_Geq: ">=",

	_Add: "+",
	_Sub: "-",

	_Mul: "*",
	_Div: "/",
	_Rem: "%",

	_Pow: "**",

	_Not: "!",

	_Arrow:     "->",
	_Range:     "..",
	_RangeIncl: "..=",

	_Lparen: "(",
	_Rparen: ")",
	_Lbrack: "[",
	_Rbrack: "]",
	_Lbrace: "{",
	_Rbrace: "}",
	_Comma:  ",",
	_Semi:   ";",
	_Colon:  ":",
	_Dot:    ".",

	_Const:  "const",
	_Else:   "else",
	_False:  "false",
	_Fn:     "fn",
	_For:    "for",
	_If:     "if",
	_In:     "in",
	_Let:    "let",
	_Loop:   "loop",
	_Return: "return",
	_True:   "true",

	_IntType:    "int",
	_FloatType:  "float",
	_StringType: "string",
	_BoolType:   "bool",
}

// String returns the string representation of the token.
func (t Token) String() string {
	if t < tokenCount {
		return tokenNames[t]
	}
	return fmt.Sprintf("token(%d)", t)
}

// Precedence returns the operator precedence for binary operators.
// Returns 0 for non-operators.
// Precedence levels (higher = binds tighter):
//
//	1: ||
//	2: &&
//	3: == != < <= > >=
//	4: + -
//	5: * / %
//	6: **
func (t Token) Precedence() int {
	switch t {
	case _OrOr:
		return 1
	case _AndAnd:
		return 2
	case _Eql, _Neq, _Lss, _Leq, _Gtr, _Geq:
		return 3
	case _Add, _Sub:
		return 4
	case _Mul, _Div, _Rem:
		return 5
	case _Pow:
		return 6
	}
	return 0
}

// IsKeyword reports whether t is a keyword token, type keywords included.
func (t Token) IsKeyword() bool {
	return t >= _Const && t <= _BoolType
}

// IsOperator reports whether t is an operator token.
func (t Token) IsOperator() bool {
	return t >= _Assign && t <= _RangeIncl
}

// IsArithmetic reports whether t is a binary arithmetic operator.
func (t Token) IsArithmetic() bool {
	return t >= _Add && t <= _Pow
}

// IsLogical reports whether t is && or ||.
func (t Token) IsLogical() bool {
	return t == _OrOr || t == _AndAnd
}

// IsComparison reports whether t is a comparison operator.
func (t Token) IsComparison() bool {
	return t >= _Eql && t <= _Geq
}

// IsEOF reports whether t is the EOF token.
func (t Token) IsEOF() bool {
	return t == _EOF
}

// endsOperand reports whether t can be the last token of an operand.
// The scanner uses it to decide whether a '-' directly before a digit
// starts a negative literal.
func (t Token) endsOperand() bool {
	switch t {
	case _Name, _Literal, _True, _False, _Rparen, _Rbrack:
		return true
	}
	return false
}

// Exported operator tokens for the checker and code generator.
const (
	Not    Token = _Not    // !
	Sub    Token = _Sub    // -
	AndAnd Token = _AndAnd // &&
	OrOr   Token = _OrOr   // ||
	Pow    Token = _Pow    // **
)

// LitKind represents the kind of a literal token.
type LitKind uint8

const (
	IntLit    LitKind = iota // 123, -7
	FloatLit                 // 3.14, 1e10, 2.5e-3
	StringLit                // "hello"
	BoolLit                  // true, false (set by the parser)
)

// litKindNames maps literal kinds to their string representation.
var litKindNames = [...]string{
	IntLit:    "int",
	FloatLit:  "float",
	StringLit: "string",
	BoolLit:   "bool",
}

// String returns the string representation of the literal kind.
func (k LitKind) String() string {
	if k <= BoolLit {
		return litKindNames[k]
	}
	return fmt.Sprintf("LitKind(%d)", k)
}

// keywords maps keyword strings to their token type.
var keywords = map[string]Token{
	"const":  _Const,
	"else":   _Else,
	"false":  _False,
	"fn":     _Fn,
	"for":    _For,
	"if":     _If,
	"in":     _In,
	"let":    _Let,
	"loop":   _Loop,
	"return": _Return,
	"true":   _True,

	"int":    _IntType,
	"float":  _FloatType,
	"string": _StringType,
	"bool":   _BoolType,
}

// LookupKeyword returns the token for the given identifier string.
// If the identifier is a keyword, returns the keyword token.
// Otherwise, returns _Name.
func LookupKeyword(ident string) Token {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return _Name
}
