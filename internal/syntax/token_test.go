package syntax

import (
	"strings"
	"testing"
)

func TestTokenString(t *testing.T) {
	tests := []struct {
		tok  Token
		want string
	}{
		// Special tokens
		{_EOF, "EOF"},

		// Literals
		{_Name, "NAME"},
		{_Literal, "LITERAL"},

		// Operators
		{_Assign, "="},
		{_OrOr, "||"},
		{_AndAnd, "&&"},
		{_Eql, "=="},
		{_Neq, "!="},
		{_Lss, "<"},
		{_Leq, "<="},
		{_Gtr, ">"},
		{_Geq, ">="},
		{_Add, "+"},
		{_Sub, "-"},
		{_Mul, "*"},
		{_Div, "/"},
		{_Rem, "%"},
		{_Pow, "**"},
		{_Not, "!"},
		{_Arrow, "->"},
		{_Range, ".."},
		{_RangeIncl, "..="},

		// Delimiters
		{_Lparen, "("},
		{_Rparen, ")"},
		{_Lbrack, "["},
		{_Rbrack, "]"},
		{_Lbrace, "{"},
		{_Rbrace, "}"},
		{_Comma, ","},
		{_Semi, ";"},
		{_Colon, ":"},
		{_Dot, "."},

		// Keywords
		{_Const, "const"},
		{_Else, "else"},
		{_False, "false"},
		{_Fn, "fn"},
		{_For, "for"},
		{_If, "if"},
		{_In, "in"},
		{_Let, "let"},
		{_Loop, "loop"},
		{_Return, "return"},
		{_True, "true"},
		{_IntType, "int"},
		{_FloatType, "float"},
		{_StringType, "string"},
		{_BoolType, "bool"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.tok.String(); got != tt.want {
				t.Errorf("Token(%d).String() = %q, want %q", tt.tok, got, tt.want)
			}
		})
	}
}

func TestTokenStringUnknown(t *testing.T) {
	tok := Token(999)
	got := tok.String()
	if !strings.HasPrefix(got, "token(") {
		t.Errorf("unknown token string = %q, want prefix 'token('", got)
	}
}

func TestTokenPrecedence(t *testing.T) {
	tests := []struct {
		tok  Token
		want int
	}{
		// Non-operators have precedence 0
		{_EOF, 0},
		{_Name, 0},
		{_Literal, 0},
		{_Assign, 0},
		{_Not, 0},
		{_Range, 0},
		{_RangeIncl, 0},
		{_Lparen, 0},

		{_OrOr, 1},
		{_AndAnd, 2},

		{_Eql, 3},
		{_Neq, 3},
		{_Lss, 3},
		{_Leq, 3},
		{_Gtr, 3},
		{_Geq, 3},

		{_Add, 4},
		{_Sub, 4},

		{_Mul, 5},
		{_Div, 5},
		{_Rem, 5},

		{_Pow, 6},
	}

	for _, tt := range tests {
		t.Run(tt.tok.String(), func(t *testing.T) {
			if got := tt.tok.Precedence(); got != tt.want {
				t.Errorf("Token(%v).Precedence() = %d, want %d", tt.tok, got, tt.want)
			}
		})
	}
}

func TestTokenClasses(t *testing.T) {
	tests := []struct {
		tok        Token
		keyword    bool
		operator   bool
		arithmetic bool
		logical    bool
		comparison bool
	}{
		{_EOF, false, false, false, false, false},
		{_Name, false, false, false, false, false},
		{_Assign, false, true, false, false, false},
		{_OrOr, false, true, false, true, false},
		{_AndAnd, false, true, false, true, false},
		{_Eql, false, true, false, false, true},
		{_Geq, false, true, false, false, true},
		{_Add, false, true, true, false, false},
		{_Rem, false, true, true, false, false},
		{_Pow, false, true, true, false, false},
		{_Not, false, true, false, false, false},
		{_RangeIncl, false, true, false, false, false},
		{_Lparen, false, false, false, false, false},
		{_Dot, false, false, false, false, false},
		{_Const, true, false, false, false, false},
		{_True, true, false, false, false, false},
		{_BoolType, true, false, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.tok.String(), func(t *testing.T) {
			if got := tt.tok.IsKeyword(); got != tt.keyword {
				t.Errorf("IsKeyword() = %v, want %v", got, tt.keyword)
			}
			if got := tt.tok.IsOperator(); got != tt.operator {
				t.Errorf("IsOperator() = %v, want %v", got, tt.operator)
			}
			if got := tt.tok.IsArithmetic(); got != tt.arithmetic {
				t.Errorf("IsArithmetic() = %v, want %v", got, tt.arithmetic)
			}
			if got := tt.tok.IsLogical(); got != tt.logical {
				t.Errorf("IsLogical() = %v, want %v", got, tt.logical)
			}
			if got := tt.tok.IsComparison(); got != tt.comparison {
				t.Errorf("IsComparison() = %v, want %v", got, tt.comparison)
			}
		})
	}
}

func TestTokenIsEOF(t *testing.T) {
	if !_EOF.IsEOF() {
		t.Error("_EOF.IsEOF() = false, want true")
	}

	nonEOF := []Token{_Name, _Literal, _Fn}
	for _, tok := range nonEOF {
		if tok.IsEOF() {
			t.Errorf("%v.IsEOF() = true, want false", tok)
		}
	}
}

func TestTokenEndsOperand(t *testing.T) {
	ends := []Token{_Name, _Literal, _True, _False, _Rparen, _Rbrack}
	for _, tok := range ends {
		if !tok.endsOperand() {
			t.Errorf("%v.endsOperand() = false, want true", tok)
		}
	}

	others := []Token{_EOF, _Assign, _Sub, _Mul, _Lparen, _Lbrack, _Comma, _Return, _Range}
	for _, tok := range others {
		if tok.endsOperand() {
			t.Errorf("%v.endsOperand() = true, want false", tok)
		}
	}
}

func TestLitKindString(t *testing.T) {
	tests := []struct {
		kind LitKind
		want string
	}{
		{IntLit, "int"},
		{FloatLit, "float"},
		{StringLit, "string"},
		{BoolLit, "bool"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.want {
				t.Errorf("LitKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
			}
		})
	}
}

func TestLitKindStringUnknown(t *testing.T) {
	kind := LitKind(99)
	got := kind.String()
	if !strings.HasPrefix(got, "LitKind(") {
		t.Errorf("unknown LitKind string = %q, want prefix 'LitKind('", got)
	}
}

func TestLookupKeyword(t *testing.T) {
	for ident, want := range keywords {
		t.Run(ident, func(t *testing.T) {
			if got := LookupKeyword(ident); got != want {
				t.Errorf("LookupKeyword(%q) = %v, want %v", ident, got, want)
			}
			if got := want.String(); got != ident {
				t.Errorf("%v.String() = %q, want %q", want, got, ident)
			}
		})
	}
}

func TestLookupKeywordNonKeyword(t *testing.T) {
	nonKeywords := []string{
		"var", "func", "while", "nil", "Int",
		"foo", "bar", "Point", "_underscore", "letter",
	}

	for _, ident := range nonKeywords {
		t.Run(ident, func(t *testing.T) {
			if got := LookupKeyword(ident); got != _Name {
				t.Errorf("LookupKeyword(%q) = %v, want _Name", ident, got)
			}
		})
	}
}

func TestKeywordCount(t *testing.T) {
	expectedCount := 15
	count := 0
	for tok := _Const; tok <= _BoolType; tok++ {
		count++
	}
	if count != expectedCount {
		t.Errorf("keyword count = %d, want %d", count, expectedCount)
	}

	// Also verify the map has the same count
	if len(keywords) != expectedCount {
		t.Errorf("keywords map size = %d, want %d", len(keywords), expectedCount)
	}
}
