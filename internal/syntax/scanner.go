package syntax

import (
	"fmt"
	"io"
)

// Scanner performs lexical analysis on rstn source code.
//
// The scanner is pull based: Next advances to the following token and the
// accessors describe the current one. Any scanning state can be captured
// with Save and rewound with Restore, which is what Peek and the parser's
// bounded lookahead are built on.
type Scanner struct {
	source // embedded character reader

	// Current token info
	tok    Token   // token type
	lit    string  // token literal (identifier name, number text, string content)
	kind   LitKind // literal kind (only valid when tok == _Literal)
	num    Number  // numeric value (only valid for IntLit and FloatLit)
	tokPos Pos     // token start position

	prev Token // token scanned before the current one
	dead bool  // a fatal error ended the token stream

	warnh func(line, col uint32, msg string)

	// Literal accumulation
	litBuf []byte
}

// Item is a scanned token together with its literal information.
// Items are comparable with ==.
type Item struct {
	Tok  Token
	Lit  string
	Kind LitKind
	Num  Number
	Pos  Pos
}

func (it Item) String() string {
	if it.Tok == _Literal {
		if it.Kind == StringLit {
			return fmt.Sprintf("%s %s %q", it.Pos, it.Kind, it.Lit)
		}
		return fmt.Sprintf("%s %s %s", it.Pos, it.Kind, it.Lit)
	}
	if it.Tok == _Name {
		return fmt.Sprintf("%s NAME %s", it.Pos, it.Lit)
	}
	return fmt.Sprintf("%s %s", it.Pos, it.Tok)
}

// IsLiteral reports whether the item is a number or string literal.
func (it Item) IsLiteral() bool {
	return it.Tok == _Literal
}

// IsName reports whether the item is an identifier.
func (it Item) IsName() bool {
	return it.Tok == _Name
}

// Mark is a snapshot of the scanner state returned by Save.
type Mark struct {
	src  srcState
	tok  Token
	prev Token
	lit  string
	kind LitKind
	num  Number
	pos  Pos
	dead bool
}

// NewScanner creates a new Scanner for the given source.
// The errh function is called for each fatal lexical error; if nil, errors
// are silently ignored. A fatal error ends the token stream with EOF.
func NewScanner(filename string, src io.Reader, errh func(line, col uint32, msg string)) *Scanner {
	return &Scanner{source: *newSource(filename, src, errh)}
}

// SetWarningHandler installs the handler for recoverable diagnostics such as
// malformed number literals.
func (s *Scanner) SetWarningHandler(warnh func(line, col uint32, msg string)) {
	s.warnh = warnh
}

// Next advances to the next token.
func (s *Scanner) Next() {
	s.prev = s.tok
	if s.dead {
		s.tok = _EOF
		s.lit = ""
		return
	}

redo:
	s.skipWhitespace()
	s.tokPos = s.pos()

	switch {
	case s.ch < 0:
		s.tok = _EOF
		s.lit = ""

	case isLetter(s.ch):
		s.scanIdent()

	case isDigit(s.ch):
		s.scanNumber()

	case s.ch == '-' && isDigit(s.peek(0)) && !s.prev.endsOperand():
		s.scanNumber()

	case s.ch == '"':
		s.scanString()

	case isOperatorStart(s.ch):
		if s.scanOperator() {
			goto redo
		}

	default:
		s.fatal(s.line, s.col, fmt.Sprintf("unexpected character %q", s.ch))
	}
}

// NextItem advances to the next token and returns it.
func (s *Scanner) NextItem() Item {
	s.Next()
	return s.Item()
}

// Peek returns the token following the current one without consuming it.
func (s *Scanner) Peek() Item {
	m := s.Save()
	s.quiet++
	s.Next()
	it := s.Item()
	s.quiet--
	s.Restore(m)
	return it
}

// Save captures the scanner state.
func (s *Scanner) Save() Mark {
	return Mark{
		src:  s.state(),
		tok:  s.tok,
		prev: s.prev,
		lit:  s.lit,
		kind: s.kind,
		num:  s.num,
		pos:  s.tokPos,
		dead: s.dead,
	}
}

// Restore rewinds the scanner to a state captured by Save.
func (s *Scanner) Restore(m Mark) {
	s.setState(m.src)
	s.tok = m.tok
	s.prev = m.prev
	s.lit = m.lit
	s.kind = m.kind
	s.num = m.num
	s.tokPos = m.pos
	s.dead = m.dead
}

// Token returns the current token type.
func (s *Scanner) Token() Token {
	return s.tok
}

// Literal returns the current token's literal value.
func (s *Scanner) Literal() string {
	return s.lit
}

// LitKind returns the current literal's kind (only valid when Token() == _Literal).
func (s *Scanner) LitKind() LitKind {
	return s.kind
}

// Number returns the current numeric literal's value.
func (s *Scanner) Number() Number {
	return s.num
}

// Pos returns the current token's start position.
func (s *Scanner) Pos() Pos {
	return s.tokPos
}

// Item returns the current token.
func (s *Scanner) Item() Item {
	it := Item{Tok: s.tok, Lit: s.lit, Pos: s.tokPos}
	if s.tok == _Literal {
		it.Kind = s.kind
		if s.kind != StringLit {
			it.Num = s.num
		}
	}
	return it
}

// Position returns the line and column of the reading cursor.
func (s *Scanner) Position() (line, col uint32) {
	return s.line, s.col
}

// fatal reports an error and ends the token stream.
func (s *Scanner) fatal(line, col uint32, msg string) {
	s.errorAt(line, col, msg)
	s.dead = true
	s.tok = _EOF
	s.lit = ""
}

// warn reports a recoverable diagnostic.
func (s *Scanner) warn(line, col uint32, msg string) {
	if s.warnh != nil && s.quiet == 0 {
		s.warnh(line, col, msg)
	}
}

// skipWhitespace skips spaces, tabs and line breaks.
func (s *Scanner) skipWhitespace() {
	for isWhitespace(s.ch) {
		s.nextch()
	}
}

// startLit begins accumulating a literal.
func (s *Scanner) startLit() {
	s.litBuf = s.litBuf[:0]
	s.continueLit()
}

// continueLit adds the current character to the literal being accumulated.
func (s *Scanner) continueLit() {
	s.litBuf = append(s.litBuf, string(s.ch)...)
}

// stopLit ends literal accumulation and returns the accumulated string.
func (s *Scanner) stopLit() string {
	return string(s.litBuf)
}

// scanIdent scans an identifier or keyword.
func (s *Scanner) scanIdent() {
	s.startLit()
	s.nextch()

	for isLetter(s.ch) || isDigit(s.ch) {
		s.continueLit()
		s.nextch()
	}

	s.lit = s.stopLit()
	s.tok = LookupKeyword(s.lit)
}

// scanNumber scans an integer or float literal, including a leading '-'
// when Next decided the minus belongs to the literal.
//
// A '.' only continues the number when a digit follows it, so 1..5 scans
// as 1 followed by a range operator. Directly after a '.' token only the
// integer part is scanned, so t.0.1 is two tuple indexes.
func (s *Scanner) scanNumber() {
	s.startLit() // first digit or '-'
	s.nextch()
	s.kind = IntLit
	s.scanDigits()

	if s.prev != _Dot {
		if s.ch == '.' && isDigit(s.peek(0)) {
			s.kind = FloatLit
			s.continueLit()
			s.nextch()
			s.scanDigits()
		}
		if lower(s.ch) == 'e' && s.exponentFollows() {
			s.kind = FloatLit
			s.continueLit()
			s.nextch()
			if s.ch == '+' || s.ch == '-' {
				s.continueLit()
				s.nextch()
			}
			s.scanDigits()
		}
	}

	s.tok = _Literal

	if isLetter(s.ch) || isDigit(s.ch) {
		// Malformed: recover with 0 and keep going.
		for isLetter(s.ch) || isDigit(s.ch) {
			s.continueLit()
			s.nextch()
		}
		s.warn(s.tokPos.line, s.tokPos.col, fmt.Sprintf("invalid number literal %q", s.stopLit()))
		s.kind = IntLit
		s.num = IntNumber(0)
		s.lit = "0"
		return
	}

	s.lit = s.stopLit()
	num, ok := parseNumber(s.lit, s.kind)
	if !ok {
		s.warn(s.tokPos.line, s.tokPos.col, fmt.Sprintf("%s literal %s out of range", s.kind, s.lit))
		s.lit = num.String()
	}
	s.num = num
}

// exponentFollows reports whether the 'e' at s.ch starts a valid exponent.
func (s *Scanner) exponentFollows() bool {
	c := s.peek(0)
	if c == '+' || c == '-' {
		c = s.peek(1)
	}
	return isDigit(c)
}

// scanDigits scans decimal digits.
func (s *Scanner) scanDigits() {
	for isDigit(s.ch) {
		s.continueLit()
		s.nextch()
	}
}

// scanString scans a double-quoted string literal.
// The content is taken verbatim; there are no escape sequences.
func (s *Scanner) scanString() {
	s.nextch() // skip opening "
	s.litBuf = s.litBuf[:0]

	for {
		switch {
		case s.ch == '"':
			s.nextch()
			s.lit = s.stopLit()
			s.tok = _Literal
			s.kind = StringLit
			return

		case s.ch < 0:
			s.fatal(s.tokPos.line, s.tokPos.col, "string literal not terminated")
			return

		default:
			s.continueLit()
			s.nextch()
		}
	}
}

// scanOperator scans an operator or delimiter.
// Returns true if a comment was skipped (caller should rescan).
func (s *Scanner) scanOperator() bool {
	ch := s.ch
	s.nextch()

	switch ch {
	case '+':
		s.tok = _Add
	case '-':
		if s.ch == '>' {
			s.nextch()
			s.tok = _Arrow
		} else {
			s.tok = _Sub
		}
	case '*':
		if s.ch == '*' {
			s.nextch()
			s.tok = _Pow
		} else {
			s.tok = _Mul
		}
	case '/':
		switch s.ch {
		case '/':
			s.skipLineComment()
			return true
		case '*':
			return s.skipBlockComment()
		}
		s.tok = _Div
	case '%':
		s.tok = _Rem
	case '&':
		if s.ch != '&' {
			s.fatal(s.tokPos.line, s.tokPos.col, "unexpected character '&'")
			return false
		}
		s.nextch()
		s.tok = _AndAnd
	case '|':
		if s.ch != '|' {
			s.fatal(s.tokPos.line, s.tokPos.col, "unexpected character '|'")
			return false
		}
		s.nextch()
		s.tok = _OrOr
	case '<':
		if s.ch == '=' {
			s.nextch()
			s.tok = _Leq
		} else {
			s.tok = _Lss
		}
	case '>':
		if s.ch == '=' {
			s.nextch()
			s.tok = _Geq
		} else {
			s.tok = _Gtr
		}
	case '=':
		if s.ch == '=' {
			s.nextch()
			s.tok = _Eql
		} else {
			s.tok = _Assign
		}
	case '!':
		if s.ch == '=' {
			s.nextch()
			s.tok = _Neq
		} else {
			s.tok = _Not
		}
	case '.':
		if s.ch != '.' {
			s.tok = _Dot
			break
		}
		s.nextch()
		if s.ch == '=' {
			s.nextch()
			s.tok = _RangeIncl
		} else {
			s.tok = _Range
		}
	case ':':
		s.tok = _Colon
	case '(':
		s.tok = _Lparen
	case ')':
		s.tok = _Rparen
	case '[':
		s.tok = _Lbrack
	case ']':
		s.tok = _Rbrack
	case '{':
		s.tok = _Lbrace
	case '}':
		s.tok = _Rbrace
	case ',':
		s.tok = _Comma
	case ';':
		s.tok = _Semi
	}

	s.lit = s.tok.String()
	return false
}

// skipLineComment skips a line comment (from // to end of line).
func (s *Scanner) skipLineComment() {
	s.nextch() // second /
	for s.ch != '\n' && s.ch >= 0 {
		s.nextch()
	}
}

// skipBlockComment skips a /* */ comment. Block comments do not nest.
// It reports true when the comment was closed.
func (s *Scanner) skipBlockComment() bool {
	s.nextch() // *
	for {
		if s.ch < 0 {
			s.fatal(s.tokPos.line, s.tokPos.col, "comment not terminated")
			return false
		}
		if s.ch == '*' && s.peek(0) == '/' {
			s.nextch()
			s.nextch()
			return true
		}
		s.nextch()
	}
}
