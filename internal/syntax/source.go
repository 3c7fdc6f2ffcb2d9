package syntax

import (
	"io"
	"unicode/utf8"
)

// source is a character reader with position tracking.
// The whole input is held in memory so that any reading state can be
// captured and restored cheaply.
type source struct {
	// Input
	buf []byte // source buffer (entire file read into memory)

	// Position tracking
	filename string // source file name
	line     uint32 // current line number (1-based)
	col      uint32 // current column number (1-based, in characters)

	// Current state
	ch   rune // current character, -1 for EOF
	offs int  // byte offset just past ch

	// Error handling
	errh  func(line, col uint32, msg string)
	quiet int // errors are dropped while > 0 (lookahead)
}

// srcState is a snapshot of the reading state of a source.
type srcState struct {
	line, col uint32
	ch        rune
	offs      int
}

// newSource creates a new source from an io.Reader.
// The entire content is read into memory.
// The errh function is called for each error; if nil, errors are silently ignored.
func newSource(filename string, src io.Reader, errh func(line, col uint32, msg string)) *source {
	s := &source{
		filename: filename,
		line:     1,
		col:      0,  // incremented to 1 by the first nextch
		ch:       -1, // sentinel: before first char
		errh:     errh,
	}

	var err error
	s.buf, err = io.ReadAll(src)
	if err != nil {
		s.error("error reading source file: " + err.Error())
		s.ch = -1
		return s
	}

	s.nextch()
	return s
}

// nextch reads the next character from the source and updates position.
// Sets s.ch to -1 at EOF.
//
// (line, col) always refers to the position of s.ch after nextch returns.
func (s *source) nextch() {
	if s.ch == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col++
	}

	if s.offs >= len(s.buf) {
		s.ch = -1
		return
	}

	r, width := utf8.DecodeRune(s.buf[s.offs:])
	if r == utf8.RuneError && width == 1 {
		s.error("invalid UTF-8 encoding")
	}

	s.ch = r
	s.offs += width
}

// peek returns the n-th character after s.ch without consuming anything.
// peek(0) is the character immediately following s.ch. Returns -1 past EOF.
func (s *source) peek(n int) rune {
	offs := s.offs
	for {
		if offs >= len(s.buf) {
			return -1
		}
		r, width := utf8.DecodeRune(s.buf[offs:])
		if n == 0 {
			return r
		}
		offs += width
		n--
	}
}

// state captures the current reading position.
func (s *source) state() srcState {
	return srcState{line: s.line, col: s.col, ch: s.ch, offs: s.offs}
}

// setState rewinds the reader to a previously captured position.
func (s *source) setState(st srcState) {
	s.line, s.col, s.ch, s.offs = st.line, st.col, st.ch, st.offs
}

// pos returns the current position (position of current character).
func (s *source) pos() Pos {
	return NewPos(s.filename, s.line, s.col)
}

// error reports a lexical error at the current position.
func (s *source) error(msg string) {
	s.errorAt(s.line, s.col, msg)
}

// errorAt reports a lexical error at the given position.
func (s *source) errorAt(line, col uint32, msg string) {
	if s.errh != nil && s.quiet == 0 {
		s.errh(line, col, msg)
	}
}

// Character classification helpers

// isLetter reports whether r is a letter (a-z, A-Z, or _).
func isLetter(r rune) bool {
	return 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z' || r == '_'
}

// isDigit reports whether r is a decimal digit (0-9).
func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

// lower returns the lowercase version of r if r is an ASCII letter.
func lower(r rune) rune {
	return ('a' - 'A') | r
}

// isWhitespace reports whether r is a whitespace character.
func isWhitespace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\r' || r == '\n'
}

// isOperatorStart reports whether r can start an operator or delimiter.
func isOperatorStart(r rune) bool {
	switch r {
	case '+', '-', '*', '/', '%', '&', '|', '<', '>', '=', '!', ':',
		'(', ')', '[', ']', '{', '}', ',', ';', '.':
		return true
	}
	return false
}
