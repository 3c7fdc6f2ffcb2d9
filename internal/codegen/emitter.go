package codegen

import (
	"fmt"
	"io"
	"strings"
)

// emitter wraps an io.Writer with helpers for emitting indented Python text.
type emitter struct {
	w      io.Writer
	err    error // first write error
	unit   string
	indent int // current block depth
}

func newEmitter(w io.Writer, width int) *emitter {
	return &emitter{w: w, unit: strings.Repeat(" ", width)}
}

// emit writes a formatted line at the current indentation.
func (e *emitter) emit(format string, args ...interface{}) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, strings.Repeat(e.unit, e.indent)+format+"\n", args...)
}

// emitLine writes a blank line.
func (e *emitter) emitLine() {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintln(e.w)
}

// emitComment writes a comment line.
func (e *emitter) emitComment(text string) {
	e.emit("# %s", text)
}

// fail records err unless a write error came first.
func (e *emitter) fail(err error) {
	if e.err == nil {
		e.err = err
	}
}

func (e *emitter) in()  { e.indent++ }
func (e *emitter) out() { e.indent-- }
