package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/you-not-fish/rstn/internal/syntax"
)

var (
	colorError   = lipgloss.Color("#EF4444")
	colorWarning = lipgloss.Color("#F59E0B")
	colorMuted   = lipgloss.Color("#94A3B8")
)

// diagPrinter writes diagnostics as file:line:col: msg.
type diagPrinter struct {
	w     io.Writer
	color bool

	posStyle  lipgloss.Style
	errStyle  lipgloss.Style
	warnStyle lipgloss.Style

	errors   int
	warnings int
}

func newDiagPrinter(w io.Writer, color bool) *diagPrinter {
	r := lipgloss.NewRenderer(w)
	return &diagPrinter{
		w:         w,
		color:     color,
		posStyle:  r.NewStyle().Foreground(colorMuted).Bold(true),
		errStyle:  r.NewStyle().Foreground(colorError),
		warnStyle: r.NewStyle().Foreground(colorWarning),
	}
}

// error reports a fatal diagnostic. Its signature matches the error
// handlers of the parser and the checker.
func (d *diagPrinter) error(pos syntax.Pos, msg string) {
	d.errors++
	d.print(pos, msg, d.errStyle)
}

func (d *diagPrinter) warning(pos syntax.Pos, msg string) {
	d.warnings++
	d.print(pos, "warning: "+msg, d.warnStyle)
}

func (d *diagPrinter) print(pos syntax.Pos, msg string, style lipgloss.Style) {
	if !d.color {
		fmt.Fprintf(d.w, "%s: %s\n", pos, msg)
		return
	}
	fmt.Fprintf(d.w, "%s %s\n", d.posStyle.Render(pos.String()+":"), style.Render(msg))
}
