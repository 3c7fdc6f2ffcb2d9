// Package compiler runs the rstn front end: it parses a source file,
// builds its symbol table and type-checks it.
package compiler

import (
	"fmt"
	"io"
	"strings"

	"github.com/you-not-fish/rstn/internal/syntax"
	"github.com/you-not-fish/rstn/internal/types"
	"github.com/you-not-fish/rstn/internal/types2"
)

// Config controls a compilation.
type Config struct {
	// Resolution selects how the checker resolves identifiers.
	Resolution types2.Resolution

	// AllErrors keeps checking after the first failing statement.
	AllErrors bool

	// Error, if set, is called for every syntax and type error.
	Error func(pos syntax.Pos, msg string)
}

// Result is the outcome of a compilation that got past parsing.
type Result struct {
	File     *syntax.File
	Table    *types.Table
	Check    *types2.Result
	Warnings []*syntax.SyntaxError
}

// OK reports whether the file type-checks.
func (r *Result) OK() bool {
	return r.Check != nil && r.Check.OK
}

// Compile parses and checks the source read from src.
//
// A syntax error stops compilation: the result is nil and the error wraps
// a *syntax.SyntaxError. A type error yields a complete result together
// with an error wrapping the first *types2.TypeError.
func Compile(filename string, src io.Reader, conf *Config) (*Result, error) {
	if conf == nil {
		conf = &Config{}
	}

	p := syntax.NewParser(filename, src, conf.Error)
	file := p.Parse()
	if err := p.FirstError(); err != nil {
		return nil, fmt.Errorf("parse %s: %w", filename, err)
	}

	res := &Result{
		File:     file,
		Table:    p.Table(),
		Warnings: p.Warnings(),
	}

	check := &types2.Config{
		Resolution: conf.Resolution,
		AllErrors:  conf.AllErrors,
	}
	if conf.Error != nil {
		check.Error = types2.ErrorHandler(conf.Error)
	}

	var err error
	res.Check, err = types2.Check(file, res.Table, check)
	if err != nil {
		return res, fmt.Errorf("check %s: %w", filename, err)
	}
	return res, nil
}

// CompileString compiles src with the default configuration.
func CompileString(src string) (*Result, error) {
	return Compile("<input>", strings.NewReader(src), nil)
}
