package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/you-not-fish/rstn/internal/syntax"
)

func (a *app) astCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "ast <file.rstn>",
		Short: "Parse a file and print its syntax tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format == "" {
				format = a.cfg.Output.ASTFormat
			}
			return a.ast(cmd.OutOrStdout(), args[0], format)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "", "output format: text, json or yaml (default from config)")
	return cmd
}

// ast parses filename and prints the tree. On a syntax error the partial
// tree is still printed.
func (a *app) ast(w io.Writer, filename, format string) error {
	var dump func(io.Writer, syntax.Node) error
	switch format {
	case "text":
		dump = func(w io.Writer, n syntax.Node) error {
			syntax.Fprint(w, n)
			return nil
		}
	case "json":
		dump = syntax.FprintJSON
	case "yaml":
		dump = syntax.FprintYAML
	default:
		return fmt.Errorf("unknown AST format %q (want text, json or yaml)", format)
	}

	f, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	start := time.Now()
	p := syntax.NewParser(filename, f, a.diag.error)
	file := p.Parse()
	for _, warn := range p.Warnings() {
		a.diag.warning(warn.Pos, warn.Msg)
	}
	a.log.Debug("parse", "file", filename, "stmts", len(file.Stmts), "duration", time.Since(start))

	if err := dump(w, file); err != nil {
		return fmt.Errorf("print AST: %w", err)
	}
	if p.FirstError() != nil {
		return errReported
	}
	return nil
}
