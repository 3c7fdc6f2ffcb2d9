package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/you-not-fish/rstn/internal/compiler"
)

func (a *app) checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <file.rstn>",
		Short: "Parse and type-check a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.compile(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d statements, %d symbols)\n",
				args[0], len(res.File.Stmts), len(res.Table.AllSymbols()))
			return nil
		},
	}
}

// compile runs the front end on filename. Diagnostics are printed as they
// are reported; the returned error is then errReported. The result is
// non-nil whenever parsing succeeded.
func (a *app) compile(filename string) (*compiler.Result, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	start := time.Now()
	res, err := compiler.Compile(filename, f, &compiler.Config{
		Resolution: a.cfg.Resolution(),
		AllErrors:  a.cfg.Check.AllErrors,
		Error:      a.diag.error,
	})
	if res != nil {
		for _, warn := range res.Warnings {
			a.diag.warning(warn.Pos, warn.Msg)
		}
	}
	if err != nil {
		a.log.Debug("compile failed", "file", filename, "err", err, "duration", time.Since(start))
		return res, errReported
	}
	a.log.Debug("compile", "file", filename, "stmts", len(res.File.Stmts), "duration", time.Since(start))
	return res, nil
}
