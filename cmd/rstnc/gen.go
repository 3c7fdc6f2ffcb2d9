package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/you-not-fish/rstn/internal/codegen"
)

func (a *app) genCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "gen <file.rstn>",
		Short: "Check a file and generate Python code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.gen(cmd.OutOrStdout(), args[0], output)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	return cmd
}

// gen compiles filename and writes the generated code to output,
// or to w when output is empty. Nothing is written if checking fails.
func (a *app) gen(w io.Writer, filename, output string) error {
	res, err := a.compile(filename)
	if err != nil {
		return err
	}

	start := time.Now()
	if output == "" {
		if err := codegen.GenerateIndent(w, res.File, a.cfg.Output.Indent); err != nil {
			return err
		}
		a.log.Debug("generate", "file", filename, "duration", time.Since(start))
		return nil
	}

	out, err := os.Create(output)
	if err != nil {
		return err
	}
	if err := codegen.GenerateIndent(out, res.File, a.cfg.Output.Indent); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close %s: %w", output, err)
	}
	a.log.Debug("generate", "file", filename, "duration", time.Since(start))
	a.log.Info("wrote output", "path", output)
	return nil
}
