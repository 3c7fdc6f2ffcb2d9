package main

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/you-not-fish/rstn/internal/syntax"
)

func (a *app) tokensCmd() *cobra.Command {
	var numbers bool
	cmd := &cobra.Command{
		Use:   "tokens <file.rstn>",
		Short: "Print the token stream with positions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.tokens(cmd.OutOrStdout(), args[0], numbers)
		},
	}
	cmd.Flags().BoolVarP(&numbers, "numbers", "n", false, "also list the distinct numeric literals, integers first")
	return cmd
}

// tokens scans filename and prints one token per line.
// A lexical error ends the stream.
func (a *app) tokens(w io.Writer, filename string, numbers bool) error {
	f, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	start := time.Now()
	failed := false
	s := syntax.NewScanner(filename, f, func(line, col uint32, msg string) {
		failed = true
		a.diag.error(syntax.NewPos(filename, line, col), msg)
	})
	s.SetWarningHandler(func(line, col uint32, msg string) {
		a.diag.warning(syntax.NewPos(filename, line, col), msg)
	})

	fmt.Fprintf(w, "%-10s %-8s %s\n", "POSITION", "TOKEN", "LITERAL")
	fmt.Fprintf(w, "%-10s %-8s %s\n", strings.Repeat("-", 10), strings.Repeat("-", 8), strings.Repeat("-", 12))

	n := 0
	var nums []syntax.Number
	for {
		it := s.NextItem()
		if it.Tok.IsEOF() {
			break
		}
		n++
		pos := fmt.Sprintf("%d:%d", it.Pos.Line(), it.Pos.Col())
		fmt.Fprintf(w, "%-10s %-8s %s\n", pos, tokenName(it), formatLiteral(it))
		if it.IsLiteral() && it.Kind != syntax.StringLit {
			nums = append(nums, it.Num)
		}
	}

	if numbers {
		slices.SortFunc(nums, syntax.Number.Compare)
		nums = slices.CompactFunc(nums, func(x, y syntax.Number) bool { return x.Compare(y) == 0 })
		list := make([]string, len(nums))
		for i, num := range nums {
			list[i] = num.String()
		}
		fmt.Fprintf(w, "\nNUMBERS    %s\n", strings.Join(list, " "))
	}

	a.log.Debug("scan", "file", filename, "tokens", n, "duration", time.Since(start))
	if failed {
		return errReported
	}
	return nil
}

// tokenName names an item's token; literals are named by their kind.
func tokenName(it syntax.Item) string {
	if it.IsLiteral() {
		return strings.ToUpper(it.Kind.String())
	}
	return it.Tok.String()
}

// formatLiteral returns the literal column of an item. Keywords and
// operators have none.
func formatLiteral(it syntax.Item) string {
	switch {
	case it.IsName():
		return it.Lit
	case it.IsLiteral() && it.Kind == syntax.StringLit:
		return strconv.Quote(it.Lit)
	case it.IsLiteral():
		return it.Lit
	}
	return ""
}
