// Command rstnc is the rstn compiler driver.
//
// Usage:
//
//	rstnc [flags] <file.rstn>
//	rstnc tokens|ast|check|symbols|gen <file.rstn>
//	rstnc version
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// errReported is returned after the diagnostics for a failure have
// already been printed.
var errReported = errors.New("rstnc: errors reported")

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command line args and returns the exit code.
func run(args []string, stdout, stderr io.Writer) int {
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.Execute(); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintf(stderr, "error: %v\n", err)
		}
		return 1
	}
	return 0
}
