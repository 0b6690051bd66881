// Command compass is the TAC-to-MIPS ahead-of-time compiler's CLI entry
// point: one subcommand, "emit", wiring lexer -> parser -> codegen and
// rendering lex and parse failures as colorized, source-pointing
// diagnostics (spec.md S6).
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// Version information, overridable at build time with:
// go build -ldflags "-X main.Version=v1.2.3"
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

func main() {
	os.Exit(Execute(os.Args[1:], os.Stdout, os.Stderr))
}

// Execute parses args against the root command and returns a process exit
// code, never calling os.Exit itself so it can be driven from tests.
func Execute(args []string, stdout, stderr io.Writer) int {
	root := newRootCmd(stdout, stderr)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SilenceUsage = true
	root.SilenceErrors = true

	if err := root.Execute(); err != nil {
		if err != errDiagnosticsReported {
			fmt.Fprintln(stderr, err)
		}
		return 1
	}
	return 0
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:     "compass",
		Short:   "compass compiles typed three-address code into MIPS assembly",
		Version: fmt.Sprintf("%s (commit %s, built %s)", Version, Commit, Date),
	}
	root.AddCommand(newEmitCmd(stdout, stderr))
	return root
}
