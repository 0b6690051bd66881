package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/celestialhub/compass-go/ast"
	"github.com/celestialhub/compass-go/codegen"
	"github.com/celestialhub/compass-go/config"
	"github.com/celestialhub/compass-go/diagnostics"
	"github.com/celestialhub/compass-go/internal/telemetry"
	"github.com/celestialhub/compass-go/lexer"
	"github.com/celestialhub/compass-go/parser"
	"github.com/celestialhub/compass-go/token"
)

// errDiagnosticsReported marks a failure whose diagnostic has already been
// rendered to stderr, so Execute doesn't print a redundant generic message.
var errDiagnosticsReported = errors.New("diagnostics reported")

func newEmitCmd(stdout, stderr io.Writer) *cobra.Command {
	var (
		file      string
		verbosity int
	)

	cmd := &cobra.Command{
		Use:   "emit",
		Short: "Compile a TAC source file to MIPS assembly",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEmit(stdout, stderr, file, verbosity)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "source file to compile (required)")
	cmd.Flags().CountVarP(&verbosity, "debug", "d", "print tokens (-d) or tokens and the parsed AST (-dd)")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

// runEmit drives the lexer -> parser -> codegen pipeline (spec.md S6): on
// success the generated assembly goes to stdout. A lex or parse failure is
// rendered as a colorized diagnostic on stderr; a codegen failure is
// printed as a plain "error:" line on stderr; a config or file-read failure
// is returned to the caller. The pipeline stops at the first error, per
// spec.md S7's propagation policy.
func runEmit(stdout, stderr io.Writer, path string, verbosity int) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log := telemetry.New(stderr, verbosityFromCount(verbosity))

	src, err := os.ReadFile(path) // #nosec G304 -- path is a user-supplied CLI argument, the compiler's entire purpose
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	text := string(src)
	source := diagnostics.Source{Name: path, Text: text}

	opts := diagnostics.Options{Color: cfg.Diagnostics.ColorOutput, ShowHelp: cfg.Diagnostics.ShowHelp}

	log.Stage("lex").Info("starting")
	toks, err := lexer.New(text).Tokens()
	if err != nil {
		renderLexErrors(stderr, source, err.(lexer.ErrorList), opts)
		return errDiagnosticsReported
	}
	log.Stat("lex", logrus.Fields{"tokens": len(toks)})
	if verbosity >= 1 {
		dumpTokens(stderr, toks)
	}

	log.Stage("parse").Info("starting")
	p := parser.New(toks)
	stmts, err := p.ParseProgram()
	if err != nil {
		renderParseError(stderr, source, err.(parser.Error), opts)
		return errDiagnosticsReported
	}
	log.Stat("parse", logrus.Fields{"statements": len(stmts)})
	if verbosity >= 2 {
		dumpStatements(stderr, stmts)
	}

	log.Stage("codegen").Info("starting")
	program, err := codegen.Generate(stmts, cfg.Codegen.RegisterPrefix, cfg.Codegen.EntrypointName)
	if err != nil {
		fmt.Fprintf(stderr, "error: %s\n", err)
		if cfg.Diagnostics.ShowHelp {
			fmt.Fprintf(stderr, "   = note: if you think this is a bug, please file an issue at github.com/celestialhub/compass-go/issues\n")
		}
		return errDiagnosticsReported
	}
	log.Stage("codegen").Info("done")

	fmt.Fprint(stdout, program.String())
	return nil
}

func verbosityFromCount(n int) telemetry.Verbosity {
	switch {
	case n >= 2:
		return telemetry.Debug
	case n == 1:
		return telemetry.Verbose
	default:
		return telemetry.Quiet
	}
}

func renderLexErrors(w io.Writer, src diagnostics.Source, errs lexer.ErrorList, opts diagnostics.Options) {
	for _, e := range errs {
		diagnostics.Render(w, src, diagnostics.Diagnostic{
			Message: e.Error(),
			Start:   e.Start,
			End:     e.End,
		}, opts)
	}
}

func renderParseError(w io.Writer, src diagnostics.Source, e parser.Error, opts diagnostics.Options) {
	d := diagnostics.Diagnostic{
		Message: e.Message,
		Start:   e.Span.Start,
		End:     e.Span.End,
		Help:    e.Help,
	}
	for _, tip := range e.Tips {
		d.Tips = append(d.Tips, diagnostics.Tip{Message: tip.Message, Start: tip.Span.Start, End: tip.Span.End})
	}
	diagnostics.Render(w, src, d, opts)
}

func dumpTokens(w io.Writer, toks []token.Token) {
	fmt.Fprintln(w, "-- tokens --")
	for _, tok := range toks {
		fmt.Fprintf(w, "  %s\n", tok)
	}
}

func dumpStatements(w io.Writer, stmts []ast.Statement) {
	fmt.Fprintln(w, "-- ast --")
	for i, stmt := range stmts {
		fmt.Fprintf(w, "  [%d] %s\n", i, stmt.Kind)
	}
}
