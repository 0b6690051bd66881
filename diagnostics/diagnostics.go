// Package diagnostics renders lexical, syntactic, and semantic errors as
// colored, source-pointing reports. It is the external "terminal color /
// diagnostic rendering" collaborator named in spec.md S1: the lexer,
// parser, and codegen packages return their own error values and never
// import this package or its color dependency; the CLI converts lex and
// parse errors into Diagnostic values for Render.
package diagnostics

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

const issueTracker = "github.com/celestialhub/compass-go/issues"

// Tip is a secondary, labeled span attached to a Diagnostic -- spec.md S7's
// "ErrorTip{message, span}".
type Tip struct {
	Message string
	Start   int
	End     int
}

// Diagnostic is a single reportable error with a source span, optional
// help text, and zero or more secondary tips.
type Diagnostic struct {
	Message string
	Start   int
	End     int
	Help    string
	Tips    []Tip
}

// Source identifies the file a Diagnostic's spans are relative to.
type Source struct {
	Name string
	Text string
}

// Options controls Render's output, sourced from config.Config.Diagnostics
// (color_output, show_help) so the CLI's color and verbosity are not
// hardcoded into the renderer.
type Options struct {
	Color    bool
	ShowHelp bool
}

// DefaultOptions matches config.DefaultConfig's diagnostics section.
func DefaultOptions() Options {
	return Options{Color: true, ShowHelp: true}
}

// Render writes a source-pointing report to w, following the teacher's
// plain-text Error.Error() shape (spec.md S4.2, S7): message, underlined
// span with line:column context, optional help line, and a footer
// pointing at the issue tracker. opts.Color toggles ANSI coloring;
// opts.ShowHelp toggles the help line and the issue-tracker footer.
func Render(w io.Writer, src Source, d Diagnostic, opts Options) {
	line, col, lineText := locate(src.Text, d.Start)

	red := color.New(color.FgRed, color.Bold)
	yellow := color.New(color.FgYellow)
	cyan := color.New(color.FgCyan)
	if !opts.Color {
		red.DisableColor()
		yellow.DisableColor()
		cyan.DisableColor()
	}

	fmt.Fprintf(w, "%s: %s\n", red.Sprint("error"), d.Message)
	fmt.Fprintf(w, "  --> %s:%d:%d\n", src.Name, line, col)
	fmt.Fprintf(w, "   |\n")
	fmt.Fprintf(w, "%3d| %s\n", line, lineText)
	fmt.Fprintf(w, "   | %s%s\n", strings.Repeat(" ", col-1), red.Sprint(strings.Repeat("^", span(d.Start, d.End))))

	for _, tip := range d.Tips {
		tipLine, tipCol, _ := locate(src.Text, tip.Start)
		fmt.Fprintf(w, "   | %s note: %s (%d:%d)\n", cyan.Sprint("-"), tip.Message, tipLine, tipCol)
	}

	if !opts.ShowHelp {
		return
	}

	if d.Help != "" {
		fmt.Fprintf(w, "   = %s: %s\n", yellow.Sprint("help"), d.Help)
	}

	fmt.Fprintf(w, "   = note: if you think this is a bug, please file an issue at %s\n", cyan.Sprint(issueTracker))
}

func span(start, end int) int {
	if end <= start {
		return 1
	}
	return end - start
}

// locate converts a byte offset into a 1-based line, 1-based column, and
// the full text of the line it falls on.
func locate(text string, offset int) (line, col int, lineText string) {
	if offset > len(text) {
		offset = len(text)
	}

	line = 1
	lineStart := 0
	for i := 0; i < offset; i++ {
		if text[i] == '\n' {
			line++
			lineStart = i + 1
		}
	}

	lineEnd := strings.IndexByte(text[lineStart:], '\n')
	if lineEnd < 0 {
		lineText = text[lineStart:]
	} else {
		lineText = text[lineStart : lineStart+lineEnd]
	}

	col = offset - lineStart + 1
	return line, col, lineText
}
