package parser

import (
	"fmt"

	"github.com/celestialhub/compass-go/ast"
)

// ErrorKind enumerates the syntactic and semantic error taxonomy from
// spec.md S7. DuplicateFunction is a generalization beyond that list's
// six named semantic kinds: the taxonomy is described as "kinds, not
// type names" and S4.2 item 3 requires rejecting duplicate function
// declarations without naming the kind that should surface.
type ErrorKind int

const (
	InvalidToken ErrorKind = iota
	UnrecognizedToken
	WrongType
	UnknownVariable
	UnknownFunction
	WrongArgumentCount
	FunctionIsBuiltin
	UnusedValue
	DuplicateFunction
)

// Tip is a secondary labeled span attached to an Error, e.g. pointing at
// a prior declaration (spec.md S7 "ErrorTip{message, span}").
type Tip struct {
	Message string
	Span    ast.Span
}

// Error is a single parse-time failure: a syntactic grammar violation or
// a semantic check against ast.Context.
type Error struct {
	Kind    ErrorKind
	Span    ast.Span
	Message string
	Help    string
	Tips    []Tip
}

func (e Error) Error() string {
	return e.Message
}

func newError(kind ErrorKind, span ast.Span, message string) Error {
	e := Error{Kind: kind, Span: span, Message: message}
	if kind != InvalidToken && kind != UnrecognizedToken {
		e.Tips = selfTip(span, message)
	}
	return e
}

func unrecognizedToken(span ast.Span, got string, expected []string) Error {
	return Error{
		Kind:    UnrecognizedToken,
		Span:    span,
		Message: fmt.Sprintf("unrecognized token %s", got),
		Help:    expectedHelp(expected),
	}
}

func expectedHelp(expected []string) string {
	if len(expected) == 0 {
		return ""
	}
	msg := "expected one of the following: "
	for i, e := range expected {
		if i > 0 {
			msg += ", "
		}
		msg += e
	}
	return msg
}

// selfTip wraps an error's own message and span as its first ErrorTip,
// matching original_source/src/ast/mod.rs's Operand::get_type: every
// semantic error there carries at least one ErrorTip{message, location}
// built from the same message and span as the surrounding error, not a
// distinct "did you mean" suggestion (spec.md S7's "one or more").
func selfTip(span ast.Span, message string) []Tip {
	return []Tip{{Message: message, Span: span}}
}

func unknownVariable(span ast.Span, name string) Error {
	message := fmt.Sprintf("unknown variable `%s`", name)
	return Error{
		Kind:    UnknownVariable,
		Span:    span,
		Message: message,
		Tips:    selfTip(span, message),
	}
}

func unknownFunction(span ast.Span, name string) Error {
	message := fmt.Sprintf("unknown function `%s`", name)
	return Error{
		Kind:    UnknownFunction,
		Span:    span,
		Message: message,
		Tips:    selfTip(span, message),
	}
}

func wrongType(span ast.Span, expected, found ast.VarType) Error {
	message := fmt.Sprintf("wrong type: expected %s, found %s", expected, found)
	return Error{
		Kind:    WrongType,
		Span:    span,
		Message: message,
		Help:    "change the literal suffix or the declared type so both sides agree",
		Tips:    selfTip(span, message),
	}
}
