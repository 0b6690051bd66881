// Package ast defines compass's typed intermediate representation: the
// closed sum types for variable types, operands, expressions, and
// statements described in spec.md S3.
package ast

import (
	"fmt"
)

// Span is a source byte range, used for diagnostics.
type Span struct {
	Start int
	End   int
}

// VarType is one of the primitive types compass's type system supports.
type VarType int

const (
	I8 VarType = iota
	I16
	I32
	I64
	U8
	U16
	U32
	U64
	F32
	F64
	Bool
	Str
	Void
	// Ptr is opaque and produced only by Dereference operands; it is never
	// a user-declarable VarType (spec.md S3, SPEC_FULL.md S4.4).
	Ptr
)

var varTypeNames = map[VarType]string{
	I8: "i8", I16: "i16", I32: "i32", I64: "i64",
	U8: "u8", U16: "u16", U32: "u32", U64: "u64",
	F32: "f32", F64: "f64", Bool: "bool", Str: "str", Void: "void", Ptr: "ptr",
}

var namesToVarType = func() map[string]VarType {
	m := make(map[string]VarType, len(varTypeNames))
	for t, name := range varTypeNames {
		m[name] = t
	}
	return m
}()

func (t VarType) String() string {
	if name, ok := varTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("VarType(%d)", int(t))
}

// ParseVarType parses a canonical lowercase type name. Parsing is total on
// that form and fails otherwise (spec.md S3). "ptr" is deliberately
// excluded: it is never user-spellable.
func ParseVarType(s string) (VarType, error) {
	if s == "ptr" {
		return 0, fmt.Errorf("invalid type: %s", s)
	}
	if t, ok := namesToVarType[s]; ok {
		return t, nil
	}
	return 0, fmt.Errorf("invalid type: %s", s)
}

// IsIntegerBitWidth64 reports whether t is i64 or u64 -- used to reject
// 64-bit arithmetic and initialization uniformly in codegen (spec.md S9).
func (t VarType) IsIntegerBitWidth64() bool {
	return t == I64 || t == U64
}

// Operator is an arithmetic binary operator.
type Operator int

const (
	Add Operator = iota
	Sub
	Mul
	Div
)

func (o Operator) String() string {
	switch o {
	case Add:
		return "+"
	case Sub:
		return "-"
	case Mul:
		return "*"
	case Div:
		return "/"
	default:
		return "?"
	}
}

// Condition is a comparison or logical condition operator.
type Condition int

const (
	LessThan Condition = iota
	GreaterThan
	LessThanOrEqual
	GreaterThanOrEqual
	Equal
	NotEqual
	And
	Or
)

func (c Condition) String() string {
	switch c {
	case LessThan:
		return "<"
	case GreaterThan:
		return ">"
	case LessThanOrEqual:
		return "<="
	case GreaterThanOrEqual:
		return ">="
	case Equal:
		return "=="
	case NotEqual:
		return "!="
	case And:
		return "&&"
	case Or:
		return "||"
	default:
		return "?"
	}
}

// IsLogical reports whether c is the short-circuit && or || condition,
// which may only be lowered as part of a ConditionalJump (spec.md S4.4).
func (c Condition) IsLogical() bool {
	return c == And || c == Or
}
