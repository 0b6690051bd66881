package ast

import "fmt"

// OperandKind tags the closed set of operand forms.
type OperandKind int

const (
	OperandIdentifier OperandKind = iota
	OperandDereference
	OperandLiteralStr
	OperandLiteralBool
	OperandLiteralI8
	OperandLiteralI16
	OperandLiteralI32
	OperandLiteralI64
	OperandLiteralU8
	OperandLiteralU16
	OperandLiteralU32
	OperandLiteralU64
	OperandLiteralF32
	OperandLiteralF64
)

// Operand is a value that can appear on the right of an assignment, as an
// arithmetic/conditional operand, or as a call argument. It is a closed
// sum type represented with a Kind tag plus the field relevant to that
// kind, matching the Rust source's `enum Operand` (SPEC_FULL.md S4).
type Operand struct {
	Kind OperandKind
	Span Span

	// Identifier / Dereference
	Name string

	Str  string
	Bool bool
	I8   int8
	I16  int16
	I32  int32
	I64  int64
	U8   uint8
	U16  uint16
	U32  uint32
	U64  uint64
	F32  float32
	F64  float64
}

func Identifier(name string, span Span) Operand {
	return Operand{Kind: OperandIdentifier, Name: name, Span: span}
}

// Dereference is `*name`: a pointer-typed read of a buffer or string
// variable's address. It always resolves to VarType Ptr, never to the
// referent's own declared type (SPEC_FULL.md S4.4 supplement).
func Dereference(name string, span Span) Operand {
	return Operand{Kind: OperandDereference, Name: name, Span: span}
}

func (o Operand) String() string {
	switch o.Kind {
	case OperandIdentifier:
		return o.Name
	case OperandDereference:
		return "*" + o.Name
	case OperandLiteralStr:
		return o.Str
	case OperandLiteralBool:
		return fmt.Sprintf("%t", o.Bool)
	case OperandLiteralI8:
		return fmt.Sprintf("%d", o.I8)
	case OperandLiteralI16:
		return fmt.Sprintf("%d", o.I16)
	case OperandLiteralI32:
		return fmt.Sprintf("%d", o.I32)
	case OperandLiteralI64:
		return fmt.Sprintf("%d", o.I64)
	case OperandLiteralU8:
		return fmt.Sprintf("%d", o.U8)
	case OperandLiteralU16:
		return fmt.Sprintf("%d", o.U16)
	case OperandLiteralU32:
		return fmt.Sprintf("%d", o.U32)
	case OperandLiteralU64:
		return fmt.Sprintf("%d", o.U64)
	case OperandLiteralF32:
		return fmt.Sprintf("%g", o.F32)
	case OperandLiteralF64:
		return fmt.Sprintf("%g", o.F64)
	default:
		return "<invalid operand>"
	}
}

// GetType resolves the operand's VarType, consulting ctx for identifiers
// and dereferences (SPEC_FULL.md S4.3 supplement: Operand::get_type takes
// a Context). Unknown identifiers report ok=false rather than an error;
// callers attach the UnknownVariable diagnostic themselves so they can
// include the call-site span and a tip repeating that message.
func (o Operand) GetType(ctx *Context) (VarType, bool) {
	switch o.Kind {
	case OperandIdentifier:
		v, ok := ctx.GetVariable(o.Name)
		if !ok {
			return 0, false
		}
		return v.VarType, true
	case OperandDereference:
		if _, ok := ctx.GetVariable(o.Name); !ok {
			return 0, false
		}
		return Ptr, true
	case OperandLiteralStr:
		return Str, true
	case OperandLiteralBool:
		return Bool, true
	case OperandLiteralI8:
		return I8, true
	case OperandLiteralI16:
		return I16, true
	case OperandLiteralI32:
		return I32, true
	case OperandLiteralI64:
		return I64, true
	case OperandLiteralU8:
		return U8, true
	case OperandLiteralU16:
		return U16, true
	case OperandLiteralU32:
		return U32, true
	case OperandLiteralU64:
		return U64, true
	case OperandLiteralF32:
		return F32, true
	case OperandLiteralF64:
		return F64, true
	default:
		return 0, false
	}
}

// IsImmediate reports whether o is a literal rather than an
// identifier/dereference -- codegen dispatches register/immediate
// arithmetic combinations on this distinction (spec.md S4.4, S9).
func (o Operand) IsImmediate() bool {
	return o.Kind != OperandIdentifier && o.Kind != OperandDereference
}
