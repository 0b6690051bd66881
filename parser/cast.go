package parser

import "github.com/celestialhub/compass-go/ast"

// castOperand reinterprets a numeric literal operand's value as
// targetType, used for "(type) literal" cast expressions. Non-numeric
// operands (identifiers, dereferences, strings, bools) cannot be cast.
func castOperand(inner ast.Operand, targetType ast.VarType, span ast.Span) (ast.Operand, error) {
	v, ok := numericValue(inner)
	if !ok {
		return ast.Operand{}, newError(WrongType, span, "cannot cast a non-numeric operand")
	}

	switch targetType {
	case ast.I8:
		return ast.Operand{Kind: ast.OperandLiteralI8, I8: int8(v), Span: span}, nil
	case ast.I16:
		return ast.Operand{Kind: ast.OperandLiteralI16, I16: int16(v), Span: span}, nil
	case ast.I32:
		return ast.Operand{Kind: ast.OperandLiteralI32, I32: int32(v), Span: span}, nil
	case ast.I64:
		return ast.Operand{Kind: ast.OperandLiteralI64, I64: int64(v), Span: span}, nil
	case ast.U8:
		return ast.Operand{Kind: ast.OperandLiteralU8, U8: uint8(v), Span: span}, nil
	case ast.U16:
		return ast.Operand{Kind: ast.OperandLiteralU16, U16: uint16(v), Span: span}, nil
	case ast.U32:
		return ast.Operand{Kind: ast.OperandLiteralU32, U32: uint32(v), Span: span}, nil
	case ast.U64:
		return ast.Operand{Kind: ast.OperandLiteralU64, U64: uint64(v), Span: span}, nil
	case ast.F32:
		return ast.Operand{Kind: ast.OperandLiteralF32, F32: float32(v), Span: span}, nil
	case ast.F64:
		return ast.Operand{Kind: ast.OperandLiteralF64, F64: v, Span: span}, nil
	default:
		return ast.Operand{}, newError(WrongType, span, "cannot cast to "+targetType.String())
	}
}

func numericValue(o ast.Operand) (float64, bool) {
	switch o.Kind {
	case ast.OperandLiteralI8:
		return float64(o.I8), true
	case ast.OperandLiteralI16:
		return float64(o.I16), true
	case ast.OperandLiteralI32:
		return float64(o.I32), true
	case ast.OperandLiteralI64:
		return float64(o.I64), true
	case ast.OperandLiteralU8:
		return float64(o.U8), true
	case ast.OperandLiteralU16:
		return float64(o.U16), true
	case ast.OperandLiteralU32:
		return float64(o.U32), true
	case ast.OperandLiteralU64:
		return float64(o.U64), true
	case ast.OperandLiteralF32:
		return float64(o.F32), true
	case ast.OperandLiteralF64:
		return o.F64, true
	default:
		return 0, false
	}
}
