package codegen

import (
	"fmt"

	"github.com/celestialhub/compass-go/ast"
)

// immediateText formats a literal operand as a MIPS immediate. 64-bit
// integers and floats are rejected uniformly (spec.md S9 resolves the
// "64-bit arithmetic" open question by extending the literal-init
// rejection to every 64-bit use, not just declaration).
func immediateText(op ast.Operand) (string, error) {
	switch op.Kind {
	case ast.OperandLiteralI8:
		return fmt.Sprintf("%d", op.I8), nil
	case ast.OperandLiteralI16:
		return fmt.Sprintf("%d", op.I16), nil
	case ast.OperandLiteralI32:
		return fmt.Sprintf("%d", op.I32), nil
	case ast.OperandLiteralU8:
		return fmt.Sprintf("%d", op.U8), nil
	case ast.OperandLiteralU16:
		return fmt.Sprintf("%d", op.U16), nil
	case ast.OperandLiteralU32:
		return fmt.Sprintf("%d", op.U32), nil
	case ast.OperandLiteralBool:
		if op.Bool {
			return "1", nil
		}
		return "0", nil
	case ast.OperandLiteralI64, ast.OperandLiteralU64:
		return "", errorf("cannot store 64-bit integer in a 32-bit register")
	case ast.OperandLiteralF32, ast.OperandLiteralF64:
		return "", errorf("floating-point code generation is not supported")
	default:
		return "", errorf("operand is not a valid immediate value")
	}
}
