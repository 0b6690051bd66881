package codegen

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/celestialhub/compass-go/ast"
)

func i32(v int32) ast.Operand {
	return ast.Operand{Kind: ast.OperandLiteralI32, I32: v}
}

func TestGenerateIntegerInit(t *testing.T) {
	stmts := []ast.Statement{
		ast.NewVariableDeclaration(ast.Variable{Name: "a", VarType: ast.I32, Value: ast.NewOperandExpr(i32(13))}),
	}

	program, err := Generate(stmts, "$t", "main")
	require.NoError(t, err)

	out := program.String()
	require.Contains(t, out, "main:")
	require.Contains(t, out, "li $t0, 13")
}

func TestGenerateSumOfRegisters(t *testing.T) {
	stmts := []ast.Statement{
		ast.NewVariableDeclaration(ast.Variable{Name: "a", VarType: ast.I32, Value: ast.NewOperandExpr(i32(13))}),
		ast.NewVariableDeclaration(ast.Variable{Name: "b", VarType: ast.I32, Value: ast.NewOperandExpr(i32(14))}),
		ast.NewVariableDeclaration(ast.Variable{Name: "c", VarType: ast.I32, Value: ast.NewBinaryOperationExpr(ast.BinaryOperation{
			Kind: ast.BinaryArithmetic, LHS: ast.Identifier("a", ast.Span{}), Operator: ast.Add, RHS: ast.Identifier("b", ast.Span{}), OperationType: ast.I32,
		})}),
	}

	program, err := Generate(stmts, "$t", "main")
	require.NoError(t, err)

	out := program.String()
	require.Contains(t, out, "li $t0, 13")
	require.Contains(t, out, "li $t1, 14")
	require.Contains(t, out, "add $t2, $t0, $t1")
}

func TestGenerateStringInterningDeduplicates(t *testing.T) {
	stmts := []ast.Statement{
		ast.NewCall(ast.FunctionCall{Name: "write_string", Args: []ast.Operand{{Kind: ast.OperandLiteralStr, Str: "hi"}}}),
		ast.NewCall(ast.FunctionCall{Name: "write_string", Args: []ast.Operand{{Kind: ast.OperandLiteralStr, Str: "hi"}}}),
	}

	program, err := Generate(stmts, "$t", "main")
	require.NoError(t, err)

	out := program.String()
	require.Equal(t, 1, countOccurrences(out, `str_0: .asciiz "hi"`))
	require.Equal(t, 2, countOccurrences(out, "la $t0, str_0")+countOccurrences(out, "la $t1, str_0"))
}

func TestGenerateShortCircuitAnd(t *testing.T) {
	stmts := []ast.Statement{
		ast.NewVariableDeclaration(ast.Variable{Name: "a", VarType: ast.Bool, Value: ast.NewOperandExpr(ast.Operand{Kind: ast.OperandLiteralBool, Bool: true})}),
		ast.NewVariableDeclaration(ast.Variable{Name: "b", VarType: ast.Bool, Value: ast.NewOperandExpr(ast.Operand{Kind: ast.OperandLiteralBool, Bool: false})}),
		ast.NewConditionalJump(ast.NewBinaryOperationExpr(ast.BinaryOperation{
			Kind: ast.BinaryConditional, LHS: ast.Identifier("a", ast.Span{}), Condition: ast.And, RHS: ast.Identifier("b", ast.Span{}), OperationType: ast.Bool,
		}), "L", ast.Span{}),
	}

	program, err := Generate(stmts, "$t", "main")
	require.NoError(t, err)

	out := program.String()
	require.Contains(t, out, "beqz $t0, __and_1")
	require.Contains(t, out, "beqz $t1, __and_1")
	require.Contains(t, out, "j L")
	require.Contains(t, out, "__and_1:")
}

func TestGenerateUserFunctionPrecedesMain(t *testing.T) {
	fn := ast.Function{
		Name: "f",
		Args: []ast.Argument{{Name: "x", VarType: ast.I32}},
		Body: []ast.Statement{
			ast.NewCall(ast.FunctionCall{Name: "write_int", Args: []ast.Operand{ast.Identifier("x", ast.Span{})}}),
		},
		ReturnType: ast.Void,
	}

	stmts := []ast.Statement{
		ast.NewFunctionDefinition(fn),
		ast.NewCall(ast.FunctionCall{Name: "f", Args: []ast.Operand{i32(5)}}),
	}

	program, err := Generate(stmts, "$t", "main")
	require.NoError(t, err)

	out := program.String()
	mainIdx := indexOf(out, "main:")
	fnIdx := indexOf(out, "__f:")
	require.NotEqual(t, -1, mainIdx)
	require.NotEqual(t, -1, fnIdx)
	require.Less(t, fnIdx, mainIdx, "function body must precede main:")
	require.Contains(t, out, "jr $ra")
	require.Contains(t, out, "move $a0, $t0")
	require.Contains(t, out, "jal __f")
}

func TestGenerateRejects64BitInit(t *testing.T) {
	stmts := []ast.Statement{
		ast.NewVariableDeclaration(ast.Variable{Name: "a", VarType: ast.U64, Value: ast.NewOperandExpr(ast.Operand{Kind: ast.OperandLiteralU64, U64: 1})}),
	}

	_, err := Generate(stmts, "$t", "main")
	require.Error(t, err)
	require.Contains(t, err.Error(), "64-bit")
}

func TestGenerateRejects64BitConditionalRegisterOperand(t *testing.T) {
	stmts := []ast.Statement{
		ast.NewVariableDeclaration(ast.Variable{Name: "a", VarType: ast.I64, Value: ast.NewFunctionCallExpr(ast.FunctionCall{Name: "f"})}),
		ast.NewVariableDeclaration(ast.Variable{Name: "b", VarType: ast.I64, Value: ast.NewFunctionCallExpr(ast.FunctionCall{Name: "f"})}),
		ast.NewConditionalJump(ast.NewBinaryOperationExpr(ast.BinaryOperation{
			Kind: ast.BinaryConditional, LHS: ast.Identifier("a", ast.Span{}), Condition: ast.LessThan, RHS: ast.Identifier("b", ast.Span{}), OperationType: ast.I64,
		}), "L", ast.Span{}),
	}

	fn := ast.Function{Name: "f", ReturnType: ast.I64}
	full := append([]ast.Statement{ast.NewFunctionDefinition(fn)}, stmts...)

	_, err := Generate(full, "$t", "main")
	require.Error(t, err)
	require.Contains(t, err.Error(), "64-bit")
}

func TestGenerateRejectsImmediateRegisterArithmetic(t *testing.T) {
	stmts := []ast.Statement{
		ast.NewVariableDeclaration(ast.Variable{Name: "a", VarType: ast.I32, Value: ast.NewOperandExpr(i32(1))}),
		ast.NewVariableDeclaration(ast.Variable{Name: "b", VarType: ast.I32, Value: ast.NewBinaryOperationExpr(ast.BinaryOperation{
			Kind: ast.BinaryArithmetic, LHS: i32(1), Operator: ast.Add, RHS: ast.Identifier("a", ast.Span{}), OperationType: ast.I32,
		})}),
	}

	_, err := Generate(stmts, "$t", "main")
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid operands for arithmetic operation")
}

func TestGenerateRejectsMainLabel(t *testing.T) {
	stmts := []ast.Statement{ast.NewLabel("main", ast.Span{})}

	_, err := Generate(stmts, "$t", "main")
	require.Error(t, err)
	require.Contains(t, err.Error(), "main")
}

func TestGenerateCustomEntrypoint(t *testing.T) {
	stmts := []ast.Statement{
		ast.NewVariableDeclaration(ast.Variable{Name: "a", VarType: ast.I32, Value: ast.NewOperandExpr(i32(13))}),
	}

	program, err := Generate(stmts, "$t", "entry")
	require.NoError(t, err)
	out := program.String()
	require.Contains(t, out, "entry:")
	require.NotContains(t, out, "main:")

	_, err = Generate([]ast.Statement{ast.NewLabel("entry", ast.Span{})}, "$t", "entry")
	require.Error(t, err)
	require.Contains(t, err.Error(), "entry")
}

func TestGenerateReadIntAndReadString(t *testing.T) {
	stmts := []ast.Statement{
		ast.NewVariableDeclaration(ast.Variable{Name: "n", VarType: ast.I32, Value: ast.NewFunctionCallExpr(ast.FunctionCall{Name: "read_int"})}),
		ast.NewVariableDeclaration(ast.Variable{Name: "s", VarType: ast.Str, Value: ast.NewFunctionCallExpr(ast.FunctionCall{
			Name: "read_string", Args: []ast.Operand{{Kind: ast.OperandLiteralU32, U32: 64}},
		})}),
	}

	program, err := Generate(stmts, "$t", "main")
	require.NoError(t, err)

	out := program.String()
	require.Contains(t, out, "li $v0, 5")
	require.Contains(t, out, "li $v0, 8")
	require.Contains(t, out, "__buffer_0: .space 64")
}

func countOccurrences(haystack, needle string) int {
	count := 0
	for i := 0; i+len(needle) <= len(haystack); i++ {
		if haystack[i:i+len(needle)] == needle {
			count++
		}
	}
	return count
}

func indexOf(haystack, needle string) int {
	for i := 0; i+len(needle) <= len(haystack); i++ {
		if haystack[i:i+len(needle)] == needle {
			return i
		}
	}
	return -1
}
