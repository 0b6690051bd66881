package ast

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVarTypeStringRoundTrip(t *testing.T) {
	for _, tt := range []VarType{I8, I16, I32, I64, U8, U16, U32, U64, F32, F64, Bool, Str, Void} {
		parsed, err := ParseVarType(tt.String())
		require.NoError(t, err)
		require.Equal(t, tt, parsed)
	}
}

func TestParseVarTypeRejectsPtr(t *testing.T) {
	_, err := ParseVarType("ptr")
	require.Error(t, err)
}

func TestParseVarTypeRejectsUnknown(t *testing.T) {
	_, err := ParseVarType("not_a_type")
	require.Error(t, err)
}

func TestPtrStringIsPtr(t *testing.T) {
	require.Equal(t, "ptr", Ptr.String())
}

func TestIsIntegerBitWidth64(t *testing.T) {
	require.True(t, I64.IsIntegerBitWidth64())
	require.True(t, U64.IsIntegerBitWidth64())
	require.False(t, I32.IsIntegerBitWidth64())
}

func TestConditionIsLogical(t *testing.T) {
	require.True(t, And.IsLogical())
	require.True(t, Or.IsLogical())
	require.False(t, Equal.IsLogical())
}

func TestOperandGetTypeLiteral(t *testing.T) {
	ctx := NewContext()
	o := Operand{Kind: OperandLiteralI32, I32: 7}
	vt, ok := o.GetType(ctx)
	require.True(t, ok)
	require.Equal(t, I32, vt)
}

func TestOperandGetTypeIdentifier(t *testing.T) {
	ctx := NewContext()
	ctx.AddVariable(Variable{VarType: F64, Name: "x"})

	vt, ok := Identifier("x", Span{}).GetType(ctx)
	require.True(t, ok)
	require.Equal(t, F64, vt)
}

func TestOperandGetTypeUnknownIdentifier(t *testing.T) {
	ctx := NewContext()
	_, ok := Identifier("missing", Span{}).GetType(ctx)
	require.False(t, ok)
}

func TestOperandGetTypeDereferenceIsPtr(t *testing.T) {
	ctx := NewContext()
	ctx.AddVariable(Variable{VarType: Str, Name: "buf"})

	vt, ok := Dereference("buf", Span{}).GetType(ctx)
	require.True(t, ok)
	require.Equal(t, Ptr, vt)
}

func TestOperandIsImmediate(t *testing.T) {
	require.True(t, (Operand{Kind: OperandLiteralI32}).IsImmediate())
	require.False(t, Identifier("a", Span{}).IsImmediate())
	require.False(t, Dereference("a", Span{}).IsImmediate())
}

func TestExprGetTypeBinaryOperation(t *testing.T) {
	ctx := NewContext()
	e := NewBinaryOperationExpr(BinaryOperation{Kind: BinaryArithmetic, OperationType: I32})
	vt, ok := e.GetType(ctx)
	require.True(t, ok)
	require.Equal(t, I32, vt)
}

func TestExprGetTypeFunctionCall(t *testing.T) {
	ctx := NewContext()
	vt, ok := NewFunctionCallExpr(FunctionCall{Name: "read_int"}).GetType(ctx)
	require.True(t, ok)
	require.Equal(t, I32, vt)
}

func TestContextScoping(t *testing.T) {
	ctx := NewContext()
	ctx.AddVariable(Variable{Name: "outer", VarType: I32})

	ctx.PushScope()
	ctx.AddVariable(Variable{Name: "inner", VarType: Bool})

	v, ok := ctx.GetVariable("inner")
	require.True(t, ok)
	require.Equal(t, Bool, v.VarType)

	v, ok = ctx.GetVariable("outer")
	require.True(t, ok)
	require.Equal(t, I32, v.VarType)

	ctx.PopScope()
	_, ok = ctx.GetVariable("inner")
	require.False(t, ok, "inner scope variable must not be visible after pop")
}

func TestContextShadowing(t *testing.T) {
	ctx := NewContext()
	ctx.AddVariable(Variable{Name: "x", VarType: I32})
	ctx.PushScope()
	ctx.AddVariable(Variable{Name: "x", VarType: Str})

	v, ok := ctx.GetVariable("x")
	require.True(t, ok)
	require.Equal(t, Str, v.VarType, "innermost declaration must shadow outer ones")
}

func TestContextBuiltinsPreloaded(t *testing.T) {
	ctx := NewContext()

	for name, wantArity := range map[string]int{
		"write_string": 1,
		"write_int":    1,
		"read_int":     0,
		"read_string":  1,
	} {
		fn, ok := ctx.GetFunction(name)
		require.True(t, ok, name)
		require.True(t, fn.IsBuiltin, name)
		require.Len(t, fn.Args, wantArity, name)
	}
}

func TestContextBuiltinsShadowUserFunctions(t *testing.T) {
	ctx := NewContext()
	require.True(t, ctx.IsBuiltinName("write_int"))

	// A user attempting to register write_int does not remove the
	// built-in from lookup priority: per spec.md S4.3 the parser must
	// reject this at declaration time via FunctionIsBuiltin, and even if
	// it were allowed through, AddFunction ignores a built-in's name:
	// HasUserFunction lets the parser check before calling AddFunction
	// at all.
	require.False(t, ctx.HasUserFunction("write_int"))
}

func TestContextUserFunctionRoundTrip(t *testing.T) {
	ctx := NewContext()
	ctx.AddFunction(Function{Name: "double", Args: []Argument{{Name: "n", VarType: I32}}, ReturnType: I32})

	fn, ok := ctx.GetFunction("double")
	require.True(t, ok)
	require.False(t, fn.IsBuiltin)
	require.True(t, ctx.HasUserFunction("double"))
}
