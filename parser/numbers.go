package parser

import (
	"strconv"
	"strings"

	"github.com/celestialhub/compass-go/ast"
	"github.com/celestialhub/compass-go/token"
)

// integerSuffix mirrors the lexer's integer suffix table so the text already
// validated not to overflow can be re-parsed into the ast.Operand's
// concrete Go numeric type.
var integerSuffix = map[token.Kind]string{
	token.LiteralI8:  "i8",
	token.LiteralI16: "i16",
	token.LiteralI32: "i32",
	token.LiteralI64: "i64",
	token.LiteralU8:  "u8",
	token.LiteralU16: "u16",
	token.LiteralU32: "u32",
	token.LiteralU64: "u64",
}

func stripSuffix(text, suffix string) string {
	if suffix != "" && strings.HasSuffix(text, suffix) {
		return text[:len(text)-len(suffix)]
	}
	return text
}

// literalOperand converts a literal token into its ast.Operand,
// re-parsing the numeric text the lexer already validated (spec.md
// S4.1's overflow check ran once already; this never sees an
// out-of-range value).
func literalOperand(tok token.Token, span ast.Span) (ast.Operand, error) {
	switch tok.Kind {
	case token.LiteralString:
		return ast.Operand{Kind: ast.OperandLiteralStr, Str: tok.Literal, Span: span}, nil
	case token.LiteralTrue:
		return ast.Operand{Kind: ast.OperandLiteralBool, Bool: true, Span: span}, nil
	case token.LiteralFalse:
		return ast.Operand{Kind: ast.OperandLiteralBool, Bool: false, Span: span}, nil
	case token.LiteralF32:
		v, err := parseFloatLiteral(tok.Literal, "f32")
		if err != nil {
			return ast.Operand{}, newError(InvalidToken, span, err.Error())
		}
		return ast.Operand{Kind: ast.OperandLiteralF32, F32: float32(v), Span: span}, nil
	case token.LiteralF64:
		v, err := parseFloatLiteral(tok.Literal, "f64")
		if err != nil {
			return ast.Operand{}, newError(InvalidToken, span, err.Error())
		}
		return ast.Operand{Kind: ast.OperandLiteralF64, F64: v, Span: span}, nil
	}

	suffix := integerSuffix[tok.Kind]
	text := stripSuffix(tok.Literal, suffix)

	switch tok.Kind {
	case token.LiteralI8, token.LiteralI16, token.LiteralI32, token.LiteralI64:
		v, err := strconv.ParseInt(text, 0, bitSizeFor(tok.Kind))
		if err != nil {
			return ast.Operand{}, newError(InvalidToken, span, "invalid integer literal")
		}
		return signedOperand(tok.Kind, v, span), nil
	case token.LiteralU8, token.LiteralU16, token.LiteralU32, token.LiteralU64:
		v, err := strconv.ParseUint(text, 0, bitSizeFor(tok.Kind))
		if err != nil {
			return ast.Operand{}, newError(InvalidToken, span, "invalid integer literal")
		}
		return unsignedOperand(tok.Kind, v, span), nil
	}

	return ast.Operand{}, newError(InvalidToken, span, "not a literal token")
}

func parseFloatLiteral(text, suffix string) (float64, error) {
	text = stripSuffix(text, suffix)
	return strconv.ParseFloat(text, 64)
}

func bitSizeFor(kind token.Kind) int {
	switch kind {
	case token.LiteralI8, token.LiteralU8:
		return 8
	case token.LiteralI16, token.LiteralU16:
		return 16
	case token.LiteralI64, token.LiteralU64:
		return 64
	default:
		return 32
	}
}

func signedOperand(kind token.Kind, v int64, span ast.Span) ast.Operand {
	switch kind {
	case token.LiteralI8:
		return ast.Operand{Kind: ast.OperandLiteralI8, I8: int8(v), Span: span}
	case token.LiteralI16:
		return ast.Operand{Kind: ast.OperandLiteralI16, I16: int16(v), Span: span}
	case token.LiteralI64:
		return ast.Operand{Kind: ast.OperandLiteralI64, I64: v, Span: span}
	default:
		return ast.Operand{Kind: ast.OperandLiteralI32, I32: int32(v), Span: span}
	}
}

func unsignedOperand(kind token.Kind, v uint64, span ast.Span) ast.Operand {
	switch kind {
	case token.LiteralU8:
		return ast.Operand{Kind: ast.OperandLiteralU8, U8: uint8(v), Span: span}
	case token.LiteralU16:
		return ast.Operand{Kind: ast.OperandLiteralU16, U16: uint16(v), Span: span}
	case token.LiteralU64:
		return ast.Operand{Kind: ast.OperandLiteralU64, U64: v, Span: span}
	default:
		return ast.Operand{Kind: ast.OperandLiteralU32, U32: uint32(v), Span: span}
	}
}
