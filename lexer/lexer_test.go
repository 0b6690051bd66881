package lexer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/celestialhub/compass-go/token"
)

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, 0, len(toks))
	for _, t := range toks {
		out = append(out, t.Kind)
	}
	return out
}

func TestTokensSimpleDeclaration(t *testing.T) {
	toks, err := New("a: i32 = 13").Tokens()
	require.NoError(t, err)
	require.Equal(t, []token.Kind{
		token.Identifier, token.Colon, token.Type, token.Assign, token.LiteralI32, token.EOF,
	}, kinds(toks))
	require.Equal(t, "13", toks[4].Literal)
}

func TestTokensSkipsCommentsAndWhitespace(t *testing.T) {
	toks, err := New("  # a comment\n\ta: i32 = 1 # trailing\n").Tokens()
	require.NoError(t, err)
	require.Equal(t, []token.Kind{
		token.Identifier, token.Colon, token.Type, token.Assign, token.LiteralI32, token.EOF,
	}, kinds(toks))
}

func TestTokensSpansPartitionSource(t *testing.T) {
	src := "a: i32 = 13"
	toks, err := New(src).Tokens()
	require.NoError(t, err)
	for _, tok := range toks {
		require.LessOrEqual(t, tok.Start, tok.End)
		if tok.Kind != token.EOF {
			require.Equal(t, tok.Literal, src[tok.Start:tok.End])
		}
	}
}

func TestTokensComparisonOperators(t *testing.T) {
	toks, err := New("< > <= >= == != && ||").Tokens()
	require.NoError(t, err)
	require.Equal(t, []token.Kind{
		token.LessThan, token.GreaterThan, token.LessThanOrEqual, token.GreaterThanOrEqual,
		token.Equal, token.NotEqual, token.And, token.Or, token.EOF,
	}, kinds(toks))
}

func TestTokensKeywords(t *testing.T) {
	toks, err := New("if goto func begin end return load store").Tokens()
	require.NoError(t, err)
	require.Equal(t, []token.Kind{
		token.If, token.Goto, token.Func, token.Begin, token.End, token.Return, token.Load, token.Store, token.EOF,
	}, kinds(toks))
}

func TestTokensDereference(t *testing.T) {
	toks, err := New("*ptr").Tokens()
	require.NoError(t, err)
	require.Equal(t, token.Dereference, toks[0].Kind)
	require.Equal(t, "ptr", toks[0].Literal)
}

func TestTokensCast(t *testing.T) {
	toks, err := New("(i32)").Tokens()
	require.NoError(t, err)
	require.Equal(t, token.Cast, toks[0].Kind)
	require.Equal(t, "i32", toks[0].Literal)
}

func TestTokensStringLiteral(t *testing.T) {
	toks, err := New(`"hello world"`).Tokens()
	require.NoError(t, err)
	require.Equal(t, token.LiteralString, toks[0].Kind)
	require.Equal(t, "hello world", toks[0].Literal)
}

func TestTokensBooleans(t *testing.T) {
	toks, err := New("true false").Tokens()
	require.NoError(t, err)
	require.Equal(t, []token.Kind{token.LiteralTrue, token.LiteralFalse, token.EOF}, kinds(toks))
}

func TestTokensIntegerSuffixesAndHex(t *testing.T) {
	toks, err := New("1i8 2i16 3i32 4i64 5u8 6u16 7u32 8u64 0x1Fi32").Tokens()
	require.NoError(t, err)
	require.Equal(t, []token.Kind{
		token.LiteralI8, token.LiteralI16, token.LiteralI32, token.LiteralI64,
		token.LiteralU8, token.LiteralU16, token.LiteralU32, token.LiteralU64,
		token.LiteralI32, token.EOF,
	}, kinds(toks))
}

func TestTokensFloatForms(t *testing.T) {
	for _, src := range []string{"0.0", ".0", "0.", "0f32", "0.f32", ".0f32", "1.5f64"} {
		toks, err := New(src).Tokens()
		require.NoError(t, err, src)
		require.Contains(t, []token.Kind{token.LiteralF32, token.LiteralF64}, toks[0].Kind, src)
	}
}

func TestTokensIntegerOverflow(t *testing.T) {
	_, err := New("200i8").Tokens()
	require.Error(t, err)
	list, ok := err.(ErrorList)
	require.True(t, ok)
	require.Equal(t, InvalidIntegerOverflow, list[0].Kind)
}

func TestTokensNonAsciiCharacter(t *testing.T) {
	_, err := New("a: i32 = 1é").Tokens()
	require.Error(t, err)
	list, ok := err.(ErrorList)
	require.True(t, ok)
	require.Equal(t, NonAsciiCharacter, list[0].Kind)
}

func TestTokensInvalidTokenBatchesAllErrors(t *testing.T) {
	_, err := New("a ~ b ` c").Tokens()
	require.Error(t, err)
	list, ok := err.(ErrorList)
	require.True(t, ok)
	require.Len(t, list, 2)
}
