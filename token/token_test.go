package token

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKindString(t *testing.T) {
	require.Equal(t, "+", Add.String())
	require.Equal(t, "goto", Goto.String())
	require.Contains(t, Kind(9999).String(), "Kind(")
}

func TestKeywordsTable(t *testing.T) {
	for word, kind := range Keywords {
		require.NotEqual(t, Invalid, kind, "keyword %q should map to a real kind", word)
	}
}

func TestTypesTable(t *testing.T) {
	for _, name := range []string{"i8", "i16", "i32", "i64", "u8", "u16", "u32", "u64", "f32", "f64", "bool", "str"} {
		require.True(t, Types[name], "expected %q to be a recognized type name", name)
	}
	require.False(t, Types["ptr"], "ptr is opaque and not user-spellable as a type name")
}

func TestNewAndString(t *testing.T) {
	tok := New(Identifier, "foo", 3, 6)
	require.Equal(t, Identifier, tok.Kind)
	require.Equal(t, "foo", tok.Literal)
	require.Equal(t, 3, tok.Start)
	require.Equal(t, 6, tok.End)
	require.Contains(t, tok.String(), "foo")
}
