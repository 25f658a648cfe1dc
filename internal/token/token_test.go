package token_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ferrite-lang/ferritec/internal/token"
)

func TestLookupKeyword(t *testing.T) {
	k, ok := token.Lookup("module")
	require.True(t, ok)
	require.Equal(t, token.KwModule, k)
}

func TestLookupNonKeyword(t *testing.T) {
	_, ok := token.Lookup("frobnicate")
	require.False(t, ok)
}

func TestKindString(t *testing.T) {
	require.Equal(t, "module", token.KwModule.String())
	require.Contains(t, token.Kind(99999).String(), "Kind(")
}

func TestTokenString(t *testing.T) {
	tok := token.Token{Kind: token.Identifier, Text: "foo", Line: 3, Column: 7}
	require.Contains(t, tok.String(), "foo")
	require.Contains(t, tok.String(), "3:7")
}
