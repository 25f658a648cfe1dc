package lexer_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ferrite-lang/ferritec/internal/lexer"
	"github.com/ferrite-lang/ferritec/internal/token"
)

func kinds(toks []token.Token) []token.Kind {
	ks := make([]token.Kind, len(toks))
	for i, t := range toks {
		ks[i] = t.Kind
	}

	return ks
}

func TestTokenizeKeywordsAndIdentifiers(t *testing.T) {
	toks := lexer.Tokenize([]byte("module foo.bar; class Widget {}"))

	require.Equal(t, []token.Kind{
		token.KwModule, token.Identifier, token.Dot, token.Identifier, token.Semicolon,
		token.KwClass, token.Identifier, token.LBrace, token.RBrace, token.EOF,
	}, kinds(toks))
}

func TestTokenizeDocCommentAttachesToFollowingToken(t *testing.T) {
	toks := lexer.Tokenize([]byte("/// frobs the widget\nvoid frob();"))

	require.Equal(t, token.Identifier, toks[0].Kind)
	require.Contains(t, toks[0].Doc, "frobs the widget")
}

func TestTokenizeBlockDocComment(t *testing.T) {
	toks := lexer.Tokenize([]byte("/** doc */ int x;"))

	require.Equal(t, "int", toks[0].Text)
	require.Contains(t, toks[0].Doc, "doc")
}

func TestTokenizeOrdinaryBlockCommentIsNotDoc(t *testing.T) {
	toks := lexer.Tokenize([]byte("/* not doc */ int x;"))

	require.Empty(t, toks[0].Doc)
}

func TestTokenizeStringLiteral(t *testing.T) {
	toks := lexer.Tokenize([]byte(`"hello\n"`))

	require.Equal(t, token.StringLiteral, toks[0].Kind)
	require.Equal(t, `hello\n`, toks[0].Text)
}

func TestTokenizeWideStringSuffix(t *testing.T) {
	toks := lexer.Tokenize([]byte(`"abc"w`))

	require.Equal(t, token.WStringLiteral, toks[0].Kind)
}

func TestTokenizeCharLiteral(t *testing.T) {
	toks := lexer.Tokenize([]byte(`'a'`))

	require.Equal(t, token.CharacterLiteral, toks[0].Kind)
	require.Equal(t, "a", toks[0].Text)
}

func TestTokenizeNumberSuffixes(t *testing.T) {
	toks := lexer.Tokenize([]byte("42UL 3.14f 7i"))

	require.Equal(t, token.ULongLiteral, toks[0].Kind)
	require.Equal(t, token.FloatLiteral, toks[1].Kind)
	require.Equal(t, token.IDoubleLiteral, toks[2].Kind)
}

func TestTokenizeMaximalMunchOperators(t *testing.T) {
	toks := lexer.Tokenize([]byte(">>>= >>> >> > ^^="))

	require.Equal(t, []token.Kind{
		token.UShrAssign, token.UShr, token.Shr, token.Gt, token.PowAssign, token.EOF,
	}, kinds(toks))
}

func TestTokenizeScriptLineOnlyAtStart(t *testing.T) {
	toks := lexer.Tokenize([]byte("#!/usr/bin/env ferrite\nmodule a;"))

	require.Equal(t, token.ScriptLine, toks[0].Kind)
	require.Equal(t, token.KwModule, toks[1].Kind)
}

func TestTokenizeIntrinsicIdentifiers(t *testing.T) {
	toks := lexer.Tokenize([]byte("__FILE__ __LINE__ __traits"))

	require.Equal(t, token.IntrinsicFile, toks[0].Kind)
	require.Equal(t, token.IntrinsicLine, toks[1].Kind)
	require.Equal(t, token.KwTraits, toks[2].Kind)
}

func TestTokenizeRawString(t *testing.T) {
	toks := lexer.Tokenize([]byte("`raw\\nstring`"))

	require.Equal(t, token.StringLiteral, toks[0].Kind)
	require.Equal(t, `raw\nstring`, toks[0].Text)
}

func TestTokenizeTracksLineAndColumn(t *testing.T) {
	toks := lexer.Tokenize([]byte("a\nb"))

	require.Equal(t, 1, toks[0].Line)
	require.Equal(t, 2, toks[1].Line)
	require.Equal(t, 1, toks[1].Column)
}

func TestTokenizeIllegalCharacter(t *testing.T) {
	toks := lexer.Tokenize([]byte("#"))

	require.Equal(t, token.Illegal, toks[0].Kind)
}

func TestTokenizeAlwaysEndsWithEOF(t *testing.T) {
	toks := lexer.Tokenize([]byte(""))

	require.Len(t, toks, 1)
	require.Equal(t, token.EOF, toks[0].Kind)
}
