package parser

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsDeclarationStorageClassPrefixedVariable(t *testing.T) {
	p, _ := newTestParser(t, "const int x = 1;")
	require.True(t, p.isDeclaration())
}

func TestIsDeclarationIdentifierTypeThenIdentifierIsDeclaration(t *testing.T) {
	p, _ := newTestParser(t, "Foo bar;")
	require.True(t, p.isDeclaration())
}

func TestIsDeclarationBareExpressionStatementIsNotDeclaration(t *testing.T) {
	p, _ := newTestParser(t, "foo.bar();")
	require.False(t, p.isDeclaration())
}

func TestIsDeclarationMemoizesAcrossRepeatedCalls(t *testing.T) {
	p, _ := newTestParser(t, "Foo bar;")

	first := p.isDeclaration()
	_, cached := p.isDeclCache[0]

	require.True(t, cached)
	require.Equal(t, first, p.isDeclaration())
}

func TestIsTypeRecognizesBuiltinKeywordText(t *testing.T) {
	p, _ := newTestParser(t, "int")
	require.True(t, p.isType())
}

func TestIsTypeRecognizesCastQualifierParen(t *testing.T) {
	p, _ := newTestParser(t, "const(int)")
	require.True(t, p.isType())
}

func TestIsTypeRejectsExpressionOnlyShape(t *testing.T) {
	p, _ := newTestParser(t, "foo + bar")
	require.False(t, p.isType())
}

func TestIsAssociativeArrayLiteralDetectsColonAfterFirstElement(t *testing.T) {
	p, _ := newTestParser(t, "[1:2, 3:4]")
	require.True(t, p.isAssociativeArrayLiteral())
}

func TestIsAssociativeArrayLiteralRejectsPlainArray(t *testing.T) {
	p, _ := newTestParser(t, "[1, 2, 3]")
	require.False(t, p.isAssociativeArrayLiteral())
}

func TestIsAssociativeArrayLiteralRestoresCursorPosition(t *testing.T) {
	p, _ := newTestParser(t, "[1:2, 3:4]")

	start := p.cur.idx
	p.isAssociativeArrayLiteral()

	require.Equal(t, start, p.cur.idx)
}

func TestIsAttributeRecognizesAtSigil(t *testing.T) {
	p, _ := newTestParser(t, "@nogc")
	require.True(t, p.isAttribute())
}

func TestIsAttributeRecognizesBareKeyword(t *testing.T) {
	p, _ := newTestParser(t, "deprecated")
	require.True(t, p.isAttribute())
}
