package parser

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ferrite-lang/ferritec/internal/ast"
)

func TestParseTypeBuiltin(t *testing.T) {
	p, _ := newTestParser(t, "int")

	typ := p.parseType()

	bt, ok := typ.(*ast.BuiltinType)
	require.True(t, ok)
	require.Equal(t, "int", bt.Name)
}

func TestParseTypePointerSuffix(t *testing.T) {
	p, _ := newTestParser(t, "int*")

	typ := p.parseType()

	pt, ok := typ.(*ast.PointerType)
	require.True(t, ok)
	require.IsType(t, &ast.BuiltinType{}, pt.Inner)
}

func TestParseTypeArraySuffix(t *testing.T) {
	p, _ := newTestParser(t, "int[4]")

	typ := p.parseType()

	at, ok := typ.(*ast.ArrayType)
	require.True(t, ok)
	require.NotNil(t, at.Length)
}

func TestParseTypeSliceSuffix(t *testing.T) {
	p, _ := newTestParser(t, "int[]")

	_, ok := p.parseType().(*ast.SliceType)
	require.True(t, ok)
}

func TestParseTypeAssociativeArraySuffix(t *testing.T) {
	p, _ := newTestParser(t, "int[string]")

	aa, ok := p.parseType().(*ast.AssocArrayType)
	require.True(t, ok)
	require.NotNil(t, aa.KeyType)
}

func TestParseTypeSliceRangeSuffix(t *testing.T) {
	p, _ := newTestParser(t, "int[0..4]")

	sr, ok := p.parseType().(*ast.SliceRangeType)
	require.True(t, ok)
	require.NotNil(t, sr.Low)
	require.NotNil(t, sr.High)
}

func TestParseTypeQualifierParen(t *testing.T) {
	p, _ := newTestParser(t, "const(int)")

	qt, ok := p.parseType().(*ast.QualifiedType)
	require.True(t, ok)
	require.Equal(t, "const", qt.Qualifier)
}

func TestParseTypeSymbolChainWithTemplateArgs(t *testing.T) {
	p, _ := newTestParser(t, "Foo!(int).Bar")

	st, ok := p.parseType().(*ast.SymbolType)
	require.True(t, ok)
	require.Len(t, st.Segments, 2)
	require.Equal(t, "Foo", st.Segments[0].Name)
	require.Len(t, st.Segments[0].TemplateArgs, 1)
	require.Equal(t, "Bar", st.Segments[1].Name)
}

func TestParseTypeLeadingDotSymbol(t *testing.T) {
	p, _ := newTestParser(t, ".Foo")

	st, ok := p.parseType().(*ast.SymbolType)
	require.True(t, ok)
	require.True(t, st.LeadingDot)
}

func TestParseTypeofType(t *testing.T) {
	p, _ := newTestParser(t, "typeof(x)")

	tt, ok := p.parseType().(*ast.TypeofType)
	require.True(t, ok)
	require.NotNil(t, tt.Operand)
}

func TestParseTypeofReturn(t *testing.T) {
	p, _ := newTestParser(t, "typeof(return)")

	tt, ok := p.parseType().(*ast.TypeofType)
	require.True(t, ok)
	require.True(t, tt.Return)
}

func TestParseParamListVariadic(t *testing.T) {
	p, _ := newTestParser(t, "(int a, ...)")

	params := p.parseParamList()

	require.Len(t, params, 2)
	require.True(t, params[1].Vararg)
}

func TestParseParamListDefaultValue(t *testing.T) {
	p, _ := newTestParser(t, "(int a = 1)")

	params := p.parseParamList()

	require.Len(t, params, 1)
	require.NotNil(t, params[0].Default)
}

func TestParseFunctionPointerSuffix(t *testing.T) {
	p, _ := newTestParser(t, "int function(int)")

	fp, ok := p.parseType().(*ast.FunctionPointerType)
	require.True(t, ok)
	require.Equal(t, "function", fp.Keyword)
	require.Len(t, fp.Params, 1)
}
