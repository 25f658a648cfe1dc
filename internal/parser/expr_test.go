package parser

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ferrite-lang/ferritec/internal/ast"
)

func TestParseExpressionCommaYieldsCommaExpression(t *testing.T) {
	p, _ := newTestParser(t, "1, 2, 3")

	ce, ok := p.parseExpression().(*ast.CommaExpression)
	require.True(t, ok)
	require.Len(t, ce.Elements, 3)
}

func TestParseExpressionSingleElementNotWrapped(t *testing.T) {
	p, _ := newTestParser(t, "1")

	_, ok := p.parseExpression().(*ast.CommaExpression)
	require.False(t, ok)
}

func TestParseAssignExpressionRightAssociative(t *testing.T) {
	p, _ := newTestParser(t, "a = b = c")

	outer, ok := p.parseAssignExpression().(*ast.AssignExpression)
	require.True(t, ok)
	require.Equal(t, "=", outer.Op)

	inner, ok := outer.Right.(*ast.AssignExpression)
	require.True(t, ok)
	require.Equal(t, "=", inner.Op)
}

func TestParseTernaryExpression(t *testing.T) {
	p, _ := newTestParser(t, "a ? b : c")

	te, ok := p.parseAssignExpression().(*ast.TernaryExpression)
	require.True(t, ok)
	require.NotNil(t, te.Cond)
	require.NotNil(t, te.Then)
	require.NotNil(t, te.Else)
}

func TestParseOrOrAndAndPrecedence(t *testing.T) {
	p, _ := newTestParser(t, "a || b && c")

	be, ok := p.parseAssignExpression().(*ast.BinaryExpression)
	require.True(t, ok)
	require.Equal(t, "||", be.Op)

	rhs, ok := be.Right.(*ast.BinaryExpression)
	require.True(t, ok)
	require.Equal(t, "&&", rhs.Op)
}

func TestParseBitwiseChainLeftAssociative(t *testing.T) {
	p, _ := newTestParser(t, "a | b | c")

	be, ok := p.parseAssignExpression().(*ast.BinaryExpression)
	require.True(t, ok)
	require.Equal(t, "|", be.Op)

	lhs, ok := be.Left.(*ast.BinaryExpression)
	require.True(t, ok)
	require.Equal(t, "|", lhs.Op)
}

func TestParseEqualExpression(t *testing.T) {
	p, _ := newTestParser(t, "a == b")

	eq, ok := p.parseAssignExpression().(*ast.EqualExpression)
	require.True(t, ok)
	require.False(t, eq.Negated)
}

func TestParseNotEqualExpression(t *testing.T) {
	p, _ := newTestParser(t, "a != b")

	eq, ok := p.parseAssignExpression().(*ast.EqualExpression)
	require.True(t, ok)
	require.True(t, eq.Negated)
}

func TestParseIdentityExpression(t *testing.T) {
	p, _ := newTestParser(t, "a is b")

	ie, ok := p.parseAssignExpression().(*ast.IdentityExpression)
	require.True(t, ok)
	require.False(t, ie.Negated)
}

func TestParseNegatedIdentityExpressionTwoTokenTieBreak(t *testing.T) {
	p, _ := newTestParser(t, "a ! is b")

	ie, ok := p.parseAssignExpression().(*ast.IdentityExpression)
	require.True(t, ok)
	require.True(t, ie.Negated)
}

func TestParseNegatedInExpressionTwoTokenTieBreak(t *testing.T) {
	p, _ := newTestParser(t, "a ! in b")

	ie, ok := p.parseAssignExpression().(*ast.InExpression)
	require.True(t, ok)
	require.True(t, ie.Negated)
}

func TestParseInExpression(t *testing.T) {
	p, _ := newTestParser(t, "a in b")

	ie, ok := p.parseAssignExpression().(*ast.InExpression)
	require.True(t, ok)
	require.False(t, ie.Negated)
	require.NotNil(t, ie.Element)
	require.NotNil(t, ie.Collection)
}

func TestParseRelExpression(t *testing.T) {
	p, _ := newTestParser(t, "a < b")

	re, ok := p.parseAssignExpression().(*ast.RelExpression)
	require.True(t, ok)
	require.Equal(t, "<", re.Op)
}

func TestParseShiftExpression(t *testing.T) {
	p, _ := newTestParser(t, "a << b")

	be, ok := p.parseAssignExpression().(*ast.BinaryExpression)
	require.True(t, ok)
	require.Equal(t, "<<", be.Op)
}

func TestParseAddMulPrecedence(t *testing.T) {
	p, _ := newTestParser(t, "a + b * c")

	be, ok := p.parseAssignExpression().(*ast.BinaryExpression)
	require.True(t, ok)
	require.Equal(t, "+", be.Op)

	rhs, ok := be.Right.(*ast.BinaryExpression)
	require.True(t, ok)
	require.Equal(t, "*", rhs.Op)
}

func TestParsePowExpressionRightAssociative(t *testing.T) {
	p, _ := newTestParser(t, "a ^^ b ^^ c")

	be, ok := p.parseAssignExpression().(*ast.BinaryExpression)
	require.True(t, ok)
	require.Equal(t, "^^", be.Op)

	rhs, ok := be.Right.(*ast.BinaryExpression)
	require.True(t, ok)
	require.Equal(t, "^^", rhs.Op)
}

func TestParseUnaryExpression(t *testing.T) {
	p, _ := newTestParser(t, "-a")

	ue, ok := p.parseAssignExpression().(*ast.UnaryExpression)
	require.True(t, ok)
	require.Equal(t, "-", ue.Op)
}

func TestParseNewExpressionArray(t *testing.T) {
	p, _ := newTestParser(t, "new int[4]")

	ne, ok := p.parseAssignExpression().(*ast.NewExpression)
	require.True(t, ok)
	require.NotNil(t, ne.ArrayLen)
}

func TestParseNewExpressionArgs(t *testing.T) {
	p, _ := newTestParser(t, "new Foo(1, 2)")

	ne, ok := p.parseAssignExpression().(*ast.NewExpression)
	require.True(t, ok)
	require.Len(t, ne.Args, 2)
}

func TestParseDeleteExpression(t *testing.T) {
	p, _ := newTestParser(t, "delete a")

	de, ok := p.parseAssignExpression().(*ast.DeleteExpression)
	require.True(t, ok)
	require.NotNil(t, de.Operand)
}

func TestParseCastExpressionWithType(t *testing.T) {
	p, _ := newTestParser(t, "cast(int) a")

	ce, ok := p.parseAssignExpression().(*ast.CastExpression)
	require.True(t, ok)
	require.NotNil(t, ce.Type)
}

func TestParseCastExpressionWithQualifier(t *testing.T) {
	p, _ := newTestParser(t, "cast(const) a")

	ce, ok := p.parseAssignExpression().(*ast.CastExpression)
	require.True(t, ok)
	require.Equal(t, []string{"const"}, ce.Qualifiers)
}

func TestParseQualifiedCallExpression(t *testing.T) {
	p, _ := newTestParser(t, "const Foo(a)")

	qc, ok := p.parseAssignExpression().(*ast.QualifiedCallExpression)
	require.True(t, ok)
	require.Equal(t, []string{"const"}, qc.Qualifiers)
}

func TestParsePostfixCallExpression(t *testing.T) {
	p, _ := newTestParser(t, "foo(1, 2)")

	ce, ok := p.parseAssignExpression().(*ast.CallExpression)
	require.True(t, ok)
	require.Len(t, ce.Args, 2)
}

func TestParsePostfixIndexExpression(t *testing.T) {
	p, _ := newTestParser(t, "foo[1, 2]")

	ie, ok := p.parseAssignExpression().(*ast.IndexExpression)
	require.True(t, ok)
	require.Len(t, ie.Indices, 2)
}

func TestParsePostfixSliceExpression(t *testing.T) {
	p, _ := newTestParser(t, "foo[1..2]")

	se, ok := p.parseAssignExpression().(*ast.SliceExpression)
	require.True(t, ok)
	require.NotNil(t, se.Low)
	require.NotNil(t, se.High)
}

func TestParsePostfixMemberExpression(t *testing.T) {
	p, _ := newTestParser(t, "foo.bar")

	me, ok := p.parseAssignExpression().(*ast.MemberExpression)
	require.True(t, ok)
	require.Equal(t, "bar", me.Member)
}

func TestParsePostfixIncrementExpression(t *testing.T) {
	p, _ := newTestParser(t, "foo++")

	pe, ok := p.parseAssignExpression().(*ast.PostfixExpression)
	require.True(t, ok)
	require.Equal(t, "++", pe.Op)
}

func TestParseIntLiteral(t *testing.T) {
	p, _ := newTestParser(t, "42")

	il, ok := p.parseAssignExpression().(*ast.IntLiteral)
	require.True(t, ok)
	require.Equal(t, "42", il.Text)
	require.False(t, il.Unsigned)
}

func TestParseBoolLiteral(t *testing.T) {
	p, _ := newTestParser(t, "true")

	bl, ok := p.parseAssignExpression().(*ast.BoolLiteral)
	require.True(t, ok)
	require.True(t, bl.Value)
}

func TestParseNullLiteral(t *testing.T) {
	p, _ := newTestParser(t, "null")

	_, ok := p.parseAssignExpression().(*ast.NullLiteral)
	require.True(t, ok)
}

func TestParseStringConcatenationWarnsOnce(t *testing.T) {
	p, sink := newTestParser(t, `"a" "b" "c"`)

	sl, ok := p.parseAssignExpression().(*ast.StringLiteral)
	require.True(t, ok)
	require.Equal(t, "abc", sl.Value)
	require.Equal(t, 3, sl.Pieces)
	require.Equal(t, 1, sink.WarningCount())
}

func TestParseArrayLiteral(t *testing.T) {
	p, _ := newTestParser(t, "[1, 2, 3]")

	al, ok := p.parseAssignExpression().(*ast.ArrayLiteral)
	require.True(t, ok)
	require.Len(t, al.Elements, 3)
}

func TestParseAssocArrayLiteral(t *testing.T) {
	p, _ := newTestParser(t, "[1:2, 3:4]")

	aa, ok := p.parseAssignExpression().(*ast.AssocArrayLiteral)
	require.True(t, ok)
	require.Len(t, aa.Entries, 2)
}

func TestParseStructLiteralNamedFields(t *testing.T) {
	p, _ := newTestParser(t, "{a: 1, b: 2}")

	sl, ok := p.parseAssignExpression().(*ast.StructLiteral)
	require.True(t, ok)
	require.Len(t, sl.Fields, 2)
	require.Equal(t, "a", sl.Fields[0].Name)
}

func TestParseParenthesizedExpression(t *testing.T) {
	p, _ := newTestParser(t, "(a + b)")

	_, ok := p.parseAssignExpression().(*ast.BinaryExpression)
	require.True(t, ok)
}

func TestParseImplicitLambda(t *testing.T) {
	p, _ := newTestParser(t, "(a, b) => a + b")

	fl, ok := p.parseAssignExpression().(*ast.FunctionLiteral)
	require.True(t, ok)
	require.Len(t, fl.Params, 2)
	require.NotNil(t, fl.Expr)
}

func TestParseTypeMemberExpression(t *testing.T) {
	p, _ := newTestParser(t, "(int).max")

	tm, ok := p.parseAssignExpression().(*ast.TypeMemberExpression)
	require.True(t, ok)
	require.Equal(t, "max", tm.Member)
}

func TestParseTypeofExpressionOperand(t *testing.T) {
	p, _ := newTestParser(t, "typeof(x)")

	te, ok := p.parseAssignExpression().(*ast.TypeofExpression)
	require.True(t, ok)
	require.NotNil(t, te.Operand)
	require.False(t, te.Return)
}

func TestParseTypeidExpressionWithType(t *testing.T) {
	p, _ := newTestParser(t, "typeid(int)")

	ti, ok := p.parseAssignExpression().(*ast.TypeidExpression)
	require.True(t, ok)
	require.NotNil(t, ti.Type)
}

func TestParseIsExpressionBasic(t *testing.T) {
	p, _ := newTestParser(t, "is(int)")

	ie, ok := p.parseAssignExpression().(*ast.IsExpression)
	require.True(t, ok)
	require.NotNil(t, ie.Type)
}

func TestParseTraitsExpression(t *testing.T) {
	p, _ := newTestParser(t, "__traits(compiles, a)")

	te, ok := p.parseAssignExpression().(*ast.TraitsExpression)
	require.True(t, ok)
	require.Equal(t, "compiles", te.Trait)
	require.Len(t, te.Args, 1)
}

func TestParseAssertExpressionWithMessage(t *testing.T) {
	p, _ := newTestParser(t, `assert(a, "msg")`)

	ae, ok := p.parseAssignExpression().(*ast.AssertExpression)
	require.True(t, ok)
	require.NotNil(t, ae.Cond)
	require.NotNil(t, ae.Message)
}

func TestParseFunctionLiteralWithBody(t *testing.T) {
	p, _ := newTestParser(t, "function int(int a) { return a; }")

	fl, ok := p.parseAssignExpression().(*ast.FunctionLiteral)
	require.True(t, ok)
	require.Equal(t, "function", fl.Keyword)
	require.NotNil(t, fl.ReturnType)
	require.Len(t, fl.Params, 1)
	require.NotNil(t, fl.Body)
}

func TestParseTemplateInstantiationIdentifier(t *testing.T) {
	p, _ := newTestParser(t, "Foo!(int)")

	id, ok := p.parseAssignExpression().(*ast.Identifier)
	require.True(t, ok)
	require.Equal(t, "Foo", id.Name)
	require.Len(t, id.TemplateArgs, 1)
}

func TestParseLeadingDotIdentifier(t *testing.T) {
	p, _ := newTestParser(t, ".Foo")

	id, ok := p.parseAssignExpression().(*ast.Identifier)
	require.True(t, ok)
	require.True(t, id.LeadingDot)
}
