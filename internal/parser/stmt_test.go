package parser

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ferrite-lang/ferritec/internal/ast"
)

func TestParseBlockStatement(t *testing.T) {
	p, _ := newTestParser(t, "{ a(); b(); }")

	blk := p.parseBlockStatement()
	require.Len(t, blk.Statements, 2)
}

func TestParseBlockStatementForceAdvancesOnStuckStatement(t *testing.T) {
	p, _ := newTestParser(t, "{ ) }")

	require.NotPanics(t, func() { p.parseBlockStatement() })
}

func TestParseIfStatementBareCondition(t *testing.T) {
	p, _ := newTestParser(t, "if (a) b(); else c();")

	ifs, ok := p.parseStatement().(*ast.IfStatement)
	require.True(t, ok)
	require.NotNil(t, ifs.Cond)
	require.NotNil(t, ifs.Then)
	require.NotNil(t, ifs.Else)
}

func TestParseIfStatementAutoVarDecl(t *testing.T) {
	p, _ := newTestParser(t, "if (auto x = foo()) bar();")

	ifs, ok := p.parseStatement().(*ast.IfStatement)
	require.True(t, ok)
	require.Equal(t, []string{"auto"}, ifs.VarStorage)
	require.Equal(t, "x", ifs.VarName)
}

func TestParseIfStatementTypedVarDecl(t *testing.T) {
	p, _ := newTestParser(t, "if (int x = foo()) bar();")

	ifs, ok := p.parseStatement().(*ast.IfStatement)
	require.True(t, ok)
	require.NotNil(t, ifs.VarType)
	require.Equal(t, "x", ifs.VarName)
}

func TestParseWhileStatement(t *testing.T) {
	p, _ := newTestParser(t, "while (a) b();")

	ws, ok := p.parseStatement().(*ast.WhileStatement)
	require.True(t, ok)
	require.NotNil(t, ws.Cond)
	require.NotNil(t, ws.Body)
}

func TestParseDoWhileStatement(t *testing.T) {
	p, _ := newTestParser(t, "do { a(); } while (b);")

	dw, ok := p.parseStatement().(*ast.DoWhileStatement)
	require.True(t, ok)
	require.NotNil(t, dw.Cond)
}

func TestParseForStatement(t *testing.T) {
	p, _ := newTestParser(t, "for (i = 0; i < 10; i++) a();")

	fs, ok := p.parseStatement().(*ast.ForStatement)
	require.True(t, ok)
	require.NotNil(t, fs.Init)
	require.NotNil(t, fs.Cond)
	require.NotNil(t, fs.Incr)
}

func TestParseForStatementEmptyClauses(t *testing.T) {
	p, _ := newTestParser(t, "for (;;) a();")

	fs, ok := p.parseStatement().(*ast.ForStatement)
	require.True(t, ok)
	require.Nil(t, fs.Init)
	require.Nil(t, fs.Cond)
	require.Nil(t, fs.Incr)
}

func TestParseForeachListForm(t *testing.T) {
	p, _ := newTestParser(t, "foreach (int x, y; items) a();")

	fe, ok := p.parseStatement().(*ast.ForeachStatement)
	require.True(t, ok)
	require.False(t, fe.Reverse)
	require.Len(t, fe.Vars, 2)
	require.NotNil(t, fe.Aggregate)
	require.Nil(t, fe.Low)
}

func TestParseForeachRangeForm(t *testing.T) {
	p, _ := newTestParser(t, "foreach (i; 0..10) a();")

	fe, ok := p.parseStatement().(*ast.ForeachStatement)
	require.True(t, ok)
	require.Len(t, fe.Vars, 1)
	require.NotNil(t, fe.Low)
	require.NotNil(t, fe.High)
	require.Nil(t, fe.Aggregate)
}

func TestParseForeachReverseForm(t *testing.T) {
	p, _ := newTestParser(t, "foreach_reverse (i; items) a();")

	fe, ok := p.parseStatement().(*ast.ForeachStatement)
	require.True(t, ok)
	require.True(t, fe.Reverse)
}

func TestParseSwitchStatement(t *testing.T) {
	p, _ := newTestParser(t, "switch (x) { case 1: a(); break; default: b(); }")

	sw, ok := p.parseStatement().(*ast.SwitchStatement)
	require.True(t, ok)
	require.False(t, sw.Final)
	require.Len(t, sw.Body.Statements, 2)
}

func TestParseFinalSwitchStatement(t *testing.T) {
	p, _ := newTestParser(t, "final switch (x) { case 1: a(); }")

	sw, ok := p.parseStatement().(*ast.SwitchStatement)
	require.True(t, ok)
	require.True(t, sw.Final)
}

func TestParseCaseStatementWithRange(t *testing.T) {
	p, _ := newTestParser(t, "case 1: .. case 5: a();")

	cs, ok := p.parseStatement().(*ast.CaseStatement)
	require.True(t, ok)
	require.Len(t, cs.Values, 1)
	require.NotNil(t, cs.RangeHigh)
	require.Len(t, cs.Statements, 1)
}

func TestParseCaseStatementMultipleValues(t *testing.T) {
	p, _ := newTestParser(t, "case 1, 2, 3: a();")

	cs, ok := p.parseStatement().(*ast.CaseStatement)
	require.True(t, ok)
	require.Len(t, cs.Values, 3)
	require.Nil(t, cs.RangeHigh)
}

func TestParseBreakStatementWithLabel(t *testing.T) {
	p, _ := newTestParser(t, "break outer;")

	bs, ok := p.parseStatement().(*ast.BreakStatement)
	require.True(t, ok)
	require.Equal(t, "outer", bs.Label)
}

func TestParseContinueStatement(t *testing.T) {
	p, _ := newTestParser(t, "continue;")

	cs, ok := p.parseStatement().(*ast.ContinueStatement)
	require.True(t, ok)
	require.Empty(t, cs.Label)
}

func TestParseReturnStatementWithValue(t *testing.T) {
	p, _ := newTestParser(t, "return a + b;")

	rs, ok := p.parseStatement().(*ast.ReturnStatement)
	require.True(t, ok)
	require.NotNil(t, rs.Value)
}

func TestParseReturnStatementBare(t *testing.T) {
	p, _ := newTestParser(t, "return;")

	rs, ok := p.parseStatement().(*ast.ReturnStatement)
	require.True(t, ok)
	require.Nil(t, rs.Value)
}

func TestParseGotoCaseStatement(t *testing.T) {
	p, _ := newTestParser(t, "goto case 1;")

	gs, ok := p.parseStatement().(*ast.GotoStatement)
	require.True(t, ok)
	require.Equal(t, "case", gs.Kind)
	require.NotNil(t, gs.CaseValue)
}

func TestParseGotoLabelStatement(t *testing.T) {
	p, _ := newTestParser(t, "goto done;")

	gs, ok := p.parseStatement().(*ast.GotoStatement)
	require.True(t, ok)
	require.Equal(t, "label", gs.Kind)
	require.Equal(t, "done", gs.Label)
}

func TestParseWithStatement(t *testing.T) {
	p, _ := newTestParser(t, "with (obj) { a(); }")

	ws, ok := p.parseStatement().(*ast.WithStatement)
	require.True(t, ok)
	require.NotNil(t, ws.Expr)
}

func TestParseSynchronizedStatement(t *testing.T) {
	p, _ := newTestParser(t, "synchronized (lock) { a(); }")

	ss, ok := p.parseStatement().(*ast.SynchronizedStatement)
	require.True(t, ok)
	require.NotNil(t, ss.Guard)
}

func TestParseTryCatchFinallyStatement(t *testing.T) {
	p, sink := newTestParser(t, "try { a(); } catch (Exception e) { b(); } finally { c(); }")

	ts, ok := p.parseStatement().(*ast.TryStatement)
	require.True(t, ok)
	require.Len(t, ts.Catches, 1)
	require.Equal(t, "e", ts.Catches[0].Name)
	require.NotNil(t, ts.Finally)
	require.Equal(t, 0, sink.ErrorCount())
}

func TestParseTryStatementWithNeitherCatchNorFinallyErrors(t *testing.T) {
	p, sink := newTestParser(t, "try { a(); } b();")

	_, ok := p.parseStatement().(*ast.TryStatement)
	require.True(t, ok)
	require.Equal(t, 1, sink.ErrorCount())
}

func TestParseThrowStatement(t *testing.T) {
	p, _ := newTestParser(t, "throw e;")

	th, ok := p.parseStatement().(*ast.ThrowStatement)
	require.True(t, ok)
	require.NotNil(t, th.Value)
}

func TestParseScopeGuardStatement(t *testing.T) {
	p, _ := newTestParser(t, "scope (exit) a();")

	sg, ok := p.parseStatement().(*ast.ScopeGuardStatement)
	require.True(t, ok)
	require.Equal(t, "exit", sg.Kind)
}

func TestParseAssertStatement(t *testing.T) {
	p, _ := newTestParser(t, `assert(a, "bad");`)

	as, ok := p.parseStatement().(*ast.AssertStatement)
	require.True(t, ok)
	require.NotNil(t, as.Cond)
	require.NotNil(t, as.Message)
}

func TestParseStaticIfStatement(t *testing.T) {
	p, _ := newTestParser(t, "static if (cond) a(); else b();")

	cs, ok := p.parseStatement().(*ast.ConditionalStatement)
	require.True(t, ok)
	require.Equal(t, "static if", cs.Kind)
	require.NotNil(t, cs.Then)
	require.NotNil(t, cs.Else)
}

func TestParseVersionConditionalStatement(t *testing.T) {
	p, _ := newTestParser(t, "version (Posix) a();")

	cs, ok := p.parseStatement().(*ast.ConditionalStatement)
	require.True(t, ok)
	require.Equal(t, "version", cs.Kind)
}

func TestParseStaticAssertStatement(t *testing.T) {
	p, _ := newTestParser(t, `static assert(a, "bad");`)

	sa, ok := p.parseStatement().(*ast.StaticAssertStatement)
	require.True(t, ok)
	require.NotNil(t, sa.Cond)
	require.NotNil(t, sa.Message)
}

func TestParseStaticForeachStatement(t *testing.T) {
	p, _ := newTestParser(t, "static foreach (i; items) a();")

	sf, ok := p.parseStatement().(*ast.StaticForeachStatement)
	require.True(t, ok)
	require.NotNil(t, sf.Foreach)
}

func TestParseLabeledStatement(t *testing.T) {
	p, _ := newTestParser(t, "done: a();")

	ls, ok := p.parseStatement().(*ast.LabeledStatement)
	require.True(t, ok)
	require.Equal(t, "done", ls.Label)
	require.NotNil(t, ls.Stmt)
}

func TestParseExpressionStatement(t *testing.T) {
	p, _ := newTestParser(t, "foo();")

	es, ok := p.parseStatement().(*ast.ExpressionStatement)
	require.True(t, ok)
	require.NotNil(t, es.Expr)
}

func TestParseDeclarationStatement(t *testing.T) {
	p, _ := newTestParser(t, "int x = 1;")

	ds, ok := p.parseStatement().(*ast.DeclarationStatement)
	require.True(t, ok)
	require.NotNil(t, ds.Decl)
}

func TestParseAsmStatementDispatch(t *testing.T) {
	p, _ := newTestParser(t, "asm { mov eax, ebx; }")

	_, ok := p.parseStatement().(*ast.AsmStatement)
	require.True(t, ok)
}
