package parser

import (
	"github.com/ferrite-lang/ferritec/internal/ast"
	"github.com/ferrite-lang/ferritec/internal/token"
)

// parseBlockStatement parses `{ statement* }`.
func (p *Parser) parseBlockStatement() *ast.BlockStatement {
	pos := p.pos()
	p.cur.expect(token.LBrace)

	var stmts []ast.Statement

	for !p.cur.currentIs(token.RBrace) && !p.cur.atEOF() {
		before := p.cur.idx
		stmts = append(stmts, p.parseStatement())

		if p.cur.idx == before {
			// No structural progress: force-advance so a malformed
			// statement can never spin the outer loop forever (§4 "never
			// loop forever" invariant).
			p.cur.advance()
		}
	}

	p.cur.expect(token.RBrace)

	return alloc(p, ast.BlockStatement{Base: baseAt(pos), Statements: stmts})
}

// parseStatement dispatches on case/default vs. everything else (§4.6):
// case/default are only legal directly inside a switch body, but
// parseStatement handles them uniformly wherever they appear: a
// case/default outside a switch is parsed as a CaseStatement or
// DefaultStatement, and no error is reported for it.
func (p *Parser) parseStatement() ast.Statement {
	switch p.cur.current().Kind {
	case token.KwCase:
		return p.parseCaseStatement()
	case token.KwDefault:
		return p.parseDefaultStatement()
	default:
		return p.parseStatementNoCaseNoDefault()
	}
}

func (p *Parser) parseStatementNoCaseNoDefault() ast.Statement {
	if p.cur.currentIs(token.Identifier) && p.cur.peekIs(1, token.Colon) && !p.looksLikeDeclaration() {
		return p.parseLabeledStatement()
	}

	switch p.cur.current().Kind {
	case token.LBrace:
		return p.parseBlockStatement()
	case token.KwIf:
		return p.parseIfStatement()
	case token.KwWhile:
		return p.parseWhileStatement()
	case token.KwDo:
		return p.parseDoWhileStatement()
	case token.KwFor:
		return p.parseForStatement()
	case token.KwForeach, token.KwForeachReverse:
		return p.parseForeachStatement()
	case token.KwSwitch:
		return p.parseSwitchStatement(false)
	case token.KwFinal:
		if p.cur.peekIs(1, token.KwSwitch) {
			p.cur.advance()

			return p.parseSwitchStatement(true)
		}
	case token.KwBreak:
		return p.parseBreakStatement()
	case token.KwContinue:
		return p.parseContinueStatement()
	case token.KwReturn:
		return p.parseReturnStatement()
	case token.KwGoto:
		return p.parseGotoStatement()
	case token.KwWith:
		return p.parseWithStatement()
	case token.KwSynchronized:
		if p.cur.peekIsOneOf(1, token.LParen, token.LBrace) {
			return p.parseSynchronizedStatement()
		}
	case token.KwTry:
		return p.parseTryStatement()
	case token.KwThrow:
		return p.parseThrowStatement()
	case token.KwScope:
		if p.cur.peekIs(1, token.LParen) {
			return p.parseScopeGuardStatement()
		}
	case token.KwAssert:
		return p.parseAssertStatement()
	case token.KwAsm:
		return p.parseAsmStatement()
	case token.KwStatic:
		if s, ok := p.tryParseStaticStatement(); ok {
			return s
		}
	case token.KwVersion, token.KwDebug:
		if p.cur.peekIs(1, token.LParen) {
			return p.parseConditionalStatement()
		}
	}

	if p.isDeclaration() {
		return &ast.DeclarationStatement{Base: baseAt(p.pos()), Decl: p.parseDeclaration()}
	}

	return p.parseExpressionStatement()
}

// looksLikeDeclaration guards the labeled-statement check: `ident : Type`
// is never a label (labels are followed by a statement, and a bare
// `ident:` heading a VariableDeclaration of a SymbolType never happens in
// this grammar), so this always returns false today; it exists as a named
// hook in case a future grammar addition introduces a colon-suffixed
// declaration form, rather than inlining `false` at the call site.
func (p *Parser) looksLikeDeclaration() bool {
	return false
}

func (p *Parser) parseExpressionStatement() ast.Statement {
	pos := p.pos()
	expr := p.parseExpression()
	p.cur.expect(token.Semicolon)

	return alloc(p, ast.ExpressionStatement{Base: baseAt(pos), Expr: expr})
}

func (p *Parser) parseLabeledStatement() ast.Statement {
	pos := p.pos()
	label := p.cur.advance().Text
	p.cur.advance() // `:`

	var stmt ast.Statement
	if !p.cur.currentIsOneOf(token.RBrace, token.EOF) {
		stmt = p.parseStatement()
	}

	return alloc(p, ast.LabeledStatement{Base: baseAt(pos), Label: label, Stmt: stmt})
}

// parseIfStatement covers both the bare-expression condition and the
// type-constructor-prefixed condition (`if (auto|Type ident = expr)`),
// decided via bounded bookmarked lookahead (§4.6).
func (p *Parser) parseIfStatement() *ast.IfStatement {
	pos := p.pos()
	p.cur.advance()
	p.cur.expect(token.LParen)

	ifStmt := &ast.IfStatement{Base: baseAt(pos)}

	if decl, ok := p.tryParseIfVarDecl(); ok {
		ifStmt.VarStorage = decl.storage
		ifStmt.VarType = decl.typ
		ifStmt.VarName = decl.name
		ifStmt.Cond = decl.init
	} else {
		ifStmt.Cond = p.parseExpression()
	}

	p.cur.expect(token.RParen)
	ifStmt.Then = p.parseStatement()

	if p.cur.currentIs(token.KwElse) {
		p.cur.advance()
		ifStmt.Else = p.parseStatement()
	}

	return ifStmt
}

type ifVarDecl struct {
	storage []string
	typ     ast.Type
	name    string
	init    ast.Expression
}

func (p *Parser) tryParseIfVarDecl() (ifVarDecl, bool) {
	if p.cur.currentIs(token.KwAuto) && p.cur.peekIs(1, token.Identifier) && p.cur.peekIs(2, token.Assign) {
		p.cur.advance()
		name := p.cur.advance().Text
		p.cur.advance()

		return ifVarDecl{storage: []string{"auto"}, name: name, init: p.parseExpression()}, true
	}

	if p.cur.overflowed() || !p.isType() {
		return ifVarDecl{}, false
	}

	b := p.cur.setBookmark()

	typ := p.parseType()

	if !p.cur.currentIs(token.Identifier) || !p.cur.peekIs(1, token.Assign) {
		p.cur.goToBookmark(b)

		return ifVarDecl{}, false
	}

	name := p.cur.advance().Text
	p.cur.advance()
	init := p.parseExpression()

	p.cur.abandonBookmark(b)

	return ifVarDecl{typ: typ, name: name, init: init}, true
}

func (p *Parser) parseWhileStatement() *ast.WhileStatement {
	pos := p.pos()
	p.cur.advance()
	p.cur.expect(token.LParen)
	cond := p.parseExpression()
	p.cur.expect(token.RParen)
	body := p.parseStatement()

	return &ast.WhileStatement{Base: baseAt(pos), Cond: cond, Body: body}
}

func (p *Parser) parseDoWhileStatement() *ast.DoWhileStatement {
	pos := p.pos()
	p.cur.advance()
	body := p.parseStatement()
	p.cur.expect(token.KwWhile)
	p.cur.expect(token.LParen)
	cond := p.parseExpression()
	p.cur.expect(token.RParen)
	p.cur.expect(token.Semicolon)

	return &ast.DoWhileStatement{Base: baseAt(pos), Body: body, Cond: cond}
}

func (p *Parser) parseForStatement() *ast.ForStatement {
	pos := p.pos()
	p.cur.advance()
	p.cur.expect(token.LParen)

	var init ast.Statement
	if !p.cur.currentIs(token.Semicolon) {
		init = p.parseStatementNoCaseNoDefault()
	} else {
		p.cur.advance()
	}

	var cond ast.Expression
	if !p.cur.currentIs(token.Semicolon) {
		cond = p.parseExpression()
	}

	p.cur.expect(token.Semicolon)

	var incr ast.Expression
	if !p.cur.currentIs(token.RParen) {
		incr = p.parseExpression()
	}

	p.cur.expect(token.RParen)
	body := p.parseStatement()

	return &ast.ForStatement{Base: baseAt(pos), Init: init, Cond: cond, Incr: incr, Body: body}
}

// parseForeachStatement covers both the list form (any number of loop
// variables) and the range form (exactly one loop variable), enforced at
// the point where `..` is or is not seen after the first variable's
// initializer (§4.6 invariant).
func (p *Parser) parseForeachStatement() *ast.ForeachStatement {
	pos := p.pos()
	reverse := p.cur.currentIs(token.KwForeachReverse)
	p.cur.advance()
	p.cur.expect(token.LParen)

	var vars []ast.ForeachVar

	for {
		var storage []string
		for p.cur.currentIsOneOf(token.KwRef, token.KwConst, token.KwImmutable, token.KwInout, token.KwScope) {
			storage = append(storage, p.cur.advance().Text)
		}

		var typ ast.Type
		if p.isType() && !(p.cur.currentIs(token.Identifier) && p.cur.peekIsOneOf(1, token.Semicolon, token.Comma, token.DotDot)) {
			typ = p.parseType()
		}

		name, _ := p.cur.expect(token.Identifier)

		vars = append(vars, ast.ForeachVar{Storage: storage, Type: typ, Name: name.Text})

		if p.cur.currentIs(token.Comma) {
			p.cur.advance()

			continue
		}

		break
	}

	p.cur.expect(token.Semicolon)

	stmt := &ast.ForeachStatement{Base: baseAt(pos), Reverse: reverse, Vars: vars}

	first := p.parseExpression()

	if p.cur.currentIs(token.DotDot) {
		if len(vars) != 1 {
			t := p.cur.current()
			p.sink.Error(t.Line, t.Column, "foreach range form takes exactly one loop variable")
		}

		p.cur.advance()
		stmt.Low = first
		stmt.High = p.parseExpression()
	} else {
		stmt.Aggregate = first
	}

	p.cur.expect(token.RParen)
	stmt.Body = p.parseStatement()

	return stmt
}

func (p *Parser) parseSwitchStatement(final bool) *ast.SwitchStatement {
	pos := p.pos()
	p.cur.advance()
	p.cur.expect(token.LParen)
	cond := p.parseExpression()
	p.cur.expect(token.RParen)
	body := p.parseBlockStatement()

	return &ast.SwitchStatement{Base: baseAt(pos), Final: final, Cond: cond, Body: body}
}

func (p *Parser) parseCaseStatement() *ast.CaseStatement {
	pos := p.pos()
	p.cur.advance()

	values := []ast.Expression{p.parseAssignExpression()}

	for p.cur.currentIs(token.Comma) {
		p.cur.advance()
		values = append(values, p.parseAssignExpression())
	}

	stmt := &ast.CaseStatement{Base: baseAt(pos), Values: values}

	p.cur.expect(token.Colon)

	if p.cur.currentIs(token.DotDot) {
		p.cur.advance()
		p.cur.expect(token.KwCase)
		stmt.RangeHigh = p.parseAssignExpression()
		p.cur.expect(token.Colon)
	}

	stmt.Statements = p.parseCaseBody()

	return stmt
}

func (p *Parser) parseDefaultStatement() *ast.DefaultStatement {
	pos := p.pos()
	p.cur.advance()
	p.cur.expect(token.Colon)

	return &ast.DefaultStatement{Base: baseAt(pos), Statements: p.parseCaseBody()}
}

func (p *Parser) parseCaseBody() []ast.Statement {
	var stmts []ast.Statement

	for !p.cur.currentIsOneOf(token.KwCase, token.KwDefault, token.RBrace, token.EOF) {
		before := p.cur.idx
		stmts = append(stmts, p.parseStatement())

		if p.cur.idx == before {
			p.cur.advance()
		}
	}

	return stmts
}

func (p *Parser) parseBreakStatement() *ast.BreakStatement {
	pos := p.pos()
	p.cur.advance()

	label := ""
	if p.cur.currentIs(token.Identifier) {
		label = p.cur.advance().Text
	}

	p.cur.expect(token.Semicolon)

	return &ast.BreakStatement{Base: baseAt(pos), Label: label}
}

func (p *Parser) parseContinueStatement() *ast.ContinueStatement {
	pos := p.pos()
	p.cur.advance()

	label := ""
	if p.cur.currentIs(token.Identifier) {
		label = p.cur.advance().Text
	}

	p.cur.expect(token.Semicolon)

	return &ast.ContinueStatement{Base: baseAt(pos), Label: label}
}

func (p *Parser) parseReturnStatement() *ast.ReturnStatement {
	pos := p.pos()
	p.cur.advance()

	var value ast.Expression
	if !p.cur.currentIs(token.Semicolon) {
		value = p.parseExpression()
	}

	p.cur.expect(token.Semicolon)

	return &ast.ReturnStatement{Base: baseAt(pos), Value: value}
}

func (p *Parser) parseGotoStatement() *ast.GotoStatement {
	pos := p.pos()
	p.cur.advance()

	stmt := &ast.GotoStatement{Base: baseAt(pos)}

	switch p.cur.current().Kind {
	case token.KwCase:
		p.cur.advance()
		stmt.Kind = "case"

		if !p.cur.currentIs(token.Semicolon) {
			stmt.CaseValue = p.parseExpression()
		}
	case token.KwDefault:
		p.cur.advance()
		stmt.Kind = "default"
	default:
		stmt.Kind = "label"

		if name, ok := p.cur.expect(token.Identifier); ok {
			stmt.Label = name.Text
		}
	}

	p.cur.expect(token.Semicolon)

	return stmt
}

func (p *Parser) parseWithStatement() *ast.WithStatement {
	pos := p.pos()
	p.cur.advance()
	p.cur.expect(token.LParen)
	expr := p.parseExpression()
	p.cur.expect(token.RParen)
	body := p.parseStatement()

	return &ast.WithStatement{Base: baseAt(pos), Expr: expr, Body: body}
}

func (p *Parser) parseSynchronizedStatement() *ast.SynchronizedStatement {
	pos := p.pos()
	p.cur.advance()

	var guard ast.Expression
	if p.cur.currentIs(token.LParen) {
		p.cur.advance()
		guard = p.parseExpression()
		p.cur.expect(token.RParen)
	}

	body := p.parseStatement()

	return &ast.SynchronizedStatement{Base: baseAt(pos), Guard: guard, Body: body}
}

// parseTryStatement enforces the §4.6 invariant that a try must have at
// least one catch or a finally; a try with neither reports an error but
// still returns a structurally valid node so the caller can keep going.
func (p *Parser) parseTryStatement() *ast.TryStatement {
	pos := p.pos()
	p.cur.advance()
	body := p.parseBlockStatement()

	var catches []ast.CatchClause

	for p.cur.currentIs(token.KwCatch) {
		p.cur.advance()

		clause := ast.CatchClause{}

		if p.cur.currentIs(token.LParen) {
			p.cur.advance()

			if !p.cur.currentIs(token.RParen) {
				clause.Type = p.parseType()

				if p.cur.currentIs(token.Identifier) {
					clause.Name = p.cur.advance().Text
				}
			}

			p.cur.expect(token.RParen)
		}

		clause.Body = p.parseBlockStatement()
		catches = append(catches, clause)
	}

	var finally *ast.BlockStatement
	if p.cur.currentIs(token.KwFinally) {
		p.cur.advance()
		finally = p.parseBlockStatement()
	}

	if len(catches) == 0 && finally == nil {
		t := p.cur.current()
		p.sink.Error(t.Line, t.Column, "try statement must have at least one catch clause or a finally block")
	}

	return &ast.TryStatement{Base: baseAt(pos), Body: body, Catches: catches, Finally: finally}
}

func (p *Parser) parseThrowStatement() *ast.ThrowStatement {
	pos := p.pos()
	p.cur.advance()
	value := p.parseExpression()
	p.cur.expect(token.Semicolon)

	return &ast.ThrowStatement{Base: baseAt(pos), Value: value}
}

func (p *Parser) parseScopeGuardStatement() *ast.ScopeGuardStatement {
	pos := p.pos()
	p.cur.advance()
	p.cur.expect(token.LParen)

	kind := ""
	if id, ok := p.cur.expect(token.Identifier); ok {
		kind = id.Text
	}

	p.cur.expect(token.RParen)
	body := p.parseStatement()

	return &ast.ScopeGuardStatement{Base: baseAt(pos), Kind: kind, Body: body}
}

func (p *Parser) parseAssertStatement() *ast.AssertStatement {
	pos := p.pos()
	p.cur.advance()
	p.cur.expect(token.LParen)
	cond := p.parseAssignExpression()

	var msg ast.Expression
	if p.cur.currentIs(token.Comma) {
		p.cur.advance()
		msg = p.parseAssignExpression()
	}

	p.cur.expect(token.RParen)
	p.cur.expect(token.Semicolon)

	return &ast.AssertStatement{Base: baseAt(pos), Cond: cond, Message: msg}
}

// tryParseStaticStatement handles `static if`/`static assert`/`static
// foreach` in statement position; returns ok == false for any other use of
// `static` (a storage class), letting the caller fall through to the
// declaration path.
func (p *Parser) tryParseStaticStatement() (ast.Statement, bool) {
	switch {
	case p.cur.peekIs(1, token.KwIf):
		return p.parseConditionalStatement(), true
	case p.cur.peekIs(1, token.KwAssert):
		p.cur.advance()

		return p.parseStaticAssertStatement(), true
	case p.cur.peekIs(1, token.KwForeach) || p.cur.peekIs(1, token.KwForeachReverse):
		p.cur.advance()

		return &ast.StaticForeachStatement{Base: baseAt(p.pos()), Foreach: p.parseForeachStatement()}, true
	default:
		return nil, false
	}
}

func (p *Parser) parseStaticAssertStatement() *ast.StaticAssertStatement {
	pos := p.pos()
	p.cur.advance()
	p.cur.expect(token.LParen)
	cond := p.parseAssignExpression()

	var msg ast.Expression
	if p.cur.currentIs(token.Comma) {
		p.cur.advance()
		msg = p.parseAssignExpression()
	}

	p.cur.expect(token.RParen)
	p.cur.expect(token.Semicolon)

	return &ast.StaticAssertStatement{Base: baseAt(pos), Cond: cond, Message: msg}
}

// parseConditionalStatement covers `static if`/`version`/`debug` in
// statement position (§4.6, §4.7 scenario 4). The condition is recorded as
// raw text and never evaluated (§1 Non-goals): both branches are kept
// structurally.
func (p *Parser) parseConditionalStatement() *ast.ConditionalStatement {
	pos := p.pos()
	kind := p.conditionalKindText()

	cond := p.parseConditionalHeader()

	stmt := &ast.ConditionalStatement{Base: baseAt(pos), Kind: kind, Cond: cond}
	stmt.Then = p.parseStatement()

	if p.cur.currentIs(token.KwElse) {
		p.cur.advance()
		stmt.Else = p.parseStatement()
	}

	return stmt
}

func (p *Parser) conditionalKindText() string {
	if p.cur.currentIs(token.KwStatic) {
		p.cur.advance()
		p.cur.advance() // `if`

		return "static if"
	}

	kw := p.cur.advance()

	return kw.Kind.String()
}

// parseConditionalHeader parses the `( Cond )` of a static
// if/version/debug, recording the raw condition text without evaluating
// it.
func (p *Parser) parseConditionalHeader() string {
	p.cur.expect(token.LParen)

	raw := ""
	depth := 1

	for depth > 0 && !p.cur.atEOF() {
		switch p.cur.current().Kind {
		case token.LParen:
			depth++
		case token.RParen:
			depth--
			if depth == 0 {
				p.cur.advance()

				return raw
			}
		}

		raw += p.cur.advance().Text + " "
	}

	return raw
}
