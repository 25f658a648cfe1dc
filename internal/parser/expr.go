package parser

import (
	"github.com/ferrite-lang/ferritec/internal/ast"
	"github.com/ferrite-lang/ferritec/internal/token"
)

// parseExpression is the top-level Expression production (§4.5 level 1):
// one or more AssignExpressions separated by `,`. A single element never
// gets wrapped in a CommaExpression (§GLOSSARY invariant on the node).
func (p *Parser) parseExpression() ast.Expression {
	pos := p.pos()
	first := p.parseAssignExpression()

	if !p.cur.currentIs(token.Comma) {
		return first
	}

	elems := []ast.Expression{first}

	for p.cur.currentIs(token.Comma) {
		p.cur.advance()
		elems = append(elems, p.parseAssignExpression())
	}

	return alloc(p, ast.CommaExpression{Base: baseAt(pos), Elements: elems})
}

var assignOps = map[token.Kind]bool{
	token.Assign: true, token.PlusAssign: true, token.MinusAssign: true,
	token.MulAssign: true, token.DivAssign: true, token.ModAssign: true,
	token.AndAssign: true, token.OrAssign: true, token.XorAssign: true,
	token.ShlAssign: true, token.ShrAssign: true, token.UShrAssign: true,
	token.PowAssign: true, token.CatAssign: true,
}

// parseAssignExpression is level 2: a TernaryExpression, optionally
// followed by one assignment operator and a right-associative recursive
// call (assignment is the only right-associative level in the ladder).
func (p *Parser) parseAssignExpression() ast.Expression {
	if p.maxDepth > 0 {
		p.exprDepth++
		defer func() { p.exprDepth-- }()

		if p.exprDepth > p.maxDepth {
			t := p.cur.current()
			p.sink.Error(t.Line, t.Column, "expression nesting exceeds maximum depth")

			return alloc(p, ast.NullLiteral{Base: baseAt(p.pos())})
		}
	}

	pos := p.pos()
	left := p.parseTernaryExpression()

	if assignOps[p.cur.current().Kind] {
		op := p.cur.advance()
		right := p.parseAssignExpression()

		return alloc(p, ast.AssignExpression{Base: baseAt(pos), Op: op.Kind.String(), Left: left, Right: right})
	}

	return left
}

// parseTernaryExpression is level 3: `cond ? then : else`, right-
// associative in Else.
func (p *Parser) parseTernaryExpression() ast.Expression {
	pos := p.pos()
	cond := p.parseOrOrExpression()

	if !p.cur.currentIs(token.Question) {
		return cond
	}

	p.cur.advance()

	then := p.parseExpression()
	p.cur.expect(token.Colon)
	els := p.parseTernaryExpression()

	return alloc(p, ast.TernaryExpression{Base: baseAt(pos), Cond: cond, Then: then, Else: els})
}

func (p *Parser) parseOrOrExpression() ast.Expression {
	return p.parseLeftAssocBinary(token.OrOr, p.parseAndAndExpression)
}

func (p *Parser) parseAndAndExpression() ast.Expression {
	return p.parseLeftAssocBinary(token.AndAnd, p.parseOrExpression)
}

func (p *Parser) parseOrExpression() ast.Expression {
	return p.parseLeftAssocBinary(token.Pipe, p.parseXorExpression)
}

func (p *Parser) parseXorExpression() ast.Expression {
	return p.parseLeftAssocBinary(token.Caret, p.parseAndExpression)
}

func (p *Parser) parseAndExpression() ast.Expression {
	return p.parseLeftAssocBinary(token.Amp, p.parseCmpExpression)
}

// parseLeftAssocBinary folds a left-associative run of `next OP next OP
// next ...` into nested BinaryExpression nodes, the common shape for the
// single-operator `||`/`&&`/`|`/`^`/`&` levels (§4.5). The shift/add/mul
// levels fold their several operators in their own loops, and `^^` is
// right-associative (parsePowExpression).
func (p *Parser) parseLeftAssocBinary(op token.Kind, next func() ast.Expression) ast.Expression {
	pos := p.pos()
	left := next()

	for p.cur.currentIs(op) {
		opTok := p.cur.advance()
		right := next()
		left = alloc(p, ast.BinaryExpression{Base: baseAt(pos), Op: opTok.Kind.String(), Left: left, Right: right})
	}

	return left
}

// parseCmpExpression is the non-chaining comparison level (§4.5): exactly
// zero or one of Equal/Identity/In/Rel may appear, never chained, since D's
// grammar forbids `a == b == c`.
func (p *Parser) parseCmpExpression() ast.Expression {
	pos := p.pos()
	left := p.parseShiftExpression()

	switch p.cur.current().Kind {
	case token.Eq, token.NotEq:
		negated := p.cur.advance().Kind == token.NotEq
		right := p.parseShiftExpression()

		return alloc(p, ast.EqualExpression{Base: baseAt(pos), Negated: negated, Left: left, Right: right})

	case token.KwIs:
		p.cur.advance()
		right := p.parseShiftExpression()

		return alloc(p, ast.IdentityExpression{Base: baseAt(pos), Negated: false, Left: left, Right: right})

	case token.NotIs:
		p.cur.advance()
		right := p.parseShiftExpression()

		return alloc(p, ast.IdentityExpression{Base: baseAt(pos), Negated: true, Left: left, Right: right})

	case token.KwIn:
		p.cur.advance()
		right := p.parseShiftExpression()

		return alloc(p, ast.InExpression{Base: baseAt(pos), Negated: false, Element: left, Collection: right})

	case token.NotIn:
		p.cur.advance()
		right := p.parseShiftExpression()

		return alloc(p, ast.InExpression{Base: baseAt(pos), Negated: true, Element: left, Collection: right})

	case token.Not:
		// `!` before `is`/`in` (§4.5 tie-break): the lexer never fuses
		// `!is`/`!in` itself (token.NotIs/NotIn are never produced by it),
		// so a bare `!` immediately followed by `is`/`in` must be folded
		// before falling through to the unary-`!` interpretation, which
		// does not apply at this precedence level at all.
		if p.cur.peekIs(1, token.KwIs) {
			p.cur.advance()
			p.cur.advance()
			right := p.parseShiftExpression()

			return alloc(p, ast.IdentityExpression{Base: baseAt(pos), Negated: true, Left: left, Right: right})
		}

		if p.cur.peekIs(1, token.KwIn) {
			p.cur.advance()
			p.cur.advance()
			right := p.parseShiftExpression()

			return alloc(p, ast.InExpression{Base: baseAt(pos), Negated: true, Element: left, Collection: right})
		}

	case token.Lt, token.LtEq, token.Gt, token.GtEq, token.Unordered, token.UnorderedOrEq,
		token.LtGt, token.LtGtEq, token.NotGt, token.NotGtEq, token.NotLt, token.NotLtEq:
		opTok := p.cur.advance()
		right := p.parseShiftExpression()

		return alloc(p, ast.RelExpression{Base: baseAt(pos), Op: opTok.Kind.String(), Left: left, Right: right})
	}

	return left
}

func (p *Parser) parseShiftExpression() ast.Expression {
	pos := p.pos()
	left := p.parseAddExpression()

	for p.cur.currentIsOneOf(token.Shl, token.Shr, token.UShr) {
		opTok := p.cur.advance()
		right := p.parseAddExpression()
		left = alloc(p, ast.BinaryExpression{Base: baseAt(pos), Op: opTok.Kind.String(), Left: left, Right: right})
	}

	return left
}

func (p *Parser) parseAddExpression() ast.Expression {
	pos := p.pos()
	left := p.parseMulExpression()

	for p.cur.currentIsOneOf(token.Plus, token.Minus, token.Tilde) {
		opTok := p.cur.advance()
		right := p.parseMulExpression()
		left = alloc(p, ast.BinaryExpression{Base: baseAt(pos), Op: opTok.Kind.String(), Left: left, Right: right})
	}

	return left
}

func (p *Parser) parseMulExpression() ast.Expression {
	pos := p.pos()
	left := p.parsePowExpression()

	for p.cur.currentIsOneOf(token.Star, token.Slash, token.Percent) {
		opTok := p.cur.advance()
		right := p.parsePowExpression()
		left = alloc(p, ast.BinaryExpression{Base: baseAt(pos), Op: opTok.Kind.String(), Left: left, Right: right})
	}

	return left
}

// parsePowExpression is `^^`, right-associative per §4.5 (the one
// multiplicative-tier exception).
func (p *Parser) parsePowExpression() ast.Expression {
	pos := p.pos()
	left := p.parseUnaryExpression()

	if !p.cur.currentIs(token.Pow) {
		return left
	}

	p.cur.advance()
	right := p.parsePowExpression()

	return alloc(p, ast.BinaryExpression{Base: baseAt(pos), Op: "^^", Left: left, Right: right})
}

var unaryPrefixOps = map[token.Kind]bool{
	token.Amp: true, token.Not: true, token.Star: true, token.Plus: true,
	token.Minus: true, token.Tilde: true, token.PlusPlus: true, token.MinusMinus: true,
}

// parseUnaryExpression is the prefix level: `& ! * + - ~ ++ --`, plus the
// keyword-headed primaries (new/delete/cast) that bind at the same level
// as a unary prefix rather than as ordinary primaries (§4.5).
func (p *Parser) parseUnaryExpression() ast.Expression {
	pos := p.pos()

	switch {
	case unaryPrefixOps[p.cur.current().Kind]:
		opTok := p.cur.advance()
		operand := p.parseUnaryExpression()

		return alloc(p, ast.UnaryExpression{Base: baseAt(pos), Op: opTok.Kind.String(), Operand: operand})

	case p.cur.currentIs(token.KwNew):
		return p.parseNewExpression(pos)

	case p.cur.currentIs(token.KwDelete):
		p.cur.advance()
		operand := p.parseUnaryExpression()

		return alloc(p, ast.DeleteExpression{Base: baseAt(pos), Operand: operand})

	case p.cur.currentIs(token.KwCast):
		return p.parseCastExpression(pos)

	case p.isQualifiedCallStart():
		return p.parseQualifiedCallExpression(pos)

	default:
		return p.parsePostfixExpression()
	}
}

func (p *Parser) parseNewExpression(pos ast.Position) ast.Expression {
	p.cur.advance()
	typ := p.parseType()

	// parseType has already folded a trailing `[size]` into an ArrayType;
	// unwrap it into the `new Type[size]` allocation form.
	if at, ok := typ.(*ast.ArrayType); ok {
		return alloc(p, ast.NewExpression{Base: baseAt(pos), Type: at.Inner, ArrayLen: at.Length})
	}

	var args []ast.Expression
	if p.cur.currentIs(token.LParen) {
		args = p.parseArgList()
	}

	return alloc(p, ast.NewExpression{Base: baseAt(pos), Type: typ, Args: args})
}

func (p *Parser) parseCastExpression(pos ast.Position) ast.Expression {
	p.cur.advance()
	p.cur.expect(token.LParen)

	var (
		quals []string
		typ   ast.Type
	)

	if p.isCastQualifier(p.cur.current().Kind) && p.cur.peekIs(1, token.RParen) {
		quals = append(quals, p.cur.advance().Text)
	} else if !p.cur.currentIs(token.RParen) {
		for p.isCastQualifier(p.cur.current().Kind) && !p.cur.peekIs(1, token.RParen) {
			quals = append(quals, p.cur.advance().Text)
		}

		typ = p.parseType()
	}

	p.cur.expect(token.RParen)
	operand := p.parseUnaryExpression()

	return alloc(p, ast.CastExpression{Base: baseAt(pos), Qualifiers: quals, Type: typ, Operand: operand})
}

// isQualifiedCallStart detects the `const|immutable|inout|shared|scope|
// pure|nothrow Type ( args )` qualified-call-expression form (§4.5), via
// bookmarked lookahead since the same leading keyword also begins an
// ordinary cast-qualifier-paren type.
func (p *Parser) isQualifiedCallStart() bool {
	if !p.isStorageClass(p.cur.current().Kind) {
		return false
	}

	if p.cur.overflowed() {
		return false
	}

	b := p.cur.setBookmark()
	defer p.cur.goToBookmark(b)

	for p.isStorageClass(p.cur.current().Kind) {
		p.cur.advance()
	}

	// isType rejects an identifier followed by `(` (a call in expression
	// position), which is the very shape this form has.
	if !p.isType() && !p.cur.currentIsOneOf(token.Identifier, token.Dot) {
		return false
	}

	p.parseType()

	return p.cur.currentIs(token.LParen)
}

func (p *Parser) parseQualifiedCallExpression(pos ast.Position) ast.Expression {
	var quals []string
	for p.isStorageClass(p.cur.current().Kind) {
		quals = append(quals, p.cur.advance().Text)
	}

	typ := p.parseType()
	args := p.parseArgList()

	return alloc(p, ast.QualifiedCallExpression{Base: baseAt(pos), Qualifiers: quals, Type: typ, Args: args})
}

// parsePostfixExpression parses a PrimaryExpression followed by a loop of
// postfix suffixes: call, index, slice, member access, `++`/`--` (§4.5).
func (p *Parser) parsePostfixExpression() ast.Expression {
	pos := p.pos()
	expr := p.parsePrimaryExpression()

	for {
		switch {
		case p.cur.currentIs(token.LParen):
			expr = alloc(p, ast.CallExpression{Base: baseAt(pos), Callee: expr, Args: p.parseArgList()})

		case p.cur.currentIs(token.Not) && p.startsTemplateInstance():
			p.cur.advance()
			targs := p.parseTemplateArgs()

			if p.cur.currentIs(token.LParen) {
				expr = alloc(p, ast.CallExpression{Base: baseAt(pos), Callee: expr, TemplateArgs: targs, Args: p.parseArgList()})
			} else if id, ok := expr.(*ast.Identifier); ok {
				id.TemplateArgs = targs
			}

		case p.cur.currentIs(token.LBracket):
			expr = p.parseIndexOrSlice(expr, pos)

		case p.cur.currentIs(token.Dot):
			p.cur.advance()

			if p.cur.currentIs(token.KwNew) {
				// `expr.new Type(args)` is out of this grammar's scope
				// (anonymous-class-only syntax); fall back to a plain
				// member so the parser still makes progress.
				expr = alloc(p, ast.MemberExpression{Base: baseAt(pos), Object: expr, Member: "new"})
				p.cur.advance()

				continue
			}

			name, ok := p.cur.expect(token.Identifier)
			if !ok {
				return expr
			}

			expr = alloc(p, ast.MemberExpression{Base: baseAt(pos), Object: expr, Member: name.Text})

		case p.cur.currentIsOneOf(token.PlusPlus, token.MinusMinus):
			opTok := p.cur.advance()
			expr = alloc(p, ast.PostfixExpression{Base: baseAt(pos), Op: opTok.Kind.String(), Operand: expr})

		default:
			return expr
		}
	}
}

// startsTemplateInstance resolves the `!` tie-break (§4.5): `a!b` is a
// template instantiation, `a ! = b` never occurs (`!=` already lexes as a
// single token), so the only real ambiguity is `a ! b` where `!b` could in
// principle be read as a unary-not operand of some other production; this
// grammar treats a postfix `!` as always introducing a template-argument
// list when the following token is an identifier (builtin type names are
// identifiers), an int or string literal, `true`/`false`, or `(`, and
// never otherwise.
func (p *Parser) startsTemplateInstance() bool {
	switch p.cur.peek(1).Kind {
	case token.Identifier, token.LParen, token.IntLiteral, token.StringLiteral, token.KwTrue, token.KwFalse:
		return true
	default:
		return false
	}
}

func (p *Parser) parseIndexOrSlice(object ast.Expression, pos ast.Position) ast.Expression {
	p.cur.advance() // `[`

	if p.cur.currentIs(token.RBracket) {
		p.cur.advance()

		return alloc(p, ast.IndexExpression{Base: baseAt(pos), Object: object})
	}

	first := p.parseAssignExpression()

	if p.cur.currentIs(token.DotDot) {
		p.cur.advance()
		high := p.parseAssignExpression()
		p.cur.expect(token.RBracket)

		return alloc(p, ast.SliceExpression{Base: baseAt(pos), Object: object, Low: first, High: high})
	}

	indices := []ast.Expression{first}

	for p.cur.currentIs(token.Comma) {
		p.cur.advance()
		indices = append(indices, p.parseAssignExpression())
	}

	p.cur.expect(token.RBracket)

	return alloc(p, ast.IndexExpression{Base: baseAt(pos), Object: object, Indices: indices})
}

func (p *Parser) parseArgList() []ast.Expression {
	p.cur.expect(token.LParen)

	var args []ast.Expression

	for !p.cur.currentIs(token.RParen) && !p.cur.atEOF() {
		args = append(args, p.parseAssignExpression())

		if p.cur.currentIs(token.Comma) {
			p.cur.advance()

			if p.cur.currentIs(token.RParen) {
				break // trailing comma accepted in argument lists (§Open Questions)
			}

			continue
		}

		break
	}

	p.cur.expect(token.RParen)

	return args
}

// parsePrimaryExpression is the base of the precedence ladder: literals,
// identifiers (with leading-dot and template-instance forms), bracketed
// array/assoc-array/struct literals, parenthesized sub-expressions, the
// `(type).identifier` bookmarked form, and the keyword-headed primaries
// (typeof/typeid/is/__traits/mixin/import/function/delegate/assert) (§4.5).
func (p *Parser) parsePrimaryExpression() ast.Expression {
	pos := p.pos()
	cur := p.cur.current()

	switch cur.Kind {
	case token.IntLiteral, token.LongLiteral, token.UIntLiteral, token.ULongLiteral:
		p.cur.advance()

		return alloc(p, ast.IntLiteral{
			Base: baseAt(pos), Text: cur.Text,
			Unsigned: cur.Kind == token.UIntLiteral || cur.Kind == token.ULongLiteral,
			Long:     cur.Kind == token.LongLiteral || cur.Kind == token.ULongLiteral,
		})

	case token.FloatLiteral, token.DoubleLiteral, token.RealLiteral,
		token.IFloatLiteral, token.IDoubleLiteral, token.IRealLiteral:
		p.cur.advance()

		return alloc(p, ast.FloatLiteral{Base: baseAt(pos), Text: cur.Text, Kind: floatKindName(cur.Kind)})

	case token.StringLiteral, token.WStringLiteral, token.DStringLiteral:
		return p.parseStringLiteral(pos)

	case token.CharacterLiteral:
		p.cur.advance()

		r, _ := utf8DecodeFirst(cur.Text)

		return alloc(p, ast.CharLiteral{Base: baseAt(pos), Value: r})

	case token.KwTrue, token.KwFalse:
		p.cur.advance()

		return alloc(p, ast.BoolLiteral{Base: baseAt(pos), Value: cur.Kind == token.KwTrue})

	case token.KwNull:
		p.cur.advance()

		return alloc(p, ast.NullLiteral{Base: baseAt(pos)})

	case token.IntrinsicDollar, token.KwThis, token.KwSuper,
		token.IntrinsicFile, token.IntrinsicLine, token.IntrinsicModule,
		token.IntrinsicFunction, token.IntrinsicPrettyFunction, token.IntrinsicDate,
		token.IntrinsicTime, token.IntrinsicTimestamp, token.IntrinsicVendor,
		token.IntrinsicVersion, token.IntrinsicEOF:
		p.cur.advance()

		return alloc(p, ast.SpecialToken{Base: baseAt(pos), Text: cur.Kind.String()})

	case token.Dot:
		p.cur.advance()
		name, _ := p.cur.expect(token.Identifier)

		return alloc(p, ast.Identifier{Base: baseAt(pos), Name: name.Text, LeadingDot: true})

	case token.Identifier:
		return p.parseIdentifierPrimary(pos)

	case token.LParen:
		return p.parseParenPrimary(pos)

	case token.LBracket:
		return p.parseBracketLiteral(pos)

	case token.LBrace:
		return p.parseStructLiteral(pos, nil)

	case token.KwTypeof:
		return p.parseTypeofExpression(pos)

	case token.KwTypeid:
		return p.parseTypeidExpression(pos)

	case token.KwIs:
		return p.parseIsExpression(pos)

	case token.KwTraits:
		return p.parseTraitsExpression(pos)

	case token.KwVector:
		p.cur.advance()
		p.cur.expect(token.LParen)
		operand := p.parseAssignExpression()
		p.cur.expect(token.RParen)

		return alloc(p, ast.VectorExpression{Base: baseAt(pos), Operand: operand})

	case token.KwMixin:
		p.cur.advance()
		p.cur.expect(token.LParen)
		operand := p.parseAssignExpression()
		p.cur.expect(token.RParen)

		return alloc(p, ast.MixinExpression{Base: baseAt(pos), Operand: operand})

	case token.KwImport:
		p.cur.advance()
		p.cur.expect(token.LParen)
		operand := p.parseAssignExpression()
		p.cur.expect(token.RParen)

		return alloc(p, ast.ImportExpression{Base: baseAt(pos), Operand: operand})

	case token.KwAssert:
		return p.parseAssertExpression(pos)

	case token.KwFunction, token.KwDelegate:
		return p.parseFunctionLiteral(pos, cur.Kind.String())

	default:
		p.sink.Error(cur.Line, cur.Column, "expected an expression, found %s", cur.Kind)
		p.cur.advance()

		return alloc(p, ast.NullLiteral{Base: baseAt(pos)})
	}
}

func floatKindName(k token.Kind) string {
	switch k {
	case token.FloatLiteral:
		return "float"
	case token.DoubleLiteral:
		return "double"
	case token.RealLiteral:
		return "real"
	case token.IFloatLiteral:
		return "ifloat"
	case token.IDoubleLiteral:
		return "idouble"
	case token.IRealLiteral:
		return "ireal"
	default:
		return ""
	}
}

func utf8DecodeFirst(s string) (rune, int) {
	for _, r := range s {
		return r, len(s)
	}

	return 0, 0
}

// parseStringLiteral folds a run of adjacent string-literal tokens (of any
// of the three string kinds; the node's Kind is that of the first token)
// into one StringLiteral node and emits a one-shot warning the first time
// this happens in a parse (§4.5 implicit string concatenation).
func (p *Parser) parseStringLiteral(pos ast.Position) ast.Expression {
	first := p.cur.advance()

	value := first.Text
	pieces := 1

	for p.cur.currentIsOneOf(token.StringLiteral, token.WStringLiteral, token.DStringLiteral) {
		if !p.stringConcatWarned {
			p.stringConcatWarned = true
			p.sink.Warning(pos.Line, pos.Column, "implicit concatenation of adjacent string literals")
		}

		value += p.cur.advance().Text
		pieces++
	}

	return alloc(p, ast.StringLiteral{Base: baseAt(pos), Value: value, Kind: stringKindName(first.Kind), Pieces: pieces})
}

func stringKindName(k token.Kind) string {
	switch k {
	case token.WStringLiteral:
		return "wstring"
	case token.DStringLiteral:
		return "dstring"
	default:
		return "string"
	}
}

// parseIdentifierPrimary parses an identifier primary, with a
// `!TemplateArgs` instance suffix when startsTemplateInstance accepts the
// `!`. It never builds a TypeMemberExpression: `.member` access is left to
// parsePostfixExpression, and the `(type).identifier` form is resolved by
// parseParenPrimary.
func (p *Parser) parseIdentifierPrimary(pos ast.Position) ast.Expression {
	name := p.cur.advance()

	if p.cur.currentIs(token.Not) && p.startsTemplateInstance() {
		p.cur.advance()
		targs := p.parseTemplateArgs()

		return alloc(p, ast.Identifier{Base: baseAt(pos), Name: name.Text, TemplateArgs: targs})
	}

	return alloc(p, ast.Identifier{Base: baseAt(pos), Name: name.Text})
}

// parseParenPrimary resolves the parenthesized-sub-expression vs.
// `(type).identifier` vs. function/delegate-literal-without-keyword
// ambiguities that all begin with `(` (§4.5), via bookmarked lookahead:
// try a parameter list followed by `=>` first (implicit-kind lambda),
// then a type followed by `.identifier`, then fall back to an ordinary
// parenthesized expression.
func (p *Parser) parseParenPrimary(pos ast.Position) ast.Expression {
	if lit := p.tryParseImplicitLambda(pos); lit != nil {
		return lit
	}

	if !p.cur.overflowed() {
		b := p.cur.setBookmark()
		p.cur.advance() // `(`

		if p.isType() {
			typ := p.parseType()

			if p.cur.currentIs(token.RParen) && p.cur.peekIs(1, token.Dot) && p.cur.peekIs(2, token.Identifier) {
				p.cur.advance()
				p.cur.advance()
				member := p.cur.advance()
				p.cur.abandonBookmark(b)

				return alloc(p, ast.TypeMemberExpression{Base: baseAt(pos), Type: typ, Member: member.Text})
			}
		}

		p.cur.goToBookmark(b)
	}

	p.cur.advance() // `(`
	inner := p.parseExpression()
	p.cur.expect(token.RParen)

	return inner
}

// tryParseImplicitLambda speculatively parses `( Params ) => Expr`, the
// implicit-kind function-literal shorthand (§4.5), restoring the cursor on
// failure.
func (p *Parser) tryParseImplicitLambda(pos ast.Position) ast.Expression {
	if p.cur.overflowed() {
		return nil
	}

	b := p.cur.setBookmark()

	params := p.parseParamList()

	if p.matchesArrow() {
		p.consumeArrow()

		body := p.parseAssignExpression()
		p.cur.abandonBookmark(b)

		return alloc(p, ast.FunctionLiteral{Base: baseAt(pos), Params: params, Expr: body})
	}

	p.cur.goToBookmark(b)

	return nil
}

// matchesArrow/consumeArrow treat an `=` token directly followed by a `>`
// token as the `=>` lambda arrow (whitespace between the two tokens is not
// checked), since this token set lexes
// `=` and `>` as separate tokens (no compound `=>` Kind exists — §4.5
// lambda shorthand is expressed over the two-token sequence).
func (p *Parser) matchesArrow() bool {
	return p.cur.currentIs(token.Assign) && p.cur.peekIs(1, token.Gt)
}

func (p *Parser) consumeArrow() {
	p.cur.advance()
	p.cur.advance()
}

func (p *Parser) parseBracketLiteral(pos ast.Position) ast.Expression {
	if p.isAssociativeArrayLiteral() {
		return p.parseAssocArrayLiteral(pos)
	}

	p.cur.advance() // `[`

	var elems []ast.Expression

	for !p.cur.currentIs(token.RBracket) && !p.cur.atEOF() {
		elems = append(elems, p.parseAssignExpression())

		if p.cur.currentIs(token.Comma) {
			p.cur.advance()

			if p.cur.currentIs(token.RBracket) {
				break // trailing comma accepted in array literals (§Open Questions)
			}

			continue
		}

		break
	}

	p.cur.expect(token.RBracket)

	return alloc(p, ast.ArrayLiteral{Base: baseAt(pos), Elements: elems})
}

func (p *Parser) parseAssocArrayLiteral(pos ast.Position) ast.Expression {
	p.cur.advance() // `[`

	var entries []ast.AssocArrayEntry

	for !p.cur.currentIs(token.RBracket) && !p.cur.atEOF() {
		key := p.parseAssignExpression()
		p.cur.expect(token.Colon)
		value := p.parseAssignExpression()

		entries = append(entries, ast.AssocArrayEntry{Key: key, Value: value})

		if p.cur.currentIs(token.Comma) {
			p.cur.advance()

			if p.cur.currentIs(token.RBracket) {
				break
			}

			continue
		}

		break
	}

	p.cur.expect(token.RBracket)

	return alloc(p, ast.AssocArrayLiteral{Base: baseAt(pos), Entries: entries})
}

func (p *Parser) parseStructLiteral(pos ast.Position, typ ast.Type) ast.Expression {
	p.cur.advance() // `{`

	var fields []ast.StructLiteralField

	for !p.cur.currentIs(token.RBrace) && !p.cur.atEOF() {
		if p.cur.currentIs(token.Identifier) && p.cur.peekIs(1, token.Colon) {
			name := p.cur.advance().Text
			p.cur.advance() // `:`
			fields = append(fields, ast.StructLiteralField{Name: name, Value: p.parseAssignExpression()})
		} else {
			fields = append(fields, ast.StructLiteralField{Value: p.parseAssignExpression()})
		}

		if p.cur.currentIs(token.Comma) {
			p.cur.advance()

			continue
		}

		break
	}

	p.cur.expect(token.RBrace)

	return alloc(p, ast.StructLiteral{Base: baseAt(pos), Type: typ, Fields: fields})
}

func (p *Parser) parseTypeofExpression(pos ast.Position) ast.Expression {
	p.cur.advance()
	p.cur.expect(token.LParen)

	var (
		operand ast.Expression
		isRet   bool
	)

	if p.cur.currentIs(token.KwReturn) {
		isRet = true
		p.cur.advance()
	} else {
		operand = p.parseExpression()
	}

	p.cur.expect(token.RParen)

	var chain []string
	for p.cur.currentIs(token.Dot) && p.cur.peekIs(1, token.Identifier) {
		p.cur.advance()
		chain = append(chain, p.cur.advance().Text)
	}

	return alloc(p, ast.TypeofExpression{Base: baseAt(pos), Operand: operand, Return: isRet, MemberChain: chain})
}

func (p *Parser) parseTypeidExpression(pos ast.Position) ast.Expression {
	p.cur.advance()
	p.cur.expect(token.LParen)

	result := &ast.TypeidExpression{}

	if p.isType() {
		b := p.cur.setBookmark()
		typ := p.parseType()

		if p.cur.currentIs(token.RParen) {
			p.cur.abandonBookmark(b)
			result.Type = typ
		} else {
			p.cur.goToBookmark(b)
			result.Expr = p.parseExpression()
		}
	} else {
		result.Expr = p.parseExpression()
	}

	p.cur.expect(token.RParen)
	result.Base = baseAt(pos)

	return alloc(p, *result)
}

// parseIsExpression parses the `is ( ... )` type-predicate primary,
// modeling only the shapes needed to disambiguate from a parenthesized
// type (§IsExpression doc): `is(Type)`, `is(Type Ident)`, and
// `is(Type [Ident] Op Specialization)` with the comparison operator and
// specialization kept as an unevaluated raw trailer.
func (p *Parser) parseIsExpression(pos ast.Position) ast.Expression {
	p.cur.advance()
	p.cur.expect(token.LParen)

	typ := p.parseType()

	ident := ""
	if p.cur.currentIs(token.Identifier) {
		ident = p.cur.advance().Text
	}

	trailer := ""

	for !p.cur.currentIs(token.RParen) && !p.cur.atEOF() {
		trailer += p.cur.advance().Text + " "
	}

	p.cur.expect(token.RParen)

	return alloc(p, ast.IsExpression{Base: baseAt(pos), Type: typ, Identifier: ident, Trailer: trailer})
}

func (p *Parser) parseTraitsExpression(pos ast.Position) ast.Expression {
	p.cur.advance()
	p.cur.expect(token.LParen)

	trait := ""
	if t, ok := p.cur.expect(token.Identifier); ok {
		trait = t.Text
	}

	var args []ast.Node

	for p.cur.currentIs(token.Comma) {
		p.cur.advance()
		args = append(args, p.parseTemplateArg())
	}

	p.cur.expect(token.RParen)

	return alloc(p, ast.TraitsExpression{Base: baseAt(pos), Trait: trait, Args: args})
}

func (p *Parser) parseAssertExpression(pos ast.Position) ast.Expression {
	p.cur.advance()
	p.cur.expect(token.LParen)

	cond := p.parseAssignExpression()

	var msg ast.Expression
	if p.cur.currentIs(token.Comma) {
		p.cur.advance()
		msg = p.parseAssignExpression()
	}

	p.cur.expect(token.RParen)

	return alloc(p, ast.AssertExpression{Base: baseAt(pos), Cond: cond, Message: msg})
}

func (p *Parser) parseFunctionLiteral(pos ast.Position, keyword string) ast.Expression {
	p.cur.advance()

	var retType ast.Type
	if p.isType() && !p.cur.currentIs(token.LParen) {
		retType = p.parseType()
	}

	params := p.parseParamList()
	attrs := p.parseMemberAttrs()

	lit := &ast.FunctionLiteral{Base: baseAt(pos), Keyword: keyword, ReturnType: retType, Params: params, Attrs: attrs}

	if p.matchesArrow() {
		p.consumeArrow()
		lit.Expr = p.parseAssignExpression()
	} else if p.cur.currentIs(token.LBrace) {
		lit.Body = p.parseBlockStatement()
	}

	return alloc(p, *lit)
}

// stringLiteralValue extracts the text of a string-literal expression, used
// by decl.go's pragma argument validation (§4.11) to read a version string
// without a full expression-evaluator.
func stringLiteralValue(e ast.Expression) (string, bool) {
	if v, ok := e.(*ast.StringLiteral); ok {
		return v.Value, true
	}

	return "", false
}
