package parser

import (
	"github.com/ferrite-lang/ferritec/internal/ast"
	"github.com/ferrite-lang/ferritec/internal/token"
)

// parseType implements the type grammar (C8, §4.8): a base type followed
// by a suffix loop of pointer/slice/array/associative-array/slice-range/
// function-pointer suffixes, each binding tighter than the last suffix to
// its left (`int[3]*` is a pointer to a 3-element array of int).
func (p *Parser) parseType() ast.Type {
	base := p.parseBaseType()

	return p.parseTypeSuffixes(base)
}

func (p *Parser) parseBaseType() ast.Type {
	pos := p.pos()
	cur := p.cur.current()

	switch {
	case cur.Kind == token.Identifier && builtinTypeKeywords[cur.Text]:
		p.cur.advance()

		return alloc(p, ast.BuiltinType{Base: baseAt(pos), Name: cur.Text})

	case p.isCastQualifier(cur.Kind) && p.cur.peekIs(1, token.LParen):
		p.cur.advance()
		p.cur.advance() // `(`

		inner := p.parseType()
		p.cur.expect(token.RParen)

		return alloc(p, ast.QualifiedType{Base: baseAt(pos), Qualifier: cur.Kind.String(), Inner: inner})

	case cur.Kind == token.KwTypeof:
		return p.parseTypeofType(pos)

	case cur.Kind == token.KwVector:
		p.cur.advance()
		p.cur.expect(token.LParen)
		elem := p.parseType()
		p.cur.expect(token.RParen)

		return alloc(p, ast.VectorType{Base: baseAt(pos), Elem: elem})

	case cur.Kind == token.KwTraits:
		raw := p.skipBalancedRaw(token.KwTraits, token.LParen, token.RParen)

		return alloc(p, ast.TraitsType{Base: baseAt(pos), Raw: raw})

	case cur.Kind == token.Identifier || cur.Kind == token.Dot:
		return p.parseSymbolTypeChain()

	default:
		p.sink.Error(cur.Line, cur.Column, "expected a type, found %s", cur.Kind)
		p.cur.advance()

		return alloc(p, ast.BuiltinType{Base: baseAt(pos), Name: "<error>"})
	}
}

func (p *Parser) parseTypeofType(pos ast.Position) ast.Type {
	p.cur.advance() // typeof
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

	return alloc(p, ast.TypeofType{Base: baseAt(pos), Operand: operand, Return: isRet, MemberChain: chain})
}

// parseSymbolTypeChain parses a possibly leading-dot, possibly
// template-instantiated identifier chain in type position, the shared
// shape between parseType's identifier base case and the classifier
// oracles' speculative probes.
func (p *Parser) parseSymbolTypeChain() ast.Type {
	pos := p.pos()

	leading := false
	if p.cur.currentIs(token.Dot) {
		leading = true
		p.cur.advance()
	}

	var segs []ast.SymbolTypeSegment

	for {
		name, ok := p.cur.expect(token.Identifier)
		if !ok {
			break
		}

		seg := ast.SymbolTypeSegment{Name: name.Text}

		if p.cur.currentIs(token.Not) && !p.cur.peekIsOneOf(1, token.Assign, token.Identifier) {
			p.cur.advance()
			seg.TemplateArgs = p.parseTemplateArgs()
		}

		segs = append(segs, seg)

		if p.cur.currentIs(token.Dot) && p.cur.peekIs(1, token.Identifier) {
			p.cur.advance()

			continue
		}

		break
	}

	return alloc(p, ast.SymbolType{Base: baseAt(pos), LeadingDot: leading, Segments: segs})
}

func (p *Parser) parseTypeSuffixes(base ast.Type) ast.Type {
	for {
		pos := p.pos()

		switch {
		case p.cur.currentIs(token.Star):
			p.cur.advance()
			base = alloc(p, ast.PointerType{Base: baseAt(pos), Inner: base})

		case p.cur.currentIs(token.LBracket):
			base = p.parseBracketSuffix(base, pos)

		case p.cur.currentIsOneOf(token.KwFunction, token.KwDelegate):
			base = p.parseFunctionPointerSuffix(base, pos)

		default:
			return base
		}
	}
}

func (p *Parser) parseBracketSuffix(inner ast.Type, pos ast.Position) ast.Type {
	p.cur.advance() // `[`

	if p.cur.currentIs(token.RBracket) {
		p.cur.advance()

		return alloc(p, ast.SliceType{Base: baseAt(pos), Inner: inner})
	}

	// `[N]` (array) vs `[Low..High]` (slice-range) vs `[KeyType]`
	// (associative array) are disambiguated by bookmarking a type parse
	// first (§4.8): if that consumes the whole bracket content, it is an
	// associative array; otherwise re-parse as an expression, then check
	// for `..`.
	if p.isType() {
		b := p.cur.setBookmark()
		key := p.parseType()

		if p.cur.currentIs(token.RBracket) {
			p.cur.abandonBookmark(b)
			p.cur.advance()

			return alloc(p, ast.AssocArrayType{Base: baseAt(pos), Inner: inner, KeyType: key})
		}

		p.cur.goToBookmark(b)
	}

	length := p.parseAssignExpression()

	if p.cur.currentIs(token.DotDot) {
		p.cur.advance()
		high := p.parseAssignExpression()
		p.cur.expect(token.RBracket)

		return alloc(p, ast.SliceRangeType{Base: baseAt(pos), Inner: inner, Low: length, High: high})
	}

	p.cur.expect(token.RBracket)

	return alloc(p, ast.ArrayType{Base: baseAt(pos), Inner: inner, Length: length})
}

func (p *Parser) parseFunctionPointerSuffix(ret ast.Type, pos ast.Position) ast.Type {
	kw := p.cur.advance()
	params := p.parseParamList()
	attrs := p.parseMemberAttrs()

	return alloc(p, ast.FunctionPointerType{Base: baseAt(pos), Keyword: kw.Kind.String(), ReturnType: ret, Params: params, Attrs: attrs})
}

// parseParamList parses `( storage* Type name? default? , ... )`, shared
// by function declarations, function literals, and function-pointer type
// suffixes.
func (p *Parser) parseParamList() []ast.Param {
	p.cur.expect(token.LParen)

	var params []ast.Param

	for !p.cur.currentIs(token.RParen) && !p.cur.atEOF() {
		var storage []string
		for p.isStorageClass(p.cur.current().Kind) {
			storage = append(storage, p.cur.advance().Text)
		}

		if p.cur.currentIs(token.Ellipsis) {
			p.cur.advance()
			params = append(params, ast.Param{Storage: storage, Vararg: true})

			break
		}

		typ := p.parseType()

		param := ast.Param{Storage: storage, Type: typ}

		if p.cur.currentIs(token.Identifier) {
			param.Name = p.cur.advance().Text
		}

		if p.cur.currentIs(token.Assign) {
			p.cur.advance()
			param.Default = p.parseAssignExpression()
		}

		if p.cur.currentIs(token.Ellipsis) {
			p.cur.advance()
			param.Vararg = true
		}

		params = append(params, param)

		if p.cur.currentIs(token.Comma) {
			p.cur.advance()

			continue
		}

		break
	}

	p.cur.expect(token.RParen)

	return params
}

var memberAttrKeywords = map[token.Kind]bool{
	token.KwConst: true, token.KwImmutable: true, token.KwInout: true, token.KwShared: true,
	token.KwPure: true, token.KwNothrow: true, token.KwOverride: true, token.KwFinal: true,
	token.KwAbstract: true, token.KwSynchronized: true,
}

func (p *Parser) parseMemberAttrs() []string {
	var attrs []string

	for {
		if memberAttrKeywords[p.cur.current().Kind] {
			attrs = append(attrs, p.cur.advance().Text)

			continue
		}

		if p.cur.currentIs(token.At) && p.cur.peekIs(1, token.Identifier) {
			p.cur.advance()
			attrs = append(attrs, "@"+p.cur.advance().Text)

			continue
		}

		return attrs
	}
}

// parseTemplateArgs parses the `!(Arg, ...)` or single-token `!Arg` form
// following a template instantiation `!` (§4.5 "template instantiation vs
// comparison operator" tie-break lives in the caller, which only calls
// here once it has decided `!` starts an instantiation).
func (p *Parser) parseTemplateArgs() []ast.Node {
	if !p.cur.currentIs(token.LParen) {
		return []ast.Node{p.parseTemplateArg()}
	}

	p.cur.advance()

	var args []ast.Node

	for !p.cur.currentIs(token.RParen) && !p.cur.atEOF() {
		args = append(args, p.parseTemplateArg())

		if p.cur.currentIs(token.Comma) {
			p.cur.advance()

			continue
		}

		break
	}

	p.cur.expect(token.RParen)

	return args
}

func (p *Parser) parseTemplateArg() ast.Node {
	if p.isType() {
		b := p.cur.setBookmark()
		typ := p.parseType()

		if p.cur.currentIsOneOf(token.Comma, token.RParen) {
			p.cur.abandonBookmark(b)

			return typ
		}

		p.cur.goToBookmark(b)
	}

	return p.parseAssignExpression()
}

// skipBalancedRaw consumes `kw ( ... )` and returns its raw source text,
// used for the `__traits(...)` type form, which this parser does not
// structurally evaluate (§1 Non-goals, §4.8).
func (p *Parser) skipBalancedRaw(kw token.Kind, open, close token.Kind) string {
	var sb []byte

	sb = append(sb, []byte(p.cur.advance().Text)...)

	if !p.cur.currentIs(open) {
		return string(sb)
	}

	depth := 0

	for !p.cur.atEOF() {
		t := p.cur.current()

		switch t.Kind {
		case open:
			depth++
		case close:
			depth--
		}

		sb = append(sb, []byte(t.Text)...)
		sb = append(sb, ' ')
		p.cur.advance()

		if depth == 0 {
			break
		}
	}

	return string(sb)
}
