package parser

import "github.com/ferrite-lang/ferritec/internal/token"

// storageClassKeywords and typeConstructorParenKeywords overlap on purpose:
// shared/const/immutable/inout/scope are ambiguous between a storage class
// and a type constructor until the token that follows is known (§4.4).
var storageClassKeywords = map[token.Kind]bool{
	token.KwStatic: true, token.KwShared: true, token.KwConst: true,
	token.KwImmutable: true, token.KwInout: true, token.KwScope: true,
	token.KwFinal: true, token.KwOverride: true, token.KwAbstract: true,
	token.KwSynchronized: true, token.KwDeprecated: true, token.KwAuto: true,
	token.KwRef: true,
	token.KwProtectionPublic: true, token.KwProtectionPrivate: true,
	token.KwProtectionProtected: true, token.KwProtectionPackage: true,
	token.KwPure: true, token.KwNothrow: true,
}

func (p *Parser) isStorageClass(k token.Kind) bool {
	return storageClassKeywords[k]
}

// typeConstructorParenKeywords names the type constructors that may also
// head a ParenType form: `const(T)`,
// `shared(T)`, `immutable(T)`, `inout(T)`.
var typeConstructorParenKeywords = map[token.Kind]bool{
	token.KwConst: true, token.KwShared: true, token.KwImmutable: true, token.KwInout: true,
}

func (p *Parser) isCastQualifier(k token.Kind) bool {
	return typeConstructorParenKeywords[k]
}

// builtinTypeKeywords names every primitive type keyword recognized by
// parseType's fast path (§4.8).
var builtinTypeKeywords = map[string]bool{
	"void": true, "bool": true, "byte": true, "ubyte": true,
	"short": true, "ushort": true, "int": true, "uint": true,
	"long": true, "ulong": true, "cent": true, "ucent": true,
	"char": true, "wchar": true, "dchar": true,
	"float": true, "double": true, "real": true,
	"ifloat": true, "idouble": true, "ireal": true,
	"cfloat": true, "cdouble": true, "creal": true,
}

// attributeKeywords names every leading `@`-less attribute keyword that
// can prefix a declaration directly (without a `@` sigil), used by
// isAttribute to decide whether a run of leading keywords is an attribute
// prefix rather than, e.g., a storage class already consumed elsewhere.
var attributeKeywords = map[token.Kind]bool{
	token.KwDeprecated: true, token.KwPure: true, token.KwNothrow: true,
	token.KwFinal: true, token.KwOverride: true, token.KwAbstract: true,
	token.KwSynchronized: true,
	token.KwProtectionPublic: true, token.KwProtectionPrivate: true,
	token.KwProtectionProtected: true, token.KwProtectionPackage: true,
}

// isAttribute reports whether the current token begins an attribute:
// either `@identifier`/`@identifier(args)`/`@identifier!TemplateArgs(args)`
// (§Open Questions, resolved: the `!TemplateArgs` form is recognized), or
// one of the bare attribute keywords.
func (p *Parser) isAttribute() bool {
	if p.cur.currentIs(token.At) {
		return true
	}

	return attributeKeywords[p.cur.current().Kind]
}

// isAssociativeArrayLiteral decides, at a `[` that opens a bracketed
// literal, whether it is an associative-array literal (`[k:v, ...]`) or a
// plain array literal (`[a, b, ...]`), per §4.4: a literal is associative
// iff its first element (if any) is immediately followed by `:` at the
// same bracket depth, found via bounded bookmarked lookahead, never by
// scanning to the matching `]` up front (that would defeat the purpose of
// an O(1)-amortized memoized oracle for a long literal).
func (p *Parser) isAssociativeArrayLiteral() bool {
	startIdx := p.cur.idx

	if cached, ok := p.isAssocCache[startIdx]; ok {
		return cached
	}

	if p.cur.overflowed() {
		return false
	}

	b := p.cur.setBookmark()
	defer p.cur.goToBookmark(b)

	if !p.cur.currentIs(token.LBracket) {
		p.isAssocCache[startIdx] = false

		return false
	}

	p.cur.advance()

	if p.cur.currentIs(token.RBracket) {
		p.isAssocCache[startIdx] = false

		return false
	}

	// Parse one element as an AssignExpression (the element grammar for
	// both array and assoc-array literals up to the disambiguating `:`)
	// and see what follows.
	p.parseAssignExpression()

	result := p.cur.currentIs(token.Colon)
	p.isAssocCache[startIdx] = result

	return result
}

// declarationStartKeywords unambiguously begin a declaration.
var declarationStartKeywords = map[token.Kind]bool{
	token.KwModule: true, token.KwImport: true, token.KwAlias: true,
	token.KwClass: true, token.KwStruct: true, token.KwUnion: true,
	token.KwEnum: true, token.KwInterface: true, token.KwTemplate: true,
	token.KwMixin: true, token.KwPragma: true, token.KwUnittest: true,
	token.KwInvariant: true, token.KwStatic: true,
}

// statementOnlyStartKeywords unambiguously begin a statement that is never
// a declaration.
var statementOnlyStartKeywords = map[token.Kind]bool{
	token.KwIf: true, token.KwWhile: true, token.KwDo: true, token.KwFor: true,
	token.KwForeach: true, token.KwForeachReverse: true, token.KwSwitch: true,
	token.KwCase: true, token.KwDefault: true, token.KwBreak: true,
	token.KwContinue: true, token.KwReturn: true, token.KwGoto: true,
	token.KwWith: true, token.KwTry: true, token.KwThrow: true,
	token.KwAsm: true, token.KwAssert: true, token.LBrace: true,
}

// isDeclaration resolves the statement/declaration ambiguity at the head
// of a statement list (§4.4, §4.6, §4.7): a run of storage-class/attribute
// keywords followed by a type and an identifier is a declaration; the same
// run followed by something else is an expression statement. Whitelisted
// and blacklisted leading keywords short-circuit the common cases; only
// the leftover "could be either" shapes (an identifier-led type followed
// by another identifier) pay for speculative lookahead.
func (p *Parser) isDeclaration() bool {
	startIdx := p.cur.idx

	if cached, ok := p.isDeclCache[startIdx]; ok {
		return cached
	}

	result := p.isDeclarationUncached()
	p.isDeclCache[startIdx] = result

	return result
}

func (p *Parser) isDeclarationUncached() bool {
	if declarationStartKeywords[p.cur.current().Kind] {
		return true
	}

	if statementOnlyStartKeywords[p.cur.current().Kind] {
		return false
	}

	if p.cur.currentIs(token.KwScope) && !p.cur.peekIs(1, token.LParen) {
		return true // `scope` storage class, e.g. `scope MyClass c = ...;`
	}

	if p.isAttribute() {
		return true
	}

	if p.isStorageClass(p.cur.current().Kind) {
		return true
	}

	if !p.isType() {
		return false
	}

	if p.cur.overflowed() {
		return false
	}

	// A type was recognized; it is a declaration iff an identifier (the
	// variable/function name) follows the type, via bookmarked lookahead
	// that also consumes the type the same way parseType would.
	b := p.cur.setBookmark()
	defer p.cur.goToBookmark(b)

	p.parseType()

	return p.cur.currentIs(token.Identifier) ||
		(p.cur.currentIs(token.KwThis) && p.cur.peekIs(1, token.LParen))
}

// isType resolves the type/expression ambiguity that arises in contexts
// where either could appear (a cast target, a template argument, a
// `typeof`/`is` operand): it recognizes a builtin type keyword, a
// qualifier-paren form, `typeof(...)`, `__vector(...)`, or an identifier
// chain that is not itself immediately followed by something that could
// only continue an expression (an infix operator other than `.`/`!`/`[`,
// which types also use as suffixes).
func (p *Parser) isType() bool {
	startIdx := p.cur.idx

	if cached, ok := p.isTypeCache[startIdx]; ok {
		return cached
	}

	result := p.isTypeUncached()
	p.isTypeCache[startIdx] = result

	return result
}

func (p *Parser) isTypeUncached() bool {
	cur := p.cur.current()

	if cur.Kind == token.Identifier && builtinTypeKeywords[cur.Text] {
		return true
	}

	switch cur.Kind {
	case token.KwTypeof, token.KwVector:
		return true
	}

	if p.isCastQualifier(cur.Kind) && p.cur.peekIs(1, token.LParen) {
		return true
	}

	if cur.Kind != token.Identifier && cur.Kind != token.Dot {
		return false
	}

	if p.cur.overflowed() {
		return false
	}

	b := p.cur.setBookmark()
	defer p.cur.goToBookmark(b)

	p.parseSymbolTypeChain()

	switch p.cur.current().Kind {
	case token.Star, token.LBracket, token.Identifier, token.RParen, token.RBracket,
		token.Comma, token.Semicolon, token.KwFunction, token.KwDelegate, token.KwThis:
		return true
	default:
		return false
	}
}
