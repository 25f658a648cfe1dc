package parser

import (
	"github.com/Masterminds/semver/v3"

	"github.com/ferrite-lang/ferritec/internal/ast"
	"github.com/ferrite-lang/ferritec/internal/lexer"
	"github.com/ferrite-lang/ferritec/internal/token"
)

// parseDeclaration is the top-level declaration dispatcher (C7, §4.7): it
// consumes a leading attribute/storage-class run, then dispatches on the
// keyword (or falls through to the variable-vs-function generic-type-
// identifier shape) that follows. Any branch that cannot make structural
// progress resynchronizes with skipToSemicolonOrBrace rather than
// aborting the whole parse (§4 recoverable-skip invariant).
func (p *Parser) parseDeclaration() ast.Declaration {
	doc := p.takePendingDoc()

	if p.cur.currentIs(token.At) {
		return p.parseAttributeOrAtAttributeDeclaration(doc)
	}

	switch p.cur.current().Kind {
	case token.KwModule:
		return p.parseModuleDeclarationAsDecl(doc)
	case token.KwImport:
		return p.parseImportDeclaration(doc)
	case token.KwAlias:
		return p.parseAliasDeclaration(doc)
	case token.KwClass:
		return p.parseAggregateDeclaration(doc, ast.AggregateClass)
	case token.KwStruct:
		return p.parseAggregateDeclaration(doc, ast.AggregateStruct)
	case token.KwUnion:
		return p.parseAggregateDeclaration(doc, ast.AggregateUnion)
	case token.KwInterface:
		return p.parseAggregateDeclaration(doc, ast.AggregateInterface)
	case token.KwEnum:
		return p.parseEnumOrEponymousDeclaration(doc)
	case token.KwTemplate:
		return p.parseTemplateDeclaration(doc)
	case token.KwMixin:
		return p.parseMixinOrMixinTemplateDeclaration(doc)
	case token.KwPragma:
		return p.parsePragmaDeclaration(doc)
	case token.KwUnittest:
		return p.parseUnittestDeclaration(doc)
	case token.KwInvariant:
		return p.parseInvariantDeclaration(doc)
	case token.KwThis:
		return p.parseConstructorOrPostblitDeclaration(doc)
	case token.Tilde:
		return p.parseDestructorDeclaration(doc)
	case token.KwVersion, token.KwDebug:
		return p.parseConditionalDeclaration(doc)
	}

	if p.cur.currentIs(token.KwStatic) {
		if decl, ok := p.tryParseStaticDeclaration(doc); ok {
			return decl
		}
	}

	return p.parseVariableOrFunctionDeclaration(doc)
}

func (p *Parser) takePendingDoc() string {
	if p.pendingDoc != "" {
		d := p.pendingDoc
		p.pendingDoc = ""

		return d
	}

	return p.cur.current().Doc
}

// parseAttributeOrAtAttributeDeclaration handles `@identifier`,
// `@identifier(args)`, and `@identifier!TemplateArgs(args)` (§Open
// Questions: the template-args form is implemented), followed either by a
// single declaration it applies to, or a `:` that turns the attribute run
// into its own scope-wide AttributeDeclaration (§4.7).
func (p *Parser) parseAttributeOrAtAttributeDeclaration(doc string) ast.Declaration {
	pos := p.pos()

	var attrs []string
	for p.cur.currentIs(token.At) {
		attrs = append(attrs, p.parseOneAtAttribute())
	}

	for p.isStorageClass(p.cur.current().Kind) || attributeKeywords[p.cur.current().Kind] {
		attrs = append(attrs, p.cur.advance().Text)
	}

	if p.cur.currentIs(token.Colon) {
		p.cur.advance()

		return &ast.AttributeDeclaration{Base: baseAt(pos), Commented: ast.Commented{Comment: doc}, Attrs: attrs}
	}

	return p.parseDeclarationWithLeadingAttrs(doc, attrs)
}

func (p *Parser) parseOneAtAttribute() string {
	p.cur.advance() // `@`
	name, _ := p.cur.expect(token.Identifier)
	text := "@" + name.Text

	if p.cur.currentIs(token.Not) {
		p.cur.advance()
		p.parseTemplateArgs()
	}

	if p.cur.currentIs(token.LParen) {
		args := p.parseArgList()

		if isVersionPragmaName(name.Text) {
			p.validatePragmaVersionArgs(args)
		}
	}

	return text
}

// parseDeclarationWithLeadingAttrs re-dispatches into parseDeclarationBody
// after a leading attribute/storage-class run has already been consumed,
// and attaches the collected attrs to the resulting declaration through
// attachAttrs' type switch. Only declaration structs with their own Attrs
// field receive them; for the others (imports, mixins, unittests, ...) the
// attrs are dropped.
func (p *Parser) parseDeclarationWithLeadingAttrs(doc string, attrs []string) ast.Declaration {
	decl := p.parseDeclarationBody(doc)
	attachAttrs(decl, attrs)

	return decl
}

// parseDeclarationBody repeats parseDeclaration's keyword switch, without
// its `@` and `module` cases, so
// parseDeclarationWithLeadingAttrs can call back into it after consuming a
// leading attribute run without infinitely recursing on `@`.
func (p *Parser) parseDeclarationBody(doc string) ast.Declaration {
	switch p.cur.current().Kind {
	case token.KwImport:
		return p.parseImportDeclaration(doc)
	case token.KwAlias:
		return p.parseAliasDeclaration(doc)
	case token.KwClass:
		return p.parseAggregateDeclaration(doc, ast.AggregateClass)
	case token.KwStruct:
		return p.parseAggregateDeclaration(doc, ast.AggregateStruct)
	case token.KwUnion:
		return p.parseAggregateDeclaration(doc, ast.AggregateUnion)
	case token.KwInterface:
		return p.parseAggregateDeclaration(doc, ast.AggregateInterface)
	case token.KwEnum:
		return p.parseEnumOrEponymousDeclaration(doc)
	case token.KwTemplate:
		return p.parseTemplateDeclaration(doc)
	case token.KwMixin:
		return p.parseMixinOrMixinTemplateDeclaration(doc)
	case token.KwPragma:
		return p.parsePragmaDeclaration(doc)
	case token.KwUnittest:
		return p.parseUnittestDeclaration(doc)
	case token.KwInvariant:
		return p.parseInvariantDeclaration(doc)
	case token.KwThis:
		return p.parseConstructorOrPostblitDeclaration(doc)
	case token.Tilde:
		return p.parseDestructorDeclaration(doc)
	case token.KwVersion, token.KwDebug:
		return p.parseConditionalDeclaration(doc)
	default:
		if p.cur.currentIs(token.KwStatic) {
			if decl, ok := p.tryParseStaticDeclaration(doc); ok {
				return decl
			}
		}

		return p.parseVariableOrFunctionDeclaration(doc)
	}
}

func attachAttrs(decl ast.Declaration, attrs []string) {
	if len(attrs) == 0 {
		return
	}

	switch d := decl.(type) {
	case *ast.ImportDeclaration:
	case *ast.AliasDeclaration:
		d.Attrs = append(attrs, d.Attrs...)
	case *ast.AggregateDeclaration:
		d.Attrs = append(attrs, d.Attrs...)
	case *ast.EnumDeclaration:
		d.Attrs = append(attrs, d.Attrs...)
	case *ast.EponymousTemplateDeclaration:
		d.Attrs = append(attrs, d.Attrs...)
	case *ast.TemplateDeclaration:
		d.Attrs = append(attrs, d.Attrs...)
	case *ast.MixinTemplateDeclaration:
		d.Attrs = append(attrs, d.Attrs...)
	case *ast.VariableDeclaration:
		d.Attrs = append(attrs, d.Attrs...)
	case *ast.FunctionDeclaration:
		d.Attrs = append(attrs, d.Attrs...)
	case *ast.ConstructorDeclaration:
		d.Attrs = append(attrs, d.Attrs...)
	case *ast.PostblitDeclaration:
		d.Attrs = append(attrs, d.Attrs...)
	case *ast.DestructorDeclaration:
		d.Attrs = append(attrs, d.Attrs...)
	}
}

// parseModuleDeclarationAsDecl is only reached if a `module` declaration
// appears after the first declaration of a file, which is a grammar error
// this parser still recovers from by returning the parsed node anyway
// (C10 enforces the "at most one, and it must be first" invariant).
func (p *Parser) parseModuleDeclarationAsDecl(doc string) ast.Declaration {
	md := p.parseModuleDeclaration(doc)

	return &ast.ModuleDeclWrapper{ModuleDeclaration: md}
}

func (p *Parser) parseImportDeclaration(doc string) *ast.ImportDeclaration {
	pos := p.pos()
	p.cur.advance()

	decl := &ast.ImportDeclaration{Base: baseAt(pos), Commented: ast.Commented{Comment: doc}}

	if p.cur.currentIs(token.Identifier) && p.cur.peekIs(1, token.Assign) {
		decl.ModuleAlias = p.cur.advance().Text
		p.cur.advance()
	}

	decl.ModulePath = p.parseDottedPath()

	if p.cur.currentIs(token.Colon) {
		p.cur.advance()

		for {
			binding := ast.ImportBinding{}

			first, _ := p.cur.expect(token.Identifier)

			if p.cur.currentIs(token.Assign) {
				p.cur.advance()
				binding.Alias = first.Text

				name, _ := p.cur.expect(token.Identifier)
				binding.Name = name.Text
			} else {
				binding.Name = first.Text
			}

			decl.Selective = append(decl.Selective, binding)

			if p.cur.currentIs(token.Comma) {
				p.cur.advance()

				continue
			}

			break
		}
	}

	p.cur.expect(token.Semicolon)

	return decl
}

func (p *Parser) parseDottedPath() []string {
	var path []string

	name, _ := p.cur.expect(token.Identifier)
	path = append(path, name.Text)

	for p.cur.currentIs(token.Dot) && p.cur.peekIs(1, token.Identifier) {
		p.cur.advance()
		path = append(path, p.cur.advance().Text)
	}

	return path
}

// parseAliasDeclaration covers both alias forms (§4.7): new-style (`alias
// name(Params)? = Type|Expr;`) and old-style (`alias storage* Type name,
// ...;`). A legacy `alias Type func() @attr;` function-pointer-alias shape
// is tolerated by skipping to `;` with a warning rather than structurally
// parsed (§Open Questions decision 1).
func (p *Parser) parseAliasDeclaration(doc string) *ast.AliasDeclaration {
	pos := p.pos()
	p.cur.advance()

	decl := &ast.AliasDeclaration{Base: baseAt(pos), Commented: ast.Commented{Comment: doc}}

	if p.isNewStyleAlias() {
		decl.NewStyle = true
		decl.Name = p.cur.advance().Text

		if p.cur.currentIs(token.LParen) {
			decl.TemplateParams = p.parseParamList()
		}

		p.cur.expect(token.Assign)

		if p.isType() {
			b := p.cur.setBookmark()
			typ := p.parseType()

			if p.cur.currentIs(token.Semicolon) {
				p.cur.abandonBookmark(b)
				decl.AliasedType = typ
			} else {
				p.cur.goToBookmark(b)
				decl.AliasedExpr = p.parseExpression()
			}
		} else {
			decl.AliasedExpr = p.parseExpression()
		}

		p.cur.expect(token.Semicolon)

		return decl
	}

	for p.isStorageClass(p.cur.current().Kind) {
		decl.Storage = append(decl.Storage, p.cur.advance().Text)
	}

	decl.Type = p.parseType()

	if p.cur.currentIs(token.Identifier) && p.cur.peekIsOneOf(1, token.LParen) {
		// legacy `alias Type func(Params) @attrs;` shape: tolerated by
		// skipping to `;` (§Open Questions decision 1).
		start := p.cur.idx
		decl.LegacyFunctionForm = true
		p.cur.skipToSemicolonOrBrace()
		decl.LegacyRaw = rawTextBetween(p.cur.toks, start, p.cur.idx)

		t := p.cur.current()
		p.sink.Warning(t.Line, t.Column, "legacy alias-to-function-pointer form tolerated, not structurally parsed")

		return decl
	}

	for {
		name, ok := p.cur.expect(token.Identifier)
		if !ok {
			break
		}

		decl.Names = append(decl.Names, name.Text)

		if p.cur.currentIs(token.Comma) {
			p.cur.advance()

			continue
		}

		break
	}

	p.cur.expect(token.Semicolon)

	return decl
}

// isNewStyleAlias reports whether `alias` is followed by the new-style
// `name (Params)? =` shape rather than the old-style `storage* Type name`
// shape, via bookmarked lookahead.
func (p *Parser) isNewStyleAlias() bool {
	if !p.cur.currentIs(token.Identifier) {
		return false
	}

	if p.cur.peekIs(1, token.Assign) {
		return true
	}

	if !p.cur.peekIs(1, token.LParen) {
		return false
	}

	if p.cur.overflowed() {
		return false
	}

	b := p.cur.setBookmark()
	defer p.cur.goToBookmark(b)

	p.cur.advance()
	p.parseParamList()

	return p.cur.currentIs(token.Assign)
}

func rawTextBetween(toks []token.Token, from, to int) string {
	s := ""
	for i := from; i < to && i < len(toks); i++ {
		s += toks[i].Text + " "
	}

	return s
}

// parseAggregateDeclaration covers class/struct/union/interface (§4.7),
// including the forward-declaration (`;` body) and base-list (`: Base,
// ...`) shapes.
func (p *Parser) parseAggregateDeclaration(doc string, kind ast.AggregateKind) *ast.AggregateDeclaration {
	pos := p.pos()
	p.cur.advance()

	decl := &ast.AggregateDeclaration{Base: baseAt(pos), Commented: ast.Commented{Comment: doc}, Kind: kind}

	name, _ := p.cur.expect(token.Identifier)
	decl.Name = name.Text

	if p.cur.currentIs(token.LParen) {
		decl.TemplateParams = p.parseParamList()
	}

	if p.cur.currentIs(token.Colon) {
		p.cur.advance()

		for {
			decl.Bases = append(decl.Bases, p.parseType())

			if p.cur.currentIs(token.Comma) {
				p.cur.advance()

				continue
			}

			break
		}
	}

	if p.cur.currentIs(token.Semicolon) {
		p.cur.advance()
		decl.BodyOmitted = true

		return decl
	}

	decl.Members = p.parseMemberList()

	return decl
}

// parseMemberList parses `{ Declaration* }` for any aggregate/template
// body.
func (p *Parser) parseMemberList() []ast.Declaration {
	p.cur.expect(token.LBrace)

	var members []ast.Declaration

	for !p.cur.currentIs(token.RBrace) && !p.cur.atEOF() {
		before := p.cur.idx
		members = append(members, p.parseDeclaration())

		if p.cur.idx == before {
			p.cur.advance()
		}
	}

	p.cur.expect(token.RBrace)

	return members
}

// parseConstructorOrPostblitDeclaration distinguishes `this(this)`
// (postblit) from `this(Params)` (constructor), including a templated
// constructor detected by a second `(` peek after the parameter list
// (§4.7, §GLOSSARY).
func (p *Parser) parseConstructorOrPostblitDeclaration(doc string) ast.Declaration {
	pos := p.pos()
	p.cur.advance() // `this`

	if p.cur.currentIs(token.LParen) && p.cur.peekIs(1, token.KwThis) && p.cur.peekIs(2, token.RParen) {
		p.cur.advance()
		p.cur.advance()
		p.cur.advance()

		body, had := p.parseOptionalBody()

		return &ast.PostblitDeclaration{Base: baseAt(pos), Commented: ast.Commented{Comment: doc}, Body: body, HadBody: had}
	}

	decl := &ast.ConstructorDeclaration{Base: baseAt(pos), Commented: ast.Commented{Comment: doc}}

	first := p.parseParamList()

	if p.cur.currentIs(token.LParen) {
		decl.TemplateParams = first
		decl.Params = p.parseParamList()
	} else {
		decl.Params = first
	}

	decl.Contracts = p.parseFunctionContracts()
	decl.Body, decl.HadBody = p.consumeContractsBody(decl.Contracts)

	return decl
}

func (p *Parser) parseDestructorDeclaration(doc string) *ast.DestructorDeclaration {
	pos := p.pos()
	p.cur.advance() // `~`
	p.cur.expect(token.KwThis)
	p.cur.expect(token.LParen)
	p.cur.expect(token.RParen)

	body, had := p.parseOptionalBody()

	return &ast.DestructorDeclaration{Base: baseAt(pos), Commented: ast.Commented{Comment: doc}, Body: body, HadBody: had}
}

func (p *Parser) parseOptionalBody() (*ast.BlockStatement, bool) {
	if p.cur.currentIs(token.Semicolon) {
		p.cur.advance()

		return nil, false
	}

	if p.cur.currentIs(token.LBrace) {
		return p.parseBlockStatement(), true
	}

	return nil, false
}

func (p *Parser) parseInvariantDeclaration(doc string) *ast.InvariantDeclaration {
	pos := p.pos()
	p.cur.advance()

	if p.cur.currentIs(token.LParen) {
		p.cur.skipParens()
	}

	body := p.parseBlockStatement()

	return &ast.InvariantDeclaration{Base: baseAt(pos), Commented: ast.Commented{Comment: doc}, Body: body}
}

func (p *Parser) parseUnittestDeclaration(doc string) *ast.UnittestDeclaration {
	pos := p.pos()
	p.cur.advance()
	body := p.parseBlockStatement()

	return &ast.UnittestDeclaration{Base: baseAt(pos), Commented: ast.Commented{Comment: doc}, Body: body}
}

// parseEnumOrEponymousDeclaration covers the anonymous/named/value-typed
// enum shapes as well as the eponymous-template shape `enum name
// (TemplateParams) = expr;` (§GLOSSARY; §Open Questions decision 3's
// sibling form).
func (p *Parser) parseEnumOrEponymousDeclaration(doc string) ast.Declaration {
	pos := p.pos()
	p.cur.advance()

	decl := &ast.EnumDeclaration{Base: baseAt(pos), Commented: ast.Commented{Comment: doc}}

	if p.cur.currentIs(token.Identifier) {
		if p.cur.peekIs(1, token.LParen) {
			return p.parseEponymousTemplateDeclaration(pos, doc)
		}

		decl.Name = p.cur.advance().Text
	} else {
		decl.Anonymous = true
	}

	if p.cur.currentIs(token.Colon) {
		p.cur.advance()
		decl.BaseType = p.parseType()
	}

	p.cur.expect(token.LBrace)

	for !p.cur.currentIs(token.RBrace) && !p.cur.atEOF() {
		member := ast.EnumMember{Comment: p.takePendingDoc()}

		name, ok := p.cur.expect(token.Identifier)
		if !ok {
			p.cur.advance()

			continue
		}

		member.Name = name.Text

		if p.cur.currentIs(token.Assign) {
			p.cur.advance()
			member.Value = p.parseAssignExpression()
		}

		decl.Members = append(decl.Members, member)

		if p.cur.currentIs(token.Comma) {
			p.cur.advance()

			continue
		}

		break
	}

	p.cur.expect(token.RBrace)

	return decl
}

func (p *Parser) parseEponymousTemplateDeclaration(pos ast.Position, doc string) *ast.EponymousTemplateDeclaration {
	name := p.cur.advance().Text
	params := p.parseParamList()
	p.cur.expect(token.Assign)
	value := p.parseAssignExpression()
	p.cur.expect(token.Semicolon)

	return &ast.EponymousTemplateDeclaration{
		Base: baseAt(pos), Commented: ast.Commented{Comment: doc},
		Name: name, TemplateParams: params, Value: value,
	}
}

func (p *Parser) parseTemplateDeclaration(doc string) *ast.TemplateDeclaration {
	pos := p.pos()
	p.cur.advance()

	decl := &ast.TemplateDeclaration{Base: baseAt(pos), Commented: ast.Commented{Comment: doc}}

	name, _ := p.cur.expect(token.Identifier)
	decl.Name = name.Text
	decl.TemplateParams = p.parseParamList()

	if p.cur.currentIs(token.KwIf) {
		p.cur.advance()
		p.cur.expect(token.LParen)
		decl.Constraint = p.parseExpression()
		p.cur.expect(token.RParen)
	}

	decl.Members = p.parseMemberList()

	return decl
}

// parseMixinOrMixinTemplateDeclaration covers `mixin template ...`,
// `mixin TemplateName!(Args) ident?;`, and `mixin(expr);` — including
// re-lexing a `q{ ... }` token-string mixin argument into the
// declarations it textually contains (§4.7 "template mixin expressions").
func (p *Parser) parseMixinOrMixinTemplateDeclaration(doc string) ast.Declaration {
	pos := p.pos()
	p.cur.advance()

	if p.cur.currentIs(token.KwTemplate) {
		p.cur.advance()

		decl := &ast.MixinTemplateDeclaration{Base: baseAt(pos), Commented: ast.Commented{Comment: doc}}

		name, _ := p.cur.expect(token.Identifier)
		decl.Name = name.Text
		decl.TemplateParams = p.parseParamList()
		decl.Members = p.parseMemberList()

		return decl
	}

	if p.cur.currentIs(token.LParen) {
		decl := &ast.MixinDeclaration{Base: baseAt(pos), Commented: ast.Commented{Comment: doc}}
		p.cur.advance()
		decl.Expr = p.parseAssignExpression()
		p.cur.expect(token.RParen)
		p.cur.expect(token.Semicolon)

		if lit, ok := decl.Expr.(*ast.StringLiteral); ok {
			decl.TrivialDeclarations = p.reparseMixinString(lit.Value, lit.Pos().Line)
		}

		return decl
	}

	decl := &ast.MixinDeclaration{Base: baseAt(pos), Commented: ast.Commented{Comment: doc}}

	decl.TemplateName = p.cur.advance().Text

	if p.cur.currentIs(token.Not) {
		p.cur.advance()
		decl.TemplateArgs = p.parseTemplateArgs()
	}

	if p.cur.currentIs(token.Identifier) {
		decl.Identifier = p.cur.advance().Text
	}

	p.cur.expect(token.Semicolon)

	return decl
}

// reparseMixinString re-lexes a string-mixin's literal text as a
// declaration list, reusing this file's own token stream machinery rather
// than shelling out to a second parser type (§4.7). The re-lexed tokens'
// lines are shifted by line, the literal's starting line, so a parse error
// in the mixin body is reported at a line of the outer file; its column is
// the column within the mixin text.
func (p *Parser) reparseMixinString(src string, line int) []ast.Declaration {
	toks := lexer.Tokenize([]byte(src))
	if len(toks) == 0 {
		return nil
	}

	for i := range toks {
		toks[i].Line += line - 1
	}

	sub := newParser(toks, p.sink, config{arena: p.arena, maxDepth: p.maxDepth})

	var decls []ast.Declaration

	for !sub.cur.atEOF() {
		before := sub.cur.idx
		decls = append(decls, sub.parseDeclaration())

		if sub.cur.idx == before {
			sub.cur.advance()
		}
	}

	return decls
}

// parsePragmaDeclaration parses `pragma(identifier, args...) Body|;`
// (§4.7). When the pragma names a version-checking pragma, its sole
// string-literal argument is validated as a semver constraint/version
// using Masterminds/semver rather than evaluated (§4.11): a malformed
// version string is reported, a well-formed one is accepted without
// affecting parsing — this pragma family is syntax-only and never
// evaluated.
func (p *Parser) parsePragmaDeclaration(doc string) *ast.PragmaDeclaration {
	pos := p.pos()
	p.cur.advance()
	p.cur.expect(token.LParen)

	decl := &ast.PragmaDeclaration{Base: baseAt(pos), Commented: ast.Commented{Comment: doc}, VersionArgValid: true}

	name, _ := p.cur.expect(token.Identifier)
	decl.Name = name.Text

	for p.cur.currentIs(token.Comma) {
		p.cur.advance()
		decl.Args = append(decl.Args, p.parseAssignExpression())
	}

	p.cur.expect(token.RParen)

	if isVersionPragmaName(decl.Name) {
		decl.VersionArgValid = p.validatePragmaVersionArgs(decl.Args)
	}

	switch {
	case p.cur.currentIs(token.LBrace):
		decl.Body = p.parseMemberList()
	case p.cur.currentIs(token.Semicolon):
		p.cur.advance()
	default:
		decl.Decl = p.parseDeclaration()
	}

	return decl
}

func isVersionPragmaName(name string) bool {
	return name == "ferriteVersion" || name == "minVersion" || name == "requireVersion"
}

// validatePragmaVersionArgs reports a diagnostic for each string-literal
// argument that does not parse as a semver version or constraint,
// returning false if any did not.
func (p *Parser) validatePragmaVersionArgs(args []ast.Expression) bool {
	ok := true

	for _, arg := range args {
		text, isStr := stringLiteralValue(arg)
		if !isStr {
			continue
		}

		if _, err := semver.NewVersion(text); err == nil {
			continue
		}

		if _, err := semver.NewConstraint(text); err == nil {
			continue
		}

		pos := arg.Pos()
		p.sink.Warning(pos.Line, pos.Column, "invalid version string %q in pragma", text)
		ok = false
	}

	return ok
}

// tryParseStaticDeclaration handles the `static` prefix in declaration
// position: `static if`/`static assert`/`static foreach` (conditional
// compilation, §4.7), `static this`/`static ~this` (module
// constructors/destructors; the `shared static this`/`shared static ~this`
// forms start with `shared` and are handled by
// parseVariableOrFunctionDeclaration), and the
// plain storage-class use that falls through to the generic
// variable/function path.
func (p *Parser) tryParseStaticDeclaration(doc string) (ast.Declaration, bool) {
	switch {
	case p.cur.peekIs(1, token.KwIf):
		return p.parseConditionalDeclarationStaticIf(doc), true
	case p.cur.peekIs(1, token.KwAssert):
		p.cur.advance()

		return p.parseStaticAssertDeclaration(doc), true
	case p.cur.peekIsOneOf(1, token.KwForeach, token.KwForeachReverse):
		p.cur.advance()

		return p.parseStaticForeachDeclaration(doc), true
	case p.cur.peekIs(1, token.KwThis):
		p.cur.advance()

		return p.parseStaticCtorDeclaration(doc, false), true
	case p.cur.peekIs(1, token.Tilde):
		p.cur.advance()

		return p.parseStaticDtorDeclaration(doc, false), true
	default:
		return nil, false
	}
}

// parseVariableOrFunctionDeclaration is also reached for `shared static
// this`/`shared static ~this` (a storage-class `shared` ahead of
// `static`), handled here rather than in tryParseStaticDeclaration so a
// bare `shared` without a following `static this` still falls through to
// an ordinary variable/function declaration correctly.
func (p *Parser) parseVariableOrFunctionDeclaration(doc string) ast.Declaration {
	pos := p.pos()

	var storage []string
	for p.isStorageClass(p.cur.current().Kind) {
		if p.cur.currentIs(token.KwShared) && p.cur.peekIs(1, token.KwStatic) {
			p.cur.advance()

			if p.cur.peekIs(1, token.KwThis) {
				p.cur.advance()

				return p.parseStaticCtorDeclaration(doc, true)
			}

			if p.cur.peekIs(1, token.Tilde) {
				p.cur.advance()

				return p.parseStaticDtorDeclaration(doc, true)
			}

			storage = append(storage, "shared")

			continue
		}

		storage = append(storage, p.cur.advance().Text)
	}

	retType := p.parseType()

	name, ok := p.cur.expect(token.Identifier)
	if !ok {
		p.cur.skipToSemicolonOrBrace()

		return &ast.VariableDeclaration{Base: baseAt(pos), Commented: ast.Commented{Comment: doc}, Storage: storage, Type: retType}
	}

	if p.cur.currentIs(token.LParen) {
		return p.parseFunctionDeclarationTail(pos, doc, storage, retType, name.Text)
	}

	return p.parseVariableDeclarationTail(pos, doc, storage, retType, name.Text)
}

func (p *Parser) parseFunctionDeclarationTail(pos ast.Position, doc string, storage []string, retType ast.Type, name string) *ast.FunctionDeclaration {
	decl := &ast.FunctionDeclaration{
		Base: baseAt(pos), Commented: ast.Commented{Comment: doc},
		Storage: storage, ReturnType: retType, Name: name,
	}

	first := p.parseParamList()

	if p.cur.currentIs(token.LParen) {
		decl.TemplateParams = first
		decl.Params = p.parseParamList()
	} else {
		decl.Params = first
	}

	decl.MemberAttrs = p.parseMemberAttrs()
	decl.Contracts = p.parseFunctionContracts()
	decl.Body, decl.HadBody = p.consumeContractsBody(decl.Contracts)

	return decl
}

func (p *Parser) parseVariableDeclarationTail(pos ast.Position, doc string, storage []string, typ ast.Type, firstName string) *ast.VariableDeclaration {
	decl := &ast.VariableDeclaration{Base: baseAt(pos), Commented: ast.Commented{Comment: doc}, Storage: storage, Type: typ}

	name := firstName

	for {
		d := ast.VariableDeclarator{Name: name}

		for p.cur.currentIsOneOf(token.LBracket) {
			// array-suffix-on-declarator form `int a[4];`: folded into the
			// shared type instead of a separate per-declarator field,
			// consistent with how parseTypeSuffixes already models array
			// suffixes.
			typ = p.parseTypeSuffixes(typ)
			decl.Type = typ
		}

		if p.cur.currentIs(token.Assign) {
			p.cur.advance()
			d.Init = p.parseAssignExpression()
		}

		decl.Declarators = append(decl.Declarators, d)

		if p.cur.currentIs(token.Comma) {
			p.cur.advance()

			next, ok := p.cur.expect(token.Identifier)
			if !ok {
				break
			}

			name = next.Text

			continue
		}

		break
	}

	p.cur.expect(token.Semicolon)

	return decl
}

// parseFunctionContracts parses the optional `in`/`out`/body triad
// (§4.7): old-style `in { } out (result) { } body { }`, or new-style `in
// { } out (result) { } do { }`.
func (p *Parser) parseFunctionContracts() ast.FunctionContracts {
	var c ast.FunctionContracts

	if p.cur.currentIs(token.KwIn) {
		c.HasIn = true
		p.cur.advance()

		if p.retainContractBodies() {
			c.In = p.parseBlockStatement()
		} else {
			p.cur.skipBraces()
		}
	}

	if p.cur.currentIs(token.KwOut) {
		c.HasOut = true
		p.cur.advance()

		if p.cur.currentIs(token.LParen) {
			p.cur.advance()

			if id, ok := p.cur.expect(token.Identifier); ok {
				c.OutIdent = id.Text
			}

			p.cur.expect(token.RParen)
		}

		if p.retainContractBodies() {
			c.Out = p.parseBlockStatement()
		} else {
			p.cur.skipBraces()
		}
	}

	if p.cur.currentIs(token.KwDo) {
		c.UsesDo = true
		p.cur.advance()
	} else if p.cur.currentIs(token.KwBody) {
		p.cur.advance()
	}

	return c
}

// retainContractBodies is always true today; it exists as the single
// decision point the memory-minimization policy (§4.7 DESIGN.md) would
// flip to false for in/out contract bodies specifically, independent of
// the function-body policy in consumeContractsBody.
func (p *Parser) retainContractBodies() bool { return true }

// consumeContractsBody consumes the function/constructor/destructor body
// that follows a Contracts triad (or stands alone when no contracts were
// present): a `;` (no body, e.g. an abstract/interface method), or a `{
// }` block. HadBody records whether a body/do block was present at all.
func (p *Parser) consumeContractsBody(c ast.FunctionContracts) (*ast.BlockStatement, bool) {
	if p.cur.currentIs(token.Semicolon) {
		p.cur.advance()

		return nil, false
	}

	if p.cur.currentIs(token.LBrace) {
		return p.parseBlockStatement(), true
	}

	return nil, c.HasIn || c.HasOut
}

func (p *Parser) parseStaticCtorDeclaration(doc string, shared bool) *ast.StaticCtorDeclaration {
	pos := p.pos()
	p.cur.advance() // `this`
	p.cur.expect(token.LParen)
	p.cur.expect(token.RParen)

	body, had := p.parseOptionalBody()

	return &ast.StaticCtorDeclaration{Base: baseAt(pos), Shared: shared, Body: body, HadBody: had}
}

func (p *Parser) parseStaticDtorDeclaration(doc string, shared bool) *ast.StaticDtorDeclaration {
	pos := p.pos()
	p.cur.advance() // `~`
	p.cur.expect(token.KwThis)
	p.cur.expect(token.LParen)
	p.cur.expect(token.RParen)

	body, had := p.parseOptionalBody()

	return &ast.StaticDtorDeclaration{Base: baseAt(pos), Shared: shared, Body: body, HadBody: had}
}

// parseConditionalDeclarationStaticIf and parseConditionalDeclaration
// cover `static if`/`version`/`debug` in declaration position (§4.7,
// scenario 4 of §8). Both branches are recorded structurally and never
// evaluated (§1 Non-goals).
func (p *Parser) parseConditionalDeclarationStaticIf(doc string) *ast.ConditionalDeclaration {
	pos := p.pos()
	p.cur.advance() // `static`
	p.cur.advance() // `if`
	cond := p.parseConditionalHeader()

	decl := &ast.ConditionalDeclaration{Base: baseAt(pos), Commented: ast.Commented{Comment: doc}, Kind: "static if", Cond: cond}
	decl.TrueDeclarations = p.parseConditionalBranch(doc)

	if p.cur.currentIs(token.KwElse) {
		p.cur.advance()
		decl.FalseDeclarations = p.parseConditionalBranch("")
	}

	return decl
}

func (p *Parser) parseConditionalDeclaration(doc string) *ast.ConditionalDeclaration {
	pos := p.pos()
	kind := p.cur.advance().Kind.String()
	cond := p.parseConditionalHeader()

	decl := &ast.ConditionalDeclaration{Base: baseAt(pos), Commented: ast.Commented{Comment: doc}, Kind: kind, Cond: cond}
	decl.TrueDeclarations = p.parseConditionalBranch(doc)

	if p.cur.currentIs(token.KwElse) {
		p.cur.advance()
		decl.FalseDeclarations = p.parseConditionalBranch("")
	}

	return decl
}

// parseConditionalBranch parses one branch (true or false) of a
// conditional declaration. supplemental, when non-empty, is copied onto
// every declaration the branch produces as its SupplementalComment (§4.7:
// the conditional's own doc comment is propagated into its true branch,
// the one permitted case of a comment belonging to more than one node).
func (p *Parser) parseConditionalBranch(supplemental string) []ast.Declaration {
	var decls []ast.Declaration
	if p.cur.currentIs(token.LBrace) {
		decls = p.parseMemberList()
	} else {
		decls = []ast.Declaration{p.parseDeclaration()}
	}

	if supplemental != "" {
		for _, d := range decls {
			d.SetSupplementalComment(supplemental)
		}
	}

	return decls
}

func (p *Parser) parseStaticAssertDeclaration(doc string) *ast.StaticAssertDeclaration {
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

	return &ast.StaticAssertDeclaration{Base: baseAt(pos), Commented: ast.Commented{Comment: doc}, Cond: cond, Message: msg}
}

func (p *Parser) parseStaticForeachDeclaration(doc string) *ast.StaticForeachDeclaration {
	pos := p.pos()
	inner := p.parseForeachStatement()

	decl := &ast.StaticForeachDeclaration{
		Base: baseAt(pos), Commented: ast.Commented{Comment: doc},
		Reverse: inner.Reverse, Vars: inner.Vars, Low: inner.Low, High: inner.High, Aggregate: inner.Aggregate,
	}

	if body, ok := inner.Body.(*ast.BlockStatement); ok {
		for _, s := range body.Statements {
			if d, ok := s.(ast.Declaration); ok {
				decl.Declarations = append(decl.Declarations, d)
			} else if ds, ok := s.(*ast.DeclarationStatement); ok {
				decl.Declarations = append(decl.Declarations, ds.Decl)
			}
		}
	}

	return decl
}
