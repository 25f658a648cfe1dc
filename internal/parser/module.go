// Package parser's module.go is the C10 entry point: the public
// ParseModule function, the leading script-line/module-declaration
// handling, the top-level declaration loop, and the ParseFiles concurrent
// multi-file driver (§4.10).
package parser

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/ferrite-lang/ferritec/internal/arena"
	"github.com/ferrite-lang/ferritec/internal/ast"
	"github.com/ferrite-lang/ferritec/internal/diag"
	"github.com/ferrite-lang/ferritec/internal/token"
)

// ParseModule parses one file's token stream into a *ast.Module (C10,
// §6): a leading script line and an optional module declaration, followed
// by a top-level declaration list, with recoverable-skip resynchronization
// on any declaration that cannot make structural progress. The returned
// Sink carries error/warning counts and, if WithOnMessage was supplied,
// has already published every diagnostic through that callback.
//
// Grounded on the functional-options redesign of distilled spec §6's
// `parseModule(tokens, fileName, arena?, onMessage?, errorOut?,
// warningOut?)`, modeled on a NewParser-style constructor taking options
// rather than a long positional-argument list.
func ParseModule(tokens []token.Token, fileName string, opts ...Option) (*ast.Module, *diag.Sink) {
	c := resolveConfig(opts)

	sink := diag.New(fileName, c.onMessage)
	p := newParser(tokens, sink, c)

	mod := &ast.Module{Base: baseAt(p.pos())}

	if p.cur.currentIs(token.ScriptLine) {
		t := p.cur.advance()
		mod.HasScriptLine = true
		mod.ScriptLine = t.Text
	}

	if p.startsModuleDeclaration() {
		mod.ModuleDecl = p.parseModuleDeclaration(p.takePendingDoc())
	}

	for !p.cur.atEOF() {
		before := p.cur.idx

		if p.startsModuleDeclaration() {
			t := p.cur.current()
			p.sink.Error(t.Line, t.Column, "module declaration must be the first declaration in the file")
		}

		decl := p.parseDeclaration()
		if _, isMisplacedModule := decl.(*ast.ModuleDeclWrapper); !isMisplacedModule {
			mod.Declarations = append(mod.Declarations, decl)
		}

		if p.cur.idx == before {
			p.cur.advance()
		}
	}

	return mod, sink
}

// startsModuleDeclaration reports whether the upcoming tokens are `module
// a.b.c;` or `deprecated(...) module a.b.c;`.
func (p *Parser) startsModuleDeclaration() bool {
	if p.cur.currentIs(token.KwModule) {
		return true
	}

	if p.cur.currentIs(token.KwDeprecated) && p.cur.peekIs(1, token.LParen) {
		b := p.cur.setBookmark()
		defer p.cur.goToBookmark(b)

		p.cur.advance()

		next, ok := p.cur.peekPastParens()

		return ok && next.Kind == token.KwModule
	}

	return false
}

// parseModuleDeclaration parses `deprecated(msg)? module a.b.c ;`.
func (p *Parser) parseModuleDeclaration(doc string) *ast.ModuleDeclaration {
	pos := p.pos()

	md := &ast.ModuleDeclaration{Base: baseAt(pos), Commented: ast.Commented{Comment: doc}}

	if p.cur.currentIs(token.KwDeprecated) {
		md.Deprecated = true
		p.cur.advance()
		p.cur.expect(token.LParen)

		if !p.cur.currentIs(token.RParen) {
			md.DeprecationMessage = p.parseAssignExpression()
		}

		p.cur.expect(token.RParen)
	}

	p.cur.expect(token.KwModule)
	md.ModuleName = p.parseDottedPath()
	p.cur.expect(token.Semicolon)

	return md
}

// Source is one file handed to ParseFiles: its token stream and the file
// name diagnostics should be attributed to.
type Source struct {
	FileName string
	Tokens   []token.Token
}

// ParseFiles parses every Source concurrently, one independent Parser
// instance (its own token vector, arena, and diagnostic sink) per
// goroutine, fanned out across a bounded worker pool built on
// golang.org/x/sync/errgroup and honoring ctx cancellation (§4.10, §5).
// No Parser or arena.Arena is ever shared across goroutines, preserving
// the single-threaded-per-instance contract §5 requires of a Parser.
//
// The returned slice is aligned with files by index regardless of
// completion order; a per-file error from opts (there are none today,
// since ParseModule never returns an error) would abort the remaining
// group via ctx, but since ParseModule cannot itself fail, every slot is
// always populated unless ctx was already cancelled before a goroutine
// started.
func ParseFiles(ctx context.Context, files []Source, opts ...Option) ([]*ast.Module, []*diag.Sink, error) {
	mods := make([]*ast.Module, len(files))
	sinks := make([]*diag.Sink, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i, f := range files {
		i, f := i, f

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			fileOpts := append(append([]Option(nil), opts...), WithArena(arena.New()))
			mod, sink := ParseModule(f.Tokens, f.FileName, fileOpts...)
			mods[i] = mod
			sinks[i] = sink

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	return mods, sinks, nil
}
