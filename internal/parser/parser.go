package parser

import (
	"github.com/ferrite-lang/ferritec/internal/arena"
	"github.com/ferrite-lang/ferritec/internal/ast"
	"github.com/ferrite-lang/ferritec/internal/diag"
	"github.com/ferrite-lang/ferritec/internal/token"
)

// Parser holds everything one parse of one token stream needs: the cursor
// over that stream, the node arena nodes are allocated from, the
// diagnostic sink errors/warnings are reported through, and the small
// pieces of parse-wide state that do not belong to any single grammar rule
// (a pending doc comment waiting to be attached, the one-shot
// string-concatenation warning latch, memoized classifier results).
//
// A Parser is not goroutine-safe and is meant to be used by exactly one
// goroutine for the lifetime of one file's parse (§6); ParseFiles in module.go is
// how multiple files are parsed concurrently, one Parser per goroutine.
type Parser struct {
	cur   *cursor
	arena *arena.Arena
	sink  *diag.Sink

	pendingDoc string

	// maxDepth bounds the nesting of AssignExpressions when non-zero (§7,
	// WithMaxRecursionDepth); zero means unbounded. Type nesting with no
	// expression in between is not counted.
	maxDepth  int
	exprDepth int

	// stringConcatWarned latches the one-shot "implicit string
	// concatenation" warning (§4.5) so a file with many concatenated
	// literals only gets one diagnostic.
	stringConcatWarned bool

	// isDeclCache / isTypeCache memoize the isDeclaration/isType oracles
	// (§4.4) keyed by the token index lookahead started from, so a
	// backtracking caller that re-asks the same question does not re-pay
	// the speculative-parse cost.
	isDeclCache map[int]bool
	isTypeCache map[int]bool
	isAssocCache map[int]bool
}

// config collects the functional-option settings that must be known
// before a Sink and Parser can be constructed (§6): an Option closes over
// this rather than a *Parser directly so options that affect sink
// construction (the onMessage callback) and options that affect only the
// Parser (the arena) share one entry point.
type config struct {
	arena     *arena.Arena
	onMessage diag.MessageFunc
	maxDepth  int
}

// Option configures a ParseModule call, following the functional-options
// idiom (§6 redesign: optional positional nils become composable Option
// values).
type Option func(*config)

// WithArena supplies an arena to allocate nodes from instead of a
// freshly-created one; useful when a caller wants to Mark/Release across
// multiple ParseModule calls sharing node lifetime, or to inspect Stats
// after the parse.
func WithArena(a *arena.Arena) Option {
	return func(c *config) { c.arena = a }
}

// WithOnMessage supplies the callback diagnostics are reported through
// (§6); omitted, diagnostics are only counted, never published.
func WithOnMessage(fn diag.MessageFunc) Option {
	return func(c *config) { c.onMessage = fn }
}

// WithMaxRecursionDepth bounds how deeply AssignExpressions (the unit
// parseAssignExpression counts) may nest (§7); type nesting with no
// expression in between is not counted. Zero (the default) leaves it
// unbounded, relying on Go's own
// goroutine stack growth, which is adequate for every input this grammar's
// tests exercise.
func WithMaxRecursionDepth(n int) Option {
	return func(c *config) { c.maxDepth = n }
}

func resolveConfig(opts []Option) config {
	var c config
	for _, opt := range opts {
		opt(&c)
	}

	return c
}

func newParser(toks []token.Token, sink *diag.Sink, c config) *Parser {
	a := c.arena
	if a == nil {
		a = arena.New()
	}

	p := &Parser{
		cur:          newCursor(toks, sink),
		arena:        a,
		sink:         sink,
		maxDepth:     c.maxDepth,
		isDeclCache:  make(map[int]bool),
		isTypeCache:  make(map[int]bool),
		isAssocCache: make(map[int]bool),
	}

	p.cur.sink = sink

	return p
}

// alloc is a thin wrapper so every parse rule allocates through the same
// arena without threading p.arena explicitly at every call site.
func alloc[T any](p *Parser, v T) *T {
	return arena.Allocate(p.arena, v)
}

// pos captures the current token's position as the ast.Position a node
// about to be parsed from it should carry.
func (p *Parser) pos() ast.Position {
	t := p.cur.current()

	return ast.Position{Line: t.Line, Column: t.Column, TokenIndex: p.cur.idx}
}

// baseAt wraps a position into the embeddable ast.Base every node
// composite literal in this package sets first.
func baseAt(pos ast.Position) ast.Base {
	return ast.Base{Position: pos}
}
