// Package parser implements the recoverable recursive-descent parser (C1,
// C4-C10): a token cursor with speculative bookmarking, classifier oracles
// that resolve grammar ambiguities via bounded lookahead, and the
// expression/statement/declaration/type/asm sub-parsers built on top of it.
//
// A Parser struct wraps a token slice and position, uses expectPeek-style
// assertions, and accumulates errors panic-free through a diagnostic sink
// rather than aborting on the first malformed token.
package parser

import (
	"github.com/ferrite-lang/ferritec/internal/diag"
	"github.com/ferrite-lang/ferritec/internal/token"
)

// cursor walks an immutable token slice, reporting through a diag.Sink and
// supporting nested speculative bookmarks (C1). A bookmark captures the
// cursor position and suppresses diagnostics until abandoned or restored;
// restoring rewinds the position and un-suppresses, abandoning just
// un-suppresses in place so a successful speculative parse keeps its
// advanced position.
type cursor struct {
	toks []token.Token
	idx  int
	sink *diag.Sink
}

func newCursor(toks []token.Token, sink *diag.Sink) *cursor {
	if len(toks) == 0 || toks[len(toks)-1].Kind != token.EOF {
		toks = append(toks, token.Token{Kind: token.EOF})
	}

	return &cursor{toks: toks, sink: sink}
}

func (c *cursor) current() token.Token {
	return c.toks[c.idx]
}

func (c *cursor) peek(n int) token.Token {
	i := c.idx + n
	if i >= len(c.toks) {
		return c.toks[len(c.toks)-1]
	}

	return c.toks[i]
}

func (c *cursor) atEOF() bool {
	return c.current().Kind == token.EOF
}

// advance consumes and returns the current token, never stepping past EOF.
func (c *cursor) advance() token.Token {
	t := c.current()
	if t.Kind != token.EOF {
		c.idx++
	}

	return t
}

func (c *cursor) currentIs(k token.Kind) bool { return c.current().Kind == k }

func (c *cursor) currentIsOneOf(ks ...token.Kind) bool {
	for _, k := range ks {
		if c.current().Kind == k {
			return true
		}
	}

	return false
}

func (c *cursor) peekIs(n int, k token.Kind) bool { return c.peek(n).Kind == k }

func (c *cursor) peekIsOneOf(n int, ks ...token.Kind) bool {
	p := c.peek(n).Kind
	for _, k := range ks {
		if p == k {
			return true
		}
	}

	return false
}

// startsWith reports whether the upcoming tokens match ks in order, without
// consuming anything.
func (c *cursor) startsWith(ks ...token.Kind) bool {
	for i, k := range ks {
		if c.peek(i).Kind != k {
			return false
		}
	}

	return true
}

// recoveryAnchors are the tokens expect leaves in place on a mismatch: a
// caller further up the call stack is expected to be looking for one of
// these to resynchronize, so stepping past it here would hide it from that
// caller instead of aiding recovery.
var recoveryAnchors = map[token.Kind]bool{
	token.Semicolon: true, token.RParen: true, token.RBracket: true, token.RBrace: true,
}

// expect consumes the current token if it matches k, else reports an error
// and returns the zero Token with ok == false. On a mismatch it advances one
// token to avoid infinite loops, unless the current token is a recovery
// anchor (`;`, `)`, `]`, `}`), in which case it stays put so the anchor
// remains visible to whichever enclosing recovery point is looking for it.
// Callers that can still make structural progress after a missing token
// should check ok rather than aborting outright (§4 "never loop forever"
// invariant).
func (c *cursor) expect(k token.Kind) (token.Token, bool) {
	if c.currentIs(k) {
		return c.advance(), true
	}

	t := c.current()
	c.sink.Error(t.Line, t.Column, "expected %s, found %s", k, t.Kind)

	if !recoveryAnchors[t.Kind] {
		c.advance()
	}

	return token.Token{}, false
}

// skipBalanced consumes tokens from open through its matching close,
// counting nesting, and returns false if EOF was reached first. It is used
// by every "give up and recover" path in C6/C7 that must resynchronize
// without structurally parsing the skipped material.
func (c *cursor) skipBalanced(open, close token.Kind) bool {
	depth := 0

	for !c.atEOF() {
		switch c.current().Kind {
		case open:
			depth++
		case close:
			depth--
			if depth <= 0 {
				c.advance()

				return true
			}
		}

		c.advance()
	}

	return false
}

func (c *cursor) skipParens() bool   { return c.skipBalanced(token.LParen, token.RParen) }
func (c *cursor) skipBraces() bool   { return c.skipBalanced(token.LBrace, token.RBrace) }
func (c *cursor) skipBrackets() bool { return c.skipBalanced(token.LBracket, token.RBracket) }

// peekPast returns the token immediately following a balanced open/close
// region starting at the current token, without moving the cursor (C1):
// the current token must be open, or the zero Token is returned with
// ok == false. Callers such as module.go's startsModuleDeclaration use this
// instead of hand-rolling a bookmark/skip/restore sequence at each call site.
func (c *cursor) peekPast(open, close token.Kind) (token.Token, bool) {
	if !c.currentIs(open) {
		return token.Token{}, false
	}

	b := c.setBookmark()
	defer c.goToBookmark(b)

	ok := c.skipBalanced(open, close)
	if !ok {
		return token.Token{}, false
	}

	return c.current(), true
}

// peekPastParens is peekPast for a `(...)` region.
func (c *cursor) peekPastParens() (token.Token, bool) { return c.peekPast(token.LParen, token.RParen) }

// peekPastBrackets is peekPast for a `[...]` region.
func (c *cursor) peekPastBrackets() (token.Token, bool) {
	return c.peekPast(token.LBracket, token.RBracket)
}

// skipToSemicolonOrBrace resynchronizes after an unrecoverable declaration
// error (§4.7 "recoverable skip"): it advances past the next top-level `;`
// or `{...}` block, stopping at EOF.
func (c *cursor) skipToSemicolonOrBrace() {
	for !c.atEOF() {
		switch c.current().Kind {
		case token.Semicolon:
			c.advance()

			return
		case token.LBrace:
			c.skipBraces()

			return
		}

		c.advance()
	}
}

// bookmark is an opaque cursor snapshot taken under a suppressed
// diagnostic scope (§4.3).
type bookmark struct {
	idx int
}

func (c *cursor) setBookmark() bookmark {
	c.sink.Suppress()

	return bookmark{idx: c.idx}
}

// goToBookmark rewinds to the bookmarked position and ends its suppression
// scope; used when the speculative attempt failed and the alternative path
// must be tried from the same starting point.
func (c *cursor) goToBookmark(b bookmark) {
	c.idx = b.idx
	c.sink.Unsuppress()
}

// abandonBookmark ends the suppression scope without rewinding; used when
// the speculative attempt succeeded and its advanced position should be
// kept.
func (c *cursor) abandonBookmark(_ bookmark) {
	c.sink.Unsuppress()
}

// overflowed reports whether the speculative-error cap has tripped (§4.3,
// §7): classifier oracles must bail out to their safe default rather than
// keep exploring once this is true.
func (c *cursor) overflowed() bool {
	return c.sink.Overflowed()
}
