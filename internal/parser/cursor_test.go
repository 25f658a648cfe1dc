package parser

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ferrite-lang/ferritec/internal/diag"
	"github.com/ferrite-lang/ferritec/internal/token"
)

func toks(ks ...token.Kind) []token.Token {
	out := make([]token.Token, len(ks))
	for i, k := range ks {
		out[i] = token.Token{Kind: k}
	}

	return out
}

func TestCursorAdvanceNeverPassesEOF(t *testing.T) {
	c := newCursor(nil, diag.New("t.fe", nil))

	require.True(t, c.atEOF())

	c.advance()
	c.advance()

	require.True(t, c.atEOF())
}

func TestCursorPeekClampsAtEOF(t *testing.T) {
	c := newCursor(toks(token.KwModule, token.Identifier), diag.New("t.fe", nil))

	require.Equal(t, token.Identifier, c.peek(1).Kind)
	require.Equal(t, token.EOF, c.peek(50).Kind)
}

func TestCursorBookmarkRestoresPosition(t *testing.T) {
	c := newCursor(toks(token.KwModule, token.Identifier, token.Semicolon), diag.New("t.fe", nil))

	b := c.setBookmark()
	c.advance()
	c.advance()
	c.goToBookmark(b)

	require.Equal(t, token.KwModule, c.current().Kind)
	require.False(t, c.sink.Suppressed())
}

func TestCursorBookmarkAbandonKeepsPosition(t *testing.T) {
	c := newCursor(toks(token.KwModule, token.Identifier), diag.New("t.fe", nil))

	b := c.setBookmark()
	c.advance()
	c.abandonBookmark(b)

	require.Equal(t, token.Identifier, c.current().Kind)
	require.False(t, c.sink.Suppressed())
}

func TestCursorNestedBookmarks(t *testing.T) {
	c := newCursor(toks(token.KwModule, token.Identifier, token.Semicolon), diag.New("t.fe", nil))

	outer := c.setBookmark()
	c.advance()

	inner := c.setBookmark()
	c.advance()
	c.goToBookmark(inner)

	require.True(t, c.sink.Suppressed())

	c.goToBookmark(outer)

	require.False(t, c.sink.Suppressed())
	require.Equal(t, token.KwModule, c.current().Kind)
}

func TestCursorExpectReportsErrorOnMismatch(t *testing.T) {
	var msgs []string
	sink := diag.New("t.fe", func(f string, l, col int, m string, isErr bool) {
		msgs = append(msgs, m)
	})

	c := newCursor(toks(token.Identifier), sink)

	_, ok := c.expect(token.KwModule)

	require.False(t, ok)
	require.Len(t, msgs, 1)
}

func TestCursorExpectAdvancesPastMismatchedToken(t *testing.T) {
	c := newCursor(toks(token.Identifier, token.Semicolon), diag.New("t.fe", nil))

	_, ok := c.expect(token.KwModule)

	require.False(t, ok)
	require.Equal(t, token.Semicolon, c.current().Kind)
}

func TestCursorExpectStaysOnRecoveryAnchor(t *testing.T) {
	for _, anchor := range []token.Kind{token.Semicolon, token.RParen, token.RBracket, token.RBrace} {
		c := newCursor(toks(anchor), diag.New("t.fe", nil))

		_, ok := c.expect(token.KwModule)

		require.False(t, ok)
		require.Equal(t, anchor, c.current().Kind)
	}
}

func TestCursorPeekPastParensReturnsFollowingTokenWithoutMoving(t *testing.T) {
	c := newCursor(toks(token.LParen, token.Identifier, token.RParen, token.KwModule), diag.New("t.fe", nil))

	next, ok := c.peekPastParens()

	require.True(t, ok)
	require.Equal(t, token.KwModule, next.Kind)
	require.Equal(t, token.LParen, c.current().Kind)
}

func TestCursorPeekPastBracketsHandlesNesting(t *testing.T) {
	c := newCursor(toks(token.LBracket, token.LBracket, token.RBracket, token.RBracket, token.Semicolon), diag.New("t.fe", nil))

	next, ok := c.peekPastBrackets()

	require.True(t, ok)
	require.Equal(t, token.Semicolon, next.Kind)
	require.Equal(t, token.LBracket, c.current().Kind)
}

func TestCursorPeekPastParensFailsWhenNotAtOpen(t *testing.T) {
	c := newCursor(toks(token.Identifier), diag.New("t.fe", nil))

	_, ok := c.peekPastParens()

	require.False(t, ok)
}

func TestCursorSkipBracesBalancesNesting(t *testing.T) {
	c := newCursor(toks(token.LBrace, token.LBrace, token.RBrace, token.RBrace, token.Semicolon), diag.New("t.fe", nil))

	ok := c.skipBraces()

	require.True(t, ok)
	require.Equal(t, token.Semicolon, c.current().Kind)
}

func TestCursorSkipToSemicolonOrBraceStopsAtBrace(t *testing.T) {
	c := newCursor(toks(token.Identifier, token.LBrace, token.Identifier, token.RBrace, token.Semicolon), diag.New("t.fe", nil))

	c.skipToSemicolonOrBrace()

	require.Equal(t, token.Semicolon, c.current().Kind)
}

func TestCursorStartsWith(t *testing.T) {
	c := newCursor(toks(token.KwStatic, token.KwIf, token.LParen), diag.New("t.fe", nil))

	require.True(t, c.startsWith(token.KwStatic, token.KwIf))
	require.False(t, c.startsWith(token.KwStatic, token.KwFor))
}
