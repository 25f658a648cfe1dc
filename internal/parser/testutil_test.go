package parser

import (
	"testing"

	"github.com/ferrite-lang/ferritec/internal/diag"
	"github.com/ferrite-lang/ferritec/internal/lexer"
)

// newTestParser tokenizes src with the real lexer and builds a Parser over
// it, so higher-level parser tests exercise the same token shapes
// production code sees rather than hand-built token.Kind slices.
func newTestParser(t *testing.T, src string) (*Parser, *diag.Sink) {
	t.Helper()

	var msgs []string
	sink := diag.New("t.fe", func(f string, l, col int, m string, isErr bool) {
		msgs = append(msgs, m)
	})

	toks := lexer.Tokenize([]byte(src))
	p := newParser(toks, sink, config{})

	return p, sink
}
