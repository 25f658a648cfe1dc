// Package ast defines the closed set of AST node kinds the parser produces
// (§3 of the data model): expressions, statements, declarations, types,
// template machinery, asm constructs, and the root Module.
//
// Uses a Position/Span plus marker-interface layering
// (Node/Statement/Expression/Declaration/Type); the heavier per-node
// Clone/Equals/GetChildren/ReplaceChild optimization-pass machinery some
// AST packages carry is not needed here (see DESIGN.md).
package ast

// Position is the source location of a node's first significant token:
// line and column (both 1-based) plus the token's index in the token
// vector the parser was given.
type Position struct {
	Line       int
	Column     int
	TokenIndex int
}

// Node is the base interface every AST node satisfies.
type Node interface {
	Pos() Position
}

// Expression is satisfied by every expression node.
type Expression interface {
	Node
	exprNode()
}

// Statement is satisfied by every statement node (declarations are also
// statements, per the grammar: a declaration may appear wherever a
// statement can).
type Statement interface {
	Node
	stmtNode()
}

// Declaration is satisfied by every declaration node.
type Declaration interface {
	Statement
	declNode()
	SetSupplementalComment(string)
}

// Type is satisfied by every type node.
type Type interface {
	Node
	typeNode()
}

// Base embeds the common position field; every concrete node embeds it
// instead of repeating the field and Pos() method by hand.
type Base struct {
	Position Position
}

func (b Base) Pos() Position { return b.Position }

// Commented is embedded by declaration-level (and aggregate-member) nodes
// that carry doc-comment ownership (§3 invariant: a doc-comment string may
// be the Comment of at most one node, except SupplementalComment copies).
type Commented struct {
	// Comment is the doc-comment attached to the token that introduced this
	// declaration, consumed at most once.
	Comment string
	// SupplementalComment is a comment propagated from an enclosing
	// static-if/version/debug conditional into this declaration (§4.7).
	SupplementalComment string
}

// SetSupplementalComment implements Declaration for every declaration type,
// via promotion from its embedded Commented field.
func (c *Commented) SetSupplementalComment(s string) { c.SupplementalComment = s }

// Module is the root of the AST produced by one parse (C10).
type Module struct {
	Base

	// ScriptLine is the raw text of a leading "#!" line, if present.
	ScriptLine string
	HasScriptLine bool

	ModuleDecl   *ModuleDeclaration
	Declarations []Declaration
}

// ModuleDeclaration is the optional `module a.b.c;` (or
// `deprecated(...) module a.b.c;`) clause.
type ModuleDeclaration struct {
	Base
	Commented

	Deprecated       bool
	DeprecationMessage Expression // non-nil only when Deprecated
	ModuleName       []string
}

// ModuleDeclWrapper lets a misplaced `module` clause satisfy Declaration
// (ModuleDeclaration itself intentionally does not, since it is only ever
// legal as Module.ModuleDecl, never inside Module.Declarations).
type ModuleDeclWrapper struct {
	*ModuleDeclaration
}

func (*ModuleDeclWrapper) stmtNode() {}
func (*ModuleDeclWrapper) declNode() {}
