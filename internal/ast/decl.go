package ast

// AttributeDeclaration is a leading attribute run that terminates as its
// own declaration when followed by `:` (applying to every following
// declaration in the enclosing scope) rather than prefixing a single
// declaration.
type AttributeDeclaration struct {
	Base
	Commented

	Attrs []string
}

func (*AttributeDeclaration) stmtNode() {}
func (*AttributeDeclaration) declNode() {}

// ImportBinding is one `name` or `alias = name` entry of an ImportDeclaration
// selective-import list.
type ImportBinding struct {
	Alias string // empty when not renamed
	Name  string
}

// ImportDeclaration is `import a.b.c : x, y = z ;` (the selective-import
// tail is optional).
type ImportDeclaration struct {
	Base
	Commented

	ModuleAlias string // empty unless `import alias = a.b.c;`
	ModulePath  []string
	Selective   []ImportBinding
}

func (*ImportDeclaration) stmtNode() {}
func (*ImportDeclaration) declNode() {}

// AliasDeclaration covers both alias forms: new-style (`alias name =
// Type|Expr ;` or `alias name(Params) = Type ;`) and old-style (`alias
// storage* Type name, ... ;`). NewStyle discriminates which shape was
// parsed.
type AliasDeclaration struct {
	Base
	Commented

	Attrs    []string
	NewStyle bool

	// New-style fields.
	Name             string
	TemplateParams   []Param // non-nil only for `alias name(Params) = ...`
	AliasedType      Type    // set when the right-hand side parsed as a type
	AliasedExpr      Expression // set when the right-hand side parsed as an expression

	// Old-style fields.
	Storage []string
	Type    Type
	Names   []string

	// LegacyFunctionForm records that a deprecated
	// `alias Type func() @attr;` shape was tolerated by skipping to `;`
	// rather than structurally parsed (§4.7, §Open Questions).
	LegacyFunctionForm bool
	LegacyRaw          string
}

func (*AliasDeclaration) stmtNode() {}
func (*AliasDeclaration) declNode() {}

// AliasThisDeclaration is `alias identifier this ;`.
type AliasThisDeclaration struct {
	Base
	Commented

	Identifier string
}

func (*AliasThisDeclaration) stmtNode() {}
func (*AliasThisDeclaration) declNode() {}

// AggregateKind discriminates the four aggregate declaration shapes, which
// otherwise share every field.
type AggregateKind int

const (
	AggregateClass AggregateKind = iota
	AggregateStruct
	AggregateUnion
	AggregateInterface
)

// AggregateDeclaration is `class|struct|union|interface Name TemplateParams?
// : Bases? { Members }`.
type AggregateDeclaration struct {
	Base
	Commented

	Attrs          []string
	Kind           AggregateKind
	Name           string
	TemplateParams []Param
	Bases          []Type
	Members        []Declaration
	BodyOmitted    bool // true for a forward-declaration `;` body
}

func (*AggregateDeclaration) stmtNode() {}
func (*AggregateDeclaration) declNode() {}

// ConstructorDeclaration is `this ( Params ) Contracts? Body`, optionally
// templated (detected by a second `(` peek after the parameter list,
// §4.7).
type ConstructorDeclaration struct {
	Base
	Commented

	Attrs          []string
	TemplateParams []Param // non-nil for a templated constructor
	Params         []Param
	Contracts      FunctionContracts
	Body           *BlockStatement
	HadBody        bool
}

func (*ConstructorDeclaration) stmtNode() {}
func (*ConstructorDeclaration) declNode() {}

// PostblitDeclaration is `this ( this ) Body`, a distinct node from
// ConstructorDeclaration (§4.7, §GLOSSARY).
type PostblitDeclaration struct {
	Base
	Commented

	Attrs   []string
	Body    *BlockStatement
	HadBody bool
}

func (*PostblitDeclaration) stmtNode() {}
func (*PostblitDeclaration) declNode() {}

// DestructorDeclaration is `~ this ( ) Body`.
type DestructorDeclaration struct {
	Base
	Commented

	Attrs   []string
	Body    *BlockStatement
	HadBody bool
}

func (*DestructorDeclaration) stmtNode() {}
func (*DestructorDeclaration) declNode() {}

// InvariantDeclaration is `invariant ( )? Body` (an aggregate invariant).
type InvariantDeclaration struct {
	Base
	Commented

	Body *BlockStatement
}

func (*InvariantDeclaration) stmtNode() {}
func (*InvariantDeclaration) declNode() {}

// UnittestDeclaration is `unittest Body`.
type UnittestDeclaration struct {
	Base
	Commented

	Body *BlockStatement
}

func (*UnittestDeclaration) stmtNode() {}
func (*UnittestDeclaration) declNode() {}

// EnumMember is one `name = value?` entry, or — for an eponymous template
// enum — unused (Name/Value on EponymousTemplate instead).
type EnumMember struct {
	Comment string
	Name    string
	Value   Expression // nil when defaulted
}

// EnumDeclaration covers the anonymous, named, and value-typed enum shapes.
// Anonymous is true when no name followed `enum`; BaseType is non-nil when
// `: Type` appeared after the name/before the member list.
type EnumDeclaration struct {
	Base
	Commented

	Attrs     []string
	Anonymous bool
	Name      string // empty when Anonymous
	BaseType  Type
	Members   []EnumMember
}

func (*EnumDeclaration) stmtNode() {}
func (*EnumDeclaration) declNode() {}

// EponymousTemplateDeclaration is `enum name ( TemplateParams ) = expr ;`
// (§GLOSSARY): a template whose single member is named after the template
// itself.
type EponymousTemplateDeclaration struct {
	Base
	Commented

	Attrs          []string
	Name           string
	TemplateParams []Param
	Value          Expression
}

func (*EponymousTemplateDeclaration) stmtNode() {}
func (*EponymousTemplateDeclaration) declNode() {}

// VariableDeclarator is one `name arraySuffix* = init?` entry of a
// VariableDeclaration's comma-separated identifier list.
type VariableDeclarator struct {
	Name    string
	Init    Expression // nil when absent
}

// VariableDeclaration is `attrs* storage* Type name = init, ... ;`.
type VariableDeclaration struct {
	Base
	Commented

	Attrs       []string
	Storage     []string
	Type        Type
	Declarators []VariableDeclarator
}

func (*VariableDeclaration) stmtNode() {}
func (*VariableDeclaration) declNode() {}

// FunctionContracts holds the optional `in`/`out`/body triad of a function
// declaration (§4.7): old-style `in { } out (result) { } body { }`, or the
// equivalent new-style `in { } out (result) { } do { }`. HadBody records
// whether any body/do block was present at all, independent of whether its
// statements were retained (memory-minimization policy, §4.7 DESIGN.md).
type FunctionContracts struct {
	HasIn    bool
	In       *BlockStatement // nil under memory-minimization even when HasIn
	HasOut   bool
	OutIdent string
	Out      *BlockStatement
	UsesDo   bool // true for the new-style `do` keyword, false for legacy `body`
}

// FunctionDeclaration is `attrs* storage* ReturnType name ( Params )
// MemberAttrs* Contracts? Body`.
type FunctionDeclaration struct {
	Base
	Commented

	Attrs          []string
	Storage        []string
	ReturnType     Type
	Name           string
	TemplateParams []Param // non-nil for a templated function
	Params         []Param
	MemberAttrs    []string // const, pure, nothrow, @nogc, override, ...
	Contracts      FunctionContracts
	Body           *BlockStatement // nil when the body was dropped or absent
	HadBody        bool
}

func (*FunctionDeclaration) stmtNode() {}
func (*FunctionDeclaration) declNode() {}

// StaticCtorDeclaration is `static this ( ) Body`.
type StaticCtorDeclaration struct {
	Base
	Commented

	Shared  bool // true for `shared static this()`
	Body    *BlockStatement
	HadBody bool
}

func (*StaticCtorDeclaration) stmtNode() {}
func (*StaticCtorDeclaration) declNode() {}

// StaticDtorDeclaration is `static ~ this ( ) Body`.
type StaticDtorDeclaration struct {
	Base
	Commented

	Shared  bool // true for `shared static ~this()`
	Body    *BlockStatement
	HadBody bool
}

func (*StaticDtorDeclaration) stmtNode() {}
func (*StaticDtorDeclaration) declNode() {}

// MixinDeclaration is `mixin ( expr ) ;` or `mixin TemplateName!(Args)
// Ident? ;` in declaration position.
type MixinDeclaration struct {
	Base
	Commented

	Expr       Expression // set for the `mixin(expr);` string-mixin form
	TemplateName string   // set for the `mixin Name!(Args) ident;` form
	TemplateArgs []Node
	Identifier string

	// TrivialDeclarations holds the declarations re-parsed from a
	// q{ ... } token-string mixin argument (§4.7 "template mixin
	// expressions").
	TrivialDeclarations []Declaration
}

func (*MixinDeclaration) stmtNode() {}
func (*MixinDeclaration) declNode() {}

// MixinTemplateDeclaration is `mixin template name ( Params ) { Members }`.
type MixinTemplateDeclaration struct {
	Base
	Commented

	Attrs          []string
	Name           string
	TemplateParams []Param
	Members        []Declaration
}

func (*MixinTemplateDeclaration) stmtNode() {}
func (*MixinTemplateDeclaration) declNode() {}

// TemplateDeclaration is `template name ( Params ) { Members }`.
type TemplateDeclaration struct {
	Base
	Commented

	Attrs          []string
	Name           string
	TemplateParams []Param
	Constraint     Expression // non-nil for an `if (...)` template constraint
	Members        []Declaration
}

func (*TemplateDeclaration) stmtNode() {}
func (*TemplateDeclaration) declNode() {}

// PragmaDeclaration is `pragma ( identifier , args... ) Body|;`. Body is
// non-nil for the braced-scope form `pragma(...) { decls }`; otherwise the
// pragma applies to the single following declaration (Decl) or stands
// alone before a `;`.
type PragmaDeclaration struct {
	Base
	Commented

	Name string
	Args []Expression
	Body []Declaration // non-nil for the braced-scope form
	Decl Declaration   // non-nil when the pragma prefixes exactly one declaration

	// VersionArgValid records the outcome of validating a semver-shaped
	// argument when Name names a version pragma (§4.11); always true for
	// every other pragma name.
	VersionArgValid bool
}

func (*PragmaDeclaration) stmtNode() {}
func (*PragmaDeclaration) declNode() {}

// ConditionalDeclaration is `static if|version|debug ( Cond ) TrueDecls
// else FalseDecls?` in declaration position (§4.7, scenario 4 of §8): both
// branches are recorded as child declaration lists; neither is evaluated.
type ConditionalDeclaration struct {
	Base
	Commented

	Kind              string // "static if", "version", "debug"
	Cond              string // raw condition text/identifier; not evaluated
	TrueDeclarations  []Declaration
	FalseDeclarations []Declaration
}

func (*ConditionalDeclaration) stmtNode() {}
func (*ConditionalDeclaration) declNode() {}

// StaticAssertDeclaration is `static assert ( cond , msg? ) ;` in
// declaration position.
type StaticAssertDeclaration struct {
	Base
	Commented

	Cond    Expression
	Message Expression
}

func (*StaticAssertDeclaration) stmtNode() {}
func (*StaticAssertDeclaration) declNode() {}

// StaticForeachDeclaration is `static foreach (...) { Declarations }` in
// declaration position.
type StaticForeachDeclaration struct {
	Base
	Commented

	Reverse     bool
	Vars        []ForeachVar
	Low         Expression
	High        Expression
	Aggregate   Expression
	Declarations []Declaration
}

func (*StaticForeachDeclaration) stmtNode() {}
func (*StaticForeachDeclaration) declNode() {}
