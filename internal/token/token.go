// Package token defines the token shape the parser consumes (§6 of the token
// contract). Only this shape matters to the parser; the concrete lexer in
// internal/lexer is one producer of it, not the only possible one.
package token

import "fmt"

// Kind discriminates a token's lexical category.
type Kind int

const (
	EOF Kind = iota
	Illegal
	ScriptLine // #!/usr/bin/env ferrite on line 1

	Identifier

	// Literal categories.
	IntLiteral
	LongLiteral
	UIntLiteral
	ULongLiteral
	FloatLiteral
	DoubleLiteral
	RealLiteral
	IDoubleLiteral
	IFloatLiteral
	IRealLiteral
	CharacterLiteral
	StringLiteral
	WStringLiteral
	DStringLiteral

	// Keywords.
	KwModule
	KwImport
	KwAlias
	KwClass
	KwStruct
	KwUnion
	KwEnum
	KwInterface
	KwTemplate
	KwMixin
	KwThis
	KwSuper
	KwNew
	KwDelete
	KwCast
	KwTypeof
	KwTypeid
	KwIs
	KwIn
	KwOut
	KwDo
	KwBody
	KwInvariant
	KwUnittest
	KwStatic
	KwShared
	KwConst
	KwImmutable
	KwInout
	KwScope
	KwPure
	KwNothrow
	KwFinal
	KwOverride
	KwAbstract
	KwSynchronized
	KwDeprecated
	KwPragma
	KwVersion
	KwDebug
	KwAsm
	KwTraits
	KwVector
	KwFunction
	KwDelegate
	KwAuto
	KwForeach
	KwForeachReverse
	KwSwitch
	KwCase
	KwDefault
	KwBreak
	KwContinue
	KwReturn
	KwGoto
	KwWith
	KwTry
	KwCatch
	KwFinally
	KwThrow
	KwAssert
	KwIf
	KwElse
	KwWhile
	KwFor
	KwNull
	KwTrue
	KwFalse
	KwProtectionPublic
	KwProtectionPrivate
	KwProtectionProtected
	KwProtectionPackage
	KwRef
	KwLazy

	// Intrinsic / special tokens.
	IntrinsicDollar // $
	IntrinsicFile
	IntrinsicLine
	IntrinsicModule
	IntrinsicFunction
	IntrinsicPrettyFunction
	IntrinsicDate
	IntrinsicTime
	IntrinsicTimestamp
	IntrinsicVendor
	IntrinsicVersion
	IntrinsicEOF

	// Punctuation / operators.
	LParen
	RParen
	LBracket
	RBracket
	LBrace
	RBrace
	Semicolon
	Colon
	Comma
	Dot
	DotDot
	Ellipsis
	At

	Assign
	PlusAssign
	MinusAssign
	MulAssign
	DivAssign
	ModAssign
	AndAssign
	OrAssign
	XorAssign
	ShlAssign
	ShrAssign
	UShrAssign
	PowAssign
	CatAssign

	Question
	OrOr
	AndAnd
	Pipe
	Caret
	Amp

	Eq
	NotEq
	NotIs
	NotIn
	Lt
	LtEq
	Gt
	GtEq
	Unordered        // !<>=
	UnorderedOrEq    // !<>
	LtGt             // <>
	LtGtEq           // <>=
	NotGt            // !>
	NotGtEq          // !>=
	NotLt            // !<
	NotLtEq          // !<=

	Shl
	Shr
	UShr
	Plus
	Minus
	Tilde
	Star
	Slash
	Percent
	Pow

	Not
	PlusPlus
	MinusMinus
)

// Token is an immutable value produced by a lexer and consumed by the parser.
type Token struct {
	Kind Kind
	Text string

	// Doc is the leading doc-comment attached to this token, if any.
	Doc string
	// TrailingComment is a same-line comment following this token, if any.
	TrailingComment string

	Offset int
	Line   int
	Column int
}

func (t Token) String() string {
	if t.Text != "" {
		return fmt.Sprintf("%s(%q)@%d:%d", kindNames[t.Kind], t.Text, t.Line, t.Column)
	}

	return fmt.Sprintf("%s@%d:%d", kindNames[t.Kind], t.Line, t.Column)
}

// String returns the human-readable name of a Kind, used in diagnostics.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}

	return fmt.Sprintf("Kind(%d)", int(k))
}

var kindNames = map[Kind]string{
	EOF:        "EOF",
	Illegal:    "ILLEGAL",
	ScriptLine: "SCRIPT_LINE",

	Identifier: "IDENTIFIER",

	IntLiteral:       "INT_LITERAL",
	LongLiteral:      "LONG_LITERAL",
	UIntLiteral:      "UINT_LITERAL",
	ULongLiteral:     "ULONG_LITERAL",
	FloatLiteral:     "FLOAT_LITERAL",
	DoubleLiteral:    "DOUBLE_LITERAL",
	RealLiteral:      "REAL_LITERAL",
	IDoubleLiteral:   "IDOUBLE_LITERAL",
	IFloatLiteral:    "IFLOAT_LITERAL",
	IRealLiteral:     "IREAL_LITERAL",
	CharacterLiteral: "CHARACTER_LITERAL",
	StringLiteral:    "STRING_LITERAL",
	WStringLiteral:   "WSTRING_LITERAL",
	DStringLiteral:   "DSTRING_LITERAL",

	KwModule:              "module",
	KwImport:               "import",
	KwAlias:                "alias",
	KwClass:                "class",
	KwStruct:               "struct",
	KwUnion:                "union",
	KwEnum:                 "enum",
	KwInterface:            "interface",
	KwTemplate:             "template",
	KwMixin:                "mixin",
	KwThis:                 "this",
	KwSuper:                "super",
	KwNew:                  "new",
	KwDelete:               "delete",
	KwCast:                 "cast",
	KwTypeof:               "typeof",
	KwTypeid:               "typeid",
	KwIs:                   "is",
	KwIn:                   "in",
	KwOut:                  "out",
	KwDo:                   "do",
	KwBody:                 "body",
	KwInvariant:            "invariant",
	KwUnittest:             "unittest",
	KwStatic:               "static",
	KwShared:                "shared",
	KwConst:                "const",
	KwImmutable:            "immutable",
	KwInout:                "inout",
	KwScope:                "scope",
	KwPure:                 "pure",
	KwNothrow:              "nothrow",
	KwFinal:                "final",
	KwOverride:             "override",
	KwAbstract:             "abstract",
	KwSynchronized:         "synchronized",
	KwDeprecated:           "deprecated",
	KwPragma:               "pragma",
	KwVersion:              "version",
	KwDebug:                "debug",
	KwAsm:                  "asm",
	KwTraits:               "__traits",
	KwVector:               "__vector",
	KwFunction:             "function",
	KwDelegate:             "delegate",
	KwAuto:                 "auto",
	KwForeach:              "foreach",
	KwForeachReverse:       "foreach_reverse",
	KwSwitch:               "switch",
	KwCase:                 "case",
	KwDefault:              "default",
	KwBreak:                "break",
	KwContinue:             "continue",
	KwReturn:               "return",
	KwGoto:                 "goto",
	KwWith:                 "with",
	KwTry:                  "try",
	KwCatch:                "catch",
	KwFinally:              "finally",
	KwThrow:                "throw",
	KwAssert:               "assert",
	KwIf:                   "if",
	KwElse:                 "else",
	KwWhile:                "while",
	KwFor:                  "for",
	KwNull:                 "null",
	KwTrue:                 "true",
	KwFalse:                "false",
	KwProtectionPublic:     "public",
	KwProtectionPrivate:    "private",
	KwProtectionProtected:  "protected",
	KwProtectionPackage:    "package",
	KwRef:                  "ref",
	KwLazy:                 "lazy",

	IntrinsicDollar:         "$",
	IntrinsicFile:           "__FILE__",
	IntrinsicLine:           "__LINE__",
	IntrinsicModule:         "__MODULE__",
	IntrinsicFunction:       "__FUNCTION__",
	IntrinsicPrettyFunction: "__PRETTY_FUNCTION__",
	IntrinsicDate:           "__DATE__",
	IntrinsicTime:           "__TIME__",
	IntrinsicTimestamp:      "__TIMESTAMP__",
	IntrinsicVendor:         "__VENDOR__",
	IntrinsicVersion:        "__VERSION__",
	IntrinsicEOF:            "__EOF__",

	LParen:    "(",
	RParen:    ")",
	LBracket:  "[",
	RBracket:  "]",
	LBrace:    "{",
	RBrace:    "}",
	Semicolon: ";",
	Colon:     ":",
	Comma:     ",",
	Dot:       ".",
	DotDot:    "..",
	Ellipsis:  "...",
	At:        "@",

	Assign:     "=",
	PlusAssign: "+=",
	MinusAssign: "-=",
	MulAssign:  "*=",
	DivAssign:  "/=",
	ModAssign:  "%=",
	AndAssign:  "&=",
	OrAssign:   "|=",
	XorAssign:  "^=",
	ShlAssign:  "<<=",
	ShrAssign:  ">>=",
	UShrAssign: ">>>=",
	PowAssign:  "^^=",
	CatAssign:  "~=",

	Question: "?",
	OrOr:     "||",
	AndAnd:   "&&",
	Pipe:     "|",
	Caret:    "^",
	Amp:      "&",

	Eq:            "==",
	NotEq:         "!=",
	NotIs:         "!is",
	NotIn:         "!in",
	Lt:            "<",
	LtEq:          "<=",
	Gt:            ">",
	GtEq:          ">=",
	Unordered:     "!<>=",
	UnorderedOrEq: "!<>",
	LtGt:          "<>",
	LtGtEq:        "<>=",
	NotGt:         "!>",
	NotGtEq:       "!>=",
	NotLt:         "!<",
	NotLtEq:       "!<=",

	Shl:  "<<",
	Shr:  ">>",
	UShr: ">>>",
	Plus:  "+",
	Minus: "-",
	Tilde: "~",
	Star:  "*",
	Slash: "/",
	Percent: "%",
	Pow:     "^^",

	Not:        "!",
	PlusPlus:   "++",
	MinusMinus: "--",
}

// keywords maps identifier text to its keyword Kind, used by the lexer.
var keywords = func() map[string]Kind {
	m := make(map[string]Kind)
	for k, name := range kindNames {
		if k >= KwModule && k <= KwLazy {
			m[name] = k
		}
	}

	return m
}()

// Lookup returns the keyword Kind for text, or (Identifier, false) if text is
// not a reserved word.
func Lookup(text string) (Kind, bool) {
	k, ok := keywords[text]
	if !ok {
		return Identifier, false
	}

	return k, ok
}
