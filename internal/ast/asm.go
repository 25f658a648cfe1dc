package ast

// AsmInstruction is one `mnemonic operand, ... ;` line inside an
// AsmStatement, optionally labeled.
type AsmInstruction struct {
	Label    string // empty when not labeled
	Mnemonic string
	Operands []AsmOperand
}

// AsmOperand is one node of the asm sub-parser's own operator-precedence
// tree (§4.9 C9): log-or, log-and, or, xor, and, eq, rel, shift, add, mul,
// bracketed indexing, unary, primary. Binary/unary shapes are represented
// uniformly; a primary operand has Op == "".
type AsmOperand struct {
	Op       string // "", or a binary/unary asm operator
	Left     *AsmOperand
	Right    *AsmOperand
	Unary    *AsmOperand

	// Primary forms (Op == "" && Unary == nil).
	Register   string     // a recognized register name
	TypePrefix string     // "near", "far", "word", "dword", "qword", "byte", "short", "int", "float", "double", "real"
	Identifier string
	IntValue   string
	FloatValue string
	Bracketed  *AsmOperand // non-nil for `[ operand ]` addressing
	Local      string      // the `__LOCAL_SIZE` / `$` family of asm-only tokens
}
