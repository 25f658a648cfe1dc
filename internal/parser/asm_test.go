package parser

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ferrite-lang/ferritec/internal/ast"
)

func TestParseAsmStatementMultipleInstructions(t *testing.T) {
	p, _ := newTestParser(t, "asm { mov eax, ebx; nop; }")

	stmt := p.parseAsmStatement()
	require.Len(t, stmt.Instructions, 2)
	require.Equal(t, "mov", stmt.Instructions[0].Mnemonic)
	require.Equal(t, "nop", stmt.Instructions[1].Mnemonic)
}

func TestParseAsmInstructionWithLabel(t *testing.T) {
	p, _ := newTestParser(t, "asm { loop: dec ecx; }")

	stmt := p.parseAsmStatement()
	require.Len(t, stmt.Instructions, 1)
	require.Equal(t, "loop", stmt.Instructions[0].Label)
	require.Equal(t, "dec", stmt.Instructions[0].Mnemonic)
}

func TestParseAsmOperandRecognizesRegister(t *testing.T) {
	p, _ := newTestParser(t, "asm { mov eax, ebx; }")

	stmt := p.parseAsmStatement()
	ops := stmt.Instructions[0].Operands
	require.Len(t, ops, 2)
	require.Equal(t, "eax", ops[0].Register)
	require.Equal(t, "ebx", ops[1].Register)
}

func TestParseAsmOperandPlainIdentifierIsNotRegister(t *testing.T) {
	p, _ := newTestParser(t, "asm { mov eax, counter; }")

	stmt := p.parseAsmStatement()
	ops := stmt.Instructions[0].Operands
	require.Equal(t, "counter", ops[1].Identifier)
	require.Empty(t, ops[1].Register)
}

func TestParseAsmOperandBracketedAddressing(t *testing.T) {
	p, _ := newTestParser(t, "asm { mov eax, [ebx]; }")

	stmt := p.parseAsmStatement()
	op := stmt.Instructions[0].Operands[1]
	require.NotNil(t, op.Bracketed)
	require.Equal(t, "ebx", op.Bracketed.Register)
}

func TestParseAsmOperandTypePrefixedBracketedAddressing(t *testing.T) {
	p, _ := newTestParser(t, "asm { mov eax, dword [ebx]; }")

	stmt := p.parseAsmStatement()
	op := stmt.Instructions[0].Operands[1]
	require.Equal(t, "dword", op.TypePrefix)
	require.NotNil(t, op.Bracketed)
}

func TestParseAsmOperandAddPrecedence(t *testing.T) {
	p, _ := newTestParser(t, "asm { mov eax, ebx+4; }")

	stmt := p.parseAsmStatement()
	op := stmt.Instructions[0].Operands[1]
	require.Equal(t, "+", op.Op)
	require.NotNil(t, op.Left)
	require.NotNil(t, op.Right)
	require.Equal(t, "ebx", op.Left.Register)
	require.Equal(t, "4", op.Right.IntValue)
}

func TestParseAsmOperandDollarLocal(t *testing.T) {
	p, _ := newTestParser(t, "asm { jmp $; }")

	stmt := p.parseAsmStatement()
	op := stmt.Instructions[0].Operands[0]
	require.Equal(t, "$", op.Local)
}

func TestParseAsmOperandLocalSize(t *testing.T) {
	p, _ := newTestParser(t, "asm { mov eax, __LOCAL_SIZE; }")

	stmt := p.parseAsmStatement()
	op := stmt.Instructions[0].Operands[1]
	require.Equal(t, "__LOCAL_SIZE", op.Local)
}

func TestParseAsmOperandUnaryMinus(t *testing.T) {
	p, _ := newTestParser(t, "asm { mov eax, -4; }")

	stmt := p.parseAsmStatement()
	op := stmt.Instructions[0].Operands[1]
	require.Equal(t, "-", op.Op)
	require.NotNil(t, op.Unary)
	require.Equal(t, "4", op.Unary.IntValue)
}

func TestParseAsmOperandFloatLiteral(t *testing.T) {
	p, _ := newTestParser(t, "asm { fld 1.5; }")

	stmt := p.parseAsmStatement()
	op := stmt.Instructions[0].Operands[0]
	require.Equal(t, "1.5", op.FloatValue)
}

func TestParseAsmStatementInStatementDispatch(t *testing.T) {
	p, _ := newTestParser(t, "asm { nop; }")

	_, ok := p.parseStatement().(*ast.AsmStatement)
	require.True(t, ok)
}
