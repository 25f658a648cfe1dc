package parser

import (
	"github.com/ferrite-lang/ferritec/internal/ast"
	"github.com/ferrite-lang/ferritec/internal/token"
)

// asmRegisters names every register the sub-parser recognizes as a
// primary operand rather than a plain identifier (§4.9 C9). Segment,
// general-purpose (8/16/32/64-bit), and floating-point register families
// are all included since the grammar does not distinguish them
// structurally — only by name.
var asmRegisters = map[string]bool{
	"al": true, "ah": true, "ax": true, "eax": true, "rax": true,
	"bl": true, "bh": true, "bx": true, "ebx": true, "rbx": true,
	"cl": true, "ch": true, "cx": true, "ecx": true, "rcx": true,
	"dl": true, "dh": true, "dx": true, "edx": true, "rdx": true,
	"si": true, "esi": true, "rsi": true,
	"di": true, "edi": true, "rdi": true,
	"sp": true, "esp": true, "rsp": true,
	"bp": true, "ebp": true, "rbp": true,
	"cs": true, "ds": true, "es": true, "fs": true, "gs": true, "ss": true,
	"st": true, "st0": true, "st1": true, "st2": true, "st3": true,
	"st4": true, "st5": true, "st6": true, "st7": true,
	"mm0": true, "mm1": true, "mm2": true, "mm3": true,
	"mm4": true, "mm5": true, "mm6": true, "mm7": true,
	"xmm0": true, "xmm1": true, "xmm2": true, "xmm3": true,
	"xmm4": true, "xmm5": true, "xmm6": true, "xmm7": true,
}

// asmTypePrefixes names the pointer-size/type prefixes recognized ahead
// of an AsmOperand.Bracketed addressing form (§4.9, ast/asm.go's
// TypePrefix doc comment).
var asmTypePrefixes = map[string]bool{
	"near": true, "far": true, "word": true, "dword": true, "qword": true,
	"byte": true, "short": true, "int": true, "float": true, "double": true, "real": true,
}

// parseAsmStatement parses `asm { AsmInstruction* }` (§4.9 C9): each
// instruction is a mnemonic followed by a comma-separated operand list,
// terminated by `;`, optionally preceded by a label.
func (p *Parser) parseAsmStatement() *ast.AsmStatement {
	pos := p.pos()
	p.cur.advance() // `asm`
	p.cur.expect(token.LBrace)

	var instrs []ast.AsmInstruction

	for !p.cur.currentIs(token.RBrace) && !p.cur.atEOF() {
		before := p.cur.idx
		instrs = append(instrs, p.parseAsmInstruction())

		if p.cur.idx == before {
			p.cur.advance()
		}
	}

	p.cur.expect(token.RBrace)

	return &ast.AsmStatement{Base: baseAt(pos), Instructions: instrs}
}

func (p *Parser) parseAsmInstruction() ast.AsmInstruction {
	var instr ast.AsmInstruction

	if p.cur.currentIs(token.Identifier) && p.cur.peekIs(1, token.Colon) {
		instr.Label = p.cur.advance().Text
		p.cur.advance() // `:`
	}

	mnemonic, ok := p.cur.expect(token.Identifier)
	if !ok {
		p.cur.skipToSemicolonOrBrace()

		return instr
	}

	instr.Mnemonic = mnemonic.Text

	if !p.cur.currentIs(token.Semicolon) {
		instr.Operands = append(instr.Operands, p.parseAsmOperand())

		for p.cur.currentIs(token.Comma) {
			p.cur.advance()
			instr.Operands = append(instr.Operands, p.parseAsmOperand())
		}
	}

	p.cur.expect(token.Semicolon)

	return instr
}

// parseAsmOperand is the entry point of the asm sub-parser's own
// precedence cascade, distinct from the general expression grammar
// (§4.9): log-or -> log-and -> or -> xor -> and -> eq -> rel -> shift ->
// add -> mul -> unary -> primary, with bracketed indexing folded into
// primary.
func (p *Parser) parseAsmOperand() ast.AsmOperand {
	return p.parseAsmLogOr()
}

func (p *Parser) parseAsmLogOr() ast.AsmOperand {
	left := p.parseAsmLogAnd()

	for p.cur.currentIs(token.OrOr) {
		p.cur.advance()
		right := p.parseAsmLogAnd()
		lhs := left
		left = ast.AsmOperand{Op: "||", Left: &lhs, Right: &right}
	}

	return left
}

func (p *Parser) parseAsmLogAnd() ast.AsmOperand {
	left := p.parseAsmOr()

	for p.cur.currentIs(token.AndAnd) {
		p.cur.advance()
		right := p.parseAsmOr()
		lhs := left
		left = ast.AsmOperand{Op: "&&", Left: &lhs, Right: &right}
	}

	return left
}

func (p *Parser) parseAsmOr() ast.AsmOperand {
	left := p.parseAsmXor()

	for p.cur.currentIs(token.Pipe) {
		p.cur.advance()
		right := p.parseAsmXor()
		lhs := left
		left = ast.AsmOperand{Op: "|", Left: &lhs, Right: &right}
	}

	return left
}

func (p *Parser) parseAsmXor() ast.AsmOperand {
	left := p.parseAsmAnd()

	for p.cur.currentIs(token.Caret) {
		p.cur.advance()
		right := p.parseAsmAnd()
		lhs := left
		left = ast.AsmOperand{Op: "^", Left: &lhs, Right: &right}
	}

	return left
}

func (p *Parser) parseAsmAnd() ast.AsmOperand {
	left := p.parseAsmEq()

	for p.cur.currentIs(token.Amp) {
		p.cur.advance()
		right := p.parseAsmEq()
		lhs := left
		left = ast.AsmOperand{Op: "&", Left: &lhs, Right: &right}
	}

	return left
}

func (p *Parser) parseAsmEq() ast.AsmOperand {
	left := p.parseAsmRel()

	for p.cur.currentIsOneOf(token.Eq, token.NotEq) {
		op := p.cur.advance()
		right := p.parseAsmRel()
		lhs := left
		left = ast.AsmOperand{Op: op.Text, Left: &lhs, Right: &right}
	}

	return left
}

func (p *Parser) parseAsmRel() ast.AsmOperand {
	left := p.parseAsmShift()

	for p.cur.currentIsOneOf(token.Lt, token.LtEq, token.Gt, token.GtEq) {
		op := p.cur.advance()
		right := p.parseAsmShift()
		lhs := left
		left = ast.AsmOperand{Op: op.Text, Left: &lhs, Right: &right}
	}

	return left
}

func (p *Parser) parseAsmShift() ast.AsmOperand {
	left := p.parseAsmAdd()

	for p.cur.currentIsOneOf(token.Shl, token.Shr, token.UShr) {
		op := p.cur.advance()
		right := p.parseAsmAdd()
		lhs := left
		left = ast.AsmOperand{Op: op.Text, Left: &lhs, Right: &right}
	}

	return left
}

func (p *Parser) parseAsmAdd() ast.AsmOperand {
	left := p.parseAsmMul()

	for p.cur.currentIsOneOf(token.Plus, token.Minus) {
		op := p.cur.advance()
		right := p.parseAsmMul()
		lhs := left
		left = ast.AsmOperand{Op: op.Text, Left: &lhs, Right: &right}
	}

	return left
}

func (p *Parser) parseAsmMul() ast.AsmOperand {
	left := p.parseAsmUnary()

	for p.cur.currentIsOneOf(token.Star, token.Slash, token.Percent) {
		op := p.cur.advance()
		right := p.parseAsmUnary()
		lhs := left
		left = ast.AsmOperand{Op: op.Text, Left: &lhs, Right: &right}
	}

	return left
}

func (p *Parser) parseAsmUnary() ast.AsmOperand {
	if p.cur.currentIsOneOf(token.Minus, token.Plus, token.Not, token.Tilde, token.Amp, token.Star) {
		op := p.cur.advance()
		inner := p.parseAsmUnary()

		return ast.AsmOperand{Op: op.Text, Unary: &inner}
	}

	return p.parseAsmPrimary()
}

// parseAsmPrimary covers register/identifier/literal operands, a
// type-prefixed bracketed addressing form (`dword [ebx+4]`), and a bare
// bracketed addressing form.
func (p *Parser) parseAsmPrimary() ast.AsmOperand {
	cur := p.cur.current()

	if cur.Kind == token.Identifier && asmTypePrefixes[cur.Text] {
		prefix := p.cur.advance().Text
		inner := p.parseAsmUnary()

		return ast.AsmOperand{TypePrefix: prefix, Bracketed: &inner}
	}

	if cur.Kind == token.LBracket {
		p.cur.advance()
		inner := p.parseAsmOperand()
		p.cur.expect(token.RBracket)

		return ast.AsmOperand{Bracketed: &inner}
	}

	if cur.Kind == token.IntrinsicDollar {
		p.cur.advance()

		return ast.AsmOperand{Local: "$"}
	}

	if cur.Kind == token.Identifier && cur.Text == "__LOCAL_SIZE" {
		p.cur.advance()

		return ast.AsmOperand{Local: cur.Text}
	}

	if cur.Kind == token.Identifier {
		p.cur.advance()

		if asmRegisters[cur.Text] {
			return ast.AsmOperand{Register: cur.Text}
		}

		return ast.AsmOperand{Identifier: cur.Text}
	}

	switch cur.Kind {
	case token.IntLiteral, token.LongLiteral, token.ULongLiteral, token.UIntLiteral:
		p.cur.advance()

		return ast.AsmOperand{IntValue: cur.Text}
	case token.FloatLiteral, token.RealLiteral, token.DoubleLiteral:
		p.cur.advance()

		return ast.AsmOperand{FloatValue: cur.Text}
	case token.LParen:
		p.cur.advance()
		inner := p.parseAsmOperand()
		p.cur.expect(token.RParen)

		return inner
	default:
		p.sink.Error(cur.Line, cur.Column, "expected an asm operand, found %s", cur.Kind)
		p.cur.advance()

		return ast.AsmOperand{}
	}
}
