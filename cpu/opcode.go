package cpu

import (
	"fmt"
	"strings"
)

// CodeClass is the type of opcode class.
type CodeClass int

//go:generate go tool stringer -linecomment -type=CodeClass
const (
	OP_NOP     = CodeClass(0) // nop
	OP_SETFLG  = CodeClass(1) // setflg
	OP_JA      = CodeClass(2) // ja
	OP_STORE   = CodeClass(3) // store
	OP_LOAD    = CodeClass(4) // load
	OP_TRA     = CodeClass(5) // tra
	OP_LOADIMM = CodeClass(6) // loadimm
	OP_IM      = CodeClass(7) // im
)

// CodeAluOp is an ALU operation type, as found in the 4-bit op field.
type CodeAluOp int

//go:generate go tool stringer -linecomment -type=CodeAluOp
const (
	ALU_OP_PASS = CodeAluOp(4) // pass
	ALU_OP_ADD  = CodeAluOp(5) // add
	ALU_OP_SUB  = CodeAluOp(6) // sub
	ALU_OP_MUL  = CodeAluOp(7) // mul
)

// Implemented returns true if the ALU can execute the operation.
func (op CodeAluOp) Implemented() bool {
	return op >= ALU_OP_PASS && op <= ALU_OP_MUL
}

// CodeFlagOp is the 2-bit SETFLG update applied to one flag.
type CodeFlagOp int

const (
	FLAG_OP_CLEAR  = CodeFlagOp(0) // clear
	FLAG_OP_KEEP   = CodeFlagOp(1) // keep
	FLAG_OP_INVERT = CodeFlagOp(2) // invert
	FLAG_OP_SET    = CodeFlagOp(3) // set
)

// Apply returns the new state of a flag.
func (op CodeFlagOp) Apply(flag bool) bool {
	switch op & 3 {
	case FLAG_OP_CLEAR:
		return false
	case FLAG_OP_INVERT:
		return !flag
	case FLAG_OP_SET:
		return true
	}
	return flag
}

// CodeCond is the 3-bit JA jump condition.
type CodeCond int

const (
	COND_ODD    = CodeCond(0) // Jump if the ls flag is set.
	COND_ALWAYS = CodeCond(7) // Unconditional jump.
)

// Taken evaluates the jump condition against the gt, eq and ls flags.
//
// With flags = 4*gt + 2*eq + ls, code 7 always jumps, code 0 jumps when
// flags is odd, and every other code jumps when it equals flags.
func (cond CodeCond) Taken(flags Flags) bool {
	value := CodeCond(flags.Value())
	switch cond & 7 {
	case COND_ALWAYS:
		return true
	case COND_ODD:
		return value%2 == 1
	}
	return cond&7 == value
}

// Encoding field widths.
const (
	IMM_BITS     = 6 // IM immediate field.
	LOADIMM_BITS = 9 // LOADIMM immediate field.
	REG_BITS     = 3 // Thin register fields.
	COND_BITS    = 3 // JA condition field.
	FLAG_BITS    = 2 // SETFLG per-flag fields.
)

// Code is a single 16-bit instruction word.
type Code uint16

// codePattern selects a class when word&mask == match.
type codePattern struct {
	mask  uint16
	match uint16
	class CodeClass
}

// codePatterns are tested in order; the first match wins.
var codePatterns = [...]codePattern{
	{0xffff, 0x0000, OP_NOP},
	{0xff00, 0x0200, OP_SETFLG},
	{0xffe0, 0x0300, OP_JA},
	{0xffe0, 0x0320, OP_STORE},
	{0xffe0, 0x0340, OP_LOAD},
	{0xe000, 0x2000, OP_TRA},
	{0x8000, 0x8000, OP_LOADIMM},
	{0xc000, 0x4000, OP_IM},
}

// MakeCodeNop creates the halting all-zero instruction.
func MakeCodeNop() Code {
	return Code(0)
}

// MakeCodeSetflg creates a flag update instruction.
func MakeCodeSetflg(gt, eq, ls, ov CodeFlagOp) Code {
	return Code(0x0200 | (uint16(gt&3) << 6) | (uint16(eq&3) << 4) | (uint16(ls&3) << 2) | uint16(ov&3))
}

// MakeCodeJump creates a conditional jump to the address in a wide register.
func MakeCodeJump(cond CodeCond, target WideReg) Code {
	return Code(0x0300 | (uint16(cond&7) << 2) | uint16(target&3))
}

// MakeCodeStore creates a store of src to memory at the address in addr.
func MakeCodeStore(src ThinReg, addr WideReg) Code {
	return Code(0x0320 | (uint16(src&7) << 2) | uint16(addr&3))
}

// MakeCodeLoad creates a load of memory at the address in addr into dst.
func MakeCodeLoad(dst ThinReg, addr WideReg) Code {
	return Code(0x0340 | (uint16(dst&7) << 2) | uint16(addr&3))
}

// MakeCodeTra creates a register-register ALU instruction.
func MakeCodeTra(op CodeAluOp, out, b, a ThinReg) Code {
	return Code(0x2000 | (uint16(op&0xf) << 9) | (uint16(out&7) << 6) | (uint16(b&7) << 3) | uint16(a&7))
}

// MakeCodeIm creates a register-immediate ALU instruction.
func MakeCodeIm(op CodeAluOp, imm uint16, out, a ThinReg) Code {
	return Code((uint16(op&0xf) << 12) | ((imm & 0x3f) << 6) | (uint16(out&7) << 3) | uint16(a&7))
}

// MakeCodeLoadImm creates a load of a 9-bit immediate into out.
func MakeCodeLoadImm(imm uint16, out ThinReg) Code {
	return Code(0x8000 | ((imm & 0x1ff) << 6) | (uint16(out&7) << 3))
}

// Class returns the opcode class of the instruction word.
func (code Code) Class() (class CodeClass, ok bool) {
	word := uint16(code)
	for _, pattern := range codePatterns {
		if word&pattern.mask == pattern.match {
			return pattern.class, true
		}
	}

	return
}

// SetflgDecode decodes the four per-flag updates.
func (code Code) SetflgDecode() (gt, eq, ls, ov CodeFlagOp) {
	word := uint16(code)
	gt = CodeFlagOp((word >> 6) & 3)
	eq = CodeFlagOp((word >> 4) & 3)
	ls = CodeFlagOp((word >> 2) & 3)
	ov = CodeFlagOp((word >> 0) & 3)
	return
}

// JumpDecode decodes the jump condition and target register.
func (code Code) JumpDecode() (cond CodeCond, target WideReg) {
	word := uint16(code)
	cond = CodeCond((word >> 2) & 7)
	target = WideReg(word & 3)
	return
}

// MemDecode decodes the thin register and wide address register of a
// STORE or LOAD.
func (code Code) MemDecode() (reg ThinReg, addr WideReg) {
	word := uint16(code)
	reg = ThinReg((word >> 2) & 7)
	addr = WideReg(word & 3)
	return
}

// TraDecode decodes a register-register ALU instruction.
func (code Code) TraDecode() (op CodeAluOp, out, b, a ThinReg) {
	word := uint16(code)
	op = CodeAluOp((word >> 9) & 0xf)
	out = ThinReg((word >> 6) & 7)
	b = ThinReg((word >> 3) & 7)
	a = ThinReg(word & 7)
	return
}

// ImDecode decodes a register-immediate ALU instruction.
func (code Code) ImDecode() (op CodeAluOp, imm uint16, out, a ThinReg) {
	word := uint16(code)
	op = CodeAluOp((word >> 12) & 0xf)
	imm = (word >> 6) & 0x3f
	out = ThinReg((word >> 3) & 7)
	a = ThinReg(word & 7)
	return
}

// LoadImmDecode decodes a LOADIMM instruction.
func (code Code) LoadImmDecode() (imm uint16, out ThinReg) {
	word := uint16(code)
	imm = (word >> 6) & 0x1ff
	out = ThinReg((word >> 3) & 7)
	return
}

// String returns the assembly language representation of this instruction.
func (code Code) String() (out string) {
	class, ok := code.Class()
	if !ok {
		return fmt.Sprintf("?0x%04x", uint16(code))
	}

	switch class {
	case OP_NOP:
		out = "NOP"
	case OP_SETFLG:
		gt, eq, ls, ov := code.SetflgDecode()
		out = fmt.Sprintf("SETFLG #%d, #%d, #%d, #%d", gt, eq, ls, ov)
	case OP_JA:
		cond, target := code.JumpDecode()
		out = fmt.Sprintf("JA #%d, %v", cond, target)
	case OP_STORE:
		reg, addr := code.MemDecode()
		out = fmt.Sprintf("STORE %v, %v", reg, addr)
	case OP_LOAD:
		reg, addr := code.MemDecode()
		out = fmt.Sprintf("LOAD %v, %v", reg, addr)
	case OP_TRA:
		op, dst, b, a := code.TraDecode()
		name := strings.ToUpper(op.String())
		if op == ALU_OP_PASS {
			out = fmt.Sprintf("%v %v, %v", name, b, dst)
		} else {
			out = fmt.Sprintf("%v %v, %v, %v", name, a, b, dst)
		}
	case OP_IM:
		op, imm, dst, a := code.ImDecode()
		name := strings.ToUpper(op.String()) + "IMM"
		if op == ALU_OP_PASS {
			out = fmt.Sprintf("%v #%d, %v", name, imm, dst)
		} else {
			out = fmt.Sprintf("%v %v, #%d, %v", name, a, imm, dst)
		}
	case OP_LOADIMM:
		imm, dst := code.LoadImmDecode()
		out = fmt.Sprintf("LOADIMM #%d, %v", imm, dst)
	}

	return
}
