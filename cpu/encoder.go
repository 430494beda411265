package cpu

import (
	"strings"
)

// encoder assembles one mnemonic from its scanned operands.
type encoder struct {
	imms    int    // Number of immediates.
	thins   int    // Number of thin registers.
	wides   int    // Number of wide registers.
	pattern string // Operand pattern, for error messages.
	make    func(ops Operands) (Code, error)
}

// encode checks the operand shape, then builds the instruction word.
func (enc encoder) encode(mnemonic string, ops Operands) (code Code, err error) {
	if len(ops.Immediates) != enc.imms || len(ops.Thin) != enc.thins || len(ops.Wide) != enc.wides {
		err = ErrOperandPattern{Mnemonic: mnemonic, Expected: enc.pattern}
		return
	}

	return enc.make(ops)
}

// immField checks that an immediate fits a field of the given width.
func immField(value int64, bits int) (field uint16, err error) {
	if value < 0 || value >= (1<<bits) {
		err = ErrImmediate{Value: value, Bits: bits}
		return
	}
	field = uint16(value)
	return
}

// regField checks that a thin register fits a 3-bit register field.
func regField(reg ThinReg) (field ThinReg, err error) {
	if !reg.Arithmetic() {
		err = ErrRegisterField{Register: reg, Bits: REG_BITS}
		return
	}
	field = reg
	return
}

// regFields checks a list of thin registers with regField.
func regFields(regs ...ThinReg) (fields []ThinReg, err error) {
	fields = make([]ThinReg, len(regs))
	for n, reg := range regs {
		fields[n], err = regField(reg)
		if err != nil {
			return
		}
	}
	return
}

// memEncoder encodes STORE and LOAD.
func memEncoder(makeCode func(ThinReg, WideReg) Code) encoder {
	return encoder{
		thins:   1,
		wides:   1,
		pattern: "THIN, WIDE",
		make: func(ops Operands) (code Code, err error) {
			reg, err := regField(ops.Thin[0])
			if err != nil {
				return
			}
			code = makeCode(reg, ops.Wide[0])
			return
		},
	}
}

// traEncoder encodes the register-register form of an ALU op.
func traEncoder(op CodeAluOp) encoder {
	if op == ALU_OP_PASS {
		return encoder{
			thins:   2,
			pattern: "B, OUT",
			make: func(ops Operands) (code Code, err error) {
				regs, err := regFields(ops.Thin...)
				if err != nil {
					return
				}
				code = MakeCodeTra(op, regs[1], regs[0], REG_A)
				return
			},
		}
	}

	return encoder{
		thins:   3,
		pattern: "A, B, OUT",
		make: func(ops Operands) (code Code, err error) {
			regs, err := regFields(ops.Thin...)
			if err != nil {
				return
			}
			code = MakeCodeTra(op, regs[2], regs[1], regs[0])
			return
		},
	}
}

// imEncoder encodes the register-immediate form of an ALU op.
func imEncoder(op CodeAluOp) encoder {
	if op == ALU_OP_PASS {
		return encoder{
			imms:    1,
			thins:   1,
			pattern: "#imm, OUT",
			make: func(ops Operands) (code Code, err error) {
				imm, err := immField(ops.Immediates[0], IMM_BITS)
				if err != nil {
					return
				}
				out, err := regField(ops.Thin[0])
				if err != nil {
					return
				}
				code = MakeCodeIm(op, imm, out, REG_A)
				return
			},
		}
	}

	return encoder{
		imms:    1,
		thins:   2,
		pattern: "A, #imm, OUT",
		make: func(ops Operands) (code Code, err error) {
			imm, err := immField(ops.Immediates[0], IMM_BITS)
			if err != nil {
				return
			}
			regs, err := regFields(ops.Thin...)
			if err != nil {
				return
			}
			code = MakeCodeIm(op, imm, regs[1], regs[0])
			return
		},
	}
}

// encoders maps every mnemonic to its encoder.
var encoders = map[string]encoder{
	"NOP": {
		make: func(ops Operands) (Code, error) {
			return MakeCodeNop(), nil
		},
	},
	"SETFLG": {
		imms:    4,
		pattern: "#gt, #eq, #ls, #ov",
		make: func(ops Operands) (code Code, err error) {
			var fl [4]CodeFlagOp
			for n, value := range ops.Immediates {
				var field uint16
				field, err = immField(value, FLAG_BITS)
				if err != nil {
					return
				}
				fl[n] = CodeFlagOp(field)
			}
			code = MakeCodeSetflg(fl[0], fl[1], fl[2], fl[3])
			return
		},
	},
	"JA": {
		imms:    1,
		wides:   1,
		pattern: "#cond, WIDE",
		make: func(ops Operands) (code Code, err error) {
			cond, err := immField(ops.Immediates[0], COND_BITS)
			if err != nil {
				return
			}
			code = MakeCodeJump(CodeCond(cond), ops.Wide[0])
			return
		},
	},
	"STORE": memEncoder(MakeCodeStore),
	"LOAD":  memEncoder(MakeCodeLoad),
	"LOADIMM": {
		imms:    1,
		thins:   1,
		pattern: "#imm, OUT",
		make: func(ops Operands) (code Code, err error) {
			imm, err := immField(ops.Immediates[0], LOADIMM_BITS)
			if err != nil {
				return
			}
			out, err := regField(ops.Thin[0])
			if err != nil {
				return
			}
			code = MakeCodeLoadImm(imm, out)
			return
		},
	},
}

func init() {
	for _, op := range []CodeAluOp{ALU_OP_PASS, ALU_OP_ADD, ALU_OP_SUB, ALU_OP_MUL} {
		name := strings.ToUpper(op.String())
		encoders[name] = traEncoder(op)
		encoders[name+"IMM"] = imEncoder(op)
	}
}
