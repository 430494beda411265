package cpu

import (
	"fmt"
	"strings"
)

// ThinReg is a 4-bit thin register code, naming one 16-bit storage unit.
type ThinReg uint8

const (
	REG_A    = ThinReg(0)
	REG_B    = ThinReg(1)
	REG_C    = ThinReg(2)
	REG_D    = ThinReg(3)
	REG_E    = ThinReg(4)
	REG_F    = ThinReg(5)
	REG_G    = ThinReg(6)
	REG_H    = ThinReg(7)
	REG_J_LO = ThinReg(8)
	REG_J_HI = ThinReg(9)
	REG_K_LO = ThinReg(10)
	REG_K_HI = ThinReg(11)
	REG_L_LO = ThinReg(12)
	REG_L_HI = ThinReg(13)
	REG_P_LO = ThinReg(14)
	REG_P_HI = ThinReg(15)
)

// WideReg is a 2-bit wide register code, naming one 32-bit address register.
type WideReg uint8

const (
	WIDE_J = WideReg(0)
	WIDE_K = WideReg(1)
	WIDE_L = WideReg(2)
	WIDE_P = WideReg(3) // Program counter.
)

var wideName = [4]string{"J", "K", "L", "P"}

func (wide WideReg) String() string {
	return wideName[wide&3]
}

// Arithmetic returns true if the code names one of the A-H registers.
func (thin ThinReg) Arithmetic() bool {
	return thin&0xf < REG_J_LO
}

// Half returns the address register and half (0 low, 1 high) a thin code
// in the range 8-15 selects.
func (thin ThinReg) Half() (wide WideReg, half int) {
	index := int(thin&0xf) - int(REG_J_LO)
	wide = WideReg(index / 2)
	half = index % 2
	return
}

func (thin ThinReg) String() string {
	thin &= 0xf
	if thin.Arithmetic() {
		return string(rune('A' + thin))
	}
	wide, half := thin.Half()
	return fmt.Sprintf("%v%d", wide, half)
}

// Registers is the register file.
type Registers struct {
	Arith [8]uint16 // A-H
	Addr  [4]uint32 // J, K, L, P; indexed by WideReg.
}

// Reset zeros every register.
func (regs *Registers) Reset() {
	clear(regs.Arith[:])
	clear(regs.Addr[:])
}

// ReadThin reads the 16-bit unit selected by a thin code.
func (regs *Registers) ReadThin(code ThinReg) uint16 {
	code &= 0xf
	if code.Arithmetic() {
		return regs.Arith[code]
	}

	wide, half := code.Half()
	return uint16(regs.Addr[wide] >> (16 * half))
}

// WriteThin writes the 16-bit unit selected by a thin code. Writing one half
// of an address register leaves the other half unchanged.
func (regs *Registers) WriteThin(code ThinReg, value uint16) {
	code &= 0xf
	if code.Arithmetic() {
		regs.Arith[code] = value
		return
	}

	wide, half := code.Half()
	shift := 16 * half
	regs.Addr[wide] = (regs.Addr[wide] &^ (0xffff << shift)) | (uint32(value) << shift)
}

// ReadWide reads a whole address register.
func (regs *Registers) ReadWide(code WideReg) uint32 {
	return regs.Addr[code&3]
}

// WriteWide writes a whole address register.
func (regs *Registers) WriteWide(code WideReg, value uint32) {
	regs.Addr[code&3] = value
}

// Pc returns the program counter.
func (regs *Registers) Pc() uint32 {
	return regs.ReadWide(WIDE_P)
}

// SetPc sets the program counter.
func (regs *Registers) SetPc(pc uint32) {
	regs.WriteWide(WIDE_P, pc)
}

// String returns the register file as a string.
func (regs *Registers) String() string {
	var text strings.Builder
	for n, value := range regs.Arith {
		fmt.Fprintf(&text, "%5v: %04X\n", ThinReg(n), value)
	}
	for n, value := range regs.Addr {
		fmt.Fprintf(&text, "%5v: %04X_%04X\n", WideReg(n), value>>16, value&0xffff)
	}
	return text.String()
}
