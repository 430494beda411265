package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegistersThin(t *testing.T) {
	assert := assert.New(t)

	regs := &Registers{}

	for code := range ThinReg(16) {
		for v := range 0x10000 {
			regs.WriteThin(code, uint16(v))
			if regs.ReadThin(code) != uint16(v) {
				assert.Equal(uint16(v), regs.ReadThin(code), code.String())
				return
			}
		}
	}
}

func TestRegistersWide(t *testing.T) {
	assert := assert.New(t)

	regs := &Registers{}

	values := []uint32{0, 1, 0xffff, 0x10000, 0x12345678, 0xdeadbeef, 0xffffffff}
	for code := range WideReg(4) {
		for _, v := range values {
			regs.WriteWide(code, v)
			assert.Equal(v, regs.ReadWide(code), code.String())
		}
	}
}

func TestRegistersHalves(t *testing.T) {
	assert := assert.New(t)

	table := []struct {
		lo, hi ThinReg
		wide   WideReg
	}{
		{REG_J_LO, REG_J_HI, WIDE_J},
		{REG_K_LO, REG_K_HI, WIDE_K},
		{REG_L_LO, REG_L_HI, WIDE_L},
		{REG_P_LO, REG_P_HI, WIDE_P},
	}

	for _, entry := range table {
		regs := &Registers{}
		regs.WriteWide(entry.wide, 0xaaaa5555)

		regs.WriteThin(entry.lo, 0x1234)
		assert.Equal(uint32(0xaaaa1234), regs.ReadWide(entry.wide), entry.wide.String())

		regs.WriteThin(entry.hi, 0xabcd)
		assert.Equal(uint32(0xabcd1234), regs.ReadWide(entry.wide), entry.wide.String())

		assert.Equal(uint16(0x1234), regs.ReadThin(entry.lo))
		assert.Equal(uint16(0xabcd), regs.ReadThin(entry.hi))

		// No other storage was touched.
		for code := range WideReg(4) {
			if code != entry.wide {
				assert.Equal(uint32(0), regs.ReadWide(code))
			}
		}
		assert.Equal([8]uint16{}, regs.Arith)
	}
}

func TestRegistersDisjoint(t *testing.T) {
	assert := assert.New(t)

	regs := &Registers{}
	for code := range ThinReg(16) {
		regs.WriteThin(code, 0x100+uint16(code))
	}
	for code := range ThinReg(16) {
		assert.Equal(0x100+uint16(code), regs.ReadThin(code), code.String())
	}

	assert.Equal(uint32(0x01090108), regs.ReadWide(WIDE_J))
	assert.Equal(uint32(0x010f010e), regs.Pc())
}

func TestRegistersNames(t *testing.T) {
	assert := assert.New(t)

	names := []string{"A", "B", "C", "D", "E", "F", "G", "H",
		"J0", "J1", "K0", "K1", "L0", "L1", "P0", "P1"}
	for code, name := range names {
		assert.Equal(name, ThinReg(code).String())
	}

	assert.Equal("J", WIDE_J.String())
	assert.Equal("P", WIDE_P.String())

	wide, half := REG_L_HI.Half()
	assert.Equal(WIDE_L, wide)
	assert.Equal(1, half)
}

func TestRegistersReset(t *testing.T) {
	assert := assert.New(t)

	regs := &Registers{}
	regs.WriteThin(REG_C, 7)
	regs.SetPc(0x1000)
	regs.Reset()

	assert.Equal(Registers{}, *regs)
}
