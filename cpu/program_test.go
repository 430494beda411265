package cpu

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func opcodes(lineno int, codes ...Code) (ops []Opcode) {
	for n, code := range codes {
		ops = append(ops, Opcode{LineNo: lineno + n, Code: code})
	}
	return
}

func TestProgram_Finalize(t *testing.T) {
	assert := assert.New(t)

	prog := &Program{
		Sections: []*Section{
			{Name: START_SECTION, Absolute: true, Opcodes: opcodes(1, 0x8000, 0x8001)},
			{Name: "a", LineNo: 3, Opcodes: opcodes(4, 0x2000)},
			{Name: "b", LineNo: 5, Absolute: true, Address: 0x100, Opcodes: opcodes(6, 0x2001)},
			{Name: "c", LineNo: 7, Opcodes: opcodes(8, 0x2002, 0x2003)},
		},
	}

	assert.NoError(prog.Finalize())
	assert.Equal(uint32(2), prog.Section("a").Address)
	assert.Equal(uint32(0x100), prog.Section("b").Address)
	assert.Equal(uint32(0x101), prog.Section("c").Address)
	assert.Equal(uint64(0x103), prog.Section("c").End())
	assert.Equal(uint32(0x103), prog.Size())
}

func TestProgram_FinalizeOverlap(t *testing.T) {
	assert := assert.New(t)

	prog := &Program{
		Sections: []*Section{
			{Name: START_SECTION, Absolute: true},
			{Name: "hi", LineNo: 1, Absolute: true, Address: 0x10, Opcodes: opcodes(2, 1, 2, 3)},
			{Name: "lo", LineNo: 5, Absolute: true, Address: 0x0e, Opcodes: opcodes(6, 1, 2, 3)},
		},
	}

	err := prog.Finalize()
	var se ErrSyntax
	if assert.True(errors.As(err, &se)) {
		assert.Equal(1, se.LineNo)
	}
	var eo ErrSectionOverlap
	if assert.True(errors.As(err, &eo)) {
		assert.Equal("hi", eo.Section)
		assert.Equal("lo", eo.Other)
	}

	// Empty sections overlap nothing.
	prog.Sections[2].Opcodes = nil
	prog.Sections[2].Address = 0x11
	assert.NoError(prog.Finalize())
}

func TestProgram_Layout(t *testing.T) {
	assert := assert.New(t)

	prog := &Program{
		Sections: []*Section{
			{Name: START_SECTION, Absolute: true},
			{Name: "c", Absolute: true, Address: 0x30},
			{Name: "a", Absolute: true, Address: 0x10},
			{Name: "b", Absolute: true, Address: 0x10},
		},
	}

	names := []string{}
	for _, sec := range prog.Layout() {
		names = append(names, sec.Name)
	}
	assert.Equal([]string{START_SECTION, "a", "b", "c"}, names)

	// Declaration order is untouched.
	assert.Equal("c", prog.Sections[1].Name)
}

func TestProgram_Binary(t *testing.T) {
	assert := assert.New(t)

	prog := &Program{
		Sections: []*Section{
			{Name: START_SECTION, Absolute: true, Opcodes: opcodes(1, 0x8040)},
			{Name: "data", Absolute: true, Address: 4, Opcodes: opcodes(3, 0x2001, 0x2002)},
			{Name: "empty", Absolute: true, Address: 0x1000},
		},
	}
	assert.NoError(prog.Finalize())

	assert.Equal([]uint16{0x8040, 0, 0, 0, 0x2001, 0x2002}, prog.Binary())

	addrs := []uint32{}
	codes := []Code{}
	for addr, code := range prog.Codes() {
		addrs = append(addrs, addr)
		codes = append(codes, code)
	}
	assert.Equal([]uint32{0, 4, 5}, addrs)
	assert.Equal([]Code{0x8040, 0x2001, 0x2002}, codes)

	assert.Empty((&Program{}).Binary())
}

func TestProgram_Debug(t *testing.T) {
	assert := assert.New(t)

	prog := &Program{
		Sections: []*Section{
			{Name: START_SECTION, Absolute: true, Opcodes: opcodes(1, 0x8040, 0x8080)},
			{Name: "far", LineNo: 3, Absolute: true, Address: 0x100, Opcodes: opcodes(4, 0x2001, 0x2002, 0x2003)},
		},
	}
	assert.NoError(prog.Finalize())

	dbg := prog.Debug(1)
	assert.Equal(prog.Sections[0], dbg.Section)
	if assert.NotNil(dbg.Opcode) {
		assert.Equal(2, dbg.Opcode.LineNo)
		assert.Equal(Code(0x8080), dbg.Opcode.Code)
	}
	assert.Equal(1, dbg.Index)

	dbg = prog.Debug(0x102)
	assert.Equal("far", dbg.Section.Name)
	if assert.NotNil(dbg.Opcode) {
		assert.Equal(6, dbg.Opcode.LineNo)
	}
	assert.Equal(2, dbg.Index)
}

func TestProgram_Debug_NotFound(t *testing.T) {
	assert := assert.New(t)

	prog := &Program{
		Sections: []*Section{
			{Name: START_SECTION, Absolute: true, Opcodes: opcodes(1, 0x8040)},
			{Name: "far", Absolute: true, Address: 0x100, Opcodes: opcodes(2, 0x2001)},
		},
	}

	for _, addr := range []uint32{1, 0xff, 0x101, IO_BASE} {
		dbg := prog.Debug(addr)
		assert.Nil(dbg.Section, addr)
		assert.Nil(dbg.Opcode, addr)
		assert.Equal(0, dbg.Index, addr)
	}
}
