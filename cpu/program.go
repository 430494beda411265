package cpu

import (
	"cmp"
	"iter"
	"slices"

	"github.com/ezrec/austin/internal"
)

// START_SECTION is the implicit first section, always absolute at address 0.
const START_SECTION = "start"

// Opcode is one assembled word with its source location.
type Opcode struct {
	LineNo int
	Words  []string
	Code   Code
}

// Section is a named, independently addressed run of assembled words.
type Section struct {
	Name     string   // Unique section name.
	LineNo   int      // Line of the declaring header; 0 for the implicit start section.
	Absolute bool     // If set, Address was given at declaration.
	Address  uint32   // Base address; resolved by Finalize for sequential sections.
	Opcodes  []Opcode // Words in address order.
}

// Len returns the number of words in the section.
func (sec *Section) Len() uint32 {
	return uint32(len(sec.Opcodes))
}

// End returns the address following the last word of the section.
func (sec *Section) End() uint64 {
	return uint64(sec.Address) + uint64(len(sec.Opcodes))
}

// Codes returns an iterator over the addresses and codes of the section.
func (sec *Section) Codes() iter.Seq2[uint32, Code] {
	return func(yield func(addr uint32, code Code) bool) {
		for n, op := range sec.Opcodes {
			if !yield(sec.Address+uint32(n), op.Code) {
				return
			}
		}
	}
}

// Program is an assembled program: its sections in declaration order.
type Program struct {
	Sections []*Section
}

// Section returns the named section, or nil.
func (prog *Program) Section(name string) *Section {
	for _, sec := range prog.Sections {
		if sec.Name == name {
			return sec
		}
	}
	return nil
}

// Finalize assigns each sequential section the end address of the section
// declared immediately before it, then checks the layout for overlapping
// sections and sections reaching into the I/O range.
func (prog *Program) Finalize() (err error) {
	var end uint64
	for _, sec := range prog.Sections {
		if !sec.Absolute {
			if end >= uint64(IO_BASE) {
				return ErrSyntax{LineNo: sec.LineNo, Line: "." + sec.Name + ":", Err: ErrSectionReserved}
			}
			sec.Address = uint32(end)
		}
		if sec.Address >= IO_BASE || sec.End() > uint64(IO_BASE) {
			return ErrSyntax{LineNo: sec.LineNo, Line: "." + sec.Name + ":", Err: ErrSectionReserved}
		}
		end = sec.End()
	}

	var prior *Section
	for _, sec := range prog.Layout() {
		if sec.Len() == 0 {
			continue
		}
		if prior != nil && prior.End() > uint64(sec.Address) {
			return ErrSyntax{LineNo: sec.LineNo, Line: "." + sec.Name + ":",
				Err: ErrSectionOverlap{Section: sec.Name, Other: prior.Name}}
		}
		prior = sec
	}

	return
}

// Layout returns the sections in ascending address order. Sections at the
// same address keep their declaration order.
func (prog *Program) Layout() (layout []*Section) {
	layout = slices.Clone(prog.Sections)
	slices.SortStableFunc(layout, func(a, b *Section) int {
		return cmp.Compare(a.Address, b.Address)
	})
	return
}

// Codes returns an iterator over every assembled word, in address order.
func (prog *Program) Codes() iter.Seq2[uint32, Code] {
	var seqs []iter.Seq2[uint32, Code]
	for _, sec := range prog.Layout() {
		seqs = append(seqs, sec.Codes())
	}
	return internal.IterSeq2Concat(seqs...)
}

// Size returns the length of the linear image.
func (prog *Program) Size() (size uint32) {
	for _, sec := range prog.Sections {
		if sec.Len() > 0 && uint32(sec.End()) > size {
			size = uint32(sec.End())
		}
	}
	return
}

// Binary returns the linear image: every section's words at its address,
// with unused addresses below the highest section end set to zero.
func (prog *Program) Binary() (bins []uint16) {
	bins = make([]uint16, prog.Size())
	for addr, code := range prog.Codes() {
		bins[addr] = uint16(code)
	}

	return
}

// Debug locates the source of an address in the image.
type Debug struct {
	Section *Section
	Opcode  *Opcode
	Index   int // Index of the word within the section.
}

// Debug returns the section and opcode assembled at addr. The fields are
// nil if no section covers addr.
func (prog *Program) Debug(addr uint32) (dbg Debug) {
	for _, sec := range prog.Sections {
		if addr >= sec.Address && uint64(addr) < sec.End() {
			index := int(addr - sec.Address)
			dbg = Debug{
				Section: sec,
				Opcode:  &sec.Opcodes[index],
				Index:   index,
			}
			break
		}
	}

	return
}
