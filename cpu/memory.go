package cpu

const (
	IO_BASE = uint32(0xf000_0000) // Start of the reserved I/O address range.
)

// Memory is a flat array of 16-bit words, addressed by word. The capacity is
// fixed when the image is loaded.
type Memory struct {
	Data []uint16
}

// NewMemory creates a memory holding a copy of image.
func NewMemory(image []uint16) (mem *Memory) {
	mem = &Memory{
		Data: make([]uint16, len(image)),
	}
	copy(mem.Data, image)

	return
}

// Read returns the word at addr. Unpopulated addresses below the I/O range
// read as zero.
func (mem *Memory) Read(addr uint32) (value uint16, err error) {
	if addr >= IO_BASE {
		err = &ErrAddress{Address: addr, Err: ErrMemoryReserved}
		return
	}

	if uint64(addr) < uint64(len(mem.Data)) {
		value = mem.Data[addr]
	}

	return
}

// Write sets the word at addr. Memory never grows; writing past the loaded
// length is an error.
func (mem *Memory) Write(addr uint32, value uint16) (err error) {
	if addr >= IO_BASE {
		err = &ErrAddress{Address: addr, Err: ErrMemoryReserved}
		return
	}

	if uint64(addr) >= uint64(len(mem.Data)) {
		err = &ErrAddress{Address: addr, Err: ErrMemoryBounds}
		return
	}

	mem.Data[addr] = value
	return
}

// Len returns the number of populated words.
func (mem *Memory) Len() int {
	return len(mem.Data)
}
