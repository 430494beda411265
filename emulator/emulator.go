// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"context"
	"errors"
	stdio "io"

	"github.com/ezrec/austin/cpu"
	"github.com/ezrec/austin/io"
)

// Emulator state. CPU + the image it boots from.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Listing of the loaded image, if assembled in process.
	MaxTicks int          // If non-zero, Run stops with ErrTickLimit after this many instructions.

	image []uint16
}

// NewEmulator creates a new emulator with an empty image.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Cpu: cpu.NewCpu(nil),
	}

	return
}

// Load sets the image to run. The image has no program listing.
func (emu *Emulator) Load(image []uint16) {
	emu.image = image
	emu.Program = nil
}

// LoadProgram sets the image to run from an assembled program.
func (emu *Emulator) LoadProgram(prog *cpu.Program) {
	emu.image = prog.Binary()
	emu.Program = prog
}

// LoadImage reads a .abin image to run.
func (emu *Emulator) LoadImage(r stdio.Reader) (err error) {
	image, err := io.ReadImage(r)
	if err != nil {
		return
	}

	emu.Load(image)
	return
}

// Reset reloads memory from the image and clears the CPU state.
func (emu *Emulator) Reset() {
	emu.Cpu.Verbose = emu.Verbose
	emu.Cpu.Memory = cpu.NewMemory(emu.image)
	emu.Cpu.Reset()
}

// Pc returns current program counter.
func (emu *Emulator) Pc() uint32 {
	return emu.Cpu.Registers.Pc()
}

// Code returns the assembled code at the program counter, or zero if
// the image has no listing for it.
func (emu *Emulator) Code() cpu.Code {
	if emu.Program == nil {
		return cpu.Code(0)
	}

	dbg := emu.Program.Debug(emu.Pc())
	if dbg.Opcode == nil {
		return cpu.Code(0)
	}

	return dbg.Opcode.Code
}

// LineNo returns the source line number for the executing opcode.
func (emu *Emulator) LineNo() int {
	if emu.Program == nil {
		return 0
	}

	dbg := emu.Program.Debug(emu.Pc())
	if dbg.Opcode == nil {
		return 0
	}

	return dbg.Opcode.LineNo
}

// Tick performs a single tick of the emulator. done is set once the
// processor halts.
func (emu *Emulator) Tick() (done bool, err error) {
	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose

	pc := emu.Pc()
	lineno := emu.LineNo()
	defer func() {
		if err != nil {
			err = &ErrRuntime{Pc: pc, LineNo: lineno, Err: err}
		}
	}()

	err = emu.Cpu.Tick()
	if errors.Is(err, cpu.ErrHalt) {
		err = nil
		done = true
	}

	return
}

// Run ticks the emulator until it halts, fails, reaches MaxTicks, or ctx is
// done.
func (emu *Emulator) Run(ctx context.Context) (err error) {
	for {
		err = ctx.Err()
		if err != nil {
			return
		}

		if emu.MaxTicks > 0 && emu.Cpu.Ticks >= emu.MaxTicks {
			err = &ErrRuntime{Pc: emu.Pc(), LineNo: emu.LineNo(), Err: ErrTickLimit}
			return
		}

		var done bool
		done, err = emu.Tick()
		if err != nil || done {
			return
		}
	}
}
