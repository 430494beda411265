// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Flags are the condition flags.
type Flags struct {
	Gt bool // Greater than.
	Eq bool // Equal.
	Ls bool // Less than.
	Ov bool // ALU overflow.
}

// Value returns 4*gt + 2*eq + ls, the number jump conditions compare against.
func (fl Flags) Value() (value int) {
	if fl.Gt {
		value += 4
	}
	if fl.Eq {
		value += 2
	}
	if fl.Ls {
		value += 1
	}
	return
}

func (fl Flags) String() string {
	names := []string{"gt", "eq", "ls", "ov"}
	for n, set := range []bool{fl.Gt, fl.Eq, fl.Ls, fl.Ov} {
		if !set {
			names[n] = "--"
		}
	}
	return strings.Join(names, " ")
}

// Cpu is the simulation context for one run of the processor. It owns the
// register file, flags and memory; nothing else mutates them during a run.
type Cpu struct {
	Verbose bool               // Set to enable verbose logging.
	Log     logrus.FieldLogger // Trace destination; the standard logger if nil.

	Registers Registers // Register file.
	Flags     Flags     // Condition flags.
	Memory    *Memory   // Word memory.

	Ticks int // Instructions executed since reset.
}

// NewCpu creates a new CPU with memory loaded from image.
func NewCpu(image []uint16) (cpu *Cpu) {
	cpu = &Cpu{
		Memory: NewMemory(image),
	}

	return
}

// Reset the CPU state: registers, flags and counters are zeroed.
func (cpu *Cpu) Reset() {
	cpu.Registers.Reset()
	cpu.Flags = Flags{}
	cpu.Ticks = 0

	if cpu.Verbose {
		cpu.logger().Info("cpu: reset")
	}
}

func (cpu *Cpu) logger() logrus.FieldLogger {
	if cpu.Log == nil {
		return logrus.StandardLogger()
	}
	return cpu.Log
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() string {
	return fmt.Sprintf("%sflags: %v\nticks: %d\n", cpu.Registers.String(), cpu.Flags, cpu.Ticks)
}

// FetchCode fetches the instruction at the program counter.
func (cpu *Cpu) FetchCode() (code Code, err error) {
	word, err := cpu.Memory.Read(cpu.Registers.Pc())
	if err != nil {
		return
	}

	code = Code(word)
	return
}

// Tick executes a single instruction cycle. ErrHalt is returned, with no
// state changed, when the instruction is the all-zero NOP.
func (cpu *Cpu) Tick() (err error) {
	code, err := cpu.FetchCode()
	if err != nil {
		return
	}

	return cpu.Execute(code)
}

// Execute executes a single instruction as if fetched from the program
// counter.
func (cpu *Cpu) Execute(code Code) (err error) {
	pc := cpu.Registers.Pc()

	var start time.Time
	if cpu.Verbose {
		start = time.Now()
	}

	defer func() {
		if cpu.Verbose {
			cpu.trace(pc, code, time.Since(start))
		}
		if err != nil && err != ErrHalt {
			err = &ErrInstruction{Pc: pc, Code: code, Err: err}
		}
	}()

	class, ok := code.Class()
	if !ok {
		err = ErrOpcodeDecode
		return
	}

	regs := &cpu.Registers
	next_pc := pc + 1

	switch class {
	case OP_NOP:
		err = ErrHalt
		return
	case OP_SETFLG:
		gt, eq, ls, ov := code.SetflgDecode()
		cpu.Flags.Gt = gt.Apply(cpu.Flags.Gt)
		cpu.Flags.Eq = eq.Apply(cpu.Flags.Eq)
		cpu.Flags.Ls = ls.Apply(cpu.Flags.Ls)
		cpu.Flags.Ov = ov.Apply(cpu.Flags.Ov)
	case OP_JA:
		cond, target := code.JumpDecode()
		if cond.Taken(cpu.Flags) {
			next_pc = regs.ReadWide(target)
		}
	case OP_STORE:
		src, addr := code.MemDecode()
		err = cpu.Memory.Write(regs.ReadWide(addr), regs.ReadThin(src))
		if err != nil {
			return
		}
	case OP_LOAD:
		dst, addr := code.MemDecode()
		var value uint16
		value, err = cpu.Memory.Read(regs.ReadWide(addr))
		if err != nil {
			return
		}
		regs.WriteThin(dst, value)
	case OP_TRA:
		op, out, b, a := code.TraDecode()
		var value uint16
		value, err = cpu.doAlu(op, regs.ReadThin(a), regs.ReadThin(b))
		if err != nil {
			return
		}
		regs.WriteThin(out, value)
	case OP_IM:
		op, imm, out, a := code.ImDecode()
		var value uint16
		value, err = cpu.doAlu(op, regs.ReadThin(a), imm)
		if err != nil {
			return
		}
		regs.WriteThin(out, value)
	case OP_LOADIMM:
		imm, out := code.LoadImmDecode()
		var value uint16
		value, err = cpu.doAlu(ALU_OP_PASS, 0, imm)
		if err != nil {
			return
		}
		regs.WriteThin(out, value)
	default:
		err = errors.Join(ErrOpcodeDecode, fmt.Errorf("class %v", class))
		return
	}

	regs.SetPc(next_pc)
	cpu.Ticks++

	return
}

// trace logs one executed instruction, with the cycle time and the clock
// rate it corresponds to.
func (cpu *Cpu) trace(pc uint32, code Code, elapsed time.Duration) {
	var mhz float64
	if elapsed > 0 {
		mhz = 1 / elapsed.Seconds() / 1e6
	}

	cpu.logger().WithFields(logrus.Fields{
		"pc":      fmt.Sprintf("%08x", pc),
		"instr":   fmt.Sprintf("%04x", uint16(code)),
		"elapsed": elapsed,
		"mhz":     mhz,
	}).Info(code.String())
}

// doAlu performs the requested ALU action on the A and B buses, and returns
// the output value. ADD, SUB and MUL set the overflow flag.
func (cpu *Cpu) doAlu(op CodeAluOp, a uint16, b uint16) (output uint16, err error) {
	switch op {
	case ALU_OP_PASS:
		output = b
	case ALU_OP_ADD:
		sum := uint32(a) + uint32(b)
		output = uint16(sum)
		cpu.Flags.Ov = sum > 0xffff
	case ALU_OP_SUB:
		output = a - b
		cpu.Flags.Ov = b > a
	case ALU_OP_MUL:
		product := uint32(a) * uint32(b)
		output = uint16(product)
		cpu.Flags.Ov = product > 0xffff
	default:
		err = fmt.Errorf("%w %v", ErrOpcodeAlu, op)
	}

	return
}
