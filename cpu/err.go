package cpu

import (
	"errors"

	"github.com/ezrec/austin/translate"
)

var f = translate.From

var (
	// Cpu errors
	ErrHalt         = errors.New(f("halt"))
	ErrOpcodeDecode = errors.New(f("unknown opcode"))
	ErrOpcodeAlu    = errors.New(f("unimplemented alu operation"))

	// Memory errors
	ErrMemoryBounds   = errors.New(f("write past end of memory"))
	ErrMemoryReserved = errors.New(f("i/o address range not implemented"))

	// Assembler errors
	ErrSectionHeader      = errors.New(f("bad section header"))
	ErrSectionRedefined   = errors.New(f("section address redefined"))
	ErrSectionReserved    = errors.New(f("section in i/o address range"))
	ErrEquateSyntax       = errors.New(f(".equ syntax"))
	ErrEquateDuplicate    = errors.New(f(".equ duplicated"))
	ErrInstructionInvalid = errors.New(f("instruction invalid"))
	ErrOperandInvalid     = errors.New(f("operand invalid"))
)

// ErrInstruction locates an execution failure.
type ErrInstruction struct {
	Pc   uint32
	Code Code
	Err  error
}

func (err *ErrInstruction) Error() string {
	return f("pc 0x%08x instr 0x%04x (%v) %v", err.Pc, uint16(err.Code), err.Code.String(), err.Err)
}

func (err *ErrInstruction) Unwrap() error {
	return err.Err
}

// ErrAddress reports the memory address of a failed access.
type ErrAddress struct {
	Address uint32
	Err     error
}

func (err *ErrAddress) Error() string {
	return f("address 0x%08x %v", err.Address, err.Err)
}

func (err *ErrAddress) Unwrap() error {
	return err.Err
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}

// ErrImmediate is an immediate that does not fit its encoding field.
type ErrImmediate struct {
	Value int64
	Bits  int
}

func (err ErrImmediate) Error() string {
	return f("immediate too large: %d does not fit in %d bits", err.Value, err.Bits)
}

// ErrRegisterField is a register that cannot be encoded in a narrow field.
type ErrRegisterField struct {
	Register ThinReg
	Bits     int
}

func (err ErrRegisterField) Error() string {
	return f("register %v does not fit in a %d bit field", err.Register.String(), err.Bits)
}

// ErrOperandPattern is an instruction whose operands do not match its mnemonic.
type ErrOperandPattern struct {
	Mnemonic string
	Expected string
}

func (err ErrOperandPattern) Error() string {
	if len(err.Expected) == 0 {
		return f("operand pattern mismatch: %v takes no operands", err.Mnemonic)
	}
	return f("operand pattern mismatch: expected %v %v", err.Mnemonic, err.Expected)
}

type ErrSectionOverlap struct {
	Section string
	Other   string
}

func (err ErrSectionOverlap) Error() string {
	return f("section .%v overlaps section .%v", err.Section, err.Other)
}
