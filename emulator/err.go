package emulator

import (
	"errors"

	"github.com/ezrec/austin/cpu"
	"github.com/ezrec/austin/translate"
)

var f = translate.From

var (
	ErrTickLimit = errors.New(f("tick limit reached"))
)

// ErrRuntime indicates the location of a runtime error. LineNo is zero when
// the running image has no program listing.
type ErrRuntime struct {
	Pc     uint32
	LineNo int
	Err    error
}

func (err *ErrRuntime) Error() string {
	// A failed instruction already reports its own pc.
	var ei *cpu.ErrInstruction
	if errors.As(err.Err, &ei) {
		if err.LineNo == 0 {
			return err.Err.Error()
		}
		return f("line %d %v", err.LineNo, err.Err)
	}

	if err.LineNo == 0 {
		return f("pc 0x%08x %v", err.Pc, err.Err)
	}
	return f("pc 0x%08x line %d %v", err.Pc, err.LineNo, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
