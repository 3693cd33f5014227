package cpu

import (
	"errors"

	"github.com/ezrec/cpu8/translate"
)

var f = translate.From

var (
	// Cpu errors
	ErrHalted       = errors.New(f("cpu halted"))
	ErrLoadCapacity = errors.New(f("image exceeds address space"))
	ErrDumpRange    = errors.New(f("dump exceeds address space"))
	ErrOutput       = errors.New(f("output port write failed"))
)

// ErrFault is the fault that halted the engine.
type ErrFault struct {
	Pc  uint16 // Address of the faulting instruction.
	Err error
}

func (err ErrFault) Error() string {
	return f("fault at $%04x: %v", err.Pc, err.Err)
}

func (err ErrFault) Unwrap() error {
	return err.Err
}
