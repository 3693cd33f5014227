package cpu

import (
	"fmt"

	"github.com/ezrec/cpu8/isa"
)

// Trace is the engine state seen by a Tracer, taken before the
// instruction executes.
type Trace struct {
	Pc     uint16     // Address of the opcode.
	Opcode isa.Opcode // Opcode byte, possibly undefined.
	A      uint8
	B      uint8
	Flags  Flags
}

// String formats a trace line.
func (tr Trace) String() string {
	return fmt.Sprintf("%04x  OP:%02x  A:%02x  B:%02x  F:%v", tr.Pc, uint8(tr.Opcode), tr.A, tr.B, tr.Flags)
}

// Tracer receives one Trace per step.
type Tracer interface {
	Trace(tr Trace)
}

// TraceFunc adapts a function to a Tracer.
type TraceFunc func(tr Trace)

func (fn TraceFunc) Trace(tr Trace) {
	fn(tr)
}
