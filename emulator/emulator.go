// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"fmt"
	"io"
	"iter"
	"log"
	"maps"

	"github.com/ezrec/cpu8/asm"
	"github.com/ezrec/cpu8/cpu"
	"github.com/ezrec/cpu8/internal"
	cpuio "github.com/ezrec/cpu8/io"
)

var _emulator_defines = map[string]string{
	"MEMORY_SIZE": fmt.Sprintf("0x%x", cpu.MEMORY_SIZE),
	"IO_PAGE":     fmt.Sprintf("0x%x", cpu.IO_PAGE),
}

// Emulator state. CPU + console + program listing.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *asm.Program // Reference to the currently loaded program listing.

	Console cpuio.Console // Console output port.

	equates map[string]string // Extra predefines.
}

// NewEmulator creates a new emulator.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Program: &asm.Program{Origin: asm.DEFAULT_ORIGIN},
	}
	emu.Cpu = cpu.NewCpu(&emu.Console)

	return
}

// Defines returns an iterator over all of the defines
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(maps.All(_emulator_defines),
		emu.Cpu.Defines(),
		maps.All(emu.equates),
	)
}

// Predefine adds an equate to the defines, or replaces one.
func (emu *Emulator) Predefine(name string, value string) {
	if emu.equates == nil {
		emu.equates = map[string]string{}
	}
	emu.equates[name] = value
}

// Assemble assembles source into the program, with every define
// predefined.
func (emu *Emulator) Assemble(input io.Reader) (err error) {
	assembler := &asm.Assembler{Verbose: emu.Verbose}
	for name, value := range emu.Defines() {
		assembler.Predefine(name, value)
	}

	prog, err := assembler.Parse(input)
	if err != nil {
		return
	}

	emu.Program = prog
	return
}

// Load sets the program to a raw image loaded at base. The program has no
// source lines.
func (emu *Emulator) Load(image []byte, base uint16) (err error) {
	if int(base)+len(image) > cpu.MEMORY_SIZE {
		err = cpu.ErrLoadCapacity
		return
	}

	emu.Program = &asm.Program{
		Origin: base,
		Segments: []asm.Segment{
			{Address: base, Bytes: image},
		},
		Labels: map[string]uint16{},
	}

	return
}

// Reset the CPU, and load the program at its origin.
func (emu *Emulator) Reset() (err error) {
	emu.Cpu.Verbose = emu.Verbose

	origin := emu.Program.Origin
	emu.Cpu.Reset(origin)
	err = emu.Cpu.Load(emu.Program.Binary(), origin)
	if err != nil {
		return
	}

	if emu.Verbose {
		log.Printf("emulator: %d bytes at $%04x", emu.Program.Size(), origin)
	}

	return
}

// Steps returns the steps executed since a reset.
func (emu *Emulator) Steps() int {
	return emu.Cpu.Steps
}

// LineNo returns the source line number of the instruction at the program
// counter, or 0 if it has none.
func (emu *Emulator) LineNo() int {
	dbg := emu.Program.Debug(emu.Cpu.Pc)
	if dbg.Segment == nil {
		return 0
	}

	return dbg.LineNo
}

// Tick performs a single step of the emulator.
func (emu *Emulator) Tick() (done bool, err error) {
	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose

	lineno := emu.LineNo()
	defer func() {
		done = emu.Cpu.Halted
		if err != nil {
			err = &ErrRuntime{LineNo: lineno, Err: err}
		}
	}()

	if emu.Cpu.Halted {
		return
	}

	err = emu.Cpu.Step()
	return
}

// Run ticks until the program halts or maxSteps ticks. It returns the
// number of ticks.
func (emu *Emulator) Run(maxSteps int) (steps int, err error) {
	for steps < maxSteps && !emu.Cpu.Halted {
		steps++
		_, err = emu.Tick()
		if err != nil {
			return
		}
	}

	return
}
