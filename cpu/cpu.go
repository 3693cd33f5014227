package cpu

import (
	"fmt"
	"iter"
	"log"
	"maps"

	"github.com/ezrec/cpu8/io"
	"github.com/ezrec/cpu8/isa"
)

// STACK_TOP is the stack pointer after reset. No instruction uses it yet.
const STACK_TOP = uint16(0x7fff)

var _cpu_defines = map[string]string{
	"IO_OUTPUT": fmt.Sprintf("0x%x", IO_OUTPUT),
	"IO_STATUS": fmt.Sprintf("0x%x", IO_STATUS),
	"IO_READY":  fmt.Sprintf("0x%x", IO_READY),
	"STACK_TOP": fmt.Sprintf("0x%x", STACK_TOP),
}

// Cpu is the simulation context of the cpu8 processor.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	A      uint8  // Accumulator.
	B      uint8  // Second operand register.
	Pc     uint16 // Program counter.
	Sp     uint16 // Stack pointer, reserved.
	Flags  Flags  // Flag register.
	Halted bool   // Set by HLT or by a fault.

	Memory Memory // Address space.

	Port   io.Port // Output port. If nil, output is discarded.
	Tracer Tracer  // Optional per-step trace sink.

	Fault error // Fault that halted the engine, if any.
	Steps int   // Steps executed since reset.
}

// NewCpu creates a new CPU with an output port.
func NewCpu(port io.Port) (cpu *Cpu) {
	cpu = &Cpu{
		Port: port,
	}
	cpu.Reset(0)

	return
}

// Defines for the cpu
func (cpu *Cpu) Defines() iter.Seq2[string, string] {
	return maps.All(_cpu_defines)
}

// String returns the register state as a string.
func (cpu *Cpu) String() string {
	return fmt.Sprintf("pc:%04x a:%02x b:%02x sp:%04x f:%v", cpu.Pc, cpu.A, cpu.B, cpu.Sp, cpu.Flags)
}

// Reset the CPU state.
// - Zeros the registers, flags and memory.
// - Clears the halt and fault state.
// - Sets the program counter to pc.
func (cpu *Cpu) Reset(pc uint16) {
	if cpu.Verbose {
		log.Printf("cpu: reset pc $%04x", pc)
	}

	cpu.A = 0
	cpu.B = 0
	cpu.Flags = 0
	cpu.Sp = STACK_TOP
	cpu.Halted = false
	cpu.Fault = nil
	cpu.Steps = 0
	clear(cpu.Memory[:])
	cpu.Pc = pc
}

// Load copies an image into memory at base and sets the program counter to
// base. An image that does not fit changes nothing.
func (cpu *Cpu) Load(image []byte, base uint16) (err error) {
	if int(base)+len(image) > MEMORY_SIZE {
		err = ErrLoadCapacity
		return
	}

	if cpu.Verbose {
		log.Printf("cpu: load %d bytes at $%04x", len(image), base)
	}

	copy(cpu.Memory[base:], image)
	cpu.Pc = base

	return
}

// Dump returns a copy of length bytes of raw memory starting at addr.
func (cpu *Cpu) Dump(addr uint16, length int) (data []byte, err error) {
	if length < 0 || int(addr)+length > MEMORY_SIZE {
		err = ErrDumpRange
		return
	}

	data = make([]byte, length)
	copy(data, cpu.Memory[addr:])

	return
}

// halt stops the engine on a fault.
func (cpu *Cpu) halt(pc uint16, err error) error {
	cpu.Halted = true
	cpu.Fault = ErrFault{Pc: pc, Err: err}

	if cpu.Verbose {
		log.Printf("cpu: %v", cpu.Fault)
	}

	return cpu.Fault
}

// Step executes a single instruction.
func (cpu *Cpu) Step() (err error) {
	if cpu.Halted {
		return ErrHalted
	}

	pc := cpu.Pc
	code := cpu.fetch(pc)

	if cpu.Tracer != nil {
		cpu.Tracer.Trace(Trace{Pc: pc, Opcode: isa.Opcode(code[0]), A: cpu.A, B: cpu.B, Flags: cpu.Flags})
	}

	cpu.Steps++

	inst, err := isa.Decode(code[:])
	if err != nil {
		cpu.Pc = pc + 1
		return cpu.halt(pc, err)
	}

	if cpu.Verbose {
		log.Printf("%04x: %v", pc, inst)
	}

	cpu.Pc = pc + uint16(inst.Size())

	err = cpu.Execute(inst)
	if err != nil {
		return cpu.halt(pc, err)
	}

	return
}

// Execute executes a single decoded instruction. The program counter has
// already moved past it.
func (cpu *Cpu) Execute(inst isa.Instruction) (err error) {
	operand := inst.Operand

	switch inst.Mnemonic {
	case isa.OP_NOP:
	case isa.OP_LDA:
		cpu.A = cpu.load(inst)
		cpu.setZN(cpu.A)
	case isa.OP_LDB:
		cpu.B = cpu.load(inst)
		cpu.setZN(cpu.B)
	case isa.OP_STA:
		err = cpu.write(operand, cpu.A)
	case isa.OP_STB:
		err = cpu.write(operand, cpu.B)
	case isa.OP_ADD:
		cpu.A, cpu.Flags = AddFlags(cpu.A, cpu.B)
	case isa.OP_SUB:
		cpu.A, cpu.Flags = SubFlags(cpu.A, cpu.B)
	case isa.OP_INC:
		cpu.A, cpu.Flags = AddFlags(cpu.A, 1)
	case isa.OP_DEC:
		cpu.A, cpu.Flags = SubFlags(cpu.A, 1)
	case isa.OP_CMP:
		_, cpu.Flags = SubFlags(cpu.A, cpu.B)
	case isa.OP_JMP:
		cpu.Pc = operand
	case isa.OP_JZ:
		if cpu.Flags.Has(FLAG_Z) {
			cpu.Pc = operand
		}
	case isa.OP_JNZ:
		if !cpu.Flags.Has(FLAG_Z) {
			cpu.Pc = operand
		}
	case isa.OP_OUT:
		err = cpu.write(IO_OUTPUT, cpu.A)
	case isa.OP_HLT:
		cpu.Halted = true
		if cpu.Verbose {
			log.Printf("cpu: halt")
		}
	default:
		err = isa.ErrOpcode(inst.Opcode)
	}

	return
}

// load returns the value an LDA or LDB reads.
func (cpu *Cpu) load(inst isa.Instruction) uint8 {
	if inst.Mode == isa.MODE_IMMEDIATE {
		return uint8(inst.Operand)
	}
	return cpu.read(inst.Operand)
}

// setZN updates Z and N from value, keeping C and V.
func (cpu *Cpu) setZN(value uint8) {
	cpu.Flags = (cpu.Flags &^ (FLAG_Z | FLAG_N)) | zn(value)
}

// Run steps until the engine halts or maxSteps steps have executed. It
// returns the steps executed and the fault that stopped it, if any.
func (cpu *Cpu) Run(maxSteps int) (steps int, err error) {
	for steps < maxSteps && !cpu.Halted {
		steps++
		err = cpu.Step()
		if err != nil {
			return
		}
	}

	return
}
