package cpu

import (
	"errors"
	"log"
)

// MEMORY_SIZE is the size of the address space.
const MEMORY_SIZE = 0x10000

// Memory-mapped I/O.
const (
	IO_PAGE   = uint16(0xff00) // First address of the I/O page.
	IO_OUTPUT = uint16(0xff00) // Write: output port.
	IO_STATUS = uint16(0xff01) // Read: port status.
	IO_READY  = uint8(0x01)    // Status value: ready.
)

// Memory is the owned address space.
type Memory [MEMORY_SIZE]byte

// read is the data read gate. IO_STATUS always reads as IO_READY.
func (cpu *Cpu) read(addr uint16) (value uint8) {
	if addr == IO_STATUS {
		return IO_READY
	}

	return cpu.Memory[addr]
}

// write is the data write gate. IO_OUTPUT goes to the port, never to memory.
func (cpu *Cpu) write(addr uint16, value uint8) (err error) {
	if addr != IO_OUTPUT {
		cpu.Memory[addr] = value
		return
	}

	if cpu.Verbose {
		log.Printf("cpu: out $%02x", value)
	}

	if cpu.Port == nil {
		return
	}

	err = cpu.Port.WriteByte(value)
	if err != nil {
		err = errors.Join(ErrOutput, err)
	}

	return
}

// fetch returns the instruction bytes at addr, wrapping at the top of
// memory. Fetch reads raw memory.
func (cpu *Cpu) fetch(addr uint16) (code [3]byte) {
	for n := range code {
		code[n] = cpu.Memory[addr+uint16(n)]
	}
	return
}
