// Package isa defines the cpu8 instruction set.
//
// Every instruction is a single opcode byte followed by zero, one or two
// little-endian operand bytes. The table in this package is the only place
// opcode bytes, addressing modes and instruction sizes are defined; the
// assembler encodes with it and the CPU decodes with it.
package isa
