// Package cpu implements the cpu8 execution engine.
//
// The engine has two 8-bit registers (A, B), a 16-bit program counter, a
// reserved 16-bit stack pointer, a flag register and 64 KiB of memory. The
// top page holds the memory-mapped I/O ports: a write to IO_OUTPUT goes to
// the attached Port, and a read of IO_STATUS always returns IO_READY. Every
// other address is plain memory.
//
// Each Step decodes one isa.Instruction and executes it. An unknown opcode
// halts the engine and records the fault; the state stays inspectable.
package cpu
