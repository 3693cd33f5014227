package isa

import (
	"fmt"
	"iter"
	"strings"
)

// Instruction is a decoded instruction: its table row and operand value.
type Instruction struct {
	Def
	Operand uint16 // Immediate value, zero-page or absolute address.
}

// AppendTo appends the little-endian encoding of the instruction to code.
func (inst Instruction) AppendTo(code []byte) []byte {
	code = append(code, byte(inst.Opcode))
	switch inst.Mode.OperandSize() {
	case 1:
		code = append(code, byte(inst.Operand))
	case 2:
		code = append(code, byte(inst.Operand), byte(inst.Operand>>8))
	}
	return code
}

// Encode returns the encoding of the instruction.
func (inst Instruction) Encode() []byte {
	return inst.AppendTo(make([]byte, 0, inst.Size()))
}

// Decode decodes the instruction at the start of code.
func Decode(code []byte) (inst Instruction, err error) {
	if len(code) == 0 {
		err = ErrTruncated
		return
	}

	def, ok := Lookup(Opcode(code[0]))
	if !ok {
		err = ErrOpcode(code[0])
		return
	}

	if len(code) < def.Size() {
		err = ErrTruncated
		return
	}

	inst.Def = def
	switch def.Mode.OperandSize() {
	case 1:
		inst.Operand = uint16(code[1])
	case 2:
		inst.Operand = uint16(code[1]) | (uint16(code[2]) << 8)
	}

	return
}

// Target returns the memory address referenced by the instruction, if any.
func (inst Instruction) Target() (addr uint16, ok bool) {
	switch inst.Mode {
	case MODE_ABSOLUTE, MODE_ZERO_PAGE:
		return inst.Operand, true
	}
	return
}

// String returns the assembly language representation of the instruction.
func (inst Instruction) String() string {
	switch inst.Mode {
	case MODE_IMMEDIATE:
		return fmt.Sprintf("%v #$%02x", inst.Mnemonic, inst.Operand)
	case MODE_ZERO_PAGE:
		return fmt.Sprintf("%v $%02x", inst.Mnemonic, inst.Operand)
	case MODE_ABSOLUTE:
		return fmt.Sprintf("%v $%04x", inst.Mnemonic, inst.Operand)
	}
	return inst.Mnemonic.String()
}

// Decoded is a single disassembled location of an image.
type Decoded struct {
	Instruction
	Address uint16
	Bytes   []byte
	Err     error // Set if the bytes did not decode.
}

// String formats the location as a listing line.
func (dec Decoded) String() string {
	hex := make([]string, 0, 3)
	for _, b := range dec.Bytes {
		hex = append(hex, fmt.Sprintf("%02x", b))
	}

	text := dec.Instruction.String()
	if dec.Err != nil {
		text = fmt.Sprintf(".byte $%02x", dec.Bytes[0])
	}

	return fmt.Sprintf("%04x: %-8s  %v", dec.Address, strings.Join(hex, " "), text)
}

// Disassemble walks an image loaded at origin. Bytes that do not decode are
// yielded one at a time with Err set.
func Disassemble(origin uint16, image []byte) iter.Seq[Decoded] {
	return func(yield func(dec Decoded) bool) {
		for offset := 0; offset < len(image); {
			dec := Decoded{Address: origin + uint16(offset)}
			dec.Instruction, dec.Err = Decode(image[offset:])
			size := 1
			if dec.Err == nil {
				size = dec.Size()
			}
			dec.Bytes = image[offset : offset+size]
			if !yield(dec) {
				return
			}
			offset += size
		}
	}
}
