package isa

import (
	"fmt"
)

// Opcode is the first byte of every instruction.
type Opcode uint8

const (
	CODE_NOP     = Opcode(0x00)
	CODE_LDA_IMM = Opcode(0x01)
	CODE_LDB_IMM = Opcode(0x02)
	CODE_LDA_ABS = Opcode(0x03)
	CODE_LDB_ABS = Opcode(0x04)
	CODE_STA_ABS = Opcode(0x05)
	CODE_STB_ABS = Opcode(0x06)
	CODE_ADD     = Opcode(0x07)
	CODE_SUB     = Opcode(0x08)
	CODE_INC     = Opcode(0x09)
	CODE_DEC     = Opcode(0x0a)
	CODE_JMP     = Opcode(0x0b)
	CODE_JZ      = Opcode(0x0c)
	CODE_JNZ     = Opcode(0x0d)
	CODE_CMP     = Opcode(0x0e)
	CODE_OUT     = Opcode(0x0f)
	CODE_LDA_ZP  = Opcode(0x10)
	CODE_STA_ZP  = Opcode(0x11)
	CODE_HLT     = Opcode(0xfe)
	CODE_BRK     = Opcode(0xff) // Halt alias, decode only.
)

// Mnemonic is the operation an opcode performs, independent of addressing mode.
type Mnemonic int

//go:generate go tool stringer -linecomment -type=Mnemonic
const (
	OP_NOP = Mnemonic(0)  // nop
	OP_LDA = Mnemonic(1)  // lda
	OP_LDB = Mnemonic(2)  // ldb
	OP_STA = Mnemonic(3)  // sta
	OP_STB = Mnemonic(4)  // stb
	OP_ADD = Mnemonic(5)  // add
	OP_SUB = Mnemonic(6)  // sub
	OP_INC = Mnemonic(7)  // inc
	OP_DEC = Mnemonic(8)  // dec
	OP_JMP = Mnemonic(9)  // jmp
	OP_JZ  = Mnemonic(10) // jz
	OP_JNZ = Mnemonic(11) // jnz
	OP_CMP = Mnemonic(12) // cmp
	OP_OUT = Mnemonic(13) // out
	OP_HLT = Mnemonic(14) // hlt
)

// Mode is an operand addressing mode.
type Mode int

//go:generate go tool stringer -linecomment -type=Mode
const (
	MODE_IMPLIED   = Mode(0) // implied
	MODE_IMMEDIATE = Mode(1) // immediate
	MODE_ABSOLUTE  = Mode(2) // absolute
	MODE_ZERO_PAGE = Mode(3) // zero-page
)

// ZERO_PAGE_LIMIT is the first address not reachable by a zero-page operand.
const ZERO_PAGE_LIMIT = 0x100

// OperandSize is the number of operand bytes following the opcode.
func (mode Mode) OperandSize() int {
	switch mode {
	case MODE_IMMEDIATE, MODE_ZERO_PAGE:
		return 1
	case MODE_ABSOLUTE:
		return 2
	}
	return 0
}

// Size is the total instruction size, opcode byte included.
func (mode Mode) Size() int {
	return 1 + mode.OperandSize()
}

// Def is one row of the opcode table.
type Def struct {
	Opcode   Opcode
	Mnemonic Mnemonic
	Mode     Mode
	Alias    bool // Decoded, but never produced by Encoding().
}

// Size returns the total instruction size for the definition.
func (def Def) Size() int {
	return def.Mode.Size()
}

var defs = []Def{
	{Opcode: CODE_NOP, Mnemonic: OP_NOP, Mode: MODE_IMPLIED},
	{Opcode: CODE_LDA_IMM, Mnemonic: OP_LDA, Mode: MODE_IMMEDIATE},
	{Opcode: CODE_LDB_IMM, Mnemonic: OP_LDB, Mode: MODE_IMMEDIATE},
	{Opcode: CODE_LDA_ABS, Mnemonic: OP_LDA, Mode: MODE_ABSOLUTE},
	{Opcode: CODE_LDB_ABS, Mnemonic: OP_LDB, Mode: MODE_ABSOLUTE},
	{Opcode: CODE_STA_ABS, Mnemonic: OP_STA, Mode: MODE_ABSOLUTE},
	{Opcode: CODE_STB_ABS, Mnemonic: OP_STB, Mode: MODE_ABSOLUTE},
	{Opcode: CODE_ADD, Mnemonic: OP_ADD, Mode: MODE_IMPLIED},
	{Opcode: CODE_SUB, Mnemonic: OP_SUB, Mode: MODE_IMPLIED},
	{Opcode: CODE_INC, Mnemonic: OP_INC, Mode: MODE_IMPLIED},
	{Opcode: CODE_DEC, Mnemonic: OP_DEC, Mode: MODE_IMPLIED},
	{Opcode: CODE_JMP, Mnemonic: OP_JMP, Mode: MODE_ABSOLUTE},
	{Opcode: CODE_JZ, Mnemonic: OP_JZ, Mode: MODE_ABSOLUTE},
	{Opcode: CODE_JNZ, Mnemonic: OP_JNZ, Mode: MODE_ABSOLUTE},
	{Opcode: CODE_CMP, Mnemonic: OP_CMP, Mode: MODE_IMPLIED},
	{Opcode: CODE_OUT, Mnemonic: OP_OUT, Mode: MODE_IMPLIED},
	{Opcode: CODE_LDA_ZP, Mnemonic: OP_LDA, Mode: MODE_ZERO_PAGE},
	{Opcode: CODE_STA_ZP, Mnemonic: OP_STA, Mode: MODE_ZERO_PAGE},
	{Opcode: CODE_HLT, Mnemonic: OP_HLT, Mode: MODE_IMPLIED},
	{Opcode: CODE_BRK, Mnemonic: OP_HLT, Mode: MODE_IMPLIED, Alias: true},
}

type encodingKey struct {
	mnemonic Mnemonic
	mode     Mode
}

var (
	byOpcode   [256]*Def
	byEncoding = map[encodingKey]Def{}
	byName     = map[string]Mnemonic{}
)

func init() {
	for n := range defs {
		def := &defs[n]
		if byOpcode[def.Opcode] != nil {
			panic(fmt.Sprintf("isa: opcode 0x%02x defined twice", uint8(def.Opcode)))
		}
		byOpcode[def.Opcode] = def
		byName[def.Mnemonic.String()] = def.Mnemonic
		if def.Alias {
			continue
		}
		key := encodingKey{mnemonic: def.Mnemonic, mode: def.Mode}
		if _, ok := byEncoding[key]; ok {
			panic(fmt.Sprintf("isa: %v %v defined twice", def.Mnemonic, def.Mode))
		}
		byEncoding[key] = *def
	}
}

// Defs returns a copy of the opcode table.
func Defs() []Def {
	return append([]Def(nil), defs...)
}

// Lookup returns the definition for an opcode byte.
func Lookup(opcode Opcode) (def Def, ok bool) {
	ptr := byOpcode[opcode]
	if ptr == nil {
		return
	}
	return *ptr, true
}

// Encoding returns the definition emitted for a mnemonic in the given mode.
func Encoding(mnemonic Mnemonic, mode Mode) (def Def, ok bool) {
	def, ok = byEncoding[encodingKey{mnemonic: mnemonic, mode: mode}]
	return
}

// Parse returns the mnemonic for its lower-case name.
func Parse(name string) (mnemonic Mnemonic, ok bool) {
	mnemonic, ok = byName[name]
	return
}

// String returns the mnemonic and mode of a defined opcode.
func (opcode Opcode) String() string {
	def, ok := Lookup(opcode)
	if !ok {
		return fmt.Sprintf("opcode(0x%02x)", uint8(opcode))
	}
	return fmt.Sprintf("%v.%v", def.Mnemonic, def.Mode)
}
