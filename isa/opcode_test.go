package isa

import (
	"errors"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOpcodeTable(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		opcode   Opcode
		mnemonic Mnemonic
		mode     Mode
		size     int
	}){
		{0x00, OP_NOP, MODE_IMPLIED, 1},
		{0x01, OP_LDA, MODE_IMMEDIATE, 2},
		{0x02, OP_LDB, MODE_IMMEDIATE, 2},
		{0x03, OP_LDA, MODE_ABSOLUTE, 3},
		{0x04, OP_LDB, MODE_ABSOLUTE, 3},
		{0x05, OP_STA, MODE_ABSOLUTE, 3},
		{0x06, OP_STB, MODE_ABSOLUTE, 3},
		{0x07, OP_ADD, MODE_IMPLIED, 1},
		{0x08, OP_SUB, MODE_IMPLIED, 1},
		{0x09, OP_INC, MODE_IMPLIED, 1},
		{0x0a, OP_DEC, MODE_IMPLIED, 1},
		{0x0b, OP_JMP, MODE_ABSOLUTE, 3},
		{0x0c, OP_JZ, MODE_ABSOLUTE, 3},
		{0x0d, OP_JNZ, MODE_ABSOLUTE, 3},
		{0x0e, OP_CMP, MODE_IMPLIED, 1},
		{0x0f, OP_OUT, MODE_IMPLIED, 1},
		{0x10, OP_LDA, MODE_ZERO_PAGE, 2},
		{0x11, OP_STA, MODE_ZERO_PAGE, 2},
		{0xfe, OP_HLT, MODE_IMPLIED, 1},
		{0xff, OP_HLT, MODE_IMPLIED, 1},
	}

	for _, entry := range table {
		def, ok := Lookup(entry.opcode)
		assert.True(ok, entry.opcode)
		assert.Equal(entry.mnemonic, def.Mnemonic, entry.opcode)
		assert.Equal(entry.mode, def.Mode, entry.opcode)
		assert.Equal(entry.size, def.Size(), entry.opcode)
	}

	assert.Equal(len(table), len(Defs()))

	for code := range 256 {
		_, ok := Lookup(Opcode(code))
		known := slices.ContainsFunc(table, func(entry struct {
			opcode   Opcode
			mnemonic Mnemonic
			mode     Mode
			size     int
		}) bool {
			return entry.opcode == Opcode(code)
		})
		assert.Equal(known, ok, code)
	}
}

func TestEncoding(t *testing.T) {
	assert := assert.New(t)

	def, ok := Encoding(OP_LDA, MODE_ZERO_PAGE)
	assert.True(ok)
	assert.Equal(CODE_LDA_ZP, def.Opcode)

	def, ok = Encoding(OP_HLT, MODE_IMPLIED)
	assert.True(ok)
	assert.Equal(CODE_HLT, def.Opcode)

	_, ok = Encoding(OP_LDB, MODE_ZERO_PAGE)
	assert.False(ok)

	_, ok = Encoding(OP_JMP, MODE_IMMEDIATE)
	assert.False(ok)

	for _, def := range Defs() {
		if def.Alias {
			continue
		}
		enc, ok := Encoding(def.Mnemonic, def.Mode)
		assert.True(ok)
		assert.Equal(def, enc)
	}
}

func TestParse(t *testing.T) {
	assert := assert.New(t)

	for _, def := range Defs() {
		mnemonic, ok := Parse(def.Mnemonic.String())
		assert.True(ok)
		assert.Equal(def.Mnemonic, mnemonic)
	}

	_, ok := Parse("lda_zp")
	assert.False(ok)
	_, ok = Parse("LDA")
	assert.False(ok)
}

func TestEncodeDecode(t *testing.T) {
	assert := assert.New(t)

	for _, def := range Defs() {
		for _, operand := range []uint16{0x0000, 0x00ff, 0x1234, 0xffff} {
			inst := Instruction{Def: def}
			switch def.Mode.OperandSize() {
			case 1:
				inst.Operand = operand & 0xff
			case 2:
				inst.Operand = operand
			}

			code := inst.Encode()
			assert.Equal(def.Size(), len(code), def)

			dec, err := Decode(code)
			assert.NoError(err)
			assert.Equal(inst, dec)

			// Trailing bytes never change the decode.
			dec, err = Decode(append(code, 0xaa, 0x55))
			assert.NoError(err)
			assert.Equal(inst, dec)
		}
	}
}

func TestEncodeLittleEndian(t *testing.T) {
	assert := assert.New(t)

	def, _ := Encoding(OP_JMP, MODE_ABSOLUTE)
	inst := Instruction{Def: def, Operand: 0x8003}
	assert.Equal([]byte{0x0b, 0x03, 0x80}, inst.Encode())
	assert.Equal([]byte{0xaa, 0x0b, 0x03, 0x80}, inst.AppendTo([]byte{0xaa}))
}

func TestDecodeErrors(t *testing.T) {
	assert := assert.New(t)

	_, err := Decode(nil)
	assert.ErrorIs(err, ErrTruncated)

	_, err = Decode([]byte{0x12})
	assert.ErrorIs(err, ErrOpcode(0))
	var eo ErrOpcode
	assert.True(errors.As(err, &eo))
	assert.Equal(ErrOpcode(0x12), eo)

	_, err = Decode([]byte{byte(CODE_JMP), 0x00})
	assert.ErrorIs(err, ErrTruncated)

	_, err = Decode([]byte{byte(CODE_LDA_IMM)})
	assert.ErrorIs(err, ErrTruncated)
}

func TestInstructionString(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		code []byte
		text string
	}){
		{[]byte{0x00}, "nop"},
		{[]byte{0x01, 0x05}, "lda #$05"},
		{[]byte{0x03, 0x34, 0x12}, "lda $1234"},
		{[]byte{0x10, 0x50}, "lda $50"},
		{[]byte{0x11, 0x50}, "sta $50"},
		{[]byte{0x0b, 0x00, 0x80}, "jmp $8000"},
		{[]byte{0xff}, "hlt"},
	}

	for _, entry := range table {
		inst, err := Decode(entry.code)
		assert.NoError(err)
		assert.Equal(entry.text, inst.String())
	}

	assert.Equal("lda.immediate", CODE_LDA_IMM.String())
	assert.Equal("opcode(0x42)", Opcode(0x42).String())
	assert.Equal("Mnemonic(99)", Mnemonic(99).String())
	assert.Equal("zero-page", MODE_ZERO_PAGE.String())
}

func TestTarget(t *testing.T) {
	assert := assert.New(t)

	inst, _ := Decode([]byte{0x0c, 0x10, 0x80})
	addr, ok := inst.Target()
	assert.True(ok)
	assert.Equal(uint16(0x8010), addr)

	inst, _ = Decode([]byte{0x01, 0x10})
	_, ok = inst.Target()
	assert.False(ok)
}

func TestDisassemble(t *testing.T) {
	assert := assert.New(t)

	image := []byte{0x01, 0x01, 0x0f, 0x42, 0x0b, 0x00, 0x80, 0x03}

	var lines []string
	var addrs []uint16
	for dec := range Disassemble(0x8000, image) {
		lines = append(lines, dec.String())
		addrs = append(addrs, dec.Address)
	}

	assert.Equal([]uint16{0x8000, 0x8002, 0x8003, 0x8004, 0x8007}, addrs)
	assert.Equal([]string{
		"8000: 01 01     lda #$01",
		"8002: 0f        out",
		"8003: 42        .byte $42",
		"8004: 0b 00 80  jmp $8000",
		"8007: 03        .byte $03",
	}, lines)
}
