package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/cpu8/io"
	"github.com/ezrec/cpu8/isa"
)

// FuzzCpu checks that the engine and the decoder agree on the size of
// every instruction.
func FuzzCpu(f *testing.F) {
	for code := range 0x100 {
		f.Add(uint8(code), uint8(0x50), uint8(0x00), uint8(0x31), uint8(0xcd))
		f.Add(uint8(code), uint8(0x00), uint8(0xff), uint8(0x00), uint8(0x00))
	}

	f.Fuzz(func(t *testing.T, code uint8, lo uint8, hi uint8, a uint8, b uint8) {
		assert := assert.New(t)

		const base = uint16(0x4000)

		out := &io.Buffer{}
		cpu := NewCpu(out)
		assert.NoError(cpu.Load([]byte{code, lo, hi}, base))
		cpu.A = a
		cpu.B = b

		err := cpu.Step()

		def, ok := isa.Lookup(isa.Opcode(code))
		if !ok {
			assert.Error(err)
			assert.True(cpu.Halted)
			assert.Equal(base+1, cpu.Pc)
			return
		}

		inst, derr := isa.Decode([]byte{code, lo, hi})
		assert.NoError(derr)
		assert.Equal(def, inst.Def)
		assert.NoError(err)

		next := base + uint16(def.Size())
		switch def.Mnemonic {
		case isa.OP_JMP, isa.OP_JNZ:
			// Flags are clear after load, so JNZ is taken.
			assert.Equal(inst.Operand, cpu.Pc)
		default:
			assert.Equal(next, cpu.Pc)
		}

		assert.Equal(def.Mnemonic == isa.OP_HLT, cpu.Halted)
		assert.Equal(1, cpu.Steps)

		switch def.Mnemonic {
		case isa.OP_OUT:
			assert.Equal([]byte{a}, out.Bytes())
		case isa.OP_STA, isa.OP_STB:
			if inst.Operand == IO_OUTPUT {
				assert.Equal(1, len(out.Bytes()))
			} else {
				assert.Equal(0, len(out.Bytes()))
			}
		default:
			assert.Equal(0, len(out.Bytes()))
		}
	})
}
