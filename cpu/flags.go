package cpu

// Flags is the flag register.
type Flags uint8

const (
	FLAG_C = Flags(1 << 0) // Carry, or no borrow on subtract.
	FLAG_Z = Flags(1 << 1) // Zero result.
	FLAG_N = Flags(1 << 2) // Negative (bit 7) result.
	FLAG_V = Flags(1 << 3) // Signed overflow.
)

// String renders the flags as "CZNV", with '-' for each clear flag.
func (flags Flags) String() string {
	text := []byte("----")
	for n, c := range "CZNV" {
		if flags&(1<<n) != 0 {
			text[n] = byte(c)
		}
	}
	return string(text)
}

// Has returns true if every flag in mask is set.
func (flags Flags) Has(mask Flags) bool {
	return flags&mask == mask
}

func zn(value uint8) (flags Flags) {
	if value == 0 {
		flags |= FLAG_Z
	}
	if value&0x80 != 0 {
		flags |= FLAG_N
	}
	return
}

// AddFlags returns a+b and its flags.
func AddFlags(a, b uint8) (result uint8, flags Flags) {
	sum := uint16(a) + uint16(b)
	result = uint8(sum)

	flags = zn(result)
	if sum > 0xff {
		flags |= FLAG_C
	}
	if (^(a^b))&(a^result)&0x80 != 0 {
		flags |= FLAG_V
	}
	return
}

// SubFlags returns a-b and its flags. Carry is set when there is no borrow.
func SubFlags(a, b uint8) (result uint8, flags Flags) {
	result = a - b

	flags = zn(result)
	if a >= b {
		flags |= FLAG_C
	}
	if (a^b)&(a^result)&0x80 != 0 {
		flags |= FLAG_V
	}
	return
}
