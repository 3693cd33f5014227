package isa

import (
	"errors"

	"github.com/ezrec/cpu8/translate"
)

var f = translate.From

var (
	ErrTruncated = errors.New(f("operand truncated"))
)

// ErrOpcode is an opcode byte with no table entry.
type ErrOpcode Opcode

func (eo ErrOpcode) Error() string {
	return f("bad opcode 0x%02x", uint8(eo))
}

func (eo ErrOpcode) Is(err error) (ok bool) {
	_, ok = err.(ErrOpcode)
	return
}
