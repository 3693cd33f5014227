package asm

import (
	"errors"

	"github.com/ezrec/cpu8/translate"
)

var f = translate.From

var (
	// Assembler errors
	ErrEquateSyntax       = errors.New(f(".equ syntax"))
	ErrOrgSyntax          = errors.New(f(".org syntax"))
	ErrOrgBackward        = errors.New(f(".org moves backward"))
	ErrLabelDuplicate     = errors.New(f("label duplicated"))
	ErrLabelInvalid       = errors.New(f("label invalid"))
	ErrOpcodeExtraArgs    = errors.New(f("excessive arguments"))
	ErrOpcodeValueMissing = errors.New(f("value missing"))
	ErrInstructionInvalid = errors.New(f("instruction invalid"))
	ErrModeInvalid        = errors.New(f("addressing mode invalid"))
	ErrZeroPageRange      = errors.New(f("address outside zero page"))
	ErrSizeMismatch       = errors.New(f("encoded size differs from pass 1 size"))
	ErrAddressOverflow    = errors.New(f("program exceeds address space"))
)

// ErrLabelMissing is a symbol that is neither a label, an equate nor a number.
type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

// ErrSyntax locates an assembly error in the source.
type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseCharacter string

func (err ErrParseCharacter) Error() string {
	return f("'%v' is not a character", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}

// ErrRange is a value that does not fit its operand.
type ErrRange struct {
	Value int64
	Min   int64
	Max   int64
}

func (err ErrRange) Error() string {
	return f("value %d outside %d..%d", err.Value, err.Min, err.Max)
}
