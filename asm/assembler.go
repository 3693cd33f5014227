// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package asm

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/ezrec/cpu8/isa"
)

// DEFAULT_ORIGIN is the image origin when no .org precedes the first byte.
const DEFAULT_ORIGIN = 0x8000

// ADDRESS_LIMIT is one past the last address of the address space.
const ADDRESS_LIMIT = 0x10000

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO":          "0",
	"DEFAULT_ORIGIN":  fmt.Sprintf("%#x", DEFAULT_ORIGIN),
	"ZERO_PAGE_LIMIT": fmt.Sprintf("%#x", isa.ZERO_PAGE_LIMIT),
}

// directives are the assembler pseudo-operations.
var directives = map[string]bool{
	".org":  true,
	".byte": true,
	".word": true,
	".equ":  true,
}

// zeroPageMnemonics force the zero-page form of their instruction.
var zeroPageMnemonics = map[string]isa.Mnemonic{
	"lda_zp": isa.OP_LDA,
	"sta_zp": isa.OP_STA,
}

// Line is one line of source text.
type Line struct {
	LineNo int
	Text   string
}

// Assembler is a two pass assembler for the cpu8 instruction set.
//
// Pass one lays out every statement and fixes every label; pass two encodes
// the statements against the completed symbol table. Both passes size each
// statement with the same function.
type Assembler struct {
	Verbose bool // If set, verbosely logs the assembler actions.

	predefine map[string]string // Predefines
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// symbol is a label or equate.
type symbol struct {
	Name   string // Name as first spelled.
	Value  int64
	LineNo int
	Equate bool
}

// symbolTable maps lower-case names to their symbol.
type symbolTable map[string]symbol

// define adds a new symbol to the table.
func (st symbolTable) define(name string, value int64, lineno int, equate bool) (err error) {
	if !isIdentifier(name) || isKeyword(name) {
		err = ErrLabelInvalid
		return
	}

	key := strings.ToLower(name)
	if _, ok := st[key]; ok {
		err = ErrLabelDuplicate
		return
	}

	st[key] = symbol{Name: name, Value: value, LineNo: lineno, Equate: equate}
	return
}

// statement is a single parsed line of source.
type statement struct {
	Line
	label   string   // Optional label, as written.
	op      string   // Lower-case mnemonic or directive.
	operand string   // Operand text, trimmed.
	words   []string // Source words, label excluded.
	org     int64    // .org target, resolved in pass one.
}

// parseStatement splits a line into label, operation and operand.
func parseStatement(line Line) (stmt statement, err error) {
	stmt.Line = line

	text := strings.TrimSpace(stripComment(line.Text))
	if len(text) == 0 {
		return
	}

	if strings.HasSuffix(text, ":") {
		stmt.label = strings.TrimSpace(text[:len(text)-1])
		return
	}

	fields := strings.Fields(text)
	if strings.HasSuffix(fields[0], ":") {
		stmt.label = fields[0][:len(fields[0])-1]
		text = strings.TrimSpace(text[len(fields[0]):])
		fields = fields[1:]
	}

	stmt.words = fields
	stmt.op = strings.ToLower(fields[0])
	stmt.operand = strings.TrimSpace(text[len(fields[0]):])

	return
}

// Parse parses an input stream into a Program.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	var lines []Line
	var lineno int
	for scanner.Scan() {
		lineno += 1
		lines = append(lines, Line{LineNo: lineno, Text: scanner.Text()})
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	return asm.Assemble(lines)
}

// Assemble assembles source lines into a Program. On error no Program is
// returned.
func (asm *Assembler) Assemble(lines []Line) (prog *Program, err error) {
	var stmt *statement

	defer func() {
		if err != nil && stmt != nil {
			err = &ErrSyntax{LineNo: stmt.LineNo, Line: strings.TrimSpace(stmt.Text), Err: err}
		}
		if err != nil {
			prog = nil
		}
	}()

	symbols := symbolTable{}
	for _, predefines := range []map[string]string{sysEquate, asm.predefine} {
		for name, text := range predefines {
			var value int64
			value, err = parseNumber(text)
			if err != nil {
				err = &ErrSyntax{Line: name + " " + text, Err: errors.Join(ErrEquateSyntax, err)}
				return
			}
			symbols[strings.ToLower(name)] = symbol{Name: name, Value: value, Equate: true}
		}
	}

	stmts := make([]statement, 0, len(lines))
	for _, line := range lines {
		var parsed statement
		parsed, err = parseStatement(line)
		if err != nil {
			stmt = &parsed
			return
		}
		stmts = append(stmts, parsed)
	}

	// Pass one: fix every label.
	var origin uint16
	origin, stmt, err = asm.layout(stmts, symbols)
	if err != nil {
		return
	}

	if asm.Verbose {
		for _, sym := range symbols {
			if !sym.Equate {
				log.Printf("asm: label %v = $%04x", sym.Name, sym.Value)
			}
		}
	}

	// Pass two: encode against the completed table.
	var segments []Segment
	segments, stmt, err = asm.encode(stmts, symbols, origin)
	if err != nil {
		return
	}

	prog = &Program{
		Origin:   origin,
		Segments: segments,
		Labels:   map[string]uint16{},
	}
	for key, sym := range symbols {
		if !sym.Equate && sym.Value < ADDRESS_LIMIT {
			prog.Labels[key] = uint16(sym.Value)
		}
	}

	return
}

// layout is pass one. It computes every label address and the origin
// without emitting bytes. On error the failing statement is returned.
func (asm *Assembler) layout(stmts []statement, symbols symbolTable) (origin uint16, failed *statement, err error) {
	pc := int64(DEFAULT_ORIGIN)
	origin = DEFAULT_ORIGIN
	emitted := false

	for n := range stmts {
		stmt := &stmts[n]

		if asm.Verbose {
			log.Printf("%v: %v", stmt.LineNo, stmt.Text)
		}

		switch stmt.op {
		case ".org":
			err = asm.parseOrg(stmt, symbols)
			if err != nil {
				return origin, stmt, err
			}
			if !emitted {
				origin = uint16(stmt.org)
			} else if stmt.org < pc {
				return origin, stmt, ErrOrgBackward
			}
			pc = stmt.org
		case ".equ":
			err = asm.parseEqu(stmt, symbols)
			if err != nil {
				return origin, stmt, err
			}
		default:
			var size int
			size, err = asm.sizeOf(stmt)
			if err != nil {
				return origin, stmt, err
			}
			if len(stmt.label) > 0 {
				err = symbols.define(stmt.label, pc, stmt.LineNo, false)
				if err != nil {
					return origin, stmt, err
				}
			}
			pc += int64(size)
			if size > 0 {
				emitted = true
			}
		}

		if pc > ADDRESS_LIMIT {
			return origin, stmt, ErrAddressOverflow
		}
	}

	return
}

// parseOrg resolves a .org target. Only symbols defined earlier are visible.
// A label on the line names the new address.
func (asm *Assembler) parseOrg(stmt *statement, symbols symbolTable) (err error) {
	args := splitArgs(stmt.operand)
	if len(args) == 0 {
		return ErrOpcodeValueMissing
	}
	if len(args) > 1 {
		return ErrOpcodeExtraArgs
	}

	stmt.org, err = asm.evaluate(args[0], symbols, stmt.LineNo)
	if err != nil {
		return errors.Join(ErrOrgSyntax, err)
	}

	err = checkRange(stmt.org, 0, ADDRESS_LIMIT-1)
	if err != nil {
		return
	}

	if len(stmt.label) > 0 {
		err = symbols.define(stmt.label, stmt.org, stmt.LineNo, false)
	}

	return
}

// parseEqu defines a .equ NAME VALUE constant.
func (asm *Assembler) parseEqu(stmt *statement, symbols symbolTable) (err error) {
	name, value, ok := strings.Cut(stmt.operand, " ")
	value = strings.TrimSpace(value)
	if !ok || len(value) == 0 || len(stmt.label) > 0 {
		return ErrEquateSyntax
	}

	var v int64
	v, err = asm.evaluate(value, symbols, stmt.LineNo)
	if err != nil {
		return errors.Join(ErrEquateSyntax, err)
	}

	return symbols.define(name, v, stmt.LineNo, true)
}

// mode selects the opcode for an instruction statement from the lexical form
// of its operand. It never consults the symbol table, so both passes agree.
func (asm *Assembler) mode(stmt *statement) (def isa.Def, err error) {
	mnemonic, ok := isa.Parse(stmt.op)
	zero_page := false
	if !ok {
		mnemonic, zero_page = zeroPageMnemonics[stmt.op]
		if !zero_page {
			err = ErrInstructionInvalid
			return
		}
	}

	operand := stmt.operand
	_, implied := isa.Encoding(mnemonic, isa.MODE_IMPLIED)

	var mode isa.Mode
	switch {
	case len(operand) == 0 && implied:
		mode = isa.MODE_IMPLIED
	case len(operand) == 0:
		err = ErrOpcodeValueMissing
		return
	case implied:
		err = ErrOpcodeExtraArgs
		return
	case strings.HasPrefix(operand, "#"):
		if zero_page {
			err = ErrModeInvalid
			return
		}
		mode = isa.MODE_IMMEDIATE
	case zero_page:
		mode = isa.MODE_ZERO_PAGE
	case isLiteral(operand):
		value, _ := parseNumber(operand)
		err = checkRange(value, 0, ADDRESS_LIMIT-1)
		if err != nil {
			return
		}
		mode = isa.MODE_ABSOLUTE
		if value < isa.ZERO_PAGE_LIMIT {
			if _, ok := isa.Encoding(mnemonic, isa.MODE_ZERO_PAGE); ok {
				mode = isa.MODE_ZERO_PAGE
			}
		}
	default:
		// Symbols and expressions are always absolute.
		mode = isa.MODE_ABSOLUTE
	}

	def, ok = isa.Encoding(mnemonic, mode)
	if !ok {
		err = ErrModeInvalid
	}

	return
}

// sizeOf returns the number of bytes a statement emits, .org padding
// excluded. Pass one and pass two both use it.
func (asm *Assembler) sizeOf(stmt *statement) (size int, err error) {
	switch stmt.op {
	case "", ".org", ".equ":
		return
	case ".byte", ".word":
		args := splitArgs(stmt.operand)
		if len(args) == 0 {
			err = ErrOpcodeValueMissing
			return
		}
		size = len(args)
		if stmt.op == ".word" {
			size *= 2
		}
		return
	}

	def, err := asm.mode(stmt)
	if err != nil {
		return
	}

	size = def.Size()
	return
}

// encode is pass two. It emits the bytes of every statement.
func (asm *Assembler) encode(stmts []statement, symbols symbolTable, origin uint16) (segments []Segment, failed *statement, err error) {
	pc := int64(origin)
	emitted := false

	for n := range stmts {
		stmt := &stmts[n]
		if len(stmt.op) == 0 {
			continue
		}

		start := pc
		var code []byte
		switch stmt.op {
		case ".equ":
		case ".org":
			if emitted {
				code = make([]byte, stmt.org-pc)
			} else {
				start = stmt.org
			}
		case ".byte", ".word":
			code, err = asm.encodeData(stmt, symbols)
		default:
			code, err = asm.encodeInstruction(stmt, symbols)
		}
		if err != nil {
			return segments, stmt, err
		}

		if stmt.op != ".org" {
			size, _ := asm.sizeOf(stmt)
			if size != len(code) {
				return segments, stmt, ErrSizeMismatch
			}
		}

		if asm.Verbose && len(code) > 0 {
			log.Printf("asm: %04x: % x", start, code)
		}

		segments = append(segments, Segment{
			LineNo:  stmt.LineNo,
			Address: uint16(start),
			Words:   stmt.words,
			Bytes:   code,
		})

		pc = start + int64(len(code))
		if len(code) > 0 {
			emitted = true
		}
	}

	return
}

// encodeData emits .byte and .word values.
func (asm *Assembler) encodeData(stmt *statement, symbols symbolTable) (code []byte, err error) {
	for _, arg := range splitArgs(stmt.operand) {
		var value int64
		value, err = asm.evaluate(arg, symbols, stmt.LineNo)
		if err != nil {
			return
		}
		if stmt.op == ".byte" {
			err = checkRange(value, -0x80, 0xff)
			code = append(code, byte(value))
		} else {
			err = checkRange(value, -0x8000, 0xffff)
			code = append(code, byte(value), byte(value>>8))
		}
		if err != nil {
			return
		}
	}

	return
}

// encodeInstruction emits a single instruction.
func (asm *Assembler) encodeInstruction(stmt *statement, symbols symbolTable) (code []byte, err error) {
	def, err := asm.mode(stmt)
	if err != nil {
		return
	}

	inst := isa.Instruction{Def: def}

	var value int64
	switch def.Mode {
	case isa.MODE_IMPLIED:
	case isa.MODE_IMMEDIATE:
		value, err = asm.evaluate(stmt.operand[1:], symbols, stmt.LineNo)
		if err == nil {
			err = checkRange(value, -0x80, 0xff)
		}
		inst.Operand = uint16(value) & 0xff
	case isa.MODE_ZERO_PAGE:
		value, err = asm.evaluate(stmt.operand, symbols, stmt.LineNo)
		if err == nil && checkRange(value, 0, isa.ZERO_PAGE_LIMIT-1) != nil {
			err = errors.Join(ErrZeroPageRange, checkRange(value, 0, isa.ZERO_PAGE_LIMIT-1))
		}
		inst.Operand = uint16(value)
	case isa.MODE_ABSOLUTE:
		value, err = asm.evaluate(stmt.operand, symbols, stmt.LineNo)
		if err == nil {
			err = checkRange(value, 0, ADDRESS_LIMIT-1)
		}
		inst.Operand = uint16(value)
	}
	if err != nil {
		return
	}

	code = inst.Encode()
	return
}

// evaluate returns the value of an operand word: a $(...) expression, a
// label or equate, or a literal number.
func (asm *Assembler) evaluate(word string, symbols symbolTable, lineno int) (value int64, err error) {
	word = strings.TrimSpace(word)
	if len(word) == 0 {
		err = ErrOpcodeValueMissing
		return
	}

	if isExpression(word) {
		return asm.parenEval(word[2:len(word)-1], symbols, lineno)
	}

	sym, ok := symbols[strings.ToLower(word)]
	if ok {
		value = sym.Value
		return
	}

	value, err = parseNumber(word)
	if err != nil && isIdentifier(word) {
		err = ErrLabelMissing(word)
	}

	return
}
