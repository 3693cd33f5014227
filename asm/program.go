package asm

import (
	"fmt"
	"io"
	"iter"
	"strings"
)

// Segment is one source line's contribution to the image.
type Segment struct {
	LineNo  int      // Source line number.
	Address uint16   // Address of the first byte.
	Words   []string // Source words, label and comment removed.
	Bytes   []byte   // Emitted bytes, possibly none.
}

// Program is the output of the assembler.
type Program struct {
	Origin   uint16            // Load address of the first byte of the image.
	Segments []Segment         // Segments in address order.
	Labels   map[string]uint16 // Label addresses, keyed by lower-case name.
}

// Debug locates an address within the program listing.
type Debug struct {
	*Segment
	Index int // Offset of the address within the segment.
}

// Debug returns the segment holding addr, if any.
func (prog *Program) Debug(addr uint16) (dbg Debug) {
	for n, seg := range prog.Segments {
		if addr >= seg.Address && int(addr) < int(seg.Address)+len(seg.Bytes) {
			dbg = Debug{
				Segment: &prog.Segments[n],
				Index:   int(addr - seg.Address),
			}
			break
		}
	}

	return
}

// Codes iterates over every emitted byte with its address.
func (prog *Program) Codes() iter.Seq2[uint16, byte] {
	return func(yield func(addr uint16, code byte) bool) {
		for _, seg := range prog.Segments {
			for n, code := range seg.Bytes {
				if !yield(seg.Address+uint16(n), code) {
					return
				}
			}
		}
	}
}

// Size returns the image length in bytes.
func (prog *Program) Size() (size int) {
	for _, seg := range prog.Segments {
		size += len(seg.Bytes)
	}
	return
}

// Binary returns the flat image. It is loaded at Origin.
func (prog *Program) Binary() (bin []byte) {
	bin = make([]byte, 0, prog.Size())
	for _, code := range prog.Codes() {
		bin = append(bin, code)
	}

	return
}

// Listing writes an address, bytes and source listing of the program.
func (prog *Program) Listing(w io.Writer) (err error) {
	for _, seg := range prog.Segments {
		// At most three bytes per line, '+' marks the rest.
		shown := seg.Bytes
		if len(shown) > 3 {
			shown = shown[:3]
		}
		hex := make([]string, len(shown))
		for n, b := range shown {
			hex[n] = fmt.Sprintf("%02x", b)
		}
		more := " "
		if len(seg.Bytes) > len(shown) {
			more = "+"
		}
		_, err = fmt.Fprintf(w, "%04x: %-8s%s %5d  %v\n",
			seg.Address, strings.Join(hex, " "), more, seg.LineNo, strings.Join(seg.Words, " "))
		if err != nil {
			return
		}
	}

	return
}
