// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/tebeka/atexit"

	"github.com/ezrec/cpu8/cpu"
	"github.com/ezrec/cpu8/emulator"
	"github.com/ezrec/cpu8/internal"
	"github.com/ezrec/cpu8/isa"
)

var ErrAddress = errors.New("address must be $hex, 0xhex or decimal below 0x10000")

func fatalf(format string, args ...any) {
	color.New(color.FgRed, color.Bold).Fprintf(os.Stderr, format+"\n", args...)
	atexit.Exit(1)
}

// parseAddress accepts $hex, 0xhex and decimal.
func parseAddress(text string) (addr uint16, err error) {
	text = strings.TrimSpace(text)
	if hex, ok := strings.CutPrefix(text, "$"); ok {
		text = "0x" + hex
	}

	value, err := strconv.ParseUint(text, 0, 16)
	if err != nil {
		err = fmt.Errorf("%q: %w", text, ErrAddress)
		return
	}

	addr = uint16(value)
	return
}

// hexDump writes data as 16 byte lines of hex, each prefixed by its address.
func hexDump(w io.Writer, addr uint16, data []byte) {
	for n := 0; n < len(data); n += 16 {
		end := min(n+16, len(data))
		fmt.Fprintf(w, "%04x: % x\n", int(addr)+n, data[n:end])
	}
}

type tracer struct {
	w        io.Writer
	pc       *color.Color
	op       *color.Color
	emulator *emulator.Emulator
}

func (tr *tracer) Trace(state cpu.Trace) {
	code := []byte{byte(state.Opcode)}
	text := ".byte"
	if dump, err := tr.emulator.Cpu.Dump(state.Pc, 3); err == nil {
		if inst, err := isa.Decode(dump); err == nil {
			code = dump[:inst.Size()]
			text = inst.String()
		}
	}

	tr.pc.Fprintf(tr.w, "%04x", state.Pc)
	fmt.Fprint(tr.w, "  ")
	tr.op.Fprintf(tr.w, "OP:%02x", uint8(state.Opcode))
	fmt.Fprintf(tr.w, "  A:%02x  B:%02x  F:%v  ; % -8x %v\n", state.A, state.B, state.Flags, code, text)
}

func main() {
	var base string
	var trace bool
	var steps int
	var dump string
	var source bool
	var verbose bool
	equates := internal.EquateFlag{}

	flag.StringVar(&base, "pc", "", "Load address and initial pc (default: program origin, or $8000)")
	flag.BoolVar(&trace, "trace", false, "Trace every instruction to stderr")
	flag.IntVar(&steps, "steps", math.MaxInt, "Step budget")
	flag.StringVar(&dump, "dump", "", "Dump ADDR:LEN of memory after the run")
	flag.BoolVar(&source, "s", false, "Program is assembly source (default for .s and .asm)")
	flag.Var(equates, "D", "Predefine NAME=VALUE for assembly source (repeatable)")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() != 1 {
		fatalf("usage: %v [options] <program.bin>", filepath.Base(os.Args[0]))
	}
	path := flag.Arg(0)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".s", ".asm":
		source = true
	}

	stdout := bufio.NewWriter(os.Stdout)
	atexit.Register(func() { stdout.Flush() })

	var entry uint16
	var err error
	if len(base) != 0 {
		entry, err = parseAddress(base)
		if err != nil {
			fatalf("-pc: %v", err)
		}
	}

	emu := emulator.NewEmulator()
	emu.Verbose = verbose
	emu.Console.Output = stdout
	for name, value := range equates.All() {
		emu.Predefine(name, value)
	}

	if source {
		var inf *os.File
		inf, err = os.Open(path)
		if err != nil {
			fatalf("%v: %v", path, err)
		}
		err = emu.Assemble(inf)
		inf.Close()
	} else {
		var image []byte
		image, err = os.ReadFile(path)
		if err != nil {
			fatalf("%v: %v", path, err)
		}
		origin := emu.Program.Origin
		if len(base) != 0 {
			origin = entry
		}
		err = emu.Load(image, origin)
	}
	if err != nil {
		fatalf("%v: %v", path, err)
	}

	err = emu.Reset()
	if err != nil {
		fatalf("%v: %v", path, err)
	}

	// Source carries its own origin, so -pc only moves the entry point.
	if source && len(base) != 0 {
		emu.Cpu.Pc = entry
	}

	if trace {
		emu.Cpu.Tracer = &tracer{
			w:        os.Stderr,
			pc:       color.New(color.FgCyan),
			op:       color.New(color.FgYellow),
			emulator: emu,
		}
	}

	ran, err := emu.Run(steps)
	// Program output comes before diagnostics.
	stdout.Flush()
	if err != nil {
		color.New(color.FgRed, color.Bold).Fprintf(os.Stderr, "%v: %v\n", path, err)
	}
	if verbose || trace {
		status := color.New(color.FgGreen)
		if !emu.Cpu.Halted {
			status = color.New(color.FgYellow)
		}
		status.Fprintf(os.Stderr, "%v: %d steps, %v\n", path, ran, emu.Cpu)
	}

	if len(dump) != 0 {
		addrText, lenText, ok := strings.Cut(dump, ":")
		if !ok {
			fatalf("-dump: expected ADDR:LEN")
		}
		addr, perr := parseAddress(addrText)
		if perr != nil {
			fatalf("-dump: %v", perr)
		}
		length, perr := strconv.Atoi(lenText)
		if perr != nil {
			fatalf("-dump: %v", perr)
		}
		data, perr := emu.Cpu.Dump(addr, length)
		if perr != nil {
			fatalf("-dump: %v", perr)
		}
		hexDump(stdout, addr, data)
	}

	if err != nil {
		atexit.Exit(2)
	}
	atexit.Exit(0)
}
